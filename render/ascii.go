// Package render holds the human-facing diagnostic outputs: ASCII
// rasters of reconstructed samples and PNG charts of the training
// histories.
package render

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
)

// ASCII renders a visible-unit vector as a character raster: units
// above the threshold print as '#', the rest as spaces. It implements
// rbm.Renderer.
type ASCII struct {
	Threshold float64
	Width     int       // units per row; 0 renders a single row
	Out       io.Writer // defaults to os.Stdout
}

func (a ASCII) Render(v []float64) error {
	out := a.Out
	if out == nil {
		out = os.Stdout
	}
	width := a.Width
	if width <= 0 {
		width = len(v)
	}
	var buf bytes.Buffer
	for i, x := range v {
		if x > a.Threshold {
			buf.WriteByte('#')
		} else {
			buf.WriteByte(' ')
		}
		if (i+1)%width == 0 {
			buf.WriteByte('\n')
		}
	}
	if len(v)%width != 0 {
		buf.WriteByte('\n')
	}
	_, err := out.Write(buf.Bytes())
	return errors.WithStack(err)
}
