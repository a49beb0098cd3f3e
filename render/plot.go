package render

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WriteCostCurve charts the per-epoch reconstruction error into an
// image file (format by extension, e.g. .png).
func WriteCostCurve(costs []float64, filename string) error {
	if len(costs) == 0 {
		return errors.New("no cost history to plot")
	}
	p := plot.New()
	p.Title.Text = "reconstruction error"
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "summed squared error"

	pts := make(plotter.XYs, len(costs))
	for i, c := range costs {
		pts[i].X = float64(i)
		pts[i].Y = c
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.WithStack(err)
	}
	p.Add(line)
	return errors.WithStack(p.Save(8*vg.Inch, 6*vg.Inch, filename))
}

// WriteFreeEnergyCurves charts the periodically sampled train (and
// optionally validation) free energies. Samples sit at epochs 25, 50,
// 75... so the X axis is reconstructed from the sample index.
func WriteFreeEnergyCurves(train, validation []float64, filename string) error {
	if len(train) == 0 {
		return errors.New("no free energy history to plot")
	}
	p := plot.New()
	p.Title.Text = "free energy"
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = "average free energy"

	trainLine, err := plotter.NewLine(sampledXYs(train))
	if err != nil {
		return errors.WithStack(err)
	}
	p.Add(trainLine)
	p.Legend.Add("train", trainLine)

	if len(validation) > 0 {
		validLine, err := plotter.NewLine(sampledXYs(validation))
		if err != nil {
			return errors.WithStack(err)
		}
		validLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(validLine)
		p.Legend.Add("validation", validLine)
	}
	return errors.WithStack(p.Save(8*vg.Inch, 6*vg.Inch, filename))
}

func sampledXYs(history []float64) plotter.XYs {
	pts := make(plotter.XYs, len(history))
	for i, fe := range history {
		pts[i].X = float64(25 * (i + 1))
		pts[i].Y = fe
	}
	return pts
}
