// Package progress provides a minimal percent meter for long epochs.
package progress

import (
	"fmt"
	"io"
	"os"
)

// Meter prints the completed percentage of a fixed number of steps,
// rewriting a single line as it advances. It implements rbm.Progress.
type Meter struct {
	w       io.Writer
	total   int
	done    int
	lastPct int
}

// New returns a meter writing to w. A nil w means os.Stderr.
func New(w io.Writer) *Meter {
	if w == nil {
		w = os.Stderr
	}
	return &Meter{w: w}
}

// Start resets the meter for a run of total steps.
func (m *Meter) Start(total int) {
	m.total = total
	m.done = 0
	m.lastPct = -1
	m.print()
}

// Step marks one step done.
func (m *Meter) Step() {
	m.done++
	m.print()
}

func (m *Meter) print() {
	if m.total <= 0 {
		return
	}
	pct := m.done * 100 / m.total
	if pct == m.lastPct {
		return
	}
	m.lastPct = pct
	fmt.Fprintf(m.w, "\r[%3d%%]", pct)
	if pct >= 100 {
		fmt.Fprintln(m.w)
	}
}
