package grbm

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/gorgonia/grbm/rbm"
)

// Diagnostics is a machine's training history in an export-friendly
// form. Free energies are sampled every 25th epoch, so their indices
// map to epochs 25, 50, 75...
type Diagnostics struct {
	Costs                  []float64
	TrainFreeEnergies      []float64
	ValidationFreeEnergies []float64
}

// DiagnosticsOf snapshots the histories of a machine.
func DiagnosticsOf(m *rbm.Machine) Diagnostics {
	return Diagnostics{
		Costs:                  m.Costs(),
		TrainFreeEnergies:      m.TrainFreeEnergies(),
		ValidationFreeEnergies: m.ValidationFreeEnergies(),
	}
}

// Dump writes the histories as CSV, one row per epoch. Free energy
// columns are empty on epochs where no sample was taken.
func (d Diagnostics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"epoch", "cost", "train_free_energy", "validation_free_energy"}); err != nil {
		return err
	}
	records := make([][]string, len(d.Costs))
	for epoch, cost := range d.Costs {
		records[epoch] = []string{
			strconv.Itoa(epoch),
			strconv.FormatFloat(cost, 'f', 6, 64),
			"",
			"",
		}
	}
	for i, fe := range d.TrainFreeEnergies {
		if epoch := 25 * (i + 1); epoch < len(records) {
			records[epoch][2] = strconv.FormatFloat(fe, 'f', 6, 64)
		}
	}
	for i, fe := range d.ValidationFreeEnergies {
		if epoch := 25 * (i + 1); epoch < len(records) {
			records[epoch][3] = strconv.FormatFloat(fe, 'f', 6, 64)
		}
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
