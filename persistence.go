package grbm

import (
	"encoding/json"
	"os"

	"github.com/gorgonia/grbm/rbm"
	"github.com/pkg/errors"
)

// Save writes a JSON snapshot of the machine into filename. The field
// layout is the persistence contract: W, h_bias, v_bias, v_sigma,
// num_hidden, num_visible, and the three diagnostic histories.
func Save(m *rbm.Machine, filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(m.Snapshot()); err != nil {
		return errors.Wrapf(err, "cannot encode snapshot to %q", filename)
	}
	return nil
}

// Load restores a machine from a JSON snapshot written by Save.
// Snapshots predating the v_sigma field load with all standard
// deviations at 1.
func Load(filename string) (*rbm.Machine, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	var snap rbm.Snapshot
	dec := json.NewDecoder(f)
	if err := dec.Decode(&snap); err != nil {
		return nil, errors.Wrapf(err, "cannot decode snapshot %q", filename)
	}
	m, err := rbm.FromSnapshot(snap)
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot %q", filename)
	}
	return m, nil
}

// Save writes the wrapped machine to the configured outfile, or to
// filename when given.
func (g *GRBM) Save(filename string) error {
	if filename == "" {
		filename = g.conf.Outfile
	}
	if filename == "" {
		return errors.New("no output file configured")
	}
	return Save(g.Machine, filename)
}
