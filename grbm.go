// Package grbm trains Gaussian-Bernoulli restricted Boltzmann machines
// by contrastive divergence, and provides the batching, persistence and
// diagnostic collaborators around the core in package rbm.
package grbm

import (
	"encoding/json"
	"io/ioutil"
	"log"
	"time"

	"github.com/gorgonia/grbm/internal/progress"
	"github.com/gorgonia/grbm/rbm"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Config is the configuration bundle of one training job, as read from
// a JSON config file.
type Config struct {
	NumVisible int         `json:"num_visible"`
	NumHidden  int         `json:"num_hidden"`
	Dataset    [][]float64 `json:"dataset"`
	Validation [][]float64 `json:"validation,omitempty"`
	MaxEpochs  int         `json:"max_epochs"`
	Alpha      float64     `json:"alpha"`
	Momentum   float64     `json:"m"`
	BatchSize  int         `json:"batch_size"`
	GibbsK     int         `json:"gibbs_k"`
	Verbose    bool        `json:"verbose"`
	Outfile    string      `json:"outfile"`
	Seed       int64       `json:"seed,omitempty"`

	// extensions
	Batcher  rbm.Batcher  `json:"-"`
	Display  rbm.Renderer `json:"-"`
	Progress rbm.Progress `json:"-"`
	Logger   *log.Logger  `json:"-"`
}

// Validate rejects a bundle whose dataset cannot possibly train the
// declared machine. Hyperparameter ranges are validated again by the
// core before any state is touched.
func (c Config) Validate() error {
	if c.NumVisible < 1 || c.NumHidden < 1 {
		return errors.Errorf("invalid machine shape (%d visible, %d hidden): both must be positive", c.NumVisible, c.NumHidden)
	}
	if len(c.Dataset) == 0 {
		return errors.New("empty dataset")
	}
	for i, row := range c.Dataset {
		if len(row) != c.NumVisible {
			return errors.Errorf("dataset row %d has %d values, want %d", i, len(row), c.NumVisible)
		}
	}
	for i, row := range c.Validation {
		if len(row) != c.NumVisible {
			return errors.Errorf("validation row %d has %d values, want %d", i, len(row), c.NumVisible)
		}
	}
	return nil
}

// LoadConfig reads a JSON configuration bundle from path.
func LoadConfig(path string) (Config, error) {
	var c Config
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return c, errors.WithStack(err)
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return c, errors.Wrapf(err, "cannot parse config %q", path)
	}
	if err := c.Validate(); err != nil {
		return c, errors.Wrapf(err, "invalid config %q", path)
	}
	return c, nil
}

// GRBM ties a machine to its training collaborators. It is the entry
// point of the API.
type GRBM struct {
	*rbm.Machine

	conf    Config
	src     *rbm.Source
	batcher rbm.Batcher
}

// New constructs a fresh machine from a config bundle. A zero Seed
// means a time-based one; set it for reproducible runs.
func New(conf Config) (*GRBM, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := rbm.NewSource(seed)
	m, err := rbm.New(conf.NumVisible, conf.NumHidden, src)
	if err != nil {
		return nil, err
	}
	batcher := conf.Batcher
	if batcher == nil {
		batcher = SliceBatcher{}
	}
	if conf.Verbose && conf.Progress == nil {
		conf.Progress = progress.New(nil)
	}
	return &GRBM{
		Machine: m,
		conf:    conf,
		src:     src,
		batcher: batcher,
	}, nil
}

// Train runs the configured training job to completion.
func (g *GRBM) Train() error {
	data, err := denseFromRows(g.conf.Dataset)
	if err != nil {
		return errors.Wrap(err, "dataset")
	}
	var validation *tensor.Dense
	if len(g.conf.Validation) > 0 {
		if validation, err = denseFromRows(g.conf.Validation); err != nil {
			return errors.Wrap(err, "validation set")
		}
	}
	return rbm.Train(g.Machine, data, g.batcher, rbm.TrainConfig{
		MaxEpochs:  g.conf.MaxEpochs,
		BatchSize:  g.conf.BatchSize,
		Alpha:      g.conf.Alpha,
		Momentum:   g.conf.Momentum,
		GibbsK:     g.conf.GibbsK,
		Validation: validation,
		Display:    g.conf.Display,
		Progress:   g.conf.Progress,
		Logger:     g.conf.Logger,
		Verbose:    g.conf.Verbose,
		Src:        g.src,
	})
}

// denseFromRows copies a row-oriented dataset into a dense matrix. All
// rows must be the same width.
func denseFromRows(rows [][]float64) (*tensor.Dense, error) {
	if len(rows) == 0 {
		return nil, errors.New("no rows")
	}
	width := len(rows[0])
	if width == 0 {
		return nil, errors.New("zero-width rows")
	}
	backing := make([]float64, 0, len(rows)*width)
	for i, row := range rows {
		if len(row) != width {
			return nil, errors.Errorf("row %d has %d values, want %d", i, len(row), width)
		}
		backing = append(backing, row...)
	}
	return tensor.New(tensor.WithShape(len(rows), width), tensor.WithBacking(backing)), nil
}
