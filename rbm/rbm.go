// Package rbm implements a restricted Boltzmann machine with Gaussian
// visible units and Bernoulli hidden units, trained by contrastive
// divergence over a block Gibbs sampling chain.
package rbm

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/tensor/native"
)

const initWeightScale = 0.1

// Machine owns the learned state of a Gaussian-Bernoulli RBM: the
// weight matrix, the two bias vectors, the per-visible-unit standard
// deviations, and the diagnostic histories of a training run.
//
// Parameters are only ever mutated by the per-batch update inside
// Train; everything handed out by the accessors is a copy.
type Machine struct {
	numVisible int
	numHidden  int

	w      *tensor.Dense // (numVisible, numHidden)
	hBias  []float64
	vBias  []float64
	vSigma []float64 // strictly positive, division by its square is everywhere

	velocity *tensor.Dense // previous weight update, for momentum

	costs                  []float64
	trainFreeEnergies      []float64
	validationFreeEnergies []float64
}

// New creates a machine with freshly initialized parameters: weights
// drawn from 0.1*N(0,1) using src, biases and standard deviations 1.
func New(numVisible, numHidden int, src *Source) (*Machine, error) {
	if numVisible < 1 || numHidden < 1 {
		return nil, errors.Errorf("invalid machine shape (%d visible, %d hidden): both must be positive", numVisible, numHidden)
	}
	if src == nil {
		return nil, errors.New("cannot initialize weights from a nil random source")
	}
	backing := make([]float64, numVisible*numHidden)
	for i := range backing {
		backing[i] = initWeightScale * src.Normal(0, 1)
	}
	return &Machine{
		numVisible: numVisible,
		numHidden:  numHidden,
		w:          tensor.New(tensor.WithShape(numVisible, numHidden), tensor.WithBacking(backing)),
		hBias:      ones(numHidden),
		vBias:      ones(numVisible),
		vSigma:     ones(numVisible),
		velocity:   tensor.New(tensor.Of(tensor.Float64), tensor.WithShape(numVisible, numHidden)),
	}, nil
}

// Snapshot is the serialized form of a Machine. The JSON field names
// are a compatibility contract; v_sigma is newer than the others and
// defaults to all ones when absent from an old snapshot.
type Snapshot struct {
	W          [][]float64 `json:"W"`
	HBias      []float64   `json:"h_bias"`
	VBias      []float64   `json:"v_bias"`
	VSigma     []float64   `json:"v_sigma,omitempty"`
	NumHidden  int         `json:"num_hidden"`
	NumVisible int         `json:"num_visible"`

	Costs                  []float64 `json:"costs"`
	TrainFreeEnergies      []float64 `json:"train_free_energies"`
	ValidationFreeEnergies []float64 `json:"validation_free_energies"`
}

// FromSnapshot restores a machine from a snapshot, validating every
// array shape against num_visible/num_hidden before anything is used.
func FromSnapshot(s Snapshot) (*Machine, error) {
	if s.NumVisible < 1 || s.NumHidden < 1 {
		return nil, errors.Errorf("invalid snapshot shape (%d visible, %d hidden): both must be positive", s.NumVisible, s.NumHidden)
	}
	if len(s.W) != s.NumVisible {
		return nil, errors.Errorf("snapshot weight matrix has %d rows, want %d", len(s.W), s.NumVisible)
	}
	backing := make([]float64, 0, s.NumVisible*s.NumHidden)
	for i, row := range s.W {
		if len(row) != s.NumHidden {
			return nil, errors.Errorf("snapshot weight row %d has %d columns, want %d", i, len(row), s.NumHidden)
		}
		backing = append(backing, row...)
	}
	if len(s.HBias) != s.NumHidden {
		return nil, errors.Errorf("snapshot hidden bias has length %d, want %d", len(s.HBias), s.NumHidden)
	}
	if len(s.VBias) != s.NumVisible {
		return nil, errors.Errorf("snapshot visible bias has length %d, want %d", len(s.VBias), s.NumVisible)
	}
	sigma := s.VSigma
	if sigma == nil {
		sigma = ones(s.NumVisible)
	}
	if len(sigma) != s.NumVisible {
		return nil, errors.Errorf("snapshot visible sigma has length %d, want %d", len(sigma), s.NumVisible)
	}
	for i, sd := range sigma {
		if sd <= 0 {
			return nil, errors.Errorf("snapshot visible sigma[%d] = %v: standard deviations must be strictly positive", i, sd)
		}
	}
	return &Machine{
		numVisible:             s.NumVisible,
		numHidden:              s.NumHidden,
		w:                      tensor.New(tensor.WithShape(s.NumVisible, s.NumHidden), tensor.WithBacking(backing)),
		hBias:                  copyFloats(s.HBias),
		vBias:                  copyFloats(s.VBias),
		vSigma:                 copyFloats(sigma),
		velocity:               tensor.New(tensor.Of(tensor.Float64), tensor.WithShape(s.NumVisible, s.NumHidden)),
		costs:                  copyFloats(s.Costs),
		trainFreeEnergies:      copyFloats(s.TrainFreeEnergies),
		validationFreeEnergies: copyFloats(s.ValidationFreeEnergies),
	}, nil
}

// Snapshot captures the machine for persistence. All slices are copies.
func (m *Machine) Snapshot() Snapshot {
	w := matrixView(m.w)
	rows := make([][]float64, m.numVisible)
	for i := range rows {
		rows[i] = copyFloats(w[i])
	}
	return Snapshot{
		W:                      rows,
		HBias:                  copyFloats(m.hBias),
		VBias:                  copyFloats(m.vBias),
		VSigma:                 copyFloats(m.vSigma),
		NumHidden:              m.numHidden,
		NumVisible:             m.numVisible,
		Costs:                  copyFloats(m.costs),
		TrainFreeEnergies:      copyFloats(m.trainFreeEnergies),
		ValidationFreeEnergies: copyFloats(m.validationFreeEnergies),
	}
}

func (m *Machine) NumVisible() int { return m.numVisible }
func (m *Machine) NumHidden() int  { return m.numHidden }

// Weights returns a copy of the weight matrix.
func (m *Machine) Weights() *tensor.Dense { return m.w.Clone().(*tensor.Dense) }

// HBias returns a copy of the hidden bias.
func (m *Machine) HBias() []float64 { return copyFloats(m.hBias) }

// VBias returns a copy of the visible bias.
func (m *Machine) VBias() []float64 { return copyFloats(m.vBias) }

// VSigma returns a copy of the visible standard deviations.
func (m *Machine) VSigma() []float64 { return copyFloats(m.vSigma) }

// SetVSigma replaces the visible standard deviations.
func (m *Machine) SetVSigma(sigma []float64) error {
	if len(sigma) != m.numVisible {
		return errors.Errorf("visible sigma has length %d, want %d", len(sigma), m.numVisible)
	}
	for i, sd := range sigma {
		if sd <= 0 {
			return errors.Errorf("visible sigma[%d] = %v: standard deviations must be strictly positive", i, sd)
		}
	}
	m.vSigma = copyFloats(sigma)
	return nil
}

// Costs is the per-epoch summed squared reconstruction error history.
func (m *Machine) Costs() []float64 { return copyFloats(m.costs) }

// TrainFreeEnergies is the periodically sampled training free energy history.
func (m *Machine) TrainFreeEnergies() []float64 { return copyFloats(m.trainFreeEnergies) }

// ValidationFreeEnergies is the periodically sampled validation free energy history.
func (m *Machine) ValidationFreeEnergies() []float64 { return copyFloats(m.validationFreeEnergies) }

// checkBatch validates that a visible batch agrees with the machine's shape.
func (m *Machine) checkBatch(v *tensor.Dense) error {
	if v == nil {
		return errors.New("nil visible batch")
	}
	if v.Dims() != 2 {
		return errors.Errorf("visible batch must be a matrix, got %d dimensions", v.Dims())
	}
	if v.Shape()[1] != m.numVisible {
		return errors.Errorf("visible batch has %d columns, want %d", v.Shape()[1], m.numVisible)
	}
	if v.Shape()[0] < 1 {
		return errors.New("empty visible batch")
	}
	return nil
}

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

func copyFloats(a []float64) []float64 {
	if a == nil {
		return nil
	}
	out := make([]float64, len(a))
	copy(out, a)
	return out
}

// matrixView exposes a 2D float64 dense as native row slices. Only a
// non-matrix or non-float64 tensor can make this fail, which is a
// programming error here.
func matrixView(d *tensor.Dense) [][]float64 {
	it, err := native.MatrixF64(d)
	if err != nil {
		panic(err)
	}
	return it
}
