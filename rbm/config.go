package rbm

import (
	"log"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

const (
	minAlpha    = 0.01 // learning rate floor
	maxMomentum = 0.9  // momentum ceiling, also the schedule's target
	annealStep  = 0.01 // per-interval change of both hyperparameters
)

// TrainConfig are the hyperparameters and hooks of one training run.
type TrainConfig struct {
	MaxEpochs int
	BatchSize int
	Alpha     float64 // learning rate
	Momentum  float64
	GibbsK    int // gibbs chain length per batch

	// extensions
	Validation *tensor.Dense // optional held-out set for free energy tracking
	Display    Renderer      // optional per-epoch reconstruction display
	Progress   Progress      // optional per-batch progress meter
	Logger     *log.Logger
	Verbose    bool

	Src *Source
}

// DefaultTrainConfig mirrors the historical defaults of this model.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		MaxEpochs: 100,
		BatchSize: 1,
		Alpha:     0.1,
		Momentum:  0.5,
		GibbsK:    1,
	}
}

// Validate rejects hyperparameters before any training state is
// touched. The Alpha and Momentum bounds are strict: the annealing
// intervals divide by (Alpha-0.01)/0.01 and (0.9-Momentum)/0.01, so
// configurations sitting exactly on a bound are undefined, not merely
// degenerate.
func (c TrainConfig) Validate() error {
	if c.MaxEpochs < 1 {
		return errors.Errorf("max epochs must be at least 1, got %d", c.MaxEpochs)
	}
	if c.BatchSize < 1 {
		return errors.Errorf("batch size must be at least 1, got %d", c.BatchSize)
	}
	if c.GibbsK < 1 {
		return errors.Errorf("gibbs chain length must be at least 1, got %d", c.GibbsK)
	}
	if c.Alpha <= minAlpha {
		return errors.Errorf("learning rate %v must exceed the %v floor: the decay interval divides by (alpha-%v)", c.Alpha, minAlpha, minAlpha)
	}
	if c.Momentum < 0 {
		return errors.Errorf("momentum %v must not be negative", c.Momentum)
	}
	if c.Momentum >= maxMomentum {
		return errors.Errorf("momentum %v must be below the %v ceiling: the growth interval divides by (%v-momentum)", c.Momentum, maxMomentum, maxMomentum)
	}
	return nil
}

// schedule anneals the learning rate downwards and the momentum
// upwards across epochs, each on its own fixed interval.
type schedule struct {
	alpha    float64
	momentum float64

	alphaEvery    int
	momentumEvery int
}

func newSchedule(c TrainConfig) (*schedule, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	alphaSteps := (c.Alpha - minAlpha) / annealStep
	momentumSteps := (maxMomentum - c.Momentum) / annealStep
	return &schedule{
		alpha:         c.Alpha,
		momentum:      c.Momentum,
		alphaEvery:    int(float64(c.MaxEpochs)/alphaSteps) + 1,
		momentumEvery: int(float64(c.MaxEpochs)/momentumSteps) + 1,
	}, nil
}

// step advances the schedule past the given epoch. Epoch 0 never
// triggers either adjustment.
func (s *schedule) step(epoch int) {
	if epoch == 0 {
		return
	}
	if epoch%s.momentumEvery == 0 && s.momentum < maxMomentum {
		s.momentum += annealStep
		if s.momentum > maxMomentum {
			s.momentum = maxMomentum
		}
	}
	if epoch%s.alphaEvery == 0 && s.alpha > minAlpha {
		s.alpha -= annealStep
		if s.alpha < minAlpha {
			s.alpha = minAlpha
		}
	}
}
