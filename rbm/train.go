package rbm

import (
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// free energies are sampled every this many epochs
const freeEnergyEvery = 25

// Batcher splits a dataset into the ordered batches of one epoch. A
// batcher must yield the same batches for the same inputs every time,
// so a seeded run is reproducible.
type Batcher interface {
	Batches(data *tensor.Dense, size int) ([]*tensor.Dense, error)
}

// Renderer displays a single reconstructed visible vector. A purely
// diagnostic hook, invoked at most once per epoch.
type Renderer interface {
	Render(v []float64) error
}

// Progress observes per-batch progress within an epoch.
type Progress interface {
	Start(total int)
	Step()
}

// gibbsResult carries one chain's statistics from the sampler to the
// parameter update.
type gibbsResult struct {
	assocDelta *tensor.Dense
	hBiasDelta *tensor.Dense
	vNew       *tensor.Dense
	hProbsNew  *tensor.Dense
}

// Train fits the machine to data by contrastive divergence. For every
// batch of every epoch it runs a CD-k chain, applies the momentum
// update, and accumulates the squared reconstruction error; per-epoch
// totals land in the machine's cost history. Every 25th epoch the
// average free energy of the first batch (and of conf.Validation, when
// supplied) is recorded. The learning rate decays and the momentum
// grows on the schedule derived from conf.
//
// Epochs are atomic with respect to the histories: Train either
// completes an epoch in full or returns an error without recording it.
func Train(m *Machine, data *tensor.Dense, batcher Batcher, conf TrainConfig) error {
	if m == nil {
		return errors.New("cannot train a nil machine")
	}
	if batcher == nil {
		return errors.New("cannot train without a batcher")
	}
	if err := m.checkBatch(data); err != nil {
		return errors.Wrap(err, "training set")
	}
	if conf.Validation != nil {
		if err := m.checkBatch(conf.Validation); err != nil {
			return errors.Wrap(err, "validation set")
		}
	}
	sched, err := newSchedule(conf)
	if err != nil {
		return err
	}

	src := conf.Src
	if src == nil {
		src = NewSource(time.Now().UnixNano())
	}
	logger := conf.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", log.Ltime)
	}

	batches, err := batcher.Batches(data, conf.BatchSize)
	if err != nil {
		return errors.Wrap(err, "batching failed")
	}
	if len(batches) == 0 {
		return errors.New("batcher produced no batches")
	}

	for epoch := 0; epoch < conf.MaxEpochs; epoch++ {
		if conf.Verbose && conf.Progress != nil {
			conf.Progress.Start(len(batches))
		}
		var total float64
		var lastRecon *tensor.Dense
		for _, batch := range batches {
			if conf.Verbose && conf.Progress != nil {
				conf.Progress.Step()
			}
			ad, hd, vNew, hProbsNew, err := m.GibbsSampling(batch, conf.GibbsK, src)
			if err != nil {
				return err
			}
			rows := matrixView(batch.Materialize().(*tensor.Dense))
			m.applyUpdate(gibbsResult{ad, hd, vNew, hProbsNew}, rows, sched.alpha, sched.momentum)
			total += reconstructionError(rows, matrixView(vNew)) / float64(len(rows))
			lastRecon = vNew
		}

		if conf.Display != nil && conf.Verbose && lastRecon != nil {
			recon := matrixView(lastRecon)
			logger.Println("reconstructed sample from the training set")
			if err := conf.Display.Render(copyFloats(recon[src.intn(len(recon))])); err != nil {
				return errors.Wrap(err, "display failed")
			}
		}
		if conf.Verbose {
			logger.Printf("epoch %d: error is %v", epoch, total)
		}

		if epoch%freeEnergyEvery == 0 && epoch > 0 {
			fe, err := m.AverageFreeEnergy(batches[0])
			if err != nil {
				return err
			}
			m.trainFreeEnergies = append(m.trainFreeEnergies, fe)
			if conf.Validation != nil {
				fe, err := m.AverageFreeEnergy(conf.Validation)
				if err != nil {
					return err
				}
				m.validationFreeEnergies = append(m.validationFreeEnergies, fe)
			}
		}

		sched.step(epoch)
		m.costs = append(m.costs, total)
	}
	return nil
}
