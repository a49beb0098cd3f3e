package grbm

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// SliceBatcher yields contiguous batches of the dataset in row order,
// covering it exactly once. The final batch may be shorter when the
// dataset does not divide evenly; the core's math tolerates a dynamic
// leading dimension, so it is kept rather than dropped.
type SliceBatcher struct{}

// Batches implements rbm.Batcher.
func (SliceBatcher) Batches(data *tensor.Dense, size int) ([]*tensor.Dense, error) {
	if data == nil {
		return nil, errors.New("nil dataset")
	}
	if data.Dims() != 2 {
		return nil, errors.Errorf("dataset must be a matrix, got %d dimensions", data.Dims())
	}
	if size < 1 {
		return nil, errors.Errorf("batch size must be at least 1, got %d", size)
	}
	n := data.Shape()[0]
	var s slicer
	batches := make([]*tensor.Dense, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		view := s.Slice(data, sli(start, end))
		if s.err != nil {
			return nil, s.err
		}
		b := view.Materialize().(*tensor.Dense)
		// a one-row range collapses the leading dimension; restore it
		// so batches always present as (rows, numVisible) matrices
		if b.Dims() == 1 {
			if err := b.Reshape(end-start, data.Shape()[1]); err != nil {
				return nil, errors.Wrap(err, "reshape batch")
			}
		}
		batches = append(batches, b)
	}
	return batches, nil
}

type slicer struct {
	v   tensor.View
	err error
}

func (s *slicer) Slice(a *tensor.Dense, slices ...tensor.Slice) *tensor.Dense {
	if s.err != nil {
		return nil
	}
	if s.v, s.err = a.Slice(slices...); s.err != nil {
		s.err = errors.Wrapf(s.err, "Slicer failed") // get a stack trace
		return nil
	}
	return s.v.(*tensor.Dense)
}

type rs struct {
	start, end, step int
}

func (s rs) Start() int { return s.start }
func (s rs) End() int   { return s.end }
func (s rs) Step() int  { return s.step }

// sli creates a ranged slice. It takes an optional step param.
func sli(start, end int, opts ...int) rs {
	step := 1
	if len(opts) > 0 {
		step = opts[0]
	}
	return rs{
		start: start,
		end:   end,
		step:  step,
	}
}
