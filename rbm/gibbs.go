package rbm

import (
	"math"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
	"gorgonia.org/vecf64"
)

// GibbsSampling runs k alternating steps of visible->hidden->visible
// sampling starting from the observed batch v0, and returns the
// contrastive divergence statistics of the chain:
//
//	assocDelta: positive minus negative associations, each rescaled
//	            row-wise by 1/sigma^2 (variance-normalized statistics)
//	hBiasDelta: positive-phase hidden probabilities minus the final ones
//	vNew:       the final Gaussian-sampled visible reconstruction
//	hProbsNew:  hidden probabilities given that reconstruction
//
// The positive phase is computed once and reused on the first chain
// step. All randomness comes from src.
func (m *Machine) GibbsSampling(v0 *tensor.Dense, k int, src *Source) (assocDelta, hBiasDelta, vNew, hProbsNew *tensor.Dense, err error) {
	if err = m.checkBatch(v0); err != nil {
		return nil, nil, nil, nil, err
	}
	if k < 1 {
		return nil, nil, nil, nil, errors.Errorf("gibbs chain length must be at least 1, got %d", k)
	}
	if src == nil {
		return nil, nil, nil, nil, errors.New("cannot sample from a nil random source")
	}

	v0rows := matrixView(v0.Materialize().(*tensor.Dense))

	// Positive contrastive divergence phase.
	hProbs0, hStates0 := m.hiddenGiven(v0rows, src)
	pos := m.associations(v0rows, matrixView(hStates0))

	var neg *tensor.Dense
	hStates := hStates0
	vCur := v0rows
	for step := 0; step < k; step++ {
		if step > 0 {
			// past the first step the chain resamples the hidden
			// layer from the current reconstruction
			_, hStates = m.hiddenGiven(vCur, src)
		}
		vNew = m.visibleGiven(matrixView(hStates), src)
		vCur = matrixView(vNew)

		// Negative contrastive divergence phase.
		var hStatesNew *tensor.Dense
		hProbsNew, hStatesNew = m.hiddenGiven(vCur, src)
		neg = m.associations(vCur, matrixView(hStatesNew))
	}

	m.scaleByVariance(pos)
	m.scaleByVariance(neg)

	ad, err := tensor.Sub(pos, neg)
	if err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "association delta")
	}
	hd, err := tensor.Sub(hProbs0, hProbsNew)
	if err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "hidden probability delta")
	}
	return ad.(*tensor.Dense), hd.(*tensor.Dense), vNew, hProbsNew, nil
}

// SampleHiddenFromVisible drives the hidden layer once from a visible
// batch, returning the unit probabilities and their Bernoulli states.
func (m *Machine) SampleHiddenFromVisible(v *tensor.Dense, src *Source) (probs, states *tensor.Dense, err error) {
	if err = m.checkBatch(v); err != nil {
		return nil, nil, err
	}
	if src == nil {
		return nil, nil, errors.New("cannot sample from a nil random source")
	}
	probs, states = m.hiddenGiven(matrixView(v.Materialize().(*tensor.Dense)), src)
	return probs, states, nil
}

// SampleVisibleFromHidden reconstructs the visible layer from a batch
// of hidden states, drawing each unit from a Gaussian centred on its
// activation with the unit's own standard deviation.
func (m *Machine) SampleVisibleFromHidden(h *tensor.Dense, src *Source) (*tensor.Dense, error) {
	if h == nil {
		return nil, errors.New("nil hidden batch")
	}
	if h.Dims() != 2 {
		return nil, errors.Errorf("hidden batch must be a matrix, got %d dimensions", h.Dims())
	}
	if h.Shape()[1] != m.numHidden {
		return nil, errors.Errorf("hidden batch has %d columns, want %d", h.Shape()[1], m.numHidden)
	}
	if src == nil {
		return nil, errors.New("cannot sample from a nil random source")
	}
	return m.visibleGiven(matrixView(h.Materialize().(*tensor.Dense)), src), nil
}

// hiddenGiven computes p(h|v) for every row of v and draws the
// matching Bernoulli states. The visible input is divided by its
// variance before the weighted sum, as Gaussian visible units require.
func (m *Machine) hiddenGiven(v [][]float64, src *Source) (probs, states *tensor.Dense) {
	b := len(v)
	w := matrixView(m.w)
	probs = newMatrix(b, m.numHidden)
	states = newMatrix(b, m.numHidden)
	pv := matrixView(probs)
	sv := matrixView(states)
	for i := 0; i < b; i++ {
		for j := 0; j < m.numHidden; j++ {
			act := m.hBias[j]
			for x := 0; x < m.numVisible; x++ {
				act += v[i][x] / (m.vSigma[x] * m.vSigma[x]) * w[x][j]
			}
			p := sigmoid(act)
			pv[i][j] = p
			if p > src.Uniform() {
				sv[i][j] = 1
			}
		}
	}
	return probs, states
}

// visibleGiven samples a visible batch given hidden states. Gaussian
// visible units sample around the activation rather than squashing it.
func (m *Machine) visibleGiven(h [][]float64, src *Source) *tensor.Dense {
	b := len(h)
	w := matrixView(m.w)
	out := newMatrix(b, m.numVisible)
	ov := matrixView(out)
	for i := 0; i < b; i++ {
		for x := 0; x < m.numVisible; x++ {
			mean := m.vBias[x]
			for j := 0; j < m.numHidden; j++ {
				mean += h[i][j] * w[x][j]
			}
			ov[i][x] = src.Normal(mean, m.vSigma[x])
		}
	}
	return out
}

// associations computes v^T . h, the (numVisible, numHidden) sufficient
// statistic of one phase of contrastive divergence.
func (m *Machine) associations(v, h [][]float64) *tensor.Dense {
	out := newMatrix(m.numVisible, m.numHidden)
	ov := matrixView(out)
	for i := range v {
		for x := 0; x < m.numVisible; x++ {
			vix := v[i][x]
			if vix == 0 {
				continue
			}
			for j := 0; j < m.numHidden; j++ {
				ov[x][j] += vix * h[i][j]
			}
		}
	}
	return out
}

// scaleByVariance rescales every visible row of an association matrix
// by 1/sigma^2. Every row, including the last: a machine with a single
// visible unit still gets its one row normalized.
func (m *Machine) scaleByVariance(d *tensor.Dense) {
	rows := matrixView(d)
	for x := range rows {
		vecf64.Scale(rows[x], 1/(m.vSigma[x]*m.vSigma[x]))
	}
}

// sigmoid is the logistic function, arranged so exp never overflows.
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

func newMatrix(r, c int) *tensor.Dense {
	return tensor.New(tensor.Of(tensor.Float64), tensor.WithShape(r, c))
}
