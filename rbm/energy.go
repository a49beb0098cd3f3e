package rbm

import (
	"math"

	"gorgonia.org/tensor"
)

// AverageFreeEnergy computes the mean free energy over the rows of a
// data sample. It is a monitoring signal, not part of the gradient
// path: a widening gap between the training and validation values is
// the classic overfitting symptom, independent of reconstruction error.
func (m *Machine) AverageFreeEnergy(data *tensor.Dense) (float64, error) {
	if err := m.checkBatch(data); err != nil {
		return 0, err
	}
	rows := matrixView(data.Materialize().(*tensor.Dense))
	w := matrixView(m.w)
	var total float64
	for i := range rows {
		var hiddenTerm, visibleTerm float64
		for j := 0; j < m.numHidden; j++ {
			act := m.hBias[j]
			for x := 0; x < m.numVisible; x++ {
				act += rows[i][x] * w[x][j]
			}
			hiddenTerm += softplus(act)
		}
		for x := 0; x < m.numVisible; x++ {
			visibleTerm += rows[i][x] * m.vBias[x]
		}
		total += -hiddenTerm - visibleTerm
	}
	return total / float64(len(rows)), nil
}

// softplus computes log(1+exp(x)). The naive form overflows for large
// activations; this one never does.
func softplus(x float64) float64 {
	return math.Max(0, x) + math.Log1p(math.Exp(-math.Abs(x)))
}
