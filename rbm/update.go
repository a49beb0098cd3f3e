package rbm

import (
	"gorgonia.org/vecf64"
)

// applyUpdate folds one batch's contrastive divergence statistics into
// the parameters. The chain statistics are fully computed before this
// is called, so the update sees a consistent pre-batch snapshot of the
// model. b is the batch's actual row count, which may be shorter than
// the configured batch size on the dataset's tail.
//
//	dW     = alpha * assocDelta/b + momentum * velocity
//	hBias += alpha * columnMean(hBiasDelta)
//	vBias += alpha * columnMean((batch - vNew)/sigma^2)
func (m *Machine) applyUpdate(res gibbsResult, batch [][]float64, alpha, momentum float64) {
	b := float64(len(batch))

	w := matrixView(m.w)
	vel := matrixView(m.velocity)
	ad := matrixView(res.assocDelta)
	for x := range w {
		for j := range w[x] {
			dw := alpha*ad[x][j]/b + momentum*vel[x][j]
			w[x][j] += dw
			vel[x][j] = dw
		}
	}

	hd := matrixView(res.hBiasDelta)
	hGrad := make([]float64, m.numHidden)
	for i := range hd {
		vecf64.Add(hGrad, hd[i])
	}
	vecf64.Scale(hGrad, alpha/b)
	vecf64.Add(m.hBias, hGrad)

	// variance-weighted reconstruction error, the Gaussian unit's
	// natural parameterization
	vn := matrixView(res.vNew)
	vGrad := make([]float64, m.numVisible)
	for i := range vn {
		for x := 0; x < m.numVisible; x++ {
			vGrad[x] += (batch[i][x] - vn[i][x]) / (m.vSigma[x] * m.vSigma[x])
		}
	}
	vecf64.Scale(vGrad, alpha/b)
	vecf64.Add(m.vBias, vGrad)
}

// reconstructionError is the summed squared error between a batch and
// its reconstruction.
func reconstructionError(batch, recon [][]float64) float64 {
	var total float64
	for i := range batch {
		for x := range batch[i] {
			d := batch[i][x] - recon[i][x]
			total += d * d
		}
	}
	return total
}
