package rbm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageFreeEnergyGolden(t *testing.T) {
	// with W=0 and zero biases the free energy collapses to
	// -numHidden*log(2) for any input
	m, err := FromSnapshot(Snapshot{
		W:          [][]float64{{0}, {0}},
		HBias:      []float64{0},
		VBias:      []float64{0, 0},
		NumHidden:  1,
		NumVisible: 2,
	})
	require.NoError(t, err)

	fe, err := m.AverageFreeEnergy(testBatch(t, [][]float64{{0, 0}}))
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(2), fe, 1e-12)
}

func TestAverageFreeEnergyClosedForm(t *testing.T) {
	// W=0 still: free energy is -sum softplus(hBias) - data.vBias
	m, err := FromSnapshot(Snapshot{
		W:          [][]float64{{0, 0}, {0, 0}},
		HBias:      []float64{1, -2},
		VBias:      []float64{0.5, -0.25},
		NumHidden:  2,
		NumVisible: 2,
	})
	require.NoError(t, err)

	fe, err := m.AverageFreeEnergy(testBatch(t, [][]float64{{2, 4}}))
	require.NoError(t, err)

	want := -(math.Log1p(math.Exp(1)) + math.Log1p(math.Exp(-2))) - (2*0.5 + 4*-0.25)
	assert.InDelta(t, want, fe, 1e-12)
}

func TestAverageFreeEnergyAveragesRows(t *testing.T) {
	m, err := FromSnapshot(Snapshot{
		W:          [][]float64{{0}},
		HBias:      []float64{0},
		VBias:      []float64{1},
		NumHidden:  1,
		NumVisible: 1,
	})
	require.NoError(t, err)

	// rows contribute -log(2)-v each; mean over v in {1, 3} is -log(2)-2
	fe, err := m.AverageFreeEnergy(testBatch(t, [][]float64{{1}, {3}}))
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(2)-2, fe, 1e-12)
}

func TestAverageFreeEnergyStableForLargeActivations(t *testing.T) {
	// naive log(1+exp(wx_b)) overflows at wx_b=1001; the stable
	// softplus returns wx_b itself to machine precision
	m, err := FromSnapshot(Snapshot{
		W:          [][]float64{{500}, {500}},
		HBias:      []float64{1},
		VBias:      []float64{1, 1},
		NumHidden:  1,
		NumVisible: 2,
	})
	require.NoError(t, err)

	fe, err := m.AverageFreeEnergy(testBatch(t, [][]float64{{1, 1}}))
	require.NoError(t, err)
	require.False(t, math.IsInf(fe, 0))
	require.False(t, math.IsNaN(fe))
	assert.InDelta(t, -1003, fe, 1e-9)
}

func TestAverageFreeEnergyShapeMismatch(t *testing.T) {
	m, err := New(3, 2, NewSource(1))
	require.NoError(t, err)
	_, err = m.AverageFreeEnergy(testBatch(t, [][]float64{{1, 2}}))
	assert.Error(t, err)
}

func TestSoftplus(t *testing.T) {
	assert.InDelta(t, math.Log(2), softplus(0), 1e-12)
	assert.InDelta(t, 1000, softplus(1000), 1e-9)
	assert.InDelta(t, 0, softplus(-1000), 1e-12)
	// agrees with the naive form where the naive form is safe
	for _, x := range []float64{-20, -3, -0.5, 0.5, 3, 20} {
		assert.InDelta(t, math.Log(1+math.Exp(x)), softplus(x), 1e-12)
	}
}
