package rbm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShapes(t *testing.T) {
	m, err := New(4, 3, NewSource(1))
	require.NoError(t, err)

	assert.Equal(t, 4, m.NumVisible())
	assert.Equal(t, 3, m.NumHidden())
	assert.Equal(t, []int{4, 3}, []int(m.w.Shape()))
	assert.Equal(t, []int{4, 3}, []int(m.velocity.Shape()))
	assert.Len(t, m.hBias, 3)
	assert.Len(t, m.vBias, 4)
	assert.Len(t, m.vSigma, 4)

	for _, b := range m.hBias {
		assert.Equal(t, 1.0, b)
	}
	for _, b := range m.vBias {
		assert.Equal(t, 1.0, b)
	}
	for _, sd := range m.vSigma {
		assert.Equal(t, 1.0, sd)
	}
	for _, row := range matrixView(m.velocity) {
		for _, v := range row {
			assert.Equal(t, 0.0, v)
		}
	}
	assert.Empty(t, m.Costs())
}

func TestNewInvalid(t *testing.T) {
	_, err := New(0, 3, NewSource(1))
	assert.Error(t, err)
	_, err = New(4, -1, NewSource(1))
	assert.Error(t, err)
	_, err = New(4, 3, nil)
	assert.Error(t, err)
}

func TestNewDeterministicInit(t *testing.T) {
	a, err := New(5, 4, NewSource(42))
	require.NoError(t, err)
	b, err := New(5, 4, NewSource(42))
	require.NoError(t, err)
	assert.Equal(t, a.Snapshot(), b.Snapshot())

	c, err := New(5, 4, NewSource(43))
	require.NoError(t, err)
	assert.NotEqual(t, a.Snapshot().W, c.Snapshot().W)
}

func TestFromSnapshot(t *testing.T) {
	snap := Snapshot{
		W:          [][]float64{{0.1, 0.2}, {0.3, 0.4}, {0.5, 0.6}},
		HBias:      []float64{1, 2},
		VBias:      []float64{3, 4, 5},
		VSigma:     []float64{0.5, 1, 2},
		NumHidden:  2,
		NumVisible: 3,
		Costs:      []float64{9.5, 7.25},
	}
	m, err := FromSnapshot(snap)
	require.NoError(t, err)

	assert.Equal(t, snap.W, m.Snapshot().W)
	assert.Equal(t, snap.HBias, m.HBias())
	assert.Equal(t, snap.VBias, m.VBias())
	assert.Equal(t, snap.VSigma, m.VSigma())
	assert.Equal(t, snap.Costs, m.Costs())
}

func TestFromSnapshotDefaultsSigma(t *testing.T) {
	m, err := FromSnapshot(Snapshot{
		W:          [][]float64{{0}, {0}},
		HBias:      []float64{0},
		VBias:      []float64{0, 0},
		NumHidden:  1,
		NumVisible: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, m.VSigma())
}

func TestFromSnapshotInvalid(t *testing.T) {
	base := func() Snapshot {
		return Snapshot{
			W:          [][]float64{{0}, {0}},
			HBias:      []float64{0},
			VBias:      []float64{0, 0},
			NumHidden:  1,
			NumVisible: 2,
		}
	}

	tests := []struct {
		name   string
		mangle func(*Snapshot)
	}{
		{"weight rows", func(s *Snapshot) { s.W = s.W[:1] }},
		{"weight cols", func(s *Snapshot) { s.W[1] = []float64{0, 0} }},
		{"hidden bias", func(s *Snapshot) { s.HBias = []float64{0, 0} }},
		{"visible bias", func(s *Snapshot) { s.VBias = []float64{0} }},
		{"sigma length", func(s *Snapshot) { s.VSigma = []float64{1} }},
		{"sigma zero", func(s *Snapshot) { s.VSigma = []float64{1, 0} }},
		{"sigma negative", func(s *Snapshot) { s.VSigma = []float64{1, -0.5} }},
		{"zero visible", func(s *Snapshot) { s.NumVisible = 0 }},
		{"zero hidden", func(s *Snapshot) { s.NumHidden = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := base()
			tc.mangle(&s)
			_, err := FromSnapshot(s)
			assert.Error(t, err)
		})
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	m, err := New(2, 2, NewSource(1))
	require.NoError(t, err)
	snap := m.Snapshot()
	snap.W[0][0] = 999
	snap.HBias[0] = 999
	assert.NotEqual(t, 999.0, m.Snapshot().W[0][0])
	assert.NotEqual(t, 999.0, m.HBias()[0])
}

func TestSetVSigma(t *testing.T) {
	m, err := New(2, 1, NewSource(1))
	require.NoError(t, err)

	require.NoError(t, m.SetVSigma([]float64{0.5, 2}))
	assert.Equal(t, []float64{0.5, 2}, m.VSigma())

	assert.Error(t, m.SetVSigma([]float64{1}))
	assert.Error(t, m.SetVSigma([]float64{1, 0}))
	assert.Error(t, m.SetVSigma([]float64{-1, 1}))
}
