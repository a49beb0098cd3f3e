package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCostCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cost.png")
	require.NoError(t, WriteCostCurve([]float64{10, 6, 4, 3.5, 3.2}, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteCostCurveEmpty(t *testing.T) {
	err := WriteCostCurve(nil, filepath.Join(t.TempDir(), "cost.png"))
	assert.Error(t, err)
}

func TestWriteFreeEnergyCurves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fe.png")
	require.NoError(t, WriteFreeEnergyCurves(
		[]float64{-10, -12, -13},
		[]float64{-9, -10, -10.5},
		path,
	))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteFreeEnergyCurvesTrainOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fe.png")
	require.NoError(t, WriteFreeEnergyCurves([]float64{-10, -12}, nil, path))

	_, err := os.Stat(path)
	require.NoError(t, err)
}
