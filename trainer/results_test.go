package trainer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteBestScores(t *testing.T) {
	dir := t.TempDir()
	res := &Results{BestScores: []float64{0.51, -1.25, 0}}
	require.NoError(t, res.WriteBestScores(dir))

	data, err := os.ReadFile(filepath.Join(dir, BestScoresFile))
	require.NoError(t, err)
	require.Equal(t, "0.51\n-1.25\n0\n", string(data))
}

func TestMaskLegend(t *testing.T) {
	require.Equal(t, "mask=1", maskLegend(-1))
	require.Equal(t, "mask=25%", maskLegend(0.25))
	require.Equal(t, "mask=100%", maskLegend(1))
}

func TestLinePlotterWritesFiles(t *testing.T) {
	dir := t.TempDir()
	series := [][]float64{
		{0.1, 0.2, 0.3},
		{0.3, 0.2, 0.1},
	}
	probs := []float64{-1, 0.5}

	require.NoError(t, LinePlotter{}.Plot(series, probs, dir, "doc"))
	require.NoError(t, LinePlotter{}.Plot(series, probs, dir, "word"))

	for _, name := range []string{"mask_doc.png", "mask_word.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		require.Greater(t, info.Size(), int64(0))
	}
}
