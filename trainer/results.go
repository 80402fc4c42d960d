package trainer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/TrellixVulnTeam/BERT-DKG-276Q/dataset"
)

// BestScoresFile holds one best score per swept configuration, in sweep
// order.
const BestScoresFile = "best_scores.txt"

// Results collects the sweep outputs: per-configuration best scores and the
// per-epoch embedding-mean series used as a coarse training-health signal.
// Results does no selection of its own; it is the handoff boundary between
// the sweep loop and persistence/plotting.
type Results struct {
	Probs      []float64
	BestScores []float64
	DocMeans   [][]float64 // one series per configuration, numEpochs+1 points
	WordMeans  [][]float64
}

// WriteBestScores persists the best-score list verbatim, one value per line.
func (r *Results) WriteBestScores(dir string) error {
	var b strings.Builder
	for _, s := range r.BestScores {
		b.WriteString(strconv.FormatFloat(s, 'g', -1, 64))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(filepath.Join(dir, BestScoresFile), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("trainer: write best scores: %w", err)
	}
	return nil
}

// Plotter renders one embedding-drift figure per embedding kind
// ("doc"/"word").
type Plotter interface {
	Plot(series [][]float64, probs []float64, dir, kind string) error
}

// LinePlotter draws every configuration's mean series as a line over epochs
// and saves mask_<kind>.png under dir.
type LinePlotter struct{}

func (LinePlotter) Plot(series [][]float64, probs []float64, dir, kind string) error {
	p := plot.New()
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = fmt.Sprintf("average of %s matrix", kind)
	p.Legend.Top = true

	args := make([]interface{}, 0, 2*len(series))
	for i, ms := range series {
		pts := make(plotter.XYs, len(ms))
		for j, v := range ms {
			pts[j].X = float64(j)
			pts[j].Y = v
		}
		args = append(args, maskLegend(probs[i]), pts)
	}
	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return fmt.Errorf("trainer: plot %s drift: %w", kind, err)
	}
	out := filepath.Join(dir, fmt.Sprintf("mask_%s.png", kind))
	if err := p.Save(6*vg.Inch, 4*vg.Inch, out); err != nil {
		return fmt.Errorf("trainer: save %s drift plot: %w", kind, err)
	}
	return nil
}

func maskLegend(p float64) string {
	if p == dataset.MaskOne {
		return "mask=1"
	}
	return fmt.Sprintf("mask=%g%%", p*100)
}
