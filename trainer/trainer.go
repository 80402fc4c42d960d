// Package trainer drives the masking sweep: for each masking configuration
// it rebuilds the vocabulary, dataset, and model from scratch, trains for
// the configured number of epochs, tracks embedding drift, and scores each
// epoch through a caller-supplied evaluation hook. Configurations run
// strictly sequentially; each one owns its vocabulary and model.
package trainer

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/TrellixVulnTeam/BERT-DKG-276Q/IO"
	"github.com/TrellixVulnTeam/BERT-DKG-276Q/dataset"
	"github.com/TrellixVulnTeam/BERT-DKG-276Q/params"
	"github.com/TrellixVulnTeam/BERT-DKG-276Q/utils"
)

var (
	ErrBadAccumulation = errors.New("trainer: gradient_accumulation_steps must be >= 1")
	ErrNoTraining      = errors.New("trainer: training is the only implemented execution option, set DoTrain")
)

// Model is the external encoder collaborator. Forward returns the scalar
// batch loss and accumulates gradients internally until the optimizer
// steps.
type Model interface {
	Forward(batch []dataset.InputFeatures, entWeights []float64) (float64, error)
	DocEmbedding() *mat.Dense
	WordEmbedding() *mat.Dense
	Save(dir string) error
}

// Optimizer is the external parameter-update collaborator. progress is
// global_step/total_steps, handed to the learning-rate schedule.
type Optimizer interface {
	Step(progress float64)
	ZeroGrad()
}

// ModelFactory builds a fresh model/optimizer pair sized to one sweep
// configuration's vocabulary and document count.
type ModelFactory func(vocabSize, numDocs int) (Model, Optimizer)

// Hook scores one epoch. It receives the dataset and the row-normalized
// document-embedding matrix and returns a scalar score (typically a
// clustering metric). Higher is better.
type Hook func(ds *dataset.Dataset, docEmb *mat.Dense) float64

// Trainer owns one full sweep over a corpus.
type Trainer struct {
	cfg      params.TrainingConfig
	docs     []string
	entities []IO.Entity
	factory  ModelFactory
	hook     Hook
	plotter  Plotter
}

func New(cfg params.TrainingConfig, docs []string, entities []IO.Entity, factory ModelFactory, hook Hook, plotter Plotter) *Trainer {
	return &Trainer{
		cfg:      cfg,
		docs:     docs,
		entities: entities,
		factory:  factory,
		hook:     hook,
		plotter:  plotter,
	}
}

// Run sweeps the configured masking probabilities: either the single
// MaskProb or, with AllMask, the fixed SweepAll list.
func (t *Trainer) Run() (*Results, error) {
	probs := []float64{t.cfg.MaskProb}
	if t.cfg.AllMask {
		probs = params.SweepAll
	}
	return t.Sweep(probs)
}

// Sweep trains one full configuration per entry of probs, strictly in
// order, and persists best scores, checkpoints, and drift plots under
// cfg.OutputDir. On a mid-sweep failure, checkpoints of already completed
// configurations stay on disk but the best-scores file is not written.
func (t *Trainer) Sweep(probs []float64) (*Results, error) {
	cfg := t.cfg
	if cfg.GradientAccumulationSteps < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadAccumulation, cfg.GradientAccumulationSteps)
	}
	if !cfg.DoTrain {
		return nil, ErrNoTraining
	}
	if cfg.VocabSize < 2 {
		return nil, fmt.Errorf("%w: got %d", IO.ErrVocabTooSmall, cfg.VocabSize)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("trainer: create output dir: %w", err)
	}

	batchSize := cfg.BatchSize / cfg.GradientAccumulationSteps
	if batchSize < 1 {
		batchSize = 1
	}

	res := &Results{Probs: probs}
	for _, p := range probs {
		msd, msw, best, err := t.runConfig(p, batchSize)
		if err != nil {
			return nil, err
		}
		res.DocMeans = append(res.DocMeans, msd)
		res.WordMeans = append(res.WordMeans, msw)
		res.BestScores = append(res.BestScores, best)
	}

	if err := res.WriteBestScores(cfg.OutputDir); err != nil {
		return nil, err
	}
	if t.plotter != nil {
		if err := t.plotter.Plot(res.DocMeans, probs, cfg.OutputDir, "doc"); err != nil {
			return nil, err
		}
		if err := t.plotter.Plot(res.WordMeans, probs, cfg.OutputDir, "word"); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// runConfig trains one masking configuration end to end and returns the
// doc/word embedding mean series (numEpochs+1 points, the first taken
// before training) and the best epoch score.
func (t *Trainer) runConfig(maskProb float64, batchSize int) (msd, msw []float64, best float64, err error) {
	cfg := t.cfg

	tok, err := IO.NewTokenizer(t.docs, cfg.VocabSize, cfg.DoLowerCase)
	if err != nil {
		return nil, nil, 0, err
	}
	ds := dataset.New(t.docs, tok, cfg.MaxSeqLength, maskProb, cfg.Seed)

	var entWeights []float64
	if cfg.Weighted {
		entWeights = IO.EntityWeights(t.entities, tok, cfg.Weight)
	} else {
		entWeights = IO.EntityWeights(nil, tok, cfg.Weight)
	}

	mdl, opt := t.factory(tok.Size(), ds.Len())

	numBatches := (ds.Len() + batchSize - 1) / batchSize
	totalSteps := numBatches / cfg.GradientAccumulationSteps * cfg.NumEpochs
	if totalSteps < 1 {
		totalSteps = 1
	}

	fmt.Printf("***** Running training *****\n")
	fmt.Printf("  Mask prob = %g, Num examples = %d, Batch size = %d, Num steps = %d, Vocab size = %d\n",
		maskProb, ds.Len(), batchSize, totalSteps, tok.Size())

	shuffleRng := rand.New(rand.NewSource(cfg.Seed))
	workerRngs := make([]*rand.Rand, t.workers())
	for w := range workerRngs {
		workerRngs[w] = rand.New(rand.NewSource(cfg.Seed + int64(w) + 1))
	}

	// baseline drift point before any update
	msd = []float64{utils.MatrixMean(mdl.DocEmbedding())}
	msw = []float64{utils.MatrixMean(mdl.WordEmbedding())}

	indices := make([]int, ds.Len())
	for i := range indices {
		indices[i] = i
	}

	globalStep := 0
	var scores []float64
	for epoch := 0; epoch < cfg.NumEpochs; epoch++ {
		shuffleRng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		trLoss := 0.0
		steps := 0
		for b := 0; b < len(indices); b += batchSize {
			end := b + batchSize
			if end > len(indices) {
				end = len(indices)
			}
			batch, err := t.encodeBatch(ds, indices[b:end], workerRngs)
			if err != nil {
				return nil, nil, 0, err
			}
			loss, err := mdl.Forward(batch, entWeights)
			if err != nil {
				return nil, nil, 0, fmt.Errorf("trainer: forward: %w", err)
			}
			trLoss += loss / float64(cfg.GradientAccumulationSteps)
			steps++
			if steps%cfg.GradientAccumulationSteps == 0 {
				opt.Step(float64(globalStep) / float64(totalSteps))
				opt.ZeroGrad()
				globalStep++
			}
		}

		msd = append(msd, utils.MatrixMean(mdl.DocEmbedding()))
		msw = append(msw, utils.MatrixMean(mdl.WordEmbedding()))
		score := t.hook(ds, utils.NormalizeRows(mdl.DocEmbedding()))
		scores = append(scores, score)
		fmt.Printf("Epoch %d - Loss: %.4f, Score: %.4f\n", epoch, trLoss/float64(max(steps, 1)), score)
	}

	fmt.Printf("** ** * Saving fine-tuned model ** ** *\n")
	if err := mdl.Save(cfg.OutputDir); err != nil {
		return nil, nil, 0, err
	}

	for i, s := range scores {
		if i == 0 || s > best {
			best = s
		}
	}
	return msd, msw, best, nil
}

func (t *Trainer) workers() int {
	if t.cfg.NumWorkers < 1 {
		return 1
	}
	return t.cfg.NumWorkers
}

// encodeBatch fans feature encoding out over the worker pool. Each worker
// keeps its own random generator so mask draws never share state.
func (t *Trainer) encodeBatch(ds *dataset.Dataset, idx []int, rngs []*rand.Rand) ([]dataset.InputFeatures, error) {
	out := make([]dataset.InputFeatures, len(idx))
	workers := len(rngs)
	if workers == 1 || len(idx) < workers {
		for i, id := range idx {
			out[i] = ds.GetWithRand(id, rngs[0])
		}
		return out, nil
	}

	var g errgroup.Group
	chunk := (len(idx) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= len(idx) {
			break
		}
		hi := lo + chunk
		if hi > len(idx) {
			hi = len(idx)
		}
		rng := rngs[w]
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				out[i] = ds.GetWithRand(idx[i], rng)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
