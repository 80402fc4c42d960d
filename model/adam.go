package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/TrellixVulnTeam/BERT-DKG-276Q/optimizations"
)

// AdamConfig carries the optimizer hyperparameters.
type AdamConfig struct {
	LearningRate float64
	Beta1        float64
	Beta2        float64
	Eps          float64
	WeightDecay  float64
	Warmup       float64 // warmup fraction for the linear schedule
}

// Adam is AdamW over both embedding matrices with the BERT warmup-linear
// learning-rate schedule applied per step.
type Adam struct {
	cfg   AdamConfig
	model *MD2vec

	mDoc, vDoc   *mat.Dense
	mWord, vWord *mat.Dense
	t            int
}

func NewAdam(m *MD2vec, cfg AdamConfig) *Adam {
	return &Adam{
		cfg:   cfg,
		model: m,
		mDoc:  optimizations.ZerosLike(m.DocEmb),
		vDoc:  optimizations.ZerosLike(m.DocEmb),
		mWord: optimizations.ZerosLike(m.WordEmb),
		vWord: optimizations.ZerosLike(m.WordEmb),
	}
}

// Step applies one update using the gradients accumulated since the last
// ZeroGrad, averaged across the pending Forward calls. progress is
// global_step/total_steps and drives the warmup-linear multiplier.
func (a *Adam) Step(progress float64) {
	m := a.model
	if m.pending == 0 {
		return
	}
	if m.pending > 1 {
		s := 1.0 / float64(m.pending)
		m.dDoc.Scale(s, m.dDoc)
		m.dWord.Scale(s, m.dWord)
		m.pending = 1
	}
	a.t++
	lr := a.cfg.LearningRate * optimizations.WarmupLinear(progress, a.cfg.Warmup)
	optimizations.AdamUpdateInPlace(m.DocEmb, m.dDoc, a.mDoc, a.vDoc, a.t,
		lr, a.cfg.Beta1, a.cfg.Beta2, a.cfg.Eps, a.cfg.WeightDecay)
	optimizations.AdamUpdateInPlace(m.WordEmb, m.dWord, a.mWord, a.vWord, a.t,
		lr, a.cfg.Beta1, a.cfg.Beta2, a.cfg.Eps, a.cfg.WeightDecay)
}

// ZeroGrad clears the accumulated gradients.
func (a *Adam) ZeroGrad() {
	a.model.dDoc.Zero()
	a.model.dWord.Zero()
	a.model.pending = 0
}
