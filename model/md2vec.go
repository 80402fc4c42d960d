// Package model ships the reference masked-document model: a document
// embedding matrix and a word embedding matrix trained to predict each
// masked token from its document's vector. The trainer only depends on the
// small Model/Optimizer interfaces, so a heavier encoder can be substituted
// without touching the pipeline.
package model

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/TrellixVulnTeam/BERT-DKG-276Q/dataset"
	"github.com/TrellixVulnTeam/BERT-DKG-276Q/optimizations"
	"github.com/TrellixVulnTeam/BERT-DKG-276Q/utils"
)

var ErrWeightSize = errors.New("model: entity weight vector size mismatch")

// Config is the resolved model shape persisted next to the parameter blob.
type Config struct {
	VocabSize int `json:"vocab_size"`
	NumDocs   int `json:"num_docs"`
	DModel    int `json:"d_model"`
}

// MD2vec holds the two learned matrices. DocEmb is (numDocs x d), WordEmb is
// (V x d). A masked position in document i is scored as
// softmax(WordEmb · DocEmb[i]); the loss is entity-weighted cross-entropy
// over all masked positions, averaged per batch.
type MD2vec struct {
	Cfg     Config
	DocEmb  *mat.Dense
	WordEmb *mat.Dense

	dDoc, dWord *mat.Dense
	pending     int // Forward calls since the last ZeroGrad
}

func New(cfg Config, rng *rand.Rand) *MD2vec {
	d := float64(cfg.DModel)
	m := &MD2vec{
		Cfg:     cfg,
		DocEmb:  mat.NewDense(cfg.NumDocs, cfg.DModel, utils.RandomArray(cfg.NumDocs*cfg.DModel, d, rng)),
		WordEmb: mat.NewDense(cfg.VocabSize, cfg.DModel, utils.RandomArray(cfg.VocabSize*cfg.DModel, d, rng)),
	}
	m.dDoc = optimizations.ZerosLike(m.DocEmb)
	m.dWord = optimizations.ZerosLike(m.WordEmb)
	return m
}

// DocEmbedding returns the live document-embedding matrix (numDocs x d).
func (m *MD2vec) DocEmbedding() *mat.Dense { return m.DocEmb }

// WordEmbedding returns the live word-embedding matrix (V x d).
func (m *MD2vec) WordEmbedding() *mat.Dense { return m.WordEmb }

// Forward computes the batch loss and accumulates parameter gradients.
// Gradients keep accumulating across calls until ZeroGrad, which is what
// makes gradient accumulation work: the optimizer averages over the pending
// call count when it steps.
func (m *MD2vec) Forward(batch []dataset.InputFeatures, entWeights []float64) (float64, error) {
	v, d := m.WordEmb.Dims()
	if entWeights != nil && len(entWeights) != v {
		return 0, fmt.Errorf("%w: got %d, vocab %d", ErrWeightSize, len(entWeights), v)
	}

	bDoc := optimizations.ZerosLike(m.DocEmb)
	bWord := optimizations.ZerosLike(m.WordEmb)
	loss := 0.0
	positions := 0

	logits := make([]float64, v)
	for _, f := range batch {
		docID := -1
		for t, mask := range f.InputMask {
			if mask == 1 {
				docID = f.DocID[t]
				break
			}
		}
		if docID < 0 {
			continue // document padded away entirely
		}
		docVec := mat.NewVecDense(d, m.DocEmb.RawRowView(docID))

		for t, gold := range f.LMLabelIDs {
			if gold == dataset.IgnoreLabel || f.InputMask[t] == 0 {
				continue
			}
			lv := mat.NewVecDense(v, logits)
			lv.MulVec(m.WordEmb, docVec)
			pGold := utils.Softmax(logits, gold)
			w := 1.0
			if entWeights != nil {
				w = entWeights[gold]
			}
			loss += w * -math.Log(pGold)
			positions++

			// logits now holds the softmax; turn it into dL/dlogits
			logits[gold] -= 1.0
			for k := 0; k < v; k++ {
				gl := w * logits[k]
				if gl == 0 {
					continue
				}
				row := bWord.RawRowView(k)
				dst := bDoc.RawRowView(docID)
				wRow := m.WordEmb.RawRowView(k)
				dv := docVec.RawVector().Data
				for j := 0; j < d; j++ {
					row[j] += gl * dv[j]
					dst[j] += gl * wRow[j]
				}
			}
		}
	}

	if positions == 0 {
		return 0, nil
	}
	scale := 1.0 / float64(positions)
	bDoc.Scale(scale, bDoc)
	bWord.Scale(scale, bWord)
	m.dDoc.Add(m.dDoc, bDoc)
	m.dWord.Add(m.dWord, bWord)
	m.pending++
	return loss * scale, nil
}
