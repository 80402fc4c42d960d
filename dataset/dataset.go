// Package dataset turns a loaded document corpus into fixed-length,
// randomly-masked training features. Features are recomputed with a fresh
// mask draw on every access, so iterating the dataset across epochs
// re-masks every document; nothing is memoized. That recomputation is part
// of the training signal, not a missing cache.
package dataset

import (
	"math/rand"
	"sync"

	"github.com/TrellixVulnTeam/BERT-DKG-276Q/IO"
)

// Dataset is the per-configuration sample provider. It owns a seeded random
// generator used for masking; Get serializes access to it, while GetWithRand
// lets parallel workers bring their own generator (one per worker, never
// shared) so mask draws stay race-free.
type Dataset struct {
	docs      []string
	tok       *IO.Tokenizer
	seqLen    int
	maskProb  float64

	mu            sync.Mutex
	rng           *rand.Rand
	sampleCounter int
}

func New(docs []string, tok *IO.Tokenizer, seqLen int, maskProb float64, seed int64) *Dataset {
	return &Dataset{
		docs:     docs,
		tok:      tok,
		seqLen:   seqLen,
		maskProb: maskProb,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Len returns the number of documents.
func (d *Dataset) Len() int { return len(d.docs) }

// Docs exposes the backing document list (read-only by convention).
func (d *Dataset) Docs() []string { return d.docs }

// Tokenizer returns the vocabulary this dataset encodes against.
func (d *Dataset) Tokenizer() *IO.Tokenizer { return d.tok }

// Get encodes document i end to end: tokenize, drop out-of-vocab tokens,
// mask with a fresh random draw, encode to fixed length. In single-token
// masking mode the document must survive vocabulary filtering with at least
// one token.
func (d *Dataset) Get(i int) InputFeatures {
	d.mu.Lock()
	guid := d.sampleCounter
	d.sampleCounter++
	rng := d.rng
	feats := d.encode(i, guid, rng)
	d.mu.Unlock()
	return feats
}

// GetWithRand is Get for worker pools: the caller supplies its own
// generator, and only the guid counter touches shared state.
func (d *Dataset) GetWithRand(i int, rng *rand.Rand) InputFeatures {
	d.mu.Lock()
	guid := d.sampleCounter
	d.sampleCounter++
	d.mu.Unlock()
	return d.encode(i, guid, rng)
}

func (d *Dataset) encode(i, guid int, rng *rand.Rand) InputFeatures {
	docTok := d.tok.Tokenize(d.docs[i])
	// only keep the words in vocab
	kept := docTok[:0]
	for _, t := range docTok {
		if d.tok.HasToken(t) {
			kept = append(kept, t)
		}
	}
	ex := InputExample{GUID: guid, DocTok: kept, DocID: i}
	return ConvertExampleToFeatures(ex, d.seqLen, d.tok, d.maskProb, rng)
}
