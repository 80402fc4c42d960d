package IO

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Special tokens appended at the end of the vocab: [UNK] gets id V-2 and
// [MASK] gets id V-1, always the two highest ids.
const (
	UnkToken  = "[UNK]"
	MaskToken = "[MASK]"
)

// Document-frequency bounds applied before ranking. Tokens seen in fewer
// than MinDocFreq documents, or in more than MaxDocFreq documents, are
// dropped from vocabulary candidates.
const (
	MinDocFreq = 2
	MaxDocFreq = 1000
)

// Token length bounds for the lightweight normalization.
const (
	minTokenLen = 2
	maxTokenLen = 15
)

var (
	ErrVocabTooSmall = errors.New("IO: vocab size must be at least 2")
	ErrIDOutOfRange  = errors.New("IO: token id out of vocab range")
)

// Tokenizer wraps a fixed vocabulary built from a document set. The vocab is
// immutable after construction; one Tokenizer is built per sweep
// configuration and shared read-only afterwards.
type Tokenizer struct {
	Vocab     map[string]int
	IDToToken []string
	lowerCase bool
}

// NewTokenizer builds a Tokenizer whose vocabulary holds at most vocabSize
// ids: the top vocabSize-2 corpus tokens that survive document-frequency
// filtering (ranked by total count, ties broken lexicographically), then
// [UNK] and [MASK]. The corpus may yield fewer qualifying tokens, in which
// case the vocab is smaller but the sentinels are still last.
func NewTokenizer(docs []string, vocabSize int, lowerCase bool) (*Tokenizer, error) {
	if vocabSize < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrVocabTooSmall, vocabSize)
	}
	t := &Tokenizer{lowerCase: lowerCase}

	counts := make(map[string]int, 1<<15)
	docFreq := make(map[string]int, 1<<15)
	for _, doc := range docs {
		toks := t.Tokenize(doc)
		seen := make(map[string]bool, len(toks))
		for _, tok := range toks {
			counts[tok]++
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
		}
	}

	type kv struct {
		k string
		v int
	}
	arr := make([]kv, 0, len(counts))
	for k, v := range counts {
		if df := docFreq[k]; df < MinDocFreq || df > MaxDocFreq {
			continue
		}
		arr = append(arr, kv{k, v})
	}
	sort.Slice(arr, func(i, j int) bool {
		if arr[i].v == arr[j].v {
			return arr[i].k < arr[j].k
		}
		return arr[i].v > arr[j].v
	})
	if len(arr) > vocabSize-2 {
		arr = arr[:vocabSize-2]
	}

	t.IDToToken = make([]string, 0, len(arr)+2)
	for _, p := range arr {
		t.IDToToken = append(t.IDToToken, p.k)
	}
	t.IDToToken = append(t.IDToToken, UnkToken, MaskToken)
	t.Vocab = make(map[string]int, len(t.IDToToken))
	for id, tok := range t.IDToToken {
		t.Vocab[tok] = id
	}
	return t, nil
}

// Size returns |V| including the two sentinel tokens.
func (t *Tokenizer) Size() int { return len(t.IDToToken) }

func (t *Tokenizer) UnkID() int { return len(t.IDToToken) - 2 }

func (t *Tokenizer) MaskID() int { return len(t.IDToToken) - 1 }

// Tokenize splits text into maximal alphanumeric runs, case-folded when the
// tokenizer was built lower-casing, keeping runs of 2..15 runes. The same
// normalization is used for vocab building and for per-document encoding.
func (t *Tokenizer) Tokenize(text string) []string {
	if t.lowerCase {
		text = strings.ToLower(text)
	}
	toks := make([]string, 0, len(text)/5)
	var run []rune
	flush := func() {
		if n := len(run); n >= minTokenLen && n <= maxTokenLen {
			toks = append(toks, string(run))
		}
		run = run[:0]
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			run = append(run, r)
		} else {
			flush()
		}
	}
	flush()
	return toks
}

// ConvertTokensToIDs maps tokens to vocab ids, substituting the [UNK] id for
// any token absent from the vocabulary. It never fails.
func (t *Tokenizer) ConvertTokensToIDs(tokens []string) []int {
	ids := make([]int, len(tokens))
	for i, tok := range tokens {
		if id, ok := t.Vocab[tok]; ok {
			ids[i] = id
		} else {
			ids[i] = t.UnkID()
		}
	}
	return ids
}

// ConvertIDsToTokens is the strict inverse lookup: any id outside 0..V-1 is
// a caller bug and fails with ErrIDOutOfRange.
func (t *Tokenizer) ConvertIDsToTokens(ids []int) ([]string, error) {
	tokens := make([]string, len(ids))
	for i, id := range ids {
		if id < 0 || id >= len(t.IDToToken) {
			return nil, fmt.Errorf("%w: id %d with vocab size %d", ErrIDOutOfRange, id, len(t.IDToToken))
		}
		tokens[i] = t.IDToToken[id]
	}
	return tokens, nil
}

// HasToken reports whether tok is in the vocabulary.
func (t *Tokenizer) HasToken(tok string) bool {
	_, ok := t.Vocab[tok]
	return ok
}
