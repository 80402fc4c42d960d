package dataset

import (
	"log/slog"
	"math/rand"

	"github.com/TrellixVulnTeam/BERT-DKG-276Q/IO"
)

// MaskOne selects single-token masking: exactly one uniformly-random token
// is replaced with [MASK], regardless of document length.
const MaskOne float64 = -1

// IgnoreLabel marks positions the loss must skip: unmasked tokens and
// padding.
const IgnoreLabel = -1

// RandomWord applies the masking policy to tokens in place and returns the
// parallel label ids: the original vocab id at masked positions, IgnoreLabel
// everywhere else.
//
// maskProb == MaskOne masks exactly one uniformly-random position; tokens
// must be non-empty in that mode. Otherwise each position is independently
// masked with probability maskProb. A masked token missing from the vocab is
// labeled with the [UNK] id and logged at warning level; that is a recovery,
// not an error.
func RandomWord(tokens []string, tok *IO.Tokenizer, maskProb float64, rng *rand.Rand) ([]string, []int) {
	labels := make([]int, len(tokens))

	if maskProb == MaskOne {
		idx := rng.Intn(len(tokens))
		orig := tokens[idx]
		tokens[idx] = IO.MaskToken
		for i := range labels {
			labels[i] = IgnoreLabel
		}
		labels[idx] = labelID(orig, tok)
		return tokens, labels
	}

	for i, t := range tokens {
		if rng.Float64() < maskProb {
			tokens[i] = IO.MaskToken
			labels[i] = labelID(t, tok)
		} else {
			labels[i] = IgnoreLabel
		}
	}
	return tokens, labels
}

func labelID(token string, tok *IO.Tokenizer) int {
	if id, ok := tok.Vocab[token]; ok {
		return id
	}
	slog.Warn("cannot find token in vocab, using [UNK] instead", "token", token)
	return tok.UnkID()
}
