package dataset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TrellixVulnTeam/BERT-DKG-276Q/IO"
)

func testTokenizer(t *testing.T) *IO.Tokenizer {
	t.Helper()
	docs := []string{"the cat sat", "the cat ran", "the dog sat", "the dog ran"}
	tok, err := IO.NewTokenizer(docs, 100, true)
	require.NoError(t, err)
	return tok
}

func TestRandomWordSingleTokenMode(t *testing.T) {
	tok := testTokenizer(t)
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 50; trial++ {
		tokens := []string{"the", "cat", "sat"}
		masked, labels := RandomWord(tokens, tok, MaskOne, rng)

		require.Len(t, labels, 3)
		nMasked := 0
		for i, l := range labels {
			if l != IgnoreLabel {
				nMasked++
				require.Equal(t, IO.MaskToken, masked[i])
			} else {
				require.NotEqual(t, IO.MaskToken, masked[i])
			}
		}
		require.Equal(t, 1, nMasked, "single-token mode must mask exactly one position")
	}
}

func TestRandomWordSingleTokenLabelIsOriginalID(t *testing.T) {
	tok := testTokenizer(t)
	rng := rand.New(rand.NewSource(7))

	orig := []string{"the", "cat", "sat"}
	tokens := append([]string(nil), orig...)
	_, labels := RandomWord(tokens, tok, MaskOne, rng)
	for i, l := range labels {
		if l != IgnoreLabel {
			require.Equal(t, tok.Vocab[orig[i]], l)
		}
	}
}

func TestRandomWordProbabilisticFraction(t *testing.T) {
	tok := testTokenizer(t)
	rng := rand.New(rand.NewSource(42))

	const n = 20000
	for _, p := range []float64{0.25, 0.5, 0.75} {
		tokens := make([]string, n)
		for i := range tokens {
			tokens[i] = "cat"
		}
		_, labels := RandomWord(tokens, tok, p, rng)
		masked := 0
		for _, l := range labels {
			if l != IgnoreLabel {
				masked++
			}
		}
		frac := float64(masked) / n
		require.InDeltaf(t, p, frac, 0.02, "mask fraction for p=%g", p)
	}
}

func TestRandomWordProbOne(t *testing.T) {
	tok := testTokenizer(t)
	rng := rand.New(rand.NewSource(3))

	tokens := []string{"the", "dog", "ran"}
	masked, labels := RandomWord(tokens, tok, 1.0, rng)
	for i := range masked {
		require.Equal(t, IO.MaskToken, masked[i])
		require.NotEqual(t, IgnoreLabel, labels[i])
	}
}

func TestRandomWordUnknownTokenFallsBackToUnk(t *testing.T) {
	tok := testTokenizer(t)
	rng := rand.New(rand.NewSource(5))

	tokens := []string{"zebra"}
	_, labels := RandomWord(tokens, tok, 1.0, rng)
	require.Equal(t, tok.UnkID(), labels[0])
}

func TestRandomWordMutatesInPlace(t *testing.T) {
	tok := testTokenizer(t)
	rng := rand.New(rand.NewSource(9))

	tokens := []string{"the", "cat"}
	masked, _ := RandomWord(tokens, tok, 1.0, rng)
	// documented contract: the caller's slice is the one that changes
	require.Equal(t, tokens, masked)
	require.Equal(t, IO.MaskToken, tokens[0])
}
