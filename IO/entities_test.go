package IO

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func entityTokenizer(t *testing.T) *Tokenizer {
	t.Helper()
	docs := []string{"the cat sat", "the cat ran", "the dog sat", "the dog ran"}
	tok, err := NewTokenizer(docs, 100, true)
	require.NoError(t, err)
	require.True(t, tok.HasToken("cat"))
	return tok
}

func TestEntityWeightsSingleEntity(t *testing.T) {
	tok := entityTokenizer(t)
	weights := EntityWeights([]Entity{{Field: []string{"cat"}}}, tok, 3.0)

	require.Len(t, weights, tok.Size())
	catID := tok.Vocab["cat"]
	for id, w := range weights {
		if id == catID {
			require.Equal(t, 3.0, w)
		} else {
			require.Equal(t, 1.0, w, "id %d", id)
		}
	}
}

func TestEntityWeightsUnionOfFields(t *testing.T) {
	tok := entityTokenizer(t)
	ents := []Entity{
		{Field: []string{"Cat"}, Tec: []string{"dog"}},
		{Tec: []string{"ran"}},
	}
	weights := EntityWeights(ents, tok, 2.0)
	require.Equal(t, 2.0, weights[tok.Vocab["cat"]]) // lower-cased before lookup
	require.Equal(t, 2.0, weights[tok.Vocab["dog"]])
	require.Equal(t, 2.0, weights[tok.Vocab["ran"]])
	require.Equal(t, 1.0, weights[tok.Vocab["sat"]])
}

func TestEntityWeightsNoEntities(t *testing.T) {
	tok := entityTokenizer(t)
	weights := EntityWeights(nil, tok, 5.0)
	require.Len(t, weights, tok.Size())
	for _, w := range weights {
		require.Equal(t, 1.0, w)
	}
}

func TestLoadEntities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entities.json")
	blob := `[{"field":["machine learning"],"tec":["bert"]},{"field":[],"tec":["crf"]}]`
	require.NoError(t, os.WriteFile(path, []byte(blob), 0o644))

	ents, err := LoadEntities(path)
	require.NoError(t, err)
	require.Len(t, ents, 2)
	require.Equal(t, []string{"machine learning"}, ents[0].Field)
	require.Equal(t, []string{"crf"}, ents[1].Tec)
}
