package IO

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Entity is one domain-entity record. Field and Tec are the two string sets
// whose lower-cased union forms the entity vocabulary used for loss
// weighting.
type Entity struct {
	Field []string `json:"field"`
	Tec   []string `json:"tec"`
}

// LoadEntities reads a JSON array of entity records.
func LoadEntities(path string) ([]Entity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("IO: open entities: %w", err)
	}
	var ents []Entity
	if err := json.Unmarshal(data, &ents); err != nil {
		return nil, fmt.Errorf("IO: parse entities: %w", err)
	}
	return ents, nil
}

// EntityWeights builds the per-vocab-id loss weight vector: 1.0 everywhere,
// weight at every id reachable by tokenizing the lower-cased union of the
// entity strings. With no entities it returns the all-ones vector. The
// result is a pure function of (vocab, entities, weight).
func EntityWeights(entities []Entity, tok *Tokenizer, weight float64) []float64 {
	weights := make([]float64, tok.Size())
	for i := range weights {
		weights[i] = 1.0
	}
	if len(entities) == 0 {
		return weights
	}

	set := make(map[string]bool)
	for _, e := range entities {
		for _, s := range e.Field {
			set[strings.ToLower(s)] = true
		}
		for _, s := range e.Tec {
			set[strings.ToLower(s)] = true
		}
	}
	ents := make([]string, 0, len(set))
	for s := range set {
		ents = append(ents, s)
	}
	sort.Strings(ents)

	for _, id := range tok.ConvertTokensToIDs(tok.Tokenize(strings.Join(ents, " "))) {
		weights[id] = weight
	}
	return weights
}
