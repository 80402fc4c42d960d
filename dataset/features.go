package dataset

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/TrellixVulnTeam/BERT-DKG-276Q/IO"
)

// InputExample is one raw corpus access before encoding: the tokenized
// document, its doc id, and a guid that increases monotonically across
// accesses (used only for the one-time first-example log).
type InputExample struct {
	GUID   int
	DocTok []string
	DocID  int
}

// InputFeatures is the fixed-length encoding the model consumes. All four
// slices are exactly maxSeqLength long: InputIDs and DocID padded with 0,
// InputMask 1 over real tokens and 0 over padding, LMLabelIDs the original
// vocab id at masked positions and IgnoreLabel elsewhere (padding included).
type InputFeatures struct {
	InputIDs   []int
	InputMask  []int
	DocID      []int
	LMLabelIDs []int
}

// ConvertExampleToFeatures masks the example's tokens, converts them to ids,
// and truncates/pads all four parallel sequences to maxSeqLength. Truncation
// is a plain head cut applied uniformly before padding.
func ConvertExampleToFeatures(ex InputExample, maxSeqLength int, tok *IO.Tokenizer, maskProb float64, rng *rand.Rand) InputFeatures {
	docTokens, lmLabelIDs := RandomWord(ex.DocTok, tok, maskProb, rng)
	inputIDs := tok.ConvertTokensToIDs(docTokens)
	inputMask := make([]int, len(inputIDs))
	docID := make([]int, len(inputIDs))
	for i := range inputIDs {
		inputMask[i] = 1
		docID[i] = ex.DocID
	}

	if len(inputIDs) > maxSeqLength {
		inputIDs = inputIDs[:maxSeqLength]
		inputMask = inputMask[:maxSeqLength]
		docID = docID[:maxSeqLength]
		lmLabelIDs = lmLabelIDs[:maxSeqLength]
	}

	for len(inputIDs) < maxSeqLength {
		inputIDs = append(inputIDs, 0)
		inputMask = append(inputMask, 0)
		docID = append(docID, 0)
		lmLabelIDs = append(lmLabelIDs, IgnoreLabel)
	}

	if len(inputIDs) != maxSeqLength || len(inputMask) != maxSeqLength ||
		len(docID) != maxSeqLength || len(lmLabelIDs) != maxSeqLength {
		panic(fmt.Sprintf("dataset: feature length mismatch: %d/%d/%d/%d want %d",
			len(inputIDs), len(inputMask), len(docID), len(lmLabelIDs), maxSeqLength))
	}

	if ex.GUID < 1 {
		slog.Info("*** Example ***",
			"guid", ex.GUID,
			"tokens", strings.Join(docTokens, " "),
			"input_ids", fmt.Sprint(inputIDs),
			"input_mask", fmt.Sprint(inputMask),
			"doc_id", fmt.Sprint(docID),
			"lm_label_ids", fmt.Sprint(lmLabelIDs),
		)
	}

	return InputFeatures{
		InputIDs:   inputIDs,
		InputMask:  inputMask,
		DocID:      docID,
		LMLabelIDs: lmLabelIDs,
	}
}
