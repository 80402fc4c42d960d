package IO

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadDocuments reads a blank-line-delimited corpus into an ordered document
// list. Consecutive non-blank lines are concatenated (no separator) into one
// document; a blank line closes the current document. A trailing document
// without a terminating blank line is still captured. The position of a
// document in the returned slice is its doc id for the rest of the pipeline.
func LoadDocuments(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IO: open corpus: %w", err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, 1<<20) // 1MB
	docs := make([]string, 0, 4096)
	var doc strings.Builder
	for {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				if doc.Len() > 0 {
					docs = append(docs, doc.String())
					doc.Reset()
				}
			} else {
				doc.WriteString(trimmed)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("IO: read corpus: %w", err)
		}
	}
	// last block in file had no trailing blank line
	if doc.Len() > 0 {
		docs = append(docs, doc.String())
	}
	return docs, nil
}
