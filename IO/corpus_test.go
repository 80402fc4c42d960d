package IO

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDocumentsSplitsOnBlankLines(t *testing.T) {
	path := writeCorpus(t, "the cat sat\n\nthe dog ran\n\n")
	docs, err := LoadDocuments(path)
	require.NoError(t, err)
	require.Equal(t, []string{"the cat sat", "the dog ran"}, docs)
}

func TestLoadDocumentsConcatenatesConsecutiveLines(t *testing.T) {
	path := writeCorpus(t, "first line\nsecond line\n\nnext doc\n\n")
	docs, err := LoadDocuments(path)
	require.NoError(t, err)
	require.Equal(t, []string{"first linesecond line", "next doc"}, docs)
}

func TestLoadDocumentsKeepsTrailingBlock(t *testing.T) {
	// no terminating blank line after the last document
	path := writeCorpus(t, "doc one\n\ndoc two")
	docs, err := LoadDocuments(path)
	require.NoError(t, err)
	require.Equal(t, []string{"doc one", "doc two"}, docs)
}

func TestLoadDocumentsSkipsEmptyBlocks(t *testing.T) {
	path := writeCorpus(t, "\n\n\ndoc\n\n\n\n")
	docs, err := LoadDocuments(path)
	require.NoError(t, err)
	require.Equal(t, []string{"doc"}, docs)
}

func TestLoadDocumentsMissingFile(t *testing.T) {
	_, err := LoadDocuments(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}
