package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPassages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passages.yaml")
	content := `passages:
  - id: "fox"
    title: "The Fox"
    text: "The quick brown fox jumps over the lazy dog."
  - id: "garden"
    title: "The Garden"
    text: "Every morning the garden fills with light."
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	library, err := LoadPassages(path)
	require.NoError(t, err)
	require.Len(t, library.Passages, 2)

	p, ok := library.Find("garden")
	require.True(t, ok)
	assert.Equal(t, "The Garden", p.Title)

	_, ok = library.Find("missing")
	assert.False(t, ok)
}

func TestLoadPassagesMissingFile(t *testing.T) {
	_, err := LoadPassages(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
