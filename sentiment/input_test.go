package sentiment

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInputTrimsBOM(t *testing.T) {
	got, err := ReadInput(strings.NewReader("\ufeff  The plot was thin.\n"))
	require.NoError(t, err)
	assert.Equal(t, "The plot was thin.", got)
}

func TestReadInputTooLarge(t *testing.T) {
	_, err := ReadInput(strings.NewReader(strings.Repeat("a", maxInputBytes+1)))
	assert.Error(t, err)
}

func TestReadInputFile(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "review.txt")
	require.NoError(t, os.WriteFile(text, []byte("Great acting,\nweak ending.\n"), 0o644))

	got, err := ReadInputFile(text)
	require.NoError(t, err)
	assert.Equal(t, "Great acting,\nweak ending.", got)

	binary := filepath.Join(dir, "poster.png")
	require.NoError(t, os.WriteFile(binary, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01"), 0o644))
	_, err = ReadInputFile(binary)
	assert.ErrorContains(t, err, "not text")

	_, err = ReadInputFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
