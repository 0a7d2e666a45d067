package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListsCommand(t *testing.T) {
	dir := t.TempDir()
	extra := filepath.Join(dir, "animals.txt")
	require.NoError(t, os.WriteFile(extra, []byte("cat\ndog\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"lists", "--words-file", extra, "--log-level", "error"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "Golden Words")
	assert.Contains(t, out.String(), "Teddy Words")
	assert.Contains(t, out.String(), "animals          2 words")
	assert.Contains(t, out.String(), "All Lists       26 words")
	assert.Equal(t, "error", cfg.LogLevel)
}
