package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToLogDir(t *testing.T) {
	dir := t.TempDir()

	log, err := New(Options{Name: "nutrilife", Production: true, Dir: dir})
	require.NoError(t, err)

	log.Info("meal logged")
	_ = log.Sync()

	matches, err := filepath.Glob(filepath.Join(dir, "nutrilife_*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	content, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"meal logged"`)
	assert.Contains(t, string(content), `"logger":"nutrilife"`)
}

func TestNewConsoleOnly(t *testing.T) {
	log, err := New(Options{Name: "test"})
	require.NoError(t, err)
	assert.NotNil(t, log)
}
