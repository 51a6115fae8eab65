package probe

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, ".zshrc"), ExpandHome("~/.zshrc"))
	assert.Equal(t, "/etc/hosts", ExpandHome("/etc/hosts"))
	assert.Equal(t, "relative/path", ExpandHome("relative/path"))
}

func TestReadFileMissingIsFailOpen(t *testing.T) {
	content, ok := ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.False(t, ok)
	assert.Empty(t, content)
}

func TestLineCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree"), 0o600))

	count, ok := LineCount(path)
	require.True(t, ok)
	assert.Equal(t, 3, count)

	_, ok = LineCount(filepath.Join(dir, "missing.md"))
	assert.False(t, ok)
}

func TestReadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"hooks":{"pre":"x"}}`), 0o600))

	var settings struct {
		Hooks map[string]string `json:"hooks"`
	}
	require.True(t, ReadJSON(path, &settings))
	assert.Len(t, settings.Hooks, 1)

	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))
	assert.False(t, ReadJSON(path, &settings), "malformed JSON reads as no evidence")
}

func TestShellOutput(t *testing.T) {
	dir := t.TempDir()

	out, ok := ShellOutput(context.Background(), dir, "echo hello", 0)
	require.True(t, ok)
	assert.Equal(t, "hello", out)

	_, ok = ShellOutput(context.Background(), dir, "exit 3", 0)
	assert.False(t, ok)
}

func TestShellOutputTimeout(t *testing.T) {
	_, ok := ShellOutput(context.Background(), t.TempDir(), "sleep 5", 50*time.Millisecond)
	assert.False(t, ok)
}

func TestFileMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key")
	require.NoError(t, os.WriteFile(path, []byte("secret"), 0o600))

	mode, ok := FileMode(path)
	require.True(t, ok)
	assert.Equal(t, os.FileMode(0o600), mode)
}
