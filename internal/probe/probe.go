package probe

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultShellTimeout bounds every shell-based check.
const DefaultShellTimeout = 5 * time.Second

// Every helper in this package is fail-open: a missing file, unreadable
// directory, parse failure, or failed command reads as "no evidence" rather
// than an error. Rule evaluation never needs to distinguish the two.

// ExpandHome replaces a leading ~ with the current user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// FileExists reports whether a file or directory is readable at path.
func FileExists(path string) bool {
	_, err := os.Stat(ExpandHome(path))
	return err == nil
}

// ReadFile returns the file contents as UTF-8 text, or ("", false).
func ReadFile(path string) (string, bool) {
	data, err := os.ReadFile(ExpandHome(path))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ReadJSON parses the file at path into v. False on any read or parse error.
func ReadJSON(path string, v any) bool {
	content, ok := ReadFile(path)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(content), v) == nil
}

// DirEntries lists the directory at path, or (nil, false).
func DirEntries(path string) ([]os.DirEntry, bool) {
	entries, err := os.ReadDir(ExpandHome(path))
	if err != nil {
		return nil, false
	}
	return entries, true
}

// FileMode returns the permission bits of the file at path.
func FileMode(path string) (os.FileMode, bool) {
	info, err := os.Stat(ExpandHome(path))
	if err != nil {
		return 0, false
	}
	return info.Mode().Perm(), true
}

// LineCount counts newline-delimited lines in the file, or (0, false).
func LineCount(path string) (int, bool) {
	content, ok := ReadFile(path)
	if !ok {
		return 0, false
	}
	return strings.Count(content, "\n") + 1, true
}

// ShellOutput runs cmd through the shell in dir with a hard timeout and
// returns trimmed stdout. Timeout, non-zero exit, and spawn failures all
// return ("", false).
func ShellOutput(ctx context.Context, dir, cmd string, timeout time.Duration) (string, bool) {
	if timeout <= 0 {
		timeout = DefaultShellTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c := exec.CommandContext(ctx, "sh", "-c", cmd) // #nosec G204 -- commands come from the built-in rule table, never user input
	c.Dir = dir
	out, err := c.Output()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(out)), true
}

// BinaryOnPath reports whether name resolves on PATH. Used by diagnostics.
func BinaryOnPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
