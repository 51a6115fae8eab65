package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vibescan/internal/config"
	"github.com/example/vibescan/internal/report"
)

func TestScanCommandWritesArtifact(t *testing.T) {
	project := t.TempDir()
	output := filepath.Join(t.TempDir(), "artifact.json")

	loader := &config.Loader{ConfigPath: filepath.Join(t.TempDir(), "missing.yml")}
	cmd := newScanCmd(loader)

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs([]string{
		"--project", project,
		"--format", "json",
		"--output", output,
		"--scanners", "memory,universal-file",
	})

	require.NoError(t, cmd.Execute())

	var printed report.Artifact
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &printed))
	assert.NotEmpty(t, printed.RunID)
	assert.NotEmpty(t, printed.Platform)

	written, err := readArtifact(output)
	require.NoError(t, err)
	assert.Equal(t, printed.RunID, written.RunID)
	assert.Equal(t, "redacted", written.Platform, "written artifact is sanitized")
}

func TestScanCommandRejectsBadMergeFile(t *testing.T) {
	loader := &config.Loader{ConfigPath: filepath.Join(t.TempDir(), "missing.yml")}
	cmd := newScanCmd(loader)

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs([]string{
		"--project", t.TempDir(),
		"--format", "json",
		"--scanners", "memory",
		"--merge", filepath.Join(t.TempDir(), "nope.json"),
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merge file")
}

func TestScanCommandRejectsUnknownScanner(t *testing.T) {
	loader := &config.Loader{ConfigPath: filepath.Join(t.TempDir(), "missing.yml")}
	cmd := newScanCmd(loader)

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs([]string{"--project", t.TempDir(), "--scanners", "bogus"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestDoctorChecksPassOnHealthySetup(t *testing.T) {
	cfg := config.DefaultRuntimeConfig()
	cfg.ProjectDir = t.TempDir()

	checks := runDoctorChecks(cfg)

	require.NotEmpty(t, checks)
	for _, check := range checks {
		assert.NoError(t, check.Error, "check %s", check.Name)
	}
}

func TestDoctorFlagsBadConfiguration(t *testing.T) {
	cfg := config.DefaultRuntimeConfig()
	cfg.Format = "xml"

	checks := runDoctorChecks(cfg)

	failed := false
	for _, check := range checks {
		if check.Name == "Configuration" {
			failed = check.Error != nil
		}
	}
	assert.True(t, failed)
}
