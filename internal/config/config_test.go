package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		envProjectDir, envDeep, envFormat, envOutput,
		envScanners, envMergeFile, envSummaryFile, envTimeout,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vibescan.config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	loader := Loader{ConfigPath: filepath.Join(t.TempDir(), "missing.yml")}

	cfg, err := loader.Load(Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.False(t, cfg.Deep)
	assert.Empty(t, cfg.Scanners)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
format: json
deep: true
timeout: 30s
scanners:
  - memory
  - mcp
`)

	cfg, err := Loader{ConfigPath: path}.Load(Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.Deep)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"memory", "mcp"}, cfg.Scanners)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "format: json\n")
	t.Setenv(envFormat, "ndjson")
	t.Setenv(envTimeout, "45")

	cfg, err := Loader{ConfigPath: path}.Load(Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "ndjson", cfg.Format)
	assert.Equal(t, 45*time.Second, cfg.Timeout, "bare integers are read as seconds")
}

func TestLoadExplicitOverrideBeatsEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(envFormat, "ndjson")
	t.Setenv(envDeep, "true")
	deep := false

	cfg, err := Loader{ConfigPath: filepath.Join(t.TempDir(), "missing.yml")}.Load(Overrides{
		Format: "json",
		Deep:   &deep,
	})
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format)
	assert.False(t, cfg.Deep)
}

func TestLoadRejectsBadTimeoutInFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "timeout: soon\n")

	_, err := Loader{ConfigPath: path}.Load(Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timeout")
}

func TestValidate(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.Format = "xml"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Timeout = 100 * time.Millisecond
	assert.Error(t, bad.Validate())

	bad = cfg
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	bad.ProjectDir = file
	assert.Error(t, bad.Validate())

	good := cfg
	good.ProjectDir = t.TempDir()
	assert.NoError(t, good.Validate())
}

func TestParseScannerList(t *testing.T) {
	assert.Nil(t, ParseScannerList(""))
	assert.Nil(t, ParseScannerList("   "))
	assert.Equal(t, []string{"memory", "mcp", "agents"}, ParseScannerList("memory, mcp,\nagents"))
}

func TestScannerListScalarOrSequence(t *testing.T) {
	var fromScalar struct {
		Scanners scannerList `yaml:"scanners"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("scanners: memory,mcp\n"), &fromScalar))
	assert.Equal(t, scannerList{"memory", "mcp"}, fromScalar.Scanners)

	var fromSeq struct {
		Scanners scannerList `yaml:"scanners"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("scanners:\n  - memory\n  - mcp\n"), &fromSeq))
	assert.Equal(t, scannerList{"memory", "mcp"}, fromSeq.Scanners)

	var bad struct {
		Scanners scannerList `yaml:"scanners"`
	}
	assert.Error(t, yaml.Unmarshal([]byte("scanners:\n  nested: map\n"), &bad))
}
