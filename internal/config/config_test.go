package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	// Run from a temp dir so no stray config.yaml is picked up.
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "startups.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "https://en.wikipedia.org/w/api.php", cfg.Wikipedia.BaseURL)
	assert.Equal(t, 10, cfg.Source.TimeoutSecs)
	assert.True(t, cfg.Source.NewsEnabled)
	assert.Equal(t, 5, cfg.Research.MaxConcurrentEntities)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)

	// Built-in tables are populated when not configured.
	assert.Equal(t, " payment processing company", cfg.Source.Suffixes["Stripe"])
	assert.Contains(t, cfg.Source.Vocabulary, "fintech")
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
store:
  driver: postgres
  database_url: postgres://localhost/startups
server:
  port: 9000
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/startups", cfg.Store.DatabaseURL)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_SuffixFileOverride(t *testing.T) {
	dir := t.TempDir()
	suffixPath := filepath.Join(dir, "suffixes.yaml")
	require.NoError(t, os.WriteFile(suffixPath, []byte("Mercury: \" banking company\"\nApple: \" fruit vendor\"\n"), 0o644))

	content := "source:\n  suffix_file: " + suffixPath + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	chdir(t, dir)

	cfg, err := Load()
	require.NoError(t, err)

	// Override file entries win; untouched built-ins remain.
	assert.Equal(t, " banking company", cfg.Source.Suffixes["Mercury"])
	assert.Equal(t, " fruit vendor", cfg.Source.Suffixes["Apple"])
	assert.Equal(t, " oil company", cfg.Source.Suffixes["Shell"])
}

func TestLoad_SuffixFileMissing(t *testing.T) {
	dir := t.TempDir()
	content := "source:\n  suffix_file: /nonexistent/suffixes.yaml\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	chdir(t, dir)

	_, err := Load()
	require.Error(t, err)
}

func TestInitLogger_InvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	require.Error(t, err)
}
