package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scraper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
format: bilt
log_level: debug
bilt:
  section_end_markers:
    - Fees Charged
    - Rewards Summary
  year: 2024
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bilt", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"Fees Charged", "Rewards Summary"}, cfg.Bilt.SectionEndMarkers)
	assert.Equal(t, 2024, cfg.Bilt.Year)
	// untouched keys keep their defaults
	assert.Equal(t, "t", cfg.Generic.Terminator)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STATEMENT_SCRAPER_FORMAT", "generic")
	t.Setenv("STATEMENT_SCRAPER_ADDR", ":9090")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "generic", cfg.Format)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Bilt.ContinuedMarker = "Continued"

	require.NoError(t, Save(path, cfg))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Continued", got.Bilt.ContinuedMarker)
}
