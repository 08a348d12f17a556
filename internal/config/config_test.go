package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "cgpagen.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, filepath.Join("config", "grades.json"), cfg.GradesFile())
	assert.Equal(t, filepath.Join("data", "results"), cfg.ResultsDir())
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cgpagen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /srv/results\noutput_dir: /srv/out\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/results", cfg.DataDir)
	assert.Equal(t, "/srv/out", cfg.OutputDir)
	assert.Equal(t, "config", cfg.ConfigDir, "unset keys keep their defaults")
}

func TestLoadRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cgpagen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: [unclosed\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
