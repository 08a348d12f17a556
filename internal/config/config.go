// Package config holds the application settings: where the input files live
// and where the reports go.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the cgpagen.yaml file. Every field has a default matching the
// conventional repository layout, so the file is optional.
type Config struct {
	ConfigDir     string `yaml:"config_dir"`
	DataDir       string `yaml:"data_dir"`
	OutputDir     string `yaml:"output_dir"`
	BaseProgramme string `yaml:"base_programme"`
	SpecProgramme string `yaml:"spec_programme"`
}

// Default is the layout the repository ships with.
func Default() Config {
	return Config{
		ConfigDir:     "config",
		DataDir:       "data",
		OutputDir:     "output",
		BaseProgramme: "ENTC",
		SpecProgramme: "BME",
	}
}

// Load reads path and overlays it on the defaults. A missing file just
// means defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	if overlay.ConfigDir != "" {
		cfg.ConfigDir = overlay.ConfigDir
	}
	if overlay.DataDir != "" {
		cfg.DataDir = overlay.DataDir
	}
	if overlay.OutputDir != "" {
		cfg.OutputDir = overlay.OutputDir
	}
	if overlay.BaseProgramme != "" {
		cfg.BaseProgramme = overlay.BaseProgramme
	}
	if overlay.SpecProgramme != "" {
		cfg.SpecProgramme = overlay.SpecProgramme
	}
	return cfg, nil
}

// GradesFile is the letter-grade table.
func (c Config) GradesFile() string { return filepath.Join(c.ConfigDir, "grades.json") }

// CorrectionsFile is the optional manual-corrections overlay.
func (c Config) CorrectionsFile() string { return filepath.Join(c.ConfigDir, "corrections.json") }

// SemestersDir holds one JSON config per semester.
func (c Config) SemestersDir() string { return filepath.Join(c.ConfigDir, "semesters") }

// StudentsFile is the student database.
func (c Config) StudentsFile() string { return filepath.Join(c.DataDir, "student_details.json") }

// ResultsDir holds the per-semester result sheets.
func (c Config) ResultsDir() string { return filepath.Join(c.DataDir, "results") }
