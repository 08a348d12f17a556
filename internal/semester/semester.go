// Package semester loads and orders the per-semester module configurations.
package semester

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Module is one course offering within a semester.
type Module struct {
	Code    string  `json:"code"`
	Title   string  `json:"name"`
	Credits float64 `json:"credits"`
}

// Config describes one semester: its display name and the modules offered,
// in config-file order.
type Config struct {
	Name    string
	Modules []Module
}

// TotalCredits is the credit total across every module in the semester.
func (c Config) TotalCredits() float64 {
	var total float64
	for _, m := range c.Modules {
		total += m.Credits
	}
	return total
}

// Module looks a module up by code.
func (c Config) Module(code string) (Module, bool) {
	for _, m := range c.Modules {
		if m.Code == code {
			return m, true
		}
	}
	return Module{}, false
}

// rawConfig accepts both shapes the config files come in: a "courses" list
// or a "modules" object, and either "sem_name" or "semester_name".
type rawConfig struct {
	SemName      string          `json:"sem_name"`
	SemesterName string          `json:"semester_name"`
	Courses      []Module        `json:"courses"`
	Modules      json.RawMessage `json:"modules"`
}

// LoadConfig reads one semester config file and normalises its structure.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read semester config: %w", err)
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse semester config %q: %w", path, err)
	}

	cfg := Config{Name: raw.SemesterName}
	if cfg.Name == "" {
		cfg.Name = raw.SemName
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	switch {
	case len(raw.Courses) > 0:
		cfg.Modules = raw.Courses
	case len(raw.Modules) > 0:
		mods, err := decodeModuleObject(raw.Modules)
		if err != nil {
			return Config{}, fmt.Errorf("semester config %q: %w", path, err)
		}
		cfg.Modules = mods
	default:
		return Config{}, fmt.Errorf("semester config %q defines no modules", path)
	}

	for i := range cfg.Modules {
		if cfg.Modules[i].Code == "" {
			return Config{}, fmt.Errorf("semester config %q: module %d has no code", path, i)
		}
	}
	return cfg, nil
}

// decodeModuleObject walks the "modules" object with a token decoder so the
// file's module order survives into the report columns.
func decodeModuleObject(raw json.RawMessage) ([]Module, error) {
	dec := json.NewDecoder(strings.NewReader(string(raw)))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read modules: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("modules must be a JSON object")
	}

	var mods []Module
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read module key: %w", err)
		}
		code := keyTok.(string)

		var m Module
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode module %q: %w", code, err)
		}
		if m.Code == "" {
			m.Code = code
		}
		mods = append(mods, m)
	}
	return mods, nil
}

// Discover lists the semester config files in dir, sorted by file name.
func Discover(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan semester configs: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// SortKey orders semester names chronologically. Names like "Fall 2023"
// sort by year then season; anything else keeps its lexical position after
// all recognised names of the same shape.
type SortKey struct {
	Year   int
	Season int
	Name   string
}

// KeyFor parses a semester name into its sort key.
func KeyFor(name string) SortKey {
	parts := strings.Fields(name)
	if len(parts) >= 2 {
		if year, err := strconv.Atoi(parts[1]); err == nil {
			var season int
			switch strings.ToLower(parts[0]) {
			case "spring":
				season = 1
			case "summer":
				season = 2
			case "fall":
				season = 3
			}
			if season != 0 {
				return SortKey{Year: year, Season: season, Name: name}
			}
		}
	}
	return SortKey{Name: name}
}

// SortConfigs orders semesters chronologically, with unrecognised names in
// lexical order after the dated ones of the same year bucket.
func SortConfigs(cfgs []Config) {
	sort.SliceStable(cfgs, func(i, j int) bool {
		a, b := KeyFor(cfgs[i].Name), KeyFor(cfgs[j].Name)
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		return a.Name < b.Name
	})
}
