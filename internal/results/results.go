// Package results ingests per-module result sheets and overlays manual
// corrections. Sheets live under <resultsDir>/<semester>/<MODULE>.csv or
// .html; modules without a sheet are skipped so a half-released semester can
// still be reported.
package results

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/LGsekara1/CGPA-gen/internal/roster"
	"github.com/LGsekara1/CGPA-gen/internal/semester"
)

// Stats carries a module's credit weight and its grade distribution.
type Stats struct {
	Credits     float64
	GradeCounts map[string]int
}

// Total is the number of graded entries in the module.
func (s Stats) Total() int {
	var n int
	for _, c := range s.GradeCounts {
		n += c
	}
	return n
}

// SemesterResults is everything extracted for one semester.
type SemesterResults struct {
	Semester  string
	Available []string         // module codes with a sheet on disk, config order
	Stats     map[string]Stats // keyed by module code
	ByStudent map[int]map[string]string
}

// Complete reports whether every module of the semester had a result sheet.
func (sr *SemesterResults) Complete(cfg semester.Config) bool {
	return len(sr.Available) == len(cfg.Modules)
}

// Corrections maps module code to index-number string to the corrected grade.
type Corrections map[string]map[string]string

// LoadCorrections reads the corrections file. A missing file is not an
// error; it just means there is nothing to fix.
func LoadCorrections(path string, log *zap.Logger) (Corrections, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info("no corrections file found, skipping", zap.String("path", path))
		return Corrections{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read corrections file: %w", err)
	}

	var c Corrections
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse corrections file: %w", err)
	}
	return c, nil
}

type pair struct {
	index string
	grade string
}

// LoadSemester ingests every available result sheet for the semester,
// validates index numbers against the roster and applies corrections.
func LoadSemester(cfg semester.Config, r roster.Roster, resultsDir string, corr Corrections, log *zap.Logger) (*SemesterResults, error) {
	sr := &SemesterResults{
		Semester:  cfg.Name,
		Stats:     make(map[string]Stats),
		ByStudent: make(map[int]map[string]string),
	}

	for _, mod := range cfg.Modules {
		pairs, path, err := readSheet(filepath.Join(resultsDir, cfg.Name), mod.Code)
		if errors.Is(err, os.ErrNotExist) {
			log.Warn("no result sheet found, skipping module",
				zap.String("module", mod.Code),
				zap.String("semester", cfg.Name))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", mod.Code, err)
		}
		log.Info("processed result sheet",
			zap.String("module", mod.Code),
			zap.String("sheet", path),
			zap.Int("rows", len(pairs)))

		sr.Available = append(sr.Available, mod.Code)
		stats := Stats{Credits: mod.Credits, GradeCounts: make(map[string]int)}

		for _, p := range pairs {
			idx, err := roster.CleanIndex(p.index)
			if err != nil {
				continue // header rows and stray cells
			}
			if !r.Contains(idx) {
				continue
			}
			grade := strings.TrimSpace(p.grade)
			if grade == "" {
				continue
			}
			if sr.ByStudent[idx] == nil {
				sr.ByStudent[idx] = make(map[string]string)
			}
			sr.ByStudent[idx][mod.Code] = grade
			stats.GradeCounts[grade]++
		}
		sr.Stats[mod.Code] = stats
	}

	sr.applyCorrections(r, corr, log)
	return sr, nil
}

// applyCorrections replaces grades named in the corrections file and keeps
// the distribution counts in step.
func (sr *SemesterResults) applyCorrections(r roster.Roster, corr Corrections, log *zap.Logger) {
	for moduleCode, fixes := range corr {
		stats, ok := sr.Stats[moduleCode]
		if !ok {
			continue
		}
		for idxStr, newGrade := range fixes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil || !r.Contains(idx) {
				continue
			}
			if sr.ByStudent[idx] == nil {
				sr.ByStudent[idx] = make(map[string]string)
			}
			oldGrade, had := sr.ByStudent[idx][moduleCode]
			sr.ByStudent[idx][moduleCode] = newGrade

			if had {
				stats.GradeCounts[oldGrade]--
				if stats.GradeCounts[oldGrade] <= 0 {
					delete(stats.GradeCounts, oldGrade)
				}
			}
			stats.GradeCounts[newGrade]++

			if !had {
				oldGrade = "N/A"
			}
			log.Info("applied correction",
				zap.Int("index", idx),
				zap.String("module", moduleCode),
				zap.String("from", oldGrade),
				zap.String("to", newGrade))
		}
	}
}

// readSheet finds the module's result sheet, preferring CSV over HTML when
// both exist, and returns the raw index/grade pairs.
func readSheet(dir, moduleCode string) ([]pair, string, error) {
	csvPath := filepath.Join(dir, moduleCode+".csv")
	if _, err := os.Stat(csvPath); err == nil {
		pairs, err := readCSV(csvPath)
		return pairs, csvPath, err
	}
	htmlPath := filepath.Join(dir, moduleCode+".html")
	if _, err := os.Stat(htmlPath); err == nil {
		pairs, err := readHTML(htmlPath)
		return pairs, htmlPath, err
	}
	return nil, "", os.ErrNotExist
}

func readCSV(path string) ([]pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result sheet: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var pairs []pair
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read result sheet %q: %w", path, err)
		}
		if len(record) < 2 {
			continue
		}
		pairs = append(pairs, pair{index: record[0], grade: record[1]})
	}
	return pairs, nil
}

// readHTML walks the rows of every table in the sheet, index in the first
// cell and grade in the second, the way the faculty publishes results.
func readHTML(path string) ([]pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result sheet: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse result sheet %q: %w", path, err)
	}

	var pairs []pair
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		pairs = append(pairs, pair{
			index: strings.TrimSpace(cells.Eq(0).Text()),
			grade: strings.TrimSpace(cells.Eq(1).Text()),
		})
	})
	return pairs, nil
}
