// Package pipeline wires the loading, computation and reporting stages into
// the operations the CLI and the TUI expose.
package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/LGsekara1/CGPA-gen/internal/config"
	"github.com/LGsekara1/CGPA-gen/internal/grading"
	"github.com/LGsekara1/CGPA-gen/internal/rank"
	"github.com/LGsekara1/CGPA-gen/internal/report"
	"github.com/LGsekara1/CGPA-gen/internal/results"
	"github.com/LGsekara1/CGPA-gen/internal/roster"
	"github.com/LGsekara1/CGPA-gen/internal/semester"
)

var (
	ErrNoConfigs        = errors.New("no semester configuration files found")
	ErrSemesterNotFound = errors.New("semester not found")
	ErrStudentNotFound  = errors.New("student not found")
)

// Env is everything a run needs: settings, the grade scale, the roster and
// the corrections overlay.
type Env struct {
	Cfg         config.Config
	Scale       *grading.Scale
	Roster      roster.Roster
	Corrections results.Corrections
	Log         *zap.Logger
}

// LoadEnv loads the shared inputs once.
func LoadEnv(cfg config.Config, log *zap.Logger) (*Env, error) {
	log.Info("loading grades", zap.String("path", cfg.GradesFile()))
	scale, err := grading.LoadScale(cfg.GradesFile())
	if err != nil {
		return nil, err
	}

	corr, err := results.LoadCorrections(cfg.CorrectionsFile(), log)
	if err != nil {
		return nil, err
	}

	log.Info("loading student database", zap.String("path", cfg.StudentsFile()))
	ros, err := roster.Load(cfg.StudentsFile())
	if err != nil {
		return nil, err
	}
	if len(ros) == 0 {
		return nil, fmt.Errorf("no valid students in %q", cfg.StudentsFile())
	}
	min, max, _ := ros.Range()
	log.Info("student database loaded",
		zap.Int("students", len(ros)),
		zap.Int("min_index", min),
		zap.Int("max_index", max))

	return &Env{Cfg: cfg, Scale: scale, Roster: ros, Corrections: corr, Log: log}, nil
}

// SemesterConfigs lists the semester config files on disk.
func (e *Env) SemesterConfigs() ([]string, error) {
	files, err := semester.Discover(e.Cfg.SemestersDir())
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoConfigs
	}
	return files, nil
}

// FindSemester resolves a semester reference (config file base name or the
// semester's display name) to its config path.
func (e *Env) FindSemester(ref string) (string, error) {
	files, err := e.SemesterConfigs()
	if err != nil {
		return "", err
	}
	for _, path := range files {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if strings.EqualFold(base, ref) {
			return path, nil
		}
		cfg, err := semester.LoadConfig(path)
		if err == nil && strings.EqualFold(cfg.Name, ref) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSemesterNotFound, ref)
}

// SemesterReport is the outcome of one SGPA run.
type SemesterReport struct {
	Config    semester.Config
	Results   *results.SemesterResults
	Standings []rank.Standing
	Paths     []string
}

// SemesterReport ingests one semester, ranks it and writes both workbooks.
func (e *Env) SemesterReport(cfgPath string) (*SemesterReport, error) {
	cfg, err := semester.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	e.Log.Info("processing semester",
		zap.String("semester", cfg.Name),
		zap.Int("modules", len(cfg.Modules)))

	sr, err := results.LoadSemester(cfg, e.Roster, e.Cfg.ResultsDir(), e.Corrections, e.Log)
	if err != nil {
		return nil, err
	}
	e.Log.Info("results extracted",
		zap.Int("modules_available", len(sr.Available)),
		zap.Int("students", len(sr.ByStudent)))

	standings := rank.Semester(sr, cfg, e.Scale)
	paths, err := report.WriteSemesterWorkbooks(standings, sr, cfg, e.Roster, e.Scale, e.Cfg.OutputDir, e.Log)
	if err != nil {
		return nil, err
	}
	return &SemesterReport{Config: cfg, Results: sr, Standings: standings, Paths: paths}, nil
}

// CumulativeReport is the outcome of a CGPA run.
type CumulativeReport struct {
	Semesters []string
	Standings []rank.CumulativeStanding
	Path      string
}

// CumulativeReport ingests every semester with result sheets, accumulates
// across them in chronological order and writes the cumulative workbook.
func (e *Env) CumulativeReport() (*CumulativeReport, error) {
	files, err := e.SemesterConfigs()
	if err != nil {
		return nil, err
	}

	var cfgs []semester.Config
	for _, path := range files {
		cfg, err := semester.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfgs = append(cfgs, cfg)
	}
	semester.SortConfigs(cfgs)

	var (
		sems     []*results.SemesterResults
		semNames []string
	)
	for _, cfg := range cfgs {
		sr, err := results.LoadSemester(cfg, e.Roster, e.Cfg.ResultsDir(), e.Corrections, e.Log)
		if err != nil {
			return nil, err
		}
		if len(sr.Available) == 0 {
			e.Log.Warn("no result sheets for semester, excluded from CGPA",
				zap.String("semester", cfg.Name))
			continue
		}
		sems = append(sems, sr)
		semNames = append(semNames, cfg.Name)
	}
	if len(sems) == 0 {
		return nil, fmt.Errorf("no semester has result sheets under %q", e.Cfg.ResultsDir())
	}

	standings := rank.Cumulative(sems, e.Scale)
	path, err := report.WriteCumulativeWorkbook(standings, semNames, e.Roster, e.Cfg.OutputDir, e.Log)
	if err != nil {
		return nil, err
	}
	return &CumulativeReport{Semesters: semNames, Standings: standings, Path: path}, nil
}

// BreakdownRow is one module line of a single-student SGPA breakdown.
type BreakdownRow struct {
	Module   string
	Grade    string
	Credits  float64
	Points   float64
	Weighted float64
	Counted  bool // false for grades outside the scale
}

// Breakdown is the per-module working of one student's SGPA.
type Breakdown struct {
	Index         int
	Name          string
	Semester      string
	Rows          []BreakdownRow
	TotalCredits  float64
	TotalWeighted float64
	SGPA          float64
}

// Lookup computes one student's SGPA breakdown for one semester.
func (e *Env) Lookup(index int, semesterRef string) (*Breakdown, error) {
	student, ok := e.Roster[index]
	if !ok {
		return nil, fmt.Errorf("%w: index %d", ErrStudentNotFound, index)
	}

	cfgPath, err := e.FindSemester(semesterRef)
	if err != nil {
		return nil, err
	}
	cfg, err := semester.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	sr, err := results.LoadSemester(cfg, e.Roster, e.Cfg.ResultsDir(), e.Corrections, e.Log)
	if err != nil {
		return nil, err
	}

	grades, ok := sr.ByStudent[index]
	if !ok {
		return nil, fmt.Errorf("no results for student %d in %s", index, cfg.Name)
	}

	codes := make([]string, 0, len(grades))
	for code := range grades {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	b := &Breakdown{Index: index, Name: student.Name, Semester: cfg.Name}
	for _, code := range codes {
		stats, ok := sr.Stats[code]
		if !ok {
			continue
		}
		grade := grades[code]
		row := BreakdownRow{Module: code, Grade: grade, Credits: stats.Credits}
		if p, inScale := e.Scale.Point(grade, grading.Variant40); inScale {
			row.Points = p
			row.Weighted = stats.Credits * p
			row.Counted = true
			b.TotalCredits += stats.Credits
			b.TotalWeighted += row.Weighted
		}
		b.Rows = append(b.Rows, row)
	}
	b.SGPA = rank.SGPA(grades, sr.Stats, e.Scale, grading.Variant40)
	return b, nil
}
