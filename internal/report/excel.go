// Package report writes the ranked spreadsheet reports.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/LGsekara1/CGPA-gen/internal/grading"
	"github.com/LGsekara1/CGPA-gen/internal/rank"
	"github.com/LGsekara1/CGPA-gen/internal/results"
	"github.com/LGsekara1/CGPA-gen/internal/roster"
	"github.com/LGsekara1/CGPA-gen/internal/semester"
)

const sheetName = "Results"

// WriteSemesterWorkbooks writes the basic and extended workbook for one
// semester and returns the paths written. For a partial semester (not every
// module released) the SGPA column splits into current and max attainable.
func WriteSemesterWorkbooks(standings []rank.Standing, sr *results.SemesterResults, cfg semester.Config, ros roster.Roster, sc *grading.Scale, outDir string, log *zap.Logger) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output folder: %w", err)
	}

	runID := uuid.NewString()
	complete := sr.Complete(cfg)

	basic := filepath.Join(outDir, fmt.Sprintf("Results - %s.xlsx", cfg.Name))
	if err := writeSemester(basic, standings, sr, ros, sc, runID, complete, false); err != nil {
		return nil, err
	}
	log.Info("created workbook", zap.String("path", basic), zap.String("run_id", runID))

	extended := filepath.Join(outDir, fmt.Sprintf("Results - %s (Extended).xlsx", cfg.Name))
	if err := writeSemester(extended, standings, sr, ros, sc, runID, complete, true); err != nil {
		return nil, err
	}
	log.Info("created workbook", zap.String("path", extended), zap.String("run_id", runID))

	return []string{basic, extended}, nil
}

func writeSemester(path string, standings []rank.Standing, sr *results.SemesterResults, ros roster.Roster, sc *grading.Scale, runID string, complete, extended bool) error {
	f, hdr, err := newWorkbook(runID)
	if err != nil {
		return err
	}
	defer f.Close()

	n := len(sr.Available)

	// Header row.
	col := 1
	setHeader(f, hdr, col, "Rank")
	col++
	setHeader(f, hdr, col, "Index")
	col++
	if extended {
		setHeader(f, hdr, col, "Name")
		col++
	}
	for _, code := range sr.Available {
		setHeader(f, hdr, col, code)
		col++
	}
	if complete {
		setHeader(f, hdr, col, "SGPA")
		col++
	} else {
		setHeader(f, hdr, col, "Current SGPA")
		col++
		setHeader(f, hdr, col, "Max Possible SGPA")
		col++
	}
	if extended {
		setHeader(f, hdr, col, "Rank (4.2 scale)")
		col++
	}

	// Student rows.
	for i, s := range standings {
		row := i + 2
		col = 1
		setCell(f, col, row, s.Rank)
		col++
		setCell(f, col, row, indexLabel(ros, s.Index))
		col++
		if extended {
			setCell(f, col, row, nameLabel(ros, s.Index))
			col++
		}
		for _, code := range sr.Available {
			grade, ok := s.Grades[code]
			if !ok {
				grade = "-"
			}
			setCell(f, col, row, grade)
			col++
		}
		setCell(f, col, row, s.GPA40)
		col++
		if !complete {
			setCell(f, col, row, s.MaxGPA)
			col++
		}
		if extended {
			setCell(f, col, row, s.Rank42)
			col++
		}
	}

	// Grade-distribution block, two columns to the right of the data.
	statsStart := n + 6
	if !complete {
		statsStart = n + 5
	}
	if extended {
		statsStart += 2
	}
	writeStatsBlock(f, hdr, statsStart+1, sr, sc)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	return nil
}

// WriteCumulativeWorkbook writes the ranked cross-semester report. semNames
// must align with the SGPA slices in the standings.
func WriteCumulativeWorkbook(standings []rank.CumulativeStanding, semNames []string, ros roster.Roster, outDir string, log *zap.Logger) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output folder: %w", err)
	}

	runID := uuid.NewString()
	f, hdr, err := newWorkbook(runID)
	if err != nil {
		return "", err
	}
	defer f.Close()

	col := 1
	setHeader(f, hdr, col, "Rank")
	col++
	setHeader(f, hdr, col, "Index")
	col++
	setHeader(f, hdr, col, "Name")
	col++
	for _, name := range semNames {
		setHeader(f, hdr, col, fmt.Sprintf("SGPA (%s)", name))
		col++
	}
	setHeader(f, hdr, col, "Credits")
	col++
	setHeader(f, hdr, col, "CGPA")
	col++
	setHeader(f, hdr, col, "Rank (4.2 scale)")

	for i, s := range standings {
		row := i + 2
		col = 1
		setCell(f, col, row, s.Rank)
		col++
		setCell(f, col, row, indexLabel(ros, s.Index))
		col++
		setCell(f, col, row, nameLabel(ros, s.Index))
		col++
		for k := range semNames {
			if s.Present[k] {
				setCell(f, col, row, s.SGPA40[k])
			} else {
				setCell(f, col, row, "-")
			}
			col++
		}
		setCell(f, col, row, s.TotalCredits)
		col++
		setCell(f, col, row, s.CGPA40)
		col++
		setCell(f, col, row, s.Rank42)
	}

	path := filepath.Join(outDir, "Results - Cumulative.xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	log.Info("created workbook", zap.String("path", path), zap.String("run_id", runID))
	return path, nil
}

func newWorkbook(runID string) (*excelize.File, int, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Creator:     "cgpagen",
		Identifier:  runID,
		Description: "Generated GPA analysis report",
	}); err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to set workbook properties: %w", err)
	}
	hdr, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("failed to create header style: %w", err)
	}
	return f, hdr, nil
}

// writeStatsBlock emits per-module grade distributions: grade labels in the
// column left of startCol, one column per available module, counts rendered
// as "count(pct%)".
func writeStatsBlock(f *excelize.File, hdr, startCol int, sr *results.SemesterResults, sc *grading.Scale) {
	for i, code := range sr.Available {
		setHeaderAt(f, hdr, startCol+i, 1, code)
	}

	for row, grade := range sc.Grades() {
		setCell(f, startCol-1, row+2, grade)
		for i, code := range sr.Available {
			stats := sr.Stats[code]
			count := stats.GradeCounts[grade]
			total := stats.Total()
			var pct float64
			if total > 0 {
				pct = float64(count) / float64(total) * 100
			}
			setCell(f, startCol+i, row+2, fmt.Sprintf("%d(%.1f%%)", count, pct))
		}
	}
}

func setHeader(f *excelize.File, style, col int, v string) {
	setHeaderAt(f, style, col, 1, v)
}

func setHeaderAt(f *excelize.File, style, col, row int, v string) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	f.SetCellValue(sheetName, cell, v)
	f.SetCellStyle(sheetName, cell, cell, style)
}

func setCell(f *excelize.File, col, row int, v interface{}) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	f.SetCellValue(sheetName, cell, v)
}

func indexLabel(ros roster.Roster, idx int) string {
	if s, ok := ros[idx]; ok && s.Index != "" {
		return s.Index
	}
	return strconv.Itoa(idx)
}

func nameLabel(ros roster.Roster, idx int) string {
	if s, ok := ros[idx]; ok && s.Name != "" {
		return s.Name
	}
	return "Unknown"
}
