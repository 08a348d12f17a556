// Package roster loads the student database and builds it from the raw
// registration lists the department hands over.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Student is one entry of student_details.json.
type Student struct {
	RawIndex       string `json:"raw_idx"`
	Index          string `json:"idx"`
	Name           string `json:"name"`
	Specialisation string `json:"spec"`
}

// Roster maps the numeric part of the index number to the student record.
type Roster map[int]Student

// Load reads student_details.json and re-indexes it by integer index so that
// result-sheet entries can be matched. Entries whose idx field is missing,
// non-numeric or non-positive are skipped.
func Load(path string) (Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read student database: %w", err)
	}

	var raw map[string]Student
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse student database: %w", err)
	}

	r := make(Roster, len(raw))
	for _, student := range raw {
		idx, err := strconv.Atoi(student.Index)
		if err != nil || idx <= 0 {
			continue
		}
		r[idx] = student
	}
	return r, nil
}

// Contains reports whether idx belongs to a registered student.
func (r Roster) Contains(idx int) bool {
	_, ok := r[idx]
	return ok
}

// Indexes returns the registered numeric indexes in ascending order.
func (r Roster) Indexes() []int {
	out := make([]int, 0, len(r))
	for idx := range r {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Range returns the lowest and highest registered index. ok is false for an
// empty roster.
func (r Roster) Range() (min, max int, ok bool) {
	for idx := range r {
		if !ok {
			min, max, ok = idx, idx, true
			continue
		}
		if idx < min {
			min = idx
		}
		if idx > max {
			max = idx
		}
	}
	return min, max, ok
}

// CleanIndex extracts the numeric part of an index number as printed on a
// result sheet. Handles suffixed and slashed forms ("230012U", "230012/U").
func CleanIndex(s string) (int, error) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, fmt.Errorf("index %q contains no digits", s)
	}
	idx, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, fmt.Errorf("index %q out of range: %w", s, err)
	}
	return idx, nil
}

// Build merges the base registration list with the specialisation list and
// writes student_details.json. The base list is tab-separated "rawIndex name"
// lines; the specialisation list holds one raw index per line followed by the
// student's initials. Students on the specialisation list get specProgramme,
// everyone else baseProgramme. Returns the number of students written.
func Build(basePath, specPath, outPath, baseProgramme, specProgramme string) (int, error) {
	baseData, err := os.ReadFile(basePath)
	if err != nil {
		return 0, fmt.Errorf("failed to read base list: %w", err)
	}

	names := make(map[string]string)
	var order []string
	for lineNo, line := range strings.Split(string(baseData), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return 0, fmt.Errorf("base list line %d: expected tab-separated index and name", lineNo+1)
		}
		rawIdx := strings.TrimSpace(parts[0])
		if _, dup := names[rawIdx]; !dup {
			order = append(order, rawIdx)
		}
		names[rawIdx] = strings.TrimSpace(parts[1])
	}

	specialised := make(map[string]bool)
	if specPath != "" {
		specData, err := os.ReadFile(specPath)
		if err != nil {
			return 0, fmt.Errorf("failed to read specialisation list: %w", err)
		}
		for _, line := range strings.Split(string(specData), "\n") {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			specialised[fields[0]] = true
		}
	}

	out := make(map[string]Student, len(order))
	for _, rawIdx := range order {
		idx := rawIdx
		if len(rawIdx) > 1 {
			// Registration numbers carry a trailing check letter.
			idx = rawIdx[:len(rawIdx)-1]
		}
		programme := baseProgramme
		if specialised[rawIdx] {
			programme = specProgramme
		}
		out[rawIdx] = Student{
			RawIndex:       rawIdx,
			Index:          idx,
			Name:           names[rawIdx],
			Specialisation: programme,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal student database: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write student database: %w", err)
	}
	return len(out), nil
}
