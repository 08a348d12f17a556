// Package grading holds the letter-grade table and grade-point lookups.
package grading

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Variant selects which grade-point column a lookup reads. The programme
// publishes results on a plain 4.0 scale and a 4.2 scale where A+ carries
// extra weight.
type Variant string

const (
	Variant40 Variant = "gpa_4_0"
	Variant42 Variant = "gpa_4_2"
)

// Points are the grade-point values of one letter grade.
type Points struct {
	GPA40 float64 `json:"gpa_4_0"`
	GPA42 float64 `json:"gpa_4_2"`
}

// Scale is the ordered letter-grade table. Order follows the grades file and
// drives the row order of the grade-distribution block in the reports.
type Scale struct {
	order  []string
	points map[string]Points
}

// LoadScale reads the grades file. The file is a JSON object keyed by letter
// grade; key order is preserved.
func LoadScale(path string) (*Scale, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grades file: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read grades file: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("grades file must be a JSON object, got %v", tok)
	}

	s := &Scale{points: make(map[string]Points)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to read grade key: %w", err)
		}
		grade := keyTok.(string)

		var p Points
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode points for grade %q: %w", grade, err)
		}
		if _, dup := s.points[grade]; dup {
			return nil, fmt.Errorf("duplicate grade %q in grades file", grade)
		}
		s.order = append(s.order, grade)
		s.points[grade] = p
	}
	if len(s.order) == 0 {
		return nil, fmt.Errorf("grades file %q defines no grades", path)
	}
	return s, nil
}

// Point returns the grade-point value of grade on the given scale variant.
// ok is false for grades outside the table (withheld results, medicals);
// those contribute neither points nor credits to a GPA.
func (s *Scale) Point(grade string, v Variant) (float64, bool) {
	p, ok := s.points[grade]
	if !ok {
		return 0, false
	}
	if v == Variant42 {
		return p.GPA42, true
	}
	return p.GPA40, true
}

// Contains reports whether grade is in the table.
func (s *Scale) Contains(grade string) bool {
	_, ok := s.points[grade]
	return ok
}

// Grades returns the letter grades in file order.
func (s *Scale) Grades() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Max returns the highest grade-point value on the given variant. Used when
// projecting the best attainable SGPA for modules without results yet.
func (s *Scale) Max(v Variant) float64 {
	best := 0.0
	for _, p := range s.points {
		val := p.GPA40
		if v == Variant42 {
			val = p.GPA42
		}
		best = math.Max(best, val)
	}
	return best
}

// Round2 rounds a GPA to two decimals, the precision every report uses.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
