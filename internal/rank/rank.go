// Package rank computes credit-weighted GPAs and orders students into
// ranked standings, per semester and cumulatively.
package rank

import (
	"math"
	"sort"

	"github.com/LGsekara1/CGPA-gen/internal/grading"
	"github.com/LGsekara1/CGPA-gen/internal/results"
	"github.com/LGsekara1/CGPA-gen/internal/semester"
)

// Standing is one student's computed position within a semester.
type Standing struct {
	Index       int
	Grades      map[string]string
	GPA40       float64
	GPA42       float64
	MaxGPA      float64
	ModuleCount int
	Rank        int // shared rank on the 4.0 scale
	Rank42      int // shared rank on the 4.2 scale
}

// SGPA is the credit-weighted mean of the student's grade points on the
// given scale variant. Modules whose grade is outside the scale contribute
// neither points nor credits. Zero counted credits yields 0.0.
func SGPA(grades map[string]string, stats map[string]results.Stats, sc *grading.Scale, v grading.Variant) float64 {
	var credits, weighted float64
	for code, grade := range grades {
		st, ok := stats[code]
		if !ok {
			continue
		}
		p, ok := sc.Point(grade, v)
		if !ok {
			continue
		}
		weighted += st.Credits * p
		credits += st.Credits
	}
	if credits == 0 {
		return 0
	}
	return grading.Round2(weighted / credits)
}

// MaxAttainableSGPA projects the best SGPA still reachable: the current
// weighted sum plus top grade points for every credit not yet graded, over
// the semester's full credit total.
func MaxAttainableSGPA(grades map[string]string, stats map[string]results.Stats, cfg semester.Config, sc *grading.Scale) float64 {
	var curSum, curCredits float64
	for code, grade := range grades {
		st, ok := stats[code]
		if !ok {
			continue
		}
		p, ok := sc.Point(grade, grading.Variant40)
		if !ok {
			continue
		}
		curSum += st.Credits * p
		curCredits += st.Credits
	}

	total := cfg.TotalCredits()
	if total == 0 {
		return 0
	}
	maxSum := curSum + (total-curCredits)*sc.Max(grading.Variant40)
	return grading.Round2(maxSum / total)
}

// Semester computes standings for every student with results and sorts them
// into rank order: GPA(4.0) first, GPA(4.2) next, then per-module 4.2 points
// in report column order, and finally the lower index number.
func Semester(sr *results.SemesterResults, cfg semester.Config, sc *grading.Scale) []Standing {
	standings := make([]Standing, 0, len(sr.ByStudent))
	for idx, grades := range sr.ByStudent {
		standings = append(standings, Standing{
			Index:       idx,
			Grades:      grades,
			GPA40:       SGPA(grades, sr.Stats, sc, grading.Variant40),
			GPA42:       SGPA(grades, sr.Stats, sc, grading.Variant42),
			MaxGPA:      MaxAttainableSGPA(grades, sr.Stats, cfg, sc),
			ModuleCount: len(grades),
		})
	}

	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.GPA40 != b.GPA40 {
			return a.GPA40 > b.GPA40
		}
		if a.GPA42 != b.GPA42 {
			return a.GPA42 > b.GPA42
		}
		for _, code := range sr.Available {
			pa := modulePoints(a.Grades, code, sc)
			pb := modulePoints(b.Grades, code, sc)
			if pa != pb {
				return pa > pb
			}
		}
		return a.Index < b.Index
	})

	gpa40s := make([]float64, len(standings))
	gpa42s := make([]float64, len(standings))
	for i, s := range standings {
		gpa40s[i] = s.GPA40
		gpa42s[i] = s.GPA42
	}
	ranks40 := sharedRanks(gpa40s)
	ranks42 := sharedRanks(gpa42s)
	for i := range standings {
		standings[i].Rank = ranks40[i]
		standings[i].Rank42 = ranks42[i]
	}
	return standings
}

func modulePoints(grades map[string]string, code string, sc *grading.Scale) float64 {
	grade, ok := grades[code]
	if !ok {
		return 0
	}
	p, ok := sc.Point(grade, grading.Variant42)
	if !ok {
		return 0
	}
	return p
}

// sharedRanks assigns competition ranks over values already in rank order:
// ties share a rank and the next distinct value jumps by the tie size.
func sharedRanks(vals []float64) []int {
	ranks := make([]int, len(vals))
	rank, gap := 1, 0
	prev := math.NaN()
	for i, v := range vals {
		if i > 0 && v == prev {
			ranks[i] = rank
			gap++
			continue
		}
		rank += gap
		ranks[i] = rank
		gap = 1
		prev = v
	}
	return ranks
}
