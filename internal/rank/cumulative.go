package rank

import (
	"sort"

	"github.com/LGsekara1/CGPA-gen/internal/grading"
	"github.com/LGsekara1/CGPA-gen/internal/results"
)

// CumulativeStanding is one student's position across every semester with
// results. Per-semester SGPAs are aligned with the semester list the ranking
// was built from; Present marks semesters the student actually sat.
type CumulativeStanding struct {
	Index        int
	SGPA40       []float64
	SGPA42       []float64
	Present      []bool
	CGPA40       float64
	CGPA42       float64
	TotalCredits float64
	Rank         int
	Rank42       int
}

// Cumulative accumulates weighted grade points and credits across the given
// semesters (in the order supplied) and ranks students by CGPA(4.0), with
// CGPA(4.2), per-semester SGPA(4.2)s and the index number as tie-breaks.
func Cumulative(sems []*results.SemesterResults, sc *grading.Scale) []CumulativeStanding {
	type acc struct {
		weighted40 float64
		weighted42 float64
		credits    float64
		standing   *CumulativeStanding
	}

	byStudent := make(map[int]*acc)
	for semIdx, sr := range sems {
		for idx, grades := range sr.ByStudent {
			a, ok := byStudent[idx]
			if !ok {
				a = &acc{standing: &CumulativeStanding{
					Index:   idx,
					SGPA40:  make([]float64, len(sems)),
					SGPA42:  make([]float64, len(sems)),
					Present: make([]bool, len(sems)),
				}}
				byStudent[idx] = a
			}

			for code, grade := range grades {
				st, known := sr.Stats[code]
				if !known {
					continue
				}
				p40, inScale := sc.Point(grade, grading.Variant40)
				if !inScale {
					continue
				}
				p42, _ := sc.Point(grade, grading.Variant42)
				a.weighted40 += st.Credits * p40
				a.weighted42 += st.Credits * p42
				a.credits += st.Credits
			}

			a.standing.SGPA40[semIdx] = SGPA(grades, sr.Stats, sc, grading.Variant40)
			a.standing.SGPA42[semIdx] = SGPA(grades, sr.Stats, sc, grading.Variant42)
			a.standing.Present[semIdx] = true
		}
	}

	standings := make([]CumulativeStanding, 0, len(byStudent))
	for _, a := range byStudent {
		s := a.standing
		s.TotalCredits = a.credits
		if a.credits > 0 {
			s.CGPA40 = grading.Round2(a.weighted40 / a.credits)
			s.CGPA42 = grading.Round2(a.weighted42 / a.credits)
		}
		standings = append(standings, *s)
	}

	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.CGPA40 != b.CGPA40 {
			return a.CGPA40 > b.CGPA40
		}
		if a.CGPA42 != b.CGPA42 {
			return a.CGPA42 > b.CGPA42
		}
		for k := range a.SGPA42 {
			if a.SGPA42[k] != b.SGPA42[k] {
				return a.SGPA42[k] > b.SGPA42[k]
			}
		}
		return a.Index < b.Index
	})

	cgpa40s := make([]float64, len(standings))
	cgpa42s := make([]float64, len(standings))
	for i, s := range standings {
		cgpa40s[i] = s.CGPA40
		cgpa42s[i] = s.CGPA42
	}
	ranks40 := sharedRanks(cgpa40s)
	ranks42 := sharedRanks(cgpa42s)
	for i := range standings {
		standings[i].Rank = ranks40[i]
		standings[i].Rank42 = ranks42[i]
	}
	return standings
}
