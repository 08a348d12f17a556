package rank

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LGsekara1/CGPA-gen/internal/grading"
	"github.com/LGsekara1/CGPA-gen/internal/results"
	"github.com/LGsekara1/CGPA-gen/internal/semester"
)

func testScale(t *testing.T) *grading.Scale {
	t.Helper()
	sc, err := grading.LoadScale(filepath.Join("testdata", "grades.json"))
	require.NoError(t, err)
	return sc
}

func twoModuleStats() map[string]results.Stats {
	return map[string]results.Stats{
		"EN1014": {Credits: 3},
		"EN1020": {Credits: 3},
		"MA1014": {Credits: 4},
	}
}

func TestSGPA(t *testing.T) {
	sc := testScale(t)
	grades := map[string]string{"EN1014": "A+", "EN1020": "B", "MA1014": "C+"}

	assert.Equal(t, 3.02, SGPA(grades, twoModuleStats(), sc, grading.Variant40))
	assert.Equal(t, 3.08, SGPA(grades, twoModuleStats(), sc, grading.Variant42))
}

func TestSGPAIgnoresGradesOutsideScale(t *testing.T) {
	sc := testScale(t)

	grades := map[string]string{"EN1014": "I-we", "EN1020": "A"}
	assert.Equal(t, 4.0, SGPA(grades, twoModuleStats(), sc, grading.Variant40),
		"a withheld result must not pull the average down")

	grades = map[string]string{"EN1014": "I-we"}
	assert.Equal(t, 0.0, SGPA(grades, twoModuleStats(), sc, grading.Variant40))
}

func TestSGPAIgnoresModulesWithoutStats(t *testing.T) {
	sc := testScale(t)
	grades := map[string]string{"EN1014": "A", "ZZ9999": "A+"}
	assert.Equal(t, 4.0, SGPA(grades, twoModuleStats(), sc, grading.Variant40))
}

func TestMaxAttainableSGPA(t *testing.T) {
	sc := testScale(t)
	cfg := semester.Config{
		Name: "sem1",
		Modules: []semester.Module{
			{Code: "EN1014", Credits: 3},
			{Code: "EN1020", Credits: 3},
			{Code: "MA1014", Credits: 4},
		},
	}

	grades := map[string]string{"EN1014": "B"}
	assert.Equal(t, 3.7, MaxAttainableSGPA(grades, twoModuleStats(), cfg, sc))

	// Everything graded: max equals the actual SGPA.
	grades = map[string]string{"EN1014": "A+", "EN1020": "B", "MA1014": "C+"}
	assert.Equal(t, 3.02, MaxAttainableSGPA(grades, twoModuleStats(), cfg, sc))
}

func semesterFixture() *results.SemesterResults {
	return &results.SemesterResults{
		Semester:  "sem1",
		Available: []string{"EN1014", "EN1020"},
		Stats: map[string]results.Stats{
			"EN1014": {Credits: 3},
			"EN1020": {Credits: 3},
		},
		ByStudent: map[int]map[string]string{
			101: {"EN1014": "A+", "EN1020": "A"},
			102: {"EN1014": "A", "EN1020": "A+"},
			103: {"EN1014": "B+", "EN1020": "B"},
		},
	}
}

func TestSemesterRankingSharedRanks(t *testing.T) {
	sc := testScale(t)
	cfg := semester.Config{Name: "sem1", Modules: []semester.Module{
		{Code: "EN1014", Credits: 3},
		{Code: "EN1020", Credits: 3},
	}}

	standings := Semester(semesterFixture(), cfg, sc)
	require.Len(t, standings, 3)

	var order []int
	for _, s := range standings {
		order = append(order, s.Index)
	}
	// 101 and 102 tie on both GPAs; the first module's 4.2 points break it.
	if diff := cmp.Diff([]int{101, 102, 103}, order); diff != "" {
		t.Fatalf("rank order mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 1, standings[1].Rank, "equal GPA(4.0) shares the rank")
	assert.Equal(t, 3, standings[2].Rank, "the next distinct GPA jumps by the tie size")

	assert.Equal(t, 1, standings[0].Rank42)
	assert.Equal(t, 1, standings[1].Rank42)
	assert.Equal(t, 3, standings[2].Rank42)

	assert.Equal(t, 4.0, standings[0].GPA40)
	assert.Equal(t, 4.1, standings[0].GPA42)
	assert.Equal(t, 2, standings[0].ModuleCount)
}

func TestSemesterRankingIndexTieBreak(t *testing.T) {
	sc := testScale(t)
	sr := &results.SemesterResults{
		Semester:  "sem1",
		Available: []string{"EN1014"},
		Stats:     map[string]results.Stats{"EN1014": {Credits: 3}},
		ByStudent: map[int]map[string]string{
			105: {"EN1014": "A"},
			104: {"EN1014": "A"},
		},
	}
	cfg := semester.Config{Name: "sem1", Modules: []semester.Module{{Code: "EN1014", Credits: 3}}}

	standings := Semester(sr, cfg, sc)
	require.Len(t, standings, 2)
	assert.Equal(t, 104, standings[0].Index, "identical records order by index")
	assert.Equal(t, 105, standings[1].Index)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 1, standings[1].Rank)
}

func TestSemesterRankingEmpty(t *testing.T) {
	sc := testScale(t)
	sr := &results.SemesterResults{Semester: "sem1", Stats: map[string]results.Stats{}, ByStudent: map[int]map[string]string{}}
	assert.Empty(t, Semester(sr, semester.Config{Name: "sem1"}, sc))
}

func TestCumulative(t *testing.T) {
	sc := testScale(t)
	sem1 := &results.SemesterResults{
		Semester:  "sem1",
		Available: []string{"EN1014"},
		Stats:     map[string]results.Stats{"EN1014": {Credits: 3}},
		ByStudent: map[int]map[string]string{
			101: {"EN1014": "A+"},
			102: {"EN1014": "B"},
		},
	}
	sem2 := &results.SemesterResults{
		Semester:  "sem2",
		Available: []string{"EN2014"},
		Stats:     map[string]results.Stats{"EN2014": {Credits: 3}},
		ByStudent: map[int]map[string]string{
			101: {"EN2014": "B"},
			102: {"EN2014": "A+"},
			103: {"EN2014": "A"},
		},
	}

	standings := Cumulative([]*results.SemesterResults{sem1, sem2}, sc)
	require.Len(t, standings, 3)

	// 103 sat one semester with a straight A.
	assert.Equal(t, 103, standings[0].Index)
	assert.Equal(t, 4.0, standings[0].CGPA40)
	assert.Equal(t, []bool{false, true}, standings[0].Present)
	assert.Equal(t, 3.0, standings[0].TotalCredits)
	assert.Equal(t, 1, standings[0].Rank)

	// 101 and 102 tie on both CGPAs; sem1's SGPA(4.2) breaks it.
	assert.Equal(t, 101, standings[1].Index)
	assert.Equal(t, 102, standings[2].Index)
	assert.Equal(t, 3.5, standings[1].CGPA40)
	assert.Equal(t, 3.6, standings[1].CGPA42)
	assert.Equal(t, 2, standings[1].Rank)
	assert.Equal(t, 2, standings[2].Rank)
	assert.Equal(t, 2, standings[1].Rank42)
	assert.Equal(t, 2, standings[2].Rank42)

	assert.Equal(t, 4.0, standings[1].SGPA40[0])
	assert.Equal(t, 3.0, standings[1].SGPA40[1])
}

func TestSharedRanks(t *testing.T) {
	got := sharedRanks([]float64{4.0, 4.0, 3.5, 3.5, 3.5, 3.0})
	want := []int{1, 1, 3, 3, 3, 6}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("shared ranks mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, sharedRanks(nil))
}
