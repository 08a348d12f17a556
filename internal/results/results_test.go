package results

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LGsekara1/CGPA-gen/internal/roster"
	"github.com/LGsekara1/CGPA-gen/internal/semester"
)

func testConfig() semester.Config {
	return semester.Config{
		Name: "sem1",
		Modules: []semester.Module{
			{Code: "EN1014", Title: "Microcontroller Based Design", Credits: 3},
			{Code: "EN1020", Title: "Circuits and Fields", Credits: 3},
			{Code: "MA1014", Title: "Mathematics", Credits: 4},
		},
	}
}

func testRoster() roster.Roster {
	return roster.Roster{
		230012: {RawIndex: "230012U", Index: "230012", Name: "PERERA A.B.C."},
		230034: {RawIndex: "230034X", Index: "230034", Name: "SILVA D.E."},
		230055: {RawIndex: "230055T", Index: "230055", Name: "FERNANDO F.G."},
	}
}

func TestLoadSemesterIngestsCSVAndHTML(t *testing.T) {
	sr, err := LoadSemester(testConfig(), testRoster(), filepath.Join("testdata", "results"), Corrections{}, zap.NewNop())
	require.NoError(t, err)

	// MA1014 has no sheet, so the semester is partial.
	assert.Equal(t, []string{"EN1014", "EN1020"}, sr.Available)
	assert.False(t, sr.Complete(testConfig()))

	// Dirty indexes are cleaned, unknown ones dropped.
	require.Contains(t, sr.ByStudent, 230012)
	assert.Equal(t, "A+", sr.ByStudent[230012]["EN1014"])
	assert.Equal(t, "B", sr.ByStudent[230034]["EN1014"])
	assert.Equal(t, "A", sr.ByStudent[230012]["EN1020"])
	assert.Equal(t, "C+", sr.ByStudent[230034]["EN1020"])
	assert.Len(t, sr.ByStudent, 3)

	stats := sr.Stats["EN1014"]
	assert.Equal(t, 3.0, stats.Credits)
	assert.Equal(t, 3, stats.Total(), "999999Z and the header row must not count")
	assert.Equal(t, 1, stats.GradeCounts["A+"])

	stats = sr.Stats["EN1020"]
	assert.Equal(t, 3, stats.Total(), "888888Q is not on the roster")
	assert.Equal(t, 1, stats.GradeCounts["B+"])
}

func TestCorrectionsOverlay(t *testing.T) {
	corr := Corrections{
		"EN1014": {
			"230034": "A-", // replaces an ingested grade
			"230055": "B+",
			"777777": "A", // not on the roster, ignored
			"badidx": "A",
		},
		"ZZ9999": {"230012": "A"}, // module without a sheet, ignored
	}

	sr, err := LoadSemester(testConfig(), testRoster(), filepath.Join("testdata", "results"), corr, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "A-", sr.ByStudent[230034]["EN1014"])
	assert.Equal(t, "B+", sr.ByStudent[230055]["EN1014"])

	stats := sr.Stats["EN1014"]
	assert.Equal(t, 3, stats.Total(), "corrections replace, they do not add")
	assert.Equal(t, 1, stats.GradeCounts["A-"])
	assert.Equal(t, 1, stats.GradeCounts["B+"])
	assert.NotContains(t, stats.GradeCounts, "B")
}

func TestLoadCorrectionsMissingFile(t *testing.T) {
	c, err := LoadCorrections(filepath.Join(t.TempDir(), "corrections.json"), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, c)
}
