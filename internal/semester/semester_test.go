package semester

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCoursesList(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "sem1.json"))
	require.NoError(t, err)

	assert.Equal(t, "sem1", cfg.Name)
	require.Len(t, cfg.Modules, 4)
	assert.Equal(t, "EN1014", cfg.Modules[0].Code)
	assert.Equal(t, "EN1971", cfg.Modules[3].Code)
	assert.Equal(t, 11.0, cfg.TotalCredits())
}

func TestLoadConfigModulesObjectKeepsOrder(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "sem2.json"))
	require.NoError(t, err)

	assert.Equal(t, "sem2", cfg.Name)

	var codes []string
	for _, m := range cfg.Modules {
		codes = append(codes, m.Code)
	}
	want := []string{"EN2014", "EN2024", "MA2014"}
	if diff := cmp.Diff(want, codes); diff != "" {
		t.Fatalf("module order mismatch (-want +got):\n%s", diff)
	}

	m, ok := cfg.Module("EN2024")
	require.True(t, ok)
	assert.Equal(t, "Electronics II", m.Title)
	assert.Equal(t, 3.0, m.Credits)
}

func TestDiscoverSorted(t *testing.T) {
	files, err := Discover("testdata")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "sem1.json", filepath.Base(files[0]))
	assert.Equal(t, "sem2.json", filepath.Base(files[1]))
}

func TestSortConfigs(t *testing.T) {
	cfgs := []Config{
		{Name: "Fall 2023"},
		{Name: "Spring 2023"},
		{Name: "sem2"},
		{Name: "sem1"},
		{Name: "Summer 2022"},
	}
	SortConfigs(cfgs)

	var names []string
	for _, c := range cfgs {
		names = append(names, c.Name)
	}
	want := []string{"sem1", "sem2", "Summer 2022", "Spring 2023", "Fall 2023"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("semester order mismatch (-want +got):\n%s", diff)
	}
}
