package grading

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScaleKeepsFileOrder(t *testing.T) {
	s, err := LoadScale(filepath.Join("testdata", "grades.json"))
	require.NoError(t, err)

	grades := s.Grades()
	require.Len(t, grades, 13)
	assert.Equal(t, "A+", grades[0])
	assert.Equal(t, "A", grades[1])
	assert.Equal(t, "F", grades[12])
}

func TestPointVariants(t *testing.T) {
	s, err := LoadScale(filepath.Join("testdata", "grades.json"))
	require.NoError(t, err)

	p, ok := s.Point("A+", Variant40)
	require.True(t, ok)
	assert.Equal(t, 4.0, p)

	p, ok = s.Point("A+", Variant42)
	require.True(t, ok)
	assert.Equal(t, 4.2, p)

	p, ok = s.Point("B-", Variant42)
	require.True(t, ok)
	assert.Equal(t, 2.7, p)

	_, ok = s.Point("I-we", Variant40)
	assert.False(t, ok, "grades outside the table must not resolve")
}

func TestMax(t *testing.T) {
	s, err := LoadScale(filepath.Join("testdata", "grades.json"))
	require.NoError(t, err)

	assert.Equal(t, 4.0, s.Max(Variant40))
	assert.Equal(t, 4.2, s.Max(Variant42))
}

func TestLoadScaleRejectsNonObject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grades.json")
	writeFile(t, path, `["A", "B"]`)

	_, err := LoadScale(path)
	assert.Error(t, err)
}

func TestLoadScaleRejectsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grades.json")
	writeFile(t, path, `{}`)

	_, err := LoadScale(path)
	assert.Error(t, err)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.67, Round2(3.6666))
	assert.Equal(t, 2.13, Round2(2.125))
	assert.Equal(t, 0.0, Round2(0))
}
