package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "grid.config")
	require.NoError(t, os.WriteFile(fname, []byte(text), 0644))
	return fname
}

func TestExampleGridFile(t *testing.T) {
	wrap, err := ReadGridConfig(writeConfig(t, ExampleGridFile))
	require.NoError(t, err)

	con := &wrap.Grid
	assert.True(t, con.ValidInput())
	assert.True(t, con.ValidOutput())
	assert.True(t, con.ValidResolution())
	assert.True(t, con.ValidDimension())
	assert.True(t, con.ValidInputFormat())
	assert.False(t, con.ValidLogFile())
	assert.Equal(t, PDBFormat, con.Format())
	assert.Equal(t, 0.5, con.Resolution)
	assert.Equal(t, 48, con.Dimension)
	assert.Equal(t, 1.5, con.RadiusMultiple)
	assert.Equal(t, 0.5, con.GaussianResolution)
	assert.Nil(t, con.Center())

	types, err := wrap.Types()
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "carbon", types[0].Name)
	assert.Equal(t, "C", types[0].Prefix)
	assert.Equal(t, "other", types[1].Name)
	assert.Equal(t, 1.0, types[1].Radius)
}

func TestGridConfigCenter(t *testing.T) {
	text := `[Grid]
Input = a.txt
Output = out
InputFormat = Table
Resolution = 1
Dimension = 4
FixedCenter = true
CenterX = 1
CenterY = -2
CenterZ = 3.5

[Type "a"]
Channel = 0
Radius = 1.2`

	wrap, err := ReadGridConfig(writeConfig(t, text))
	require.NoError(t, err)
	assert.Equal(t, TableFormat, wrap.Grid.Format())
	assert.Equal(t, &[3]float64{1, -2, 3.5}, wrap.Grid.Center())
}

func TestTypesErrors(t *testing.T) {
	table := []map[string]*TypeConfig{
		{},
		{"a": {Channel: 0, Radius: 0}},
		{"a": {Channel: -1, Radius: 1}},
		{"a": {Channel: 0, Radius: 1}, "b": {Channel: 0, Radius: 1, Prefix: "B"}},
		{"a": {Channel: 0, Radius: 1}, "b": {Channel: 2, Radius: 1, Prefix: "B"}},
		{"a": {Channel: 0, Radius: 1}, "b": {Channel: 1, Radius: 1}},
	}

	for i, types := range table {
		wrap := DefaultGridWrapper()
		wrap.Type = types
		_, err := wrap.Types()
		assert.Error(t, err, "%d)", i)
	}
}

func TestTyper(t *testing.T) {
	types := []TypeConfig{
		{Channel: 0, Radius: 1, Prefix: "C"},
		{Channel: 1, Radius: 1, Prefix: "CL"},
		{Channel: 2, Radius: 1},
	}
	ty := NewTyper(types)

	table := []struct {
		name string
		c    int
	}{
		{"CA", 0}, {"C", 0}, {"CL1", 1}, {"N", 2}, {"", 2}, {"OXT", 2},
	}
	for _, test := range table {
		c, ok := ty.Channel(test.name)
		assert.True(t, ok, test.name)
		assert.Equal(t, test.c, c, test.name)
	}

	strict := NewTyper(types[:2])
	_, ok := strict.Channel("N")
	assert.False(t, ok)
}
