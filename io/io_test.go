package io

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pdbLine(rec string, serial int, name string, x, y, z float64) string {
	return fmt.Sprintf(
		"%-6s%5d %-4s %3s %1s%4d    %8.3f%8.3f%8.3f  1.00  0.00",
		rec, serial, name, "MET", "A", 1, x, y, z,
	)
}

func TestReadPDB(t *testing.T) {
	text := strings.Join([]string{
		"HEADER    TEST",
		pdbLine("ATOM", 1, "N", 27.34, 24.43, 2.614),
		pdbLine("ATOM", 2, "CA", 26.266, 25.413, -2.842),
		"TER",
		pdbLine("HETATM", 3, "O", -1.5, 0, 100.25) + "\r",
		"END",
	}, "\n")

	atoms, err := ReadPDB(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, atoms, 3)

	assert.Equal(t, AtomRecord{"N", 27.34, 24.43, 2.614}, atoms[0])
	assert.Equal(t, AtomRecord{"CA", 26.266, 25.413, -2.842}, atoms[1])
	assert.Equal(t, AtomRecord{"O", -1.5, 0, 100.25}, atoms[2])
}

func TestReadPDBErrors(t *testing.T) {
	short := "ATOM      1  N   MET A   1      27.340  24.430"
	_, err := ReadPDB(strings.NewReader(short))
	assert.Error(t, err)

	line := pdbLine("ATOM", 1, "N", 1, 2, 3)
	bad := line[:38] + "   abcde" + line[46:]
	_, err = ReadPDB(strings.NewReader(bad))
	assert.Error(t, err)

	atoms, err := ReadPDB(strings.NewReader("REMARK nothing here\n"))
	assert.NoError(t, err)
	assert.Len(t, atoms, 0)
}

func TestReadPDBFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "atoms.pdb")
	text := pdbLine("ATOM", 1, "C1", 1, 2, 3) + "\n"
	require.NoError(t, os.WriteFile(fname, []byte(text), 0644))

	atoms, err := ReadPDBFile(fname)
	require.NoError(t, err)
	assert.Equal(t, []AtomRecord{{"C1", 1, 2, 3}}, atoms)

	_, err = ReadPDBFile(filepath.Join(t.TempDir(), "missing.pdb"))
	assert.Error(t, err)
}

func TestReadAtomTable(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "atoms.txt")
	text := "1.0 2.0 3.0 0\n-4.5 5 6 1\n0 0 0 1\n"
	require.NoError(t, os.WriteFile(fname, []byte(text), 0644))

	xs, ys, zs, types, err := ReadAtomTable(fname)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -4.5, 0}, xs)
	assert.Equal(t, []float64{2, 5, 0}, ys)
	assert.Equal(t, []float64{3, 6, 0}, zs)
	assert.Equal(t, []int{0, 1, 1}, types)

	badName := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(badName, []byte("1 2 3 0.5\n"), 0644))
	_, _, _, _, err = ReadAtomTable(badName)
	assert.Error(t, err)
}
