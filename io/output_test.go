package io

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFixed(t *testing.T) {
	table := []struct {
		x   float64
		out string
	}{
		{0, "0.000000"},
		{math.Copysign(0, -1), "0.000000"},
		{1, "1.000000"},
		{0.5, "0.500000"},
		{float64(float32(0.1)), "0.100000"},
		{float64(float32(0.60653067)), "0.606531"},
		{-1e-9, "-0.000000"},
		{12345.6789, "12345.678900"},
		// Exact halves are rounded away from zero.
		{0.0078125, "0.007813"},
		{-0.0078125, "-0.007813"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{1e21, "1e+21"},
	}

	for i, test := range table {
		assert.Equal(t, test.out, FormatFixed(test.x), "%d) %g", i, test.x)
	}
}

func TestFormatNumber(t *testing.T) {
	table := []struct {
		x   float64
		out string
	}{
		{0, "0"},
		{-1, "-1"},
		{0.5, "0.5"},
		{48, "48"},
		{float64(float32(40.761002)), "40.76100158691406"},
		{123e18, "123000000000000000000"},
		{1e21, "1e+21"},
		{1.5e22, "1.5e+22"},
		{0.000001, "0.000001"},
		{1.5e-7, "1.5e-7"},
		{-2e-10, "-2e-10"},
		{math.NaN(), "NaN"},
		{math.Inf(-1), "-Infinity"},
	}

	for i, test := range table {
		assert.Equal(t, test.out, FormatNumber(test.x), "%d) %g", i, test.x)
	}
}

func TestWriteDX(t *testing.T) {
	hd := &DXHeader{
		Counts: [3]int{2, 2, 1},
		Origin: [3]float64{-1, 0.5, 2},
		Delta:  0.25,
	}
	xs := []float32{1, 0.5, 0, 0.125}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteDX(buf, hd, xs))

	want := `object 1 class gridpositions counts 2 2 1
origin -1 0.5 2
delta 0.25 0 0
delta 0 0.25 0
delta 0 0 0.25
object 2 class gridconnections counts 2 2 1
object 3 class array type double rank 0 items 4 data follows
1.000000 0.500000 0.000000
0.125000 `
	assert.Equal(t, want, buf.String())
}

func TestWriteDXLength(t *testing.T) {
	hd := &DXHeader{Counts: [3]int{2, 2, 2}}
	err := WriteDX(&bytes.Buffer{}, hd, make([]float32, 7))
	assert.Error(t, err)
}

func TestDXRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5} {
		hd := &DXHeader{
			Counts: [3]int{n, n, n},
			Origin: [3]float64{-1.5, 0, float64(float32(17.421))},
			Delta:  0.5,
		}
		xs := make([]float32, hd.Items())
		for i := range xs {
			xs[i] = float32(i) / 8
		}

		buf := &bytes.Buffer{}
		require.NoError(t, WriteDX(buf, hd, xs))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		valueLines := lines[7:]
		assert.Len(t, valueLines, (len(xs)+2)/3, "n = %d", n)
		for i, line := range valueLines {
			if i < len(valueLines)-1 || len(xs)%3 == 0 {
				assert.Len(t, strings.Fields(line), 3)
			} else {
				assert.Len(t, strings.Fields(line), len(xs)%3)
			}
		}

		rhd, rxs, err := ReadDX(buf)
		require.NoError(t, err, "n = %d", n)
		assert.Equal(t, hd, rhd)
		assert.Equal(t, xs, rxs)
	}
}

func TestReadDXErrors(t *testing.T) {
	good := `object 1 class gridpositions counts 1 1 2
origin 0 0 0
delta 1 0 0
delta 0 1 0
delta 0 0 1
object 2 class gridconnections counts 1 1 2
object 3 class array type double rank 0 items 2 data follows
1.000000 2.000000 `

	_, xs, err := ReadDX(strings.NewReader(good))
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, xs)

	bad := []string{
		"",
		strings.Replace(good, "origin 0 0 0", "origin 0 0", 1),
		strings.Replace(good, "counts 1 1 2\norigin", "counts 1 2 2\norigin", 1),
		strings.Replace(good, "items 2", "items 3", 1),
		strings.Replace(good, "2.000000 ", "", 1),
		strings.Replace(good, "2.000000", "two", 1),
	}
	for i, text := range bad {
		_, _, err := ReadDX(strings.NewReader(text))
		assert.Error(t, err, "%d)", i)
	}
}
