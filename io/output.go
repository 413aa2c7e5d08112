package io

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"
)

/*
Grids are exported as OpenDX scalar fields. The layout is:

    object 1 class gridpositions counts <nx> <ny> <nz>
    origin <x> <y> <z>
    delta <h> 0 0
    delta 0 <h> 0
    delta 0 0 <h>
    object 2 class gridconnections counts <nx> <ny> <nz>
    object 3 class array type double rank 0 items <nx*ny*nz> data follows
    <value> <value> <value>
    ...

Values are written in row-major order (z varies fastest) with six decimal
places. Every value is followed by a single space and every third value by
a newline, so the last line is short when the count isn't a multiple of
three.
*/

// DXValuesPerLine is the number of grid values written on each line.
const DXValuesPerLine = 3

// DXHeader describes the geometry of a DX scalar field.
type DXHeader struct {
	Counts [3]int
	Origin [3]float64
	Delta  float64
}

// Items returns the number of values in the field.
func (hd *DXHeader) Items() int {
	return hd.Counts[0] * hd.Counts[1] * hd.Counts[2]
}

// WriteDX writes the scalar field xs to wr.
func WriteDX(wr io.Writer, hd *DXHeader, xs []float32) error {
	if len(xs) != hd.Items() {
		return fmt.Errorf(
			"DX header describes %d items, but %d values were given.",
			hd.Items(), len(xs),
		)
	}

	bw := bufio.NewWriter(wr)
	nx, ny, nz := hd.Counts[0], hd.Counts[1], hd.Counts[2]
	delta := FormatNumber(hd.Delta)

	fmt.Fprintf(bw, "object 1 class gridpositions counts %d %d %d\n", nx, ny, nz)
	fmt.Fprintf(
		bw, "origin %s %s %s\n", FormatNumber(hd.Origin[0]),
		FormatNumber(hd.Origin[1]), FormatNumber(hd.Origin[2]),
	)
	fmt.Fprintf(bw, "delta %s 0 0\n", delta)
	fmt.Fprintf(bw, "delta 0 %s 0\n", delta)
	fmt.Fprintf(bw, "delta 0 0 %s\n", delta)
	fmt.Fprintf(bw, "object 2 class gridconnections counts %d %d %d\n", nx, ny, nz)
	fmt.Fprintf(
		bw, "object 3 class array type double rank 0 items %d data follows\n",
		hd.Items(),
	)

	for i, x := range xs {
		bw.WriteString(FormatFixed(float64(x)))
		bw.WriteByte(' ')
		if (i+1)%DXValuesPerLine == 0 {
			bw.WriteByte('\n')
		}
	}

	return bw.Flush()
}

// ReadDX reads a scalar field written by WriteDX.
func ReadDX(rd io.Reader) (*DXHeader, []float32, error) {
	sc := bufio.NewScanner(rd)
	hd := &DXHeader{}
	items := 0
	lineNum := 0

	header := []func(fs []string) error{
		func(fs []string) error {
			return readCounts(fs, "gridpositions", &hd.Counts)
		},
		func(fs []string) error {
			if len(fs) != 4 || fs[0] != "origin" {
				return fmt.Errorf("expected 'origin x y z'")
			}
			for i := 0; i < 3; i++ {
				x, err := strconv.ParseFloat(fs[i+1], 64)
				if err != nil {
					return err
				}
				hd.Origin[i] = x
			}
			return nil
		},
		func(fs []string) error { return readDelta(fs, 0, &hd.Delta) },
		func(fs []string) error { return readDelta(fs, 1, &hd.Delta) },
		func(fs []string) error { return readDelta(fs, 2, &hd.Delta) },
		func(fs []string) error {
			counts := [3]int{}
			if err := readCounts(fs, "gridconnections", &counts); err != nil {
				return err
			}
			if counts != hd.Counts {
				return fmt.Errorf(
					"gridconnections counts %v do not match gridpositions "+
						"counts %v", counts, hd.Counts,
				)
			}
			return nil
		},
		func(fs []string) error {
			if len(fs) != 12 || fs[3] != "array" || fs[8] != "items" {
				return fmt.Errorf("expected array declaration")
			}
			n, err := strconv.Atoi(fs[9])
			if err != nil {
				return err
			}
			items = n
			return nil
		},
	}

	for _, parse := range header {
		if !sc.Scan() {
			return nil, nil, dxError(lineNum+1, io.ErrUnexpectedEOF, sc.Err())
		}
		lineNum++
		if err := parse(strings.Fields(sc.Text())); err != nil {
			return nil, nil, dxError(lineNum, err, nil)
		}
	}

	if items != hd.Items() {
		return nil, nil, fmt.Errorf(
			"DX file declares %d items, but counts give %d.",
			items, hd.Items(),
		)
	}

	xs := make([]float32, 0, items)
	for sc.Scan() {
		lineNum++
		for _, f := range strings.Fields(sc.Text()) {
			x, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, nil, dxError(lineNum, err, nil)
			}
			xs = append(xs, float32(x))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}

	if len(xs) != items {
		return nil, nil, fmt.Errorf(
			"DX file declares %d items, but contains %d.", items, len(xs),
		)
	}

	return hd, xs, nil
}

func readCounts(fs []string, class string, counts *[3]int) error {
	if len(fs) != 8 || fs[0] != "object" || fs[3] != class {
		return fmt.Errorf("expected '%s' object", class)
	}
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(fs[i+5])
		if err != nil {
			return err
		}
		counts[i] = n
	}
	return nil
}

func readDelta(fs []string, dim int, delta *float64) error {
	if len(fs) != 4 || fs[0] != "delta" {
		return fmt.Errorf("expected 'delta dx dy dz'")
	}
	x, err := strconv.ParseFloat(fs[dim+1], 64)
	if err != nil {
		return err
	}
	*delta = x
	return nil
}

func dxError(line int, err, cause error) error {
	if cause != nil {
		err = cause
	}
	return fmt.Errorf("DX line %d: %s", line, err.Error())
}

// FormatFixed formats x with six decimal places. Halves are rounded away
// from zero, and magnitudes of 1e21 or more fall back to FormatNumber.
func FormatFixed(x float64) string {
	switch {
	case x == 0:
		return "0.000000"
	case math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) >= 1e21:
		return FormatNumber(x)
	}
	// The exact binary value is needed to round halves correctly.
	return new(big.Rat).SetFloat64(x).FloatString(6)
}

// FormatNumber formats x with the fewest digits that round-trip. Plain
// decimal notation is used for 1e-6 <= |x| < 1e21, exponential notation
// otherwise.
func FormatNumber(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}

	sign := ""
	if x < 0 {
		sign, x = "-", -x
	}

	// d.ddde±XX
	e := strconv.FormatFloat(x, 'e', -1, 64)
	ei := strings.IndexByte(e, 'e')
	digits := strings.Replace(e[:ei], ".", "", 1)
	exp, _ := strconv.Atoi(e[ei+1:])
	k, n := len(digits), exp+1

	switch {
	case k <= n && n <= 21:
		return sign + digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return sign + digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return sign + "0." + strings.Repeat("0", -n) + digits
	}

	expSign := "+"
	if n-1 < 0 {
		expSign = "-"
	}
	out := digits[:1]
	if k > 1 {
		out += "." + digits[1:]
	}
	return fmt.Sprintf("%s%se%s%d", sign, out, expSign, abs(n-1))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
