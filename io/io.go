/*package io reads atom lists from structure files, writes grids to DX files,
and handles configuration files.
*/
package io

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/phil-mansfield/table"
)

// AtomRecord is a single atom read from a structure file.
type AtomRecord struct {
	Name    string
	X, Y, Z float64
}

// PDB column ranges, zero-indexed and half-open.
var (
	pdbName = [2]int{12, 16}
	pdbX    = [2]int{30, 38}
	pdbY    = [2]int{38, 46}
	pdbZ    = [2]int{46, 54}
)

// ReadPDB reads every ATOM and HETATM record from rd. All other records are
// ignored.
func ReadPDB(rd io.Reader) ([]AtomRecord, error) {
	sc := bufio.NewScanner(rd)
	atoms := []AtomRecord{}

	for lineNum := 1; sc.Scan(); lineNum++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if !strings.HasPrefix(line, "ATOM") &&
			!strings.HasPrefix(line, "HETATM") {
			continue
		}

		if len(line) < pdbZ[1] {
			return nil, fmt.Errorf(
				"PDB line %d has %d columns, but atom records need at "+
					"least %d.", lineNum, len(line), pdbZ[1],
			)
		}

		rec := AtomRecord{
			Name: strings.TrimSpace(line[pdbName[0]:pdbName[1]]),
		}
		cols := []*float64{&rec.X, &rec.Y, &rec.Z}
		for i, span := range [][2]int{pdbX, pdbY, pdbZ} {
			field := strings.TrimSpace(line[span[0]:span[1]])
			x, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf(
					"PDB line %d: could not parse %c coordinate '%s'.",
					lineNum, "xyz"[i], field,
				)
			}
			*cols[i] = x
		}

		atoms = append(atoms, rec)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}
	return atoms, nil
}

// ReadPDBFile reads the atoms in the PDB file fname.
func ReadPDBFile(fname string) ([]AtomRecord, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadPDB(f)
}

// ReadAtomTable reads atoms from a whitespace-separated text file where each
// row is "x y z type". Type must be a non-negative integer.
func ReadAtomTable(fname string) (xs, ys, zs []float64, types []int, err error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3}, nil)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	xs, ys, zs = cols[0], cols[1], cols[2]
	types = make([]int, len(cols[3]))
	for i, t := range cols[3] {
		if t < 0 || t != math.Trunc(t) {
			return nil, nil, nil, nil, fmt.Errorf(
				"Row %d of '%s' has type %g, which is not a non-negative "+
					"integer.", i, fname, t,
			)
		}
		types[i] = int(t)
	}

	return xs, ys, zs, types, nil
}
