package geom

import (
	"math"
)

// Grid provides an interface for reasoning over a 1D slice as if it were a
// 3D grid. Points are stored in row-major order: z varies fastest, then y,
// then x.
type Grid struct {
	CellBounds
	Length, Area, Volume int
	uBounds [3]int
}

// CellBounds represents a bounding box aligned to grid cells.
type CellBounds struct {
	Origin, Width [3]int
}

// NewGrid returns a new Grid instance.
func NewGrid(origin [3]int, width [3]int) *Grid {
	g := &Grid{}
	g.Init(origin, width)
	return g
}

// NewCube returns a Grid with n cells on each side, starting at (0, 0, 0).
func NewCube(n int) *Grid {
	return NewGrid([3]int{0, 0, 0}, [3]int{n, n, n})
}

// Init initializes a Grid instance.
func (g *Grid) Init(origin [3]int, width [3]int) {
	g.Origin = origin
	g.Width = width

	g.Length = width[2]
	g.Area = width[1] * width[2]
	g.Volume = width[0] * width[1] * width[2]

	for i := 0; i < 3; i++ {
		g.uBounds[i] = g.Origin[i] + g.Width[i]
	}
}

// Idx returns the grid index corresponding to a set of coordinates.
func (g *Grid) Idx(x, y, z int) int {
	return (x-g.Origin[0])*g.Area + (y-g.Origin[1])*g.Length +
		(z - g.Origin[2])
}

// IdxCheck returns the index of a cell and true, or -1 and false if the
// cell is outside the Grid.
func (g *Grid) IdxCheck(x, y, z int) (idx int, ok bool) {
	if !g.BoundsCheck(x, y, z) {
		return -1, false
	}

	return g.Idx(x, y, z), true
}

// BoundsCheck reports whether cell (x, y, z) lies inside the Grid.
func (g *Grid) BoundsCheck(x, y, z int) bool {
	return (g.Origin[0] <= x && g.Origin[1] <= y && g.Origin[2] <= z) &&
		(x < g.uBounds[0] && y < g.uBounds[1] && z < g.uBounds[2])
}

// Coords returns the x, y, z coordinates of a point from its grid index.
func (g *Grid) Coords(idx int) (x, y, z int) {
	x = idx/g.Area + g.Origin[0]
	y = (idx%g.Area)/g.Length + g.Origin[1]
	z = idx%g.Length + g.Origin[2]
	return x, y, z
}

// Bounds returns the cell bounds covering the continuous, cell-unit
// interval [lo[i], hi[i]] along each axis, clipped to the grid. The lower
// edge is floored and the upper edge is ceiled, so every cell the interval
// touches is included. ok is false if any edge is NaN or if the clipped box
// is empty.
func (g *Grid) Bounds(lo, hi [3]float64, cb *CellBounds) (ok bool) {
	for i := 0; i < 3; i++ {
		low := math.Max(float64(g.Origin[i]), math.Floor(lo[i]))
		high := math.Min(float64(g.uBounds[i]-1), math.Ceil(hi[i]))
		if math.IsNaN(low) || math.IsNaN(high) {
			*cb = CellBounds{}
			return false
		} else if high < low {
			cb.Origin[i], cb.Width[i] = 0, 0
			continue
		}

		cb.Origin[i] = int(low)
		cb.Width[i] = int(high) - int(low) + 1
	}

	if cb.Empty() {
		*cb = CellBounds{}
		return false
	}
	return true
}

// Empty returns true if cb contains no cells.
func (cb *CellBounds) Empty() bool {
	return cb.Width[0] <= 0 || cb.Width[1] <= 0 || cb.Width[2] <= 0
}

// Max returns the last cell inside cb along dimension i.
func (cb *CellBounds) Max(i int) int {
	return cb.Origin[i] + cb.Width[i] - 1
}
