package gridmaker

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/molgrid/gridmaker/geom"
)

// Tensor is a dense [channel][x][y][z] array of single precision values
// stored in one flat, row-major buffer.
type Tensor struct {
	Channels, Dimension int
	Data                []float32

	grid *geom.Grid
}

// NewTensor allocates a zeroed tensor with the given number of channels and
// dimension^3 cells per channel.
func NewTensor(channels, dimension int) *Tensor {
	g := geom.NewCube(dimension)
	return &Tensor{
		Channels:  channels,
		Dimension: dimension,
		Data:      make([]float32, channels*g.Volume),
		grid:      g,
	}
}

// Shape returns {channels, dimension, dimension, dimension}.
func (t *Tensor) Shape() [4]int {
	d := t.Dimension
	return [4]int{t.Channels, d, d, d}
}

// Grid returns the geometry of a single channel.
func (t *Tensor) Grid() *geom.Grid { return t.grid }

// Idx returns the index into Data of the given cell.
func (t *Tensor) Idx(c, x, y, z int) int {
	return c*t.grid.Volume + t.grid.Idx(x, y, z)
}

// At returns the value of the given cell. It panics if the cell is outside
// of t, even when the flat index would land inside Data.
func (t *Tensor) At(c, x, y, z int) float32 {
	idx, ok := t.grid.IdxCheck(x, y, z)
	if !ok || c < 0 || c >= t.Channels {
		panic(fmt.Sprintf(
			"Cell (%d, %d, %d, %d) is outside of a tensor with shape %v.",
			c, x, y, z, t.Shape(),
		))
	}
	return t.Data[c*t.grid.Volume+idx]
}

// Channel returns the cells of channel c. The returned slice aliases Data.
func (t *Tensor) Channel(c int) []float32 {
	vol := t.grid.Volume
	return t.Data[c*vol : (c+1)*vol]
}

// ChannelSummary describes the contents of one channel.
type ChannelSummary struct {
	Max, Sum float64
	NonZero  int
	// Cell holding Max. Ties go to the lowest flat index.
	MaxCell [3]int
}

// Summary computes statistics over channel c.
func (t *Tensor) Summary(c int) ChannelSummary {
	xs := t.Channel(c)
	buf := make([]float64, len(xs))
	s := ChannelSummary{}
	for i, x := range xs {
		buf[i] = float64(x)
		if x != 0 {
			s.NonZero++
		}
	}

	if len(buf) > 0 {
		i := floats.MaxIdx(buf)
		s.Max = buf[i]
		s.MaxCell[0], s.MaxCell[1], s.MaxCell[2] = t.grid.Coords(i)
	}
	s.Sum = floats.Sum(buf)
	return s
}
