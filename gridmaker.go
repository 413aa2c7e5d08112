/*package gridmaker voxelizes lists of atoms onto multi-channel density grids.

Every atom is smeared onto the channel of its type with the piecewise
Gaussian/quadratic model in the density package. All arithmetic is carried
out in single precision, one rounded operation at a time, so grids are bit
for bit identical to those produced by a float32 pipeline that performs the
same operations in the same order.

Atoms are cut off at Radius * RadiusMultiple. Tools that scale the cutoff by
RadiusMultiple twice produce grids that are not numerically compatible with
the ones made here.
*/
package gridmaker

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/molgrid/gridmaker/density"
	"github.com/molgrid/gridmaker/f32"
	"github.com/molgrid/gridmaker/geom"
)

// Params contains the settings used to construct a Maker.
type Params struct {
	// Edge length of a single voxel.
	Resolution float64
	// Voxels along each side of the grid.
	Dimension int

	// Cutoff factor: atoms contribute nothing past Radius * RadiusMultiple.
	RadiusMultiple float64
	// Radius factor of the Gaussian core.
	GaussianResolution float64

	// Grid center. If nil, the centroid of the atoms is used.
	Center *[3]float64

	// Number of channels voxelized concurrently. Values below 2 voxelize
	// every atom sequentially.
	Workers int
}

// DefaultParams returns Params with the default density model and no fixed
// center.
func DefaultParams(resolution float64, dimension int) *Params {
	return &Params{
		Resolution:         resolution,
		Dimension:          dimension,
		RadiusMultiple:     density.DefaultRadiusMultiple,
		GaussianResolution: density.DefaultGaussianResolution,
		Workers:            1,
	}
}

// Maker converts atoms into density grids. The origin of the most recent grid
// is kept so that its channels can be exported afterwards. A Maker must not
// be used by multiple goroutines at once.
type Maker struct {
	resolution f32.Float
	dimension  int
	center     *geom.Vec
	model      *density.Model
	workers    int

	origin *geom.Vec
}

// NewMaker creates a Maker from p. Degenerate numeric parameters (zero
// resolution, zero radii) are accepted and show up as NaNs and infinities in
// the output.
func NewMaker(p *Params) (*Maker, error) {
	if p.Dimension < 1 {
		return nil, fmt.Errorf(
			"Grid dimension must be at least 1, but is %d.", p.Dimension,
		)
	}

	m := &Maker{
		resolution: f32.New(p.Resolution),
		dimension:  p.Dimension,
		model:      density.NewModel(p.RadiusMultiple, p.GaussianResolution),
		workers:    p.Workers,
	}
	if p.Center != nil {
		c := geom.NewVec(p.Center[0], p.Center[1], p.Center[2])
		m.center = &c
	}

	return m, nil
}

// Model returns the density model used by m.
func (m *Maker) Model() *density.Model { return m.model }

// Resolution returns the edge length of a voxel.
func (m *Maker) Resolution() f32.Float { return m.resolution }

// Dimension returns the number of voxels along each side of the grid.
func (m *Maker) Dimension() int { return m.dimension }

// Origin returns the world position of voxel (0, 0, 0) of the last grid made
// by m. ok is false if MakeGrid has not succeeded yet.
func (m *Maker) Origin() (origin geom.Vec, ok bool) {
	if m.origin == nil {
		return geom.Vec{}, false
	}
	return *m.origin, true
}

// Geometry describes the grid produced by the last MakeGrid call.
type Geometry struct {
	Origin                             geom.Vec
	Resolution                         f32.Float
	Dimension                          int
	RadiusMultiple, GaussianResolution f32.Float
}

// Geometry returns the geometry of the last grid made by m. ok is false if
// MakeGrid has not succeeded yet.
func (m *Maker) Geometry() (g Geometry, ok bool) {
	if m.origin == nil {
		return Geometry{}, false
	}
	return Geometry{
		Origin:             *m.origin,
		Resolution:         m.resolution,
		Dimension:          m.dimension,
		RadiusMultiple:     m.model.RadiusMultiple,
		GaussianResolution: m.model.GaussianResolution,
	}, true
}

// MakeGrid voxelizes atoms into a tensor with one channel per entry of types.
// Contributions to the same cell are summed in the order the atoms are given.
//
// An empty atom list without a fixed center results in a NaN origin and an
// all-zero tensor. An atom whose type is not in types is an error, and m is
// left unchanged.
func (m *Maker) MakeGrid(atoms []Atom, types []TypeInfo) (*Tensor, error) {
	for i := range atoms {
		if atoms[i].Type < 0 || atoms[i].Type >= len(types) {
			return nil, fmt.Errorf(
				"Atom %d has type %d, but only %d types were given.",
				i, atoms[i].Type, len(types),
			)
		}
	}

	center := m.center
	if center == nil {
		c := Centroid(atoms)
		center = &c
	}

	half := f32.New(float64(m.dimension) / 2).Mul(m.resolution)
	origin := geom.Vec{
		center[0].Sub(half), center[1].Sub(half), center[2].Sub(half),
	}

	radii := make([]f32.Float, len(types))
	for i := range types {
		radii[i] = f32.New(types[i].Radius)
	}

	t := NewTensor(len(types), m.dimension)
	if m.workers > 1 && len(types) > 1 {
		m.addChannels(atoms, radii, &origin, t)
	} else {
		for i := range atoms {
			m.addAtom(&atoms[i], radii[atoms[i].Type], &origin, t)
		}
	}

	m.origin = &origin
	return t, nil
}

// addChannels voxelizes each channel in its own goroutine. A cell only ever
// receives atoms of its own channel, and each goroutine visits them in input
// order, so the result is identical to the sequential loop.
func (m *Maker) addChannels(
	atoms []Atom, radii []f32.Float, origin *geom.Vec, t *Tensor,
) {
	byType := make([][]int, t.Channels)
	for i := range atoms {
		byType[atoms[i].Type] = append(byType[atoms[i].Type], i)
	}

	g := new(errgroup.Group)
	g.SetLimit(m.workers)
	for c := range byType {
		idxs := byType[c]
		if len(idxs) == 0 {
			continue
		}

		g.Go(func() error {
			for _, i := range idxs {
				m.addAtom(&atoms[i], radii[atoms[i].Type], origin, t)
			}
			return nil
		})
	}
	g.Wait()
}

// addAtom adds the density of a single atom to every cell in its bounding
// box.
func (m *Maker) addAtom(
	atom *Atom, radius f32.Float, origin *geom.Vec, t *Tensor,
) {
	pos := geom.NewVec(atom.X, atom.Y, atom.Z)
	rGrid := m.model.Cutoff(radius).Div(m.resolution)

	var lo, hi [3]float64
	for i := 0; i < 3; i++ {
		center := pos[i].Sub(origin[i]).Div(m.resolution)
		lo[i] = center.Sub(rGrid).Float64()
		hi[i] = center.Add(rGrid).Float64()
	}

	cb := &geom.CellBounds{}
	if !t.grid.Bounds(lo, hi, cb) {
		return
	}

	ch := t.Channel(atom.Type)
	pt := geom.Vec{}
	for i := cb.Origin[0]; i <= cb.Max(0); i++ {
		pt[0] = origin[0].Add(f32.Int(i).Mul(m.resolution))
		for j := cb.Origin[1]; j <= cb.Max(1); j++ {
			pt[1] = origin[1].Add(f32.Int(j).Mul(m.resolution))
			for k := cb.Origin[2]; k <= cb.Max(2); k++ {
				pt[2] = origin[2].Add(f32.Int(k).Mul(m.resolution))

				idx := t.grid.Idx(i, j, k)
				rho := m.model.Density(pos, pt, radius)
				ch[idx] = float32(f32.Float(ch[idx]).Add(rho))
			}
		}
	}
}

// Centroid returns the mean position of atoms. Coordinates are summed in
// single precision in the order given. The centroid of no atoms is NaN.
func Centroid(atoms []Atom) geom.Vec {
	sum := geom.Vec{}
	for i := range atoms {
		sum[0] = sum[0].Add(f32.New(atoms[i].X))
		sum[1] = sum[1].Add(f32.New(atoms[i].Y))
		sum[2] = sum[2].Add(f32.New(atoms[i].Z))
	}

	n := f32.Int(len(atoms))
	return geom.Vec{sum[0].Div(n), sum[1].Div(n), sum[2].Div(n)}
}
