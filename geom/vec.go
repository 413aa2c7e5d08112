/*package geom contains the spatial types shared by the voxelizer: single
precision points and the cell-aligned grids they are binned onto.
*/
package geom

import (
	"github.com/molgrid/gridmaker/f32"
)

// Vec is a point in space whose components are single precision scalars.
type Vec [3]f32.Float

// NewVec rounds each coordinate to single precision.
func NewVec(x, y, z float64) Vec {
	return Vec{f32.New(x), f32.New(y), f32.New(z)}
}

// Sub returns v - u.
func (v Vec) Sub(u Vec) Vec {
	return Vec{v[0].Sub(u[0]), v[1].Sub(u[1]), v[2].Sub(u[2])}
}

// DistSq returns the squared distance between v and u. The squared
// components are summed in x, y, z order.
func (v Vec) DistSq(u Vec) f32.Float {
	d := v.Sub(u)
	return d[0].Pow(2).Add(d[1].Pow(2)).Add(d[2].Pow(2))
}

// Float64 widens v.
func (v Vec) Float64() [3]float64 {
	return [3]float64{v[0].Float64(), v[1].Float64(), v[2].Float64()}
}
