/*package density computes the density an atom contributes to a point in
space.

An atom of radius r is modeled as a Gaussian, exp(-2 d^2 / r^2), inside
the core d <= r * GaussianResolution. Past the core the Gaussian is replaced
by a quadratic in d / r which matches it at the core boundary and falls to
zero at the cutoff, d = r * RadiusMultiple, for the default parameters.
Beyond the cutoff the density is exactly zero, so every atom has compact
support.

All arithmetic goes through f32.Float.
*/
package density

import (
	"github.com/molgrid/gridmaker/f32"
	"github.com/molgrid/gridmaker/geom"
)

const (
	DefaultRadiusMultiple     = 1.5
	DefaultGaussianResolution = 0.5
)

// Regime identifies which piece of the density function applies at a given
// distance.
type Regime int

const (
	Gaussian Regime = iota
	Quadratic
	Outside
)

func (r Regime) String() string {
	switch r {
	case Gaussian:
		return "Gaussian"
	case Quadratic:
		return "Quadratic"
	case Outside:
		return "Outside"
	}
	return "Unknown"
}

// Model is the piecewise density function. It is immutable once created and
// safe to share between goroutines.
type Model struct {
	RadiusMultiple, GaussianResolution f32.Float

	// Quadratic coefficients. They only depend on GaussianResolution.
	a, b, c f32.Float
}

// NewModel creates a Model with the given cutoff factor and Gaussian core
// factor.
func NewModel(radiusMultiple, gaussianResolution float64) *Model {
	m := &Model{
		RadiusMultiple:     f32.New(radiusMultiple),
		GaussianResolution: f32.New(gaussianResolution),
	}
	m.a, m.b, m.c = coefficients(m.GaussianResolution)
	return m
}

// DefaultModel returns a Model using DefaultRadiusMultiple and
// DefaultGaussianResolution.
func DefaultModel() *Model {
	return NewModel(DefaultRadiusMultiple, DefaultGaussianResolution)
}

// coefficients returns A, B, C such that A x^2 + B x + C equals
// exp(-2 x^2) at x = g and has a double root at x = (1 + 2 g^2) / (2 g).
func coefficients(g f32.Float) (a, b, c f32.Float) {
	eg := f32.New(-2).Mul(g.Pow(2)).Exp()

	a = eg.Mul(f32.New(4).Mul(g.Pow(2)))
	b = eg.Mul(f32.New(-4).Mul(g).Add(f32.New(-8).Mul(g.Pow(3))))
	c = eg.Mul(
		f32.New(4).Mul(g.Pow(4)).Add(f32.New(4).Mul(g.Pow(2))).
			Add(f32.New(1)),
	)
	return a, b, c
}

// Cutoff returns the distance past which an atom of the given radius
// contributes nothing.
func (m *Model) Cutoff(radius f32.Float) f32.Float {
	return radius.Mul(m.RadiusMultiple)
}

// Core returns the radius of the Gaussian core of an atom.
func (m *Model) Core(radius f32.Float) f32.Float {
	return radius.Mul(m.GaussianResolution)
}

// Regime returns the piece of the density function used at distance dist
// from an atom of the given radius. NaN distances fall into Quadratic.
func (m *Model) Regime(dist, radius f32.Float) Regime {
	if dist > m.Cutoff(radius) {
		return Outside
	} else if dist <= m.Core(radius) {
		return Gaussian
	}
	return Quadratic
}

// Density returns the density contributed by an atom at position atom with
// the given radius to the point pt. The result is never negative, but
// malformed input (zero radius, NaN coordinates) yields NaN or infinities.
func (m *Model) Density(atom, pt geom.Vec, radius f32.Float) f32.Float {
	distSq := atom.DistSq(pt)
	dist := distSq.Sqrt()

	switch m.Regime(dist, radius) {
	case Outside:
		return 0
	case Gaussian:
		return m.gaussian(distSq, radius)
	default:
		return m.quadratic(dist.Div(radius))
	}
}

func (m *Model) gaussian(distSq, radius f32.Float) f32.Float {
	return f32.New(-2).Mul(distSq.Div(radius.Pow(2))).Exp()
}

func (m *Model) quadratic(dr f32.Float) f32.Float {
	q := m.a.Mul(dr).Add(m.b).Mul(dr).Add(m.c)
	return q.Max(0)
}

// Profile samples the density of an atom with unit radius at n evenly spaced
// distances in [0, maxDr]. It returns the sampled distances and densities.
func (m *Model) Profile(maxDr float64, n int) (drs, rhos []float64) {
	drs, rhos = make([]float64, n), make([]float64, n)
	origin := geom.Vec{}
	for i := range drs {
		if n > 1 {
			drs[i] = maxDr * float64(i) / float64(n-1)
		}
		pt := geom.NewVec(drs[i], 0, 0)
		rhos[i] = m.Density(origin, pt, 1).Float64()
	}
	return drs, rhos
}
