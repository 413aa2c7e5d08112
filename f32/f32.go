/*package f32 provides a scalar type whose arithmetic is rounded to single
precision after every operation.

Each operation is carried out in float64 and the result is rounded to the
nearest float32 through an explicit conversion. Go is allowed to fuse a
multiply and an add into one instruction unless an explicit conversion sits
between them, so routing every intermediate value through Float pins the
results to what a plain float32 pipeline computes one operation at a time.
*/
package f32

import (
	"math"
)

// Float is a single precision scalar. The zero value is 0.
type Float float32

// New rounds x to the nearest float32.
func New(x float64) Float { return Float(x) }

// Int converts an integer index to a Float.
func Int(i int) Float { return Float(float64(i)) }

// Add returns a + b.
func (a Float) Add(b Float) Float { return Float(float64(a) + float64(b)) }

// Sub returns a - b.
func (a Float) Sub(b Float) Float { return Float(float64(a) - float64(b)) }

// Mul returns a * b.
func (a Float) Mul(b Float) Float { return Float(float64(a) * float64(b)) }

// Div follows IEEE semantics: division by zero gives an infinity or NaN.
func (a Float) Div(b Float) Float { return Float(float64(a) / float64(b)) }

// Pow raises a to the power e. e is not rounded, so integer exponents stay
// exact.
func (a Float) Pow(e float64) Float {
	return Float(math.Pow(float64(a), e))
}

// Sqrt returns the square root of a. Negative values give NaN.
func (a Float) Sqrt() Float { return Float(math.Sqrt(float64(a))) }

// Exp returns e^a.
func (a Float) Exp() Float { return Float(math.Exp(float64(a))) }

// Max returns the larger of a and b. If either is NaN, the result is NaN.
func (a Float) Max(b Float) Float {
	return Float(math.Max(float64(a), float64(b)))
}

// Float64 widens a without any further rounding.
func (a Float) Float64() float64 { return float64(a) }

// IsNaN reports whether a is NaN.
func (a Float) IsNaN() bool { return a != a }
