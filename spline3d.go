/*
Package spline3d implements 3D points and vectors, affine transformations,
and a few numeric helpers shared by the spline packages.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package spline3d

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'spline3d'
func tracer() tracing.Trace {
	return tracing.Select("spline3d")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Round to ε.
func Round(n float64) float64 {
	return math.Round(n/Epsilon) * Epsilon
}

// Clamp01 clamps n to [0,1]. NaN is mapped to 0.
func Clamp01(n float64) float64 {
	switch {
	case math.IsNaN(n) || n < 0:
		return 0
	case n > 1:
		return 1
	}
	return n
}

// === Vector Data Type ======================================================

// V3 is a point or a vector in 3D space. Arithmetic on V3 is exact, i.e. it
// does not round to ε; use Zap for that.
type V3 struct {
	X, Y, Z float64
}

// Origin represents the frequently used constant (0,0,0).
var Origin = V3{}

// P3 is a quick notation for contructing a V3 from floats.
func P3(x, y, z float64) V3 {
	return V3{X: x, Y: y, Z: z}
}

// Pretty Stringer for points.
func (v V3) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}

// F returns the coordinates of v.
func (v V3) F() (float64, float64, float64) {
	return v.X, v.Y, v.Z
}

// Add returns v + w.
func (v V3) Add(w V3) V3 {
	return V3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v V3) Sub(w V3) V3 {
	return V3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Mul scales v by a.
func (v V3) Mul(a float64) V3 {
	return V3{v.X * a, v.Y * a, v.Z * a}
}

// Dot returns the dot product of v and w.
func (v V3) Dot(w V3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v × w.
func (v V3) Cross(w V3) V3 {
	return V3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the magnitude of v.
func (v V3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns a unit vector in the direction of v. A vector of
// magnitude zero has no direction and yields the zero vector.
func (v V3) Normalized() V3 {
	l := v.Length()
	if l == 0 || math.IsNaN(l) {
		return Origin
	}
	return v.Mul(1 / l)
}

// Zap rounds all coordinates to Epsilon.
func (v V3) Zap() V3 {
	return V3{Zap(v.X), Zap(v.Y), Zap(v.Z)}
}

// IsOrigin is a predicate: is this point the origin?
func (v V3) IsOrigin() bool {
	return v.Equal(Origin)
}

// Equal compares two points, up to ε.
func (v V3) Equal(w V3) bool {
	return Is0(v.X-w.X) && Is0(v.Y-w.Y) && Is0(v.Z-w.Z)
}

// IsNaN is true if any coordinate is NaN.
func (v V3) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// IsInf is true if any coordinate is infinite.
func (v V3) IsInf() bool {
	return math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) || math.IsInf(v.Z, 0)
}

// Shifted returns a new point translated by w.
func (v V3) Shifted(w V3) V3 {
	return Translation(w).Transform(v).Zap()
}

// Rotated returns a new point rotated around axis by theta (counterclockwise,
// looking against the axis).
func (v V3) Rotated(axis V3, theta float64) V3 {
	return Rotation(axis, theta).Transform(v).Zap()
}

// === Affine Transformations ================================================

// ErrSingular is returned when inverting a transform which has no inverse.
var ErrSingular = errors.New("transform is not invertible")

// ErrMalformed is returned for transforms which are not 4x4 matrices, such as
// a nil AT.
var ErrMalformed = errors.New("transform is not a 4x4 matrix")

// AT is an affine transform, a matrix type used for transforming vectors.
type AT []float64 // a 4x4 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	m := make([]float64, 16)
	return m
}

func (m AT) get(row, col int) float64 {
	return m[row*4+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*4+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*4 : (row+1)*4]
}

func (m AT) col(col int) []float64 {
	c := make([]float64, 4)
	for i := range c {
		c[i] = m[i*4+col]
	}
	return c
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	for i := 0; i < 4; i++ {
		m.set(i, i, 1.0)
	}
	return m
}

// Translation transform. Translate a point by v.
func Translation(v V3) AT {
	m := Identity()
	m.set(0, 3, v.X)
	m.set(1, 3, v.Y)
	m.set(2, 3, v.Z)
	return m
}

// Rotation transform. Rotate a point counter-clockwise around an axis through
// the origin. Theta is in radians. The axis need not be normalized; a zero
// axis results in the identity.
func Rotation(axis V3, theta float64) AT {
	u := axis.Normalized()
	if u.IsOrigin() {
		tracer().Errorf("rotation around zero axis")
		return Identity()
	}
	m := Identity()
	sin := math.Sin(theta)
	cos := math.Cos(theta)
	k := 1 - cos
	m.set(0, 0, cos+u.X*u.X*k)
	m.set(0, 1, u.X*u.Y*k-u.Z*sin)
	m.set(0, 2, u.X*u.Z*k+u.Y*sin)
	m.set(1, 0, u.Y*u.X*k+u.Z*sin)
	m.set(1, 1, cos+u.Y*u.Y*k)
	m.set(1, 2, u.Y*u.Z*k-u.X*sin)
	m.set(2, 0, u.Z*u.X*k-u.Y*sin)
	m.set(2, 1, u.Z*u.Y*k+u.X*sin)
	m.set(2, 2, cos+u.Z*u.Z*k)
	return m
}

// Scaling transform. Scale a point by s per axis.
func Scaling(s V3) AT {
	m := Identity()
	m.set(0, 0, s.X)
	m.set(1, 1, s.Y)
	m.set(2, 2, s.Z)
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	s := "["
	for i := 0; i < 4; i++ {
		if i > 0 {
			s += "|"
		}
		r := m.row(i)
		s += fmt.Sprintf("%g,%g,%g,%g", r[0], r[1], r[2], r[3])
	}
	return s + "]"
}

// v1 × v2, v.n = [a,b,c,d]
func dotProd(vec1, vec2 []float64) float64 {
	p := 0.0
	for i := range vec1 {
		p += vec1[i] * vec2[i]
	}
	return p
}

// Combine 2 affine transformation to a new one. Returns a new transformation
// without changing the argument(s). The result applies m first, then n.
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

func (m AT) multiplyVector(v []float64) []float64 {
	c := make([]float64, 4)
	for i := range c {
		c[i] = dotProd(m.row(i), v)
	}
	return c
}

// Transform a 3D-point. The argument is unchanged and a new point is returned.
func (m AT) Transform(p V3) V3 {
	c := m.multiplyVector([]float64{p.X, p.Y, p.Z, 1.0})
	return V3{c[0], c[1], c[2]}
}

// TransformVector transforms a direction vector, i.e. without applying the
// translation part of m.
func (m AT) TransformVector(v V3) V3 {
	c := m.multiplyVector([]float64{v.X, v.Y, v.Z, 0})
	return V3{c[0], c[1], c[2]}
}

// Origin returns the image of the origin under m.
func (m AT) Origin() V3 {
	return V3{m.get(0, 3), m.get(1, 3), m.get(2, 3)}
}

// Inverse returns the inverse transform of m. The bottom row of m is assumed
// to be (0,0,0,1).
func (m AT) Inverse() (AT, error) {
	if len(m) != 16 {
		return nil, fmt.Errorf("%w: %d entries", ErrMalformed, len(m))
	}
	a, b, c := m.get(0, 0), m.get(0, 1), m.get(0, 2)
	d, e, f := m.get(1, 0), m.get(1, 1), m.get(1, 2)
	g, h, i := m.get(2, 0), m.get(2, 1), m.get(2, 2)
	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if Is0(det) {
		return nil, fmt.Errorf("%w: determinant %g", ErrSingular, det)
	}
	r := 1 / det
	inv := Identity()
	inv.set(0, 0, (e*i-f*h)*r)
	inv.set(0, 1, (c*h-b*i)*r)
	inv.set(0, 2, (b*f-c*e)*r)
	inv.set(1, 0, (f*g-d*i)*r)
	inv.set(1, 1, (a*i-c*g)*r)
	inv.set(1, 2, (c*d-a*f)*r)
	inv.set(2, 0, (d*h-e*g)*r)
	inv.set(2, 1, (b*g-a*h)*r)
	inv.set(2, 2, (a*e-b*d)*r)
	t := inv.TransformVector(m.Origin())
	inv.set(0, 3, -t.X)
	inv.set(1, 3, -t.Y)
	inv.set(2, 3, -t.Z)
	return inv, nil
}
