// Package bezier evaluates single cubic Bézier segments in 3D.
//
// A segment is given by four control points P0…P3 and is evaluated at a local
// parameter t. Functions of this package do not clamp t; callers are expected
// to pass values from [0,1].
package bezier

import "github.com/npillmayer/spline3d"

// Position returns the point of the segment at t, using the Bernstein basis
//
//	(1-t)³⋅P0 + 3(1-t)²t⋅P1 + 3(1-t)t²⋅P2 + t³⋅P3
func Position(p0, p1, p2, p3 spline3d.V3, t float64) spline3d.V3 {
	mt := 1.0 - t
	a := p0.Mul(mt * mt * mt)
	b := p1.Mul(3.0 * mt * mt * t)
	c := p2.Mul(3.0 * mt * t * t)
	d := p3.Mul(t * t * t)
	return a.Add(b).Add(c).Add(d)
}

// Derivative returns the first derivative of the segment with respect to t,
//
//	3(1-t)²⋅(P1-P0) + 6(1-t)t⋅(P2-P1) + 3t²⋅(P3-P2)
//
// This is a velocity, not a unit vector.
func Derivative(p0, p1, p2, p3 spline3d.V3, t float64) spline3d.V3 {
	mt := 1.0 - t
	a := p1.Sub(p0).Mul(3.0 * mt * mt)
	b := p2.Sub(p1).Mul(6.0 * mt * t)
	c := p3.Sub(p2).Mul(3.0 * t * t)
	return a.Add(b).Add(c)
}

// Segment is a cubic Bézier segment.
type Segment struct {
	P0 spline3d.V3
	P1 spline3d.V3
	P2 spline3d.V3
	P3 spline3d.V3
}

// Eval returns the point at local parameter t.
func (s Segment) Eval(t float64) spline3d.V3 {
	return Position(s.P0, s.P1, s.P2, s.P3, t)
}

// Deriv returns the first derivative at local parameter t.
func (s Segment) Deriv(t float64) spline3d.V3 {
	return Derivative(s.P0, s.P1, s.P2, s.P3, t)
}

// Transformed maps all four control points by f. Affine maps commute with
// Bézier evaluation, so the result describes the image of s under f.
func (s Segment) Transformed(f func(spline3d.V3) spline3d.V3) Segment {
	return Segment{f(s.P0), f(s.P1), f(s.P2), f(s.P3)}
}
