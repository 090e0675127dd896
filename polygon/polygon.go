// Package polygon deals with plan-view polygons of spline chains.
//
// Chains are placed in a 3D scene with the y-axis pointing up, so their
// footprint on the ground lives in the x/z plane. Polygons of this package
// take 3D points and ignore the y coordinate. Boolean operations on polygons
// are delegated to polyclip.
package polygon

import (
	"errors"
	"fmt"
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/spline3d"
)

// L traces to the polygon tracer.
func L() tracing.Trace {
	return tracing.Select("polygon")
}

var (
	// ErrInvalidWidth indicates a non-positive corridor width or sampling rate.
	ErrInvalidWidth = errors.New("corridor width and steps must be positive")
	// ErrDegenerateFootprint indicates a chain without any horizontal extent.
	ErrDegenerateFootprint = errors.New("chain has no direction in the ground plane")
)

// Polygon is a polygon in the ground plane.
// To construct one, start with NullPolygon() and extend it.
type Polygon struct {
	contour polyclip.Contour
	cycle   bool
}

// NullPolygon creates an empty polygon, to be extended by builder calls:
//
//	pg := NullPolygon().Knot(P3(0,0,0)).Knot(P3(1,0,3)).Knot(P3(3,0,0)).Cycle()
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Knot appends a corner, projected onto the ground plane. Part of builder
// functionality.
func (pg *Polygon) Knot(p spline3d.V3) *Polygon {
	pg.contour.Add(polyclip.Point{X: p.X, Y: p.Z})
	return pg
}

// Cycle closes the polygon. Part of builder functionality.
func (pg *Polygon) Cycle() *Polygon {
	pg.cycle = true
	return pg
}

// Box creates a rectangle with opposite corners a and b.
func Box(a, b spline3d.V3) *Polygon {
	return NullPolygon().
		Knot(spline3d.P3(a.X, 0, a.Z)).
		Knot(spline3d.P3(b.X, 0, a.Z)).
		Knot(spline3d.P3(b.X, 0, b.Z)).
		Knot(spline3d.P3(a.X, 0, b.Z)).
		Cycle()
}

// N returns the number of corners.
func (pg *Polygon) N() int {
	return len(pg.contour)
}

// Z returns corner i, with y = 0.
func (pg *Polygon) Z(i int) spline3d.V3 {
	pt := pg.contour[i]
	return spline3d.P3(pt.X, 0, pt.Y)
}

// IsCycle is a predicate: is this polygon closed?
func (pg *Polygon) IsCycle() bool {
	return pg.cycle
}

// Area returns the enclosed area (always positive), using the shoelace formula.
func (pg *Polygon) Area() float64 {
	a := 0.0
	n := pg.N()
	for i := 0; i < n; i++ {
		p, q := pg.contour[i], pg.contour[(i+1)%n]
		a += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(a) / 2
}

// BoundingBox returns the lower left and upper right corners of pg.
func (pg *Polygon) BoundingBox() (spline3d.V3, spline3d.V3) {
	r := pg.contour.BoundingBox()
	return spline3d.P3(r.Min.X, 0, r.Min.Y), spline3d.P3(r.Max.X, 0, r.Max.Y)
}

// AsString returns a polygon as a (debugging) string.
func AsString(pg *Polygon) string {
	var s string
	for i := 0; i < pg.N(); i++ {
		if i > 0 {
			s += " -- "
		}
		pt := pg.contour[i]
		s += fmt.Sprintf("(%.4g,%.4g)", pt.X, pt.Y)
	}
	if pg.IsCycle() {
		s += " -- cycle"
	}
	return s
}

// Op is a boolean operation on polygons.
type Op int

// Boolean operations.
const (
	Union Op = iota
	Intersection
	Difference
	Xor
)

func (op Op) clipOp() polyclip.Op {
	switch op {
	case Intersection:
		return polyclip.INTERSECTION
	case Difference:
		return polyclip.DIFFERENCE
	case Xor:
		return polyclip.XOR
	}
	return polyclip.UNION
}

// Clip combines two closed polygons. The result may consist of several
// disjoint polygons, or none at all.
func Clip(op Op, a, b *Polygon) []*Polygon {
	subject := polyclip.Polygon{a.contour}
	clipping := polyclip.Polygon{b.contour}
	result := subject.Construct(op.clipOp(), clipping)
	polygons := make([]*Polygon, 0, len(result))
	for _, c := range result {
		if len(c) < 3 {
			continue
		}
		polygons = append(polygons, &Polygon{contour: c, cycle: true})
	}
	L().Debugf("clipping resulted in %d polygon(s)", len(polygons))
	return polygons
}

// Overlaps is a predicate: do a and b share an area?
func Overlaps(a, b *Polygon) bool {
	for _, pg := range Clip(Intersection, a, b) {
		if !spline3d.Is0(pg.Area()) {
			return true
		}
	}
	return false
}
