package polygon

import (
	"fmt"

	"github.com/npillmayer/spline3d"
	"github.com/npillmayer/spline3d/chain"
)

// Corridor returns the footprint of a chain in the ground plane: a closed
// polygon of width 2*halfWidth around the chain, sampled stepsPerSegment times
// per segment. Samples where the chain runs vertically inherit their
// sideways offset from a neighbouring sample.
func Corridor(c *chain.Chain, halfWidth float64, stepsPerSegment int) (*Polygon, error) {
	if halfWidth <= 0 || stepsPerSegment < 1 {
		return nil, fmt.Errorf("%w: width %g, steps %d", ErrInvalidWidth, halfWidth, stepsPerSegment)
	}
	steps := stepsPerSegment * c.SegmentCount()
	centers := make([]spline3d.V3, steps+1)
	normals := make([]spline3d.V3, steps+1)
	first := -1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		centers[i] = c.Evaluate(t)
		d := c.EvaluateDirection(t)
		// sideways in the ground plane, perpendicular to the direction
		n := spline3d.P3(-d.Z, 0, d.X).Normalized()
		if n.IsOrigin() {
			if i > 0 {
				n = normals[i-1]
			}
		} else if first < 0 {
			first = i
		}
		normals[i] = n
	}
	if first < 0 {
		L().Errorf("no footprint for chain of %d segments", c.SegmentCount())
		return nil, ErrDegenerateFootprint
	}
	for i := 0; i < first; i++ {
		normals[i] = normals[first]
	}
	pg := NullPolygon()
	for i := 0; i <= steps; i++ {
		pg.Knot(centers[i].Add(normals[i].Mul(halfWidth)))
	}
	for i := steps; i >= 0; i-- {
		pg.Knot(centers[i].Sub(normals[i].Mul(halfWidth)))
	}
	return pg.Cycle(), nil
}
