package editor

import (
	"github.com/npillmayer/spline3d"
	"github.com/npillmayer/spline3d/bezier"
	"github.com/npillmayer/spline3d/chain"
)

// Handle is a control point as presented to the user.
type Handle struct {
	Index    int
	World    spline3d.V3
	Mode     chain.Mode
	Joint    bool // shared end point of segments, as opposed to a tangent handle
	Selected bool
}

// Ray is a direction marker along the chain.
type Ray struct {
	From spline3d.V3
	To   spline3d.V3
}

// Handles returns all control points in world space.
func (s *Session) Handles() []Handle {
	n := s.chain.ControlPointCount()
	handles := make([]Handle, 0, n)
	sel, _ := s.Selected()
	for i := 0; i < n; i++ {
		p, _ := s.chain.ControlPoint(i)
		m, _ := s.chain.ControlPointMode(i)
		handles = append(handles, Handle{
			Index:    i,
			World:    s.frame.TransformPoint(p),
			Mode:     m,
			Joint:    i%3 == 0,
			Selected: i == sel,
		})
	}
	return handles
}

// Curves returns the chain's segments in world space, ready to be drawn as
// Bézier curves.
func (s *Session) Curves() []bezier.Segment {
	curves := make([]bezier.Segment, 0, s.chain.SegmentCount())
	for k := 0; k < s.chain.SegmentCount(); k++ {
		seg, _ := s.chain.Segment(k)
		curves = append(curves, seg.Transformed(s.frame.TransformPoint))
	}
	return curves
}

// Directions samples the chain at regular parameter steps, StepsPerCurve per
// segment including both ends, and returns world space rays along the
// tangent, of length DirectionScale.
func (s *Session) Directions() []Ray {
	pl := s.Placed()
	steps := s.stepsPerCurve * s.chain.SegmentCount()
	rays := make([]Ray, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := pl.Point(t)
		rays = append(rays, Ray{
			From: p,
			To:   p.Add(pl.Direction(t).Mul(s.directionScale)),
		})
	}
	return rays
}
