package chain

import (
	"fmt"

	"github.com/npillmayer/spline3d"
	"github.com/npillmayer/spline3d/bezier"
)

// ControlPointCount returns the number of control points.
func (c *Chain) ControlPointCount() int {
	return len(c.points)
}

// SegmentCount returns the number of Bézier segments.
func (c *Chain) SegmentCount() int {
	return (len(c.points) - 1) / 3
}

func (c *Chain) checkIndex(i int) error {
	if i < 0 || i >= len(c.points) {
		return fmt.Errorf("%w: control point %d, chain has %d", ErrIndexOutOfRange, i, len(c.points))
	}
	return nil
}

// ControlPoint returns control point i.
func (c *Chain) ControlPoint(i int) (spline3d.V3, error) {
	if err := c.checkIndex(i); err != nil {
		return spline3d.Origin, err
	}
	return c.points[i], nil
}

// SetControlPoint sets control point i to p. Neighbouring handles are not
// touched, whatever the continuity mode of the joint. Points must be finite.
func (c *Chain) SetControlPoint(i int, p spline3d.V3) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	if p.IsNaN() || p.IsInf() {
		tracer().Errorf("rejecting control point %d at %v", i, p)
		return fmt.Errorf("%w: control point %d is %v", ErrInvariantViolation, i, p)
	}
	tracer().Debugf("control point %d: %v -> %v", i, c.points[i], p)
	c.points[i] = p
	return nil
}

// joint maps a control point index to the index of its governing joint.
func joint(i int) int {
	return (i + 1) / 3
}

// ControlPointMode returns the continuity mode of the joint governing point i.
func (c *Chain) ControlPointMode(i int) (Mode, error) {
	if err := c.checkIndex(i); err != nil {
		return Free, err
	}
	return c.modes[joint(i)], nil
}

// SetControlPointMode sets the continuity mode of the joint governing point i.
// This affects the joint and both of its handles.
func (c *Chain) SetControlPointMode(i int, m Mode) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	if !m.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvariantViolation, m)
	}
	tracer().Debugf("joint %d: mode %s -> %s", joint(i), c.modes[joint(i)], m)
	c.modes[joint(i)] = m
	return nil
}

// Segment returns segment k of the chain.
func (c *Chain) Segment(k int) (bezier.Segment, error) {
	if k < 0 || k >= c.SegmentCount() {
		return bezier.Segment{}, fmt.Errorf("%w: segment %d, chain has %d", ErrIndexOutOfRange,
			k, c.SegmentCount())
	}
	return c.segmentAt(k * 3), nil
}

func (c *Chain) segmentAt(offset int) bezier.Segment {
	return bezier.Segment{
		P0: c.points[offset],
		P1: c.points[offset+1],
		P2: c.points[offset+2],
		P3: c.points[offset+3],
	}
}

// locate maps a global parameter t to the point offset of its segment and a
// local parameter. t >= 1 always resolves to the end of the last segment.
func (c *Chain) locate(t float64) (int, float64) {
	if t >= 1 {
		return len(c.points) - 4, 1
	}
	t = spline3d.Clamp01(t) * float64(c.SegmentCount())
	i := int(t)
	if i >= c.SegmentCount() { // t*n may round up to n
		return len(c.points) - 4, 1
	}
	return i * 3, t - float64(i)
}

// Evaluate returns the point of the chain at global parameter t, which is
// clamped to [0,1].
func (c *Chain) Evaluate(t float64) spline3d.V3 {
	offset, u := c.locate(t)
	return c.segmentAt(offset).Eval(u)
}

// EvaluateDerivative returns the first derivative of the segment covering
// global parameter t, at its local parameter. The derivative is taken with
// respect to the local parameter.
func (c *Chain) EvaluateDerivative(t float64) spline3d.V3 {
	offset, u := c.locate(t)
	return c.segmentAt(offset).Deriv(u)
}

// EvaluateDirection returns the unit tangent at global parameter t. Where the
// derivative vanishes, the zero vector is returned.
func (c *Chain) EvaluateDirection(t float64) spline3d.V3 {
	d := c.EvaluateDerivative(t).Normalized()
	if d.IsOrigin() {
		tracer().Debugf("degenerate direction at t=%g", t)
	}
	return d
}
