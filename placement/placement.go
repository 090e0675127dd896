// Package placement maps spline chains from their local coordinate space
// into a scene.
//
// Chains know nothing about where they live. A host (a scene graph, an
// editor) supplies a LocalToWorld capability, and Placed applies it to the
// results of chain evaluation.
package placement

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/spline3d"
	"github.com/npillmayer/spline3d/chain"
)

// tracer writes to trace with key 'placement'
func tracer() tracing.Trace {
	return tracing.Select("placement")
}

// LocalToWorld maps points from a local space to world space.
type LocalToWorld interface {
	TransformPoint(spline3d.V3) spline3d.V3
	Position() spline3d.V3 // world position of the local origin
}

// WorldToLocal maps world points back into a local space.
type WorldToLocal interface {
	InverseTransformPoint(spline3d.V3) spline3d.V3
}

// Frame is an invertible affine placement.
type Frame struct {
	local2world spline3d.AT
	world2local spline3d.AT
}

var _ LocalToWorld = Frame{}
var _ WorldToLocal = Frame{}

// NewFrame creates a frame from an affine transform. It fails with
// spline3d.ErrSingular if m cannot be inverted, and with spline3d.ErrMalformed
// if m is nil or not a 4x4 matrix.
func NewFrame(m spline3d.AT) (Frame, error) {
	inv, err := m.Inverse()
	if err != nil {
		tracer().Errorf("cannot place chain: %v", err)
		return Frame{}, err
	}
	return Frame{local2world: m, world2local: inv}, nil
}

// Identity returns a frame which leaves points unchanged.
func Identity() Frame {
	return Frame{local2world: spline3d.Identity(), world2local: spline3d.Identity()}
}

// Pose creates a frame which scales, then rotates around axis by theta
// (radians), then moves to position.
func Pose(position, axis spline3d.V3, theta float64, scale spline3d.V3) (Frame, error) {
	m := spline3d.Scaling(scale).
		Combine(spline3d.Rotation(axis, theta)).
		Combine(spline3d.Translation(position))
	return NewFrame(m)
}

// Transform returns the local-to-world matrix of f.
func (f Frame) Transform() spline3d.AT {
	if f.local2world == nil {
		return spline3d.Identity()
	}
	return f.local2world
}

// TransformPoint maps a local point to world space.
func (f Frame) TransformPoint(p spline3d.V3) spline3d.V3 {
	if f.local2world == nil {
		return p
	}
	return f.local2world.Transform(p)
}

// InverseTransformPoint maps a world point to local space.
func (f Frame) InverseTransformPoint(p spline3d.V3) spline3d.V3 {
	if f.world2local == nil {
		return p
	}
	return f.world2local.Transform(p)
}

// Position returns the world position of the local origin.
func (f Frame) Position() spline3d.V3 {
	return f.TransformPoint(spline3d.Origin)
}

// Placed is a chain evaluated in world space.
type Placed struct {
	Chain *chain.Chain
	Frame LocalToWorld
}

// Point returns the world position of the chain at global parameter t.
func (pl Placed) Point(t float64) spline3d.V3 {
	return pl.Frame.TransformPoint(pl.Chain.Evaluate(t))
}

// Velocity returns the world space derivative at global parameter t. The
// local derivative is transformed like a point, so the image of the local
// origin has to be subtracted.
func (pl Placed) Velocity(t float64) spline3d.V3 {
	v := pl.Frame.TransformPoint(pl.Chain.EvaluateDerivative(t))
	return v.Sub(pl.Frame.Position())
}

// Direction returns the world space unit tangent at global parameter t, or
// the zero vector where the chain has no direction.
func (pl Placed) Direction(t float64) spline3d.V3 {
	return pl.Velocity(t).Normalized()
}
