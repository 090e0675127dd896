package placement

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/spline3d"
	"github.com/npillmayer/spline3d/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestIdentityPlacement(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := chain.New()
	c.AddSegment()
	pl := Placed{Chain: c, Frame: Identity()}
	for i := 0; i <= 10; i++ {
		ts := float64(i) / 10
		assert.Equal(t, c.Evaluate(ts), pl.Point(ts))
		assert.Equal(t, c.EvaluateDerivative(ts), pl.Velocity(ts))
	}
	var zero Frame
	assert.Equal(t, spline3d.P3(1, 2, 3), zero.TransformPoint(spline3d.P3(1, 2, 3)))
}

func TestTranslatedVelocity(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := chain.New()
	f, err := Pose(spline3d.P3(10, 5, -3), spline3d.P3(0, 1, 0), 0, spline3d.P3(1, 1, 1))
	require.NoError(t, err)
	pl := Placed{Chain: c, Frame: f}
	// a pure translation moves points but leaves velocities alone
	assert.True(t, pl.Point(0).Equal(spline3d.P3(11, 5, -3)))
	if diff := cmp.Diff(c.EvaluateDerivative(0.4), pl.Velocity(0.4), approx); diff != "" {
		t.Errorf("velocity changed by translation (-want +got):\n%s", diff)
	}
}

func TestRotatedDirection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := chain.New()
	f, err := Pose(spline3d.P3(0, 2, 0), spline3d.P3(0, 1, 0), math.Pi/2, spline3d.P3(2, 2, 2))
	require.NoError(t, err)
	pl := Placed{Chain: c, Frame: f}
	// +x rotated by 90° around +y points to -z
	if diff := cmp.Diff(spline3d.P3(0, 0, -1), pl.Direction(0.5), approx); diff != "" {
		t.Errorf("unexpected direction (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 6.0, pl.Velocity(0.5).Length(), 1e-9)
}

func TestInverseRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, err := Pose(spline3d.P3(1, 2, 3), spline3d.P3(1, 1, 0), 0.8, spline3d.P3(1, 3, 0.5))
	require.NoError(t, err)
	for _, p := range []spline3d.V3{spline3d.Origin, spline3d.P3(4, -1, 2)} {
		q := f.InverseTransformPoint(f.TransformPoint(p))
		assert.True(t, q.Equal(p), "expected %v, got %v", p, q)
	}
}

func TestSingularFrame(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := Pose(spline3d.Origin, spline3d.P3(0, 1, 0), 0, spline3d.P3(1, 0, 1))
	assert.True(t, errors.Is(err, spline3d.ErrSingular))
	_, err = NewFrame(nil)
	assert.True(t, errors.Is(err, spline3d.ErrMalformed))
}

func TestDegeneratePlacedDirection(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := spline3d.P3(2, 2, 2)
	c, err := chain.FromState(chain.State{
		Points: []spline3d.V3{p, p, p, p},
		Modes:  []chain.Mode{chain.Free, chain.Free},
	})
	require.NoError(t, err)
	f, err := Pose(spline3d.P3(3, 0, 0), spline3d.P3(0, 0, 1), 1, spline3d.P3(1, 1, 1))
	require.NoError(t, err)
	d := Placed{Chain: c, Frame: f}.Direction(0.5)
	assert.True(t, d.IsOrigin(), "expected zero direction, got %v", d)
}
