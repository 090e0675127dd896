package bezier

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/spline3d"
	"github.com/stretchr/testify/assert"
)

func testSegment() Segment {
	return Segment{
		spline3d.P3(0, 0, 0),
		spline3d.P3(1, 2, 0),
		spline3d.P3(3, 2, 1),
		spline3d.P3(4, 0, 1),
	}
}

func TestEndpoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := testSegment()
	assert.Equal(t, s.P0, s.Eval(0))
	assert.Equal(t, s.P3, s.Eval(1))
	assert.True(t, s.Deriv(0).Equal(s.P1.Sub(s.P0).Mul(3)))
	assert.True(t, s.Deriv(1).Equal(s.P3.Sub(s.P2).Mul(3)))
}

func TestCollinearMidpoint(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := Position(spline3d.P3(1, 0, 0), spline3d.P3(2, 0, 0), spline3d.P3(3, 0, 0), spline3d.P3(4, 0, 0), 0.5)
	assert.Equal(t, spline3d.P3(2.5, 0, 0), p)
}

func TestDerivativeApprox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := testSegment()
	const n = 10
	const delta = 1e-6
	for i := 0; i < n; i++ {
		ts := float64(i) / float64(n)
		approx := s.Eval(ts + delta).Sub(s.Eval(ts)).Mul(1.0 / delta)
		if l := s.Deriv(ts).Sub(approx).Length(); l >= 1e-4 {
			t.Errorf("t=%g: derivative differs from finite difference by %g", ts, l)
		}
	}
}

func TestNoClamping(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// a straight segment with evenly spaced control points is linear in t
	s := Segment{spline3d.P3(0, 0, 0), spline3d.P3(1, 0, 0), spline3d.P3(2, 0, 0), spline3d.P3(3, 0, 0)}
	assert.True(t, s.Eval(2).Equal(spline3d.P3(6, 0, 0)))
	assert.True(t, s.Eval(-1).Equal(spline3d.P3(-3, 0, 0)))
}

func TestTransformed(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := testSegment()
	m := spline3d.Rotation(spline3d.P3(0, 1, 0), 0.3).Combine(spline3d.Translation(spline3d.P3(1, 2, 3)))
	w := s.Transformed(m.Transform)
	for _, ts := range []float64{0, 0.2, 0.5, 0.9, 1} {
		assert.True(t, w.Eval(ts).Equal(m.Transform(s.Eval(ts))))
	}
}
