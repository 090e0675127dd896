package chain

import (
	"fmt"

	"github.com/npillmayer/spline3d"
)

// New creates a chain with a single default segment along the x-axis,
// starting at (1,0,0). Both of its joints are Free.
func New() *Chain {
	return &Chain{
		points: []spline3d.V3{
			spline3d.P3(1, 0, 0),
			spline3d.P3(2, 0, 0),
			spline3d.P3(3, 0, 0),
			spline3d.P3(4, 0, 0),
		},
		modes: []Mode{Free, Free},
	}
}

// FromState creates a chain from its serialized form. State is copied. It
// returns ErrInvariantViolation for sequences which do not form a chain.
func FromState(st State) (*Chain, error) {
	if err := st.Validate(); err != nil {
		tracer().Errorf("rejecting chain state: %v", err)
		return nil, err
	}
	c := &Chain{}
	c.points, c.modes = st.clone()
	return c, nil
}

// Validate checks the length invariants of a chain state:
// at least 4 points, 3n+1 points for n segments, and n+1 modes.
// Points must be finite.
func (st State) Validate() error {
	n := len(st.Points)
	if n < 4 {
		return fmt.Errorf("%w: need at least 4 control points, got %d", ErrInvariantViolation, n)
	}
	if (n-1)%3 != 0 {
		return fmt.Errorf("%w: %d control points do not form whole segments", ErrInvariantViolation, n)
	}
	if want := (n-1)/3 + 1; len(st.Modes) != want {
		return fmt.Errorf("%w: %d control points need %d modes, got %d", ErrInvariantViolation,
			n, want, len(st.Modes))
	}
	for i, p := range st.Points {
		if p.IsNaN() || p.IsInf() {
			return fmt.Errorf("%w: control point %d is %v", ErrInvariantViolation, i, p)
		}
	}
	for j, m := range st.Modes {
		if !m.IsValid() {
			return fmt.Errorf("%w: joint %d has %s", ErrInvariantViolation, j, m)
		}
	}
	return nil
}

func (st State) clone() ([]spline3d.V3, []Mode) {
	points := make([]spline3d.V3, len(st.Points), len(st.Points)+3)
	copy(points, st.Points)
	modes := make([]Mode, len(st.Modes), len(st.Modes)+1)
	copy(modes, st.Modes)
	return points, modes
}

// State returns a snapshot of the chain. The snapshot does not share memory
// with the chain.
func (c *Chain) State() State {
	st := State{Points: c.points, Modes: c.modes}
	st.Points, st.Modes = st.clone()
	return st
}

// Restore replaces the chain's content by st. If st is invalid, the chain is
// left unchanged and ErrInvariantViolation is returned.
func (c *Chain) Restore(st State) error {
	if err := st.Validate(); err != nil {
		tracer().Errorf("cannot restore chain: %v", err)
		return err
	}
	c.points, c.modes = st.clone()
	return nil
}

// Clone returns a deep copy of c.
func (c *Chain) Clone() *Chain {
	cl := &Chain{}
	cl.points, cl.modes = c.State().clone()
	return cl
}

// AddSegment appends a segment to the end of the chain. Its three new
// control points are placed at unit steps along the x-axis, starting from the
// current last point. The new joint inherits the mode of the previous last joint.
func (c *Chain) AddSegment() {
	last := c.points[len(c.points)-1]
	points := append(c.points,
		last.Add(spline3d.P3(1, 0, 0)),
		last.Add(spline3d.P3(2, 0, 0)),
		last.Add(spline3d.P3(3, 0, 0)))
	modes := append(c.modes, c.modes[len(c.modes)-1])
	c.points, c.modes = points, modes
	tracer().Infof("added segment, chain now has %d segments", c.SegmentCount())
}
