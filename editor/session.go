// Package editor holds interactive editing state for a spline chain.
//
// A Session keeps everything a scene editor needs beyond the chain itself:
// the selected control point, an undo journal, and the placement of the
// chain in the scene. Edits arrive in world coordinates and are mapped back
// into the chain's local space. The session produces handle positions and
// direction samples for a host renderer, but does no drawing itself.
package editor

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/spline3d"
	"github.com/npillmayer/spline3d/chain"
	"github.com/npillmayer/spline3d/placement"
)

// tracer writes to trace with key 'editor'
func tracer() tracing.Trace {
	return tracing.Select("editor")
}

// ErrNoSelection is returned for operations on the selected point when
// nothing is selected.
var ErrNoSelection = errors.New("no control point selected")

// Journal labels of edit operations.
const (
	LabelMovePoint  = "Move point"
	LabelAddCurve   = "Add Curve"
	LabelChangeMode = "Change mode"
)

// Defaults for direction sampling.
const (
	DefaultStepsPerCurve  = 20
	DefaultDirectionScale = 0.5
)

// Placement is what a session needs to know about where its chain lives.
type Placement interface {
	placement.LocalToWorld
	placement.WorldToLocal
}

// Option configures a session.
type Option func(*Session)

// WithStepsPerCurve sets the number of direction samples per segment.
// Values below 1 are ignored.
func WithStepsPerCurve(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.stepsPerCurve = n
		}
	}
}

// WithDirectionScale sets the length of direction rays.
func WithDirectionScale(scale float64) Option {
	return func(s *Session) {
		s.directionScale = scale
	}
}

// record is an entry of the undo journal.
type record struct {
	label string
	state chain.State // chain state before (undo) or after (redo) the edit
}

// Session is an editing session on a single chain. A session is the one
// logical owner of its chain while it is open; it does no locking.
type Session struct {
	chain          *chain.Chain
	frame          Placement
	selected       int
	undo           []record
	redo           []record
	stepsPerCurve  int
	directionScale float64
}

// NewSession starts editing c, which is placed in the scene by frame.
// A nil frame places the chain at the world origin.
func NewSession(c *chain.Chain, frame Placement, opts ...Option) *Session {
	if frame == nil {
		frame = placement.Identity()
	}
	s := &Session{
		chain:          c,
		frame:          frame,
		selected:       -1,
		stepsPerCurve:  DefaultStepsPerCurve,
		directionScale: DefaultDirectionScale,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Chain returns the chain under edit.
func (s *Session) Chain() *chain.Chain {
	return s.chain
}

// Placed returns the chain under edit together with its placement.
func (s *Session) Placed() placement.Placed {
	return placement.Placed{Chain: s.chain, Frame: s.frame}
}

// Select makes control point i the selected point.
func (s *Session) Select(i int) error {
	if i < 0 || i >= s.chain.ControlPointCount() {
		return fmt.Errorf("%w: cannot select point %d", chain.ErrIndexOutOfRange, i)
	}
	s.selected = i
	return nil
}

// Deselect clears the selection.
func (s *Session) Deselect() {
	s.selected = -1
}

// Selected returns the selected control point, if any.
func (s *Session) Selected() (int, bool) {
	if s.selected < 0 || s.selected >= s.chain.ControlPointCount() {
		return -1, false
	}
	return s.selected, true
}

// journal records an edit labeled label, given the chain state before the
// edit, and clears the redo list. Only successful edits are journaled.
func (s *Session) journal(label string, before chain.State) {
	s.undo = append(s.undo, record{label: label, state: before})
	s.redo = s.redo[:0]
}

// MovePoint moves control point i to a world position.
func (s *Session) MovePoint(i int, world spline3d.V3) error {
	local := s.frame.InverseTransformPoint(world)
	before := s.chain.State()
	if err := s.chain.SetControlPoint(i, local); err != nil {
		return err
	}
	s.journal(LabelMovePoint, before)
	tracer().Infof("moved point %d to %v (local %v)", i, world, local)
	return nil
}

// MoveSelected moves the selected control point to a world position.
func (s *Session) MoveSelected(world spline3d.V3) error {
	i, ok := s.Selected()
	if !ok {
		return ErrNoSelection
	}
	return s.MovePoint(i, world)
}

// SetMode sets the continuity mode of the joint governing point i.
func (s *Session) SetMode(i int, m chain.Mode) error {
	before := s.chain.State()
	if err := s.chain.SetControlPointMode(i, m); err != nil {
		return err
	}
	s.journal(LabelChangeMode, before)
	tracer().Infof("joint of point %d is now %s", i, m)
	return nil
}

// SetSelectedMode sets the continuity mode of the selected point's joint.
func (s *Session) SetSelectedMode(m chain.Mode) error {
	i, ok := s.Selected()
	if !ok {
		return ErrNoSelection
	}
	return s.SetMode(i, m)
}

// AddCurve appends a segment to the chain.
func (s *Session) AddCurve() {
	before := s.chain.State()
	s.chain.AddSegment()
	s.journal(LabelAddCurve, before)
}

// Undo reverts the most recent edit and returns its label.
func (s *Session) Undo() (string, bool) {
	return s.step(&s.undo, &s.redo)
}

// Redo re-applies the most recently undone edit and returns its label.
func (s *Session) Redo() (string, bool) {
	return s.step(&s.redo, &s.undo)
}

func (s *Session) step(from, to *[]record) (string, bool) {
	if len(*from) == 0 {
		return "", false
	}
	r := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	*to = append(*to, record{label: r.label, state: s.chain.State()})
	if err := s.chain.Restore(r.state); err != nil {
		// journal states are snapshots of valid chains
		panic(fmt.Sprintf("editor journal corrupted: %v", err))
	}
	if _, ok := s.Selected(); !ok {
		s.selected = -1
	}
	tracer().Infof("restored chain before/after %q", r.label)
	return r.label, true
}

// History returns the labels of undoable edits, oldest first.
func (s *Session) History() []string {
	labels := make([]string, len(s.undo))
	for i, r := range s.undo {
		labels[i] = r.label
	}
	return labels
}
