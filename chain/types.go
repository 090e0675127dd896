package chain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/spline3d"
	"gopkg.in/yaml.v3"
)

// tracer writes to trace with key 'spline'
func tracer() tracing.Trace {
	return tracing.Select("spline")
}

var (
	// ErrIndexOutOfRange indicates access to a control point or mode outside the chain.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvariantViolation indicates point/mode sequences which do not form a valid chain.
	ErrInvariantViolation = errors.New("invalid spline chain")
)

// Mode is the continuity mode at a joint.
type Mode uint8

// Continuity modes. Free handles move independently; Aligned handles keep a
// common tangent line; Mirrored handles are point-symmetric around the joint.
const (
	Free Mode = iota
	Aligned
	Mirrored
)

var modeNames = [...]string{"free", "aligned", "mirrored"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// IsValid is a predicate: is m one of the defined modes?
func (m Mode) IsValid() bool {
	return int(m) < len(modeNames)
}

// ParseMode returns the mode for a (case-insensitive) mode name.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return Free, fmt.Errorf("unknown continuity mode %q", s)
}

// MarshalYAML encodes a mode by name.
func (m Mode) MarshalYAML() (interface{}, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvariantViolation, m)
	}
	return m.String(), nil
}

// UnmarshalYAML decodes a mode from its name.
func (m *Mode) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	mode, err := ParseMode(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*m = mode
	return nil
}

// Chain is a sequence of connected cubic Bézier segments.
// Create one with New() or FromState(…).
//
// A chain is not safe for concurrent mutation. Evaluation is read-only and may
// run concurrently as long as no setter or AddSegment is in flight.
type Chain struct {
	points []spline3d.V3 // control point i
	modes  []Mode        // continuity mode at joint j
}

// State is the serializable form of a chain: two parallel sequences.
type State struct {
	Points []spline3d.V3 `yaml:"points"`
	Modes  []Mode        `yaml:"modes"`
}
