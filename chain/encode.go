package chain

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Encode writes the chain as YAML.
//
//	points:
//	  - x: 1
//	    y: 0
//	    z: 0
//	  ...
//	modes:
//	  - free
//	  - mirrored
func (c *Chain) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c.State()); err != nil {
		return err
	}
	return enc.Close()
}

// Decode reads a chain in the YAML format written by Encode. Inconsistent
// sequences are rejected with ErrInvariantViolation.
func Decode(r io.Reader) (*Chain, error) {
	var st State
	if err := yaml.NewDecoder(r).Decode(&st); err != nil {
		return nil, fmt.Errorf("decoding chain: %w", err)
	}
	return FromState(st)
}
