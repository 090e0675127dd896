// Package chain deals with piecewise cubic Bézier paths in 3D, as used for
// rail and road geometry.
/*

A chain is an ordered sequence of control points. Consecutive segments share
their end points, so a chain of n segments has 3n+1 control points:

   P0 P1 P2 P3 P4 P5 P6 ...
   ^joint      ^joint     ^joint

Every third point, starting at index 0, is a joint. The two points next to a
joint are its handles. Each joint carries a continuity mode (Free, Aligned or
Mirrored), and handles share the mode of their joint: point i maps to joint
(i+1)/3.

Evaluation

Chains are evaluated at a global parameter t in [0,1], which addresses the
whole chain. It is scaled by the segment count to select a segment and a
local parameter within it:

   c := chain.New()       // (1,0,0) (2,0,0) (3,0,0) (4,0,0)
   c.AddSegment()         // appends (5,0,0) (6,0,0) (7,0,0)
   p := c.Evaluate(0.75)  // segment 1, local parameter 0.5

All results are in the chain's local coordinate space. Mapping them into a
scene is the job of package placement.

Caveats

Continuity modes are stored and maintained per joint, but editing a point does
not (yet) reposition the opposite handle. SetControlPoint is a plain setter.


BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package chain
