package bezier

import (
	"fmt"
	"iter"
)

// ManipulatorGroup is one on-curve anchor of a [Subpath], together with its
// optional handles. Handles are absolute positions, not offsets from the
// anchor. A nil handle is absent.
//
// InHandle shapes the segment arriving at the anchor, OutHandle the segment
// leaving it.
type ManipulatorGroup struct {
	Anchor    Point
	InHandle  *Point
	OutHandle *Point
}

func (g ManipulatorGroup) clone() ManipulatorGroup {
	if g.InHandle != nil {
		p := *g.InHandle
		g.InHandle = &p
	}
	if g.OutHandle != nil {
		p := *g.OutHandle
		g.OutHandle = &p
	}
	return g
}

// Subpath is a chain of manipulator groups describing a connected sequence
// of Bézier segments, optionally closed.
//
// The segments themselves are never stored. They are derived on demand from
// consecutive anchors and the handles between them: no handles derive a
// linear segment, one handle a quadratic, both handles a cubic. A closed
// subpath derives one extra segment from the last anchor back to the first.
//
// Subpath values are immutable; every editing operation returns a new
// Subpath and leaves the receiver untouched.
type Subpath struct {
	groups []ManipulatorGroup
	closed bool
}

// NewSubpath returns a subpath over the given manipulator groups. The groups
// and their handles are copied.
func NewSubpath(groups []ManipulatorGroup, closed bool) Subpath {
	return Subpath{
		groups: cloneGroups(groups),
		closed: closed,
	}
}

func cloneGroups(groups []ManipulatorGroup) []ManipulatorGroup {
	out := make([]ManipulatorGroup, len(groups))
	for i, g := range groups {
		out[i] = g.clone()
	}
	return out
}

// Len returns the number of manipulator groups.
func (s Subpath) Len() int { return len(s.groups) }

// Closed reports whether the subpath derives a closing segment from its last
// anchor back to its first.
func (s Subpath) Closed() bool { return s.closed }

// Group returns the i-th manipulator group. The handles are copies; mutating
// them does not affect the subpath.
func (s Subpath) Group(i int) ManipulatorGroup {
	return s.groups[i].clone()
}

// Groups returns a copy of all manipulator groups in order.
func (s Subpath) Groups() []ManipulatorGroup {
	return cloneGroups(s.groups)
}

// NumSegments returns the number of derived segments: one fewer than the
// group count for open subpaths, equal to it for closed ones. Subpaths with
// fewer than two groups have no segments.
func (s Subpath) NumSegments() int {
	if len(s.groups) < 2 {
		return 0
	}
	if s.closed {
		return len(s.groups)
	}
	return len(s.groups) - 1
}

// Segment derives the i-th segment. For a closed subpath, the final segment
// connects the last anchor to the first.
func (s Subpath) Segment(i int) Bezier {
	n := s.NumSegments()
	if i < 0 || i >= n {
		panic(fmt.Sprintf("segment index %d out of range [0, %d)", i, n))
	}
	from := s.groups[i]
	to := s.groups[(i+1)%len(s.groups)]
	return segmentBetween(from, to)
}

// Segments returns an iterator deriving the subpath's segments in order.
// The iterator is single-use.
func (s Subpath) Segments() iter.Seq[Bezier] {
	return func(yield func(Bezier) bool) {
		for i := range s.NumSegments() {
			if !yield(s.Segment(i)) {
				return
			}
		}
	}
}

// segmentBetween derives the segment connecting two consecutive groups. The
// degree follows from which of the two facing handles are present.
func segmentBetween(from, to ManipulatorGroup) Bezier {
	out := from.OutHandle
	in := to.InHandle
	switch {
	case out == nil && in == nil:
		return Linear(from.Anchor, to.Anchor)
	case out != nil && in == nil:
		return Quadratic(from.Anchor, *out, to.Anchor)
	case out == nil && in != nil:
		return Quadratic(from.Anchor, *in, to.Anchor)
	default:
		return Cubic(from.Anchor, *out, *in, to.Anchor)
	}
}

// Insert returns a new subpath with g inserted before index i. An index
// equal to Len appends.
func (s Subpath) Insert(i int, g ManipulatorGroup) Subpath {
	if i < 0 || i > len(s.groups) {
		panic(fmt.Sprintf("group index %d out of range [0, %d]", i, len(s.groups)))
	}
	groups := make([]ManipulatorGroup, 0, len(s.groups)+1)
	groups = append(groups, cloneGroups(s.groups[:i])...)
	groups = append(groups, g.clone())
	groups = append(groups, cloneGroups(s.groups[i:])...)
	return Subpath{groups: groups, closed: s.closed}
}

// Remove returns a new subpath with the i-th group removed. The two
// neighbors become directly connected, deriving whichever segment their
// facing handles imply.
func (s Subpath) Remove(i int) Subpath {
	if i < 0 || i >= len(s.groups) {
		panic(fmt.Sprintf("group index %d out of range [0, %d)", i, len(s.groups)))
	}
	groups := make([]ManipulatorGroup, 0, len(s.groups)-1)
	groups = append(groups, cloneGroups(s.groups[:i])...)
	groups = append(groups, cloneGroups(s.groups[i+1:])...)
	return Subpath{groups: groups, closed: s.closed}
}

// ReplaceSegment returns a new subpath in which the i-th derived segment is
// replaced by the curve c. The anchors of the two adjacent groups move to
// c's endpoints and their facing handles are recomputed from c's control
// points, so the replacement's tangents carry over exactly. The outer
// handles of the two groups are preserved.
func (s Subpath) ReplaceSegment(i int, c Bezier) Subpath {
	n := s.NumSegments()
	if i < 0 || i >= n {
		panic(fmt.Sprintf("segment index %d out of range [0, %d)", i, n))
	}
	groups := cloneGroups(s.groups)
	from := &groups[i]
	to := &groups[(i+1)%len(groups)]
	from.Anchor = c.Start()
	to.Anchor = c.End()
	switch c.Kind {
	case LinearKind:
		from.OutHandle = nil
		to.InHandle = nil
	case QuadraticKind:
		h := c.P1
		from.OutHandle = &h
		to.InHandle = nil
	case CubicKind:
		h1, h2 := c.P1, c.P2
		from.OutHandle = &h1
		to.InHandle = &h2
	}
	return Subpath{groups: groups, closed: s.closed}
}

// Close returns the subpath marked as closed. The closing segment from the
// last anchor to the first is derived like any other.
func (s Subpath) Close() Subpath {
	return Subpath{groups: cloneGroups(s.groups), closed: true}
}

// Open returns the subpath marked as open, dropping the derived closing
// segment. The groups and their handles are unchanged.
func (s Subpath) Open() Subpath {
	return Subpath{groups: cloneGroups(s.groups), closed: false}
}

// Reverse returns the subpath traversed in the opposite direction: group
// order reversed and the in and out handles of each group swapped.
func (s Subpath) Reverse() Subpath {
	groups := make([]ManipulatorGroup, len(s.groups))
	for i, g := range s.groups {
		g = g.clone()
		g.InHandle, g.OutHandle = g.OutHandle, g.InHandle
		groups[len(groups)-1-i] = g
	}
	return Subpath{groups: groups, closed: s.closed}
}

// Eval evaluates the subpath at a global parameter t in [0, 1], distributed
// uniformly across the derived segments. A subpath without segments
// evaluates to its sole anchor, or the zero point if it has no groups.
func (s Subpath) Eval(t float64) Point {
	n := s.NumSegments()
	if n == 0 {
		if len(s.groups) > 0 {
			return s.groups[0].Anchor
		}
		return Point{}
	}
	t = min(max(t, 0), 1)
	scaled := t * float64(n)
	i := min(int(scaled), n-1)
	return s.Segment(i).Eval(scaled - float64(i))
}

// Arclen returns the total length of the subpath, the sum of its derived
// segments' lengths. See [Bezier.Arclen] for the role of accuracy.
func (s Subpath) Arclen(accuracy float64) float64 {
	sum := 0.0
	for seg := range s.Segments() {
		sum += seg.Arclen(accuracy)
	}
	return sum
}

// BoundingBox returns the smallest axis-aligned rectangle enclosing all
// derived segments. A subpath without segments returns a zero-area box at
// its sole anchor, or the zero rectangle if it has no groups.
func (s Subpath) BoundingBox() Rect {
	if s.NumSegments() == 0 {
		if len(s.groups) > 0 {
			a := s.groups[0].Anchor
			return Rect{a.X, a.Y, a.X, a.Y}
		}
		return Rect{}
	}
	var bbox Rect
	first := true
	for seg := range s.Segments() {
		if first {
			bbox = seg.BoundingBox()
			first = false
		} else {
			bbox = bbox.Union(seg.BoundingBox())
		}
	}
	return bbox
}

// pathBuilder accumulates a chain of connected segments into manipulator
// groups. Each appended curve must start where the previous one ended.
type pathBuilder struct {
	groups []ManipulatorGroup
}

func (pb *pathBuilder) moveTo(p Point) {
	pb.groups = append(pb.groups, ManipulatorGroup{Anchor: p})
}

// curveTo appends c, setting the previous group's out handle and the new
// anchor's in handle from c's control points.
func (pb *pathBuilder) curveTo(c Bezier) {
	if len(pb.groups) == 0 {
		pb.moveTo(c.Start())
	}
	last := &pb.groups[len(pb.groups)-1]
	next := ManipulatorGroup{Anchor: c.End()}
	switch c.Kind {
	case QuadraticKind:
		h := c.P1
		last.OutHandle = &h
	case CubicKind:
		h1, h2 := c.P1, c.P2
		last.OutHandle = &h1
		next.InHandle = &h2
	}
	pb.groups = append(pb.groups, next)
}

func (pb *pathBuilder) subpath(closed bool) Subpath {
	return Subpath{groups: pb.groups, closed: closed}
}

// closedSubpath builds a closed subpath. When the chain ends where it began,
// the duplicate final anchor is folded into the first group.
func (pb *pathBuilder) closedSubpath() Subpath {
	gs := pb.groups
	if len(gs) > 1 && gs[0].Anchor.Distance(gs[len(gs)-1].Anchor) <= 1e-6 {
		gs[0].InHandle = gs[len(gs)-1].InHandle
		gs = gs[:len(gs)-1]
	}
	return Subpath{groups: gs, closed: true}
}
