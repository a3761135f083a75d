package bezier

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestOffsetLinear(t *testing.T) {
	b := Linear(Pt(0, 0), Pt(10, 0))
	s, err := b.Offset(2, OffsetOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if s.NumSegments() != 1 {
		t.Fatalf("got %d segments, want 1", s.NumSegments())
	}
	diff(t, Linear(Pt(0, 2), Pt(10, 2)), s.Segment(0), cmpopts.EquateApprox(0, 1e-12))
}

func TestOffsetDistance(t *testing.T) {
	// Offsetting a quarter circle towards its center yields a smaller
	// concentric arc.
	const kappa = 0.5522847498307936
	arc := Cubic(Pt(1, 0), Pt(1, kappa), Pt(kappa, 1), Pt(0, 1))
	s, err := arc.Offset(0.5, OffsetOptions{})
	if err != nil {
		t.Fatal(err)
	}
	origin := Pt(0, 0)
	for seg := range s.Segments() {
		for tv := 0.0; tv <= 1; tv += 0.1 {
			if d := seg.Eval(tv).Distance(origin); math.Abs(d-0.5) > 1e-2 {
				t.Errorf("offset point at radius %v, want 0.5", d)
			}
		}
	}
}

func TestOffsetDegenerate(t *testing.T) {
	pointCurve := Cubic(Pt(1, 1), Pt(1, 1), Pt(1, 1), Pt(1, 1))
	if _, err := pointCurve.Offset(1, OffsetOptions{}); !errors.Is(err, ErrDegenerateCurve) {
		t.Errorf("got %v, want ErrDegenerateCurve", err)
	}

	empty := NewSubpath(nil, false)
	if _, err := empty.Offset(1, OffsetOptions{}); !errors.Is(err, ErrDegenerateCurve) {
		t.Errorf("got %v, want ErrDegenerateCurve", err)
	}
}

// elbow is an L-shaped open subpath turning left at (10, 0).
func elbow() Subpath {
	return NewSubpath([]ManipulatorGroup{
		{Anchor: Pt(0, 0)},
		{Anchor: Pt(10, 0)},
		{Anchor: Pt(10, 10)},
	}, false)
}

func TestSubpathOffsetBevel(t *testing.T) {
	s, err := elbow().Offset(-1, OffsetOptions{Join: BevelJoin})
	if err != nil {
		t.Fatal(err)
	}
	if s.NumSegments() != 3 {
		t.Fatalf("got %d segments, want 3", s.NumSegments())
	}
	approx := cmpopts.EquateApprox(0, 1e-9)
	diff(t, Linear(Pt(0, -1), Pt(10, -1)), s.Segment(0), approx)
	diff(t, Linear(Pt(10, -1), Pt(11, 0)), s.Segment(1), approx)
	diff(t, Linear(Pt(11, 0), Pt(11, 10)), s.Segment(2), approx)
}

func TestSubpathOffsetMiter(t *testing.T) {
	s, err := elbow().Offset(-1, OffsetOptions{Join: MiterJoin})
	if err != nil {
		t.Fatal(err)
	}
	// The miter tip extends the two offset lines to their crossing.
	tip := Pt(11, -1)
	found := false
	for _, g := range s.Groups() {
		if g.Anchor.Distance(tip) <= 1e-9 {
			found = true
		}
	}
	if !found {
		t.Errorf("no anchor at miter tip %v", tip)
	}

	// A right angle has miter ratio sqrt(2); a limit below that falls back to
	// a bevel.
	s, err = elbow().Offset(-1, OffsetOptions{Join: MiterJoin, MiterLimit: 1.2})
	if err != nil {
		t.Fatal(err)
	}
	if s.NumSegments() != 3 {
		t.Errorf("got %d segments, want 3 after miter limit fallback", s.NumSegments())
	}
}

func TestSubpathOffsetRound(t *testing.T) {
	s, err := elbow().Offset(-1, OffsetOptions{Join: RoundJoin})
	if err != nil {
		t.Fatal(err)
	}
	// Two straight runs plus a unit quarter arc around the corner.
	diff(t, 20+math.Pi/2, s.Arclen(1e-6), cmpopts.EquateApprox(0, 1e-2))

	corner := Pt(10, 0)
	for seg := range s.Segments() {
		if seg.Kind != CubicKind {
			continue
		}
		for tv := 0.0; tv <= 1; tv += 0.25 {
			if d := seg.Eval(tv).Distance(corner); math.Abs(d-1) > 1e-2 {
				t.Errorf("join point at radius %v from corner, want 1", d)
			}
		}
	}
}

func TestSubpathOffsetInner(t *testing.T) {
	// On the inside of the corner the offset pieces overlap and are trimmed
	// back to their crossing.
	s, err := elbow().Offset(1, OffsetOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if s.NumSegments() != 2 {
		t.Fatalf("got %d segments, want 2", s.NumSegments())
	}
	approx := cmpopts.EquateApprox(0, 5e-3)
	diff(t, Pt(0, 1), s.Segment(0).Start(), approx)
	diff(t, Pt(9, 1), s.Segment(0).End(), approx)
	diff(t, Pt(9, 1), s.Segment(1).Start(), approx)
	diff(t, Pt(9, 10), s.Segment(1).End(), approx)
}

func TestClosedSubpathOffset(t *testing.T) {
	square := NewSubpath([]ManipulatorGroup{
		{Anchor: Pt(0, 0)},
		{Anchor: Pt(10, 0)},
		{Anchor: Pt(10, 10)},
		{Anchor: Pt(0, 10)},
	}, true)
	s, err := square.Offset(-1, OffsetOptions{Join: RoundJoin})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Closed() {
		t.Error("offset of a closed subpath should be closed")
	}
	diff(t, 40+2*math.Pi, s.Arclen(1e-6), cmpopts.EquateApprox(0, 5e-2))
}

func TestSubpathOffsetErrorWrapsIndex(t *testing.T) {
	h := Pt(5, 5)
	s := NewSubpath([]ManipulatorGroup{
		{Anchor: Pt(0, 0)},
		{Anchor: Pt(5, 5), InHandle: &h, OutHandle: &h},
		{Anchor: Pt(5, 5)},
	}, false)
	_, err := s.Offset(1, OffsetOptions{})
	if !errors.Is(err, ErrDegenerateCurve) {
		t.Fatalf("got %v, want wrapped ErrDegenerateCurve", err)
	}
}
