package bezier

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestIntersectionsCrossingLines(t *testing.T) {
	a := Linear(Pt(0, 0), Pt(1, 1))
	b := Linear(Pt(0, 1), Pt(1, 0))
	pairs, err := Intersections(a, b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	diff(t, ParamPair{TA: 0.5, TB: 0.5}, pairs[0], cmpopts.EquateApprox(0, 1e-6))
	diff(t, a.Eval(pairs[0].TA), b.Eval(pairs[0].TB), pointComparer)
}

func TestIntersectionsLineCubic(t *testing.T) {
	a := Linear(Pt(0, 0), Pt(3, 0))
	b := Cubic(Pt(0, 1), Pt(1, 1), Pt(2, -1), Pt(3, -1))
	pairs, err := Intersections(a, b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	diff(t, a.Eval(pairs[0].TA), b.Eval(pairs[0].TB), pointComparer)
	diff(t, 0.5, pairs[0].TB, cmpopts.EquateApprox(0, 1e-4))
}

func TestIntersectionsDisjoint(t *testing.T) {
	a := Quadratic(Pt(0, 0), Pt(1, 2), Pt(2, 0))
	b := Quadratic(Pt(10, 10), Pt(11, 12), Pt(12, 10))
	pairs, err := Intersections(a, b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 0 {
		t.Errorf("got %d pairs, want 0", len(pairs))
	}
}

func TestIntersectionsOverlapping(t *testing.T) {
	a := Cubic(Pt(0, 0), Pt(1, 2), Pt(3, 3), Pt(4, 1))
	if _, err := Intersections(a, a, 0); !errors.Is(err, ErrOverlappingCurves) {
		t.Errorf("identical curves: got %v, want ErrOverlappingCurves", err)
	}
	if _, err := Intersections(a, a.Reverse(), 0); !errors.Is(err, ErrOverlappingCurves) {
		t.Errorf("reversed curve: got %v, want ErrOverlappingCurves", err)
	}
}

func TestIntersectionsTangential(t *testing.T) {
	// A parabola and its tangent line at the apex. The recursion must
	// terminate at its depth cap, and anything it reports must lie on both
	// curves.
	a := Quadratic(Pt(0, 0), Pt(1, 2), Pt(2, 0))
	b := Linear(Pt(0, 1), Pt(2, 1))
	pairs, err := Intersections(a, b, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range pairs {
		if d := a.Eval(p.TA).Distance(b.Eval(p.TB)); d > 1e-3 {
			t.Errorf("pair %+v is %v apart", p, d)
		}
	}
}

func TestIntersectionsOrdered(t *testing.T) {
	// A line crossing a parabola twice; pairs come back ordered by TA.
	a := Linear(Pt(0, 0.5), Pt(2, 0.5))
	b := Quadratic(Pt(0, 0), Pt(1, 2), Pt(2, 0))
	pairs, err := Intersections(a, b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	if pairs[0].TA >= pairs[1].TA {
		t.Errorf("pairs not ordered by TA: %+v", pairs)
	}
	for _, p := range pairs {
		diff(t, a.Eval(p.TA), b.Eval(p.TB), pointComparer)
	}
}

func TestSelfIntersections(t *testing.T) {
	// A looping cubic, symmetric about x = 0.5. It crosses itself once, at a
	// parameter pair symmetric about 0.5.
	b := Cubic(Pt(0, 0), Pt(3, 2), Pt(-2, 2), Pt(1, 0))
	pairs := SelfIntersections(b, 1e-6)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	p := pairs[0]
	diff(t, b.Eval(p.TA), b.Eval(p.TB), pointComparer)
	if math.Abs(p.TA+p.TB-1) > 1e-4 {
		t.Errorf("pair %+v not symmetric about 0.5", p)
	}
	if p.TA >= 0.5 || p.TB <= 0.5 {
		t.Errorf("pair %+v does not straddle the loop", p)
	}
}

func TestSelfIntersectionsNone(t *testing.T) {
	arc := Cubic(Pt(0, 0), Pt(1, 1), Pt(2, 1), Pt(3, 0))
	if pairs := SelfIntersections(arc, 1e-6); len(pairs) != 0 {
		t.Errorf("got %d pairs on a convex arc, want 0", len(pairs))
	}
}
