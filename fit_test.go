package bezier

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestFitPointsTwoPoints(t *testing.T) {
	s, err := FitPoints([]Point{Pt(0, 0), Pt(3, 0)}, FitOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if s.NumSegments() != 1 {
		t.Fatalf("got %d segments, want 1", s.NumSegments())
	}
	seg := s.Segment(0)
	if seg.Start() != Pt(0, 0) || seg.End() != Pt(3, 0) {
		t.Errorf("fitted segment does not interpolate the endpoints: %+v", seg)
	}
	diff(t, Pt(1.5, 0), seg.Eval(0.5), pointComparer)
}

func TestFitPointsTooFew(t *testing.T) {
	if _, err := FitPoints([]Point{Pt(1, 1)}, FitOptions{}); err == nil {
		t.Error("want error for a single point")
	}
	// Duplicates collapse before the count check.
	if _, err := FitPoints([]Point{Pt(1, 1), Pt(1, 1), Pt(1, 1)}, FitOptions{}); err == nil {
		t.Error("want error for coincident points")
	}
}

func TestFitPointsRecoversCubic(t *testing.T) {
	want := Cubic(Pt(0, 0), Pt(1, 2), Pt(3, 3), Pt(4, 1))
	pts := make([]Point, 0, 51)
	for i := 0; i <= 50; i++ {
		pts = append(pts, want.Eval(float64(i)/50))
	}

	s, err := FitPoints(pts, FitOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if s.NumSegments() != 1 {
		t.Fatalf("got %d segments, want 1", s.NumSegments())
	}
	diff(t, want, s.Segment(0), cmpopts.EquateApprox(0, 1e-3))
}

func TestFitPointsTangentOptions(t *testing.T) {
	want := Cubic(Pt(0, 0), Pt(0, 2), Pt(4, 3), Pt(4, 1))
	pts := make([]Point, 0, 51)
	for i := 0; i <= 50; i++ {
		pts = append(pts, want.Eval(float64(i)/50))
	}

	s, err := FitPoints(pts, FitOptions{
		StartTangent: Vec(0, 1),
		EndTangent:   Vec(0, -1),
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.NumSegments() != 1 {
		t.Fatalf("got %d segments, want 1", s.NumSegments())
	}
	diff(t, want, s.Segment(0), cmpopts.EquateApprox(0, 1e-3))
}

func TestFitPointsSplits(t *testing.T) {
	// A semicircle is not representable by one cubic at this accuracy, so the
	// fit must subdivide while staying within tolerance of every sample.
	const accuracy = 1e-4
	pts := make([]Point, 0, 41)
	for i := 0; i <= 40; i++ {
		a := math.Pi * float64(i) / 40
		pts = append(pts, Pt(math.Cos(a), math.Sin(a)))
	}

	s, err := FitPoints(pts, FitOptions{Accuracy: accuracy})
	if err != nil {
		t.Fatal(err)
	}
	if s.NumSegments() < 2 {
		t.Fatalf("got %d segments, want at least 2", s.NumSegments())
	}
	if s.Segment(0).Start() != pts[0] {
		t.Error("chain does not start at the first sample")
	}
	if s.Segment(s.NumSegments()-1).End() != pts[len(pts)-1] {
		t.Error("chain does not end at the last sample")
	}
	for _, p := range pts {
		if d := distanceToSubpath(s, p); d > 2*accuracy {
			t.Errorf("sample %v is %v from the fitted chain", p, d)
		}
	}
}

func distanceToSubpath(s Subpath, p Point) float64 {
	best := math.Inf(1)
	for seg := range s.Segments() {
		if d := seg.Eval(seg.Project(p)).Distance(p); d < best {
			best = d
		}
	}
	return best
}
