package bezier

import (
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(0, 0).Translate(Vec(-10, 0)), Pt(-10, 0))
	diff(t, Pt(3, 4).Sub(Pt(1, 1)), Vec(2, 3))
}

func TestPointDistance(t *testing.T) {
	p1 := Pt(0, 10)
	p2 := Pt(0, 5)
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	p3 := Pt(-11, 1)
	p4 := Pt(-7, -2)
	if d := p3.Distance(p4); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}
}

func TestVec2Cross(t *testing.T) {
	if c := Vec(1, 0).Cross(Vec(0, 1)); c != 1 {
		t.Errorf("got cross %v, want 1", c)
	}
	if c := Vec(0, 1).Cross(Vec(1, 0)); c != -1 {
		t.Errorf("got cross %v, want -1", c)
	}
}

func TestVec2Turn90(t *testing.T) {
	diff(t, Vec(1, 0).Turn90(), Vec(0, 1))
	diff(t, Vec(0, 1).Turn90(), Vec(-1, 0))
}
