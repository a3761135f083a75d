package bezier

import "math"

// Table of Legendre-Gauss quadrature coefficients of order 10, adapted from:
// <https://pomax.github.io/bezierinfo/legendre-gauss.html>

var gaussLegendreCoeffs10 = [...][2]float64{
	{0.2955242247147529, -0.1488743389816312},
	{0.2955242247147529, 0.1488743389816312},
	{0.2692667193099963, -0.4333953941292472},
	{0.2692667193099963, 0.4333953941292472},
	{0.2190863625159820, -0.6794095682990244},
	{0.2190863625159820, 0.6794095682990244},
	{0.1494513491505806, -0.8650633666889845},
	{0.1494513491505806, 0.8650633666889845},
	{0.0666713443086881, -0.9739065285171717},
	{0.0666713443086881, 0.9739065285171717},
}

// speedEpsilon floors the derivative magnitude when it is used as a
// denominator during arc-length inversion.
const speedEpsilon = 1e-9

// maxArclenDepth bounds the adaptive quadrature recursion.
const maxArclenDepth = 16

// maxInvArclenIter bounds the arc-length inversion iteration count.
const maxInvArclenIter = 64

// gaussArclen estimates the curve's arc length with one order-10
// Legendre-Gauss quadrature pass over the derivative's magnitude.
func (b Bezier) gaussArclen() float64 {
	sum := 0.0
	for _, wx := range gaussLegendreCoeffs10 {
		w, x := wx[0], wx[1]
		t := 0.5 * (x + 1)
		sum += w * b.DerivativeAt(t).Hypot()
	}
	return 0.5 * sum
}

// Arclen returns the length of the curve.
//
// For linear segments the result is the exact euclidean distance between the
// endpoints. For higher degrees the length is estimated by Legendre-Gauss
// quadrature with adaptive subdivision: whenever the estimate over an
// interval disagrees with the sum of the estimates over its halves by more
// than the accuracy budget, the interval is split and both halves are
// refined with half the budget each.
//
// An accuracy of 0 or less selects [DefaultAccuracy]. Compute time varies
// with accuracy, as tighter budgets force more subdivision.
func (b Bezier) Arclen(accuracy float64) float64 {
	if accuracy <= 0 {
		accuracy = DefaultAccuracy
	}
	if b.Kind == LinearKind {
		return b.P0.Distance(b.P1)
	}
	return arclenRec(b, accuracy, 0)
}

func arclenRec(b Bezier, accuracy float64, depth int) float64 {
	whole := b.gaussArclen()
	left, right := b.Split(0.5)
	halves := left.gaussArclen() + right.gaussArclen()
	if math.Abs(whole-halves) <= accuracy || depth >= maxArclenDepth {
		return halves
	}
	return arclenRec(left, 0.5*accuracy, depth+1) +
		arclenRec(right, 0.5*accuracy, depth+1)
}

// SolveForArclen solves for the parameter t whose arc length from the start
// of the curve is s.
//
// Values of s at or below 0 return 0, and values at or beyond the total
// length return 1. In between, the solver starts from the linear guess
// s / total and refines it with Newton steps on the cumulative length,
// bracketed by bisection so that a wild step can never escape the interval
// known to contain the solution. The derivative magnitude is floored at a
// small epsilon before it is used as a denominator.
//
// If the iteration budget is exhausted before the cumulative length matches
// s to the given accuracy, which happens when the cumulative length is not
// numerically monotonic, [ErrNonMonotonicLength] is returned along with the
// best parameter found.
//
// An accuracy of 0 or less selects [DefaultAccuracy].
func (b Bezier) SolveForArclen(s, accuracy float64) (float64, error) {
	if accuracy <= 0 {
		accuracy = DefaultAccuracy
	}
	total := b.Arclen(accuracy)
	if s <= 0 || total == 0 {
		return 0, nil
	}
	if s >= total {
		return 1, nil
	}

	lo, hi := 0.0, 1.0
	t := s / total
	for range maxInvArclenIter {
		arc := b.Trim(0, t).Arclen(accuracy)
		diff := arc - s
		if math.Abs(diff) <= accuracy {
			return t, nil
		}
		if diff < 0 {
			lo = t
		} else {
			hi = t
		}
		speed := max(b.DerivativeAt(t).Hypot(), speedEpsilon)
		next := t - diff/speed
		if next <= lo || next >= hi {
			next = 0.5 * (lo + hi)
		}
		t = next
	}
	return t, ErrNonMonotonicLength
}

// EuclideanToParametric converts a euclidean distance ratio along the curve,
// in [0, 1], to the parametric t value at which that fraction of the total
// arc length has been traversed.
func (b Bezier) EuclideanToParametric(ratio, accuracy float64) (float64, error) {
	if accuracy <= 0 {
		accuracy = DefaultAccuracy
	}
	if ratio <= 0 {
		return 0, nil
	}
	if ratio >= 1 {
		return 1, nil
	}
	return b.SolveForArclen(ratio*b.Arclen(accuracy), accuracy)
}

// Spacing selects how [Bezier.LookupTable] distributes its samples along the
// curve.
type Spacing uint8

const (
	// ParametricSpacing spaces samples uniformly in the curve parameter.
	ParametricSpacing Spacing = iota
	// EuclideanSpacing spaces samples uniformly in arc length.
	EuclideanSpacing
)

// LookupTable returns steps+1 points on the curve, from the start point to
// the end point inclusive, spaced per the given [Spacing]. A steps value
// below 1 defaults to 10.
//
// Euclidean spacing solves for the parameter of each arc-length fraction and
// can fail like [Bezier.SolveForArclen]; parametric spacing never fails.
func (b Bezier) LookupTable(steps int, spacing Spacing) ([]Point, error) {
	if steps < 1 {
		steps = 10
	}
	pts := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		t := frac
		if spacing == EuclideanSpacing {
			var err error
			t, err = b.EuclideanToParametric(frac, DefaultAccuracy)
			if err != nil {
				return nil, err
			}
		}
		pts = append(pts, b.Eval(t))
	}
	return pts, nil
}
