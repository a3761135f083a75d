package bezier

import (
	"fmt"
	"sort"
)

// Kind identifies the degree variant of a [Bezier].
type Kind uint8

const (
	LinearKind Kind = iota + 1
	QuadraticKind
	CubicKind
)

func (k Kind) String() string {
	switch k {
	case LinearKind:
		return "linear"
	case QuadraticKind:
		return "quadratic"
	case CubicKind:
		return "cubic"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Bezier is a single Bézier curve segment of degree one, two, or three.
//
// It is a tagged union: the Kind field selects which of the control points
// P0 through P3 are in use. A linear segment uses P0 and P1, a quadratic
// segment uses P0 through P2, and a cubic segment uses all four. Unused
// points are the zero value and must be ignored.
//
// We use a tagged union instead of an interface to allow passing and
// returning curves of any degree without causing allocations.
//
// The degree is fixed at construction. All transformations return new
// values; a Bezier is never mutated.
type Bezier struct {
	Kind           Kind
	P0, P1, P2, P3 Point
}

// Linear returns the line segment from p0 to p1.
func Linear(p0, p1 Point) Bezier {
	return Bezier{Kind: LinearKind, P0: p0, P1: p1}
}

// Quadratic returns the quadratic Bézier with the given control points.
func Quadratic(p0, p1, p2 Point) Bezier {
	return Bezier{Kind: QuadraticKind, P0: p0, P1: p1, P2: p2}
}

// Cubic returns the cubic Bézier with the given control points.
func Cubic(p0, p1, p2, p3 Point) Bezier {
	return Bezier{Kind: CubicKind, P0: p0, P1: p1, P2: p2, P3: p3}
}

// Degree returns the polynomial degree of the curve: 1, 2, or 3.
func (b Bezier) Degree() int {
	switch b.Kind {
	case LinearKind:
		return 1
	case QuadraticKind:
		return 2
	case CubicKind:
		return 3
	default:
		panic(fmt.Sprintf("invalid curve kind %v", b.Kind))
	}
}

// Start returns the curve's start point, which is Eval(0).
func (b Bezier) Start() Point { return b.P0 }

// End returns the curve's end point, which is Eval(1).
func (b Bezier) End() Point {
	switch b.Kind {
	case LinearKind:
		return b.P1
	case QuadraticKind:
		return b.P2
	default:
		return b.P3
	}
}

// IsPoint reports whether all of the curve's control points coincide.
func (b Bezier) IsPoint() bool {
	switch b.Kind {
	case LinearKind:
		return b.P0 == b.P1
	case QuadraticKind:
		return b.P0 == b.P1 && b.P0 == b.P2
	default:
		return b.P0 == b.P1 && b.P0 == b.P2 && b.P0 == b.P3
	}
}

// Eval evaluates the curve at parameter t, using the Bernstein closed forms.
// The endpoints are exact: Eval(0) returns the start point and Eval(1) the
// end point, with no floating point error.
func (b Bezier) Eval(t float64) Point {
	mt := 1 - t
	switch b.Kind {
	case LinearKind:
		return b.P0.Lerp(b.P1, t)
	case QuadraticKind:
		v := Vec2(b.P0).Mul(mt * mt).
			Add(Vec2(b.P1).Mul(2 * mt * t)).
			Add(Vec2(b.P2).Mul(t * t))
		return Point(v)
	case CubicKind:
		v := Vec2(b.P0).Mul(mt * mt * mt).
			Add(Vec2(b.P1).Mul(3 * mt * mt * t)).
			Add(Vec2(b.P2).Mul(3 * mt * t * t)).
			Add(Vec2(b.P3).Mul(t * t * t))
		return Point(v)
	default:
		panic(fmt.Sprintf("invalid curve kind %v", b.Kind))
	}
}

// DerivativeAt evaluates the curve's first derivative at parameter t.
//
// The derivative of a linear segment is constant, so t is ignored for that
// kind.
func (b Bezier) DerivativeAt(t float64) Vec2 {
	switch b.Kind {
	case LinearKind:
		return b.P1.Sub(b.P0)
	case QuadraticKind:
		d0 := b.P1.Sub(b.P0)
		d1 := b.P2.Sub(b.P1)
		return d0.Lerp(d1, t).Mul(2)
	case CubicKind:
		mt := 1 - t
		return b.P1.Sub(b.P0).Mul(3 * mt * mt).
			Add(b.P2.Sub(b.P1).Mul(6 * mt * t)).
			Add(b.P3.Sub(b.P2).Mul(3 * t * t))
	default:
		panic(fmt.Sprintf("invalid curve kind %v", b.Kind))
	}
}

// SecondDerivativeAt evaluates the curve's second derivative at parameter t.
// It is the zero vector for linear segments and constant for quadratics.
func (b Bezier) SecondDerivativeAt(t float64) Vec2 {
	switch b.Kind {
	case LinearKind:
		return Vec2{}
	case QuadraticKind:
		return Vec2(b.P2).Sub(Vec2(b.P1).Mul(2)).Add(Vec2(b.P0)).Mul(2)
	case CubicKind:
		a := Vec2(b.P2).Sub(Vec2(b.P1).Mul(2)).Add(Vec2(b.P0))
		c := Vec2(b.P3).Sub(Vec2(b.P2).Mul(2)).Add(Vec2(b.P1))
		return a.Lerp(c, t).Mul(6)
	default:
		panic(fmt.Sprintf("invalid curve kind %v", b.Kind))
	}
}

// Derivative returns the curve's derivative as a Bézier one degree lower,
// with the Bernstein scaling factor applied. Its control points are
// displacement vectors stored as points.
//
// A linear segment has no lower-degree representation; for those, Derivative
// returns false, and [Bezier.DerivativeAt] reports the constant derivative.
func (b Bezier) Derivative() (Bezier, bool) {
	switch b.Kind {
	case LinearKind:
		return Bezier{}, false
	case QuadraticKind:
		return Linear(
			Point(b.P1.Sub(b.P0).Mul(2)),
			Point(b.P2.Sub(b.P1).Mul(2)),
		), true
	case CubicKind:
		return Quadratic(
			Point(b.P1.Sub(b.P0).Mul(3)),
			Point(b.P2.Sub(b.P1).Mul(3)),
			Point(b.P3.Sub(b.P2).Mul(3)),
		), true
	default:
		panic(fmt.Sprintf("invalid curve kind %v", b.Kind))
	}
}

// Normal returns the unit normal at parameter t, the unit tangent rotated a
// quarter turn from the positive x axis towards the positive y axis.
//
// If the derivative vanishes at t, such as at a cusp or on a curve whose
// control points coincide, there is no well-defined direction and
// [ErrDegenerateCurve] is returned.
func (b Bezier) Normal(t float64) (Vec2, error) {
	d := b.DerivativeAt(t)
	if d.Hypot() <= tangentEpsilon {
		return Vec2{}, ErrDegenerateCurve
	}
	return d.Normalize().Turn90(), nil
}

// Curvature returns the signed curvature at parameter t,
// cross(B′, B″) / |B′|³. The sign follows the sign of the cross product.
//
// If the derivative vanishes at t, curvature is undefined and
// [ErrDegenerateCurve] is returned.
func (b Bezier) Curvature(t float64) (float64, error) {
	d := b.DerivativeAt(t)
	h := d.Hypot()
	if h <= tangentEpsilon {
		return 0, ErrDegenerateCurve
	}
	d2 := b.SecondDerivativeAt(t)
	return d.Cross(d2) / (h * h * h), nil
}

// Extrema returns the parameters at which the curve's x or y coordinate
// reaches a local extremum.
//
// Only extrema in the interior of the parameter range count; 0 and 1 are
// never reported. The extrema are reported in increasing parameter order. At
// most [MaxExtrema] extrema can be reported, which is sufficient for cubics.
func (b Bezier) Extrema() ([MaxExtrema]float64, int) {
	var out [MaxExtrema]float64
	n := 0
	oneCoord := func(c0, c1, c2 float64) {
		roots, num := SolveQuadratic(c0, c1, c2)
		for _, t := range roots[:num] {
			if t > 0 && t < 1 {
				out[n] = t
				n++
			}
		}
	}
	switch b.Kind {
	case LinearKind:
		// Coordinates are monotonic.
	case QuadraticKind:
		d0 := b.P1.Sub(b.P0)
		d1 := b.P2.Sub(b.P1)
		oneCoord(d0.X, d1.X-d0.X, 0)
		oneCoord(d0.Y, d1.Y-d0.Y, 0)
	case CubicKind:
		d0 := b.P1.Sub(b.P0)
		d1 := b.P2.Sub(b.P1)
		d2 := b.P3.Sub(b.P2)
		oneCoord(d0.X, 2*(d1.X-d0.X), d0.X-2*d1.X+d2.X)
		oneCoord(d0.Y, 2*(d1.Y-d0.Y), d0.Y-2*d1.Y+d2.Y)
	}
	sort.Float64s(out[:n])
	return out, n
}

// BoundingBox returns the smallest axis-aligned rectangle that encloses the
// curve, computed exactly from the endpoints and the coordinate extrema. The
// box encloses the curve itself, not its control polygon.
func (b Bezier) BoundingBox() Rect {
	bbox := NewRectFromPoints(b.Start(), b.End())
	ex, n := b.Extrema()
	for _, t := range ex[:n] {
		bbox = bbox.UnionPoint(b.Eval(t))
	}
	return bbox
}

// Inflections returns the parameters in (0, 1) at which the curve's signed
// curvature changes sign. Only cubics can have inflections; for lower degrees
// the count is always zero. A cubic has at most two.
func (b Bezier) Inflections() ([2]float64, int) {
	if b.Kind != CubicKind {
		return [2]float64{}, 0
	}
	a := b.P1.Sub(b.P0)
	bv := b.P2.Sub(b.P1).Sub(a)
	c := b.P3.Sub(b.P0).Sub(b.P2.Sub(b.P1).Mul(3))
	roots, num := SolveQuadratic(a.Cross(bv), a.Cross(c), bv.Cross(c))
	var out [2]float64
	n := 0
	for _, t := range roots[:num] {
		if t > 0 && t < 1 {
			out[n] = t
			n++
		}
	}
	sort.Float64s(out[:n])
	return out, n
}

// Split subdivides the curve at parameter t using de Casteljau's algorithm,
// returning the two halves. Both halves have the same degree as the input,
// and they share the point at parameter t.
func (b Bezier) Split(t float64) (Bezier, Bezier) {
	switch b.Kind {
	case LinearKind:
		mid := b.P0.Lerp(b.P1, t)
		return Linear(b.P0, mid), Linear(mid, b.P1)
	case QuadraticKind:
		q0 := b.P0.Lerp(b.P1, t)
		q1 := b.P1.Lerp(b.P2, t)
		mid := q0.Lerp(q1, t)
		return Quadratic(b.P0, q0, mid), Quadratic(mid, q1, b.P2)
	case CubicKind:
		q0 := b.P0.Lerp(b.P1, t)
		q1 := b.P1.Lerp(b.P2, t)
		q2 := b.P2.Lerp(b.P3, t)
		r0 := q0.Lerp(q1, t)
		r1 := q1.Lerp(q2, t)
		mid := r0.Lerp(r1, t)
		return Cubic(b.P0, q0, r0, mid), Cubic(mid, r1, q2, b.P3)
	default:
		panic(fmt.Sprintf("invalid curve kind %v", b.Kind))
	}
}

// Trim returns the portion of the curve on the parameter range [t0, t1],
// reparameterized to [0, 1]. It is the composition of two splits. Arguments
// are clamped to [0, 1] and swapped if out of order.
func (b Bezier) Trim(t0, t1 float64) Bezier {
	t0 = min(max(t0, 0), 1)
	t1 = min(max(t1, 0), 1)
	if t1 < t0 {
		t0, t1 = t1, t0
	}
	_, rest := b.Split(t0)
	if t0 == 1 {
		return rest
	}
	u := (t1 - t0) / (1 - t0)
	out, _ := rest.Split(u)
	return out
}

// Reverse returns the same curve traversed in the opposite direction, with
// the order of the control points reversed.
func (b Bezier) Reverse() Bezier {
	switch b.Kind {
	case LinearKind:
		return Linear(b.P1, b.P0)
	case QuadraticKind:
		return Quadratic(b.P2, b.P1, b.P0)
	case CubicKind:
		return Cubic(b.P3, b.P2, b.P1, b.P0)
	default:
		panic(fmt.Sprintf("invalid curve kind %v", b.Kind))
	}
}

// Raise performs degree elevation, returning a curve of one degree higher
// that traces the same points. Raising a cubic returns the cubic unchanged.
func (b Bezier) Raise() Bezier {
	switch b.Kind {
	case LinearKind:
		return Quadratic(b.P0, b.P0.Midpoint(b.P1), b.P1)
	case QuadraticKind:
		return Cubic(
			b.P0,
			b.P0.Lerp(b.P1, 2.0/3.0),
			b.P2.Lerp(b.P1, 2.0/3.0),
			b.P2,
		)
	case CubicKind:
		return b
	default:
		panic(fmt.Sprintf("invalid curve kind %v", b.Kind))
	}
}

// Project returns the parameter of the point on the curve nearest to pt. It
// scans a coarse sample grid for the best candidate and refines it with
// ternary search on the squared distance.
func (b Bezier) Project(pt Point) float64 {
	const steps = 32
	best := 0.0
	bestDist := b.Eval(0).DistanceSquared(pt)
	for i := 1; i <= steps; i++ {
		t := float64(i) / steps
		if d := b.Eval(t).DistanceSquared(pt); d < bestDist {
			best = t
			bestDist = d
		}
	}
	lo := max(best-1.0/steps, 0)
	hi := min(best+1.0/steps, 1)
	for range 64 {
		m0 := lo + (hi-lo)/3
		m1 := hi - (hi-lo)/3
		if b.Eval(m0).DistanceSquared(pt) < b.Eval(m1).DistanceSquared(pt) {
			hi = m1
		} else {
			lo = m0
		}
	}
	return 0.5 * (lo + hi)
}

// startTangent returns a direction vector for the curve at its start point,
// falling back to later control points when the leading ones coincide.
func (b Bezier) startTangent() Vec2 {
	d := b.P1.Sub(b.P0)
	if b.Kind == LinearKind {
		return d
	}
	if d.Hypot2() <= tangentEpsilon {
		d = b.P2.Sub(b.P0)
	}
	if b.Kind == CubicKind && d.Hypot2() <= tangentEpsilon {
		d = b.P3.Sub(b.P0)
	}
	return d
}

// endTangent returns a direction vector for the curve at its end point,
// pointing in the direction of travel.
func (b Bezier) endTangent() Vec2 {
	return b.Reverse().startTangent().Negate()
}
