package bezier

import "fmt"

// FitOptions controls [FitPoints].
//
// The zero value of each field selects the corresponding default from
// [DefaultFitOptions].
type FitOptions struct {
	// Accuracy is the maximum distance allowed between any input sample and
	// the fitted curve chain.
	Accuracy float64
	// StartTangent is the desired tangent direction at the first point,
	// pointing in the direction of travel. The zero vector requests an
	// estimate from the leading samples.
	StartTangent Vec2
	// EndTangent is the desired tangent direction at the last point,
	// pointing in the direction of travel. The zero vector requests an
	// estimate from the trailing samples.
	EndTangent Vec2
	// MaxIterations is the number of Newton-Raphson reparameterization
	// passes attempted before a range is subdivided.
	MaxIterations int
}

// DefaultFitOptions are the defaults used by [FitPoints] for zero-valued
// [FitOptions] fields.
var DefaultFitOptions = FitOptions{
	Accuracy:      1e-4,
	MaxIterations: 4,
}

// maxFitDepth bounds the fitting recursion. Reaching it means subdivision
// has stopped making progress towards the tolerance.
const maxFitDepth = 32

// FitPoints fits a chain of cubic Bézier segments through the given sample
// points, in order, using Philip Schneider's error-driven recursive least
// squares algorithm: the samples are parameterized by chord length, a single
// cubic with fixed endpoint tangents is solved for in the least squares
// sense, the parameterization is refined with Newton-Raphson steps, and if
// the worst sample still deviates by more than the accuracy the range is
// split at that sample and both halves are fitted recursively. The two
// halves share a tangent at the split, keeping the chain smooth.
//
// Consecutive duplicate points are dropped. At least two distinct points are
// required. The fitted chain interpolates the first and last points exactly.
//
// If recursion reaches its minimum range size, or stops making progress,
// while still exceeding the accuracy, [ErrFitToleranceUnreachable] is
// returned.
//
// The result is an open subpath whose segments are the fitted cubics.
func FitPoints(points []Point, opts FitOptions) (Subpath, error) {
	if opts.Accuracy <= 0 {
		opts.Accuracy = DefaultFitOptions.Accuracy
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultFitOptions.MaxIterations
	}

	pts := dropDuplicatePoints(points)
	if len(pts) < 2 {
		return Subpath{}, fmt.Errorf("bezier: fitting needs at least 2 distinct points, got %d", len(pts))
	}

	tHat1 := opts.StartTangent
	if tHat1 == (Vec2{}) {
		tHat1 = tangentEstimate(pts)
	}
	tHat2 := opts.EndTangent
	if tHat2 == (Vec2{}) {
		tHat2 = tangentEstimate(reversedPoints(pts)).Negate()
	}

	// Schneider's convention: the end tangent points backwards, towards the
	// interior of the sample range.
	cubics, err := fitCubicRec(pts, tHat1.Normalize(), tHat2.Negate().Normalize(), opts, 0)
	if err != nil {
		return Subpath{}, err
	}
	var pb pathBuilder
	pb.moveTo(pts[0])
	for _, c := range cubics {
		pb.curveTo(c)
	}
	return pb.subpath(false), nil
}

func dropDuplicatePoints(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}

func reversedPoints(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	return out
}

// tangentEstimate estimates the travel direction at the first sample with a
// one-sided finite difference, using the highest order the sample count
// allows. Higher orders keep the direction error small enough that the
// fitted handles land close to those of the sampled curve.
func tangentEstimate(pts []Point) Vec2 {
	var v Vec2
	switch {
	case len(pts) >= 4:
		v = Vec2(pts[0]).Mul(-11).
			Add(Vec2(pts[1]).Mul(18)).
			Add(Vec2(pts[2]).Mul(-9)).
			Add(Vec2(pts[3]).Mul(2))
	case len(pts) == 3:
		v = Vec2(pts[0]).Mul(-3).
			Add(Vec2(pts[1]).Mul(4)).
			Sub(Vec2(pts[2]))
	default:
		v = pts[1].Sub(pts[0])
	}
	if v.Hypot2() <= tangentEpsilon {
		v = pts[len(pts)-1].Sub(pts[0])
	}
	return v.Normalize()
}

// fitCubicRec fits one cubic to pts and recurses on the worst sample when
// the tolerance is not met. tHat1 points in the direction of travel at the
// first point; tHat2 points backwards at the last point.
func fitCubicRec(pts []Point, tHat1, tHat2 Vec2, opts FitOptions, depth int) ([]Bezier, error) {
	if len(pts) == 2 {
		// No interior samples to measure against; use the chord heuristic.
		return []Bezier{heuristicCubic(pts[0], pts[1], tHat1, tHat2)}, nil
	}

	u := chordLengthParameterize(pts)
	bez := generateBezier(pts, u, tHat1, tHat2)
	maxErr, splitIdx := computeMaxError(pts, bez, u)
	if maxErr <= opts.Accuracy {
		return []Bezier{bez}, nil
	}

	// The initial chord-length parameterization is only an approximation of
	// the true curve parameter; refining it often brings the same cubic
	// within tolerance without subdividing.
	for range opts.MaxIterations {
		u = reparameterize(pts, u, bez)
		bez = generateBezier(pts, u, tHat1, tHat2)
		maxErr, splitIdx = computeMaxError(pts, bez, u)
		if maxErr <= opts.Accuracy {
			return []Bezier{bez}, nil
		}
	}

	if depth >= maxFitDepth || splitIdx <= 0 || splitIdx >= len(pts)-1 {
		return nil, ErrFitToleranceUnreachable
	}
	tHatCenter := centerTangent(pts, splitIdx)
	left, err := fitCubicRec(pts[:splitIdx+1], tHat1, tHatCenter, opts, depth+1)
	if err != nil {
		return nil, err
	}
	right, err := fitCubicRec(pts[splitIdx:], tHatCenter.Negate(), tHat2, opts, depth+1)
	if err != nil {
		return nil, err
	}
	return append(left, right...), nil
}

// heuristicCubic places the handles a third of the chord length along the
// endpoint tangents.
func heuristicCubic(p0, p1 Point, tHat1, tHat2 Vec2) Bezier {
	dist := p0.Distance(p1) / 3
	return Cubic(
		p0,
		p0.Translate(tHat1.Mul(dist)),
		p1.Translate(tHat2.Mul(dist)),
		p1,
	)
}

// chordLengthParameterize assigns each sample a parameter proportional to
// its cumulative polyline distance from the first sample, scaled to [0, 1].
func chordLengthParameterize(pts []Point) []float64 {
	u := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		u[i] = u[i-1] + pts[i].Distance(pts[i-1])
	}
	total := u[len(u)-1]
	for i := 1; i < len(u); i++ {
		u[i] /= total
	}
	return u
}

// generateBezier solves for the two interior control points of a cubic with
// fixed endpoints and fixed endpoint tangent directions, minimizing the
// squared distance to the samples at their assigned parameters. This is the
// closed-form 2x2 least squares system of Schneider's algorithm.
func generateBezier(pts []Point, u []float64, tHat1, tHat2 Vec2) Bezier {
	n := len(pts)
	first := pts[0]
	last := pts[n-1]

	var c00, c01, c11, x0, x1 float64
	for i, uu := range u {
		mu := 1 - uu
		b0 := mu * mu * mu
		b1 := 3 * uu * mu * mu
		b2 := 3 * uu * uu * mu
		b3 := uu * uu * uu

		a0 := tHat1.Mul(b1)
		a1 := tHat2.Mul(b2)
		c00 += a0.Dot(a0)
		c01 += a0.Dot(a1)
		c11 += a1.Dot(a1)

		tmp := Vec2(pts[i]).
			Sub(Vec2(first).Mul(b0 + b1)).
			Sub(Vec2(last).Mul(b2 + b3))
		x0 += a0.Dot(tmp)
		x1 += a1.Dot(tmp)
	}

	detC0C1 := c00*c11 - c01*c01
	detC0X := c00*x1 - c01*x0
	detXC1 := x0*c11 - x1*c01

	alphaL, alphaR := 0.0, 0.0
	if detC0C1 != 0 {
		alphaL = detXC1 / detC0C1
		alphaR = detC0X / detC0C1
	}

	// If the system is singular or produces handles behind the endpoints,
	// fall back to the chord heuristic.
	segLength := first.Distance(last)
	eps := 1e-6 * segLength
	if alphaL < eps || alphaR < eps {
		return heuristicCubic(first, last, tHat1, tHat2)
	}
	return Cubic(
		first,
		first.Translate(tHat1.Mul(alphaL)),
		last.Translate(tHat2.Mul(alphaR)),
		last,
	)
}

// computeMaxError returns the largest distance between an interior sample
// and the curve at its assigned parameter, and the index of that sample.
func computeMaxError(pts []Point, bez Bezier, u []float64) (float64, int) {
	maxDist := 0.0
	splitIdx := len(pts) / 2
	for i := 1; i < len(pts)-1; i++ {
		dist := bez.Eval(u[i]).Distance(pts[i])
		if dist > maxDist {
			maxDist = dist
			splitIdx = i
		}
	}
	return maxDist, splitIdx
}

// reparameterize moves each sample's parameter one Newton-Raphson step
// towards the parameter of the nearest point on bez.
func reparameterize(pts []Point, u []float64, bez Bezier) []float64 {
	out := make([]float64, len(u))
	for i, uu := range u {
		out[i] = newtonRaphsonStep(bez, pts[i], uu)
	}
	return out
}

func newtonRaphsonStep(bez Bezier, p Point, u float64) float64 {
	d := bez.Eval(u).Sub(p)
	d1 := bez.DerivativeAt(u)
	d2 := bez.SecondDerivativeAt(u)
	den := d1.Dot(d1) + d.Dot(d2)
	if den == 0 {
		return u
	}
	next := u - d.Dot(d1)/den
	return min(max(next, 0), 1)
}

// centerTangent estimates the shared tangent at a split sample from its two
// neighbors. It points backwards, serving as the left half's end tangent;
// its negation is the right half's start tangent.
func centerTangent(pts []Point, idx int) Vec2 {
	v := pts[idx-1].Sub(pts[idx+1])
	if v.Hypot2() <= tangentEpsilon {
		// Neighbors coincide; fall back to the incoming direction.
		v = pts[idx-1].Sub(pts[idx])
	}
	return v.Normalize()
}
