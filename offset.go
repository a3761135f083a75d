package bezier

import (
	"fmt"
	"math"
)

// Join selects how [Subpath.Offset] connects consecutive offset segments on
// the outside of a corner.
type Join uint8

const (
	// BevelJoin connects the two offset endpoints with a straight segment.
	BevelJoin Join = iota
	// MiterJoin extends the offset tangents to their intersection, falling
	// back to a bevel when the miter ratio exceeds the limit.
	MiterJoin
	// RoundJoin connects the endpoints with a circular arc centered on the
	// corner, approximated by cubics.
	RoundJoin
)

// OffsetOptions controls [Bezier.Offset] and [Subpath.Offset]. Zero-valued
// fields select the corresponding default from [DefaultOffsetOptions]; note
// that the zero Join is [BevelJoin].
type OffsetOptions struct {
	// Accuracy is the fitting tolerance for the refitted offset pieces.
	Accuracy float64
	// Join is the corner style used between a subpath's offset segments.
	Join Join
	// MiterLimit is the maximum ratio of miter length to offset distance
	// before a miter join falls back to a bevel.
	MiterLimit float64
}

// DefaultOffsetOptions are the defaults used for zero-valued
// [OffsetOptions] fields.
var DefaultOffsetOptions = OffsetOptions{
	Accuracy:   1e-3,
	Join:       BevelJoin,
	MiterLimit: 4,
}

func (o OffsetOptions) withDefaults() OffsetOptions {
	if o.Accuracy <= 0 {
		o.Accuracy = DefaultOffsetOptions.Accuracy
	}
	if o.MiterLimit <= 0 {
		o.MiterLimit = DefaultOffsetOptions.MiterLimit
	}
	return o
}

// offsetSamples is the number of sample intervals displaced per reduced
// piece before refitting.
const offsetSamples = 16

// Offset approximates the parallel curve at signed distance d.
//
// A positive d displaces along the curve's normal, which is the tangent
// rotated a quarter turn towards positive y; a negative d displaces the
// other way.
//
// Linear segments offset exactly. Higher degrees have no closed-form
// parallel, so the curve is reduced into simple pieces, each piece is
// sampled, the samples are displaced along the local normals, and a cubic
// chain is refitted through them with the piece's own endpoint tangents.
//
// Offsetting a curve with no defined tangent anywhere, or through an
// interior parameter where the tangent vanishes, returns
// [ErrDegenerateCurve].
func (b Bezier) Offset(d float64, opts OffsetOptions) (Subpath, error) {
	opts = opts.withDefaults()
	segs, err := b.offsetSegments(d, opts)
	if err != nil {
		return Subpath{}, err
	}
	var pb pathBuilder
	pb.moveTo(segs[0].Start())
	for _, c := range segs {
		pb.curveTo(c)
	}
	return pb.subpath(false), nil
}

// offsetSegments computes the offset of a single curve as a chain of
// connected segments.
func (b Bezier) offsetSegments(d float64, opts OffsetOptions) ([]Bezier, error) {
	if b.IsPoint() {
		return nil, ErrDegenerateCurve
	}
	if b.Kind == LinearKind {
		n := b.P1.Sub(b.P0).Normalize().Turn90().Mul(d)
		return []Bezier{Linear(b.P0.Translate(n), b.P1.Translate(n))}, nil
	}

	var out []Bezier
	for _, r := range b.simpleRanges() {
		piece := b.Trim(r[0], r[1])
		if piece.IsPoint() {
			continue
		}
		pts := make([]Point, 0, offsetSamples+1)
		for i := 0; i <= offsetSamples; i++ {
			t := float64(i) / offsetSamples
			n, err := piece.Normal(t)
			if err != nil {
				// Endpoint cusps still have a one-sided direction via the
				// control polygon; interior cusps do not.
				switch i {
				case 0:
					n = piece.startTangent().Normalize().Turn90()
				case offsetSamples:
					n = piece.endTangent().Normalize().Turn90()
				default:
					return nil, err
				}
			}
			pts = append(pts, piece.Eval(t).Translate(n.Mul(d)))
		}
		cubics, err := fitCubicRec(
			dropDuplicatePoints(pts),
			piece.startTangent().Normalize(),
			piece.endTangent().Normalize().Negate(),
			FitOptions{Accuracy: opts.Accuracy, MaxIterations: DefaultFitOptions.MaxIterations},
			0,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, cubics...)
	}
	if len(out) == 0 {
		return nil, ErrDegenerateCurve
	}
	return out, nil
}

// Offset approximates the parallel of the whole subpath at signed distance
// d, offsetting each derived segment and reconciling consecutive offset
// pieces at every anchor.
//
// On the outside of a corner, where the offset pieces pull apart, the gap is
// filled per opts.Join. On the inside, where they overlap, both pieces are
// trimmed back to their crossing; if no crossing is found the endpoints are
// bridged with a straight segment.
//
// Closed subpaths are reconciled around the loop and stay closed. If any
// segment fails to offset, the error is returned wrapped with that segment's
// index, and no partial result is produced.
func (s Subpath) Offset(d float64, opts OffsetOptions) (Subpath, error) {
	opts = opts.withDefaults()
	n := s.NumSegments()
	if n == 0 {
		return Subpath{}, fmt.Errorf("bezier: offset of subpath with no segments: %w", ErrDegenerateCurve)
	}

	segs := make([]Bezier, n)
	pieces := make([][]Bezier, n)
	for i := range n {
		segs[i] = s.Segment(i)
		p, err := segs[i].offsetSegments(d, opts)
		if err != nil {
			return Subpath{}, fmt.Errorf("bezier: offset segment %d: %w", i, err)
		}
		pieces[i] = p
	}

	out := pieces[0]
	for i := 1; i < n; i++ {
		next := pieces[i]
		res := reconcileJoin(out[len(out)-1], next[0], segs[i-1], segs[i], d, opts)
		out[len(out)-1] = res.prevLast
		next[0] = res.nextFirst
		out = append(out, res.joins...)
		out = append(out, next...)
	}
	if s.closed && n > 1 {
		res := reconcileJoin(out[len(out)-1], out[0], segs[n-1], segs[0], d, opts)
		out[len(out)-1] = res.prevLast
		out[0] = res.nextFirst
		out = append(out, res.joins...)
	}

	var pb pathBuilder
	pb.moveTo(out[0].Start())
	for _, c := range out {
		pb.curveTo(c)
	}
	if s.closed {
		return pb.closedSubpath(), nil
	}
	return pb.subpath(false), nil
}

type joinResult struct {
	prevLast  Bezier
	joins     []Bezier
	nextFirst Bezier
}

// reconcileJoin connects the end of one offset piece to the start of the
// next at the corner where their source segments meet.
func reconcileJoin(prevLast, nextFirst, prevSeg, nextSeg Bezier, d float64, opts OffsetOptions) joinResult {
	res := joinResult{prevLast: prevLast, nextFirst: nextFirst}
	e := prevLast.End()
	st := nextFirst.Start()
	if e.Distance(st) <= opts.Accuracy {
		return res
	}
	corner := nextSeg.Start()
	endTan := prevSeg.endTangent().Normalize()
	startTan := nextSeg.startTangent().Normalize()

	if endTan.Cross(startTan)*d < 0 {
		// The offset points pull apart on this side; fill the gap.
		switch opts.Join {
		case MiterJoin:
			res.joins = miterJoin(e, st, corner, endTan, startTan, d, opts.MiterLimit)
		case RoundJoin:
			res.joins = roundJoin(e, st, corner, d)
		default:
			res.joins = []Bezier{Linear(e, st)}
		}
		return res
	}

	// The offset pieces overlap on this side; trim both back to their
	// crossing.
	if pairs, err := Intersections(prevLast, nextFirst, opts.Accuracy); err == nil && len(pairs) > 0 {
		best := pairs[0]
		for _, p := range pairs[1:] {
			if p.TA > best.TA {
				best = p
			}
		}
		res.prevLast = prevLast.Trim(0, best.TA)
		res.nextFirst = nextFirst.Trim(best.TB, 1)
		return res
	}
	res.joins = []Bezier{Linear(e, st)}
	return res
}

func miterJoin(e, s, corner Point, endTan, startTan Vec2, d, limit float64) []Bezier {
	denom := endTan.Cross(startTan)
	if math.Abs(denom) < 1e-12 {
		return []Bezier{Linear(e, s)}
	}
	t := s.Sub(e).Cross(startTan) / denom
	q := e.Translate(endTan.Mul(t))
	if t <= 0 || q.Distance(corner) > limit*math.Abs(d) {
		return []Bezier{Linear(e, s)}
	}
	return []Bezier{Linear(e, q), Linear(q, s)}
}

func roundJoin(e, s, corner Point, d float64) []Bezier {
	a0 := e.Sub(corner).Angle()
	sweep := wrapAngle(s.Sub(corner).Angle() - a0)
	if sweep == 0 {
		return []Bezier{Linear(e, s)}
	}
	return arcCubics(corner, math.Abs(d), a0, sweep)
}

func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// arcCubics approximates a circular arc with cubics, one per quarter turn,
// using the standard tangent-length factor (4/3)tan(Δ/4).
func arcCubics(center Point, radius, startAngle, sweep float64) []Bezier {
	n := max(1, int(math.Ceil(math.Abs(sweep)/(math.Pi/2))))
	delta := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(delta/4)
	out := make([]Bezier, 0, n)
	a := startAngle
	for range n {
		b := a + delta
		p0 := center.Translate(VecFromAngle(a).Mul(radius))
		p3 := center.Translate(VecFromAngle(b).Mul(radius))
		p1 := p0.Translate(VecFromAngle(a).Turn90().Mul(k * radius))
		p2 := p3.Translate(VecFromAngle(b).Turn90().Mul(-k * radius))
		out = append(out, Cubic(p0, p1, p2, p3))
		a = b
	}
	return out
}
