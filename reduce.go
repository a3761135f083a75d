package bezier

import (
	"iter"
	"math"
	"sort"
)

// maxReduceDepth bounds the curvature-driven subdivision in [Bezier.Reduce].
const maxReduceDepth = 8

// simpleRanges returns consecutive parameter ranges covering [0, 1], split
// at the curve's coordinate extrema and inflection points. Within each range
// both coordinates are monotonic and the curvature does not change sign.
func (b Bezier) simpleRanges() [][2]float64 {
	splits := make([]float64, 0, MaxExtrema+4)
	splits = append(splits, 0)
	ex, n := b.Extrema()
	splits = append(splits, ex[:n]...)
	infl, m := b.Inflections()
	splits = append(splits, infl[:m]...)
	splits = append(splits, 1)
	sort.Float64s(splits)

	ranges := make([][2]float64, 0, len(splits)-1)
	prev := 0.0
	for _, t := range splits[1:] {
		if t-prev <= 1e-9 {
			continue
		}
		ranges = append(ranges, [2]float64{prev, t})
		prev = t
	}
	if len(ranges) == 0 {
		return [][2]float64{{0, 1}}
	}
	ranges[len(ranges)-1][1] = 1
	return ranges
}

// Reduce splits the curve into a sequence of simple pieces: each piece has
// monotonic x and y coordinates, contains no inflection point, and, if
// maxCurvature is positive, stays below that curvature magnitude (subject to
// a fixed subdivision depth limit). Zero-length pieces are dropped.
//
// A maxCurvature of 0 or less disables the curvature bound, splitting at
// extrema and inflections only.
//
// The returned iterator is single-use.
func (b Bezier) Reduce(maxCurvature float64) iter.Seq[Bezier] {
	return func(yield func(Bezier) bool) {
		for _, r := range b.simpleRanges() {
			piece := b.Trim(r[0], r[1])
			if piece.IsPoint() {
				continue
			}
			if !reduceRec(piece, maxCurvature, 0, yield) {
				return
			}
		}
	}
}

func reduceRec(b Bezier, maxCurvature float64, depth int, yield func(Bezier) bool) bool {
	if maxCurvature > 0 && depth < maxReduceDepth && exceedsCurvature(b, maxCurvature) {
		left, right := b.Split(0.5)
		return reduceRec(left, maxCurvature, depth+1, yield) &&
			reduceRec(right, maxCurvature, depth+1, yield)
	}
	return yield(b)
}

// exceedsCurvature samples the curvature at interior parameters and reports
// whether any sample exceeds the bound. Samples at degenerate parameters are
// skipped.
func exceedsCurvature(b Bezier, bound float64) bool {
	for _, t := range [...]float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		if k, err := b.Curvature(t); err == nil && math.Abs(k) > bound {
			return true
		}
	}
	return false
}
