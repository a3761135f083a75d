package bezier

import "sort"

// MaxIntersectionDepth is the recursion depth limit for intersection
// finding. Branches that have not converged by this depth are abandoned, so
// that tangential or near-coincident inputs terminate deterministically.
const MaxIntersectionDepth = 60

// ParamPair is one crossing between two curves, giving the parameter on each
// curve at which they meet.
type ParamPair struct {
	TA, TB float64
}

// Intersections returns the crossings between curves a and b, located by
// recursive bounding-box clipping: whenever the curves' boxes overlap, the
// curve with the larger box is split at its parameter midpoint and both
// halves are tested against the other curve, until both boxes' diagonals
// are below epsilon. Converged candidates within epsilon of one another are
// merged into a single representative.
//
// The result is ordered by TA, then TB. An epsilon of 0 or less selects
// [DefaultAccuracy].
//
// If the two curves coincide over a region rather than crossing at isolated
// points, which is detected when their control nets are identical or exactly
// reversed, [ErrOverlappingCurves] is returned.
func Intersections(a, b Bezier, epsilon float64) ([]ParamPair, error) {
	if epsilon <= 0 {
		epsilon = DefaultAccuracy
	}
	if a == b || a == b.Reverse() {
		return nil, ErrOverlappingCurves
	}
	var candidates []ParamPair
	intersectRec(a, b, 0, 1, 0, 1, epsilon, 0, &candidates)
	return clusterPairs(candidates, a.Eval, b.Eval, epsilon), nil
}

func intersectRec(a, b Bezier, ta0, ta1, tb0, tb1, epsilon float64, depth int, out *[]ParamPair) {
	boxA := a.BoundingBox()
	boxB := b.BoundingBox()
	if !boxA.Overlaps(boxB) {
		return
	}
	da := boxA.Diagonal()
	db := boxB.Diagonal()
	if da < epsilon && db < epsilon {
		*out = append(*out, ParamPair{
			TA: 0.5 * (ta0 + ta1),
			TB: 0.5 * (tb0 + tb1),
		})
		return
	}
	if depth >= MaxIntersectionDepth {
		// The branch did not converge; abandon it.
		return
	}
	if da >= db {
		left, right := a.Split(0.5)
		tm := 0.5 * (ta0 + ta1)
		intersectRec(left, b, ta0, tm, tb0, tb1, epsilon, depth+1, out)
		intersectRec(right, b, tm, ta1, tb0, tb1, epsilon, depth+1, out)
	} else {
		left, right := b.Split(0.5)
		tm := 0.5 * (tb0 + tb1)
		intersectRec(a, left, ta0, ta1, tb0, tm, epsilon, depth+1, out)
		intersectRec(a, right, ta0, ta1, tm, tb1, epsilon, depth+1, out)
	}
}

// clusterPairs sorts candidates by TA then TB and merges candidates whose
// points on both curves lie within epsilon of an already kept candidate.
// Subdivision produces several converged cells around each true crossing;
// this pass collapses each such cluster to one representative.
func clusterPairs(pairs []ParamPair, evalA, evalB func(float64) Point, epsilon float64) []ParamPair {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].TA != pairs[j].TA {
			return pairs[i].TA < pairs[j].TA
		}
		return pairs[i].TB < pairs[j].TB
	})
	var out []ParamPair
	for _, p := range pairs {
		dup := false
		for _, q := range out {
			if evalA(p.TA).Distance(evalA(q.TA)) <= epsilon &&
				evalB(p.TB).Distance(evalB(q.TB)) <= epsilon {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// SelfIntersections returns the parameter pairs at which the curve crosses
// itself. Only cubics can self-intersect.
//
// The curve is first cut into simple pieces at its extrema and inflections;
// the pairwise clipping search then runs on every non-adjacent pair of
// pieces, so that the shared endpoints of neighboring pieces are never
// reported as crossings. Matches joining the curve's own start to its end,
// as on a closed loop, are discarded.
//
// Each crossing appears once, with TA < TB, ordered by TA. An epsilon of 0
// or less selects [DefaultAccuracy].
func SelfIntersections(b Bezier, epsilon float64) []ParamPair {
	if epsilon <= 0 {
		epsilon = DefaultAccuracy
	}
	ranges := b.simpleRanges()
	var candidates []ParamPair
	for i := 0; i < len(ranges); i++ {
		pa := b.Trim(ranges[i][0], ranges[i][1])
		for j := i + 2; j < len(ranges); j++ {
			pb := b.Trim(ranges[j][0], ranges[j][1])
			intersectRec(
				pa, pb,
				ranges[i][0], ranges[i][1],
				ranges[j][0], ranges[j][1],
				epsilon, 0, &candidates,
			)
		}
	}
	kept := candidates[:0]
	for _, p := range candidates {
		if p.TA <= 1e-9 && p.TB >= 1-1e-9 {
			// Loop closure, not a crossing.
			continue
		}
		kept = append(kept, p)
	}
	return clusterPairs(kept, b.Eval, b.Eval, epsilon)
}
