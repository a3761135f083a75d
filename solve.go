package bezier

import "math"

// MaxExtrema is the maximum number of extrema that can be reported by
// [Bezier.Extrema].
//
// This is 4 to support cubic Béziers.
const MaxExtrema = 4

// DefaultAccuracy is a default value for methods that take an accuracy
// argument. It is suitable for general-purpose use, such as 2D graphics.
const DefaultAccuracy = 1e-6

// tangentEpsilon is the smallest derivative magnitude considered a usable
// tangent. Below it, directions computed from the derivative are meaningless.
const tangentEpsilon = 1e-12

// SolveQuadratic finds real roots of a quadratic equation.
//
// Returns values of x for which c0 + c1 x + c2 x² = 0.0
//
// This function tries to be quite numerically robust. If the equation is nearly
// linear, it will return the root ignoring the quadratic term; the other root
// might be out of representable range. In the degenerate case where all
// coefficients are zero, so that all values of x satisfy the equation, a single
// 0.0 is returned.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) {
		// c2 is zero or very small, treat as linear eqn
		root := -c0 / c1
		if !math.IsInf(root, 0) {
			return [2]float64{root}, 1
		} else if c0 == 0.0 && c1 == 0.0 {
			// Degenerate case
			return [2]float64{0}, 1
		} else {
			return [2]float64{}, 0
		}
	}
	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// Likely, calculation of sc1 * sc1 overflowed. Find one root
		// using sc1 x + x² = 0, other root as sc0 / root1.
		root1 = -sc1
	} else {
		if arg < 0.0 {
			return [2]float64{}, 0
		} else if arg == 0.0 {
			return [2]float64{-0.5 * sc1}, 1
		}
		// See https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if !math.IsInf(root2, 0) {
		// Sort just to be friendly and make results deterministic.
		if root2 > root1 {
			return [2]float64{root1, root2}, 2
		} else {
			return [2]float64{root2, root1}, 2
		}
	} else {
		return [2]float64{root1}, 1
	}
}
