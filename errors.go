package bezier

import "errors"

// Errors reported by operations whose geometric preconditions can fail on
// otherwise well-formed inputs. Operations return these instead of producing
// NaN coordinates.
var (
	// ErrDegenerateCurve reports a query that requires a well-defined tangent
	// at a parameter where the derivative vanishes, such as the normal of a
	// curve whose control points coincide.
	ErrDegenerateCurve = errors.New("bezier: degenerate curve: tangent undefined")

	// ErrNonMonotonicLength reports that arc-length inversion failed to
	// converge within its iteration budget, typically because the curve's
	// cumulative length is not numerically monotonic.
	ErrNonMonotonicLength = errors.New("bezier: arc length is not monotonic")

	// ErrOverlappingCurves reports an intersection query between two curves
	// that coincide over a region, where the crossing set is not a finite
	// list of points.
	ErrOverlappingCurves = errors.New("bezier: curves overlap in a region")

	// ErrFitToleranceUnreachable reports that curve fitting subdivided down
	// to its minimum sample range and still exceeds the requested tolerance.
	ErrFitToleranceUnreachable = errors.New("bezier: fit tolerance unreachable")
)
