// Package bezier provides a computational geometry kernel for Bézier curve
// segments and multi-segment paths, intended as the mathematical foundation of
// 2D vector graphics tooling.
//
// # Curves
//
// The central type is [Bezier], a tagged union over the three degree variants
// [LinearKind], [QuadraticKind], and [CubicKind]. A curve's degree is fixed at
// construction, and every transformation (splitting, trimming, offsetting)
// produces a new value; nothing in this package mutates shared state.
//
// Queries include evaluation ([Bezier.Eval]), differential geometry
// ([Bezier.DerivativeAt], [Bezier.Normal], [Bezier.Curvature]), extrema and
// bounding boxes, inflection points, arc length ([Bezier.Arclen]) and its
// inverse ([Bezier.SolveForArclen]), and nearest-point projection
// ([Bezier.Project]).
//
// Relational queries locate curve-curve crossings by recursive bounding-box
// subdivision ([Intersections], [SelfIntersections]).
//
// # Paths
//
// [Subpath] represents an open or closed chain of [ManipulatorGroup] values,
// each an on-curve anchor with optional incoming and outgoing handles. The
// Bézier segments between consecutive anchors are never stored; they are
// derived on demand ([Subpath.Segments]), with the degree of each derived
// segment determined by which of the two adjacent handles are present. All
// editing operations return a new Subpath.
//
// # Approximation
//
// Two operations produce approximate results by construction. [FitPoints]
// fits a chain of cubics through sample points using error-driven recursive
// least squares, following Philip Schneider's algorithm from Graphics Gems.
// [Bezier.Offset] and [Subpath.Offset] approximate parallel curves by
// reducing a curve into well-behaved pieces, displacing samples along their
// normals, and refitting; adjacent offset pieces of a path are reconciled
// with a configurable join style.
//
// # Errors
//
// Degenerate geometric inputs are reported as recoverable errors rather than
// as NaN results: see [ErrDegenerateCurve], [ErrNonMonotonicLength],
// [ErrOverlappingCurves], and [ErrFitToleranceUnreachable]. Recursive
// algorithms carry explicit depth caps so that pathological inputs terminate
// deterministically.
//
// The kernel is synchronous and free of side effects. Independent invocations
// are safe to run concurrently; the package itself never spawns goroutines.
//
// # Iterators
//
// Functions that can produce their results one at a time return iterators
// ([Bezier.Reduce], [Subpath.Segments]) to avoid allocating slices. Use
// [slices.Collect] when a slice is needed.
//
// # Literature
//
// This package makes use of the following ideas:
//   - [A Primer on Bézier Curves]
//   - [An Algorithm for Automatically Fitting Digitized Curves] by Philip J. Schneider
//   - Tables of Legendre-Gauss quadrature coefficients from
//     https://pomax.github.io/bezierinfo/legendre-gauss.html
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [An Algorithm for Automatically Fitting Digitized Curves]: https://dl.acm.org/doi/10.5555/90767.90941
package bezier
