// Package geom provides the planar geometry primitives used throughout
// the coverage planner: [Point], [Line], [Angle], and [Polygon].
//
// Every type here is immutable. Transformations ([Point.Rotate],
// [Polygon.Split], [Polygon.AddVertex], and so on) return new values and
// never modify their receiver, which lets planners hand regions between
// strategies without defensive copies.
//
// The coordinate system is y-down, x-right, matching the aerial imagery
// the planner consumes. Bearings are measured in radians from the
// positive x axis, increasing clockwise, normalized to [0, 2π).
//
// Point equality is tolerance-based: two points whose x and y coordinates
// are each within [Granularity] are equal, regardless of altitude. Most
// vertex bookkeeping in the decomposition code leans on that tolerance, so
// it should be treated as part of the package contract rather than a
// floating-point convenience.
package geom
