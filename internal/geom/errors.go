package geom

import "errors"

// Domain errors for geometric constructions.
var (
	// ErrTooFewVertices indicates an attempt to build a polygon from
	// fewer than three vertices.
	ErrTooFewVertices = errors.New("geom: polygon requires at least three vertices")

	// ErrBadSplit indicates a polygon split that would leave one side
	// with fewer than three vertices.
	ErrBadSplit = errors.New("geom: split leaves a degenerate polygon")

	// ErrNotAdjacent indicates a merge of polygons which do not share
	// exactly two vertices.
	ErrNotAdjacent = errors.New("geom: polygons do not share exactly two vertices")

	// ErrDegenerate indicates a construction with no geometric meaning,
	// such as a segment defined by a point and a slope.
	ErrDegenerate = errors.New("geom: degenerate construction")

	// ErrUnbounded indicates an operation that requires a finite segment,
	// such as subdividing a ray into evenly spaced points.
	ErrUnbounded = errors.New("geom: operation requires a bounded segment")
)
