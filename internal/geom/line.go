package geom

import (
	"fmt"
	"math"
)

// Kind distinguishes how far a line extends past its defining points.
type Kind int

const (
	// Segment ends at both defining points.
	Segment Kind = iota
	// Ray ends at the first defining point and extends through the second.
	Ray
	// Infinite extends through both defining points.
	Infinite
)

// Line is a line segment, ray, or infinite line defined by two points.
// The [Kind] affects intersection and distance calculations but is
// otherwise abstracted away. Lines are immutable values.
//
// A ray or infinite line has many equivalent representations; an
// infinite line through (0,0) and (1,1) equals one through (2,2) and
// (3,3) geometrically even though the values differ.
type Line struct {
	a, b Point
	kind Kind
}

// Seg constructs the segment between a and b.
func Seg(a, b Point) Line { return Line{a: a, b: b, kind: Segment} }

// NewLine constructs a line of the given kind through a and b.
func NewLine(a, b Point, k Kind) Line { return Line{a: a, b: b, kind: k} }

// Extended returns l reinterpreted as the given kind, e.g. a segment
// extended to a ray.
func (l Line) Extended(k Kind) Line { return Line{a: l.a, b: l.b, kind: k} }

// FromSlope constructs a ray or infinite line from a point and a slope.
// With y facing down, a positive slope tilts downward on screen.
// Segments cannot be defined this way; requesting one returns
// [ErrDegenerate].
func FromSlope(a Point, m float64, k Kind) (Line, error) {
	if k == Segment {
		return Line{}, fmt.Errorf("line from point and slope: %w", ErrDegenerate)
	}
	return Line{a: a, b: Pt(a.X()+1, a.Y()+m), kind: k}, nil
}

// ParallelTo returns the infinite line through p parallel to l.
func ParallelTo(l Line, p Point) Line {
	return NewLine(p, Pt(p.X()+l.DX(), p.Y()+l.DY()), Infinite)
}

// PerpendicularTo returns the line from p to the foot of the
// perpendicular dropped from p onto l.
func PerpendicularTo(l Line, p Point) Line {
	var k Line
	if m := l.Slope(); m != 0 {
		k = NewLine(p, Pt(p.X()+1, p.Y()-1/m), Infinite)
	} else {
		k = NewLine(p, Pt(p.X(), p.Y()+1), Infinite)
	}
	r, _ := l.Extended(Infinite).Intersection(k)
	return Seg(p, r)
}

// Kind returns the line's kind.
func (l Line) Kind() Kind { return l.kind }

// A returns the first defining point.
func (l Line) A() Point { return l.a }

// B returns the second defining point.
func (l Line) B() Point { return l.b }

// DX returns the x distance spanned by the defining points.
func (l Line) DX() float64 { return l.b.X() - l.a.X() }

// DY returns the y distance spanned by the defining points.
func (l Line) DY() float64 { return l.b.Y() - l.a.Y() }

// DZ returns the z distance spanned by the defining points.
func (l Line) DZ() float64 { return l.b.Z() - l.a.Z() }

// Intersection returns the point where l and m cross, if any. The
// computation solves the two-line system by Cramer's rule on the
// defining points and then filters the solution by each line's kind:
// segments bound it between their endpoints (with a half-unit tolerance
// on the receiver), rays bound it on one side.
func (l Line) Intersection(m Line) (Point, bool) {
	det1 := Det([][]float64{{m.DX(), m.DY()}, {-l.DX(), -l.DY()}})
	if det1 == 0 {
		return Point{}, false
	}
	det2 := Det([][]float64{{m.DX(), m.DY()}, {l.a.X() - m.a.X(), l.a.Y() - m.a.Y()}})

	t := det2 / det1
	p := Pt(l.a.X()+t*l.DX(), l.a.Y()+t*l.DY())

	switch l.kind {
	case Segment:
		if !WithinTol(l.a.X(), l.b.X(), p.X(), 0.5) || !WithinTol(l.a.Y(), l.b.Y(), p.Y(), 0.5) {
			return Point{}, false
		}
	case Ray:
		if !l.forward(p) {
			return Point{}, false
		}
	}
	switch m.kind {
	case Segment:
		if !Within(m.a.X(), m.b.X(), p.X()) || !Within(m.a.Y(), m.b.Y(), p.Y()) {
			return Point{}, false
		}
	case Ray:
		if !m.forward(p) {
			return Point{}, false
		}
	}
	return p, true
}

// forward reports whether p lies on the far side of l.a in the
// direction of l.b, per axis.
func (l Line) forward(p Point) bool {
	if l.DX() > 0 && p.X() < l.a.X() {
		return false
	}
	if l.DX() < 0 && p.X() > l.a.X() {
		return false
	}
	if l.DY() > 0 && p.Y() < l.a.Y() {
		return false
	}
	if l.DY() < 0 && p.Y() > l.a.Y() {
		return false
	}
	return true
}

// Subpoints splits a segment into points spaced segLength apart along
// it, carrying the first endpoint's altitude. There may be a remainder,
// so the final gap can be shorter. Only segments can be subdivided;
// anything else returns [ErrUnbounded].
func (l Line) Subpoints(segLength float64) ([]Point, error) {
	if l.kind != Segment {
		return nil, fmt.Errorf("subpoints of a %v line: %w", l.kind, ErrUnbounded)
	}
	n := int(l.Length()/segLength) + 1
	dxi, dyi := l.DX()/float64(n), l.DY()/float64(n)
	result := make([]Point, n)
	for i := 0; i < n; i++ {
		result[i] = Pt(l.a.X()+float64(i)*dxi, l.a.Y()+float64(i)*dyi, l.a.Z())
	}
	return result, nil
}

// Midpoint returns the midpoint of the defining points.
func (l Line) Midpoint() Point {
	return Pt((l.a.X()+l.b.X())/2, (l.a.Y()+l.b.Y())/2)
}

// Rotate rotates the line about its midpoint.
func (l Line) Rotate(theta float64) Line {
	m := l.Midpoint()
	return Seg(l.a.RotateAbout(theta, m), l.b.RotateAbout(theta, m))
}

// Contains reports whether p lies on or within one unit of the line.
func (l Line) Contains(p Point) bool { return p.DistToLine(l) < 1 }

// IsParallel reports whether m is parallel to l within a slope
// tolerance of 0.2.
func (l Line) IsParallel(m Line) bool { return l.IsParallelTol(m, 0.2) }

// IsParallelTol reports whether m is parallel to l within the given
// slope tolerance.
func (l Line) IsParallelTol(m Line, t float64) bool {
	return Approx(m.Slope(), l.Slope(), t)
}

// IsPerpendicular reports whether m is perpendicular to l.
func (l Line) IsPerpendicular(m Line) bool {
	return Approx(m.Slope(), -1/l.Slope(), 0.001)
}

// Length returns the planar distance between the defining points; rays
// and infinite lines report the same finite value.
func (l Line) Length() float64 { return l.a.Dist2D(l.b) }

// Slope returns dy/dx of the defining points.
func (l Line) Slope() float64 { return l.DY() / l.DX() }

// Measure returns the bearing from the first defining point to the
// second.
func (l Line) Measure() float64 { return l.a.Bearing(l.b) }

// Closest returns the point on l nearest to p. For segments whose
// perpendicular foot falls outside the segment, the nearer endpoint is
// returned.
func (l Line) Closest(p Point) Point {
	var perp Line
	switch m := l.Slope(); {
	case m == 0:
		perp = Line{a: p, b: Pt(p.X(), p.Y()+1), kind: Infinite}
	case math.IsInf(m, 0) || math.IsNaN(m):
		perp = Line{a: p, b: Pt(p.X()+1, p.Y()), kind: Infinite}
	default:
		perp = Line{a: p, b: Pt(p.X()+1, p.Y()-1/m), kind: Infinite}
	}
	if r, ok := l.Intersection(perp); ok {
		return r
	}
	if p.Dist2D(l.a) < p.Dist2D(l.b) {
		return l.a
	}
	return l.b
}

// PathLines joins consecutive points into segments. The path does not
// loop back to the start.
func PathLines(points []Point) []Line {
	if len(points) <= 1 {
		return nil
	}
	result := make([]Line, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		result[i] = Seg(points[i], points[i+1])
	}
	return result
}

// String renders the defining points; the kind is not indicated.
func (l Line) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)-(%.2f, %.2f, %.2f)",
		l.a.X(), l.a.Y(), l.a.Z(), l.b.X(), l.b.Y(), l.b.Z())
}

func (k Kind) String() string {
	switch k {
	case Segment:
		return "segment"
	case Ray:
		return "ray"
	case Infinite:
		return "infinite"
	}
	return "unknown"
}
