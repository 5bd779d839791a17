package geom

import (
	"fmt"
	"math"
	"strings"
)

// Point is an n-dimensional Cartesian point. Most callers use two or
// three dimensions; missing coordinates read as zero. Points are
// immutable values.
type Point struct {
	coords []float64
}

// Origin is the two-dimensional origin.
var Origin = Pt(0, 0)

// Pt builds a point from its coordinates.
func Pt(coords ...float64) Point {
	c := make([]float64, len(coords))
	copy(c, coords)
	return Point{coords: c}
}

// X returns the first coordinate, or zero if absent.
func (p Point) X() float64 { return p.N(0) }

// Y returns the second coordinate, or zero if absent.
func (p Point) Y() float64 { return p.N(1) }

// Z returns the third coordinate, or zero if absent.
func (p Point) Z() float64 { return p.N(2) }

// N returns the nth coordinate, or zero if absent.
func (p Point) N(n int) float64 {
	if n < len(p.coords) {
		return p.coords[n]
	}
	return 0
}

// Dim returns the number of defined coordinates.
func (p Point) Dim() int { return len(p.coords) }

// Equal reports whether two points occupy the same planar location to
// within [Granularity]. Altitude is ignored.
func (p Point) Equal(q Point) bool {
	return Approx(p.X(), q.X(), Granularity) && Approx(p.Y(), q.Y(), Granularity)
}

// Dist2D returns the planar distance to q.
func (p Point) Dist2D(q Point) float64 { return math.Sqrt(p.SqDist2D(q)) }

// Dist3D returns the three-dimensional distance to q.
func (p Point) Dist3D(q Point) float64 { return math.Sqrt(p.SqDist3D(q)) }

// SqDist2D returns the squared planar distance to q. Comparing squared
// distances avoids the square root in hot loops.
func (p Point) SqDist2D(q Point) float64 {
	dx, dy := q.X()-p.X(), q.Y()-p.Y()
	return dx*dx + dy*dy
}

// SqDist3D returns the squared three-dimensional distance to q.
func (p Point) SqDist3D(q Point) float64 {
	dz := q.Z() - p.Z()
	return p.SqDist2D(q) + dz*dz
}

// DistToLine returns the planar distance from p to l. Rays and infinite
// lines are respected: the nearest point is not clamped to the defining
// segment unless the line is a segment.
func (p Point) DistToLine(l Line) float64 {
	a, b := l.A(), l.B()
	len2 := a.SqDist2D(b)
	if len2 == 0 {
		return math.Sqrt(p.SqDist2D(a))
	}
	t := ((p.X()-a.X())*(b.X()-a.X()) + (p.Y()-a.Y())*(b.Y()-a.Y())) / len2
	switch l.Kind() {
	case Segment:
		t = Constrain(t, 0, 1)
	case Ray:
		t = math.Max(t, 0)
	}
	return p.Dist2D(Pt(a.X()+t*(b.X()-a.X()), a.Y()+t*(b.Y()-a.Y())))
}

// DistToLine3D is [Point.DistToLine] in three dimensions.
func (p Point) DistToLine3D(l Line) float64 {
	a, b := l.A(), l.B()
	len2 := a.SqDist3D(b)
	if len2 == 0 {
		return math.Sqrt(p.SqDist3D(a))
	}
	t := ((p.X()-a.X())*(b.X()-a.X()) +
		(p.Y()-a.Y())*(b.Y()-a.Y()) +
		(p.Z()-a.Z())*(b.Z()-a.Z())) / len2
	switch l.Kind() {
	case Segment:
		t = Constrain(t, 0, 1)
	case Ray:
		t = math.Max(t, 0)
	}
	return p.Dist3D(Pt(
		a.X()+t*(b.X()-a.X()),
		a.Y()+t*(b.Y()-a.Y()),
		a.Z()+t*(b.Z()-a.Z())))
}

// Bearing returns the direction from p to q in radians, where zero is
// directly right and π/2 is directly down, normalized to [0, 2π).
func (p Point) Bearing(q Point) float64 {
	if q.X() == p.X() {
		if p.Y() > q.Y() {
			return 3 * math.Pi / 2
		}
		return math.Pi / 2
	}
	theta := math.Atan((q.Y() - p.Y()) / (q.X() - p.X()))
	if q.X() < p.X() {
		theta += math.Pi
	}
	return math.Mod(theta+2*math.Pi, 2*math.Pi)
}

// Rotate rotates p about the origin by theta radians. With y pointing
// down, positive theta spins clockwise. Altitude is preserved.
func (p Point) Rotate(theta float64) Point {
	sin, cos := math.Sincos(theta)
	return Pt(
		p.X()*cos-p.Y()*sin,
		p.X()*sin+p.Y()*cos,
		p.Z())
}

// RotateAbout rotates p about c by theta radians, preserving altitude.
func (p Point) RotateAbout(theta float64, c Point) Point {
	sin, cos := math.Sincos(theta)
	return Pt(
		(p.X()-c.X())*cos-(p.Y()-c.Y())*sin+c.X(),
		(p.X()-c.X())*sin+(p.Y()-c.Y())*cos+c.Y(),
		p.Z())
}

// Extend returns a point with c appended to p's coordinates.
func (p Point) Extend(c ...float64) Point {
	join := make([]float64, 0, len(p.coords)+len(c))
	join = append(join, p.coords...)
	join = append(join, c...)
	return Point{coords: join}
}

// Square returns the axis-aligned square centered on p whose sides sit
// width units from it (so the full side length is 2*width).
func (p Point) Square(width float64) *Polygon {
	return polygonOf([]Point{
		Pt(p.X()+width, p.Y()+width),
		Pt(p.X()+width, p.Y()-width),
		Pt(p.X()-width, p.Y()-width),
		Pt(p.X()-width, p.Y()+width),
	})
}

// String renders the point as an ordered tuple with two decimal places.
func (p Point) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, c := range p.coords {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%.2f", c)
	}
	b.WriteString(")")
	return b.String()
}
