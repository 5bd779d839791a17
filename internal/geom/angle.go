package geom

import "math"

// Angle is a three-point angle: two arms meeting at a vertex. Immutable.
type Angle struct {
	a, b, c Point
}

// NewAngle builds the angle with arms b→a and b→c; b is the vertex.
func NewAngle(a, b, c Point) Angle { return Angle{a: a, b: b, c: c} }

// A returns the first arm point.
func (an Angle) A() Point { return an.a }

// B returns the vertex.
func (an Angle) B() Point { return an.b }

// C returns the second arm point.
func (an Angle) C() Point { return an.c }

// AB returns the segment from the first arm point to the vertex.
func (an Angle) AB() Line { return Seg(an.a, an.b) }

// BC returns the segment from the vertex to the second arm point.
func (an Angle) BC() Line { return Seg(an.b, an.c) }

// Measure returns the angle's measure in radians, swept clockwise from
// the first arm to the second, in [0, 2π).
func (an Angle) Measure() float64 {
	return math.Mod(an.b.Bearing(an.c)-an.b.Bearing(an.a)+2*math.Pi, 2*math.Pi)
}

// IsConcave reports whether the measure exceeds π, i.e. the interior of
// the angle is the greater side.
func (an Angle) IsConcave() bool { return an.Measure() > math.Pi }

// IsStraight reports whether the angle is within t of straight (or of
// zero, a degenerate spike).
func (an Angle) IsStraight(t float64) bool {
	m := an.Measure()
	return Approx(math.Pi, m, t) || Approx(0, m, t)
}

// Contains reports whether g lies within the angle, treating the arms
// as rays extending from the vertex.
func (an Angle) Contains(g Point, tolerance float64) bool {
	angleA := an.b.Bearing(an.a)
	angleC := an.b.Bearing(an.c)
	angleG := an.b.Bearing(g)

	if math.Abs(angleC-angleA) > math.Pi {
		return !WithinTol(angleA, angleC, angleG, tolerance)
	}
	return WithinTol(angleA, angleC, angleG, tolerance)
}

// Rotate rotates the angle about its vertex.
func (an Angle) Rotate(theta float64) Angle {
	return Angle{
		a: an.a.RotateAbout(theta, an.b),
		b: an.b,
		c: an.c.RotateAbout(theta, an.b),
	}
}

// AnglesAlong turns a path of points into the angles at its interior
// vertices. There is no wrapping: the first and last points only serve
// as arms.
func AnglesAlong(points []Point) []Angle {
	if len(points) < 3 {
		return nil
	}
	result := make([]Angle, len(points)-2)
	for i := range result {
		result[i] = Angle{a: points[i], b: points[i+1], c: points[i+2]}
	}
	return result
}
