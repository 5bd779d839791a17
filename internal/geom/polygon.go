package geom

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Polygon is a two-dimensional n-gon represented as an ordered list of
// vertices, implicitly closed. Polygons are immutable: every transform
// returns a new polygon, and expensive derived properties (the convex
// hull, the base, concavity) are cached on first use.
//
// Winding is the caller's responsibility. The package assumes vertices
// are ordered consistently with the y-down coordinate system and never
// silently reorders them; a polygon with inconsistent winding will give
// inconsistent answers rather than be repaired.
type Polygon struct {
	points []Point

	cachedHull    *Polygon
	cachedBase    *Line
	cachedConcave *bool
}

// NewPolygon builds a polygon from at least three vertices.
func NewPolygon(points ...Point) (*Polygon, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("polygon with %d vertices: %w", len(points), ErrTooFewVertices)
	}
	c := make([]Point, len(points))
	copy(c, points)
	return &Polygon{points: c}, nil
}

// polygonOf wraps a vertex slice without copying. For internal
// transforms that already own their slice and preserve vertex count.
func polygonOf(points []Point) *Polygon { return &Polygon{points: points} }

// RandomPolygon generates a random simple n-gon. Each vertex lands rad
// units from a center point, plus or minus up to variance. The leftmost
// vertex sits at x=0 and the topmost at y=0. Small concavities are
// common; large variance makes spikier polygons, and not every polygon
// can be produced this way.
func RandomPolygon(rng *rand.Rand, n int, rad, variance float64) *Polygon {
	angles := make([]float64, n)
	sum := 0.0
	for i := range angles {
		angles[i] = rng.Float64()
		sum += angles[i]
	}

	points := make([]Point, n)
	angle := 0.0
	for i := range angles {
		angle += angles[i] * math.Pi * 2 / sum
		r := (2*variance*rng.Float64() - variance) + rad
		points[i] = Pt(r*math.Cos(-angle), r*math.Sin(-angle))
	}

	poly := polygonOf(points)
	dx := poly.Leftmost().X()
	dy := poly.Topmost().Y()
	for i := range points {
		points[i] = Pt(points[i].X()-dx, points[i].Y()-dy)
	}
	return polygonOf(points)
}

// Len returns the number of vertices (equivalently, sides). Collinear
// vertices along one edge each count separately.
func (pg *Polygon) Len() int { return len(pg.points) }

// Vertex returns the ith vertex.
func (pg *Polygon) Vertex(i int) Point { return pg.points[i] }

// Vertices returns a copy of the vertex list.
func (pg *Polygon) Vertices() []Point {
	c := make([]Point, len(pg.points))
	copy(c, pg.points)
	return c
}

// Edges returns the sides in order; edge i runs from vertex i to vertex
// i+1, wrapping at the end.
func (pg *Polygon) Edges() []Line {
	result := make([]Line, len(pg.points))
	for i := range pg.points {
		result[i] = Seg(pg.points[i], pg.points[(i+1)%len(pg.points)])
	}
	return result
}

// Angles returns the interior angles in order; the vertex of angle i is
// vertex i, with its neighbors as arms.
func (pg *Polygon) Angles() []Angle {
	n := len(pg.points)
	result := make([]Angle, n)
	for i := range pg.points {
		result[i] = NewAngle(pg.points[(i+n-1)%n], pg.points[i], pg.points[(i+1)%n])
	}
	return result
}

// ConvexHull returns the polygon with all concavities filled, computed
// by repeatedly removing reflex and straight vertices until none remain.
// Cached after the first call.
func (pg *Polygon) ConvexHull() *Polygon {
	if pg.cachedHull != nil {
		return pg.cachedHull
	}
	points := pg.Vertices()
	result := polygonOf(points)

	i := 0
	for result.IsConcave() {
		a := result.Angles()[i]
		if a.IsConcave() || a.Measure() == math.Pi {
			points = append(points[:i], points[i+1:]...)
			result = polygonOf(points)
			i %= len(points)
		} else {
			i = (i + 1) % len(points)
		}
	}
	pg.cachedHull = result
	return result
}

// AdjacentVertices returns the two vertices connected to p, if p is a
// vertex of the polygon.
func (pg *Polygon) AdjacentVertices(p Point) (Point, Point, bool) {
	for _, a := range pg.Angles() {
		if a.B().Equal(p) {
			return a.A(), a.C(), true
		}
	}
	return Point{}, Point{}, false
}

// AddVertex returns a polygon with point inserted before the vertex at
// index v (so the new point takes index v).
func (pg *Polygon) AddVertex(point Point, v int) *Polygon {
	v %= len(pg.points) + 1
	result := make([]Point, 0, len(pg.points)+1)
	result = append(result, pg.points[:v]...)
	result = append(result, point)
	result = append(result, pg.points[v:]...)
	return polygonOf(result)
}

// RemoveVertex returns a polygon with the vertex at index v removed.
func (pg *Polygon) RemoveVertex(v int) (*Polygon, error) {
	if len(pg.points) <= 3 {
		return nil, fmt.Errorf("removing a vertex: %w", ErrTooFewVertices)
	}
	result := make([]Point, 0, len(pg.points)-1)
	result = append(result, pg.points[:v]...)
	result = append(result, pg.points[v+1:]...)
	return polygonOf(result), nil
}

// Split divides the polygon over the chord between the vertices indexed
// v1 and v2. The two results geometrically share that chord as an edge
// but are independent values. A split that leaves either side with
// fewer than three vertices returns [ErrBadSplit].
func (pg *Polygon) Split(v1, v2 int) (*Polygon, *Polygon, error) {
	n := len(pg.points)
	v1 %= n
	v2 %= n

	n1 := abs(v1-v2) + 1
	n2 := n - n1 + 2
	if n1 <= 2 || n2 <= 2 {
		return nil, nil, fmt.Errorf("split over vertices %d and %d: %w", v1, v2, ErrBadSplit)
	}

	poly1 := make([]Point, 0, n1)
	poly2 := make([]Point, 0, n2)
	for i := 0; i < n; i++ {
		switch {
		case i == v1 || i == v2:
			poly1 = append(poly1, pg.points[i])
			poly2 = append(poly2, pg.points[i])
		case Within(float64(v1), float64(v2), float64(i)):
			poly1 = append(poly1, pg.points[i])
		default:
			poly2 = append(poly2, pg.points[i])
		}
	}
	return polygonOf(poly1), polygonOf(poly2), nil
}

// Intersections returns every crossing of l with the polygon's sides.
// A side collinear with l contributes at most one point.
func (pg *Polygon) Intersections(l Line) []Point {
	var result []Point
	for _, s := range pg.Edges() {
		if p, ok := s.Intersection(l); ok {
			result = append(result, p)
		}
	}
	return result
}

// FirstIntersection returns the crossing of l with the polygon nearest
// to l's first defining point, ignoring crossings within one unit of
// it. Best used with rays cast from a vertex.
func (pg *Polygon) FirstIntersection(l Line) (Point, bool) {
	intersections := pg.Intersections(l)
	if len(intersections) == 1 {
		return intersections[0], true
	}
	bestDist := math.MaxFloat64
	var best Point
	found := false
	for _, p := range intersections {
		k := p.SqDist2D(l.A())
		if k < bestDist && k > 1 {
			bestDist = k
			best = p
			found = true
		}
	}
	return best, found
}

// RandomPoint returns a uniformly random point inside the polygon.
func (pg *Polygon) RandomPoint(rng *rand.Rand) Point {
	x0, y0 := pg.Leftmost().X(), pg.Topmost().Y()
	w, h := pg.CartesianWidth(), pg.CartesianHeight()
	for {
		p := Pt(x0+rng.Float64()*w, y0+rng.Float64()*h)
		if pg.Encloses(p) {
			return p
		}
	}
}

// Rotate returns the polygon rotated by theta radians about its center.
func (pg *Polygon) Rotate(theta float64) *Polygon {
	c := pg.Center()
	sin, cos := math.Sincos(theta)
	result := make([]Point, len(pg.points))
	for i, p := range pg.points {
		result[i] = Pt(
			(p.X()-c.X())*cos-(p.Y()-c.Y())*sin+c.X(),
			(p.X()-c.X())*sin+(p.Y()-c.Y())*cos+c.Y())
	}
	return polygonOf(result)
}

// IndexOf returns the index of p as a vertex, or, if p is not a vertex,
// the index of the side p is nearest to.
func (pg *Polygon) IndexOf(p Point) int {
	for i, v := range pg.points {
		if v.Equal(p) {
			return i
		}
	}
	min := math.MaxFloat64
	minI := 0
	for i, side := range pg.Edges() {
		if d := p.DistToLine(side); d < min {
			min = d
			minI = i
		}
	}
	return minI
}

// IsConcave reports whether any interior angle is reflex. Cached.
func (pg *Polygon) IsConcave() bool {
	if pg.cachedConcave != nil {
		return *pg.cachedConcave
	}
	concave := false
	for _, a := range pg.Angles() {
		if a.IsConcave() {
			concave = true
			break
		}
	}
	pg.cachedConcave = &concave
	return concave
}

// Encloses reports whether p lies strictly inside the polygon, by
// even-odd ray casting. A point inside a concavity is outside the
// polygon (though inside its [Polygon.ConvexHull]).
func (pg *Polygon) Encloses(p Point) bool {
	in := false
	n := len(pg.points)
	j := n - 1
	for i := 0; i < n; i++ {
		pi, pj := pg.points[i], pg.points[j]
		if (pi.Y() > p.Y()) != (pj.Y() > p.Y()) &&
			p.X() < (pj.X()-pi.X())*(p.Y()-pi.Y())/(pj.Y()-pi.Y())+pi.X() {
			in = !in
		}
		j = i
	}
	return in
}

// Distance returns the minimum distance from p to the polygon's border.
func (pg *Polygon) Distance(p Point) float64 {
	min := math.MaxFloat64
	for _, l := range pg.Edges() {
		if k := p.DistToLine(l); k < min {
			min = k
		}
	}
	return min
}

// PolygonalWidth is the x extent of the polygon when laid on its base,
// i.e. oriented to be vertically as short as possible. It is the longer
// dimension of the smallest enclosing rectangle.
func (pg *Polygon) PolygonalWidth() float64 {
	rotated := pg.Rotate(pg.Base().Measure())
	return rotated.Rightmost().X() - rotated.Leftmost().X()
}

// PolygonalHeight is the y extent of the polygon when laid on its base.
// It is the shorter dimension of the smallest enclosing rectangle.
func (pg *Polygon) PolygonalHeight() float64 {
	rotated := pg.Rotate(pg.Base().Measure())
	return rotated.Bottommost().Y() - rotated.Topmost().Y()
}

// CartesianWidth is the x extent of the polygon as oriented.
func (pg *Polygon) CartesianWidth() float64 {
	return pg.Rightmost().X() - pg.Leftmost().X()
}

// CartesianHeight is the y extent of the polygon as oriented.
func (pg *Polygon) CartesianHeight() float64 {
	return pg.Bottommost().Y() - pg.Topmost().Y()
}

// Perimeter returns the sum of side lengths.
func (pg *Polygon) Perimeter() float64 {
	sum := 0.0
	for _, l := range pg.Edges() {
		sum += l.Length()
	}
	return sum
}

// Center returns the vertex centroid.
func (pg *Polygon) Center() Point {
	sumX, sumY := 0.0, 0.0
	for _, p := range pg.points {
		sumX += p.X()
		sumY += p.Y()
	}
	n := float64(len(pg.points))
	return Pt(sumX/n, sumY/n)
}

// Area returns the signed shoelace area; the sign follows the winding.
func (pg *Polygon) Area() float64 {
	area := 0.0
	j := len(pg.points) - 1
	for i := range pg.points {
		area += (pg.points[j].X() + pg.points[i].X()) * (pg.points[j].Y() - pg.points[i].Y())
		j = i
	}
	return area / 2
}

// FarthestVertex returns the convex vertex farthest from l.
func (pg *Polygon) FarthestVertex(l Line) (Point, bool) {
	max := 0.0
	var best Point
	found := false
	for _, a := range pg.Angles() {
		if a.IsConcave() {
			continue
		}
		if k := a.B().DistToLine(l); k > max {
			max = k
			best = a.B()
			found = true
		}
	}
	return best, found
}

// ClosestVertex returns the convex vertex closest to l, with l treated
// as an infinite line.
func (pg *Polygon) ClosestVertex(l Line) (Point, bool) {
	min := math.MaxFloat64
	var best Point
	found := false
	inf := l.Extended(Infinite)
	for _, a := range pg.Angles() {
		if a.IsConcave() {
			continue
		}
		if k := a.B().DistToLine(inf); k < min {
			min = k
			best = a.B()
			found = true
		}
	}
	return best, found
}

// ClosestPoint returns the point on the polygon's border closest to p.
func (pg *Polygon) ClosestPoint(p Point) Point {
	bestDist := math.MaxFloat64
	var best Point
	for _, l := range pg.Edges() {
		if q := l.Closest(p); q.Dist2D(p) < bestDist {
			best = q
			bestDist = q.Dist2D(p)
		}
	}
	return best
}

// FarthestPoint returns the point on the polygon's border farthest
// from p.
func (pg *Polygon) FarthestPoint(p Point) Point {
	bestDist := -1.0
	var best Point
	for _, l := range pg.Edges() {
		if q := l.Closest(p); q.Dist2D(p) > bestDist {
			best = q
			bestDist = q.Dist2D(p)
		}
	}
	return best
}

// Leftmost returns the vertex with least x.
func (pg *Polygon) Leftmost() Point {
	best := pg.points[0]
	for _, p := range pg.points {
		if p.X() < best.X() {
			best = p
		}
	}
	return best
}

// Rightmost returns the vertex with greatest x.
func (pg *Polygon) Rightmost() Point {
	best := pg.points[0]
	for _, p := range pg.points {
		if p.X() > best.X() {
			best = p
		}
	}
	return best
}

// Topmost returns the vertex with least y.
func (pg *Polygon) Topmost() Point {
	best := pg.points[0]
	for _, p := range pg.points {
		if p.Y() < best.Y() {
			best = p
		}
	}
	return best
}

// Bottommost returns the vertex with greatest y.
func (pg *Polygon) Bottommost() Point {
	best := pg.points[0]
	for _, p := range pg.points {
		if p.Y() > best.Y() {
			best = p
		}
	}
	return best
}

// Leftish returns a point t units into the polygon from the leftmost
// vertex.
func (pg *Polygon) Leftish(t float64) Point {
	p := pg.Leftmost()
	return Pt(p.X()+t, p.Y())
}

// Rightish returns a point t units into the polygon from the rightmost
// vertex.
func (pg *Polygon) Rightish(t float64) Point {
	p := pg.Rightmost()
	return Pt(p.X()-t, p.Y())
}

// TopmostAt returns the border point with least y at the given x, if
// the vertical line through x crosses the polygon at all.
func (pg *Polygon) TopmostAt(x float64) (Point, bool) {
	intersections := pg.Intersections(NewLine(Pt(x, 1), Pt(x, 2), Infinite))
	if len(intersections) == 0 {
		return Point{}, false
	}
	top := intersections[0]
	for _, p := range intersections {
		if p.Y() < top.Y() {
			top = p
		}
	}
	return top, true
}

// BottommostAt returns the border point with greatest y at the given x.
func (pg *Polygon) BottommostAt(x float64) (Point, bool) {
	intersections := pg.Intersections(NewLine(Pt(x, 1), Pt(x, 2), Infinite))
	if len(intersections) == 0 {
		return Point{}, false
	}
	bottom := intersections[0]
	for _, p := range intersections {
		if p.Y() > bottom.Y() {
			bottom = p
		}
	}
	return bottom, true
}

// LeftmostAt returns the border point with least x at the given y.
func (pg *Polygon) LeftmostAt(y float64) (Point, bool) {
	intersections := pg.Intersections(NewLine(Pt(1, y), Pt(2, y), Infinite))
	if len(intersections) == 0 {
		return Point{}, false
	}
	b := intersections[0]
	for _, p := range intersections {
		if p.X() < b.X() {
			b = p
		}
	}
	return b, true
}

// RightmostAt returns the border point with greatest x at the given y.
func (pg *Polygon) RightmostAt(y float64) (Point, bool) {
	intersections := pg.Intersections(NewLine(Pt(1, y), Pt(2, y), Infinite))
	if len(intersections) == 0 {
		return Point{}, false
	}
	b := intersections[0]
	for _, p := range intersections {
		if p.X() > b.X() {
			b = p
		}
	}
	return b, true
}

// Above returns the border point directly above p, if any.
func (pg *Polygon) Above(p Point) (Point, bool) {
	intersections := pg.Intersections(NewLine(p, Pt(p.X(), p.Y()+1), Infinite))
	if len(intersections) == 0 {
		return Point{}, false
	}
	best, ok := pg.TopmostAt(p.X())
	if !ok {
		return Point{}, false
	}
	for _, k := range intersections {
		if k.Y() < p.Y() && k.Y() > best.Y() {
			best = k
		}
	}
	return best, true
}

// Below returns the border point directly below p, if any.
func (pg *Polygon) Below(p Point) (Point, bool) {
	intersections := pg.Intersections(NewLine(p, Pt(p.X(), p.Y()-1), Infinite))
	if len(intersections) == 0 {
		return Point{}, false
	}
	best, ok := pg.BottommostAt(p.X())
	if !ok {
		return Point{}, false
	}
	for _, k := range intersections {
		if k.Y() > p.Y() && k.Y() < best.Y() {
			best = k
		}
	}
	return best, true
}

// LeftOf returns the border point directly left of p, if any.
func (pg *Polygon) LeftOf(p Point) (Point, bool) {
	intersections := pg.Intersections(NewLine(p, Pt(p.X()+1, p.Y()), Infinite))
	if len(intersections) == 0 {
		return Point{}, false
	}
	best, ok := pg.LeftmostAt(p.Y())
	if !ok {
		return Point{}, false
	}
	for _, k := range intersections {
		if k.X() < p.X() && k.X() > best.X() {
			best = k
		}
	}
	return best, true
}

// RightOf returns the border point directly right of p, if any.
func (pg *Polygon) RightOf(p Point) (Point, bool) {
	intersections := pg.Intersections(NewLine(p, Pt(p.X()+1, p.Y()), Infinite))
	if len(intersections) == 0 {
		return Point{}, false
	}
	best, ok := pg.RightmostAt(p.Y())
	if !ok {
		return Point{}, false
	}
	for _, k := range intersections {
		if k.X() > p.X() && k.X() < best.X() {
			best = k
		}
	}
	return best, true
}

// HasVertex reports whether point is a vertex of the polygon.
func (pg *Polygon) HasVertex(point Point) bool {
	for _, p := range pg.points {
		if p.Equal(point) {
			return true
		}
	}
	return false
}

// SharedVertices returns the vertices this polygon has in common with
// another, where "in common" means within two units of the other's
// border. No intersections are computed.
func (pg *Polygon) SharedVertices(other *Polygon) []Point {
	var common []Point
	for _, p := range pg.points {
		if other.Distance(p) < 2 {
			common = append(common, p)
		}
	}
	for _, p := range other.points {
		if pg.Distance(p) < 2 && !containsPoint(common, p) {
			common = append(common, p)
		}
	}
	return common
}

func containsPoint(points []Point, p Point) bool {
	for _, q := range points {
		if q.Equal(p) {
			return true
		}
	}
	return false
}

// Combine merges this polygon with an adjacent one. The polygons must
// share exactly one side, as produced by [Polygon.Split]; anything else
// returns [ErrNotAdjacent]. Ring order is preserved by walking this
// polygon from the shared side, then the other.
func (pg *Polygon) Combine(other *Polygon) (*Polygon, error) {
	common := pg.SharedVertices(other)
	if len(common) != 2 {
		return nil, fmt.Errorf("combining polygons with %d shared vertices: %w", len(common), ErrNotAdjacent)
	}

	us := pg
	them := other
	if !them.HasVertex(common[0]) {
		them = them.AddVertex(common[0], them.IndexOf(common[0])+1)
	}
	if !them.HasVertex(common[1]) {
		them = them.AddVertex(common[1], them.IndexOf(common[1])+1)
	}
	if !us.HasVertex(common[0]) {
		us = us.AddVertex(common[0], us.IndexOf(common[0])+1)
	}
	if !us.HasVertex(common[1]) {
		us = us.AddVertex(common[1], us.IndexOf(common[1])+1)
	}

	ic1 := us.IndexOf(common[0])
	ic2 := us.IndexOf(common[1])
	begin := maxInt(ic1, ic2)
	// Wraparound: the shared side may straddle index zero.
	if begin == us.Len()-1 && (ic1 == 0 || ic2 == 0) {
		begin = 0
	}

	var result []Point
	for i1 := begin; i1 != (begin-1+us.Len())%us.Len(); i1 = (i1 + 1) % us.Len() {
		result = append(result, us.points[i1])
	}
	stop := them.IndexOf(us.points[begin])
	for i2 := them.IndexOf(us.points[(begin-1+us.Len())%us.Len()]); i2 != stop; i2 = (i2 + 1) % them.Len() {
		result = append(result, them.points[i2])
	}

	merged := polygonOf(result)
	if merged.Len() != pg.Len()+other.Len()-2 {
		return nil, fmt.Errorf("combined polygon has %d vertices, expected %d: %w",
			merged.Len(), pg.Len()+other.Len()-2, ErrNotAdjacent)
	}
	return merged, nil
}

// Base returns the side on which the polygon lies for minimum vertical
// height; sweeping parallel to the base minimizes turns when covering a
// convex region. Only hull sides are candidates. Cached.
func (pg *Polygon) Base() Line {
	if pg.cachedBase != nil {
		return *pg.cachedBase
	}
	min := math.Inf(1)
	var best Line
	found := false
	for _, l := range pg.ConvexHull().Edges() {
		p, ok := pg.FarthestVertex(l)
		if !ok {
			continue
		}
		if d := p.DistToLine(l); d < min {
			best = l
			min = d
			found = true
		}
	}
	if !found {
		// Degenerate ring with no convex vertex; any side serves.
		best = pg.Edges()[0]
	}
	pg.cachedBase = &best
	return best
}

// Peak returns the vertex farthest from the base.
func (pg *Polygon) Peak() Point {
	p, _ := pg.FarthestVertex(pg.Base())
	return p
}

// Girth returns the line through the peak perpendicular to the base; it
// is the shortest possible height of the polygon.
func (pg *Polygon) Girth() Line {
	return PerpendicularTo(pg.Base(), pg.Peak())
}

// IsProper reports whether the polygon has no two sides that cross.
// Most operations here behave erratically on improper polygons.
func (pg *Polygon) IsProper() bool {
	edges := pg.Edges()
	for _, n := range edges {
		for _, m := range edges {
			if _, ok := n.Intersection(m); !ok {
				continue
			}
			if !n.A().Equal(m.A()) && !n.A().Equal(m.B()) &&
				!n.B().Equal(m.A()) && !n.B().Equal(m.B()) {
				return false
			}
		}
	}
	return true
}

// IsSimplyTraversable reports whether the polygon is never concave in
// the direction of its base. Such a region can be covered as
// efficiently as a convex one even if it has concavities.
func (pg *Polygon) IsSimplyTraversable() bool {
	poly := pg.Rotate(-pg.Girth().Measure())
	for _, a := range poly.Angles() {
		if a.IsConcave() && !Within(a.A().X(), a.C().X(), a.B().X()) {
			return false
		}
	}
	return true
}

// VerticesBetween returns the vertices from index v1 to v2 inclusive,
// walking forward around the ring.
func (pg *Polygon) VerticesBetween(v1, v2 int) []Point {
	var result []Point
	for i := v1; i != v2; i = (i + 1) % pg.Len() {
		result = append(result, pg.points[i])
	}
	result = append(result, pg.points[v2])
	return result
}

// String renders the polygon one vertex per line.
func (pg *Polygon) String() string {
	var b strings.Builder
	for _, p := range pg.points {
		b.WriteString("\t")
		b.WriteString(p.String())
		b.WriteString("\n")
	}
	return b.String()
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
