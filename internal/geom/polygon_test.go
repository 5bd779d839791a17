package geom

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// unitSquare is wound for the y-down coordinate system: interior angles
// all measure pi/2.
func unitSquare(t *testing.T, w, h float64) *Polygon {
	t.Helper()
	pg, err := NewPolygon(Pt(0, 0), Pt(0, h), Pt(w, h), Pt(w, 0))
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	return pg
}

// notchedSquare is a 10x10 square with a triangular bite taken out of
// its right side, giving one reflex vertex.
func notchedSquare(t *testing.T) *Polygon {
	t.Helper()
	pg, err := NewPolygon(
		Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(5, 5), Pt(10, 0))
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}
	return pg
}

func TestNewPolygonRejectsDegenerate(t *testing.T) {
	if _, err := NewPolygon(Pt(0, 0), Pt(1, 1)); !errors.Is(err, ErrTooFewVertices) {
		t.Errorf("two-vertex polygon: err = %v, want ErrTooFewVertices", err)
	}
}

func TestPolygonAngles(t *testing.T) {
	square := unitSquare(t, 10, 10)
	for i, a := range square.Angles() {
		if m := a.Measure(); math.Abs(m-math.Pi/2) > 1e-9 {
			t.Errorf("angle %d measure = %v, want pi/2", i, m)
		}
	}
	if square.IsConcave() {
		t.Error("square should be convex")
	}

	notched := notchedSquare(t)
	if !notched.IsConcave() {
		t.Error("notched square should be concave")
	}
	reflex := 0
	for _, a := range notched.Angles() {
		if a.IsConcave() {
			reflex++
		}
	}
	if reflex != 1 {
		t.Errorf("notched square reflex vertices = %d, want 1", reflex)
	}
}

func TestPolygonConvexHull(t *testing.T) {
	notched := notchedSquare(t)
	hull := notched.ConvexHull()
	if hull.IsConcave() {
		t.Error("hull should be convex")
	}
	if hull.Len() != 4 {
		t.Errorf("hull vertices = %d, want 4", hull.Len())
	}
	// Filling the notch must not disturb the source polygon.
	if notched.Len() != 5 {
		t.Errorf("source polygon mutated: vertices = %d, want 5", notched.Len())
	}
}

func TestPolygonEncloses(t *testing.T) {
	notched := notchedSquare(t)
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"deep interior", Pt(2, 5), true},
		{"outside", Pt(15, 5), false},
		{"inside the notch", Pt(9, 5), false},
		{"notch point inside the hull", Pt(9, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := notched.Encloses(tt.p); got != tt.want {
				t.Errorf("Encloses(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
	if !notched.ConvexHull().Encloses(Pt(9, 5)) {
		t.Error("the hull should enclose points inside the notch")
	}
}

func TestPolygonSplit(t *testing.T) {
	hexagon, err := NewPolygon(
		Pt(0, 0), Pt(0, 10), Pt(5, 12), Pt(10, 10), Pt(10, 0), Pt(5, 2))
	if err != nil {
		t.Fatalf("NewPolygon: %v", err)
	}

	p1, p2, err := hexagon.Split(0, 3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if p1.Len() != 4 || p2.Len() != 4 {
		t.Errorf("split sizes = %d, %d; want 4, 4", p1.Len(), p2.Len())
	}
	if p1.Len()+p2.Len() != hexagon.Len()+2 {
		t.Errorf("split should conserve vertices plus the shared pair")
	}

	total := math.Abs(p1.Area()) + math.Abs(p2.Area())
	if want := math.Abs(hexagon.Area()); math.Abs(total-want) > 1e-6 {
		t.Errorf("split areas sum to %v, want %v", total, want)
	}

	if _, _, err := hexagon.Split(0, 1); !errors.Is(err, ErrBadSplit) {
		t.Errorf("adjacent-vertex split: err = %v, want ErrBadSplit", err)
	}
	if hexagon.Len() != 6 {
		t.Error("Split mutated its receiver")
	}
}

func TestPolygonCombine(t *testing.T) {
	square := unitSquare(t, 10, 10)
	p1, p2, err := square.Split(0, 2)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	merged, err := p1.Combine(p2)
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if merged.Len() != square.Len() {
		t.Errorf("recombined vertices = %d, want %d", merged.Len(), square.Len())
	}
	if got, want := math.Abs(merged.Area()), math.Abs(square.Area()); math.Abs(got-want) > 1e-6 {
		t.Errorf("recombined area = %v, want %v", got, want)
	}

	far := unitSquare(t, 10, 10)
	shifted := make([]Point, 0, 4)
	for _, p := range far.Vertices() {
		shifted = append(shifted, Pt(p.X()+100, p.Y()+100))
	}
	other, _ := NewPolygon(shifted...)
	if _, err := square.Combine(other); !errors.Is(err, ErrNotAdjacent) {
		t.Errorf("combining distant polygons: err = %v, want ErrNotAdjacent", err)
	}
}

func TestPolygonIntersections(t *testing.T) {
	square := unitSquare(t, 10, 10)
	crossing := NewLine(Pt(-5, 5), Pt(-4, 5), Infinite)
	hits := square.Intersections(crossing)
	if len(hits) != 2 {
		t.Fatalf("Intersections = %d points, want 2", len(hits))
	}

	ray := NewLine(Pt(5, 5), Pt(6, 5), Ray)
	first, ok := square.FirstIntersection(ray)
	if !ok {
		t.Fatal("FirstIntersection found nothing")
	}
	if !first.Equal(Pt(10, 5)) {
		t.Errorf("FirstIntersection = %v, want (10, 5)", first)
	}
}

func TestPolygonBaseAndWidth(t *testing.T) {
	rect := unitSquare(t, 20, 10)
	if w := rect.PolygonalWidth(); math.Abs(w-20) > 1e-6 {
		t.Errorf("PolygonalWidth = %v, want 20", w)
	}
	if h := rect.PolygonalHeight(); math.Abs(h-10) > 1e-6 {
		t.Errorf("PolygonalHeight = %v, want 10", h)
	}
	// The base is the long side: laying the rectangle on it minimizes height.
	if l := rect.Base().Length(); math.Abs(l-20) > 1e-6 {
		t.Errorf("Base length = %v, want 20", l)
	}
	if g := rect.Girth().Length(); math.Abs(g-10) > 1e-6 {
		t.Errorf("Girth length = %v, want 10", g)
	}
}

func TestPolygonRotateRoundTrip(t *testing.T) {
	pg := notchedSquare(t)
	before := pg.Vertices()
	rotated := pg.Rotate(1.1).Rotate(-1.1)
	for i, p := range rotated.Vertices() {
		if !p.Equal(before[i]) {
			t.Errorf("vertex %d = %v, want %v after round trip", i, p, before[i])
		}
	}
	for i, p := range pg.Vertices() {
		if !p.Equal(before[i]) {
			t.Errorf("vertex %d of the source changed: %v != %v", i, p, before[i])
		}
	}
}

func TestPolygonSimplyTraversable(t *testing.T) {
	if !unitSquare(t, 10, 10).IsSimplyTraversable() {
		t.Error("a square is trivially simply traversable")
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5; i++ {
		if Type5Region(rng, 300, 8).IsSimplyTraversable() {
			t.Error("Type5Region produced a simply traversable polygon")
		}
		if !Type4Region(rng, 300, 8).IsSimplyTraversable() {
			t.Error("Type4Region produced a non-simply-traversable polygon")
		}
	}
}

func TestPolygonExtremes(t *testing.T) {
	pg := unitSquare(t, 10, 20)
	if pg.Leftmost().X() != 0 || pg.Rightmost().X() != 10 {
		t.Error("Leftmost/Rightmost wrong")
	}
	if pg.Topmost().Y() != 0 || pg.Bottommost().Y() != 20 {
		t.Error("Topmost/Bottommost wrong")
	}
	if p := pg.Leftish(5); p.X() != 5 {
		t.Errorf("Leftish(5).X = %v, want 5", p.X())
	}
	if top, ok := pg.TopmostAt(5); !ok || !top.Equal(Pt(5, 0)) {
		t.Errorf("TopmostAt(5) = %v, %v; want (5, 0)", top, ok)
	}
	if bottom, ok := pg.BottommostAt(5); !ok || !bottom.Equal(Pt(5, 20)) {
		t.Errorf("BottommostAt(5) = %v, %v; want (5, 20)", bottom, ok)
	}
	if _, ok := pg.TopmostAt(50); ok {
		t.Error("TopmostAt far outside the polygon should find nothing")
	}
	if below, ok := pg.Below(Pt(5, 5)); !ok || !below.Equal(Pt(5, 20)) {
		t.Errorf("Below = %v, %v; want (5, 20)", below, ok)
	}
}

func TestRandomPolygonAnchored(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		pg := RandomPolygon(rng, 8, 100, 300)
		if math.Abs(pg.Leftmost().X()) > 1e-9 {
			t.Errorf("leftmost x = %v, want 0", pg.Leftmost().X())
		}
		if math.Abs(pg.Topmost().Y()) > 1e-9 {
			t.Errorf("topmost y = %v, want 0", pg.Topmost().Y())
		}
	}
}

func TestPolygonRandomPointInside(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pg := notchedSquare(t)
	for i := 0; i < 50; i++ {
		if p := pg.RandomPoint(rng); !pg.Encloses(p) {
			t.Fatalf("RandomPoint %v is outside the polygon", p)
		}
	}
}
