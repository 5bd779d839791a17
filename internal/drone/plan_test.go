package drone

import (
	"math"
	"testing"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/phys"
)

func TestScanGeometry(t *testing.T) {
	if got := ScanAlt(ScanHeight(40)); math.Abs(got-40) > 1e-9 {
		t.Errorf("ScanAlt(ScanHeight(40)) = %v, want 40", got)
	}
	// The camera's field of view is wider than it is tall.
	if ScanWidth(30) <= ScanHeight(30) {
		t.Errorf("scan width %v should exceed height %v", ScanWidth(30), ScanHeight(30))
	}
	if ScanWidth(60) <= ScanWidth(30) {
		t.Error("footprint should grow with altitude")
	}
}

func TestSubdivide(t *testing.T) {
	path := []geom.Point{geom.Pt(0, 0, 10), geom.Pt(0, 100, 10)}
	alt := ScanAlt(25)
	dense := Subdivide(path, alt)

	if len(dense) < 4 {
		t.Fatalf("subdivided path has %d points, want several", len(dense))
	}
	if !dense[0].Equal(path[0]) {
		t.Errorf("subdivision dropped the start: %v", dense[0])
	}
	if !dense[len(dense)-1].Equal(path[1]) {
		t.Errorf("subdivision dropped the end: %v", dense[len(dense)-1])
	}
	for i := 1; i < len(dense); i++ {
		if d := dense[i].Dist2D(dense[i-1]); d > 25+1e-9 {
			t.Errorf("gap of %v between consecutive points, want <= image height 25", d)
		}
	}
	for _, p := range dense {
		if p.Z() != 10 {
			t.Errorf("subdivision lost altitude at %v", p)
		}
	}
}

func TestPlow(t *testing.T) {
	poly, err := geom.NewPolygon(geom.Pt(0, 0), geom.Pt(0, 100), geom.Pt(200, 100), geom.Pt(200, 0))
	if err != nil {
		t.Fatal(err)
	}
	path := Plow(poly, geom.Pt(0, 0), 30)

	if len(path) < 6 {
		t.Fatalf("plow path has %d points, want a real path", len(path))
	}
	for _, p := range path {
		if p.Z() != 30 {
			t.Errorf("plow point %v not at the plow altitude", p)
		}
	}

	// Starting near the left edge, rows sweep left to right across the
	// whole polygon.
	rowWidth := ScanWidth(28)
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, p := range path {
		minX = math.Min(minX, p.X())
		maxX = math.Max(maxX, p.X())
	}
	if minX > rowWidth {
		t.Errorf("plow never visited the left end: min x = %v", minX)
	}
	if maxX < 200-rowWidth {
		t.Errorf("plow never reached the right end: max x = %v", maxX)
	}

	// Rows alternate between the top and bottom borders.
	top, bottom := false, false
	for _, p := range path {
		if math.Abs(p.Y()-0) < 1 {
			top = true
		}
		if math.Abs(p.Y()-100) < 1 {
			bottom = true
		}
	}
	if !top || !bottom {
		t.Error("plow rows do not span the polygon vertically")
	}
}

func TestPlowAngled(t *testing.T) {
	poly, err := geom.NewPolygon(geom.Pt(0, 0), geom.Pt(0, 100), geom.Pt(200, 100), geom.Pt(200, 0))
	if err != nil {
		t.Fatal(err)
	}
	path := PlowAngled(poly, geom.Pt(0, 0), 30, math.Pi/6)
	if len(path) < 6 {
		t.Fatalf("angled plow path has %d points", len(path))
	}
	for _, p := range path {
		if p.Z() != 30 {
			t.Errorf("angled plow point %v lost its altitude", p)
		}
		if poly.Distance(p) > 2*ScanWidth(30) && !poly.Encloses(p) {
			t.Errorf("angled plow point %v strayed far from the polygon", p)
		}
	}
}

func TestOptimizePlan(t *testing.T) {
	gains := phys.Gains{KP: 0.125}

	straight := []geom.Point{
		geom.Pt(0, 0, 50), geom.Pt(10, 0, 50), geom.Pt(20, 0, 50),
		geom.Pt(30, 0, 50), geom.Pt(40, 0, 50), geom.Pt(50, 0, 50),
	}
	routes := OptimizePlan(straight, gains)
	if len(routes) != len(straight) {
		t.Fatalf("got %d routes for %d points", len(routes), len(straight))
	}
	for _, i := range []int{0, 1, 4, 5} {
		if _, ok := routes[i].(*phys.RouteTo); !ok {
			t.Errorf("route %d = %T, want endpoint stop", i, routes[i])
		}
	}
	for _, i := range []int{2, 3} {
		if _, ok := routes[i].(*phys.RouteThrough); !ok {
			t.Errorf("route %d = %T, want full throttle on a straightaway", i, routes[i])
		}
	}

	corner := []geom.Point{
		geom.Pt(0, 0, 50), geom.Pt(10, 0, 50), geom.Pt(20, 0, 50),
		geom.Pt(20, 10, 50), geom.Pt(20, 20, 50), geom.Pt(20, 30, 50),
	}
	routes = OptimizePlan(corner, gains)
	if _, ok := routes[2].(*phys.RouteTo); !ok {
		t.Errorf("route at the corner = %T, want a stop", routes[2])
	}
	if _, ok := routes[3].(*phys.RouteThrough); !ok {
		t.Errorf("route past the corner = %T, want full throttle", routes[3])
	}
}

func TestOptimizeRoutesKeepsHeadings(t *testing.T) {
	gains := phys.Gains{KP: 0.125}
	plan := []phys.Route{
		phys.NewRouteTo(geom.Pt(0, 0, 50), gains),
		phys.NewRouteTo(geom.Pt(10, 0, 50), gains),
		phys.NewRouteHead(math.Pi / 2),
		phys.NewRouteTo(geom.Pt(30, 0, 50), gains),
		phys.NewRouteTo(geom.Pt(40, 0, 50), gains),
		phys.NewRouteTo(geom.Pt(50, 0, 50), gains),
	}
	routes := OptimizeRoutes(plan, gains)
	if _, ok := routes[2].(*phys.RouteHead); !ok {
		t.Errorf("heading change became %T", routes[2])
	}
}

func TestHeuristicTSP(t *testing.T) {
	points := []geom.Point{geom.Pt(50, 50), geom.Pt(10, 10), geom.Pt(90, 90)}
	ordered := HeuristicTSP(points, geom.Pt(0, 0), geom.Pt(100, 100))

	if len(ordered) != 3 {
		t.Fatalf("ordering has %d points, want 3", len(ordered))
	}
	want := []geom.Point{geom.Pt(10, 10), geom.Pt(50, 50), geom.Pt(90, 90)}
	for i := range want {
		if !ordered[i].Equal(want[i]) {
			t.Errorf("ordered[%d] = %v, want %v", i, ordered[i], want[i])
		}
	}
}

func TestPathLength(t *testing.T) {
	loop := []geom.Point{
		geom.Pt(0, 0), geom.Pt(100, 0), geom.Pt(100, 100), geom.Pt(0, 100), geom.Pt(0, 0),
	}
	if got := PathLength(loop); math.Abs(got-400) > 1e-9 {
		t.Errorf("path length = %v, want 400", got)
	}
}

func TestRotatePathRoundTrip(t *testing.T) {
	path := []geom.Point{geom.Pt(10, 20, 5), geom.Pt(30, 40, 5), geom.Pt(50, 60, 5)}
	c := geom.Pt(25, 25)
	back := RotatePath(RotatePath(path, math.Pi/3, c), -math.Pi/3, c)
	for i := range path {
		if !back[i].Equal(path[i]) || back[i].Z() != path[i].Z() {
			t.Errorf("round trip moved %v to %v", path[i], back[i])
		}
	}
}

func TestCruiseAltitude(t *testing.T) {
	small, err := geom.NewPolygon(geom.Pt(0, 0), geom.Pt(0, 100), geom.Pt(100, 100), geom.Pt(100, 0))
	if err != nil {
		t.Fatal(err)
	}
	large, err := geom.NewPolygon(geom.Pt(0, 0), geom.Pt(0, 3000), geom.Pt(3000, 3000), geom.Pt(3000, 0))
	if err != nil {
		t.Fatal(err)
	}

	smallAlt := CruiseAltitude(small, MaxTravelDistance)
	largeAlt := CruiseAltitude(large, MaxTravelDistance)
	if smallAlt < 10 {
		t.Errorf("cruise altitude %v below the floor", smallAlt)
	}
	if largeAlt <= smallAlt {
		t.Errorf("bigger areas need higher cruise: %v vs %v", largeAlt, smallAlt)
	}
}
