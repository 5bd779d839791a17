package drone

import (
	"math"
	"sort"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/phys"
)

// Plan helpers shared by the coverage strategies: camera geometry,
// plow paths, and route optimization over point plans.

// ScanWidth is the apparent width in meters of an image taken at the
// given altitude.
func ScanWidth(alt float64) float64 {
	return 2 * alt * math.Tan(FOVWidth/2)
}

// ScanHeight is the apparent height (y-axis extent) in meters of an
// image taken at the given altitude.
func ScanHeight(alt float64) float64 {
	return 2 * alt * math.Tan(FOVHeight/2)
}

// ScanAlt is the altitude at which an image has the given apparent
// height.
func ScanAlt(height float64) float64 {
	return height / (2 * math.Tan(FOVHeight/2))
}

// Subdivide densifies a path so that images taken at each point at the
// given altitude line up exactly along it.
func Subdivide(points []geom.Point, alt float64) []geom.Point {
	imageHeight := ScanHeight(alt)
	var result []geom.Point
	for _, l := range geom.PathLines(points) {
		sub, err := l.Subpoints(imageHeight)
		if err != nil {
			continue
		}
		result = append(result, sub...)
	}
	return append(result, points[len(points)-1])
}

// Plow lays a simple back-and-forth coverage path over the polygon at
// the given altitude, starting from whichever side of the polygon is
// closer to start. Rows are spaced one image width apart (less a small
// margin so adjacent rows overlap).
func Plow(poly *geom.Polygon, start geom.Point, alt float64) []geom.Point {
	if alt < 0 {
		alt = 0
	}
	rowWidth := ScanWidth(alt - 2)
	separation := ScanHeight(alt - 2)

	current := poly.ClosestPoint(start)
	result := []geom.Point{geom.Pt(current.X(), current.Y(), alt)}

	// Left to right, or right to left? Whichever end is closer.
	if current.SqDist2D(poly.Leftmost()) > current.SqDist2D(poly.Rightmost()) {
		current = poly.Rightmost()
		rowWidth = -rowWidth
	} else {
		current = poly.Leftmost()
	}
	result = append(result, geom.Pt(current.X(), current.Y(), alt))

	firstTrack := true
	x := current.X()
	for {
		_, hasTop := poly.TopmostAt(x)
		_, hasBottom := poly.BottommostAt(x)
		if !hasTop && !hasBottom {
			break
		}
		// At either end of the polygon up to half a row can remain.
		if !hasTop || !hasBottom || firstTrack {
			x -= rowWidth / 2
			firstTrack = false
		}

		// Northbound leg.
		if top, ok := poly.TopmostAt(x); ok {
			target := geom.Pt(x, top.Y(), alt)
			last := result[len(result)-1]
			result = result[:len(result)-1]
			if sub, err := geom.Seg(last, target).Subpoints(separation); err == nil {
				result = append(result, sub...)
			}
			result = append(result, target)
		}
		if top, ok := poly.TopmostAt(x + rowWidth); ok {
			result = append(result, geom.Pt(x+rowWidth, top.Y(), alt))
			x += rowWidth
		}

		// Southbound leg.
		if bottom, ok := poly.BottommostAt(x); ok {
			target := geom.Pt(x, bottom.Y(), alt)
			last := result[len(result)-1]
			result = result[:len(result)-1]
			if sub, err := geom.Seg(last, target).Subpoints(separation); err == nil {
				result = append(result, sub...)
			}
			result = append(result, target)
		}
		if bottom, ok := poly.BottommostAt(x + rowWidth); ok {
			result = append(result, geom.Pt(x+rowWidth, bottom.Y(), alt))
		}
		x += rowWidth
	}
	return result
}

// PlowAngled plows the polygon with the rows at an angle theta to the
// x axis, by plowing the rotated polygon and rotating the path back.
func PlowAngled(poly *geom.Polygon, current geom.Point, alt, theta float64) []geom.Point {
	rotated := poly.Rotate(theta)
	path := Plow(rotated, current.RotateAbout(theta, poly.Center()), alt)
	return RotatePath(path, -theta, poly.Center())
}

// OptimizePlan turns a point plan into routes: full-throttle through
// points that lie nearly on the line of travel, careful stops at
// corners. The two points on each end are always stops.
func OptimizePlan(plan []geom.Point, gains phys.Gains) []phys.Route {
	result := []phys.Route{
		phys.NewRouteTo(plan[0], gains),
		phys.NewRouteTo(plan[1], gains),
	}
	for i := 2; i < len(plan)-2; i++ {
		if plan[i].DistToLine(geom.Seg(plan[i-1], plan[i+2])) < 5 {
			result = append(result, phys.NewRouteThrough(plan[i]))
		} else {
			result = append(result, phys.NewRouteTo(plan[i], gains))
		}
	}
	result = append(result,
		phys.NewRouteTo(plan[len(plan)-2], gains),
		phys.NewRouteTo(plan[len(plan)-1], gains))
	return result
}

// OptimizeRoutes re-optimizes an already-built route plan after small
// edits, keeping heading changes as-is. Analogous to [OptimizePlan].
func OptimizeRoutes(plan []phys.Route, gains phys.Gains) []phys.Route {
	result := []phys.Route{
		headOrTo(plan[0], gains),
		headOrTo(plan[1], gains),
	}
	for i := 2; i < len(plan)-2; i++ {
		switch {
		case plan[i].Target() == nil:
			result = append(result, plan[i])
		case isTightTurn(plan[i-1], plan[i], plan[i+2]):
			result = append(result, phys.NewRouteThrough(*plan[i].Target()))
		default:
			result = append(result, phys.NewRouteTo(*plan[i].Target(), gains))
		}
	}
	result = append(result,
		headOrTo(plan[len(plan)-2], gains),
		headOrTo(plan[len(plan)-1], gains))
	return result
}

func isTightTurn(a, b, c phys.Route) bool {
	if a.Target() == nil || b.Target() == nil || c.Target() == nil {
		return true
	}
	return b.Target().DistToLine(geom.Seg(*a.Target(), *c.Target())) < 5
}

func headOrTo(source phys.Route, gains phys.Gains) phys.Route {
	switch source.(type) {
	case *phys.RouteHead, *phys.RouteTo:
		return source
	}
	return phys.NewRouteTo(*source.Target(), gains)
}

// RotatePath rotates every point of a path about c.
func RotatePath(points []geom.Point, theta float64, c geom.Point) []geom.Point {
	result := make([]geom.Point, 0, len(points))
	for _, p := range points {
		result = append(result, p.RotateAbout(theta, c))
	}
	return result
}

// HeuristicTSP orders points by cheapest insertion between start and
// end. It does not try very hard; it only has to beat visiting the
// points in arbitrary order.
func HeuristicTSP(points []geom.Point, start, end geom.Point) []geom.Point {
	pts := make([]geom.Point, len(points))
	copy(pts, points)
	sort.SliceStable(pts, func(i, j int) bool {
		return pts[i].Dist2D(end) < pts[j].Dist2D(end)
	})

	result := []geom.Point{start, end}
	for _, p := range pts {
		bestIndex := 1
		bestLength := math.MaxFloat64
		for j := 1; j < len(result)-1; j++ {
			candidate := insertPoint(result, j, p)
			if d := PathLength(candidate); d < bestLength {
				bestLength = d
				bestIndex = j
			}
		}
		result = insertPoint(result, bestIndex, p)
	}
	return result[1 : len(result)-1]
}

func insertPoint(points []geom.Point, i int, p geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(points)+1)
	out = append(out, points[:i]...)
	out = append(out, p)
	return append(out, points[i:]...)
}

// PathLength is the total length of a path given as points.
func PathLength(points []geom.Point) float64 {
	sum := 0.0
	for _, l := range geom.PathLines(points) {
		sum += l.Length()
	}
	return sum
}

// CruiseAltitude picks a coverage altitude for the polygon: high
// enough to cover it within the platform's travel budget, never below
// 10 meters.
func CruiseAltitude(poly *geom.Polygon, maxDist float64) float64 {
	w := poly.PolygonalWidth()
	h := poly.PolygonalHeight()
	areaRatio := math.Abs(poly.Area()) / (w * h)
	alt := (h * w * areaRatio) / ((maxDist - h) * 2 * math.Tan(FOVWidth/2))
	return math.Max(10, alt*1.5)
}
