package planner

import (
	"math"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/drone"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/phys"
)

// splitBudget bounds the decomposition recursion. Real survey regions
// decompose in a handful of splits; hitting the budget means the
// geometry is degenerate.
const splitBudget = 400

// NewDecompose carves a concave region into simply traversable cells,
// merges back the cells that can be swept together, orders them for
// short transits, and plows each one. If the split search exhausts its
// budget the whole region is plowed undecomposed.
func NewDecompose() *Offline {
	return NewOffline("decompose", func(d *drone.Drone) ([]phys.Route, error) {
		hull := d.Hull()
		regions, err := Decompose(hull, splitBudget)
		if err != nil {
			regions = []*geom.Polygon{hull}
		}
		regions = Recompose(regions)
		if len(regions) > 1 {
			regions = Reorder(regions[1:], regions[0])
		}

		var plan []phys.Route
		current := d.Area().Start(d.ID())
		for _, region := range regions {
			plan = append(plan, phys.NewRouteHead(hull.Base().Measure()))
			sub := planRegion(d, region, current)
			plan = append(plan, sub...)
			if len(sub) > 0 {
				if target := sub[len(sub)-1].Target(); target != nil {
					current = *target
				}
			}
		}
		return plan, nil
	})
}

// Decompose recursively splits a polygon into simply traversable cells.
// At every step it takes the single best split: over all concave
// vertices and all candidate directions, the one minimizing the summed
// polygonal width of the two halves. Returns [ErrSplitExhausted]
// (along with the cells found so far) if the depth budget runs out
// before every cell is acceptable.
func Decompose(polygon *geom.Polygon, depth int) ([]*geom.Polygon, error) {
	if acceptable(polygon) {
		return []*geom.Polygon{polygon}, nil
	}
	if depth <= 0 {
		return []*geom.Polygon{polygon}, ErrSplitExhausted
	}
	a, b, ok := bestSplit(polygon)
	if !ok {
		// No legal split; cover it as is.
		return []*geom.Polygon{polygon}, nil
	}
	left, errL := Decompose(a, depth-1)
	right, errR := Decompose(b, depth-1)
	if errL == nil {
		errL = errR
	}
	return append(left, right...), errL
}

// acceptable is the decomposition's stopping condition: a cell that
// plows as well as a convex one, or one already narrower than a single
// low-altitude camera swath.
func acceptable(p *geom.Polygon) bool {
	return p.IsSimplyTraversable() || p.PolygonalWidth() < drone.ScanWidth(10)
}

// bestSplit searches every (concave vertex, edge direction) pair for
// the chord that cuts the polygon into the two narrowest halves. From
// the vertex, a ray is cast parallel to the candidate edge, away from
// the reflex interior, and the polygon's first boundary crossing closes
// the chord.
func bestSplit(polygon *geom.Polygon) (*geom.Polygon, *geom.Polygon, bool) {
	n := polygon.Len()
	angles := polygon.Angles()
	points := polygon.Vertices()
	edges := polygon.Edges()

	bestSum := math.Inf(1)
	var bestA, bestB *geom.Polygon

	for i := 0; i < n; i++ {
		if !angles[i].IsConcave() {
			continue
		}
		for _, l := range edges {
			// A direction parallel to either arm skims along the
			// boundary instead of crossing it.
			if l.IsParallel(angles[i].AB()) || l.IsParallel(angles[i].BC()) {
				continue
			}

			guide := geom.Pt(points[i].X()+l.DX(), points[i].Y()+l.DY())
			// A guide inside the reflex wedge would cast the ray
			// backward, out of the region.
			if angles[i].Contains(guide, 0) {
				guide = geom.Pt(points[i].X()-l.DX(), points[i].Y()-l.DY())
			}

			intersection, ok := polygon.FirstIntersection(geom.NewLine(points[i], guide, geom.Ray))
			if !ok {
				// Near-parallel fuzziness can lose the crossing.
				continue
			}

			// splitIndex is the side hit; the crossing point, once
			// added, sits one index past it.
			splitIndex := polygon.IndexOf(intersection)
			if splitIndex == (i-1+n)%n || splitIndex == i {
				continue
			}

			clone := polygon.AddVertex(intersection, splitIndex+1)
			// Inserting before i shifts the vertex we aimed from.
			v := i
			if splitIndex < i {
				v = i + 1
			}
			a, b, err := clone.Split(v, splitIndex+1)
			if err != nil {
				continue
			}

			if sum := a.PolygonalWidth() + b.PolygonalWidth(); sum < bestSum {
				bestSum = sum
				bestA, bestB = a, b
			}
		}
	}
	return bestA, bestB, bestA != nil
}

// Recompose merges cell pairs that share a chord and sweep in the same
// direction, as long as the combination stays simply traversable. It
// undoes the splits the coverage sweep never needed.
func Recompose(regions []*geom.Polygon) []*geom.Polygon {
	out := append([]*geom.Polygon(nil), regions...)
	for merged := true; merged; {
		merged = false
		for i := 0; i < len(out) && !merged; i++ {
			for j := i + 1; j < len(out) && !merged; j++ {
				if len(out[i].SharedVertices(out[j])) != 2 {
					continue
				}
				if !out[i].Girth().IsParallelTol(out[j].Girth(), 0.5) {
					continue
				}
				combo, err := out[i].Combine(out[j])
				if err != nil || !combo.IsSimplyTraversable() {
					continue
				}
				out = append(out[:j], out[j+1:]...)
				out[i] = combo
				merged = true
			}
		}
	}
	return out
}

// Reorder arranges cells so consecutive entries are adjacent or close,
// keeping the transit legs between sweeps short. Adjacency (a shared
// chord) costs a token amount; anything else costs the center-to-center
// distance. Exhaustive, so only suitable for the handfuls of cells
// decomposition produces.
func Reorder(regions []*geom.Polygon, start *geom.Polygon) []*geom.Polygon {
	order, _ := reorder(regions, start)
	return order
}

func reorder(regions []*geom.Polygon, start *geom.Polygon) ([]*geom.Polygon, float64) {
	if len(regions) == 0 {
		return []*geom.Polygon{start}, 0
	}
	var best []*geom.Polygon
	bestCost := math.Inf(1)
	for i, p := range regions {
		rest := make([]*geom.Polygon, 0, len(regions)-1)
		rest = append(rest, regions[:i]...)
		rest = append(rest, regions[i+1:]...)

		order, cost := reorder(rest, p)
		if len(start.SharedVertices(p)) >= 2 {
			cost++
		} else {
			cost += start.Center().Dist2D(p.Center())
		}
		if cost < bestCost {
			bestCost = cost
			best = append(order, start)
		}
	}
	return best, bestCost
}
