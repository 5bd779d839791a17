package planner

import (
	"math"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/drone"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/phys"
)

// NewSweep covers the region after a boustrophedon cellular
// decomposition (Choset et al., 1998): a vertical sweep line splits the
// region at each concavity, and each resulting cell is plowed in turn.
func NewSweep() *Offline {
	return NewOffline("sweep", func(d *drone.Drone) ([]phys.Route, error) {
		regions := SweepDecompose(d.Hull(), splitBudget)
		alt := drone.CruiseAltitude(d.Hull(), drone.MaxTravelDistance)

		var points []geom.Point
		for _, region := range regions {
			points = append(points, drone.Plow(region, d.Location(), alt)...)
		}
		plan := drone.OptimizePlan(points, d.Gains())
		return append([]phys.Route{phys.NewRouteHead(math.Pi / 2)}, plan...), nil
	})
}

// SweepDecompose splits a polygon at its concave vertices along
// vertical lines until no cell is concave. Concavities whose vertex
// lies between its neighbors in x, or whose arms are themselves
// vertical, do not obstruct a vertical sweep and are left alone.
func SweepDecompose(polygon *geom.Polygon, depth int) []*geom.Polygon {
	for _, a := range polygon.Angles() {
		if depth <= 0 {
			break
		}
		if !a.IsConcave() {
			continue
		}
		if geom.WithinTol(a.A().X(), a.C().X(), a.B().X(), 1) {
			continue
		}
		if geom.Approx(a.A().X(), a.B().X(), 0.1) || geom.Approx(a.C().X(), a.B().X(), 0.1) {
			continue
		}

		split, ok := polygon.Above(a.B())
		if ok && split.Equal(a.B()) {
			split, ok = polygon.Below(a.B())
		}
		top, okTop := polygon.TopmostAt(a.B().X())
		bottom, okBottom := polygon.BottommostAt(a.B().X())
		if okTop && okBottom && top.Equal(bottom) {
			continue
		}
		if !ok {
			if split, ok = polygon.BottommostAt(a.B().X()); !ok {
				continue
			}
		}

		clone := polygon.AddVertex(split, polygon.IndexOf(split)+1)
		p1, p2, err := clone.Split(clone.IndexOf(a.B()), clone.IndexOf(split))
		if err != nil {
			continue
		}
		return append(SweepDecompose(p1, depth-1), SweepDecompose(p2, depth-1)...)
	}
	return []*geom.Polygon{polygon}
}
