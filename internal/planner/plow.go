package planner

import (
	"github.com/mmkrusniak/yale22-uav-diversity/internal/drone"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/phys"
)

// NewPlow covers the whole region with one back-and-forth sweep
// perpendicular to its girth. Optimal for convex regions; concavities
// are simply flown over.
func NewPlow() *Offline {
	return NewOffline("plow", func(d *drone.Drone) ([]phys.Route, error) {
		hull := d.Hull()
		plan := planRegion(d, hull, d.Area().Start(d.ID()))
		return append([]phys.Route{phys.NewRouteHead(hull.Base().Measure())}, plan...), nil
	})
}

// planRegion plows one region from the given starting point, sweeping
// parallel to the region's base at cruise altitude. Collinear interior
// waypoints become flythroughs.
func planRegion(d *drone.Drone, region *geom.Polygon, from geom.Point) []phys.Route {
	alt := drone.CruiseAltitude(d.Hull(), drone.MaxTravelDistance)
	points := drone.PlowAngled(region, from, alt, -region.Girth().Measure())
	return drone.OptimizePlan(points, d.Gains())
}
