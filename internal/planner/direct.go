package planner

import (
	"github.com/mmkrusniak/yale22-uav-diversity/internal/drone"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/phys"
)

// NewDirect flies the straight transect from the area's start corner to
// its destination corner, broken into waypoints at scan-height spacing
// so the camera covers a contiguous strip along the way. It trades
// coverage for speed: useful as a baseline and for corridor surveys.
func NewDirect() *Offline {
	return NewOffline("direct", func(d *drone.Drone) ([]phys.Route, error) {
		alt := drone.CruiseAltitude(d.Hull(), drone.MaxTravelDistance)
		start := d.Area().Start(d.ID()).Extend(alt)
		end := d.Area().Destination(d.ID()).Extend(alt)

		points := drone.Subdivide([]geom.Point{start, end}, alt)
		plan := drone.OptimizePlan(points, d.Gains())
		return append([]phys.Route{phys.NewRouteHead(start.Bearing(end))}, plan...), nil
	})
}
