package drone

import (
	"github.com/mmkrusniak/yale22-uav-diversity/internal/area"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
)

// A Capture records one camera frame: the ground footprint it covered,
// the objects detected in it, and where it was taken from.
type Capture struct {
	View        *geom.Polygon
	Detectables []area.Detectable
	Location    geom.Point
}
