package phys

import (
	"math"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
)

// A Route is a high-level motion instruction: a desired location or
// orientation and a way to get there. Move to a point cautiously,
// stopping right on it ([RouteTo]); punch through it at full throttle
// ([RouteThrough]); or just turn to face somewhere ([RouteHead]).
//
// Apply adjusts a motion state's acceleration (and perhaps more)
// toward the route's goal over one discrete step. Physics operates in
// discrete steps of t, so the vehicle jumps from its location to its
// location at time+t; decrease t if the skipping causes trouble.
type Route interface {
	// Target returns the route's target location, or nil for routes
	// that complete immediately regardless of position.
	Target() *geom.Point

	// Apply adjusts the state toward the target over t seconds.
	Apply(state *MotionState, t float64)
}

// Gains are PID coefficients for [RouteTo]. In practice the
// proportional term does nearly all the work.
type Gains struct {
	KP float64
	KI float64
	KD float64
}

// defaultAltitude is assigned to targets that do not specify one.
const defaultAltitude = 50

// RouteTo steers toward a target and stops on it, using a rough
// PID-style loop on the squared planar distance. It is not a clever
// control system; it only has to keep the vehicle from waving around a
// waypoint without ever settling on it.
type RouteTo struct {
	gains   Gains
	target  geom.Point
	sumErr  float64
	elapsed float64
}

// NewRouteTo builds a stopping route to p. Targets at altitude zero are
// lifted to the default cruise altitude.
func NewRouteTo(p geom.Point, gains Gains) *RouteTo {
	if p.Z() == 0 {
		p = geom.Pt(p.X(), p.Y(), defaultAltitude)
	}
	return &RouteTo{gains: gains, target: p}
}

// Target returns the route's destination.
func (r *RouteTo) Target() *geom.Point { return &r.target }

// Apply accelerates toward the target proportionally to the squared
// distance, capped at 20 m/s², and ramps altitude at up to 2 m/s.
func (r *RouteTo) Apply(state *MotionState, t float64) {
	loc := state.Location()
	dir := loc.Bearing(r.target)
	err := loc.SqDist2D(r.target)

	r.elapsed += t
	r.sumErr += err * t

	applyAltitudeRamp(state, r.target)

	demand := r.gains.KP*err + r.gains.KI*r.sumErr*r.gains.KD*r.sumErr/r.elapsed
	state.SetAcc2D(dir, math.Min(demand, 20))
}

// RouteThrough demands full acceleration straight at a target with no
// slowing on approach. Useful for passing over the interior points of a
// plow row, where the points of interest lie roughly on a line.
type RouteThrough struct {
	target geom.Point
}

// NewRouteThrough builds a full-throttle route through p.
func NewRouteThrough(p geom.Point) *RouteThrough {
	return &RouteThrough{target: p}
}

// Target returns the route's destination.
func (r *RouteThrough) Target() *geom.Point { return &r.target }

// Apply pushes at 20 m/s² directly toward the target.
func (r *RouteThrough) Apply(state *MotionState, t float64) {
	dir := state.Location().Bearing(r.target)
	sin, cos := math.Sincos(dir)
	state.SetAccX(20 * cos)
	state.SetAccY(20 * sin)

	applyAltitudeRamp(state, r.target)
}

// RouteHead requests only a heading change. Rotational dynamics are not
// modeled, so the turn is instantaneous: heading routes have no target
// and complete in a single step at any location.
type RouteHead struct {
	heading float64
}

// NewRouteHead builds a route that turns the vehicle to the given
// heading.
func NewRouteHead(heading float64) *RouteHead {
	return &RouteHead{heading: heading}
}

// Target returns nil; heading routes are untargeted.
func (r *RouteHead) Target() *geom.Point { return nil }

// Apply snaps the heading to the requested one.
func (r *RouteHead) Apply(state *MotionState, t float64) {
	state.SetHeading(r.heading)
}

// applyAltitudeRamp climbs or descends toward the target altitude at up
// to 2 m/s, holding level within half a meter.
func applyAltitudeRamp(state *MotionState, target geom.Point) {
	zErr := math.Abs(target.Z() - state.Z())
	switch {
	case state.Z() > target.Z()+0.5:
		state.SetVelZ(-math.Min(2, zErr))
	case state.Z() < target.Z()-0.5:
		state.SetVelZ(math.Min(2, zErr))
	default:
		state.SetVelZ(0)
	}
}
