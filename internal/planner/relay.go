package planner

import (
	"github.com/mmkrusniak/yale22-uav-diversity/internal/drone"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/phys"
)

// Radio headers spoken by the relay strategy.
const (
	// HeaderShareDone announces that the sender has flown its whole
	// share of the team path.
	HeaderShareDone = "relay/share-done"
	// HeaderHandoff carries the sender's unflown routes to a specific
	// teammate after a battery failure.
	HeaderHandoff = "relay/handoff"
)

// Relay is the cooperative strategy: the team shares one long plow
// path, planned as if a single drone with the whole team's range were
// flying it, and each member covers the contiguous share matching its
// id. Members announce over the radio when their share is finished; a
// drone whose battery dies mid-share hands its leftover waypoints to a
// teammate that has already announced. Requires a team.
type Relay struct {
	Base

	plan      []phys.Route
	planned   bool
	announced bool
	handedOff bool
	finished  map[int]bool
}

// NewRelay builds the cooperative relay strategy.
func NewRelay() *Relay { return &Relay{} }

// OnBegin plans the team path and keeps this drone's share of it.
func (r *Relay) OnBegin() {
	d := r.Drone()
	hull := d.Hull()
	team := d.TeamSize()

	// Cruise as high as a drone with the pooled range could afford.
	alt := drone.CruiseAltitude(hull, float64(team)*drone.MaxTravelDistance)
	points := drone.PlowAngled(hull, d.Area().Start(d.ID()), alt, -hull.Girth().Measure())
	total := append([]phys.Route{phys.NewRouteHead(hull.Base().Measure())},
		drone.OptimizePlan(points, d.Gains())...)

	share := len(total) / team
	first := share * d.ID()
	last := first + share
	if d.ID() == team-1 {
		last = len(total) // the remainder rides with the last drone
	}

	r.plan = nil
	// Headings from earlier shares still apply; only the last one
	// matters, but they cost nothing to fly through.
	for _, route := range total[:first] {
		if route.Target() == nil {
			r.plan = append(r.plan, route)
		}
	}
	r.plan = append(r.plan, total[first:last]...)

	r.planned = true
	r.announced = false
	r.handedOff = false
	r.finished = make(map[int]bool)
}

// OnAwaiting takes a capture and flies the next leg of the share. The
// first empty queue announces completion to the team.
func (r *Relay) OnAwaiting() {
	if !r.planned {
		return
	}
	d := r.Drone()
	d.Scan()
	if len(r.plan) == 0 {
		if !r.announced {
			r.announced = true
			d.Transmit(drone.NewBroadcast(d, nil, HeaderShareDone, d.ID(), d.Time()))
		}
		return
	}
	next := r.plan[0]
	r.plan = r.plan[1:]
	d.Follow(next)
}

// OnEnergyDepleted tries to hand the unflown routes to a teammate that
// has announced completion. If none is reachable the leftover waypoints
// go uncovered.
func (r *Relay) OnEnergyDepleted() {
	if !r.planned || len(r.plan) == 0 || r.handedOff {
		return
	}
	d := r.Drone()
	leftover := append([]phys.Route(nil), r.plan...)
	for _, peer := range d.Teammates() {
		if peer == d || !r.finished[peer.ID()] {
			continue
		}
		if d.Transmit(drone.NewBroadcast(d, peer, HeaderHandoff, leftover, d.Time())) {
			r.handedOff = true
			r.plan = nil
			return
		}
	}
}

// OnBroadcastReceived tracks teammates' completion announcements and
// adopts handed-off routes.
func (r *Relay) OnBroadcastReceived(b *drone.Broadcast) {
	switch b.Header() {
	case HeaderShareDone:
		if id, ok := b.Payload().(int); ok {
			if r.finished == nil {
				r.finished = make(map[int]bool)
			}
			r.finished[id] = true
		}
	case HeaderHandoff:
		routes, ok := b.Payload().([]phys.Route)
		if ok && r.Drone().EnergyRemaining() > 0 {
			r.plan = append(r.plan, routes...)
			r.announced = false
		}
	}
}

// Done reports whether the share (and anything adopted) has been flown.
func (r *Relay) Done() bool {
	if d := r.Drone(); d != nil && d.EnergyRemaining() < 0 {
		return true
	}
	return r.planned && len(r.plan) == 0
}

// Remaining is the number of unflown routes.
func (r *Relay) Remaining() int { return len(r.plan) }

func (r *Relay) String() string { return "relay" }
