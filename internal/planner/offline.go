package planner

import (
	"github.com/mmkrusniak/yale22-uav-diversity/internal/drone"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/phys"
)

// A PlanFunc generates the complete route a drone will fly, called once
// when the traversal begins.
type PlanFunc func(d *drone.Drone) ([]phys.Route, error)

// Offline is a strategy that plans its whole flight up front and never
// deviates. Every time the drone reaches a waypoint it takes a capture
// and dequeues the next route; the job is finished when the queue runs
// dry. A plan that cannot be generated leaves nothing to fly, so the
// drone is immediately done.
type Offline struct {
	Base

	name     string
	generate PlanFunc

	plan    []phys.Route
	planned bool
}

// NewOffline builds an offline strategy around a plan generator.
func NewOffline(name string, generate PlanFunc) *Offline {
	return &Offline{name: name, generate: generate}
}

// OnBegin generates the plan. Rebinding or restarting regenerates it.
func (o *Offline) OnBegin() {
	plan, err := o.generate(o.Drone())
	if err != nil {
		plan = nil
	}
	o.plan = plan
	o.planned = true
}

// OnAwaiting takes a capture at the waypoint just reached, then flies
// the next leg of the plan.
func (o *Offline) OnAwaiting() {
	if !o.planned {
		return
	}
	o.Drone().Scan()
	if len(o.plan) == 0 {
		return
	}
	next := o.plan[0]
	o.plan = o.plan[1:]
	o.Drone().Follow(next)
}

// Done reports whether the plan has been fully flown.
func (o *Offline) Done() bool {
	if d := o.Drone(); d != nil && d.EnergyRemaining() < 0 {
		return true
	}
	return o.planned && len(o.plan) == 0
}

// Remaining is the number of unflown routes.
func (o *Offline) Remaining() int { return len(o.plan) }

func (o *Offline) String() string { return o.name }
