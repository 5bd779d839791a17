package drone

import (
	"fmt"
	"math"
	"sync"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/area"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/phys"
)

// Platform constants, from the spec sheet on the Iris quadcopter.
const (
	FOVHeight         = 78.8 * math.Pi / 180  // radians
	FOVWidth          = 105.1 * math.Pi / 180 // radians
	MaxTravelDistance = 10549.44              // meters
	EnergyCapacity    = 219780.0              // joules
	CommRange         = 6900                  // meters
)

// triggerRadius is how close a vehicle must pass to a waypoint for the
// waypoint to count as reached.
const triggerRadius = 5

// startAltitude is where vehicles hold before their strategy takes over.
const startAltitude = 30

// A Strategy is the algorithm half of a vehicle: it decides where the
// drone goes and what the detections mean. Bind is called exactly once,
// when the strategy is attached to its drone; every other method is a
// lifecycle callback driven by [Drone.Proceed].
type Strategy interface {
	// Bind attaches the strategy to the drone it will fly.
	Bind(*Drone)

	// OnBegin fires once when the traversal starts.
	OnBegin()
	// OnTick fires every simulation step while the drone has energy.
	OnTick()
	// OnAwaiting fires when the drone has no route to follow.
	OnAwaiting()
	// OnMissionCancel fires when the traversal is aborted externally.
	OnMissionCancel()
	// OnEnergyDepleted fires when the battery runs out.
	OnEnergyDepleted()
	// OnBroadcastReceived fires when a flooded message reaches this
	// drone as a destination or addressee-of-all.
	OnBroadcastReceived(*Broadcast)

	// Done reports whether the strategy considers its work finished.
	Done() bool

	// Predict classifies a detection as real or spurious.
	Predict(area.Detectable) bool
}

// Params carry the injected physics configuration. The zero value of
// EnergyBudget means a full battery.
type Params struct {
	Drag         float64
	Gains        phys.Gains
	EnergyBudget float64
}

// A Drone is one simulated vehicle: motion state, battery, camera, and
// radio. Its Strategy tells it where to go; the drone itself only knows
// how to fly, scan, and talk.
type Drone struct {
	id       int
	strategy Strategy
	area     *area.Area
	team     *Team

	params      phys.Gains
	drag        float64
	energyModel *phys.EnergyModel

	energyBudget   float64
	energyConsumed float64
	energyDraw     float64

	motion   *phys.MotionState
	route    phys.Route
	running  bool
	depleted bool

	time      float64
	pathScore float64

	pending []*Broadcast
	history []*Broadcast

	mu       sync.Mutex
	trace    []geom.Point
	captures []Capture
}

// New builds a drone over the given area and binds the strategy to it.
func New(a *area.Area, id int, s Strategy, params Params) *Drone {
	d := &Drone{
		id:           id,
		strategy:     s,
		area:         a,
		params:       params.Gains,
		drag:         params.Drag,
		energyBudget: params.EnergyBudget,
	}
	if d.energyBudget == 0 {
		d.energyBudget = EnergyCapacity
	}
	s.Bind(d)
	d.Reset()
	return d
}

// ID is the drone's index in its team, used for addressing.
func (d *Drone) ID() int { return d.id }

// Area is the region the drone is covering.
func (d *Drone) Area() *area.Area { return d.area }

// Hull is the boundary polygon of the drone's area.
func (d *Drone) Hull() *geom.Polygon { return d.area.Hull() }

// Location is the drone's current position.
func (d *Drone) Location() geom.Point { return d.motion.Location() }

// Heading is the drone's current facing, radians clockwise from +x.
func (d *Drone) Heading() float64 { return d.motion.Heading() }

// SetHeading turns the drone in place.
func (d *Drone) SetHeading(h float64) { d.motion.SetHeading(h) }

// Motion exposes the drone's kinematic state.
func (d *Drone) Motion() *phys.MotionState { return d.motion }

// Gains are the control gains this drone steers with.
func (d *Drone) Gains() phys.Gains { return d.params }

// Strategy is the algorithm flying this drone.
func (d *Drone) Strategy() Strategy { return d.strategy }

// CurrentRoute is the route being flown, or nil when awaiting orders.
func (d *Drone) CurrentRoute() phys.Route { return d.route }

// Time is the simulation time this drone has flown.
func (d *Drone) Time() float64 { return d.time }

// PathScore accumulates object density under the drone's path; it
// measures how much of the flight was spent over promising ground.
func (d *Drone) PathScore() float64 { return d.pathScore }

// EnergyBudget is the battery capacity for this run.
func (d *Drone) EnergyBudget() float64 { return d.energyBudget }

// EnergyRemaining is what is left of the budget.
func (d *Drone) EnergyRemaining() float64 { return d.energyBudget - d.energyConsumed }

// EnergyDraw is the current power draw in watts.
func (d *Drone) EnergyDraw() float64 { return d.energyDraw }

// Done reports whether the drone's strategy considers it finished.
func (d *Drone) Done() bool { return d.strategy.Done() }

// Trace is a copy of the points the drone has flown through.
func (d *Drone) Trace() []geom.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]geom.Point, len(d.trace))
	copy(out, d.trace)
	return out
}

// CaptureHistory is a copy of every frame the drone has taken.
func (d *Drone) CaptureHistory() []Capture {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Capture, len(d.captures))
	copy(out, d.captures)
	return out
}

func (d *Drone) joinTeam(t *Team) { d.team = t }

// TeamSize is the number of drones on this drone's team.
func (d *Drone) TeamSize() int { return d.team.Size() }

// Teammates is the full team roster, including this drone.
func (d *Drone) Teammates() []*Drone { return d.team.Drones() }

// Reset returns the drone to its start corner with a full battery and
// an empty history. The start position is on the ground at the area's
// start point, lifted to the hold altitude.
func (d *Drone) Reset() {
	if d.area == nil {
		return
	}
	d.mu.Lock()
	d.trace = nil
	d.captures = nil
	d.mu.Unlock()

	start := d.area.Start(d.id)
	d.motion = phys.MotionFrom(geom.Pt(start.X(), start.Y(), 0), 3, d.drag)
	d.motion.SetZ(startAltitude)
	d.energyModel = phys.Iris(d.drag)
	d.energyConsumed = 0
	d.energyDraw = 0
	d.route = nil
	d.running = false
	d.depleted = false
	d.time = 0
	d.pathScore = 0
	d.pending = nil
	d.history = nil

	d.mu.Lock()
	d.trace = append(d.trace, d.motion.Location())
	d.mu.Unlock()
}

// ResetTo moves the drone to a different area and resets it.
func (d *Drone) ResetTo(a *area.Area) {
	if a == nil {
		return
	}
	d.area = a
	d.Reset()
}

// Proceed runs one lifecycle tick of t seconds. The first call fires
// OnBegin and OnAwaiting without moving; once the battery is spent the
// drone fires OnEnergyDepleted and never moves again. In between, each
// tick scores the path, fires OnTick, applies the current route (or
// zeroes acceleration and asks the strategy for orders), clamps motion
// to the platform envelope, draws energy, and integrates.
func (d *Drone) Proceed(t float64) error {
	if !d.running && d.EnergyRemaining() > 0 {
		d.strategy.OnBegin()
		d.strategy.OnAwaiting()
		d.running = true
		return nil
	}
	if d.EnergyRemaining() < 0 {
		if !d.depleted {
			d.strategy.OnEnergyDepleted()
			d.depleted = true
		}
		d.running = false
		return nil
	}

	d.pathScore += t * d.area.Density(d.Location()) * 10000
	d.time += t

	// Rendering and export slow down when the trace grows long, so
	// collinear interior points are thinned out. Only when there are
	// plenty, or turning points could disappear.
	d.mu.Lock()
	if n := len(d.trace); n > 10 &&
		d.trace[n-5].DistToLine3D(geom.Seg(d.trace[n-10], d.Location())) < 0.01 {
		d.trace = append(d.trace[:n-5], d.trace[n-4:]...)
	}
	d.trace = append(d.trace, d.Location())
	d.mu.Unlock()

	d.strategy.OnTick()

	if d.route != nil {
		d.route.Apply(d.motion, t)
	} else {
		d.motion.SetAcc2D(0, 0)
		d.strategy.OnAwaiting()
	}

	d.energyModel.Constrain(d.motion)
	cost, err := d.energyModel.Cost(d.motion, t)
	if err != nil {
		return fmt.Errorf("drone %d: %w", d.id, err)
	}
	d.energyDraw = cost / t
	d.energyConsumed += d.energyDraw * t
	d.motion.Advance(t)
	return nil
}

// ForceHalt drains the battery so the drone stops on its next tick.
func (d *Drone) ForceHalt() { d.energyConsumed = d.energyBudget + 1 }

// Scan takes one camera frame from the current position and altitude.
// The footprint is the image rectangle on the ground, rotated to the
// drone's heading. Finished drones get an empty capture: computing
// what falls in the frame is expensive and a done drone ignores it
// anyway.
func (d *Drone) Scan() Capture {
	loc := d.Location()
	w := 2 * loc.Z() * math.Tan(FOVWidth/2)
	h := 2 * loc.Z() * math.Tan(FOVHeight/2)
	view, _ := geom.NewPolygon(
		geom.Pt(loc.X()+w/2, loc.Y()+h/2),
		geom.Pt(loc.X()+w/2, loc.Y()-h/2),
		geom.Pt(loc.X()-w/2, loc.Y()-h/2),
		geom.Pt(loc.X()-w/2, loc.Y()+h/2),
	)
	view = view.Rotate(d.motion.Heading() + math.Pi/2)

	if d.strategy.Done() {
		return Capture{View: view, Location: loc}
	}
	c := Capture{View: view, Detectables: d.area.DetectablesIn(view, loc.Z()), Location: loc}
	d.mu.Lock()
	d.captures = append(d.captures, c)
	d.mu.Unlock()
	return c
}

// Move routes the drone to a point, stopping there. A two-dimensional
// target keeps the current altitude. Arrival within the trigger radius
// clears the route.
func (d *Drone) Move(p geom.Point) {
	if p.Dim() == 2 {
		p = p.Extend(d.Location().Z())
	}
	d.route = phys.NewRouteTo(p, d.params)
	d.motion.AddListener(&p, triggerRadius, func(geom.Point) { d.route = nil })
}

// Follow flies an arbitrary route. Untargeted routes complete on the
// next tick.
func (d *Drone) Follow(r phys.Route) {
	d.route = r
	d.motion.AddListener(r.Target(), triggerRadius, func(geom.Point) { d.route = nil })
}

// Neighbors are the teammates inside radio range, excluding this drone.
// In the field this would be a hello flood; in simulation it is a range
// query over the team.
func (d *Drone) Neighbors() []*Drone {
	var neighbors []*Drone
	for _, other := range d.team.Drones() {
		if other == d {
			continue
		}
		if other.Location().SqDist2D(d.Location()) <= CommRange*CommRange {
			neighbors = append(neighbors, other)
		}
	}
	return neighbors
}

// Transmit floods a broadcast from this drone. Duplicates (already
// pending or already received) are dropped, which is the only cycle
// protection the protocol has or needs. The message is delivered here
// when this drone is the destination or the destination is everyone,
// then forwarded to every neighbor unless this drone was the sole
// addressee. Reports whether the destination was reached (addressed
// message) or anyone forwarded it (broadcast).
func (d *Drone) Transmit(b *Broadcast) bool {
	if containsBroadcast(d.pending, b) || containsBroadcast(d.history, b) {
		return false
	}
	if b.destination == nil || b.destination == d {
		d.history = append(d.history, b)
		d.strategy.OnBroadcastReceived(b)
	}
	if b.destination == d {
		return true
	}
	d.pending = append(d.pending, b)
	success := false
	for _, n := range d.Neighbors() {
		if n.Transmit(b) {
			success = true
		}
	}
	return success
}

func containsBroadcast(list []*Broadcast, b *Broadcast) bool {
	for _, x := range list {
		if x.id == b.id {
			return true
		}
	}
	return false
}

// BroadcastHistory is every broadcast delivered to this drone.
func (d *Drone) BroadcastHistory() []*Broadcast {
	out := make([]*Broadcast, len(d.history))
	copy(out, d.history)
	return out
}

// TeamDetections collects every detection made by any teammate.
func (d *Drone) TeamDetections() []area.Detectable {
	var result []area.Detectable
	for _, other := range d.team.Drones() {
		for _, c := range other.CaptureHistory() {
			result = append(result, c.Detectables...)
		}
	}
	return result
}

// Precision is the fraction of predicted-real objects that are real.
func (d *Drone) Precision() float64 {
	truePos, falsePos := 0, 0
	for _, obj := range d.area.Detectables() {
		if d.strategy.Predict(obj) && obj.Real() {
			truePos++
		}
		if d.strategy.Predict(obj) && !obj.Real() {
			falsePos++
		}
	}
	if truePos+falsePos == 0 {
		return 0
	}
	return float64(truePos) / float64(truePos+falsePos)
}

// Recall is the fraction of real objects that were predicted real.
func (d *Drone) Recall() float64 {
	truePos, falseNeg := 0, 0
	for _, obj := range d.area.Detectables() {
		if d.strategy.Predict(obj) && obj.Real() {
			truePos++
		}
		if !d.strategy.Predict(obj) && obj.Real() {
			falseNeg++
		}
	}
	if truePos+falseNeg == 0 {
		return 0
	}
	return float64(truePos) / float64(truePos+falseNeg)
}

// F1 is the harmonic mean of precision and recall.
func (d *Drone) F1() float64 {
	p, r := d.Precision(), d.Recall()
	if p+r == 0 {
		return 0
	}
	return (2 * p * r) / (p + r)
}

// ApproxPathScore estimates the path score a plan would earn without
// flying it, by sampling density every meter along its segments.
// Plans that stray more than a little outside the area are worthless
// and score +Inf. A small squared-length term keeps candidate plans
// from bunching their points.
func (d *Drone) ApproxPathScore(points []geom.Point) float64 {
	for _, p := range points {
		if !d.area.Contains(p) && d.area.Hull().Distance(p) > 30 {
			return math.Inf(1)
		}
	}

	if len(points) == 0 || !points[0].Equal(d.area.Start(d.id)) {
		points = append([]geom.Point{d.area.Start(d.id)}, points...)
	}
	if !points[len(points)-1].Equal(d.area.Destination(d.id)) {
		points = append(points, d.area.Destination(d.id))
	}

	score := 0.0
	for _, l := range geom.PathLines(points) {
		sub, err := l.Subpoints(1)
		if err != nil {
			continue
		}
		for _, p := range sub {
			density := d.area.Density(p)
			if !d.area.Contains(p) {
				density = 1
			}
			score += 10000 * density
		}
		score += l.Length() * l.Length()
	}
	return score
}

func (d *Drone) String() string {
	return fmt.Sprintf("drone %d", d.id)
}
