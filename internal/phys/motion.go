package phys

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
)

// MotionType classifies motion for energy pricing.
type MotionType int

const (
	// Constant speed within tolerance.
	Constant MotionType = iota
	// Accelerating means planar speed grew over the last step.
	Accelerating
	// Decelerating means planar speed shrank over the last step.
	Decelerating
)

func (m MotionType) String() string {
	switch m {
	case Constant:
		return "constant"
	case Accelerating:
		return "accelerating"
	case Decelerating:
		return "decelerating"
	}
	return "unknown"
}

// MotionState tracks a vehicle's position and derivatives of motion as
// a small grid: row 0 is position, row 1 velocity, row 2 acceleration,
// each with one column per dimension. Heading spins freely of the rest
// of the state and is tracked separately.
//
// Accessors follow the grid: X/VelX/AccX read, SetX/SetVelX/SetAccX
// write, with N variants for arbitrary dimensions.
type MotionState struct {
	state     [][]float64
	heading   float64
	drag      float64
	listeners []motionListener
	motion    MotionType
}

type motionListener struct {
	point  *geom.Point
	dist   float64
	action func(geom.Point)
}

// NewMotionState builds a motion model in dim dimensions tracking
// depth levels of motion (1 is position only, 2 adds velocity, and so
// on). Depth 3 matches the empirical drone behavior we fit against.
// The drag coefficient applies quadratically against planar velocity.
func NewMotionState(dim, depth int, drag float64) *MotionState {
	state := make([][]float64, depth)
	for i := range state {
		state[i] = make([]float64, dim)
	}
	return &MotionState{state: state, drag: drag}
}

// MotionFrom builds a motion model starting at a location, with as many
// dimensions as the location defines.
func MotionFrom(start geom.Point, depth int, drag float64) *MotionState {
	ms := NewMotionState(start.Dim(), depth, drag)
	ms.SetLocation(start)
	return ms
}

// Advance steps the model t simulation seconds into the future. Each
// level of motion gains the one above it (position gains velocity,
// velocity gains acceleration), after drag bleeds off velocity opposite
// the direction of travel. Any waypoint listeners whose targets were
// passed during the step are then replayed over the traveled segment,
// farthest from the final position first, with the position temporarily
// snapped to the segment so callbacks observe an on-path location.
func (ms *MotionState) Advance(t float64) {
	oldLoc := make([]float64, len(ms.state[0]))
	copy(oldLoc, ms.state[0])
	oldVel := ms.Vel2D()

	// Drag opposes the direction of travel, quadratically in speed.
	vel := ms.Vel2D()
	dir := geom.Seg(ms.Location(), geom.Pt(ms.state[0][0]+ms.state[1][0], ms.state[0][1]+ms.state[1][1])).Measure()
	ms.state[1][0] -= ms.drag * math.Cos(dir) * vel * vel * t
	ms.state[1][1] -= ms.drag * math.Sin(dir) * vel * vel * t

	for i := len(ms.state) - 1; i > 0; i-- {
		for j := range ms.state[i] {
			ms.state[i-1][j] += ms.state[i][j] * t
		}
	}

	// The step may have skipped clean over a waypoint. Everything down
	// here can be treated as a line, so replay the listeners against
	// the segment the vehicle actually traveled.
	path := geom.Seg(ms.Location(), geom.Pt(oldLoc...))
	current := ms.listeners
	ms.listeners = nil
	var activated []motionListener
	for _, ml := range current {
		switch {
		case ml.point == nil:
			ml.action(ms.Location())
		case ml.point.DistToLine3D(path) < ml.dist:
			activated = append(activated, ml)
		default:
			ms.listeners = append(ms.listeners, ml)
		}
	}

	here := ms.Location()
	sort.SliceStable(activated, func(i, j int) bool {
		return activated[i].point.Dist3D(here) > activated[j].point.Dist3D(here)
	})
	savedPosition := ms.state[0]
	for _, ml := range activated {
		p := path.Closest(*ml.point)
		p = geom.Pt(p.X(), p.Y(), ms.Z())
		ms.SetLocation(p)
		ml.action(path.Closest(p))
	}
	ms.state[0] = savedPosition

	switch {
	case geom.Approx(math.Abs(ms.Vel2D()), math.Abs(oldVel), 0.1*t):
		ms.motion = Constant
	case math.Abs(ms.Vel2D()) > math.Abs(oldVel):
		ms.motion = Accelerating
	default:
		ms.motion = Decelerating
	}
}

// Location returns the position in all tracked dimensions.
func (ms *MotionState) Location() geom.Point {
	return geom.Pt(ms.state[0]...)
}

// SetLocation replaces the position with p, zero-filling dimensions p
// does not define.
func (ms *MotionState) SetLocation(p geom.Point) {
	loc := make([]float64, len(ms.state[0]))
	for i := 0; i < p.Dim() && i < len(loc); i++ {
		loc[i] = p.N(i)
	}
	ms.state[0] = loc
}

// AddListener registers an arrival callback. Once the state passes
// within dist of p (measured in three dimensions against the traveled
// segment), the action fires with the on-path location and the listener
// is removed. A nil point fires on the next step unconditionally.
func (ms *MotionState) AddListener(p *geom.Point, dist float64, action func(geom.Point)) {
	ms.listeners = append(ms.listeners, motionListener{point: p, dist: dist, action: action})
}

func (ms *MotionState) X() float64    { return ms.state[0][0] }
func (ms *MotionState) Y() float64    { return ms.state[0][1] }
func (ms *MotionState) Z() float64    { return ms.state[0][2] }
func (ms *MotionState) VelX() float64 { return ms.state[1][0] }
func (ms *MotionState) VelY() float64 { return ms.state[1][1] }
func (ms *MotionState) VelZ() float64 { return ms.state[1][2] }
func (ms *MotionState) AccX() float64 { return ms.state[2][0] }
func (ms *MotionState) AccY() float64 { return ms.state[2][1] }
func (ms *MotionState) AccZ() float64 { return ms.state[2][2] }

func (ms *MotionState) SetX(v float64)    { ms.state[0][0] = v }
func (ms *MotionState) SetY(v float64)    { ms.state[0][1] = v }
func (ms *MotionState) SetZ(v float64)    { ms.state[0][2] = v }
func (ms *MotionState) SetVelX(v float64) { ms.state[1][0] = v }
func (ms *MotionState) SetVelY(v float64) { ms.state[1][1] = v }
func (ms *MotionState) SetVelZ(v float64) { ms.state[1][2] = v }
func (ms *MotionState) SetAccX(v float64) { ms.state[2][0] = v }
func (ms *MotionState) SetAccY(v float64) { ms.state[2][1] = v }
func (ms *MotionState) SetAccZ(v float64) { ms.state[2][2] = v }

// Heading returns the planar heading, tracked independently of the
// derivative grid.
func (ms *MotionState) Heading() float64 { return ms.heading }

// SetHeading sets the planar heading.
func (ms *MotionState) SetHeading(heading float64) { ms.heading = heading }

// SetAcc2D sets the planar acceleration by direction and magnitude.
func (ms *MotionState) SetAcc2D(direction, magnitude float64) {
	sin, cos := math.Sincos(direction)
	ms.state[2][0] = magnitude * cos
	ms.state[2][1] = magnitude * sin
}

// SetVel2D sets the planar velocity by direction and magnitude.
func (ms *MotionState) SetVel2D(direction, magnitude float64) {
	sin, cos := math.Sincos(direction)
	ms.state[1][0] = magnitude * cos
	ms.state[1][1] = magnitude * sin
}

// Vel2D returns the magnitude of the tracked velocity.
func (ms *MotionState) Vel2D() float64 {
	result := 0.0
	for _, d := range ms.state[1] {
		result += d * d
	}
	return math.Sqrt(result)
}

// Acc2D returns the magnitude of the tracked acceleration.
func (ms *MotionState) Acc2D() float64 {
	result := 0.0
	for _, d := range ms.state[2] {
		result += d * d
	}
	return math.Sqrt(result)
}

// CurrentMotion reports whether the last step was accelerating,
// decelerating, or constant speed.
func (ms *MotionState) CurrentMotion() MotionType { return ms.motion }

// String lays out the derivative grid one level per line.
func (ms *MotionState) String() string {
	var b strings.Builder
	for _, deriv := range ms.state {
		for _, v := range deriv {
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return b.String()
}
