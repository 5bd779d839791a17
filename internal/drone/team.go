package drone

import (
	"sync"
	"time"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/area"
)

// progressRate is how often traversal listeners are notified.
const progressRate = 30 // Hz

// A Listener observes a team traversal from outside: progress at a
// steady cadence while the run is live, and completion exactly once
// when every drone has finished or run dry. Both fire on the traversal
// goroutine.
type Listener interface {
	TraversalProgressed()
	TraversalFinished()
}

// A Team drives a fixed fleet of drones over an area together. One
// traversal runs at a time, on a background goroutine; Stop blocks
// until that goroutine has exited.
type Team struct {
	drones    []*Drone
	listeners []Listener

	mu   sync.Mutex
	quit chan struct{}
	done chan struct{}
	err  error
}

// NewTeam assembles a team and joins each drone to it.
func NewTeam(drones ...*Drone) *Team {
	t := &Team{drones: drones}
	for _, d := range drones {
		d.joinTeam(t)
	}
	return t
}

// Drones is the fleet, in id order.
func (t *Team) Drones() []*Drone { return t.drones }

// Size is the number of drones on the team.
func (t *Team) Size() int { return len(t.drones) }

// Drone returns the team member with the given id.
func (t *Team) Drone(id int) *Drone { return t.drones[id] }

// AddListener registers a traversal observer.
func (t *Team) AddListener(l Listener) {
	t.listeners = append(t.listeners, l)
}

// Traverse resets every drone against the area and launches the
// traversal goroutine. Physics ticks at dt simulated seconds each, at
// a wall-clock rate that grows quadratically with simSpeed; listeners
// hear progress at a fixed cadence regardless. Any prior traversal is
// stopped first. The onTick callback, if set, fires after every physics
// step with the fleet.
func (t *Team) Traverse(a *area.Area, simSpeed int, dt float64, onTick func([]*Drone)) {
	t.Stop()
	for _, d := range t.drones {
		d.ResetTo(a)
	}

	t.mu.Lock()
	t.quit = make(chan struct{})
	t.done = make(chan struct{})
	t.err = nil
	quit, done := t.quit, t.done
	t.mu.Unlock()

	updateInterval := time.Second / time.Duration(simSpeed*simSpeed)
	go func() {
		defer close(done)

		update := time.NewTicker(updateInterval)
		defer update.Stop()
		progress := time.NewTicker(time.Second / progressRate)
		defer progress.Stop()

		// The running check comes after the first tick so that every
		// strategy gets its OnBegin before being asked whether it is
		// finished; a replanning strategy holds stale state between runs.
		for {
			select {
			case <-quit:
				for _, d := range t.drones {
					d.strategy.OnMissionCancel()
				}
				return
			case <-update.C:
				for _, d := range t.drones {
					if err := d.Proceed(dt); err != nil {
						t.mu.Lock()
						t.err = err
						t.mu.Unlock()
						return
					}
				}
				if onTick != nil {
					onTick(t.drones)
				}
				if !t.DronesRunning() {
					for _, l := range t.listeners {
						l.TraversalFinished()
					}
					return
				}
			case <-progress.C:
				for _, l := range t.listeners {
					l.TraversalProgressed()
				}
			}
		}
	}()
}

// DronesRunning reports whether any drone still has work and energy.
func (t *Team) DronesRunning() bool {
	for _, d := range t.drones {
		if !(d.Done() || d.EnergyRemaining() < 0) {
			return true
		}
	}
	return false
}

// IsTraversing reports whether a traversal goroutine is live.
func (t *Team) IsTraversing() bool {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Stop aborts the current traversal, if any, and waits for the
// traversal goroutine to exit.
func (t *Team) Stop() {
	t.mu.Lock()
	quit, done := t.quit, t.done
	t.mu.Unlock()
	if quit == nil {
		return
	}
	select {
	case <-done:
	default:
		select {
		case <-quit:
		default:
			close(quit)
		}
		<-done
	}
}

// Wait blocks until the current traversal finishes on its own.
func (t *Team) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Err is the first drone failure of the last traversal, if any.
func (t *Team) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Detections collects every detection made by any drone on the team.
func (t *Team) Detections() []area.Detectable {
	var result []area.Detectable
	for _, d := range t.drones {
		for _, c := range d.CaptureHistory() {
			result = append(result, c.Detectables...)
		}
	}
	return result
}
