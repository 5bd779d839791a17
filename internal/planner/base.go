package planner

import (
	"github.com/mmkrusniak/yale22-uav-diversity/internal/area"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/config"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/drone"
)

// Base holds the drone binding and the no-op half of the lifecycle so
// concrete strategies override only the callbacks they care about. The
// zero value predicts with the default detection threshold.
type Base struct {
	// Threshold is the confidence above which a detection is predicted
	// real; zero means the default.
	Threshold float64

	d *drone.Drone
}

// Bind attaches the strategy to its drone.
func (b *Base) Bind(d *drone.Drone) { b.d = d }

// Drone is the vehicle this strategy flies.
func (b *Base) Drone() *drone.Drone { return b.d }

// SetThreshold overrides the prediction confidence cutoff.
func (b *Base) SetThreshold(t float64) { b.Threshold = t }

func (b *Base) OnBegin()                             {}
func (b *Base) OnTick()                              {}
func (b *Base) OnAwaiting()                          {}
func (b *Base) OnMissionCancel()                     {}
func (b *Base) OnEnergyDepleted()                    {}
func (b *Base) OnBroadcastReceived(*drone.Broadcast) {}

// Done reports false; a strategy with no termination condition flies
// until its battery gives out.
func (b *Base) Done() bool { return false }

// Predict guesses whether a detection is a true positive from the
// confidence the team recorded for it, against the threshold.
func (b *Base) Predict(det area.Detectable) bool {
	threshold := b.Threshold
	if threshold == 0 {
		threshold = config.DefaultThreshold
	}
	for _, e := range b.d.TeamDetections() {
		if e.Equal(det.Point) {
			return e.Confidence() > threshold
		}
	}
	return false
}
