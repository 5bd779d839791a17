package planner

import (
	"math/rand"
	"testing"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/area"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/drone"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
)

// relayTeam builds n relay drones on one 300x200 rectangle. All drones
// share the start corner, so everyone is in radio range of everyone.
func relayTeam(t *testing.T, n int) (*drone.Team, []*Relay) {
	t.Helper()
	poly, err := geom.NewPolygon(
		geom.Pt(0, 0), geom.Pt(0, 200), geom.Pt(300, 200), geom.Pt(300, 0))
	if err != nil {
		t.Fatal(err)
	}
	a := area.New(poly, area.Options{Rand: rand.New(rand.NewSource(7))})

	drones := make([]*drone.Drone, n)
	strategies := make([]*Relay, n)
	for i := range drones {
		strategies[i] = NewRelay()
		drones[i] = drone.New(a, i, strategies[i], testParams())
	}
	return drone.NewTeam(drones...), strategies
}

func TestRelayPlanSharing(t *testing.T) {
	team, strategies := relayTeam(t, 3)
	for _, s := range strategies {
		s.OnBegin()
	}

	// Every drone derives the same team path, so the expected whole is
	// reproducible here.
	d0 := team.Drone(0)
	hull := d0.Hull()
	alt := drone.CruiseAltitude(hull, 3*drone.MaxTravelDistance)
	points := drone.PlowAngled(hull, d0.Area().Start(0), alt, -hull.Girth().Measure())
	total := drone.OptimizePlan(points, d0.Gains())

	waypoints := 0
	var lastTarget *geom.Point
	for i, s := range strategies {
		if s.Done() {
			t.Fatalf("drone %d done before flying", i)
		}
		if s.Remaining() == 0 {
			t.Fatalf("drone %d got no share of the path", i)
		}
		for _, r := range drain(team.Drone(i), s) {
			if target := r.Target(); target != nil {
				waypoints++
				lastTarget = target
			}
		}
	}

	// The shares tile the team path: every waypoint is flown exactly
	// once, and the tail of the path rides with the last drone.
	if waypoints != len(total) {
		t.Errorf("team flies %d waypoints, want %d", waypoints, len(total))
	}
	want := total[len(total)-1].Target()
	if lastTarget == nil || !lastTarget.Equal(*want) {
		t.Errorf("team path ends at %v, want %v", lastTarget, want)
	}
}

func TestRelayHandoff(t *testing.T) {
	team, strategies := relayTeam(t, 2)
	s0, s1 := strategies[0], strategies[1]
	s0.OnBegin()
	s1.OnBegin()

	// Drone 1 finishes its share and announces over the radio.
	drain(team.Drone(1), s1)
	s1.OnAwaiting()
	if !s1.Done() {
		t.Fatal("drone 1 not done after flying its share")
	}

	// Drone 0 dies mid-share and should hand its leftovers to drone 1.
	leftover := s0.Remaining()
	if leftover == 0 {
		t.Fatal("drone 0 has nothing left to hand off")
	}
	team.Drone(0).ForceHalt()
	s0.OnEnergyDepleted()

	if s0.Remaining() != 0 {
		t.Errorf("drone 0 kept %d routes after handing off", s0.Remaining())
	}
	if s1.Remaining() != leftover {
		t.Errorf("drone 1 adopted %d routes, want %d", s1.Remaining(), leftover)
	}
	if s1.Done() {
		t.Error("drone 1 done with adopted work pending")
	}
}

func TestRelayNoTakerLosesWaypoints(t *testing.T) {
	_, strategies := relayTeam(t, 2)
	s0 := strategies[0]
	s0.OnBegin()
	strategies[1].OnBegin()

	// Nobody has announced completion, so there is no one to hand to.
	left := s0.Remaining()
	s0.OnEnergyDepleted()
	if s0.Remaining() != left {
		t.Error("handed off to a teammate that never finished")
	}
}

func TestRelayBeforeBegin(t *testing.T) {
	_, strategies := relayTeam(t, 2)
	s := strategies[0]
	if s.Done() {
		t.Error("done before planning")
	}
	s.OnAwaiting()       // must not panic without a plan
	s.OnEnergyDepleted() // likewise
}
