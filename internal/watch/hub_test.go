package watch

import (
	"math/rand"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/area"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/drone"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/phys"
	"github.com/mmkrusniak/yale22-uav-diversity/internal/planner"
)

func newWatchedTeam(t *testing.T) *drone.Team {
	t.Helper()
	poly, err := geom.NewPolygon(
		geom.Pt(0, 0), geom.Pt(0, 200), geom.Pt(300, 200), geom.Pt(300, 0))
	if err != nil {
		t.Fatal(err)
	}
	a := area.New(poly, area.Options{Rand: rand.New(rand.NewSource(7))})
	d := drone.New(a, 0, &planner.Base{}, drone.Params{Drag: 0.061, Gains: phys.Gains{KP: 0.125}})
	return drone.NewTeam(d)
}

func (h *Hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.clientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, want %d", h.clientCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSnapshot(t *testing.T) {
	team := newWatchedTeam(t)
	h := NewHub(team)

	f := h.Snapshot(FrameProgress)
	if f.Type != FrameProgress {
		t.Errorf("type = %q", f.Type)
	}
	if len(f.Drones) != 1 {
		t.Fatalf("drones = %d, want 1", len(f.Drones))
	}
	df := f.Drones[0]
	if df.ID != 0 {
		t.Errorf("id = %d", df.ID)
	}
	if df.Energy != team.Drone(0).EnergyBudget() {
		t.Errorf("energy = %v, want full budget %v", df.Energy, team.Drone(0).EnergyBudget())
	}
	if df.Captures != 0 || df.Done {
		t.Errorf("fresh drone reported captures=%d done=%v", df.Captures, df.Done)
	}
}

func TestHubStreamsFrames(t *testing.T) {
	team := newWatchedTeam(t)
	h := NewHub(team)
	go h.Run()
	defer h.Close()

	srv := httptest.NewServer(h)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	waitForClients(t, h, 1)

	h.TraversalProgressed()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame Frame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatal(err)
	}
	if frame.Type != FrameProgress {
		t.Errorf("type = %q, want %q", frame.Type, FrameProgress)
	}
	if len(frame.Drones) != 1 {
		t.Errorf("drones = %d, want 1", len(frame.Drones))
	}

	h.TraversalFinished()
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatal(err)
	}
	if frame.Type != FrameFinished {
		t.Errorf("type = %q, want %q", frame.Type, FrameFinished)
	}
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	team := newWatchedTeam(t)
	h := NewHub(team)
	go h.Run()

	srv := httptest.NewServer(h)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	waitForClients(t, h, 1)

	h.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame Frame
	if err := conn.ReadJSON(&frame); err == nil {
		t.Error("read succeeded after hub close")
	}
}

func TestUnregisterOnDisconnect(t *testing.T) {
	team := newWatchedTeam(t)
	h := NewHub(team)
	go h.Run()
	defer h.Close()

	srv := httptest.NewServer(h)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	waitForClients(t, h, 1)

	conn.Close()
	waitForClients(t, h, 0)

	// Broadcasting to an empty hub must not block.
	h.TraversalProgressed()
}
