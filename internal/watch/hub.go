// Package watch streams live traversal progress to websocket clients.
// A Hub registers as a team listener and fans each progress snapshot
// out to every connected client; clients are read-only observers and
// nothing they send reaches the simulation.
package watch

import (
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/drone"
)

// Frame types.
const (
	FrameProgress = "progress"
	FrameFinished = "finished"
)

// A Frame is one JSON message pushed to clients.
type Frame struct {
	Type   string       `json:"type"`
	Time   float64      `json:"time"`
	Drones []DroneFrame `json:"drones"`
}

// DroneFrame is the per-drone slice of a progress frame.
type DroneFrame struct {
	ID       int     `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Energy   float64 `json:"energy"`
	Captures int     `json:"captures"`
	Done     bool    `json:"done"`
}

func validOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == originURL.Host {
		return true
	}
	return strings.HasPrefix(originURL.Host, "localhost:") ||
		strings.HasPrefix(originURL.Host, "127.0.0.1:") ||
		originURL.Host == "localhost" ||
		originURL.Host == "127.0.0.1"
}

var upgrader = websocket.Upgrader{CheckOrigin: validOrigin}

type client struct {
	conn *websocket.Conn
	send chan Frame
}

// A Hub relays traversal snapshots to websocket clients. Register it
// with the team before Traverse and run its loop on its own goroutine.
type Hub struct {
	team *drone.Team

	mu         sync.Mutex
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	frames     chan Frame
	quit       chan struct{}
	once       sync.Once
}

// NewHub wires a hub to a team's traversal events.
func NewHub(team *drone.Team) *Hub {
	h := &Hub{
		team:       team,
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		frames:     make(chan Frame, 64),
		quit:       make(chan struct{}),
	}
	team.AddListener(h)
	return h
}

// Run dispatches client churn and outgoing frames until Close.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case frame := <-h.frames:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- frame:
				default:
					// Slow client; skip this frame for it.
				}
			}
			h.mu.Unlock()

		case <-h.quit:
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Close shuts the dispatch loop down and drops every client.
func (h *Hub) Close() { h.once.Do(func() { close(h.quit) }) }

// TraversalProgressed implements drone.Listener. It fires on the
// traversal goroutine, so the frame is queued rather than sent, and
// dropped if the hub is backed up.
func (h *Hub) TraversalProgressed() { h.offer(h.Snapshot(FrameProgress)) }

// TraversalFinished implements drone.Listener.
func (h *Hub) TraversalFinished() { h.offer(h.Snapshot(FrameFinished)) }

func (h *Hub) offer(f Frame) {
	select {
	case h.frames <- f:
	default:
	}
}

// Snapshot captures the team's current state as a frame.
func (h *Hub) Snapshot(typ string) Frame {
	f := Frame{Type: typ}
	for _, d := range h.team.Drones() {
		loc := d.Location()
		if d.Time() > f.Time {
			f.Time = d.Time()
		}
		f.Drones = append(f.Drones, DroneFrame{
			ID:       d.ID(),
			X:        loc.X(),
			Y:        loc.Y(),
			Z:        loc.Z(),
			Energy:   d.EnergyRemaining(),
			Captures: len(d.CaptureHistory()),
			Done:     d.Done(),
		})
	}
	return f
}

// ServeHTTP upgrades the request to a websocket and streams frames to
// it until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("watch: upgrade failed: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan Frame, 16)}
	select {
	case h.register <- c:
	case <-h.quit:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump(h)
}

func (c *client) writePump() {
	defer c.conn.Close()
	for frame := range c.send {
		if err := c.conn.WriteJSON(frame); err != nil {
			return
		}
	}
}

// readPump discards everything the client sends; its only job is to
// notice the close.
func (c *client) readPump(h *Hub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.quit:
		}
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
