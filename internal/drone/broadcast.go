package drone

import "sync/atomic"

// A Broadcast is one message flooded through the team. Broadcasts are
// immutable; Rebroadcast issues a copy under a fresh id, so the copy
// floods again rather than being swallowed by receivers that saw the
// original.
type Broadcast struct {
	id          int64
	source      *Drone
	destination *Drone
	header      string
	payload     any
	timestamp   float64
}

var nextBroadcastID int64

// NewBroadcast addresses a message from source to destination. A nil
// destination means everyone.
func NewBroadcast(source, destination *Drone, header string, payload any, timestamp float64) *Broadcast {
	return &Broadcast{
		id:          atomic.AddInt64(&nextBroadcastID, 1),
		source:      source,
		destination: destination,
		header:      header,
		payload:     payload,
		timestamp:   timestamp,
	}
}

// ID identifies the broadcast for deduplication during flooding.
func (b *Broadcast) ID() int64 { return b.id }

// Source is the drone that originated the broadcast.
func (b *Broadcast) Source() *Drone { return b.source }

// Destination is the addressee, or nil for a broadcast to everyone.
func (b *Broadcast) Destination() *Drone { return b.destination }

// Header names the kind of message.
func (b *Broadcast) Header() string { return b.header }

// Payload is the message body.
func (b *Broadcast) Payload() any { return b.payload }

// Timestamp is the simulation time the broadcast was issued at.
func (b *Broadcast) Timestamp() float64 { return b.timestamp }

// Rebroadcast reissues the same message at a later time. The copy has
// its own id, so drones that ignored or missed the original will
// process it.
func (b *Broadcast) Rebroadcast(t float64) *Broadcast {
	return NewBroadcast(b.source, b.destination, b.header, b.payload, t)
}
