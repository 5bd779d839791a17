// Package drone simulates the vehicles that cover an area: their
// lifecycle, their energy accounting, their camera, and the flooding
// protocol they talk over.
//
// A [Drone] is the platform half of a vehicle; the algorithm half is a
// [Strategy], bound to its drone at construction. Each call to
// [Drone.Proceed] runs one tick of the lifecycle: score and trace
// bookkeeping, the strategy's OnTick, route application, energy
// constraint and draw, then physics integration. A [Team] drives a
// fleet of drones over an area on a background goroutine and reports
// progress to listeners.
//
// The platform numbers (field of view, battery capacity, radio range)
// are taken from the Iris quadcopter spec sheet.
package drone
