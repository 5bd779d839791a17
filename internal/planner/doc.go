// Package planner implements the coverage strategies that fly the
// drones: the algorithms that turn a survey region into a flight path.
//
// Most strategies here are offline: they commit to a complete plan
// before takeoff and never react to what the camera sees. [Offline]
// carries that shared lifecycle; the concrete strategies differ only in
// how the plan is generated. [NewPlow] sweeps the whole region
// back and forth, [NewDecompose] first carves concave regions into
// simply traversable cells, [NewSweep] does the same with a vertical
// sweep line, and [NewDirect] flies a straight transect. [NewRelay] is
// the cooperative exception: each drone flies one share of a common
// path and hands unfinished waypoints to a teammate over the radio when
// its battery runs out.
//
// Strategies are constructed by name through [New]; [Strategies] lists
// what is available.
package planner
