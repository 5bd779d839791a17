// Package phys models quadrotor motion and energy use.
//
// [MotionState] tracks position and its derivatives plus an independent
// heading, advanced by explicit Euler steps with quadratic drag. Because
// the simulation is discrete, a vehicle can skip over a point it cared
// about inside one step; waypoint listeners registered with
// [MotionState.AddListener] are replayed against the segment actually
// traveled, so arrival callbacks fire as if motion were continuous.
//
// [EnergyModel] prices that motion. The stock [Iris] model fits
// fifth-degree power curves to the empirical measurements of Di Franco
// et al. for the 3DR Iris, one curve each for accelerating,
// decelerating, and constant-speed flight.
//
// [Route] implementations translate a target into acceleration demands:
// [RouteTo] stops on the target with a rough PID loop, [RouteThrough]
// passes over it at full throttle, and [RouteHead] only turns the
// vehicle.
package phys
