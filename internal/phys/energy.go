package phys

import (
	"errors"
	"fmt"
	"math"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
)

// ErrNegativeEnergy indicates a fitted power curve priced motion below
// zero joules. That can only happen if the curves are wrong, so it is
// fatal to the run rather than recoverable.
var ErrNegativeEnergy = errors.New("phys: motion cost is negative, energy curves are inconsistent")

// EnergyModel prices a vehicle's motion. A model holds one power curve
// (watts as a function of planar speed) per motion type, plus the
// airframe's performance limits. Build new models from empirical
// measurements of power at various speeds while accelerating,
// decelerating, and cruising.
type EnergyModel struct {
	accPower   Polynomial
	decPower   Polynomial
	constPower Polynomial

	maxVel float64
	maxAcc float64
}

// Iris builds the energy model for the 3DR Iris quadrotor, fitting
// fifth-degree curves to the empirical measurements of Di Franco et
// al., which is visually a close match. The drag coefficient bounds the
// sustainable acceleration: at top speed, thrust only just cancels
// drag.
func Iris(drag float64) *EnergyModel {
	maxVel := 15.0
	return &EnergyModel{
		accPower: FitPolynomial(5,
			[]float64{0, 5, 8.5, 12, 14, 15, 15.2, 15.3},
			[]float64{200, 210, 230, 240, 250, 275, 300.2, 325.3}),
		decPower: FitPolynomial(5,
			[]float64{15, 14, 12, 9.5, 7.5, 6, 3, 1, 0.1},
			[]float64{310, 260, 220, 210, 212, 215, 225, 230.2, 235, 230}),
		constPower: FitPolynomial(5,
			[]float64{0, 2, 4, 6, 8, 10, 12, 14, 16},
			[]float64{222, 220, 215, 210, 205, 215, 235, 280, 340}),
		maxVel: maxVel,
		maxAcc: drag * maxVel * maxVel,
	}
}

// MaxVel returns the model's maximum planar speed.
func (em *EnergyModel) MaxVel() float64 { return em.maxVel }

// MaxAcc returns the model's maximum planar acceleration.
func (em *EnergyModel) MaxAcc() float64 { return em.maxAcc }

// Cost returns the energy in joules that the state's current motion
// consumes over t seconds: the power curve for the motion type
// evaluated at the current speed, plus a climb surcharge when gaining
// altitude. A negative cost returns [ErrNegativeEnergy].
func (em *EnergyModel) Cost(state *MotionState, t float64) (float64, error) {
	sum := 0.0
	speed := math.Abs(state.Vel2D())

	switch state.CurrentMotion() {
	case Constant:
		sum = t * em.constPower.At(speed)
	case Accelerating:
		sum = t * em.accPower.At(speed)
	case Decelerating:
		sum = t * em.decPower.At(speed)
	}
	if sum < 0 {
		return 0, fmt.Errorf("%s motion at %.2f m/s over %.2fs: %w",
			state.CurrentMotion(), speed, t, ErrNegativeEnergy)
	}

	if state.VelZ() > 0.1 {
		sum += state.VelZ() * 30 / 2
	}
	return sum, nil
}

// Constrain clamps the state to the airframe's capabilities: planar
// acceleration and velocity magnitudes are capped preserving direction,
// and vertical velocity is held to ±5 m/s.
func (em *EnergyModel) Constrain(state *MotionState) {
	if state.Acc2D() > em.maxAcc {
		dir := geom.Origin.Bearing(geom.Pt(state.AccX(), state.AccY()))
		state.SetAcc2D(dir, em.maxAcc)
	}
	if state.Vel2D() > em.maxVel+0.001 {
		dir := geom.Origin.Bearing(geom.Pt(state.VelX(), state.VelY()))
		state.SetVel2D(dir, em.maxVel)
	}
	state.SetVelZ(geom.Constrain(state.VelZ(), -5, 5))
}
