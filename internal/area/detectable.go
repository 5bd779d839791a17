package area

import (
	"math"
	"math/rand"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
)

// A Detectable is an object on the ground that a vehicle's detector may
// or may not pick up. Its detection confidence varies with the altitude
// it is observed from: true objects are seen more confidently from low
// altitude, while false positives become more plausible the higher the
// camera sits. The noise term is seeded from the object's position, so
// re-observing the same object from the same altitude gives the same
// confidence.
type Detectable struct {
	geom.Point

	height     float64 // altitude it was observed from, meters
	base       float64 // hardness; 1.0 is a typical object
	truth      bool
	confidence float64 // noiseless model value
	noisy      float64 // what the detector actually reports, in [0,1]
}

// NewDetectable places an object at (x, y) as observed from the given
// altitude. The base parameter scales how hard the object is to
// classify. The confidence follows the log-altitude model fitted to the
// summer 2019 field data.
func NewDetectable(x, y, height, base float64, truth bool) Detectable {
	rng := rand.New(rand.NewSource(int64(x*y + height)))

	var confidence float64
	if truth {
		confidence = (1 / base) * (2.02 - 0.357*math.Log(height))
	} else {
		confidence = base * (0.0163 + 0.157*math.Log(height))
	}

	var noise float64
	if truth {
		noise = rng.NormFloat64() * (0.32 + 0.00412*height - 0.0000249*height*height)
	} else {
		noise = rng.NormFloat64() * (0.341 + 0.000716*height - 0.00000709*height*height)
	}

	return Detectable{
		Point:      geom.Pt(x, y),
		height:     height,
		base:       base,
		truth:      truth,
		confidence: confidence,
		noisy:      geom.Constrain(confidence+noise, 0, 1),
	}
}

// Confidence is the detector's reported confidence for this object,
// noise included, clamped to [0, 1].
func (d Detectable) Confidence() float64 { return d.noisy }

// DetectedFrom is the altitude this observation was made from.
func (d Detectable) DetectedFrom() float64 { return d.height }

// Real reports whether the object is a true positive.
func (d Detectable) Real() bool { return d.truth }

// AtHeight re-observes the same object from a different altitude.
func (d Detectable) AtHeight(h float64) Detectable {
	return NewDetectable(d.X(), d.Y(), h, d.base, d.truth)
}
