package area

import (
	"math"
	"math/rand"

	"github.com/mmkrusniak/yale22-uav-diversity/internal/geom"
)

// A SpatialDistribution pairs a density function over a polygon with a
// generator that samples points from it. The density is normalized only
// loosely: its maximum is near 1, and it is zero outside the bounds.
// Planners read the density to weigh where flying is worth the energy;
// the generator seeds areas with objects.
type SpatialDistribution struct {
	density  func(geom.Point) float64
	generate func() geom.Point
	name     string
}

// Point samples a location from the distribution.
func (d *SpatialDistribution) Point() geom.Point { return d.generate() }

// Density evaluates the distribution's density at p. Zero outside the
// distribution's bounds.
func (d *SpatialDistribution) Density(p geom.Point) float64 { return d.density(p) }

func (d *SpatialDistribution) String() string { return d.name }

// Pseudorandom is uniform over the polygon.
func Pseudorandom(rng *rand.Rand, bounds *geom.Polygon) *SpatialDistribution {
	return &SpatialDistribution{
		density: func(p geom.Point) float64 {
			if !bounds.Encloses(p) {
				return 0
			}
			return 1.0 / bounds.Area()
		},
		generate: func() geom.Point {
			for {
				p := geom.Pt(rng.Float64()*bounds.CartesianWidth(), rng.Float64()*bounds.CartesianHeight())
				if bounds.Encloses(p) {
					return p
				}
			}
		},
		name: "Pseudorandom",
	}
}

// Gaussian concentrates objects around a mean point, with independent
// normal falloff on each axis. Samples outside the bounds are rejected
// and redrawn.
func Gaussian(rng *rand.Rand, bounds *geom.Polygon, mean geom.Point, stdDev float64) *SpatialDistribution {
	return &SpatialDistribution{
		density: func(p geom.Point) float64 {
			if !bounds.Encloses(p) {
				return 0
			}
			// The leading 1/(σ√2π) term is dropped on purpose: we want
			// the peak at 1, not the integral.
			probX := math.Exp(-math.Pow((p.X()-mean.X())/stdDev, 2) / 2)
			probY := math.Exp(-math.Pow((p.Y()-mean.Y())/stdDev, 2) / 2)
			return probX * probY
		},
		generate: func() geom.Point {
			for {
				p := geom.Pt(mean.X()+rng.NormFloat64()*stdDev, mean.Y()+rng.NormFloat64()*stdDev)
				if bounds.Encloses(p) {
					return p
				}
			}
		},
		name: "Gaussian",
	}
}

// GaussianCentered is [Gaussian] about the polygon's centroid.
func GaussianCentered(rng *rand.Rand, bounds *geom.Polygon, stdDev float64) *SpatialDistribution {
	return Gaussian(rng, bounds, bounds.Center(), stdDev)
}

// Multimodal overlays one Gaussian mode per center point. The density
// is the mean of the modes; the generator picks a mode uniformly and
// samples it.
func Multimodal(rng *rand.Rand, bounds *geom.Polygon, modes []geom.Point, stdDevs []float64) *SpatialDistribution {
	dists := make([]*SpatialDistribution, len(modes))
	for i := range modes {
		dists[i] = Gaussian(rng, bounds, modes[i], stdDevs[i])
	}
	return &SpatialDistribution{
		density: func(p geom.Point) float64 {
			if !bounds.Encloses(p) {
				return 0
			}
			sum := 0.0
			for i := range modes {
				probX := math.Exp(-math.Pow((p.X()-modes[i].X())/stdDevs[i], 2) / 2)
				probY := math.Exp(-math.Pow((p.Y()-modes[i].Y())/stdDevs[i], 2) / 2)
				sum += probX * probY
			}
			return sum / float64(len(modes))
		},
		generate: func() geom.Point {
			return dists[rng.Intn(len(dists))].Point()
		},
		name: "Multimodal",
	}
}

// Functional builds a distribution from an arbitrary density function,
// scaled by max and clamped to 1. The generator is rejection sampling
// against the scaled density, so a wildly unnormalized func will just
// sample slowly, not wrongly.
func Functional(rng *rand.Rand, bounds *geom.Polygon, fn func(geom.Point) float64, max float64, name string) *SpatialDistribution {
	return &SpatialDistribution{
		density: func(p geom.Point) float64 {
			if !bounds.Encloses(p) {
				return 0
			}
			result := fn(p) / max
			if result > 1 {
				return 1
			}
			return result
		},
		generate: func() geom.Point {
			for {
				p := geom.Pt(rng.Float64()*bounds.CartesianWidth(), rng.Float64()*bounds.CartesianHeight())
				if rng.Float64() < fn(p)/max && bounds.Encloses(p) {
					return p
				}
			}
		},
		name: name,
	}
}

// EdgeDistance weights locations by proximity to the boundary.
func EdgeDistance(rng *rand.Rand, bounds *geom.Polygon) *SpatialDistribution {
	fn := func(p geom.Point) float64 {
		return 1.0 / p.Dist2D(bounds.ClosestPoint(p))
	}
	return Functional(rng, bounds, fn, 1, "Edge Distance")
}

// Periodic lays a sinusoidal grid of hotspots over the polygon.
func Periodic(rng *rand.Rand, bounds *geom.Polygon, period float64) *SpatialDistribution {
	fn := func(p geom.Point) float64 {
		return math.Abs(math.Sin(p.X()/math.Pi*period) * math.Sin(p.Y()/math.Pi*period))
	}
	return Functional(rng, bounds, fn, 1, "Periodic")
}

// DistanceFrom weights locations by squared distance from a point, the
// farthest vertex having weight 1.
func DistanceFrom(rng *rand.Rand, bounds *geom.Polygon, point geom.Point) *SpatialDistribution {
	max := bounds.FarthestPoint(point).SqDist2D(point)
	fn := func(p geom.Point) float64 {
		return p.SqDist2D(point)
	}
	return Functional(rng, bounds, fn, max, "Distance")
}
