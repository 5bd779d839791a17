package geom

import (
	"math"
	"math/rand"
	"sort"
)

// Region generators for the five-tier region hierarchy used when
// benchmarking coverage strategies:
//
//	1. rectangles
//	2. convex polygons with a minimum width
//	3. convex polygons that may be arbitrarily thin
//	4. simply traversable polygons (possibly concave along the base)
//	5. polygons that are never simply traversable
//
// Each tier is strictly harder to cover than the last.

// Type1Region generates a random rectangle with sides between minWidth
// and roughly maxWidth times that.
func Type1Region(rng *rand.Rand, minWidth, maxWidth float64) *Polygon {
	width := minWidth + rng.Float64()*(maxWidth*minWidth)
	height := minWidth + rng.Float64()*(maxWidth*minWidth)
	return polygonOf([]Point{
		Pt(0, 0),
		Pt(0, height),
		Pt(width, height),
		Pt(width, 0),
	})
}

// Type2Region generates a random convex polygon no thinner than
// minWidth. It rerolls until the width guarantee holds, which is crude
// but uniform enough for benchmarking.
func Type2Region(rng *rand.Rand, minWidth float64, n int) *Polygon {
	for {
		result := RandomPolygon(rng, n, 100, 300).ConvexHull()
		if result.PolygonalWidth() >= minWidth {
			return result
		}
	}
}

// Type3Region generates a random convex polygon squeezed to the given
// thinness along its base, then rotated randomly.
func Type3Region(rng *rand.Rand, maxSize float64, n int, thinness float64) *Polygon {
	template := Type2Region(rng, maxSize, n)
	template = template.Rotate(template.Base().Measure())
	ratio := thinness / template.CartesianWidth()
	result := make([]Point, template.Len())
	for i, p := range template.Vertices() {
		result[i] = Pt(p.X()*ratio, p.Y())
	}
	return polygonOf(result).Rotate(rng.Float64() * math.Pi * 2).ConvexHull()
}

// Type4Region generates a random simply traversable polygon: a crown
// of spikes pointing up pasted to a crown pointing down, rotated
// randomly. Rerolls in the unlikely case every spike is too short.
func Type4Region(rng *rand.Rand, maxSize float64, n int) *Polygon {
	for {
		resultPoints := make([]Point, n)

		// Top part, right to left.
		locX := make([]float64, n/2)
		for i := range locX {
			locX[i] = rng.Float64()
		}
		sort.Float64s(locX)
		for i := 0; i < n/2; i++ {
			resultPoints[i] = Pt((1-locX[i])*maxSize, rng.Float64()*maxSize/2)
		}

		// Bottom part, left to right.
		locX = make([]float64, n-n/2)
		for i := range locX {
			locX[i] = rng.Float64()
		}
		sort.Float64s(locX)
		for i := range locX {
			resultPoints[i+n/2] = Pt(locX[i]*maxSize, rng.Float64()*maxSize/2+maxSize/2)
		}

		result := polygonOf(resultPoints)
		if result.IsSimplyTraversable() {
			return result.Rotate(rng.Float64() * math.Pi * 2)
		}
	}
}

// Type5Region generates a random polygon that is not simply
// traversable.
func Type5Region(rng *rand.Rand, maxSize float64, n int) *Polygon {
	for {
		result := RandomPolygon(rng, n, 0, maxSize)
		if !result.IsSimplyTraversable() {
			return result
		}
	}
}
