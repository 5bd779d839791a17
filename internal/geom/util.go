package geom

import "math"

// Granularity is the precision of internal comparisons. Points whose x
// and y coordinates are each within Granularity are considered equal.
const Granularity = 0.01

// Det computes the determinant of a square matrix by cofactor expansion
// down the first column. Fine for the 2x2 systems the intersection code
// feeds it; do not hand it anything large.
func Det(mat [][]float64) float64 {
	if len(mat) == 1 {
		return mat[0][0]
	}
	sum := 0.0
	sign := 1.0
	for i := range mat {
		sum += sign * mat[i][0] * Det(Minor(mat, i, 0))
		sign = -sign
	}
	return sum
}

// Minor returns mat with row x and column y removed.
func Minor(mat [][]float64, x, y int) [][]float64 {
	result := make([][]float64, 0, len(mat)-1)
	for i := range mat {
		if i == x {
			continue
		}
		row := make([]float64, 0, len(mat[i])-1)
		for j := range mat[i] {
			if j == y {
				continue
			}
			row = append(row, mat[i][j])
		}
		result = append(result, row)
	}
	return result
}

// Within reports whether c lies between a and b inclusive.
func Within(a, b, c float64) bool {
	return c <= math.Max(a, b) && c >= math.Min(a, b)
}

// WithinTol reports whether c lies between a and b with tolerance t.
func WithinTol(a, b, c, t float64) bool {
	return c-t < math.Max(a, b) && c+t >= math.Min(a, b)
}

// Approx reports whether a is within t of b.
func Approx(a, b, t float64) bool {
	return math.Abs(a-b) < t
}

// Constrain clamps i to the closed interval spanned by a and b.
func Constrain(i, a, b float64) float64 {
	lo, hi := math.Min(a, b), math.Max(a, b)
	if i > hi {
		return hi
	}
	if i < lo {
		return lo
	}
	return i
}
