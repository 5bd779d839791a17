package phys

import "math"

// Polynomial is a polynomial in ascending coefficient order.
type Polynomial []float64

// At evaluates the polynomial by Horner's rule.
func (p Polynomial) At(x float64) float64 {
	result := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		result = result*x + p[i]
	}
	return result
}

// FitPolynomial least-squares fits a polynomial of the given degree to
// the observations, solving the normal equations of the Vandermonde
// system by Gaussian elimination with partial pivoting. The sample
// counts here are tiny (a dozen points, degree five), so conditioning
// is not a concern.
func FitPolynomial(degree int, x, y []float64) Polynomial {
	n := degree + 1
	if len(x) < len(y) {
		y = y[:len(x)]
	}

	// Normal equations: A^T A c = A^T y for the Vandermonde matrix A.
	ata := make([][]float64, n)
	aty := make([]float64, n)
	for i := range ata {
		ata[i] = make([]float64, n)
	}
	for k, xv := range x {
		powers := make([]float64, 2*n-1)
		p := 1.0
		for i := range powers {
			powers[i] = p
			p *= xv
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				ata[i][j] += powers[i+j]
			}
			aty[i] += powers[i] * y[k]
		}
	}

	// Forward elimination with partial pivoting.
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(ata[row][col]) > math.Abs(ata[pivot][col]) {
				pivot = row
			}
		}
		ata[col], ata[pivot] = ata[pivot], ata[col]
		aty[col], aty[pivot] = aty[pivot], aty[col]

		for row := col + 1; row < n; row++ {
			f := ata[row][col] / ata[col][col]
			for j := col; j < n; j++ {
				ata[row][j] -= f * ata[col][j]
			}
			aty[row] -= f * aty[col]
		}
	}

	// Back substitution.
	coef := make(Polynomial, n)
	for i := n - 1; i >= 0; i-- {
		sum := aty[i]
		for j := i + 1; j < n; j++ {
			sum -= ata[i][j] * coef[j]
		}
		coef[i] = sum / ata[i][i]
	}
	return coef
}
