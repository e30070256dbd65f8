/*Package testeq provides the float-comparison helpers used across this
module's test suites, in the spirit of Guppy's lib/eq package: a single
place to decide what "close enough" means for floating point results
instead of repeating an epsilon in every test file.
*/
package testeq

import "math"

// Float reports whether a and b agree to within eps absolute or relative
// error, whichever is larger.
func Float(a, b, eps float64) bool {
	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}
	return diff <= eps*math.Max(math.Abs(a), math.Abs(b))
}

// Floats reports whether every element of a and b agree to within eps,
// per Float. It returns false if the slices have different lengths.
func Floats(a, b []float64, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Float(a[i], b[i], eps) {
			return false
		}
	}
	return true
}
