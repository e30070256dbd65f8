package kernel

import "math"

// cosChi samples the cosine of the COM-frame deflection angle from
// Nanbu's cumulative small-angle theory (spec.md §4.4.1), given the
// collision strength s and a uniform random draw u in [0, 1).
//
// The polynomial coefficients below reproduce the one used by the source
// (Perez & Higginson, http://dx.doi.org/10.1063/1.4742167) term for term;
// they are not re-derived.
func cosChi(s, u float64) float64 {
	switch {
	case s < 0.1:
		// RuntimeArithmetic: floor u at 1e-4 so cos(chi) stays positive in
		// the small-angle regime (spec.md §7).
		if u < 1e-4 {
			u = 1e-4
		}
		return 1 + s*math.Log(u)

	case s < 3:
		invA := 0.00569578 + (0.95602+(-0.508139+(0.479139+(-0.12789+0.0238957*s)*s)*s)*s)*s
		a := 1. / invA
		return invA * math.Log(math.Exp(-a)+2*u*math.Sinh(a))

	case s < 6:
		a := 3. * math.Exp(-s)
		invA := 1. / a
		return invA * math.Log(math.Exp(-a)+2*u*math.Sinh(a))

	default:
		return 2*u - 1
	}
}
