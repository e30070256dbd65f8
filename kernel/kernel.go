/*Package kernel implements the per-pair relativistic Coulomb scatter
(spec.md §4.4): the lab-to-COM transform, the collision parameter s, the
Nanbu deflection draw, the COM rotation, the weight-asymmetric acceptance
rule, and the back-transform to the lab frame.

All physical constants and intermediate term names (term1..term6,
coeff1..coeff4) are kept close to original_source/src/Collisions/Collisions.cpp
so that the mapping between this code and the cited equations
(http://dx.doi.org/10.1063/1.4742167, http://dx.doi.org/10.1103/PhysRevE.55.4642)
stays checkable line by line.
*/
package kernel

import "math"

const (
	speedOfLightSI          = 299792458.0
	classicalElectronRadius = 2.817940327e-15 // meters
	// planckOverTwoMeC2 is h*omega0/(2*me*c^2) with omega0 == 1 (it is
	// multiplied by the real omega0 in NewConstants). The literal matches
	// the source exactly, to preserve the numeric fidelity spec.md's
	// worked examples (§8) depend on.
	planckOverTwoMeC2 = 4.046650232e-21
)

// Constants holds the two reference-frequency-dependent coefficients
// shared by every pair in every bin for a given simulation
// (spec.md §4.4, "Constants (set once, derived from omega0)").
type Constants struct {
	Coeff1 float64
	Coeff2 float64
}

// NewConstants derives Coeff1/Coeff2 from the simulation's reference
// angular frequency, in rad/s.
func NewConstants(referenceOmega0SI float64) Constants {
	return Constants{
		Coeff1: planckOverTwoMeC2 * referenceOmega0SI,
		Coeff2: classicalElectronRadius * referenceOmega0SI / speedOfLightSI,
	}
}

// BinCoeffs holds the per-bin quantities that every pair in a bin shares:
// the aggregate densities and their derived coefficients
// (spec.md §4.4, "Precomputed per bin").
type BinCoeffs struct {
	N1, N2, N12   float64
	n1_23, n2_23  float64
	Coeff3        float64
	Coeff4        float64
}

// NewBinCoeffs derives the per-bin coefficients from the pair-sampled
// densities, the timestep dt, and the base Constants.
func NewBinCoeffs(c Constants, n1, n2, n12, dt float64) BinCoeffs {
	coeff3 := dt * n1 * n2 / n12
	coeff4 := math.Pow(3.*c.Coeff2, -1./3.) * coeff3
	coeff3 *= c.Coeff2
	return BinCoeffs{
		N1: n1, N2: n2, N12: n12,
		n1_23:  math.Pow(n1, 2./3.),
		n2_23:  math.Pow(n2, 2./3.),
		Coeff3: coeff3,
		Coeff4: coeff4,
	}
}

// Particle is the kernel's view of one side of a colliding pair: scalar
// properties plus mutable pointers to the three lab-frame momentum
// components, which Scatter writes back in place (spec.md §4.4 step 11),
// matching how the source mutates Particles arrays directly.
type Particle struct {
	Mass, Weight, Charge float64
	Px, Py, Pz           *float64
}

// Uniform is the minimal RNG surface Scatter needs: one draw in [0, 1)
// at a time, in the exact source order (Nanbu's U, then phi, then the
// acceptance U), satisfied by *rng.Stream.
type Uniform interface {
	Uniform() float64
}

// Result reports the Coulomb logarithm and collision strength actually
// used for a pair, for DebugRecorder to accumulate (spec.md §4.4 step
// 13).
type Result struct {
	S    float64
	LogL float64
}

// Scatter performs the full relativistic Coulomb scatter on one pair.
// fixedLogL is the collision group's configured Coulomb logarithm; a
// value <= 0 means "auto" (spec.md §3), in which case debyeLengthSquared
// (from debye.Estimator, for this pair's bin) is used instead.
func Scatter(
	c Constants, bin BinCoeffs,
	p1, p2 Particle,
	fixedLogL, debyeLengthSquared float64,
	u Uniform,
) Result {
	m12 := p1.Mass / p2.Mass
	qqm := p1.Charge * p2.Charge / p1.Mass
	qqm2 := qqm * qqm

	px1, py1, pz1 := *p1.Px, *p1.Py, *p1.Pz
	px2, py2, pz2 := *p2.Px, *p2.Py, *p2.Pz

	gamma1 := math.Sqrt(1 + px1*px1 + py1*py1 + pz1*pz1)
	gamma2 := math.Sqrt(1 + px2*px2 + py2*py2 + pz2*pz2)
	gamma12 := m12*gamma1 + gamma2
	gamma12Inv := 1. / gamma12

	comVx := (m12*px1 + px2) * gamma12Inv
	comVy := (m12*py1 + py2) * gamma12Inv
	comVz := (m12*pz1 + pz2) * gamma12Inv
	comVSquare := comVx*comVx + comVy*comVy + comVz*comVz
	comGamma := math.Pow(1.-comVSquare, -0.5)

	// (comGamma-1)/comVSquare tends to 1/2 as the COM velocity goes to
	// zero; use that limit when the COM is exactly at rest instead of 0/0.
	term1 := 0.5
	if comVSquare > 0 {
		term1 = (comGamma - 1.) / comVSquare
	}
	vcv1 := (comVx*px1 + comVy*py1 + comVz*pz1) / gamma1
	vcv2 := (comVx*px2 + comVy*py2 + comVz*pz2) / gamma2
	term2 := (term1*vcv1 - comGamma) * gamma1

	pxCOM := px1 + term2*comVx
	pyCOM := py1 + term2*comVy
	pzCOM := pz1 + term2*comVz
	p2COM := pxCOM*pxCOM + pyCOM*pyCOM + pzCOM*pzCOM
	pCOM := math.Sqrt(p2COM)

	gamma1COM := (1. - vcv1) * comGamma * gamma1
	gamma2COM := (1. - vcv2) * comGamma * gamma2

	term3 := comGamma * gamma12Inv
	term4 := gamma1COM * gamma2COM
	term5 := term4/p2COM + m12

	logL := fixedLogL
	if logL <= 0 {
		bmin := math.Max(c.Coeff1/p1.Mass/pCOM, math.Abs(c.Coeff2*qqm*term3*term5))
		logL = 0.5 * math.Log(1.+debyeLengthSquared/(bmin*bmin))
		// RuntimeArithmetic: floor logL at 2 (spec.md §7).
		if logL < 2 {
			logL = 2
		}
	}

	s := bin.Coeff3 * logL * qqm2 * term3 * pCOM * term5 * term5 / (gamma1 * gamma2)

	vrel := pCOM / term3 / term4
	smax := bin.Coeff4 * (m12 + 1.) * vrel / math.Max(m12*bin.n1_23, bin.n2_23)
	// RuntimeArithmetic: clamp s at smax, the low-temperature correction
	// (spec.md §7).
	if s > smax {
		s = smax
	}

	cosX := cosChi(s, u.Uniform())
	sinX := math.Sqrt(1. - cosX*cosX)
	phi := 2. * math.Pi * u.Uniform()
	sinXcosPhi := sinX * math.Cos(phi)
	sinXsinPhi := sinX * math.Sin(phi)

	var newpxCOM, newpyCOM, newpzCOM float64
	pPerp := math.Sqrt(pxCOM*pxCOM + pyCOM*pyCOM)
	if pPerp > 1e-10*pCOM {
		invPPerp := 1. / pPerp
		newpxCOM = (pxCOM*pzCOM*sinXcosPhi-pyCOM*pCOM*sinXsinPhi)*invPPerp + pxCOM*cosX
		newpyCOM = (pyCOM*pzCOM*sinXcosPhi+pxCOM*pCOM*sinXsinPhi)*invPPerp + pyCOM*cosX
		newpzCOM = -pPerp*sinXcosPhi + pzCOM*cosX
	} else {
		// RuntimeArithmetic: degenerate near-axis rotation fallback
		// (spec.md §7, §8 boundary condition).
		newpxCOM = pCOM * sinXcosPhi
		newpyCOM = pCOM * sinXsinPhi
		newpzCOM = pCOM * cosX
	}

	accept := u.Uniform()
	vcp := comVx*newpxCOM + comVy*newpyCOM + comVz*newpzCOM

	if accept < p2.Weight/p1.Weight {
		term6 := term1*vcp + gamma1COM*comGamma
		*p1.Px = newpxCOM + comVx*term6
		*p1.Py = newpyCOM + comVy*term6
		*p1.Pz = newpzCOM + comVz*term6
	}
	if accept < p1.Weight/p2.Weight {
		term6 := -m12*term1*vcp + gamma2COM*comGamma
		*p2.Px = -m12*newpxCOM + comVx*term6
		*p2.Py = -m12*newpyCOM + comVy*term6
		*p2.Pz = -m12*newpzCOM + comVz*term6
	}

	return Result{S: s, LogL: logL}
}
