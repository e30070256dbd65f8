package kernel

import "testing"

// fixedUniform replays a fixed sequence of draws, cycling if exhausted,
// so a test can pin down Scatter's three draws (Nanbu U, phi, accept U)
// without depending on rng.Stream.
type fixedUniform struct {
	vals []float64
	i    int
}

func (f *fixedUniform) Uniform() float64 {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v
}

func TestNewConstants(t *testing.T) {
	c := NewConstants(1e15)
	if c.Coeff1 <= 0 || c.Coeff2 <= 0 {
		t.Fatalf("NewConstants(1e15) = %+v, want both coefficients positive", c)
	}
}

func TestNewBinCoeffs(t *testing.T) {
	c := NewConstants(1e15)
	bc := NewBinCoeffs(c, 1.0, 1.0, 0.5, 0.01)
	if bc.N1 != 1.0 || bc.N2 != 1.0 || bc.N12 != 0.5 {
		t.Fatalf("NewBinCoeffs densities = %+v, want N1=1 N2=1 N12=0.5", bc)
	}
	if bc.Coeff3 <= 0 || bc.Coeff4 <= 0 {
		t.Fatalf("NewBinCoeffs(%+v) coefficients not positive: %+v", c, bc)
	}
}

// TestScatterWeightAsymmetricAcceptance reproduces spec.md §8 #4: with
// W1=1, W2=3 and a fixed accept draw of 0.5, particle 1 is always
// deflected (0.5 < W2/W1 = 3) while particle 2 never is (0.5 is not
// < W1/W2 = 1/3).
func TestScatterWeightAsymmetricAcceptance(t *testing.T) {
	c := NewConstants(1e15)
	bc := NewBinCoeffs(c, 1.0, 1.0, 1.0, 0.01)

	px1, py1, pz1 := 0.1, 0.0, 0.0
	px2, py2, pz2 := -0.1, 0.05, 0.0

	p1 := Particle{Mass: 1, Weight: 1, Charge: -1, Px: &px1, Py: &py1, Pz: &pz1}
	p2 := Particle{Mass: 1836, Weight: 3, Charge: 1, Px: &px2, Py: &py2, Pz: &pz2}

	origPx1, origPy1, origPz1 := px1, py1, pz1
	origPx2, origPy2, origPz2 := px2, py2, pz2

	u := &fixedUniform{vals: []float64{0.5, 0.5, 0.5}}
	Scatter(c, bc, p1, p2, 10, 0, u)

	if px1 == origPx1 && py1 == origPy1 && pz1 == origPz1 {
		t.Errorf("particle 1 (lighter weight) was not deflected, want always deflected")
	}
	if px2 != origPx2 || py2 != origPy2 || pz2 != origPz2 {
		t.Errorf("particle 2 (heavier weight) was deflected, want never deflected at accept=0.5")
	}
}

func TestScatterFixedCoulombLogUsed(t *testing.T) {
	c := NewConstants(1e15)
	bc := NewBinCoeffs(c, 1.0, 1.0, 1.0, 0.01)

	px1, py1, pz1 := 0.1, 0.0, 0.0
	px2, py2, pz2 := -0.1, 0.0, 0.0
	p1 := Particle{Mass: 1, Weight: 1, Charge: -1, Px: &px1, Py: &py1, Pz: &pz1}
	p2 := Particle{Mass: 1, Weight: 1, Charge: 1, Px: &px2, Py: &py2, Pz: &pz2}

	u := &fixedUniform{vals: []float64{0.5, 0.1, 0.9}}
	res := Scatter(c, bc, p1, p2, 5.0, 0, u)
	if res.LogL != 5.0 {
		t.Errorf("Scatter with fixedLogL=5.0 returned LogL=%v, want 5.0 (manual log must not be overridden)", res.LogL)
	}
}

func TestScatterAutoCoulombLogFloor(t *testing.T) {
	c := NewConstants(1e15)
	bc := NewBinCoeffs(c, 1.0, 1.0, 1.0, 0.01)

	px1, py1, pz1 := 1e-6, 0.0, 0.0
	px2, py2, pz2 := -1e-6, 0.0, 0.0
	p1 := Particle{Mass: 1, Weight: 1, Charge: -1, Px: &px1, Py: &py1, Pz: &pz1}
	p2 := Particle{Mass: 1, Weight: 1, Charge: 1, Px: &px2, Py: &py2, Pz: &pz2}

	u := &fixedUniform{vals: []float64{0.5, 0.1, 0.9}}
	// debyeLengthSquared of 0 makes the screened log 0.5*ln(1) = 0, which
	// is floored to 2 (spec.md §7); the equal and opposite momenta put the
	// COM frame at rest.
	res := Scatter(c, bc, p1, p2, 0, 0, u)
	if res.LogL != 2 {
		t.Errorf("Scatter auto Coulomb log with debyeLengthSquared=0 = %v, want exactly 2 (floored)", res.LogL)
	}
}
