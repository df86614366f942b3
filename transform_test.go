package wisp

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Affine) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestMatrixNeutralIsIdentity(t *testing.T) {
	assertMatrix(t, "neutral", Neutral.Matrix(30, 40), Identity)
}

func TestMatrixTranslation(t *testing.T) {
	tr := Transform{X: 10, Y: 20, Scale: 1, Opacity: 1}
	assertMatrix(t, "translation", tr.Matrix(5, 5), Affine{1, 0, 0, 1, 10, 20})
}

func TestMatrixScaleAroundPivot(t *testing.T) {
	tr := Transform{Scale: 2, Opacity: 1}
	m := tr.Matrix(10, 10)
	// The pivot stays put.
	x, y := m.Apply(10, 10)
	assertNear(t, "pivot x", x, 10)
	assertNear(t, "pivot y", y, 10)
	x, y = m.Apply(20, 10)
	assertNear(t, "edge x", x, 30)
	assertNear(t, "edge y", y, 10)
}

func TestMatrixRotation90(t *testing.T) {
	tr := Transform{Rotation: 90, Scale: 1, Opacity: 1}
	m := tr.Matrix(0, 0)
	// cos(90)=0, sin(90)=1 -> a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", m, Affine{0, 1, -1, 0, 0, 0})

	// Clockwise on screen: +x maps to +y.
	x, y := m.Apply(1, 0)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 1)
}

func TestMulIdentity(t *testing.T) {
	m := Affine{2, 0.5, -0.5, 2, 10, 20}
	assertMatrix(t, "I*m", Identity.Mul(m), m)
	assertMatrix(t, "m*I", m.Mul(Identity), m)
}

func TestMulAppliesChildFirst(t *testing.T) {
	parent := Transform{X: 100, Scale: 1, Opacity: 1}.Matrix(0, 0)
	child := Transform{Scale: 2, Opacity: 1}.Matrix(0, 0)
	x, y := parent.Mul(child).Apply(5, 5)
	assertNear(t, "x", x, 110)
	assertNear(t, "y", y, 10)
}

func TestInvertRoundTrip(t *testing.T) {
	tr := Transform{X: 7, Y: -3, Rotation: 33, Scale: 1.7, Opacity: 1}
	m := tr.Matrix(12, 8)
	inv := m.Invert()
	assertMatrix(t, "m*inv", m.Mul(inv), Identity)

	x, y := m.Apply(4, 9)
	bx, by := inv.Apply(x, y)
	assertNear(t, "x", bx, 4)
	assertNear(t, "y", by, 9)
}

func TestInvertSingular(t *testing.T) {
	tr := Transform{Scale: 0, Opacity: 1}
	assertMatrix(t, "singular", tr.Matrix(3, 3).Invert(), Identity)
}
