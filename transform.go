package wisp

import "math"

// Affine is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// Identity is the identity matrix.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Matrix returns the matrix that paints t around the pivot (px, py).
// Composition order:
//
//	Translate(-pivot) -> Scale -> Rotate -> Translate(pivot + offset)
//
// Rotation is in degrees, clockwise on screen since Y points down.
func (t Transform) Matrix(px, py float64) Affine {
	s := t.Scale
	sin, cos := math.Sincos(t.Rotation * math.Pi / 180)

	// After Scale * Translate(-pivot): a=s, d=s, tx=-px*s, ty=-py*s
	preTx := -px * s
	preTy := -py * s

	// After Rotate:
	return Affine{
		cos * s,
		sin * s,
		-sin * s,
		cos * s,
		cos*preTx - sin*preTy + px + t.X,
		sin*preTx + cos*preTy + py + t.Y,
	}
}

// Mul returns p * c, applying c first.
func (p Affine) Mul(c Affine) Affine {
	return Affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Invert returns the inverse matrix, or Identity if m is singular.
func (m Affine) Invert() Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms a point.
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
