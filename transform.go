package caribou

import "math"

// identityMatrix is the identity affine matrix.
var identityMatrix = [6]float64{1, 0, 0, 1, 0, 0}

// Transform places a BatchOp relative to its enclosing batch.
//
// Composition order:
//
//	Scale -> Rotate around RotateCenter -> Translate
//
// When Clipped is set, drawing is limited to the rectangle (0, 0, Clip.X,
// Clip.Y) in the op's own coordinate space.
type Transform struct {
	Translate    Vec2
	Scale        Vec2
	Rotate       float64 // radians, clockwise on screen
	RotateCenter Vec2
	Clip         Vec2
	Clipped      bool
}

// IdentityTransform returns a transform that leaves coordinates unchanged.
func IdentityTransform() Transform {
	return Transform{Scale: Vec2{1, 1}}
}

// Translation returns a pure translation by v.
func Translation(v Vec2) Transform {
	return Transform{Translate: v, Scale: Vec2{1, 1}}
}

// ClippedTranslation returns a translation by v clipped to size.
func ClippedTranslation(v, size Vec2) Transform {
	return Transform{Translate: v, Scale: Vec2{1, 1}, Clip: size, Clipped: true}
}

// Matrix returns the affine matrix [a, b, c, d, tx, ty] for t.
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func (t Transform) Matrix() [6]float64 {
	m := [6]float64{t.Scale.X, 0, 0, t.Scale.Y, 0, 0}
	if t.Rotate != 0 {
		cx, cy := t.RotateCenter.X, t.RotateCenter.Y
		sin, cos := math.Sincos(t.Rotate)
		rot := [6]float64{cos, sin, -sin, cos, cx - cos*cx + sin*cy, cy - sin*cx - cos*cy}
		m = MultiplyAffine(rot, m)
	}
	m[4] += t.Translate.X
	m[5] += t.Translate.Y
	return m
}

// IsAxisAligned reports whether t has no rotation.
func (t Transform) IsAxisAligned() bool {
	return math.Mod(t.Rotate, 2*math.Pi) == 0
}

// MultiplyAffine multiplies two 2D affine matrices: result = parent * child.
func MultiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// InvertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func InvertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityMatrix
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// ApplyAffine transforms the point p by m.
func ApplyAffine(m [6]float64, p Vec2) Vec2 {
	return Vec2{
		m[0]*p.X + m[2]*p.Y + m[4],
		m[1]*p.X + m[3]*p.Y + m[5],
	}
}
