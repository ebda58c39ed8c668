package scene

import "math"

// Vec2 is a point or direction in world units.
type Vec2 struct {
	X, Y float64
}

// Affine is a 2D affine matrix laid out as
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity is the neutral transform.
var Identity = Affine{A: 1, D: 1}

// Mul returns m·n, the transform applying n first and m second.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms a point.
func (m Affine) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// ScaleFactor is the mean linear scale of the transform.
func (m Affine) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

// Transform is the local placement of a node relative to its parent.
// Rotation is in radians, counter-clockwise positive about the viewing axis.
type Transform struct {
	Position Vec2
	Rotation float64
	Scale    float64 // 0 is treated as 1
}

// Matrix composes translate · rotate · scale.
func (t Transform) Matrix() Affine {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	sin, cos := math.Sincos(t.Rotation)
	return Affine{
		A: cos * s,
		B: sin * s,
		C: -sin * s,
		D: cos * s,
		E: t.Position.X,
		F: t.Position.Y,
	}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Polar returns the point at radius r and angle theta (radians) from the origin.
func Polar(r, theta float64) Vec2 {
	sin, cos := math.Sincos(theta)
	return Vec2{X: r * cos, Y: r * sin}
}
