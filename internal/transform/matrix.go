package transform

import "golang.org/x/image/math/f64"

// Point is a position on the dope sheet: X is time in seconds, Y is value.
type Point struct {
	X, Y float64
}

// Identity returns the identity transform.
func Identity() f64.Aff3 {
	return f64.Aff3{1, 0, 0, 0, 1, 0}
}

// Translate returns a translation by (dx, dy).
func Translate(dx, dy float64) f64.Aff3 {
	return f64.Aff3{1, 0, dx, 0, 1, dy}
}

// Scale returns an axis-aligned scale about the origin.
func Scale(sx, sy float64) f64.Aff3 {
	return f64.Aff3{sx, 0, 0, 0, sy, 0}
}

// Mul returns a·b, the transform applying b first and then a.
func Mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3],
		a[0]*b[1] + a[1]*b[4],
		a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3],
		a[3]*b[1] + a[4]*b[4],
		a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

// Apply maps p through m.
func Apply(m f64.Aff3, p Point) Point {
	return Point{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

// ApplyTime maps a time through the time row of m. Transforms built here
// never mix the axes, so the value is irrelevant.
func ApplyTime(m f64.Aff3, t float64) float64 {
	return m[0]*t + m[2]
}

// ApplyValue maps a value through the value row of m.
func ApplyValue(m f64.Aff3, v float64) float64 {
	return m[4]*v + m[5]
}

