// Package f32hack fills in the 4x4 matrix operations that
// golang.org/x/mobile/exp/f32 lacks or gets transposed.
//
// Matrices are f32.Mat4 values indexed m[row][col], the natural reading of
// the type.  Serialize4 converts to the column-major layout that
// UniformMatrix4fv expects.  All transforms follow the column-vector
// convention: a point p is transformed as M × p, so in
// projection × view × model the model transform applies first.
package f32hack

import (
	"github.com/chewxy/math32"
	"golang.org/x/mobile/exp/f32"
)

// Frustum sets m to a perspective projection for the given clip planes, the
// same matrix glFrustum produces.
func Frustum(m *f32.Mat4, left, right, bottom, top, near, far float32) {
	w := right - left
	h := top - bottom
	d := far - near
	*m = f32.Mat4{
		{2 * near / w, 0, (right + left) / w, 0},
		{0, 2 * near / h, (top + bottom) / h, 0},
		{0, 0, -(far + near) / d, -2 * far * near / d},
		{0, 0, -1, 0},
	}
}

// Extent is the near-plane rectangle of a frustum.
type Extent struct {
	Left, Right, Bottom, Top float32
}

// Width returns the horizontal extent.
func (e Extent) Width() float32 { return e.Right - e.Left }

// Height returns the vertical extent.
func (e Extent) Height() float32 { return e.Top - e.Bottom }

// AspectExtent returns the unit near-plane rectangle stretched along the
// longer surface axis by the surface aspect ratio, so a unit square stays
// square on screen.  A degenerate size yields the unit rectangle.
func AspectExtent(width, height int) Extent {
	e := Extent{-1, 1, -1, 1}
	if width <= 0 || height <= 0 {
		return e
	}
	if width > height {
		ratio := float32(width) / float32(height)
		e.Left *= ratio
		e.Right *= ratio
	} else {
		ratio := float32(height) / float32(width)
		e.Bottom *= ratio
		e.Top *= ratio
	}
	return e
}

// AspectFrustum sets m to a frustum over AspectExtent(width, height).
func AspectFrustum(m *f32.Mat4, width, height int, near, far float32) {
	e := AspectExtent(width, height)
	Frustum(m, e.Left, e.Right, e.Bottom, e.Top, near, far)
}

// LookAt is like f32.LookAt but the resulting matrix is transposed to be in
// the proper form: m × p maps world coordinates into eye coordinates.
func LookAt(m *f32.Mat4, eye, center, up *f32.Vec3) {
	m.LookAt(eye, center, up)
	Transpose4(m)
}

// RotateDegrees sets m to src × R, where R rotates by deg degrees
// counter-clockwise about axis.
//
// R comes from (*f32.Mat4).Rotate, which yields the transpose and derives
// two of the x-axis terms from a[0]*a[1].  Both are corrected here.
func RotateDegrees(m, src *f32.Mat4, deg float32, axis *f32.Vec3) {
	a := *axis
	a.Normalize()
	rad := deg * math32.Pi / 180
	var r f32.Mat4
	r.Identity()
	r.Rotate(&r, f32.Radian(rad), &a)
	Transpose4(&r)

	c, s := f32.Cos(rad), f32.Sin(rad)
	r[0][0] = c + (1-c)*a[0]*a[0]
	r[2][0] = (1-c)*a[0]*a[2] - s*a[1]
	m.Mul(src, &r)
}

// Translate sets m to src × T, where T translates by (x, y, z).
func Translate(m, src *f32.Mat4, x, y, z float32) {
	m.Translate(src, x, y, z)
}

// Compose sets dst to projection × view × model.  dst may alias any input.
func Compose(dst, projection, view, model *f32.Mat4) {
	var pv f32.Mat4
	pv.Mul(projection, view)
	dst.Mul(&pv, model)
}

// Apply returns m × v.
func Apply(m *f32.Mat4, v f32.Vec4) f32.Vec4 {
	var out f32.Vec4
	for i := 0; i < 4; i++ {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2] + m[i][3]*v[3]
	}
	return out
}

// Transpose4 transposes m in place.
func Transpose4(m *f32.Mat4) {
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			m[i][j], m[j][i] = m[j][i], m[i][j]
		}
	}
}

// Serialize4 returns m in column-major order.  If len(dst) is at least 16 the
// result is written into dst and a slice of it returned.
func Serialize4(dst []float32, m *f32.Mat4) []float32 {
	if len(dst) < 16 {
		dst = make([]float32, 16)
	}
	dst = dst[:16]
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			dst[col*4+row] = m[row][col]
		}
	}
	return dst
}
