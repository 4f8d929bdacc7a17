package render

import (
	"time"

	"github.com/opengltestdrive/testdrive/f32hack"
	"github.com/opengltestdrive/testdrive/gles"
	"golang.org/x/mobile/exp/f32"
	"golang.org/x/mobile/gl"
)

// Frame is the per-frame state handed to Scene.Draw.
type Frame struct {
	Context    gles.Context
	Program    gl.Program
	Projection f32.Mat4

	// Angle is the animation angle in degrees, in [0, 360).
	Angle   float32
	Elapsed time.Duration

	Width, Height int

	composed f32.Mat4
	mvp      [16]float32
}

// Upload composes projection × view × model and uploads it to dst.
func (f *Frame) Upload(dst gl.Uniform, view, model *f32.Mat4) {
	f32hack.Compose(&f.composed, &f.Projection, view, model)
	f.Context.UniformMatrix4fv(dst, f32hack.Serialize4(f.mvp[:], &f.composed))
}

// Composed returns the matrix most recently uploaded by Upload.
func (f *Frame) Composed() f32.Mat4 {
	return f.composed
}
