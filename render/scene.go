package render

import (
	"github.com/opengltestdrive/testdrive/gles"
	"golang.org/x/mobile/exp/f32"
	"golang.org/x/mobile/gl"
)

// A Scene is the content one Session draws: its shader sources, the GL
// objects it uploads and what it draws each frame.
//
// Setup is called on every surface creation with a freshly linked program.
// Any locations or buffers from a previous call are stale by then and must
// be replaced.  If Setup fails it must release whatever it created.
type Scene interface {
	Name() string
	Shaders() (vertex, fragment string)
	DepthTest() bool
	Setup(ctx gles.Context, program gl.Program) error
	Projection(width, height int) f32.Mat4
	Draw(f *Frame)
	Release(ctx gles.Context)
}
