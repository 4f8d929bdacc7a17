package scene

import (
	"github.com/opengltestdrive/testdrive/gles"
	"github.com/opengltestdrive/testdrive/render"
	"golang.org/x/mobile/exp/f32"
	"golang.org/x/mobile/gl"
)

const (
	flatPositionCount = 2
	flatColorCount    = 3
	flatStride        = (flatPositionCount + flatColorCount) * gles.SizeofFloat
	flatLineWidth     = 5
)

// Flat draws one triangle in clip space with per-vertex colours
// interpolated across it.  Positions and colours are interleaved in one
// buffer.
type Flat struct {
	data *gles.VertexData

	buf      gl.Buffer
	position gl.Attrib
	color    gl.Attrib
}

// NewFlat returns the flat-shaded triangle scene.
func NewFlat() *Flat {
	return &Flat{
		data: gles.NewVertexData(
			-0.5, -0.2, 1.0, 0.0, 0.0,
			0.0, 0.2, 0.0, 1.0, 0.0,
			0.5, -0.2, 0.0, 0.0, 1.0,
		),
	}
}

func (s *Flat) Name() string { return "flat" }

func (s *Flat) Shaders() (string, string) {
	return vertexColorVertexShader, vertexColorFragmentShader
}

func (s *Flat) DepthTest() bool { return false }

func (s *Flat) Setup(ctx gles.Context, program gl.Program) error {
	buf, err := gles.Upload(ctx, gl.ARRAY_BUFFER, s.data.Bytes())
	if err != nil {
		return err
	}
	s.buf = buf
	s.position = ctx.GetAttribLocation(program, "a_Position")
	s.color = ctx.GetAttribLocation(program, "a_Color")
	return nil
}

// Projection is the identity: the triangle is already in clip space.
func (s *Flat) Projection(width, height int) f32.Mat4 {
	var m f32.Mat4
	m.Identity()
	return m
}

func (s *Flat) Draw(f *render.Frame) {
	ctx := f.Context
	ctx.BindBuffer(gl.ARRAY_BUFFER, s.buf)
	ctx.EnableVertexAttribArray(s.position)
	ctx.VertexAttribPointer(s.position, flatPositionCount, gl.FLOAT, false, flatStride, 0)
	ctx.EnableVertexAttribArray(s.color)
	ctx.VertexAttribPointer(s.color, flatColorCount, gl.FLOAT, false, flatStride, flatPositionCount*gles.SizeofFloat)

	ctx.LineWidth(flatLineWidth)
	ctx.DrawArrays(gl.TRIANGLES, 0, s.data.Vertices(flatPositionCount+flatColorCount))

	ctx.DisableVertexAttribArray(s.position)
	ctx.DisableVertexAttribArray(s.color)
}

func (s *Flat) Release(ctx gles.Context) {
	gles.Release(ctx, s.buf)
	s.buf = gl.Buffer{}
}
