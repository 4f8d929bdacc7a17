package scene

import (
	"github.com/chewxy/math32"
	"github.com/opengltestdrive/testdrive/f32hack"
	"github.com/opengltestdrive/testdrive/gles"
	"github.com/opengltestdrive/testdrive/render"
	"golang.org/x/mobile/exp/f32"
	"golang.org/x/mobile/gl"
)

const solidPositionCount = 3

// A span is a run of vertices drawn as one primitive in one colour.
type span struct {
	mode  gl.Enum
	first int
	count int
	rgba  [4]float32
}

// A group is a set of spans sharing a model transform.
type group struct {
	// model returns the model matrix for the frame angle.  Nil means
	// identity.
	model     func(angle float32) f32.Mat4
	lineWidth float32
	spans     []span
}

// Solid draws position-only geometry in flat uniform colours through a
// perspective camera.  The perspective, camera orbit and model position
// scenes are all Solid with different data, cameras and model transforms.
type Solid struct {
	name      string
	data      *gles.VertexData
	near, far float32
	view      func(angle float32) f32.Mat4
	groups    []group

	buf      gl.Buffer
	position gl.Attrib
	color    gl.Uniform
	matrix   gl.Uniform
}

func (s *Solid) Name() string { return s.name }

func (s *Solid) Shaders() (string, string) {
	return solidVertexShader, solidFragmentShader
}

func (s *Solid) DepthTest() bool { return true }

func (s *Solid) Setup(ctx gles.Context, program gl.Program) error {
	buf, err := gles.Upload(ctx, gl.ARRAY_BUFFER, s.data.Bytes())
	if err != nil {
		return err
	}
	s.buf = buf
	s.position = ctx.GetAttribLocation(program, "a_Position")
	s.color = ctx.GetUniformLocation(program, "u_Color")
	s.matrix = ctx.GetUniformLocation(program, "u_Matrix")
	return nil
}

func (s *Solid) Projection(width, height int) f32.Mat4 {
	var m f32.Mat4
	f32hack.AspectFrustum(&m, width, height, s.near, s.far)
	return m
}

func (s *Solid) Draw(f *render.Frame) {
	ctx := f.Context
	ctx.BindBuffer(gl.ARRAY_BUFFER, s.buf)
	ctx.EnableVertexAttribArray(s.position)
	ctx.VertexAttribPointer(s.position, solidPositionCount, gl.FLOAT, false, 0, 0)

	view := s.view(f.Angle)
	for _, g := range s.groups {
		var model f32.Mat4
		if g.model != nil {
			model = g.model(f.Angle)
		} else {
			model.Identity()
		}
		f.Upload(s.matrix, &view, &model)
		if g.lineWidth > 0 {
			ctx.LineWidth(g.lineWidth)
		}
		for _, sp := range g.spans {
			ctx.Uniform4f(s.color, sp.rgba[0], sp.rgba[1], sp.rgba[2], sp.rgba[3])
			ctx.DrawArrays(sp.mode, sp.first, sp.count)
		}
	}

	ctx.DisableVertexAttribArray(s.position)
}

func (s *Solid) Release(ctx gles.Context) {
	gles.Release(ctx, s.buf)
	s.buf = gl.Buffer{}
}

func fixedView(eye, center, up f32.Vec3) func(float32) f32.Mat4 {
	var m f32.Mat4
	f32hack.LookAt(&m, &eye, &center, &up)
	return func(float32) f32.Mat4 { return m }
}

var (
	red     = [4]float32{1, 0, 0, 1}
	green   = [4]float32{0, 1, 0, 1}
	blue    = [4]float32{0, 0, 1, 1}
	yellow  = [4]float32{1, 1, 0, 1}
	cyan    = [4]float32{0, 1, 1, 1}
	magenta = [4]float32{1, 0, 1, 1}
	orange  = [4]float32{1, 0.5, 0, 1}
)

// NewPerspective returns two triangles receding along -Z under a plain
// perspective projection with no camera or model transform.
func NewPerspective() *Solid {
	const (
		x1, y1 = -0.5, -0.8
		x2, y2 = 0.5, -0.8
	)
	return &Solid{
		name: "perspective",
		data: gles.NewVertexData(
			x1, y1, -1.0,
			x1, y1, -1.5,
			x1, y1, -2.0,
			x1, y1, -2.5,
			x1, y1, -3.0,
			x1, y1, -3.5,

			x2, y2, -1.0,
			x2, y2, -1.5,
			x2, y2, -2.0,
			x2, y2, -2.5,
			x2, y2, -3.0,
			x2, y2, -3.5,
		),
		near: 1,
		far:  8,
		view: func(float32) (m f32.Mat4) {
			m.Identity()
			return m
		},
		groups: []group{{spans: []span{
			{gl.TRIANGLES, 0, 3, green},
			{gl.TRIANGLES, 3, 3, blue},
		}}},
	}
}

// OrbitRadius is the distance of the orbiting camera from the Y axis.
const OrbitRadius = 4

// NewCameraOrbit returns four triangles around the origin and the three
// axes, seen from a camera that circles the Y axis once per period.
func NewCameraOrbit() *Solid {
	const (
		s = 0.4
		d = 0.9
		l = 3
	)
	return &Solid{
		name: "camera",
		data: gles.NewVertexData(
			-2*s, -s, d,
			2*s, -s, d,
			0, s, d,

			-2*s, -s, -d,
			2*s, -s, -d,
			0, s, -d,

			d, -s, -2*s,
			d, -s, 2*s,
			d, s, 0,

			-d, -s, -2*s,
			-d, -s, 2*s,
			-d, s, 0,

			-l, 0, 0,
			l, 0, 0,

			0, -l, 0,
			0, l, 0,

			0, 0, -l,
			0, 0, l,
		),
		near: 2,
		far:  8,
		view: OrbitView,
		groups: []group{
			{spans: []span{
				{gl.TRIANGLES, 0, 3, green},
				{gl.TRIANGLES, 3, 3, blue},
				{gl.TRIANGLES, 6, 3, red},
				{gl.TRIANGLES, 9, 3, yellow},
			}},
			{lineWidth: 1, spans: []span{
				{gl.LINES, 12, 2, cyan},
				{gl.LINES, 14, 2, magenta},
				{gl.LINES, 16, 2, orange},
			}},
		},
	}
}

// OrbitView returns the camera orbit view for angle degrees: the eye sits
// at height 1 on a circle of OrbitRadius about the Y axis, looking at the
// origin.
func OrbitView(angle float32) f32.Mat4 {
	rad := angle * math32.Pi / 180
	eye := f32.Vec3{math32.Cos(rad) * OrbitRadius, 1, math32.Sin(rad) * OrbitRadius}
	var m f32.Mat4
	f32hack.LookAt(&m, &eye, &f32.Vec3{0, 0, 0}, &f32.Vec3{0, 1, 0})
	return m
}

// NewModelPosition returns the three axes and a triangle that is pushed two
// units along X and then spun about Z once per period.
func NewModelPosition() *Solid {
	return &Solid{
		name: "model",
		data: gles.NewVertexData(
			-1, -0.5, 0.5,
			1, -0.5, 0.5,
			0, 0.5, 0.5,

			-3, 0, 0,
			3, 0, 0,

			0, -3, 0,
			0, 3, 0,

			0, 0, -3,
			0, 0, 3,
		),
		near: 2,
		far:  12,
		view: fixedView(f32.Vec3{2, 2, 3}, f32.Vec3{0, 0, 0}, f32.Vec3{0, 1, 0}),
		groups: []group{
			{lineWidth: 3, spans: []span{
				{gl.LINES, 3, 2, red},
				{gl.LINES, 5, 2, blue},
				{gl.LINES, 7, 2, yellow},
			}},
			{model: SpinModel, spans: []span{
				{gl.TRIANGLES, 0, 3, green},
			}},
		},
	}
}

// SpinModel rotates by angle degrees about Z after translating by (2, 0, 0).
func SpinModel(angle float32) f32.Mat4 {
	var m f32.Mat4
	m.Identity()
	f32hack.RotateDegrees(&m, &m, angle, &f32.Vec3{0, 0, 1})
	f32hack.Translate(&m, &m, 2, 0, 0)
	return m
}
