package scene

import (
	"github.com/opengltestdrive/testdrive/f32hack"
	"github.com/opengltestdrive/testdrive/gles"
	"github.com/opengltestdrive/testdrive/mobtex"
	"github.com/opengltestdrive/testdrive/render"
	"golang.org/x/mobile/exp/f32"
	"golang.org/x/mobile/gl"
)

// DefaultCubeFaces are the face bitmaps of the textured box, ordered -X, +X,
// -Y, +Y, -Z, +Z.
var DefaultCubeFaces = [6]string{"box0.png", "box1.png", "box2.png", "box3.png", "box4.png", "box5.png"}

// TextureCube draws a unit cube textured with a cube map, spinning about Y
// once per period.  The cube is indexed: 8 vertices, 36 byte indices.
type TextureCube struct {
	loader mobtex.Loader
	faces  [6]string
	view   f32.Mat4

	vertices *gles.VertexData
	indices  *gles.IndexData

	vbuf     gl.Buffer
	ibuf     gl.Buffer
	texture  gl.Texture
	position gl.Attrib
	unit     gl.Uniform
	matrix   gl.Uniform
}

// NewTextureCube returns the cube-map scene reading its faces through l.
func NewTextureCube(l mobtex.Loader, faces [6]string) *TextureCube {
	s := &TextureCube{
		loader: l,
		faces:  faces,
		vertices: gles.NewVertexData(
			// near face: top left, top right, bottom left, bottom right
			-1, 1, 1,
			1, 1, 1,
			-1, -1, 1,
			1, -1, 1,
			// far face, same order
			-1, 1, -1,
			1, 1, -1,
			-1, -1, -1,
			1, -1, -1,
		),
		indices: gles.NewIndexData(
			// near
			1, 3, 0,
			0, 3, 2,
			// far
			4, 6, 5,
			5, 6, 7,
			// left
			0, 2, 4,
			4, 2, 6,
			// right
			5, 7, 1,
			1, 7, 3,
			// top
			5, 1, 4,
			4, 1, 0,
			// bottom
			6, 2, 7,
			7, 2, 3,
		),
	}
	f32hack.LookAt(&s.view, &f32.Vec3{0, 2, 4}, &f32.Vec3{0, 0, 0}, &f32.Vec3{0, 1, 0})
	return s
}

func (s *TextureCube) Name() string { return "texture" }

func (s *TextureCube) Shaders() (string, string) {
	return cubeVertexShader, cubeFragmentShader
}

func (s *TextureCube) DepthTest() bool { return true }

// Setup uploads the cube geometry and loads the cube map.  A texture that
// fails to load fails the whole setup; nothing is drawn without it.
func (s *TextureCube) Setup(ctx gles.Context, program gl.Program) error {
	vbuf, err := gles.Upload(ctx, gl.ARRAY_BUFFER, s.vertices.Bytes())
	if err != nil {
		return err
	}
	ibuf, err := gles.Upload(ctx, gl.ELEMENT_ARRAY_BUFFER, s.indices.Bytes())
	if err != nil {
		gles.Release(ctx, vbuf)
		return err
	}
	texture, err := mobtex.LoadCube(ctx, s.loader, s.faces)
	if err != nil {
		gles.Release(ctx, vbuf, ibuf)
		return err
	}
	s.vbuf, s.ibuf, s.texture = vbuf, ibuf, texture

	s.position = ctx.GetAttribLocation(program, "a_Position")
	s.unit = ctx.GetUniformLocation(program, "u_TextureUnit")
	s.matrix = ctx.GetUniformLocation(program, "u_Matrix")
	return nil
}

func (s *TextureCube) Projection(width, height int) f32.Mat4 {
	var m f32.Mat4
	f32hack.AspectFrustum(&m, width, height, 2, 12)
	return m
}

func (s *TextureCube) Draw(f *render.Frame) {
	ctx := f.Context

	var model f32.Mat4
	model.Identity()
	f32hack.RotateDegrees(&model, &model, f.Angle, &f32.Vec3{0, 1, 0})
	f.Upload(s.matrix, &s.view, &model)

	ctx.ActiveTexture(gl.TEXTURE0)
	ctx.BindTexture(gl.TEXTURE_CUBE_MAP, s.texture)
	ctx.Uniform1i(s.unit, 0)

	ctx.BindBuffer(gl.ARRAY_BUFFER, s.vbuf)
	ctx.EnableVertexAttribArray(s.position)
	ctx.VertexAttribPointer(s.position, 3, gl.FLOAT, false, 0, 0)
	ctx.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.ibuf)

	ctx.DrawElements(gl.TRIANGLES, s.indices.Len(), gl.UNSIGNED_BYTE, 0)

	ctx.DisableVertexAttribArray(s.position)
}

func (s *TextureCube) Release(ctx gles.Context) {
	gles.Release(ctx, s.vbuf, s.ibuf)
	if s.texture.Value != 0 {
		ctx.DeleteTexture(s.texture)
	}
	s.vbuf, s.ibuf, s.texture = gl.Buffer{}, gl.Buffer{}, gl.Texture{}
}
