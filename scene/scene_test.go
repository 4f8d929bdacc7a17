package scene

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/opengltestdrive/testdrive/f32hack"
	"github.com/opengltestdrive/testdrive/gles/glestest"
	"github.com/opengltestdrive/testdrive/mobtex"
	"github.com/opengltestdrive/testdrive/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/exp/f32"
	"golang.org/x/mobile/gl"
)

const tol = 1e-4

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func faceLoader(size int) mobtex.Loader {
	return mobtex.LoaderFunc(func(id string) (image.Image, error) {
		m := image.NewRGBA(image.Rect(0, 0, size, size))
		m.Set(0, 0, color.White)
		return m, nil
	})
}

func draw(t *testing.T, sc render.Scene) (*glestest.Context, *render.Session) {
	t.Helper()
	ctx := glestest.New()
	s := render.NewSession(sc, render.WithClock(&fixedClock{now: time.Unix(0, 0)}))
	require.NoError(t, s.OnSurfaceCreated(ctx))
	s.OnSurfaceChanged(800, 400)
	ctx.Reset()
	s.OnDrawFrame()
	return ctx, s
}

func assertVec4(t *testing.T, want, got f32.Vec4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "component %d of %v", i, got)
	}
}

func TestFlat(t *testing.T) {
	ctx, _ := draw(t, NewFlat())
	require.Len(t, ctx.Draws, 1)
	assert.Equal(t, gl.Enum(gl.TRIANGLES), ctx.Draws[0].Mode)
	assert.Equal(t, 3, ctx.Draws[0].Count)

	var strides [][]any
	for _, call := range ctx.Calls {
		if call.Name == "VertexAttribPointer" {
			strides = append(strides, call.Args[1:])
		}
	}
	assert.Equal(t, [][]any{
		{2, gl.Enum(gl.FLOAT), false, 20, 0},
		{3, gl.Enum(gl.FLOAT), false, 20, 8},
	}, strides)
	assert.False(t, ctx.Enabled[gl.DEPTH_TEST])
	assert.Contains(t, ctx.Calls, glestest.Call{Name: "LineWidth", Args: []any{float32(5)}})
}

func TestPerspective(t *testing.T) {
	sc := NewPerspective()
	ctx, s := draw(t, sc)
	require.Len(t, ctx.Draws, 2)
	assert.Equal(t, glestest.DrawCall{Mode: gl.TRIANGLES, First: 3, Count: 3, Program: s.Program().Value}, ctx.Draws[1])
	assert.Equal(t, blue[:], ctx.Uniforms[sc.color.Value])

	// with identity view and model the uploaded matrix is the projection
	p := s.Projection()
	assert.Equal(t, f32hack.Serialize4(nil, &p), ctx.Uniforms[sc.matrix.Value])
}

func TestCameraOrbit(t *testing.T) {
	ctx, _ := draw(t, NewCameraOrbit())
	require.Len(t, ctx.Draws, 7)
	var triangles, lines int
	for _, d := range ctx.Draws {
		switch d.Mode {
		case gl.TRIANGLES:
			triangles++
		case gl.LINES:
			lines++
		}
	}
	assert.Equal(t, 4, triangles)
	assert.Equal(t, 3, lines)
}

func TestOrbitView(t *testing.T) {
	for _, tc := range []struct {
		angle float32
		eye   f32.Vec4
	}{
		{0, f32.Vec4{OrbitRadius, 1, 0, 1}},
		{90, f32.Vec4{0, 1, OrbitRadius, 1}},
		{180, f32.Vec4{-OrbitRadius, 1, 0, 1}},
	} {
		v := OrbitView(tc.angle)
		// the eye maps to the view-space origin
		assertVec4(t, f32.Vec4{0, 0, 0, 1}, f32hack.Apply(&v, tc.eye))
	}
}

func TestModelPosition(t *testing.T) {
	sc := NewModelPosition()
	ctx, _ := draw(t, sc)
	require.Len(t, ctx.Draws, 4)
	assert.Equal(t, gl.Enum(gl.TRIANGLES), ctx.Draws[3].Mode)
	assert.Equal(t, 2, ctx.Count("UniformMatrix4fv"), "axes and triangle each upload a matrix")
	assert.Contains(t, ctx.Calls, glestest.Call{Name: "LineWidth", Args: []any{float32(3)}})
	assert.Equal(t, green[:], ctx.Uniforms[sc.color.Value])
}

func TestSpinModel(t *testing.T) {
	origin := f32.Vec4{0, 0, 0, 1}
	m := SpinModel(0)
	assertVec4(t, f32.Vec4{2, 0, 0, 1}, f32hack.Apply(&m, origin))
	m = SpinModel(90)
	assertVec4(t, f32.Vec4{0, 2, 0, 1}, f32hack.Apply(&m, origin))
	m = SpinModel(180)
	assertVec4(t, f32.Vec4{-2, 0, 0, 1}, f32hack.Apply(&m, origin))
}

func TestTextureCube(t *testing.T) {
	sc := NewTextureCube(faceLoader(2), DefaultCubeFaces)
	ctx, _ := draw(t, sc)
	require.Len(t, ctx.Draws, 1)
	assert.Equal(t, glestest.DrawCall{Mode: gl.TRIANGLES, Count: 36, Indexed: true, Type: gl.UNSIGNED_BYTE, Program: ctx.Current.Value}, ctx.Draws[0])
	// gl.Context argument order: mode, count, type, offset
	assert.Contains(t, ctx.Calls, glestest.Call{
		Name: "DrawElements",
		Args: []any{gl.Enum(gl.TRIANGLES), 36, gl.Enum(gl.UNSIGNED_BYTE), 0},
	})
	assert.Contains(t, ctx.Calls, glestest.Call{Name: "BindTexture", Args: []any{gl.Enum(gl.TEXTURE_CUBE_MAP), sc.texture.Value}})
	assert.Equal(t, []float32{0}, ctx.Uniforms[sc.unit.Value])
}

func TestTextureCubeMissingFaces(t *testing.T) {
	fail := mobtex.LoaderFunc(func(id string) (image.Image, error) {
		return nil, errors.New("decode failed")
	})
	ctx := glestest.New()
	s := render.NewSession(NewTextureCube(fail, DefaultCubeFaces))
	err := s.OnSurfaceCreated(ctx)

	var rerr *mobtex.ResourceError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "box0.png", rerr.ID)
	assert.False(t, s.Drawable())
	assert.Zero(t, ctx.LiveBuffers())
	assert.Zero(t, ctx.LivePrograms())

	ctx.Reset()
	s.OnDrawFrame()
	assert.Empty(t, ctx.Draws)
}

func TestSceneRecreateReleases(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			sc, err := New(name, Deps{Loader: faceLoader(1)})
			require.NoError(t, err)
			ctx := glestest.New()
			s := render.NewSession(sc)
			require.NoError(t, s.OnSurfaceCreated(ctx))
			buffers, textures := ctx.LiveBuffers(), ctx.LiveTextures()
			require.NoError(t, s.OnSurfaceCreated(ctx))
			assert.Equal(t, buffers, ctx.LiveBuffers())
			assert.Equal(t, textures, ctx.LiveTextures())
			assert.Equal(t, 1, ctx.LivePrograms())

			s.OnSurfaceDestroyed()
			assert.Zero(t, ctx.LiveBuffers())
			assert.Zero(t, ctx.LiveTextures())
			assert.Zero(t, ctx.LivePrograms())
		})
	}
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"camera", "flat", "model", "perspective", "texture"}, Names())

	_, err := New("wireframe", Deps{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wireframe")

	sc, err := New("texture", Deps{CubeFaces: [6]string{"a", "b", "c", "d", "e", "f"}})
	require.NoError(t, err)
	assert.Equal(t, "a", sc.(*TextureCube).faces[0])

	sc, err = New("texture", Deps{})
	require.NoError(t, err)
	assert.Equal(t, DefaultCubeFaces, sc.(*TextureCube).faces)
	assert.IsType(t, mobtex.AssetLoader{}, sc.(*TextureCube).loader)
}

func TestNext(t *testing.T) {
	name := "flat"
	seen := map[string]bool{}
	for i := 0; i < len(order); i++ {
		seen[name] = true
		name = Next(name)
	}
	assert.Equal(t, "flat", name)
	assert.Len(t, seen, len(Names()))
	assert.Equal(t, "flat", Next("unknown"))
}
