package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/opengltestdrive/testdrive/gles/glestest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/gl"
)

const vertexColorVS = `attribute vec4 a_Position;
attribute vec4 a_Color;
varying vec4 v_Color;

void main() {
	gl_Position = a_Position;
	v_Color = a_Color;
}`

const vertexColorFS = `precision mediump float;
varying vec4 v_Color;

void main() {
	gl_FragColor = v_Color;
}`

func TestStage(t *testing.T) {
	assert.Equal(t, gl.Enum(gl.VERTEX_SHADER), Vertex.Enum())
	assert.Equal(t, gl.Enum(gl.FRAGMENT_SHADER), Fragment.Enum())
	assert.Equal(t, "vertex", Vertex.String())
	assert.Equal(t, "fragment", Fragment.String())
	assert.Equal(t, gl.Enum(0), Stage(7).Enum())
	assert.Equal(t, "Stage(7)", Stage(7).String())
}

func TestCompile(t *testing.T) {
	ctx := glestest.New()
	s, err := Compile(ctx, Vertex, vertexColorVS)
	require.NoError(t, err)
	assert.NotZero(t, s.Value)
	assert.Equal(t, 1, ctx.LiveShaders())
	assert.Equal(t, []string{"CreateShader", "ShaderSource", "CompileShader", "GetShaderi"}, ctx.Names())
}

func TestCompileMalformed(t *testing.T) {
	ctx := glestest.New()
	s, err := Compile(ctx, Fragment, "precision mediump float;\nvoid main() {\n")
	require.Error(t, err)
	assert.Zero(t, s.Value)

	var cerr *CompileError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, Fragment, cerr.Stage)
	assert.NotEmpty(t, cerr.Log)
	assert.Contains(t, err.Error(), "fragment compile")
	assert.Equal(t, 0, ctx.LiveShaders(), "rejected shader must be deleted")
	assert.Equal(t, 1, ctx.Count("GetShaderInfoLog"))
}

func TestCompileEmptySource(t *testing.T) {
	ctx := glestest.New()
	_, err := Compile(ctx, Vertex, "")
	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Empty(t, ctx.Calls, "no GL object for an empty source")
}

func TestCompileNoShaderObject(t *testing.T) {
	ctx := glestest.New()
	ctx.FailCreateShader = true
	s, err := Compile(ctx, Vertex, vertexColorVS)
	require.Error(t, err)
	assert.Zero(t, s.Value)
	assert.Contains(t, err.Error(), "could not create")
}

func TestCompileEmptyDiagnostic(t *testing.T) {
	ctx := glestest.New()
	ctx.Compiler = func(gl.Enum, string) string { return "" }
	_, err := Compile(ctx, Vertex, vertexColorVS)
	require.NoError(t, err)

	// a driver that reports failure but leaves the log empty
	ctx.Compiler = func(gl.Enum, string) string { return " " }
	_, err = Compile(ctx, Vertex, vertexColorVS)
	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.NotEmpty(t, strings.TrimSpace(cerr.Log))
}

func TestLink(t *testing.T) {
	ctx := glestest.New()
	vs, err := Compile(ctx, Vertex, vertexColorVS)
	require.NoError(t, err)
	fs, err := Compile(ctx, Fragment, vertexColorFS)
	require.NoError(t, err)

	p, err := Link(ctx, vs, fs)
	require.NoError(t, err)
	assert.True(t, Valid(p))
	assert.True(t, ctx.Linked(p))
	assert.Equal(t, 2, ctx.LiveShaders(), "link must leave shader release to the caller")
	assert.Equal(t, 2, ctx.Count("AttachShader"))
}

func TestLinkVaryingMismatch(t *testing.T) {
	ctx := glestest.New()
	vs, err := Compile(ctx, Vertex, "void main() { gl_Position = vec4(0); }")
	require.NoError(t, err)
	fs, err := Compile(ctx, Fragment, vertexColorFS)
	require.NoError(t, err)

	p, err := Link(ctx, vs, fs)
	assert.False(t, Valid(p))
	var lerr *LinkError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Log, "v_Color")
	assert.Equal(t, 0, ctx.LivePrograms(), "rejected program must be deleted")
	assert.Equal(t, 2, ctx.LiveShaders())
}

func TestLinkInvalidHandles(t *testing.T) {
	ctx := glestest.New()
	fs, err := Compile(ctx, Fragment, vertexColorFS)
	require.NoError(t, err)

	_, err = Link(ctx, gl.Shader{}, fs)
	var lerr *LinkError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Log, "vertex")

	_, err = Link(ctx, fs, gl.Shader{})
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Log, "fragment")
	assert.Zero(t, ctx.Count("CreateProgram"))
}

func TestLinkSameStageTwice(t *testing.T) {
	ctx := glestest.New()
	vs1, err := Compile(ctx, Vertex, vertexColorVS)
	require.NoError(t, err)
	vs2, err := Compile(ctx, Vertex, vertexColorVS)
	require.NoError(t, err)

	_, err = Link(ctx, vs1, vs2)
	var lerr *LinkError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Log, "missing fragment")
}

func TestBuild(t *testing.T) {
	ctx := glestest.New()
	p, err := Build(ctx, vertexColorVS, vertexColorFS)
	require.NoError(t, err)
	assert.True(t, ctx.Linked(p))
	assert.Equal(t, 0, ctx.LiveShaders(), "Build releases its intermediate shaders")
	assert.Equal(t, 1, ctx.LivePrograms())
}

func TestBuildMalformed(t *testing.T) {
	tests := []struct {
		name   string
		vs, fs string
		stage  Stage
	}{
		{"vertex", "attribute vec4 p; void main() { gl_Position = p;", vertexColorFS, Vertex},
		{"fragment", vertexColorVS, "precision mediump float; void main) {}", Fragment},
		{"no main", vertexColorVS, "precision mediump float;", Fragment},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctx := glestest.New()
			p, err := Build(ctx, test.vs, test.fs)
			assert.False(t, Valid(p))
			var cerr *CompileError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, test.stage, cerr.Stage)
			assert.NotEmpty(t, cerr.Log)
			assert.Zero(t, ctx.LiveShaders())
			assert.Zero(t, ctx.LivePrograms())
		})
	}
}

func TestBuildLinkFailureReleasesShaders(t *testing.T) {
	ctx := glestest.New()
	_, err := Build(ctx, "void main() { gl_Position = vec4(0); }", vertexColorFS)
	var lerr *LinkError
	require.ErrorAs(t, err, &lerr)
	assert.Zero(t, ctx.LiveShaders())
	assert.Zero(t, ctx.LivePrograms())
}

func TestValidate(t *testing.T) {
	ctx := glestest.New()
	p, err := Build(ctx, vertexColorVS, vertexColorFS)
	require.NoError(t, err)
	require.NoError(t, Validate(ctx, p))

	err = Validate(ctx, gl.Program{})
	var lerr *LinkError
	require.ErrorAs(t, err, &lerr)

	ctx.DeleteProgram(p)
	err = Validate(ctx, p)
	require.ErrorAs(t, err, &lerr)
	assert.True(t, lerr.Validate)
	assert.Contains(t, err.Error(), "validate")
}

func TestReadSource(t *testing.T) {
	src, err := ReadSource(strings.NewReader("void main() {\r\n\tgl_FragColor = vec4(1);\r\n}"))
	require.NoError(t, err)
	assert.Equal(t, "void main() {\n\tgl_FragColor = vec4(1);\n}\n", src)
}
