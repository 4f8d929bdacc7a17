/*
Package gles holds the pieces of OpenGL ES 2.0 plumbing shared by the shader
builder, the render session and the demo scenes.

Context is the subset of golang.org/x/mobile/gl.Context that the rest of the
module calls.  Any gl.Context satisfies it, so the gomobile draw context can
be passed straight through:

	glctx, _ := e.DrawContext.(gl.Context)
	session.OnSurfaceCreated(glctx)

Tests substitute the recording fake from package glestest.
*/
package gles

import "golang.org/x/mobile/gl"

// Context is the GL ES 2.0 surface used by this module.  Method signatures
// match gl.Context exactly.
type Context interface {
	ActiveTexture(texture gl.Enum)
	AttachShader(p gl.Program, s gl.Shader)
	BindBuffer(target gl.Enum, b gl.Buffer)
	BindTexture(target gl.Enum, t gl.Texture)
	BufferData(target gl.Enum, src []byte, usage gl.Enum)
	Clear(mask gl.Enum)
	ClearColor(red, green, blue, alpha float32)
	CompileShader(s gl.Shader)
	CreateBuffer() gl.Buffer
	CreateProgram() gl.Program
	CreateShader(ty gl.Enum) gl.Shader
	CreateTexture() gl.Texture
	DeleteBuffer(v gl.Buffer)
	DeleteProgram(p gl.Program)
	DeleteShader(s gl.Shader)
	DeleteTexture(v gl.Texture)
	DepthFunc(fn gl.Enum)
	Disable(cap gl.Enum)
	DisableVertexAttribArray(a gl.Attrib)
	DrawArrays(mode gl.Enum, first, count int)
	DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int)
	Enable(cap gl.Enum)
	EnableVertexAttribArray(a gl.Attrib)
	GetAttribLocation(p gl.Program, name string) gl.Attrib
	GetError() gl.Enum
	GetProgrami(p gl.Program, pname gl.Enum) int
	GetProgramInfoLog(p gl.Program) string
	GetShaderi(s gl.Shader, pname gl.Enum) int
	GetShaderInfoLog(s gl.Shader) string
	GetUniformLocation(p gl.Program, name string) gl.Uniform
	LineWidth(width float32)
	LinkProgram(p gl.Program)
	PixelStorei(pname gl.Enum, param int32)
	ShaderSource(s gl.Shader, src string)
	TexImage2D(target gl.Enum, level int, internalFormat int, width, height int, format gl.Enum, ty gl.Enum, data []byte)
	TexParameteri(target, pname gl.Enum, param int)
	Uniform1i(dst gl.Uniform, v int)
	Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32)
	UniformMatrix4fv(dst gl.Uniform, src []float32)
	UseProgram(p gl.Program)
	ValidateProgram(p gl.Program)
	VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int)
	Viewport(x, y, width, height int)
}

var _ Context = gl.Context(nil)
