// Package glestest provides a recording fake of gles.Context.
//
// The fake keeps enough object state to act like a GL ES 2.0 driver for the
// calls this module makes: shaders compile through a pluggable Compiler,
// programs link only when both stages compiled and the fragment stage's
// varyings are written by the vertex stage, and every create/delete is
// counted so tests can check for leaks.
package glestest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/opengltestdrive/testdrive/gles"
	"golang.org/x/mobile/gl"
)

var _ gles.Context = (*Context)(nil)

// Call is one recorded GL call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// DrawCall is a recorded DrawArrays or DrawElements.
type DrawCall struct {
	Mode    gl.Enum
	First   int
	Count   int
	Indexed bool
	Type    gl.Enum // index type, DrawElements only
	Program uint32
}

// Compiler decides whether src compiles for the given stage.  It returns an
// empty log on success.
type Compiler func(stage gl.Enum, src string) (log string)

type shaderObj struct {
	stage    gl.Enum
	src      string
	compiled bool
	log      string
	deleted  bool
}

type programObj struct {
	shaders   []uint32
	linked    bool
	validated bool
	log       string
	deleted   bool
	attribs   map[string]uint
	uniforms  map[string]int32
}

// Context is a fake gles.Context.  The zero value is not usable; call New.
type Context struct {
	// Compiler is consulted by CompileShader.  Defaults to BasicCompiler.
	Compiler Compiler

	// FailCreateShader makes CreateShader return the zero handle.
	FailCreateShader bool

	// FailCreateProgram makes CreateProgram return the zero handle.
	FailCreateProgram bool

	// FailValidate makes ValidateProgram report failure with ValidateLog.
	FailValidate bool
	ValidateLog  string

	// Error is returned (once) by the next GetError call.
	Error gl.Enum

	Calls []Call
	Draws []DrawCall

	ViewportRect [4]int
	ClearColor4  [4]float32
	Enabled      map[gl.Enum]bool
	Uniforms     map[int32][]float32
	Current      gl.Program

	next     uint32
	shaders  map[uint32]*shaderObj
	programs map[uint32]*programObj
	buffers  map[uint32]bool
	textures map[uint32]bool
}

// New returns a fake context with a BasicCompiler.
func New() *Context {
	return &Context{
		Compiler: BasicCompiler,
		Enabled:  make(map[gl.Enum]bool),
		Uniforms: make(map[int32][]float32),
		shaders:  make(map[uint32]*shaderObj),
		programs: make(map[uint32]*programObj),
		buffers:  make(map[uint32]bool),
		textures: make(map[uint32]bool),
	}
}

func (c *Context) record(name string, args ...any) {
	c.Calls = append(c.Calls, Call{Name: name, Args: args})
}

func (c *Context) id() uint32 {
	c.next++
	return c.next
}

// Names returns the recorded call names in order.
func (c *Context) Names() []string {
	names := make([]string, len(c.Calls))
	for i, call := range c.Calls {
		names[i] = call.Name
	}
	return names
}

// Count returns how many times name was called.
func (c *Context) Count(name string) int {
	n := 0
	for _, call := range c.Calls {
		if call.Name == name {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls and draws but keeps object state.
func (c *Context) Reset() {
	c.Calls = nil
	c.Draws = nil
}

// LiveShaders returns the number of shader objects not yet deleted.
func (c *Context) LiveShaders() int {
	n := 0
	for _, s := range c.shaders {
		if !s.deleted {
			n++
		}
	}
	return n
}

// LivePrograms returns the number of program objects not yet deleted.
func (c *Context) LivePrograms() int {
	n := 0
	for _, p := range c.programs {
		if !p.deleted {
			n++
		}
	}
	return n
}

// LiveBuffers returns the number of buffer objects not yet deleted.
func (c *Context) LiveBuffers() int {
	n := 0
	for _, live := range c.buffers {
		if live {
			n++
		}
	}
	return n
}

// LiveTextures returns the number of texture objects not yet deleted.
func (c *Context) LiveTextures() int {
	n := 0
	for _, live := range c.textures {
		if live {
			n++
		}
	}
	return n
}

// Linked reports whether p is a live, successfully linked program.
func (c *Context) Linked(p gl.Program) bool {
	obj, ok := c.programs[p.Value]
	return ok && obj.linked && !obj.deleted
}

// UniformName returns the name a uniform location was resolved from.
func (c *Context) UniformName(u gl.Uniform) string {
	for _, p := range c.programs {
		for name, loc := range p.uniforms {
			if loc == u.Value {
				return name
			}
		}
	}
	return ""
}

func (c *Context) ActiveTexture(texture gl.Enum) { c.record("ActiveTexture", texture) }

func (c *Context) AttachShader(p gl.Program, s gl.Shader) {
	c.record("AttachShader", p.Value, s.Value)
	if obj, ok := c.programs[p.Value]; ok {
		obj.shaders = append(obj.shaders, s.Value)
	}
}

func (c *Context) BindBuffer(target gl.Enum, b gl.Buffer) { c.record("BindBuffer", target, b.Value) }

func (c *Context) BindTexture(target gl.Enum, t gl.Texture) {
	c.record("BindTexture", target, t.Value)
}

func (c *Context) BufferData(target gl.Enum, src []byte, usage gl.Enum) {
	c.record("BufferData", target, len(src), usage)
}

func (c *Context) Clear(mask gl.Enum) { c.record("Clear", mask) }

func (c *Context) ClearColor(red, green, blue, alpha float32) {
	c.record("ClearColor", red, green, blue, alpha)
	c.ClearColor4 = [4]float32{red, green, blue, alpha}
}

func (c *Context) CompileShader(s gl.Shader) {
	c.record("CompileShader", s.Value)
	obj, ok := c.shaders[s.Value]
	if !ok {
		return
	}
	compile := c.Compiler
	if compile == nil {
		compile = BasicCompiler
	}
	obj.log = compile(obj.stage, obj.src)
	obj.compiled = obj.log == ""
}

func (c *Context) CreateBuffer() gl.Buffer {
	id := c.id()
	c.buffers[id] = true
	c.record("CreateBuffer", id)
	return gl.Buffer{Value: id}
}

func (c *Context) CreateProgram() gl.Program {
	if c.FailCreateProgram {
		c.record("CreateProgram", uint32(0))
		return gl.Program{}
	}
	id := c.id()
	c.programs[id] = &programObj{
		attribs:  make(map[string]uint),
		uniforms: make(map[string]int32),
	}
	c.record("CreateProgram", id)
	return gl.Program{Init: true, Value: id}
}

func (c *Context) CreateShader(ty gl.Enum) gl.Shader {
	if c.FailCreateShader {
		c.record("CreateShader", ty, uint32(0))
		return gl.Shader{}
	}
	id := c.id()
	c.shaders[id] = &shaderObj{stage: ty}
	c.record("CreateShader", ty, id)
	return gl.Shader{Value: id}
}

func (c *Context) CreateTexture() gl.Texture {
	id := c.id()
	c.textures[id] = true
	c.record("CreateTexture", id)
	return gl.Texture{Value: id}
}

func (c *Context) DeleteBuffer(v gl.Buffer) {
	c.record("DeleteBuffer", v.Value)
	if _, ok := c.buffers[v.Value]; ok {
		c.buffers[v.Value] = false
	}
}

func (c *Context) DeleteProgram(p gl.Program) {
	c.record("DeleteProgram", p.Value)
	if obj, ok := c.programs[p.Value]; ok {
		obj.deleted = true
	}
}

func (c *Context) DeleteShader(s gl.Shader) {
	c.record("DeleteShader", s.Value)
	if obj, ok := c.shaders[s.Value]; ok {
		obj.deleted = true
	}
}

func (c *Context) DeleteTexture(v gl.Texture) {
	c.record("DeleteTexture", v.Value)
	if _, ok := c.textures[v.Value]; ok {
		c.textures[v.Value] = false
	}
}

func (c *Context) DepthFunc(fn gl.Enum) { c.record("DepthFunc", fn) }

func (c *Context) Disable(cap gl.Enum) {
	c.record("Disable", cap)
	c.Enabled[cap] = false
}

func (c *Context) DisableVertexAttribArray(a gl.Attrib) {
	c.record("DisableVertexAttribArray", a.Value)
}

func (c *Context) DrawArrays(mode gl.Enum, first, count int) {
	c.record("DrawArrays", mode, first, count)
	c.Draws = append(c.Draws, DrawCall{Mode: mode, First: first, Count: count, Program: c.Current.Value})
}

func (c *Context) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	c.record("DrawElements", mode, count, ty, offset)
	c.Draws = append(c.Draws, DrawCall{Mode: mode, First: offset, Count: count, Indexed: true, Type: ty, Program: c.Current.Value})
}

func (c *Context) Enable(cap gl.Enum) {
	c.record("Enable", cap)
	c.Enabled[cap] = true
}

func (c *Context) EnableVertexAttribArray(a gl.Attrib) {
	c.record("EnableVertexAttribArray", a.Value)
}

func (c *Context) GetAttribLocation(p gl.Program, name string) gl.Attrib {
	c.record("GetAttribLocation", p.Value, name)
	obj, ok := c.programs[p.Value]
	if !ok {
		return gl.Attrib{}
	}
	loc, ok := obj.attribs[name]
	if !ok {
		loc = uint(len(obj.attribs))
		obj.attribs[name] = loc
	}
	return gl.Attrib{Value: loc}
}

func (c *Context) GetError() gl.Enum {
	c.record("GetError")
	err := c.Error
	c.Error = gl.NO_ERROR
	return err
}

func (c *Context) GetProgrami(p gl.Program, pname gl.Enum) int {
	c.record("GetProgrami", p.Value, pname)
	obj, ok := c.programs[p.Value]
	if !ok {
		return 0
	}
	switch pname {
	case gl.LINK_STATUS:
		return boolInt(obj.linked)
	case gl.VALIDATE_STATUS:
		return boolInt(obj.validated)
	case gl.DELETE_STATUS:
		return boolInt(obj.deleted)
	}
	return 0
}

func (c *Context) GetProgramInfoLog(p gl.Program) string {
	c.record("GetProgramInfoLog", p.Value)
	if obj, ok := c.programs[p.Value]; ok {
		return obj.log
	}
	return ""
}

func (c *Context) GetShaderi(s gl.Shader, pname gl.Enum) int {
	c.record("GetShaderi", s.Value, pname)
	obj, ok := c.shaders[s.Value]
	if !ok {
		return 0
	}
	switch pname {
	case gl.COMPILE_STATUS:
		return boolInt(obj.compiled)
	case gl.SHADER_TYPE:
		return int(obj.stage)
	case gl.DELETE_STATUS:
		return boolInt(obj.deleted)
	}
	return 0
}

func (c *Context) GetShaderInfoLog(s gl.Shader) string {
	c.record("GetShaderInfoLog", s.Value)
	if obj, ok := c.shaders[s.Value]; ok {
		return obj.log
	}
	return ""
}

func (c *Context) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	c.record("GetUniformLocation", p.Value, name)
	obj, ok := c.programs[p.Value]
	if !ok || !obj.linked {
		return gl.Uniform{Value: -1}
	}
	loc, ok := obj.uniforms[name]
	if !ok {
		// unique across programs so stale locations are detectable
		loc = int32(p.Value)*100 + int32(len(obj.uniforms))
		obj.uniforms[name] = loc
	}
	return gl.Uniform{Value: loc}
}

func (c *Context) LineWidth(width float32) { c.record("LineWidth", width) }

func (c *Context) LinkProgram(p gl.Program) {
	c.record("LinkProgram", p.Value)
	obj, ok := c.programs[p.Value]
	if !ok {
		return
	}
	obj.linked = false
	var vs, fs *shaderObj
	for _, id := range obj.shaders {
		s, ok := c.shaders[id]
		if !ok {
			continue
		}
		switch s.stage {
		case gl.VERTEX_SHADER:
			vs = s
		case gl.FRAGMENT_SHADER:
			fs = s
		}
	}
	switch {
	case vs == nil:
		obj.log = "error: missing vertex shader"
	case fs == nil:
		obj.log = "error: missing fragment shader"
	case !vs.compiled || !fs.compiled:
		obj.log = "error: attached shader not compiled"
	default:
		obj.log = checkVaryings(vs.src, fs.src)
	}
	obj.linked = obj.log == ""
}

func (c *Context) PixelStorei(pname gl.Enum, param int32) { c.record("PixelStorei", pname, param) }

func (c *Context) ShaderSource(s gl.Shader, src string) {
	c.record("ShaderSource", s.Value)
	if obj, ok := c.shaders[s.Value]; ok {
		obj.src = src
	}
}

func (c *Context) TexImage2D(target gl.Enum, level int, internalFormat int, width, height int, format gl.Enum, ty gl.Enum, data []byte) {
	c.record("TexImage2D", target, level, width, height, len(data))
}

func (c *Context) TexParameteri(target, pname gl.Enum, param int) {
	c.record("TexParameteri", target, pname, param)
}

func (c *Context) Uniform1i(dst gl.Uniform, v int) {
	c.record("Uniform1i", dst.Value, v)
	c.Uniforms[dst.Value] = []float32{float32(v)}
}

func (c *Context) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32) {
	c.record("Uniform4f", dst.Value, v0, v1, v2, v3)
	c.Uniforms[dst.Value] = []float32{v0, v1, v2, v3}
}

func (c *Context) UniformMatrix4fv(dst gl.Uniform, src []float32) {
	c.record("UniformMatrix4fv", dst.Value)
	c.Uniforms[dst.Value] = append([]float32(nil), src...)
}

func (c *Context) UseProgram(p gl.Program) {
	c.record("UseProgram", p.Value)
	c.Current = p
}

func (c *Context) ValidateProgram(p gl.Program) {
	c.record("ValidateProgram", p.Value)
	if obj, ok := c.programs[p.Value]; ok {
		obj.validated = obj.linked && !obj.deleted && !c.FailValidate
		if c.FailValidate {
			obj.log = c.ValidateLog
		}
	}
}

func (c *Context) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	c.record("VertexAttribPointer", dst.Value, size, ty, normalized, stride, offset)
}

func (c *Context) Viewport(x, y, width, height int) {
	c.record("Viewport", x, y, width, height)
	c.ViewportRect = [4]int{x, y, width, height}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// BasicCompiler accepts any source that declares main and has balanced
// braces and parentheses.
func BasicCompiler(stage gl.Enum, src string) string {
	if strings.TrimSpace(src) == "" {
		return "ERROR: 0:1: empty source"
	}
	if !strings.Contains(src, "void main") {
		return "ERROR: 0:1: 'main' : function not defined"
	}
	if strings.Count(src, "{") != strings.Count(src, "}") {
		return "ERROR: 0:1: '}' : syntax error: unbalanced braces"
	}
	if strings.Count(src, "(") != strings.Count(src, ")") {
		return "ERROR: 0:1: ')' : syntax error: unbalanced parentheses"
	}
	return ""
}

var varyingRE = regexp.MustCompile(`(?m)^\s*varying\s+\w+\s+(\w+)\s*;`)

func varyings(src string) map[string]bool {
	names := make(map[string]bool)
	for _, m := range varyingRE.FindAllStringSubmatch(src, -1) {
		names[m[1]] = true
	}
	return names
}

func checkVaryings(vs, fs string) string {
	out := varyings(vs)
	for name := range varyings(fs) {
		if !out[name] {
			return fmt.Sprintf("error: varying %q read by fragment shader is not written by vertex shader", name)
		}
	}
	return ""
}
