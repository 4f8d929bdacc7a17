// Package shader compiles GLSL ES shader sources and links them into program
// objects.
//
// Every failure is reported as an error carrying the driver's info log and a
// zero handle; a zero gl.Shader or gl.Program is never usable and callers
// should treat it as "nothing to draw with".  Nothing is retried.
package shader

import (
	"fmt"
	"strings"

	"github.com/opengltestdrive/testdrive/gles"
	"golang.org/x/mobile/gl"
)

// Stage is a programmable pipeline stage.
type Stage int

// Stages understood by GL ES 2.0.
const (
	Vertex Stage = iota
	Fragment
)

// Enum returns the GL shader type for s.
func (s Stage) Enum() gl.Enum {
	switch s {
	case Vertex:
		return gl.VERTEX_SHADER
	case Fragment:
		return gl.FRAGMENT_SHADER
	}
	return 0
}

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Source is shader text tagged with its stage.
type Source struct {
	Stage Stage
	Text  string
}

// Compile creates a shader object of the given stage from src and compiles
// it.  If the compiler rejects the source the object is deleted and a
// *CompileError holding the info log is returned with the zero gl.Shader.
func Compile(ctx gles.Context, stage Stage, src string) (gl.Shader, error) {
	ty := stage.Enum()
	if ty == 0 {
		return gl.Shader{}, &CompileError{Stage: stage, Log: "unknown shader stage"}
	}
	if src == "" {
		return gl.Shader{}, &CompileError{Stage: stage, Log: "empty source"}
	}
	s := ctx.CreateShader(ty)
	if s.Value == 0 {
		return gl.Shader{}, &CompileError{Stage: stage, Log: "could not create shader object"}
	}
	ctx.ShaderSource(s, src)
	ctx.CompileShader(s)
	if ctx.GetShaderi(s, gl.COMPILE_STATUS) == 0 {
		log := ctx.GetShaderInfoLog(s)
		ctx.DeleteShader(s)
		if strings.TrimSpace(log) == "" {
			log = "compilation failed without a diagnostic"
		}
		gles.Logger().Error("shader compile failed", "stage", stage, "log", log)
		return gl.Shader{}, &CompileError{Stage: stage, Log: log}
	}
	gles.Logger().Debug("shader compiled", "stage", stage, "shader", s.Value)
	return s, nil
}

// Link attaches vs and fs to a new program object and links it.  On failure
// the program is deleted and a *LinkError holding the info log is returned
// with the zero gl.Program.
//
// Link never deletes vs or fs; once it succeeds the caller may release them
// or reuse them in further programs.
func Link(ctx gles.Context, vs, fs gl.Shader) (gl.Program, error) {
	if vs.Value == 0 {
		return gl.Program{}, &LinkError{Log: "invalid vertex shader handle"}
	}
	if fs.Value == 0 {
		return gl.Program{}, &LinkError{Log: "invalid fragment shader handle"}
	}
	p := ctx.CreateProgram()
	if p.Value == 0 {
		return gl.Program{}, &LinkError{Log: "could not create program object"}
	}
	ctx.AttachShader(p, vs)
	ctx.AttachShader(p, fs)
	ctx.LinkProgram(p)
	if ctx.GetProgrami(p, gl.LINK_STATUS) == 0 {
		log := ctx.GetProgramInfoLog(p)
		ctx.DeleteProgram(p)
		if strings.TrimSpace(log) == "" {
			log = "link failed without a diagnostic"
		}
		gles.Logger().Error("program link failed", "log", log)
		return gl.Program{}, &LinkError{Log: log}
	}
	gles.Logger().Debug("program linked", "program", p.Value)
	return p, nil
}

// Build compiles vertexSrc and fragmentSrc, links them and releases both
// shader objects whatever the outcome.  The returned program is the only
// GL object the caller owns.
func Build(ctx gles.Context, vertexSrc, fragmentSrc string) (gl.Program, error) {
	vs, err := Compile(ctx, Vertex, vertexSrc)
	if err != nil {
		return gl.Program{}, err
	}
	defer ctx.DeleteShader(vs)

	fs, err := Compile(ctx, Fragment, fragmentSrc)
	if err != nil {
		return gl.Program{}, err
	}
	defer ctx.DeleteShader(fs)

	return Link(ctx, vs, fs)
}

// Validate checks whether p can execute in the current GL state.
func Validate(ctx gles.Context, p gl.Program) error {
	if !Valid(p) {
		return &LinkError{Log: "invalid program handle"}
	}
	ctx.ValidateProgram(p)
	if ctx.GetProgrami(p, gl.VALIDATE_STATUS) == 0 {
		log := ctx.GetProgramInfoLog(p)
		if strings.TrimSpace(log) == "" {
			log = "validation failed without a diagnostic"
		}
		return &LinkError{Log: log, Validate: true}
	}
	return nil
}

// Valid reports whether p is a usable program handle.
func Valid(p gl.Program) bool {
	return p.Value != 0
}
