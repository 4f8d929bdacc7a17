package shader

import "fmt"

// CompileError is returned when a shader source is rejected.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader: %s compile: %s", e.Stage, e.Log)
}

// LinkError is returned when a program fails to link or validate.
type LinkError struct {
	Log      string
	Validate bool
}

func (e *LinkError) Error() string {
	if e.Validate {
		return fmt.Sprintf("shader: validate: %s", e.Log)
	}
	return fmt.Sprintf("shader: link: %s", e.Log)
}
