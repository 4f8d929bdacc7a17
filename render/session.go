// Package render drives a Scene through the surface lifecycle of a GL ES
// host: surface created, surface changed, draw frame, and surface destroyed.
//
// All Session methods must be called from the one goroutine that owns the GL
// context.  A Session holds no locks.
package render

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/opengltestdrive/testdrive/gles"
	"github.com/opengltestdrive/testdrive/shader"
	"golang.org/x/mobile/exp/f32"
	"golang.org/x/mobile/gl"
)

// ErrNoSurface is returned when a lifecycle method needs a context that the
// session does not have.
var ErrNoSurface = errors.New("render: no surface")

// Session owns the GL state needed to draw one Scene.
type Session struct {
	scene  Scene
	clock  Clock
	period time.Duration
	clear  [4]float32
	log    *slog.Logger

	vertexSrc   string
	fragmentSrc string

	ctx     gles.Context
	program gl.Program
	ready   bool
	err     error

	width, height int
	projection    f32.Mat4

	start  time.Time
	frames uint64
	frame  Frame
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the time source used for animation.
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithPeriod sets the duration of one animation turn.
func WithPeriod(d time.Duration) Option {
	return func(s *Session) { s.period = d }
}

// WithClearColor sets the color the surface is cleared to each frame.
func WithClearColor(r, g, b, a float32) Option {
	return func(s *Session) { s.clear = [4]float32{r, g, b, a} }
}

// WithShaders replaces the scene's own shader sources.
func WithShaders(vertex, fragment string) Option {
	return func(s *Session) {
		s.vertexSrc = vertex
		s.fragmentSrc = fragment
	}
}

// WithLogger sets the session logger.  The default is gles.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// NewSession returns a session for scene.  Nothing touches GL until
// OnSurfaceCreated.
func NewSession(scene Scene, opts ...Option) *Session {
	s := &Session{
		scene:  scene,
		clock:  SystemClock{},
		period: DefaultPeriod,
		clear:  [4]float32{0, 0, 0, 1},
	}
	s.vertexSrc, s.fragmentSrc = scene.Shaders()
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = gles.Logger()
	}
	s.log = s.log.With("scene", scene.Name())
	s.start = s.clock.Now()
	s.projection.Identity()
	return s
}

// Scene returns the scene drawn by s.
func (s *Session) Scene() Scene { return s.scene }

// Drawable reports whether OnDrawFrame will issue any GL calls.
func (s *Session) Drawable() bool { return s.ready }

// Err returns the error that made the current surface undrawable, if any.
func (s *Session) Err() error { return s.err }

// Program returns the current program handle, zero when not drawable.
func (s *Session) Program() gl.Program { return s.program }

// Projection returns the projection computed by the last OnSurfaceChanged.
func (s *Session) Projection() f32.Mat4 { return s.projection }

// Frames returns the number of frames drawn on the current surface.
func (s *Session) Frames() uint64 { return s.frames }

// OnSurfaceCreated initializes GL state on ctx: clear color, depth test,
// a freshly built program and the scene's locations and buffers.  The
// program is validated once the scene is set up; a validation failure is
// logged as a warning and does not stop drawing.
//
// Handles from any earlier surface are dropped first.  When ctx is the
// context those handles came from they are deleted as well.  On failure the
// error is logged and returned and the session draws nothing until the next
// successful OnSurfaceCreated.
func (s *Session) OnSurfaceCreated(ctx gles.Context) error {
	if ctx == nil {
		s.fail(ErrNoSurface)
		return ErrNoSurface
	}
	if s.ctx == ctx && s.ready {
		s.release()
	}
	s.ctx = ctx
	s.program = gl.Program{}
	s.ready = false
	s.err = nil
	s.frames = 0

	ctx.ClearColor(s.clear[0], s.clear[1], s.clear[2], s.clear[3])
	if s.scene.DepthTest() {
		ctx.Enable(gl.DEPTH_TEST)
		ctx.DepthFunc(gl.LESS)
	} else {
		ctx.Disable(gl.DEPTH_TEST)
	}

	program, err := shader.Build(ctx, s.vertexSrc, s.fragmentSrc)
	if err != nil {
		err = fmt.Errorf("render: build program: %w", err)
		s.fail(err)
		return err
	}
	ctx.UseProgram(program)
	if err := s.scene.Setup(ctx, program); err != nil {
		ctx.DeleteProgram(program)
		err = fmt.Errorf("render: set up scene: %w", err)
		s.fail(err)
		return err
	}
	if err := shader.Validate(ctx, program); err != nil {
		s.log.Warn("program failed validation", "err", err)
	}
	s.program = program
	s.ready = true
	if s.width > 0 && s.height > 0 {
		s.projection = s.scene.Projection(s.width, s.height)
	}
	s.log.Info("surface created", "program", program.Value)
	return nil
}

// OnSurfaceChanged sets the viewport to the full surface and recomputes the
// projection.  A non-positive size keeps the previous projection, and a
// negative one leaves the viewport alone too.
func (s *Session) OnSurfaceChanged(width, height int) {
	s.width, s.height = width, height
	if s.ctx != nil && width >= 0 && height >= 0 {
		s.ctx.Viewport(0, 0, width, height)
	}
	if width <= 0 || height <= 0 {
		s.log.Debug("ignoring degenerate surface size", "width", width, "height", height)
		return
	}
	s.projection = s.scene.Projection(width, height)
	s.log.Info("surface changed", "width", width, "height", height)
}

// OnDrawFrame clears the surface and draws the scene.  It is a no-op when
// the session is not drawable.
func (s *Session) OnDrawFrame() {
	if !s.ready {
		return
	}
	mask := gl.Enum(gl.COLOR_BUFFER_BIT)
	if s.scene.DepthTest() {
		// the host may have disabled it to draw an overlay
		s.ctx.Enable(gl.DEPTH_TEST)
		mask |= gl.DEPTH_BUFFER_BIT
	}
	s.ctx.Clear(mask)
	s.ctx.UseProgram(s.program)

	elapsed := s.clock.Now().Sub(s.start)
	s.frame = Frame{
		Context:    s.ctx,
		Program:    s.program,
		Projection: s.projection,
		Angle:      Angle(elapsed.Milliseconds(), s.period.Milliseconds()),
		Elapsed:    elapsed,
		Width:      s.width,
		Height:     s.height,
	}
	s.scene.Draw(&s.frame)
	s.frames++
}

// OnSurfaceDestroyed releases the scene's GL objects and the program while
// the context is still current.
func (s *Session) OnSurfaceDestroyed() {
	if s.ctx == nil {
		return
	}
	if s.ready {
		s.release()
	}
	s.log.Info("surface destroyed", "frames", s.frames)
	s.ctx = nil
	s.program = gl.Program{}
	s.ready = false
}

func (s *Session) release() {
	s.scene.Release(s.ctx)
	if s.program.Value != 0 {
		s.ctx.DeleteProgram(s.program)
	}
}

func (s *Session) fail(err error) {
	s.err = err
	s.ready = false
	s.program = gl.Program{}
	s.log.Error("surface not drawable", "err", err)
}
