package main

import (
	"log/slog"

	"github.com/opengltestdrive/testdrive/config"
	"github.com/opengltestdrive/testdrive/gles"
	"github.com/opengltestdrive/testdrive/mobtex"
	"github.com/opengltestdrive/testdrive/render"
	"github.com/opengltestdrive/testdrive/scene"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/gl"
)

// overlay is drawn over the scene each frame with depth testing off.
type overlay interface {
	Draw(sz size.Event)
	Release()
}

// host adapts app events to a render.Session and swaps the session when the
// user taps.  Every method runs on the app's event goroutine.
type host struct {
	cfg  config.Config
	deps scene.Deps
	opts []render.Option
	log  *slog.Logger

	// newOverlay builds the overlay for a fresh context.  Nil disables it.
	newOverlay func(gles.Context) overlay

	name    string
	session *render.Session
	ctx     gles.Context
	sz      size.Event
	over    overlay
}

// newHost checks that the configured scene exists and prepares the options
// every session shares.  shaders, when non-nil, replaces each scene's own
// sources.
func newHost(cfg config.Config, l mobtex.Loader, shaders *[2]string) (*host, error) {
	h := &host{
		cfg:  cfg,
		deps: scene.Deps{Loader: l, CubeFaces: cfg.Faces()},
		log:  gles.Logger(),
		name: cfg.Scene,
	}
	rgba, err := cfg.ClearRGBA()
	if err != nil {
		return nil, err
	}
	h.opts = append(h.opts,
		render.WithClearColor(rgba[0], rgba[1], rgba[2], rgba[3]),
		render.WithPeriod(cfg.Period()),
	)
	if shaders != nil {
		h.opts = append(h.opts, render.WithShaders(shaders[0], shaders[1]))
	}
	if _, err := scene.New(h.name, h.deps); err != nil {
		return nil, err
	}
	return h, nil
}

// start builds a session for the current scene on ctx.  A scene that fails
// to build is logged by its session and draws nothing.
func (h *host) start(ctx gles.Context) {
	h.ctx = ctx
	h.open()
	if h.cfg.ShowFPS && h.newOverlay != nil {
		h.over = h.newOverlay(ctx)
	}
}

func (h *host) open() {
	sc, err := scene.New(h.name, h.deps)
	if err != nil {
		h.log.Error("scene", "name", h.name, "err", err)
		h.session = nil
		return
	}
	h.session = render.NewSession(sc, h.opts...)
	h.session.OnSurfaceCreated(h.ctx)
	if h.sz.WidthPx > 0 {
		h.session.OnSurfaceChanged(h.sz.WidthPx, h.sz.HeightPx)
	}
}

func (h *host) resize(sz size.Event) {
	h.sz = sz
	if h.session != nil {
		h.session.OnSurfaceChanged(sz.WidthPx, sz.HeightPx)
	}
}

func (h *host) paint() {
	if h.ctx == nil || h.session == nil {
		return
	}
	h.session.OnDrawFrame()
	if h.over != nil {
		h.ctx.Disable(gl.DEPTH_TEST)
		h.over.Draw(h.sz)
	}
}

// next replaces the session with one for the following scene on the same
// context.
func (h *host) next() {
	h.name = scene.Next(h.name)
	h.log.Info("switching scene", "name", h.name)
	if h.ctx == nil {
		return
	}
	if h.session != nil {
		h.session.OnSurfaceDestroyed()
	}
	h.open()
}

func (h *host) stop() {
	if h.session != nil {
		h.session.OnSurfaceDestroyed()
		h.session = nil
	}
	if h.over != nil {
		h.over.Release()
		h.over = nil
	}
	h.ctx = nil
}
