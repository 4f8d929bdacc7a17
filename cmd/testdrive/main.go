//go:build darwin || linux || windows

// Testdrive shows the five OpenGL ES 2.0 demo scenes.  Tap to move to the
// next scene.
//
// Settings are read from the testdrive.toml asset; see package config.
//
//	$ gomobile install github.com/opengltestdrive/testdrive/cmd/testdrive
//
// or on the desktop
//
//	$ cd cmd/testdrive && go run .
package main

import (
	"log/slog"
	"os"

	"github.com/opengltestdrive/testdrive/config"
	"github.com/opengltestdrive/testdrive/gles"
	"github.com/opengltestdrive/testdrive/mobtex"
	"github.com/opengltestdrive/testdrive/shader"

	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
	"golang.org/x/mobile/exp/app/debug"
	"golang.org/x/mobile/exp/gl/glutil"
	"golang.org/x/mobile/gl"
)

func main() {
	level := new(slog.LevelVar)
	gles.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	log := gles.Logger()

	cfg, err := config.Load(config.File)
	if err != nil {
		log.Error("reading settings", "err", err)
		os.Exit(1)
	}
	if l, err := cfg.Level(); err == nil {
		level.Set(l)
	}

	shaders, err := loadShaders(cfg)
	if err != nil {
		log.Error("reading shader override", "err", err)
		os.Exit(1)
	}
	h, err := newHost(cfg, mobtex.AssetLoader{Dir: cfg.TextureDir}, shaders)
	if err != nil {
		log.Error("starting", "err", err)
		os.Exit(1)
	}
	h.newOverlay = newFPS

	app.Main(func(a app.App) {
		var glctx gl.Context
		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case lifecycle.Event:
				switch e.Crosses(lifecycle.StageVisible) {
				case lifecycle.CrossOn:
					glctx, _ = e.DrawContext.(gl.Context)
					h.start(glctx)
					a.Send(paint.Event{})
				case lifecycle.CrossOff:
					h.stop()
					glctx = nil
				}
			case size.Event:
				h.resize(e)
			case paint.Event:
				if glctx == nil || e.External {
					// We paint continuously; skip the system's paint
					// requests.
					continue
				}
				h.paint()
				a.Publish()
				a.Send(paint.Event{})
			case touch.Event:
				if e.Type == touch.TypeEnd {
					h.next()
				}
			}
		}
	})
}

// loadShaders reads the configured shader override assets, if any.
func loadShaders(cfg config.Config) (*[2]string, error) {
	if cfg.VertexShader == "" {
		return nil, nil
	}
	vs, err := shader.LoadSource(shader.Vertex, cfg.VertexShader)
	if err != nil {
		return nil, err
	}
	fs, err := shader.LoadSource(shader.Fragment, cfg.FragmentShader)
	if err != nil {
		return nil, err
	}
	return &[2]string{vs.Text, fs.Text}, nil
}

type fpsOverlay struct {
	images *glutil.Images
	fps    *debug.FPS
}

func newFPS(ctx gles.Context) overlay {
	glctx, ok := ctx.(gl.Context)
	if !ok {
		return nil
	}
	images := glutil.NewImages(glctx)
	return &fpsOverlay{images: images, fps: debug.NewFPS(images)}
}

func (o *fpsOverlay) Draw(sz size.Event) { o.fps.Draw(sz) }

func (o *fpsOverlay) Release() {
	o.fps.Release()
	o.images.Release()
}
