// Package config reads the testdrive settings asset.
//
// The file is TOML:
//
//	scene = "texture"
//	clear_color = "#202030"
//	period_ms = 10000
//	show_fps = true
//	log_level = "debug"
//	cube_faces = ["px.png", "nx.png", "py.png", "ny.png", "pz.png", "nz.png"]
//
// Every key is optional.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/opengltestdrive/testdrive/gles"
	"golang.org/x/mobile/asset"
)

// File is the asset name the host reads at start.
const File = "testdrive.toml"

// Config holds the settings read from File.  The zero value is not valid;
// start from Default.
type Config struct {
	// Scene is the registry name of the first scene shown.
	Scene string `toml:"scene"`

	// ClearColor is a "#rrggbb" colour the surface is cleared to.
	ClearColor string `toml:"clear_color"`

	// PeriodMillis is the length of one animation turn.
	PeriodMillis int64 `toml:"period_ms"`

	ShowFPS  bool   `toml:"show_fps"`
	LogLevel string `toml:"log_level"`

	// CubeFaces names the six cube map faces in -X, +X, -Y, +Y, -Z, +Z
	// order.  Empty means the built-in faces.
	CubeFaces []string `toml:"cube_faces"`

	// TextureDir is the asset directory texture names are relative to.
	TextureDir string `toml:"texture_dir"`

	// VertexShader and FragmentShader name assets that replace the scene's
	// own shader sources.  Both or neither must be set.
	VertexShader   string `toml:"vertex_shader"`
	FragmentShader string `toml:"fragment_shader"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Scene:        "flat",
		ClearColor:   "#000000",
		PeriodMillis: 10000,
		LogLevel:     "info",
	}
}

// Parse decodes TOML from r over the defaults and validates the result.
// Unknown keys are an error.
func Parse(r io.Reader) (Config, error) {
	c := Default()
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return Config{}, fmt.Errorf("config: unknown keys: %s", strings.Join(names, ", "))
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads the named asset.  A missing or unreadable asset yields the
// defaults; a malformed one is an error.
func Load(name string) (Config, error) {
	f, err := asset.Open(name)
	if err != nil {
		gles.Logger().Warn("config asset not found, using defaults", "asset", name, "err", err)
		return Default(), nil
	}
	defer f.Close()
	c, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%w (asset %s)", err, name)
	}
	return c, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Scene == "" {
		return errors.New("config: scene is empty")
	}
	if _, err := c.ClearRGBA(); err != nil {
		return err
	}
	if c.PeriodMillis <= 0 {
		return fmt.Errorf("config: period_ms must be positive, got %d", c.PeriodMillis)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if n := len(c.CubeFaces); n != 0 && n != 6 {
		return fmt.Errorf("config: cube_faces needs 6 entries, got %d", n)
	}
	if (c.VertexShader == "") != (c.FragmentShader == "") {
		return errors.New("config: vertex_shader and fragment_shader must be set together")
	}
	return nil
}

// ClearRGBA returns ClearColor as opaque float components.
func (c Config) ClearRGBA() ([4]float32, error) {
	col, err := colorful.Hex(c.ClearColor)
	if err != nil {
		return [4]float32{}, fmt.Errorf("config: clear_color: %w", err)
	}
	return [4]float32{float32(col.R), float32(col.G), float32(col.B), 1}, nil
}

// Level returns LogLevel as a slog level.  Empty means info.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log_level: %w", err)
	}
	return l, nil
}

// Period returns PeriodMillis as a duration.
func (c Config) Period() time.Duration {
	return time.Duration(c.PeriodMillis) * time.Millisecond
}

// Faces returns the configured cube faces, or the zero array when none are
// set.
func (c Config) Faces() [6]string {
	var faces [6]string
	if len(c.CubeFaces) == 6 {
		copy(faces[:], c.CubeFaces)
	}
	return faces
}
