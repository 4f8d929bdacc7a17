// Package scene holds the demo scenes drawn by a render.Session: a
// flat-shaded triangle, plain perspective, an orbiting camera, an animated
// model transform and a cube-mapped box.
package scene

import (
	"fmt"
	"sort"

	"github.com/opengltestdrive/testdrive/mobtex"
	"github.com/opengltestdrive/testdrive/render"
)

// Deps are the collaborators a scene may need.
type Deps struct {
	// Loader supplies bitmaps to texture scenes.  Defaults to
	// mobtex.AssetLoader{}.
	Loader mobtex.Loader

	// CubeFaces overrides DefaultCubeFaces when any entry is set.
	CubeFaces [6]string
}

var registry = map[string]func(Deps) render.Scene{
	"flat":        func(Deps) render.Scene { return NewFlat() },
	"perspective": func(Deps) render.Scene { return NewPerspective() },
	"camera":      func(Deps) render.Scene { return NewCameraOrbit() },
	"model":       func(Deps) render.Scene { return NewModelPosition() },
	"texture": func(d Deps) render.Scene {
		l := d.Loader
		if l == nil {
			l = mobtex.AssetLoader{}
		}
		faces := DefaultCubeFaces
		if d.CubeFaces != ([6]string{}) {
			faces = d.CubeFaces
		}
		return NewTextureCube(l, faces)
	},
}

// order is the cycle order used by Next.
var order = []string{"flat", "perspective", "camera", "model", "texture"}

// Names returns the registered scene names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns a new instance of the named scene.
func New(name string, d Deps) (render.Scene, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("scene: unknown scene %q (have %v)", name, Names())
	}
	return fn(d), nil
}

// Next returns the scene name that follows name in the demo cycle.
func Next(name string) string {
	for i, n := range order {
		if n == name {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}
