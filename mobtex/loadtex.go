package mobtex

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"path"

	_ "golang.org/x/image/bmp"
	"golang.org/x/mobile/asset"
)

// Loader returns the decoded bitmap identified by id.
type Loader interface {
	Load(id string) (image.Image, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(id string) (image.Image, error)

// Load calls fn(id).
func (fn LoaderFunc) Load(id string) (image.Image, error) { return fn(id) }

// AssetLoader decodes PNG, JPEG and BMP assets bundled with the app.  Ids are
// asset paths relative to Dir.
type AssetLoader struct {
	Dir string
}

// Load opens and decodes the asset id.
func (l AssetLoader) Load(id string) (image.Image, error) {
	f, err := asset.Open(path.Join(l.Dir, id))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	b := img.Bounds()
	logger().Debug("bitmap decoded", "id", id, "format", format, "width", b.Dx(), "height", b.Dy())
	return img, nil
}

// toNRGBA returns img as tightly packed, non-premultiplied RGBA rows with the
// origin at the top left, as TexImage2D expects.
func toNRGBA(img image.Image) *image.NRGBA {
	if m, ok := img.(*image.NRGBA); ok && m.Rect.Min == (image.Point{}) && m.Stride == 4*m.Rect.Dx() {
		return m
	}
	b := img.Bounds()
	m := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(m, m.Bounds(), img, b.Min, draw.Src)
	return m
}
