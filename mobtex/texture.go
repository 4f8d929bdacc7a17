package mobtex

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/opengltestdrive/testdrive/gles"
	"golang.org/x/mobile/gl"
)

// ResourceError reports a bitmap that could not be loaded or uploaded.
type ResourceError struct {
	ID  string
	Err error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("mobtex: %s: %v", e.ID, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

var (
	errEmpty     = errors.New("empty bitmap")
	errNotSquare = errors.New("cube map face is not square")
	errFaceSize  = errors.New("cube map faces differ in size")
)

// CubeFaces lists the cube map targets in the order LoadCube expects its
// bitmaps: -X, +X, -Y, +Y, -Z, +Z.
var CubeFaces = [6]gl.Enum{
	gl.TEXTURE_CUBE_MAP_NEGATIVE_X,
	gl.TEXTURE_CUBE_MAP_POSITIVE_X,
	gl.TEXTURE_CUBE_MAP_NEGATIVE_Y,
	gl.TEXTURE_CUBE_MAP_POSITIVE_Y,
	gl.TEXTURE_CUBE_MAP_NEGATIVE_Z,
	gl.TEXTURE_CUBE_MAP_POSITIVE_Z,
}

func logger() *slog.Logger { return gles.Logger() }

func load(l Loader, id string) (*image.NRGBA, error) {
	img, err := l.Load(id)
	if err != nil {
		return nil, &ResourceError{ID: id, Err: err}
	}
	if img == nil || img.Bounds().Empty() {
		return nil, &ResourceError{ID: id, Err: errEmpty}
	}
	return toNRGBA(img), nil
}

// LoadTexture2D decodes id and uploads it to a new TEXTURE_2D with linear
// filtering.  The texture unit binding is restored to zero afterwards.
func LoadTexture2D(ctx gles.Context, l Loader, id string) (gl.Texture, error) {
	m, err := load(l, id)
	if err != nil {
		return gl.Texture{}, err
	}

	texture := ctx.CreateTexture()
	if texture.Value == 0 {
		return gl.Texture{}, &ResourceError{ID: id, Err: errors.New("no textures available")}
	}
	ctx.ActiveTexture(gl.TEXTURE0)
	ctx.BindTexture(gl.TEXTURE_2D, texture)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	upload(ctx, gl.TEXTURE_2D, m)
	ctx.BindTexture(gl.TEXTURE_2D, gl.Texture{})

	if glerr := ctx.GetError(); glerr != gl.NO_ERROR {
		ctx.DeleteTexture(texture)
		return gl.Texture{}, &ResourceError{ID: id, Err: fmt.Errorf("GL error: %#x", uint32(glerr))}
	}
	logger().Info("texture loaded", "id", id, "texture", texture.Value)
	return texture, nil
}

// LoadCube decodes the six faces (ordered as CubeFaces) and uploads them to
// a new TEXTURE_CUBE_MAP with linear filtering.  All faces must be square and
// the same size.  No texture object is created unless every face decodes.
func LoadCube(ctx gles.Context, l Loader, ids [6]string) (gl.Texture, error) {
	var faces [6]*image.NRGBA
	for i, id := range ids {
		m, err := load(l, id)
		if err != nil {
			return gl.Texture{}, err
		}
		size := m.Rect.Size()
		if size.X != size.Y {
			return gl.Texture{}, &ResourceError{ID: id, Err: errNotSquare}
		}
		if i > 0 && size != faces[0].Rect.Size() {
			return gl.Texture{}, &ResourceError{ID: id, Err: errFaceSize}
		}
		faces[i] = m
	}

	texture := ctx.CreateTexture()
	if texture.Value == 0 {
		return gl.Texture{}, &ResourceError{ID: ids[0], Err: errors.New("no textures available")}
	}
	ctx.ActiveTexture(gl.TEXTURE0)
	ctx.BindTexture(gl.TEXTURE_CUBE_MAP, texture)
	ctx.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	ctx.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	for i, target := range CubeFaces {
		upload(ctx, target, faces[i])
	}
	ctx.BindTexture(gl.TEXTURE_CUBE_MAP, gl.Texture{})

	if glerr := ctx.GetError(); glerr != gl.NO_ERROR {
		ctx.DeleteTexture(texture)
		return gl.Texture{}, &ResourceError{ID: ids[0], Err: fmt.Errorf("GL error: %#x", uint32(glerr))}
	}
	logger().Info("cube map loaded", "faces", ids, "texture", texture.Value)
	return texture, nil
}

func upload(ctx gles.Context, target gl.Enum, m *image.NRGBA) {
	size := m.Rect.Size()
	logger().Debug("uploading texture level", "target", uint32(target), "width", size.X, "height", size.Y)
	ctx.TexImage2D(target, 0, gl.RGBA, size.X, size.Y, gl.RGBA, gl.UNSIGNED_BYTE, m.Pix)
}
