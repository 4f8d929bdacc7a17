package gles

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/mobile/exp/f32"
	"golang.org/x/mobile/gl"
)

// SizeofFloat is the size in bytes of one float32 vertex component.
const SizeofFloat = 4

// ByteOrder is the host byte order, in which GL reads buffer data.  It is
// always binary.LittleEndian or binary.BigEndian, the two orders f32.Bytes
// accepts.
var ByteOrder binary.ByteOrder = binary.LittleEndian

func init() {
	if binary.NativeEndian.Uint16([]byte{0, 1}) == 1 {
		ByteOrder = binary.BigEndian
	}
}

// VertexData is an immutable, fixed-length run of float32 vertex components
// encoded in native byte order, ready for BufferData.
type VertexData struct {
	floats []float32
	bytes  []byte
}

// NewVertexData copies components into a new VertexData.
func NewVertexData(components ...float32) *VertexData {
	floats := make([]float32, len(components))
	copy(floats, components)
	return &VertexData{
		floats: floats,
		bytes:  f32.Bytes(ByteOrder, floats...),
	}
}

// Len returns the number of float components.
func (v *VertexData) Len() int { return len(v.floats) }

// At returns component i.
func (v *VertexData) At(i int) float32 { return v.floats[i] }

// Bytes returns the encoded components.  The slice must not be modified.
func (v *VertexData) Bytes() []byte { return v.bytes }

// Vertices returns the number of whole vertices when each vertex has stride
// components.
func (v *VertexData) Vertices(stride int) int {
	if stride <= 0 {
		return 0
	}
	return len(v.floats) / stride
}

// IndexData is an immutable run of unsigned byte element indices.
type IndexData struct {
	indices []byte
}

// NewIndexData copies indices into a new IndexData.
func NewIndexData(indices ...byte) *IndexData {
	b := make([]byte, len(indices))
	copy(b, indices)
	return &IndexData{indices: b}
}

// Len returns the number of indices.
func (d *IndexData) Len() int { return len(d.indices) }

// Bytes returns the indices.  The slice must not be modified.
func (d *IndexData) Bytes() []byte { return d.indices }

// Upload creates a buffer object bound to target and fills it with data using
// STATIC_DRAW.  The buffer is left bound.
func Upload(ctx Context, target gl.Enum, data []byte) (gl.Buffer, error) {
	buf := ctx.CreateBuffer()
	if buf.Value == 0 {
		return gl.Buffer{}, fmt.Errorf("gles: no buffers available")
	}
	ctx.BindBuffer(target, buf)
	ctx.BufferData(target, data, gl.STATIC_DRAW)
	Logger().Debug("buffer uploaded", "buffer", buf.Value, "bytes", len(data))
	return buf, nil
}

// Release deletes every non-zero buffer in bufs.
func Release(ctx Context, bufs ...gl.Buffer) {
	for _, b := range bufs {
		if b.Value != 0 {
			ctx.DeleteBuffer(b)
		}
	}
}
