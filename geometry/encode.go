package geometry

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/polysketch"
)

// writeAlignment is the granularity of GPU buffer writes.
const writeAlignment = 4

// EncodeVertices serializes vertices into dst (reusing its capacity) as
// tightly packed little-endian float32s:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	color    (vec3<f32>) = 12 bytes (location 1)
//
// Total = 24 bytes per vertex.
func EncodeVertices(dst []byte, vertices []polysketch.Vertex) []byte {
	needed := len(vertices) * polysketch.VertexSize
	dst = grow(dst, needed)
	off := 0
	for i := range vertices {
		writeVertex(dst[off:], &vertices[i])
		off += polysketch.VertexSize
	}
	return dst
}

// writeVertex writes a single vertex into buf.
func writeVertex(buf []byte, v *polysketch.Vertex) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.Color.R))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(v.Color.G))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(v.Color.B))
}

// EncodeIndices serializes uint16 indices into dst as little-endian, then
// zero-pads to a multiple of 4 bytes. The padding is never drawn.
func EncodeIndices(dst []byte, indices []uint16) []byte {
	n := len(indices) * 2
	padded := (n + writeAlignment - 1) &^ (writeAlignment - 1)
	dst = grow(dst, padded)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(dst[i*2:], idx)
	}
	clear(dst[n:])
	return dst
}

// grow returns dst resized to n bytes, reallocating only when its capacity
// is too small.
func grow(dst []byte, n int) []byte {
	if cap(dst) < n {
		return make([]byte, n)
	}
	return dst[:n]
}
