package polysketch

import "golang.org/x/image/math/f32"

// VertexSize is the byte size of one serialized Vertex:
// position (3 x float32) + color (3 x float32), tightly packed.
const VertexSize = 24

// Point is a position in normalized device coordinates.
// Points are immutable once placed.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// InNDC reports whether p lies inside the [-1, 1] square.
func (p Point) InNDC() bool {
	return p.X >= -1 && p.X <= 1 && p.Y >= -1 && p.Y <= 1
}

// Vertex is a renderable position (Z fixed at 0) with an RGB color.
type Vertex struct {
	Position f32.Vec3
	Color    Color
}

// NewVertex creates a vertex at p with color c.
func NewVertex(p Point, c Color) Vertex {
	return Vertex{
		Position: f32.Vec3{p.X, p.Y, 0},
		Color:    c,
	}
}

// Point returns the XY part of the vertex position.
func (v Vertex) Point() Point {
	return Point{X: v.Position[0], Y: v.Position[1]}
}
