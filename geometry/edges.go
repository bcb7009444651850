package geometry

import "github.com/gogpu/polysketch"

// BuildEdges returns the closed outline through points in insertion order:
// one vertex per point followed by a copy of the first, and the index stream
// 0..n-1, 0. Empty input yields empty output.
func (g Generator) BuildEdges(points []polysketch.Point) ([]polysketch.Vertex, []uint16) {
	n := len(points)
	if n == 0 {
		return nil, nil
	}
	vertices := make([]polysketch.Vertex, 0, n+1)
	indices := make([]uint16, 0, n+1)
	for i, p := range points {
		vertices = append(vertices, polysketch.NewVertex(p, g.EdgeColor))
		indices = append(indices, uint16(i)) //nolint:gosec // callers cap points at polysketch.MaxPoints
	}
	vertices = append(vertices, vertices[0])
	indices = append(indices, 0)
	return vertices, indices
}
