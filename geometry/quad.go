package geometry

import "github.com/gogpu/polysketch"

// Per-node marker sizes.
const (
	QuadVertexCount = 4
	QuadIndexCount  = 6
)

// Corner positions within a marker quad. The index pattern depends on this
// order.
const (
	CornerTopRight = iota
	CornerTopLeft
	CornerBottomRight
	CornerBottomLeft
)

// Quad is the marker geometry for one node.
type Quad struct {
	Vertices [QuadVertexCount]polysketch.Vertex
	Indices  [QuadIndexCount]uint16
}

// Generator builds marker and outline geometry. The zero value is not
// useful; use NewGenerator.
type Generator struct {
	// MarkerSize is the side length of every marker in NDC units.
	MarkerSize float32

	MarkerColor polysketch.Color
	EdgeColor   polysketch.Color
}

// NewGenerator creates a generator from a config.
func NewGenerator(cfg polysketch.Config) Generator {
	marker, edge := cfg.Colors()
	return Generator{
		MarkerSize:  cfg.MarkerSize,
		MarkerColor: marker,
		EdgeColor:   edge,
	}
}

// ExpandFrom returns the marker quad for p. base is the number of vertices
// already emitted into the same vertex buffer for earlier nodes (4 per node),
// so the returned indices address this quad's vertices.
//
// Triangles: {base, base+1, base+3} and {base, base+3, base+2}.
func (g Generator) ExpandFrom(p polysketch.Point, base uint16) Quad {
	h := g.MarkerSize / 2
	c := g.MarkerColor

	var q Quad
	q.Vertices[CornerTopRight] = polysketch.NewVertex(polysketch.Pt(p.X+h, p.Y+h), c)
	q.Vertices[CornerTopLeft] = polysketch.NewVertex(polysketch.Pt(p.X-h, p.Y+h), c)
	q.Vertices[CornerBottomRight] = polysketch.NewVertex(polysketch.Pt(p.X+h, p.Y-h), c)
	q.Vertices[CornerBottomLeft] = polysketch.NewVertex(polysketch.Pt(p.X-h, p.Y-h), c)

	q.Indices = [QuadIndexCount]uint16{
		base + CornerTopRight, base + CornerTopLeft, base + CornerBottomLeft,
		base + CornerTopRight, base + CornerBottomLeft, base + CornerBottomRight,
	}
	return q
}

// BuildQuads expands every point, in order, into one shared vertex stream
// and one index stream.
func (g Generator) BuildQuads(points []polysketch.Point) ([]polysketch.Vertex, []uint16) {
	if len(points) == 0 {
		return nil, nil
	}
	vertices := make([]polysketch.Vertex, 0, len(points)*QuadVertexCount)
	indices := make([]uint16, 0, len(points)*QuadIndexCount)
	for i, p := range points {
		q := g.ExpandFrom(p, uint16(i*QuadVertexCount)) //nolint:gosec // callers cap points at polysketch.MaxPoints
		vertices = append(vertices, q.Vertices[:]...)
		indices = append(indices, q.Indices[:]...)
	}
	return vertices, indices
}
