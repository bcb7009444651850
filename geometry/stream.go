package geometry

import "github.com/gogpu/polysketch"

// Stream holds the marker and outline streams for a growing node list.
// Append adds one node without reprocessing earlier ones; the result always
// matches BuildQuads and BuildEdges over the same nodes.
//
// Stream is not safe for concurrent use.
type Stream struct {
	gen   Generator
	first polysketch.Point
	count int

	quadVertices []polysketch.Vertex
	quadIndices  []uint16
	edgeVertices []polysketch.Vertex
	edgeIndices  []uint16
}

// NewStream creates an empty stream using gen.
func NewStream(gen Generator) *Stream {
	return &Stream{gen: gen}
}

// Len returns the number of nodes in the stream.
func (s *Stream) Len() int {
	return s.count
}

// Append adds p as the next node.
func (s *Stream) Append(p polysketch.Point) {
	base := uint16(s.count * QuadVertexCount) //nolint:gosec // callers cap points at polysketch.MaxPoints
	q := s.gen.ExpandFrom(p, base)
	s.quadVertices = append(s.quadVertices, q.Vertices[:]...)
	s.quadIndices = append(s.quadIndices, q.Indices[:]...)

	// Drop the closing vertex and index, append the node, close again.
	if s.count == 0 {
		s.first = p
	} else {
		s.edgeVertices = s.edgeVertices[:s.count]
		s.edgeIndices = s.edgeIndices[:s.count]
	}
	s.edgeVertices = append(s.edgeVertices,
		polysketch.NewVertex(p, s.gen.EdgeColor),
		polysketch.NewVertex(s.first, s.gen.EdgeColor))
	s.edgeIndices = append(s.edgeIndices, uint16(s.count), 0) //nolint:gosec // see above
	s.count++
}

// Rebuild discards the streams and regenerates them from points.
func (s *Stream) Rebuild(points []polysketch.Point) {
	s.quadVertices, s.quadIndices = s.gen.BuildQuads(points)
	s.edgeVertices, s.edgeIndices = s.gen.BuildEdges(points)
	s.count = len(points)
	if s.count > 0 {
		s.first = points[0]
	}
}

// QuadVertices returns the marker vertex stream. The slice is owned by the
// stream and valid until the next Append or Rebuild.
func (s *Stream) QuadVertices() []polysketch.Vertex { return s.quadVertices }

// QuadIndices returns the marker index stream.
func (s *Stream) QuadIndices() []uint16 { return s.quadIndices }

// EdgeVertices returns the outline vertex stream including the closing copy.
func (s *Stream) EdgeVertices() []polysketch.Vertex { return s.edgeVertices }

// EdgeIndices returns the outline index stream ending in 0.
func (s *Stream) EdgeIndices() []uint16 { return s.edgeIndices }
