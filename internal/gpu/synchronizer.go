package gpu

import (
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/polysketch"
	"github.com/gogpu/polysketch/geometry"
	"github.com/gogpu/wgpu/hal"
)

// DrawCall summarizes one pass of the next frame.
type DrawCall struct {
	// IndexCount is the total number of indices drawn in the pass.
	IndexCount uint32
	// InstanceCount is the number of instances drawn in the pass.
	InstanceCount uint32
}

// Synchronizer owns the placed nodes and the GPU buffers they are drawn
// from. Every AddPoint regenerates the geometry and replaces the buffer
// contents before returning, so a frame never sees a half-updated node list.
//
// Synchronizer is NOT safe for concurrent use; it is driven from the
// host's single event loop.
type Synchronizer struct {
	device hal.Device
	queue  hal.Queue

	maxPoints int
	points    []polysketch.Point
	stream    *geometry.Stream

	quadVertices *streamBuffer
	quadIndices  *streamBuffer
	edgeVertices *streamBuffer
	edgeIndices  *streamBuffer

	// staging holds the serialized streams, one per buffer, reused across
	// updates.
	staging [4][]byte

	destroyed bool
}

// NewSynchronizer creates a synchronizer with no nodes. maxPoints is
// clamped to [1, polysketch.MaxPoints].
func NewSynchronizer(device hal.Device, queue hal.Queue, gen geometry.Generator, maxPoints int) (*Synchronizer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	maxPoints = min(max(maxPoints, 1), polysketch.MaxPoints)
	return &Synchronizer{
		device:       device,
		queue:        queue,
		maxPoints:    maxPoints,
		stream:       geometry.NewStream(gen),
		quadVertices: newStreamBuffer(device, queue, "sketch_quad_verts", gputypes.BufferUsageVertex),
		quadIndices:  newStreamBuffer(device, queue, "sketch_quad_indices", gputypes.BufferUsageIndex),
		edgeVertices: newStreamBuffer(device, queue, "sketch_edge_verts", gputypes.BufferUsageVertex),
		edgeIndices:  newStreamBuffer(device, queue, "sketch_edge_indices", gputypes.BufferUsageIndex),
	}, nil
}

// AddPoint appends p to the node list, extends the geometry streams and
// replaces the GPU buffer contents with the new streams.
//
// On failure the node is not added, the buffers keep their previous
// contents and the error is returned: a wrapped ErrOutOfMemory when a
// buffer cannot be allocated, ErrTooManyPoints at the node limit,
// ErrDestroyed after Destroy.
func (s *Synchronizer) AddPoint(p polysketch.Point) error {
	if s.destroyed {
		return ErrDestroyed
	}
	if len(s.points) >= s.maxPoints {
		return fmt.Errorf("%w: limit is %d", ErrTooManyPoints, s.maxPoints)
	}

	s.points = append(s.points, p)
	s.stream.Append(p)

	if err := s.upload(); err != nil {
		s.points = s.points[:len(s.points)-1]
		s.stream.Rebuild(s.points)
		return err
	}

	slogger().Debug("gpu: point added",
		"index", len(s.points)-1, "x", p.X, "y", p.Y,
		"quad_bytes", s.quadVertices.size, "edge_bytes", s.edgeVertices.size)
	return nil
}

// upload serializes all four streams and replaces the buffer contents.
// Every buffer is grown before any is written, so a failed allocation
// leaves all four holding the previous streams.
func (s *Synchronizer) upload() error {
	s.staging[0] = geometry.EncodeVertices(s.staging[0], s.stream.QuadVertices())
	s.staging[1] = geometry.EncodeIndices(s.staging[1], s.stream.QuadIndices())
	s.staging[2] = geometry.EncodeVertices(s.staging[2], s.stream.EdgeVertices())
	s.staging[3] = geometry.EncodeIndices(s.staging[3], s.stream.EdgeIndices())

	bufs := s.buffers()
	for i, b := range bufs {
		if err := b.reserve(uint64(len(s.staging[i]))); err != nil {
			return err
		}
	}
	for i, b := range bufs {
		b.write(s.staging[i])
	}
	return nil
}

// buffers returns the stream buffers in staging order.
func (s *Synchronizer) buffers() [4]*streamBuffer {
	return [4]*streamBuffer{s.quadVertices, s.quadIndices, s.edgeVertices, s.edgeIndices}
}

// Len returns the number of placed nodes.
func (s *Synchronizer) Len() int {
	return len(s.points)
}

// Points returns a copy of the placed nodes in insertion order.
func (s *Synchronizer) Points() []polysketch.Point {
	return slices.Clone(s.points)
}

// QuadDraw returns the marker pass of the next frame: one instance of six
// indices per node.
func (s *Synchronizer) QuadDraw() DrawCall {
	n := uint32(len(s.points)) //nolint:gosec // bounded by maxPoints
	return DrawCall{IndexCount: n * geometry.QuadIndexCount, InstanceCount: n}
}

// EdgeDraw returns the outline pass of the next frame: n+1 indices closing
// back to the first node, or nothing when no node is placed.
func (s *Synchronizer) EdgeDraw() DrawCall {
	n := uint32(len(s.points)) //nolint:gosec // bounded by maxPoints
	if n == 0 {
		return DrawCall{}
	}
	return DrawCall{IndexCount: n + 1, InstanceCount: 1}
}

// passKind selects the pipeline for a recorded draw.
type passKind int

const (
	passQuad passKind = iota
	passEdge
)

// passDraw is one DrawIndexed call with the buffers it binds.
type passDraw struct {
	kind          passKind
	vertexBuffer  hal.Buffer
	indexBuffer   hal.Buffer
	indexCount    uint32
	firstIndex    uint32
	firstInstance uint32
}

// plan lists the draw calls of the next frame in submission order: one
// marker draw per node, then the outline.
func (s *Synchronizer) plan() []passDraw {
	n := len(s.points)
	if n == 0 || s.destroyed {
		return nil
	}
	draws := make([]passDraw, 0, n+1)
	for i := 0; i < n; i++ {
		draws = append(draws, passDraw{
			kind:          passQuad,
			vertexBuffer:  s.quadVertices.handle(),
			indexBuffer:   s.quadIndices.handle(),
			indexCount:    geometry.QuadIndexCount,
			firstIndex:    uint32(i * geometry.QuadIndexCount), //nolint:gosec // bounded by maxPoints
			firstInstance: uint32(i),                           //nolint:gosec // bounded by maxPoints
		})
	}
	draws = append(draws, passDraw{
		kind:         passEdge,
		vertexBuffer: s.edgeVertices.handle(),
		indexBuffer:  s.edgeIndices.handle(),
		indexCount:   s.EdgeDraw().IndexCount,
	})
	return draws
}

// Destroy releases all GPU buffers. The node list is discarded.
// Safe to call multiple times.
func (s *Synchronizer) Destroy() {
	for _, b := range s.buffers() {
		b.destroy()
	}
	s.points = nil
	s.stream.Rebuild(nil)
	s.destroyed = true
}
