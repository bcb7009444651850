// Package polysketch is the core of an interactive point-and-polygon
// sketching surface rendered with gogpu/wgpu.
//
// # Overview
//
// Every pointer press on the canvas becomes a node. For each node the
// renderer draws a small filled square (a marker), and all nodes are joined
// in insertion order by a closed outline. Geometry is regenerated and
// re-uploaded to the GPU whenever a node is added; the render step only
// reads the current buffers.
//
// # Coordinates
//
// All vertex positions live in normalized device coordinates: [-1, 1] on
// both axes, origin at the viewport center, Y up. [Viewport.ToNDC] maps raw
// pointer coordinates (origin top-left, Y down) into that space.
//
// # Architecture
//
// The module is organized into:
//   - polysketch: Point, Vertex, Color, Viewport, Config, logging
//   - geometry: marker quads, closed outline, incremental streams, encoders
//   - internal/gpu: buffer synchronizer, pipelines, frame renderer
//   - session: input events, overlay readout, render-loop error policy
//   - cmd/polysketch: gogpu window host
//
// # Logging
//
// polysketch is silent by default. Call [SetLogger] to enable output.
package polysketch
