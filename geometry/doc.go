// Package geometry turns an ordered list of placed nodes into the vertex
// and index streams drawn by the two render passes.
//
// Marker pass: every node expands into a square of side MarkerSize centered
// on the node, as 4 vertices and 6 uint16 indices (two triangles sharing the
// top-right/bottom-left diagonal).
//
// Edge pass: one vertex per node in insertion order plus a copy of the first
// node, with the index stream 0, 1, ..., n-1, 0, forming a closed outline.
//
// [Generator] provides the pure functions. [Stream] keeps both outputs and
// grows them one node at a time; its streams always equal a full
// regeneration from the same nodes.
package geometry
