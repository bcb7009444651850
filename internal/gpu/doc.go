// Package gpu owns the GPU side of a sketch: the node list with its vertex
// and index buffers, the two render pipelines and the per-frame encoder.
//
// All resources are created on a hal.Device supplied by the host
// (see OpenFromProvider). Tests run against the hal/noop backend.
//
// Frame structure:
//
//	clear -> marker pass (triangle list, one instance per node)
//	      -> outline pass (line strip, closed back to the first node)
package gpu
