package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/polysketch"
	"github.com/gogpu/wgpu/hal"
)

// frameTimeout bounds the wait for the GPU to finish a frame.
const frameTimeout = 5 * time.Second

// Renderer encodes one frame: clear, marker pass, outline pass. It only
// reads the synchronizer's buffers; geometry changes happen in AddPoint.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	sync   *Synchronizer
	pipes  *sketchPipelines

	frames uint64
}

// NewRenderer creates the pipelines for dev.Format. A failure here is an
// initialization failure and ends the session before any input is handled.
func NewRenderer(dev Device, sync *Synchronizer, useSPIRV bool) (*Renderer, error) {
	if dev.Device == nil || dev.Queue == nil || sync == nil {
		return nil, ErrNilDevice
	}
	format := dev.Format
	if format == gputypes.TextureFormatUndefined {
		format = DefaultTargetFormat
	}
	pipes := newSketchPipelines(dev.Device, format)
	if err := pipes.ensure(useSPIRV); err != nil {
		return nil, fmt.Errorf("gpu: create pipelines: %w", err)
	}
	return &Renderer{
		device: dev.Device,
		queue:  dev.Queue,
		sync:   sync,
		pipes:  pipes,
	}, nil
}

// Frames returns the number of frames submitted.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// RenderTo draws the current nodes into view, cleared to clear.
//
// A nil view returns ErrSurfaceLost (recoverable). Encoding, submission and
// wait failures return ErrDeviceLost (fatal).
func (r *Renderer) RenderTo(view hal.TextureView, clear polysketch.Color) error {
	if view == nil {
		return fmt.Errorf("%w: no frame view", ErrSurfaceLost)
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "sketch_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("%w: create command encoder: %w", ErrDeviceLost, err)
	}
	if err := encoder.BeginEncoding("sketch_frame"); err != nil {
		return fmt.Errorf("%w: begin encoding: %w", ErrDeviceLost, err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "sketch_node_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    view,
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: float64(clear.R), G: float64(clear.G), B: float64(clear.B), A: 1,
			},
		}},
	})
	r.record(rp)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("%w: end encoding: %w", ErrDeviceLost, err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("%w: create fence: %w", ErrDeviceLost, err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("%w: submit: %w", ErrDeviceLost, err)
	}

	// Wait so the pass completes before the host presents the surface.
	ok, err := r.device.Wait(fence, 1, frameTimeout)
	if err != nil || !ok {
		return fmt.Errorf("%w: wait for GPU: ok=%v err=%w", ErrDeviceLost, ok, err)
	}

	r.frames++
	return nil
}

// record replays the synchronizer's draw plan into rp, switching pipelines
// and buffers only when they change.
func (r *Renderer) record(rp hal.RenderPassEncoder) {
	var (
		bound   = passKind(-1)
		vertBuf hal.Buffer
	)
	for _, d := range r.sync.plan() {
		if d.kind != bound {
			switch d.kind {
			case passQuad:
				rp.SetPipeline(r.pipes.quad)
			case passEdge:
				rp.SetPipeline(r.pipes.edge)
			}
			bound = d.kind
			vertBuf = nil
		}
		if d.vertexBuffer != vertBuf {
			rp.SetVertexBuffer(0, d.vertexBuffer, 0)
			rp.SetIndexBuffer(d.indexBuffer, gputypes.IndexFormatUint16, 0)
			vertBuf = d.vertexBuffer
		}
		rp.DrawIndexed(d.indexCount, 1, d.firstIndex, 0, d.firstInstance)
	}
}

// Destroy releases the pipelines. The synchronizer is not destroyed.
func (r *Renderer) Destroy() {
	if r.pipes != nil {
		r.pipes.destroy()
	}
}
