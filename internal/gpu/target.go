package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// OffscreenTarget is a render-attachment texture used in place of a window
// surface (headless rendering and tests).
type OffscreenTarget struct {
	device hal.Device
	tex    hal.Texture
	view   hal.TextureView

	width, height uint32
}

// NewOffscreenTarget creates a width x height color target in format.
func NewOffscreenTarget(device hal.Device, width, height uint32, format gputypes.TextureFormat) (*OffscreenTarget, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if format == gputypes.TextureFormatUndefined {
		format = DefaultTargetFormat
	}
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label: "sketch_offscreen",
		Size: hal.Extent3D{
			Width:              max(width, 1),
			Height:             max(height, 1),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create offscreen texture: %w", ErrOutOfMemory, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "sketch_offscreen_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("%w: create offscreen view: %w", ErrOutOfMemory, err)
	}
	return &OffscreenTarget{device: device, tex: tex, view: view, width: width, height: height}, nil
}

// View returns the texture view to render into.
func (t *OffscreenTarget) View() hal.TextureView {
	return t.view
}

// Size returns the target dimensions.
func (t *OffscreenTarget) Size() (width, height uint32) {
	return t.width, t.height
}

// Destroy releases the texture and view. Safe to call multiple times.
func (t *OffscreenTarget) Destroy() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}
