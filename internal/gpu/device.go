package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DefaultTargetFormat is used when the host does not report a surface format.
const DefaultTargetFormat = gputypes.TextureFormatBGRA8Unorm

// Device is the GPU device handed over by the host window.
// The host owns it; polysketch never destroys it.
type Device struct {
	Device hal.Device
	Queue  hal.Queue

	// Format is the color format of the frames rendered into.
	Format gputypes.TextureFormat
}

// OpenFromProvider extracts the HAL device and queue from a host provider
// (e.g. gogpu.App.GPUContextProvider()). The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func OpenFromProvider(provider gpucontext.DeviceProvider) (Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	if provider == nil {
		return Device{}, ErrNilDevice
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return Device{}, ErrProviderNotHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return Device{}, fmt.Errorf("%w: HalDevice is not hal.Device", ErrProviderNotHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return Device{}, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrProviderNotHAL)
	}

	format := provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = DefaultTargetFormat
	}
	slogger().Info("gpu: using host device", "format", format)
	return Device{Device: device, Queue: queue, Format: format}, nil
}
