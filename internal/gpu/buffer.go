package gpu

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// minBufferCapacity is the smallest allocation for a stream buffer.
const minBufferCapacity = 256

// streamBuffer is a GPU buffer whose whole contents are replaced on every
// update. The underlying hal.Buffer is reallocated only when the new
// contents exceed its capacity; capacities are powers of two.
//
// streamBuffer is not safe for concurrent use.
type streamBuffer struct {
	label string
	usage gputypes.BufferUsage

	device hal.Device
	queue  hal.Queue

	buf      hal.Buffer
	capacity uint64
	size     uint64

	// contents mirrors the bytes last written to the GPU.
	contents []byte

	// allocations counts hal.Buffer creations.
	allocations int
}

func newStreamBuffer(device hal.Device, queue hal.Queue, label string, usage gputypes.BufferUsage) *streamBuffer {
	return &streamBuffer{
		label:  label,
		usage:  usage | gputypes.BufferUsageCopyDst,
		device: device,
		queue:  queue,
	}
}

// replace writes data as the full new contents of the buffer, reallocating
// when data does not fit. Empty data keeps the allocation and sets size 0.
func (b *streamBuffer) replace(data []byte) error {
	if err := b.reserve(uint64(len(data))); err != nil {
		return err
	}
	b.write(data)
	return nil
}

// reserve makes room for n bytes without changing the contents. A new
// allocation is seeded with the last written bytes, and on failure the old
// buffer is kept.
func (b *streamBuffer) reserve(n uint64) error {
	if n <= b.capacity && b.buf != nil {
		return nil
	}
	capacity := bufferCapacity(n)
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: b.label,
		Size:  capacity,
		Usage: b.usage,
	})
	if err != nil {
		return fmt.Errorf("%w: create %s (%d bytes): %w", ErrOutOfMemory, b.label, capacity, err)
	}
	if len(b.contents) > 0 {
		b.queue.WriteBuffer(buf, 0, b.contents)
	}
	if b.buf != nil {
		b.device.DestroyBuffer(b.buf)
	}
	slogger().Debug("gpu: buffer reallocated",
		"label", b.label, "old_capacity", b.capacity, "capacity", capacity)
	b.buf = buf
	b.capacity = capacity
	b.allocations++
	return nil
}

// write replaces the contents with data. The caller must reserve first.
func (b *streamBuffer) write(data []byte) {
	if len(data) > 0 {
		b.queue.WriteBuffer(b.buf, 0, data)
	}
	b.size = uint64(len(data))
	b.contents = append(b.contents[:0], data...)
}

// handle returns the current hal.Buffer, or nil before the first replace.
func (b *streamBuffer) handle() hal.Buffer {
	return b.buf
}

// destroy releases the hal.Buffer. Safe to call multiple times.
func (b *streamBuffer) destroy() {
	if b.buf != nil && b.device != nil {
		b.device.DestroyBuffer(b.buf)
	}
	b.buf = nil
	b.capacity = 0
	b.size = 0
	b.contents = b.contents[:0]
}

// bufferCapacity returns the power-of-two allocation size for n bytes.
func bufferCapacity(n uint64) uint64 {
	if n <= minBufferCapacity {
		return minBufferCapacity
	}
	return 1 << (64 - bits.LeadingZeros64(n-1))
}
