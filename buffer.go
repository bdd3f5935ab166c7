package glkit

import (
	"unsafe"

	"github.com/gogpu/glkit/driver"
)

// Buffer is a driver buffer object with a fixed target classification.
//
// The target decides where the buffer is bound for uploads and whether a
// vertex array accepts it as an index source.
type Buffer struct {
	dev    *Device
	target driver.BufferTarget
	handle *Handle
}

// NewBuffer allocates a buffer intended for target.
func (d *Device) NewBuffer(target driver.BufferTarget) *Buffer {
	return &Buffer{
		dev:    d,
		target: target,
		handle: d.newHandle(driver.ResourceBuffer),
	}
}

// Target returns the buffer's target classification.
func (b *Buffer) Target() driver.BufferTarget { return b.target }

// ID returns the driver object name.
func (b *Buffer) ID() uint32 { return b.handle.id }

// Handle returns the buffer's shared handle.
func (b *Buffer) Handle() *Handle { return b.handle }

// Retain adds an owner and returns b.
func (b *Buffer) Retain() *Buffer {
	b.handle.Retain()
	return b
}

// Release drops an owner. The last owner deletes the buffer.
func (b *Buffer) Release() { b.handle.Release() }

func (b *Buffer) bind() {
	b.dev.drv.BindBuffer(b.target, b.handle.id)
}

func (b *Buffer) unbind() {
	b.dev.drv.BindBuffer(b.target, 0)
}

// SetData replaces the contents of b with data, uploading
// len(data) * sizeof(T) bytes verbatim. usage is passed through to the
// driver as a performance hint.
//
// The buffer is bound on its target for the duration of the call and the
// target is left unbound afterwards.
func SetData[T any](b *Buffer, data []T, usage driver.Usage) {
	var zero T
	size := len(data) * int(unsafe.Sizeof(zero))
	var ptr unsafe.Pointer
	if size > 0 {
		ptr = unsafe.Pointer(unsafe.SliceData(data))
	}
	b.bind()
	b.dev.drv.BufferData(b.target, size, ptr, usage)
	b.unbind()
}
