package glkit

import (
	"fmt"
	"maps"
	"slices"

	"github.com/gogpu/glkit/driver"
)

// VertexArray is a vertex array object together with the buffers it reads.
//
// The array owns every buffer attached to it: attaching retains the buffer,
// detaching or replacing releases it, and the array's last Release drops
// all of them. Callers keep their own reference and release it
// independently.
type VertexArray struct {
	dev      *Device
	handle   *Handle
	pointers map[uint32]*Buffer
	indices  *Buffer
	mode     driver.DrawMode
	count    int32
}

// NewVertexArray allocates an empty vertex array. The draw mode starts as
// driver.Points and the count as 0.
func (d *Device) NewVertexArray() *VertexArray {
	va := &VertexArray{
		dev:      d,
		handle:   d.newHandle(driver.ResourceVertexArray),
		pointers: make(map[uint32]*Buffer),
		mode:     driver.Points,
	}
	return va
}

// ID returns the driver object name.
func (va *VertexArray) ID() uint32 { return va.handle.id }

// Handle returns the array's shared handle.
func (va *VertexArray) Handle() *Handle { return va.handle }

// Retain adds an owner and returns va.
func (va *VertexArray) Retain() *VertexArray {
	va.handle.Retain()
	return va
}

// Release drops an owner. The last owner deletes the array and releases
// every attached buffer.
func (va *VertexArray) Release() {
	va.handle.Release()
	if va.handle.Released() {
		clear(va.pointers)
		va.indices = nil
	}
}

func (va *VertexArray) bind() {
	va.dev.drv.BindVertexArray(va.handle.id)
}

func (va *VertexArray) unbind() {
	va.dev.drv.BindVertexArray(0)
}

// SetPointer attaches buf to attribute slot and describes its layout:
// size components of typ per vertex, stride bytes apart, starting offset
// bytes into the buffer. The slot is enabled. A buffer previously attached
// to the slot is released.
func (va *VertexArray) SetPointer(slot uint32, buf *Buffer, size int32, typ driver.ComponentType, normalized bool, stride int32, offset uintptr) {
	drv := va.dev.drv
	va.bind()
	drv.BindBuffer(driver.ArrayBuffer, buf.handle.id)
	drv.VertexAttribPointer(slot, size, typ, normalized, stride, offset)
	drv.EnableVertexAttribArray(slot)
	drv.BindBuffer(driver.ArrayBuffer, 0)
	va.unbind()

	va.handle.own(buf.handle)
	if old, ok := va.pointers[slot]; ok {
		va.handle.disown(old.handle)
	}
	va.pointers[slot] = buf
}

// RemovePointer detaches the buffer at slot and releases it. Removing an
// empty slot does nothing.
//
// The slot stays enabled on the driver side; a draw that reads it before a
// new SetPointer is undefined.
func (va *VertexArray) RemovePointer(slot uint32) {
	buf, ok := va.pointers[slot]
	if !ok {
		return
	}
	delete(va.pointers, slot)
	va.handle.disown(buf.handle)
}

// AddIndices attaches buf as the index source. It panics with
// ErrNotIndexBuffer unless buf targets driver.ElementArrayBuffer.
//
// count becomes the number of indices to draw. A previously attached index
// buffer is released.
func (va *VertexArray) AddIndices(buf *Buffer, count int32) {
	if buf.target != driver.ElementArrayBuffer {
		panic(fmt.Errorf("%w: got %s", ErrNotIndexBuffer, buf.target))
	}
	va.bind()
	buf.bind()
	va.unbind()
	buf.unbind()

	va.handle.own(buf.handle)
	if va.indices != nil {
		va.handle.disown(va.indices.handle)
	}
	va.indices = buf
	va.count = count
}

// RemoveIndices detaches and releases the index buffer, if any. Subsequent
// draws are non-indexed.
func (va *VertexArray) RemoveIndices() {
	if va.indices == nil {
		return
	}
	buf := va.indices
	va.indices = nil
	va.handle.disown(buf.handle)
}

// SetCount sets the number of vertices (or indices) a draw consumes.
func (va *VertexArray) SetCount(count int32) { va.count = count }

// SetDrawMode sets the primitive mode used by Draw.
func (va *VertexArray) SetDrawMode(mode driver.DrawMode) { va.mode = mode }

// Count returns the number of vertices (or indices) a draw consumes.
func (va *VertexArray) Count() int32 { return va.count }

// Mode returns the primitive mode used by Draw.
func (va *VertexArray) Mode() driver.DrawMode { return va.mode }

// Slots returns the attached attribute slots in ascending order.
func (va *VertexArray) Slots() []uint32 {
	return slices.Sorted(maps.Keys(va.pointers))
}

// Pointer returns the buffer attached to slot, or nil.
func (va *VertexArray) Pointer(slot uint32) *Buffer { return va.pointers[slot] }

// Indices returns the index buffer, or nil.
func (va *VertexArray) Indices() *Buffer { return va.indices }

// Draw binds program, uploads uniforms, binds the array and issues one
// draw call. With an index buffer attached the draw is indexed, reading
// Count unsigned 16-bit indices from the start of the buffer; otherwise it
// draws Count vertices starting at vertex 0.
//
// uniforms may be nil.
func (va *VertexArray) Draw(program *Program, uniforms UniformContainer) {
	drv := va.dev.drv
	program.Bind()
	if uniforms != nil {
		uniforms.Bind()
	}
	va.bind()
	if va.indices != nil {
		va.indices.bind()
		drv.DrawElements(va.mode, va.count, driver.UnsignedShort, 0)
		va.indices.unbind()
	} else {
		drv.DrawArrays(va.mode, 0, va.count)
	}
	va.dev.logger().Debug("glkit: draw",
		"array", va.handle.id,
		"program", program.handle.id,
		"mode", va.mode,
		"count", va.count,
		"indexed", va.indices != nil)
}
