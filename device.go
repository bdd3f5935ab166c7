package glkit

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/glkit/driver"
)

// Device ties glkit objects to one driver and its current context.
//
// A Device is not safe for concurrent use. All methods, and all methods of
// objects created from it, must be called from the goroutine that owns the
// driver context. The only exception is the garbage queue, which the
// runtime fills from its cleanup goroutine.
type Device struct {
	drv  driver.Driver
	opts deviceOptions

	live    atomic.Int64
	garbage garbage
}

// NewDevice creates a Device issuing calls against drv.
func NewDevice(drv driver.Driver, opts ...DeviceOption) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Device{drv: drv, opts: o}
}

// Driver returns the driver the device issues calls against.
func (d *Device) Driver() driver.Driver {
	return d.drv
}

// Live returns the number of driver objects created through the device
// that have not been deleted yet.
func (d *Device) Live() int {
	return int(d.live.Load())
}

// Collect deletes objects whose last Go reference was dropped without a
// Release call and returns how many were deleted. The references those
// objects held on other objects (a program's stages, a vertex array's
// buffers) are released as well. Call it periodically
// (once per frame is typical) from the context goroutine.
func (d *Device) Collect() int {
	items := d.garbage.drain()
	for _, it := range items {
		d.logger().Warn("glkit: reclaiming leaked object",
			"kind", it.kind, "id", it.id, "owned", len(it.owns.handles))
		d.delete(it.kind, it.id)
		it.owns.releaseAll()
	}
	return len(items)
}

// Close collects leaked objects and reports how many objects are still
// owned. It does not delete owned objects; their owners still hold them.
func (d *Device) Close() {
	n := d.Collect()
	d.logger().Info("glkit: device closed", "collected", n, "live", d.Live())
}

func (d *Device) logger() *slog.Logger {
	if d.opts.logger != nil {
		return d.opts.logger
	}
	return Logger()
}

func (d *Device) delete(kind driver.Resource, id uint32) {
	d.drv.Delete(kind, id)
	d.live.Add(-1)
	d.logger().Debug("glkit: delete", "kind", kind, "id", id)
}

// leaked is a driver object found unreachable while still owned.
type leaked struct {
	kind driver.Resource
	id   uint32
	owns *owned
}

// garbage collects leaked objects from runtime cleanups until the context
// goroutine deletes them.
type garbage struct {
	mu    sync.Mutex
	items []leaked
}

func (g *garbage) push(l leaked) {
	g.mu.Lock()
	g.items = append(g.items, l)
	g.mu.Unlock()
}

func (g *garbage) drain() []leaked {
	g.mu.Lock()
	defer g.mu.Unlock()
	items := g.items
	g.items = nil
	return items
}
