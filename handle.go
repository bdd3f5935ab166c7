package glkit

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/gogpu/glkit/driver"
)

// Handle binds a driver-assigned object name to its delete obligation.
//
// A Handle starts with one owner. Each additional owner calls Retain and
// every owner eventually calls Release; the driver object is deleted exactly
// once, when the last owner releases it. Retaining or releasing a handle
// whose count already reached zero panics with ErrHandleReleased.
//
// If every Go reference to a still-owned Handle is dropped, the handle is
// queued on its Device and deleted by the next Device.Collect, unless leak
// tracking was disabled with WithLeakTracking(false).
type Handle struct {
	dev  *Device
	kind driver.Resource
	id   uint32
	refs atomic.Int32

	cleanup runtime.Cleanup
	tracked bool

	// owns holds the references this handle took on other handles. The
	// leak cleanup shares it, so it must never point back at h.
	owns *owned
}

// owned is the list of handles an object holds one reference each on.
// A handle appears once per reference.
type owned struct {
	handles []*Handle
}

func (o *owned) remove(c *Handle) bool {
	for i, h := range o.handles {
		if h == c {
			o.handles = append(o.handles[:i], o.handles[i+1:]...)
			return true
		}
	}
	return false
}

// releaseAll drops every held reference.
func (o *owned) releaseAll() {
	hs := o.handles
	o.handles = nil
	for _, c := range hs {
		c.Release()
	}
}

// newHandle allocates a driver object of the given kind and wraps it.
func (d *Device) newHandle(kind driver.Resource) *Handle {
	return d.HandleFromID(kind, d.drv.Create(kind))
}

// HandleFromID wraps an object name allocated by some other driver call.
// The returned handle owns the object: its last Release deletes it.
//
// The id is not validated.
func (d *Device) HandleFromID(kind driver.Resource, id uint32) *Handle {
	h := &Handle{dev: d, kind: kind, id: id, owns: &owned{}}
	h.refs.Store(1)
	d.live.Add(1)
	if d.opts.trackLeaks {
		g := &d.garbage
		l := leaked{kind: kind, id: id, owns: h.owns}
		h.cleanup = runtime.AddCleanup(h, func(l leaked) { g.push(l) }, l)
		h.tracked = true
	}
	d.logger().Debug("glkit: create", "kind", kind, "id", id)
	return h
}

// ID returns the driver-assigned object name.
func (h *Handle) ID() uint32 { return h.id }

// Kind returns the object kind.
func (h *Handle) Kind() driver.Resource { return h.kind }

// Refs returns the current number of owners.
func (h *Handle) Refs() int { return int(h.refs.Load()) }

// Released reports whether the driver object has been deleted.
func (h *Handle) Released() bool { return h.refs.Load() <= 0 }

// Retain adds an owner and returns h.
func (h *Handle) Retain() *Handle {
	if h.refs.Add(1) <= 1 {
		h.refs.Add(-1)
		panic(fmt.Errorf("%w: retain %s %d", ErrHandleReleased, h.kind, h.id))
	}
	return h
}

// Release drops an owner. The last Release deletes the driver object and
// then releases every handle this one owns.
func (h *Handle) Release() {
	n := h.refs.Add(-1)
	if n > 0 {
		return
	}
	if n < 0 {
		h.refs.Add(1)
		panic(fmt.Errorf("%w: release %s %d", ErrHandleReleased, h.kind, h.id))
	}
	if h.tracked {
		h.cleanup.Stop()
	}
	h.dev.delete(h.kind, h.id)
	h.owns.releaseAll()
}

// own makes h an owner of c: c is retained and released again when h is
// deleted, whether by its last Release or by Device.Collect.
func (h *Handle) own(c *Handle) {
	c.Retain()
	h.owns.handles = append(h.owns.handles, c)
}

// disown drops one reference h took on c with own.
func (h *Handle) disown(c *Handle) {
	if h.owns.remove(c) {
		c.Release()
	}
}

func (h *Handle) String() string {
	return fmt.Sprintf("%s(%d, refs=%d)", h.kind, h.id, h.Refs())
}
