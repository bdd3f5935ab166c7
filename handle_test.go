package glkit

import (
	"runtime"
	"testing"
	"time"

	"github.com/gogpu/glkit/driver"
)

func TestHandleRefCount(t *testing.T) {
	dev, drv := newTestDevice(t)
	h := dev.newHandle(driver.ResourceBuffer)

	if h.Refs() != 1 {
		t.Fatalf("Refs() = %d, want 1", h.Refs())
	}
	h.Retain()
	h.Retain()
	if h.Refs() != 3 {
		t.Fatalf("Refs() = %d, want 3", h.Refs())
	}

	h.Release()
	h.Release()
	if got := drv.Deleted(driver.ResourceBuffer); got != 0 {
		t.Fatalf("Deleted() = %d before last release, want 0", got)
	}
	if h.Released() {
		t.Fatal("Released() = true with one owner left")
	}

	h.Release()
	if got := drv.Deleted(driver.ResourceBuffer); got != 1 {
		t.Errorf("Deleted() = %d, want 1", got)
	}
	if !h.Released() {
		t.Error("Released() = false after last release")
	}
	if dev.Live() != 0 {
		t.Errorf("Live() = %d, want 0", dev.Live())
	}
	checkDriverErrors(t, drv)
}

func TestHandleDoubleRelease(t *testing.T) {
	dev, drv := newTestDevice(t)
	h := dev.newHandle(driver.ResourceVertexArray)
	h.Release()

	mustPanic(t, ErrHandleReleased, h.Release)
	mustPanic(t, ErrHandleReleased, func() { h.Retain() })

	if h.Refs() != 0 {
		t.Errorf("Refs() = %d after rejected calls, want 0", h.Refs())
	}
	if got := drv.Deleted(driver.ResourceVertexArray); got != 1 {
		t.Errorf("Deleted() = %d, want 1", got)
	}
	checkDriverErrors(t, drv)
}

func TestHandleFromID(t *testing.T) {
	dev, drv := newTestDevice(t)
	id := drv.Create(driver.ResourceBuffer)

	h := dev.HandleFromID(driver.ResourceBuffer, id)
	if h.ID() != id {
		t.Errorf("ID() = %d, want %d", h.ID(), id)
	}
	if h.Kind() != driver.ResourceBuffer {
		t.Errorf("Kind() = %v, want %v", h.Kind(), driver.ResourceBuffer)
	}
	if dev.Live() != 1 {
		t.Errorf("Live() = %d, want 1", dev.Live())
	}

	h.Release()
	if drv.IsLive(driver.ResourceBuffer, id) {
		t.Error("object still live after release")
	}
	checkDriverErrors(t, drv)
}

func TestHandleOwns(t *testing.T) {
	dev, drv := newTestDevice(t)
	owner := dev.newHandle(driver.ResourceVertexArray)
	child := dev.newHandle(driver.ResourceBuffer)
	owner.own(child)
	child.Release()

	owner.Retain()
	owner.Release()
	if child.Released() {
		t.Fatal("owned handle released while owner is alive")
	}
	owner.Release()
	if !child.Released() {
		t.Error("owned handle not released with its owner")
	}
	if got := drv.Ops(); got[len(got)-2] != "Delete" || got[len(got)-1] != "Delete" {
		t.Errorf("last ops = %v, want two deletes", got)
	}
	checkDriverErrors(t, drv)
}

func TestHandleDisown(t *testing.T) {
	dev, drv := newTestDevice(t)
	owner := dev.newHandle(driver.ResourceVertexArray)
	child := dev.newHandle(driver.ResourceBuffer)
	owner.own(child)
	owner.own(child)

	owner.disown(child)
	if child.Refs() != 2 {
		t.Errorf("Refs() = %d after one disown, want 2", child.Refs())
	}
	stranger := dev.newHandle(driver.ResourceBuffer)
	owner.disown(stranger)
	if stranger.Refs() != 1 {
		t.Errorf("disown of a handle never owned changed Refs() to %d", stranger.Refs())
	}

	owner.Release()
	if child.Refs() != 1 {
		t.Errorf("Refs() = %d after owner release, want 1", child.Refs())
	}
	child.Release()
	stranger.Release()
	if dev.Live() != 0 {
		t.Errorf("Live() = %d, want 0", dev.Live())
	}
	checkDriverErrors(t, drv)
}

func TestHandleString(t *testing.T) {
	dev, _ := newTestDevice(t)
	h := dev.newHandle(driver.ResourceProgram)
	defer h.Release()
	want := "Program(1, refs=1)"
	if got := h.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func leakBuffer(dev *Device) uint32 {
	return dev.NewBuffer(driver.ArrayBuffer).ID()
}

func TestCollectLeaked(t *testing.T) {
	dev, drv := newTestDevice(t)
	id := leakBuffer(dev)

	collected := 0
	for i := 0; i < 50 && collected == 0; i++ {
		runtime.GC()
		time.Sleep(5 * time.Millisecond)
		collected += dev.Collect()
	}
	if collected != 1 {
		t.Fatalf("Collect() reclaimed %d objects, want 1", collected)
	}
	if drv.IsLive(driver.ResourceBuffer, id) {
		t.Error("leaked buffer still live after Collect")
	}
	if dev.Live() != 0 {
		t.Errorf("Live() = %d, want 0", dev.Live())
	}

	runtime.GC()
	if n := dev.Collect(); n != 0 {
		t.Errorf("second Collect() = %d, want 0", n)
	}
	checkDriverErrors(t, drv)
}

// collectAll runs the garbage collector until Collect reclaims something.
func collectAll(dev *Device) int {
	collected := 0
	for i := 0; i < 50 && collected == 0; i++ {
		runtime.GC()
		time.Sleep(5 * time.Millisecond)
		collected += dev.Collect()
	}
	return collected
}

func leakProgram(dev *Device, vs, fs *Stage) {
	dev.MustProgram(vs, fs)
}

func TestCollectLeakedProgramReleasesStages(t *testing.T) {
	dev, drv := newTestDevice(t)
	vs := dev.MustStage(driver.VertexShader, passVertexSrc)
	fs := dev.MustStage(driver.FragmentShader, passFragmentSrc)
	leakProgram(dev, vs, fs)

	if n := collectAll(dev); n != 1 {
		t.Fatalf("Collect() reclaimed %d objects, want 1", n)
	}
	if got := drv.Deleted(driver.ResourceProgram); got != 1 {
		t.Errorf("Deleted(Program) = %d, want 1", got)
	}
	if vs.Handle().Refs() != 1 || fs.Handle().Refs() != 1 {
		t.Errorf("stage Refs() = %d, %d after collect, want 1, 1",
			vs.Handle().Refs(), fs.Handle().Refs())
	}

	vs.Release()
	fs.Release()
	if got := drv.Deleted(driver.ResourceShader); got != 2 {
		t.Errorf("Deleted(Shader) = %d, want 2", got)
	}
	if dev.Live() != 0 {
		t.Errorf("Live() = %d, want 0", dev.Live())
	}
	checkDriverErrors(t, drv)
}

func leakVertexArray(dev *Device, vertices, indices *Buffer) {
	va := dev.NewVertexArray()
	va.SetPointer(0, vertices, 2, driver.Float, false, 0, 0)
	va.AddIndices(indices, 3)
}

func TestCollectLeakedVertexArrayReleasesBuffers(t *testing.T) {
	dev, drv := newTestDevice(t)
	vertices := dev.NewBuffer(driver.ArrayBuffer)
	indices := dev.NewBuffer(driver.ElementArrayBuffer)
	leakVertexArray(dev, vertices, indices)

	if n := collectAll(dev); n != 1 {
		t.Fatalf("Collect() reclaimed %d objects, want 1", n)
	}
	if vertices.Handle().Refs() != 1 || indices.Handle().Refs() != 1 {
		t.Errorf("buffer Refs() = %d, %d after collect, want 1, 1",
			vertices.Handle().Refs(), indices.Handle().Refs())
	}

	vertices.Release()
	indices.Release()
	if got := drv.Deleted(driver.ResourceBuffer); got != 2 {
		t.Errorf("Deleted(Buffer) = %d, want 2", got)
	}
	if dev.Live() != 0 {
		t.Errorf("Live() = %d, want 0", dev.Live())
	}
	checkDriverErrors(t, drv)
}

// TestCollectLeakedOwnerAndChildren drops an array together with its only
// buffer: the buffer is kept alive by the array and deleted once, by the
// array's reclaim.
func TestCollectLeakedOwnerAndChildren(t *testing.T) {
	dev, drv := newTestDevice(t)
	func() {
		buf := dev.NewBuffer(driver.ArrayBuffer)
		va := dev.NewVertexArray()
		va.SetPointer(0, buf, 2, driver.Float, false, 0, 0)
		buf.Release()
	}()

	if n := collectAll(dev); n != 1 {
		t.Fatalf("Collect() reclaimed %d objects, want 1", n)
	}
	if got := drv.Deleted(driver.ResourceBuffer); got != 1 {
		t.Errorf("Deleted(Buffer) = %d, want 1", got)
	}
	if dev.Live() != 0 {
		t.Errorf("Live() = %d, want 0", dev.Live())
	}
	checkDriverErrors(t, drv)
}

func TestCollectSkipsReleased(t *testing.T) {
	dev, drv := newTestDevice(t)
	func() {
		dev.NewBuffer(driver.ArrayBuffer).Release()
	}()
	for range 3 {
		runtime.GC()
	}
	time.Sleep(10 * time.Millisecond)
	if n := dev.Collect(); n != 0 {
		t.Errorf("Collect() = %d for released objects, want 0", n)
	}
	if got := drv.Deleted(driver.ResourceBuffer); got != 1 {
		t.Errorf("Deleted() = %d, want 1", got)
	}
	checkDriverErrors(t, drv)
}

func TestDeviceClose(t *testing.T) {
	dev, _ := newTestDevice(t)
	b := dev.NewBuffer(driver.ArrayBuffer)
	dev.Close()
	if dev.Live() != 1 {
		t.Errorf("Live() = %d after Close, want 1 (owned objects survive)", dev.Live())
	}
	b.Release()
}
