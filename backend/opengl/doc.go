// Package opengl implements driver.Driver on top of the go-gl OpenGL 4.6
// core bindings.
//
// The driver is stateless: every method is one GL call (or a short fixed
// sequence for info logs and reflection) against the context current on
// the calling thread. GL contexts are bound to OS threads, so the
// goroutine that creates the context must call runtime.LockOSThread and
// issue all glkit calls.
//
//	runtime.LockOSThread()
//	window.MakeContextCurrent()
//	drv, err := opengl.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	dev := glkit.NewDevice(drv)
//
// Importing the package registers the driver as "opengl". The registry
// factory fails with ErrNoContext when no context is current, so
// backend.Default falls through to the next backend.
package opengl
