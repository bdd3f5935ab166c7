// Package backend provides a registry of graphics drivers.
//
// Driver packages register a factory from their init function, so a
// program selects backends with blank imports:
//
//	import (
//		_ "github.com/gogpu/glkit/backend/fake"
//		_ "github.com/gogpu/glkit/backend/opengl"
//	)
//
// # Backend Selection
//
// Use Default to create the best available driver, or Get to request a
// specific one by name:
//
//	// Best available: opengl when a context is current, else fake
//	name, drv, err := backend.Default()
//
//	// Or a specific backend
//	drv, err := backend.Get("fake")
//
// The driver is then handed to glkit:
//
//	dev := glkit.NewDevice(drv)
//
// # Available Backends
//
//   - "opengl": go-gl bindings against the current GL 4.6 core context
//   - "fake": in-memory recording driver for tests and headless runs
package backend
