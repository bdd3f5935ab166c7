// Package glkit provides safe ownership of OpenGL driver objects.
//
// # Overview
//
// glkit is a thin layer over a graphics driver. It does not render
// anything itself: it ties driver-assigned object names (buffers, vertex
// arrays, shaders, programs) to explicit shared ownership, reflects
// program uniforms into typed slots, and issues the binding sequence for
// a draw. Everything else is the driver's business.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/glkit"
//		"github.com/gogpu/glkit/backend/opengl"
//		"github.com/gogpu/glkit/driver"
//	)
//
//	drv, err := opengl.New() // a context must be current
//	dev := glkit.NewDevice(drv)
//
//	positions := dev.NewBuffer(driver.ArrayBuffer)
//	glkit.SetData(positions, []f32.Vec2{{-1, -1}, {1, -1}, {0, 1}}, driver.StaticDraw)
//
//	vao := dev.NewVertexArray()
//	vao.SetPointer(0, positions, 2, driver.Float, false, 0, 0)
//	vao.SetDrawMode(driver.Triangles)
//	vao.SetCount(3)
//	positions.Release() // the array keeps its own reference
//
//	vs := dev.MustStage(driver.VertexShader, vertexSrc)
//	fs := dev.MustStage(driver.FragmentShader, fragmentSrc)
//	prog := dev.MustProgram(vs, fs)
//
//	vao.Draw(prog, glkit.NoUniforms)
//
// # Ownership
//
// Every object starts with one owner, the caller. Retain adds an owner and
// Release drops one; the driver object is deleted exactly once, by the
// last Release. Containers own what they hold: a Program retains its
// stages and a VertexArray retains its buffers, so callers may release
// their own references as soon as the container has them.
//
// Objects whose last Go reference disappears without a Release are found
// by the garbage collector and deleted by the next Device.Collect call.
// This is a safety net; Collect logs a warning for every object it
// reclaims.
//
// # Errors
//
// Shader compilation, program linking and validation return errors that
// carry the driver's info log (*CompileError, *LinkError). The Must
// variants panic instead. Contract violations, such as an unknown uniform
// type reported by the driver, a uniform payload the driver would read
// past, or a non-index buffer passed to AddIndices, panic with one of the
// sentinel errors of this package.
//
// # Threading
//
// A Device and everything created from it must be used from the goroutine
// that owns the driver context. glkit does not cache or guard binding
// state.
package glkit

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
