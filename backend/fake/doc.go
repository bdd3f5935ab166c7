// Package fake provides an in-memory recording driver.
//
// The driver keeps enough state to stand in for a real GL context in
// tests and headless runs: buffer stores can be read back, vertex array
// layouts and bindings are tracked, shaders are "compiled" by scanning
// GLSL declarations, and linking assigns attribute and uniform locations
// the way a driver would (explicit layout locations first, then the lowest
// free run). Every call is appended to Driver.Calls.
//
// Compilation fails for sources containing an #error directive:
//
//	#version 460 core
//	#error unsupported configuration
//
// Link and validation failures are scripted with Driver.FailLink and
// Driver.FailValidate.
//
// Importing the package registers the driver as "fake":
//
//	import _ "github.com/gogpu/glkit/backend/fake"
package fake
