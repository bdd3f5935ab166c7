// Package driver defines the boundary between glkit and a graphics driver.
//
// The [Driver] interface lists every primitive glkit issues: object
// creation and deletion, binding, uploads, draw submission, shader
// compilation, program linking and introspection. The enum types in this
// package carry the driver's own constant values, so a backend can pass them
// through unchanged.
//
// # Backends
//
//	+-------------------+
//	|       glkit       |
//	| (handles, arrays, |
//	|  programs, ...)   |
//	+---------+---------+
//	          |
//	   driver.Driver
//	          |
//	+---------+---------+
//	|                   |
//	v                   v
//	backend/opengl      backend/fake
//	(go-gl, cgo)        (recording, in-memory)
//
// # Threading
//
// Driver implementations inherit the underlying API's rule of one current
// context per thread. Callers keep all driver traffic on one goroutine
// (locked to its OS thread for real contexts).
package driver
