package driver

import "fmt"

// UniformCall names one of the driver's typed uniform upload entry points.
// Each value corresponds to exactly one glUniform*v / glUniformMatrix*v call.
type UniformCall uint8

// Uniform upload entry points.
const (
	UniformCallNone UniformCall = iota

	Uniform1iv
	Uniform2iv
	Uniform3iv
	Uniform4iv

	Uniform1uiv
	Uniform2uiv
	Uniform3uiv
	Uniform4uiv

	Uniform1fv
	Uniform2fv
	Uniform3fv
	Uniform4fv

	Uniform1dv
	Uniform2dv
	Uniform3dv
	Uniform4dv

	UniformMatrix2fv
	UniformMatrix3fv
	UniformMatrix4fv
	UniformMatrix2x3fv
	UniformMatrix2x4fv
	UniformMatrix3x2fv
	UniformMatrix3x4fv
	UniformMatrix4x2fv
	UniformMatrix4x3fv

	UniformMatrix2dv
	UniformMatrix3dv
	UniformMatrix4dv
	UniformMatrix2x3dv
	UniformMatrix2x4dv
	UniformMatrix3x2dv
	UniformMatrix3x4dv
	UniformMatrix4x2dv
	UniformMatrix4x3dv

	uniformCallCount
)

var uniformCallNames = [uniformCallCount]string{
	UniformCallNone: "None",

	Uniform1iv: "Uniform1iv",
	Uniform2iv: "Uniform2iv",
	Uniform3iv: "Uniform3iv",
	Uniform4iv: "Uniform4iv",

	Uniform1uiv: "Uniform1uiv",
	Uniform2uiv: "Uniform2uiv",
	Uniform3uiv: "Uniform3uiv",
	Uniform4uiv: "Uniform4uiv",

	Uniform1fv: "Uniform1fv",
	Uniform2fv: "Uniform2fv",
	Uniform3fv: "Uniform3fv",
	Uniform4fv: "Uniform4fv",

	Uniform1dv: "Uniform1dv",
	Uniform2dv: "Uniform2dv",
	Uniform3dv: "Uniform3dv",
	Uniform4dv: "Uniform4dv",

	UniformMatrix2fv:   "UniformMatrix2fv",
	UniformMatrix3fv:   "UniformMatrix3fv",
	UniformMatrix4fv:   "UniformMatrix4fv",
	UniformMatrix2x3fv: "UniformMatrix2x3fv",
	UniformMatrix2x4fv: "UniformMatrix2x4fv",
	UniformMatrix3x2fv: "UniformMatrix3x2fv",
	UniformMatrix3x4fv: "UniformMatrix3x4fv",
	UniformMatrix4x2fv: "UniformMatrix4x2fv",
	UniformMatrix4x3fv: "UniformMatrix4x3fv",

	UniformMatrix2dv:   "UniformMatrix2dv",
	UniformMatrix3dv:   "UniformMatrix3dv",
	UniformMatrix4dv:   "UniformMatrix4dv",
	UniformMatrix2x3dv: "UniformMatrix2x3dv",
	UniformMatrix2x4dv: "UniformMatrix2x4dv",
	UniformMatrix3x2dv: "UniformMatrix3x2dv",
	UniformMatrix3x4dv: "UniformMatrix3x4dv",
	UniformMatrix4x2dv: "UniformMatrix4x2dv",
	UniformMatrix4x3dv: "UniformMatrix4x3dv",
}

// String returns the GL entry point name without the gl prefix.
func (c UniformCall) String() string {
	if c < uniformCallCount {
		return uniformCallNames[c]
	}
	return fmt.Sprintf("UniformCall(%d)", uint8(c))
}

// IsMatrix reports whether the call takes a transpose flag.
func (c UniformCall) IsMatrix() bool {
	return c >= UniformMatrix2fv && c <= UniformMatrix4x3dv
}

// ElementSize returns the number of bytes the call reads per element
// (one scalar, vector or matrix), or 0 for UniformCallNone.
func (c UniformCall) ElementSize() int {
	switch c {
	case Uniform1iv, Uniform1uiv, Uniform1fv:
		return 4
	case Uniform2iv, Uniform2uiv, Uniform2fv, Uniform1dv:
		return 8
	case Uniform3iv, Uniform3uiv, Uniform3fv:
		return 12
	case Uniform4iv, Uniform4uiv, Uniform4fv, Uniform2dv, UniformMatrix2fv:
		return 16
	case Uniform3dv, UniformMatrix2x3fv, UniformMatrix3x2fv:
		return 24
	case Uniform4dv, UniformMatrix2x4fv, UniformMatrix4x2fv, UniformMatrix2dv:
		return 32
	case UniformMatrix3fv:
		return 36
	case UniformMatrix3x4fv, UniformMatrix4x3fv, UniformMatrix2x3dv, UniformMatrix3x2dv:
		return 48
	case UniformMatrix4fv, UniformMatrix2x4dv, UniformMatrix4x2dv:
		return 64
	case UniformMatrix3dv:
		return 72
	case UniformMatrix3x4dv, UniformMatrix4x3dv:
		return 96
	case UniformMatrix4dv:
		return 128
	default:
		return 0
	}
}
