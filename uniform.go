package glkit

import (
	"fmt"
	"unsafe"
)

// Uniform is one reflected uniform slot of a Program.
//
// A Uniform is only meaningful while its program is alive. It keeps a
// reference to the program, so use after the program's last Release is
// detected and panics with ErrProgramReleased instead of writing to a
// location that may belong to a different object.
type Uniform struct {
	program  *Program
	name     string
	location int32
	size     int32
	typ      UniformType
}

// Name returns the name the uniform was looked up with.
func (u *Uniform) Name() string { return u.name }

// Location returns the driver slot of the uniform.
func (u *Uniform) Location() int32 { return u.location }

// Size returns the number of array elements the uniform covers; 1 for
// non-array uniforms.
func (u *Uniform) Size() int32 { return u.size }

// Type returns the uniform's value type.
func (u *Uniform) Type() UniformType { return u.typ }

// Program returns the program the uniform was reflected from.
func (u *Uniform) Program() *Program { return u.program }

func (u *Uniform) String() string {
	return fmt.Sprintf("Uniform(%s %s[%d] @%d)", u.typ.GLSLName(), u.name, u.size, u.location)
}

// SetUniform uploads values to u through the driver entry point selected by
// the uniform's type. The program must be bound (see Program.Bind).
//
// T is any plain value type whose memory layout matches what the driver
// reads: float32 or f32.Vec4 for vec4, int32 for int, bool and sampler
// types, [16]float32 or f32.Mat4 for mat4, and so on. The values are read
// as one contiguous byte slice, so one Vec4 and four float32 are
// equivalent for a vec4 uniform. Matrices are never transposed: supply them
// in column-major order.
//
// SetUniform panics with ErrUniformAlignment when the size of T is not a
// multiple of 4 bytes, and with ErrUniformPayload when values holds fewer
// bytes than Size elements of the uniform's type. Both checks happen
// before any driver call.
func SetUniform[T any](u *Uniform, values ...T) {
	u.checkProgram()

	var zero T
	elem := int(unsafe.Sizeof(zero))
	if elem%4 != 0 {
		panic(fmt.Errorf("%w: %T is %d bytes", ErrUniformAlignment, zero, elem))
	}
	have := elem * len(values)
	want := int(u.size) * u.typ.Bytes()
	if have < want {
		panic(fmt.Errorf("%w: %s needs %d bytes, got %d", ErrUniformPayload, u.name, want, have))
	}

	u.program.dev.drv.Uniform(u.typ.Call(), u.location, u.size, false,
		unsafe.Pointer(unsafe.SliceData(values)))
}

func (u *Uniform) checkProgram() {
	if u.program.handle.Released() {
		panic(fmt.Errorf("%w: %s", ErrProgramReleased, u.name))
	}
}
