package opengl

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/gogpu/glkit/backend"
	"github.com/gogpu/glkit/driver"
)

// ErrNoContext is returned by New when no GL context is current on the
// calling thread.
var ErrNoContext = errors.New("opengl: no current context")

// init registers the opengl backend on package import.
func init() {
	backend.Register(backend.BackendOpenGL, func() (driver.Driver, error) {
		return New()
	})
}

// Driver issues calls against the GL context current on the calling
// thread. It has no state of its own.
type Driver struct {
	version string
}

var _ driver.Driver = (*Driver)(nil)

// New loads the GL 4.6 core entry points and checks that a context is
// current. The caller must have made a context current on a locked OS
// thread (see runtime.LockOSThread).
func New() (*Driver, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("opengl: init: %w", err)
	}
	v := gl.GetString(gl.VERSION)
	if v == nil {
		return nil, ErrNoContext
	}
	return &Driver{version: gl.GoStr(v)}, nil
}

// Version returns the GL version string of the context.
func (d *Driver) Version() string { return d.version }

// === Object Lifetime ===

// Create allocates one object of kind.
func (d *Driver) Create(kind driver.Resource) uint32 {
	var id uint32
	switch kind {
	case driver.ResourceBuffer:
		gl.CreateBuffers(1, &id)
	case driver.ResourceVertexArray:
		gl.CreateVertexArrays(1, &id)
	case driver.ResourceProgram:
		id = gl.CreateProgram()
	default:
		panic(fmt.Sprintf("opengl: Create: unsupported resource %s", kind))
	}
	return id
}

// Delete frees one object of kind.
func (d *Driver) Delete(kind driver.Resource, id uint32) {
	switch kind {
	case driver.ResourceBuffer:
		gl.DeleteBuffers(1, &id)
	case driver.ResourceVertexArray:
		gl.DeleteVertexArrays(1, &id)
	case driver.ResourceShader:
		gl.DeleteShader(id)
	case driver.ResourceProgram:
		gl.DeleteProgram(id)
	default:
		panic(fmt.Sprintf("opengl: Delete: unsupported resource %s", kind))
	}
}

// CreateShader allocates a shader object.
func (d *Driver) CreateShader(kind driver.StageKind) uint32 {
	return gl.CreateShader(uint32(kind))
}

// === Buffers ===

func (d *Driver) BindBuffer(target driver.BufferTarget, id uint32) {
	gl.BindBuffer(uint32(target), id)
}

func (d *Driver) BufferData(target driver.BufferTarget, size int, data unsafe.Pointer, usage driver.Usage) {
	gl.BufferData(uint32(target), size, data, uint32(usage))
}

// === Vertex Arrays ===

func (d *Driver) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (d *Driver) VertexAttribPointer(slot uint32, size int32, typ driver.ComponentType, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(slot, size, uint32(typ), normalized, stride, offset)
}

func (d *Driver) EnableVertexAttribArray(slot uint32) {
	gl.EnableVertexAttribArray(slot)
}

func (d *Driver) DrawArrays(mode driver.DrawMode, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

func (d *Driver) DrawElements(mode driver.DrawMode, count int32, typ driver.ComponentType, offset uintptr) {
	gl.DrawElementsWithOffset(uint32(mode), count, uint32(typ), offset)
}

// === Shaders ===

func (d *Driver) ShaderSource(shader uint32, src string) {
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(shader, 1, csrc, nil)
}

func (d *Driver) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (d *Driver) ShaderBinary(shader uint32, format uint32, bin []byte) {
	if len(bin) == 0 {
		gl.ShaderBinary(1, &shader, format, nil, 0)
		return
	}
	gl.ShaderBinary(1, &shader, format, unsafe.Pointer(&bin[0]), int32(len(bin)))
}

func (d *Driver) SpecializeShader(shader uint32, entry string) {
	gl.SpecializeShader(shader, gl.Str(entry), 0, nil, nil)
}

func (d *Driver) GetShaderParameter(shader uint32, p driver.Parameter) int32 {
	var v int32
	gl.GetShaderiv(shader, uint32(p), &v)
	return v
}

func (d *Driver) ShaderInfoLog(shader uint32, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	buf := make([]uint8, maxLen)
	var n int32
	gl.GetShaderInfoLog(shader, int32(maxLen), &n, &buf[0])
	return string(buf[:n])
}

// === Programs ===

func (d *Driver) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Driver) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (d *Driver) ValidateProgram(program uint32) {
	gl.ValidateProgram(program)
}

func (d *Driver) GetProgramParameter(program uint32, p driver.Parameter) int32 {
	var v int32
	gl.GetProgramiv(program, uint32(p), &v)
	return v
}

func (d *Driver) ProgramInfoLog(program uint32, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	buf := make([]uint8, maxLen)
	var n int32
	gl.GetProgramInfoLog(program, int32(maxLen), &n, &buf[0])
	return string(buf[:n])
}

func (d *Driver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

// === Reflection ===

func (d *Driver) ActiveAttrib(program, index uint32, maxLen int) (string, int32, uint32) {
	if maxLen <= 0 {
		return "", 0, 0
	}
	buf := make([]uint8, maxLen)
	var n, size int32
	var typ uint32
	gl.GetActiveAttrib(program, index, int32(maxLen), &n, &size, &typ, &buf[0])
	return string(buf[:n]), size, typ
}

func (d *Driver) ActiveUniform(program, index uint32, maxLen int) (string, int32, uint32) {
	if maxLen <= 0 {
		return "", 0, 0
	}
	buf := make([]uint8, maxLen)
	var n, size int32
	var typ uint32
	gl.GetActiveUniform(program, index, int32(maxLen), &n, &size, &typ, &buf[0])
	return string(buf[:n]), size, typ
}

func (d *Driver) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name))
}

func (d *Driver) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name))
}

// === Uniform Upload ===

// Uniform dispatches to the typed glUniform entry point named by call.
func (d *Driver) Uniform(call driver.UniformCall, loc, n int32, transpose bool, data unsafe.Pointer) {
	i := (*int32)(data)
	u := (*uint32)(data)
	f := (*float32)(data)
	f64 := (*float64)(data)

	switch call {
	case driver.Uniform1iv:
		gl.Uniform1iv(loc, n, i)
	case driver.Uniform2iv:
		gl.Uniform2iv(loc, n, i)
	case driver.Uniform3iv:
		gl.Uniform3iv(loc, n, i)
	case driver.Uniform4iv:
		gl.Uniform4iv(loc, n, i)

	case driver.Uniform1uiv:
		gl.Uniform1uiv(loc, n, u)
	case driver.Uniform2uiv:
		gl.Uniform2uiv(loc, n, u)
	case driver.Uniform3uiv:
		gl.Uniform3uiv(loc, n, u)
	case driver.Uniform4uiv:
		gl.Uniform4uiv(loc, n, u)

	case driver.Uniform1fv:
		gl.Uniform1fv(loc, n, f)
	case driver.Uniform2fv:
		gl.Uniform2fv(loc, n, f)
	case driver.Uniform3fv:
		gl.Uniform3fv(loc, n, f)
	case driver.Uniform4fv:
		gl.Uniform4fv(loc, n, f)

	case driver.Uniform1dv:
		gl.Uniform1dv(loc, n, f64)
	case driver.Uniform2dv:
		gl.Uniform2dv(loc, n, f64)
	case driver.Uniform3dv:
		gl.Uniform3dv(loc, n, f64)
	case driver.Uniform4dv:
		gl.Uniform4dv(loc, n, f64)

	case driver.UniformMatrix2fv:
		gl.UniformMatrix2fv(loc, n, transpose, f)
	case driver.UniformMatrix3fv:
		gl.UniformMatrix3fv(loc, n, transpose, f)
	case driver.UniformMatrix4fv:
		gl.UniformMatrix4fv(loc, n, transpose, f)
	case driver.UniformMatrix2x3fv:
		gl.UniformMatrix2x3fv(loc, n, transpose, f)
	case driver.UniformMatrix2x4fv:
		gl.UniformMatrix2x4fv(loc, n, transpose, f)
	case driver.UniformMatrix3x2fv:
		gl.UniformMatrix3x2fv(loc, n, transpose, f)
	case driver.UniformMatrix3x4fv:
		gl.UniformMatrix3x4fv(loc, n, transpose, f)
	case driver.UniformMatrix4x2fv:
		gl.UniformMatrix4x2fv(loc, n, transpose, f)
	case driver.UniformMatrix4x3fv:
		gl.UniformMatrix4x3fv(loc, n, transpose, f)

	case driver.UniformMatrix2dv:
		gl.UniformMatrix2dv(loc, n, transpose, f64)
	case driver.UniformMatrix3dv:
		gl.UniformMatrix3dv(loc, n, transpose, f64)
	case driver.UniformMatrix4dv:
		gl.UniformMatrix4dv(loc, n, transpose, f64)
	case driver.UniformMatrix2x3dv:
		gl.UniformMatrix2x3dv(loc, n, transpose, f64)
	case driver.UniformMatrix2x4dv:
		gl.UniformMatrix2x4dv(loc, n, transpose, f64)
	case driver.UniformMatrix3x2dv:
		gl.UniformMatrix3x2dv(loc, n, transpose, f64)
	case driver.UniformMatrix3x4dv:
		gl.UniformMatrix3x4dv(loc, n, transpose, f64)
	case driver.UniformMatrix4x2dv:
		gl.UniformMatrix4x2dv(loc, n, transpose, f64)
	case driver.UniformMatrix4x3dv:
		gl.UniformMatrix4x3dv(loc, n, transpose, f64)

	default:
		panic(fmt.Sprintf("opengl: Uniform: unsupported call %s", call))
	}
}
