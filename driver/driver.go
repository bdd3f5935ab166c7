package driver

import "unsafe"

// Driver is the foreign API boundary: every call glkit issues against the
// graphics driver goes through this interface.
//
// Implementations are thin. They do not validate ids, cache binding state or
// serialize access; the driver's own single-context-per-thread rules apply,
// so a Driver must only be used from the goroutine that owns the context.
//
// Strings passed to Driver methods are already null-terminated.
//
// Resource lifecycle:
//   - Buffers, vertex arrays and programs are allocated via Create
//   - Shaders are allocated via CreateShader (a stage kind is required)
//   - Every object is freed exactly once via Delete
//   - Ids become invalid after Delete and must not be used again
type Driver interface {
	// === Object Lifetime ===

	// Create allocates one object of the given kind and returns its name.
	// The driver offers no failure signal; an invalid name surfaces later
	// as undefined driver behavior.
	Create(kind Resource) uint32

	// Delete frees one object of the given kind.
	Delete(kind Resource, id uint32)

	// CreateShader allocates a shader object for the given stage.
	CreateShader(kind StageKind) uint32

	// === Buffers ===

	// BindBuffer makes id the current buffer on target. Zero unbinds.
	BindBuffer(target BufferTarget, id uint32)

	// BufferData replaces the store of the buffer bound to target with
	// size bytes read from data. data may be nil when size is zero.
	BufferData(target BufferTarget, size int, data unsafe.Pointer, usage Usage)

	// === Vertex Arrays ===

	// BindVertexArray makes id the current vertex array. Zero unbinds.
	BindVertexArray(id uint32)

	// VertexAttribPointer describes the layout of attribute slot in the
	// buffer currently bound to ArrayBuffer.
	VertexAttribPointer(slot uint32, size int32, typ ComponentType, normalized bool, stride int32, offset uintptr)

	// EnableVertexAttribArray enables attribute slot on the bound vertex array.
	EnableVertexAttribArray(slot uint32)

	// DrawArrays issues a non-indexed draw.
	DrawArrays(mode DrawMode, first, count int32)

	// DrawElements issues an indexed draw from the bound element buffer.
	DrawElements(mode DrawMode, count int32, typ ComponentType, offset uintptr)

	// === Shaders ===

	// ShaderSource replaces the source of a shader object.
	ShaderSource(shader uint32, src string)

	// CompileShader compiles the current source of a shader object.
	CompileShader(shader uint32)

	// ShaderBinary loads a SPIR-V module into a shader object.
	ShaderBinary(shader uint32, format uint32, binary []byte)

	// SpecializeShader selects the entry point of a SPIR-V shader and
	// completes its compilation.
	SpecializeShader(shader uint32, entry string)

	// GetShaderParameter returns a shader object parameter.
	GetShaderParameter(shader uint32, p Parameter) int32

	// ShaderInfoLog returns the shader info log, truncated to maxLen bytes.
	ShaderInfoLog(shader uint32, maxLen int) string

	// === Programs ===

	// AttachShader attaches a shader object to a program.
	AttachShader(program, shader uint32)

	// LinkProgram links a program.
	LinkProgram(program uint32)

	// ValidateProgram validates a program against the current state.
	ValidateProgram(program uint32)

	// GetProgramParameter returns a program object parameter.
	GetProgramParameter(program uint32, p Parameter) int32

	// ProgramInfoLog returns the program info log, truncated to maxLen bytes.
	ProgramInfoLog(program uint32, maxLen int) string

	// UseProgram makes program current. Zero unbinds.
	UseProgram(program uint32)

	// === Reflection ===

	// ActiveAttrib describes the active attribute at index.
	// The name is truncated to maxLen bytes.
	ActiveAttrib(program, index uint32, maxLen int) (name string, size int32, typ uint32)

	// ActiveUniform describes the active uniform at index.
	// The name is truncated to maxLen bytes.
	ActiveUniform(program, index uint32, maxLen int) (name string, size int32, typ uint32)

	// AttribLocation returns the location of a named attribute, or -1.
	AttribLocation(program uint32, name string) int32

	// UniformLocation returns the location of a named uniform, or -1.
	UniformLocation(program uint32, name string) int32

	// === Uniform Upload ===

	// Uniform uploads count elements read from data to location of the
	// current program through the entry point named by call. transpose is
	// only meaningful for matrix calls.
	Uniform(call UniformCall, location, count int32, transpose bool, data unsafe.Pointer)
}
