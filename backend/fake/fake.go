package fake

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"slices"
	"strings"
	"unsafe"

	"github.com/gogpu/glkit/backend"
	"github.com/gogpu/glkit/driver"
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// init registers the fake driver on package import.
func init() {
	backend.Register(backend.BackendFake, func() (driver.Driver, error) {
		return New(), nil
	})
}

// Call is one recorded driver call.
type Call struct {
	Op   string
	Args []any
}

// String formats the call as Op(arg, arg, ...).
func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}
	return c.Op + "(" + strings.Join(args, ", ") + ")"
}

// AttribState is the recorded layout of one vertex array slot.
type AttribState struct {
	Buffer     uint32
	Size       int32
	Type       driver.ComponentType
	Normalized bool
	Stride     int32
	Offset     uintptr
	Enabled    bool
}

type buffer struct {
	data  []byte
	usage driver.Usage
}

type vertexArray struct {
	attribs  map[uint32]*AttribState
	elements uint32
}

type shader struct {
	kind     driver.StageKind
	source   string
	compiled bool
	log      string
	decls    declarations
	spirv    []byte
}

type program struct {
	shaders   []uint32
	linked    bool
	validated bool
	log       string
	inputs    []variable
	uniforms  []variable
	values    map[int32][]byte
}

// Driver is an in-memory driver.Driver that records every call.
//
// It models the parts of GL state glkit depends on: object names, buffer
// contents, bindings, vertex array layouts, shader compilation by scanning
// GLSL declarations, program linking with location assignment, and uniform
// storage. Contract violations (double deletes, uploads without a bound
// object, strings without a terminator) do not panic; they are appended
// to Errors.
//
// Driver is not safe for concurrent use, like a real context.
type Driver struct {
	// Calls is the call log in issue order.
	Calls []Call

	// Errors lists contract violations in the order they happened.
	Errors []string

	// FailLink, when non-empty, makes every link fail with this log.
	FailLink string

	// FailValidate, when non-empty, makes every validation fail with this log.
	FailValidate string

	next     uint32
	live     map[driver.Resource]map[uint32]bool
	created  map[driver.Resource]int
	deleted  map[driver.Resource]int
	buffers  map[uint32]*buffer
	arrays   map[uint32]*vertexArray
	shaders  map[uint32]*shader
	programs map[uint32]*program

	bound   map[driver.BufferTarget]uint32
	array   uint32
	current uint32
}

var _ driver.Driver = (*Driver)(nil)

// New creates an empty fake driver.
func New() *Driver {
	return &Driver{
		live:     make(map[driver.Resource]map[uint32]bool),
		created:  make(map[driver.Resource]int),
		deleted:  make(map[driver.Resource]int),
		buffers:  make(map[uint32]*buffer),
		arrays:   make(map[uint32]*vertexArray),
		shaders:  make(map[uint32]*shader),
		programs: make(map[uint32]*program),
		bound:    make(map[driver.BufferTarget]uint32),
	}
}

func (d *Driver) record(op string, args ...any) {
	d.Calls = append(d.Calls, Call{Op: op, Args: args})
}

func (d *Driver) fail(format string, args ...any) {
	d.Errors = append(d.Errors, fmt.Sprintf(format, args...))
}

// cstr checks the terminator and strips it.
func (d *Driver) cstr(op, s string) string {
	if !strings.HasSuffix(s, "\x00") {
		d.fail("%s: string %q is not null-terminated", op, s)
		return s
	}
	return strings.TrimSuffix(s, "\x00")
}

// === Inspection ===

// Ops returns the operation names of the call log.
func (d *Driver) Ops() []string {
	ops := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		ops[i] = c.Op
	}
	return ops
}

// CallsOf returns the recorded calls of one operation.
func (d *Driver) CallsOf(op string) []Call {
	var out []Call
	for _, c := range d.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears the call log and the error list. Object state is kept.
func (d *Driver) Reset() {
	d.Calls = nil
	d.Errors = nil
}

// Created returns how many objects of kind were created.
func (d *Driver) Created(kind driver.Resource) int { return d.created[kind] }

// Deleted returns how many objects of kind were deleted.
func (d *Driver) Deleted(kind driver.Resource) int { return d.deleted[kind] }

// Live returns how many objects of kind exist.
func (d *Driver) Live(kind driver.Resource) int { return len(d.live[kind]) }

// IsLive reports whether id names an existing object of kind.
func (d *Driver) IsLive(kind driver.Resource, id uint32) bool { return d.live[kind][id] }

// BufferContents returns a copy of the store of buffer id.
func (d *Driver) BufferContents(id uint32) []byte {
	if b, ok := d.buffers[id]; ok {
		return bytes.Clone(b.data)
	}
	return nil
}

// BufferUsage returns the usage hint of the last upload to buffer id.
func (d *Driver) BufferUsage(id uint32) driver.Usage {
	if b, ok := d.buffers[id]; ok {
		return b.usage
	}
	return 0
}

// BoundBuffer returns the buffer bound to target.
func (d *Driver) BoundBuffer(target driver.BufferTarget) uint32 { return d.bound[target] }

// BoundVertexArray returns the bound vertex array.
func (d *Driver) BoundVertexArray() uint32 { return d.array }

// CurrentProgram returns the program in use.
func (d *Driver) CurrentProgram() uint32 { return d.current }

// Attrib returns the recorded layout of slot in vertex array id.
func (d *Driver) Attrib(id, slot uint32) (AttribState, bool) {
	va, ok := d.arrays[id]
	if !ok {
		return AttribState{}, false
	}
	a, ok := va.attribs[slot]
	if !ok {
		return AttribState{}, false
	}
	return *a, true
}

// ElementBuffer returns the element buffer recorded in vertex array id.
func (d *Driver) ElementBuffer(id uint32) uint32 {
	if va, ok := d.arrays[id]; ok {
		return va.elements
	}
	return 0
}

// Source returns the last source submitted to shader id, without
// its terminator.
func (d *Driver) Source(id uint32) string {
	if s, ok := d.shaders[id]; ok {
		return s.source
	}
	return ""
}

// SPIRV returns the binary loaded into shader id.
func (d *Driver) SPIRV(id uint32) []byte {
	if s, ok := d.shaders[id]; ok {
		return s.spirv
	}
	return nil
}

// UniformData returns the bytes last uploaded to location of program id.
func (d *Driver) UniformData(id uint32, location int32) []byte {
	if p, ok := d.programs[id]; ok {
		return p.values[location]
	}
	return nil
}

// === Object Lifetime ===

func (d *Driver) add(kind driver.Resource) uint32 {
	d.next++
	id := d.next
	if d.live[kind] == nil {
		d.live[kind] = make(map[uint32]bool)
	}
	d.live[kind][id] = true
	d.created[kind]++
	return id
}

// Create allocates an object name of kind.
func (d *Driver) Create(kind driver.Resource) uint32 {
	if kind == driver.ResourceShader {
		d.fail("Create: shaders are created with CreateShader")
	}
	id := d.add(kind)
	switch kind {
	case driver.ResourceBuffer:
		d.buffers[id] = &buffer{}
	case driver.ResourceVertexArray:
		d.arrays[id] = &vertexArray{attribs: make(map[uint32]*AttribState)}
	case driver.ResourceProgram:
		d.programs[id] = &program{values: make(map[int32][]byte)}
	}
	d.record("Create", kind, id)
	return id
}

// Delete frees an object name. Deleting a name twice is recorded as an error.
func (d *Driver) Delete(kind driver.Resource, id uint32) {
	d.record("Delete", kind, id)
	if !d.live[kind][id] {
		d.fail("Delete: %s %d is not live", kind, id)
		return
	}
	delete(d.live[kind], id)
	d.deleted[kind]++
	switch kind {
	case driver.ResourceBuffer:
		delete(d.buffers, id)
		for t, b := range d.bound {
			if b == id {
				d.bound[t] = 0
			}
		}
	case driver.ResourceVertexArray:
		delete(d.arrays, id)
		if d.array == id {
			d.array = 0
		}
	case driver.ResourceShader:
		delete(d.shaders, id)
	case driver.ResourceProgram:
		delete(d.programs, id)
		if d.current == id {
			d.current = 0
		}
	}
}

// CreateShader allocates a shader object for a stage.
func (d *Driver) CreateShader(kind driver.StageKind) uint32 {
	id := d.add(driver.ResourceShader)
	d.shaders[id] = &shader{kind: kind}
	d.record("CreateShader", kind, id)
	return id
}

// === Buffers ===

// BindBuffer binds id to target. Binding an element buffer while a vertex
// array is bound records it in the array.
func (d *Driver) BindBuffer(target driver.BufferTarget, id uint32) {
	d.record("BindBuffer", target, id)
	if id != 0 && !d.live[driver.ResourceBuffer][id] {
		d.fail("BindBuffer: buffer %d is not live", id)
	}
	d.bound[target] = id
	if target == driver.ElementArrayBuffer && d.array != 0 {
		d.arrays[d.array].elements = id
	}
}

// BufferData replaces the store of the buffer bound to target.
func (d *Driver) BufferData(target driver.BufferTarget, size int, data unsafe.Pointer, usage driver.Usage) {
	d.record("BufferData", target, size, usage)
	id := d.bound[target]
	b, ok := d.buffers[id]
	if !ok {
		d.fail("BufferData: no buffer bound to %s", target)
		return
	}
	b.usage = usage
	b.data = make([]byte, size)
	if data != nil && size > 0 {
		copy(b.data, unsafe.Slice((*byte)(data), size))
	}
}

// === Vertex Arrays ===

// BindVertexArray binds vertex array id.
func (d *Driver) BindVertexArray(id uint32) {
	d.record("BindVertexArray", id)
	if id != 0 && !d.live[driver.ResourceVertexArray][id] {
		d.fail("BindVertexArray: vertex array %d is not live", id)
		return
	}
	d.array = id
	if id != 0 {
		d.bound[driver.ElementArrayBuffer] = d.arrays[id].elements
	}
}

func (d *Driver) boundArray(op string) *vertexArray {
	va, ok := d.arrays[d.array]
	if !ok {
		d.fail("%s: no vertex array bound", op)
	}
	return va
}

// VertexAttribPointer records the layout of slot in the bound array.
func (d *Driver) VertexAttribPointer(slot uint32, size int32, typ driver.ComponentType, normalized bool, stride int32, offset uintptr) {
	d.record("VertexAttribPointer", slot, size, typ, normalized, stride, offset)
	va := d.boundArray("VertexAttribPointer")
	buf := d.bound[driver.ArrayBuffer]
	if buf == 0 {
		d.fail("VertexAttribPointer: no buffer bound to %s", driver.ArrayBuffer)
	}
	if va == nil {
		return
	}
	a := va.attribs[slot]
	if a == nil {
		a = &AttribState{}
		va.attribs[slot] = a
	}
	a.Buffer, a.Size, a.Type, a.Normalized, a.Stride, a.Offset = buf, size, typ, normalized, stride, offset
}

// EnableVertexAttribArray enables slot in the bound array.
func (d *Driver) EnableVertexAttribArray(slot uint32) {
	d.record("EnableVertexAttribArray", slot)
	va := d.boundArray("EnableVertexAttribArray")
	if va == nil {
		return
	}
	a := va.attribs[slot]
	if a == nil {
		a = &AttribState{}
		va.attribs[slot] = a
	}
	a.Enabled = true
}

func (d *Driver) checkDraw(op string) {
	d.boundArray(op)
	if p, ok := d.programs[d.current]; !ok || !p.linked {
		d.fail("%s: no linked program in use", op)
	}
}

// DrawArrays records a non-indexed draw.
func (d *Driver) DrawArrays(mode driver.DrawMode, first, count int32) {
	d.record("DrawArrays", mode, first, count)
	d.checkDraw("DrawArrays")
}

// DrawElements records an indexed draw.
func (d *Driver) DrawElements(mode driver.DrawMode, count int32, typ driver.ComponentType, offset uintptr) {
	d.record("DrawElements", mode, count, typ, offset)
	d.checkDraw("DrawElements")
	if d.bound[driver.ElementArrayBuffer] == 0 {
		d.fail("DrawElements: no buffer bound to %s", driver.ElementArrayBuffer)
	}
}

// === Shaders ===

func (d *Driver) shader(op string, id uint32) *shader {
	s, ok := d.shaders[id]
	if !ok {
		d.fail("%s: shader %d is not live", op, id)
	}
	return s
}

// ShaderSource stores the source of a shader.
func (d *Driver) ShaderSource(id uint32, src string) {
	d.record("ShaderSource", id)
	if s := d.shader("ShaderSource", id); s != nil {
		s.source = d.cstr("ShaderSource", src)
	}
}

// CompileShader scans the stored source. A `#error` directive or a
// declaration of an unknown type fails the compile with a log.
func (d *Driver) CompileShader(id uint32) {
	d.record("CompileShader", id)
	s := d.shader("CompileShader", id)
	if s == nil {
		return
	}
	s.decls, s.log = scan(s.source)
	s.compiled = s.log == ""
	s.spirv = nil
}

// ShaderBinary stores a SPIR-V module.
func (d *Driver) ShaderBinary(id uint32, format uint32, bin []byte) {
	d.record("ShaderBinary", id, fmt.Sprintf("0x%04X", format), len(bin))
	s := d.shader("ShaderBinary", id)
	if s == nil {
		return
	}
	if format != driver.ShaderBinaryFormatSPIRV {
		d.fail("ShaderBinary: unsupported format 0x%04X", format)
	}
	s.spirv = bytes.Clone(bin)
	s.compiled = false
	s.decls = declarations{}
	s.log = ""
}

// SpecializeShader completes a SPIR-V shader. A module without the SPIR-V
// magic number fails with a log.
func (d *Driver) SpecializeShader(id uint32, entry string) {
	entry = d.cstr("SpecializeShader", entry)
	d.record("SpecializeShader", id, entry)
	s := d.shader("SpecializeShader", id)
	if s == nil {
		return
	}
	if len(s.spirv) < 4 || binary.LittleEndian.Uint32(s.spirv) != spirvMagic {
		s.compiled = false
		s.log = "error: invalid SPIR-V module"
		return
	}
	s.compiled = true
	s.log = ""
}

// GetShaderParameter reports CompileStatus and InfoLogLength.
func (d *Driver) GetShaderParameter(id uint32, p driver.Parameter) int32 {
	d.record("GetShaderParameter", id, p)
	s := d.shader("GetShaderParameter", id)
	if s == nil {
		return 0
	}
	switch p {
	case driver.CompileStatus:
		return boolInt(s.compiled)
	case driver.InfoLogLength:
		return logLength(s.log)
	}
	d.fail("GetShaderParameter: unsupported parameter %s", p)
	return 0
}

// ShaderInfoLog returns the compile log truncated to maxLen-1 bytes, the
// space a driver leaves for the terminator.
func (d *Driver) ShaderInfoLog(id uint32, maxLen int) string {
	d.record("ShaderInfoLog", id, maxLen)
	if s := d.shader("ShaderInfoLog", id); s != nil {
		return truncate(s.log, maxLen)
	}
	return ""
}

// === Programs ===

func (d *Driver) program(op string, id uint32) *program {
	p, ok := d.programs[id]
	if !ok {
		d.fail("%s: program %d is not live", op, id)
	}
	return p
}

// AttachShader attaches a shader to a program.
func (d *Driver) AttachShader(prog, sh uint32) {
	d.record("AttachShader", prog, sh)
	p := d.program("AttachShader", prog)
	if d.shader("AttachShader", sh) == nil || p == nil {
		return
	}
	if !slices.Contains(p.shaders, sh) {
		p.shaders = append(p.shaders, sh)
	}
}

// LinkProgram links the attached shaders. Uniforms are merged by name
// across stages; inputs come from the vertex stage.
func (d *Driver) LinkProgram(id uint32) {
	d.record("LinkProgram", id)
	p := d.program("LinkProgram", id)
	if p == nil {
		return
	}
	p.linked, p.validated = false, false
	p.inputs, p.uniforms = nil, nil
	p.values = make(map[int32][]byte)

	if d.FailLink != "" {
		p.log = d.FailLink
		return
	}
	if len(p.shaders) == 0 {
		p.log = "error: no shaders attached"
		return
	}
	seen := make(map[string]bool)
	for _, sid := range p.shaders {
		s := d.shaders[sid]
		if s == nil {
			p.log = fmt.Sprintf("error: shader %d was deleted", sid)
			return
		}
		if !s.compiled {
			p.log = fmt.Sprintf("error: %s shader %d is not compiled", s.kind, sid)
			return
		}
		for _, u := range s.decls.uniforms {
			if !seen[u.name] {
				seen[u.name] = true
				p.uniforms = append(p.uniforms, u)
			}
		}
		if s.kind == driver.VertexShader {
			p.inputs = append(p.inputs, s.decls.inputs...)
		}
	}
	assignLocations(p.uniforms)
	assignLocations(p.inputs)
	p.linked = true
	p.log = ""
}

// ValidateProgram validates a linked program.
func (d *Driver) ValidateProgram(id uint32) {
	d.record("ValidateProgram", id)
	p := d.program("ValidateProgram", id)
	if p == nil {
		return
	}
	switch {
	case !p.linked:
		p.validated = false
		p.log = "error: program is not linked"
	case d.FailValidate != "":
		p.validated = false
		p.log = d.FailValidate
	default:
		p.validated = true
	}
}

// GetProgramParameter reports link and validate status, the log length
// and the active object counts.
func (d *Driver) GetProgramParameter(id uint32, param driver.Parameter) int32 {
	d.record("GetProgramParameter", id, param)
	p := d.program("GetProgramParameter", id)
	if p == nil {
		return 0
	}
	switch param {
	case driver.LinkStatus:
		return boolInt(p.linked)
	case driver.ValidateStatus:
		return boolInt(p.validated)
	case driver.InfoLogLength:
		return logLength(p.log)
	case driver.AttachedShaders:
		return int32(len(p.shaders))
	case driver.ActiveUniforms:
		return int32(len(p.uniforms))
	case driver.ActiveAttributes:
		return int32(len(p.inputs))
	}
	d.fail("GetProgramParameter: unsupported parameter %s", param)
	return 0
}

// ProgramInfoLog returns the link or validate log truncated to maxLen-1
// bytes.
func (d *Driver) ProgramInfoLog(id uint32, maxLen int) string {
	d.record("ProgramInfoLog", id, maxLen)
	if p := d.program("ProgramInfoLog", id); p != nil {
		return truncate(p.log, maxLen)
	}
	return ""
}

// UseProgram makes a program current.
func (d *Driver) UseProgram(id uint32) {
	d.record("UseProgram", id)
	if id != 0 && d.program("UseProgram", id) == nil {
		return
	}
	d.current = id
}

// === Reflection ===

func (d *Driver) active(op string, vars []variable, index uint32, maxLen int) (string, int32, uint32) {
	if int(index) >= len(vars) {
		d.fail("%s: index %d out of range", op, index)
		return "", 0, 0
	}
	v := vars[index]
	return truncate(v.activeName(), maxLen), v.size, v.typ
}

// ActiveAttrib describes the vertex input at index.
func (d *Driver) ActiveAttrib(id, index uint32, maxLen int) (string, int32, uint32) {
	d.record("ActiveAttrib", id, index)
	p := d.program("ActiveAttrib", id)
	if p == nil {
		return "", 0, 0
	}
	return d.active("ActiveAttrib", p.inputs, index, maxLen)
}

// ActiveUniform describes the uniform at index.
func (d *Driver) ActiveUniform(id, index uint32, maxLen int) (string, int32, uint32) {
	d.record("ActiveUniform", id, index)
	p := d.program("ActiveUniform", id)
	if p == nil {
		return "", 0, 0
	}
	return d.active("ActiveUniform", p.uniforms, index, maxLen)
}

// AttribLocation returns the location of a vertex input, or -1.
func (d *Driver) AttribLocation(id uint32, name string) int32 {
	name = d.cstr("AttribLocation", name)
	d.record("AttribLocation", id, name)
	p := d.program("AttribLocation", id)
	if p == nil || !p.linked {
		return -1
	}
	return resolve(p.inputs, name)
}

// UniformLocation returns the location of a uniform or uniform array
// element, or -1.
func (d *Driver) UniformLocation(id uint32, name string) int32 {
	name = d.cstr("UniformLocation", name)
	d.record("UniformLocation", id, name)
	p := d.program("UniformLocation", id)
	if p == nil || !p.linked {
		return -1
	}
	return resolve(p.uniforms, name)
}

// === Uniform Upload ===

// Uniform stores count elements for location of the current program.
func (d *Driver) Uniform(call driver.UniformCall, location, count int32, transpose bool, data unsafe.Pointer) {
	d.record("Uniform", call, location, count, transpose)
	p, ok := d.programs[d.current]
	if !ok {
		d.fail("Uniform: no program in use")
		return
	}
	if location < 0 {
		return
	}
	n := int(count) * call.ElementSize()
	if data == nil || n <= 0 {
		d.fail("Uniform: empty upload to location %d", location)
		return
	}
	p.values[location] = bytes.Clone(unsafe.Slice((*byte)(data), n))
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func logLength(log string) int32 {
	if log == "" {
		return 0
	}
	return int32(len(log) + 1)
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) > maxLen-1 {
		return s[:maxLen-1]
	}
	return s
}
