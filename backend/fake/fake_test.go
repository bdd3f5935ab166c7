package fake

import (
	"slices"
	"strings"
	"testing"
	"unsafe"

	"github.com/gogpu/glkit/driver"
)

func TestScan(t *testing.T) {
	src := `#version 460 core
layout(location = 2) in vec3 normal;
in highp vec2 uv;
attribute float weight;
uniform mat4 model;
uniform vec4 lights[3];
layout(binding = 0) uniform sampler2D albedo;
out vec4 color;
void main() {}
`
	decls, log := scan(src)
	if log != "" {
		t.Fatalf("scan() log = %q, want empty", log)
	}

	var inputs, uniforms []string
	for _, v := range decls.inputs {
		inputs = append(inputs, v.name)
	}
	for _, v := range decls.uniforms {
		uniforms = append(uniforms, v.name)
	}
	if want := []string{"normal", "uv", "weight"}; !slices.Equal(inputs, want) {
		t.Errorf("inputs = %v, want %v", inputs, want)
	}
	if want := []string{"model", "lights", "albedo"}; !slices.Equal(uniforms, want) {
		t.Errorf("uniforms = %v, want %v", uniforms, want)
	}
	if decls.inputs[0].location != 2 || decls.inputs[1].location != -1 {
		t.Errorf("input locations = %d, %d; want 2, -1", decls.inputs[0].location, decls.inputs[1].location)
	}
	if l := decls.uniforms[1]; l.size != 3 || l.typ != 0x8B52 {
		t.Errorf("lights = %+v, want vec4[3]", l)
	}
	if a := decls.uniforms[2]; a.location != -1 {
		t.Errorf("albedo location = %d, binding must not set a location", a.location)
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"error directive", "#version 460 core\n\n#error missing feature\n", "0:3(1): error: missing feature"},
		{"unknown type", "uniform quat rotation;\n", "unknown type `quat'"},
		{"zero array", "uniform float weights[0];\n", "invalid size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, log := scan(tt.src)
			if !strings.Contains(log, tt.want) {
				t.Errorf("scan() log = %q, want it to contain %q", log, tt.want)
			}
		})
	}
}

func TestAssignLocations(t *testing.T) {
	vars := []variable{
		{name: "a", size: 2, location: -1},
		{name: "b", size: 1, location: 1},
		{name: "c", size: 1, location: -1},
		{name: "d", size: 3, location: -1},
	}
	assignLocations(vars)

	got := make([]int32, len(vars))
	for i, v := range vars {
		got[i] = v.location
	}
	// a needs two free locations; 0 is free but 1 is taken by b.
	if want := []int32{2, 1, 0, 4}; !slices.Equal(got, want) {
		t.Errorf("locations = %v, want %v", got, want)
	}
}

func TestResolve(t *testing.T) {
	vars := []variable{
		{name: "tint", size: 1, location: 0},
		{name: "lights", size: 4, location: 3},
	}
	tests := []struct {
		name string
		want int32
	}{
		{"tint", 0},
		{"tint[0]", 0},
		{"tint[1]", -1},
		{"lights", 3},
		{"lights[0]", 3},
		{"lights[3]", 6},
		{"lights[4]", -1},
		{"lights[-1]", -1},
		{"lights[x]", -1},
		{"missing", -1},
		{"", -1},
	}
	for _, tt := range tests {
		if got := resolve(vars, tt.name); got != tt.want {
			t.Errorf("resolve(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s      string
		maxLen int
		want   string
	}{
		{"hello", 512, "hello"},
		{"hello", 6, "hello"},
		{"hello", 5, "hell"},
		{"hello", 1, ""},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
		}
	}
}

func TestDoubleDelete(t *testing.T) {
	d := New()
	id := d.Create(driver.ResourceBuffer)
	d.Delete(driver.ResourceBuffer, id)
	if len(d.Errors) != 0 {
		t.Fatalf("Errors = %v after first delete", d.Errors)
	}
	d.Delete(driver.ResourceBuffer, id)
	if len(d.Errors) != 1 {
		t.Errorf("Errors = %v, want one error for the second delete", d.Errors)
	}
	if d.Created(driver.ResourceBuffer) != 1 || d.Deleted(driver.ResourceBuffer) != 1 || d.Live(driver.ResourceBuffer) != 0 {
		t.Errorf("created/deleted/live = %d/%d/%d, want 1/1/0",
			d.Created(driver.ResourceBuffer), d.Deleted(driver.ResourceBuffer), d.Live(driver.ResourceBuffer))
	}
}

func TestCreateShaderKind(t *testing.T) {
	d := New()
	d.Create(driver.ResourceShader)
	if len(d.Errors) != 1 {
		t.Errorf("Errors = %v, want one error for Create(Shader)", d.Errors)
	}
}

func TestBufferData(t *testing.T) {
	d := New()
	id := d.Create(driver.ResourceBuffer)
	data := []uint32{1, 2}

	d.BufferData(driver.ArrayBuffer, 8, unsafe.Pointer(&data[0]), driver.StaticDraw)
	if len(d.Errors) != 1 {
		t.Fatalf("Errors = %v, want one error for an upload without a bound buffer", d.Errors)
	}

	d.Reset()
	d.BindBuffer(driver.ArrayBuffer, id)
	d.BufferData(driver.ArrayBuffer, 8, unsafe.Pointer(&data[0]), driver.DynamicDraw)
	if got, want := d.BufferContents(id), []byte{1, 0, 0, 0, 2, 0, 0, 0}; !slices.Equal(got, want) {
		t.Errorf("BufferContents() = %v, want %v", got, want)
	}
	if d.BufferUsage(id) != driver.DynamicDraw {
		t.Errorf("BufferUsage() = %v, want DynamicDraw", d.BufferUsage(id))
	}
	if d.BoundBuffer(driver.ArrayBuffer) != id {
		t.Errorf("BoundBuffer() = %d, want %d", d.BoundBuffer(driver.ArrayBuffer), id)
	}
	if len(d.Errors) != 0 {
		t.Errorf("Errors = %v", d.Errors)
	}
}

func TestElementBufferFollowsVertexArray(t *testing.T) {
	d := New()
	va := d.Create(driver.ResourceVertexArray)
	buf := d.Create(driver.ResourceBuffer)

	d.BindVertexArray(va)
	d.BindBuffer(driver.ElementArrayBuffer, buf)
	d.BindVertexArray(0)
	d.BindBuffer(driver.ElementArrayBuffer, 0)

	if d.ElementBuffer(va) != buf {
		t.Errorf("ElementBuffer() = %d, want %d", d.ElementBuffer(va), buf)
	}
	d.BindVertexArray(va)
	if d.BoundBuffer(driver.ElementArrayBuffer) != buf {
		t.Error("binding the array did not restore its element buffer")
	}
}

func compile(t *testing.T, d *Driver, kind driver.StageKind, src string) uint32 {
	t.Helper()
	id := d.CreateShader(kind)
	d.ShaderSource(id, src+"\x00")
	d.CompileShader(id)
	if d.GetShaderParameter(id, driver.CompileStatus) != 1 {
		t.Fatalf("compile failed: %s", d.ShaderInfoLog(id, 512))
	}
	return id
}

func TestLinkMergesUniforms(t *testing.T) {
	d := New()
	vs := compile(t, d, driver.VertexShader, "in vec2 position;\nuniform mat4 model;\nuniform float time;\n")
	fs := compile(t, d, driver.FragmentShader, "in vec2 uv;\nuniform float time;\nuniform vec4 tint;\n")

	p := d.Create(driver.ResourceProgram)
	d.AttachShader(p, vs)
	d.AttachShader(p, fs)
	d.LinkProgram(p)

	if d.GetProgramParameter(p, driver.LinkStatus) != 1 {
		t.Fatalf("link failed: %s", d.ProgramInfoLog(p, 512))
	}
	if n := d.GetProgramParameter(p, driver.ActiveUniforms); n != 3 {
		t.Errorf("ActiveUniforms = %d, want 3", n)
	}
	if n := d.GetProgramParameter(p, driver.ActiveAttributes); n != 1 {
		t.Errorf("ActiveAttributes = %d, want 1 (vertex inputs only)", n)
	}
	if n := d.GetProgramParameter(p, driver.AttachedShaders); n != 2 {
		t.Errorf("AttachedShaders = %d, want 2", n)
	}
	if loc := d.UniformLocation(p, "tint\x00"); loc != 2 {
		t.Errorf("UniformLocation(tint) = %d, want 2", loc)
	}
	if len(d.Errors) != 0 {
		t.Errorf("Errors = %v", d.Errors)
	}
}

func TestLinkFailures(t *testing.T) {
	d := New()
	p := d.Create(driver.ResourceProgram)
	d.LinkProgram(p)
	if d.GetProgramParameter(p, driver.LinkStatus) != 0 {
		t.Error("program without shaders linked")
	}

	vs := d.CreateShader(driver.VertexShader)
	d.AttachShader(p, vs)
	d.LinkProgram(p)
	if log := d.ProgramInfoLog(p, 512); !strings.Contains(log, "not compiled") {
		t.Errorf("ProgramInfoLog() = %q, want uncompiled shader error", log)
	}

	d.Delete(driver.ResourceShader, vs)
	d.LinkProgram(p)
	if log := d.ProgramInfoLog(p, 512); !strings.Contains(log, "deleted") {
		t.Errorf("ProgramInfoLog() = %q, want deleted shader error", log)
	}

	d.ValidateProgram(p)
	if d.GetProgramParameter(p, driver.ValidateStatus) != 0 {
		t.Error("unlinked program validated")
	}
}

func TestUniformStorage(t *testing.T) {
	d := New()
	vs := compile(t, d, driver.VertexShader, "uniform vec2 offsets[2];\n")
	p := d.Create(driver.ResourceProgram)
	d.AttachShader(p, vs)
	d.LinkProgram(p)

	v := []float32{1, 2, 3, 4}
	d.Uniform(driver.Uniform2fv, 0, 2, false, unsafe.Pointer(&v[0]))
	if len(d.Errors) != 1 {
		t.Fatalf("Errors = %v, want one error for an upload without a program", d.Errors)
	}

	d.Reset()
	d.UseProgram(p)
	d.Uniform(driver.Uniform2fv, 0, 2, false, unsafe.Pointer(&v[0]))
	if got := d.UniformData(p, 0); len(got) != 16 {
		t.Errorf("UniformData() = %d bytes, want 16", len(got))
	}
	d.Uniform(driver.Uniform2fv, -1, 2, false, unsafe.Pointer(&v[0]))
	if len(d.Errors) != 0 {
		t.Errorf("Errors = %v, uploads to -1 are ignored", d.Errors)
	}
}

func TestStringsMustBeTerminated(t *testing.T) {
	d := New()
	id := d.CreateShader(driver.FragmentShader)
	d.ShaderSource(id, "void main() {}")
	if len(d.Errors) != 1 {
		t.Errorf("Errors = %v, want one error for a missing terminator", d.Errors)
	}
}

func TestSpecializeRejectsInvalidModule(t *testing.T) {
	d := New()
	id := d.CreateShader(driver.VertexShader)
	d.ShaderBinary(id, driver.ShaderBinaryFormatSPIRV, []byte{1, 2, 3, 4})
	d.SpecializeShader(id, "main\x00")
	if d.GetShaderParameter(id, driver.CompileStatus) != 0 {
		t.Error("module without the SPIR-V magic compiled")
	}
	if got := d.CallsOf("SpecializeShader")[0].String(); got != "SpecializeShader(1, main)" {
		t.Errorf("SpecializeShader call = %q", got)
	}
}
