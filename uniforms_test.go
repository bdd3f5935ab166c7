package glkit

import (
	"bytes"
	"slices"
	"testing"

	"golang.org/x/image/math/f32"
)

type testShading struct {
	Tint    UniformValue[f32.Vec4] `uniform:"tint"`
	Scale   UniformValue[float32]  `uniform:"scale"`
	Ignored UniformValue[float32]  `uniform:"-"`
	Frame   int
	model   UniformValue[f32.Mat4]
}

func TestNewUniforms(t *testing.T) {
	dev, drv := newTestDevice(t)
	p := newTestProgram(t, dev, passVertexSrc, uniformFragmentSrc)
	defer p.Release()

	u := NewUniforms[testShading](p)
	if u.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", u.Len())
	}
	if u.Values.Tint.Uniform == nil || u.Values.Tint.Uniform.Type() != FloatVec4 {
		t.Errorf("Tint.Uniform = %v, want vec4 tint", u.Values.Tint.Uniform)
	}
	if u.Values.Ignored.Uniform != nil {
		t.Error("field tagged \"-\" was reflected")
	}
	if u.Values.model.Uniform != nil {
		t.Error("unexported field was reflected")
	}

	lookups := drv.CallsOf("UniformLocation")
	var names []string
	for _, c := range lookups {
		names = append(names, c.Args[1].(string))
	}
	if want := []string{"tint", "scale"}; !slices.Equal(names, want) {
		t.Errorf("lookups = %v, want one per field %v", names, want)
	}
	checkDriverErrors(t, drv)
}

func TestUniformsBindOrder(t *testing.T) {
	dev, drv := newTestDevice(t)
	p := newTestProgram(t, dev, passVertexSrc, uniformFragmentSrc)
	defer p.Release()
	u := NewUniforms[testShading](p)
	u.Values.Tint.Value = f32.Vec4{1, 1, 1, 1}
	u.Values.Scale.Value = 0.5

	p.Bind()
	drv.Reset()
	u.Bind()

	calls := drv.CallsOf("Uniform")
	if len(calls) != 2 {
		t.Fatalf("Uniform calls = %d, want 2", len(calls))
	}
	if calls[0].Args[1] != u.Values.Tint.Uniform.Location() || calls[1].Args[1] != u.Values.Scale.Uniform.Location() {
		t.Errorf("upload order = %v, want tint then scale", callStrings(calls))
	}
	if got := drv.UniformData(p.ID(), u.Values.Scale.Uniform.Location()); !bytes.Equal(got, rawBytes([]float32{0.5})) {
		t.Errorf("scale bytes = %v", got)
	}
	checkDriverErrors(t, drv)
}

func TestNewUniformsMissing(t *testing.T) {
	dev, _ := newTestDevice(t)
	p := newTestProgram(t, dev, passVertexSrc, passFragmentSrc)
	defer p.Release()

	type shading struct {
		Tint UniformValue[f32.Vec4] `uniform:"tint"`
	}
	mustPanic(t, ErrUniformNotFound, func() { NewUniforms[shading](p) })
}

func TestNewUniformsFieldName(t *testing.T) {
	dev, _ := newTestDevice(t)
	fsrc := "#version 460 core\nuniform float Exposure;\nout vec4 color;\nvoid main() {}\n"
	p := newTestProgram(t, dev, passVertexSrc, fsrc)
	defer p.Release()

	type shading struct {
		Exposure UniformValue[float32]
	}
	u := NewUniforms[shading](p)
	if u.Values.Exposure.Uniform == nil || u.Values.Exposure.Uniform.Name() != "Exposure" {
		t.Errorf("Exposure.Uniform = %v, want field-name lookup", u.Values.Exposure.Uniform)
	}
}

func TestUniformContainers(t *testing.T) {
	called := 0
	var c UniformContainer = UniformFunc(func() { called++ })
	c.Bind()
	if called != 1 {
		t.Errorf("UniformFunc called %d times, want 1", called)
	}

	UniformFunc(nil).Bind()
	NoUniforms.Bind()
}
