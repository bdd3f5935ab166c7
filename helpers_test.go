package glkit

import (
	"errors"
	"testing"

	"github.com/gogpu/glkit/backend/fake"
	"github.com/gogpu/glkit/driver"
)

const (
	passVertexSrc = `#version 460 core
layout(location = 0) in vec2 position;
void main() {
    gl_Position = vec4(position, 0.0, 1.0);
}
`
	passFragmentSrc = `#version 460 core
out vec4 color;
void main() {
    color = vec4(1.0);
}
`
)

func newTestDevice(t *testing.T, opts ...DeviceOption) (*Device, *fake.Driver) {
	t.Helper()
	drv := fake.New()
	return NewDevice(drv, opts...), drv
}

// newTestProgram links a program from the given sources and drops the
// caller's stage references.
func newTestProgram(t *testing.T, dev *Device, vsrc, fsrc string) *Program {
	t.Helper()
	vs, err := dev.NewStageFromSource(driver.VertexShader, vsrc)
	if err != nil {
		t.Fatalf("NewStageFromSource(vertex) error = %v", err)
	}
	defer vs.Release()
	fs, err := dev.NewStageFromSource(driver.FragmentShader, fsrc)
	if err != nil {
		t.Fatalf("NewStageFromSource(fragment) error = %v", err)
	}
	defer fs.Release()
	p, err := dev.NewProgram(vs, fs)
	if err != nil {
		t.Fatalf("NewProgram() error = %v", err)
	}
	return p
}

// mustPanic fails the test unless f panics with an error matching want.
func mustPanic(t *testing.T, want error, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic matching %v", want)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, want) {
			t.Fatalf("panic = %v, want %v", r, want)
		}
	}()
	f()
}

func checkDriverErrors(t *testing.T, drv *fake.Driver) {
	t.Helper()
	for _, e := range drv.Errors {
		t.Errorf("driver error: %s", e)
	}
}

func callStrings(calls []fake.Call) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}
