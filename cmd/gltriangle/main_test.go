package main

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glkit"
	"github.com/gogpu/glkit/backend/fake"
)

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestLoadDefaultScene(t *testing.T) {
	s, err := loadScene("")
	if err != nil {
		t.Fatalf("loadScene() error = %v", err)
	}
	if s.Count() != 3 {
		t.Errorf("Count() = %d, want 3", s.Count())
	}
	if topo, _ := s.Topology(); topo != gputypes.PrimitiveTopologyTriangleList {
		t.Errorf("Topology() = %v, want TriangleList", topo)
	}
	if len(s.ShaderPaths()) != 0 {
		t.Errorf("ShaderPaths() = %v, want none for built-in shaders", s.ShaderPaths())
	}
	vs, fs, err := s.Sources()
	if err != nil || !strings.Contains(vs, "position") || !strings.Contains(fs, "tint") {
		t.Errorf("Sources() = %q, %q, %v", vs, fs, err)
	}
}

func TestParseSceneErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"no positions", `mode = "triangle-list"`, "no positions"},
		{"index out of range", "positions = [[0, 0], [1, 0]]\nindices = [0, 1, 2]", "out of range"},
		{"unknown mode", "mode = \"quads\"\npositions = [[0, 0]]", "unknown mode"},
		{"syntax", "positions = [", "scene:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseScene([]byte(tt.data), "")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("parseScene() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestSceneShaderPaths(t *testing.T) {
	s, err := parseScene([]byte("positions = [[0, 0]]\nvertex_shader = \"a.vert\"\nfragment_shader = \"/abs/b.frag\""), "scenes")
	if err != nil {
		t.Fatalf("parseScene() error = %v", err)
	}
	want := []string{filepath.Join("scenes", "a.vert"), "/abs/b.frag"}
	got := s.ShaderPaths()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ShaderPaths() = %v, want %v", got, want)
	}
	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1 without indices", s.Count())
	}
}

func TestRunHeadlessFake(t *testing.T) {
	var out bytes.Buffer
	if err := run(config{backend: "fake", frames: 2}, discard(), &out); err != nil {
		t.Fatalf("run() error = %v\n%s", err, out.String())
	}
	if n := strings.Count(out.String(), "DrawElements(Triangles, 3, UnsignedShort, 0)"); n != 2 {
		t.Errorf("call log has %d indexed draws, want 2:\n%s", n, out.String())
	}
	if !strings.Contains(out.String(), "Uniform(Uniform4fv,") {
		t.Errorf("call log has no tint upload:\n%s", out.String())
	}
}

const plainFragment = `#version 460 core
out vec4 color;
void main() {
    color = vec4(1.0);
}
`

func writeScene(t *testing.T, fragment string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"quad.toml": `mode = "triangle-strip"
positions = [[-1, -1], [1, -1], [-1, 1], [1, 1]]
vertex_shader = "quad.vert"
fragment_shader = "quad.frag"
`,
		"quad.vert": defaultVertexShader,
		"quad.frag": fragment,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return filepath.Join(dir, "quad.toml")
}

func TestRunHeadlessSceneFile(t *testing.T) {
	path := writeScene(t, plainFragment)

	var out bytes.Buffer
	if err := run(config{backend: "fake", scene: path}, discard(), &out); err != nil {
		t.Fatalf("run() error = %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "DrawArrays(TriangleStrip, 0, 4)") {
		t.Errorf("call log has no strip draw:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Uniform(") {
		t.Errorf("scene without tint uploaded uniforms:\n%s", out.String())
	}
}

func TestRunHeadlessCompileError(t *testing.T) {
	path := writeScene(t, "#version 460 core\n#error broken on purpose\n")

	err := run(config{backend: "fake", scene: path}, discard(), &bytes.Buffer{})
	if !errors.Is(err, glkit.ErrCompile) {
		t.Errorf("run() error = %v, want ErrCompile", err)
	}
}

func TestRendererReloadKeepsProgram(t *testing.T) {
	path := writeScene(t, plainFragment)
	scene, err := loadScene(path)
	if err != nil {
		t.Fatal(err)
	}
	drv := fake.New()
	dev := glkit.NewDevice(drv)
	r, err := newRenderer(dev, scene, discard())
	if err != nil {
		t.Fatalf("newRenderer() error = %v", err)
	}
	defer r.release()
	before := r.program

	frag := filepath.Join(filepath.Dir(path), "quad.frag")
	if err := os.WriteFile(frag, []byte("#error half saved\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := r.reload(); err == nil {
		t.Fatal("reload() succeeded with a broken shader")
	}
	if r.program != before || before.Handle().Released() {
		t.Error("failed reload replaced or released the running program")
	}

	if err := os.WriteFile(frag, []byte(plainFragment), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := r.reload(); err != nil {
		t.Fatalf("reload() error = %v", err)
	}
	if r.program == before || !before.Handle().Released() {
		t.Error("successful reload did not swap the program")
	}
}

func TestWatcher(t *testing.T) {
	path := writeScene(t, plainFragment)
	scene, err := loadScene(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := newWatcher(scene.ShaderPaths(), discard())
	if err != nil {
		t.Fatalf("newWatcher() error = %v", err)
	}
	defer w.Close()

	// Changes to other files in the directory are ignored.
	if err := os.WriteFile(path, []byte("# touched\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	frag := filepath.Join(filepath.Dir(path), "quad.frag")
	if err := os.WriteFile(frag, []byte(plainFragment), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Changed():
		want, _ := filepath.Abs(frag)
		if got != want {
			t.Errorf("Changed() = %q, want %q", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
