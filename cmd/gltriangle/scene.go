package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/math/f32"
)

var (
	//go:embed assets/scene.toml
	defaultScene []byte

	//go:embed assets/triangle.vert
	defaultVertexShader string

	//go:embed assets/triangle.frag
	defaultFragmentShader string
)

// Scene is the content of a scene file.
type Scene struct {
	Title          string     `toml:"title"`
	Clear          f32.Vec4   `toml:"clear"`
	Mode           string     `toml:"mode"`
	Positions      []f32.Vec2 `toml:"positions"`
	Indices        []uint16   `toml:"indices"`
	VertexShader   string     `toml:"vertex_shader"`
	FragmentShader string     `toml:"fragment_shader"`
	Tint           f32.Vec4   `toml:"tint"`

	// dir is the directory shader paths are relative to.
	dir string
}

var topologies = map[string]gputypes.PrimitiveTopology{
	"point-list":     gputypes.PrimitiveTopologyPointList,
	"line-list":      gputypes.PrimitiveTopologyLineList,
	"line-strip":     gputypes.PrimitiveTopologyLineStrip,
	"triangle-list":  gputypes.PrimitiveTopologyTriangleList,
	"triangle-strip": gputypes.PrimitiveTopologyTriangleStrip,
}

// loadScene reads a scene file. An empty path loads the built-in scene.
func loadScene(path string) (*Scene, error) {
	data, dir := defaultScene, ""
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, err
		}
		dir = filepath.Dir(path)
	}
	return parseScene(data, dir)
}

func parseScene(data []byte, dir string) (*Scene, error) {
	s := &Scene{Mode: "triangle-list", dir: dir}
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if len(s.Positions) == 0 {
		return nil, fmt.Errorf("scene: no positions")
	}
	for _, i := range s.Indices {
		if int(i) >= len(s.Positions) {
			return nil, fmt.Errorf("scene: index %d out of range (%d positions)", i, len(s.Positions))
		}
	}
	if _, err := s.Topology(); err != nil {
		return nil, err
	}
	return s, nil
}

// Topology returns the primitive topology named by Mode.
func (s *Scene) Topology() (gputypes.PrimitiveTopology, error) {
	t, ok := topologies[s.Mode]
	if !ok {
		return 0, fmt.Errorf("scene: unknown mode %q", s.Mode)
	}
	return t, nil
}

// Count returns the number of vertices or indices to draw.
func (s *Scene) Count() int32 {
	if len(s.Indices) > 0 {
		return int32(len(s.Indices))
	}
	return int32(len(s.Positions))
}

// ShaderPaths returns the resolved paths of the scene's shader files.
// Built-in shaders have no path.
func (s *Scene) ShaderPaths() []string {
	var paths []string
	for _, p := range []string{s.VertexShader, s.FragmentShader} {
		if p != "" {
			paths = append(paths, s.resolve(p))
		}
	}
	return paths
}

// Sources reads the vertex and fragment shader sources.
func (s *Scene) Sources() (vs, fs string, err error) {
	if vs, err = s.read(s.VertexShader, defaultVertexShader); err != nil {
		return "", "", err
	}
	if fs, err = s.read(s.FragmentShader, defaultFragmentShader); err != nil {
		return "", "", err
	}
	return vs, fs, nil
}

func (s *Scene) read(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(s.resolve(path))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Scene) resolve(path string) string {
	if filepath.IsAbs(path) || s.dir == "" {
		return path
	}
	return filepath.Join(s.dir, path)
}
