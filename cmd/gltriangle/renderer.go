package main

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	"github.com/gogpu/glkit"
	"github.com/gogpu/glkit/driver"
)

// shading is the uniform block of the scene shaders.
type shading struct {
	Tint glkit.UniformValue[f32.Vec4] `uniform:"tint"`
}

// renderer owns the GPU objects of one scene.
type renderer struct {
	dev   *glkit.Device
	scene *Scene
	log   *slog.Logger

	vao      *glkit.VertexArray
	program  *glkit.Program
	uniforms glkit.UniformContainer
}

func newRenderer(dev *glkit.Device, scene *Scene, log *slog.Logger) (*renderer, error) {
	r := &renderer{dev: dev, scene: scene, log: log}
	if err := r.buildGeometry(); err != nil {
		return nil, err
	}
	if err := r.reload(); err != nil {
		r.vao.Release()
		return nil, err
	}
	return r, nil
}

func (r *renderer) buildGeometry() error {
	mode, err := r.scene.Topology()
	if err != nil {
		return err
	}
	drawMode, err := glkit.DrawModeFor(mode)
	if err != nil {
		return err
	}

	vertexTarget, err := glkit.TargetForUsage(gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	positions := r.dev.NewBuffer(vertexTarget)
	defer positions.Release()
	glkit.SetData(positions, r.scene.Positions, driver.StaticDraw)

	vao := r.dev.NewVertexArray()
	if err := vao.SetPointerFormat(0, positions, gputypes.VertexFormatFloat32x2, 0, 0); err != nil {
		vao.Release()
		return err
	}

	if len(r.scene.Indices) > 0 {
		indexTarget, err := glkit.TargetForUsage(gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst)
		if err != nil {
			vao.Release()
			return err
		}
		indices := r.dev.NewBuffer(indexTarget)
		defer indices.Release()
		glkit.SetData(indices, r.scene.Indices, driver.StaticDraw)
		vao.AddIndices(indices, int32(len(r.scene.Indices)))
	}
	vao.SetCount(r.scene.Count())
	vao.SetDrawMode(drawMode)

	r.vao = vao
	return nil
}

// reload compiles the scene shaders and swaps them in. On failure the
// previous program stays in use.
func (r *renderer) reload() error {
	vsrc, fsrc, err := r.scene.Sources()
	if err != nil {
		return err
	}
	vs, err := r.dev.NewStageFromSource(driver.VertexShader, vsrc)
	if err != nil {
		return err
	}
	defer vs.Release()
	fs, err := r.dev.NewStageFromSource(driver.FragmentShader, fsrc)
	if err != nil {
		return err
	}
	defer fs.Release()

	program, err := r.dev.NewProgram(vs, fs)
	if err != nil {
		return err
	}
	uniforms, err := r.bindUniforms(program)
	if err != nil {
		program.Release()
		return err
	}

	if r.program != nil {
		r.program.Release()
	}
	r.program = program
	r.uniforms = uniforms
	r.log.Info("program ready", "program", program.ID(), "attributes", program.Attributes())
	return nil
}

// bindUniforms reflects the shading block, or returns no uniforms when the
// shaders do not declare a tint.
func (r *renderer) bindUniforms(program *glkit.Program) (glkit.UniformContainer, error) {
	if _, ok := program.Uniform("tint"); !ok {
		r.log.Warn("shaders declare no tint uniform")
		return glkit.NoUniforms, nil
	}
	u := glkit.NewUniforms[shading](program)
	u.Values.Tint.Value = r.scene.Tint
	if u.Values.Tint.Uniform.Type() != glkit.FloatVec4 {
		return nil, fmt.Errorf("uniform tint is %s, want vec4", u.Values.Tint.Uniform.Type().GLSLName())
	}
	return u, nil
}

func (r *renderer) draw() {
	r.vao.Draw(r.program, r.uniforms)
}

func (r *renderer) release() {
	if r.program != nil {
		r.program.Release()
		r.program = nil
	}
	r.vao.Release()
}
