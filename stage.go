package glkit

import (
	"fmt"

	"github.com/gogpu/naga"

	"github.com/gogpu/glkit/driver"
)

// Stage is one shader object: a single compiled unit (vertex, fragment, ...)
// waiting to be linked into a Program.
type Stage struct {
	dev    *Device
	kind   driver.StageKind
	handle *Handle
}

// NewStage allocates an empty shader object for the given stage.
func (d *Device) NewStage(kind driver.StageKind) *Stage {
	id := d.drv.CreateShader(kind)
	return &Stage{
		dev:    d,
		kind:   kind,
		handle: d.HandleFromID(driver.ResourceShader, id),
	}
}

// NewStageFromSource allocates a shader object and compiles src into it.
// On failure the shader object is deleted and a *CompileError is returned.
func (d *Device) NewStageFromSource(kind driver.StageKind, src string) (*Stage, error) {
	s := d.NewStage(kind)
	if err := s.AssignSource(src); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

// MustStage is like NewStageFromSource but panics if compilation fails.
func (d *Device) MustStage(kind driver.StageKind, src string) *Stage {
	s, err := d.NewStageFromSource(kind, src)
	if err != nil {
		panic(err)
	}
	return s
}

// NewStageFromWGSL translates a WGSL module to SPIR-V and loads the given
// entry point into a new shader object. The driver must support SPIR-V
// shader binaries (GL 4.6 or ARB_gl_spirv).
func (d *Device) NewStageFromWGSL(kind driver.StageKind, src, entry string) (*Stage, error) {
	spirv, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("glkit: translate WGSL for %s stage: %w", kind, err)
	}
	s := d.NewStage(kind)
	d.drv.ShaderBinary(s.handle.id, driver.ShaderBinaryFormatSPIRV, spirv)
	d.drv.SpecializeShader(s.handle.id, cString(entry))
	if err := s.checkCompiled(); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

// Kind returns the stage kind.
func (s *Stage) Kind() driver.StageKind { return s.kind }

// ID returns the driver object name.
func (s *Stage) ID() uint32 { return s.handle.id }

// Handle returns the stage's shared handle.
func (s *Stage) Handle() *Handle { return s.handle }

// Retain adds an owner and returns s.
func (s *Stage) Retain() *Stage {
	s.handle.Retain()
	return s
}

// Release drops an owner. The last owner deletes the shader object.
func (s *Stage) Release() { s.handle.Release() }

// AssignSource replaces the stage's source with src and compiles it.
// It can be called again to recompile. A failed compile returns a
// *CompileError carrying the driver's info log.
func (s *Stage) AssignSource(src string) error {
	drv := s.dev.drv
	drv.ShaderSource(s.handle.id, cString(src))
	drv.CompileShader(s.handle.id)
	return s.checkCompiled()
}

func (s *Stage) checkCompiled() error {
	drv := s.dev.drv
	if drv.GetShaderParameter(s.handle.id, driver.CompileStatus) != 0 {
		return nil
	}
	return &CompileError{
		Kind: s.kind,
		Log:  drv.ShaderInfoLog(s.handle.id, s.dev.opts.infoLogLimit),
	}
}
