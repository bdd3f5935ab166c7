package glkit

import (
	"strconv"
	"strings"

	"github.com/gogpu/glkit/driver"
)

// Program is a linked and validated shader program.
//
// A Program owns its vertex and fragment stages: they are retained on
// construction and released when the program's last owner releases it.
type Program struct {
	dev      *Device
	handle   *Handle
	vertex   *Stage
	fragment *Stage
}

// NewProgram attaches vs and fs to a new program object, links it and
// validates it. A failed check deletes the program object and returns a
// *LinkError with the driver's info log. On success the program retains
// both stages; the caller keeps its own references.
func (d *Device) NewProgram(vs, fs *Stage) (*Program, error) {
	h := d.newHandle(driver.ResourceProgram)
	drv := d.drv

	drv.AttachShader(h.id, vs.handle.id)
	drv.AttachShader(h.id, fs.handle.id)
	drv.LinkProgram(h.id)
	if err := d.checkProgram(h.id, driver.LinkStatus); err != nil {
		h.Release()
		return nil, err
	}

	drv.ValidateProgram(h.id)
	if err := d.checkProgram(h.id, driver.ValidateStatus); err != nil {
		h.Release()
		return nil, err
	}

	h.own(vs.handle)
	h.own(fs.handle)
	return &Program{
		dev:      d,
		handle:   h,
		vertex:   vs,
		fragment: fs,
	}, nil
}

// MustProgram is like NewProgram but panics if linking or validation fails.
func (d *Device) MustProgram(vs, fs *Stage) *Program {
	p, err := d.NewProgram(vs, fs)
	if err != nil {
		panic(err)
	}
	return p
}

func (d *Device) checkProgram(id uint32, status driver.Parameter) error {
	if d.drv.GetProgramParameter(id, status) != 0 {
		return nil
	}
	return &LinkError{
		Status: status,
		Log:    d.drv.ProgramInfoLog(id, d.opts.infoLogLimit),
	}
}

// ID returns the driver object name.
func (p *Program) ID() uint32 { return p.handle.id }

// Handle returns the program's shared handle.
func (p *Program) Handle() *Handle { return p.handle }

// VertexStage returns the vertex stage the program owns.
func (p *Program) VertexStage() *Stage { return p.vertex }

// FragmentStage returns the fragment stage the program owns.
func (p *Program) FragmentStage() *Stage { return p.fragment }

// Retain adds an owner and returns p.
func (p *Program) Retain() *Program {
	p.handle.Retain()
	return p
}

// Release drops an owner. The last owner deletes the program and releases
// its stages. Uniforms reflected from the program become unusable.
func (p *Program) Release() { p.handle.Release() }

// Bind makes the program current for subsequent draws and uniform uploads.
func (p *Program) Bind() {
	p.dev.drv.UseProgram(p.handle.id)
}

// Attributes returns the location of every active vertex attribute, keyed
// by name. Built-in inputs without a location are left out.
func (p *Program) Attributes() map[string]uint32 {
	drv := p.dev.drv
	n := drv.GetProgramParameter(p.handle.id, driver.ActiveAttributes)
	out := make(map[string]uint32, n)
	for i := range uint32(max(n, 0)) {
		name, _, _ := drv.ActiveAttrib(p.handle.id, i, p.dev.opts.infoLogLimit)
		loc := drv.AttribLocation(p.handle.id, cString(name))
		if loc < 0 {
			continue
		}
		out[name] = uint32(loc)
	}
	return out
}

// Uniform looks up the active uniform called name. It returns false when
// the name does not resolve to a location, which is normal for uniforms
// the compiler optimized away, or when no active uniform matches it.
//
// An element of an array uniform can be named with an index suffix
// ("lights[2]"); its size is then the number of elements from that index
// to the end of the array.
func (p *Program) Uniform(name string) (*Uniform, bool) {
	drv := p.dev.drv
	loc := drv.UniformLocation(p.handle.id, cString(name))
	if loc < 0 {
		return nil, false
	}

	key, elem := activeKey(name)
	limit := p.dev.opts.infoLogLimit
	n := drv.GetProgramParameter(p.handle.id, driver.ActiveUniforms)
	for i := range uint32(max(n, 0)) {
		uname, size, typ := drv.ActiveUniform(p.handle.id, i, limit)
		if k, _ := activeKey(uname); k != key {
			continue
		}
		return &Uniform{
			program:  p,
			name:     name,
			location: loc,
			size:     max(size-int32(elem), 1),
			typ:      UniformTypeOf(typ),
		}, true
	}

	p.dev.logger().Debug("glkit: uniform has a location but no active entry",
		"program", p.handle.id, "name", name, "location", loc)
	return nil, false
}

// activeKey maps a uniform name to the form it takes in the active
// uniform table: the trailing index is split off and returned, and inner
// array indices become [0], so "lights[2].color" and "lights[0].color"
// share a key.
func activeKey(name string) (string, int) {
	base, elem := splitIndex(name)
	if !strings.Contains(base, "[") {
		return base, elem
	}
	var b strings.Builder
	for {
		open := strings.IndexByte(base, '[')
		if open < 0 {
			break
		}
		end := strings.IndexByte(base[open:], ']')
		if end < 0 {
			break
		}
		b.WriteString(base[:open])
		b.WriteString("[0]")
		base = base[open+end+1:]
	}
	b.WriteString(base)
	return b.String(), elem
}

// splitIndex splits "name[i]" into "name" and i. Names without a valid
// index suffix are returned unchanged with index 0.
func splitIndex(name string) (string, int) {
	name = strings.TrimSuffix(name, "\x00")
	if !strings.HasSuffix(name, "]") {
		return name, 0
	}
	open := strings.LastIndexByte(name, '[')
	if open < 0 {
		return name, 0
	}
	i, err := strconv.Atoi(name[open+1 : len(name)-1])
	if err != nil || i < 0 {
		return name, 0
	}
	return name[:open], i
}
