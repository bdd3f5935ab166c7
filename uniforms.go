package glkit

import (
	"fmt"
	"reflect"
)

// UniformContainer uploads a set of uniform values to the bound program.
// VertexArray.Draw calls Bind after binding the program.
type UniformContainer interface {
	Bind()
}

// UniformFunc adapts an ordinary function to UniformContainer.
type UniformFunc func()

// Bind calls f.
func (f UniformFunc) Bind() {
	if f != nil {
		f()
	}
}

type noUniforms struct{}

func (noUniforms) Bind() {}

// NoUniforms is the container for programs without uniforms.
var NoUniforms UniformContainer = noUniforms{}

// UniformValue pairs a reflected uniform with the value uploaded on Bind.
type UniformValue[T any] struct {
	Uniform *Uniform
	Value   T
}

// Bind uploads Value to Uniform.
func (v *UniformValue[T]) Bind() {
	SetUniform(v.Uniform, v.Value)
}

func (v *UniformValue[T]) lookup(p *Program, name string) bool {
	u, ok := p.Uniform(name)
	if !ok {
		return false
	}
	v.Uniform = u
	return true
}

// uniformField is implemented by every *UniformValue[T].
type uniformField interface {
	UniformContainer
	lookup(p *Program, name string) bool
}

var uniformFieldType = reflect.TypeFor[uniformField]()

// Uniforms is a typed uniform container built from a struct whose fields
// are UniformValue values.
//
//	type shading struct {
//	    Tint  glkit.UniformValue[f32.Vec4] `uniform:"tint"`
//	    Model glkit.UniformValue[f32.Mat4] `uniform:"model"`
//	}
//
//	u := glkit.NewUniforms[shading](prog)
//	u.Values.Tint.Value = f32.Vec4{1, 0, 0, 1}
//	vao.Draw(prog, u)
type Uniforms[S any] struct {
	Values S
	fields []uniformField
}

// NewUniforms reflects every UniformValue field of S from p, one lookup
// per field. The uniform name is the field's `uniform` tag, or the field
// name when the tag is absent. Fields of other types are ignored and a tag
// of "-" skips a field.
//
// A field naming no active uniform of p panics with ErrUniformNotFound.
// S must be a struct type.
func NewUniforms[S any](p *Program) *Uniforms[S] {
	u := &Uniforms[S]{}
	sv := reflect.ValueOf(&u.Values).Elem()
	st := sv.Type()
	if st.Kind() != reflect.Struct {
		panic(fmt.Sprintf("glkit: NewUniforms: %s is not a struct", st))
	}
	for i := range st.NumField() {
		sf := st.Field(i)
		if !sf.IsExported() || !reflect.PointerTo(sf.Type).Implements(uniformFieldType) {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("uniform"); ok {
			if tag == "-" {
				continue
			}
			name = tag
		}
		f := sv.Field(i).Addr().Interface().(uniformField)
		if !f.lookup(p, name) {
			panic(fmt.Errorf("%w: %s.%s (%q)", ErrUniformNotFound, st.Name(), sf.Name, name))
		}
		u.fields = append(u.fields, f)
	}
	return u
}

// Bind uploads every field's current value in declaration order.
func (u *Uniforms[S]) Bind() {
	for _, f := range u.fields {
		f.Bind()
	}
}

// Len returns the number of reflected fields.
func (u *Uniforms[S]) Len() int { return len(u.fields) }
