package glkit

import (
	"fmt"

	"github.com/gogpu/glkit/driver"
)

// See: https://www.khronos.org/opengl/wiki/Data_Type_(GLSL)

// UniformType is the value type of a reflected uniform. The set is closed:
// every type constant the driver reports through introspection maps to
// exactly one UniformType.
type UniformType uint8

// Uniform types.
const (
	Int UniformType = iota
	IntVec2
	IntVec3
	IntVec4

	Uint
	UintVec2
	UintVec3
	UintVec4

	Bool
	BoolVec2
	BoolVec3
	BoolVec4

	Float
	FloatVec2
	FloatVec3
	FloatVec4

	FloatMat2
	FloatMat3
	FloatMat4
	FloatMat2x3
	FloatMat2x4
	FloatMat3x2
	FloatMat3x4
	FloatMat4x2
	FloatMat4x3

	Double
	DoubleVec2
	DoubleVec3
	DoubleVec4

	DoubleMat2
	DoubleMat3
	DoubleMat4
	DoubleMat2x3
	DoubleMat2x4
	DoubleMat3x2
	DoubleMat3x4
	DoubleMat4x2
	DoubleMat4x3

	Sampler1D
	Sampler2D
	Sampler3D
	SamplerCube
	Sampler1DShadow
	Sampler2DShadow
	Sampler1DArray
	Sampler2DArray
	Sampler1DArrayShadow
	Sampler2DArrayShadow
	SamplerCubeShadow
	Sampler2DRect
	Sampler2DRectShadow
	SamplerBuffer
	Sampler2DMultisample
	Sampler2DMultisampleArray

	uniformTypeCount
)

type uniformTypeInfo struct {
	name   string
	glsl   string
	glenum uint32
	call   driver.UniformCall
}

// Bool types go through the integer entry points: the driver represents
// booleans as integers. Samplers take a texture unit index.
var uniformTypes = [uniformTypeCount]uniformTypeInfo{
	Int:     {"Int", "int", 0x1404, driver.Uniform1iv},
	IntVec2: {"IntVec2", "ivec2", 0x8B53, driver.Uniform2iv},
	IntVec3: {"IntVec3", "ivec3", 0x8B54, driver.Uniform3iv},
	IntVec4: {"IntVec4", "ivec4", 0x8B55, driver.Uniform4iv},

	Uint:     {"Uint", "uint", 0x1405, driver.Uniform1uiv},
	UintVec2: {"UintVec2", "uvec2", 0x8DC6, driver.Uniform2uiv},
	UintVec3: {"UintVec3", "uvec3", 0x8DC7, driver.Uniform3uiv},
	UintVec4: {"UintVec4", "uvec4", 0x8DC8, driver.Uniform4uiv},

	Bool:     {"Bool", "bool", 0x8B56, driver.Uniform1iv},
	BoolVec2: {"BoolVec2", "bvec2", 0x8B57, driver.Uniform2iv},
	BoolVec3: {"BoolVec3", "bvec3", 0x8B58, driver.Uniform3iv},
	BoolVec4: {"BoolVec4", "bvec4", 0x8B59, driver.Uniform4iv},

	Float:     {"Float", "float", 0x1406, driver.Uniform1fv},
	FloatVec2: {"FloatVec2", "vec2", 0x8B50, driver.Uniform2fv},
	FloatVec3: {"FloatVec3", "vec3", 0x8B51, driver.Uniform3fv},
	FloatVec4: {"FloatVec4", "vec4", 0x8B52, driver.Uniform4fv},

	FloatMat2:   {"FloatMat2", "mat2", 0x8B5A, driver.UniformMatrix2fv},
	FloatMat3:   {"FloatMat3", "mat3", 0x8B5B, driver.UniformMatrix3fv},
	FloatMat4:   {"FloatMat4", "mat4", 0x8B5C, driver.UniformMatrix4fv},
	FloatMat2x3: {"FloatMat2x3", "mat2x3", 0x8B65, driver.UniformMatrix2x3fv},
	FloatMat2x4: {"FloatMat2x4", "mat2x4", 0x8B66, driver.UniformMatrix2x4fv},
	FloatMat3x2: {"FloatMat3x2", "mat3x2", 0x8B67, driver.UniformMatrix3x2fv},
	FloatMat3x4: {"FloatMat3x4", "mat3x4", 0x8B68, driver.UniformMatrix3x4fv},
	FloatMat4x2: {"FloatMat4x2", "mat4x2", 0x8B69, driver.UniformMatrix4x2fv},
	FloatMat4x3: {"FloatMat4x3", "mat4x3", 0x8B6A, driver.UniformMatrix4x3fv},

	Double:     {"Double", "double", 0x140A, driver.Uniform1dv},
	DoubleVec2: {"DoubleVec2", "dvec2", 0x8FFC, driver.Uniform2dv},
	DoubleVec3: {"DoubleVec3", "dvec3", 0x8FFD, driver.Uniform3dv},
	DoubleVec4: {"DoubleVec4", "dvec4", 0x8FFE, driver.Uniform4dv},

	DoubleMat2:   {"DoubleMat2", "dmat2", 0x8F46, driver.UniformMatrix2dv},
	DoubleMat3:   {"DoubleMat3", "dmat3", 0x8F47, driver.UniformMatrix3dv},
	DoubleMat4:   {"DoubleMat4", "dmat4", 0x8F48, driver.UniformMatrix4dv},
	DoubleMat2x3: {"DoubleMat2x3", "dmat2x3", 0x8F49, driver.UniformMatrix2x3dv},
	DoubleMat2x4: {"DoubleMat2x4", "dmat2x4", 0x8F4A, driver.UniformMatrix2x4dv},
	DoubleMat3x2: {"DoubleMat3x2", "dmat3x2", 0x8F4B, driver.UniformMatrix3x2dv},
	DoubleMat3x4: {"DoubleMat3x4", "dmat3x4", 0x8F4C, driver.UniformMatrix3x4dv},
	DoubleMat4x2: {"DoubleMat4x2", "dmat4x2", 0x8F4D, driver.UniformMatrix4x2dv},
	DoubleMat4x3: {"DoubleMat4x3", "dmat4x3", 0x8F4E, driver.UniformMatrix4x3dv},

	Sampler1D:                 {"Sampler1D", "sampler1D", 0x8B5D, driver.Uniform1iv},
	Sampler2D:                 {"Sampler2D", "sampler2D", 0x8B5E, driver.Uniform1iv},
	Sampler3D:                 {"Sampler3D", "sampler3D", 0x8B5F, driver.Uniform1iv},
	SamplerCube:               {"SamplerCube", "samplerCube", 0x8B60, driver.Uniform1iv},
	Sampler1DShadow:           {"Sampler1DShadow", "sampler1DShadow", 0x8B61, driver.Uniform1iv},
	Sampler2DShadow:           {"Sampler2DShadow", "sampler2DShadow", 0x8B62, driver.Uniform1iv},
	Sampler1DArray:            {"Sampler1DArray", "sampler1DArray", 0x8DC0, driver.Uniform1iv},
	Sampler2DArray:            {"Sampler2DArray", "sampler2DArray", 0x8DC1, driver.Uniform1iv},
	Sampler1DArrayShadow:      {"Sampler1DArrayShadow", "sampler1DArrayShadow", 0x8DC3, driver.Uniform1iv},
	Sampler2DArrayShadow:      {"Sampler2DArrayShadow", "sampler2DArrayShadow", 0x8DC4, driver.Uniform1iv},
	SamplerCubeShadow:         {"SamplerCubeShadow", "samplerCubeShadow", 0x8DC5, driver.Uniform1iv},
	Sampler2DRect:             {"Sampler2DRect", "sampler2DRect", 0x8B63, driver.Uniform1iv},
	Sampler2DRectShadow:       {"Sampler2DRectShadow", "sampler2DRectShadow", 0x8B64, driver.Uniform1iv},
	SamplerBuffer:             {"SamplerBuffer", "samplerBuffer", 0x8DC2, driver.Uniform1iv},
	Sampler2DMultisample:      {"Sampler2DMultisample", "sampler2DMS", 0x9108, driver.Uniform1iv},
	Sampler2DMultisampleArray: {"Sampler2DMultisampleArray", "sampler2DMSArray", 0x910B, driver.Uniform1iv},
}

var uniformTypeByEnum = func() map[uint32]UniformType {
	m := make(map[uint32]UniformType, uniformTypeCount)
	for t := range uniformTypeCount {
		m[uniformTypes[t].glenum] = t
	}
	return m
}()

// UniformTypeOf maps a type constant reported by driver introspection to
// its UniformType. An unknown constant means the driver broke its contract
// and panics with ErrUnknownUniformType.
func UniformTypeOf(glenum uint32) UniformType {
	t, ok := uniformTypeByEnum[glenum]
	if !ok {
		panic(fmt.Errorf("%w: 0x%04X", ErrUnknownUniformType, glenum))
	}
	return t
}

// UniformTypes returns every UniformType in declaration order.
func UniformTypes() []UniformType {
	out := make([]UniformType, uniformTypeCount)
	for t := range uniformTypeCount {
		out[t] = t
	}
	return out
}

// Enum returns the driver's type constant for t.
func (t UniformType) Enum() uint32 { return t.info().glenum }

// Call returns the upload entry point for values of type t.
func (t UniformType) Call() driver.UniformCall { return t.info().call }

// Bytes returns the size in bytes of one element of type t as the upload
// entry point reads it.
func (t UniformType) Bytes() int { return t.info().call.ElementSize() }

// GLSLName returns the GLSL spelling of t.
func (t UniformType) GLSLName() string { return t.info().glsl }

// IsSampler reports whether t is an opaque sampler type.
func (t UniformType) IsSampler() bool { return t >= Sampler1D && t < uniformTypeCount }

// String returns the string representation of UniformType.
func (t UniformType) String() string {
	if t >= uniformTypeCount {
		return fmt.Sprintf("UniformType(%d)", uint8(t))
	}
	return uniformTypes[t].name
}

func (t UniformType) info() uniformTypeInfo {
	if t >= uniformTypeCount {
		panic(fmt.Errorf("%w: %d", ErrUnknownUniformType, uint8(t)))
	}
	return uniformTypes[t]
}
