package driver

import "fmt"

// Resource identifies the kind of driver object a name belongs to.
// Each kind has its own create and delete entry points.
type Resource uint8

// Resource kinds.
const (
	// ResourceBuffer is a buffer object (glCreateBuffers / glDeleteBuffers).
	ResourceBuffer Resource = iota + 1

	// ResourceVertexArray is a vertex array object.
	ResourceVertexArray

	// ResourceShader is a shader stage object. Shaders are created with a
	// stage kind, so Driver.Create does not allocate them.
	ResourceShader

	// ResourceProgram is a linked program object.
	ResourceProgram
)

// String returns the string representation of Resource.
func (r Resource) String() string {
	switch r {
	case ResourceBuffer:
		return "Buffer"
	case ResourceVertexArray:
		return "VertexArray"
	case ResourceShader:
		return "Shader"
	case ResourceProgram:
		return "Program"
	default:
		return fmt.Sprintf("Resource(%d)", uint8(r))
	}
}

// BufferTarget is the binding point a buffer is intended for.
// Values are the GL enum constants.
type BufferTarget uint32

// Buffer targets.
const (
	ArrayBuffer             BufferTarget = 0x8892
	ElementArrayBuffer      BufferTarget = 0x8893
	CopyReadBuffer          BufferTarget = 0x8F36
	CopyWriteBuffer         BufferTarget = 0x8F37
	UniformBuffer           BufferTarget = 0x8A11
	ShaderStorageBuffer     BufferTarget = 0x90D2
	DrawIndirectBuffer      BufferTarget = 0x8F3F
	PixelPackBuffer         BufferTarget = 0x88EB
	PixelUnpackBuffer       BufferTarget = 0x88EC
	TextureBuffer           BufferTarget = 0x8C2A
	TransformFeedbackBuffer BufferTarget = 0x8C8E
)

// String returns the string representation of BufferTarget.
func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "ArrayBuffer"
	case ElementArrayBuffer:
		return "ElementArrayBuffer"
	case CopyReadBuffer:
		return "CopyReadBuffer"
	case CopyWriteBuffer:
		return "CopyWriteBuffer"
	case UniformBuffer:
		return "UniformBuffer"
	case ShaderStorageBuffer:
		return "ShaderStorageBuffer"
	case DrawIndirectBuffer:
		return "DrawIndirectBuffer"
	case PixelPackBuffer:
		return "PixelPackBuffer"
	case PixelUnpackBuffer:
		return "PixelUnpackBuffer"
	case TextureBuffer:
		return "TextureBuffer"
	case TransformFeedbackBuffer:
		return "TransformFeedbackBuffer"
	default:
		return fmt.Sprintf("BufferTarget(0x%04X)", uint32(t))
	}
}

// Usage is the performance hint passed with buffer uploads.
// The driver treats it as opaque.
type Usage uint32

// Usage hints.
const (
	StreamDraw  Usage = 0x88E0
	StreamRead  Usage = 0x88E1
	StreamCopy  Usage = 0x88E2
	StaticDraw  Usage = 0x88E4
	StaticRead  Usage = 0x88E5
	StaticCopy  Usage = 0x88E6
	DynamicDraw Usage = 0x88E8
	DynamicRead Usage = 0x88E9
	DynamicCopy Usage = 0x88EA
)

// DrawMode is the primitive assembly mode for draw calls.
type DrawMode uint32

// Draw modes.
const (
	Points        DrawMode = 0x0000
	Lines         DrawMode = 0x0001
	LineLoop      DrawMode = 0x0002
	LineStrip     DrawMode = 0x0003
	Triangles     DrawMode = 0x0004
	TriangleStrip DrawMode = 0x0005
	TriangleFan   DrawMode = 0x0006
)

// String returns the string representation of DrawMode.
func (m DrawMode) String() string {
	switch m {
	case Points:
		return "Points"
	case Lines:
		return "Lines"
	case LineLoop:
		return "LineLoop"
	case LineStrip:
		return "LineStrip"
	case Triangles:
		return "Triangles"
	case TriangleStrip:
		return "TriangleStrip"
	case TriangleFan:
		return "TriangleFan"
	default:
		return fmt.Sprintf("DrawMode(%d)", uint32(m))
	}
}

// ComponentType is the scalar type of vertex attribute components and
// index elements.
type ComponentType uint32

// Component types.
const (
	Byte          ComponentType = 0x1400
	UnsignedByte  ComponentType = 0x1401
	Short         ComponentType = 0x1402
	UnsignedShort ComponentType = 0x1403
	Int           ComponentType = 0x1404
	UnsignedInt   ComponentType = 0x1405
	Float         ComponentType = 0x1406
	Double        ComponentType = 0x140A
	HalfFloat     ComponentType = 0x140B
)

// Size returns the size of one component in bytes, or 0 if unknown.
func (c ComponentType) Size() int {
	switch c {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort, HalfFloat:
		return 2
	case Int, UnsignedInt, Float:
		return 4
	case Double:
		return 8
	default:
		return 0
	}
}

// String returns the string representation of ComponentType.
func (c ComponentType) String() string {
	switch c {
	case Byte:
		return "Byte"
	case UnsignedByte:
		return "UnsignedByte"
	case Short:
		return "Short"
	case UnsignedShort:
		return "UnsignedShort"
	case Int:
		return "Int"
	case UnsignedInt:
		return "UnsignedInt"
	case Float:
		return "Float"
	case Double:
		return "Double"
	case HalfFloat:
		return "HalfFloat"
	default:
		return fmt.Sprintf("ComponentType(0x%04X)", uint32(c))
	}
}

// StageKind is the shader stage a shader object compiles.
type StageKind uint32

// Shader stage kinds.
const (
	VertexShader         StageKind = 0x8B31
	FragmentShader       StageKind = 0x8B30
	GeometryShader       StageKind = 0x8DD9
	TessControlShader    StageKind = 0x8E88
	TessEvaluationShader StageKind = 0x8E87
	ComputeShader        StageKind = 0x91B9
)

// String returns the string representation of StageKind.
func (k StageKind) String() string {
	switch k {
	case VertexShader:
		return "Vertex"
	case FragmentShader:
		return "Fragment"
	case GeometryShader:
		return "Geometry"
	case TessControlShader:
		return "TessControl"
	case TessEvaluationShader:
		return "TessEvaluation"
	case ComputeShader:
		return "Compute"
	default:
		return fmt.Sprintf("StageKind(0x%04X)", uint32(k))
	}
}

// Parameter names a shader or program object parameter.
type Parameter uint32

// Object parameters.
const (
	CompileStatus    Parameter = 0x8B81
	LinkStatus       Parameter = 0x8B82
	ValidateStatus   Parameter = 0x8B83
	InfoLogLength    Parameter = 0x8B84
	AttachedShaders  Parameter = 0x8B85
	ActiveUniforms   Parameter = 0x8B86
	ActiveAttributes Parameter = 0x8B89
)

// String returns the string representation of Parameter.
func (p Parameter) String() string {
	switch p {
	case CompileStatus:
		return "CompileStatus"
	case LinkStatus:
		return "LinkStatus"
	case ValidateStatus:
		return "ValidateStatus"
	case InfoLogLength:
		return "InfoLogLength"
	case AttachedShaders:
		return "AttachedShaders"
	case ActiveUniforms:
		return "ActiveUniforms"
	case ActiveAttributes:
		return "ActiveAttributes"
	default:
		return fmt.Sprintf("Parameter(0x%04X)", uint32(p))
	}
}

// ShaderBinaryFormatSPIRV is the binary format accepted by ShaderBinary
// for SPIR-V modules (ARB_gl_spirv).
const ShaderBinaryFormatSPIRV uint32 = 0x9551
