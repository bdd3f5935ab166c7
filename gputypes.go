package glkit

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glkit/driver"
)

// Conversions from the WebGPU-style descriptors in gputypes to driver
// values, for code that describes resources once and runs on several
// backends.

// TargetForUsage picks the buffer target for a usage mask. Index usage wins
// over vertex usage, which wins over uniform, storage and copy usage.
// Map-only or empty masks have no target.
func TargetForUsage(usage gputypes.BufferUsage) (driver.BufferTarget, error) {
	switch {
	case usage&gputypes.BufferUsageIndex != 0:
		return driver.ElementArrayBuffer, nil
	case usage&gputypes.BufferUsageVertex != 0:
		return driver.ArrayBuffer, nil
	case usage&gputypes.BufferUsageUniform != 0:
		return driver.UniformBuffer, nil
	case usage&gputypes.BufferUsageStorage != 0:
		return driver.ShaderStorageBuffer, nil
	case usage&gputypes.BufferUsageIndirect != 0:
		return driver.DrawIndirectBuffer, nil
	case usage&gputypes.BufferUsageCopySrc != 0:
		return driver.CopyReadBuffer, nil
	case usage&gputypes.BufferUsageCopyDst != 0:
		return driver.CopyWriteBuffer, nil
	}
	return 0, fmt.Errorf("%w: buffer usage %#x", ErrUnsupportedFormat, uint64(usage))
}

// StageKindFor maps a single shader stage to its stage kind. Combined
// stage masks are rejected.
func StageKindFor(stage gputypes.ShaderStage) (driver.StageKind, error) {
	switch stage {
	case gputypes.ShaderStageVertex:
		return driver.VertexShader, nil
	case gputypes.ShaderStageFragment:
		return driver.FragmentShader, nil
	case gputypes.ShaderStageCompute:
		return driver.ComputeShader, nil
	}
	return 0, fmt.Errorf("%w: shader stage %s", ErrUnsupportedFormat, stage)
}

// DrawModeFor maps a primitive topology to a draw mode.
func DrawModeFor(topology gputypes.PrimitiveTopology) (driver.DrawMode, error) {
	switch topology {
	case gputypes.PrimitiveTopologyPointList:
		return driver.Points, nil
	case gputypes.PrimitiveTopologyLineList:
		return driver.Lines, nil
	case gputypes.PrimitiveTopologyLineStrip:
		return driver.LineStrip, nil
	case gputypes.PrimitiveTopologyTriangleList:
		return driver.Triangles, nil
	case gputypes.PrimitiveTopologyTriangleStrip:
		return driver.TriangleStrip, nil
	}
	return 0, fmt.Errorf("%w: primitive topology %s", ErrUnsupportedFormat, topology)
}

// AttribLayout is the attribute pointer description of a vertex format.
type AttribLayout struct {
	Size       int32
	Type       driver.ComponentType
	Normalized bool
}

// Bytes returns the size of one attribute value.
func (l AttribLayout) Bytes() int {
	return int(l.Size) * l.Type.Size()
}

var vertexFormats = map[gputypes.VertexFormat]AttribLayout{
	gputypes.VertexFormatUint8x2:   {2, driver.UnsignedByte, false},
	gputypes.VertexFormatUint8x4:   {4, driver.UnsignedByte, false},
	gputypes.VertexFormatSint8x2:   {2, driver.Byte, false},
	gputypes.VertexFormatSint8x4:   {4, driver.Byte, false},
	gputypes.VertexFormatUnorm8x2:  {2, driver.UnsignedByte, true},
	gputypes.VertexFormatUnorm8x4:  {4, driver.UnsignedByte, true},
	gputypes.VertexFormatSnorm8x2:  {2, driver.Byte, true},
	gputypes.VertexFormatSnorm8x4:  {4, driver.Byte, true},
	gputypes.VertexFormatUint16x2:  {2, driver.UnsignedShort, false},
	gputypes.VertexFormatUint16x4:  {4, driver.UnsignedShort, false},
	gputypes.VertexFormatSint16x2:  {2, driver.Short, false},
	gputypes.VertexFormatSint16x4:  {4, driver.Short, false},
	gputypes.VertexFormatUnorm16x2: {2, driver.UnsignedShort, true},
	gputypes.VertexFormatUnorm16x4: {4, driver.UnsignedShort, true},
	gputypes.VertexFormatSnorm16x2: {2, driver.Short, true},
	gputypes.VertexFormatSnorm16x4: {4, driver.Short, true},
	gputypes.VertexFormatFloat16x2: {2, driver.HalfFloat, false},
	gputypes.VertexFormatFloat16x4: {4, driver.HalfFloat, false},
	gputypes.VertexFormatFloat32:   {1, driver.Float, false},
	gputypes.VertexFormatFloat32x2: {2, driver.Float, false},
	gputypes.VertexFormatFloat32x3: {3, driver.Float, false},
	gputypes.VertexFormatFloat32x4: {4, driver.Float, false},
	gputypes.VertexFormatUint32:    {1, driver.UnsignedInt, false},
	gputypes.VertexFormatUint32x2:  {2, driver.UnsignedInt, false},
	gputypes.VertexFormatUint32x3:  {3, driver.UnsignedInt, false},
	gputypes.VertexFormatUint32x4:  {4, driver.UnsignedInt, false},
	gputypes.VertexFormatSint32:    {1, driver.Int, false},
	gputypes.VertexFormatSint32x2:  {2, driver.Int, false},
	gputypes.VertexFormatSint32x3:  {3, driver.Int, false},
	gputypes.VertexFormatSint32x4:  {4, driver.Int, false},
}

// LayoutFor returns the attribute layout of a vertex format. Packed formats
// are not supported.
func LayoutFor(format gputypes.VertexFormat) (AttribLayout, error) {
	l, ok := vertexFormats[format]
	if !ok {
		return AttribLayout{}, fmt.Errorf("%w: vertex format %s", ErrUnsupportedFormat, format)
	}
	return l, nil
}

// SetPointerFormat is SetPointer with the component count, type and
// normalization taken from a vertex format. On error the array is left
// unchanged.
func (va *VertexArray) SetPointerFormat(slot uint32, buf *Buffer, format gputypes.VertexFormat, stride int32, offset uintptr) error {
	l, err := LayoutFor(format)
	if err != nil {
		return err
	}
	va.SetPointer(slot, buf, l.Size, l.Type, l.Normalized, stride, offset)
	return nil
}
