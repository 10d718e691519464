package gfx

import "fmt"

// Target is a buffer binding point.
type Target uint32

const (
	ArrayBuffer        Target = 0x8892
	ElementArrayBuffer Target = 0x8893
	CopyReadBuffer     Target = 0x8F36
	CopyWriteBuffer    Target = 0x8F37
)

func (t Target) String() string {
	switch t {
	case ArrayBuffer:
		return "ARRAY_BUFFER"
	case ElementArrayBuffer:
		return "ELEMENT_ARRAY_BUFFER"
	case CopyReadBuffer:
		return "COPY_READ_BUFFER"
	case CopyWriteBuffer:
		return "COPY_WRITE_BUFFER"
	}
	return fmt.Sprintf("Target(0x%x)", uint32(t))
}

// Usage is the hint given to the driver about how often a buffer's
// content is written and read.
type Usage uint32

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

	// DefaultUsage is used when no hint is given.
	DefaultUsage = DynamicDraw
)

func (u Usage) String() string {
	switch u {
	case StreamDraw:
		return "STREAM_DRAW"
	case StreamRead:
		return "STREAM_READ"
	case StreamCopy:
		return "STREAM_COPY"
	case StaticDraw:
		return "STATIC_DRAW"
	case StaticRead:
		return "STATIC_READ"
	case StaticCopy:
		return "STATIC_COPY"
	case DynamicDraw:
		return "DYNAMIC_DRAW"
	case DynamicRead:
		return "DYNAMIC_READ"
	case DynamicCopy:
		return "DYNAMIC_COPY"
	}
	return fmt.Sprintf("Usage(0x%x)", uint32(u))
}

// Access selects how mapped buffer memory may be touched.
type Access uint32

const (
	ReadOnly  Access = 0x88B8
	WriteOnly Access = 0x88B9
	ReadWrite Access = 0x88BA
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "READ_ONLY"
	case WriteOnly:
		return "WRITE_ONLY"
	case ReadWrite:
		return "READ_WRITE"
	}
	return fmt.Sprintf("Access(0x%x)", uint32(a))
}

// ScalarType is the numeric type tag of one vertex component or index.
type ScalarType uint32

const (
	Byte          ScalarType = 0x1400
	UnsignedByte  ScalarType = 0x1401
	Short         ScalarType = 0x1402
	UnsignedShort ScalarType = 0x1403
	Int           ScalarType = 0x1404
	UnsignedInt   ScalarType = 0x1405
	Float         ScalarType = 0x1406
	Double        ScalarType = 0x140A
)

// Size returns the width of one value in bytes.
func (s ScalarType) Size() int {
	switch s {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort:
		return 2
	case Int, UnsignedInt, Float:
		return 4
	case Double:
		return 8
	}
	return 0
}

func (s ScalarType) String() string {
	switch s {
	case Byte:
		return "BYTE"
	case UnsignedByte:
		return "UNSIGNED_BYTE"
	case Short:
		return "SHORT"
	case UnsignedShort:
		return "UNSIGNED_SHORT"
	case Int:
		return "INT"
	case UnsignedInt:
		return "UNSIGNED_INT"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	}
	return fmt.Sprintf("ScalarType(0x%x)", uint32(s))
}

// Stage is a programmable pipeline stage.
type Stage uint32

const (
	VertexStage   Stage = 0x8B31
	GeometryStage Stage = 0x8DD9
	FragmentStage Stage = 0x8B30
)

// String returns the human name used in compile errors.
func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "Vertex"
	case GeometryStage:
		return "Geometry"
	case FragmentStage:
		return "Fragment"
	}
	return fmt.Sprintf("Stage(0x%x)", uint32(s))
}

// Capability is a boolean piece of context state toggled with
// glEnable/glDisable.
type Capability uint32

const (
	Blend            Capability = 0x0BE2
	CullFace         Capability = 0x0B44
	DepthTest        Capability = 0x0B71
	ScissorTest      Capability = 0x0C11
	StencilTest      Capability = 0x0B90
	Multisample      Capability = 0x809D
	PrimitiveRestart Capability = 0x8F9D
	ProgramPointSize Capability = 0x8642
	FramebufferSRGB  Capability = 0x8DB9
)

func (c Capability) String() string {
	switch c {
	case Blend:
		return "BLEND"
	case CullFace:
		return "CULL_FACE"
	case DepthTest:
		return "DEPTH_TEST"
	case ScissorTest:
		return "SCISSOR_TEST"
	case StencilTest:
		return "STENCIL_TEST"
	case Multisample:
		return "MULTISAMPLE"
	case PrimitiveRestart:
		return "PRIMITIVE_RESTART"
	case ProgramPointSize:
		return "PROGRAM_POINT_SIZE"
	case FramebufferSRGB:
		return "FRAMEBUFFER_SRGB"
	}
	return fmt.Sprintf("Capability(0x%x)", uint32(c))
}

// Primitive is the topology used by draw calls.
type Primitive uint32

const (
	Points        Primitive = 0x0000
	Lines         Primitive = 0x0001
	LineLoop      Primitive = 0x0002
	LineStrip     Primitive = 0x0003
	Triangles     Primitive = 0x0004
	TriangleStrip Primitive = 0x0005
	TriangleFan   Primitive = 0x0006
)

func (p Primitive) String() string {
	switch p {
	case Points:
		return "POINTS"
	case Lines:
		return "LINES"
	case LineLoop:
		return "LINE_LOOP"
	case LineStrip:
		return "LINE_STRIP"
	case Triangles:
		return "TRIANGLES"
	case TriangleStrip:
		return "TRIANGLE_STRIP"
	case TriangleFan:
		return "TRIANGLE_FAN"
	}
	return fmt.Sprintf("Primitive(0x%x)", uint32(p))
}
