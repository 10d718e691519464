package glbackend

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"

	"glscope/pkg/gfx"
)

// The gfx enums are plain numbers so that gfx and gltest build without
// cgo. They must agree with the bindings the Device forwards them to.
func TestEnumsMatchBindings(t *testing.T) {
	cases := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"ArrayBuffer", uint32(gfx.ArrayBuffer), gl.ARRAY_BUFFER},
		{"ElementArrayBuffer", uint32(gfx.ElementArrayBuffer), gl.ELEMENT_ARRAY_BUFFER},
		{"CopyReadBuffer", uint32(gfx.CopyReadBuffer), gl.COPY_READ_BUFFER},
		{"CopyWriteBuffer", uint32(gfx.CopyWriteBuffer), gl.COPY_WRITE_BUFFER},

		{"StreamDraw", uint32(gfx.StreamDraw), gl.STREAM_DRAW},
		{"StreamRead", uint32(gfx.StreamRead), gl.STREAM_READ},
		{"StreamCopy", uint32(gfx.StreamCopy), gl.STREAM_COPY},
		{"StaticDraw", uint32(gfx.StaticDraw), gl.STATIC_DRAW},
		{"StaticRead", uint32(gfx.StaticRead), gl.STATIC_READ},
		{"StaticCopy", uint32(gfx.StaticCopy), gl.STATIC_COPY},
		{"DynamicDraw", uint32(gfx.DynamicDraw), gl.DYNAMIC_DRAW},
		{"DynamicRead", uint32(gfx.DynamicRead), gl.DYNAMIC_READ},
		{"DynamicCopy", uint32(gfx.DynamicCopy), gl.DYNAMIC_COPY},

		{"ReadOnly", uint32(gfx.ReadOnly), gl.READ_ONLY},
		{"WriteOnly", uint32(gfx.WriteOnly), gl.WRITE_ONLY},
		{"ReadWrite", uint32(gfx.ReadWrite), gl.READ_WRITE},

		{"Byte", uint32(gfx.Byte), gl.BYTE},
		{"UnsignedByte", uint32(gfx.UnsignedByte), gl.UNSIGNED_BYTE},
		{"Short", uint32(gfx.Short), gl.SHORT},
		{"UnsignedShort", uint32(gfx.UnsignedShort), gl.UNSIGNED_SHORT},
		{"Int", uint32(gfx.Int), gl.INT},
		{"UnsignedInt", uint32(gfx.UnsignedInt), gl.UNSIGNED_INT},
		{"Float", uint32(gfx.Float), gl.FLOAT},
		{"Double", uint32(gfx.Double), gl.DOUBLE},

		{"VertexStage", uint32(gfx.VertexStage), gl.VERTEX_SHADER},
		{"GeometryStage", uint32(gfx.GeometryStage), gl.GEOMETRY_SHADER},
		{"FragmentStage", uint32(gfx.FragmentStage), gl.FRAGMENT_SHADER},

		{"Blend", uint32(gfx.Blend), gl.BLEND},
		{"CullFace", uint32(gfx.CullFace), gl.CULL_FACE},
		{"DepthTest", uint32(gfx.DepthTest), gl.DEPTH_TEST},
		{"ScissorTest", uint32(gfx.ScissorTest), gl.SCISSOR_TEST},
		{"StencilTest", uint32(gfx.StencilTest), gl.STENCIL_TEST},
		{"Multisample", uint32(gfx.Multisample), gl.MULTISAMPLE},
		{"PrimitiveRestart", uint32(gfx.PrimitiveRestart), gl.PRIMITIVE_RESTART},
		{"ProgramPointSize", uint32(gfx.ProgramPointSize), gl.PROGRAM_POINT_SIZE},
		{"FramebufferSRGB", uint32(gfx.FramebufferSRGB), gl.FRAMEBUFFER_SRGB},

		{"Points", uint32(gfx.Points), gl.POINTS},
		{"Lines", uint32(gfx.Lines), gl.LINES},
		{"LineLoop", uint32(gfx.LineLoop), gl.LINE_LOOP},
		{"LineStrip", uint32(gfx.LineStrip), gl.LINE_STRIP},
		{"Triangles", uint32(gfx.Triangles), gl.TRIANGLES},
		{"TriangleStrip", uint32(gfx.TriangleStrip), gl.TRIANGLE_STRIP},
		{"TriangleFan", uint32(gfx.TriangleFan), gl.TRIANGLE_FAN},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.got, c.name)
	}
}
