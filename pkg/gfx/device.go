// Package gfx wraps OpenGL objects in owning Go values.
//
// Every wrapper owns exactly one native handle. It is allocated when the
// value is constructed and released by Delete, which is safe to call on
// an empty or already deleted value. Binds and capability toggles are
// scoped: the call returns the function that undoes it, so the usual
// pattern is
//
//	defer vao.Bind()()
//
// All calls must be made from the thread that owns the current context.
package gfx

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Device is the set of native entry points the wrappers drive. The
// production implementation lives in glbackend; gltest provides an
// in-memory one.
type Device interface {
	GenBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target Target, id uint32)
	BufferData(target Target, size int, data unsafe.Pointer, usage Usage)
	BufferSubData(target Target, offset, size int, data unsafe.Pointer)
	CopyBufferSubData(read, write Target, readOffset, writeOffset, size int)
	// MapBuffer returns nil when the buffer bound to target cannot be
	// mapped, for example because it is mapped already.
	MapBuffer(target Target, access Access) unsafe.Pointer
	// UnmapBuffer reports false when the mapped content was lost.
	UnmapBuffer(target Target) bool

	GenVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	VertexAttribPointer(index uint32, size int32, xtype ScalarType, normalized bool, stride int32, offset uintptr)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)

	CreateShader(stage Stage) uint32
	ShaderSource(id uint32, src string)
	CompileShader(id uint32)
	// ShaderInfo returns the compile status and info log of a shader.
	ShaderInfo(id uint32) (compiled bool, log string)
	DeleteShader(id uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(id uint32)
	// ProgramInfo returns the link status and info log of a program.
	ProgramInfo(id uint32) (linked bool, log string)
	UseProgram(id uint32)
	DeleteProgram(id uint32)

	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix4(location int32, m mgl32.Mat4)

	Enable(c Capability)
	Disable(c Capability)
	IsEnabled(c Capability) bool

	DrawArrays(mode Primitive, first, count int32)
	DrawElements(mode Primitive, count int32, xtype ScalarType, offset uintptr)
}
