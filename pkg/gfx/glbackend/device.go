// Package glbackend implements gfx.Device on top of the OpenGL 4.1 core
// bindings.
package glbackend

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"glscope/pkg/gfx"
)

// Device forwards every call to the context current on the calling
// thread.
type Device struct{}

var _ gfx.Device = (*Device)(nil)

// New loads the GL function pointers. A context must be current on the
// calling thread, which must be locked with runtime.LockOSThread.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init gl: %w", err)
	}
	return &Device{}, nil
}

// Version returns the GL_VERSION string of the current context.
func (d *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *Device) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (d *Device) DeleteBuffer(id uint32) { gl.DeleteBuffers(1, &id) }

func (d *Device) BindBuffer(target gfx.Target, id uint32) { gl.BindBuffer(uint32(target), id) }

func (d *Device) BufferData(target gfx.Target, size int, data unsafe.Pointer, usage gfx.Usage) {
	gl.BufferData(uint32(target), size, data, uint32(usage))
}

func (d *Device) BufferSubData(target gfx.Target, offset, size int, data unsafe.Pointer) {
	gl.BufferSubData(uint32(target), offset, size, data)
}

func (d *Device) CopyBufferSubData(read, write gfx.Target, readOffset, writeOffset, size int) {
	gl.CopyBufferSubData(uint32(read), uint32(write), readOffset, writeOffset, size)
}

func (d *Device) MapBuffer(target gfx.Target, access gfx.Access) unsafe.Pointer {
	return gl.MapBuffer(uint32(target), uint32(access))
}

func (d *Device) UnmapBuffer(target gfx.Target) bool { return gl.UnmapBuffer(uint32(target)) }

func (d *Device) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (d *Device) DeleteVertexArray(id uint32) { gl.DeleteVertexArrays(1, &id) }

func (d *Device) BindVertexArray(id uint32) { gl.BindVertexArray(id) }

func (d *Device) VertexAttribPointer(index uint32, size int32, xtype gfx.ScalarType, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointer(index, size, uint32(xtype), normalized, stride, gl.PtrOffset(int(offset)))
}

func (d *Device) EnableVertexAttribArray(index uint32)  { gl.EnableVertexAttribArray(index) }
func (d *Device) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (d *Device) CreateShader(stage gfx.Stage) uint32 { return gl.CreateShader(uint32(stage)) }

func (d *Device) ShaderSource(id uint32, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
}

func (d *Device) CompileShader(id uint32) { gl.CompileShader(id) }

func (d *Device) ShaderInfo(id uint32) (bool, string) {
	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(id, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (d *Device) DeleteShader(id uint32) { gl.DeleteShader(id) }

func (d *Device) CreateProgram() uint32 { return gl.CreateProgram() }

func (d *Device) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (d *Device) LinkProgram(id uint32) { gl.LinkProgram(id) }

func (d *Device) ProgramInfo(id uint32) (bool, string) {
	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status != gl.FALSE {
		return true, ""
	}
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
	return false, strings.TrimRight(log, "\x00")
}

func (d *Device) UseProgram(id uint32)    { gl.UseProgram(id) }
func (d *Device) DeleteProgram(id uint32) { gl.DeleteProgram(id) }

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) Uniform1i(location int32, v int32)         { gl.Uniform1i(location, v) }
func (d *Device) Uniform1f(location int32, v float32)       { gl.Uniform1f(location, v) }
func (d *Device) Uniform3f(location int32, x, y, z float32) { gl.Uniform3f(location, x, y, z) }

func (d *Device) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) Enable(c gfx.Capability)         { gl.Enable(uint32(c)) }
func (d *Device) Disable(c gfx.Capability)        { gl.Disable(uint32(c)) }
func (d *Device) IsEnabled(c gfx.Capability) bool { return gl.IsEnabled(uint32(c)) }

func (d *Device) DrawArrays(mode gfx.Primitive, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

func (d *Device) DrawElements(mode gfx.Primitive, count int32, xtype gfx.ScalarType, offset uintptr) {
	gl.DrawElements(uint32(mode), count, uint32(xtype), gl.PtrOffset(int(offset)))
}

// Clear clears the colour buffer to c.
func (d *Device) Clear(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Viewport sets the viewport to the given framebuffer size.
func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Error returns the oldest pending GL error, or nil.
func (d *Device) Error() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}
