package gfx

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// Program is a linked program object.
type Program struct {
	dev     Device
	id      uint32
	shaders []uint32
}

// NewProgram creates a program, attaches shaders in order and links it.
// On failure the program object is deleted and a *LinkError is
// returned. The shaders may be deleted once NewProgram returns.
func NewProgram(dev Device, shaders ...*Shader) (*Program, error) {
	id := dev.CreateProgram()
	if id == 0 {
		return nil, fmt.Errorf("create program: device returned no handle")
	}
	ids := make([]uint32, 0, len(shaders))
	for _, s := range shaders {
		dev.AttachShader(id, s.ID())
		ids = append(ids, s.ID())
	}
	dev.LinkProgram(id)
	if ok, infoLog := dev.ProgramInfo(id); !ok {
		dev.DeleteProgram(id)
		return nil, &LinkError{ID: id, Log: infoLog}
	}
	log.WithFields(logrus.Fields{"program": id, "shaders": ids}).Debug("program linked")
	return &Program{dev: dev, id: id, shaders: ids}, nil
}

// ID is the program name, 0 once deleted or moved from.
func (p *Program) ID() uint32 { return p.id }

// Shaders returns the handles the program was linked from, in order.
func (p *Program) Shaders() []uint32 { return slices.Clone(p.shaders) }

// Use makes p the program for subsequent draw calls.
func (p *Program) Use() { p.dev.UseProgram(p.id) }

// Equal reports whether p and o are the same program linked from the
// same shaders.
func (p *Program) Equal(o *Program) bool {
	return p.id == o.id && slices.Equal(p.shaders, o.shaders)
}

// Delete releases the program; attached shaders are detached by the
// device.
func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	p.dev.UseProgram(0)
	p.dev.DeleteProgram(p.id)
	log.WithField("program", p.id).Debug("program deleted")
	p.id = 0
	p.shaders = nil
}

// Move hands the program to a new value and leaves p empty.
func (p *Program) Move() *Program {
	m := &Program{dev: p.dev, id: p.id, shaders: p.shaders}
	p.id = 0
	p.shaders = nil
	return m
}

func (p *Program) location(name string) int32 {
	return p.dev.UniformLocation(p.id, name)
}

// SetBool sets a boolean uniform. The program must be in use.
func (p *Program) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	p.dev.Uniform1i(p.location(name), v)
}

// SetInt sets an integer uniform.
func (p *Program) SetInt(name string, value int32) {
	p.dev.Uniform1i(p.location(name), value)
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, value float32) {
	p.dev.Uniform1f(p.location(name), value)
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	p.dev.Uniform3f(p.location(name), v.X(), v.Y(), v.Z())
}

// SetMat4 sets a mat4 uniform.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	p.dev.UniformMatrix4(p.location(name), m)
}
