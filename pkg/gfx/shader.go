package gfx

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Shader is a compiled shader object. A Shader value only exists in the
// compiled state; compile failures are returned by NewShader.
type Shader struct {
	dev   Device
	id    uint32
	stage Stage
	src   string
}

// NewShader creates a shader of the given stage and compiles src. On
// failure the shader object is deleted and a *CompileError is returned.
func NewShader(dev Device, stage Stage, src string) (*Shader, error) {
	id := dev.CreateShader(stage)
	if id == 0 {
		return nil, fmt.Errorf("create %s shader: device returned no handle", stage)
	}
	dev.ShaderSource(id, src)
	dev.CompileShader(id)
	if ok, infoLog := dev.ShaderInfo(id); !ok {
		dev.DeleteShader(id)
		return nil, &CompileError{Stage: stage, ID: id, Log: infoLog}
	}
	log.WithFields(logrus.Fields{"shader": id, "stage": stage}).Debug("shader compiled")
	return &Shader{dev: dev, id: id, stage: stage, src: src}, nil
}

// LoadShader reads the source at path and compiles it.
func LoadShader(dev Device, stage Stage, path string) (*Shader, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %s shader file: %w", stage, err)
	}
	return NewShader(dev, stage, string(src))
}

func (s *Shader) ID() uint32     { return s.id }
func (s *Shader) Stage() Stage   { return s.stage }
func (s *Shader) Source() string { return s.src }

// Delete marks the shader for deletion. The device keeps it alive while
// a program still has it attached.
func (s *Shader) Delete() {
	if s.id == 0 {
		return
	}
	s.dev.DeleteShader(s.id)
	s.id = 0
}

// Move hands the shader to a new value and leaves s empty.
func (s *Shader) Move() *Shader {
	m := *s
	s.id = 0
	s.src = ""
	return &m
}
