package gfx_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glscope/pkg/gfx"
	"glscope/pkg/gfx/gltest"
)

const vertexSrc = `#version 330 core
layout (location = 0) in vec3 pos;

void main()
{
  gl_Position = vec4(pos, 1.0);
}
`

const fragmentSrc = `#version 330 core
out vec4 color;
uniform vec3 tint;

void main()
{
  color = vec4(tint, 1.0f);
}
`

func TestShaderCompiles(t *testing.T) {
	dev := gltest.New()
	s, err := gfx.NewShader(dev, gfx.VertexStage, vertexSrc)
	require.NoError(t, err)
	assert.NotZero(t, s.ID())
	assert.Equal(t, gfx.VertexStage, s.Stage())
	assert.Equal(t, vertexSrc, s.Source())
	assert.Equal(t, vertexSrc, dev.ShaderSourceOf(s.ID()))

	s.Delete()
	assert.Zero(t, s.ID())
	assert.Zero(t, dev.LiveShaders())
	s.Delete()
}

func TestShaderCompileError(t *testing.T) {
	dev := gltest.New()
	broken := "#version 330 core\nvoid main() {\n  gl_Position = vec4(0.0;\n}\n"

	s, err := gfx.NewShader(dev, gfx.FragmentStage, broken)
	assert.Nil(t, s)
	var ce *gfx.CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, gfx.FragmentStage, ce.Stage)
	assert.NotZero(t, ce.ID)
	assert.NotEmpty(t, ce.Log)
	assert.Contains(t, err.Error(), "Fragment shader")
	assert.Zero(t, dev.LiveShaders(), "failed shader is released")
}

func TestLoadShader(t *testing.T) {
	dev := gltest.New()
	path := filepath.Join(t.TempDir(), "rect.vert")
	require.NoError(t, os.WriteFile(path, []byte(vertexSrc), 0o644))

	s, err := gfx.LoadShader(dev, gfx.VertexStage, path)
	require.NoError(t, err)
	assert.Equal(t, vertexSrc, s.Source())

	_, err = gfx.LoadShader(dev, gfx.VertexStage, filepath.Join(t.TempDir(), "missing.vert"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func newShaders(t *testing.T, dev gfx.Device) (*gfx.Shader, *gfx.Shader) {
	t.Helper()
	vs, err := gfx.NewShader(dev, gfx.VertexStage, vertexSrc)
	require.NoError(t, err)
	fs, err := gfx.NewShader(dev, gfx.FragmentStage, fragmentSrc)
	require.NoError(t, err)
	return vs, fs
}

func TestProgramLinks(t *testing.T) {
	dev := gltest.New()
	vs, fs := newShaders(t, dev)

	p, err := gfx.NewProgram(dev, vs, fs)
	require.NoError(t, err)
	assert.NotZero(t, p.ID())
	assert.Equal(t, []uint32{vs.ID(), fs.ID()}, p.Shaders())
	assert.Equal(t, []uint32{vs.ID(), fs.ID()}, dev.AttachedShaders(p.ID()))

	// Shaders marked for deletion live until the program goes.
	vs.Delete()
	fs.Delete()
	assert.Equal(t, 2, dev.LiveShaders())

	p.Use()
	assert.Equal(t, p.ID(), dev.CurrentProgram())
	p.Delete()
	assert.Zero(t, dev.CurrentProgram())
	assert.Zero(t, dev.LivePrograms())
	assert.Zero(t, dev.LiveShaders())
	assert.Empty(t, dev.Errors())
}

func TestProgramLinkError(t *testing.T) {
	dev := gltest.New()
	vs1, err := gfx.NewShader(dev, gfx.VertexStage, vertexSrc)
	require.NoError(t, err)
	vs2, err := gfx.NewShader(dev, gfx.VertexStage, vertexSrc)
	require.NoError(t, err)

	p, err := gfx.NewProgram(dev, vs1, vs2)
	assert.Nil(t, p)
	var le *gfx.LinkError
	require.True(t, errors.As(err, &le))
	assert.NotEmpty(t, le.Log)
	assert.Contains(t, err.Error(), "link error")
	assert.Zero(t, dev.LivePrograms(), "failed program is released")
}

func TestProgramEqualAndMove(t *testing.T) {
	dev := gltest.New()
	vs, fs := newShaders(t, dev)
	a, err := gfx.NewProgram(dev, vs, fs)
	require.NoError(t, err)
	b, err := gfx.NewProgram(dev, vs, fs)
	require.NoError(t, err)

	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))

	id := a.ID()
	m := a.Move()
	assert.Equal(t, id, m.ID())
	assert.Zero(t, a.ID())
	assert.Empty(t, a.Shaders())
	a.Delete()
	assert.True(t, dev.ProgramExists(id))
}

func TestProgramUniforms(t *testing.T) {
	dev := gltest.New()
	vs, fs := newShaders(t, dev)
	p, err := gfx.NewProgram(dev, vs, fs)
	require.NoError(t, err)
	p.Use()

	p.SetVec3("tint", mgl32.Vec3{1, 0.5, 0.2})
	p.SetFloat("alpha", 0.5)
	p.SetInt("layer", 3)
	p.SetBool("flip", true)
	p.SetMat4("model", mgl32.Ident4())

	got := func(name string) any {
		v, ok := dev.Uniform(p.ID(), name)
		require.True(t, ok, name)
		return v
	}
	assert.Equal(t, mgl32.Vec3{1, 0.5, 0.2}, got("tint"))
	assert.Equal(t, float32(0.5), got("alpha"))
	assert.Equal(t, int32(3), got("layer"))
	assert.Equal(t, int32(1), got("flip"))
	assert.Equal(t, mgl32.Ident4(), got("model"))
	assert.Empty(t, dev.Errors())
}
