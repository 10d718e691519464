package gltest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"glscope/pkg/gfx"
)

type shader struct {
	stage    gfx.Stage
	source   string
	compiled bool
	log      string
	deleting bool
}

type program struct {
	attached  []uint32
	linked    bool
	log       string
	locations map[string]int32
	uniforms  map[int32]any
}

var (
	versionRe = regexp.MustCompile(`(?m)^\s*#version\s+\d+`)
	mainRe    = regexp.MustCompile(`void\s+main\s*\(\s*(void)?\s*\)`)
)

// compile accepts source with a #version line, a main function and
// balanced brackets. That is enough to tell the wrappers' success and
// failure paths apart.
func compile(src string) (bool, string) {
	if !versionRe.MatchString(src) {
		return false, "0:1(1): error: missing #version directive"
	}
	if !mainRe.MatchString(src) {
		return false, "0:1(1): error: no function main() defined"
	}
	pairs := map[rune]rune{')': '(', '}': '{', ']': '['}
	var stack []rune
	line := 1
	for _, r := range src {
		switch r {
		case '\n':
			line++
		case '(', '{', '[':
			stack = append(stack, r)
		case ')', '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
				return false, fmt.Sprintf("0:%d(1): error: syntax error, unexpected '%c'", line, r)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) != 0 {
		return false, fmt.Sprintf("0:%d(1): error: syntax error, unexpected end of file", line)
	}
	return true, ""
}

func (d *Device) CreateShader(stage gfx.Stage) uint32 {
	switch stage {
	case gfx.VertexStage, gfx.GeometryStage, gfx.FragmentStage:
	default:
		d.errorf("CreateShader: invalid stage %s", stage)
		return 0
	}
	id := d.genID()
	d.shaders[id] = &shader{stage: stage}
	return id
}

func (d *Device) shader(op string, id uint32) *shader {
	s, ok := d.shaders[id]
	if !ok {
		d.errorf("%s: unknown shader %d", op, id)
	}
	return s
}

func (d *Device) ShaderSource(id uint32, src string) {
	if s := d.shader("ShaderSource", id); s != nil {
		s.source = src
	}
}

func (d *Device) CompileShader(id uint32) {
	if s := d.shader("CompileShader", id); s != nil {
		s.compiled, s.log = compile(s.source)
	}
}

func (d *Device) ShaderInfo(id uint32) (bool, string) {
	s := d.shader("ShaderInfo", id)
	if s == nil {
		return false, ""
	}
	return s.compiled, s.log
}

func (d *Device) DeleteShader(id uint32) {
	if id == 0 {
		return
	}
	s := d.shader("DeleteShader", id)
	if s == nil {
		return
	}
	s.deleting = true
	d.collectShader(id)
}

// collectShader frees a shader marked for deletion once no program has
// it attached.
func (d *Device) collectShader(id uint32) {
	s, ok := d.shaders[id]
	if !ok || !s.deleting {
		return
	}
	for _, p := range d.programs {
		for _, a := range p.attached {
			if a == id {
				return
			}
		}
	}
	delete(d.shaders, id)
}

// ShaderExists reports whether shader id has not been freed. A shader
// marked for deletion stays alive while attached to a program.
func (d *Device) ShaderExists(id uint32) bool {
	_, ok := d.shaders[id]
	return ok
}

// ShaderSourceOf returns the source text given to shader id.
func (d *Device) ShaderSourceOf(id uint32) string {
	if s, ok := d.shaders[id]; ok {
		return s.source
	}
	return ""
}

func (d *Device) CreateProgram() uint32 {
	id := d.genID()
	d.programs[id] = &program{
		locations: make(map[string]int32),
		uniforms:  make(map[int32]any),
	}
	return id
}

func (d *Device) program(op string, id uint32) *program {
	p, ok := d.programs[id]
	if !ok {
		d.errorf("%s: unknown program %d", op, id)
	}
	return p
}

func (d *Device) AttachShader(prog, sh uint32) {
	p := d.program("AttachShader", prog)
	if p == nil || d.shader("AttachShader", sh) == nil {
		return
	}
	for _, a := range p.attached {
		if a == sh {
			d.errorf("AttachShader: shader %d already attached to program %d", sh, prog)
			return
		}
	}
	p.attached = append(p.attached, sh)
}

// LinkProgram links when every attached shader compiled and there is
// exactly one vertex and one fragment shader and at most one geometry
// shader.
func (d *Device) LinkProgram(id uint32) {
	p := d.program("LinkProgram", id)
	if p == nil {
		return
	}
	counts := make(map[gfx.Stage]int)
	var problems []string
	for _, a := range p.attached {
		s := d.shaders[a]
		if !s.compiled {
			problems = append(problems, fmt.Sprintf("shader %d not compiled", a))
		}
		counts[s.stage]++
	}
	if counts[gfx.VertexStage] != 1 {
		problems = append(problems, fmt.Sprintf("expected one vertex shader, have %d", counts[gfx.VertexStage]))
	}
	if counts[gfx.FragmentStage] != 1 {
		problems = append(problems, fmt.Sprintf("expected one fragment shader, have %d", counts[gfx.FragmentStage]))
	}
	if counts[gfx.GeometryStage] > 1 {
		problems = append(problems, fmt.Sprintf("expected at most one geometry shader, have %d", counts[gfx.GeometryStage]))
	}
	p.linked = len(problems) == 0
	p.log = ""
	if !p.linked {
		p.log = "error: " + strings.Join(problems, "; ")
	}
}

func (d *Device) ProgramInfo(id uint32) (bool, string) {
	p := d.program("ProgramInfo", id)
	if p == nil {
		return false, ""
	}
	return p.linked, p.log
}

func (d *Device) UseProgram(id uint32) {
	if id != 0 {
		p := d.program("UseProgram", id)
		if p == nil {
			return
		}
		if !p.linked {
			d.errorf("UseProgram: program %d not linked", id)
			return
		}
	}
	d.current = id
}

func (d *Device) DeleteProgram(id uint32) {
	if id == 0 {
		return
	}
	p := d.program("DeleteProgram", id)
	if p == nil {
		return
	}
	delete(d.programs, id)
	if d.current == id {
		d.current = 0
	}
	for _, a := range p.attached {
		d.collectShader(a)
	}
}

// CurrentProgram returns the program in use, 0 if none.
func (d *Device) CurrentProgram() uint32 { return d.current }

// ProgramExists reports whether program id has not been deleted.
func (d *Device) ProgramExists(id uint32) bool {
	_, ok := d.programs[id]
	return ok
}

// AttachedShaders returns the shaders attached to program id in order.
func (d *Device) AttachedShaders(id uint32) []uint32 {
	if p, ok := d.programs[id]; ok {
		return append([]uint32(nil), p.attached...)
	}
	return nil
}

// LiveShaders returns the number of shaders not yet freed.
func (d *Device) LiveShaders() int { return len(d.shaders) }

// LivePrograms returns the number of programs not yet deleted.
func (d *Device) LivePrograms() int { return len(d.programs) }

// UniformLocation hands out locations in lookup order; -1 for a
// program that is not linked.
func (d *Device) UniformLocation(prog uint32, name string) int32 {
	p := d.program("UniformLocation", prog)
	if p == nil || !p.linked {
		return -1
	}
	loc, ok := p.locations[name]
	if !ok {
		loc = int32(len(p.locations))
		p.locations[name] = loc
	}
	return loc
}

func (d *Device) setUniform(op string, location int32, v any) {
	if location == -1 {
		return
	}
	if d.current == 0 {
		d.errorf("%s: no program in use", op)
		return
	}
	d.programs[d.current].uniforms[location] = v
}

func (d *Device) Uniform1i(location int32, v int32)   { d.setUniform("Uniform1i", location, v) }
func (d *Device) Uniform1f(location int32, v float32) { d.setUniform("Uniform1f", location, v) }

func (d *Device) Uniform3f(location int32, x, y, z float32) {
	d.setUniform("Uniform3f", location, mgl32.Vec3{x, y, z})
}

func (d *Device) UniformMatrix4(location int32, m mgl32.Mat4) {
	d.setUniform("UniformMatrix4", location, m)
}

// Uniform returns the value last set for name on program id: int32,
// float32, mgl32.Vec3 or mgl32.Mat4.
func (d *Device) Uniform(id uint32, name string) (any, bool) {
	p, ok := d.programs[id]
	if !ok {
		return nil, false
	}
	loc, ok := p.locations[name]
	if !ok {
		return nil, false
	}
	v, ok := p.uniforms[loc]
	return v, ok
}
