// Package gltest provides an in-memory gfx.Device for tests.
//
// It models the GL object state the wrappers touch: buffer storage and
// bindings, vertex array attribute state with the element array binding
// held per vertex array, shader compilation, program linking, uniforms,
// capability flags and draw calls. Misuse that would raise a GL error is
// recorded and can be read back with Errors.
package gltest

import (
	"fmt"
	"unsafe"

	"glscope/pkg/gfx"
)

// Device is an in-memory gfx.Device. The zero value is not usable; call
// New.
type Device struct {
	// LoseContentOnUnmap makes UnmapBuffer report lost content, as a
	// driver does after a display mode change.
	LoseContentOnUnmap bool
	// FailMap makes MapBuffer return nil.
	FailMap bool

	nextID   uint32
	buffers  map[uint32]*buffer
	bound    map[gfx.Target]uint32
	vaos     map[uint32]*vertexArray
	boundVAO uint32
	shaders  map[uint32]*shader
	programs map[uint32]*program
	current  uint32
	caps     map[gfx.Capability]bool
	draws    []Draw
	errs     []string
}

var _ gfx.Device = (*Device)(nil)

type buffer struct {
	words  []uint64
	size   int
	usage  gfx.Usage
	mapped bool
}

func (b *buffer) bytes() []byte {
	if b.size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&b.words[0])), b.size)
}

type vertexArray struct {
	attribs map[uint32]*Attrib
	element uint32
}

// Attrib is the state of one vertex attribute slot.
type Attrib struct {
	Buffer     uint32
	Size       int32
	Type       gfx.ScalarType
	Normalized bool
	Stride     int32
	Offset     uintptr
	Enabled    bool
}

// Draw is one recorded draw call.
type Draw struct {
	Mode    gfx.Primitive
	VAO     uint32
	Program uint32
	First   int32
	Count   int32
	// Indexed draws only.
	Type          gfx.ScalarType
	ElementBuffer uint32
	Indices       []uint32
}

// New returns a Device with no objects, nothing bound and every
// capability disabled.
func New() *Device {
	return &Device{
		buffers:  make(map[uint32]*buffer),
		bound:    make(map[gfx.Target]uint32),
		vaos:     map[uint32]*vertexArray{0: {attribs: make(map[uint32]*Attrib)}},
		shaders:  make(map[uint32]*shader),
		programs: make(map[uint32]*program),
		caps:     make(map[gfx.Capability]bool),
	}
}

func (d *Device) errorf(format string, args ...any) {
	d.errs = append(d.errs, fmt.Sprintf(format, args...))
}

func (d *Device) genID() uint32 {
	d.nextID++
	return d.nextID
}

// Errors returns the misuse recorded so far.
func (d *Device) Errors() []string { return append([]string(nil), d.errs...) }

// Draws returns the recorded draw calls in order.
func (d *Device) Draws() []Draw { return append([]Draw(nil), d.draws...) }

func (d *Device) GenBuffer() uint32 {
	id := d.genID()
	d.buffers[id] = &buffer{}
	return id
}

func (d *Device) DeleteBuffer(id uint32) {
	if id == 0 {
		return
	}
	if _, ok := d.buffers[id]; !ok {
		d.errorf("DeleteBuffer: unknown buffer %d", id)
		return
	}
	delete(d.buffers, id)
	for t, b := range d.bound {
		if b == id {
			d.bound[t] = 0
		}
	}
	for _, v := range d.vaos {
		if v.element == id {
			v.element = 0
		}
	}
}

func (d *Device) BindBuffer(target gfx.Target, id uint32) {
	if id != 0 {
		if _, ok := d.buffers[id]; !ok {
			d.errorf("BindBuffer %s: unknown buffer %d", target, id)
			return
		}
	}
	if target == gfx.ElementArrayBuffer {
		d.vaos[d.boundVAO].element = id
		return
	}
	d.bound[target] = id
}

func (d *Device) boundBuffer(op string, target gfx.Target) *buffer {
	id := d.BoundBuffer(target)
	if id == 0 {
		d.errorf("%s %s: no buffer bound", op, target)
		return nil
	}
	return d.buffers[id]
}

func (d *Device) BufferData(target gfx.Target, size int, data unsafe.Pointer, usage gfx.Usage) {
	b := d.boundBuffer("BufferData", target)
	if b == nil {
		return
	}
	b.words = make([]uint64, (size+7)/8)
	b.size = size
	b.usage = usage
	b.mapped = false
	if data != nil && size > 0 {
		copy(b.bytes(), unsafe.Slice((*byte)(data), size))
	}
}

func (d *Device) BufferSubData(target gfx.Target, offset, size int, data unsafe.Pointer) {
	b := d.boundBuffer("BufferSubData", target)
	if b == nil {
		return
	}
	if b.mapped {
		d.errorf("BufferSubData %s: buffer is mapped", target)
		return
	}
	if offset < 0 || offset+size > b.size {
		d.errorf("BufferSubData %s: range [%d,%d) outside %d bytes", target, offset, offset+size, b.size)
		return
	}
	if size > 0 {
		copy(b.bytes()[offset:], unsafe.Slice((*byte)(data), size))
	}
}

func (d *Device) CopyBufferSubData(read, write gfx.Target, readOffset, writeOffset, size int) {
	r := d.boundBuffer("CopyBufferSubData", read)
	w := d.boundBuffer("CopyBufferSubData", write)
	if r == nil || w == nil {
		return
	}
	if r.mapped || w.mapped {
		d.errorf("CopyBufferSubData: buffer is mapped")
		return
	}
	if readOffset+size > r.size || writeOffset+size > w.size {
		d.errorf("CopyBufferSubData: range out of bounds")
		return
	}
	copy(w.bytes()[writeOffset:writeOffset+size], r.bytes()[readOffset:readOffset+size])
}

func (d *Device) MapBuffer(target gfx.Target, access gfx.Access) unsafe.Pointer {
	b := d.boundBuffer("MapBuffer", target)
	if b == nil {
		return nil
	}
	if b.mapped {
		d.errorf("MapBuffer %s: already mapped", target)
		return nil
	}
	if d.FailMap || b.size == 0 {
		return nil
	}
	b.mapped = true
	return unsafe.Pointer(&b.words[0])
}

func (d *Device) UnmapBuffer(target gfx.Target) bool {
	b := d.boundBuffer("UnmapBuffer", target)
	if b == nil {
		return false
	}
	if !b.mapped {
		d.errorf("UnmapBuffer %s: not mapped", target)
		return false
	}
	b.mapped = false
	return !d.LoseContentOnUnmap
}

// BoundBuffer returns the buffer bound to target. The element array
// binding is read from the bound vertex array.
func (d *Device) BoundBuffer(target gfx.Target) uint32 {
	if target == gfx.ElementArrayBuffer {
		return d.vaos[d.boundVAO].element
	}
	return d.bound[target]
}

// BufferContent returns a copy of the bytes stored in buffer id.
func (d *Device) BufferContent(id uint32) ([]byte, bool) {
	b, ok := d.buffers[id]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b.bytes()...), true
}

// BufferUsage returns the usage hint buffer id was allocated with.
func (d *Device) BufferUsage(id uint32) gfx.Usage {
	if b, ok := d.buffers[id]; ok {
		return b.usage
	}
	return 0
}

// BufferMapped reports whether buffer id is mapped.
func (d *Device) BufferMapped(id uint32) bool {
	b, ok := d.buffers[id]
	return ok && b.mapped
}

// LiveBuffers returns the number of buffers not yet deleted.
func (d *Device) LiveBuffers() int { return len(d.buffers) }

func (d *Device) GenVertexArray() uint32 {
	id := d.genID()
	d.vaos[id] = &vertexArray{attribs: make(map[uint32]*Attrib)}
	return id
}

func (d *Device) DeleteVertexArray(id uint32) {
	if id == 0 {
		return
	}
	if _, ok := d.vaos[id]; !ok {
		d.errorf("DeleteVertexArray: unknown vertex array %d", id)
		return
	}
	delete(d.vaos, id)
	if d.boundVAO == id {
		d.boundVAO = 0
	}
}

func (d *Device) BindVertexArray(id uint32) {
	if _, ok := d.vaos[id]; !ok {
		d.errorf("BindVertexArray: unknown vertex array %d", id)
		return
	}
	d.boundVAO = id
}

func (d *Device) attrib(index uint32) *Attrib {
	v := d.vaos[d.boundVAO]
	a, ok := v.attribs[index]
	if !ok {
		a = &Attrib{}
		v.attribs[index] = a
	}
	return a
}

func (d *Device) VertexAttribPointer(index uint32, size int32, xtype gfx.ScalarType, normalized bool, stride int32, offset uintptr) {
	buf := d.bound[gfx.ArrayBuffer]
	if d.boundVAO == 0 {
		d.errorf("VertexAttribPointer: no vertex array bound")
		return
	}
	if buf == 0 && offset != 0 {
		d.errorf("VertexAttribPointer: non-null pointer with no array buffer bound")
		return
	}
	if size < 1 || size > 4 {
		d.errorf("VertexAttribPointer: size %d", size)
		return
	}
	a := d.attrib(index)
	a.Buffer = buf
	a.Size = size
	a.Type = xtype
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
}

func (d *Device) EnableVertexAttribArray(index uint32)  { d.attrib(index).Enabled = true }
func (d *Device) DisableVertexAttribArray(index uint32) { d.attrib(index).Enabled = false }

// BoundVertexArray returns the bound vertex array, 0 if none.
func (d *Device) BoundVertexArray() uint32 { return d.boundVAO }

// Attrib returns the state of slot in vertex array vao.
func (d *Device) Attrib(vao, slot uint32) (Attrib, bool) {
	v, ok := d.vaos[vao]
	if !ok {
		return Attrib{}, false
	}
	a, ok := v.attribs[slot]
	if !ok {
		return Attrib{}, false
	}
	return *a, true
}

// ElementBuffer returns the index buffer recorded in vertex array vao.
func (d *Device) ElementBuffer(vao uint32) uint32 {
	if v, ok := d.vaos[vao]; ok {
		return v.element
	}
	return 0
}

// LiveVertexArrays returns the number of vertex arrays not yet deleted.
func (d *Device) LiveVertexArrays() int { return len(d.vaos) - 1 }

func (d *Device) Enable(c gfx.Capability)         { d.caps[c] = true }
func (d *Device) Disable(c gfx.Capability)        { d.caps[c] = false }
func (d *Device) IsEnabled(c gfx.Capability) bool { return d.caps[c] }

func (d *Device) DrawArrays(mode gfx.Primitive, first, count int32) {
	if d.current == 0 {
		d.errorf("DrawArrays: no program in use")
	}
	d.draws = append(d.draws, Draw{Mode: mode, VAO: d.boundVAO, Program: d.current, First: first, Count: count})
}

func (d *Device) DrawElements(mode gfx.Primitive, count int32, xtype gfx.ScalarType, offset uintptr) {
	if d.current == 0 {
		d.errorf("DrawElements: no program in use")
	}
	el := d.vaos[d.boundVAO].element
	if el == 0 {
		d.errorf("DrawElements: no element array buffer bound")
		return
	}
	indices, err := decodeIndices(d.buffers[el].bytes(), int(offset), int(count), xtype)
	if err != nil {
		d.errorf("DrawElements: %v", err)
		return
	}
	d.draws = append(d.draws, Draw{
		Mode:          mode,
		VAO:           d.boundVAO,
		Program:       d.current,
		Count:         count,
		Type:          xtype,
		ElementBuffer: el,
		Indices:       indices,
	})
}

func decodeIndices(data []byte, offset, count int, xtype gfx.ScalarType) ([]uint32, error) {
	width := xtype.Size()
	switch xtype {
	case gfx.UnsignedByte, gfx.UnsignedShort, gfx.UnsignedInt:
	default:
		return nil, fmt.Errorf("index type %s", xtype)
	}
	if offset+count*width > len(data) {
		return nil, fmt.Errorf("%d indices at offset %d exceed %d bytes", count, offset, len(data))
	}
	out := make([]uint32, count)
	for i := range out {
		p := unsafe.Pointer(&data[offset+i*width])
		switch width {
		case 1:
			out[i] = uint32(*(*uint8)(p))
		case 2:
			out[i] = uint32(*(*uint16)(p))
		case 4:
			out[i] = *(*uint32)(p)
		}
	}
	return out, nil
}
