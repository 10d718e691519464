package gfx

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// Source is a buffer that can be attached to a vertex array. Every
// *Buffer satisfies it.
type Source interface {
	ID() uint32
	Target() Target
	Len() int
	Components() int32
	Scalar() ScalarType
}

// Layout describes how one attribute is read out of its buffer.
type Layout struct {
	Stride     int32
	Offset     uintptr
	Normalized bool
}

// Attribute is what a vertex array records for one attached slot.
type Attribute struct {
	Buffer     uint32
	Components int32
	Scalar     ScalarType
	Layout     Layout
	Enabled    bool
}


// VertexArray is a vertex array object: the record of which buffer
// feeds which attribute slot, plus at most one index buffer.
//
// A VertexArray cannot be duplicated; Move hands its handle over.
type VertexArray struct {
	dev     Device
	id      uint32
	attribs map[uint32]*Attribute
	indices Source
}

// NewVertexArray allocates a vertex array object.
func NewVertexArray(dev Device) *VertexArray {
	v := &VertexArray{
		dev:     dev,
		id:      dev.GenVertexArray(),
		attribs: make(map[uint32]*Attribute),
	}
	log.WithField("vao", v.id).Debug("vertex array allocated")
	return v
}

// ID is the vertex array name, 0 once deleted or moved from.
func (v *VertexArray) ID() uint32 { return v.id }

// Bind makes v the current vertex array and returns the function that
// binds zero back.
func (v *VertexArray) Bind() func() {
	return BindVertexArray(v.dev, v.id)
}

// Delete releases the vertex array. It is a no-op once deleted.
func (v *VertexArray) Delete() {
	if v.id == 0 {
		return
	}
	v.dev.DeleteVertexArray(v.id)
	log.WithField("vao", v.id).Debug("vertex array deleted")
	v.reset()
}

func (v *VertexArray) reset() {
	v.id = 0
	v.attribs = make(map[uint32]*Attribute)
	v.indices = nil
}

// Move hands the handle and recorded bindings to a new VertexArray and
// leaves v empty.
func (v *VertexArray) Move() *VertexArray {
	m := &VertexArray{dev: v.dev, id: v.id, attribs: v.attribs, indices: v.indices}
	v.reset()
	return m
}

// Equal reports whether v and o are the same vertex array object.
func (v *VertexArray) Equal(o *VertexArray) bool { return v.id == o.id }

// Attach feeds slot from src using layout and enables the slot. src
// must be a non-empty buffer with the Array role.
func (v *VertexArray) Attach(slot uint32, src Source, layout Layout) error {
	if v.id == 0 {
		return ErrEmpty
	}
	if src.Target() != ArrayBuffer {
		return fmt.Errorf("attach slot %d: %w: %s", slot, ErrWrongTarget, src.Target())
	}
	if src.ID() == 0 {
		return fmt.Errorf("attach slot %d: %w", slot, ErrEmpty)
	}
	defer v.Bind()()
	defer BindBuffer(v.dev, ArrayBuffer, src.ID())()
	v.dev.VertexAttribPointer(slot, src.Components(), src.Scalar(), layout.Normalized, layout.Stride, layout.Offset)
	v.dev.EnableVertexAttribArray(slot)
	v.attribs[slot] = &Attribute{
		Buffer:     src.ID(),
		Components: src.Components(),
		Scalar:     src.Scalar(),
		Layout:     layout,
		Enabled:    true,
	}
	log.WithFields(logrus.Fields{"vao": v.id, "slot": slot, "buffer": src.ID()}).Debug("attribute attached")
	return nil
}

// Detach disables slot and clears the buffer it reads from.
func (v *VertexArray) Detach(slot uint32) {
	if v.id == 0 {
		return
	}
	defer v.Bind()()
	v.dev.BindBuffer(ArrayBuffer, 0)
	// A null pointer with no array buffer bound resets the slot's source.
	v.dev.VertexAttribPointer(slot, 4, Float, false, 0, 0)
	v.dev.DisableVertexAttribArray(slot)
	delete(v.attribs, slot)
}

// AttachIndices makes src the index buffer used by DrawElements. src
// must hold unsigned byte, short or int indices. Its length and handle
// are read again at every draw, so src may be Reset after attaching.
func (v *VertexArray) AttachIndices(src Source) error {
	if v.id == 0 {
		return ErrEmpty
	}
	if src.Target() != ElementArrayBuffer {
		return fmt.Errorf("attach indices: %w: %s", ErrWrongTarget, src.Target())
	}
	if !isIndexType(src) {
		return fmt.Errorf("attach indices: %w: %d x %s", ErrWrongTarget, src.Components(), src.Scalar())
	}
	if src.ID() == 0 {
		return fmt.Errorf("attach indices: %w", ErrEmpty)
	}
	defer v.Bind()()
	// The element array binding is vertex array state, so it is left in
	// place when the vertex array is unbound.
	v.dev.BindBuffer(ElementArrayBuffer, src.ID())
	v.indices = src
	return nil
}

func isIndexType(src Source) bool {
	if src.Components() != 1 {
		return false
	}
	switch src.Scalar() {
	case UnsignedByte, UnsignedShort, UnsignedInt:
		return true
	}
	return false
}

// DetachIndices removes the index buffer.
func (v *VertexArray) DetachIndices() {
	if v.id == 0 {
		return
	}
	defer v.Bind()()
	v.dev.BindBuffer(ElementArrayBuffer, 0)
	v.indices = nil
}

// Indices returns the attached index buffer name, 0 if none.
func (v *VertexArray) Indices() uint32 {
	if v.indices == nil {
		return 0
	}
	return v.indices.ID()
}

// EnableAttrib enables slot without touching its layout.
func (v *VertexArray) EnableAttrib(slot uint32) {
	if v.id == 0 {
		return
	}
	defer v.Bind()()
	v.dev.EnableVertexAttribArray(slot)
	if a, ok := v.attribs[slot]; ok {
		a.Enabled = true
	}
}

// DisableAttrib disables slot without touching its layout.
func (v *VertexArray) DisableAttrib(slot uint32) {
	if v.id == 0 {
		return
	}
	defer v.Bind()()
	v.dev.DisableVertexAttribArray(slot)
	if a, ok := v.attribs[slot]; ok {
		a.Enabled = false
	}
}

// Attribute returns what is recorded for slot. ok is false when no
// buffer is attached to it.
func (v *VertexArray) Attribute(slot uint32) (a Attribute, ok bool) {
	p, ok := v.attribs[slot]
	if !ok {
		return Attribute{}, false
	}
	return *p, true
}

// Slots returns the attached slots in ascending order.
func (v *VertexArray) Slots() []uint32 {
	out := make([]uint32, 0, len(v.attribs))
	for s := range v.attribs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DrawElements draws every index of the attached index buffer.
func (v *VertexArray) DrawElements(mode Primitive) error {
	if v.id == 0 {
		return ErrEmpty
	}
	if v.indices == nil {
		return ErrNoIndices
	}
	id := v.indices.ID()
	if id == 0 {
		return fmt.Errorf("draw elements: index buffer: %w", ErrEmpty)
	}
	defer v.Bind()()
	// Reset may have reallocated the index buffer under a new name.
	v.dev.BindBuffer(ElementArrayBuffer, id)
	v.dev.DrawElements(mode, int32(v.indices.Len()), v.indices.Scalar(), 0)
	return nil
}

// DrawArrays draws count vertices starting at first.
func (v *VertexArray) DrawArrays(mode Primitive, first, count int32) error {
	if v.id == 0 {
		return ErrEmpty
	}
	defer v.Bind()()
	v.dev.DrawArrays(mode, first, count)
	return nil
}
