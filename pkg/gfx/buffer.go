package gfx

import (
	"bytes"
	"errors"
	"unsafe"

	"github.com/sirupsen/logrus"
)

// ErrNoDevice is returned when a zero Buffer, which has no device to
// allocate from, is asked to allocate.
var ErrNoDevice = errors.New("gfx: object has no device")

// Buffer is a buffer object holding elements of type T, bound as role R.
//
// The zero value owns no storage: ID is 0, Len is 0 and Usage is
// DefaultUsage. A Buffer must not be copied by value once it owns
// storage; use Clone for a second allocation and Move to hand over
// ownership.
type Buffer[T Element, R Role] struct {
	dev    Device
	id     uint32
	size   int
	usage  Usage
	mapped bool
}

// New allocates a buffer holding a copy of data. Fixed-size arrays are
// passed as arr[:], ranges as s[i:j]. Empty data gives a buffer that
// owns no storage.
func New[T Element, R Role](dev Device, data []T, usage Usage) *Buffer[T, R] {
	b := &Buffer[T, R]{dev: dev}
	b.allocCopy(data, len(data), usage)
	return b
}

// Of allocates a buffer holding the listed elements.
func Of[T Element, R Role](dev Device, usage Usage, elems ...T) *Buffer[T, R] {
	return New[T, R](dev, elems, usage)
}

// NewSized allocates storage for count elements. The content is
// unspecified. A count of zero allocates nothing.
func NewSized[T Element, R Role](dev Device, count int, usage Usage) *Buffer[T, R] {
	b := &Buffer[T, R]{dev: dev}
	b.allocCopy(nil, count, usage)
	return b
}

// Empty returns a buffer with no storage that can later allocate from
// dev through Reset.
func Empty[T Element, R Role](dev Device) *Buffer[T, R] {
	return &Buffer[T, R]{dev: dev}
}

// NewVBO allocates a vertex attribute buffer holding a copy of data.
func NewVBO[T Element](dev Device, data []T, usage Usage) *Buffer[T, Array] {
	return New[T, Array](dev, data, usage)
}

// NewEBO allocates an index buffer holding a copy of indices.
func NewEBO[T Index](dev Device, indices []T, usage Usage) *Buffer[T, ElementArray] {
	return New[T, ElementArray](dev, indices, usage)
}

func (b *Buffer[T, R]) target() Target {
	var r R
	return r.target()
}

// area is the storage size in bytes.
func (b *Buffer[T, R]) area() int { return b.size * elemSize[T]() }

func (b *Buffer[T, R]) allocCopy(data []T, count int, usage Usage) {
	if usage == 0 {
		usage = DefaultUsage
	}
	b.size = count
	b.usage = usage
	if count == 0 {
		return
	}
	b.id = b.dev.GenBuffer()
	defer BindBuffer(b.dev, b.target(), b.id)()
	b.dev.BufferData(b.target(), b.area(), slicePtr(data), usage)
	log.WithFields(logrus.Fields{
		"buffer": b.id,
		"target": b.target(),
		"len":    count,
		"usage":  usage,
	}).Debug("buffer allocated")
}

func (b *Buffer[T, R]) free() {
	if b.id == 0 {
		return
	}
	b.dev.DeleteBuffer(b.id)
	log.WithField("buffer", b.id).Debug("buffer deleted")
	b.id = 0
	b.size = 0
	b.usage = 0
	b.mapped = false
}

// Delete releases the device storage. It is a no-op on an empty buffer.
func (b *Buffer[T, R]) Delete() { b.free() }

// Reset replaces the buffer content with data. When len(data) equals
// Len the storage is overwritten in place and ID is unchanged; otherwise
// the old storage is released and a new one allocated with usage, which
// is ignored by the in-place path. An empty data slice leaves the buffer
// empty.
func (b *Buffer[T, R]) Reset(data []T, usage Usage) error {
	if b.mapped {
		return ErrMapped
	}
	if b.dev == nil {
		return ErrNoDevice
	}
	if b.id != 0 && len(data) == b.size {
		defer BindBuffer(b.dev, b.target(), b.id)()
		b.dev.BufferSubData(b.target(), 0, b.area(), slicePtr(data))
		return nil
	}
	b.free()
	if len(data) == 0 {
		return nil
	}
	b.allocCopy(data, len(data), usage)
	return nil
}

// Map makes the device memory visible to the process. The returned
// slice is valid until Unmap. Access should agree with the usage hint;
// a mismatch is correct but can be an order of magnitude slower.
func (b *Buffer[T, R]) Map(access Access) ([]T, error) {
	if b.id == 0 {
		return nil, ErrEmpty
	}
	if b.mapped {
		return nil, ErrMapped
	}
	defer BindBuffer(b.dev, b.target(), b.id)()
	p := b.dev.MapBuffer(b.target(), access)
	if p == nil {
		return nil, ErrMapFailed
	}
	b.mapped = true
	return unsafe.Slice((*T)(p), b.size), nil
}

// Unmap ends the current mapping. valid is false when the device
// reports the content was lost while mapped and must be re-uploaded.
func (b *Buffer[T, R]) Unmap() (valid bool, err error) {
	if !b.mapped {
		return false, ErrNotMapped
	}
	defer BindBuffer(b.dev, b.target(), b.id)()
	b.mapped = false
	valid = b.dev.UnmapBuffer(b.target())
	if !valid {
		log.WithField("buffer", b.id).Warn("buffer content lost on unmap")
	}
	return valid, nil
}

// Bind binds the buffer to its role's target and returns the unbind.
func (b *Buffer[T, R]) Bind() func() {
	return BindBuffer(b.dev, b.target(), b.id)
}

// Clone allocates a new buffer of the same length and usage and copies
// the content device side.
func (b *Buffer[T, R]) Clone() (*Buffer[T, R], error) {
	if b.mapped {
		return nil, ErrMapped
	}
	c := &Buffer[T, R]{dev: b.dev}
	if b.id == 0 {
		return c, nil
	}
	c.allocCopy(nil, b.size, b.usage)
	unbindRead := BindBuffer(b.dev, CopyReadBuffer, b.id)
	unbindWrite := BindBuffer(b.dev, CopyWriteBuffer, c.id)
	b.dev.CopyBufferSubData(CopyReadBuffer, CopyWriteBuffer, 0, 0, b.area())
	unbindWrite()
	unbindRead()
	return c, nil
}

// Move hands the storage over to a new Buffer and leaves b empty.
func (b *Buffer[T, R]) Move() *Buffer[T, R] {
	m := &Buffer[T, R]{dev: b.dev, id: b.id, size: b.size, usage: b.usage, mapped: b.mapped}
	b.id, b.size, b.usage, b.mapped = 0, 0, 0, false
	return m
}

// Len is the number of elements allocated.
func (b *Buffer[T, R]) Len() int { return b.size }

// Empty reports whether Len is zero.
func (b *Buffer[T, R]) Empty() bool { return b.size == 0 }

// ID is the buffer name, 0 when no storage is owned.
func (b *Buffer[T, R]) ID() uint32 { return b.id }

// Usage is the hint the storage was allocated with.
func (b *Buffer[T, R]) Usage() Usage {
	if b.usage == 0 {
		return DefaultUsage
	}
	return b.usage
}

// Target is the binding point of the buffer's role.
func (b *Buffer[T, R]) Target() Target { return b.target() }

// Bytes is the storage size in bytes.
func (b *Buffer[T, R]) Bytes() int { return b.area() }

// Mapped reports whether a mapping is outstanding.
func (b *Buffer[T, R]) Mapped() bool { return b.mapped }

// Components is the per-element component count.
func (b *Buffer[T, R]) Components() int32 {
	n, _ := LayoutOf[T]()
	return n
}

// Scalar is the per-component numeric type.
func (b *Buffer[T, R]) Scalar() ScalarType {
	_, s := LayoutOf[T]()
	return s
}

// Equal reports whether a and b hold the same number of elements with
// byte-identical content. Both buffers are mapped read-only for the
// comparison, so neither may be mapped already.
func Equal[T Element, R Role](a, b *Buffer[T, R]) bool {
	if a.size != b.size {
		return false
	}
	if a.size == 0 || a == b || a.id == b.id {
		return true
	}
	pa, err := a.Map(ReadOnly)
	if err != nil {
		return false
	}
	defer a.Unmap()
	pb, err := b.Map(ReadOnly)
	if err != nil {
		return false
	}
	defer b.Unmap()
	return bytes.Equal(asBytes(pa), asBytes(pb))
}

func slicePtr[T any](s []T) unsafe.Pointer {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Pointer(&s[0])
}

func asBytes[T Element](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*elemSize[T]())
}
