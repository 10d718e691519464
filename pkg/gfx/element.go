package gfx

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Element is the set of types a buffer object can store. Scalars are one
// component wide; vectors carry 2 to 4 components of one scalar type.
type Element interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | float32 | float64 |
		mgl32.Vec2 | mgl32.Vec3 | mgl32.Vec4 |
		mgl64.Vec2 | mgl64.Vec3 | mgl64.Vec4 |
		[2]int32 | [3]int32 | [4]int32 |
		[2]uint32 | [3]uint32 | [4]uint32 |
		[4]uint8
}

// Index is the set of types an element array buffer can store.
type Index interface {
	uint8 | uint16 | uint32
}

// LayoutOf returns the component count and scalar type describing T as
// a vertex attribute.
func LayoutOf[T Element]() (components int32, scalar ScalarType) {
	var zero T
	switch any(zero).(type) {
	case int8:
		return 1, Byte
	case uint8:
		return 1, UnsignedByte
	case int16:
		return 1, Short
	case uint16:
		return 1, UnsignedShort
	case int32:
		return 1, Int
	case uint32:
		return 1, UnsignedInt
	case float32:
		return 1, Float
	case float64:
		return 1, Double
	case mgl32.Vec2:
		return 2, Float
	case mgl32.Vec3:
		return 3, Float
	case mgl32.Vec4:
		return 4, Float
	case mgl64.Vec2:
		return 2, Double
	case mgl64.Vec3:
		return 3, Double
	case mgl64.Vec4:
		return 4, Double
	case [2]int32:
		return 2, Int
	case [3]int32:
		return 3, Int
	case [4]int32:
		return 4, Int
	case [2]uint32:
		return 2, UnsignedInt
	case [3]uint32:
		return 3, UnsignedInt
	case [4]uint32:
		return 4, UnsignedInt
	case [4]uint8:
		return 4, UnsignedByte
	}
	panic(fmt.Sprintf("gfx: no layout for %T", zero))
}

func elemSize[T Element]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Role fixes what a buffer object is bound as. It is chosen through the
// second type parameter of Buffer and never changes.
type Role interface {
	target() Target
}

// Array is the role of buffers holding vertex attributes.
type Array struct{}

func (Array) target() Target { return ArrayBuffer }

// ElementArray is the role of buffers holding vertex indices.
type ElementArray struct{}

func (ElementArray) target() Target { return ElementArrayBuffer }
