package gfx

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when an operation needs device storage and the
	// object owns none.
	ErrEmpty = errors.New("gfx: object owns no storage")
	// ErrMapped is returned when a buffer is mapped and the operation
	// needs it unmapped.
	ErrMapped = errors.New("gfx: buffer is mapped")
	// ErrNotMapped is returned by Unmap when there is no mapping.
	ErrNotMapped = errors.New("gfx: buffer is not mapped")
	// ErrMapFailed is returned when the device refused to map a buffer.
	ErrMapFailed = errors.New("gfx: device could not map buffer")
	// ErrWrongTarget is returned when a buffer of one role is used where
	// another role is required.
	ErrWrongTarget = errors.New("gfx: buffer bound to wrong target")
	// ErrNoIndices is returned by indexed draws on a vertex array without
	// an index buffer.
	ErrNoIndices = errors.New("gfx: no index buffer attached")
)

// CompileError reports a shader that failed to compile.
type CompileError struct {
	Stage Stage
	ID    uint32
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader(id#%d) compile error: %s", e.Stage, e.ID, e.Log)
}

// LinkError reports a program that failed to link.
type LinkError struct {
	ID  uint32
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("program(id#%d) link error: %s", e.ID, e.Log)
}
