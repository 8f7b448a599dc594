package hwio

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Kind classifies an invalid memory access.
type Kind uint8

const (
	OutOfBounds      Kind = iota + 1 // out of bounds
	MisalignedAccess                 // misaligned access
)

var (
	ErrOutOfBounds = errors.New("out of bounds")
	ErrMisaligned  = errors.New("misaligned access")
)

// AccessError describes an invalid memory access. It matches ErrOutOfBounds
// or ErrMisaligned with errors.Is, depending on its Kind.
type AccessError struct {
	Op    string // "read", "write" or "check"
	Mem   string // memory name
	Off   uint32
	Width Width
	Kind  Kind
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s: %s %s at 0x%08x: %s", e.Mem, e.Width, e.Op, e.Off, e.Kind)
}

func (e *AccessError) Unwrap() error {
	switch e.Kind {
	case OutOfBounds:
		return ErrOutOfBounds
	case MisalignedAccess:
		return ErrMisaligned
	}
	return nil
}
