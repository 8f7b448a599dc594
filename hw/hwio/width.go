package hwio

//go:generate go tool stringer -type=Width,Kind -linecomment -output=stringer_gen.go

// Width is the size of a memory access, in bytes.
type Width uint8

const (
	Byte Width = 1 // byte
	Half Width = 2 // halfword
	Word Width = 4 // word
)

// Bits returns the number of bits covered by w.
func (w Width) Bits() uint { return uint(w) * 8 }

// IsAligned reports whether off is a multiple of w. Every offset is aligned
// for single byte accesses.
func IsAligned(off uint32, w Width) bool {
	return off%uint32(w) == 0
}
