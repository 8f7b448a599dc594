package hwio

import (
	"archsim/emu/log"
)

type MemFlags int

const (
	MemFlagDefault       MemFlags = 0
	MemFlagLogMisaligned MemFlags = (1 << iota) // log suppressed misaligned accesses
)

// Memory is a flat, fixed-size, byte-addressable memory region. Multi-byte
// values are stored big-endian, most significant byte at the lowest offset.
//
// Accesses wider than a byte must be naturally aligned: a misaligned write
// leaves memory untouched and a misaligned read returns 0. An access whose
// byte span falls outside the region is a programming error and panics with
// an *AccessError, callers are expected to validate addresses (see Check)
// before calling in.
//
// Memory is not safe for concurrent use.
type Memory struct {
	Name  string   // name of the memory area (for debugging)
	Flags MemFlags // flags determining how misaligned accesses are reported

	data []byte
}

// NewMemory allocates a zero-initialized memory of size bytes.
func NewMemory(name string, size int) *Memory {
	if size < 0 {
		panic("negative memory size")
	}
	log.ModMem.DebugZ("new memory").
		String("name", name).
		Int("size", size).
		End()

	return &Memory{
		Name: name,
		data: make([]byte, size),
	}
}

// Size returns the size of the memory, in bytes.
func (m *Memory) Size() int { return len(m.data) }

// At returns the accessor for offset off. The offset is only validated when
// the cell is read or written.
func (m *Memory) At(off uint32) Cell {
	return Cell{mem: m, off: off}
}

// Check reports whether an access of width w at off would be performed. It
// returns an *AccessError of kind OutOfBounds or MisalignedAccess otherwise.
func (m *Memory) Check(off uint32, w Width) error {
	if !m.inBounds(off, w) {
		return &AccessError{Op: "check", Mem: m.Name, Off: off, Width: w, Kind: OutOfBounds}
	}
	if !IsAligned(off, w) {
		return &AccessError{Op: "check", Mem: m.Name, Off: off, Width: w, Kind: MisalignedAccess}
	}
	return nil
}

func (m *Memory) inBounds(off uint32, w Width) bool {
	return uint64(off)+uint64(w) <= uint64(len(m.data))
}

// span returns the bytes covered by an access, or panics if they're not all
// within memory.
func (m *Memory) span(op string, off uint32, w Width) []byte {
	if !m.inBounds(off, w) {
		panic(&AccessError{Op: op, Mem: m.Name, Off: off, Width: w, Kind: OutOfBounds})
	}
	end := off + uint32(w)
	return m.data[off:end:end]
}

// guarded reports whether the access must be suppressed.
func (m *Memory) guarded(op string, off uint32, w Width) bool {
	if IsAligned(off, w) {
		return false
	}
	if m.Flags&MemFlagLogMisaligned != 0 {
		log.ModMem.WarnZ("misaligned access suppressed").
			String("name", m.Name).
			String("op", op).
			Hex32("addr", off).
			Stringer("width", w).
			End()
	}
	return true
}

func (m *Memory) load(off uint32, w Width) uint32 {
	buf := m.span("read", off, w)
	if m.guarded("read", off, w) {
		return 0
	}

	var v uint32
	for _, b := range buf {
		v = v<<8 | uint32(b)
	}
	return v
}

func (m *Memory) store(off uint32, w Width, v uint32) {
	buf := m.span("write", off, w)
	if m.guarded("write", off, w) {
		return
	}

	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = uint8(v)
		v >>= 8
	}
}

func (m *Memory) Read8(off uint32) uint8   { return uint8(m.load(off, Byte)) }
func (m *Memory) Read16(off uint32) uint16 { return uint16(m.load(off, Half)) }
func (m *Memory) Read32(off uint32) uint32 { return m.load(off, Word) }

func (m *Memory) ReadS8(off uint32) int32  { return SignExtend(m.load(off, Byte), 8) }
func (m *Memory) ReadS16(off uint32) int32 { return SignExtend(m.load(off, Half), 16) }
func (m *Memory) ReadS32(off uint32) int32 { return SignExtend(m.load(off, Word), 32) }

func (m *Memory) Write8(off uint32, val uint8)   { m.store(off, Byte, uint32(val)) }
func (m *Memory) Write16(off uint32, val uint16) { m.store(off, Half, uint32(val)) }
func (m *Memory) Write32(off uint32, val uint32) { m.store(off, Word, val) }

func (m *Memory) WriteS8(off uint32, val int8)   { m.store(off, Byte, uint32(uint8(val))) }
func (m *Memory) WriteS16(off uint32, val int16) { m.store(off, Half, uint32(uint16(val))) }
func (m *Memory) WriteS32(off uint32, val int32) { m.store(off, Word, uint32(val)) }
