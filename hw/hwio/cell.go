package hwio

// Cell is a position within a Memory. It is a transient view meant to
// perform an access and be discarded: it doesn't own the memory and must not
// outlive it.
type Cell struct {
	mem *Memory
	off uint32
}

// Offset returns the cell position within its memory.
func (c Cell) Offset() uint32 { return c.off }

func (c Cell) Read8() uint8   { return c.mem.Read8(c.off) }
func (c Cell) Read16() uint16 { return c.mem.Read16(c.off) }
func (c Cell) Read32() uint32 { return c.mem.Read32(c.off) }

// Signed reads are sign-extended to 32 bits.
func (c Cell) ReadS8() int32  { return c.mem.ReadS8(c.off) }
func (c Cell) ReadS16() int32 { return c.mem.ReadS16(c.off) }
func (c Cell) ReadS32() int32 { return c.mem.ReadS32(c.off) }

func (c Cell) Write8(val uint8)   { c.mem.Write8(c.off, val) }
func (c Cell) Write16(val uint16) { c.mem.Write16(c.off, val) }
func (c Cell) Write32(val uint32) { c.mem.Write32(c.off, val) }

// Signed writes store the two's complement bit pattern, the byte layout is
// the same as their unsigned counterparts.
func (c Cell) WriteS8(val int8)   { c.mem.WriteS8(c.off, val) }
func (c Cell) WriteS16(val int16) { c.mem.WriteS16(c.off, val) }
func (c Cell) WriteS32(val int32) { c.mem.WriteS32(c.off, val) }
