package hwio

func GetBit32(v uint32, n uint) bool {
	return v>>n&0x01 != 0
}

// SignExtend interprets the low bits of v as a two's complement value and
// extends its sign bit to the full 32 bits.
func SignExtend(v uint32, bits uint) int32 {
	if bits == 0 || bits > 32 {
		panic("invalid sign extension width")
	}
	mask := ^uint32(0) >> (32 - bits)
	v &= mask
	if GetBit32(v, bits-1) {
		v |= ^mask
	}
	return int32(v)
}
