package hwio

import "testing"

func TestSignExtend(t *testing.T) {
	tests := []struct {
		v    uint32
		bits uint
		want int32
	}{
		{0xff, 8, -1},
		{0x7f, 8, 127},
		{0x80, 8, -128},
		{0x1ff, 8, -1}, // bits above the width are ignored
		{0xff00, 16, -256},
		{0x7fff, 16, 32767},
		{0xffffffff, 32, -1},
		{0x80000000, 32, -2147483648},
		{0x12345678, 32, 0x12345678},
		{0x1, 1, -1},
	}
	for _, tt := range tests {
		if got := SignExtend(tt.v, tt.bits); got != tt.want {
			t.Errorf("SignExtend(%#x, %d) = %d, want %d", tt.v, tt.bits, got, tt.want)
		}
	}
}

func TestIsAligned(t *testing.T) {
	for off := uint32(0); off < 16; off++ {
		if !IsAligned(off, Byte) {
			t.Errorf("offset %d should be byte aligned", off)
		}
		if got, want := IsAligned(off, Half), off%2 == 0; got != want {
			t.Errorf("IsAligned(%d, Half) = %t, want %t", off, got, want)
		}
		if got, want := IsAligned(off, Word), off%4 == 0; got != want {
			t.Errorf("IsAligned(%d, Word) = %t, want %t", off, got, want)
		}
	}
}

func TestWidthString(t *testing.T) {
	for w, want := range map[Width]string{Byte: "byte", Half: "halfword", Word: "word", 3: "Width(3)"} {
		if got := w.String(); got != want {
			t.Errorf("Width(%d).String() = %q, want %q", uint8(w), got, want)
		}
	}
}
