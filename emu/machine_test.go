package emu

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"archsim/progimg"
)

func writeImage(tb testing.TB, path string, img *progimg.Image) {
	tb.Helper()
	f, err := os.Create(path)
	if err != nil {
		tb.Fatal(err)
	}
	defer f.Close()
	if _, err := img.WriteTo(f); err != nil {
		tb.Fatal(err)
	}
}

func newTestMachine(tb testing.TB) *Machine {
	tb.Helper()
	m, err := NewMachine(DefaultConfig)
	if err != nil {
		tb.Fatal(err)
	}
	return m
}

func TestNewMachine(t *testing.T) {
	m := newTestMachine(t)
	if m.IMem.Size() != 1024 || m.DMem.Size() != 1024 {
		t.Errorf("memory sizes = %d/%d, want 1024/1024", m.IMem.Size(), m.DMem.Size())
	}

	if _, err := NewMachine(Config{Memory: MemoryConfig{DMemSize: -4}}); err == nil {
		t.Errorf("NewMachine() with negative size should fail")
	}
}

func TestPowerUp(t *testing.T) {
	m := newTestMachine(t)

	iimg := &progimg.Image{Kind: progimg.Instr, Start: 0x10, Words: []uint32{0x20010005, 0xfc000000}}
	dimg := &progimg.Image{Kind: progimg.Data, Start: 0x400, Words: []uint32{0xfffffffe, 0x00000080}}
	if err := m.PowerUp(iimg, dimg); err != nil {
		t.Fatal(err)
	}

	if m.PC != 0x10 || m.SP != 0x400 {
		t.Errorf("PC/SP = %x/%x, want 10/400", m.PC, m.SP)
	}
	if got := m.IMem.At(0x14).Read32(); got != 0xfc000000 {
		t.Errorf("imem[0x14] = %08x, want fc000000", got)
	}
	if got := m.DMem.At(0).ReadS32(); got != -2 {
		t.Errorf("dmem[0] = %d, want -2", got)
	}
	if got := m.DMem.At(7).ReadS8(); got != -128 {
		t.Errorf("dmem[7] = %d, want -128", got)
	}
}

func TestPowerUpTooLarge(t *testing.T) {
	m := newTestMachine(t)

	iimg := &progimg.Image{Kind: progimg.Instr, Start: 0, Words: []uint32{1}}
	dimg := &progimg.Image{Kind: progimg.Data, Words: make([]uint32, 257)}
	if err := m.PowerUp(iimg, dimg); !errors.Is(err, progimg.ErrTooLarge) {
		t.Fatalf("PowerUp() error = %v, want %v", err, progimg.ErrTooLarge)
	}
	if got := m.IMem.Read32(0); got != 0 {
		t.Errorf("imem not reset after failed power up: %08x", got)
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	ipath := filepath.Join(dir, "iimage.bin")
	dpath := filepath.Join(dir, "dimage.bin")
	writeImage(t, ipath, &progimg.Image{Kind: progimg.Instr, Start: 4, Words: []uint32{0xdeadbeef}})
	writeImage(t, dpath, &progimg.Image{Kind: progimg.Data, Start: 0x3fc, Words: []uint32{0x12345678}})

	m := newTestMachine(t)
	if err := m.LoadFiles(context.Background(), ipath, dpath); err != nil {
		t.Fatal(err)
	}
	if m.PC != 4 || m.SP != 0x3fc {
		t.Errorf("PC/SP = %x/%x, want 4/3fc", m.PC, m.SP)
	}
	if got := m.IMem.Read16(6); got != 0xbeef {
		t.Errorf("imem[6] = %04x, want beef", got)
	}
	if got := m.DMem.Read8(1); got != 0x34 {
		t.Errorf("dmem[1] = %02x, want 34", got)
	}

	err := m.LoadFiles(context.Background(), ipath, filepath.Join(dir, "missing.bin"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFiles() error = %v, want %v", err, os.ErrNotExist)
	}
}

func TestLoadFilesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := newTestMachine(t)
	if err := m.LoadFiles(ctx, "a", "b"); !errors.Is(err, context.Canceled) {
		t.Errorf("LoadFiles() error = %v, want %v", err, context.Canceled)
	}
}
