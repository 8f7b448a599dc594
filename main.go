package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/go-faster/errors"

	"archsim/emu"
	"archsim/hw/hwio"
	"archsim/hw/snapshot"
	"archsim/progimg"
)

func main() {
	cfg := parseArgs(os.Args[1:])

	switch cfg.mode {
	case infosMode:
		infosMain(cfg.Infos)
	case loadMode:
		loadMain(cfg.Load, loadConfig(cfg.Config))
	case peekMode:
		peekMain(cfg.Peek)
	case versionMode:
		fmt.Println("archsim", version())
	}
}

func loadConfig(path string) emu.Config {
	if path == "" {
		return emu.LoadConfigOrDefault()
	}
	cfg, err := emu.LoadConfig(path)
	checkf(err, "failed to load configuration")
	return cfg
}

func version() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

func infosMain(args Infos) {
	kind := progimg.Instr
	if args.Data {
		kind = progimg.Data
	}
	img, err := progimg.Open(args.ImagePath, kind)
	checkf(err, "failed to open image")
	img.PrintInfos(os.Stdout)
}

func loadMain(args Load, cfg emu.Config) {
	m, err := emu.NewMachine(cfg)
	checkf(err, "invalid configuration")
	checkf(m.LoadFiles(context.Background(), args.IImage, args.DImage), "failed to load images")

	fmt.Printf("PC: 0x%08x\nSP: 0x%08x\n", m.PC, m.SP)
	if args.Out == nil {
		return
	}
	err = writeSnapshots(args.Out, m.IMem, m.DMem)
	if cerr := args.Out.Close(); err == nil {
		err = cerr
	}
	checkf(err, "failed to write snapshots")
}

func writeSnapshots(w io.Writer, mems ...*hwio.Memory) error {
	for _, m := range mems {
		buf := append(snapshot.Take(m).Encode(), '\n')
		if _, err := w.Write(buf); err != nil {
			return errors.Wrapf(err, "snapshot %s", m.Name)
		}
	}
	return nil
}

func peekMain(args Peek) {
	buf, err := os.ReadFile(args.SnapshotPath)
	checkf(err, "failed to read snapshot")
	snap, err := snapshot.Decode(buf)
	checkf(err, "invalid snapshot")

	off, err := parseOffset(args.Offset)
	checkf(err, "invalid arguments")
	w, err := parseWidth(args.Width)
	checkf(err, "invalid arguments")

	m := hwio.NewMemory(snap.Name, snap.Size)
	checkf(snap.Restore(m), "failed to restore snapshot")

	val, err := peek(m, off, w, args.Signed)
	checkf(err, "invalid access")
	fmt.Println(val)
}

// peek reads and formats the value of the given width at off. Unlike the
// memory accessors, invalid accesses are reported as errors.
func peek(m *hwio.Memory, off uint32, w hwio.Width, signed bool) (string, error) {
	if err := m.Check(off, w); err != nil {
		return "", err
	}

	c := m.At(off)
	if signed {
		var v int32
		switch w {
		case hwio.Byte:
			v = c.ReadS8()
		case hwio.Half:
			v = c.ReadS16()
		case hwio.Word:
			v = c.ReadS32()
		}
		return fmt.Sprintf("%d", v), nil
	}

	switch w {
	case hwio.Byte:
		return fmt.Sprintf("0x%02x", c.Read8()), nil
	case hwio.Half:
		return fmt.Sprintf("0x%04x", c.Read16()), nil
	}
	return fmt.Sprintf("0x%08x", c.Read32()), nil
}
