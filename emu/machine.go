package emu

import (
	"context"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"archsim/emu/log"
	"archsim/hw/hwio"
	"archsim/progimg"
)

// Machine is the simulator context. It owns the instruction and data
// memories, execution units borrow them through hwio.Cell accessors and must
// serialize their accesses themselves.
type Machine struct {
	IMem *hwio.Memory
	DMem *hwio.Memory

	// Initial register values, as found in the loaded images.
	PC uint32
	SP uint32

	cfg Config
}

// NewMachine creates a machine with zeroed memories.
func NewMachine(cfg Config) (*Machine, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}

	m := &Machine{cfg: cfg}
	m.reset()
	return m, nil
}

func (m *Machine) reset() {
	var flags hwio.MemFlags
	if m.cfg.Memory.LogMisaligned {
		flags |= hwio.MemFlagLogMisaligned
	}
	m.IMem = hwio.NewMemory("imem", m.cfg.Memory.IMemSize)
	m.IMem.Flags = flags
	m.DMem = hwio.NewMemory("dmem", m.cfg.Memory.DMemSize)
	m.DMem.Flags = flags
	m.PC, m.SP = 0, 0
}

// PowerUp resets the machine and loads the instruction and data images into
// their memories. On error the machine is left reset.
func (m *Machine) PowerUp(iimg, dimg *progimg.Image) error {
	m.reset()

	if err := iimg.LoadInto(m.IMem, m.IMem.Size()); err != nil {
		return err
	}
	if err := dimg.LoadInto(m.DMem, m.DMem.Size()); err != nil {
		m.reset()
		return err
	}
	m.PC = iimg.Start
	m.SP = dimg.Start

	log.ModEmu.InfoZ("power up").
		Hex32("pc", m.PC).
		Hex32("sp", m.SP).
		Int("iwords", len(iimg.Words)).
		Int("dwords", len(dimg.Words)).
		End()
	return nil
}

// LoadFiles reads the instruction and data images concurrently, then powers
// the machine up with them.
func (m *Machine) LoadFiles(ctx context.Context, ipath, dpath string) error {
	var iimg, dimg *progimg.Image

	g, ctx := errgroup.WithContext(ctx)
	open := func(dst **progimg.Image, path string, kind progimg.Kind) func() error {
		return func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := progimg.Open(path, kind)
			if err != nil {
				return err
			}
			*dst = img
			return nil
		}
	}
	g.Go(open(&iimg, ipath, progimg.Instr))
	g.Go(open(&dimg, dpath, progimg.Data))
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "load images")
	}

	return m.PowerUp(iimg, dimg)
}
