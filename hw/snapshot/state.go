// Package snapshot captures and restores the content of simulator memories.
package snapshot

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"archsim/emu/log"
	"archsim/hw/hwio"
)

// Memory is the state of a hwio.Memory. Words holds the big-endian words at
// every aligned offset, Tail the trailing bytes when the memory size isn't a
// multiple of 4.
type Memory struct {
	Name  string
	Size  int
	Words []uint32
	Tail  []uint8
}

// Take captures the content of m.
func Take(m *hwio.Memory) *Memory {
	size := m.Size()
	snap := &Memory{
		Name:  m.Name,
		Size:  size,
		Words: make([]uint32, size/4),
	}
	for i := range snap.Words {
		snap.Words[i] = m.Read32(uint32(i) * 4)
	}
	for off := size &^ 3; off < size; off++ {
		snap.Tail = append(snap.Tail, m.Read8(uint32(off)))
	}
	return snap
}

// Restore writes the snapshot back into m, which must have the same size.
func (snap *Memory) Restore(m *hwio.Memory) error {
	if m.Size() != snap.Size {
		return errors.Errorf("snapshot of %d bytes doesn't fit memory %q of %d bytes", snap.Size, m.Name, m.Size())
	}
	if len(snap.Words) != snap.Size/4 || len(snap.Tail) != snap.Size%4 {
		return errors.Errorf("inconsistent snapshot: %d words and %d tail bytes for %d bytes", len(snap.Words), len(snap.Tail), snap.Size)
	}

	for i, v := range snap.Words {
		m.Write32(uint32(i)*4, v)
	}
	for i, v := range snap.Tail {
		m.Write8(uint32(len(snap.Words)*4+i), v)
	}

	log.ModSnap.DebugZ("restored snapshot").
		String("name", snap.Name).
		String("into", m.Name).
		Int("size", snap.Size).
		End()
	return nil
}

// Encode serializes the snapshot as a JSON object.
func (snap *Memory) Encode() []byte {
	var e jx.Encoder
	snap.encode(&e)
	return e.Bytes()
}

func (snap *Memory) encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("name", func(e *jx.Encoder) { e.Str(snap.Name) })
		e.Field("size", func(e *jx.Encoder) { e.Int(snap.Size) })
		e.Field("words", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, v := range snap.Words {
					e.UInt32(v)
				}
			})
		})
		if len(snap.Tail) != 0 {
			e.Field("tail", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, v := range snap.Tail {
						e.UInt8(v)
					}
				})
			})
		}
	})
}

// Decode parses a snapshot produced by Encode.
func Decode(buf []byte) (*Memory, error) {
	snap := new(Memory)
	if err := snap.decode(jx.DecodeBytes(buf)); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	return snap, nil
}

func (snap *Memory) decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			snap.Name, err = d.Str()
		case "size":
			snap.Size, err = d.Int()
			if err == nil && snap.Size < 0 {
				err = errors.Errorf("negative size %d", snap.Size)
			}
		case "words":
			err = d.Arr(func(d *jx.Decoder) error {
				v, err := d.UInt32()
				if err != nil {
					return err
				}
				snap.Words = append(snap.Words, v)
				return nil
			})
		case "tail":
			err = d.Arr(func(d *jx.Decoder) error {
				v, err := d.UInt32()
				if err != nil {
					return err
				}
				if v > 0xff {
					return errors.Errorf("tail byte %d out of range", v)
				}
				snap.Tail = append(snap.Tail, uint8(v))
				return nil
			})
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, key)
		}
		return nil
	})
}
