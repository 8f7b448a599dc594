// Package progimg reads and writes program images, the binary files holding
// the initial content of a simulator instruction or data memory.
//
// An image is a sequence of big-endian 32-bit words. The first word is the
// start value (initial PC for an instruction image, initial SP for a data
// image), the second is the number of words that follow.
package progimg

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/go-faster/errors"

	"archsim/emu/log"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind tells which memory an image initializes.
type Kind uint8

const (
	Instr Kind = iota // instr
	Data              // data
)

const headerSize = 8

var (
	ErrTruncated = errors.New("truncated image")
	ErrTooLarge  = errors.New("image doesn't fit in memory")
	ErrAlignment = errors.New("misaligned load address")
)

type Image struct {
	Kind  Kind
	Start uint32   // initial PC or SP
	Words []uint32 // image content
}

// Open loads an image from file.
func Open(path string, kind Kind) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img := &Image{Kind: kind}
	if _, err := img.ReadFrom(f); err != nil {
		return nil, errors.Wrapf(err, "%s image %s", kind, path)
	}
	return img, nil
}

// ReadFrom implements io.ReaderFrom interface.
func (img *Image) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	if len(buf) < headerSize {
		return 0, errors.Wrap(ErrTruncated, "header")
	}
	img.Start = binary.BigEndian.Uint32(buf[0:])
	count := binary.BigEndian.Uint32(buf[4:])

	body := buf[headerSize:]
	if uint64(len(body)) < uint64(count)*4 {
		return 0, errors.Wrapf(ErrTruncated, "header announces %d words, found %d", count, len(body)/4)
	}

	img.Words = make([]uint32, count)
	for i := range img.Words {
		img.Words[i] = binary.BigEndian.Uint32(body[i*4:])
	}
	return int64(len(buf)), nil
}

// WriteTo implements io.WriterTo interface.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, 0, headerSize+4*len(img.Words))
	buf = binary.BigEndian.AppendUint32(buf, img.Start)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(img.Words)))
	for _, v := range img.Words {
		buf = binary.BigEndian.AppendUint32(buf, v)
	}

	n, err := w.Write(buf)
	return int64(n), err
}

// Base returns the address at which the image is loaded: the initial PC for
// instruction images, address 0 for data images.
func (img *Image) Base() uint32 {
	if img.Kind == Instr {
		return img.Start
	}
	return 0
}

// A WordWriter is a memory accepting big-endian 32-bit writes.
type WordWriter interface {
	Write32(off uint32, val uint32)
}

// LoadInto writes the image words into m, a memory of the given size, at
// contiguous aligned offsets starting at Base.
func (img *Image) LoadInto(m WordWriter, size int) error {
	base := img.Base()
	if base%4 != 0 {
		return errors.Wrapf(ErrAlignment, "%s image at 0x%08x", img.Kind, base)
	}
	end := uint64(base) + 4*uint64(len(img.Words))
	if end > uint64(size) {
		return errors.Wrapf(ErrTooLarge, "%s image spans [0x%x, 0x%x), memory size is 0x%x", img.Kind, base, end, size)
	}

	log.ModLoader.DebugZ("loading image").
		Stringer("kind", img.Kind).
		Hex32("base", base).
		Int("words", len(img.Words)).
		End()

	for i, v := range img.Words {
		m.Write32(base+uint32(i)*4, v)
	}
	return nil
}

// PrintInfos prints a summary of the image.
func (img *Image) PrintInfos(w io.Writer) {
	start := "PC"
	if img.Kind == Data {
		start = "SP"
	}
	fmt.Fprintf(w, "kind:  %s\n", img.Kind)
	fmt.Fprintf(w, "%s:    0x%08x\n", start, img.Start)
	fmt.Fprintf(w, "words: %d (%d bytes)\n", len(img.Words), 4*len(img.Words))
	fmt.Fprintf(w, "load:  [0x%08x, 0x%08x)\n", img.Base(), uint64(img.Base())+4*uint64(len(img.Words)))
}
