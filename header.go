package felics

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Signature is present at the beginning of every FELICS stream.
const Signature = "FLCS"

// headerSize is the fixed on-disk size of a Header, in bytes.
const headerSize = 14

// ColorType selects the pixel layout of a FELICS image.
type ColorType uint8

// The two color types a FELICS stream may declare.
const (
	Gray ColorType = 0
	RGB  ColorType = 1
)

func (c ColorType) String() string {
	switch c {
	case Gray:
		return "gray"
	case RGB:
		return "rgb"
	default:
		return "invalid"
	}
}

// PixelDepth selects the per-channel sample width of a FELICS image.
type PixelDepth uint8

// The two pixel depths a FELICS stream may declare.
const (
	Eight   PixelDepth = 0
	Sixteen PixelDepth = 1
)

func (d PixelDepth) String() string {
	switch d {
	case Eight:
		return "8-bit"
	case Sixteen:
		return "16-bit"
	default:
		return "invalid"
	}
}

// Header is the fixed 14-byte preamble of a FELICS stream: magic, color
// type, pixel depth, and big-endian width/height.
type Header struct {
	ColorType  ColorType
	PixelDepth PixelDepth
	Width      uint32
	Height     uint32
}

// WriteHeader writes h's 14-byte wire representation to w.
func WriteHeader(w io.Writer, h Header) error {
	buf := make([]byte, headerSize)
	copy(buf[0:4], Signature)
	buf[4] = byte(h.ColorType)
	buf[5] = byte(h.PixelDepth)
	binary.BigEndian.PutUint32(buf[6:10], h.Width)
	binary.BigEndian.PutUint32(buf[10:14], h.Height)
	if _, err := w.Write(buf); err != nil {
		return errors.Wrap(err, "felics: write header")
	}
	return nil
}

// ReadHeader reads and validates a 14-byte Header from r.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Header{}, ErrTruncated
		}
		return Header{}, errors.Wrap(err, "felics: read header")
	}
	if string(buf[0:4]) != Signature {
		return Header{}, ErrInvalidSignature
	}

	var h Header
	switch ColorType(buf[4]) {
	case Gray, RGB:
		h.ColorType = ColorType(buf[4])
	default:
		return Header{}, ErrInvalidColorType
	}
	switch PixelDepth(buf[5]) {
	case Eight, Sixteen:
		h.PixelDepth = PixelDepth(buf[5])
	default:
		return Header{}, ErrInvalidPixelDepth
	}
	h.Width = binary.BigEndian.Uint32(buf[6:10])
	h.Height = binary.BigEndian.Uint32(buf[10:14])

	if _, overflow := pixelCount(h.Width, h.Height); overflow {
		return Header{}, ErrInvalidDimensions
	}
	return h, nil
}

// pixelCount returns width*height and whether that product overflows a
// uint32, which bounds the largest image this format can address.
func pixelCount(width, height uint32) (n uint32, overflow bool) {
	if width == 0 || height == 0 {
		return 0, false
	}
	product := uint64(width) * uint64(height)
	if product > uint64(^uint32(0)) {
		return 0, true
	}
	return uint32(product), false
}
