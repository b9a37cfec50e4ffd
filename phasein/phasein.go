// Package phasein implements phase-in (truncated binary) coding: a
// minimum-redundancy code for a value drawn from a known finite range
// [0, n-1] whose members are (near-)equiprobable.
//
// If n is not a power of two, values are split between m-bit short
// codewords and (m+1)-bit long codewords, where m = floor(log2 n). The
// short codewords are rotated to the middle of the range rather than its
// start; the rotation must be applied identically on encode and decode.
package phasein

import (
	"math/bits"

	internalbits "github.com/mewkiz/felics/internal/bits"
	"github.com/mewkiz/pkg/errutil"
)

// Coder encodes and decodes values in [0, n-1] using phase-in coding.
type Coder struct {
	n      uint32
	m      uint8
	pLeft  uint32 // n - 2^m: count of long-codeword pairs.
	pRight uint32 // 2^(m+1) - n: count of short codewords.
}

// New constructs a phase-in coder for the range [0, n-1].
//
// Panics if n is 0 or n >= 2^31: both are interface-contract violations.
func New(n uint32) Coder {
	if n == 0 {
		panic(errutil.Newf("phasein: n must be positive"))
	}
	if n >= 1<<31 {
		panic(errutil.Newf("phasein: n too large: %d", n))
	}
	m := uint8(bits.Len32(n) - 1) // floor(log2 n)
	lpw := uint32(1) << m
	rpw := uint32(1) << (m + 1)
	return Coder{
		n:      n,
		m:      m,
		pLeft:  n - lpw,
		pRight: rpw - n,
	}
}

// N returns the size of the coded range.
func (c Coder) N() uint32 {
	return c.n
}

// rotateRight maps x into the rotated domain used for coding: the pLeft
// values nearest the top of [0, n-1] are moved to the front, so that the
// short (m-bit) codewords land in the middle of the original range.
func (c Coder) rotateRight(x uint32) uint32 {
	return (x + c.n - c.pLeft) % c.n
}

// rotateLeft is the inverse of rotateRight.
func (c Coder) rotateLeft(x uint32) uint32 {
	return (x + c.pLeft) % c.n
}

// Encode writes the phase-in code of x.
//
// Panics if x >= n: out-of-range input is a programmer error, not a data
// condition.
func (c Coder) Encode(w *internalbits.Writer, x uint32) error {
	if x >= c.n {
		panic(errutil.Newf("phasein: value out of range: %d >= %d", x, c.n))
	}
	rotated := c.rotateRight(x)

	if rotated < c.pRight {
		// Short codeword: m bits.
		if err := w.WriteBits(uint64(rotated), c.m); err != nil {
			return errutil.Err(err)
		}
		return nil
	}

	// Long codeword: m bits selecting the pair, then 1 bit selecting which
	// of the pair's two codewords this is.
	pair := (rotated - c.pRight) / 2
	lastBit := (rotated - c.pRight) % 2
	if err := w.WriteBits(uint64(pair+c.pRight), c.m); err != nil {
		return errutil.Err(err)
	}
	if err := w.WriteBit(byte(lastBit)); err != nil {
		return errutil.Err(err)
	}
	return nil
}

// Decode reads a phase-in coded value in [0, n-1].
func (c Coder) Decode(r *internalbits.Reader) (uint32, error) {
	firstM, err := r.ReadBits(c.m)
	if err != nil {
		return 0, errutil.Err(err)
	}
	f := uint32(firstM)

	if f < c.pRight {
		return c.rotateLeft(f), nil
	}

	pair := f - c.pRight
	bit, err := r.ReadBit()
	if err != nil {
		return 0, errutil.Err(err)
	}
	rotated := 2*pair + c.pRight + uint32(bit)
	return c.rotateLeft(rotated), nil
}
