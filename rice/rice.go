// Package rice implements Rice (Golomb power-of-two) coding: a nonnegative
// integer n is coded as the unary quotient n÷m followed by a k-bit remainder,
// for divisor m = 2^k.
package rice

import (
	"github.com/mewkiz/felics/internal/bits"
	"github.com/mewkiz/pkg/errutil"
)

// maxK is the largest Rice parameter this coder accepts; k >= 32 would make
// the divisor overflow a 32-bit shift.
const maxK = 31

// Coder encodes and decodes nonnegative integers using Rice coding with a
// fixed parameter k.
type Coder struct {
	k uint8
}

// New returns a Rice coder for divisor m = 2^k.
//
// Panics if k > 31: an out-of-range k is an interface-contract violation,
// not a data condition.
func New(k uint8) Coder {
	if k > maxK {
		panic(errutil.Newf("rice: k out of range: %d", k))
	}
	return Coder{k: k}
}

// K returns the Rice parameter this coder was constructed with.
func (c Coder) K() uint8 {
	return c.k
}

// Encode writes the Rice code of n: unary(n>>k) followed by the low k bits
// of n.
func (c Coder) Encode(w *bits.Writer, n uint32) error {
	quotient := n >> c.k
	if err := w.WriteUnary(quotient); err != nil {
		return errutil.Err(err)
	}
	if c.k == 0 {
		return nil
	}
	remainder := n & (1<<c.k - 1)
	if err := w.WriteBits(uint64(remainder), c.k); err != nil {
		return errutil.Err(err)
	}
	return nil
}

// Decode reads a Rice-coded nonnegative integer: an unary quotient followed
// by a k-bit remainder.
//
// Returns bits.ErrTruncated on early end-of-stream, or ErrOverflow if
// q*m overflows 32 bits.
func (c Coder) Decode(r *bits.Reader) (uint32, error) {
	quotient, err := r.ReadUnary()
	if err != nil {
		return 0, err
	}
	var remainder uint64
	if c.k > 0 {
		remainder, err = r.ReadBits(c.k)
		if err != nil {
			return 0, err
		}
	}
	m := uint64(1) << c.k
	hi := uint64(quotient) * m
	if hi > 0xFFFFFFFF || hi+remainder > 0xFFFFFFFF {
		return 0, ErrOverflow
	}
	return uint32(hi + remainder), nil
}

// CodeLength returns the exact number of bits Encode(n) would emit, without
// emitting them: (n >> k) + 1 + k.
func (c Coder) CodeLength(n uint32) uint32 {
	return (n >> c.k) + 1 + uint32(c.k)
}

// ErrOverflow is returned by Decode when the reconstructed value would not
// fit in 32 bits.
var ErrOverflow = errutil.Newf("rice: decoded value overflows 32 bits")
