// Package channelcodec implements the FELICS inner algorithm: a raster-scan,
// two-neighbor predictive coder for a single channel of pixel values.
//
// The same encode/decode loop serves every pixel type the image codec
// supports (8-bit and 16-bit grayscale, and the signed Y/Co/Cg channels
// produced by the color transform) by taking its constants through a Params
// value rather than hard-coding them, the way the teacher parametrizes its
// fixed predictors by coefficient order.
package channelcodec

import (
	"github.com/mewkiz/felics/estimator"
	"github.com/mewkiz/felics/internal/bits"
	"github.com/mewkiz/felics/phasein"
	"github.com/mewkiz/felics/predictor"
	"github.com/mewkiz/felics/rice"
	"github.com/mewkiz/pkg/dbg"
	"github.com/mewkiz/pkg/errutil"
)

func init() {
	dbg.Debug = false
}

// Params bundles the per-pixel-type constants the channel codec needs: the
// candidate Rice parameters tried by the estimator, the tight upper bound on
// context (H−L) for this pixel type, the count-scaling threshold for
// periodic halving, and the bit width used for the first two literal
// pixels.
type Params struct {
	KCandidates  []uint8
	MaxContext   uint32
	CountScaling uint32
	LiteralBits  uint8
	Signed       bool
}

// Gray8 holds candidates and bound for 8-bit grayscale samples.
var Gray8 = Params{
	KCandidates:  []uint8{0, 1, 2, 3, 4, 5},
	MaxContext:   255,
	CountScaling: 1024,
	LiteralBits:  8,
	Signed:       false,
}

// Gray16 holds candidates and bound for 16-bit grayscale samples.
var Gray16 = Params{
	KCandidates:  []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14},
	MaxContext:   65535,
	CountScaling: 1024,
	LiteralBits:  16,
	Signed:       false,
}

// RGB8 holds candidates and bound for an 8-bit-sourced YCoCg channel: the
// color transform widens context range by one bit over Gray8, so the
// candidate list gains one entry.
var RGB8 = Params{
	KCandidates:  []uint8{0, 1, 2, 3, 4, 5, 6},
	MaxContext:   510,
	CountScaling: 1024,
	LiteralBits:  32,
	Signed:       true,
}

// RGB16 holds candidates and bound for a 16-bit-sourced YCoCg channel.
var RGB16 = Params{
	KCandidates:  []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	MaxContext:   131070,
	CountScaling: 1024,
	LiteralBits:  32,
	Signed:       true,
}

// literalMask returns a mask of the low bitsWidth bits; writeLiteral applies
// it to the two's complement representation of a literal pixel value.
func literalMask(bitsWidth uint8) uint64 {
	if bitsWidth >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<bitsWidth - 1
}

func writeLiteral(w *bits.Writer, v int32, p Params) error {
	masked := uint64(uint32(v)) & literalMask(p.LiteralBits)
	return w.WriteBits(masked, p.LiteralBits)
}

func readLiteral(r *bits.Reader, p Params) (int32, error) {
	raw, err := r.ReadBits(p.LiteralBits)
	if err != nil {
		return 0, err
	}
	v := uint32(raw)
	if p.Signed && p.LiteralBits < 32 {
		signBit := uint32(1) << (p.LiteralBits - 1)
		if v&signBit != 0 {
			v |= ^uint32(0) << p.LiteralBits
		}
	}
	return int32(v), nil
}

// Encode writes channel (length width*height, row-major) using the FELICS
// predictive algorithm. It neither byte-aligns nor flushes w; the caller
// closes the Writer once every channel has been written.
//
// Degenerate sizes are handled in place of the usual two-literal preamble: a
// channel with zero width or height is written as two zero literals, and a
// single-pixel channel as its one literal. Decode handles the same two cases
// separately.
func Encode(w *bits.Writer, channel []int32, width, height uint32, p Params) error {
	if width == 0 || height == 0 {
		if err := writeLiteral(w, 0, p); err != nil {
			return errutil.Err(err)
		}
		if err := writeLiteral(w, 0, p); err != nil {
			return errutil.Err(err)
		}
		return nil
	}
	n := width * height
	if uint32(len(channel)) != n {
		panic(errutil.Newf("channelcodec: channel length %d does not match width*height %d", len(channel), n))
	}
	if n == 1 {
		// A single-pixel channel has no second neighbor to pair with a
		// literal, so only the one value is written; the stream is then
		// byte-aligned by Close, not padded with a second literal.
		if err := writeLiteral(w, channel[0], p); err != nil {
			return errutil.Err(err)
		}
		return nil
	}

	if err := writeLiteral(w, channel[0], p); err != nil {
		return errutil.Err(err)
	}
	if err := writeLiteral(w, channel[1], p); err != nil {
		return errutil.Err(err)
	}
	dbg.Println("channelcodec: literals:", channel[0], channel[1])

	est := estimator.New(p.MaxContext, p.KCandidates, p.CountScaling)
	pred := predictor.New(width)

	for i := uint32(2); i < n; i++ {
		a, b, ok := pred.Neighbors(i)
		if !ok {
			panic(errutil.Newf("channelcodec: neighbors(%d) unexpectedly absent", i))
		}
		v1, v2 := channel[a], channel[b]
		lo, hi := v1, v2
		if lo > hi {
			lo, hi = hi, lo
		}
		ctx := uint32(hi - lo)
		if ctx > p.MaxContext {
			return errutil.Newf("channelcodec: context %d exceeds MaxContext %d", ctx, p.MaxContext)
		}

		pv := channel[i]
		switch {
		case pv >= lo && pv <= hi:
			if err := w.WriteBit(1); err != nil {
				return errutil.Err(err)
			}
			residual := uint32(pv - lo)
			if err := phasein.New(ctx + 1).Encode(w, residual); err != nil {
				return errutil.Err(err)
			}
		case pv > hi:
			if err := w.WriteBit(0); err != nil {
				return errutil.Err(err)
			}
			if err := w.WriteBit(1); err != nil {
				return errutil.Err(err)
			}
			residual := uint32(pv - hi - 1)
			k := est.GetK(ctx)
			dbg.Println("channelcodec: above-range ctx:", ctx, "k:", k, "residual:", residual)
			if err := rice.New(k).Encode(w, residual); err != nil {
				return errutil.Err(err)
			}
			est.Update(ctx, residual)
		default: // pv < lo
			if err := w.WriteBit(0); err != nil {
				return errutil.Err(err)
			}
			if err := w.WriteBit(0); err != nil {
				return errutil.Err(err)
			}
			residual := uint32(lo - pv - 1)
			k := est.GetK(ctx)
			dbg.Println("channelcodec: below-range ctx:", ctx, "k:", k, "residual:", residual)
			if err := rice.New(k).Encode(w, residual); err != nil {
				return errutil.Err(err)
			}
			est.Update(ctx, residual)
		}
	}
	return nil
}

// Decode reconstructs a width*height channel encoded by Encode.
func Decode(r *bits.Reader, width, height uint32, p Params) ([]int32, error) {
	if width == 0 || height == 0 {
		if _, err := readLiteral(r, p); err != nil {
			return nil, errutil.Err(err)
		}
		if _, err := readLiteral(r, p); err != nil {
			return nil, errutil.Err(err)
		}
		return []int32{}, nil
	}
	n := width * height
	if n == 1 {
		v0, err := readLiteral(r, p)
		if err != nil {
			return nil, errutil.Err(err)
		}
		return []int32{v0}, nil
	}

	channel := make([]int32, n)
	v0, err := readLiteral(r, p)
	if err != nil {
		return nil, errutil.Err(err)
	}
	v1, err := readLiteral(r, p)
	if err != nil {
		return nil, errutil.Err(err)
	}
	channel[0], channel[1] = v0, v1

	est := estimator.New(p.MaxContext, p.KCandidates, p.CountScaling)
	pred := predictor.New(width)

	for i := uint32(2); i < n; i++ {
		a, b, ok := pred.Neighbors(i)
		if !ok {
			panic(errutil.Newf("channelcodec: neighbors(%d) unexpectedly absent", i))
		}
		na, nb := channel[a], channel[b]
		lo, hi := na, nb
		if lo > hi {
			lo, hi = hi, lo
		}
		ctx := uint32(hi - lo)
		if ctx > p.MaxContext {
			return nil, errutil.Newf("channelcodec: context %d exceeds MaxContext %d", ctx, p.MaxContext)
		}

		inRange, err := r.ReadBit()
		if err != nil {
			return nil, errutil.Err(err)
		}
		if inRange == 1 {
			residual, err := phasein.New(ctx + 1).Decode(r)
			if err != nil {
				return nil, errutil.Err(err)
			}
			channel[i] = lo + int32(residual)
			continue
		}

		aboveBit, err := r.ReadBit()
		if err != nil {
			return nil, errutil.Err(err)
		}
		k := est.GetK(ctx)
		residual, err := rice.New(k).Decode(r)
		if err != nil {
			return nil, errutil.Err(err)
		}
		est.Update(ctx, residual)

		if aboveBit == 1 {
			channel[i] = hi + 1 + int32(residual)
		} else {
			channel[i] = lo - 1 - int32(residual)
		}
	}
	return channel, nil
}
