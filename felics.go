// Package felics implements the FELICS lossless image codec: a raster-scan
// predictive coder with an adaptive Rice parameter and a phased-in code for
// in-range residuals, for 8-bit and 16-bit grayscale and RGB images.
package felics

import (
	"io"

	"github.com/mewkiz/felics/channelcodec"
	"github.com/mewkiz/felics/colortransform"
	"github.com/mewkiz/felics/internal/bits"
	"github.com/mewkiz/pkg/errutil"
	"github.com/pkg/errors"
)

// RGB8 is one 8-bit-per-channel RGB pixel.
type RGB8 struct {
	R, G, B uint8
}

// RGB16 is one 16-bit-per-channel RGB pixel.
type RGB16 struct {
	R, G, B uint16
}

// Image is a decoded FELICS image: one of Luma8, Luma16, Rgb8, or Rgb16.
// The concrete type, together with its Width and Height, determines the
// Header written by Compress.
type Image interface {
	header() Header
}

// Luma8 is an 8-bit grayscale image, Pix in row-major order.
type Luma8 struct {
	Width, Height int
	Pix           []uint8
}

func (img Luma8) header() Header {
	return Header{ColorType: Gray, PixelDepth: Eight, Width: uint32(img.Width), Height: uint32(img.Height)}
}

// Luma16 is a 16-bit grayscale image, Pix in row-major order.
type Luma16 struct {
	Width, Height int
	Pix           []uint16
}

func (img Luma16) header() Header {
	return Header{ColorType: Gray, PixelDepth: Sixteen, Width: uint32(img.Width), Height: uint32(img.Height)}
}

// Rgb8 is an 8-bit-per-channel RGB image, Pix in row-major order.
type Rgb8 struct {
	Width, Height int
	Pix           []RGB8
}

func (img Rgb8) header() Header {
	return Header{ColorType: RGB, PixelDepth: Eight, Width: uint32(img.Width), Height: uint32(img.Height)}
}

// Rgb16 is a 16-bit-per-channel RGB image, Pix in row-major order.
type Rgb16 struct {
	Width, Height int
	Pix           []RGB16
}

func (img Rgb16) header() Header {
	return Header{ColorType: RGB, PixelDepth: Sixteen, Width: uint32(img.Width), Height: uint32(img.Height)}
}

// pixelCountOf returns width*height as an int, or panics: a mismatched Pix
// length against Width*Height is an interface-contract violation on the
// caller's part, not a data condition Compress should absorb.
func pixelCountOf(width, height, got int) int {
	want := width * height
	if got != want {
		panic(errutil.Newf("felics: pixel slice length %d does not match width*height %d", got, want))
	}
	return want
}

// Compress writes img to w as a FELICS stream: a 14-byte header followed by
// one bit-packed channel (grayscale) or three (RGB, coded Y, Co, Cg in that
// order after a reversible YCoCg-R transform).
func Compress(w io.Writer, img Image) error {
	if err := WriteHeader(w, img.header()); err != nil {
		return errutil.Err(err)
	}

	bw := bits.NewWriter(w)
	switch img := img.(type) {
	case Luma8:
		n := pixelCountOf(img.Width, img.Height, len(img.Pix))
		channel := make([]int32, n)
		for i, v := range img.Pix {
			channel[i] = int32(v)
		}
		if err := channelcodec.Encode(bw, channel, uint32(img.Width), uint32(img.Height), channelcodec.Gray8); err != nil {
			return errutil.Err(err)
		}
	case Luma16:
		n := pixelCountOf(img.Width, img.Height, len(img.Pix))
		channel := make([]int32, n)
		for i, v := range img.Pix {
			channel[i] = int32(v)
		}
		if err := channelcodec.Encode(bw, channel, uint32(img.Width), uint32(img.Height), channelcodec.Gray16); err != nil {
			return errutil.Err(err)
		}
	case Rgb8:
		n := pixelCountOf(img.Width, img.Height, len(img.Pix))
		y, co, cg := splitYCoCg(img.Pix, n)
		if err := encodeYCoCg(bw, y, co, cg, uint32(img.Width), uint32(img.Height), channelcodec.RGB8); err != nil {
			return errutil.Err(err)
		}
	case Rgb16:
		n := pixelCountOf(img.Width, img.Height, len(img.Pix))
		y, co, cg := splitYCoCg16(img.Pix, n)
		if err := encodeYCoCg(bw, y, co, cg, uint32(img.Width), uint32(img.Height), channelcodec.RGB16); err != nil {
			return errutil.Err(err)
		}
	default:
		panic(errutil.Newf("felics: unsupported Image type %T", img))
	}
	if err := bw.Close(); err != nil {
		return errors.Wrap(err, "felics: close bitstream")
	}
	return nil
}

// splitYCoCg applies the forward color transform to an 8-bit RGB pixel
// slice, returning three independent channels in coding order.
func splitYCoCg(pix []RGB8, n int) (y, co, cg []int32) {
	y = make([]int32, n)
	co = make([]int32, n)
	cg = make([]int32, n)
	for i, p := range pix {
		y[i], co[i], cg[i] = colortransform.RGBToYCoCg(int32(p.R), int32(p.G), int32(p.B))
	}
	return y, co, cg
}

// splitYCoCg16 is splitYCoCg for 16-bit-per-channel RGB pixels.
func splitYCoCg16(pix []RGB16, n int) (y, co, cg []int32) {
	y = make([]int32, n)
	co = make([]int32, n)
	cg = make([]int32, n)
	for i, p := range pix {
		y[i], co[i], cg[i] = colortransform.RGBToYCoCg(int32(p.R), int32(p.G), int32(p.B))
	}
	return y, co, cg
}

// encodeYCoCg bit-packs three already color-transformed channels in the
// fixed Y, Co, Cg order.
func encodeYCoCg(bw *bits.Writer, y, co, cg []int32, width, height uint32, p channelcodec.Params) error {
	if err := channelcodec.Encode(bw, y, width, height, p); err != nil {
		return errutil.Err(err)
	}
	if err := channelcodec.Encode(bw, co, width, height, p); err != nil {
		return errutil.Err(err)
	}
	if err := channelcodec.Encode(bw, cg, width, height, p); err != nil {
		return errutil.Err(err)
	}
	return nil
}

// Decompress reads a FELICS stream from r and reconstructs the Image it
// encodes. The concrete Image type returned (Luma8, Luma16, Rgb8, or Rgb16)
// is selected by the header's color type and pixel depth.
func Decompress(r io.Reader) (Image, error) {
	hdr, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	width, height := int(hdr.Width), int(hdr.Height)
	n := width * height

	br := bits.NewReader(r)
	switch {
	case hdr.ColorType == Gray && hdr.PixelDepth == Eight:
		channel, err := channelcodec.Decode(br, hdr.Width, hdr.Height, channelcodec.Gray8)
		if err != nil {
			return nil, err
		}
		pix := make([]uint8, n)
		for i, v := range channel {
			if v < 0 || v > 0xFF {
				return nil, ErrInvalidValue
			}
			pix[i] = uint8(v)
		}
		return Luma8{Width: width, Height: height, Pix: pix}, nil

	case hdr.ColorType == Gray && hdr.PixelDepth == Sixteen:
		channel, err := channelcodec.Decode(br, hdr.Width, hdr.Height, channelcodec.Gray16)
		if err != nil {
			return nil, err
		}
		pix := make([]uint16, n)
		for i, v := range channel {
			if v < 0 || v > 0xFFFF {
				return nil, ErrInvalidValue
			}
			pix[i] = uint16(v)
		}
		return Luma16{Width: width, Height: height, Pix: pix}, nil

	case hdr.ColorType == RGB && hdr.PixelDepth == Eight:
		y, co, cg, err := decodeYCoCg(br, hdr.Width, hdr.Height, channelcodec.RGB8)
		if err != nil {
			return nil, err
		}
		pix := make([]RGB8, n)
		for i := range pix {
			r, g, b, err := joinRGB(y[i], co[i], cg[i], 0xFF)
			if err != nil {
				return nil, err
			}
			pix[i] = RGB8{R: uint8(r), G: uint8(g), B: uint8(b)}
		}
		return Rgb8{Width: width, Height: height, Pix: pix}, nil

	case hdr.ColorType == RGB && hdr.PixelDepth == Sixteen:
		y, co, cg, err := decodeYCoCg(br, hdr.Width, hdr.Height, channelcodec.RGB16)
		if err != nil {
			return nil, err
		}
		pix := make([]RGB16, n)
		for i := range pix {
			r, g, b, err := joinRGB(y[i], co[i], cg[i], 0xFFFF)
			if err != nil {
				return nil, err
			}
			pix[i] = RGB16{R: uint16(r), G: uint16(g), B: uint16(b)}
		}
		return Rgb16{Width: width, Height: height, Pix: pix}, nil

	default:
		panic(errutil.Newf("felics: unreachable color type/pixel depth combination"))
	}
}

// decodeYCoCg reads the Y, Co, Cg channels (in that fixed order) written by
// encodeYCoCg.
func decodeYCoCg(br *bits.Reader, width, height uint32, p channelcodec.Params) (y, co, cg []int32, err error) {
	y, err = channelcodec.Decode(br, width, height, p)
	if err != nil {
		return nil, nil, nil, err
	}
	co, err = channelcodec.Decode(br, width, height, p)
	if err != nil {
		return nil, nil, nil, err
	}
	cg, err = channelcodec.Decode(br, width, height, p)
	if err != nil {
		return nil, nil, nil, err
	}
	return y, co, cg, nil
}

// joinRGB applies the inverse color transform and validates the result fits
// an unsigned sample of the declared depth (max is 0xFF or 0xFFFF).
func joinRGB(y, co, cg int32, max int32) (r, g, b int32, err error) {
	r, g, b = colortransform.YCoCgToRGB(y, co, cg)
	if r < 0 || r > max || g < 0 || g > max || b < 0 || b > max {
		return 0, 0, 0, ErrInvalidValue
	}
	return r, g, b, nil
}
