package felics

import "github.com/pkg/errors"

// Errors returned by ReadHeader and Decompress. Programmer errors
// (an out-of-range Rice parameter, encoding a value outside a PhaseInCoder's
// range) panic instead of returning an error; these are interface-contract
// violations, not data conditions a caller can recover from.
var (
	// ErrInvalidSignature is returned when a stream does not begin with the
	// "FLCS" magic bytes.
	ErrInvalidSignature = errors.New("felics: invalid signature")

	// ErrInvalidColorType is returned when the header's color type byte is
	// neither Gray nor RGB.
	ErrInvalidColorType = errors.New("felics: invalid color type")

	// ErrInvalidPixelDepth is returned when the header's pixel depth byte is
	// neither Eight nor Sixteen.
	ErrInvalidPixelDepth = errors.New("felics: invalid pixel depth")

	// ErrInvalidDimensions is returned by ReadHeader when width*height
	// cannot be represented as a uint32 pixel count. (A Pix slice whose
	// length does not match Width*Height makes Compress panic instead.)
	ErrInvalidDimensions = errors.New("felics: invalid dimensions")

	// ErrTruncated is returned when the stream ends inside the 14-byte
	// header. A stream that ends inside the pixel bitstream makes Decompress
	// fail with a wrapped error from the internal bit reader, not with
	// ErrTruncated.
	ErrTruncated = errors.New("felics: truncated bitstream")

	// ErrInvalidValue is returned when a decoded sample falls outside the
	// range its pixel depth allows.
	ErrInvalidValue = errors.New("felics: invalid value")

	// ErrValueOverflow denotes a residual reconstruction that overflows
	// 32-bit arithmetic. Decompress does not check reconstruction for
	// overflow and does not return this error; a wrapped value is reported
	// only if it falls outside the pixel depth (ErrInvalidValue).
	ErrValueOverflow = errors.New("felics: value overflow")
)
