package bits_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/mewkiz/felics/internal/bits"
)

func TestWriteUnaryWorkedExamples(t *testing.T) {
	cases := []struct {
		q    uint32
		want string
	}{
		{0, "0"},
		{1, "10"},
		{2, "110"},
		{3, "1110"},
		{4, "11110"},
	}
	for _, c := range cases {
		buf := new(bytes.Buffer)
		w := bits.NewWriter(buf)
		if err := w.WriteUnary(c.q); err != nil {
			t.Fatalf("WriteUnary(%d): %v", c.q, err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
		got := toBitString(buf.Bytes())[:len(c.want)]
		if got != c.want {
			t.Errorf("WriteUnary(%d) = %q, want %q", c.q, got, c.want)
		}
	}
}

func toBitString(b []byte) string {
	s := make([]byte, 0, len(b)*8)
	for _, by := range b {
		for i := 7; i >= 0; i-- {
			if by&(1<<uint(i)) != 0 {
				s = append(s, '1')
			} else {
				s = append(s, '0')
			}
		}
	}
	return string(s)
}

func TestUnaryRoundTrip(t *testing.T) {
	buf := new(bytes.Buffer)
	w := bits.NewWriter(buf)
	want := make([]uint32, 1000)
	for i := range want {
		want[i] = uint32(rand.Intn(300))
		if err := w.WriteUnary(want[i]); err != nil {
			t.Fatalf("WriteUnary: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r := bits.NewReader(buf)
	for i, want := range want {
		got, err := r.ReadUnary()
		if err != nil {
			t.Fatalf("ReadUnary[%d]: %v", i, err)
		}
		if got != want {
			t.Fatalf("ReadUnary[%d] = %d, want %d", i, got, want)
		}
	}
}

func TestWriteBitsMSBFirst(t *testing.T) {
	buf := new(bytes.Buffer)
	w := bits.NewWriter(buf)
	// 5 = 0b101, written as 3 bits, should appear as "101" at the head of the
	// stream.
	if err := w.WriteBits(0b101, 3); err != nil {
		t.Fatalf("WriteBits: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	got := toBitString(buf.Bytes())[:3]
	if got != "101" {
		t.Errorf("WriteBits(0b101, 3) = %q, want %q", got, "101")
	}
}

func TestReadBitsRoundTrip(t *testing.T) {
	buf := new(bytes.Buffer)
	w := bits.NewWriter(buf)
	vals := []uint64{0, 1, 7, 255, 1<<20 - 1, 1 << 31}
	widths := []uint8{1, 1, 3, 8, 20, 32}
	for i, v := range vals {
		if err := w.WriteBits(v, widths[i]); err != nil {
			t.Fatalf("WriteBits: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	r := bits.NewReader(buf)
	for i, want := range vals {
		got, err := r.ReadBits(widths[i])
		if err != nil {
			t.Fatalf("ReadBits[%d]: %v", i, err)
		}
		if got != want {
			t.Fatalf("ReadBits[%d] = %d, want %d", i, got, want)
		}
	}
}

func TestReadTruncated(t *testing.T) {
	buf := new(bytes.Buffer)
	w := bits.NewWriter(buf)
	if err := w.WriteBits(1, 1); err != nil {
		t.Fatalf("WriteBits: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	r := bits.NewReader(buf)
	// First bit is the lone "1" we wrote (plus zero padding); keep reading
	// past the end of the byte-aligned stream's meaningful content until the
	// reader runs out of bytes entirely.
	for i := 0; i < 8; i++ {
		if _, err := r.ReadBit(); err != nil {
			t.Fatalf("unexpected error within byte bounds: %v", err)
		}
	}
	if _, err := r.ReadBit(); err != bits.ErrTruncated {
		t.Fatalf("ReadBit past end = %v, want ErrTruncated", err)
	}
}
