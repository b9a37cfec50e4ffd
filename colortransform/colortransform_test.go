package colortransform_test

import (
	"testing"

	"github.com/mewkiz/felics/colortransform"
)

// Exhaustive reversibility and max-context check for every 8-bit RGB triple,
// reproducing original_source's test_color_transform8.
func TestRoundTrip8(t *testing.T) {
	var maxY, minY int32 = -1 << 31, 1<<31 - 1
	var maxCo, minCo int32 = -1 << 31, 1<<31 - 1
	var maxCg, minCg int32 = -1 << 31, 1<<31 - 1

	for r := int32(0); r <= 255; r++ {
		for g := int32(0); g <= 255; g++ {
			for b := int32(0); b <= 255; b++ {
				y, co, cg := colortransform.RGBToYCoCg(r, g, b)
				rn, gn, bn := colortransform.YCoCgToRGB(y, co, cg)
				if rn != r || gn != g || bn != b {
					t.Fatalf("round trip failed for (%d,%d,%d): got (%d,%d,%d)", r, g, b, rn, gn, bn)
				}
				if y > maxY {
					maxY = y
				}
				if y < minY {
					minY = y
				}
				if co > maxCo {
					maxCo = co
				}
				if co < minCo {
					minCo = co
				}
				if cg > maxCg {
					maxCg = cg
				}
				if cg < minCg {
					minCg = cg
				}
			}
		}
	}

	const max8Context = 510 // 9-bit range: [0, 2*255].
	if got := uint32(maxY - minY); got > max8Context {
		t.Errorf("Y context %d exceeds %d", got, max8Context)
	}
	if got := uint32(maxCo - minCo); got > max8Context {
		t.Errorf("Co context %d exceeds %d", got, max8Context)
	}
	if got := uint32(maxCg - minCg); got > max8Context {
		t.Errorf("Cg context %d exceeds %d", got, max8Context)
	}
}

// Scenario E from the specification: the worked 16-bit triple (1726, 12640,
// 26649), reproduced from original_source's test_color_transform16.
func TestWorkedExample16(t *testing.T) {
	cases := []struct {
		r, g, b int32
	}{
		{0, 65535, 0},
		{0, 0, 65535},
		{65535, 0, 0},
		{65535, 65535, 65535},
		{65535, 0, 65535},
		{1726, 12640, 26649},
		{0, 0, 0},
		{9127, 65535, 3},
	}
	for _, c := range cases {
		y, co, cg := colortransform.RGBToYCoCg(c.r, c.g, c.b)
		rn, gn, bn := colortransform.YCoCgToRGB(y, co, cg)
		if rn != c.r || gn != c.g || bn != c.b {
			t.Errorf("round trip failed for (%d,%d,%d): got (%d,%d,%d)", c.r, c.g, c.b, rn, gn, bn)
		}
	}
}
