package asset

import (
	"bufio"
	"bytes"
	"testing"
)

func TestRgbeToFloatZeroExponentIsBlack(t *testing.T) {
	r, g, b := rgbeToFloat(200, 150, 90, 0)
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("expected black for zero exponent, got (%v,%v,%v)", r, g, b)
	}
}

func TestRgbeToFloatReconstructsKnownValue(t *testing.T) {
	// mantissa 128, exponent 129: f = ldexp(1, 129-136) = 2^-7, 128*2^-7 = 1.0.
	r, _, _ := rgbeToFloat(128, 0, 0, 129)
	if r < 0.99 || r > 1.01 {
		t.Fatalf("expected ~1.0, got %v", r)
	}
}

func TestReadHDRResolutionParsesStandardOrientation(t *testing.T) {
	r := bufio.NewReader(bytes.NewBufferString("-Y 4 +X 8\n"))
	w, h, err := readHDRResolution(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 8 || h != 4 {
		t.Fatalf("expected 8x4, got %dx%d", w, h)
	}
}

func TestReadHDRResolutionRejectsUnsupportedOrientation(t *testing.T) {
	r := bufio.NewReader(bytes.NewBufferString("+Y 4 -X 8\n"))
	if _, _, err := readHDRResolution(r); err == nil {
		t.Fatal("expected error for non-standard orientation")
	}
}

func TestSkipHDRHeaderRequiresMagic(t *testing.T) {
	r := bufio.NewReader(bytes.NewBufferString("not a radiance file\n\n"))
	if err := skipHDRHeader(r); err == nil {
		t.Fatal("expected error for missing #? magic")
	}
}

func TestSkipHDRHeaderStopsAtBlankLine(t *testing.T) {
	r := bufio.NewReader(bytes.NewBufferString("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 2 +X 2\n"))
	if err := skipHDRHeader(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w, h, err := readHDRResolution(r)
	if err != nil {
		t.Fatalf("unexpected error reading resolution after header: %v", err)
	}
	if w != 2 || h != 2 {
		t.Fatalf("expected 2x2, got %dx%d", w, h)
	}
}

func TestReadFlatScanlineReadsExactBytes(t *testing.T) {
	data := []byte{10, 20, 30, 136, 11, 21, 31, 136}
	r := bufio.NewReader(bytes.NewReader(data))
	dst := make([]byte, 8)
	if err := readFlatScanline(r, dst, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(dst, data) {
		t.Fatalf("expected %v, got %v", data, dst)
	}
}
