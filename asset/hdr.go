package asset

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// HDRImage is a CPU-side decoded Radiance (.hdr/.pic) equirectangular
// image, RGB float triplets row-major top-to-bottom. No pack repo or
// golang.org/x/image subpackage decodes this format (x/image's HDR-adjacent
// code is limited to font rasterization), so LoadHDR is a small from-scratch
// reader of the format's documented header/RLE layout.
type HDRImage struct {
	Width, Height int
	Pixels        []float32 // RGB triplets
}

// LoadHDR reads a Radiance RGBE-encoded .hdr file, the conventional source
// format for equirectangular environment captures fed into
// ibl.Preprocessor.Bake.
func LoadHDR(path string) (*HDRImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open hdr %q: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	if err := skipHDRHeader(r); err != nil {
		return nil, fmt.Errorf("hdr %q: %w", path, err)
	}
	width, height, err := readHDRResolution(r)
	if err != nil {
		return nil, fmt.Errorf("hdr %q: %w", path, err)
	}

	pixels := make([]float32, width*height*3)
	scanline := make([]byte, width*4)
	for y := 0; y < height; y++ {
		if err := readHDRScanline(r, scanline, width); err != nil {
			return nil, fmt.Errorf("hdr %q: scanline %d: %w", path, y, err)
		}
		base := y * width * 3
		for x := 0; x < width; x++ {
			rr, gg, bb := rgbeToFloat(scanline[x*4], scanline[x*4+1], scanline[x*4+2], scanline[x*4+3])
			pixels[base+x*3+0] = rr
			pixels[base+x*3+1] = gg
			pixels[base+x*3+2] = bb
		}
	}

	return &HDRImage{Width: width, Height: height, Pixels: pixels}, nil
}

// skipHDRHeader consumes the "#?RADIANCE" magic and variable= lines up to
// and including the blank line that terminates the header.
func skipHDRHeader(r *bufio.Reader) error {
	magic, err := r.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read magic: %w", err)
	}
	if !strings.HasPrefix(magic, "#?") {
		return fmt.Errorf("not a Radiance file (magic %q)", strings.TrimSpace(magic))
	}
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			return nil
		}
	}
}

// readHDRResolution parses the "-Y height +X width" line. Only the
// conventional top-to-bottom, left-to-right orientation is supported, which
// is what every equirectangular HDRI export in practice uses.
func readHDRResolution(r *bufio.Reader) (width, height int, err error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, 0, fmt.Errorf("read resolution line: %w", err)
	}
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "-Y" || fields[2] != "+X" {
		return 0, 0, fmt.Errorf("unsupported resolution line %q", strings.TrimSpace(line))
	}
	height, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad height: %w", err)
	}
	width, err = strconv.Atoi(fields[3])
	if err != nil {
		return 0, 0, fmt.Errorf("bad width: %w", err)
	}
	return width, height, nil
}

// readHDRScanline fills dst (4*width bytes, RGBE quadruplets) for one row,
// handling both the legacy flat encoding and the adaptive RLE encoding
// (marked by a leading 2,2,hi,lo quadruplet where hi<<8|lo == width).
func readHDRScanline(r *bufio.Reader, dst []byte, width int) error {
	if width < 8 || width > 0x7fff {
		return readFlatScanline(r, dst, width)
	}

	marker := make([]byte, 4)
	if _, err := io.ReadFull(r, marker); err != nil {
		return err
	}
	if marker[0] != 2 || marker[1] != 2 || (int(marker[2])<<8|int(marker[3])) != width {
		// Old-style RLE/flat: first pixel already consumed in marker.
		copy(dst[0:4], marker)
		return readFlatScanline(r, dst[4:], width-1)
	}

	for channel := 0; channel < 4; channel++ {
		x := 0
		for x < width {
			count, err := r.ReadByte()
			if err != nil {
				return err
			}
			if count > 128 {
				// Run of (count-128) repeats of the next byte.
				count -= 128
				v, err := r.ReadByte()
				if err != nil {
					return err
				}
				for i := 0; i < int(count); i++ {
					dst[(x+i)*4+channel] = v
				}
			} else {
				// Literal run of count bytes.
				buf := make([]byte, count)
				if _, err := io.ReadFull(r, buf); err != nil {
					return err
				}
				for i, v := range buf {
					dst[(x+i)*4+channel] = v
				}
			}
			x += int(count)
		}
	}
	return nil
}

func readFlatScanline(r *bufio.Reader, dst []byte, width int) error {
	_, err := io.ReadFull(r, dst[:width*4])
	return err
}

// rgbeToFloat decodes one RGBE-encoded texel per the format's documented
// ldexp(mantissa, exponent-128-8) reconstruction; a zero exponent means
// black by the format's convention, so it returns exact zeros instead of
// the tiny nonzero values the ldexp(1, -136) scale would give.
func rgbeToFloat(r, g, b, e byte) (float32, float32, float32) {
	if e == 0 {
		return 0, 0, 0
	}
	f := math.Ldexp(1.0, int(e)-(128+8))
	return float32(float64(r) * f), float32(float64(g) * f), float32(float64(b) * f)
}
