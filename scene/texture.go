package scene

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"rendercore/resource"
)

// MaxTextureDimension caps the width/height a loaded material texture can
// reach before upload. Source art for this showcase runs well under this,
// but it guards against an artist dropping a multi-thousand-pixel source
// straight into the asset folder and blowing the texture-array budget
// shadowing/bloom pre-allocate around a known-reasonable material size.
const MaxTextureDimension = 2048

// Texture holds CPU-side pixel data for a 2D texture plus the GPU handle it
// resolves to once the RHI has uploaded it. GPUHandle is the zero Handle
// until rhi.Device.CreateTexture2D has run for it.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format (4 bytes per pixel, row-major, top-to-bottom).
	Pixels []byte

	GPUHandle resource.Handle
}

// LoadTexture reads a PNG or JPEG file from disk and returns a CPU-side
// Texture, converted to RGBA8 and box-filtered down if it exceeds
// MaxTextureDimension. HDR equirectangular sources for the skybox use
// asset.LoadHDR instead; stdlib image/{png,jpeg} already cover decode for
// these LDR material maps, golang.org/x/image only earns its keep here for
// the draw.BiLinear downscale step.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}

	if w > MaxTextureDimension || h > MaxTextureDimension {
		rgba = downsampleToFit(rgba, MaxTextureDimension)
		w, h = rgba.Bounds().Dx(), rgba.Bounds().Dy()
	}

	return &Texture{Name: path, Width: w, Height: h, Pixels: rgba.Pix}, nil
}

// downsampleToFit box-filters src down so neither dimension exceeds maxDim,
// preserving aspect ratio. draw.BiLinear averages source texels under each
// destination pixel when shrinking, which is the box-filtering behavior
// golang.org/x/image/draw documents for downscaling (as opposed to the
// nearest-neighbor or bilinear-interpolation behavior it exhibits when
// upscaling).
func downsampleToFit(src *image.RGBA, maxDim int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	scale := float64(maxDim) / float64(w)
	if hScale := float64(maxDim) / float64(h); hScale < scale {
		scale = hScale
	}

	dstW := int(float64(w) * scale)
	dstH := int(float64(h) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{Name: name, Width: 1, Height: 1, Pixels: []byte{r, g, b, a}}
}
