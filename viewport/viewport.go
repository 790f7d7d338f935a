package viewport

import (
	"rendercore/resource"
	"rendercore/rhi"
)

// Viewport bundles everything one render target needs across frames: the
// camera driving it, the render-target set a Renderer writes into, and the
// two flags that change what the per-frame sequence does at its tail end —
// per the Viewport contract. Resize allocates Data on first use and
// reallocates it whenever it sees a new size.
type Viewport struct {
	Camera *Camera
	Data   *ViewportData

	Width, Height int

	// IsEditor is carried for the host; Renderer.Render does not read it.
	IsEditor bool
	// UsePostProcess gates bloom+tone-mapping; when false Output returns
	// the deferred lighting pass's forward HDR target directly, with no
	// bloom/ACES step, e.g. for a thumbnail/picking viewport.
	UsePostProcess bool
}

func NewViewport(device *rhi.Device, camera *Camera) *Viewport {
	return &Viewport{
		Camera: camera,
		Data:   NewViewportData(device),
	}
}

// Resize reallocates every render target this viewport owns, and updates the
// camera's aspect ratio to match.
func (v *Viewport) Resize(width, height int) {
	if width == v.Width && height == v.Height {
		return
	}
	v.Width, v.Height = width, height
	v.Data.Resize(width, height)
	v.Camera.UpdateAspectRatio(float32(width), float32(height))
}

// Output is the tone-mapped (or, with post-process disabled, raw forward)
// LDR texture the host presents.
func (v *Viewport) Output() resource.Handle {
	if v.UsePostProcess {
		return v.Data.LDRColor
	}
	return v.Data.ForwardColor
}
