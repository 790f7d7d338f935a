//go:build glintegration

// These scenarios need a real GL 4.3 context and a visible/headless
// window to run against, so they are gated behind the glintegration
// build tag and never run as part of the ordinary test suite. They
// document the pixel-level behavior a driver-backed run is expected to
// show; running them requires `go test -tags glintegration ./engine/...`
// on a machine with a GPU driver and an X/EGL surface available.
package engine

import (
	"testing"

	"rendercore/core"
	"rendercore/math"
	"rendercore/scene"
)

func newIntegrationEngine(t *testing.T) (*Engine, *core.Window) {
	t.Helper()
	win, err := core.NewWindow(core.DefaultWindowConfig())
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	e, err := New(win.Width, win.Height)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return e, win
}

// TestDirectionalShadowOnFlatPlane is scenario S1: one directional light
// over a flat plane should build five cascade slices and light the plane
// at roughly full lambert intensity directly under the light.
func TestDirectionalShadowOnFlatPlane(t *testing.T) {
	e, win := newIntegrationEngine(t)
	defer win.Destroy()
	defer e.Destroy()

	plane, err := scene.CreatePlane(10, 10, 1)
	if err != nil {
		t.Fatalf("CreatePlane: %v", err)
	}
	n := scene.NewNode("Plane")
	n.Renderer = scene.NewStaticMeshRenderer(plane)
	e.Scene.AddNode(n)

	sun := scene.NewDirectionalLight(math.Vec3{X: 0, Y: -1, Z: 0}, core.Color{R: 1, G: 1, B: 1, A: 1}, 1.0)
	sun.CastsShadow = true
	e.Scene.AddLight(sun)

	e.Viewport().Camera.SetPosition(math.Vec3{X: 0, Y: 5, Z: 5})
	e.Viewport().Camera.LookAt(math.Vec3{}, math.Vec3Up)

	e.Render(0.016)

	t.Skip("pixel readback against e.Viewport().Output() requires a real framebuffer; documents expected lambert ≈ 1.0 at center and cascade-0 depth ≈ 5.0")
}

// TestPointLightShadowSelfOcclusion is scenario S2: a point light between
// two cubes should light their top faces and leave bottom faces in
// shadow without one cube shadowing the other.
func TestPointLightShadowSelfOcclusion(t *testing.T) {
	e, win := newIntegrationEngine(t)
	defer win.Destroy()
	defer e.Destroy()

	for _, x := range []float32{-1, 1} {
		cube, err := scene.CreateCube(1)
		if err != nil {
			t.Fatalf("CreateCube: %v", err)
		}
		n := scene.NewNode("Cube")
		n.Renderer = scene.NewStaticMeshRenderer(cube)
		n.SetPosition(math.Vec3{X: x, Y: 0, Z: 0})
		e.Scene.AddNode(n)
	}

	point := scene.NewPointLight(math.Vec3{X: 0, Y: 2, Z: 0}, core.Color{R: 1, G: 1, B: 1, A: 1}, 100, 20)
	point.CastsShadow = true
	e.Scene.AddLight(point)

	e.Viewport().Camera.SetPosition(math.Vec3{X: 0, Y: 0, Z: 3})
	e.Viewport().Camera.LookAt(math.Vec3{}, math.Vec3Up)

	e.Render(0.016)

	t.Skip("documents expected top-face lit / bottom-face shadowed pixels with no cross-cube occlusion; needs pixel readback")
}

// TestOctreeCullingKeepsDrawCallsLow is scenario S3: a 10x10x10 grid of
// cubes viewed through a narrow frustum should touch a small fraction of
// the octree and issue far fewer draw calls than the full object count.
func TestOctreeCullingKeepsDrawCallsLow(t *testing.T) {
	e, win := newIntegrationEngine(t)
	defer win.Destroy()
	defer e.Destroy()

	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			for z := 0; z < 10; z++ {
				cube, err := scene.CreateCube(1)
				if err != nil {
					t.Fatalf("CreateCube: %v", err)
				}
				n := scene.NewNode("Cube")
				n.Renderer = scene.NewStaticMeshRenderer(cube)
				n.SetPosition(math.Vec3{X: float32(x) * 5, Y: float32(y) * 5, Z: float32(z) * 5})
				e.Scene.AddNode(n)
			}
		}
	}

	e.Viewport().Camera.Fov = 0.5235988 // 30 degrees, in radians
	e.Viewport().Camera.SetPosition(math.Vec3{X: 0, Y: 0, Z: -1})
	e.Viewport().Camera.LookAt(math.Vec3{X: 0, Y: 0, Z: 1}, math.Vec3Up)

	e.Render(0.016)

	t.Skip("documents expected draw-call count < 50 out of 1000 objects under a 30deg frustum; needs a draw-call counter hooked into rhi.Device")
}

// TestBloomThresholdFalloff is scenario S4: a single emissive quad well
// above the bloom threshold should show a falloff visible across at
// least 32 pixels after bloom, saturating at the center post-tone-map.
func TestBloomThresholdFalloff(t *testing.T) {
	e, win := newIntegrationEngine(t)
	defer win.Destroy()
	defer e.Destroy()

	quad, err := scene.CreatePlane(1, 1, 1)
	if err != nil {
		t.Fatalf("CreatePlane: %v", err)
	}
	mat := scene.NewMaterial("Emissive", core.Color{R: 1, G: 1, B: 1, A: 1}, 0, 1)
	mat.EmissiveColor = core.Color{R: 8, G: 8, B: 8, A: 1}
	mat.EmissiveStrength = 1
	quad.Material = mat
	n := scene.NewNode("Quad")
	n.Renderer = scene.NewStaticMeshRenderer(quad)
	e.Scene.AddNode(n)

	e.Render(0.016)

	t.Skip("documents expected >=32px bloom falloff and LDR saturation at the center pixel; needs pixel readback against e.Viewport().Output()")
}

// TestResourceHandleChurnStaysStable is scenario S6: creating and
// destroying many textures in one frame must not leak live handles or
// raise a GL error.
func TestResourceHandleChurnStaysStable(t *testing.T) {
	e, win := newIntegrationEngine(t)
	defer win.Destroy()
	defer e.Destroy()

	for i := 0; i < 10000; i++ {
		tex := &scene.Texture{Width: 2, Height: 2, Pixels: make([]byte, 2*2*4)}
		handle := e.Device.UploadTexture2D(tex)
		e.Device.DestroyTexture(handle)
	}

	t.Skip("documents expected zero net live-handle growth and zero GL errors over 10000 churn iterations")
}
