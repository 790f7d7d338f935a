package shadowing

import (
	"testing"

	"rendercore/math"
	"rendercore/spatial"
)

func straightCamera() spatial.CameraView {
	return spatial.CameraView{
		Position: math.Vec3{X: 0, Y: 0, Z: 0},
		Front:    math.Vec3{X: 0, Y: 0, Z: -1},
		Up:       math.Vec3{X: 0, Y: 1, Z: 0},
		Right:    math.Vec3{X: 1, Y: 0, Z: 0},
		Fov:      1.0,
		Near:     0.1,
		Far:      100,
	}
}

func TestFrustumCornersOrdering(t *testing.T) {
	cam := straightCamera()
	corners := frustumCorners(cam, 1.0, 1, 10)
	for i := 0; i < 4; i++ {
		if corners[i].Z > -0.99 {
			t.Fatalf("near corner %d = %v, expected z near -1", i, corners[i])
		}
	}
	for i := 4; i < 8; i++ {
		if corners[i].Z > -9.99 {
			t.Fatalf("far corner %d = %v, expected z near -10", i, corners[i])
		}
	}
}

func TestCascadeViewProjDegenerateUpVector(t *testing.T) {
	cam := straightCamera()
	// Light pointing straight down the camera's up axis: the generic
	// Y up-vector is degenerate and CascadeViewProj must fall back to Z
	// without panicking or producing a singular view matrix.
	lightDir := math.Vec3{X: 0, Y: -1, Z: 0}
	vp := CascadeViewProj(cam, 1.0, cam.Near, cam.Far, lightDir, 10)
	if vp == math.Mat4Identity() {
		t.Fatalf("CascadeViewProj degenerated to identity for a non-degenerate frustum")
	}
}

func TestCascadeViewProjWidensNearPlane(t *testing.T) {
	cam := straightCamera()
	lightDir := math.Vec3{X: 0.3, Y: -0.8, Z: 0.2}.Normalize()

	narrow := CascadeViewProj(cam, 1.0, 1, 10, lightDir, 1)
	wide := CascadeViewProj(cam, 1.0, 1, 10, lightDir, 10)
	if narrow == wide {
		t.Fatalf("zMultiplier had no effect on the fitted projection")
	}
}

func TestSplitFractionsAreIncreasing(t *testing.T) {
	for i := 1; i < len(SplitFractions); i++ {
		if SplitFractions[i] <= SplitFractions[i-1] {
			t.Fatalf("SplitFractions not strictly increasing at index %d: %v", i, SplitFractions)
		}
	}
}
