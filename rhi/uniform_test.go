package rhi

import (
	"testing"

	"rendercore/math"
)

func TestFlattenMat4Identity(t *testing.T) {
	flat := flattenMat4(math.Mat4Identity())
	want := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if flat != want {
		t.Fatalf("flattenMat4(identity) = %v, want %v", flat, want)
	}
}

func TestFlattenMat4Translation(t *testing.T) {
	// Row-vector convention: translating by (5,6,7) puts the offset in
	// row 3. GLSL expects column-major bytes, so the offset must land at
	// flat indices 12,13,14 (the start of the 4th column).
	tr := math.Mat4Translation(math.Vec3{X: 5, Y: 6, Z: 7})
	flat := flattenMat4(tr)
	if flat[12] != 5 || flat[13] != 6 || flat[14] != 7 {
		t.Fatalf("flattenMat4(translation) = %v, want offset at [12:15]", flat)
	}
}

func TestDefaultPipelineStateEnablesDepthAndCull(t *testing.T) {
	s := DefaultPipelineState()
	if !s.DepthTest || !s.CullEnable {
		t.Fatalf("DefaultPipelineState() = %+v, want DepthTest and CullEnable true", s)
	}
	if s.BlendEnable {
		t.Fatalf("DefaultPipelineState() blend should be off by default")
	}
}

func TestBlendPipelineStateEnablesBlend(t *testing.T) {
	s := BlendPipelineState()
	if !s.BlendEnable {
		t.Fatalf("BlendPipelineState() should enable blending")
	}
	if !s.DepthTest {
		t.Fatalf("BlendPipelineState() should still depth test")
	}
}
