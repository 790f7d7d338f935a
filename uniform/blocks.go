package uniform

import "rendercore/math"

// CameraBlock mirrors binding 0. invView/invProj fall back to identity when
// the source matrix is singular — Mat4.Inverse() already returns identity on
// a zero determinant, so no extra branch is needed here.
//
// cameraPos is declared as a bare math.Vec3, not Std140Vec3: std140 only
// requires a vec3 to start on a 16-byte boundary, not to occupy a full 16
// bytes. A scalar immediately following a vec3 (nearPlane here) packs into
// the vec3's last 4 bytes — nearPlane lands at byte 268 (256 for the four
// mat4s + 12 for cameraPos), not 272. Std140Vec3's trailing pad is only
// correct when the vec3 is NOT followed by a scalar (e.g. two vec3s back to
// back, or a vec3 at the end of a struct that's about to repeat in an
// array) — see PointLightData/SpotLightData/DirectionalLightData below for
// that case.
type CameraBlock struct {
	View, Proj       math.Mat4
	InvView, InvProj math.Mat4
	CameraPos        math.Vec3
	Near, Far        float32
}

// ModelBlock mirrors binding 1, with MeshRenderIndex as the slot for an
// object-id value. Nothing in this tree fills or uploads ModelBlock: the
// draw paths set model and inverseTransposeModel as plain program uniforms.
type ModelBlock struct {
	Model                 math.Mat4
	InverseTransposeModel math.Mat4
	MeshRenderIndex       uint32
	_pad                  [3]uint32
}

// PointLightData mirrors one element of Lights.Point[50]: Position is
// followed by another vec3 (Color), so it uses Std140Vec3 — its 16-byte
// size already supplies the gap std140 needs before Color starts at byte
// 16. Color is followed by a scalar (Intensity), so it's a bare math.Vec3
// and Intensity packs directly into its unused 4 bytes at byte 28. _pad
// rounds the struct from 40 up to 48, the array-element stride std140
// requires (a multiple of 16).
type PointLightData struct {
	Position        Std140Vec3
	Color           math.Vec3
	Intensity       float32
	Radius          float32
	IsCastingShadow uint32
	_pad            [2]uint32
}

// SpotLightData mirrors one element of Lights.Spot[50]. CosCutoff/
// CosOuterCutoff are precomputed on the CPU by convention. Position and
// Direction are each followed by another vec3, so both use Std140Vec3;
// Color is followed by a scalar (Intensity) so it stays a bare math.Vec3.
// The resulting size (64) already lands on a 16-byte multiple, so there is
// no trailing pad field.
type SpotLightData struct {
	Position        Std140Vec3
	Direction       Std140Vec3
	Color           math.Vec3
	Intensity       float32
	Radius          float32
	CosCutoff       float32
	CosOuterCutoff  float32
	IsCastingShadow uint32
}

// DirectionalLightData mirrors Lights.Dir[1]. Direction precedes another
// vec3 (Color) so it uses Std140Vec3; Color precedes a scalar (Intensity)
// so it stays a bare math.Vec3. _pad rounds the struct from 36 up to 48,
// the array-element stride std140 requires even for a one-element array.
type DirectionalLightData struct {
	Direction       Std140Vec3
	Color           math.Vec3
	Intensity       float32
	IsCastingShadow uint32
	_pad            [3]uint32
}

// LightsBlock mirrors binding 2 in full: counts, the three fixed-size light
// arrays, and the light-space matrices the shadow manager writes after
// rendering every depth map. Sizes are generous by convention — some
// slots are unused for scenes with fewer lights than the max.
type LightsBlock struct {
	PointCount uint32
	SpotCount  uint32
	DirCount   uint32
	_pad       uint32 // rounds the three counts up to 16 bytes, the base alignment a std140 array requires of what follows

	Point [MaxPointLights]PointLightData
	Spot  [MaxSpotLights]SpotLightData
	Dir   [MaxDirectionalLights]DirectionalLightData

	SpotLightSpaceMatrix [MaxSpotLights]math.Mat4
	// DirLightSpaceMatrix holds CascadeCount*3 matrices: this pipeline notes
	// the source loops DirectionalCascadeLevel+1 times, suggesting a final
	// catch-all slice beyond the last split. The extra ×3 multiplier (vs.
	// ×1) is the generous allocation this pipeline calls out; only the first
	// CascadeCount+1 entries are ever written.
	DirLightSpaceMatrix [CascadeCount * 3]math.Mat4
}

// MaterialBlock mirrors binding 4, written once per draw.
type MaterialBlock struct {
	Albedo           [4]float32
	EmissiveColor    [4]float32
	Metallic         float32
	Roughness        float32
	Reflectance      float32
	AmbientOcclusion float32
	EmissiveStrength float32
	HasAlbedoTex     uint32
	HasNormalTex     uint32
	HasMetallicRoughnessTex uint32
	HasAOTex         uint32
	HasEmissiveTex   uint32
	_pad             [2]uint32
}

// SkinnedBlock mirrors binding 5: the per-frame bone palette, row-major, up
// to MaxBones, by convention.
type SkinnedBlock struct {
	BoneMatrices [MaxBones]math.Mat4
}
