// Package viewport's Renderer is the top-level per-frame orchestrator:
// it snapshots the scene, renders shadows, fills the G-buffer, resolves
// deferred lighting, draws the skybox/translucent forward overlay, and
// finishes with bloom+tone-mapping. Editor gizmos or game GUI beyond what
// Overlay covers are the host's job, drawn via ForwardOverlayPass in that
// same gap. Grounded on the reference renderer's
// internal/opengl.Renderer.RenderFrame, generalized from one monolithic
// forward pass into the staged deferred pipeline the other packages in this
// tree implement.
package viewport

import (
	"fmt"
	stdmath "math"
	"unsafe"

	"rendercore/bloom"
	"rendercore/core"
	"rendercore/ibl"
	"rendercore/math"
	"rendercore/meshesdrawer"
	"rendercore/resource"
	"rendercore/rhi"
	"rendercore/scene"
	"rendercore/shadowing"
	"rendercore/spatial"
	"rendercore/tonemap"
	"rendercore/uniform"
)

// Config holds the per-frame tunables this pipeline leaves to the host: exposure
// and bloom strength/threshold aren't fixed constants, they're scene/art
// direction choices.
type Config struct {
	Exposure       float32
	BloomThreshold float32
	BloomStrength  float32
	ClearColor     core.Color
}

func DefaultConfig() Config {
	return Config{
		Exposure:       1.0,
		BloomThreshold: 1.0,
		BloomStrength:  0.05,
		ClearColor:     core.Color{R: 0, G: 0, B: 0, A: 1},
	}
}

// Renderer owns every program and uniform buffer the pipeline shares across
// viewports, plus one instance each of the per-subsystem managers the
// pipeline stages delegate to. A single Renderer can drive many Viewports
// (each with its own ViewportData) against one scene.
type Renderer struct {
	device *rhi.Device

	drawer  *meshesdrawer.Drawer
	shadows *shadowing.Manager
	bloom   *bloom.Pass
	tonemap *tonemap.Pass

	// IBL is optional: a scene with no baked environment renders with no
	// ambient contribution at all rather than failing.
	IBL *ibl.Preprocessor

	// Overlay is optional: when set, Render draws the skybox (if IBL has
	// baked an environment) and every PathTranslucent/PathUnlit node into
	// the forward target after deferred lighting and before post-process.
	// A host that wants its own gizmo/GUI draws in that same gap instead
	// can leave Overlay nil and drive ForwardOverlayPass itself.
	Overlay *Overlay

	gbufferProgram        resource.Handle
	gbufferSkinnedProgram resource.Handle
	lightingProgram       resource.Handle

	cameraUBO   resource.Handle
	lightsUBO   resource.Handle
	materialUBO resource.Handle

	Config Config
}

func NewRenderer(device *rhi.Device) (*Renderer, error) {
	r := &Renderer{
		device: device,
		drawer: meshesdrawer.NewDrawer(device),
		Config: DefaultConfig(),
	}

	var err error
	r.shadows, err = shadowing.NewManager(device)
	if err != nil {
		return nil, fmt.Errorf("viewport: shadow manager: %w", err)
	}
	r.bloom, err = bloom.NewPass(device)
	if err != nil {
		return nil, fmt.Errorf("viewport: bloom pass: %w", err)
	}
	r.tonemap, err = tonemap.NewPass(device)
	if err != nil {
		return nil, fmt.Errorf("viewport: tonemap pass: %w", err)
	}

	gbufferState := rhi.DefaultPipelineState()
	r.gbufferProgram, err = device.CreateShaderProgram(gbufferVertSrc, gbufferFragSrc, gbufferState)
	if err != nil {
		return nil, fmt.Errorf("viewport: gbuffer program: %w", err)
	}
	r.gbufferSkinnedProgram, err = device.CreateShaderProgram(gbufferSkinnedVertSrc, gbufferFragSrc, gbufferState)
	if err != nil {
		return nil, fmt.Errorf("viewport: gbuffer skinned program: %w", err)
	}
	r.lightingProgram, err = device.CreateShaderProgram(lightingVertSrc, lightingFragSrc, rhi.PipelineState{})
	if err != nil {
		return nil, fmt.Errorf("viewport: lighting program: %w", err)
	}

	r.cameraUBO = device.CreateUniformBuffer(uniform.BindingCamera, int(unsafe.Sizeof(uniform.CameraBlock{})))
	r.lightsUBO = device.CreateUniformBuffer(uniform.BindingLights, int(unsafe.Sizeof(uniform.LightsBlock{})))
	r.materialUBO = device.CreateUniformBuffer(uniform.BindingMaterial, int(unsafe.Sizeof(uniform.MaterialBlock{})))

	return r, nil
}

// Render walks the full per-frame sequence against vp, reading scn's node
// graph and light list: snapshot + shadows, camera block, deferred geometry,
// deferred lighting, forward overlay (skybox + translucent/unlit geometry,
// if r.Overlay is set), then bloom and tone-mapping if vp wants
// post-process. scn.Root's world matrices must already be current — a
// scene-graph update pass owns that, not the renderer.
func (r *Renderer) Render(vp *Viewport, scn *scene.Scene) {
	if vp.Width == 0 || vp.Height == 0 {
		return
	}

	r.drawer.BeginFrame(scn.Root)
	r.drawer.UploadAll()

	camView := vp.Camera.View()
	var frustum spatial.Frustum
	frustum.UpdateFromCamera(camView, vp.Camera.AspectRatio)

	depthCasters := toDepthCasters(r.drawer.Casters())
	r.shadows.Render(depthCasters, scn.Lights, camView, vp.Camera.AspectRatio)

	r.writeCameraBlock(vp.Camera)

	// Lights block is written once per frame, after shadow matrices are
	// known, so the cascade/spot light-space matrices it carries are final.
	r.writeLightsBlock(scn.Lights)

	r.renderGBuffer(vp, frustum)
	r.renderLighting(vp)

	if r.Overlay != nil {
		r.ForwardOverlayPass(vp, func() {
			if r.IBL != nil {
				r.Overlay.DrawSkybox(vp.Camera.GetViewMatrix(), vp.Camera.GetProjectionMatrix(), r.IBL.EnvCubemap)
			}
			r.Overlay.DrawForward(r.drawer, vp.Camera.GetViewProjectionMatrix(), frustum, vp.Camera.IsOrthographic)
		})
	}

	if vp.UsePostProcess {
		r.postProcess(vp)
	}
}

// ForwardOverlayPass reopens vp.Data.ForwardFBO without clearing it and
// runs draw, sharing the G-buffer's depth attachment so overlay geometry
// still occludes against (and is occluded by) whatever the deferred pass
// already wrote. An editor or game host can call this directly with its own
// draw func to add gizmos or GUI into the same gap Render uses for
// r.Overlay, instead of routing everything through Overlay.
func (r *Renderer) ForwardOverlayPass(vp *Viewport, draw func()) {
	r.device.BeginRenderPass(vp.Data.ForwardFBO, 0, 0, int32(vp.Width), int32(vp.Height), 0, core.Color{})
	draw()
	r.device.EndRenderPass()
}

// Shadows exposes the shadow manager so a host can tune cascade settings
// (e.g. from config.RenderConfig) without Renderer needing a setter for
// every field Manager has.
func (r *Renderer) Shadows() *shadowing.Manager { return r.shadows }

func toDepthCasters(casters []meshesdrawer.Caster) []shadowing.DepthCaster {
	out := make([]shadowing.DepthCaster, len(casters))
	for i, c := range casters {
		out[i] = shadowing.DepthCaster{Model: c.Model, World: c.World, Skinned: c.Skinned, Palette: c.Palette}
	}
	return out
}

func (r *Renderer) writeCameraBlock(cam *Camera) {
	view := cam.GetViewMatrix()
	proj := cam.GetProjectionMatrix()
	block := uniform.CameraBlock{
		View:      view,
		Proj:      proj,
		InvView:   view.Inverse(),
		InvProj:   proj.Inverse(),
		CameraPos: cam.Position,
		Near:      cam.Near,
		Far:       cam.Far,
	}
	r.device.UpdateUniformBuffer(r.cameraUBO, 0, unsafe.Pointer(&block), int(unsafe.Sizeof(block)))
}

func (r *Renderer) writeLightsBlock(lights []*scene.Light) {
	var block uniform.LightsBlock
	for _, l := range lights {
		switch l.Kind {
		case scene.LightPoint:
			if block.PointCount >= uniform.MaxPointLights {
				continue
			}
			i := block.PointCount
			block.Point[i] = uniform.PointLightData{
				Position:        std140Vec3(l.Position),
				Color:           colorBlock(l.Color),
				Intensity:       l.Intensity,
				Radius:          l.Radius(),
				IsCastingShadow: boolU32(l.CastsShadow),
			}
			block.PointCount++
		case scene.LightSpot:
			if block.SpotCount >= uniform.MaxSpotLights {
				continue
			}
			i := block.SpotCount
			block.Spot[i] = uniform.SpotLightData{
				Position:        std140Vec3(l.Position),
				Direction:       std140Vec3(l.Direction),
				Color:           colorBlock(l.Color),
				Intensity:       l.Intensity,
				Radius:          l.Radius(),
				CosCutoff:       cosf(l.SpotInnerAngle),
				CosOuterCutoff:  cosf(l.SpotAngle),
				IsCastingShadow: boolU32(l.CastsShadow),
			}
			block.SpotCount++
		case scene.LightDirectional:
			if block.DirCount >= uniform.MaxDirectionalLights {
				continue
			}
			i := block.DirCount
			block.Dir[i] = uniform.DirectionalLightData{
				Direction:       std140Vec3(l.Direction),
				Color:           colorBlock(l.Color),
				Intensity:       l.Intensity,
				IsCastingShadow: boolU32(l.CastsShadow),
			}
			block.DirCount++
		}
	}

	block.SpotLightSpaceMatrix = r.shadows.SpotLightSpaceMatrix
	for i, m := range r.shadows.DirLightSpaceMatrix {
		if i >= len(block.DirLightSpaceMatrix) {
			break
		}
		block.DirLightSpaceMatrix[i] = m
	}

	r.device.UpdateUniformBuffer(r.lightsUBO, 0, unsafe.Pointer(&block), int(unsafe.Sizeof(block)))
}

func colorBlock(c core.Color) math.Vec3 {
	return math.Vec3{X: c.R, Y: c.G, Z: c.B}
}

// std140Vec3 widens a Vec3 to the 16-byte-padded layout a std140 vec3 needs
// when another vec3 immediately follows it in the block.
func std140Vec3(v math.Vec3) uniform.Std140Vec3 {
	return uniform.Std140Vec3{X: v.X, Y: v.Y, Z: v.Z}
}
func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func (r *Renderer) renderGBuffer(vp *Viewport, frustum spatial.Frustum) {
	data := vp.Data
	r.device.BeginRenderPass(data.GBufferFBO, 0, 0, int32(vp.Width), int32(vp.Height),
		rhi.ClearColor|rhi.ClearDepth|rhi.ClearStencil, core.Color{})

	r.device.UseShader(r.gbufferProgram)
	r.drawer.DrawStatic(r.gbufferProgram, frustum, vp.Camera.IsOrthographic, meshesdrawer.OpaqueOnly, r.bindMaterial(r.gbufferProgram))

	r.device.UseShader(r.gbufferSkinnedProgram)
	r.drawer.DrawSkinned(r.gbufferSkinnedProgram, meshesdrawer.OpaqueOnly, r.bindMaterial(r.gbufferSkinnedProgram))

	r.device.EndRenderPass()
}

// bindMaterial returns the per-draw material binder DrawStatic/DrawSkinned
// call before each draw: upload the material's scalar channels to binding 4
// and bind whichever optional textures are present to samplers 0-4.
func (r *Renderer) bindMaterial(program resource.Handle) func(*scene.Material) {
	return func(mat *scene.Material) {
		if mat == nil {
			mat = scene.DefaultMaterial()
		}
		block := uniform.MaterialBlock{
			Albedo:           [4]float32{mat.Albedo.R, mat.Albedo.G, mat.Albedo.B, mat.Albedo.A},
			EmissiveColor:    [4]float32{mat.EmissiveColor.R, mat.EmissiveColor.G, mat.EmissiveColor.B, mat.EmissiveColor.A},
			Metallic:         mat.Metallic,
			Roughness:        mat.Roughness,
			Reflectance:      mat.Reflectance,
			AmbientOcclusion: mat.AmbientOcclusion,
			EmissiveStrength: mat.EmissiveStrength,
		}
		if mat.AlbedoTexture != nil {
			block.HasAlbedoTex = 1
			r.device.BindTexture(uniform.SamplerMaterialBase+0, r.device.UploadTexture2D(mat.AlbedoTexture))
		}
		if mat.NormalTexture != nil {
			block.HasNormalTex = 1
			r.device.BindTexture(uniform.SamplerMaterialBase+1, r.device.UploadTexture2D(mat.NormalTexture))
		}
		if mat.MetallicRoughnessTexture != nil {
			block.HasMetallicRoughnessTex = 1
			r.device.BindTexture(uniform.SamplerMaterialBase+2, r.device.UploadTexture2D(mat.MetallicRoughnessTexture))
		}
		if mat.AmbientOcclusionTexture != nil {
			block.HasAOTex = 1
			r.device.BindTexture(uniform.SamplerMaterialBase+3, r.device.UploadTexture2D(mat.AmbientOcclusionTexture))
		}
		if mat.EmissiveTexture != nil {
			block.HasEmissiveTex = 1
			r.device.BindTexture(uniform.SamplerMaterialBase+4, r.device.UploadTexture2D(mat.EmissiveTexture))
		}
		r.device.UpdateUniformBuffer(r.materialUBO, 0, unsafe.Pointer(&block), int(unsafe.Sizeof(block)))
		r.device.SetUniformInt(program, "albedoTex", uniform.SamplerMaterialBase+0)
		r.device.SetUniformInt(program, "normalTex", uniform.SamplerMaterialBase+1)
		r.device.SetUniformInt(program, "metallicRoughnessTex", uniform.SamplerMaterialBase+2)
		r.device.SetUniformInt(program, "aoTex", uniform.SamplerMaterialBase+3)
		r.device.SetUniformInt(program, "emissiveTex", uniform.SamplerMaterialBase+4)
	}
}

func (r *Renderer) renderLighting(vp *Viewport) {
	data := vp.Data
	r.device.BeginRenderPass(data.ForwardFBO, 0, 0, int32(vp.Width), int32(vp.Height), rhi.ClearColor, r.Config.ClearColor)
	r.device.UseShader(r.lightingProgram)

	r.device.BindTexture(uniform.SamplerGBufferBase+0, data.GNormal)
	r.device.BindTexture(uniform.SamplerGBufferBase+1, data.GAlbedo)
	r.device.BindTexture(uniform.SamplerGBufferBase+2, data.GMatParams)
	r.device.BindTexture(uniform.SamplerGBufferBase+3, data.GAO)
	r.device.BindTexture(uniform.SamplerGBufferBase+4, data.GEmissive)
	r.device.BindTexture(uniform.SamplerGBufferBase+5, data.GDepth)
	r.device.SetUniformInt(r.lightingProgram, "gNormal", uniform.SamplerGBufferBase+0)
	r.device.SetUniformInt(r.lightingProgram, "gAlbedo", uniform.SamplerGBufferBase+1)
	r.device.SetUniformInt(r.lightingProgram, "gMatParams", uniform.SamplerGBufferBase+2)
	r.device.SetUniformInt(r.lightingProgram, "gAO", uniform.SamplerGBufferBase+3)
	r.device.SetUniformInt(r.lightingProgram, "gEmissive", uniform.SamplerGBufferBase+4)
	r.device.SetUniformInt(r.lightingProgram, "gDepth", uniform.SamplerGBufferBase+5)

	if r.IBL != nil {
		r.device.BindTexture(uniform.SamplerIBLIrradiance, r.IBL.IrradianceMap)
		r.device.BindTexture(uniform.SamplerIBLPrefilter, r.IBL.PrefilteredRadiance)
		r.device.BindTexture(uniform.SamplerIBLBRDFLUT, r.IBL.BRDFLUT)
	}
	r.device.SetUniformInt(r.lightingProgram, "iblIrradiance", uniform.SamplerIBLIrradiance)
	r.device.SetUniformInt(r.lightingProgram, "iblPrefilter", uniform.SamplerIBLPrefilter)
	r.device.SetUniformInt(r.lightingProgram, "iblBRDFLUT", uniform.SamplerIBLBRDFLUT)

	r.device.BindTexture(uniform.SamplerShadowDirectional, r.shadows.DirectionalArray())
	r.device.BindTexture(uniform.SamplerShadowSpot, r.shadows.SpotArray())
	r.device.BindTexture(uniform.SamplerShadowPoint, r.shadows.PointArray())
	r.device.SetUniformInt(r.lightingProgram, "shadowDirectional", uniform.SamplerShadowDirectional)
	r.device.SetUniformInt(r.lightingProgram, "shadowSpot", uniform.SamplerShadowSpot)
	r.device.SetUniformInt(r.lightingProgram, "shadowPoint", uniform.SamplerShadowPoint)

	boundaries := r.shadows.CascadeBoundaries(vp.Camera.Near, vp.Camera.Far)
	splits := make([]float32, 5)
	copy(splits, boundaries)
	r.device.SetUniformInt(r.lightingProgram, "cascadeCount", int32(r.shadows.DirectionalCascadeLevel))
	for i, s := range splits {
		r.device.SetUniformFloat(r.lightingProgram, fmt.Sprintf("cascadeSplits[%d]", i), s)
	}

	r.device.DrawFullscreenTriangle()
	r.device.EndRenderPass()
}

func (r *Renderer) postProcess(vp *Viewport) {
	data := vp.Data
	r.bloom.Resize(vp.Width, vp.Height)
	r.bloom.Render(data.ForwardColor, r.Config.BloomThreshold, r.Config.BloomStrength)

	r.device.BeginRenderPass(data.LDRFBO, 0, 0, int32(vp.Width), int32(vp.Height), rhi.ClearColor, core.Color{})
	r.tonemap.Render(data.ForwardColor, r.bloom.Result(), r.Config.Exposure, r.Config.BloomStrength)
	r.device.EndRenderPass()
}

func cosf(radians float32) float32 {
	return float32(stdmath.Cos(float64(radians)))
}
