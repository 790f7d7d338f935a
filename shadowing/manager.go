// Package shadowing allocates the directional (CSM), spot, and point
// shadow-map storage and renders depth from every shadow-casting light's
// camera into its reserved texture/layer, by convention. It is handed a
// flat snapshot of what to draw each frame rather than walking the scene
// itself, so it stays decoupled from meshesdrawer's octree/frustum culling
// policy — grounded on original_source/Core/include/rendering/light_manager.hpp's
// separation between "what casts" (scene-owned) and "how a cascade is
// fitted and rendered" (this package).
package shadowing

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.3-core/gl"

	"rendercore/core"
	"rendercore/math"
	"rendercore/resource"
	"rendercore/rhi"
	"rendercore/scene"
	"rendercore/spatial"
	"rendercore/uniform"
)

// DepthCaster is one draw submitted to every shadow-casting light's depth
// pass: a model handle plus the world matrix (and, for skinned meshes, the
// current bone palette) needed to transform it into light-clip space.
type DepthCaster struct {
	Model   resource.Handle
	World   math.Mat4
	Skinned bool
	Palette []math.Mat4
}

const (
	DirectionalMapSize = 4096
	SpotMapSize        = 1024
	PointMapSize       = 1024
)

// Manager owns the three shadow-map atlases and the depth-only programs
// used to fill them.
type Manager struct {
	device *rhi.Device

	dirArray resource.Handle
	dirFBO   resource.Handle

	spotArray resource.Handle
	spotFBO   resource.Handle

	pointArray        resource.Handle
	pointScratchDepth resource.Handle
	pointFBO          resource.Handle

	depthProgram        resource.Handle // positions-only, static casters
	depthSkinnedProgram resource.Handle
	pointDepthProgram   resource.Handle

	// DirectionalCascadeLevel mirrors the open question: the
	// source runs DirectionalCascadeLevel+1 iterations, the extra one
	// being a catch-all slice from the last split out to the far plane.
	DirectionalCascadeLevel int
	ZCascadeMultiplier      float32

	nextSpotSlot  int
	nextPointSlot int

	skinnedUBO resource.Handle

	SpotLightSpaceMatrix [uniform.MaxSpotLights]math.Mat4
	DirLightSpaceMatrix  [uniform.CascadeCount + 1]math.Mat4
}

func NewManager(device *rhi.Device) (*Manager, error) {
	m := &Manager{
		device:                  device,
		DirectionalCascadeLevel: uniform.CascadeCount,
		ZCascadeMultiplier:      10,
	}

	m.dirArray = device.CreateDepthTextureArray(DirectionalMapSize, DirectionalMapSize, m.DirectionalCascadeLevel+1)
	m.dirFBO = device.CreateFramebuffer()

	m.spotArray = device.CreateDepthTextureArray(SpotMapSize, SpotMapSize, uniform.MaxSpotLights)
	m.spotFBO = device.CreateFramebuffer()

	m.pointArray = device.CreateCubemapArray(PointMapSize, uniform.MaxPointLights, rhi.FormatR32F)
	m.pointScratchDepth = device.CreateDepthTexture2D(PointMapSize)
	m.pointFBO = device.CreateFramebuffer()

	m.skinnedUBO = device.CreateUniformBuffer(uniform.BindingSkinned, int(unsafe.Sizeof(uniform.SkinnedBlock{})))

	var err error
	m.depthProgram, err = device.CreateShaderProgram(depthVertSrc, depthFragSrc, rhi.PipelineState{DepthTest: true, DepthFunc: 0x0201 /* GL_LESS */, DepthWrite: true})
	if err != nil {
		return nil, err
	}
	m.depthSkinnedProgram, err = device.CreateShaderProgram(depthSkinnedVertSrc, depthFragSrc, rhi.PipelineState{DepthTest: true, DepthFunc: 0x0201, DepthWrite: true})
	if err != nil {
		return nil, err
	}
	m.pointDepthProgram, err = device.CreateShaderProgram(pointVertSrc, pointFragSrc, rhi.PipelineState{DepthTest: true, DepthFunc: 0x0201, DepthWrite: true})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DirectionalArray/SpotArray/PointArray expose the backing textures for the
// deferred lighting pass to bind at samplers 15/16/17.
func (m *Manager) DirectionalArray() resource.Handle { return m.dirArray }
func (m *Manager) SpotArray() resource.Handle        { return m.spotArray }
func (m *Manager) PointArray() resource.Handle       { return m.pointArray }

// Render draws depth for every shadow-casting light in lights, in the
// order directional, spot, point, writing CSM/spot light-space matrices
// into m's fields for the caller to copy into the Lights uniform block
// afterward — the lights block must be written only after shadow rendering
// completes, since it carries the matrices computed here.
func (m *Manager) Render(casters []DepthCaster, lights []*scene.Light, viewerCam spatial.CameraView, aspect float32) {
	m.nextSpotSlot = 0
	m.nextPointSlot = 0
	for _, l := range lights {
		if !l.CastsShadow {
			continue
		}
		switch l.Kind {
		case scene.LightDirectional:
			m.renderDirectional(casters, l, viewerCam, aspect)
		case scene.LightSpot:
			m.renderSpot(casters, l)
		case scene.LightPoint:
			m.renderPoint(casters, l)
		}
	}
}

// CascadeBoundaries returns the near/far planes CascadeViewProj fit each
// split against — the lighting shader needs the same boundaries to pick
// which cascade a fragment's view-space depth falls into.
func (m *Manager) CascadeBoundaries(near, far float32) []float32 {
	boundaries := make([]float32, 0, m.DirectionalCascadeLevel+2)
	boundaries = append(boundaries, near)
	for _, frac := range SplitFractions {
		boundaries = append(boundaries, far*frac)
	}
	boundaries = append(boundaries, far)
	return boundaries
}

func (m *Manager) renderDirectional(casters []DepthCaster, l *scene.Light, viewerCam spatial.CameraView, aspect float32) {
	boundaries := m.CascadeBoundaries(viewerCam.Near, viewerCam.Far)

	for i := 0; i < m.DirectionalCascadeLevel+1 && i+1 < len(boundaries); i++ {
		vp := CascadeViewProj(viewerCam, aspect, boundaries[i], boundaries[i+1], l.Direction, m.ZCascadeMultiplier)
		m.DirLightSpaceMatrix[i] = vp
		m.device.AttachTextureLayer(m.dirFBO, gl.DEPTH_ATTACHMENT, m.dirArray, int32(i))
		m.device.FinalizeFramebuffer(m.dirFBO)
		m.device.BeginRenderPass(m.dirFBO, 0, 0, DirectionalMapSize, DirectionalMapSize, rhi.ClearDepth, core.Color{})
		m.drawCasters(casters, vp)
		m.device.EndRenderPass()
	}
}

func (m *Manager) renderSpot(casters []DepthCaster, l *scene.Light) {
	idx := m.nextSpotSlot
	if idx >= uniform.MaxSpotLights {
		return
	}
	m.nextSpotSlot++

	up := math.Vec3{X: 0, Y: 1, Z: 0}
	view := math.Mat4LookAt(l.Position, l.Position.Add(l.Direction), up)
	proj := math.Mat4Perspective(2*l.SpotAngle, 1.0, maxf(l.Near, 0.05), l.Far)
	vp := view.Mul(proj)
	m.SpotLightSpaceMatrix[idx] = vp

	m.device.AttachTextureLayer(m.spotFBO, gl.DEPTH_ATTACHMENT, m.spotArray, int32(idx))
	m.device.FinalizeFramebuffer(m.spotFBO)
	m.device.BeginRenderPass(m.spotFBO, 0, 0, SpotMapSize, SpotMapSize, rhi.ClearDepth, core.Color{})
	m.drawCasters(casters, vp)
	m.device.EndRenderPass()
}

var pointFaceDirs = [6]math.Vec3{
	{X: 1, Y: 0, Z: 0}, {X: -1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0}, {X: 0, Y: -1, Z: 0},
	{X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: -1},
}

// pointFaceUps follows the conventional cubemap basis: +Y uses
// up=+Z, -Y uses up=-Z, the other four faces use up=-Y.
var pointFaceUps = [6]math.Vec3{
	{X: 0, Y: -1, Z: 0}, {X: 0, Y: -1, Z: 0},
	{X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: -1},
	{X: 0, Y: -1, Z: 0}, {X: 0, Y: -1, Z: 0},
}

func (m *Manager) renderPoint(casters []DepthCaster, l *scene.Light) {
	idx := m.nextPointSlot
	if idx >= uniform.MaxPointLights {
		return
	}
	m.nextPointSlot++

	proj := math.Mat4Perspective(quarterTurn*2, 1.0, maxf(l.Near, 0.05), l.Far)
	m.device.UseShader(m.pointDepthProgram)
	m.device.SetUniformVec3(m.pointDepthProgram, "lightPos", l.Position)

	for face := 0; face < 6; face++ {
		view := math.Mat4LookAt(l.Position, l.Position.Add(pointFaceDirs[face]), pointFaceUps[face])
		vp := view.Mul(proj)

		// The scratch depth texture is plain 2D, not a cube: bind it as
		// the regular depth attachment (shared across faces/lights) and
		// bind this face/layer of the distance cubemap array as the
		// color attachment.
		m.device.AttachTexture(m.pointFBO, gl.DEPTH_ATTACHMENT, m.pointScratchDepth)
		m.device.AttachTextureLayer(m.pointFBO, gl.COLOR_ATTACHMENT0, m.pointArray, int32(idx*6+face))
		m.device.FinalizeFramebuffer(m.pointFBO)

		m.device.BeginRenderPass(m.pointFBO, 0, 0, PointMapSize, PointMapSize, rhi.ClearDepth|rhi.ClearColor, core.Color{R: 1e30, G: 1e30, B: 1e30, A: 1})
		for _, c := range casters {
			m.device.SetUniformMat4(m.pointDepthProgram, "model", c.World)
			m.device.SetUniformMat4(m.pointDepthProgram, "lightViewProj", vp)
			m.device.DrawModel(gl.TRIANGLES, c.Model)
		}
		m.device.EndRenderPass()
	}
}

func (m *Manager) drawCasters(casters []DepthCaster, lightVP math.Mat4) {
	m.device.UseShader(m.depthProgram)
	for _, c := range casters {
		if c.Skinned {
			continue
		}
		m.device.SetUniformMat4(m.depthProgram, "lightMVP", c.World.Mul(lightVP))
		m.device.DrawModel(gl.TRIANGLES, c.Model)
	}
	if hasSkinned(casters) {
		m.device.UseShader(m.depthSkinnedProgram)
		for _, c := range casters {
			if !c.Skinned {
				continue
			}
			m.device.SetUniformMat4(m.depthSkinnedProgram, "lightMVP", c.World.Mul(lightVP))
			writeSkinnedBlock(m.device, m.skinnedUBO, c.Palette)
			m.device.DrawModel(gl.TRIANGLES, c.Model)
		}
	}
}

// writeSkinnedBlock uploads a bone palette into the SkinnedBlock UBO at
// binding 5, zero-padding the rest of the fixed-size array. boneMatrices is
// a real std140 block in depthSkinnedVertSrc, not a plain uniform array.
func writeSkinnedBlock(device *rhi.Device, ubo resource.Handle, palette []math.Mat4) {
	var block uniform.SkinnedBlock
	copy(block.BoneMatrices[:], palette)
	device.UpdateUniformBuffer(ubo, 0, unsafe.Pointer(&block), int(unsafe.Sizeof(block)))
}

func hasSkinned(casters []DepthCaster) bool {
	for _, c := range casters {
		if c.Skinned {
			return true
		}
	}
	return false
}

// quarterTurn is pi/2 radians, used to build the 90-degree cube-face FOV
// each point-shadow face is rendered with.
const quarterTurn = 1.5707963267948966

