// Package ibl precomputes the four image-based-lighting textures the
// deferred lighting pass samples for ambient PBR: an environment cubemap,
// a diffuse irradiance cubemap, a roughness-prefiltered radiance cubemap
// (split-sum, GGX importance sampled, 5 mips), and a BRDF integration LUT.
// Grounded on original_source/Core/src/rendering/render_systems/skybox_renderer.cpp's
// bake-once-at-load pipeline and the reference renderer's internal/opengl/skybox.go's
// cube-draw idiom, generalized from a procedural gradient sky to an
// HDR-equirectangular source.
package ibl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.3-core/gl"

	"rendercore/asset"
	"rendercore/core"
	"rendercore/math"
	"rendercore/resource"
	"rendercore/rhi"
)

const (
	EnvCubeSize        = 512
	IrradianceCubeSize = 32
	PrefilterCubeSize  = 128
	PrefilterMipCount  = 5
	BRDFLUTSize        = 512
)

// unitCubeVerts are the reference renderer's skyboxVerts (internal/opengl/skybox.go),
// carried over unchanged: 36 positions, CCW from the outside, used here as
// the capture geometry every cubemap-face render draws.
var unitCubeVerts = []float32{
	-1, -1, -1, 1, 1, -1, 1, -1, -1,
	1, 1, -1, -1, -1, -1, -1, 1, -1,
	-1, -1, 1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, -1, 1,
	-1, 1, 1, -1, 1, -1, -1, -1, -1,
	-1, -1, -1, -1, -1, 1, -1, 1, 1,
	1, 1, 1, 1, -1, -1, 1, 1, -1,
	1, -1, -1, 1, 1, 1, 1, -1, 1,
	-1, -1, -1, 1, -1, -1, 1, -1, 1,
	1, -1, 1, -1, -1, 1, -1, -1, -1,
	-1, 1, -1, 1, 1, 1, 1, 1, -1,
	1, 1, 1, -1, 1, -1, -1, 1, 1,
}

var captureDirs = [6]math.Vec3{
	{X: 1, Y: 0, Z: 0}, {X: -1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0}, {X: 0, Y: -1, Z: 0},
	{X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: -1},
}
var captureUps = [6]math.Vec3{
	{X: 0, Y: -1, Z: 0}, {X: 0, Y: -1, Z: 0},
	{X: 0, Y: 0, Z: 1}, {X: 0, Y: 0, Z: -1},
	{X: 0, Y: -1, Z: 0}, {X: 0, Y: -1, Z: 0},
}

// Preprocessor owns the four baked IBL textures and the programs used to
// produce them. Bake is normally called once per skybox change, not per
// frame.
type Preprocessor struct {
	device *rhi.Device

	EnvCubemap        resource.Handle
	IrradianceMap     resource.Handle
	PrefilteredRadiance resource.Handle
	BRDFLUT           resource.Handle

	cube resource.Handle
	fbo  resource.Handle

	equirectProgram    resource.Handle
	irradianceProgram  resource.Handle
	prefilterProgram   resource.Handle
	brdfProgram        resource.Handle
}

func NewPreprocessor(device *rhi.Device) (*Preprocessor, error) {
	p := &Preprocessor{device: device}
	p.cube = device.CreatePositionModel(unitCubeVerts)
	p.fbo = device.CreateFramebuffer()

	var err error
	p.equirectProgram, err = device.CreateShaderProgram(cubeCaptureVertSrc, equirectToCubeFragSrc, rhi.PipelineState{})
	if err != nil {
		return nil, err
	}
	p.irradianceProgram, err = device.CreateShaderProgram(cubeCaptureVertSrc, irradianceFragSrc, rhi.PipelineState{})
	if err != nil {
		return nil, err
	}
	p.prefilterProgram, err = device.CreateShaderProgram(cubeCaptureVertSrc, prefilterFragSrc, rhi.PipelineState{})
	if err != nil {
		return nil, err
	}
	p.brdfProgram, err = device.CreateShaderProgram(brdfLUTVertSrc, brdfLUTFragSrc, rhi.PipelineState{})
	if err != nil {
		return nil, err
	}

	p.EnvCubemap = device.CreateCubemap(EnvCubeSize, 1, rhi.FormatRGB16F)
	p.IrradianceMap = device.CreateCubemap(IrradianceCubeSize, 1, rhi.FormatRGB16F)
	p.PrefilteredRadiance = device.CreateCubemap(PrefilterCubeSize, PrefilterMipCount, rhi.FormatRGB16F)
	p.BRDFLUT = device.CreateTexture2D(BRDFLUTSize, BRDFLUTSize, rhi.FormatRG16F, nil)

	return p, nil
}

// Bake renders all four IBL textures from an equirectangular HDR source
// already uploaded as a plain 2D texture, in dependency order: environment
// cube first (everything else samples it), then irradiance, prefiltered
// radiance, and the BRDF LUT (which doesn't depend on the source at all,
// but is baked here for convenience since it only ever needs doing once).
func (p *Preprocessor) Bake(equirect resource.Handle) {
	captureProj := math.Mat4Perspective(1.5707963267948966, 1.0, 0.1, 10)

	p.device.BindTexture(0, equirect)
	p.renderCubeFaces(p.equirectProgram, p.EnvCubemap, EnvCubeSize, 0, captureProj, func(face int) {
		p.device.SetUniformInt(p.equirectProgram, "equirect", 0)
	})

	p.device.BindTexture(0, p.EnvCubemap)
	p.renderCubeFaces(p.irradianceProgram, p.IrradianceMap, IrradianceCubeSize, 0, captureProj, func(face int) {
		p.device.SetUniformInt(p.irradianceProgram, "environmentMap", 0)
	})

	p.device.UseShader(p.prefilterProgram)
	p.device.SetUniformInt(p.prefilterProgram, "environmentMap", 0)
	p.device.SetUniformFloat(p.prefilterProgram, "envResolution", float32(EnvCubeSize))
	for mip := 0; mip < PrefilterMipCount; mip++ {
		roughness := float32(mip) / float32(PrefilterMipCount-1)
		p.device.SetUniformFloat(p.prefilterProgram, "roughness", roughness)
		mipSize := PrefilterCubeSize >> uint(mip)
		p.device.BindTexture(0, p.EnvCubemap)
		p.renderCubeFaces(p.prefilterProgram, p.PrefilteredRadiance, mipSize, mip, captureProj, nil)
	}

	p.bakeBRDFLUT()
}

func (p *Preprocessor) renderCubeFaces(program, target resource.Handle, size, mip int, proj math.Mat4, perFace func(face int)) {
	p.device.UseShader(program)
	for face := 0; face < 6; face++ {
		view := math.Mat4LookAt(math.Vec3{}, captureDirs[face], captureUps[face])
		vp := view.Mul(proj)
		p.device.SetUniformMat4(program, "captureViewProj", vp)
		if perFace != nil {
			perFace(face)
		}

		p.device.AttachTextureFaceMip(p.fbo, gl.COLOR_ATTACHMENT0, target, int32(face), int32(mip))
		p.device.FinalizeFramebuffer(p.fbo)
		p.device.BeginRenderPass(p.fbo, 0, 0, int32(size), int32(size), rhi.ClearColor, core.Color{})
		p.device.DrawModel(gl.TRIANGLES, p.cube)
		p.device.EndRenderPass()
	}
}

// BakeFromFile loads a Radiance .hdr equirectangular source off disk,
// uploads it as a scratch float texture, runs Bake, and frees the scratch
// texture — the convenience path engine.Engine.EnableIBL uses instead of
// managing the equirect upload itself.
func (p *Preprocessor) BakeFromFile(path string) error {
	hdr, err := asset.LoadHDR(path)
	if err != nil {
		return fmt.Errorf("ibl bake %q: %w", path, err)
	}
	if len(hdr.Pixels) == 0 {
		return fmt.Errorf("ibl bake %q: empty image", path)
	}
	equirect := p.device.CreateTexture2D(hdr.Width, hdr.Height, rhi.FormatRGB32F, unsafe.Pointer(&hdr.Pixels[0]))
	defer p.device.DestroyTexture(equirect)
	p.Bake(equirect)
	return nil
}

func (p *Preprocessor) bakeBRDFLUT() {
	p.device.AttachTexture(p.fbo, gl.COLOR_ATTACHMENT0, p.BRDFLUT)
	p.device.FinalizeFramebuffer(p.fbo)
	p.device.BeginRenderPass(p.fbo, 0, 0, BRDFLUTSize, BRDFLUTSize, rhi.ClearColor, core.Color{})
	p.device.UseShader(p.brdfProgram)
	p.device.DrawFullscreenTriangle()
	p.device.EndRenderPass()
}
