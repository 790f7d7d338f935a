// Package tonemap resolves the forward HDR color target (plus bloom) down
// to LDR, grounded on the reference renderer's PostProcessFBO composite step
// (internal/opengl/postprocess.go) but swapping Reinhard for ACES per
// this pipeline.
package tonemap

import (
	"fmt"

	"rendercore/resource"
	"rendercore/rhi"
	"rendercore/uniform"
)

type Pass struct {
	device  *rhi.Device
	program resource.Handle
}

func NewPass(device *rhi.Device) (*Pass, error) {
	program, err := device.CreateShaderProgram(tonemapVertSrc, tonemapFragSrc, rhi.PipelineState{})
	if err != nil {
		return nil, fmt.Errorf("tonemap: %w", err)
	}
	return &Pass{device: device, program: program}, nil
}

// Render draws the fullscreen ACES composite into whatever framebuffer the
// caller has already bound via BeginRenderPass (the ViewportData LDR
// target). bloomResult may be the zero Handle, in which case bloom is
// skipped entirely.
func (p *Pass) Render(hdrColor, bloomResult resource.Handle, exposure, bloomStrength float32) {
	p.device.UseShader(p.program)
	p.device.BindTexture(uniform.SamplerHDRColor, hdrColor)
	hasBloom := bloomResult.IsValid()
	if hasBloom {
		p.device.BindTexture(uniform.SamplerBloomResult, bloomResult)
	}
	p.device.SetUniformFloat(p.program, "exposure", exposure)
	p.device.SetUniformFloat(p.program, "bloomStrength", bloomStrength)
	p.device.SetUniformBool(p.program, "hasBloom", hasBloom)
	p.device.DrawFullscreenTriangle()
}
