// Package bloom extracts over-threshold HDR pixels from the forward color
// target and spreads them across a mip chain, grounded on the reference renderer's
// internal/opengl/postprocess.go PostProcessFBO (bright-pass + separable
// blur + additive composite, all ping-ponging half-resolution FBOs) but
// reworked into a compute-shader dispatch chain building a 5-mip
// downsample/upsample pyramid rather than a fixed-radius blur: a single
// small blur radius misses large bright regions, and a mip chain gets that
// for free by operating at progressively lower resolutions.
package bloom

import (
	"fmt"

	"rendercore/math"
	"rendercore/resource"
	"rendercore/rhi"
)

const MipCount = 5

// Pass owns the mip-chain texture and the three compute programs
// (threshold, downsample, upsample) that fill it each frame.
type Pass struct {
	device *rhi.Device

	width, height int

	chain resource.Handle // RGBA32F, MipCount levels

	thresholdProgram  resource.Handle
	downsampleProgram resource.Handle
	upsampleProgram   resource.Handle
}

func NewPass(device *rhi.Device) (*Pass, error) {
	p := &Pass{device: device}

	var err error
	p.thresholdProgram, err = device.CreateComputeProgram(thresholdCompute)
	if err != nil {
		return nil, fmt.Errorf("bloom: threshold program: %w", err)
	}
	p.downsampleProgram, err = device.CreateComputeProgram(downsampleCompute)
	if err != nil {
		return nil, fmt.Errorf("bloom: downsample program: %w", err)
	}
	p.upsampleProgram, err = device.CreateComputeProgram(upsampleCompute)
	if err != nil {
		return nil, fmt.Errorf("bloom: upsample program: %w", err)
	}
	return p, nil
}

// Resize (re)allocates the mip chain at half the viewport's resolution —
// bloom never needs full-resolution source detail, and starting the chain
// at half-res roughly halves every dispatch's work for a difference nobody
// sees in the final composite.
func (p *Pass) Resize(width, height int) {
	w, h := width/2, height/2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == p.width && h == p.height && p.chain.IsValid() {
		return
	}
	if p.chain.IsValid() {
		p.device.DestroyTexture(p.chain)
	}
	p.width, p.height = w, h
	p.chain = p.device.CreateTexture2DMip(w, h, MipCount, rhi.FormatRGBA32F)
}

// Result returns the bloom chain's mip 0 — the tone-mapper's bloom input
// (uniform.SamplerBloomResult).
func (p *Pass) Result() resource.Handle { return p.chain }

func mipSize(base, mip int) int {
	s := base >> uint(mip)
	if s < 1 {
		s = 1
	}
	return s
}

func dispatchGroups(size int) uint32 {
	return uint32((size + 7) / 8)
}

// Render thresholds hdrColor into the chain's mip 0, repeatedly halves it
// down to the smallest mip, then walks back up blending a tent-filtered
// upsample of each smaller mip into the next one up — the same "down then
// up" shape as the reference renderer's bright-pass-then-blur, generalized to more than
// one resolution step.
func (p *Pass) Render(hdrColor resource.Handle, threshold, intensity float32) {
	if !p.chain.IsValid() {
		return
	}

	p.device.BindTexture(0, hdrColor)
	p.device.BindImageTexture(0, p.chain, 0, rhi.AccessWriteOnly, rhi.FormatRGBA32F)
	p.device.SetUniformFloat(p.thresholdProgram, "threshold", threshold)
	p.device.SetUniformIVec2(p.thresholdProgram, "outputSize", int32(p.width), int32(p.height))
	p.device.DispatchCompute(p.thresholdProgram, dispatchGroups(p.width), dispatchGroups(p.height), 1)
	p.device.MemoryBarrier(rhi.BarrierShaderImageAccess | rhi.BarrierTextureFetch)

	for mip := 0; mip < MipCount-1; mip++ {
		srcW, srcH := mipSize(p.width, mip), mipSize(p.height, mip)
		dstW, dstH := mipSize(p.width, mip+1), mipSize(p.height, mip+1)

		p.device.BindTexture(0, p.chain)
		p.device.BindImageTexture(0, p.chain, int32(mip+1), rhi.AccessWriteOnly, rhi.FormatRGBA32F)
		p.device.SetUniformVec2(p.downsampleProgram, "srcTexelSize", math.Vec2{X: 1.0 / float32(srcW), Y: 1.0 / float32(srcH)})
		p.device.SetUniformIVec2(p.downsampleProgram, "outputSize", int32(dstW), int32(dstH))
		p.device.SetUniformInt(p.downsampleProgram, "srcMip", int32(mip))
		p.device.DispatchCompute(p.downsampleProgram, dispatchGroups(dstW), dispatchGroups(dstH), 1)
		p.device.MemoryBarrier(rhi.BarrierShaderImageAccess | rhi.BarrierTextureFetch)
	}

	for mip := MipCount - 2; mip >= 0; mip-- {
		srcW, srcH := mipSize(p.width, mip+1), mipSize(p.height, mip+1)
		dstW, dstH := mipSize(p.width, mip), mipSize(p.height, mip)

		p.device.BindTexture(0, p.chain)
		p.device.BindImageTexture(0, p.chain, int32(mip), rhi.AccessReadWrite, rhi.FormatRGBA32F)
		p.device.SetUniformVec2(p.upsampleProgram, "srcTexelSize", math.Vec2{X: 1.0 / float32(srcW), Y: 1.0 / float32(srcH)})
		p.device.SetUniformIVec2(p.upsampleProgram, "outputSize", int32(dstW), int32(dstH))
		p.device.SetUniformInt(p.upsampleProgram, "srcMip", int32(mip+1))
		p.device.SetUniformFloat(p.upsampleProgram, "intensity", intensity)
		p.device.DispatchCompute(p.upsampleProgram, dispatchGroups(dstW), dispatchGroups(dstH), 1)
		p.device.MemoryBarrier(rhi.BarrierShaderImageAccess | rhi.BarrierTextureFetch)
	}
}

