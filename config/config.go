// Package config unmarshals a YAML render configuration document and
// applies it to a viewport.Renderer/shadowing.Manager pair at startup,
// grounded on the pack's gopkg.in/yaml.v3 usage for data-file loading (see
// load.Shd in the reference yaml-config loader) generalized from a shader
// description to an engine-tunables document.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rendercore/viewport"
)

// RenderConfig holds the tunables a host might reasonably want to change
// without a rebuild: exposure and bloom are art-direction choices, cascade
// count and the cascade Z multiplier tune shadow quality/performance. Shadow
// map resolutions and the max light counts are not here — they size the
// fixed texture arrays and uniform blocks the renderer allocates once at
// construction (shadowing.DirectionalMapSize etc., uniform.MaxPointLights
// etc.), so changing them is a recompile, not a config reload.
type RenderConfig struct {
	Exposure           float32 `yaml:"exposure"`
	BloomThreshold     float32 `yaml:"bloomThreshold"`
	BloomStrength      float32 `yaml:"bloomStrength"`
	CascadeCount       int     `yaml:"cascadeCount"`
	CascadeZMultiplier float32 `yaml:"cascadeZMultiplier"`
}

// Default mirrors viewport.DefaultConfig plus the shadow defaults
// shadowing.NewManager sets inline.
func Default() RenderConfig {
	base := viewport.DefaultConfig()
	return RenderConfig{
		Exposure:           base.Exposure,
		BloomThreshold:     base.BloomThreshold,
		BloomStrength:      base.BloomStrength,
		CascadeCount:       4,
		CascadeZMultiplier: 10,
	}
}

// Load reads and unmarshals path, falling back to Default for any zero-value
// field the document omits (a YAML document only needs to mention what it's
// overriding).
func Load(path string) (RenderConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: yaml %w", err)
	}
	return cfg, nil
}

// Apply pushes cfg's values into an already-constructed renderer. Cascade
// settings land on r.Shadows() rather than DirLightSpaceMatrix's backing
// array size — that array is fixed at uniform.CascadeCount+1 slots, so a
// CascadeCount above what it can hold would silently truncate; callers that
// need more slices have to change uniform.CascadeCount and rebuild.
func (cfg RenderConfig) Apply(r *viewport.Renderer) {
	r.Config.Exposure = cfg.Exposure
	r.Config.BloomThreshold = cfg.BloomThreshold
	r.Config.BloomStrength = cfg.BloomStrength

	if cfg.CascadeCount > 0 {
		r.Shadows().DirectionalCascadeLevel = cfg.CascadeCount
	}
	if cfg.CascadeZMultiplier > 0 {
		r.Shadows().ZCascadeMultiplier = cfg.CascadeZMultiplier
	}
}
