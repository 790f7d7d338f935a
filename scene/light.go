package scene

import (
	stdmath "math"

	"rendercore/core"
	"rendercore/math"
)

// LightKind tags which variant a Light holds. Go has no tagged-union type,
// so the three original light structs (directional/point/spot) are
// collapsed into one struct with a Kind discriminator and the fields that
// don't apply to a given kind left zero, the same tagged-struct
// generalization a production scene.Light tends to converge on anyway.
type LightKind int

const (
	LightDirectional LightKind = iota
	LightPoint
	LightSpot
)

// LightThreshold mirrors original_source's light_manager.hpp constant: any
// light whose contribution falls below this at its Range is culled from
// the shadow-casting set.
const LightThreshold = 30.0

type Light struct {
	Kind      LightKind
	Position  math.Vec3
	Direction math.Vec3 // normalized; directional and spot only
	Color     core.Color
	Intensity float32

	Near, Far float32

	Range          float32 // point and spot
	SpotAngle      float32 // spot, radians (cone half-angle, outer cutoff)
	SpotInnerAngle float32 // spot, radians (cone half-angle, inner cutoff)

	// CascadeZMultiplier is stored per light (directional only), but the
	// shadow pass does not read it: CSM slices are widened by
	// shadowing.Manager.ZCascadeMultiplier.
	CascadeZMultiplier float32

	CastsShadow bool
}

func NewDirectionalLight(direction math.Vec3, color core.Color, intensity float32) *Light {
	return &Light{
		Kind:               LightDirectional,
		Direction:          direction.Normalize(),
		Color:              color,
		Intensity:          intensity,
		Near:               0.1,
		Far:                100,
		CascadeZMultiplier: 10,
		CastsShadow:        true,
	}
}

func NewPointLight(position math.Vec3, color core.Color, intensity, lightRange float32) *Light {
	return &Light{
		Kind:        LightPoint,
		Position:    position,
		Color:       color,
		Intensity:   intensity,
		Near:        0.1,
		Far:         lightRange,
		Range:       lightRange,
		CastsShadow: true,
	}
}

func NewSpotLight(position, direction math.Vec3, color core.Color, intensity, lightRange, spotAngle float32) *Light {
	return &Light{
		Kind:           LightSpot,
		Position:       position,
		Direction:      direction.Normalize(),
		Color:          color,
		Intensity:      intensity,
		Near:           0.1,
		Far:            lightRange,
		Range:          lightRange,
		SpotAngle:      spotAngle,
		SpotInnerAngle: spotAngle * 0.8,
		CastsShadow:    true,
	}
}

// Radius is the lighting shader's early-out distance for a point/spot
// light: LightThreshold * sqrt(intensity), per this PointLightData.
func (l *Light) Radius() float32 {
	return float32(LightThreshold) * float32(stdmath.Sqrt(float64(l.Intensity)))
}
