package scene

import (
	"testing"

	"rendercore/math"
)

func TestParticleEmitterSpawnsUpToRate(t *testing.T) {
	e := NewParticleEmitter(100)
	e.Rate = 50
	e.Update(1.0)
	if e.Count() == 0 {
		t.Fatalf("Count() = 0 after one second at rate 50, want > 0")
	}
	if e.Count() > e.pool {
		t.Fatalf("Count() = %d, exceeds pool size %d", e.Count(), e.pool)
	}
}

func TestParticleEmitterCullsExpiredParticles(t *testing.T) {
	e := NewParticleEmitter(10)
	e.Rate = 10
	e.MinLife, e.MaxLife = 1.5, 1.5
	e.Update(1.0)
	if e.Count() == 0 {
		t.Fatalf("expected spawned particles before the cull step")
	}
	e.Active = false
	e.Update(1.0)
	if e.Count() != 0 {
		t.Fatalf("Count() = %d after life expired, want 0", e.Count())
	}
}

func TestRandomInConeStaysWithinSpreadOfAxis(t *testing.T) {
	axis := math.Vec3{X: 0, Y: 1, Z: 0}
	e := NewSmokeEmitter(1)
	e.Direction = axis
	e.Spread = 0.3
	for i := 0; i < 200; i++ {
		dir := randomInCone(axis, e.Spread, e.rng)
		cos := dir.Dot(axis)
		if cos < 0.95 {
			t.Fatalf("sample %d: dot(dir, axis) = %v, want >= cos(spread)", i, cos)
		}
	}
}
