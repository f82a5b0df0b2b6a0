package sim

import "math"

// Physics and combat tuning shared across the simulation.
const (
	// Gravity is the per-tick downward acceleration for airborne entities.
	Gravity = 0.5

	// KnockbackScale converts a bullet's velocity into enemy displacement
	// on impact.
	KnockbackScale = 0.2

	// hitSoundCooldownMS throttles impact sound cues so a shotgun blast
	// hitting a crowd plays one cue, not eight.
	hitSoundCooldownMS = 70

	// lethalBounceThreshold is the vertical speed above which a thrown
	// lethal detonates on impact instead of bouncing.
	lethalBounceThreshold = 2.0

	// bounceDamping scales velocity on each surviving bounce.
	bounceDamping = 0.5
)

// ExplosionFalloff returns the damage an explosion deals at the given
// distance from its center: full damage at the center, linearly down to zero
// at the radius, zero beyond it.
func ExplosionFalloff(base, distance, radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	if distance >= radius {
		return 0
	}
	return base * (1 - distance/radius)
}

// Stats are the player's upgradeable combat multipliers. Every field starts
// at 1.0 and only ever grows.
type Stats struct {
	Damage      float64 `json:"damage"`
	FireRate    float64 `json:"fireRate"`
	ReloadSpeed float64 `json:"reloadSpeed"`
	MoveSpeed   float64 `json:"moveSpeed"`
}

// DefaultStats returns the unupgraded baseline.
func DefaultStats() Stats {
	return Stats{Damage: 1, FireRate: 1, ReloadSpeed: 1, MoveSpeed: 1}
}

// EffectiveDamage scales a weapon's base damage by the damage multiplier.
func (s Stats) EffectiveDamage(base float64) float64 { return base * s.Damage }

// EffectiveFireInterval shortens the gap between shots; a higher multiplier
// fires faster.
func (s Stats) EffectiveFireInterval(baseMS int64) int64 {
	if s.FireRate <= 1 {
		return baseMS
	}
	return int64(float64(baseMS) / s.FireRate)
}

// EffectiveReload shortens the reload window; a higher multiplier reloads
// faster.
func (s Stats) EffectiveReload(baseMS int64) int64 {
	if s.ReloadSpeed <= 1 {
		return baseMS
	}
	return int64(float64(baseMS) / s.ReloadSpeed)
}

// EffectiveMoveSpeed scales base movement speed.
func (s Stats) EffectiveMoveSpeed(base float64) float64 { return base * s.MoveSpeed }

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}
