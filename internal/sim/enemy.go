package sim

import (
	"fmt"
	"math"
)

// EnemyState is the enemy behavior state machine position.
type EnemyState uint8

const (
	// EnemyGrounded is the default pursuit state.
	EnemyGrounded EnemyState = iota
	// EnemyJumping covers the whole airborne arc of a jump.
	EnemyJumping
	// EnemySpitting is held for the single tick a spit attack fires;
	// movement is suppressed for that tick only.
	EnemySpitting
)

// String returns the stable lowercase name used in saves and events.
func (s EnemyState) String() string {
	switch s {
	case EnemyGrounded:
		return "grounded"
	case EnemyJumping:
		return "jumping"
	case EnemySpitting:
		return "spitting"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// ParseEnemyState maps a stable name back to its state, for save loading.
func ParseEnemyState(s string) (EnemyState, bool) {
	switch s {
	case "grounded":
		return EnemyGrounded, true
	case "jumping":
		return EnemyJumping, true
	case "spitting":
		return EnemySpitting, true
	}
	return 0, false
}

// Enemy is one live enemy owned by the engine. Position is the top-left of
// its hitbox, matching everything else in the world.
type Enemy struct {
	ID     uint64
	Kind   EnemyKind
	X, Y   float64
	VX, VY float64
	Health float64
	State  EnemyState

	// LastAction is the simulation time of the most recent jump or spit;
	// capability cooldowns key off it.
	LastAction int64

	// dead is set by the damage pass and culled at the end of it, so a
	// single pass never observes a half-removed enemy.
	dead bool
}

// Def returns the catalog entry for this enemy's kind.
func (z *Enemy) Def() EnemyDef { return EnemyDefOf(z.Kind) }

// Width returns the scaled hitbox width.
func (z *Enemy) Width() float64 { return z.Def().Width() }

// Height returns the scaled hitbox height.
func (z *Enemy) Height() float64 { return z.Def().Height() }

// Bounds returns the current hitbox.
func (z *Enemy) Bounds() Rect {
	d := z.Def()
	return Rect{X: z.X, Y: z.Y, W: d.Width(), H: d.Height()}
}

// Update advances the enemy one tick toward the target hitbox. Capability
// checks run in priority order: spit, then jump, then plain pursuit. A
// non-nil return is a spit projectile the caller must take ownership of;
// spitting suppresses movement for the tick it fires.
func (z *Enemy) Update(now int64, target Rect, lvl *Level) *SpitProjectile {
	def := z.Def()
	box := z.Bounds()
	dx := target.CenterX() - box.CenterX()
	dy := target.CenterY() - box.CenterY()
	dist := math.Hypot(dx, dy)

	if z.State == EnemySpitting {
		z.State = EnemyGrounded
	}

	if sp := def.Spit; sp != nil && z.State == EnemyGrounded &&
		dist > sp.MinRange && dist < sp.Range && now-z.LastAction >= sp.CooldownMS {
		z.LastAction = now
		z.State = EnemySpitting
		angle := math.Atan2(dy, dx)
		return &SpitProjectile{
			X:       box.CenterX(),
			Y:       box.CenterY(),
			VX:      math.Cos(angle) * sp.Speed,
			VY:      math.Sin(angle) * sp.Speed,
			Damage:  sp.Damage,
			Created: now,
		}
	}

	if jp := def.Jump; jp != nil && z.State == EnemyGrounded &&
		now-z.LastAction >= jp.CooldownMS && math.Abs(dx) > 100 {
		z.State = EnemyJumping
		z.VY = -jp.Height
		z.VX = math.Copysign(def.Speed*1.5, dx)
		z.LastAction = now
		return nil
	}

	if z.State == EnemyJumping {
		z.VY += Gravity
		z.X += z.VX
		z.Y += z.VY
		if floor := lvl.FloorFor(z.Height()); z.VY > 0 && z.Y >= floor {
			z.Y = floor
			z.VY = 0
			z.VX = 0
			z.State = EnemyGrounded
			// cooldown restarts from landing, not launch
			z.LastAction = now
		}
		return nil
	}

	if dist == 0 {
		return nil
	}
	if def.DirectMover {
		// crawlers ignore ground physics and close on both axes
		z.X += dx / dist * def.Speed
		z.Y += dy / dist * def.Speed
		return nil
	}
	if dx > 0 {
		z.X += def.Speed
	} else if dx < 0 {
		z.X -= def.Speed
	}
	z.VY += Gravity
	z.Y += z.VY
	if floor := lvl.FloorFor(z.Height()); z.Y >= floor {
		z.Y = floor
		z.VY = 0
	}
	return nil
}

const spitProjectileSize = 16.0

// SpitProjectile is a ranged attack in flight from a spitter enemy. It flies
// in a straight line, unaffected by gravity.
type SpitProjectile struct {
	X, Y    float64 // center position
	VX, VY  float64
	Damage  int
	Created int64
}

// Bounds returns the projectile hitbox, centered on its position.
func (s *SpitProjectile) Bounds() Rect {
	return Rect{
		X: s.X - spitProjectileSize/2,
		Y: s.Y - spitProjectileSize/2,
		W: spitProjectileSize,
		H: spitProjectileSize,
	}
}

// Update integrates one tick of motion and reports whether the projectile is
// still inside the play area.
func (s *SpitProjectile) Update(lvl *Level) bool {
	s.X += s.VX
	s.Y += s.VY
	return lvl.InBounds(s.X, s.Y)
}
