package sim

import "math"

// Bullet is one live player projectile. Two motion models coexist: aimed
// bullets travel in a straight line along Angle, legacy bullets travel
// horizontally along Dir. Explosive bullets additionally fall under half
// gravity and detonate when they leave the air.
type Bullet struct {
	X, Y   float64 // top-left of hitbox
	W, H   float64
	Speed  float64
	Damage float64

	Aimed bool
	Angle float64 // radians, aimed bullets only
	Dir   float64 // -1 or +1, legacy bullets only

	Explosive       bool
	VY              float64 // vertical velocity, explosive arcs only
	ExplosionRadius float64
	ExplosionDamage float64

	// spent is set when the bullet strikes an enemy; it is culled at the
	// end of the damage pass and can hit nothing else.
	spent bool
}

// Bounds returns the bullet hitbox.
func (b *Bullet) Bounds() Rect { return Rect{X: b.X, Y: b.Y, W: b.W, H: b.H} }

// Velocity returns the current velocity vector, used for knockback
// direction on impact.
func (b *Bullet) Velocity() (vx, vy float64) {
	if b.Aimed {
		vx = math.Cos(b.Angle) * b.Speed
		vy = math.Sin(b.Angle) * b.Speed
	} else {
		vx = b.Dir * b.Speed
	}
	if b.Explosive {
		vy += b.VY
	}
	return vx, vy
}

// Update integrates one tick of motion. alive is false once the bullet left
// the play area or struck terrain; detonate is additionally true for
// explosive bullets that should burst at their final position.
func (b *Bullet) Update(lvl *Level) (alive, detonate bool) {
	if b.Aimed {
		b.X += math.Cos(b.Angle) * b.Speed
		b.Y += math.Sin(b.Angle) * b.Speed
	} else {
		b.X += b.Dir * b.Speed
	}
	if b.Explosive {
		b.VY += Gravity * 0.5
		b.Y += b.VY
		if b.Y+b.H >= lvl.GroundY() {
			b.Y = lvl.GroundY() - b.H
			return false, true
		}
		if b.X <= 0 || b.X+b.W >= lvl.Width {
			b.X = clampF(b.X, 0, lvl.Width-b.W)
			return false, true
		}
		return true, false
	}
	if b.X+b.W < 0 || b.X > lvl.Width || b.Y+b.H < 0 || b.Y > lvl.Height {
		return false, false
	}
	return true, false
}
