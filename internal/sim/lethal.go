package sim

import "math"

// lethalSize is the square hitbox edge used for terrain collision.
const lethalSize = 10.0

// ThrownLethal is a grenade-class consumable in ballistic flight. It bounces
// off terrain when slow and detonates when fast.
type ThrownLethal struct {
	X, Y    float64 // top-left of hitbox
	VX, VY  float64
	ID      string // lethal catalog id
	Created int64
}

// Def returns the catalog entry for this lethal.
func (t *ThrownLethal) Def() LethalDef { return MustLethal(t.ID) }

// Bounds returns the terrain-collision hitbox.
func (t *ThrownLethal) Bounds() Rect {
	return Rect{X: t.X, Y: t.Y, W: lethalSize, H: lethalSize}
}

// Update integrates one tick of arc motion under half gravity and resolves
// terrain contact. It reports true when the lethal should detonate at its
// current position; a false return with contact means it bounced and keeps
// flying at half speed.
func (t *ThrownLethal) Update(lvl *Level) (detonate bool) {
	t.VY += Gravity * 0.5
	t.X += t.VX
	t.Y += t.VY

	if floor := lvl.GroundY() - lethalSize; t.Y >= floor {
		if t.VY > lethalBounceThreshold {
			t.Y = floor
			return true
		}
		t.Y = floor
		t.VY = -t.VY * bounceDamping
		return false
	}

	box := t.Bounds()
	for _, p := range lvl.Platforms {
		if !box.Overlaps(p) {
			continue
		}
		if t.VY > lethalBounceThreshold {
			return true
		}
		// reflect off whichever face was struck
		switch {
		case t.Y+lethalSize-t.VY <= p.Y: // came down onto the top
			t.Y = p.Y - lethalSize
			t.VY = -t.VY * bounceDamping
		case t.Y-t.VY >= p.Y+p.H: // came up into the underside
			t.Y = p.Y + p.H
			t.VY = math.Abs(t.VY) * bounceDamping
		default: // side face
			t.X -= t.VX
			t.VX = -t.VX * bounceDamping
		}
		break
	}
	return false
}
