package sim

import (
	"math"
	"testing"
)

func TestAimedBulletTravelsStraight(t *testing.T) {
	lvl := DefaultLevel()
	b := &Bullet{X: 500, Y: 300, W: 10, H: 5, Speed: 10, Damage: 1, Aimed: true, Angle: math.Pi / 4}

	alive, detonate := b.Update(lvl)
	if !alive || detonate {
		t.Fatalf("alive=%v detonate=%v, want alive without detonation", alive, detonate)
	}
	wantX := 500 + 10*math.Cos(math.Pi/4)
	wantY := 300 + 10*math.Sin(math.Pi/4)
	if math.Abs(b.X-wantX) > 1e-9 || math.Abs(b.Y-wantY) > 1e-9 {
		t.Errorf("position = (%v, %v), want (%v, %v)", b.X, b.Y, wantX, wantY)
	}
}

func TestLegacyBulletIsHorizontal(t *testing.T) {
	lvl := DefaultLevel()
	b := &Bullet{X: 500, Y: 300, W: 10, H: 5, Speed: 15, Damage: 1, Dir: -1}

	b.Update(lvl)
	if b.X != 485 {
		t.Errorf("x = %v, want 485", b.X)
	}
	if b.Y != 300 {
		t.Errorf("y = %v, want unchanged vertical position", b.Y)
	}
}

func TestBulletDiesOutOfBounds(t *testing.T) {
	lvl := DefaultLevel()
	b := &Bullet{X: lvl.Width - 5, Y: 300, W: 10, H: 5, Speed: 20, Damage: 1, Dir: 1}

	alive, detonate := b.Update(lvl)
	if alive {
		t.Error("bullet survived past the boundary")
	}
	if detonate {
		t.Error("plain bullet detonated")
	}
}

func TestExplosiveBulletArcsAndDetonates(t *testing.T) {
	lvl := DefaultLevel()
	b := &Bullet{
		X: 500, Y: lvl.GroundY() - 20, W: 16, H: 8,
		Speed: 5, Damage: 2, Dir: 1,
		Explosive: true, ExplosionRadius: 80, ExplosionDamage: 30,
	}

	var detonated bool
	for i := 0; i < 100; i++ {
		alive, det := b.Update(lvl)
		if det {
			detonated = true
			if alive {
				t.Error("bullet still alive after detonation")
			}
			break
		}
		if !alive {
			t.Fatal("explosive bullet died without detonating")
		}
	}
	if !detonated {
		t.Fatal("explosive bullet never reached the ground")
	}
	if b.Y+b.H != lvl.GroundY() {
		t.Errorf("final y = %v, want resting on ground", b.Y)
	}
}

func TestLethalBounceOrDetonate(t *testing.T) {
	lvl := DefaultLevel()

	t.Run("slow impact bounces with damping", func(t *testing.T) {
		g := &ThrownLethal{ID: "grenade", X: 500, Y: lvl.GroundY() - lethalSize - 1, VX: 2, VY: 1.2}
		if g.Update(lvl) {
			t.Fatal("slow grenade detonated")
		}
		if g.VY >= 0 {
			t.Errorf("vy = %v, want upward after bounce", g.VY)
		}
		// incoming vy was 1.2+0.25 gravity; the bounce halves and flips it
		want := -(1.2 + Gravity*0.5) * bounceDamping
		if math.Abs(g.VY-want) > 1e-9 {
			t.Errorf("vy = %v, want %v", g.VY, want)
		}
	})

	t.Run("fast impact detonates", func(t *testing.T) {
		g := &ThrownLethal{ID: "grenade", X: 500, Y: lvl.GroundY() - lethalSize - 1, VX: 2, VY: 3}
		if !g.Update(lvl) {
			t.Fatal("fast grenade bounced instead of detonating")
		}
	})

	t.Run("thrown grenade eventually detonates", func(t *testing.T) {
		g := &ThrownLethal{ID: "grenade", X: 400, Y: 300, VX: 8, VY: -6}
		detonated := false
		for i := 0; i < 2000; i++ {
			if g.Update(lvl) {
				detonated = true
				break
			}
		}
		if !detonated {
			t.Error("grenade never detonated")
		}
	})
}

func TestExplosionLifecycle(t *testing.T) {
	def := MustLethal("grenade")
	x := newLethalExplosion(500, 400, def, 1000)

	if x.Expired(1000 + def.ExplosionDurationMS - 1) {
		t.Error("expired before duration")
	}
	if !x.Expired(1000 + def.ExplosionDurationMS) {
		t.Error("not expired after duration")
	}

	t.Run("hit gate fires once per enemy", func(t *testing.T) {
		if !x.MarkHit(7) {
			t.Error("first hit rejected")
		}
		if x.MarkHit(7) {
			t.Error("second hit on same enemy allowed")
		}
		if !x.MarkHit(8) {
			t.Error("different enemy rejected")
		}
	})
}

func TestMolotovLeavesPersistentEffect(t *testing.T) {
	def := MustLethal("molotov")
	x := newLethalExplosion(500, 400, def, 0)
	if !x.Persistent {
		t.Fatal("molotov burst not persistent")
	}

	f := x.spawnEffect(def.ExplosionDurationMS)
	if f.DamagePerTick != def.Damage/10 {
		t.Errorf("damage per tick = %v, want %v", f.DamagePerTick, def.Damage/10)
	}
	if f.Radius != def.Radius {
		t.Errorf("radius = %v, want %v", f.Radius, def.Radius)
	}
	if f.Expired(def.ExplosionDurationMS + def.PersistMS - 1) {
		t.Error("effect expired early")
	}
	if !f.Expired(def.ExplosionDurationMS + def.PersistMS) {
		t.Error("effect outlived its duration")
	}
}

func TestSpitProjectileFliesStraightAndDies(t *testing.T) {
	lvl := DefaultLevel()
	s := &SpitProjectile{X: 500, Y: 300, VX: -6, VY: 0}

	if !s.Update(lvl) {
		t.Fatal("in-bounds projectile died")
	}
	if s.X != 494 || s.Y != 300 {
		t.Errorf("position = (%v, %v), want (494, 300)", s.X, s.Y)
	}

	s.X = 2
	if s.Update(lvl) {
		t.Error("projectile survived leaving the play area")
	}
}
