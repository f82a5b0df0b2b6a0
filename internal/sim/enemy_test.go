package sim

import (
	"math"
	"testing"
)

func groundedEnemy(kind EnemyKind, x float64, lvl *Level) *Enemy {
	def := EnemyDefOf(kind)
	return &Enemy{
		ID:     1,
		Kind:   kind,
		X:      x,
		Y:      lvl.FloorFor(def.Height()),
		Health: def.MaxHealth,
		State:  EnemyGrounded,
	}
}

func targetAt(x float64, lvl *Level) Rect {
	return Rect{X: x, Y: lvl.FloorFor(playerHeight), W: playerWidth, H: playerHeight}
}

func TestLeaperJumpStart(t *testing.T) {
	lvl := DefaultLevel()
	z := groundedEnemy(EnemyLeaper, 400, lvl)
	def := z.Def()
	target := targetAt(z.X+150, lvl) // horizontal gap > 100

	z.Update(def.Jump.CooldownMS, target, lvl)

	if z.State != EnemyJumping {
		t.Fatalf("state = %v, want jumping", z.State)
	}
	if z.VY != -def.Jump.Height {
		t.Errorf("vy = %v, want %v", z.VY, -def.Jump.Height)
	}
	want := def.Speed * 1.5
	if z.VX != want {
		t.Errorf("vx = %v, want %v", z.VX, want)
	}
}

func TestLeaperJumpRequiresGapAndCooldown(t *testing.T) {
	lvl := DefaultLevel()
	def := EnemyDefOf(EnemyLeaper)

	t.Run("too close", func(t *testing.T) {
		z := groundedEnemy(EnemyLeaper, 400, lvl)
		z.Update(def.Jump.CooldownMS, targetAt(z.X+50, lvl), lvl)
		if z.State == EnemyJumping {
			t.Error("jumped with horizontal gap under threshold")
		}
	})

	t.Run("cooldown not elapsed", func(t *testing.T) {
		z := groundedEnemy(EnemyLeaper, 400, lvl)
		z.LastAction = 1000
		z.Update(1000+def.Jump.CooldownMS-1, targetAt(z.X+200, lvl), lvl)
		if z.State == EnemyJumping {
			t.Error("jumped before cooldown elapsed")
		}
	})
}

func TestLeaperLandingRestartsCooldown(t *testing.T) {
	lvl := DefaultLevel()
	z := groundedEnemy(EnemyLeaper, 400, lvl)
	def := z.Def()
	target := targetAt(z.X+200, lvl)

	now := def.Jump.CooldownMS
	z.Update(now, target, lvl)
	if z.State != EnemyJumping {
		t.Fatal("expected jump to start")
	}

	// integrate until landing
	for i := 0; i < 200 && z.State == EnemyJumping; i++ {
		now += 16
		z.Update(now, target, lvl)
	}
	if z.State != EnemyGrounded {
		t.Fatal("leaper never landed")
	}
	if z.Y != lvl.FloorFor(z.Height()) {
		t.Errorf("y = %v, want snapped to floor %v", z.Y, lvl.FloorFor(z.Height()))
	}
	if z.LastAction != now {
		t.Errorf("cooldown anchor = %d, want landing time %d", z.LastAction, now)
	}
}

func TestSpitterAttack(t *testing.T) {
	lvl := DefaultLevel()
	def := EnemyDefOf(EnemySpitter)

	t.Run("fires in band and suppresses movement", func(t *testing.T) {
		z := groundedEnemy(EnemySpitter, 400, lvl)
		target := targetAt(z.X+200, lvl)
		x0 := z.X

		sp := z.Update(def.Spit.CooldownMS, target, lvl)
		if sp == nil {
			t.Fatal("expected a spit projectile")
		}
		if z.State != EnemySpitting {
			t.Errorf("state = %v, want spitting", z.State)
		}
		if z.X != x0 {
			t.Errorf("moved while spitting: %v -> %v", x0, z.X)
		}
		if sp.Damage != def.Spit.Damage {
			t.Errorf("spit damage = %d, want %d", sp.Damage, def.Spit.Damage)
		}
		speed := math.Hypot(sp.VX, sp.VY)
		if math.Abs(speed-def.Spit.Speed) > 1e-9 {
			t.Errorf("spit speed = %v, want %v", speed, def.Spit.Speed)
		}
		if sp.VX <= 0 {
			t.Errorf("spit vx = %v, want positive toward target", sp.VX)
		}
	})

	t.Run("point blank stays melee", func(t *testing.T) {
		z := groundedEnemy(EnemySpitter, 400, lvl)
		if sp := z.Update(def.Spit.CooldownMS, targetAt(z.X+10, lvl), lvl); sp != nil {
			t.Error("spit inside minimum range")
		}
	})

	t.Run("out of range pursues instead", func(t *testing.T) {
		z := groundedEnemy(EnemySpitter, 100, lvl)
		x0 := z.X
		if sp := z.Update(def.Spit.CooldownMS, targetAt(900, lvl), lvl); sp != nil {
			t.Error("spit beyond maximum range")
		}
		if z.X <= x0 {
			t.Error("did not pursue when out of spit range")
		}
	})
}

func TestCrawlerMovesDirectly(t *testing.T) {
	lvl := DefaultLevel()
	z := groundedEnemy(EnemyCrawler, 600, lvl)
	z.Y = 100 // airborne: a direct mover ignores gravity
	def := z.Def()
	target := targetAt(300, lvl)

	x0, y0 := z.X, z.Y
	z.Update(0, target, lvl)

	if z.X >= x0 {
		t.Errorf("x = %v, want movement toward target left of start", z.X)
	}
	if z.Y <= y0 {
		t.Errorf("y = %v, want movement down toward target", z.Y)
	}
	moved := math.Hypot(z.X-x0, z.Y-y0)
	if math.Abs(moved-def.Speed) > 1e-9 {
		t.Errorf("step length = %v, want %v", moved, def.Speed)
	}
}

func TestWalkerSnapsToGround(t *testing.T) {
	lvl := DefaultLevel()
	z := groundedEnemy(EnemyWalker, 600, lvl)
	z.Y -= 40 // dropped from above the floor

	target := targetAt(300, lvl)
	for i := 0; i < 30; i++ {
		z.Update(int64(i)*16, target, lvl)
	}
	if z.Y != lvl.FloorFor(z.Height()) {
		t.Errorf("y = %v, want resting on floor %v", z.Y, lvl.FloorFor(z.Height()))
	}
	if z.VY != 0 {
		t.Errorf("vy = %v, want 0 on ground", z.VY)
	}
}

func TestEnemyKindRoundTrip(t *testing.T) {
	for _, def := range AllEnemyDefs() {
		got, ok := ParseEnemyKind(def.Kind.String())
		if !ok || got != def.Kind {
			t.Errorf("ParseEnemyKind(%q) = %v, %v", def.Kind.String(), got, ok)
		}
	}
	if _, ok := ParseEnemyKind("banshee"); ok {
		t.Error("parsed an unknown kind")
	}
}
