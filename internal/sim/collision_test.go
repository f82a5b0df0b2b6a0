package sim

import "testing"

// testEngine returns a stopped engine with spawning silenced so collision
// scenarios control exactly what is on the field.
func testEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(Config{TickRate: 60, Seed: 42})
	e.wave.Phase = WaveIntermission
	e.wave.PhaseStart = 1 << 40 // keep the phase machine quiet
	return e
}

func countEvents(events []Event, typ EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func TestEnemyAbsorbsOneBulletPerPass(t *testing.T) {
	e := testEngine(t)
	z := e.spawnEnemy(EnemyBrute, 0) // 3 health
	z.X, z.Y = 500, 400
	e.pending = nil

	for i := 0; i < 3; i++ {
		e.bullets = append(e.bullets, &Bullet{X: 510, Y: 420, W: 10, H: 5, Speed: 15, Damage: 1, Dir: 1})
	}

	e.resolveCollisions(100)

	if len(e.bullets) != 2 {
		t.Errorf("bullets remaining = %d, want 2 (one consumed per pass)", len(e.bullets))
	}
	if z.Health != 2 {
		t.Errorf("enemy health = %v, want 2", z.Health)
	}
	if len(e.enemies) != 1 {
		t.Errorf("enemy count = %d, want 1", len(e.enemies))
	}
}

func TestBulletDamagesAtMostOneEnemy(t *testing.T) {
	e := testEngine(t)
	a := e.spawnEnemy(EnemyWalker, 0)
	b := e.spawnEnemy(EnemyWalker, 0)
	a.X, a.Y = 500, 400
	b.X, b.Y = 510, 400 // overlapping the same bullet
	e.pending = nil

	e.bullets = append(e.bullets, &Bullet{X: 515, Y: 420, W: 10, H: 5, Speed: 15, Damage: 1, Dir: 1})

	e.resolveCollisions(100)

	if got := countEvents(e.pending, EventEnemyKilled); got != 1 {
		t.Errorf("kills = %d, want exactly 1 from a single bullet", got)
	}
	if len(e.enemies) != 1 {
		t.Errorf("enemies remaining = %d, want 1", len(e.enemies))
	}
}

func TestDeathContractRunsOnce(t *testing.T) {
	e := testEngine(t)
	z := e.spawnEnemy(EnemyWalker, 0) // 1 health
	z.X, z.Y = 500, 400
	e.pending = nil
	scoreBefore := e.score

	// a bullet kill plus an explosion covering the same enemy in one pass
	e.bullets = append(e.bullets, &Bullet{X: 510, Y: 420, W: 10, H: 5, Speed: 15, Damage: 5, Dir: 1})
	e.explosions = append(e.explosions, newLethalExplosion(530, 440, MustLethal("grenade"), 100))

	e.resolveCollisions(100)

	if got := countEvents(e.pending, EventEnemyKilled); got != 1 {
		t.Errorf("kill events = %d, want exactly 1", got)
	}
	if len(e.deaths) != 1 {
		t.Errorf("death animations = %d, want exactly 1", len(e.deaths))
	}
	want := EnemyDefOf(EnemyWalker).ScoreValue
	if e.score != scoreBefore+want {
		t.Errorf("score delta = %d, want exactly %d", e.score-scoreBefore, want)
	}
	if len(e.enemies) != 0 {
		t.Errorf("enemy not removed after death")
	}
}

func TestExplosionHitsEachEnemyOncePerLifetime(t *testing.T) {
	e := testEngine(t)
	z := e.spawnEnemy(EnemyBrute, 0) // 3 health
	z.X, z.Y = 500, 400
	box := z.Bounds()
	e.pending = nil

	x := newLethalExplosion(box.CenterX(), box.CenterY(), MustLethal("grenade"), 0)
	x.Damage = 1 // survivable, to observe repeat passes
	e.explosions = append(e.explosions, x)

	e.resolveCollisions(16)
	after1 := z.Health
	e.resolveCollisions(32)
	after2 := z.Health

	if after1 != 2 {
		t.Errorf("health after first pass = %v, want 2", after1)
	}
	if after2 != after1 {
		t.Errorf("burst damaged the same enemy twice: %v -> %v", after1, after2)
	}
}

func TestPersistentEffectDamagesEveryTick(t *testing.T) {
	e := testEngine(t)
	z := e.spawnEnemy(EnemyBrute, 0)
	z.X, z.Y = 500, 400
	box := z.Bounds()
	e.pending = nil

	e.effects = append(e.effects, &PersistentEffect{
		X: box.CenterX(), Y: box.CenterY(),
		Source: "molotov", Started: 0, DurationMS: 4000,
		Radius: 80, DamagePerTick: 1,
	})

	e.resolveCollisions(16)
	e.resolveCollisions(32)

	if z.Health != 1 {
		t.Errorf("health = %v, want 1 after two ticks of fire", z.Health)
	}
}

func TestExplosionFalloffAppliedByDistance(t *testing.T) {
	e := testEngine(t)
	near := e.spawnEnemy(EnemyBrute, 0)
	far := e.spawnEnemy(EnemyBrute, 0)
	near.X, near.Y = 500, 400
	nb := near.Bounds()
	far.X = nb.CenterX() + 50 - far.Width()/2 // 50px between centers
	far.Y = near.Y
	e.pending = nil

	x := newLethalExplosion(nb.CenterX(), nb.CenterY(), MustLethal("grenade"), 0)
	x.Damage = 2
	e.explosions = append(e.explosions, x)

	e.resolveCollisions(16)

	if got := EnemyDefOf(EnemyBrute).MaxHealth - near.Health; got != 2 {
		t.Errorf("center damage = %v, want full 2", got)
	}
	if got := EnemyDefOf(EnemyBrute).MaxHealth - far.Health; got != 1 {
		t.Errorf("half-radius damage = %v, want 1", got)
	}
}

func TestPlayerContactDamageCooldown(t *testing.T) {
	e := testEngine(t)
	a := e.spawnEnemy(EnemyWalker, 0)
	b := e.spawnEnemy(EnemyWalker, 0)
	a.X, a.Y = e.player.X, e.player.Y
	b.X, b.Y = e.player.X+10, e.player.Y
	e.pending = nil
	healthBefore := e.player.Health

	e.resolveCollisions(100)
	if got := healthBefore - e.player.Health; got != 1 {
		t.Fatalf("damage with two overlapping enemies = %d, want 1 per cooldown window", got)
	}

	// still inside the window: no further damage
	e.resolveCollisions(100 + e.player.DamageCooldownMS - 1)
	if e.player.Health != healthBefore-1 {
		t.Errorf("took damage inside the cooldown window")
	}

	// window elapsed: next hit lands
	e.resolveCollisions(100 + e.player.DamageCooldownMS)
	if e.player.Health != healthBefore-2 {
		t.Errorf("health = %d, want %d after window elapsed", e.player.Health, healthBefore-2)
	}
}

func TestSpitHitConsumesProjectile(t *testing.T) {
	e := testEngine(t)
	box := e.player.Bounds()
	e.spit = append(e.spit, &SpitProjectile{X: box.CenterX(), Y: box.CenterY(), Damage: 1})
	e.pending = nil
	healthBefore := e.player.Health

	e.resolveCollisions(100)

	if e.player.Health != healthBefore-1 {
		t.Errorf("health = %d, want %d", e.player.Health, healthBefore-1)
	}
	if len(e.spit) != 0 {
		t.Errorf("spit projectile survived its hit")
	}
}

func TestKnockbackIsClampedToWorld(t *testing.T) {
	e := testEngine(t)
	z := e.spawnEnemy(EnemyBrute, 0) // survives one pistol hit
	z.X = e.level.Width - z.Width()  // already at the right edge
	z.Y = 400
	e.pending = nil

	e.bullets = append(e.bullets, &Bullet{X: z.X + 5, Y: 420, W: 10, H: 5, Speed: 15, Damage: 1, Dir: 1})
	e.resolveCollisions(100)

	if max := e.level.Width - z.Width(); z.X > max {
		t.Errorf("knockback pushed enemy out of bounds: x = %v, max %v", z.X, max)
	}
}
