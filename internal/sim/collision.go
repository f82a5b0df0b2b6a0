package sim

// enemyProbe freezes an enemy's hitbox at the start of the damage pass. All
// overlap and distance checks in the pass read the probe, so knockback or
// any other mid-pass mutation cannot change what the pass observes.
type enemyProbe struct {
	z      *Enemy
	box    Rect
	cx, cy float64
}

// resolveCollisions runs the whole per-tick damage pass: player contact,
// spit hits, bullet hits with knockback, explosion bursts, and persistent
// area damage. Deaths and consumed projectiles are only flagged during the
// pass and compacted out at the end, so nothing is read after removal.
func (e *Engine) resolveCollisions(now int64) {
	probes := make([]enemyProbe, len(e.enemies))
	for i, z := range e.enemies {
		box := z.Bounds()
		probes[i] = enemyProbe{z: z, box: box, cx: box.CenterX(), cy: box.CenterY()}
	}
	playerBox := e.player.Bounds()

	// player <-> enemy contact; the damage cooldown means at most one hit
	// lands per pass regardless of how many enemies overlap
	for _, pr := range probes {
		if !playerBox.Overlaps(pr.box) {
			continue
		}
		if e.damagePlayer(now, pr.z.Def().ContactDamage) {
			break
		}
	}

	// player <-> spit; a connecting projectile is consumed either way
	n := 0
	for _, s := range e.spit {
		if playerBox.Overlaps(s.Bounds()) {
			e.damagePlayer(now, s.Damage)
			continue
		}
		e.spit[n] = s
		n++
	}
	e.spit = e.spit[:n]

	// bullet <-> enemy: each enemy absorbs at most one bullet per pass,
	// each bullet damages at most one enemy ever
	for _, pr := range probes {
		if pr.z.dead {
			continue
		}
		for _, b := range e.bullets {
			if b.spent || !pr.box.Overlaps(b.Bounds()) {
				continue
			}
			b.spent = true
			e.hitEnemy(now, pr.z, b.Damage)
			vx, vy := b.Velocity()
			pr.z.X = clampF(pr.z.X+vx*KnockbackScale, 0, e.level.Width-pr.z.Width())
			pr.z.Y = clampF(pr.z.Y+vy*KnockbackScale, 0, e.level.FloorFor(pr.z.Height()))
			if b.Explosive {
				e.addExplosion(newBulletExplosion(b.X, b.Y, b.ExplosionDamage, b.ExplosionRadius, now))
			}
			e.playHitSound(now)
			break
		}
	}

	// explosion <-> enemy: radial falloff, once per enemy per burst
	for _, x := range e.explosions {
		for _, pr := range probes {
			if pr.z.dead {
				continue
			}
			d := distance(pr.cx, pr.cy, x.X, x.Y)
			if d >= x.Radius {
				continue
			}
			if !x.MarkHit(pr.z.ID) {
				continue
			}
			e.hitEnemy(now, pr.z, ExplosionFalloff(x.Damage, d, x.Radius))
		}
	}

	// persistent effect <-> enemy: damage-over-time, every tick inside
	for _, f := range e.effects {
		for _, pr := range probes {
			if pr.z.dead {
				continue
			}
			d := distance(pr.cx, pr.cy, f.X, f.Y)
			if d >= f.Radius {
				continue
			}
			e.hitEnemy(now, pr.z, ExplosionFalloff(f.DamagePerTick, d, f.Radius))
		}
	}

	// compact spent bullets
	n = 0
	for _, b := range e.bullets {
		if b.spent {
			continue
		}
		e.bullets[n] = b
		n++
	}
	e.bullets = e.bullets[:n]

	// compact dead enemies
	n = 0
	for _, z := range e.enemies {
		if z.dead {
			continue
		}
		e.enemies[n] = z
		n++
	}
	e.enemies = e.enemies[:n]
}

// hitEnemy applies damage to a live enemy and, on the lethal hit, runs the
// death contract exactly once: flag for removal, queue the death animation,
// award score, emit the kill event.
func (e *Engine) hitEnemy(now int64, z *Enemy, damage float64) {
	if z.dead || damage <= 0 {
		return
	}
	z.Health -= damage
	if z.Health > 0 {
		return
	}
	z.dead = true
	def := z.Def()
	if len(e.deaths) < e.limits.MaxDeaths {
		e.deaths = append(e.deaths, DeathAnimation{
			Kind:       z.Kind,
			X:          z.X,
			Y:          z.Y,
			Started:    now,
			DurationMS: deathAnimationMS,
			FacingLeft: e.player.X < z.X,
		})
	}
	e.addScore(now, def.ScoreValue)
	e.emit(EventEnemyKilled, now, EnemyKilledPayload{
		ID: z.ID, Kind: z.Kind.String(), X: z.X, Y: z.Y, Score: def.ScoreValue,
	})
}

// damagePlayer routes a hit through the player's damage cooldown and handles
// the death edge. It reports whether the hit landed.
func (e *Engine) damagePlayer(now int64, amount int) bool {
	if !e.player.TakeDamage(now, amount) {
		return false
	}
	e.playHitSound(now)
	e.emit(EventPlayerDamaged, now, PlayerDamagedPayload{
		Amount: amount, Health: e.player.Health,
	})
	if e.player.Health <= 0 {
		e.endGame(now)
	}
	return true
}

func (e *Engine) playHitSound(now int64) {
	if now-e.lastHitSound < hitSoundCooldownMS {
		return
	}
	e.lastHitSound = now
	e.emit(EventSoundCue, now, SoundCuePayload{Sound: "hit-flesh"})
}
