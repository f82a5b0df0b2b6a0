package sim

import "testing"

func TestPlayerDamageCooldown(t *testing.T) {
	lvl := DefaultLevel()
	p := NewPlayer(lvl)

	if !p.TakeDamage(0, 1) {
		t.Fatal("first hit rejected")
	}
	if p.Health != defaultMaxHealth-1 {
		t.Errorf("health = %d, want %d", p.Health, defaultMaxHealth-1)
	}
	if p.TakeDamage(p.DamageCooldownMS-1, 1) {
		t.Error("hit landed inside the cooldown window")
	}
	if !p.TakeDamage(p.DamageCooldownMS, 1) {
		t.Error("hit rejected after the window elapsed")
	}
	if p.Health != defaultMaxHealth-2 {
		t.Errorf("health = %d, want %d", p.Health, defaultMaxHealth-2)
	}
}

func TestPlayerHealthFloorsAtZero(t *testing.T) {
	p := NewPlayer(DefaultLevel())
	p.Health = 1
	p.TakeDamage(0, 5)
	if p.Health != 0 {
		t.Errorf("health = %d, want floor at 0", p.Health)
	}
}

func TestPlayerHealCapsAtMax(t *testing.T) {
	p := NewPlayer(DefaultLevel())
	p.Health = p.MaxHealth - 1
	p.Heal(5)
	if p.Health != p.MaxHealth {
		t.Errorf("health = %d, want %d", p.Health, p.MaxHealth)
	}
}

func TestUpgradeStatEscalatesCost(t *testing.T) {
	p := NewPlayer(DefaultLevel())
	base := p.UpgradeCosts[StatDamage]

	if !p.UpgradeStat(StatDamage) {
		t.Fatal("upgrade rejected")
	}
	if p.Stats.Damage != 1.25 {
		t.Errorf("damage stat = %v, want 1.25", p.Stats.Damage)
	}
	if p.StatLevels[StatDamage] != 1 {
		t.Errorf("level = %d, want 1", p.StatLevels[StatDamage])
	}
	want := int(float64(base) * 1.5)
	if p.UpgradeCosts[StatDamage] != want {
		t.Errorf("next cost = %d, want %d", p.UpgradeCosts[StatDamage], want)
	}

	t.Run("max health also heals", func(t *testing.T) {
		p.Health = p.MaxHealth - 3
		before := p.MaxHealth
		p.UpgradeStat(StatMaxHealth)
		if p.MaxHealth != before+1 {
			t.Errorf("max health = %d, want %d", p.MaxHealth, before+1)
		}
		if p.Health != before-2 {
			t.Errorf("health = %d, want one point restored", p.Health)
		}
	})

	t.Run("unknown stat rejected", func(t *testing.T) {
		if p.UpgradeStat("luck") {
			t.Error("unknown stat accepted")
		}
	})
}

func TestPlayerMove(t *testing.T) {
	lvl := DefaultLevel()

	t.Run("walks and faces", func(t *testing.T) {
		p := NewPlayer(lvl)
		x0 := p.X
		p.Move(InputFrame{MoveRight: true}, lvl)
		if p.X != x0+playerBaseSpeed {
			t.Errorf("x = %v, want %v", p.X, x0+playerBaseSpeed)
		}
		if p.FacingLeft {
			t.Error("facing left after moving right")
		}
		p.Move(InputFrame{MoveLeft: true}, lvl)
		if !p.FacingLeft {
			t.Error("facing right after moving left")
		}
	})

	t.Run("clamped to world", func(t *testing.T) {
		p := NewPlayer(lvl)
		p.X = 2
		for i := 0; i < 5; i++ {
			p.Move(InputFrame{MoveLeft: true}, lvl)
		}
		if p.X != 0 {
			t.Errorf("x = %v, want clamped at 0", p.X)
		}
	})

	t.Run("jump arc returns to ground", func(t *testing.T) {
		p := NewPlayer(lvl)
		floor := lvl.FloorFor(playerHeight)
		p.Move(InputFrame{Jump: true}, lvl)
		if p.OnGround {
			t.Fatal("still grounded after jump")
		}
		if p.Y >= floor {
			t.Fatal("no vertical movement on jump")
		}
		for i := 0; i < 200 && !p.OnGround; i++ {
			p.Move(InputFrame{}, lvl)
		}
		if !p.OnGround || p.Y != floor {
			t.Errorf("y = %v onGround = %v, want snapped to %v", p.Y, p.OnGround, floor)
		}
	})

	t.Run("no double jump", func(t *testing.T) {
		p := NewPlayer(lvl)
		p.Move(InputFrame{Jump: true}, lvl)
		vy := p.VY
		p.Move(InputFrame{Jump: true}, lvl)
		if p.VY < vy {
			t.Error("jump velocity reapplied mid-air")
		}
	})

	t.Run("lands on platforms from above", func(t *testing.T) {
		p := NewPlayer(lvl)
		plat := lvl.Platforms[0]
		p.X = plat.X + 10
		p.Y = plat.Y - playerHeight - 5
		p.VY = 0
		p.OnGround = false
		for i := 0; i < 60 && !p.OnGround; i++ {
			p.Move(InputFrame{}, lvl)
		}
		if !p.OnGround {
			t.Fatal("never landed")
		}
		if p.Y != plat.Y-playerHeight {
			t.Errorf("y = %v, want resting on platform at %v", p.Y, plat.Y-playerHeight)
		}
	})
}

func TestLoadoutSelection(t *testing.T) {
	p := NewPlayer(DefaultLevel())

	if !p.SelectWeapon("shotgun") || p.CurrentWeapon != "shotgun" {
		t.Errorf("weapon = %q, want shotgun", p.CurrentWeapon)
	}
	if p.SelectWeapon("railgun") {
		t.Error("unknown weapon accepted")
	}
	if p.CurrentWeapon != "shotgun" {
		t.Errorf("weapon changed by rejected selection: %q", p.CurrentWeapon)
	}
	if !p.SelectLethal("molotov") || p.CurrentLethal != "molotov" {
		t.Errorf("lethal = %q, want molotov", p.CurrentLethal)
	}
}

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer(DefaultLevel())

	if p.Health != defaultMaxHealth || p.MaxHealth != defaultMaxHealth {
		t.Errorf("health = %d/%d, want %d/%d", p.Health, p.MaxHealth, defaultMaxHealth, defaultMaxHealth)
	}
	if p.CurrentWeapon != DefaultWeaponID {
		t.Errorf("weapon = %q, want %q", p.CurrentWeapon, DefaultWeaponID)
	}
	if p.Stats != DefaultStats() {
		t.Errorf("stats = %+v, want baseline", p.Stats)
	}
	for _, w := range AllWeapons() {
		if p.Ammo[w.ID] != w.MaxAmmo {
			t.Errorf("ammo[%s] = %d, want full %d", w.ID, p.Ammo[w.ID], w.MaxAmmo)
		}
	}
	if !p.OnGround {
		t.Error("player not grounded at spawn")
	}
}
