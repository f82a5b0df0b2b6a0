package sim

import "math"

const (
	playerWidth  = 50.0
	playerHeight = 80.0

	playerBaseSpeed = 5.0
	playerJumpSpeed = 12.0

	// DefaultDamageCooldownMS is the invulnerability window after taking a
	// hit; overlapping enemies cost one hit per window, not one per tick.
	DefaultDamageCooldownMS = 1000

	defaultMaxHealth = 10
)

// Upgradeable stat names accepted by UpgradeStat.
const (
	StatDamage      = "damage"
	StatFireRate    = "fire_rate"
	StatReloadSpeed = "reload_speed"
	StatMoveSpeed   = "move_speed"
	StatMaxHealth   = "max_health"
)

// upgradeAmounts is how much one purchase raises each stat.
var upgradeAmounts = map[string]float64{
	StatDamage:      0.25,
	StatFireRate:    0.25,
	StatReloadSpeed: 0.25,
	StatMoveSpeed:   0.2,
	StatMaxHealth:   1,
}

// baseUpgradeCosts seeds the escalating per-stat prices.
var baseUpgradeCosts = map[string]int{
	StatDamage:      100,
	StatFireRate:    120,
	StatReloadSpeed: 80,
	StatMoveSpeed:   75,
	StatMaxHealth:   150,
}

// Player is the player's movement and combat state. The engine owns it; all
// mutation happens inside the tick.
type Player struct {
	X, Y       float64 // top-left of hitbox
	VY         float64
	FacingLeft bool
	OnGround   bool

	Health    int
	MaxHealth int

	Stats        Stats
	StatLevels   map[string]int
	UpgradeCosts map[string]int

	CurrentWeapon string
	CurrentLethal string
	Ammo          map[string]int
	Lethals       map[string]int

	// LastShotTime anchors the auto-reload window; LastFireTime anchors
	// the per-shot fire interval; they diverge during manual reloads.
	LastShotTime     int64
	LastFireTime     int64
	LastDamageTime   int64
	DamageCooldownMS int64

	// fireHeld is the trigger state from the previous tick, used to
	// edge-detect semi-auto fire.
	fireHeld  bool
	throwHeld bool
}

// NewPlayer returns a fresh player standing on the ground at the left third
// of the level, with a full default loadout.
func NewPlayer(lvl *Level) *Player {
	p := &Player{
		X:                lvl.Width / 3,
		Health:           defaultMaxHealth,
		MaxHealth:        defaultMaxHealth,
		Stats:            DefaultStats(),
		StatLevels:       make(map[string]int),
		UpgradeCosts:     make(map[string]int, len(baseUpgradeCosts)),
		CurrentWeapon:    DefaultWeaponID,
		CurrentLethal:    DefaultLethalID,
		Ammo:             make(map[string]int),
		Lethals:          make(map[string]int),
		DamageCooldownMS: DefaultDamageCooldownMS,
		LastDamageTime:   -DefaultDamageCooldownMS,
	}
	p.Y = lvl.FloorFor(playerHeight)
	p.OnGround = true
	for name, cost := range baseUpgradeCosts {
		p.UpgradeCosts[name] = cost
	}
	for _, w := range AllWeapons() {
		p.Ammo[w.ID] = w.MaxAmmo
	}
	for _, d := range AllLethals() {
		p.Lethals[d.ID] = d.RefillAmount
	}
	return p
}

// Bounds returns the player hitbox.
func (p *Player) Bounds() Rect {
	return Rect{X: p.X, Y: p.Y, W: playerWidth, H: playerHeight}
}

// Move applies one tick of platformer movement from sampled input: walk,
// jump, gravity, platform landings, ground snap, and world clamping.
func (p *Player) Move(in InputFrame, lvl *Level) {
	speed := p.Stats.EffectiveMoveSpeed(playerBaseSpeed)
	if in.MoveLeft {
		p.X -= speed
		p.FacingLeft = true
	}
	if in.MoveRight {
		p.X += speed
		p.FacingLeft = false
	}
	if in.Jump && p.OnGround {
		p.VY = -playerJumpSpeed
		p.OnGround = false
	}

	prevBottom := p.Y + playerHeight
	p.VY += Gravity
	p.Y += p.VY

	p.OnGround = false
	if p.VY > 0 {
		box := p.Bounds()
		for _, plat := range lvl.Platforms {
			if box.Overlaps(plat) && prevBottom <= plat.Y {
				p.Y = plat.Y - playerHeight
				p.VY = 0
				p.OnGround = true
				break
			}
		}
	}
	if floor := lvl.FloorFor(playerHeight); p.Y >= floor {
		p.Y = floor
		p.VY = 0
		p.OnGround = true
	}
	p.X = clampF(p.X, 0, lvl.Width-playerWidth)
}

// TakeDamage applies a hit, honoring the damage cooldown. It reports whether
// the hit actually landed; health floors at zero and the caller decides what
// zero means.
func (p *Player) TakeDamage(now int64, amount int) bool {
	if amount <= 0 {
		return false
	}
	if now-p.LastDamageTime < p.DamageCooldownMS {
		return false
	}
	p.LastDamageTime = now
	p.Health -= amount
	if p.Health < 0 {
		p.Health = 0
	}
	return true
}

// Heal restores health up to the current maximum.
func (p *Player) Heal(amount int) {
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
}

// UpgradeStat raises one stat and escalates its next purchase price by 50%.
// It reports false for unknown stat names; spending the points is the
// caller's job.
func (p *Player) UpgradeStat(name string) bool {
	amount, ok := upgradeAmounts[name]
	if !ok {
		return false
	}
	switch name {
	case StatDamage:
		p.Stats.Damage += amount
	case StatFireRate:
		p.Stats.FireRate += amount
	case StatReloadSpeed:
		p.Stats.ReloadSpeed += amount
	case StatMoveSpeed:
		p.Stats.MoveSpeed += amount
	case StatMaxHealth:
		p.MaxHealth += int(amount)
		p.Heal(1)
	}
	p.StatLevels[name]++
	p.UpgradeCosts[name] = int(math.Floor(float64(p.UpgradeCosts[name]) * 1.5))
	return true
}

// SelectWeapon switches the active firearm. Unknown ids are ignored.
func (p *Player) SelectWeapon(id string) bool {
	if _, ok := WeaponByID(id); !ok {
		return false
	}
	p.CurrentWeapon = id
	return true
}

// SelectLethal switches the active throwable. Unknown ids are ignored.
func (p *Player) SelectLethal(id string) bool {
	if _, ok := LethalByID(id); !ok {
		return false
	}
	p.CurrentLethal = id
	return true
}
