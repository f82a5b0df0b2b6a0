package sim

import (
	"encoding/json"
	"fmt"
	"sort"
)

// SaveVersion is bumped when the save layout changes incompatibly. Loads
// tolerate older payloads by falling back to defaults field by field, never
// by rejecting the whole file.
const SaveVersion = 1

// PlayerSave is the serialized player.
type PlayerSave struct {
	X                float64        `json:"x"`
	Y                float64        `json:"y"`
	VY               float64        `json:"vy"`
	FacingLeft       bool           `json:"facingLeft"`
	Health           int            `json:"health"`
	MaxHealth        int            `json:"maxHealth"`
	Stats            Stats          `json:"stats"`
	StatLevels       map[string]int `json:"statLevels"`
	UpgradeCosts     map[string]int `json:"upgradeCosts"`
	CurrentWeapon    string         `json:"currentWeapon"`
	CurrentLethal    string         `json:"currentLethal"`
	Ammo             map[string]int `json:"ammo"`
	Lethals          map[string]int `json:"lethals"`
	LastShotTime     int64          `json:"lastShotTime"`
	LastFireTime     int64          `json:"lastFireTime"`
	LastDamageTime   int64          `json:"lastDamageTime"`
	DamageCooldownMS int64          `json:"damageCooldownMs"`
}

// WaveSave is the serialized wave machine.
type WaveSave struct {
	Number         int     `json:"number"`
	Phase          string  `json:"phase"`
	PhaseStart     int64   `json:"phaseStart"`
	DurationMS     int64   `json:"durationMs"`
	IntermissionMS int64   `json:"intermissionMs"`
	Completion     float64 `json:"completion"`
	SpawnRate      float64 `json:"spawnRate"`
}

// EnemySave is one serialized enemy.
type EnemySave struct {
	ID         uint64  `json:"id"`
	Kind       string  `json:"kind"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	VX         float64 `json:"vx"`
	VY         float64 `json:"vy"`
	Health     float64 `json:"health"`
	State      string  `json:"state"`
	LastAction int64   `json:"lastAction"`
}

// BulletSave is one serialized bullet.
type BulletSave struct {
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	W               float64 `json:"w"`
	H               float64 `json:"h"`
	Speed           float64 `json:"speed"`
	Damage          float64 `json:"damage"`
	Aimed           bool    `json:"aimed"`
	Angle           float64 `json:"angle"`
	Dir             float64 `json:"dir"`
	Explosive       bool    `json:"explosive"`
	VY              float64 `json:"vy"`
	ExplosionRadius float64 `json:"explosionRadius"`
	ExplosionDamage float64 `json:"explosionDamage"`
}

// LethalSave is one serialized thrown lethal.
type LethalSave struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Created int64   `json:"created"`
}

// ExplosionSave is one serialized burst, including which enemies it already
// damaged so a load cannot double-hit.
type ExplosionSave struct {
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Source     string   `json:"source"`
	Created    int64    `json:"created"`
	DurationMS int64    `json:"durationMs"`
	Radius     float64  `json:"radius"`
	Damage     float64  `json:"damage"`
	Persistent bool     `json:"persistent"`
	PersistMS  int64    `json:"persistMs"`
	Hit        []uint64 `json:"hit,omitempty"`
}

// EffectSave is one serialized persistent area effect.
type EffectSave struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Source        string  `json:"source"`
	Started       int64   `json:"started"`
	DurationMS    int64   `json:"durationMs"`
	Radius        float64 `json:"radius"`
	DamagePerTick float64 `json:"damagePerTick"`
}

// SpitSave is one serialized enemy projectile.
type SpitSave struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Damage  int     `json:"damage"`
	Created int64   `json:"created"`
}

// SaveState is the complete serialized simulation.
type SaveState struct {
	Version       int    `json:"version"`
	Now           int64  `json:"now"`
	Tick          uint64 `json:"tick"`
	Score         int    `json:"score"`
	HighScore     int    `json:"highScore"`
	UpgradePoints int    `json:"upgradePoints"`
	GameOver      bool   `json:"gameOver"`
	Environment   string `json:"environment"`
	NextEnemyID   uint64 `json:"nextEnemyId"`

	Player     PlayerSave      `json:"player"`
	Wave       WaveSave        `json:"wave"`
	Enemies    []EnemySave     `json:"enemies"`
	Bullets    []BulletSave    `json:"bullets"`
	Lethals    []LethalSave    `json:"lethals"`
	Explosions []ExplosionSave `json:"explosions"`
	Effects    []EffectSave    `json:"effects"`
	Spit       []SpitSave      `json:"spit"`
}

// Save captures the complete simulation state. Pause the engine first if a
// perfectly stable frame matters; Save itself holds the state lock.
func (e *Engine) Save() SaveState {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := SaveState{
		Version:       SaveVersion,
		Now:           e.now,
		Tick:          e.tickCount,
		Score:         e.score,
		HighScore:     e.highScore,
		UpgradePoints: e.upgradePoints,
		GameOver:      e.gameOver,
		Environment:   e.level.Name,
		NextEnemyID:   e.nextEnemyID,
		Player: PlayerSave{
			X: e.player.X, Y: e.player.Y, VY: e.player.VY,
			FacingLeft:       e.player.FacingLeft,
			Health:           e.player.Health,
			MaxHealth:        e.player.MaxHealth,
			Stats:            e.player.Stats,
			StatLevels:       copyIntMap(e.player.StatLevels),
			UpgradeCosts:     copyIntMap(e.player.UpgradeCosts),
			CurrentWeapon:    e.player.CurrentWeapon,
			CurrentLethal:    e.player.CurrentLethal,
			Ammo:             copyIntMap(e.player.Ammo),
			Lethals:          copyIntMap(e.player.Lethals),
			LastShotTime:     e.player.LastShotTime,
			LastFireTime:     e.player.LastFireTime,
			LastDamageTime:   e.player.LastDamageTime,
			DamageCooldownMS: e.player.DamageCooldownMS,
		},
		Wave: WaveSave{
			Number:         e.wave.Number,
			Phase:          e.wave.Phase.String(),
			PhaseStart:     e.wave.PhaseStart,
			DurationMS:     e.wave.DurationMS,
			IntermissionMS: e.wave.IntermissionMS,
			Completion:     e.wave.Completion,
			SpawnRate:      e.wave.SpawnRate,
		},
	}
	for _, z := range e.enemies {
		s.Enemies = append(s.Enemies, EnemySave{
			ID: z.ID, Kind: z.Kind.String(),
			X: z.X, Y: z.Y, VX: z.VX, VY: z.VY,
			Health: z.Health, State: z.State.String(), LastAction: z.LastAction,
		})
	}
	for _, b := range e.bullets {
		s.Bullets = append(s.Bullets, BulletSave{
			X: b.X, Y: b.Y, W: b.W, H: b.H,
			Speed: b.Speed, Damage: b.Damage,
			Aimed: b.Aimed, Angle: b.Angle, Dir: b.Dir,
			Explosive: b.Explosive, VY: b.VY,
			ExplosionRadius: b.ExplosionRadius,
			ExplosionDamage: b.ExplosionDamage,
		})
	}
	for _, t := range e.lethals {
		s.Lethals = append(s.Lethals, LethalSave{
			ID: t.ID, X: t.X, Y: t.Y, VX: t.VX, VY: t.VY, Created: t.Created,
		})
	}
	for _, x := range e.explosions {
		xs := ExplosionSave{
			X: x.X, Y: x.Y, Source: x.Source, Created: x.Created,
			DurationMS: x.DurationMS, Radius: x.Radius, Damage: x.Damage,
			Persistent: x.Persistent, PersistMS: x.PersistMS,
		}
		for id := range x.hit {
			xs.Hit = append(xs.Hit, id)
		}
		sort.Slice(xs.Hit, func(i, j int) bool { return xs.Hit[i] < xs.Hit[j] })
		s.Explosions = append(s.Explosions, xs)
	}
	for _, f := range e.effects {
		s.Effects = append(s.Effects, EffectSave{
			X: f.X, Y: f.Y, Source: f.Source, Started: f.Started,
			DurationMS: f.DurationMS, Radius: f.Radius, DamagePerTick: f.DamagePerTick,
		})
	}
	for _, sp := range e.spit {
		s.Spit = append(s.Spit, SpitSave{
			X: sp.X, Y: sp.Y, VX: sp.VX, VY: sp.VY,
			Damage: sp.Damage, Created: sp.Created,
		})
	}
	return s
}

// Restore replaces the simulation with a saved one. Malformed pieces degrade
// to defaults instead of failing the load: unknown enemy kinds are skipped,
// unknown ids fall back to the default loadout, out-of-range timers clamp.
func (e *Engine) Restore(s SaveState) error {
	if s.Version > SaveVersion {
		return fmt.Errorf("save version %d is newer than supported %d", s.Version, SaveVersion)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.now = s.Now
	e.tickCount = s.Tick
	e.score = s.Score
	e.highScore = s.HighScore
	if e.score > e.highScore {
		e.highScore = e.score
	}
	e.upgradePoints = s.UpgradePoints
	e.gameOver = s.GameOver
	e.nextEnemyID = s.NextEnemyID

	e.player = restorePlayer(s.Player, e.level)
	e.wave = restoreWave(s.Wave, e.cfg)

	e.enemies = e.enemies[:0]
	for _, zs := range s.Enemies {
		kind, ok := ParseEnemyKind(zs.Kind)
		if !ok {
			continue
		}
		state, ok := ParseEnemyState(zs.State)
		if !ok {
			state = EnemyGrounded
		}
		def := EnemyDefOf(kind)
		health := zs.Health
		if health <= 0 || health > def.MaxHealth {
			health = def.MaxHealth
		}
		z := &Enemy{
			ID: zs.ID, Kind: kind,
			X: zs.X, Y: zs.Y, VX: zs.VX, VY: zs.VY,
			Health: health, State: state, LastAction: zs.LastAction,
		}
		if z.ID > e.nextEnemyID {
			e.nextEnemyID = z.ID
		}
		e.enemies = append(e.enemies, z)
	}

	e.bullets = e.bullets[:0]
	for _, bs := range s.Bullets {
		if bs.Speed <= 0 || bs.Damage <= 0 {
			continue
		}
		e.bullets = append(e.bullets, &Bullet{
			X: bs.X, Y: bs.Y, W: bs.W, H: bs.H,
			Speed: bs.Speed, Damage: bs.Damage,
			Aimed: bs.Aimed, Angle: bs.Angle, Dir: bs.Dir,
			Explosive: bs.Explosive, VY: bs.VY,
			ExplosionRadius: bs.ExplosionRadius,
			ExplosionDamage: bs.ExplosionDamage,
		})
	}

	e.lethals = e.lethals[:0]
	for _, ts := range s.Lethals {
		if _, ok := LethalByID(ts.ID); !ok {
			continue
		}
		e.lethals = append(e.lethals, &ThrownLethal{
			X: ts.X, Y: ts.Y, VX: ts.VX, VY: ts.VY, ID: ts.ID, Created: ts.Created,
		})
	}

	e.explosions = e.explosions[:0]
	for _, xs := range s.Explosions {
		if xs.Radius <= 0 {
			continue
		}
		x := &Explosion{
			X: xs.X, Y: xs.Y, Source: xs.Source, Created: xs.Created,
			DurationMS: xs.DurationMS, Radius: xs.Radius, Damage: xs.Damage,
			Persistent: xs.Persistent, PersistMS: xs.PersistMS,
			hit: make(map[uint64]struct{}, len(xs.Hit)),
		}
		for _, id := range xs.Hit {
			x.hit[id] = struct{}{}
		}
		e.explosions = append(e.explosions, x)
	}

	e.effects = e.effects[:0]
	for _, fs := range s.Effects {
		if fs.Radius <= 0 {
			continue
		}
		e.effects = append(e.effects, &PersistentEffect{
			X: fs.X, Y: fs.Y, Source: fs.Source, Started: fs.Started,
			DurationMS: fs.DurationMS, Radius: fs.Radius, DamagePerTick: fs.DamagePerTick,
		})
	}

	e.spit = e.spit[:0]
	for _, ss := range s.Spit {
		e.spit = append(e.spit, &SpitProjectile{
			X: ss.X, Y: ss.Y, VX: ss.VX, VY: ss.VY,
			Damage: ss.Damage, Created: ss.Created,
		})
	}

	e.deaths = e.deaths[:0]
	e.input = InputFrame{}
	e.publishSnapshot()
	return nil
}

func restorePlayer(ps PlayerSave, lvl *Level) *Player {
	p := NewPlayer(lvl)
	p.X = clampF(ps.X, 0, lvl.Width-playerWidth)
	p.Y = clampF(ps.Y, 0, lvl.FloorFor(playerHeight))
	p.VY = ps.VY
	p.FacingLeft = ps.FacingLeft

	if ps.MaxHealth > 0 {
		p.MaxHealth = ps.MaxHealth
	}
	if ps.Health > 0 && ps.Health <= p.MaxHealth {
		p.Health = ps.Health
	} else {
		p.Health = p.MaxHealth
	}

	// stat multipliers never go below baseline
	if ps.Stats.Damage >= 1 {
		p.Stats.Damage = ps.Stats.Damage
	}
	if ps.Stats.FireRate >= 1 {
		p.Stats.FireRate = ps.Stats.FireRate
	}
	if ps.Stats.ReloadSpeed >= 1 {
		p.Stats.ReloadSpeed = ps.Stats.ReloadSpeed
	}
	if ps.Stats.MoveSpeed >= 1 {
		p.Stats.MoveSpeed = ps.Stats.MoveSpeed
	}
	for name, n := range ps.StatLevels {
		if _, ok := upgradeAmounts[name]; ok && n > 0 {
			p.StatLevels[name] = n
		}
	}
	for name, cost := range ps.UpgradeCosts {
		if _, ok := baseUpgradeCosts[name]; ok && cost >= baseUpgradeCosts[name] {
			p.UpgradeCosts[name] = cost
		}
	}

	if _, ok := WeaponByID(ps.CurrentWeapon); ok {
		p.CurrentWeapon = ps.CurrentWeapon
	}
	if _, ok := LethalByID(ps.CurrentLethal); ok {
		p.CurrentLethal = ps.CurrentLethal
	}
	for id, ammo := range ps.Ammo {
		w, ok := WeaponByID(id)
		if !ok {
			continue
		}
		if ammo < 0 {
			ammo = 0
		}
		if ammo > w.MaxAmmo {
			ammo = w.MaxAmmo
		}
		p.Ammo[id] = ammo
	}
	for id, have := range ps.Lethals {
		d, ok := LethalByID(id)
		if !ok {
			continue
		}
		if have < 0 {
			have = 0
		}
		if have > d.CarryCap {
			have = d.CarryCap
		}
		p.Lethals[id] = have
	}

	p.LastShotTime = ps.LastShotTime
	p.LastFireTime = ps.LastFireTime
	p.LastDamageTime = ps.LastDamageTime
	if ps.DamageCooldownMS > 0 {
		p.DamageCooldownMS = ps.DamageCooldownMS
	}
	return p
}

func restoreWave(ws WaveSave, cfg Config) *WaveState {
	w := NewWaveState(ws.PhaseStart, cfg.WaveDurationMS, cfg.IntermissionMS)
	if ws.Number >= 1 {
		w.Number = ws.Number
	}
	if phase, ok := ParseWavePhase(ws.Phase); ok {
		w.Phase = phase
	}
	if ws.DurationMS > 0 {
		w.DurationMS = ws.DurationMS
	}
	if ws.IntermissionMS > 0 {
		w.IntermissionMS = ws.IntermissionMS
	}
	w.Completion = clampF(ws.Completion, 0, 100)
	w.SpawnRate = clampF(ws.SpawnRate, 1, 2)
	return w
}

func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MarshalSave encodes a save as JSON.
func MarshalSave(s SaveState) ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalSave decodes a save from JSON.
func UnmarshalSave(data []byte) (SaveState, error) {
	var s SaveState
	if err := json.Unmarshal(data, &s); err != nil {
		return SaveState{}, fmt.Errorf("decode save: %w", err)
	}
	return s, nil
}
