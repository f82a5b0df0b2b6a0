package sim

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

const (
	// DefaultTickRate is ticks per second when the config does not say
	// otherwise.
	DefaultTickRate = 60

	DefaultWaveDurationMS = 30_000
	DefaultIntermissionMS = 60_000

	// deathAnimationMS is how long a corpse lingers for rendering after
	// the kill already counted.
	deathAnimationMS = 2000

	// waveBonusPerWave scales the score bonus paid out when a wave ends.
	waveBonusPerWave = 50
)

// Config assembles an Engine. Zero values fall back to defaults.
type Config struct {
	TickRate       int
	Level          *Level
	WaveDurationMS int64
	IntermissionMS int64
	Seed           int64
	Limits         ResourceLimits
}

func (c Config) withDefaults() Config {
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	if c.Level == nil {
		c.Level = DefaultLevel()
	}
	if c.WaveDurationMS <= 0 {
		c.WaveDurationMS = DefaultWaveDurationMS
	}
	if c.IntermissionMS <= 0 {
		c.IntermissionMS = DefaultIntermissionMS
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Limits == (ResourceLimits{}) {
		c.Limits = DefaultLimits
	}
	return c
}

// DeathAnimation is a purely visual corpse timer. The enemy it came from is
// already gone; this only tells renderers what to draw and for how long.
type DeathAnimation struct {
	Kind       EnemyKind
	X, Y       float64
	Started    int64
	DurationMS int64
	FacingLeft bool
}

// Engine owns the entire simulation: the clock, the RNG, every entity, and
// the wave machine. All mutation happens under mu on the tick goroutine;
// reads go through the lock-free snapshot pool.
type Engine struct {
	mu     sync.RWMutex
	cfg    Config
	level  *Level
	limits ResourceLimits

	// now is the simulation clock in ms. It advances by exactly tickMS per
	// tick and freezes while paused, so gameplay timers never consult wall
	// time.
	now       int64
	tickMS    int64
	tickCount uint64
	paused    bool
	gameOver  bool

	rng     *rand.Rand
	rngSeed int64

	player *Player
	wave   *WaveState

	enemies    []*Enemy
	bullets    []*Bullet
	lethals    []*ThrownLethal
	explosions []*Explosion
	effects    []*PersistentEffect
	spit       []*SpitProjectile
	deaths     []DeathAnimation

	score         int
	highScore     int
	upgradePoints int
	lastHitSound  int64

	input       InputFrame
	nextEnemyID uint64
	eventSeq    uint64
	pending     []Event

	subscribers []func(Event)
	eventLog    *EventLog
	snapshots   *SnapshotPool

	// tick loop bookkeeping
	running  bool
	ticker   *time.Ticker
	stopChan chan struct{}

	// OnTick, if set, observes each completed tick's duration. Used for
	// metrics; must not block.
	OnTick func(elapsed time.Duration)
}

// NewEngine builds a stopped engine at tick zero, wave 1 active.
func NewEngine(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		cfg:       cfg,
		level:     cfg.Level,
		limits:    cfg.Limits,
		tickMS:    int64(1000 / cfg.TickRate),
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		rngSeed:   cfg.Seed,
		snapshots: NewSnapshotPool(cfg.Limits),
	}
	e.player = NewPlayer(e.level)
	e.wave = NewWaveState(0, cfg.WaveDurationMS, cfg.IntermissionMS)
	e.lastHitSound = -hitSoundCooldownMS
	e.publishSnapshot()
	return e
}

// Start launches the tick loop. Safe to call on a running engine.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.ticker = time.NewTicker(time.Second / time.Duration(e.cfg.TickRate))
	e.stopChan = make(chan struct{})
	e.mu.Unlock()

	go e.loop()
}

func (e *Engine) loop() {
	for {
		select {
		case <-e.stopChan:
			return
		case <-e.ticker.C:
			e.Step()
		}
	}
}

// Stop halts the tick loop. The engine remains inspectable and can be
// restarted.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	e.ticker.Stop()
	close(e.stopChan)
	e.mu.Unlock()
}

// Step advances the simulation exactly one tick. The tick loop calls this;
// tests and replay tooling may call it directly on a stopped engine.
func (e *Engine) Step() {
	started := time.Now()

	e.mu.Lock()
	if !e.paused {
		e.now += e.tickMS
		e.tickCount++
		e.tick(e.now)
	}
	e.publishSnapshot()
	events := e.pending
	e.pending = nil
	subs := e.subscribers
	log := e.eventLog
	onTick := e.OnTick
	e.mu.Unlock()

	// deliver outside the lock so a subscriber may call back into the
	// engine without deadlocking
	for _, ev := range events {
		if log != nil {
			log.Emit(ev)
		}
		for _, fn := range subs {
			fn(ev)
		}
	}
	if onTick != nil {
		onTick(time.Since(started))
	}
}

// tick runs one frame of game logic at the given simulation time. Order:
// wave scheduling and spawns, enemy behavior, projectile and effect motion,
// the damage pass, then player movement and weapon handling.
func (e *Engine) tick(now int64) {
	e.ageDeaths(now)
	if e.gameOver {
		return
	}
	in := e.input

	switch e.wave.Tick(now) {
	case WaveEnded:
		bonus := waveBonusPerWave * e.wave.Number
		e.addScore(now, bonus)
		e.enemies = e.enemies[:0]
		e.spit = e.spit[:0]
		e.emit(EventWavePhase, now, WavePhasePayload{
			Wave: e.wave.Number, Phase: e.wave.Phase.String(), Bonus: bonus,
		})
	case WaveStarted:
		e.replenish()
		e.emit(EventWavePhase, now, WavePhasePayload{
			Wave: e.wave.Number, Phase: e.wave.Phase.String(),
		})
	}
	if e.wave.Phase == WaveActive {
		e.spawnEnemies(now)
	}

	playerBox := e.player.Bounds()
	for _, z := range e.enemies {
		if sp := z.Update(now, playerBox, e.level); sp != nil {
			e.addSpit(sp)
		}
	}

	e.updateProjectiles(now)
	e.resolveCollisions(now)

	e.handleLoadout(in)
	e.player.Move(in, e.level)
	e.handleFiring(now, in)
	e.handleThrow(now, in)
	if in.Reload {
		e.requestReload(now)
	}
	e.updateReload(now)
}

func (e *Engine) updateProjectiles(now int64) {
	n := 0
	for _, b := range e.bullets {
		alive, detonate := b.Update(e.level)
		if detonate {
			e.addExplosion(newBulletExplosion(b.X, b.Y, b.ExplosionDamage, b.ExplosionRadius, now))
		}
		if !alive {
			continue
		}
		e.bullets[n] = b
		n++
	}
	e.bullets = e.bullets[:n]

	n = 0
	for _, t := range e.lethals {
		if t.Update(e.level) {
			box := t.Bounds()
			e.addExplosion(newLethalExplosion(box.CenterX(), box.CenterY(), t.Def(), now))
			continue
		}
		e.lethals[n] = t
		n++
	}
	e.lethals = e.lethals[:n]

	n = 0
	for _, s := range e.spit {
		if !s.Update(e.level) {
			continue
		}
		e.spit[n] = s
		n++
	}
	e.spit = e.spit[:n]

	n = 0
	for _, x := range e.explosions {
		if x.Expired(now) {
			if x.Persistent && len(e.effects) < e.limits.MaxEffects {
				e.effects = append(e.effects, x.spawnEffect(now))
			}
			continue
		}
		e.explosions[n] = x
		n++
	}
	e.explosions = e.explosions[:n]

	n = 0
	for _, f := range e.effects {
		if f.Expired(now) {
			continue
		}
		e.effects[n] = f
		n++
	}
	e.effects = e.effects[:n]
}

func (e *Engine) ageDeaths(now int64) {
	n := 0
	for _, d := range e.deaths {
		if now-d.Started >= d.DurationMS {
			continue
		}
		e.deaths[n] = d
		n++
	}
	e.deaths = e.deaths[:n]
}

// spawnEnemies rolls each catalog kind once per tick. A kind with adjusted
// weight W spawns on a 1-in-W roll, so higher difficulty (smaller adjusted
// weights) means more spawns.
func (e *Engine) spawnEnemies(now int64) {
	for _, def := range AllEnemyDefs() {
		if len(e.enemies) >= e.limits.MaxEnemies {
			return
		}
		adjusted := AdjustedSpawnWeight(def.SpawnWeight, e.wave.SpawnRate)
		if e.rng.Intn(adjusted) != 0 {
			continue
		}
		e.spawnEnemy(def.Kind, now)
	}
}

// spawnEnemy places a fresh enemy at the right edge on the ground plane.
// Spawning uses the same edge rule in every environment.
func (e *Engine) spawnEnemy(kind EnemyKind, now int64) *Enemy {
	def := EnemyDefOf(kind)
	e.nextEnemyID++
	z := &Enemy{
		ID:         e.nextEnemyID,
		Kind:       kind,
		X:          e.level.Width,
		Y:          e.level.FloorFor(def.Height()),
		Health:     def.MaxHealth,
		State:      EnemyGrounded,
		LastAction: now,
	}
	e.enemies = append(e.enemies, z)
	e.emit(EventEnemySpawned, now, EnemySpawnedPayload{
		ID: z.ID, Kind: kind.String(), X: z.X, Y: z.Y,
	})
	return z
}

// replenish runs at each new wave start: a point of health, half a magazine
// of reserve ammo per weapon, and lethal top-ups capped at carry limits.
func (e *Engine) replenish() {
	e.player.Heal(1)
	for id, ammo := range e.player.Ammo {
		w := MustWeapon(id)
		refilled := ammo + w.MaxAmmo/2
		if refilled > w.MaxAmmo {
			refilled = w.MaxAmmo
		}
		e.player.Ammo[id] = refilled
	}
	for id, have := range e.player.Lethals {
		d := MustLethal(id)
		topped := have + d.RefillAmount
		if topped > d.CarryCap {
			topped = d.CarryCap
		}
		if topped > have {
			e.player.Lethals[id] = topped
		}
	}
}

func (e *Engine) handleLoadout(in InputFrame) {
	if in.SelectWeapon != "" {
		e.player.SelectWeapon(in.SelectWeapon)
	}
	if in.SelectLethal != "" {
		e.player.SelectLethal(in.SelectLethal)
	}
}

// handleFiring implements trigger semantics: semi-auto weapons fire on the
// press edge only, full-auto weapons refire while held once the fire
// interval has elapsed.
func (e *Engine) handleFiring(now int64, in InputFrame) {
	if !in.Fire {
		e.player.fireHeld = false
		return
	}
	w := MustWeapon(e.player.CurrentWeapon)
	interval := e.player.Stats.EffectiveFireInterval(w.FireIntervalMS)
	if !e.player.fireHeld || (w.Auto && now-e.player.LastFireTime >= interval) {
		e.fireWeapon(now, w, in)
	}
	e.player.fireHeld = true
}

func (e *Engine) fireWeapon(now int64, w WeaponDef, in InputFrame) {
	if e.player.Ammo[w.ID] <= 0 {
		return
	}
	e.player.Ammo[w.ID]--
	e.player.LastShotTime = now
	e.player.LastFireTime = now

	box := e.player.Bounds()
	cx, cy := box.CenterX(), box.CenterY()
	damage := e.player.Stats.EffectiveDamage(w.Damage)

	if in.Aimed {
		e.player.FacingLeft = in.AimX < cx
		center := math.Atan2(in.AimY-cy, in.AimX-cx)
		if w.Pellets > 1 {
			step := shotgunSpreadRad / float64(w.Pellets-1)
			start := center - shotgunSpreadRad/2
			for i := 0; i < w.Pellets; i++ {
				e.addBullet(&Bullet{
					X: cx, Y: cy, W: w.BulletW, H: w.BulletH,
					Speed: w.BulletSpeed, Damage: damage,
					Aimed: true, Angle: start + step*float64(i),
					Explosive:       w.Explosive,
					ExplosionRadius: w.ExplosionRadius,
					ExplosionDamage: e.player.Stats.EffectiveDamage(w.ExplosionDamage),
				})
			}
		} else {
			e.addBullet(&Bullet{
				X: cx, Y: cy, W: w.BulletW, H: w.BulletH,
				Speed: w.BulletSpeed, Damage: damage,
				Aimed: true, Angle: center,
				Explosive:       w.Explosive,
				ExplosionRadius: w.ExplosionRadius,
				ExplosionDamage: e.player.Stats.EffectiveDamage(w.ExplosionDamage),
			})
		}
	} else {
		dir := 1.0
		if e.player.FacingLeft {
			dir = -1
		}
		for i := 0; i < w.Pellets; i++ {
			e.addBullet(&Bullet{
				X: cx, Y: cy, W: w.BulletW, H: w.BulletH,
				Speed: w.BulletSpeed, Damage: damage,
				Dir:             dir,
				Explosive:       w.Explosive,
				ExplosionRadius: w.ExplosionRadius,
				ExplosionDamage: e.player.Stats.EffectiveDamage(w.ExplosionDamage),
			})
		}
	}

	e.emit(EventWeaponFired, now, WeaponFiredPayload{
		Weapon: w.ID, Ammo: e.player.Ammo[w.ID],
	})
	e.emit(EventSoundCue, now, SoundCuePayload{Sound: w.SoundID})
}

// updateReload completes the passive reload: once the reload window has
// elapsed since the last shot, the magazine refills in one step. The fire
// interval anchor resets so the first post-reload shot is instant.
func (e *Engine) updateReload(now int64) {
	w := MustWeapon(e.player.CurrentWeapon)
	window := e.player.Stats.EffectiveReload(w.ReloadMS)
	if e.player.Ammo[w.ID] >= w.MaxAmmo {
		return
	}
	if now-e.player.LastShotTime <= window {
		return
	}
	e.player.Ammo[w.ID] = w.MaxAmmo
	e.player.LastFireTime = 0
	e.emit(EventSoundCue, now, SoundCuePayload{Sound: "reload"})
}

// requestReload starts a manual reload by rewinding the reload anchor most
// of the way, shortening the wait. Rejected while a reload is already in
// progress or the magazine is full.
func (e *Engine) requestReload(now int64) bool {
	w := MustWeapon(e.player.CurrentWeapon)
	if e.player.Ammo[w.ID] >= w.MaxAmmo {
		return false
	}
	window := e.player.Stats.EffectiveReload(w.ReloadMS)
	if now-e.player.LastShotTime >= window {
		return false // passive reload already due
	}
	if e.player.LastShotTime <= now-window/2 {
		return false // manual reload already running
	}
	e.player.LastShotTime = now - window/2
	return true
}

// handleThrow edge-detects the throw input and lofts the selected lethal
// toward the aim point.
func (e *Engine) handleThrow(now int64, in InputFrame) {
	if !in.Throw {
		e.player.throwHeld = false
		return
	}
	if e.player.throwHeld {
		return
	}
	e.player.throwHeld = true

	d := MustLethal(e.player.CurrentLethal)
	if e.player.Lethals[d.ID] <= 0 {
		return
	}
	if len(e.lethals) >= e.limits.MaxLethals {
		return
	}
	e.player.Lethals[d.ID]--

	box := e.player.Bounds()
	cx, cy := box.CenterX(), box.CenterY()
	angle := math.Atan2(in.AimY-cy, in.AimX-cx)
	if !in.Aimed {
		// default lob in the facing direction
		angle = -math.Pi / 4
		if e.player.FacingLeft {
			angle = -3 * math.Pi / 4
		}
	}
	e.lethals = append(e.lethals, &ThrownLethal{
		X:       cx,
		Y:       cy,
		VX:      math.Cos(angle) * d.ThrowSpeed,
		VY:      math.Sin(angle) * d.ThrowSpeed,
		ID:      d.ID,
		Created: now,
	})
	e.emit(EventLethalThrown, now, LethalThrownPayload{
		Lethal: d.ID, Remaining: e.player.Lethals[d.ID],
	})
	e.emit(EventSoundCue, now, SoundCuePayload{Sound: "throw"})
}

func (e *Engine) addBullet(b *Bullet) {
	if len(e.bullets) >= e.limits.MaxBullets {
		return
	}
	e.bullets = append(e.bullets, b)
}

func (e *Engine) addSpit(s *SpitProjectile) {
	if len(e.spit) >= e.limits.MaxSpit {
		return
	}
	e.spit = append(e.spit, s)
}

func (e *Engine) addExplosion(x *Explosion) {
	if len(e.explosions) >= e.limits.MaxExplosions {
		return
	}
	e.explosions = append(e.explosions, x)
	e.emit(EventExplosionSpawned, x.Created, ExplosionSpawnedPayload{
		X: x.X, Y: x.Y, Source: x.Source, Radius: x.Radius,
	})
	sound := "boom"
	if x.Source != ExplosionSourceBullet {
		sound = MustLethal(x.Source).SoundID
	}
	e.emit(EventSoundCue, x.Created, SoundCuePayload{Sound: sound})
}

// addScore credits score and upgrade points together and tracks the high
// score.
func (e *Engine) addScore(now int64, delta int) {
	if delta <= 0 {
		return
	}
	e.score += delta
	e.upgradePoints += delta
	if e.score > e.highScore {
		e.highScore = e.score
	}
	e.emit(EventScoreChanged, now, ScoreChangedPayload{
		Delta: delta, Score: e.score, Points: e.upgradePoints,
	})
}

// endGame freezes the run: entities clear, the game-over flag latches, the
// high score survives for the next run.
func (e *Engine) endGame(now int64) {
	e.gameOver = true
	e.enemies = e.enemies[:0]
	e.bullets = e.bullets[:0]
	e.lethals = e.lethals[:0]
	e.explosions = e.explosions[:0]
	e.effects = e.effects[:0]
	e.spit = e.spit[:0]
	e.emit(EventPlayerDied, now, PlayerDiedPayload{
		Score: e.score, Wave: e.wave.Number, HighScore: e.highScore,
	})
	e.emit(EventSoundCue, now, SoundCuePayload{Sound: "player-death"})
}

func (e *Engine) emit(t EventType, now int64, payload any) {
	e.eventSeq++
	e.pending = append(e.pending, Event{
		Version:   EventVersion,
		Type:      t,
		Timestamp: now,
		Sequence:  e.eventSeq,
		Tick:      e.tickCount,
		Payload:   encodePayload(payload),
	})
}

func (e *Engine) publishSnapshot() {
	snap := e.snapshots.AcquireWrite()
	snap.Tick = e.tickCount
	snap.Now = e.now
	snap.Paused = e.paused
	snap.GameOver = e.gameOver
	snap.Score = e.score
	snap.HighScore = e.highScore

	remaining := e.wave.DurationMS
	if e.wave.Phase == WaveIntermission {
		remaining = e.wave.IntermissionMS
	}
	phaseMS := e.now - e.wave.PhaseStart
	snap.Wave = WaveSnapshot{
		Number:      e.wave.Number,
		Phase:       e.wave.Phase.String(),
		Completion:  e.wave.Completion,
		SpawnRate:   e.wave.SpawnRate,
		PhaseMS:     phaseMS,
		RemainingMS: remaining - phaseMS,
	}

	w := MustWeapon(e.player.CurrentWeapon)
	window := e.player.Stats.EffectiveReload(w.ReloadMS)
	ammo := make(map[string]int, len(e.player.Ammo))
	for id, n := range e.player.Ammo {
		ammo[id] = n
	}
	lethals := make(map[string]int, len(e.player.Lethals))
	for id, n := range e.player.Lethals {
		lethals[id] = n
	}
	costs := make(map[string]int, len(e.player.UpgradeCosts))
	for name, c := range e.player.UpgradeCosts {
		costs[name] = c
	}
	snap.Player = PlayerSnapshot{
		X: e.player.X, Y: e.player.Y, W: playerWidth, H: playerHeight,
		FacingLeft:    e.player.FacingLeft,
		OnGround:      e.player.OnGround,
		Health:        e.player.Health,
		MaxHealth:     e.player.MaxHealth,
		Weapon:        e.player.CurrentWeapon,
		Lethal:        e.player.CurrentLethal,
		Ammo:          ammo,
		Lethals:       lethals,
		Reloading:     e.player.Ammo[w.ID] < w.MaxAmmo && e.now-e.player.LastShotTime <= window,
		Stats:         e.player.Stats,
		UpgradeCosts:  costs,
		UpgradePoints: e.upgradePoints,
	}

	for _, z := range e.enemies {
		if len(snap.Enemies) >= e.limits.MaxEnemies {
			break
		}
		def := z.Def()
		snap.Enemies = append(snap.Enemies, EnemySnapshot{
			ID: z.ID, Kind: z.Kind.String(),
			X: z.X, Y: z.Y, W: def.Width(), H: def.Height(),
			Health: z.Health, MaxHP: def.MaxHealth,
			State: z.State.String(),
		})
	}
	for _, b := range e.bullets {
		if len(snap.Bullets) >= e.limits.MaxBullets {
			break
		}
		angle := b.Angle
		if !b.Aimed && b.Dir < 0 {
			angle = math.Pi
		}
		snap.Bullets = append(snap.Bullets, BulletSnapshot{
			X: b.X, Y: b.Y, W: b.W, H: b.H, Angle: angle, Explosive: b.Explosive,
		})
	}
	for _, t := range e.lethals {
		snap.Lethals = append(snap.Lethals, LethalSnapshot{ID: t.ID, X: t.X, Y: t.Y})
	}
	for _, x := range e.explosions {
		snap.Explosions = append(snap.Explosions, ExplosionSnapshot{
			X: x.X, Y: x.Y, Radius: x.Radius, Source: x.Source, AgeMS: e.now - x.Created,
		})
	}
	for _, f := range e.effects {
		snap.Effects = append(snap.Effects, EffectSnapshot{
			X: f.X, Y: f.Y, Radius: f.Radius, Source: f.Source, AgeMS: e.now - f.Started,
		})
	}
	for _, s := range e.spit {
		snap.Spit = append(snap.Spit, SpitSnapshot{X: s.X, Y: s.Y})
	}
	for _, d := range e.deaths {
		snap.Deaths = append(snap.Deaths, DeathSnapshot{
			Kind: d.Kind.String(), X: d.X, Y: d.Y,
			AgeMS: e.now - d.Started, DurationMS: d.DurationMS,
			FacingLeft: d.FacingLeft,
		})
	}

	e.snapshots.PublishWrite()
}

// Snapshot returns the latest published render frame. Lock-free; safe from
// any goroutine, but the frame must not be retained across reads.
func (e *Engine) Snapshot() *RenderSnapshot {
	return e.snapshots.AcquireRead()
}

// SetInput replaces the sampled input used by subsequent ticks.
func (e *Engine) SetInput(in InputFrame) {
	e.mu.Lock()
	e.input = in
	e.mu.Unlock()
}

// Pause freezes the simulation clock. Gameplay timers all key off that
// clock, so nothing (cooldowns, waves, reloads) leaks time while paused.
func (e *Engine) Pause() {
	e.mu.Lock()
	e.paused = true
	e.publishSnapshot()
	e.mu.Unlock()
}

// Resume unfreezes the clock.
func (e *Engine) Resume() {
	e.mu.Lock()
	e.paused = false
	e.mu.Unlock()
}

// Paused reports whether the clock is frozen.
func (e *Engine) Paused() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.paused
}

// GameOver reports whether the current run has ended.
func (e *Engine) GameOver() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gameOver
}

// Score returns the current run score, the all-time high, and unspent
// upgrade points.
func (e *Engine) Score() (score, high, points int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.score, e.highScore, e.upgradePoints
}

// PurchaseUpgrade spends upgrade points on one stat increase. It reports
// false for unknown stats or insufficient points.
func (e *Engine) PurchaseUpgrade(stat string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	cost, ok := e.player.UpgradeCosts[stat]
	if !ok || e.upgradePoints < cost {
		return false
	}
	if !e.player.UpgradeStat(stat) {
		return false
	}
	e.upgradePoints -= cost
	e.emit(EventUpgradePurchased, e.now, UpgradePurchasedPayload{
		Stat:     stat,
		Level:    e.player.StatLevels[stat],
		NextCost: e.player.UpgradeCosts[stat],
	})
	return true
}

// Reset starts a fresh run: new player, wave 1, empty field. The high score
// and the RNG stream carry over.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.player = NewPlayer(e.level)
	e.wave = NewWaveState(e.now, e.cfg.WaveDurationMS, e.cfg.IntermissionMS)
	e.enemies = e.enemies[:0]
	e.bullets = e.bullets[:0]
	e.lethals = e.lethals[:0]
	e.explosions = e.explosions[:0]
	e.effects = e.effects[:0]
	e.spit = e.spit[:0]
	e.deaths = e.deaths[:0]
	e.score = 0
	e.upgradePoints = 0
	e.gameOver = false
	e.input = InputFrame{}
	e.emit(EventGameReset, e.now, nil)
	e.publishSnapshot()
}

// AttachEventLog wires a journal to receive every emitted event.
func (e *Engine) AttachEventLog(el *EventLog) {
	e.mu.Lock()
	e.eventLog = el
	e.mu.Unlock()
}

// Subscribe registers a callback for every emitted event. Callbacks run on
// the tick goroutine after the state lock is released; keep them fast.
func (e *Engine) Subscribe(fn func(Event)) {
	e.mu.Lock()
	e.subscribers = append(e.subscribers, fn)
	e.mu.Unlock()
}

// Level returns the environment geometry the engine was built with.
func (e *Engine) Level() *Level { return e.level }

// Seed returns the RNG seed, for replay and diagnostics.
func (e *Engine) Seed() int64 { return e.rngSeed }
