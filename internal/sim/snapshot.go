package sim

import "sync/atomic"

// ResourceLimits caps how many of each entity the engine will track. The
// caps protect the tick budget when spawn rates or weapon fire go
// pathological; at the limit, new spawns are silently skipped.
type ResourceLimits struct {
	MaxEnemies    int
	MaxBullets    int
	MaxLethals    int
	MaxExplosions int
	MaxEffects    int
	MaxSpit       int
	MaxDeaths     int
}

// DefaultLimits are generous for normal play.
var DefaultLimits = ResourceLimits{
	MaxEnemies:    150,
	MaxBullets:    200,
	MaxLethals:    20,
	MaxExplosions: 50,
	MaxEffects:    30,
	MaxSpit:       60,
	MaxDeaths:     40,
}

// EnemySnapshot is an immutable enemy copy for rendering.
type EnemySnapshot struct {
	ID     uint64  `json:"id"`
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	Health float64 `json:"health"`
	MaxHP  float64 `json:"maxHealth"`
	State  string  `json:"state"`
}

// BulletSnapshot is an immutable bullet copy for rendering.
type BulletSnapshot struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	W         float64 `json:"w"`
	H         float64 `json:"h"`
	Angle     float64 `json:"angle"`
	Explosive bool    `json:"explosive,omitempty"`
}

// LethalSnapshot is an immutable thrown-lethal copy for rendering.
type LethalSnapshot struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// ExplosionSnapshot is an immutable burst copy for rendering.
type ExplosionSnapshot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Source string  `json:"source"`
	AgeMS  int64   `json:"ageMs"`
}

// EffectSnapshot is an immutable persistent-area-effect copy for rendering.
type EffectSnapshot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Source string  `json:"source"`
	AgeMS  int64   `json:"ageMs"`
}

// SpitSnapshot is an immutable enemy-projectile copy for rendering.
type SpitSnapshot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DeathSnapshot is an in-progress death animation for rendering.
type DeathSnapshot struct {
	Kind       string  `json:"kind"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	AgeMS      int64   `json:"ageMs"`
	DurationMS int64   `json:"durationMs"`
	FacingLeft bool    `json:"facingLeft"`
}

// PlayerSnapshot is an immutable player copy for rendering.
type PlayerSnapshot struct {
	X             float64        `json:"x"`
	Y             float64        `json:"y"`
	W             float64        `json:"w"`
	H             float64        `json:"h"`
	FacingLeft    bool           `json:"facingLeft"`
	OnGround      bool           `json:"onGround"`
	Health        int            `json:"health"`
	MaxHealth     int            `json:"maxHealth"`
	Weapon        string         `json:"weapon"`
	Lethal        string         `json:"lethal"`
	Ammo          map[string]int `json:"ammo"`
	Lethals       map[string]int `json:"lethals"`
	Reloading     bool           `json:"reloading"`
	Stats         Stats          `json:"stats"`
	UpgradeCosts  map[string]int `json:"upgradeCosts"`
	UpgradePoints int            `json:"upgradePoints"`
}

// WaveSnapshot is an immutable wave-machine copy for rendering.
type WaveSnapshot struct {
	Number      int     `json:"number"`
	Phase       string  `json:"phase"`
	Completion  float64 `json:"completion"`
	SpawnRate   float64 `json:"spawnRate"`
	PhaseMS     int64   `json:"phaseMs"` // time elapsed in the current phase
	RemainingMS int64   `json:"remainingMs"`
}

// RenderSnapshot is one complete immutable frame of simulation state. All
// slices are pre-allocated to the resource limits and reused; consumers must
// not retain a snapshot across frames.
type RenderSnapshot struct {
	Sequence uint64 `json:"seq"`
	Tick     uint64 `json:"tick"`
	Now      int64  `json:"now"` // simulation clock, ms
	Paused   bool   `json:"paused"`
	GameOver bool   `json:"gameOver"`

	Score     int `json:"score"`
	HighScore int `json:"highScore"`

	Wave   WaveSnapshot   `json:"wave"`
	Player PlayerSnapshot `json:"player"`

	Enemies    []EnemySnapshot     `json:"enemies"`
	Bullets    []BulletSnapshot    `json:"bullets"`
	Lethals    []LethalSnapshot    `json:"lethals"`
	Explosions []ExplosionSnapshot `json:"explosions"`
	Effects    []EffectSnapshot    `json:"effects"`
	Spit       []SpitSnapshot      `json:"spit"`
	Deaths     []DeathSnapshot     `json:"deaths"`
}

// SnapshotPool triple-buffers frames for a lock-free single-producer,
// single-consumer handoff: the tick goroutine writes, renderers read the
// latest published frame without ever blocking the tick.
type SnapshotPool struct {
	frames   [3]RenderSnapshot
	limits   ResourceLimits
	writeIdx uint32 // atomic
	readIdx  uint32 // atomic
	sequence uint64 // atomic
}

// NewSnapshotPool pre-allocates all three frames at the given limits.
func NewSnapshotPool(limits ResourceLimits) *SnapshotPool {
	pool := &SnapshotPool{limits: limits}
	for i := range pool.frames {
		pool.frames[i] = RenderSnapshot{
			Enemies:    make([]EnemySnapshot, 0, limits.MaxEnemies),
			Bullets:    make([]BulletSnapshot, 0, limits.MaxBullets),
			Lethals:    make([]LethalSnapshot, 0, limits.MaxLethals),
			Explosions: make([]ExplosionSnapshot, 0, limits.MaxExplosions),
			Effects:    make([]EffectSnapshot, 0, limits.MaxEffects),
			Spit:       make([]SpitSnapshot, 0, limits.MaxSpit),
			Deaths:     make([]DeathSnapshot, 0, limits.MaxDeaths),
		}
	}
	return pool
}

// AcquireWrite returns the next frame to fill, with slices reset but
// capacity preserved. Producer only.
func (p *SnapshotPool) AcquireWrite() *RenderSnapshot {
	idx := atomic.AddUint32(&p.writeIdx, 1) % 3
	snap := &p.frames[idx]
	snap.Enemies = snap.Enemies[:0]
	snap.Bullets = snap.Bullets[:0]
	snap.Lethals = snap.Lethals[:0]
	snap.Explosions = snap.Explosions[:0]
	snap.Effects = snap.Effects[:0]
	snap.Spit = snap.Spit[:0]
	snap.Deaths = snap.Deaths[:0]
	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	return snap
}

// PublishWrite makes the just-filled frame visible to readers.
func (p *SnapshotPool) PublishWrite() {
	atomic.StoreUint32(&p.readIdx, atomic.LoadUint32(&p.writeIdx))
}

// AcquireRead returns the latest published frame. Consumer only.
func (p *SnapshotPool) AcquireRead() *RenderSnapshot {
	idx := atomic.LoadUint32(&p.readIdx) % 3
	return &p.frames[idx]
}

// Limits returns the pool's resource limits.
func (p *SnapshotPool) Limits() ResourceLimits {
	return p.limits
}
