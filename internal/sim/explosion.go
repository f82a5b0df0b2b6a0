package sim

// ExplosionSourceBullet marks bursts spawned by explosive weapon rounds
// rather than thrown lethals.
const ExplosionSourceBullet = "bullet"

// Explosion is a transient area burst. All parameters are resolved at
// creation so the lifecycle never consults a catalog again, which also lets
// bullet-spawned bursts carry weapon-specific numbers.
type Explosion struct {
	X, Y       float64 // center
	Source     string  // lethal catalog id or ExplosionSourceBullet
	Created    int64
	DurationMS int64
	Radius     float64
	Damage     float64

	Persistent bool
	PersistMS  int64

	// hit gates damage to once per enemy for the burst's whole lifetime,
	// so a burst lingering across ticks is not a damage multiplier.
	hit map[uint64]struct{}
}

func newLethalExplosion(x, y float64, def LethalDef, now int64) *Explosion {
	return &Explosion{
		X: x, Y: y,
		Source:     def.ID,
		Created:    now,
		DurationMS: def.ExplosionDurationMS,
		Radius:     def.Radius,
		Damage:     def.Damage,
		Persistent: def.Persistent,
		PersistMS:  def.PersistMS,
		hit:        make(map[uint64]struct{}),
	}
}

func newBulletExplosion(x, y, damage, radius float64, now int64) *Explosion {
	return &Explosion{
		X: x, Y: y,
		Source:     ExplosionSourceBullet,
		Created:    now,
		DurationMS: 500,
		Radius:     radius,
		Damage:     damage,
		hit:        make(map[uint64]struct{}),
	}
}

// Expired reports whether the burst's visual lifetime has ended.
func (e *Explosion) Expired(now int64) bool {
	return now-e.Created >= e.DurationMS
}

// MarkHit records an enemy as damaged by this burst. It returns true the
// first time only.
func (e *Explosion) MarkHit(id uint64) bool {
	if e.hit == nil {
		e.hit = make(map[uint64]struct{})
	}
	if _, done := e.hit[id]; done {
		return false
	}
	e.hit[id] = struct{}{}
	return true
}

// PersistentEffect is the ground fire left behind by persistent lethals. It
// deals DamagePerTick with the same radial falloff as the burst, every tick,
// to every enemy inside.
type PersistentEffect struct {
	X, Y          float64 // center
	Source        string
	Started       int64
	DurationMS    int64
	Radius        float64
	DamagePerTick float64
}

// Expired reports whether the effect has burned out.
func (p *PersistentEffect) Expired(now int64) bool {
	return now-p.Started >= p.DurationMS
}

// spawnEffect converts an expired persistent burst into its lingering area
// effect.
func (e *Explosion) spawnEffect(now int64) *PersistentEffect {
	return &PersistentEffect{
		X: e.X, Y: e.Y,
		Source:        e.Source,
		Started:       now,
		DurationMS:    e.PersistMS,
		Radius:        e.Radius,
		DamagePerTick: e.Damage / 10,
	}
}
