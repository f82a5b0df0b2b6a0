package sim

import "fmt"

// EnemyKind identifies an entry in the enemy catalog.
type EnemyKind uint8

const (
	EnemyWalker EnemyKind = iota
	EnemyBrute
	EnemyRunner
	EnemyCrawler
	EnemyLeaper
	EnemySpitter
	enemyKindCount
)

// String returns the stable lowercase name used in saves and events.
func (k EnemyKind) String() string {
	switch k {
	case EnemyWalker:
		return "walker"
	case EnemyBrute:
		return "brute"
	case EnemyRunner:
		return "runner"
	case EnemyCrawler:
		return "crawler"
	case EnemyLeaper:
		return "leaper"
	case EnemySpitter:
		return "spitter"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// ParseEnemyKind maps a stable name back to its kind. Used when loading
// saves, where unrecognized names must be tolerated.
func ParseEnemyKind(s string) (EnemyKind, bool) {
	for k := EnemyKind(0); k < enemyKindCount; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Base hitbox dimensions scaled by each kind's SizeScale.
const (
	baseEnemyWidth  = 60.0
	baseEnemyHeight = 80.0
)

// JumpSpec is the parameter block for kinds with the jump capability.
type JumpSpec struct {
	Height     float64 // launch speed, applied as negative vertical velocity
	CooldownMS int64
}

// SpitSpec is the parameter block for kinds with the ranged spit attack.
// MinRange keeps point-blank enemies melee-only.
type SpitSpec struct {
	Damage     int
	Speed      float64
	CooldownMS int64
	Range      float64
	MinRange   float64
}

// EnemyDef is the immutable catalog entry for one enemy kind. Behavior code
// reads capabilities from here; a nil Jump or Spit means the kind lacks that
// capability entirely.
type EnemyDef struct {
	Kind          EnemyKind
	Name          string
	MaxHealth     float64
	ContactDamage int
	Speed         float64
	SizeScale     float64
	SpawnWeight   int // lower weights spawn more often
	DirectMover   bool
	Jump          *JumpSpec
	Spit          *SpitSpec
	ScoreValue    int
	SoundID       string
}

// Width returns the scaled hitbox width.
func (d EnemyDef) Width() float64 { return baseEnemyWidth * d.SizeScale }

// Height returns the scaled hitbox height.
func (d EnemyDef) Height() float64 { return baseEnemyHeight * d.SizeScale }

var enemyCatalog = [enemyKindCount]EnemyDef{
	EnemyWalker: {
		Kind:          EnemyWalker,
		Name:          "Walker",
		MaxHealth:     1,
		ContactDamage: 1,
		Speed:         2,
		SizeScale:     1,
		SpawnWeight:   30,
		ScoreValue:    10,
		SoundID:       "groan-low",
	},
	EnemyBrute: {
		Kind:          EnemyBrute,
		Name:          "Brute",
		MaxHealth:     3,
		ContactDamage: 2,
		Speed:         1,
		SizeScale:     1.6,
		SpawnWeight:   60,
		ScoreValue:    30,
		SoundID:       "groan-deep",
	},
	EnemyRunner: {
		Kind:          EnemyRunner,
		Name:          "Runner",
		MaxHealth:     1,
		ContactDamage: 1,
		Speed:         4,
		SizeScale:     0.85,
		SpawnWeight:   45,
		ScoreValue:    15,
		SoundID:       "shriek",
	},
	EnemyCrawler: {
		Kind:          EnemyCrawler,
		Name:          "Crawler",
		MaxHealth:     1,
		ContactDamage: 1,
		Speed:         2.5,
		SizeScale:     0.7,
		SpawnWeight:   50,
		DirectMover:   true,
		ScoreValue:    15,
		SoundID:       "hiss",
	},
	EnemyLeaper: {
		Kind:          EnemyLeaper,
		Name:          "Leaper",
		MaxHealth:     2,
		ContactDamage: 1,
		Speed:         3,
		SizeScale:     0.9,
		SpawnWeight:   55,
		Jump:          &JumpSpec{Height: 15, CooldownMS: 3000},
		ScoreValue:    25,
		SoundID:       "snarl",
	},
	EnemySpitter: {
		Kind:          EnemySpitter,
		Name:          "Spitter",
		MaxHealth:     2,
		ContactDamage: 1,
		Speed:         1.5,
		SizeScale:     1.1,
		SpawnWeight:   65,
		Spit:          &SpitSpec{Damage: 1, Speed: 6, CooldownMS: 2500, Range: 350, MinRange: 100},
		ScoreValue:    25,
		SoundID:       "gurgle",
	},
}

// EnemyDefOf returns the catalog entry for a kind. An out-of-range kind is a
// content bug, not a runtime condition, so it panics.
func EnemyDefOf(k EnemyKind) EnemyDef {
	if k >= enemyKindCount {
		panic(fmt.Sprintf("sim: unknown enemy kind %d", uint8(k)))
	}
	return enemyCatalog[k]
}

// AllEnemyDefs returns the catalog in kind order.
func AllEnemyDefs() []EnemyDef {
	defs := make([]EnemyDef, enemyKindCount)
	copy(defs, enemyCatalog[:])
	return defs
}
