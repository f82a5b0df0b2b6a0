package sim

import (
	"encoding/json"
	"fmt"
)

// EventVersion is bumped when the envelope layout changes incompatibly.
const EventVersion = 1

// EventType discriminates the payload carried by an Event.
type EventType uint8

const (
	EventEnemySpawned EventType = iota
	EventEnemyKilled
	EventPlayerDamaged
	EventPlayerDied
	EventWavePhase
	EventWeaponFired
	EventLethalThrown
	EventExplosionSpawned
	EventScoreChanged
	EventUpgradePurchased
	EventSoundCue
	EventGameReset
)

// String returns the stable wire name for a type.
func (t EventType) String() string {
	switch t {
	case EventEnemySpawned:
		return "enemy_spawned"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventPlayerDamaged:
		return "player_damaged"
	case EventPlayerDied:
		return "player_died"
	case EventWavePhase:
		return "wave_phase"
	case EventWeaponFired:
		return "weapon_fired"
	case EventLethalThrown:
		return "lethal_thrown"
	case EventExplosionSpawned:
		return "explosion_spawned"
	case EventScoreChanged:
		return "score_changed"
	case EventUpgradePurchased:
		return "upgrade_purchased"
	case EventSoundCue:
		return "sound_cue"
	case EventGameReset:
		return "game_reset"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// MarshalJSON emits the string name so stream consumers never see raw enum
// numbers.
func (t EventType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Event is one simulation occurrence. Timestamp is simulation time in ms,
// not wall time; Sequence is assigned by the engine in emission order.
type Event struct {
	Version   uint8           `json:"v"`
	Type      EventType       `json:"type"`
	Timestamp int64           `json:"ts"`
	Sequence  uint64          `json:"seq"`
	Tick      uint64          `json:"tick"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// EnemySpawnedPayload carries the spawn site and kind.
type EnemySpawnedPayload struct {
	ID   uint64  `json:"id"`
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// EnemyKilledPayload carries the death site, kind and score award.
type EnemyKilledPayload struct {
	ID    uint64  `json:"id"`
	Kind  string  `json:"kind"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Score int     `json:"score"`
}

// PlayerDamagedPayload carries the hit amount and remaining health.
type PlayerDamagedPayload struct {
	Amount int `json:"amount"`
	Health int `json:"health"`
}

// PlayerDiedPayload carries final run numbers.
type PlayerDiedPayload struct {
	Score     int `json:"score"`
	Wave      int `json:"wave"`
	HighScore int `json:"highScore"`
}

// WavePhasePayload announces a phase edge.
type WavePhasePayload struct {
	Wave  int    `json:"wave"`
	Phase string `json:"phase"`
	Bonus int    `json:"bonus,omitempty"`
}

// WeaponFiredPayload carries the shot origin and remaining ammo.
type WeaponFiredPayload struct {
	Weapon string `json:"weapon"`
	Ammo   int    `json:"ammo"`
}

// LethalThrownPayload carries the throwable id and remaining count.
type LethalThrownPayload struct {
	Lethal    string `json:"lethal"`
	Remaining int    `json:"remaining"`
}

// ExplosionSpawnedPayload carries the burst site and source.
type ExplosionSpawnedPayload struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Source string  `json:"source"`
	Radius float64 `json:"radius"`
}

// ScoreChangedPayload carries the score delta and new totals.
type ScoreChangedPayload struct {
	Delta  int `json:"delta"`
	Score  int `json:"score"`
	Points int `json:"points"`
}

// UpgradePurchasedPayload carries the stat bought and its next price.
type UpgradePurchasedPayload struct {
	Stat     string `json:"stat"`
	Level    int    `json:"level"`
	NextCost int    `json:"nextCost"`
}

// SoundCuePayload names an audio cue for the host to play. The core never
// touches audio devices; cues are advisory.
type SoundCuePayload struct {
	Sound string `json:"sound"`
}

func encodePayload(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		// payload structs are plain data; a marshal failure is a
		// programming error worth surfacing loudly in the stream
		return json.RawMessage(fmt.Sprintf(`{"error":%q}`, err.Error()))
	}
	return data
}
