package sim

import (
	"fmt"
	"math"
)

// WavePhase is the wave machine position.
type WavePhase uint8

const (
	// WaveActive is the combat phase: enemies spawn, difficulty ramps.
	WaveActive WavePhase = iota
	// WaveIntermission is the breather between waves: no spawns.
	WaveIntermission
)

// String returns the stable lowercase name used in saves and events.
func (p WavePhase) String() string {
	switch p {
	case WaveActive:
		return "active"
	case WaveIntermission:
		return "intermission"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
}

// ParseWavePhase maps a stable name back to its phase, for save loading.
func ParseWavePhase(s string) (WavePhase, bool) {
	switch s {
	case "active":
		return WaveActive, true
	case "intermission":
		return WaveIntermission, true
	}
	return 0, false
}

// WaveTransition is what WaveState.Tick observed this tick.
type WaveTransition uint8

const (
	WaveNoChange WaveTransition = iota
	// WaveEnded fires on the active-to-intermission edge.
	WaveEnded
	// WaveStarted fires on the intermission-to-active edge, after the wave
	// number has been advanced.
	WaveStarted
)

// WaveState is the alternating active/intermission cycle plus the difficulty
// ramp derived from it.
type WaveState struct {
	Number         int
	Phase          WavePhase
	PhaseStart     int64 // sim ms when the current phase began
	DurationMS     int64 // active phase length
	IntermissionMS int64

	// Completion is 0..100 percent of the active phase elapsed; it clamps
	// at 100 and resets when a new wave starts.
	Completion float64

	// SpawnRate is the difficulty multiplier 1.0..2.0, recomputed every
	// active tick as 1 + Completion/100.
	SpawnRate float64
}

// NewWaveState starts the cycle at wave 1, active, zero completion.
func NewWaveState(now, durationMS, intermissionMS int64) *WaveState {
	return &WaveState{
		Number:         1,
		Phase:          WaveActive,
		PhaseStart:     now,
		DurationMS:     durationMS,
		IntermissionMS: intermissionMS,
		SpawnRate:      1,
	}
}

// Tick advances the phase machine one step and reports any phase edge so the
// caller can clear the field or run replenishment.
func (w *WaveState) Tick(now int64) WaveTransition {
	switch w.Phase {
	case WaveActive:
		elapsed := now - w.PhaseStart
		w.Completion = clampF(100*float64(elapsed)/float64(w.DurationMS), 0, 100)
		w.SpawnRate = 1 + w.Completion/100
		if elapsed >= w.DurationMS {
			w.Phase = WaveIntermission
			w.PhaseStart = now
			return WaveEnded
		}
	case WaveIntermission:
		if now-w.PhaseStart >= w.IntermissionMS {
			w.Number++
			w.Phase = WaveActive
			w.PhaseStart = now
			w.Completion = 0
			w.SpawnRate = 1
			return WaveStarted
		}
	}
	return WaveNoChange
}

// AdjustedSpawnWeight divides a catalog spawn weight by the difficulty
// multiplier, floored at 1 so every kind always has some spawn chance. The
// per-tick spawn roll is then a 1-in-adjusted chance.
func AdjustedSpawnWeight(weight int, multiplier float64) int {
	if weight < 1 {
		weight = 1
	}
	if multiplier < 1 {
		multiplier = 1
	}
	adjusted := int(math.Round(float64(weight) / multiplier))
	if adjusted < 1 {
		return 1
	}
	return adjusted
}
