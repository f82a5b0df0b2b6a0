package sim

import "testing"

func TestWaveCompletionRamp(t *testing.T) {
	w := NewWaveState(0, 30_000, 60_000)

	t.Run("starts at zero", func(t *testing.T) {
		if w.Completion != 0 {
			t.Errorf("completion = %v, want 0", w.Completion)
		}
		if w.SpawnRate != 1 {
			t.Errorf("spawn rate = %v, want 1", w.SpawnRate)
		}
	})

	t.Run("halfway", func(t *testing.T) {
		w.Tick(15_000)
		if w.Completion != 50 {
			t.Errorf("completion = %v, want 50", w.Completion)
		}
		if w.SpawnRate != 1.5 {
			t.Errorf("spawn rate = %v, want 1.5", w.SpawnRate)
		}
	})

	t.Run("never exceeds bounds", func(t *testing.T) {
		probe := NewWaveState(0, 30_000, 60_000)
		for ts := int64(0); ts <= 29_000; ts += 1000 {
			probe.Tick(ts)
			if probe.Completion < 0 || probe.Completion > 100 {
				t.Fatalf("completion %v out of range at t=%d", probe.Completion, ts)
			}
			if probe.SpawnRate < 1 || probe.SpawnRate > 2 {
				t.Fatalf("spawn rate %v out of range at t=%d", probe.SpawnRate, ts)
			}
		}
	})
}

func TestWavePhaseTransitions(t *testing.T) {
	w := NewWaveState(0, 30_000, 60_000)

	if got := w.Tick(29_999); got != WaveNoChange {
		t.Errorf("before duration: transition = %v, want no change", got)
	}
	if got := w.Tick(30_000); got != WaveEnded {
		t.Errorf("at duration: transition = %v, want ended", got)
	}
	if w.Phase != WaveIntermission {
		t.Errorf("phase = %v, want intermission", w.Phase)
	}

	if got := w.Tick(89_999); got != WaveNoChange {
		t.Errorf("during intermission: transition = %v, want no change", got)
	}
	if got := w.Tick(90_000); got != WaveStarted {
		t.Errorf("after intermission: transition = %v, want started", got)
	}
	if w.Number != 2 {
		t.Errorf("wave number = %d, want 2", w.Number)
	}
	if w.Completion != 0 || w.SpawnRate != 1 {
		t.Errorf("new wave not reset: completion=%v rate=%v", w.Completion, w.SpawnRate)
	}
}

func TestAdjustedSpawnWeight(t *testing.T) {
	tests := []struct {
		name       string
		weight     int
		multiplier float64
		want       int
	}{
		{"no ramp", 30, 1.0, 30},
		{"full ramp halves weight", 30, 2.0, 15},
		{"floors at one", 1, 2.0, 1},
		{"zero weight clamps", 0, 1.0, 1},
		{"sub-one multiplier clamps", 30, 0.5, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdjustedSpawnWeight(tt.weight, tt.multiplier); got != tt.want {
				t.Errorf("AdjustedSpawnWeight(%d, %v) = %d, want %d", tt.weight, tt.multiplier, got, tt.want)
			}
		})
	}
}

func TestWaveCycleThroughEngine(t *testing.T) {
	e := NewEngine(Config{TickRate: 10, WaveDurationMS: 1000, IntermissionMS: 1000, Seed: 7})

	// drain ammo and health so replenishment is observable
	e.player.Health = 5
	e.player.Ammo["pistol"] = 0
	e.player.Lethals["grenade"] = 0
	scoreBefore := e.score

	for i := 0; i < 10; i++ { // cross the active->intermission edge
		e.Step()
	}
	if e.wave.Phase != WaveIntermission {
		t.Fatalf("phase = %v, want intermission", e.wave.Phase)
	}
	if len(e.enemies) != 0 {
		t.Errorf("enemies not cleared at wave end: %d", len(e.enemies))
	}
	if e.score < scoreBefore+waveBonusPerWave {
		t.Errorf("score = %d, want at least %d bonus", e.score, waveBonusPerWave)
	}

	for i := 0; i < 10; i++ { // cross the intermission->active edge
		e.Step()
	}
	if e.wave.Number != 2 {
		t.Fatalf("wave number = %d, want 2", e.wave.Number)
	}
	if e.player.Health != 6 {
		t.Errorf("health = %d, want 6 after replenish heal", e.player.Health)
	}
	if e.player.Ammo["pistol"] != 3 {
		t.Errorf("pistol ammo = %d, want 3 (half magazine)", e.player.Ammo["pistol"])
	}
	if e.player.Lethals["grenade"] != 2 {
		t.Errorf("grenades = %d, want 2 after refill", e.player.Lethals["grenade"])
	}
}

func TestReplenishCapsAtLimits(t *testing.T) {
	e := NewEngine(Config{Seed: 1})
	e.player.Ammo["pistol"] = 5 // max 6
	e.player.Lethals["grenade"] = 5
	e.player.Lethals["molotov"] = 3
	e.player.Health = e.player.MaxHealth

	e.replenish()

	if got := e.player.Ammo["pistol"]; got != 6 {
		t.Errorf("pistol ammo = %d, want capped at 6", got)
	}
	if got := e.player.Lethals["grenade"]; got != 5 {
		t.Errorf("grenades = %d, want capped at 5", got)
	}
	if got := e.player.Lethals["molotov"]; got != 3 {
		t.Errorf("molotovs = %d, want capped at 3", got)
	}
	if e.player.Health != e.player.MaxHealth {
		t.Errorf("health = %d, want capped at max %d", e.player.Health, e.player.MaxHealth)
	}
}
