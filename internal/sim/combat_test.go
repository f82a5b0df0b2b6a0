package sim

import "testing"

func TestExplosionFalloff(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"center", 0, 50},
		{"half radius", 50, 25},
		{"at radius", 100, 0},
		{"beyond radius", 150, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExplosionFalloff(50, tt.distance, 100); got != tt.want {
				t.Errorf("ExplosionFalloff(50, %v, 100) = %v, want %v", tt.distance, got, tt.want)
			}
		})
	}

	t.Run("monotonically non-increasing", func(t *testing.T) {
		prev := ExplosionFalloff(50, 0, 100)
		for d := 1.0; d <= 120; d++ {
			cur := ExplosionFalloff(50, d, 100)
			if cur > prev {
				t.Fatalf("falloff increased at distance %v: %v > %v", d, cur, prev)
			}
			prev = cur
		}
	})

	t.Run("degenerate radius", func(t *testing.T) {
		if got := ExplosionFalloff(50, 0, 0); got != 0 {
			t.Errorf("zero radius falloff = %v, want 0", got)
		}
	})
}

func TestStatsScaling(t *testing.T) {
	base := DefaultStats()

	t.Run("baseline is identity", func(t *testing.T) {
		if got := base.EffectiveDamage(3); got != 3 {
			t.Errorf("damage = %v, want 3", got)
		}
		if got := base.EffectiveFireInterval(250); got != 250 {
			t.Errorf("fire interval = %v, want 250", got)
		}
		if got := base.EffectiveReload(1200); got != 1200 {
			t.Errorf("reload = %v, want 1200", got)
		}
		if got := base.EffectiveMoveSpeed(5); got != 5 {
			t.Errorf("move speed = %v, want 5", got)
		}
	})

	t.Run("upgraded stats shorten timers", func(t *testing.T) {
		s := Stats{Damage: 2, FireRate: 2, ReloadSpeed: 2, MoveSpeed: 1.5}
		if got := s.EffectiveDamage(3); got != 6 {
			t.Errorf("damage = %v, want 6", got)
		}
		if got := s.EffectiveFireInterval(250); got != 125 {
			t.Errorf("fire interval = %v, want 125", got)
		}
		if got := s.EffectiveReload(1200); got != 600 {
			t.Errorf("reload = %v, want 600", got)
		}
		if got := s.EffectiveMoveSpeed(5); got != 7.5 {
			t.Errorf("move speed = %v, want 7.5", got)
		}
	})
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlapping", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"contained", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"edge touching", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"disjoint", Rect{X: 20, Y: 20, W: 5, H: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps(%+v) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}
}
