package sim

// InputFrame is one tick's worth of already-sampled control state. The core
// performs no device polling; the host samples whatever it likes (keyboard,
// gamepad, network messages) and hands the result here via Engine.SetInput.
type InputFrame struct {
	MoveLeft  bool `json:"moveLeft"`
	MoveRight bool `json:"moveRight"`
	Jump      bool `json:"jump"`

	Fire   bool `json:"fire"`
	Reload bool `json:"reload"`
	Throw  bool `json:"throw"`

	// Aim coordinates in world space. Aimed must be set for them to be used;
	// without it, shots fall back to horizontal fire in the facing direction.
	AimX  float64 `json:"aimX"`
	AimY  float64 `json:"aimY"`
	Aimed bool    `json:"aimed"`

	// Non-empty values request a loadout switch this tick.
	SelectWeapon string `json:"selectWeapon,omitempty"`
	SelectLethal string `json:"selectLethal,omitempty"`
}
