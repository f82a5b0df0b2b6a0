package sim

import (
	"fmt"
	"math"
	"sort"
)

// WeaponDef is the immutable catalog entry for one firearm.
type WeaponDef struct {
	ID             string
	Name           string
	MaxAmmo        int
	Damage         float64
	BulletSpeed    float64
	Pellets        int
	ReloadMS       int64
	Auto           bool
	FireIntervalMS int64
	BulletW        float64
	BulletH        float64

	// Explosive weapons arc their projectiles and detonate on impact.
	Explosive       bool
	ExplosionRadius float64
	ExplosionDamage float64

	SoundID string
}

const DefaultWeaponID = "pistol"

var weaponCatalog = map[string]WeaponDef{
	"pistol": {
		ID: "pistol", Name: "Pistol",
		MaxAmmo: 6, Damage: 1, BulletSpeed: 15, Pellets: 1,
		ReloadMS: 1200, FireIntervalMS: 250,
		BulletW: 10, BulletH: 5,
		SoundID: "shot-pistol",
	},
	"shotgun": {
		ID: "shotgun", Name: "Shotgun",
		MaxAmmo: 2, Damage: 1, BulletSpeed: 13, Pellets: 5,
		ReloadMS: 1800, FireIntervalMS: 600,
		BulletW: 8, BulletH: 4,
		SoundID: "shot-shotgun",
	},
	"smg": {
		ID: "smg", Name: "SMG",
		MaxAmmo: 30, Damage: 0.5, BulletSpeed: 16, Pellets: 1,
		ReloadMS: 1600, Auto: true, FireIntervalMS: 90,
		BulletW: 8, BulletH: 4,
		SoundID: "shot-smg",
	},
	"rifle": {
		ID: "rifle", Name: "Rifle",
		MaxAmmo: 12, Damage: 1.5, BulletSpeed: 18, Pellets: 1,
		ReloadMS: 1500, Auto: true, FireIntervalMS: 180,
		BulletW: 12, BulletH: 5,
		SoundID: "shot-rifle",
	},
	"sniper": {
		ID: "sniper", Name: "Sniper",
		MaxAmmo: 4, Damage: 4, BulletSpeed: 25, Pellets: 1,
		ReloadMS: 2400, FireIntervalMS: 900,
		BulletW: 14, BulletH: 5,
		SoundID: "shot-sniper",
	},
	"launcher": {
		ID: "launcher", Name: "Launcher",
		MaxAmmo: 1, Damage: 2, BulletSpeed: 11, Pellets: 1,
		ReloadMS: 2600, FireIntervalMS: 1000,
		BulletW: 16, BulletH: 8,
		Explosive: true, ExplosionRadius: 80, ExplosionDamage: 30,
		SoundID: "shot-launcher",
	},
}

// WeaponByID looks up a weapon. The ok form exists for save-file validation,
// where unknown ids must degrade gracefully.
func WeaponByID(id string) (WeaponDef, bool) {
	w, ok := weaponCatalog[id]
	return w, ok
}

// MustWeapon is for ids the engine itself produced; an unknown id there is a
// content bug.
func MustWeapon(id string) WeaponDef {
	w, ok := weaponCatalog[id]
	if !ok {
		panic(fmt.Sprintf("sim: unknown weapon %q", id))
	}
	return w
}

// AllWeapons returns the catalog sorted by id for deterministic iteration.
func AllWeapons() []WeaponDef {
	defs := make([]WeaponDef, 0, len(weaponCatalog))
	for _, w := range weaponCatalog {
		defs = append(defs, w)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// LethalDef is the immutable catalog entry for one throwable consumable.
type LethalDef struct {
	ID         string
	Name       string
	Damage     float64
	Radius     float64
	ThrowSpeed float64

	// ExplosionDurationMS is how long the burst itself lingers. Persistent
	// lethals then leave an area effect behind for PersistMS, ticking
	// Damage/10 per tick.
	ExplosionDurationMS int64
	Persistent          bool
	PersistMS           int64

	CarryCap     int
	RefillAmount int
	SoundID      string
}

const DefaultLethalID = "grenade"

var lethalCatalog = map[string]LethalDef{
	"grenade": {
		ID: "grenade", Name: "Grenade",
		Damage: 50, Radius: 100, ThrowSpeed: 14,
		ExplosionDurationMS: 500,
		CarryCap:            5, RefillAmount: 2,
		SoundID: "boom-grenade",
	},
	"molotov": {
		ID: "molotov", Name: "Molotov",
		Damage: 20, Radius: 80, ThrowSpeed: 12,
		ExplosionDurationMS: 400,
		Persistent:          true, PersistMS: 4000,
		CarryCap: 3, RefillAmount: 1,
		SoundID: "boom-molotov",
	},
}

// LethalByID looks up a lethal; the ok form is for save-file validation.
func LethalByID(id string) (LethalDef, bool) {
	d, ok := lethalCatalog[id]
	return d, ok
}

// MustLethal is for ids the engine itself produced.
func MustLethal(id string) LethalDef {
	d, ok := lethalCatalog[id]
	if !ok {
		panic(fmt.Sprintf("sim: unknown lethal %q", id))
	}
	return d
}

// AllLethals returns the catalog sorted by id.
func AllLethals() []LethalDef {
	defs := make([]LethalDef, 0, len(lethalCatalog))
	for _, d := range lethalCatalog {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// shotgunSpreadRad is the total arc multi-pellet weapons fan across.
const shotgunSpreadRad = 20 * math.Pi / 180
