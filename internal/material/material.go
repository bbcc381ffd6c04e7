// Package material defines the substances a cell can hold, their static
// properties, and the factories that synthesize new particles.
package material

import (
	"fmt"
	"strings"
)

// ID identifies a material kind.
type ID uint8

const (
	Empty ID = iota
	Sand
	Water
	Salt
	Wood
	Fire
	Smoke
	Ember
	Steam
	Gunpowder
	Oil
	Lava
	Stone
	Acid

	// Count is the number of declared materials.
	Count
)

// Class is the coarse density grouping used for swap eligibility.
type Class uint8

const (
	ClassNone Class = iota
	ClassSolid
	ClassPowder
	ClassLiquid
	ClassGas
)

func (c Class) String() string {
	switch c {
	case ClassSolid:
		return "solid"
	case ClassPowder:
		return "powder"
	case ClassLiquid:
		return "liquid"
	case ClassGas:
		return "gas"
	default:
		return "none"
	}
}

// Info holds the static properties of a material.
type Info struct {
	Name  string
	Class Class
	// Density orders mobile materials for displacement; heavier sinks.
	Density float32

	// Low and High bound the per-channel color jitter, in unit floats.
	Low, High [3]float32
	Alpha     uint8
	// JitterSteps is the resolution of the random interpolation factor.
	JitterSteps int

	// Flammability is the per-tick chance of catching fire next to a flame.
	Flammability float64

	LifeMin, LifeMax float32
}

func rgb(r, g, b uint8) [3]float32 {
	return [3]float32{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}

var table = [Count]Info{
	Empty: {Name: "empty", Class: ClassNone},
	Sand: {
		Name: "sand", Class: ClassPowder, Density: 1.6,
		Low: [3]float32{0.8, 0.5, 0.2}, High: [3]float32{1.0, 0.6, 0.25},
		Alpha: 255, JitterSteps: 10,
	},
	Water: {
		Name: "water", Class: ClassLiquid, Density: 1.0,
		Low: [3]float32{0.1, 0.3, 0.7}, High: [3]float32{0.15, 0.35, 0.8},
		Alpha: 255, JitterSteps: 2,
	},
	Salt: {
		Name: "salt", Class: ClassPowder, Density: 1.5,
		Low: [3]float32{0.9, 0.8, 0.8}, High: [3]float32{1.0, 0.85, 0.9},
		Alpha: 255, JitterSteps: 2,
	},
	Wood: {
		Name: "wood", Class: ClassSolid, Density: 0.7,
		Low: [3]float32{0.23, 0.15, 0.02}, High: [3]float32{0.25, 0.18, 0.03},
		Alpha: 255, JitterSteps: 2, Flammability: 0.05,
	},
	Fire: {
		Name: "fire", Class: ClassGas, Density: 0.02,
		Low: rgb(150, 20, 0), High: rgb(200, 60, 0),
		Alpha: 255, JitterSteps: 4,
		LifeMin: 0.3, LifeMax: 0.8,
	},
	Smoke: {
		Name: "smoke", Class: ClassGas, Density: 0.05,
		Low: rgb(50, 50, 50), High: rgb(70, 70, 70),
		Alpha: 255, JitterSteps: 2,
		LifeMin: 1.0, LifeMax: 2.5,
	},
	Ember: {
		Name: "ember", Class: ClassPowder, Density: 1.2,
		Low: rgb(200, 120, 20), High: rgb(230, 150, 30),
		Alpha: 255, JitterSteps: 2,
		LifeMin: 0.5, LifeMax: 1.5,
	},
	Steam: {
		Name: "steam", Class: ClassGas, Density: 0.03,
		Low: rgb(220, 220, 250), High: rgb(235, 235, 255),
		Alpha: 255, JitterSteps: 2,
		LifeMin: 1.5, LifeMax: 3.0,
	},
	Gunpowder: {
		Name: "gunpowder", Class: ClassPowder, Density: 1.4,
		Low: [3]float32{0.15, 0.15, 0.15}, High: [3]float32{0.2, 0.2, 0.2},
		Alpha: 255, JitterSteps: 2, Flammability: 1,
	},
	Oil: {
		Name: "oil", Class: ClassLiquid, Density: 0.8,
		Low: [3]float32{0.12, 0.10, 0.08}, High: [3]float32{0.15, 0.12, 0.10},
		Alpha: 255, JitterSteps: 2, Flammability: 0.25,
	},
	Lava: {
		Name: "lava", Class: ClassLiquid, Density: 2.5,
		Low: rgb(200, 50, 0), High: rgb(230, 80, 10),
		Alpha: 255, JitterSteps: 4,
		LifeMin: 8, LifeMax: 16,
	},
	Stone: {
		Name: "stone", Class: ClassSolid, Density: 2.6,
		Low: [3]float32{0.5, 0.5, 0.5}, High: [3]float32{0.65, 0.65, 0.65},
		Alpha: 255, JitterSteps: 2,
	},
	Acid: {
		Name: "acid", Class: ClassLiquid, Density: 1.1,
		Low: [3]float32{0.05, 0.8, 0.1}, High: [3]float32{0.06, 0.85, 0.12},
		Alpha: 200, JitterSteps: 2,
	},
}

// Valid reports whether id names a declared material.
func Valid(id ID) bool { return id < Count }

// Lookup returns the static properties of id. Unknown ids are a programming
// error and panic.
func Lookup(id ID) Info {
	if !Valid(id) {
		panic(fmt.Sprintf("material: unknown id %d", id))
	}
	return table[id]
}

func (id ID) String() string {
	if !Valid(id) {
		return fmt.Sprintf("material(%d)", uint8(id))
	}
	return table[id].Name
}

// Parse resolves a material by its name, case-insensitively.
func Parse(name string) (ID, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for id := Empty; id < Count; id++ {
		if table[id].Name == name {
			return id, true
		}
	}
	return Empty, false
}

// All lists every declared material, EMPTY first.
func All() []ID {
	ids := make([]ID, 0, Count)
	for id := Empty; id < Count; id++ {
		ids = append(ids, id)
	}
	return ids
}

// ClassOf returns the density class of id.
func ClassOf(id ID) Class { return Lookup(id).Class }

// IsLiquid reports whether id flows as a liquid.
func IsLiquid(id ID) bool { return Valid(id) && table[id].Class == ClassLiquid }

// IsGas reports whether id rises as a gas.
func IsGas(id ID) bool { return Valid(id) && table[id].Class == ClassGas }

// IsMobile reports whether particles of id can be displaced by heavier ones.
func IsMobile(id ID) bool {
	if !Valid(id) {
		return false
	}
	c := table[id].Class
	return c == ClassLiquid || c == ClassGas
}

// IsSolidLike reports whether id is a solid or powder, the classes acid
// corrodes.
func IsSolidLike(id ID) bool {
	if !Valid(id) {
		return false
	}
	c := table[id].Class
	return c == ClassSolid || c == ClassPowder
}

// IsFlammable reports whether id can be ignited.
func IsFlammable(id ID) bool { return Valid(id) && table[id].Flammability > 0 }
