package material

import "sandsim/internal/core"

// Create synthesizes a ready-to-place particle of material id. Colored
// materials derive each channel as lerp(low, high, t) with t drawn from a
// coarse uniform grid, so freshly placed particles vary within a bounded hue.
// Unknown ids panic.
func Create(id ID, rng *core.RNG) Particle {
	info := Lookup(id)
	if id == Empty {
		return EmptyParticle()
	}

	t := float32(0)
	if info.JitterSteps > 0 {
		t = float32(rng.IntRange(0, info.JitterSteps)) / float32(info.JitterSteps)
	}
	p := Particle{ID: id}
	p.Color = Color{
		R: channel(info.Low[0], info.High[0], t),
		G: channel(info.Low[1], info.High[1], t),
		B: channel(info.Low[2], info.High[2], t),
		A: info.Alpha,
	}
	if info.LifeMax > 0 {
		p.Lifetime = core.Lerp(info.LifeMin, info.LifeMax, rng.Float32())
	}
	return p
}

func channel(lo, hi, t float32) uint8 {
	return uint8(core.Clamp(core.Lerp(lo, hi, t), 0, 1) * 255)
}
