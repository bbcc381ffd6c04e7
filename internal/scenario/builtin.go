package scenario

import (
	"slices"

	"sandsim/internal/core"
	"sandsim/internal/material"
	"sandsim/internal/sims/sand"

	"github.com/aquilax/go-perlin"
)

func init() {
	Register(Scenario{Name: "empty", Description: "Blank grid", Build: func(*sand.World) {}})
	Register(Scenario{Name: "hourglass", Description: "Sand draining through a stone funnel", Build: buildHourglass})
	Register(Scenario{Name: "dunes", Description: "Rolling sand dunes with pooled water", Build: buildDunes})
	Register(Scenario{Name: "volcano", Description: "Lava vent in a stone cone with a forest", Build: buildVolcano})
	Register(Scenario{Name: "reservoir", Description: "Water and oil held back by a stone dam", Build: buildReservoir})
}

func buildHourglass(w *sand.World) {
	size := w.Size()
	cx := size.W / 2
	top, mid, bottom := size.H/8, size.H/2, size.H-size.H/8
	wide := float32(size.W) * 0.4

	halfWidth := func(y int) int {
		var t float32
		if y < mid {
			t = float32(y-top) / float32(mid-top)
		} else {
			t = float32(bottom-y) / float32(bottom-mid)
		}
		return int(core.Lerp(wide, 1, core.Clamp(t, 0, 1)))
	}

	prev := halfWidth(top)
	w.FillRect(cx-prev-1, top, cx+prev, top, material.Stone)
	for y := top; y <= bottom; y++ {
		hw := halfWidth(y)
		// Walls are filled between consecutive rows so grains can not slip
		// through diagonal gaps.
		lo, hi := min(prev, hw), max(prev, hw)
		w.FillRect(cx-hi-1, y, cx-lo-1, y, material.Stone)
		w.FillRect(cx+lo, y, cx+hi, y, material.Stone)
		prev = hw
	}
	w.FillRect(cx-prev-1, bottom, cx+prev, bottom, material.Stone)

	fillTo := top + (mid-top)*2/3
	for y := top + 1; y < fillTo; y++ {
		hw := halfWidth(y)
		for x := cx - hw; x < cx+hw; x++ {
			if w.Grid().IsEmpty(x, y) {
				w.Set(x, y, material.Sand)
			}
		}
	}
}

func buildDunes(w *sand.World) {
	size := w.Size()
	rng := w.RNG()
	noise := perlin.NewPerlin(2, 2, 3, rng.Source().Int64())

	base := float64(size.H) * 0.6
	amp := float64(size.H) * 0.15
	bedrock := size.H - 2

	surfaces := make([]int, size.W)
	for x := range surfaces {
		n := noise.Noise1D(float64(x) / float64(size.W) * 4)
		surfaces[x] = core.Clamp(int(base+amp*n), 1, bedrock)
	}
	// Water pools in the lowest third of the relief.
	lo, hi := slices.Min(surfaces), slices.Max(surfaces)
	water := hi - max(1, (hi-lo)/3)

	w.FillRect(0, bedrock, size.W-1, size.H-1, material.Stone)
	for x, surface := range surfaces {
		if surface < bedrock {
			w.FillRect(x, surface, x, bedrock-1, material.Sand)
		}
		if hi > lo && surface > water {
			w.FillRect(x, water, x, surface-1, material.Water)
		}
	}

	// A handful of salt flats on the dune crests.
	for i := 0; i < size.W/32; i++ {
		x := rng.IntRange(0, size.W-1)
		w.Paint(x, int(base-amp), 2, material.Salt)
	}
}

func buildVolcano(w *sand.World) {
	size := w.Size()
	rng := w.RNG()
	cx := size.W / 2
	peak := size.H / 3
	slope := float32(size.W) * 0.3 / float32(size.H-peak)

	for y := peak; y < size.H; y++ {
		hw := int(float32(y-peak) * slope)
		w.FillRect(cx-hw-3, y, cx+hw+3, y, material.Stone)
	}
	chamber := size.H - size.H/6
	w.FillRect(cx-2, peak, cx+2, chamber, material.Lava)
	w.Erase(cx, chamber, size.H/12)
	w.Paint(cx, chamber, size.H/12, material.Lava)

	ground := size.H - 1
	for x := 2; x < size.W-2; x += rng.IntRange(6, 12) {
		if !w.Grid().IsEmpty(x, ground) {
			continue
		}
		height := rng.IntRange(4, 10)
		w.FillRect(x, ground-height, x, ground, material.Wood)
	}
	w.Paint(size.W/8, ground-2, 3, material.Gunpowder)
	w.Paint(size.W-size.W/8, ground-2, 3, material.Oil)
}

func buildReservoir(w *sand.World) {
	size := w.Size()
	rng := w.RNG()
	floor := size.H - 1
	dam := size.W / 2
	crest := size.H / 4

	w.FillRect(0, floor, size.W-1, floor, material.Stone)
	w.FillRect(0, crest, 1, floor, material.Stone)
	w.FillRect(dam, crest, dam+2, floor, material.Stone)

	oil := crest + 4
	w.FillRect(2, oil+3, dam-1, floor-1, material.Water)
	w.FillRect(2, oil, dam-1, oil+2, material.Oil)

	// Downstream: a wooden shed over a gunpowder cache, with a bit of acid
	// eating at the dam's foot.
	shed := dam + 3 + (size.W-dam)/3
	w.FillRect(shed, floor-8, shed+10, floor-8, material.Wood)
	w.FillRect(shed, floor-7, shed, floor-1, material.Wood)
	w.FillRect(shed+10, floor-7, shed+10, floor-1, material.Wood)
	w.FillRect(shed+1, floor-3, shed+9, floor-1, material.Gunpowder)
	w.Paint(dam+4, floor-1, 1, material.Acid)

	for i := 0; i < 3; i++ {
		w.Set(rng.IntRange(dam+3, size.W-1), 0, material.Sand)
	}
}
