package core

import "time"

// FixedStep paces simulation updates at a steady ticks-per-second rate and
// reports the per-tick delta the simulation should integrate with.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxCatchUp  int

	now func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{maxCatchUp: 4, now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Delta returns the duration of one tick in seconds.
func (f *FixedStep) Delta() float32 {
	return float32(f.step.Seconds())
}

// Pending reports how many ticks are due since the previous call. The count
// is capped so a stalled frame does not trigger a long burst of catch-up
// ticks; the surplus time is dropped.
func (f *FixedStep) Pending() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now

	n := int(f.accumulator / f.step)
	if n > f.maxCatchUp {
		n = f.maxCatchUp
		f.accumulator = 0
		return n
	}
	f.accumulator -= time.Duration(n) * f.step
	return n
}

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
