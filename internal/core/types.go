package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cells returns the number of cells covered by the size.
func (s Size) Cells() int { return s.W * s.H }

// Sim defines the contract a front end drives once per frame.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	// Update advances the simulation by one tick of dt seconds.
	Update(dt float32)
	// Pixels exposes the RGBA8 render buffer, row-major, 4*W*H bytes.
	Pixels() []uint8
}
