package common

const (
	// TicksPerSecond is the fixed simulation rate.
	TicksPerSecond = 60

	// Gravity in pixels per second squared, screen-down.
	Gravity = 1000.0

	TileSize = 32
)

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
