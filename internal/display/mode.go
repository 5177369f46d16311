// Package display tracks which viewpoint group drives the output framebuffer.
package display

// Mode selects the active display configuration. Exactly one is active at a
// time.
type Mode int

const (
	// Simulator is the desktop development view: one mono camera flipping
	// through the wraparound viewpoints.
	Simulator Mode = iota
	// SingleSurface drives one stereo flat panel.
	SingleSurface
	// MultiSurface drives the four-surface wraparound enclosure.
	MultiSurface
)

const modeCount = 3

func (m Mode) String() string {
	switch m {
	case Simulator:
		return "simulator"
	case SingleSurface:
		return "single-surface"
	case MultiSurface:
		return "multi-surface"
	}
	return "unknown"
}

// Next returns the following mode in cycle order.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}
