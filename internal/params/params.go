// Package params holds the user-tunable view parameters and settles them
// into the rig once per change.
package params

import (
	"fmt"
	"time"

	"stereowall/internal/node"
	"stereowall/internal/overlay"
)

// Settings is one coherent snapshot of the tunable view parameters.
type Settings struct {
	InteraxialMm int
	Stereo       bool
	Panoptic     bool
	SurfaceIndex int
	Aspect       float64
}

// Applier receives settled parameter changes. Each method is called exactly
// once per change, during the update phase, never from the render path.
type Applier interface {
	ApplyInteraxial(meters float64)
	ApplyStereo(on bool)
	ApplyPanoptic(on bool)
	ApplySurface(idx int)
	ApplyAspect(aspect float64)
}

// Synchronizer keeps a live copy of the settings next to the last applied
// snapshot and propagates only the fields that differ. Mutators are cheap
// and can run many times a tick; the diff happens once, in Sync.
type Synchronizer struct {
	live    Settings
	applied Settings
	primed  bool
	board   *overlay.Board
}

// NewSynchronizer starts from an initial snapshot, usually the startup
// config merged with node identity. The first Sync propagates every field.
func NewSynchronizer(initial Settings, board *overlay.Board) *Synchronizer {
	initial.SurfaceIndex = clampSurface(initial.SurfaceIndex)
	return &Synchronizer{live: initial, board: board}
}

func clampSurface(idx int) int {
	if idx < 0 {
		return 0
	}
	if idx > node.MaxIndex {
		return node.MaxIndex
	}
	return idx
}

// Live returns the current settings snapshot.
func (s *Synchronizer) Live() Settings {
	return s.live
}

// Applied returns the snapshot the rig last received.
func (s *Synchronizer) Applied() Settings {
	return s.applied
}

// AdjustInteraxial shifts the eye separation by a millimeter delta. Negative
// separations are allowed; they invert the stereo effect rather than clamp.
func (s *Synchronizer) AdjustInteraxial(deltaMm int) {
	s.live.InteraxialMm += deltaMm
}

// SetInteraxialMm sets the eye separation outright.
func (s *Synchronizer) SetInteraxialMm(mm int) {
	s.live.InteraxialMm = mm
}

// ToggleStereo flips between mono and stereo rendering.
func (s *Synchronizer) ToggleStereo() {
	s.live.Stereo = !s.live.Stereo
}

// TogglePanoptic flips seam-overlap rendering.
func (s *Synchronizer) TogglePanoptic() {
	s.live.Panoptic = !s.live.Panoptic
}

// AdjustSurface moves the current viewpoint index, saturating at the ends
// of the valid range.
func (s *Synchronizer) AdjustSurface(delta int) {
	s.live.SurfaceIndex = clampSurface(s.live.SurfaceIndex + delta)
}

// SetSurface sets the viewpoint index outright, clamped to the valid range.
func (s *Synchronizer) SetSurface(idx int) {
	s.live.SurfaceIndex = clampSurface(idx)
}

// SetAspect records a new output aspect, usually from a window resize.
func (s *Synchronizer) SetAspect(aspect float64) {
	s.live.Aspect = aspect
}

// Sync diffs the live settings against the last applied snapshot and pushes
// each changed field through the applier exactly once, stamping the matching
// overlay notice. The first call primes the rig: every field propagates and
// no notices post. Returns how many fields propagated.
func (s *Synchronizer) Sync(a Applier, now time.Time) int {
	s.live.SurfaceIndex = clampSurface(s.live.SurfaceIndex)

	n := 0
	if !s.primed || s.live.InteraxialMm != s.applied.InteraxialMm {
		a.ApplyInteraxial(float64(s.live.InteraxialMm) / 1000)
		s.post(overlay.KindInteraxial, fmt.Sprintf("interaxial %d mm", s.live.InteraxialMm), now)
		n++
	}
	if !s.primed || s.live.Stereo != s.applied.Stereo {
		a.ApplyStereo(s.live.Stereo)
		s.post(overlay.KindStereo, "stereo "+onOff(s.live.Stereo), now)
		n++
	}
	if !s.primed || s.live.Panoptic != s.applied.Panoptic {
		a.ApplyPanoptic(s.live.Panoptic)
		s.post(overlay.KindPanoptic, "panoptic "+onOff(s.live.Panoptic), now)
		n++
	}
	if !s.primed || s.live.SurfaceIndex != s.applied.SurfaceIndex {
		a.ApplySurface(s.live.SurfaceIndex)
		s.post(overlay.KindSurface, fmt.Sprintf("surface %d", s.live.SurfaceIndex), now)
		n++
	}
	if !s.primed || s.live.Aspect != s.applied.Aspect {
		a.ApplyAspect(s.live.Aspect)
		s.post(overlay.KindAspect, fmt.Sprintf("aspect %.3f", s.live.Aspect), now)
		n++
	}

	s.applied = s.live
	s.primed = true
	return n
}

// post stamps a notice for a settled change. The priming pass stays silent:
// nothing the user did caused it.
func (s *Synchronizer) post(kind overlay.Kind, text string, now time.Time) {
	if s.board == nil || !s.primed {
		return
	}
	s.board.Post(kind, text, now)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
