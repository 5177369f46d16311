// Package overlay carries transient change notices from the camera rig to
// whatever renders on-screen text. The rig only stamps what changed and when;
// display duration and drawing belong to the host.
package overlay

import "time"

// Kind identifies which setting a notice reports.
type Kind int

const (
	KindMode Kind = iota
	KindInteraxial
	KindStereo
	KindPanoptic
	KindSurface
	KindAspect
)

func (k Kind) String() string {
	switch k {
	case KindMode:
		return "mode"
	case KindInteraxial:
		return "interaxial"
	case KindStereo:
		return "stereo"
	case KindPanoptic:
		return "panoptic"
	case KindSurface:
		return "surface"
	case KindAspect:
		return "aspect"
	}
	return "unknown"
}

// Duration is how long a notice stays visible after its stamp.
const Duration = 3 * time.Second

// Notice is one transient readout: which setting changed, its display text,
// and when the change happened.
type Notice struct {
	Kind Kind
	Text string
	At   time.Time
}

// Visible reports whether the notice should still be rendered at now.
func (n Notice) Visible(now time.Time) bool {
	if n.At.IsZero() {
		return false
	}
	d := now.Sub(n.At)
	return d >= 0 && d < Duration
}

// Board holds the most recent notice, refreshed on every state change.
type Board struct {
	latest Notice
	posted bool
}

// Post stamps a new notice, replacing the previous one.
func (b *Board) Post(kind Kind, text string, now time.Time) {
	b.latest = Notice{Kind: kind, Text: text, At: now}
	b.posted = true
}

// Latest returns the most recent notice and whether one was ever posted.
func (b *Board) Latest() (Notice, bool) {
	return b.latest, b.posted
}
