package rig

import (
	"image"

	"stereowall/internal/mathutil"
)

// Role identifies which eye a camera slot renders.
type Role int

const (
	RoleCenter Role = iota
	RoleLeft
	RoleRight
)

func (r Role) String() string {
	switch r {
	case RoleLeft:
		return "left"
	case RoleRight:
		return "right"
	}
	return "center"
}

// offsetSign places an eye on the viewer's baseline: left eyes sit at
// negative offsets, the center at zero.
func (r Role) offsetSign() float64 {
	switch r {
	case RoleLeft:
		return -1
	case RoleRight:
		return 1
	}
	return 0
}

// Slot is one camera: an eye role bound to a surface, with its cached
// projection state. Everything here is recomputed or diffed against by the
// parameter synchronizer, never mutated from the render path.
type Slot struct {
	Role       Role
	SurfaceIdx int
	Near, Far  float64
	Aspect     float64
	Viewport   image.Rectangle
	// EyeOffset is the full interaxial separation in meters. The signed
	// half-offset for this slot's eye derives from the role.
	EyeOffset  float64
	Projection mathutil.Mat4
}

// EyeWorld returns the slot's eye position for a given head pose: half the
// separation along the head's right axis, signed by role.
func (s *Slot) EyeWorld(head Pose) mathutil.Vec3 {
	off := s.Role.offsetSign() * s.EyeOffset / 2
	if off == 0 {
		return head.Position
	}
	return head.Position.Add(head.Right().Scale(off))
}
