package rig

import "image"

// Screen is the shared output geometry every pair sizes its render targets
// from.
type Screen struct {
	W, H int
}

// Aspect returns the width-over-height ratio, 0 when the screen is empty.
func (s *Screen) Aspect() float64 {
	if s == nil || s.H == 0 {
		return 0
	}
	return float64(s.W) / float64(s.H)
}

// Binding says which surface a pair looks through.
type Binding int

const (
	// BindWall pins the pair to one enclosure wall.
	BindWall Binding = iota
	// BindPanel pins the pair to the flat panel.
	BindPanel
	// BindViewpoint follows whichever wraparound viewpoint is current.
	BindViewpoint
)

func (b Binding) String() string {
	switch b {
	case BindPanel:
		return "panel"
	case BindViewpoint:
		return "viewpoint"
	}
	return "wall"
}

// StereoPair owns the render targets for one camera position: a center
// target for mono plus left and right targets when the pair is stereo
// capable. Targets are allocated up front; the enable flags only gate which
// slots render.
type StereoPair struct {
	Binding Binding
	Surface int

	center *Slot
	left   *Slot
	right  *Slot

	centerOn bool
	screen   *Screen

	centerTex *image.NRGBA
	leftTex   *image.NRGBA
	rightTex  *image.NRGBA
}

// NewStereoPair builds the slots and targets for one camera position. Stereo
// incapable pairs carry only the center slot.
func NewStereoPair(binding Binding, surface int, stereo bool, screen *Screen, near, far float64) *StereoPair {
	p := &StereoPair{
		Binding:  binding,
		Surface:  surface,
		centerOn: true,
		screen:   screen,
		center:   &Slot{Role: RoleCenter, SurfaceIdx: surface, Near: near, Far: far},
	}
	if stereo {
		p.left = &Slot{Role: RoleLeft, SurfaceIdx: surface, Near: near, Far: far}
		p.right = &Slot{Role: RoleRight, SurfaceIdx: surface, Near: near, Far: far}
	}
	p.SetAspect(false)
	return p
}

// StereoCapable reports whether the pair carries left and right slots.
func (p *StereoPair) StereoCapable() bool {
	return p.left != nil
}

// EnableCenter routes the pair through its mono camera.
func (p *StereoPair) EnableCenter() {
	p.centerOn = true
}

// DisableCenter routes a stereo-capable pair through its eye cameras. Pairs
// without eye slots keep the center on: a camera position must always render
// something.
func (p *StereoPair) DisableCenter() {
	if p.StereoCapable() {
		p.centerOn = false
	}
}

// CenterEnabled reports whether the mono camera is the one rendering.
func (p *StereoPair) CenterEnabled() bool {
	return p.centerOn
}

// SetInteraxial caches the eye separation in meters on every slot. The
// signed per-eye offset falls out of each slot's role.
func (p *StereoPair) SetInteraxial(meters float64) {
	for _, s := range p.allSlots() {
		s.EyeOffset = meters
	}
}

// SetAspect re-derives each slot's aspect, viewport and render-target size
// from the shared screen. Multi-surface output tiles the screen 2x2, so each
// pair gets a quadrant at half resolution; uneven screens push the remainder
// column and row into the right and bottom tiles so the quadrants cover
// every pixel. Otherwise the pair covers the whole screen.
func (p *StereoPair) SetAspect(multiSurface bool) {
	w, h := p.screen.W, p.screen.H
	vp := image.Rect(0, 0, w, h)
	if multiSurface {
		tw, th := w/2, h/2
		x0 := (p.Surface % 2) * tw
		y0 := (p.Surface / 2 % 2) * th
		x1, y1 := x0+tw, y0+th
		if p.Surface%2 == 1 {
			x1 = w
		}
		if p.Surface/2%2 == 1 {
			y1 = h
		}
		vp = image.Rect(x0, y0, x1, y1)
	}
	aspect := p.screen.Aspect()
	for _, s := range p.allSlots() {
		s.Aspect = aspect
		s.Viewport = vp
	}
	p.resize(vp.Dx(), vp.Dy())
}

// resize reallocates targets when the slot size actually changed.
func (p *StereoPair) resize(w, h int) {
	if p.centerTex != nil && p.centerTex.Rect.Dx() == w && p.centerTex.Rect.Dy() == h {
		return
	}
	p.centerTex = image.NewNRGBA(image.Rect(0, 0, w, h))
	if p.StereoCapable() {
		p.leftTex = image.NewNRGBA(image.Rect(0, 0, w, h))
		p.rightTex = image.NewNRGBA(image.Rect(0, 0, w, h))
	}
}

// Viewport returns where in the output frame this pair's pixels land.
func (p *StereoPair) Viewport() image.Rectangle {
	return p.center.Viewport
}

// CenterTexture returns the mono render target.
func (p *StereoPair) CenterTexture() *image.NRGBA {
	return p.centerTex
}

// LeftTexture returns the left-eye render target, nil for mono-only pairs.
func (p *StereoPair) LeftTexture() *image.NRGBA {
	return p.leftTex
}

// RightTexture returns the right-eye render target, nil for mono-only pairs.
func (p *StereoPair) RightTexture() *image.NRGBA {
	return p.rightTex
}

// Slots returns the slots that should render this tick, honoring the center
// enable flag.
func (p *StereoPair) Slots() []*Slot {
	if p.centerOn || !p.StereoCapable() {
		return []*Slot{p.center}
	}
	return []*Slot{p.left, p.right}
}

// Target returns the render target for one of the pair's slots.
func (p *StereoPair) Target(s *Slot) *image.NRGBA {
	switch s {
	case p.left:
		return p.leftTex
	case p.right:
		return p.rightTex
	}
	return p.centerTex
}

func (p *StereoPair) allSlots() []*Slot {
	out := []*Slot{p.center}
	if p.left != nil {
		out = append(out, p.left, p.right)
	}
	return out
}
