package rig

import "fmt"

// SlotDesc describes one camera position of a group.
type SlotDesc struct {
	Binding Binding
	Surface int
	Stereo  bool
}

// Group is the fixed set of camera pairs covering one display configuration.
// Groups are built once at startup and only flip their active flag after
// that.
type Group struct {
	Name   string
	Pairs  []*StereoPair
	active bool
}

// NewGroup builds a group from explicit descriptors. An empty descriptor
// list or an unsized screen is a configuration error: there is no safe
// partial-rig state to fall back to.
func NewGroup(name string, descs []SlotDesc, screen *Screen, near, far float64) (*Group, error) {
	if len(descs) == 0 {
		return nil, fmt.Errorf("rig: group %q has no camera slots", name)
	}
	if screen == nil || screen.W <= 0 || screen.H <= 0 {
		return nil, fmt.Errorf("rig: group %q needs a sized screen", name)
	}
	g := &Group{Name: name}
	for _, d := range descs {
		g.Pairs = append(g.Pairs, NewStereoPair(d.Binding, d.Surface, d.Stereo, screen, near, far))
	}
	return g, nil
}

// SetActive flips whether this group drives the output.
func (g *Group) SetActive(v bool) {
	g.active = v
}

// Active reports whether this group drives the output.
func (g *Group) Active() bool {
	return g.active
}

// SetInteraxial pushes the eye separation in meters to every pair.
func (g *Group) SetInteraxial(meters float64) {
	for _, p := range g.Pairs {
		p.SetInteraxial(meters)
	}
}

// SetStereo flips every stereo-capable pair between its center camera and
// its eye cameras.
func (g *Group) SetStereo(on bool) {
	for _, p := range g.Pairs {
		if on {
			p.DisableCenter()
		} else {
			p.EnableCenter()
		}
	}
}

// SetAspect re-derives slot aspects, viewports and target sizes on every
// pair.
func (g *Group) SetAspect(multiSurface bool) {
	for _, p := range g.Pairs {
		p.SetAspect(multiSurface)
	}
}

// SimulatorDescs is the desktop preview: one mono camera following the
// current wraparound viewpoint.
func SimulatorDescs() []SlotDesc {
	return []SlotDesc{{Binding: BindViewpoint}}
}

// PanelDescs is the flat-panel deployment: one stereo pair on the panel.
func PanelDescs() []SlotDesc {
	return []SlotDesc{{Binding: BindPanel, Stereo: true}}
}

// WallDescs is the wraparound deployment: one stereo pair per wall.
func WallDescs(walls int) []SlotDesc {
	descs := make([]SlotDesc, walls)
	for i := range descs {
		descs[i] = SlotDesc{Binding: BindWall, Surface: i, Stereo: true}
	}
	return descs
}
