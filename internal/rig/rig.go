package rig

// Rig owns the surface layout and the tracked head, and recomputes slot
// projections each late tick, after all parameter changes have settled.
type Rig struct {
	Layout Layout
	Head   Pose
}

// NewRig builds a rig over the default enclosure geometry with the head at
// rest in the center.
func NewRig() *Rig {
	return &Rig{Layout: DefaultLayout(), Head: DefaultHead()}
}

// surfaceFor resolves the surface a pair looks through. Wall and panel
// bindings are fixed at build time; viewpoint bindings follow activeIndex.
func (r *Rig) surfaceFor(p *StereoPair, activeIndex int) Surface {
	switch p.Binding {
	case BindPanel:
		return r.Layout.Panel
	case BindViewpoint:
		return r.Layout.Viewpoint(activeIndex)
	}
	if len(r.Layout.Walls) == 0 {
		return r.Layout.Panel
	}
	return r.Layout.Walls[p.Surface%len(r.Layout.Walls)]
}

// UpdatePerspective recomputes the off-axis projection of every slot that
// will render this tick, from the current head pose and the pair's surface.
func (r *Rig) UpdatePerspective(g *Group, activeIndex int, panoptic bool) {
	for _, p := range g.Pairs {
		surf := r.surfaceFor(p, activeIndex)
		for _, s := range p.Slots() {
			eye := s.EyeWorld(r.Head)
			s.Projection = surf.Projection(eye, s.Aspect, s.Near, s.Far, panoptic)
		}
	}
}
