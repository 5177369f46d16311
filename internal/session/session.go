// Package session runs the single-threaded tick that drives the display
// wall: settle parameters, recompute projections, render, composite. All
// state lives on one goroutine; hosts call Advance once per frame.
package session

import (
	"fmt"
	"image"
	"time"

	"stereowall/internal/compositor"
	"stereowall/internal/config"
	"stereowall/internal/display"
	"stereowall/internal/node"
	"stereowall/internal/overlay"
	"stereowall/internal/params"
	"stereowall/internal/rig"
	"stereowall/internal/testcard"
)

// InputState is one tick's worth of operator input, already debounced by
// the host. Enabled gates the tuning keys so a stray keypress on a show
// machine changes nothing.
type InputState struct {
	Enabled         bool
	CycleMode       bool
	ToggleStereo    bool
	TogglePanoptic  bool
	InteraxialDelta int // millimeters
	SurfaceDelta    int
}

// Session owns every piece of per-process display state and advances it in
// fixed phases: update applies input and settles parameters, late update
// recomputes projections from the settled values, render fills targets and
// composites.
type Session struct {
	cfg      config.Config
	platform display.Platform
	id       node.Identity

	screen *rig.Screen
	rig    *rig.Rig
	sim    *rig.Group
	panel  *rig.Group
	walls  *rig.Group

	ctrl  *display.Controller
	sync  *params.Synchronizer
	board *overlay.Board
	comp  *compositor.Compositor
	scene *testcard.Scene

	panoptic bool
	surface  int
}

// New wires a session from resolved config and raw process arguments. The
// arguments carry the node identity on clustered deployments; a malformed
// identity is an error and the caller should not start.
func New(cfg config.Config, args []string) (*Session, error) {
	id, err := node.Resolve(args)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:      cfg,
		platform: display.ParsePlatform(cfg.Platform),
		id:       id,
		screen:   &rig.Screen{W: cfg.OutputWidth, H: cfg.OutputHeight},
		rig:      rig.NewRig(),
		board:    &overlay.Board{},
	}

	if s.sim, err = rig.NewGroup("simulator", rig.SimulatorDescs(), s.screen, cfg.NearClip, cfg.FarClip); err != nil {
		return nil, err
	}
	if s.panel, err = rig.NewGroup("panel", rig.PanelDescs(), s.screen, cfg.NearClip, cfg.FarClip); err != nil {
		return nil, err
	}
	walls := len(s.rig.Layout.Walls)
	if s.walls, err = rig.NewGroup("walls", rig.WallDescs(walls), s.screen, cfg.NearClip, cfg.FarClip); err != nil {
		return nil, err
	}

	s.ctrl, err = display.NewController(map[display.Mode]*rig.Group{
		display.Simulator:     s.sim,
		display.SingleSurface: s.panel,
		display.MultiSurface:  s.walls,
	}, s.board)
	if err != nil {
		return nil, err
	}

	initial := params.Settings{
		InteraxialMm: cfg.InteraxialMm,
		Stereo:       cfg.Stereo,
		Panoptic:     cfg.Panoptic,
		SurfaceIndex: cfg.SurfaceIndex,
		Aspect:       s.screen.Aspect(),
	}
	// On clustered deployments the node identity, not the config, says which
	// viewpoint this process owns.
	if s.platform.Clustered() {
		initial.SurfaceIndex = id.Index
	}
	s.sync = params.NewSynchronizer(initial, s.board)

	s.comp = compositor.New(cfg.OutputWidth, cfg.OutputHeight)
	cards := testcard.NewCache(testcard.BuildIndex(cfg.CardDir))
	s.scene = testcard.NewScene(s.rig.Layout, cards, 0)

	// Physical deployments force their mode at startup. The zero timestamp
	// keeps the startup notice from lingering on screen.
	s.ctrl.Select(s.platform.Mode(), time.Time{})
	return s, nil
}

// Advance runs one full tick and returns the composed frame. The frame is
// valid until the next Advance.
func (s *Session) Advance(in InputState, now time.Time) (*image.NRGBA, error) {
	s.update(in, now)
	s.lateUpdate()
	return s.render(now)
}

// update applies operator input and settles parameter changes into the rig.
func (s *Session) update(in InputState, now time.Time) {
	if in.Enabled {
		if in.CycleMode {
			s.ctrl.Cycle(now)
		}
		if in.ToggleStereo {
			s.sync.ToggleStereo()
		}
		if in.TogglePanoptic {
			s.sync.TogglePanoptic()
		}
		if in.InteraxialDelta != 0 {
			s.sync.AdjustInteraxial(in.InteraxialDelta)
		}
		if in.SurfaceDelta != 0 {
			s.sync.AdjustSurface(in.SurfaceDelta)
		}
	}
	s.sync.Sync(s, now)
}

// lateUpdate recomputes projections after every parameter has settled.
func (s *Session) lateUpdate() {
	s.rig.UpdatePerspective(s.ctrl.Active(), s.ActiveIndex(), s.panoptic)
}

// render fills the active group's targets and composites them.
func (s *Session) render(now time.Time) (*image.NRGBA, error) {
	g := s.ctrl.Active()
	sources := make([]compositor.Source, 0, len(g.Pairs))
	for _, p := range g.Pairs {
		for _, slot := range p.Slots() {
			s.scene.Render(p.Target(slot), slot.Projection)
		}
		sources = append(sources, p)
	}

	frame, err := s.comp.Compose(s.ctrl.Current(), s.sync.Applied().Stereo, sources)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if n, ok := s.board.Latest(); ok && n.Visible(now) {
		overlay.Draw(frame, n)
	}
	return frame, nil
}

// ApplyInteraxial pushes a settled eye separation to every group.
func (s *Session) ApplyInteraxial(meters float64) {
	s.sim.SetInteraxial(meters)
	s.panel.SetInteraxial(meters)
	s.walls.SetInteraxial(meters)
}

// ApplyStereo flips every stereo-capable pair. The simulator group has no
// eye slots and stays on its center camera.
func (s *Session) ApplyStereo(on bool) {
	s.sim.SetStereo(on)
	s.panel.SetStereo(on)
	s.walls.SetStereo(on)
}

// ApplyPanoptic records the settled seam-overlap flag for the next late
// update.
func (s *Session) ApplyPanoptic(on bool) {
	s.panoptic = on
}

// ApplySurface records the settled viewpoint index.
func (s *Session) ApplySurface(idx int) {
	s.surface = idx
}

// ApplyAspect re-derives viewports and target sizes from the current
// screen once the aspect parameter settles.
func (s *Session) ApplyAspect(aspect float64) {
	s.layoutGroups()
}

// layoutGroups pushes the current screen through every group. The wall
// group tiles the output 2x2; the others cover it whole.
func (s *Session) layoutGroups() {
	s.sim.SetAspect(false)
	s.panel.SetAspect(false)
	s.walls.SetAspect(true)
}

// ActiveIndex is the viewpoint driving single-camera groups: the node
// identity on clustered deployments, the live selection everywhere else.
func (s *Session) ActiveIndex() int {
	if s.platform.Clustered() {
		return s.id.Index
	}
	return s.surface
}

// SetHeadPose moves the tracked head for the next late update.
func (s *Session) SetHeadPose(p rig.Pose) {
	s.rig.Head = p
}

// HeadPose returns the current tracked head.
func (s *Session) HeadPose() rig.Pose {
	return s.rig.Head
}

// SetOutputSize resizes the output. Targets, viewports and the composite
// buffers follow immediately so a resize that keeps the ratio can never
// leave them at the old size; the aspect parameter itself settles through
// the synchronizer on the next tick.
func (s *Session) SetOutputSize(w, h int) {
	if w <= 0 || h <= 0 || (w == s.screen.W && h == s.screen.H) {
		return
	}
	s.screen.W, s.screen.H = w, h
	s.comp.Resize(w, h)
	s.layoutGroups()
	s.sync.SetAspect(s.screen.Aspect())
}

// Frame returns the last composed frame.
func (s *Session) Frame() *image.NRGBA {
	return s.comp.Output()
}

// Platform returns the resolved deployment.
func (s *Session) Platform() display.Platform {
	return s.platform
}

// Identity returns the resolved node identity.
func (s *Session) Identity() node.Identity {
	return s.id
}

// Mode returns the active display mode.
func (s *Session) Mode() display.Mode {
	return s.ctrl.Current()
}

// SelectMode switches the active mode outside the per-tick input path.
func (s *Session) SelectMode(m display.Mode, now time.Time) {
	s.ctrl.Select(m, now)
}

// Settings returns the live parameter snapshot.
func (s *Session) Settings() params.Settings {
	return s.sync.Live()
}

// ActiveGroup returns the viewpoint group driving the output. Inactive
// groups stay private to the controller.
func (s *Session) ActiveGroup() *rig.Group {
	return s.ctrl.Active()
}

// Layout returns the surface geometry.
func (s *Session) Layout() rig.Layout {
	return s.rig.Layout
}

// Synchronizer exposes the parameter synchronizer for hosts that tune
// settings outside the per-tick input path.
func (s *Session) Synchronizer() *params.Synchronizer {
	return s.sync
}
