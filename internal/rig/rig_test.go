package rig

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stereowall/internal/mathutil"
)

// surfaceCorners returns the four physical corners of a surface.
func surfaceCorners(s Surface) []mathutil.Vec3 {
	r := s.Right.Scale(s.HalfW)
	u := s.Up.Scale(s.HalfH)
	return []mathutil.Vec3{
		s.Center.Sub(r).Sub(u),
		s.Center.Add(r).Sub(u),
		s.Center.Add(r).Add(u),
		s.Center.Sub(r).Add(u),
	}
}

// TestProjectionPinsCornersForAnyEye is the defining property of the
// off-axis frustum: the surface corners land on the NDC edge no matter
// where the eye sits, so imagery stays continuous across adjoining walls.
func TestProjectionPinsCornersForAnyEye(t *testing.T) {
	layout := DefaultLayout()
	surfaces := append([]Surface{layout.Panel}, layout.Walls...)
	eyes := []mathutil.Vec3{
		{X: 0, Y: EyeHeight, Z: 0},
		{X: 0.4, Y: 1.2, Z: 0.5},
		{X: -0.9, Y: 1.8, Z: -0.3},
	}

	for _, s := range surfaces {
		for _, eye := range eyes {
			m := s.Projection(eye, 0, 0.1, 100, false)
			for _, c := range surfaceCorners(s) {
				ndc := m.ProjectPoint(c)
				assert.InDelta(t, 1, math.Abs(ndc.X), 1e-9,
					"%s corner x, eye %+v", s.Name, eye)
				assert.InDelta(t, 1, math.Abs(ndc.Y), 1e-9,
					"%s corner y, eye %+v", s.Name, eye)
			}
		}
	}
}

// TestProjectionParallax: with the eye displaced along the baseline, points
// behind the surface shift with the eye and points in front shift against
// it. That sign split is what makes the stereo pair read as depth.
func TestProjectionParallax(t *testing.T) {
	wall := DefaultLayout().Walls[0] // front, 1.5 m out
	deep := mathutil.Vec3{X: 0, Y: EyeHeight, Z: -3}
	near := mathutil.Vec3{X: 0, Y: EyeHeight, Z: -0.75}

	right := wall.Projection(mathutil.Vec3{X: 0.05, Y: EyeHeight, Z: 0}, 0, 0.1, 100, false)
	left := wall.Projection(mathutil.Vec3{X: -0.05, Y: EyeHeight, Z: 0}, 0, 0.1, 100, false)

	// Geometric expectation: the ray from (0.05,·,0) to the deep point
	// crosses the wall at x=0.025, giving ndc 0.025/1.5.
	assert.InDelta(t, 0.025/1.5, right.ProjectPoint(deep).X, 1e-9)

	assert.Greater(t, right.ProjectPoint(deep).X, left.ProjectPoint(deep).X,
		"deep point: uncrossed disparity")
	assert.Less(t, right.ProjectPoint(near).X, left.ProjectPoint(near).X,
		"near point: crossed disparity")
}

// TestProjectionPanopticWidensHorizontalOnly: panoptic rendering pushes the
// horizontal frustum past the physical edge while the vertical extent stays
// put.
func TestProjectionPanopticWidensHorizontalOnly(t *testing.T) {
	wall := DefaultLayout().Walls[0]
	eye := mathutil.Vec3{X: 0, Y: EyeHeight, Z: 0}
	edgeMid := wall.Center.Add(wall.Right.Scale(wall.HalfW))
	topMid := wall.Center.Add(wall.Up.Scale(wall.HalfH))

	plain := wall.Projection(eye, 0, 0.1, 100, false)
	wide := wall.Projection(eye, 0, 0.1, 100, true)

	assert.InDelta(t, 1, plain.ProjectPoint(edgeMid).X, 1e-9)
	assert.InDelta(t, 1/(1+wall.SeamOverlap), wide.ProjectPoint(edgeMid).X, 1e-9)
	assert.InDelta(t, 1, wide.ProjectPoint(topMid).Y, 1e-9, "vertical untouched")
}

// TestProjectionAspectPinsVertical: a positive aspect derives the vertical
// extent from the base width, so output reshapes don't stretch the image.
func TestProjectionAspectPinsVertical(t *testing.T) {
	wall := DefaultLayout().Walls[0]
	eye := mathutil.Vec3{X: 0, Y: EyeHeight, Z: 0}

	m := wall.Projection(eye, 3.0, 0.1, 100, false) // hh = 1.5/3 = 0.5
	pinned := wall.Center.Add(wall.Up.Scale(0.5))
	physTop := wall.Center.Add(wall.Up.Scale(wall.HalfH))

	assert.InDelta(t, 1, m.ProjectPoint(pinned).Y, 1e-9)
	assert.InDelta(t, 2, m.ProjectPoint(physTop).Y, 1e-9,
		"physical top falls outside the pinned frustum")
}

// TestProjectionEyeOnPlane: an eye pushed onto the surface plane must clamp
// rather than blow up.
func TestProjectionEyeOnPlane(t *testing.T) {
	wall := DefaultLayout().Walls[0]
	m := wall.Projection(wall.Center, 0, 0.1, 100, false)
	for _, v := range m {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
}

// TestSubView halves a wall into named A/B sub-views.
func TestSubView(t *testing.T) {
	wall := DefaultLayout().Walls[0]

	a := wall.SubView(0)
	assert.Equal(t, "front/A", a.Name)
	assert.InDelta(t, -0.75, a.Center.X, 1e-12)
	assert.Equal(t, 0.75, a.HalfW)
	assert.Equal(t, wall.HalfH, a.HalfH)

	b := wall.SubView(1)
	assert.Equal(t, "front/B", b.Name)
	assert.InDelta(t, 0.75, b.Center.X, 1e-12)
}

// TestViewpointMapping: eight viewpoints walk the four walls left half then
// right half, and out-of-range indices wrap.
func TestViewpointMapping(t *testing.T) {
	layout := DefaultLayout()
	require.Equal(t, 8, layout.ViewpointCount())

	names := make([]string, 8)
	for i := range names {
		names[i] = layout.Viewpoint(i).Name
	}
	assert.Equal(t, []string{
		"front/A", "front/B",
		"right/A", "right/B",
		"back/A", "back/B",
		"left/A", "left/B",
	}, names)

	assert.Equal(t, layout.Viewpoint(0), layout.Viewpoint(8))
	assert.Equal(t, layout.Viewpoint(7), layout.Viewpoint(-1))
}

// TestPoseRight rotates the stereo baseline with the head.
func TestPoseRight(t *testing.T) {
	head := DefaultHead()
	r := head.Right()
	assert.InDelta(t, 1, r.X, 1e-12)
	assert.InDelta(t, 0, r.Y, 1e-12)
	assert.InDelta(t, 0, r.Z, 1e-12)

	head.Yaw = 90
	r = head.Right()
	assert.InDelta(t, 0, r.X, 1e-12)
	assert.InDelta(t, -1, r.Z, 1e-12)
}

// TestEyeWorldSplitsBaseline: eye slots sit half the separation either side
// of the head along its right axis.
func TestEyeWorldSplitsBaseline(t *testing.T) {
	head := DefaultHead()
	left := &Slot{Role: RoleLeft, EyeOffset: 0.065}
	right := &Slot{Role: RoleRight, EyeOffset: 0.065}
	center := &Slot{Role: RoleCenter, EyeOffset: 0.065}

	assert.InDelta(t, -0.0325, left.EyeWorld(head).X, 1e-12)
	assert.InDelta(t, 0.0325, right.EyeWorld(head).X, 1e-12)
	assert.Equal(t, head.Position, center.EyeWorld(head))

	// With the head yawed 90° the baseline runs along Z.
	head.Yaw = 90
	e := left.EyeWorld(head)
	assert.InDelta(t, 0, e.X, 1e-12)
	assert.InDelta(t, 0.0325, e.Z, 1e-12)
}

// TestPairSlotGating: a stereo-capable pair renders its center until stereo
// is on, and a mono pair never leaves its center.
func TestPairSlotGating(t *testing.T) {
	screen := &Screen{W: 640, H: 360}
	stereo := NewStereoPair(BindWall, 0, true, screen, 0.1, 100)
	mono := NewStereoPair(BindViewpoint, 0, false, screen, 0.1, 100)

	require.True(t, stereo.StereoCapable())
	assert.True(t, stereo.CenterEnabled())
	slots := stereo.Slots()
	require.Len(t, slots, 1)
	assert.Equal(t, RoleCenter, slots[0].Role)

	stereo.DisableCenter()
	slots = stereo.Slots()
	require.Len(t, slots, 2)
	assert.Equal(t, RoleLeft, slots[0].Role)
	assert.Equal(t, RoleRight, slots[1].Role)

	stereo.EnableCenter()
	assert.Len(t, stereo.Slots(), 1)

	require.False(t, mono.StereoCapable())
	mono.DisableCenter()
	assert.True(t, mono.CenterEnabled(), "mono pair keeps its center")
	assert.Len(t, mono.Slots(), 1)
	assert.Nil(t, mono.LeftTexture())
}

// TestPairInteraxialReachesAllSlots: the separation lands on hidden slots
// too, so a later stereo toggle needs no re-push.
func TestPairInteraxialReachesAllSlots(t *testing.T) {
	p := NewStereoPair(BindWall, 0, true, &Screen{W: 640, H: 360}, 0.1, 100)
	p.SetInteraxial(0.07)

	p.DisableCenter()
	for _, s := range p.Slots() {
		assert.Equal(t, 0.07, s.EyeOffset)
	}
	p.EnableCenter()
	assert.Equal(t, 0.07, p.Slots()[0].EyeOffset)
}

// TestPairSetAspectQuadrants: multi-surface output tiles four pairs into
// screen quadrants; single-surface pairs span the whole screen.
func TestPairSetAspectQuadrants(t *testing.T) {
	screen := &Screen{W: 1280, H: 720}
	want := []image.Rectangle{
		image.Rect(0, 0, 640, 360),
		image.Rect(640, 0, 1280, 360),
		image.Rect(0, 360, 640, 720),
		image.Rect(640, 360, 1280, 720),
	}

	for i := 0; i < 4; i++ {
		p := NewStereoPair(BindWall, i, true, screen, 0.1, 100)
		p.SetAspect(true)
		assert.Equal(t, want[i], p.Viewport(), "pair %d", i)
		assert.Equal(t, 640, p.CenterTexture().Rect.Dx())
		assert.Equal(t, 360, p.CenterTexture().Rect.Dy())
		for _, s := range p.allSlots() {
			assert.InDelta(t, 1280.0/720.0, s.Aspect, 1e-12)
		}

		p.SetAspect(false)
		assert.Equal(t, image.Rect(0, 0, 1280, 720), p.Viewport())
		assert.Equal(t, 1280, p.CenterTexture().Rect.Dx())
	}
}

// TestPairSetAspectOddScreen: an uneven screen pushes the remainder column
// and row into the right and bottom quadrants, so the four viewports cover
// every pixel and the targets match their viewport exactly.
func TestPairSetAspectOddScreen(t *testing.T) {
	screen := &Screen{W: 9, H: 7}
	want := []image.Rectangle{
		image.Rect(0, 0, 4, 3),
		image.Rect(4, 0, 9, 3),
		image.Rect(0, 3, 4, 7),
		image.Rect(4, 3, 9, 7),
	}

	covered := 0
	for i := 0; i < 4; i++ {
		p := NewStereoPair(BindWall, i, true, screen, 0.1, 100)
		p.SetAspect(true)
		assert.Equal(t, want[i], p.Viewport(), "pair %d", i)
		assert.Equal(t, p.Viewport().Dx(), p.CenterTexture().Rect.Dx())
		assert.Equal(t, p.Viewport().Dy(), p.LeftTexture().Rect.Dy())
		covered += p.Viewport().Dx() * p.Viewport().Dy()
	}
	assert.Equal(t, 9*7, covered)
}

// TestPairResizeOnlyOnChange: targets survive a no-op SetAspect but
// reallocate when the screen really changes.
func TestPairResizeOnlyOnChange(t *testing.T) {
	screen := &Screen{W: 640, H: 360}
	p := NewStereoPair(BindPanel, 0, true, screen, 0.1, 100)

	before := p.CenterTexture()
	p.SetAspect(false)
	assert.Same(t, before, p.CenterTexture())

	screen.W, screen.H = 800, 600
	p.SetAspect(false)
	assert.NotSame(t, before, p.CenterTexture())
	assert.Equal(t, 800, p.CenterTexture().Rect.Dx())
	assert.Equal(t, 600, p.LeftTexture().Rect.Dy())
}

// TestNewGroupValidation rejects empty descriptor lists and unsized screens.
func TestNewGroupValidation(t *testing.T) {
	screen := &Screen{W: 640, H: 360}

	_, err := NewGroup("empty", nil, screen, 0.1, 100)
	assert.Error(t, err)

	_, err = NewGroup("noscreen", SimulatorDescs(), nil, 0.1, 100)
	assert.Error(t, err)

	_, err = NewGroup("flat", SimulatorDescs(), &Screen{W: 640}, 0.1, 100)
	assert.Error(t, err)

	g, err := NewGroup("walls", WallDescs(4), screen, 0.1, 100)
	require.NoError(t, err)
	assert.Len(t, g.Pairs, 4)
}

// TestGroupSetStereoFanOut flips every capable pair at once.
func TestGroupSetStereoFanOut(t *testing.T) {
	g, err := NewGroup("walls", WallDescs(4), &Screen{W: 640, H: 360}, 0.1, 100)
	require.NoError(t, err)

	g.SetStereo(true)
	for _, p := range g.Pairs {
		assert.False(t, p.CenterEnabled())
	}
	g.SetStereo(false)
	for _, p := range g.Pairs {
		assert.True(t, p.CenterEnabled())
	}
}

// TestUpdatePerspectiveFollowsViewpoint: viewpoint-bound slots track the
// active index while wall-bound slots stay pinned to their own wall.
func TestUpdatePerspectiveFollowsViewpoint(t *testing.T) {
	r := NewRig()
	screen := &Screen{W: 640, H: 360}

	sim, err := NewGroup("simulator", SimulatorDescs(), screen, 0.1, 100)
	require.NoError(t, err)
	walls, err := NewGroup("walls", WallDescs(len(r.Layout.Walls)), screen, 0.1, 100)
	require.NoError(t, err)

	r.UpdatePerspective(sim, 3, false)
	simSlot := sim.Pairs[0].Slots()[0]
	want := r.Layout.Viewpoint(3).Projection(r.Head.Position, simSlot.Aspect, 0.1, 100, false)
	assert.Equal(t, want, simSlot.Projection)

	r.UpdatePerspective(sim, 6, false)
	assert.NotEqual(t, want, simSlot.Projection, "projection follows the active index")

	r.UpdatePerspective(walls, 3, false)
	wallSlot := walls.Pairs[2].Slots()[0]
	wantWall := r.Layout.Walls[2].Projection(r.Head.Position, wallSlot.Aspect, 0.1, 100, false)
	assert.Equal(t, wantWall, wallSlot.Projection)

	r.UpdatePerspective(walls, 6, false)
	assert.Equal(t, wantWall, wallSlot.Projection, "wall binding ignores the active index")
}

// TestScreenAspect handles nil and degenerate screens.
func TestScreenAspect(t *testing.T) {
	var s *Screen
	assert.Equal(t, 0.0, s.Aspect())
	assert.Equal(t, 0.0, (&Screen{W: 100}).Aspect())
	assert.InDelta(t, 16.0/9.0, (&Screen{W: 1280, H: 720}).Aspect(), 1e-12)
}

func TestBindingString(t *testing.T) {
	assert.Equal(t, "wall", BindWall.String())
	assert.Equal(t, "panel", BindPanel.String())
	assert.Equal(t, "viewpoint", BindViewpoint.String())
}
