package rig

import (
	"fmt"

	"stereowall/internal/mathutil"
)

// Surface is one planar display surface. Center is its midpoint, Right and
// Up are unit axes in the surface plane, HalfW and HalfH its half extents.
type Surface struct {
	Name        string
	Center      mathutil.Vec3
	Right       mathutil.Vec3
	Up          mathutil.Vec3
	HalfW       float64
	HalfH       float64
	SeamOverlap float64
}

// frustumExtents returns the half extents the projection should use. A
// positive aspect pins the vertical extent to the base width so the image is
// not distorted when the output shape changes. Panoptic rendering widens the
// horizontal extent past the seams; the vertical extent stays put.
func (s Surface) frustumExtents(aspect float64, panoptic bool) (hw, hh float64) {
	hw = s.HalfW
	if panoptic {
		hw *= 1 + s.SeamOverlap
	}
	hh = s.HalfH
	if aspect > 0 {
		hh = s.HalfW / aspect
	}
	return hw, hh
}

// Projection computes the generalized off-axis perspective for an eye
// looking through this surface. The frustum is anchored to the surface
// corners, so it skews as the eye moves off center.
func (s Surface) Projection(eye mathutil.Vec3, aspect, near, far float64, panoptic bool) mathutil.Mat4 {
	hw, hh := s.frustumExtents(aspect, panoptic)
	pa := s.Center.Sub(s.Right.Scale(hw)).Sub(s.Up.Scale(hh))
	pb := s.Center.Add(s.Right.Scale(hw)).Sub(s.Up.Scale(hh))
	pc := s.Center.Sub(s.Right.Scale(hw)).Add(s.Up.Scale(hh))

	vr := pb.Sub(pa).Normalize()
	vu := pc.Sub(pa).Normalize()
	vn := vr.Cross(vu).Normalize()

	va := pa.Sub(eye)
	vb := pb.Sub(eye)
	vc := pc.Sub(eye)

	// Distance from the eye to the surface plane. Clamped so an eye pushed
	// onto the plane cannot blow up the extents.
	d := -va.Dot(vn)
	if d < 1e-6 {
		d = 1e-6
	}
	nd := near / d
	l := vr.Dot(va) * nd
	r := vr.Dot(vb) * nd
	b := vu.Dot(va) * nd
	t := vu.Dot(vc) * nd

	proj := mathutil.Frustum(l, r, b, t, near, far)
	orient := mathutil.BasisRows(vr, vu, vn)
	return mathutil.Mat4Mul(proj, mathutil.Mat4Mul(orient, mathutil.Translation(eye.Scale(-1))))
}

// SubView returns the left (0) or right (1) half of the surface. The
// wraparound layout splits each wall into two sub-views so eight viewpoints
// cover four walls.
func (s Surface) SubView(half int) Surface {
	q := s.HalfW / 2
	c := s.Center.Sub(s.Right.Scale(q))
	if half == 1 {
		c = s.Center.Add(s.Right.Scale(q))
	}
	out := s
	out.Name = fmt.Sprintf("%s/%c", s.Name, 'A'+byte(half))
	out.Center = c
	out.HalfW = q
	return out
}

// Layout is the full set of physical surfaces for every deployment.
type Layout struct {
	Walls []Surface // wraparound enclosure, in index order
	Panel Surface   // single flat panel
}

// ViewpointCount is the number of logical viewpoints the wraparound layout
// exposes: four walls, two sub-views each.
func (l Layout) ViewpointCount() int {
	return 2 * len(l.Walls)
}

// Viewpoint returns the surface behind logical viewpoint idx. Even indices
// are a wall's left half, odd its right half.
func (l Layout) Viewpoint(idx int) Surface {
	n := l.ViewpointCount()
	if n == 0 {
		return l.Panel
	}
	idx = ((idx % n) + n) % n
	return l.Walls[idx/2].SubView(idx % 2)
}

// Default enclosure geometry. Walls are 3 m wide at 1.5 m from center, so
// four of them close the loop; heights keep the wall center at eye level.
const (
	wallDist    = 1.5
	wallHalfW   = 1.5
	wallHalfH   = 1.0
	wallOverlap = 0.12

	panelDist  = 2.0
	panelHalfW = 0.8
	panelHalfH = 0.45
)

// DefaultLayout builds the standard geometry: a four-wall wraparound square
// plus a single front-facing flat panel.
func DefaultLayout() Layout {
	up := mathutil.Vec3{Y: 1}
	wall := func(name string, center, right mathutil.Vec3) Surface {
		return Surface{
			Name:        name,
			Center:      center,
			Right:       right,
			Up:          up,
			HalfW:       wallHalfW,
			HalfH:       wallHalfH,
			SeamOverlap: wallOverlap,
		}
	}
	return Layout{
		Walls: []Surface{
			wall("front", mathutil.Vec3{Y: EyeHeight, Z: -wallDist}, mathutil.Vec3{X: 1}),
			wall("right", mathutil.Vec3{X: wallDist, Y: EyeHeight}, mathutil.Vec3{Z: 1}),
			wall("back", mathutil.Vec3{Y: EyeHeight, Z: wallDist}, mathutil.Vec3{X: -1}),
			wall("left", mathutil.Vec3{X: -wallDist, Y: EyeHeight}, mathutil.Vec3{Z: -1}),
		},
		Panel: Surface{
			Name:   "panel",
			Center: mathutil.Vec3{Y: EyeHeight, Z: -panelDist},
			Right:  mathutil.Vec3{X: 1},
			Up:     up,
			HalfW:  panelHalfW,
			HalfH:  panelHalfH,
		},
	}
}
