package testcard

import (
	"image"
	"image/color"
	"math"

	"stereowall/internal/mathutil"
	"stereowall/internal/rig"
)

// DefaultCardSize is the pixel size of generated cards.
const DefaultCardSize = 512

// Quad is one textured rectangle in the world. Corners run lower-left,
// lower-right, upper-right, upper-left.
type Quad struct {
	Corners [4]mathutil.Vec3
	Tex     *image.NRGBA
}

// quadUV maps quad corners to card texture coordinates. Texture v runs
// downward, so lower corners sample the bottom row.
var quadUV = [4][2]float64{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

// Scene is the static set of calibration quads, plus the scratch depth
// buffer shared across renders. Build it once at startup; rendering never
// mutates the quads.
type Scene struct {
	Background color.NRGBA
	Quads      []Quad

	depth []float64
}

// CardSource supplies the texture for a named card. idx keys the palette
// and size the resolution when the source has to synthesize one.
type CardSource interface {
	Card(name string, idx, size int) *image.NRGBA
}

// NewScene builds the calibration scene for a layout: a card on every wall
// and on the panel, a floor grid, and two floating markers that give stereo
// parallax something to bite on. A nil source generates every card.
func NewScene(layout rig.Layout, cards CardSource, cardSize int) *Scene {
	if cardSize <= 0 {
		cardSize = DefaultCardSize
	}
	s := &Scene{Background: color.NRGBA{R: 16, G: 18, B: 24, A: 255}}

	for i, wall := range layout.Walls {
		s.Quads = append(s.Quads, surfaceQuad(wall, cardFor(cards, i, wall.Name, cardSize)))
	}
	s.Quads = append(s.Quads, surfaceQuad(layout.Panel, cardFor(cards, 4, layout.Panel.Name, cardSize)))

	if len(layout.Walls) > 0 {
		half := layout.Walls[0].HalfW
		s.Quads = append(s.Quads, Quad{
			Corners: [4]mathutil.Vec3{
				{X: -half, Y: 0, Z: half},
				{X: half, Y: 0, Z: half},
				{X: half, Y: 0, Z: -half},
				{X: -half, Y: 0, Z: -half},
			},
			Tex: cardFor(cards, 6, "floor", cardSize),
		})
	}

	s.Quads = append(s.Quads,
		markerQuad(mathutil.Vec3{X: -0.30, Y: rig.EyeHeight, Z: -0.60}, 0.06, cardFor(cards, 7, "near", cardSize/4)),
		markerQuad(mathutil.Vec3{X: 0.35, Y: rig.EyeHeight + 0.10, Z: -0.90}, 0.08, cardFor(cards, 5, "mid", cardSize/4)),
	)
	return s
}

func cardFor(cards CardSource, idx int, name string, size int) *image.NRGBA {
	if cards == nil {
		return Generate(idx, name, size)
	}
	return cards.Card(name, idx, size)
}

// surfaceQuad places a card exactly on a rig surface, so an undistorted
// view of the surface shows the whole card edge to edge.
func surfaceQuad(s rig.Surface, tex *image.NRGBA) Quad {
	r := s.Right.Scale(s.HalfW)
	u := s.Up.Scale(s.HalfH)
	return Quad{
		Corners: [4]mathutil.Vec3{
			s.Center.Sub(r).Sub(u),
			s.Center.Add(r).Sub(u),
			s.Center.Add(r).Add(u),
			s.Center.Sub(r).Add(u),
		},
		Tex: tex,
	}
}

// markerQuad builds a small card facing the front of the room.
func markerQuad(center mathutil.Vec3, half float64, tex *image.NRGBA) Quad {
	r := mathutil.Vec3{X: half}
	u := mathutil.Vec3{Y: half}
	return Quad{
		Corners: [4]mathutil.Vec3{
			center.Sub(r).Sub(u),
			center.Add(r).Sub(u),
			center.Add(r).Add(u),
			center.Sub(r).Add(u),
		},
		Tex: tex,
	}
}

// Render projects every quad through proj into dst, nearest surface first
// by depth test, over the background color.
func (s *Scene) Render(dst *image.NRGBA, proj mathutil.Mat4) {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	s.resetDepth(w * h)
	fill(dst, s.Background)
	for _, q := range s.Quads {
		s.renderQuad(dst, q, proj, w, h)
	}
}

// resetDepth clears the shared depth buffer, growing it when the target
// grew.
func (s *Scene) resetDepth(n int) {
	if cap(s.depth) < n {
		s.depth = make([]float64, n)
	}
	s.depth = s.depth[:n]
	for i := range s.depth {
		s.depth[i] = math.Inf(-1)
	}
}

// renderQuad projects the four corners and fills the two triangles. A quad
// with any corner behind the eye is dropped whole; the scene keeps its
// geometry clear of where the head can go.
func (s *Scene) renderQuad(dst *image.NRGBA, q Quad, proj mathutil.Mat4, w, h int) {
	var vs [4]vertex
	for i, c := range q.Corners {
		clip := proj.MulVec4([4]float64{c.X, c.Y, c.Z, 1})
		if clip[3] < 1e-6 {
			return
		}
		iw := 1 / clip[3]
		vs[i] = vertex{
			x:      (clip[0]*iw*0.5 + 0.5) * float64(w),
			y:      (1 - (clip[1]*iw*0.5 + 0.5)) * float64(h),
			invW:   iw,
			uOverW: quadUV[i][0] * iw,
			vOverW: quadUV[i][1] * iw,
		}
	}
	rasterTriangle(dst, s.depth, vs[0], vs[1], vs[2], q.Tex)
	rasterTriangle(dst, s.depth, vs[0], vs[2], vs[3], q.Tex)
}
