// Package compositor assembles camera render targets into the final output
// frame. Every routine validates its sources up front and only then writes
// pixels, so a failed composite never leaves a half-drawn frame.
package compositor

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"stereowall/internal/display"
)

// Source is one camera position's set of render targets. Mono-only positions
// return nil eye textures.
type Source interface {
	CenterTexture() *image.NRGBA
	LeftTexture() *image.NRGBA
	RightTexture() *image.NRGBA
	Viewport() image.Rectangle
}

// tileCount is how many camera positions the multi-surface routines tile.
const tileCount = 4

// Compositor owns a double-buffered output frame. Compose writes the back
// buffer and swaps, so Output always returns the last complete frame.
type Compositor struct {
	front *image.NRGBA
	back  *image.NRGBA
}

// New allocates both output buffers at the given size.
func New(w, h int) *Compositor {
	c := &Compositor{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the buffers. The current output is dropped.
func (c *Compositor) Resize(w, h int) {
	c.front = image.NewNRGBA(image.Rect(0, 0, w, h))
	c.back = image.NewNRGBA(image.Rect(0, 0, w, h))
}

// Output returns the last completed frame.
func (c *Compositor) Output() *image.NRGBA {
	return c.front
}

// Compose assembles one frame for the given mode and stereo flag and returns
// it. The simulator path ignores stereo: the preview is always the mono
// camera.
func (c *Compositor) Compose(mode display.Mode, stereo bool, sources []Source) (*image.NRGBA, error) {
	var err error
	switch {
	case mode == display.MultiSurface && stereo:
		err = c.stereoTiles(sources)
	case mode == display.MultiSurface:
		err = c.monoTiles(sources)
	case mode == display.SingleSurface && stereo:
		err = c.interlace(sources)
	default:
		err = c.passthrough(sources)
	}
	if err != nil {
		return nil, err
	}
	c.front, c.back = c.back, c.front
	return c.front, nil
}

// passthrough blits the first source's center texture across the frame.
func (c *Compositor) passthrough(sources []Source) error {
	if len(sources) == 0 {
		return fmt.Errorf("compositor: passthrough: no sources")
	}
	src := sources[0].CenterTexture()
	if src == nil {
		return fmt.Errorf("compositor: passthrough: missing center texture")
	}
	blit(c.back, c.back.Rect, src)
	return nil
}

// interlace alternates output rows between the left and right eye of the
// first source. Even rows take the left eye. The pattern is derived from the
// output height on every call, so a resize re-interlaces without any cached
// state.
func (c *Compositor) interlace(sources []Source) error {
	if len(sources) == 0 {
		return fmt.Errorf("compositor: interlace: no sources")
	}
	left, right := sources[0].LeftTexture(), sources[0].RightTexture()
	if left == nil || right == nil {
		return fmt.Errorf("compositor: interlace: missing eye texture")
	}
	w, h := c.back.Rect.Dx(), c.back.Rect.Dy()
	if left.Rect.Dx() != w || left.Rect.Dy() != h || right.Rect.Dx() != w || right.Rect.Dy() != h {
		return fmt.Errorf("compositor: interlace: eye textures %dx%d do not match output %dx%d",
			left.Rect.Dx(), left.Rect.Dy(), w, h)
	}
	for y := 0; y < h; y++ {
		src := left
		if y%2 == 1 {
			src = right
		}
		copyRow(c.back, src, 0, y, y, w)
	}
	return nil
}

// monoTiles lays the four center textures out in a 2x2 grid, each in its
// pair's viewport quadrant.
func (c *Compositor) monoTiles(sources []Source) error {
	if len(sources) != tileCount {
		return fmt.Errorf("compositor: tiling needs %d sources, got %d", tileCount, len(sources))
	}
	for i, s := range sources {
		if s.CenterTexture() == nil {
			return fmt.Errorf("compositor: tiling: source %d missing center texture", i)
		}
		if !s.Viewport().In(c.back.Rect) {
			return fmt.Errorf("compositor: tiling: source %d viewport %v outside output %v", i, s.Viewport(), c.back.Rect)
		}
	}
	for _, s := range sources {
		blit(c.back, s.Viewport(), s.CenterTexture())
	}
	return nil
}

// stereoTiles combines the tiling pass with row interlacing: each quadrant
// pulls its rows from that pair's left or right eye by the parity of the
// output row, so the interlace stays continuous across quadrant seams.
func (c *Compositor) stereoTiles(sources []Source) error {
	if len(sources) != tileCount {
		return fmt.Errorf("compositor: tiling needs %d sources, got %d", tileCount, len(sources))
	}
	for i, s := range sources {
		left, right := s.LeftTexture(), s.RightTexture()
		if left == nil || right == nil {
			return fmt.Errorf("compositor: stereo tiling: source %d missing eye texture", i)
		}
		vp := s.Viewport()
		if left.Rect.Dx() != vp.Dx() || left.Rect.Dy() != vp.Dy() ||
			right.Rect.Dx() != vp.Dx() || right.Rect.Dy() != vp.Dy() {
			return fmt.Errorf("compositor: stereo tiling: source %d eye textures do not fill viewport %v", i, vp)
		}
		// Viewports laid out for a larger output would run the row copies
		// past the buffer.
		if !vp.In(c.back.Rect) {
			return fmt.Errorf("compositor: stereo tiling: source %d viewport %v outside output %v", i, vp, c.back.Rect)
		}
	}
	for _, s := range sources {
		vp := s.Viewport()
		for y := 0; y < vp.Dy(); y++ {
			src := s.LeftTexture()
			if (vp.Min.Y+y)%2 == 1 {
				src = s.RightTexture()
			}
			copyRow(c.back, src, vp.Min.X, vp.Min.Y+y, y, vp.Dx())
		}
	}
	return nil
}

// blit draws src into the destination rect, scaling only when the sizes
// disagree.
func blit(dst *image.NRGBA, r image.Rectangle, src *image.NRGBA) {
	if src.Rect.Dx() == r.Dx() && src.Rect.Dy() == r.Dy() {
		draw.Copy(dst, r.Min, src, src.Rect, draw.Src, nil)
		return
	}
	draw.ApproxBiLinear.Scale(dst, r, src, src.Rect, draw.Src, nil)
}

// copyRow copies one full row of src (row sy) into dst at (dx, dy).
func copyRow(dst *image.NRGBA, src *image.NRGBA, dx, dy, sy, w int) {
	do := dst.PixOffset(dx, dy)
	so := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+sy)
	copy(dst.Pix[do:do+4*w], src.Pix[so:so+4*w])
}
