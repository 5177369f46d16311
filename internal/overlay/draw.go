package overlay

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	drawPad   = 12
	drawInset = 6
)

// Draw paints the notice text in the lower-left corner of dst over a dark
// backing strip. Callers gate on Notice.Visible; Draw itself always paints.
func Draw(dst *image.NRGBA, n Notice) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.NRGBA{R: 235, G: 235, B: 240, A: 255}),
		Face: face,
	}
	tw := d.MeasureString(n.Text).Ceil()

	b := dst.Bounds()
	strip := image.Rect(
		b.Min.X+drawPad,
		b.Max.Y-drawPad-face.Height-2*drawInset,
		b.Min.X+drawPad+tw+2*drawInset,
		b.Max.Y-drawPad,
	).Intersect(b)
	if strip.Empty() {
		return
	}
	fillRect(dst, strip, color.NRGBA{R: 12, G: 12, B: 16, A: 255})

	d.Dot = fixed.P(b.Min.X+drawPad+drawInset, b.Max.Y-drawPad-drawInset-(face.Height-face.Ascent))
	d.DrawString(n.Text)
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Pix[i] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
			i += 4
		}
	}
}
