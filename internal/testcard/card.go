package testcard

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// palette assigns each viewpoint index a distinct border hue, so a glance at
// the output tells which card ended up on which surface.
var palette = [8]color.NRGBA{
	{R: 214, G: 69, B: 69, A: 255},  // red
	{R: 222, G: 136, B: 62, A: 255}, // orange
	{R: 214, G: 201, B: 63, A: 255}, // yellow
	{R: 96, G: 189, B: 74, A: 255},  // green
	{R: 64, G: 188, B: 182, A: 255}, // teal
	{R: 70, G: 119, B: 214, A: 255}, // blue
	{R: 142, G: 78, B: 213, A: 255}, // violet
	{R: 209, G: 84, B: 176, A: 255}, // magenta
}

// PaletteColor returns the border hue for a viewpoint index.
func PaletteColor(idx int) color.NRGBA {
	return palette[((idx%8)+8)%8]
}

const (
	gridCells = 8
	cardBg    = 232
	cardGrid  = 176
)

// Generate draws a synthetic calibration card: a light field with a square
// grid, a colored border and crosshair keyed to the viewpoint index, and a
// centered label.
func Generate(idx int, label string, size int) *image.NRGBA {
	if size < gridCells {
		size = gridCells
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	hue := PaletteColor(idx)

	fill(img, color.NRGBA{R: cardBg, G: cardBg, B: cardBg, A: 255})

	// Grid lines every eighth of the card.
	gc := color.NRGBA{R: cardGrid, G: cardGrid, B: cardGrid, A: 255}
	step := size / gridCells
	for i := 1; i < gridCells; i++ {
		hline(img, 0, size, i*step, gc)
		vline(img, i*step, 0, size, gc)
	}

	// Border and crosshair in the viewpoint hue.
	border := size / 32
	if border < 2 {
		border = 2
	}
	for b := 0; b < border; b++ {
		hline(img, 0, size, b, hue)
		hline(img, 0, size, size-1-b, hue)
		vline(img, b, 0, size, hue)
		vline(img, size-1-b, 0, size, hue)
	}
	cross := size / 10
	hline(img, size/2-cross, size/2+cross, size/2, hue)
	vline(img, size/2, size/2-cross, size/2+cross, hue)

	drawLabel(img, fmt.Sprintf("%s [%d]", label, idx), size/2, size/2-cross-basicfont.Face7x13.Height)
	return img
}

// drawLabel centers text horizontally around x at baseline y.
func drawLabel(img *image.NRGBA, text string, x, y int) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.NRGBA{R: 32, G: 32, B: 38, A: 255}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.Dot.X -= d.MeasureString(text) / 2
	d.DrawString(text)
}

// fill sets every pixel by writing the first row and copying it down.
func fill(img *image.NRGBA, c color.NRGBA) {
	w := img.Rect.Dx()
	for x := 0; x < w; x++ {
		i := x * 4
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	row := img.Pix[:w*4]
	for y := 1; y < img.Rect.Dy(); y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+w*4], row)
	}
}

func hline(img *image.NRGBA, x0, x1, y int, c color.NRGBA) {
	if y < 0 || y >= img.Rect.Dy() {
		return
	}
	for x := max(x0, 0); x < min(x1, img.Rect.Dx()); x++ {
		set(img, x, y, c)
	}
}

func vline(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if x < 0 || x >= img.Rect.Dx() {
		return
	}
	for y := max(y0, 0); y < min(y1, img.Rect.Dy()); y++ {
		set(img, x, y, c)
	}
}

func set(img *image.NRGBA, x, y int, c color.NRGBA) {
	i := img.PixOffset(x, y)
	img.Pix[i] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
	img.Pix[i+3] = c.A
}
