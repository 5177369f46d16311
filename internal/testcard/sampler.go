package testcard

import (
	"image"
	"image/color"
	"math"
)

// sampleBilinear filters a card texture at (u, v), folding coordinates
// outside [0, 1) back into range so cards tile. Straight-alpha NRGBA in and
// out; the raster decides what to do with the alpha.
func sampleBilinear(tex *image.NRGBA, u, v float64) color.NRGBA {
	w, h := tex.Rect.Dx(), tex.Rect.Dy()

	fx := (u - math.Floor(u)) * float64(w-1)
	fy := (v - math.Floor(v)) * float64(h-1)
	x0, y0 := int(fx), int(fy)
	x1, y1 := (x0+1)%w, (y0+1)%h
	dx, dy := fx-float64(x0), fy-float64(y0)

	// Two horizontal blends, then one vertical between them.
	r0, g0, b0, a0 := rowBlend(tex, x0, x1, y0, dx)
	r1, g1, b1, a1 := rowBlend(tex, x0, x1, y1, dx)
	return color.NRGBA{
		R: round8(r0 + (r1-r0)*dy),
		G: round8(g0 + (g1-g0)*dy),
		B: round8(b0 + (b1-b0)*dy),
		A: round8(a0 + (a1-a0)*dy),
	}
}

// rowBlend interpolates between two texels of one row. Indexes tex.Pix
// directly; this runs once per covered pixel per row pair.
func rowBlend(tex *image.NRGBA, x0, x1, y int, dx float64) (r, g, b, a float64) {
	i := y*tex.Stride + x0*4
	k := y*tex.Stride + x1*4
	p := tex.Pix
	r = float64(p[i]) + (float64(p[k])-float64(p[i]))*dx
	g = float64(p[i+1]) + (float64(p[k+1])-float64(p[i+1]))*dx
	b = float64(p[i+2]) + (float64(p[k+2])-float64(p[i+2]))*dx
	a = float64(p[i+3]) + (float64(p[k+3])-float64(p[i+3]))*dx
	return r, g, b, a
}

func round8(v float64) uint8 {
	return uint8(v + 0.5)
}
