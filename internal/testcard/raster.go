package testcard

import (
	"image"
	"math"
)

// vertex is one projected quad corner: screen position, inverse clip w for
// the depth test, and UV pre-divided by w for perspective-correct sampling.
type vertex struct {
	x, y   float64
	invW   float64
	uOverW float64
	vOverW float64
}

// rasterTriangle scan-fills one textured triangle with a depth test.
//
// This is the hot path — no allocation in the inner loop. The depth buffer
// stores 1/w, so larger values win: nearer surfaces overwrite farther ones.
func rasterTriangle(dst *image.NRGBA, depth []float64, v0, v1, v2 vertex, tex *image.NRGBA) {
	w := dst.Rect.Dx()
	h := dst.Rect.Dy()

	// Bounding box
	minX := int(math.Min(math.Min(v0.x, v1.x), v2.x))
	maxX := int(math.Max(math.Max(v0.x, v1.x), v2.x)) + 1
	minY := int(math.Min(math.Min(v0.y, v1.y), v2.y))
	maxY := int(math.Max(math.Max(v0.y, v1.y), v2.y)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX >= maxX || minY >= maxY {
		return
	}

	// Barycentric setup
	det := (v1.y-v2.y)*(v0.x-v2.x) + (v2.x-v1.x)*(v0.y-v2.y)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	// Precompute edge deltas
	dy12 := v1.y - v2.y
	dx21 := v2.x - v1.x
	dy20 := v2.y - v0.y
	dx02 := v0.x - v2.x

	// Pixel loop — zero allocations
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - v2.y
		rowOff := sy * w
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - v2.x
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			iw := w0*v0.invW + w1*v1.invW + w2*v2.invW
			zIdx := rowOff + sx
			if iw <= depth[zIdx] {
				continue
			}

			u := (w0*v0.uOverW + w1*v1.uOverW + w2*v2.uOverW) / iw
			v := (w0*v0.vOverW + w1*v1.vOverW + w2*v2.vOverW) / iw
			c := sampleBilinear(tex, u, v)

			// Skip transparent texels
			if c.A < 8 {
				continue
			}
			depth[zIdx] = iw

			pxIdx := zIdx * 4
			dst.Pix[pxIdx] = c.R
			dst.Pix[pxIdx+1] = c.G
			dst.Pix[pxIdx+2] = c.B
			dst.Pix[pxIdx+3] = 255
		}
	}
}
