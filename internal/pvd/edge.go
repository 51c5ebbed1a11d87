package pvd

import (
	"math"

	"github.com/hidenseek-go/imgcrypt/internal/imgbuf"
)

// edgeThreshold is the Sobel gradient magnitude above which a pixel is
// classified as textured (§4.F edge-aware hybrid).
const edgeThreshold = 100.0

// edgeMap holds a per-pixel textured/smooth classification for an RGB
// image, computed once from an approximate luminance plane via a 3x3
// Sobel operator.
type edgeMap struct {
	width, height int
	textured      []bool
}

func clampCoord(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// luminance approximates 0.299R + 0.587G + 0.114B at (x, y), clamping
// out-of-range coordinates to the nearest edge pixel.
func luminance(img *imgbuf.Image, x, y int) float64 {
	x = clampCoord(x, img.Width-1)
	y = clampCoord(y, img.Height-1)
	r := float64(img.Get(x, y, 0))
	g := float64(img.Get(x, y, 1))
	b := float64(img.Get(x, y, 2))
	return 0.299*r + 0.587*g + 0.114*b
}

// newEdgeMap runs a 3x3 Sobel operator over img's luminance plane,
// replicating border pixels where the kernel would read out of bounds.
func newEdgeMap(img *imgbuf.Image) *edgeMap {
	em := &edgeMap{width: img.Width, height: img.Height, textured: make([]bool, img.Width*img.Height)}

	gxKernel := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	gyKernel := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					l := luminance(img, x+kx, y+ky)
					gx += gxKernel[ky+1][kx+1] * l
					gy += gyKernel[ky+1][kx+1] * l
				}
			}
			mag := math.Sqrt(gx*gx + gy*gy)
			em.textured[y*em.width+x] = mag > edgeThreshold
		}
	}
	return em
}

func (em *edgeMap) isTextured(x, y int) bool {
	return em.textured[y*em.width+x]
}
