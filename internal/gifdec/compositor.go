// Package gifdec implements the animated-GIF media source: stdlib GIF
// parsing plus canvas compositing with per-frame disposal.
package gifdec

import (
	"image"
	"image/gif"
)

// Compositing is kept free of any decode or threading state: each function
// takes the canvas and frame explicitly so frame accumulation can be
// tested against known pixel layouts.

// paletteRGBA flattens a frame's palette into packed RGBA entries, one
// table lookup per pixel instead of a color.Color conversion.
func paletteRGBA(img *image.Paletted) [256][4]uint8 {
	var pal [256][4]uint8
	for i, c := range img.Palette {
		r, g, b, a := c.RGBA()
		pal[i] = [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
	}
	return pal
}

// drawFrame composites one GIF frame region onto the canvas. Matching the
// GIF rendering model, a pixel with any opacity overwrites the canvas
// pixel outright; fully transparent pixels leave the canvas untouched.
// Regions extending past the canvas are clipped.
func drawFrame(canvas []byte, w, h int, img *image.Paletted) {
	pal := paletteRGBA(img)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if y < 0 || y >= h {
			continue
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			if x < 0 || x >= w {
				continue
			}
			px := pal[img.ColorIndexAt(x, y)]
			if px[3] == 0 {
				continue
			}
			i := (y*w + x) * 4
			canvas[i] = px[0]
			canvas[i+1] = px[1]
			canvas[i+2] = px[2]
			canvas[i+3] = px[3]
		}
	}
}

// clearRegion zeroes the frame's region of the canvas, implementing the
// restore-to-background disposal mode.
func clearRegion(canvas []byte, w, h int, bounds image.Rectangle) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if y < 0 || y >= h {
			continue
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if x < 0 || x >= w {
				continue
			}
			i := (y*w + x) * 4
			canvas[i] = 0
			canvas[i+1] = 0
			canvas[i+2] = 0
			canvas[i+3] = 0
		}
	}
}

// composite advances the canvas by one frame: draw the frame, capture the
// displayed pixels into out, then apply the frame's disposal mode to leave
// the canvas ready for the next frame. prev must hold the pre-draw canvas
// when disposal is DisposalPrevious and may be nil otherwise.
func composite(canvas, prev, out []byte, w, h int, img *image.Paletted, disposal byte) {
	drawFrame(canvas, w, h, img)
	copy(out, canvas)

	switch disposal {
	case gif.DisposalBackground:
		clearRegion(canvas, w, h, img.Bounds())
	case gif.DisposalPrevious:
		if prev != nil {
			copy(canvas, prev)
		}
	}
}
