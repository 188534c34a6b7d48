package gifdec

import (
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPalette = color.Palette{
	color.RGBA{},               // 0: transparent
	color.RGBA{255, 0, 0, 255}, // 1: red
	color.RGBA{0, 255, 0, 255}, // 2: green
	color.RGBA{0, 0, 255, 255}, // 3: blue
}

// paletted builds a frame covering bounds with every pixel set to index.
func paletted(bounds image.Rectangle, index uint8) *image.Paletted {
	img := image.NewPaletted(bounds, testPalette)
	for i := range img.Pix {
		img.Pix[i] = index
	}
	return img
}

func pixelAt(canvas []byte, w, x, y int) [4]byte {
	i := (y*w + x) * 4
	return [4]byte{canvas[i], canvas[i+1], canvas[i+2], canvas[i+3]}
}

func TestDrawFrameOverwritesOpaquePixels(t *testing.T) {
	t.Parallel()

	canvas := make([]byte, 4*4*4)
	drawFrame(canvas, 4, 4, paletted(image.Rect(1, 1, 3, 3), 1))

	assert.Equal(t, [4]byte{255, 0, 0, 255}, pixelAt(canvas, 4, 1, 1))
	assert.Equal(t, [4]byte{255, 0, 0, 255}, pixelAt(canvas, 4, 2, 2))
	assert.Equal(t, [4]byte{0, 0, 0, 0}, pixelAt(canvas, 4, 0, 0), "outside region untouched")
	assert.Equal(t, [4]byte{0, 0, 0, 0}, pixelAt(canvas, 4, 3, 3), "outside region untouched")
}

func TestDrawFrameSkipsTransparentPixels(t *testing.T) {
	t.Parallel()

	canvas := make([]byte, 2*2*4)
	drawFrame(canvas, 2, 2, paletted(image.Rect(0, 0, 2, 2), 2))

	// A fully transparent follow-up frame must leave the canvas as is.
	drawFrame(canvas, 2, 2, paletted(image.Rect(0, 0, 2, 2), 0))
	assert.Equal(t, [4]byte{0, 255, 0, 255}, pixelAt(canvas, 2, 0, 0))
	assert.Equal(t, [4]byte{0, 255, 0, 255}, pixelAt(canvas, 2, 1, 1))
}

func TestDrawFrameClipsOutOfBoundsRegion(t *testing.T) {
	t.Parallel()

	canvas := make([]byte, 2*2*4)
	require.NotPanics(t, func() {
		drawFrame(canvas, 2, 2, paletted(image.Rect(1, 1, 5, 5), 3))
	})
	assert.Equal(t, [4]byte{0, 0, 255, 255}, pixelAt(canvas, 2, 1, 1))
	assert.Equal(t, [4]byte{0, 0, 0, 0}, pixelAt(canvas, 2, 0, 0))
}

func TestCompositeDisposalBackground(t *testing.T) {
	t.Parallel()

	canvas := make([]byte, 2*2*4)
	out := make([]byte, len(canvas))
	composite(canvas, nil, out, 2, 2, paletted(image.Rect(0, 0, 1, 1), 1), gif.DisposalBackground)

	// The displayed output carries the frame...
	assert.Equal(t, [4]byte{255, 0, 0, 255}, pixelAt(out, 2, 0, 0))
	// ...while the canvas region is cleared for the next frame.
	assert.Equal(t, [4]byte{0, 0, 0, 0}, pixelAt(canvas, 2, 0, 0))
}

func TestCompositeDisposalPrevious(t *testing.T) {
	t.Parallel()

	canvas := make([]byte, 2*2*4)
	out := make([]byte, len(canvas))

	// Establish a green canvas, snapshot it, then draw red with
	// restore-previous disposal.
	drawFrame(canvas, 2, 2, paletted(image.Rect(0, 0, 2, 2), 2))
	prev := make([]byte, len(canvas))
	copy(prev, canvas)

	composite(canvas, prev, out, 2, 2, paletted(image.Rect(0, 0, 2, 2), 1), gif.DisposalPrevious)

	assert.Equal(t, [4]byte{255, 0, 0, 255}, pixelAt(out, 2, 0, 0), "red displayed")
	assert.Equal(t, [4]byte{0, 255, 0, 255}, pixelAt(canvas, 2, 0, 0), "canvas restored to green")
}

func TestCompositeDisposalNoneAccumulates(t *testing.T) {
	t.Parallel()

	canvas := make([]byte, 2*2*4)
	out := make([]byte, len(canvas))

	composite(canvas, nil, out, 2, 2, paletted(image.Rect(0, 0, 2, 1), 1), gif.DisposalNone)
	composite(canvas, nil, out, 2, 2, paletted(image.Rect(0, 1, 2, 2), 3), gif.DisposalNone)

	assert.Equal(t, [4]byte{255, 0, 0, 255}, pixelAt(out, 2, 0, 0), "first frame persists")
	assert.Equal(t, [4]byte{0, 0, 255, 255}, pixelAt(out, 2, 0, 1), "second frame added")
}
