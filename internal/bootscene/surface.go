package bootscene

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gorkitale/intro/media"
)

// videoSurface adapts an ebiten image to playback.Surface. The image is
// created on the first uploaded frame, which fixes its dimensions; later
// frames update it in place. Owned exclusively by the main thread.
type videoSurface struct {
	img *ebiten.Image
}

// UploadFrame writes the frame's RGBA pixels into the backing image.
func (v *videoSurface) UploadFrame(f *media.Frame) {
	if v.img == nil {
		v.img = ebiten.NewImage(f.Width, f.Height)
	}
	v.img.WritePixels(f.Pix)
}

// Image returns the backing image, nil until the first frame arrives.
func (v *videoSurface) Image() *ebiten.Image {
	return v.img
}
