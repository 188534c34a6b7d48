// gen-intro generates sample intro assets for manual testing: a looping
// animated GIF per language variant plus a short sine-tone audio clip, laid
// out the way the boot scene expects them.
//
// Usage:
//
//	go run ./test/tools/gen-intro -out assets
//	INTRO_ASSETS=assets go run ./cmd/intro
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/wav"
)

const (
	frameW   = 320
	frameH   = 180
	frames   = 90
	delayCS  = 3 // centiseconds per frame, ~33fps
	toneHz   = 440
	toneSecs = 3
)

func main() {
	out := flag.String("out", "assets", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		fatal(err)
	}

	for _, lang := range []string{"en", "tr"} {
		gifPath := filepath.Join(*out, fmt.Sprintf("intro_%s.gif", lang))
		if err := writeIntroGIF(gifPath, lang); err != nil {
			fatal(err)
		}
		fmt.Println("wrote", gifPath)

		// The boot scene only decodes MP3, but a WAV beside it is enough
		// for the wav branch of the synchronizer.
		wavPath := filepath.Join(*out, fmt.Sprintf("intro_%s.wav", lang))
		if err := writeTone(wavPath); err != nil {
			fatal(err)
		}
		fmt.Println("wrote", wavPath)
	}
}

// writeIntroGIF renders a sweeping color bar animation, enough motion to
// verify pacing and loop seams by eye.
func writeIntroGIF(path, lang string) error {
	pal := make(color.Palette, 0, 256)
	for i := 0; i < 256; i++ {
		pal = append(pal, color.RGBA{uint8(i), uint8(255 - i), 64, 255})
	}

	g := &gif.GIF{Config: image.Config{Width: frameW, Height: frameH}}
	for f := 0; f < frames; f++ {
		img := image.NewPaletted(image.Rect(0, 0, frameW, frameH), pal)
		phase := float64(f) / frames
		for y := 0; y < frameH; y++ {
			for x := 0; x < frameW; x++ {
				v := math.Sin(2*math.Pi*(float64(x)/frameW+phase)) * 0.5
				img.SetColorIndex(x, y, uint8((v+0.5)*255))
			}
		}
		// A language marker strip so variants are distinguishable.
		if lang == "tr" {
			for x := 0; x < frameW; x++ {
				img.SetColorIndex(x, 0, 255)
			}
		}
		g.Image = append(g.Image, img)
		g.Delay = append(g.Delay, delayCS)
		g.Disposal = append(g.Disposal, gif.DisposalNone)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, g)
}

// writeTone renders a fixed-length sine tone as 44.1kHz WAV.
func writeTone(path string) error {
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	tone, err := generators.SineTone(format.SampleRate, toneHz)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return wav.Encode(f, beep.Take(format.SampleRate.N(toneSecs*time.Second), tone), format)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "gen-intro:", err)
	os.Exit(1)
}
