package gifdec

import (
	"fmt"
	"image/gif"
	"io"
	"log/slog"
	"os"

	"github.com/gorkitale/intro/internal/decode"
	"github.com/gorkitale/intro/media"
)

// Source delivers an animated GIF's frames as packed RGBA, compositing
// each frame onto a persistent canvas with its disposal mode. GIF parsing
// happens once at open; the per-frame RGBA expansion, which dominates the
// cost, runs lazily in ReadFrame so it stays on the decode worker.
type Source struct {
	log    *slog.Logger
	g      *gif.GIF
	info   decode.Info
	idx    int
	ts     float64
	canvas []byte
	prev   []byte
}

// Open parses the GIF at path and returns a Source positioned at its first
// frame. The reported frame rate derives from the first non-zero frame
// delay, falling back to media.DefaultFPS for GIFs that carry none.
// If log is nil, slog.Default() is used.
func Open(path string, log *slog.Logger) (*Source, decode.Info, error) {
	if log == nil {
		log = slog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, decode.Info{}, fmt.Errorf("open gif: %w", err)
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, decode.Info{}, fmt.Errorf("decode gif %q: %w", path, err)
	}
	if len(g.Image) == 0 {
		return nil, decode.Info{}, fmt.Errorf("gif %q contains no frames", path)
	}

	info := decode.Info{
		Width:  g.Config.Width,
		Height: g.Config.Height,
		FPS:    frameRate(g),
	}

	s := &Source{
		log:    log.With("component", "gifdec"),
		g:      g,
		info:   info,
		canvas: make([]byte, info.FrameBytes()),
	}
	s.log.Info("gif opened", "path", path,
		"frames", len(g.Image), "width", info.Width, "height", info.Height, "fps", info.FPS)
	return s, info, nil
}

// frameRate derives a single frame rate from the GIF's per-frame delays,
// which are expressed in hundredths of a second.
func frameRate(g *gif.GIF) float64 {
	for _, d := range g.Delay {
		if d > 0 {
			return 100.0 / float64(d)
		}
	}
	return media.DefaultFPS
}

// ReadFrame composites the next frame onto the canvas and copies the
// result into dst. Returns io.EOF once every frame has been delivered.
func (s *Source) ReadFrame(dst []byte) (float64, error) {
	if s.idx >= len(s.g.Image) {
		return 0, io.EOF
	}

	img := s.g.Image[s.idx]
	var disposal byte
	if s.idx < len(s.g.Disposal) {
		disposal = s.g.Disposal[s.idx]
	}

	// Snapshot the canvas only when this frame's disposal needs it.
	if disposal == gif.DisposalPrevious {
		if s.prev == nil {
			s.prev = make([]byte, len(s.canvas))
		}
		copy(s.prev, s.canvas)
	}

	composite(s.canvas, s.prev, dst, s.info.Width, s.info.Height, img, disposal)

	ts := s.ts
	if s.idx < len(s.g.Delay) {
		s.ts += float64(s.g.Delay[s.idx]) / 100.0
	} else {
		s.ts += 1.0 / s.info.FPS
	}
	s.idx++
	return ts, nil
}

// Close releases the parsed GIF. The stdlib decoder holds no external
// resources, so this only drops references.
func (s *Source) Close() error {
	s.g = nil
	s.canvas = nil
	s.prev = nil
	return nil
}
