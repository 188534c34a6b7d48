// Package bootscene renders the boot-time intro: looping media playback
// via the decode pipeline, a static title fallback when the intro cannot
// play, asset-checklist progress, and the continue prompt. It implements
// ebiten.Game and owns the main tick loop while the application boots.
package bootscene

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/gorkitale/intro/internal/playback"
)

// Logical screen size, matching the original game's resolution.
const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

// maxTickDelta caps the per-tick wall-clock delta fed to the scheduler so
// a debugger pause or window drag does not fast-forward playback.
const maxTickDelta = 0.25

var uiFace = text.NewGoXFace(basicfont.Face7x13)

// Config assembles a boot Scene.
type Config struct {
	// Media is the resolved intro selection for the session's language.
	Media MediaPair
	// Title is the fallback text shown when no frame is available.
	Title string
	// Muted sets the initial audio state.
	Muted bool
	// Checklist is the boot asset list; nil means nothing to preload.
	Checklist Checklist
	// Audio plays the paired clip; nil disables sound.
	Audio playback.AudioPlayer
	// Log is the scene logger. Nil uses slog.Default().
	Log *slog.Logger
}

// Scene is the boot scene. Create with New, hand to ebiten.RunGame; Update
// returns ebiten.Termination once loading has finished and the player has
// pressed Enter or Space.
type Scene struct {
	log       *slog.Logger
	ctrl      *playback.Controller
	surface   *videoSurface
	checklist Checklist

	title       string
	lastTick    time.Time
	pulse       float64
	loadingDone bool
	waiting     bool
}

// New creates the boot scene and its playback controller. The decode
// worker is not spawned here; the controller starts it after its grace
// ticks, once the first frames have rendered.
func New(cfg Config) *Scene {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	if cfg.Checklist == nil {
		cfg.Checklist = NopChecklist{}
	}

	surface := &videoSurface{}
	ctrl := playback.NewController(playback.Config{
		VideoPath:  cfg.Media.VideoPath,
		AudioPath:  cfg.Media.AudioPath,
		OpenSource: openSource(log),
		GraceTicks: 2,
		Muted:      cfg.Muted,
	}, surface, cfg.Audio, log)

	return &Scene{
		log:       log.With("component", "bootscene"),
		ctrl:      ctrl,
		surface:   surface,
		checklist: cfg.Checklist,
		title:     cfg.Title,
	}
}

// Update runs one tick: mute keys, playback state machine, one checklist
// entry, and the continue gate. Boot progression depends only on the
// checklist and player input, never on playback reaching any state.
func (s *Scene) Update() error {
	now := time.Now()
	dt := 1.0 / float64(ebiten.TPS())
	if !s.lastTick.IsZero() {
		dt = now.Sub(s.lastTick).Seconds()
		if dt > maxTickDelta {
			dt = maxTickDelta
		}
	}
	s.lastTick = now
	s.pulse += dt

	if inpututil.IsKeyJustPressed(ebiten.KeyM) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.ctrl.SetMuted(!s.ctrl.Muted())
		s.log.Info("audio mute toggled", "muted", s.ctrl.Muted())
	}

	info := s.ctrl.Tick(dt)
	if info.Fallback {
		s.log.Warn("intro unavailable, showing title card")
	}

	if !s.loadingDone {
		if !s.checklist.LoadNext() {
			s.loadingDone = true
			s.log.Info("boot assets loaded", "count", s.checklist.Len())
		}
	}
	s.waiting = s.loadingDone

	if s.waiting {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			s.ctrl.Close()
			return ebiten.Termination
		}
	}
	return nil
}

// Draw renders the current intro frame scaled to the screen, or the title
// card when no frame exists, plus the progress, prompt, and mute overlays.
func (s *Scene) Draw(screen *ebiten.Image) {
	if img := s.surface.Image(); img != nil {
		op := &ebiten.DrawImageOptions{}
		b := img.Bounds()
		op.GeoM.Scale(
			float64(ScreenWidth)/float64(b.Dx()),
			float64(ScreenHeight)/float64(b.Dy()),
		)
		screen.DrawImage(img, op)
	} else {
		s.drawTitleCard(screen)
	}

	if !s.loadingDone {
		s.drawProgress(screen)
	}
	if s.waiting {
		s.drawPrompt(screen)
	}
	if s.ctrl.Muted() {
		drawText(screen, "[MUTED - Press M to unmute]", 10, 10, 1, 1)
	}
}

// Layout reports the fixed logical resolution.
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// PlaybackState exposes the controller state for the surrounding boot
// sequence and its diagnostics.
func (s *Scene) PlaybackState() playback.State {
	return s.ctrl.State()
}

func (s *Scene) drawTitleCard(screen *ebiten.Image) {
	const scale = 3.5
	w, h := text.Measure(s.title, uiFace, 0)
	x := (ScreenWidth - w*scale) / 2
	y := (ScreenHeight - h*scale) / 2
	alpha := math.Sin(s.pulse*2)*0.3 + 0.7
	drawText(screen, s.title, x, y, scale, alpha)
}

func (s *Scene) drawProgress(screen *ebiten.Image) {
	name := s.checklist.Current()
	if name == "" {
		name = "Done"
	}
	msg := fmt.Sprintf("%s [%d/%d]", name, s.checklist.Loaded(), s.checklist.Len())
	w, h := text.Measure(msg, uiFace, 0)
	drawText(screen, msg, ScreenWidth-w-10, ScreenHeight-h-10, 1, 1)
}

func (s *Scene) drawPrompt(screen *ebiten.Image) {
	const msg = "Press Enter to continue"
	w, h := text.Measure(msg, uiFace, 0)
	alpha := math.Sin(s.pulse*3)*0.3 + 0.7
	drawText(screen, msg, ScreenWidth-w-20, ScreenHeight-h-20, 1, alpha)
}

func drawText(screen *ebiten.Image, msg string, x, y, scale, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, msg, uiFace, op)
}
