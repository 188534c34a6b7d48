package playback

import (
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/gorkitale/intro/internal/decode"
	"github.com/gorkitale/intro/media"
)

// State is the playback controller's lifecycle state.
type State int

// Controller states. Restarting is transient: a single tick moves
// Ended through Restarting back into Initializing.
const (
	StateUninitialized State = iota
	StateInitializing
	StatePlaying
	StateEnded
	StateRestarting
	StateFallback
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StatePlaying:
		return "playing"
	case StateEnded:
		return "ended"
	case StateRestarting:
		return "restarting"
	case StateFallback:
		return "fallback"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// AudioPlayer is the paired-clip interface the controller drives. Failures
// behind it are non-fatal: visual playback proceeds silently.
type AudioPlayer interface {
	// Load prepares the clip at path for playback.
	Load(path string) error
	// Play starts (or restarts) the clip from the beginning.
	Play() error
	// Stop halts the clip. Safe to call when nothing is playing.
	Stop()
	// SetMuted silences or restores the clip without stopping it.
	SetMuted(muted bool)
}

// Config carries everything the controller needs for one media selection,
// resolved by the caller before construction. No ambient globals are read.
type Config struct {
	// VideoPath locates the video or animated-image source.
	VideoPath string
	// AudioPath locates the paired audio clip. Empty disables audio.
	AudioPath string
	// OpenSource opens VideoPath, called once per session including each
	// loop restart.
	OpenSource func(path string) (decode.Source, decode.Info, error)
	// ChannelCapacity bounds the frame channel. Defaults to
	// media.FrameBufferSize when non-positive.
	ChannelCapacity int
	// GraceTicks delays initialization so the first render pass can
	// complete. Defaults to 2 when negative; 0 initializes immediately.
	GraceTicks int
	// Muted sets the initial audio mute state.
	Muted bool
}

// TickInfo reports lifecycle events that occurred during a single tick,
// consumed by the boot scene. The boot sequence gates progression on its
// asset checklist, never on these signals.
type TickInfo struct {
	// Looped is set on the tick a finished session was torn down and a
	// new one started.
	Looped bool
	// Fallback is set on the tick the controller entered Fallback.
	Fallback bool
}

// Controller owns the playback session lifecycle: initialization after a
// short grace period, end-of-stream detection, seamless looping, fallback
// on open failure, and mute toggling. It runs entirely on the main tick
// thread.
type Controller struct {
	log     *slog.Logger
	cfg     Config
	surface Surface
	audio   AudioPlayer

	state      State
	session    *Session
	graceTicks int
	loops      int64
	muted      bool
	audioReady bool
}

// NewController creates a Controller in StateUninitialized. surface must
// be non-nil; audio may be nil to disable sound entirely. If log is nil,
// slog.Default() is used.
func NewController(cfg Config, surface Surface, audio AudioPlayer, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ChannelCapacity <= 0 {
		cfg.ChannelCapacity = media.FrameBufferSize
	}
	if cfg.GraceTicks < 0 {
		cfg.GraceTicks = 2
	}
	return &Controller{
		log:     log.With("component", "playback"),
		cfg:     cfg,
		surface: surface,
		audio:   audio,
		muted:   cfg.Muted,
	}
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Loops returns how many times playback has wrapped around.
func (c *Controller) Loops() int64 {
	return c.loops
}

// FramesDisplayed returns the number of frames shown in the current
// session, zero when no session is live.
func (c *Controller) FramesDisplayed() int64 {
	if c.session == nil {
		return 0
	}
	return c.session.sched.Displayed()
}

// Muted returns the current mute state.
func (c *Controller) Muted() bool {
	return c.muted
}

// SetMuted adjusts audio output only. It never tears down or respawns the
// decode worker, so displayed frame timing is unaffected.
func (c *Controller) SetMuted(muted bool) {
	if c.muted == muted {
		return
	}
	c.muted = muted
	if c.audio != nil {
		c.audio.SetMuted(muted)
	}
}

// Tick drives the state machine by one main-loop tick of dt seconds.
func (c *Controller) Tick(dt float64) TickInfo {
	switch c.state {
	case StateUninitialized:
		if c.graceTicks < c.cfg.GraceTicks {
			c.graceTicks++
			return TickInfo{}
		}
		return c.beginSession(true)

	case StateInitializing, StatePlaying:
		c.session.sched.Tick(dt)
		if c.state == StateInitializing && c.session.sched.Displayed() > 0 {
			c.state = StatePlaying
		}
		if c.session.sched.Ended() {
			if c.session.sched.Displayed() == 0 {
				// The source opened but produced nothing; restarting
				// would spin on it forever.
				c.log.Warn("source produced no frames, entering fallback")
				c.enterFallback()
				return TickInfo{Fallback: true}
			}
			c.state = StateEnded
		}
		return TickInfo{}

	case StateEnded:
		c.state = StateRestarting
		c.restart()
		info := c.beginSession(false)
		info.Looped = c.state != StateFallback
		return info

	default: // StateFallback
		return TickInfo{}
	}
}

// restart tears down the finished session before the next one starts:
// audio is stopped first so overlapping sound can never occur.
func (c *Controller) restart() {
	if c.audio != nil && c.audioReady {
		c.audio.Stop()
	}
	if c.session != nil {
		c.session.abandon()
		c.session = nil
	}
	c.loops++
	c.log.Info("looping playback", "loop", c.loops)
}

// beginSession opens the source and, on the first session, loads the
// paired audio clip, the two in parallel since both touch the filesystem.
// Open failure is terminal for this controller instance: the state becomes
// Fallback and no worker is left running. Audio failure is logged and
// playback proceeds silently.
func (c *Controller) beginSession(first bool) TickInfo {
	c.state = StateInitializing

	var (
		src  decode.Source
		info decode.Info
		g    errgroup.Group
	)
	g.Go(func() error {
		var err error
		src, info, err = c.cfg.OpenSource(c.cfg.VideoPath)
		return err
	})
	if first && c.audio != nil && c.cfg.AudioPath != "" {
		g.Go(func() error {
			if err := c.audio.Load(c.cfg.AudioPath); err != nil {
				c.log.Warn("intro audio unavailable, playing silently",
					"path", c.cfg.AudioPath, "error", err)
				return nil
			}
			c.audioReady = true
			c.audio.SetMuted(c.muted)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.log.Warn("intro source unavailable, entering fallback",
			"path", c.cfg.VideoPath, "error", err)
		c.enterFallback()
		return TickInfo{Fallback: true}
	}

	c.session = newSession(src, info, c.cfg.ChannelCapacity, c.surface, c.log)

	if c.audio != nil && c.audioReady {
		if err := c.audio.Play(); err != nil {
			c.log.Warn("intro audio failed to start", "error", err)
		}
	}
	return TickInfo{}
}

func (c *Controller) enterFallback() {
	if c.session != nil {
		c.session.abandon()
		c.session = nil
	}
	c.state = StateFallback
}

// Close abandons any live session and stops audio. Used on application
// exit; the controller is not reusable afterwards.
func (c *Controller) Close() {
	if c.audio != nil && c.audioReady {
		c.audio.Stop()
	}
	if c.session != nil {
		c.session.abandon()
		c.session = nil
	}
}
