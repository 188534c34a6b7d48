// Package playback implements the consumer half of the intro pipeline: a
// frame scheduler paced against the source rate and a controller that runs
// the session lifecycle, looping playback and degrading to a fallback when
// the source cannot be opened.
package playback

import (
	"github.com/gorkitale/intro/media"
)

// Surface is the display target the scheduler uploads frames to. It is
// exclusively owned by the main tick thread; the scheduler never calls it
// from any other goroutine.
type Surface interface {
	// UploadFrame replaces the surface contents with the frame's pixels.
	// The frame is only valid for the duration of the call; the pixel
	// buffer is recycled immediately afterwards.
	UploadFrame(f *media.Frame)
}

// Scheduler paces display of decoded frames against the source frame rate.
// It runs once per application tick on the main thread and never blocks:
// every channel interaction is a non-blocking poll. At most one frame is
// buffered ahead (pending), trading throughput for latency.
type Scheduler struct {
	frames  <-chan *media.Frame
	release func([]byte)
	surface Surface

	pending   *media.Frame
	timer     float64
	ended     bool
	displayed int64
}

// NewScheduler creates a Scheduler reading from frames and returning spent
// buffers via release.
func NewScheduler(frames <-chan *media.Frame, release func([]byte), surface Surface) *Scheduler {
	return &Scheduler{
		frames:  frames,
		release: release,
		surface: surface,
	}
}

// Tick advances the pacing timer by dt seconds and displays as many frames
// as have come due. The timer keeps its fractional remainder across ticks
// rather than resetting, so tick-rate jitter never accumulates into drift.
// A fast decoder cannot speed playback up; a slow one holds the current
// frame rather than skipping ahead.
func (s *Scheduler) Tick(dt float64) {
	if s.ended {
		return
	}

	s.timer += dt

	if s.pending == nil {
		s.poll()
	}
	for s.pending != nil {
		d := s.pending.Duration()
		if s.timer < d {
			break
		}
		s.surface.UploadFrame(s.pending)
		s.release(s.pending.Pix)
		s.displayed++
		s.timer -= d
		s.pending = nil
		s.poll()
	}
}

// poll attempts a non-blocking receive. A closed channel with no pending
// frame marks the end of the session; the consumer does not distinguish
// natural end of stream from a mid-stream decode failure.
func (s *Scheduler) poll() {
	select {
	case f, ok := <-s.frames:
		if !ok {
			s.ended = true
			return
		}
		s.pending = f
	default:
	}
}

// Ended reports whether the frame channel has closed and every received
// frame has been displayed.
func (s *Scheduler) Ended() bool {
	return s.ended
}

// Displayed returns the number of frames uploaded so far this session.
func (s *Scheduler) Displayed() int64 {
	return s.displayed
}
