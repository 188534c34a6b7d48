package playback

import (
	"context"
	"log/slog"

	"github.com/gorkitale/intro/internal/decode"
)

// Session is one lifecycle instance of the pipeline: a decode worker, the
// frame and recycle channels, and the scheduler consuming them. Each loop
// restart builds a fresh Session with a fresh worker; workers are never
// reused.
type Session struct {
	producer *decode.Producer
	sched    *Scheduler
	cancel   context.CancelFunc
	done     chan struct{}
}

// newSession spawns the decode worker for an opened source and wires the
// scheduler to its channels. The worker runs until end of stream, decode
// error, or abandonment.
func newSession(src decode.Source, info decode.Info, capacity int, surface Surface, log *slog.Logger) *Session {
	p := decode.NewProducer(src, info, capacity, log)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		producer: p,
		sched:    NewScheduler(p.Frames(), p.Release, surface),
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		if err := p.Run(ctx); err != nil && ctx.Err() == nil {
			log.Warn("decode worker exited with error", "error", err)
		}
	}()

	return s
}

// abandon cancels the worker's context so a blocked send unwinds promptly.
// The worker is not waited on: it owns no state the next session touches,
// and its channels are garbage once the session is dropped.
func (s *Session) abandon() {
	s.cancel()
}

// Done returns a channel closed once the decode worker has exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
