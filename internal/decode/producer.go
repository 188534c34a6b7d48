package decode

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/gorkitale/intro/media"
)

// Producer owns the decode of one media source on a dedicated worker
// goroutine. Decoded frames travel to the consumer over a bounded channel;
// spent pixel buffers come back over the recycle channel. The bounded send
// is the worker's only stall point and provides backpressure when the
// consumer falls behind.
type Producer struct {
	log     *slog.Logger
	src     Source
	info    Info
	frames  chan *media.Frame
	recycle chan []byte

	framesProduced atomic.Int64
	allocations    atomic.Int64
}

// NewProducer creates a Producer for an already-opened source. capacity is
// the bounded frame channel's capacity and must be at least 1. A source
// reporting a non-positive frame rate is normalized to media.DefaultFPS.
// If log is nil, slog.Default() is used.
func NewProducer(src Source, info Info, capacity int, log *slog.Logger) *Producer {
	if log == nil {
		log = slog.Default()
	}
	if capacity < 1 {
		capacity = media.FrameBufferSize
	}
	if info.FPS <= 0 {
		log.Warn("source reported degenerate frame rate, using default",
			"fps", info.FPS, "default", media.DefaultFPS)
		info.FPS = media.DefaultFPS
	}
	return &Producer{
		log:    log.With("component", "decode"),
		src:    src,
		info:   info,
		frames: make(chan *media.Frame, capacity),
		// Sized so that Release never blocks: one buffer per channel
		// slot, one in the worker's hands, one held by the consumer.
		recycle: make(chan []byte, capacity+2),
	}
}

// Info returns the source description the producer was created with, frame
// rate already normalized.
func (p *Producer) Info() Info {
	return p.info
}

// Frames returns the channel on which decoded frames are delivered. It is
// closed when the worker exits, whether by end of stream, decode error, or
// cancellation.
func (p *Producer) Frames() <-chan *media.Frame {
	return p.frames
}

// Release returns a spent pixel buffer to the producer for reuse. Never
// blocks; if the worker has exited and the recycle channel is full, the
// buffer is simply left for the garbage collector.
func (p *Producer) Release(buf []byte) {
	select {
	case p.recycle <- buf:
	default:
	}
}

// FramesProduced returns the number of frames decoded and sent so far.
func (p *Producer) FramesProduced() int64 {
	return p.framesProduced.Load()
}

// Allocations returns the number of fresh pixel buffers allocated. Once
// the pool reaches steady state this stops increasing: recycled buffers
// cover every subsequent frame.
func (p *Producer) Allocations() int64 {
	return p.allocations.Load()
}

// Run decodes frames until end of stream, decode error, or context
// cancellation, then closes the frame channel and the source. Mid-stream
// decode errors are logged and treated as end of stream; the consumer sees
// only a closed channel either way.
func (p *Producer) Run(ctx context.Context) error {
	defer close(p.frames)
	defer func() {
		if err := p.src.Close(); err != nil {
			p.log.Warn("source close failed", "error", err)
		}
	}()

	var ts float64
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		buf := p.obtainBuffer()
		var err error
		ts, err = p.src.ReadFrame(buf)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.log.Warn("decode failed mid-stream, ending playback",
					"frame", p.framesProduced.Load(), "error", err)
			}
			return nil
		}

		frame := &media.Frame{
			Timestamp: ts,
			Pix:       buf,
			Width:     p.info.Width,
			Height:    p.info.Height,
			SourceFPS: p.info.FPS,
		}

		// Backpressure point: a full channel blocks the worker here
		// until the consumer frees a slot or the session is abandoned.
		select {
		case p.frames <- frame:
			p.framesProduced.Add(1)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// obtainBuffer takes a recycled buffer if one is immediately available and
// correctly sized, otherwise allocates a fresh one. A wrong-sized recycled
// buffer is discarded rather than resized in place so stale pixels never
// leak into a frame.
func (p *Producer) obtainBuffer() []byte {
	n := p.info.FrameBytes()
	select {
	case buf := <-p.recycle:
		if len(buf) == n {
			return buf
		}
	default:
	}
	p.allocations.Add(1)
	return make([]byte, n)
}
