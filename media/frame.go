// Package media defines the frame type that flows through the intro
// playback pipeline, from decoding through display.
package media

// Channel buffer sizes used by the producer (decoder) and consumer
// (scheduler) to decouple frame production from display pacing. The frame
// channel is deliberately small: the scheduler holds at most one pending
// frame, so a deep buffer only adds latency and memory.
const (
	// FrameBufferSize is the capacity of the bounded frame channel. With
	// one frame in flight on the channel's send side and one held by the
	// scheduler, at most FrameBufferSize+2 pixel buffers are ever live.
	FrameBufferSize = 5

	// DefaultFPS is used when a source reports a zero or negative frame
	// rate.
	DefaultFPS = 30.0
)

// Frame is a single decoded picture in packed RGBA, ready for upload to a
// display surface. Ownership transfers with the frame: the producer owns
// Pix until the frame is sent, the consumer owns it until the buffer is
// released back to the recycle channel. A Frame is never shared.
type Frame struct {
	// Timestamp is the presentation time in seconds from stream start.
	Timestamp float64

	// Pix holds exactly Width*Height*4 bytes of packed RGBA.
	Pix []byte

	Width  int
	Height int

	// SourceFPS is the source's native frame rate, used by the scheduler
	// to pace display. Always positive; the producer substitutes
	// DefaultFPS for degenerate values.
	SourceFPS float64
}

// Duration returns the display duration of one frame at the source rate.
func (f *Frame) Duration() float64 {
	return 1.0 / f.SourceFPS
}
