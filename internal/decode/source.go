// Package decode implements the producer half of the intro playback
// pipeline: a media source abstraction and a worker that decodes frames
// into recycled RGBA buffers and delivers them over a bounded channel.
package decode

// Info describes an opened media source.
type Info struct {
	Width  int
	Height int

	// FPS is the frame rate reported by the container. May be zero or
	// negative for broken sources; the producer substitutes a default.
	FPS float64
}

// FrameBytes returns the size in bytes of one packed RGBA frame.
func (i Info) FrameBytes() int {
	return i.Width * i.Height * 4
}

// Source is a single opened media source delivering packed RGBA frames in
// decode order. Implementations exist for animated GIFs (gifdec) and
// FFmpeg-readable video containers (videodec).
//
// A Source is not safe for concurrent use; after handoff to a Producer it
// is owned exclusively by the decode worker.
type Source interface {
	// ReadFrame decodes the next frame into dst, which must hold exactly
	// Info.FrameBytes() bytes, and returns the frame's presentation
	// timestamp in seconds. Returns io.EOF at end of stream.
	ReadFrame(dst []byte) (timestamp float64, err error)

	// Close releases decoder resources. Called by the worker on exit.
	Close() error
}
