// Package videodec implements the video-container media source over the
// reisen FFmpeg bindings, covering MP4/WebM/MKV intro variants.
package videodec

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/erparts/reisen"

	"github.com/gorkitale/intro/internal/decode"
)

// Source delivers decoded video frames as packed RGBA. It owns the
// underlying reisen media handle and its first video stream; both are
// released by Close.
type Source struct {
	log    *slog.Logger
	m      *reisen.Media
	stream *reisen.VideoStream
	info   decode.Info
}

// Open opens the container at path and prepares its first video stream for
// decoding. If log is nil, slog.Default() is used.
func Open(path string, log *slog.Logger) (*Source, decode.Info, error) {
	if log == nil {
		log = slog.Default()
	}

	m, err := reisen.NewMedia(path)
	if err != nil {
		return nil, decode.Info{}, fmt.Errorf("open media: %w", err)
	}

	streams := m.VideoStreams()
	if len(streams) == 0 {
		m.Close()
		return nil, decode.Info{}, fmt.Errorf("media %q has no video stream", path)
	}
	vs := streams[0]

	if err := m.OpenDecode(); err != nil {
		m.Close()
		return nil, decode.Info{}, fmt.Errorf("open decoder: %w", err)
	}
	if err := vs.Open(); err != nil {
		_ = m.CloseDecode()
		m.Close()
		return nil, decode.Info{}, fmt.Errorf("open video stream: %w", err)
	}

	num, den := vs.FrameRate()
	var fps float64
	if den > 0 {
		fps = float64(num) / float64(den)
	}

	info := decode.Info{
		Width:  vs.Width(),
		Height: vs.Height(),
		FPS:    fps,
	}

	s := &Source{
		log:    log.With("component", "videodec"),
		m:      m,
		stream: vs,
		info:   info,
	}
	s.log.Info("video opened", "path", path,
		"codec", vs.CodecName(), "width", info.Width, "height", info.Height, "fps", info.FPS)
	return s, info, nil
}

// ReadFrame decodes packets until the next video frame on the opened
// stream, copies its RGBA pixels into dst, and returns its presentation
// timestamp. Returns io.EOF when the container is exhausted.
func (s *Source) ReadFrame(dst []byte) (float64, error) {
	for {
		packet, ok, err := s.m.ReadPacket()
		if err != nil {
			return 0, fmt.Errorf("read packet: %w", err)
		}
		if !ok {
			return 0, io.EOF
		}
		if packet.Type() != reisen.StreamVideo || packet.StreamIndex() != s.stream.Index() {
			continue
		}

		frame, got, err := s.stream.ReadVideoFrame()
		if err != nil {
			return 0, fmt.Errorf("decode video frame: %w", err)
		}
		if !got || frame == nil {
			// Decoder needs more packets before it can emit a picture.
			continue
		}

		copy(dst, frame.Image().Pix)

		pts, err := frame.PresentationOffset()
		if err != nil {
			// Pace by frame rate when the container carries no usable PTS.
			return 0, nil
		}
		return pts.Seconds(), nil
	}
}

// Close releases the video stream and the media handle.
func (s *Source) Close() error {
	err := s.stream.Close()
	if derr := s.m.CloseDecode(); err == nil {
		err = derr
	}
	s.m.Close()
	return err
}
