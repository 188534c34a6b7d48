// Package audio plays the intro's paired audio clip through the beep
// speaker, aligned by the playback controller to session start and loop
// boundaries.
package audio

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// speakerBuffer is the output latency budget. Intro audio is not
// interactive, so a generous buffer beats underruns.
const speakerBuffer = 100 * time.Millisecond

// Synchronizer implements playback.AudioPlayer over the beep speaker. It
// decodes the clip once at Load and rewinds it for every Play, so loop
// restarts begin at sample zero. All methods run on the main tick thread;
// the speaker's own mixer goroutine is synchronized via speaker.Lock.
type Synchronizer struct {
	log      *slog.Logger
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	volume   *effects.Volume
	ctrl     *beep.Ctrl
	muted    bool
}

// NewSynchronizer creates an empty Synchronizer. If log is nil,
// slog.Default() is used.
func NewSynchronizer(log *slog.Logger) *Synchronizer {
	if log == nil {
		log = slog.Default()
	}
	return &Synchronizer{log: log.With("component", "audio")}
}

// Load opens and decodes the clip at path and initializes the speaker at
// the clip's sample rate. Supported formats follow the intro asset set:
// MP3 and WAV.
func (s *Synchronizer) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		streamer, format, err = mp3.Decode(f)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("decode audio %q: %w", path, err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(speakerBuffer)); err != nil {
		streamer.Close()
		f.Close()
		return fmt.Errorf("init speaker: %w", err)
	}

	s.file = f
	s.streamer = streamer
	s.format = format
	s.log.Info("intro audio loaded", "path", path, "sampleRate", int(format.SampleRate))
	return nil
}

// Play starts the clip from the beginning, stopping any previous playback
// first. Calling Play without a successful Load is an error.
func (s *Synchronizer) Play() error {
	if s.streamer == nil {
		return fmt.Errorf("no audio clip loaded")
	}

	s.Stop()
	if err := s.streamer.Seek(0); err != nil {
		return fmt.Errorf("rewind audio: %w", err)
	}

	s.volume = &effects.Volume{
		Streamer: s.streamer,
		Base:     2,
		Volume:   0,
		Silent:   s.muted,
	}
	s.ctrl = &beep.Ctrl{Streamer: s.volume}
	speaker.Play(s.ctrl)
	return nil
}

// Stop halts playback by detaching the clip from the mixer. The decoded
// streamer is kept for the next Play.
func (s *Synchronizer) Stop() {
	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Streamer = nil
	speaker.Unlock()
	s.ctrl = nil
	s.volume = nil
}

// SetMuted silences or restores the clip in place. Playback position keeps
// advancing while muted, preserving loop alignment.
func (s *Synchronizer) SetMuted(muted bool) {
	s.muted = muted
	if s.volume == nil {
		return
	}
	speaker.Lock()
	s.volume.Silent = muted
	speaker.Unlock()
}

// Close stops playback and releases the decoded clip.
func (s *Synchronizer) Close() error {
	s.Stop()
	var err error
	if s.streamer != nil {
		err = s.streamer.Close()
		s.streamer = nil
	}
	if s.file != nil {
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
		s.file = nil
	}
	return err
}
