package audio

import (
	"os"
	"path/filepath"
	"testing"
)

// Device-facing paths (speaker output) are exercised manually; these tests
// cover the failure modes the controller relies on being non-fatal.

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	s := NewSynchronizer(nil)
	if err := s.Load(filepath.Join(t.TempDir(), "absent.mp3")); err == nil {
		t.Error("expected error for missing clip")
	}
}

func TestLoadUndecodableFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "noise.mp3")
	if err := os.WriteFile(path, []byte("definitely not mpeg audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewSynchronizer(nil)
	if err := s.Load(path); err == nil {
		t.Error("expected error for undecodable clip")
	}
}

func TestPlayWithoutLoad(t *testing.T) {
	t.Parallel()

	s := NewSynchronizer(nil)
	if err := s.Play(); err == nil {
		t.Error("expected error when no clip is loaded")
	}
}

func TestStopAndMuteAreSafeWhenIdle(t *testing.T) {
	t.Parallel()

	s := NewSynchronizer(nil)
	s.Stop()
	s.SetMuted(true)
	s.SetMuted(false)
	if err := s.Close(); err != nil {
		t.Errorf("Close on idle synchronizer: %v", err)
	}
}
