package bootscene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestVariantSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang      string
		wantVideo string
		wantAudio string
	}{
		{"tr", "intro_tr.gif", "intro_tr.mp3"},
		{"en", "intro_en.gif", "intro_en.mp3"},
		{"de", "intro_en.gif", "intro_en.mp3"},
		{"", "intro_en.gif", "intro_en.mp3"},
	}
	for _, tt := range tests {
		pair := Variant("assets", tt.lang)
		if got, want := pair.VideoPath, filepath.Join("assets", tt.wantVideo); got != want {
			t.Errorf("Variant(%q) video: got %q, want %q", tt.lang, got, want)
		}
		if got, want := pair.AudioPath, filepath.Join("assets", tt.wantAudio); got != want {
			t.Errorf("Variant(%q) audio: got %q, want %q", tt.lang, got, want)
		}
	}
}

func TestCheckExistsMissingVideo(t *testing.T) {
	t.Parallel()

	pair := Variant(t.TempDir(), "en")
	if _, err := pair.CheckExists(); err == nil {
		t.Error("expected error for missing intro video")
	}
}

func TestCheckExistsMissingAudioClearsPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pair := Variant(dir, "en")
	if err := os.WriteFile(pair.VideoPath, []byte("gif"), 0o644); err != nil {
		t.Fatal(err)
	}

	checked, err := pair.CheckExists()
	if err != nil {
		t.Fatalf("CheckExists: %v", err)
	}
	if checked.AudioPath != "" {
		t.Errorf("AudioPath: got %q, want empty for missing clip", checked.AudioPath)
	}
	if checked.VideoPath != pair.VideoPath {
		t.Errorf("VideoPath changed: got %q", checked.VideoPath)
	}
}

func TestCheckExistsComplete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pair := Variant(dir, "tr")
	for _, p := range []string{pair.VideoPath, pair.AudioPath} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	checked, err := pair.CheckExists()
	if err != nil {
		t.Fatalf("CheckExists: %v", err)
	}
	if checked != pair {
		t.Errorf("pair changed: got %+v, want %+v", checked, pair)
	}
}
