package bootscene

import (
	"fmt"
	"os"
	"path/filepath"
)

// MediaPair is one language variant's intro media selection.
type MediaPair struct {
	VideoPath string
	AudioPath string
}

// Variant resolves the intro media pair for a language code against the
// asset directory. Turkish has a localized intro; everything else falls
// back to English.
func Variant(assetDir, lang string) MediaPair {
	suffix := "en"
	if lang == "tr" {
		suffix = "tr"
	}
	return MediaPair{
		VideoPath: filepath.Join(assetDir, fmt.Sprintf("intro_%s.gif", suffix)),
		AudioPath: filepath.Join(assetDir, fmt.Sprintf("intro_%s.mp3", suffix)),
	}
}

// CheckExists verifies the pair's files ahead of worker spawn. A missing
// video path is returned as an error so callers can log it before the
// controller lands in fallback; a missing audio path only clears the
// field, since playback proceeds silently without it.
func (p MediaPair) CheckExists() (MediaPair, error) {
	if _, err := os.Stat(p.VideoPath); err != nil {
		return p, fmt.Errorf("intro video: %w", err)
	}
	if _, err := os.Stat(p.AudioPath); err != nil {
		p.AudioPath = ""
	}
	return p, nil
}
