package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gorkitale/intro/internal/audio"
	"github.com/gorkitale/intro/internal/bootscene"
)

var version = "dev"

func main() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	assetDir := envOr("INTRO_ASSETS", "assets")
	lang := envOr("INTRO_LANG", "en")
	muted := os.Getenv("INTRO_MUTED") != ""
	title := envOr("INTRO_TITLE", "GORKITALE")

	pair := bootscene.Variant(assetDir, lang)
	pair, err := pair.CheckExists()
	if err != nil {
		// The scene still runs: the controller degrades to the title card.
		slog.Warn("intro media missing", "error", err)
	}

	slog.Info("intro starting",
		"version", version,
		"lang", lang,
		"video", pair.VideoPath,
		"audio", pair.AudioPath,
		"muted", muted,
	)

	snd := audio.NewSynchronizer(nil)
	defer snd.Close()

	scene := bootscene.New(bootscene.Config{
		Media: pair,
		Title: title,
		Muted: muted,
		Audio: snd,
	})

	ebiten.SetWindowSize(bootscene.ScreenWidth, bootscene.ScreenHeight)
	ebiten.SetWindowTitle(title)

	if err := ebiten.RunGame(scene); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("boot scene failed", "error", err)
		os.Exit(1)
	}
	slog.Info("boot scene finished", "playback", scene.PlaybackState().String())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
