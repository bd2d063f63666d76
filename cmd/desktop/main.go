package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/asteroid-shower/internal/audio"
	"github.com/tomz197/asteroid-shower/internal/config"
	"github.com/tomz197/asteroid-shower/internal/desktop"
	"github.com/tomz197/asteroid-shower/internal/logging"
	"github.com/tomz197/asteroid-shower/internal/scene"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	settings, err := config.FromEnv()
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.FromEnv("desktop")
	if err != nil {
		return err
	}
	defer closeLog()

	player := audio.NewPlayer(config.GetEnvFloat("SHOOTER_VOLUME", 0.5), logger)
	if s, ok := player.(*audio.Speaker); ok {
		defer s.Close()
	}

	game, err := desktop.New(scene.Options{
		Settings: &settings,
		Logger:   logger,
		Audio:    player,
	})
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(int(settings.World.Width), int(settings.World.Height))
	ebiten.SetWindowTitle("Asteroid Shower")
	ebiten.SetTPS(settings.World.FrameRate)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
