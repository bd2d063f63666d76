package main

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/asteroid-shower/internal/audio"
	"github.com/tomz197/asteroid-shower/internal/config"
	"github.com/tomz197/asteroid-shower/internal/draw"
	"github.com/tomz197/asteroid-shower/internal/logging"
	"github.com/tomz197/asteroid-shower/internal/loop"
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
	// stdout is the game screen, so only log when a log file is set
	logger := logging.Discard()
	if config.GetEnv("SHOOTER_LOG_FILE", "") != "" {
		l, closeLog, err := logging.FromEnv("game")
		if err != nil {
			return err
		}
		defer closeLog()
		logger = l
	}

	player := audio.NewPlayer(config.GetEnvFloat("SHOOTER_VOLUME", 0.5), logger)
	if s, ok := player.(*audio.Speaker); ok {
		defer s.Close()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	logger.Info("Starting", "fps", settings.World.FrameRate, "lives", settings.Ship.Lives)
	return loop.Run(bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Settings:     &settings,
		Logger:       logger,
		Audio:        player,
		TermSizeFunc: draw.DefaultTermSizeFunc,
		Renderer:     draw.NewRenderer(os.Stdout, false),
	})
}
