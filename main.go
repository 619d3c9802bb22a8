package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"linechime/audio"
	"linechime/game"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file with overrides")
	mute := flag.Bool("mute", false, "disable audio")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	logger := newLogger(*debug)
	defer logger.Sync()

	cfg := game.DefaultConfig()
	if *configPath != "" {
		loaded, err := game.LoadConfig(*configPath)
		if err != nil {
			logger.Warn("config load failed, using defaults",
				zap.String("path", *configPath), zap.Error(err))
		} else {
			cfg = loaded
			logger.Info("config loaded", zap.String("path", *configPath))
		}
	}
	if *mute {
		cfg.Muted = true
	}

	g := game.New(cfg, logger, audio.NewPlayer())

	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetWindowTitle("linechime")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("game exited", zap.Error(err))
	}
}

func newLogger(debug bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
