//go:build android

package main

import (
	"fmt"
	"os"

	"gamehost/internal/config"
	"gamehost/internal/game"
	"gamehost/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
		cfg = config.Default()
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
	}
	game.RunAndroid(cfg, log)
}
