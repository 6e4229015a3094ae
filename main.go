// Package main provides the entry point for the Game Stats Tracker application.
package main

import (
	"flag"
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"scoreboard-tracker/internal/app"
	"scoreboard-tracker/internal/config"
	"scoreboard-tracker/internal/version"
	"scoreboard-tracker/ui/mainwindow"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "config.json", "Path to the scoreboard config file")
	dataDir := flag.String("data", "data", "Data directory for session and aggregate files")
	flag.Parse()

	log.Printf("Starting Game Stats Tracker v%s", version.Version)

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory %s: %v", *dataDir, err)
	}

	state := app.NewState(*configPath, *dataDir)
	if err := state.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config %s: %v", *configPath, err)
	}

	// Pick up external edits to the config without a restart.
	watcher, err := config.Watch(*configPath, func(cfg *config.Config) {
		log.Printf("Config reloaded from %s", *configPath)
		state.SetConfig(cfg)
	})
	if err != nil {
		log.Printf("Config watcher unavailable: %v", err)
	} else {
		defer watcher.Close()
	}

	fyneApp := fyneapp.New()
	win := mainwindow.New(fyneApp, state)
	win.ShowAndRun()
}
