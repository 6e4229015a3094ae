// Command processimg runs the scoreboard extraction pipeline against a saved
// screenshot instead of a live capture. Useful for tuning region geometry
// offline against known-good captures.
//
// Usage: processimg -image screenshot.png [options]
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"

	"scoreboard-tracker/internal/anchor"
	"scoreboard-tracker/internal/capture"
	"scoreboard-tracker/internal/config"
	"scoreboard-tracker/internal/ocr"
	"scoreboard-tracker/internal/session"
)

var (
	flagImage   = flag.String("image", "", "Screenshot file to process (required)")
	flagConfig  = flag.String("config", "config.json", "Config file")
	flagData    = flag.String("data", "data", "Data directory")
	flagPlayer  = flag.String("player", "", "Tracked player name (default: config player_name)")
	flagNoDebug = flag.Bool("no-debug", false, "Skip writing per-cell debug images")
	flagVerbose = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Parse()
	if *flagImage == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -image screenshot.png [options]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fatal("load config: %v", err)
	}
	player := *flagPlayer
	if player == "" {
		player = cfg.PlayerName
	}

	engine, err := ocr.NewEngine()
	if err != nil {
		fatal("start OCR engine: %v", err)
	}
	defer engine.Close()

	locator := anchor.NewLocator(cfg.AnchorTemplates, cfg.AnchorThreshold)
	pipeline := session.NewPipeline(cfg, session.Paths{DataDir: *flagData}, engine, locator, session.Options{
		SaveDebugImages: !*flagNoDebug,
		Capture: func() (image.Image, error) {
			return capture.LoadImage(*flagImage)
		},
		Logger: logger,
	})

	rows, err := pipeline.ProcessScreenshot(player)
	if err != nil {
		if errors.Is(err, anchor.ErrNotFound) {
			fatal("scoreboard not recognized in %s", *flagImage)
		}
		fatal("process: %v", err)
	}

	fmt.Printf("Session %s: %d rows\n", rows[0].UUID, len(rows))
	for _, r := range rows {
		fmt.Printf("  %-6s %-20s level=%-4s score=%-6s kills=%-4s damage=%-8s gold=%-6s %s %s\n",
			r.Label, r.Player, r.Level, r.Score, r.Kills, r.Damage, r.GoldSpent, r.Team, r.Outcome)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
