// Command anchortest scores anchor templates against a screenshot without
// running the rest of the pipeline. Use it to tune the match threshold or
// compare candidate template crops.
//
// Usage: anchortest -image screenshot.png template1.png [template2.png ...]
package main

import (
	"flag"
	"fmt"
	"os"

	"scoreboard-tracker/internal/anchor"
	"scoreboard-tracker/internal/capture"
)

var (
	flagImage     = flag.String("image", "", "Screenshot file to match against (required)")
	flagThreshold = flag.Float64("threshold", 0.8, "Match threshold for the pass/fail column")
)

func main() {
	flag.Parse()
	if *flagImage == "" || flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s -image screenshot.png template.png [template.png ...]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	shot, err := capture.LoadImage(*flagImage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load screenshot: %v\n", err)
		os.Exit(1)
	}

	locator := anchor.NewLocator(flag.Args(), *flagThreshold)
	matches, err := locator.Scores(shot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "match: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-40s %8s %12s %s\n", "template", "score", "location", "pass")
	for _, m := range matches {
		pass := " "
		if m.Score >= *flagThreshold {
			pass = "*"
		}
		fmt.Printf("%-40s %8.4f (%5d,%5d) %s\n", m.Template, m.Score, m.Location.X, m.Location.Y, pass)
	}

	b := shot.Bounds()
	if pt, score, err := locator.Locate(shot); err == nil {
		body := anchor.BodyBounds(pt, b.Dx(), b.Dy())
		fmt.Printf("\nBest match at (%d,%d) score %.4f, scoreboard body %dx%d+%d+%d\n",
			pt.X, pt.Y, score, body.Width, body.Height, body.X, body.Y)
	} else {
		fmt.Printf("\nNo template above threshold %.2f\n", *flagThreshold)
	}
}
