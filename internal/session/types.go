// Package session runs the scoreboard extraction pipeline: anchor detection,
// grid cropping, OCR, row assembly, outcome correction, and aggregate merge.
package session

import (
	"image"
	"path/filepath"

	"scoreboard-tracker/pkg/geometry"
)

// Outcome is a match result label as written to the ledger.
type Outcome string

const (
	Victory Outcome = "Victory"
	Defeat  Outcome = "Defeat"
	Unknown Outcome = "Unknown"
)

// PlayerRow is one scoreboard line. Values are raw OCR output: numeric
// columns use digit-constrained recognition but are not guaranteed
// parseable, and nothing here validates them (downstream analytics coerce
// non-numeric strings to zero). Rows are immutable once the outcome
// correction pass completes.
type PlayerRow struct {
	UUID      string
	Label     string
	Player    string
	Level     string
	Score     string
	Kills     string
	Damage    string
	GoldSpent string
	Team      string
	Outcome   Outcome
	Datetime  string
}

// CSVRecord returns the row in player-ledger column order.
func (r PlayerRow) CSVRecord() []string {
	return []string{
		r.UUID, r.Label, r.Player, r.Level, r.Score, r.Kills,
		r.Damage, r.GoldSpent, r.Team, string(r.Outcome), r.Datetime,
	}
}

// MiddleControlRecord is one team's objective-timer readout for a session.
type MiddleControlRecord struct {
	UUID     string
	Team     string
	TimeMMSS string
	Seconds  int
}

// CSVRecord returns the record in middle-control-ledger column order.
func (m MiddleControlRecord) CSVRecord() []string {
	return []string{m.UUID, m.Team, m.TimeMMSS, itoa(m.Seconds)}
}

// Recognizer reads text out of a cropped cell image. numeric constrains
// recognition to digit characters.
type Recognizer interface {
	Recognize(cell image.Image, numeric bool) (string, error)
}

// Locator finds the scoreboard body inside a full-screen capture.
type Locator interface {
	ScoreboardBounds(screenshot image.Image) (geometry.RectInt, error)
}

// CaptureFunc produces the session's screenshot.
type CaptureFunc func() (image.Image, error)

// Paths describes the on-disk layout under the data root.
type Paths struct {
	DataDir string
}

// SessionDir is the scratch folder wiped at the start of every session.
func (p Paths) SessionDir() string {
	return filepath.Join(p.DataDir, "last_session")
}

// AggregatePlayer is the append-only player ledger.
func (p Paths) AggregatePlayer() string {
	return filepath.Join(p.DataDir, "aggregate_player_data.csv")
}

// AggregateMiddleControl is the append-only middle-control ledger.
func (p Paths) AggregateMiddleControl() string {
	return filepath.Join(p.DataDir, "aggregate_middle_control.csv")
}

// Screenshot is the full-resolution capture for the current session.
func (p Paths) Screenshot() string {
	return filepath.Join(p.SessionDir(), "screenshot.png")
}

// Scoreboard is the anchor-cropped scoreboard image.
func (p Paths) Scoreboard() string {
	return filepath.Join(p.SessionDir(), "cropped_scoreboard.png")
}

// Output is the session player CSV.
func (p Paths) Output() string {
	return filepath.Join(p.SessionDir(), "output.csv")
}

// MiddleControl is the session middle-control CSV.
func (p Paths) MiddleControl() string {
	return filepath.Join(p.SessionDir(), "middle_control.csv")
}
