// Package panels provides the tab contents of the main window.
package panels

import (
	"errors"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"scoreboard-tracker/internal/analytics"
	"scoreboard-tracker/internal/anchor"
	"scoreboard-tracker/internal/app"
	"scoreboard-tracker/internal/charts"
	"scoreboard-tracker/internal/ledger"
)

var statsHeader = []string{
	"UUID", "Row", "Player", "Level", "Score", "Kills",
	"Damage", "Gold Spent", "Team", "Victory/Defeat", "Datetime",
}

// StatsPanel is the Game Stats tab: the capture trigger and the latest
// session's table.
type StatsPanel struct {
	state  *app.State
	widget fyne.CanvasObject

	captureBtn *widget.Button
	chartBtn   *widget.Button
	progress   *widget.ProgressBar
	status     *widget.Label
	table      *widget.Table

	rows [][]string
}

// NewStatsPanel creates the Game Stats tab.
func NewStatsPanel(state *app.State) *StatsPanel {
	sp := &StatsPanel{state: state}
	sp.setupUI()
	sp.loadLatestSession()

	state.On(app.EventSessionComplete, func(interface{}) {
		sp.loadLatestSession()
	})
	return sp
}

// Container returns the panel's root widget.
func (sp *StatsPanel) Container() fyne.CanvasObject {
	return sp.widget
}

func (sp *StatsPanel) setupUI() {
	sp.captureBtn = widget.NewButton("Click to Save Game Data!", sp.onCapture)
	sp.chartBtn = widget.NewButton("Lifetime Chart", sp.onLifetimeChart)
	sp.progress = widget.NewProgressBar()
	sp.status = widget.NewLabel("Ready")

	sp.table = widget.NewTable(
		func() (int, int) { return len(sp.rows) + 1, len(statsHeader) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id.Row == 0 {
				label.TextStyle.Bold = true
				label.SetText(statsHeader[id.Col])
				return
			}
			label.TextStyle.Bold = false
			row := sp.rows[id.Row-1]
			if id.Col < len(row) {
				label.SetText(row[id.Col])
			} else {
				label.SetText("")
			}
		},
	)
	for i := range statsHeader {
		sp.table.SetColumnWidth(i, 110)
	}

	top := container.NewVBox(
		container.NewHBox(sp.captureBtn, sp.chartBtn),
		sp.progress,
		sp.status,
	)
	sp.widget = container.NewBorder(top, nil, nil, nil, sp.table)
}

func (sp *StatsPanel) onCapture() {
	sp.captureBtn.Disable()
	sp.progress.SetValue(0)
	sp.status.SetText("Processing screenshot...")

	go func() {
		_, err := sp.state.Capture()

		defer sp.captureBtn.Enable()
		switch {
		case errors.Is(err, anchor.ErrNotFound):
			sp.progress.SetValue(0)
			sp.status.SetText("Scoreboard not recognized. Is the post-match screen visible?")
		case err != nil:
			sp.progress.SetValue(0)
			sp.status.SetText(fmt.Sprintf("Error: %v", err))
		default:
			sp.progress.SetValue(1)
			sp.status.SetText("Screenshot processed successfully!")
		}
	}()
}

func (sp *StatsPanel) onLifetimeChart() {
	paths := sp.state.Paths()
	stats, err := analytics.Lifetime(paths.AggregatePlayer())
	if err != nil {
		sp.status.SetText(fmt.Sprintf("Error: %v", err))
		return
	}
	if len(stats) == 0 {
		sp.status.SetText("No recorded games yet.")
		return
	}

	out := filepath.Join(sp.state.DataDir, "lifetime_stats.html")
	cfg := charts.DefaultConfig()
	cfg.Title = "Lifetime Stats"
	cfg.Subtitle = fmt.Sprintf("%d players tracked", len(stats))
	if err := charts.RenderLifetime(stats, cfg, out); err != nil {
		sp.status.SetText(fmt.Sprintf("Error: %v", err))
		return
	}
	if err := openPath(out); err != nil {
		sp.status.SetText(fmt.Sprintf("Chart written to %s (open failed: %v)", out, err))
		return
	}
	sp.status.SetText("Lifetime chart opened.")
}

// loadLatestSession fills the table from last_session/output.csv.
func (sp *StatsPanel) loadLatestSession() {
	_, rows, err := ledger.Read(sp.state.Paths().Output())
	if err != nil {
		sp.status.SetText(fmt.Sprintf("Error loading latest game data: %v", err))
		return
	}
	sp.rows = rows
	sp.table.Refresh()
	if rows == nil {
		sp.status.SetText("No latest game data found.")
	}
}
