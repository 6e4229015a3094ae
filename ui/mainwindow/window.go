// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"scoreboard-tracker/internal/app"
	"scoreboard-tracker/internal/version"
	"scoreboard-tracker/ui/panels"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State

	statsPanel  *panels.StatsPanel
	configPanel *panels.ConfigPanel
	filesPanel  *panels.FilesPanel
}

// New creates the main window with its three tabs.
func New(fyneApp fyne.App, state *app.State) *MainWindow {
	win := fyneApp.NewWindow(fmt.Sprintf("Game Stats Tracker v%s", version.Version))

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
	}
	mw.setupUI()
	return mw
}

func (mw *MainWindow) setupUI() {
	mw.statsPanel = panels.NewStatsPanel(mw.state)
	mw.configPanel = panels.NewConfigPanel(mw.state)
	mw.filesPanel = panels.NewFilesPanel(mw.state)

	tabs := container.NewAppTabs(
		container.NewTabItem("Game Stats", mw.statsPanel.Container()),
		container.NewTabItem("Configuration", mw.configPanel.Container()),
		container.NewTabItem("File Management", mw.filesPanel.Container()),
	)

	mw.SetContent(tabs)
	mw.Resize(fyne.NewSize(900, 600))
}
