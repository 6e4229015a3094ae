package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"scoreboard-tracker/internal/app"
)

// ConfigPanel is the Configuration tab: the tracked player name.
type ConfigPanel struct {
	state  *app.State
	widget fyne.CanvasObject

	nameEntry *widget.Entry
	status    *widget.Label
}

// NewConfigPanel creates the Configuration tab.
func NewConfigPanel(state *app.State) *ConfigPanel {
	cp := &ConfigPanel{state: state}
	cp.setupUI()

	state.On(app.EventConfigChanged, func(interface{}) {
		if cfg := state.Config(); cfg != nil && cp.nameEntry.Text != cfg.PlayerName {
			cp.nameEntry.SetText(cfg.PlayerName)
		}
	})
	return cp
}

// Container returns the panel's root widget.
func (cp *ConfigPanel) Container() fyne.CanvasObject {
	return cp.widget
}

func (cp *ConfigPanel) setupUI() {
	cp.nameEntry = widget.NewEntry()
	if cfg := cp.state.Config(); cfg != nil {
		cp.nameEntry.SetText(cfg.PlayerName)
	}
	cp.status = widget.NewLabel("")

	saveBtn := widget.NewButton("Save", cp.onSave)

	cp.widget = container.NewVBox(
		widget.NewLabel("Set your player name for tracking purposes (case-sensitive):"),
		cp.nameEntry,
		saveBtn,
		cp.status,
	)
}

func (cp *ConfigPanel) onSave() {
	name := cp.nameEntry.Text
	if name == "" {
		cp.status.SetText("Player name cannot be empty!")
		return
	}
	if err := cp.state.SetPlayerName(name); err != nil {
		cp.status.SetText(fmt.Sprintf("Error: %v", err))
		return
	}
	cp.status.SetText(fmt.Sprintf("Player name updated to %q", name))
}
