package panels

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"scoreboard-tracker/internal/app"
)

// FilesPanel is the File Management tab: shortcuts into the data folder.
type FilesPanel struct {
	state  *app.State
	widget fyne.CanvasObject
	status *widget.Label
}

// NewFilesPanel creates the File Management tab.
func NewFilesPanel(state *app.State) *FilesPanel {
	fp := &FilesPanel{state: state}
	fp.setupUI()
	return fp
}

// Container returns the panel's root widget.
func (fp *FilesPanel) Container() fyne.CanvasObject {
	return fp.widget
}

func (fp *FilesPanel) setupUI() {
	fp.status = widget.NewLabel("")
	paths := fp.state.Paths()

	fp.widget = container.NewVBox(
		widget.NewButton("Open Data Folder", func() {
			fp.open(fp.state.DataDir)
		}),
		widget.NewButton("Open Aggregate Player Data", func() {
			fp.open(paths.AggregatePlayer())
		}),
		widget.NewButton("Open Aggregate Middle Control", func() {
			fp.open(paths.AggregateMiddleControl())
		}),
		widget.NewButton("Open Last Session Folder", func() {
			fp.open(paths.SessionDir())
		}),
		fp.status,
	)
}

func (fp *FilesPanel) open(path string) {
	if _, err := os.Stat(path); err != nil {
		fp.status.SetText(fmt.Sprintf("Not found: %s", path))
		return
	}
	if err := openPath(path); err != nil {
		fp.status.SetText(fmt.Sprintf("Open failed: %v", err))
		return
	}
	fp.status.SetText("")
}

// openPath hands a file or folder to the OS default handler.
func openPath(path string) error {
	switch runtime.GOOS {
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path).Start()
	case "darwin":
		return exec.Command("open", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}
