package session

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"scoreboard-tracker/internal/config"
	"scoreboard-tracker/internal/ledger"
	"scoreboard-tracker/pkg/geometry"
)

const (
	boardW = 1000
	boardH = 500
)

const testConfigJSON = `{
  "rows": [
    {"top_y": 0, "bottom_y": 10},
    {"top_y": 10, "bottom_y": 20},
    {"top_y": 20, "bottom_y": 30},
    {"top_y": 30, "bottom_y": 40},
    {"top_y": 40, "bottom_y": 50},
    {"top_y": 50, "bottom_y": 60}
  ],
  "columns": {
    "Player": {"start_x": 0, "end_x": 30},
    "Level": {"start_x": 30, "end_x": 40},
    "Score": {"start_x": 40, "end_x": 50},
    "Kills": {"start_x": 50, "end_x": 60},
    "Damage": {"start_x": 60, "end_x": 80},
    "Gold Spent": {"start_x": 80, "end_x": 100}
  },
  "middle_control": {
    "Team 1": {"top_left_x": 0, "top_left_y": 60, "bottom_right_x": 20, "bottom_right_y": 70},
    "Team 2": {"top_left_x": 20, "top_left_y": 60, "bottom_right_x": 40, "bottom_right_y": 70}
  },
  "victory_defeat_position": {"start_x": 500, "start_y": 350, "end_x": 700, "end_y": 400},
  "player_name": "Hero"
}`

// cellKey identifies a painted region by the (R, G) channels of its fill.
type cellKey [2]uint8

// fakeRecognizer maps a cell's fill color to canned OCR output, standing in
// for Tesseract so the pipeline runs deterministically.
type fakeRecognizer struct {
	values map[cellKey]string
}

func (f *fakeRecognizer) Recognize(cell image.Image, numeric bool) (string, error) {
	b := cell.Bounds()
	c := color.NRGBAModel.Convert(cell.At(b.Min.X, b.Min.Y)).(color.NRGBA)
	text, ok := f.values[cellKey{c.R, c.G}]
	if !ok {
		return "", nil
	}
	return text, nil
}

// fakeLocator reports the whole screenshot as the scoreboard body.
type fakeLocator struct{ err error }

func (f *fakeLocator) ScoreboardBounds(shot image.Image) (geometry.RectInt, error) {
	if f.err != nil {
		return geometry.RectInt{}, f.err
	}
	b := shot.Bounds()
	return geometry.RectInt{Width: b.Dx(), Height: b.Dy()}, nil
}

func fill(img *image.NRGBA, r geometry.RectInt, c color.NRGBA) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// buildFixture paints a synthetic scoreboard where every cell carries a
// unique color, and returns the matching recognizer vocabulary.
func buildFixture(t *testing.T, cfg *config.Config) (*image.NRGBA, *fakeRecognizer) {
	t.Helper()
	board := image.NewNRGBA(image.Rect(0, 0, boardW, boardH))

	players := []string{"Alice", "Bob", "Cara", "Dan", "Hero", "Fay"}
	stats := map[string][]string{
		"Level":      {"10", "11", "12", "13", "14", "15"},
		"Score":      {"100", "200", "300", "400", "500", "600"},
		"Kills":      {"1", "2", "3", "4", "5", "6"},
		"Damage":     {"1000", "2000", "3000", "4000", "5000", "6000"},
		"Gold Spent": {"900", "800", "700", "600", "500", "400"},
	}

	rec := &fakeRecognizer{values: make(map[cellKey]string)}
	for i, band := range cfg.Rows {
		for j, col := range cfg.Columns {
			key := cellKey{uint8(i + 1), uint8(j + 1)}
			fill(board, config.CellRegion(col, band).PixelBounds(boardW, boardH),
				color.NRGBA{R: key[0], G: key[1], A: 255})
			if col.Name == "Player" {
				rec.values[key] = players[i]
			} else {
				rec.values[key] = stats[col.Name][i]
			}
		}
	}

	clocks := []string{"07:45", "12:30"}
	for k, tr := range cfg.MiddleControl {
		key := cellKey{200, uint8(k + 1)}
		fill(board, tr.Region.PixelBounds(boardW, boardH), color.NRGBA{R: key[0], G: key[1], A: 255})
		rec.values[key] = clocks[k]
	}

	fill(board, cfg.VictoryDefeat, color.NRGBA{R: 250, A: 255})
	rec.values[cellKey{250, 0}] = "VICTORY"

	return board, rec
}

func newTestPipeline(t *testing.T, dataDir string) (*Pipeline, Paths) {
	t.Helper()
	cfg, err := config.Parse([]byte(testConfigJSON))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	board, rec := buildFixture(t, cfg)
	paths := Paths{DataDir: dataDir}
	p := NewPipeline(cfg, paths, rec, &fakeLocator{}, Options{
		SaveDebugImages: true,
		Capture:         func() (image.Image, error) { return board, nil },
		Now:             func() time.Time { return time.Date(2026, 8, 28, 21, 4, 5, 0, time.UTC) },
	})
	return p, paths
}

func TestProcessScreenshotEndToEnd(t *testing.T) {
	p, paths := newTestPipeline(t, t.TempDir())

	rows, err := p.ProcessScreenshot("Hero")
	if err != nil {
		t.Fatalf("ProcessScreenshot: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("got %d rows, want 6", len(rows))
	}

	// Hero sits in row 5 (Team 2) and the banner read Victory, so Team 2
	// rows win and Team 1 rows lose.
	for i, r := range rows {
		wantTeam := TeamForRowIndex(i, 6)
		wantOutcome := Defeat
		if wantTeam == "Team 2" {
			wantOutcome = Victory
		}
		if r.Team != wantTeam || r.Outcome != wantOutcome {
			t.Errorf("row %d: team=%q outcome=%q, want %q/%q", i+1, r.Team, r.Outcome, wantTeam, wantOutcome)
		}
		if r.UUID == "" || r.Datetime != "2026-08-28 21:04:05" {
			t.Errorf("row %d: uuid=%q datetime=%q", i+1, r.UUID, r.Datetime)
		}
	}
	if rows[4].Player != "Hero" || rows[4].Kills != "5" || rows[4].GoldSpent != "500" {
		t.Errorf("row 5 cell values wrong: %+v", rows[4])
	}

	// Session CSVs.
	header, outRows, err := ledger.Read(paths.Output())
	if err != nil {
		t.Fatal(err)
	}
	if len(header) != len(ledger.PlayerHeader) || header[9] != "Victory/Defeat" {
		t.Errorf("output.csv header: %v", header)
	}
	if len(outRows) != 6 {
		t.Errorf("output.csv has %d rows", len(outRows))
	}

	_, mcRows, err := ledger.Read(paths.MiddleControl())
	if err != nil {
		t.Fatal(err)
	}
	if len(mcRows) != 2 {
		t.Fatalf("middle_control.csv has %d rows", len(mcRows))
	}
	if mcRows[0][1] != "Team 1" || mcRows[0][2] != "07:45" || mcRows[0][3] != "465" {
		t.Errorf("team 1 middle control: %v", mcRows[0])
	}
	if mcRows[1][2] != "12:30" || mcRows[1][3] != "750" {
		t.Errorf("team 2 middle control: %v", mcRows[1])
	}

	// Debug crops with spaces mapped to underscores.
	if _, err := os.Stat(filepath.Join(paths.SessionDir(), "Row_1_Gold_Spent.png")); err != nil {
		t.Errorf("debug cell image missing: %v", err)
	}

	// Aggregates grow across sessions and prior rows survive.
	firstUUID := rows[0].UUID
	if _, err := p.ProcessScreenshot("Hero"); err != nil {
		t.Fatal(err)
	}
	_, aggRows, err := ledger.Read(paths.AggregatePlayer())
	if err != nil {
		t.Fatal(err)
	}
	if len(aggRows) != 12 {
		t.Fatalf("aggregate has %d rows after two sessions, want 12", len(aggRows))
	}
	if aggRows[0][0] != firstUUID {
		t.Error("first session rows not preserved at the top of the aggregate")
	}
	_, aggMC, err := ledger.Read(paths.AggregateMiddleControl())
	if err != nil {
		t.Fatal(err)
	}
	if len(aggMC) != 4 {
		t.Fatalf("middle control aggregate has %d rows, want 4", len(aggMC))
	}
}

func TestProcessScreenshotUntrackedPlayerKeepsRawOutcomes(t *testing.T) {
	p, _ := newTestPipeline(t, t.TempDir())
	rows, err := p.ProcessScreenshot("NotInThisGame")
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range rows {
		if r.Outcome != Victory {
			t.Errorf("row %d outcome = %q, want raw Victory", i+1, r.Outcome)
		}
	}
}

func TestProcessScreenshotAnchorFailureWritesNoAggregates(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Parse([]byte(testConfigJSON))
	if err != nil {
		t.Fatal(err)
	}
	board, rec := buildFixture(t, cfg)
	paths := Paths{DataDir: dir}
	notFound := errors.New("scoreboard anchor not found")
	p := NewPipeline(cfg, paths, rec, &fakeLocator{err: notFound}, Options{
		Capture: func() (image.Image, error) { return board, nil },
	})

	if _, err := p.ProcessScreenshot("Hero"); !errors.Is(err, notFound) {
		t.Fatalf("err = %v, want locator failure", err)
	}
	if _, err := os.Stat(paths.AggregatePlayer()); !os.IsNotExist(err) {
		t.Error("aggregate written despite anchor failure")
	}
	if _, err := os.Stat(paths.Output()); !os.IsNotExist(err) {
		t.Error("session output written despite anchor failure")
	}
}

func TestProcessScreenshotWipesSessionDir(t *testing.T) {
	dir := t.TempDir()
	p, paths := newTestPipeline(t, dir)

	stale := filepath.Join(paths.SessionDir(), "leftover.png")
	if err := os.MkdirAll(paths.SessionDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := p.ProcessScreenshot("Hero"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale session file survived the wipe")
	}
}
