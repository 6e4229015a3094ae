package session

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"scoreboard-tracker/internal/capture"
	"scoreboard-tracker/internal/config"
	"scoreboard-tracker/internal/ledger"
	"scoreboard-tracker/internal/region"
)

const datetimeLayout = "2006-01-02 15:04:05"

// Options tunes pipeline construction. Zero values give sane defaults.
type Options struct {
	// SaveDebugImages persists every cropped cell into the session folder.
	// Purely diagnostic; recognition does not depend on it.
	SaveDebugImages bool

	// Capture overrides the screenshot source. Defaults to grabbing the
	// primary display.
	Capture CaptureFunc

	// Now overrides the timestamp source.
	Now func() time.Time

	Logger *slog.Logger
}

// Pipeline is the capture-to-aggregate orchestrator. All collaborators are
// injected at construction; there is no process-global state, so independent
// pipelines (and tests) can run side by side.
type Pipeline struct {
	cfg       *config.Config
	paths     Paths
	rec       Recognizer
	loc       Locator
	grab      CaptureFunc
	now       func() time.Time
	saveDebug bool
	log       *slog.Logger
}

// NewPipeline wires a pipeline from its collaborators.
func NewPipeline(cfg *config.Config, paths Paths, rec Recognizer, loc Locator, opts Options) *Pipeline {
	p := &Pipeline{
		cfg:       cfg,
		paths:     paths,
		rec:       rec,
		loc:       loc,
		grab:      opts.Capture,
		now:       opts.Now,
		saveDebug: opts.SaveDebugImages,
		log:       opts.Logger,
	}
	if p.grab == nil {
		p.grab = capture.Grab
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.log == nil {
		p.log = slog.Default()
	}
	return p
}

// ProcessScreenshot runs one full session for the tracked player: capture,
// anchor match, per-cell OCR, row assembly with outcome correction, session
// CSVs, and the aggregate merge. On anchor-not-found the session aborts
// before any aggregate write. Each call wipes and recreates the session
// scratch folder first; no session data survives except what the aggregates
// absorbed.
func (p *Pipeline) ProcessScreenshot(playerName string) ([]PlayerRow, error) {
	if err := p.resetSessionDir(); err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	capturedAt := p.now().Format(datetimeLayout)
	log := p.log.With("session", sessionID)

	shot, err := p.grab()
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}
	if err := capture.SavePNG(shot, p.paths.Screenshot()); err != nil {
		return nil, err
	}

	bounds, err := p.loc.ScoreboardBounds(shot)
	if err != nil {
		return nil, err
	}
	log.Info("scoreboard located", "x", bounds.X, "y", bounds.Y, "w", bounds.Width, "h", bounds.Height)

	board, err := region.CropPixels(shot, bounds)
	if err != nil {
		return nil, fmt.Errorf("crop scoreboard: %w", err)
	}
	if err := capture.SavePNG(board, p.paths.Scoreboard()); err != nil {
		return nil, err
	}

	detected, err := p.detectOutcome(board)
	if err != nil {
		return nil, err
	}
	log.Info("outcome banner read", "outcome", detected)

	rows, err := p.assembleRows(board, sessionID, capturedAt, detected)
	if err != nil {
		return nil, err
	}
	if corrected := CorrectOutcomes(rows, playerName, detected); !corrected {
		log.Warn("tracked player not found in rows, keeping raw outcomes", "player", playerName)
	}

	middle, err := p.readMiddleControl(board, sessionID)
	if err != nil {
		return nil, err
	}

	if err := p.persist(rows, middle); err != nil {
		return nil, err
	}
	log.Info("session complete", "rows", len(rows), "middleControl", len(middle))
	return rows, nil
}

func (p *Pipeline) resetSessionDir() error {
	dir := p.paths.SessionDir()
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear session folder: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create session folder: %w", err)
	}
	return nil
}

// assembleRows extracts and recognizes every (row, column) cell in config
// order and builds one PlayerRow per configured row.
func (p *Pipeline) assembleRows(board image.Image, sessionID, capturedAt string, detected Outcome) ([]PlayerRow, error) {
	total := len(p.cfg.Rows)
	rows := make([]PlayerRow, 0, total)

	for i, band := range p.cfg.Rows {
		row := PlayerRow{
			UUID:     sessionID,
			Label:    fmt.Sprintf("Row %d", i+1),
			Team:     TeamForRowIndex(i, total),
			Outcome:  detected,
			Datetime: capturedAt,
		}

		for _, col := range p.cfg.Columns {
			cell, err := region.Crop(board, config.CellRegion(col, band))
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i+1, col.Name, err)
			}
			if p.saveDebug {
				name := fmt.Sprintf("Row_%d_%s.png", i+1, strings.ReplaceAll(col.Name, " ", "_"))
				if err := capture.SavePNG(cell, filepath.Join(p.paths.SessionDir(), name)); err != nil {
					return nil, err
				}
			}

			text, err := p.rec.Recognize(cell, numericColumn(col.Name))
			if err != nil {
				return nil, fmt.Errorf("recognize row %d column %q: %w", i+1, col.Name, err)
			}
			// A garbled read lands in the ledger as-is; no validation here.
			switch col.Name {
			case "Player", "Player Name":
				row.Player = text
			case "Level":
				row.Level = text
			case "Score":
				row.Score = text
			case "Kills":
				row.Kills = text
			case "Damage", "Damage Done":
				row.Damage = text
			case "Gold Spent":
				row.GoldSpent = text
			default:
				p.log.Warn("unknown column in config, value dropped", "column", col.Name)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// detectOutcome reads the victory/defeat banner region of the scoreboard.
func (p *Pipeline) detectOutcome(board image.Image) (Outcome, error) {
	banner, err := region.CropPixels(board, p.cfg.VictoryDefeat)
	if err != nil {
		return Unknown, fmt.Errorf("crop outcome banner: %w", err)
	}
	if p.saveDebug {
		if err := capture.SavePNG(banner, filepath.Join(p.paths.SessionDir(), "victory_defeat_area.png")); err != nil {
			return Unknown, err
		}
	}
	text, err := p.rec.Recognize(banner, false)
	if err != nil {
		return Unknown, fmt.Errorf("recognize outcome banner: %w", err)
	}
	return ClassifyOutcome(text), nil
}

// readMiddleControl reads the per-team objective timers in config order.
func (p *Pipeline) readMiddleControl(board image.Image, sessionID string) ([]MiddleControlRecord, error) {
	records := make([]MiddleControlRecord, 0, len(p.cfg.MiddleControl))
	for _, tr := range p.cfg.MiddleControl {
		cell, err := region.Crop(board, tr.Region)
		if err != nil {
			return nil, fmt.Errorf("crop middle control %q: %w", tr.Team, err)
		}
		if p.saveDebug {
			name := fmt.Sprintf("Middle_Control_%s.png", strings.ReplaceAll(tr.Team, " ", "_"))
			if err := capture.SavePNG(cell, filepath.Join(p.paths.SessionDir(), name)); err != nil {
				return nil, err
			}
		}

		text, err := p.rec.Recognize(cell, false)
		if err != nil {
			return nil, fmt.Errorf("recognize middle control %q: %w", tr.Team, err)
		}
		timeMMSS, seconds := ParseClock(text)
		records = append(records, MiddleControlRecord{
			UUID:     sessionID,
			Team:     tr.Team,
			TimeMMSS: timeMMSS,
			Seconds:  seconds,
		})
	}
	return records, nil
}

// persist writes the session CSVs and merges both into the aggregates.
func (p *Pipeline) persist(rows []PlayerRow, middle []MiddleControlRecord) error {
	playerRecords := make([][]string, len(rows))
	for i, r := range rows {
		playerRecords[i] = r.CSVRecord()
	}
	middleRecords := make([][]string, len(middle))
	for i, m := range middle {
		middleRecords[i] = m.CSVRecord()
	}

	if err := ledger.Write(p.paths.Output(), ledger.PlayerHeader, playerRecords); err != nil {
		return fmt.Errorf("write session output: %w", err)
	}
	if err := ledger.Write(p.paths.MiddleControl(), ledger.MiddleControlHeader, middleRecords); err != nil {
		return fmt.Errorf("write session middle control: %w", err)
	}
	if err := ledger.AppendFile(p.paths.AggregatePlayer(), p.paths.Output()); err != nil {
		return fmt.Errorf("merge player aggregate: %w", err)
	}
	if err := ledger.AppendFile(p.paths.AggregateMiddleControl(), p.paths.MiddleControl()); err != nil {
		return fmt.Errorf("merge middle control aggregate: %w", err)
	}
	return nil
}
