// Package config loads and validates the scoreboard geometry configuration.
//
// The config file is JSON. Column and middle-control entries are JSON
// objects whose declaration order is significant (cells are extracted in
// config order), so decoding preserves key order instead of using a Go map.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"scoreboard-tracker/pkg/geometry"
)

// DefaultThreshold is the minimum normalized match score for anchor detection.
const DefaultThreshold = 0.8

// RowBand is the vertical extent of one scoreboard row, in percent of the
// scoreboard image height.
type RowBand struct {
	TopY    float64 `json:"top_y"`
	BottomY float64 `json:"bottom_y"`
}

// Column is one named stat column with its horizontal extent in percent of
// the scoreboard image width.
type Column struct {
	Name   string
	StartX float64
	EndX   float64
}

// TeamRegion is the middle-control readout area for one team.
type TeamRegion struct {
	Team   string
	Region geometry.PercentRect
}

// Config is the per-session pipeline configuration. It is loaded once per
// session and never mutated while a session is in flight.
type Config struct {
	Rows          []RowBand
	Columns       []Column
	MiddleControl []TeamRegion

	// VictoryDefeat is the outcome banner position in absolute pixels of the
	// cropped scoreboard image.
	VictoryDefeat geometry.RectInt

	// PlayerName is the tracked player, matched case-sensitively against the
	// OCR'd player column.
	PlayerName string

	// AnchorTemplates are candidate template image paths, in priority order.
	AnchorTemplates []string

	// AnchorThreshold is the minimum acceptable match score (0..1).
	AnchorThreshold float64
}

type rawBox struct {
	TopLeftX     float64 `json:"top_left_x"`
	TopLeftY     float64 `json:"top_left_y"`
	BottomRightX float64 `json:"bottom_right_x"`
	BottomRightY float64 `json:"bottom_right_y"`
}

type rawColumn struct {
	StartX float64 `json:"start_x"`
	EndX   float64 `json:"end_x"`
}

type rawPixelRect struct {
	StartX int `json:"start_x"`
	StartY int `json:"start_y"`
	EndX   int `json:"end_x"`
	EndY   int `json:"end_y"`
}

type rawConfig struct {
	Rows            []RowBand       `json:"rows"`
	Columns         json.RawMessage `json:"columns"`
	MiddleControl   json.RawMessage `json:"middle_control"`
	VictoryDefeat   rawPixelRect    `json:"victory_defeat_position"`
	PlayerName      string          `json:"player_name"`
	AnchorTemplates []string        `json:"anchor_templates"`
	AnchorThreshold float64         `json:"anchor_threshold"`
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Parse decodes config JSON and validates geometry.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	cfg := &Config{
		Rows:            raw.Rows,
		PlayerName:      raw.PlayerName,
		AnchorTemplates: raw.AnchorTemplates,
		AnchorThreshold: raw.AnchorThreshold,
	}
	if cfg.AnchorThreshold == 0 {
		cfg.AnchorThreshold = DefaultThreshold
	}
	cfg.VictoryDefeat = geometry.RectInt{
		X:      raw.VictoryDefeat.StartX,
		Y:      raw.VictoryDefeat.StartY,
		Width:  raw.VictoryDefeat.EndX - raw.VictoryDefeat.StartX,
		Height: raw.VictoryDefeat.EndY - raw.VictoryDefeat.StartY,
	}

	if len(raw.Columns) > 0 {
		err := decodeOrdered(raw.Columns, func(name string, val json.RawMessage) error {
			var c rawColumn
			if err := json.Unmarshal(val, &c); err != nil {
				return fmt.Errorf("column %q: %w", name, err)
			}
			cfg.Columns = append(cfg.Columns, Column{Name: name, StartX: c.StartX, EndX: c.EndX})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(raw.MiddleControl) > 0 {
		err := decodeOrdered(raw.MiddleControl, func(team string, val json.RawMessage) error {
			var b rawBox
			if err := json.Unmarshal(val, &b); err != nil {
				return fmt.Errorf("middle_control %q: %w", team, err)
			}
			cfg.MiddleControl = append(cfg.MiddleControl, TeamRegion{
				Team: team,
				Region: geometry.PercentRect{
					StartX:  b.TopLeftX,
					EndX:    b.BottomRightX,
					TopY:    b.TopLeftY,
					BottomY: b.BottomRightY,
				},
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Rows) == 0 {
		return fmt.Errorf("config has no rows")
	}
	if len(c.Columns) == 0 {
		return fmt.Errorf("config has no columns")
	}
	for i, r := range c.Rows {
		if r.TopY < 0 || r.TopY >= r.BottomY || r.BottomY > 100 {
			return fmt.Errorf("row %d: invalid band top_y=%.2f bottom_y=%.2f", i+1, r.TopY, r.BottomY)
		}
	}
	for _, col := range c.Columns {
		if col.StartX < 0 || col.StartX >= col.EndX || col.EndX > 100 {
			return fmt.Errorf("column %q: invalid bounds start_x=%.2f end_x=%.2f", col.Name, col.StartX, col.EndX)
		}
	}
	for _, tr := range c.MiddleControl {
		if !tr.Region.Valid() {
			return fmt.Errorf("middle_control %q: invalid region %+v", tr.Team, tr.Region)
		}
	}
	if c.VictoryDefeat.Empty() {
		return fmt.Errorf("victory_defeat_position missing or degenerate: %+v", c.VictoryDefeat)
	}
	if c.AnchorThreshold <= 0 || c.AnchorThreshold > 1 {
		return fmt.Errorf("anchor_threshold %.3f out of range (0,1]", c.AnchorThreshold)
	}
	return nil
}

// CellRegion combines a column's horizontal band with a row's vertical band.
func CellRegion(col Column, row RowBand) geometry.PercentRect {
	return geometry.PercentRect{
		StartX:  col.StartX,
		EndX:    col.EndX,
		TopY:    row.TopY,
		BottomY: row.BottomY,
	}
}

// decodeOrdered walks the keys of a JSON object in declaration order.
func decodeOrdered(raw json.RawMessage, visit func(key string, val json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return err
		}
		if err := visit(key, val); err != nil {
			return err
		}
	}
	_, err = dec.Token() // closing brace
	return err
}
