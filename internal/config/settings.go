package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// settingsFile is the small settings mirror consumed by the UI layer.
const settingsFile = "settings.json"

type settings struct {
	PlayerName string `json:"player_name"`
}

// SavePlayerName writes the tracked player name back into the config file and
// mirrors it into settings.json next to it. The rest of the config JSON is
// preserved untouched.
func SavePlayerName(configPath, name string) error {
	if name == "" {
		return fmt.Errorf("player name cannot be empty")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	encoded, err := json.Marshal(name)
	if err != nil {
		return err
	}
	doc["player_name"] = encoded

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, out, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	mirror, err := json.MarshalIndent(settings{PlayerName: name}, "", "  ")
	if err != nil {
		return err
	}
	mirrorPath := filepath.Join(filepath.Dir(configPath), settingsFile)
	if err := os.WriteFile(mirrorPath, mirror, 0o644); err != nil {
		return fmt.Errorf("write settings mirror: %w", err)
	}
	return nil
}
