// Package analytics computes lifetime aggregates from the player ledger.
package analytics

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"scoreboard-tracker/internal/ledger"
)

// PlayerLifetime is one player's aggregate across every recorded session.
type PlayerLifetime struct {
	Player        string
	Games         int
	Wins          int
	Losses        int
	WinRate       float64
	MeanLevel     float64
	MeanScore     float64
	MeanKills     float64
	MeanDamage    float64
	MeanGoldSpent float64
}

// MatchPoint is one session's result for a single player, ordered as the
// ledger recorded it.
type MatchPoint struct {
	UUID     string
	Datetime string
	Outcome  string
	Kills    float64
	Damage   float64
}

type columnIndex struct {
	player, level, score, kills, damage, gold, outcome, datetime, uuid int
}

func indexColumns(header []string) (columnIndex, error) {
	idx := columnIndex{player: -1, level: -1, score: -1, kills: -1, damage: -1,
		gold: -1, outcome: -1, datetime: -1, uuid: -1}
	for i, name := range header {
		switch name {
		case "uuid":
			idx.uuid = i
		case "player":
			idx.player = i
		case "level":
			idx.level = i
		case "score":
			idx.score = i
		case "kills":
			idx.kills = i
		case "damage":
			idx.damage = i
		case "goldSpent":
			idx.gold = i
		case "Victory/Defeat":
			idx.outcome = i
		case "datetime":
			idx.datetime = i
		}
	}
	if idx.player < 0 || idx.outcome < 0 {
		return idx, fmt.Errorf("ledger header missing required columns: %v", header)
	}
	return idx, nil
}

// Lifetime aggregates the player ledger at path. A missing ledger yields an
// empty result. OCR noise is expected in stat columns; non-numeric values
// coerce to zero rather than failing.
func Lifetime(path string) ([]PlayerLifetime, error) {
	header, rows, err := ledger.Read(path)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, nil
	}
	idx, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	type accum struct {
		wins, losses                      int
		levels, scores, kills, dmg, golds []float64
	}
	byPlayer := make(map[string]*accum)
	var order []string

	for _, row := range rows {
		name := cell(row, idx.player)
		if name == "" {
			continue
		}
		a, ok := byPlayer[name]
		if !ok {
			a = &accum{}
			byPlayer[name] = a
			order = append(order, name)
		}
		switch cell(row, idx.outcome) {
		case "Victory":
			a.wins++
		case "Defeat":
			a.losses++
		}
		a.levels = append(a.levels, coerce(cell(row, idx.level)))
		a.scores = append(a.scores, coerce(cell(row, idx.score)))
		a.kills = append(a.kills, coerce(cell(row, idx.kills)))
		a.dmg = append(a.dmg, coerce(cell(row, idx.damage)))
		a.golds = append(a.golds, coerce(cell(row, idx.gold)))
	}

	out := make([]PlayerLifetime, 0, len(order))
	for _, name := range order {
		a := byPlayer[name]
		games := len(a.kills)
		lt := PlayerLifetime{
			Player:        name,
			Games:         games,
			Wins:          a.wins,
			Losses:        a.losses,
			MeanLevel:     stat.Mean(a.levels, nil),
			MeanScore:     stat.Mean(a.scores, nil),
			MeanKills:     stat.Mean(a.kills, nil),
			MeanDamage:    stat.Mean(a.dmg, nil),
			MeanGoldSpent: stat.Mean(a.golds, nil),
		}
		if games > 0 {
			lt.WinRate = float64(a.wins) / float64(games)
		}
		out = append(out, lt)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Games != out[j].Games {
			return out[i].Games > out[j].Games
		}
		return out[i].Player < out[j].Player
	})
	return out, nil
}

// PlayerHistory returns one point per ledger row for the named player, in
// recorded order, for per-match comparison.
func PlayerHistory(path, player string) ([]MatchPoint, error) {
	header, rows, err := ledger.Read(path)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, nil
	}
	idx, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var points []MatchPoint
	for _, row := range rows {
		if cell(row, idx.player) != player {
			continue
		}
		points = append(points, MatchPoint{
			UUID:     cell(row, idx.uuid),
			Datetime: cell(row, idx.datetime),
			Outcome:  cell(row, idx.outcome),
			Kills:    coerce(cell(row, idx.kills)),
			Damage:   coerce(cell(row, idx.damage)),
		})
	}
	return points, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// coerce turns an OCR'd stat into a number, zero for anything garbled.
func coerce(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
