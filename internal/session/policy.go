package session

import (
	"strconv"
	"strings"
)

// TeamForRowIndex assigns rows to teams by position: the first half of the
// scoreboard is Team 1, the rest Team 2. With the supported 3v3 mode and six
// configured rows this puts rows 0-2 on Team 1 and rows 3-5 on Team 2.
func TeamForRowIndex(i, totalRows int) string {
	if i < totalRows/2 {
		return "Team 1"
	}
	return "Team 2"
}

// ClassifyOutcome maps OCR'd banner text to an outcome. Substring checks run
// in priority order: "victory" wins over "defeat" if both somehow appear.
func ClassifyOutcome(text string) Outcome {
	lower := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.Contains(lower, "victory"):
		return Victory
	case strings.Contains(lower, "defeat"):
		return Defeat
	default:
		return Unknown
	}
}

// CorrectOutcomes rewrites each row's outcome relative to the tracked
// player's team instead of trusting the raw banner read per row. The row
// whose player name exactly equals trackedPlayer (case-sensitive) fixes the
// reference team: its team gets the detected outcome, the other team the
// opposite. Unknown never flips. When the tracked player is absent from the
// row set the raw outcomes stay as assigned; that is a fallback, not an
// error, and the return value reports it.
func CorrectOutcomes(rows []PlayerRow, trackedPlayer string, detected Outcome) bool {
	referenceTeam := ""
	for _, r := range rows {
		if r.Player == trackedPlayer {
			referenceTeam = r.Team
			break
		}
	}
	if referenceTeam == "" {
		return false
	}
	for i := range rows {
		if rows[i].Team == referenceTeam {
			rows[i].Outcome = detected
		} else {
			rows[i].Outcome = opposite(detected)
		}
	}
	return true
}

func opposite(o Outcome) Outcome {
	switch o {
	case Victory:
		return Defeat
	case Defeat:
		return Victory
	default:
		return Unknown
	}
}

// numericColumn reports whether a column's cells use digit-constrained
// recognition. Player names are free text; every stat column is numeric.
func numericColumn(name string) bool {
	switch name {
	case "Player", "Player Name":
		return false
	default:
		return true
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
