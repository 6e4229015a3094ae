package session

import (
	"strconv"
	"strings"
)

// ParseClock interprets an OCR'd middle-control readout as "MM:SS" and
// returns the normalized string plus total seconds. Malformed input degrades
// to "00:00" and 0 rather than failing the session. Minute and second values
// are not range-checked: "61:99" is 3699 seconds. Only separator presence
// and integer-ness are validated.
func ParseClock(raw string) (string, int) {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, ":") {
		return "00:00", 0
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return "00:00", 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return "00:00", 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return "00:00", 0
	}
	return s, minutes*60 + seconds
}
