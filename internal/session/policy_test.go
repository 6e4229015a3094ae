package session

import "testing"

func TestTeamForRowIndex(t *testing.T) {
	for i, want := range []string{"Team 1", "Team 1", "Team 1", "Team 2", "Team 2", "Team 2"} {
		if got := TeamForRowIndex(i, 6); got != want {
			t.Errorf("TeamForRowIndex(%d, 6) = %q, want %q", i, got, want)
		}
	}
	// Alternate team size substitutes cleanly.
	if TeamForRowIndex(1, 4) != "Team 1" || TeamForRowIndex(2, 4) != "Team 2" {
		t.Error("2v2 split wrong")
	}
}

func TestClassifyOutcome(t *testing.T) {
	cases := []struct {
		in   string
		want Outcome
	}{
		{"VICTORY", Victory},
		{"  Victory!  ", Victory},
		{"defeat", Defeat},
		{"DeFeAt", Defeat},
		{"victory over defeat", Victory}, // victory checked first
		{"???", Unknown},
		{"", Unknown},
	}
	for _, c := range cases {
		if got := ClassifyOutcome(c.in); got != c.want {
			t.Errorf("ClassifyOutcome(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func sixRows(players ...string) []PlayerRow {
	rows := make([]PlayerRow, 6)
	for i := range rows {
		rows[i] = PlayerRow{
			Label:   "Row " + itoa(i+1),
			Player:  players[i],
			Team:    TeamForRowIndex(i, 6),
			Outcome: Unknown,
		}
	}
	return rows
}

func TestCorrectOutcomesTrackedOnTeam2(t *testing.T) {
	rows := sixRows("a", "b", "c", "d", "Hero", "f")
	if !CorrectOutcomes(rows, "Hero", Victory) {
		t.Fatal("tracked player should be found")
	}
	for i, r := range rows {
		want := Defeat
		if i >= 3 {
			want = Victory
		}
		if r.Outcome != want {
			t.Errorf("row %d outcome = %q, want %q", i+1, r.Outcome, want)
		}
	}
}

func TestCorrectOutcomesCaseSensitive(t *testing.T) {
	rows := sixRows("a", "b", "hero", "d", "e", "f")
	for i := range rows {
		rows[i].Outcome = Defeat
	}
	if CorrectOutcomes(rows, "Hero", Victory) {
		t.Fatal("lowercase 'hero' must not match 'Hero'")
	}
	// Raw outcomes untouched on fallback.
	for i, r := range rows {
		if r.Outcome != Defeat {
			t.Errorf("row %d outcome changed to %q on fallback", i+1, r.Outcome)
		}
	}
}

func TestCorrectOutcomesUnknownNotFlipped(t *testing.T) {
	rows := sixRows("Hero", "b", "c", "d", "e", "f")
	CorrectOutcomes(rows, "Hero", Unknown)
	for i, r := range rows {
		if r.Outcome != Unknown {
			t.Errorf("row %d outcome = %q, Unknown must not flip", i+1, r.Outcome)
		}
	}
}

func TestNumericColumn(t *testing.T) {
	if numericColumn("Player") || numericColumn("Player Name") {
		t.Error("player columns are free text")
	}
	for _, name := range []string{"Level", "Score", "Kills", "Damage", "Gold Spent"} {
		if !numericColumn(name) {
			t.Errorf("%q should be numeric", name)
		}
	}
}
