package scrape

import (
	"io"
	"log/slog"
	"testing"

	"github.com/wc26sim/wcdata/internal/config"
)

func TestScheduleBuild(t *testing.T) {
	doc, err := NewScheduleBuilder(slog.New(slog.NewTextHandler(io.Discard, nil))).Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Matches) != TotalMatches {
		t.Fatalf("built %d matches, want %d", len(doc.Matches), TotalMatches)
	}

	// Match numbers are sequential from 1.
	for i, m := range doc.Matches {
		if m.MatchNumber != i+1 {
			t.Fatalf("match %d has number %d", i, m.MatchNumber)
		}
	}

	counts := map[string]int{}
	perGroup := map[string]int{}
	for _, m := range doc.Matches {
		counts[m.Round]++
		if m.Round == RoundGroupStage {
			perGroup[m.GroupID]++
			if m.KnockoutSlot != nil {
				t.Errorf("group match %d carries a knockout slot", m.MatchNumber)
			}
		} else if m.KnockoutSlot == nil {
			t.Errorf("knockout match %d has no slot", m.MatchNumber)
		}
	}

	want := map[string]int{
		RoundGroupStage:    72,
		RoundOf32:          16,
		RoundOf16:          8,
		RoundQuarterFinals: 4,
		RoundSemiFinals:    2,
		RoundThirdPlace:    1,
		RoundFinal:         1,
	}
	for round, n := range want {
		if counts[round] != n {
			t.Errorf("%s: %d matches, want %d", round, counts[round], n)
		}
	}

	// Round-robin of four: six matches per group.
	for _, letter := range config.GroupLetters() {
		if perGroup[letter] != 6 {
			t.Errorf("group %s has %d matches, want 6", letter, perGroup[letter])
		}
	}
}

func TestScheduleGroupStageOrdering(t *testing.T) {
	doc, err := NewScheduleBuilder(slog.New(slog.NewTextHandler(io.Discard, nil))).Build()
	if err != nil {
		t.Fatal(err)
	}
	prevDate, prevTime := "", ""
	for _, m := range doc.Matches[:72] {
		if m.Date < prevDate || (m.Date == prevDate && m.Time < prevTime) {
			t.Fatalf("group stage not in chronological order at match %d", m.MatchNumber)
		}
		prevDate, prevTime = m.Date, m.Time
	}
	if doc.Matches[0].Date != "2026-06-11" {
		t.Errorf("opening match on %s, want 2026-06-11", doc.Matches[0].Date)
	}
	final := doc.Matches[len(doc.Matches)-1]
	if final.Round != RoundFinal || final.Date != "2026-07-19" {
		t.Errorf("last match is %s on %s, want the final on 2026-07-19", final.Round, final.Date)
	}
}

func TestScheduleGroupStagePairings(t *testing.T) {
	doc, err := NewScheduleBuilder(slog.New(slog.NewTextHandler(io.Discard, nil))).Build()
	if err != nil {
		t.Fatal(err)
	}

	// Each group plays a full round-robin: all six slot pairings exactly once.
	type pairing struct{ a, b string }
	seen := map[pairing]int{}
	for _, m := range doc.Matches[:72] {
		a, b := m.HomePlaceholder, m.AwayPlaceholder
		if a > b {
			a, b = b, a
		}
		seen[pairing{a, b}]++
	}
	for _, letter := range config.GroupLetters() {
		slots := []string{letter + "1", letter + "2", letter + "3", letter + "4"}
		for i := 0; i < len(slots); i++ {
			for j := i + 1; j < len(slots); j++ {
				p := pairing{slots[i], slots[j]}
				if seen[p] != 1 {
					t.Errorf("pairing %v appears %d times, want 1", p, seen[p])
				}
			}
		}
	}
}
