package scrape

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/wc26sim/wcdata/internal/source"
)

// Round names as they appear in schedule.json.
const (
	RoundGroupStage    = "group_stage"
	RoundOf32          = "round_of_32"
	RoundOf16          = "round_of_16"
	RoundQuarterFinals = "quarter_finals"
	RoundSemiFinals    = "semi_finals"
	RoundThirdPlace    = "third_place"
	RoundFinal         = "final"
)

// TotalMatches is the full 2026 fixture count: 72 group matches plus a
// 32-team knockout bracket with a third place play-off.
const TotalMatches = 104

type groupFixture struct {
	date, kickoff, venue, group, home, away string
}

type knockoutFixture struct {
	date, kickoff, venue string
	slot                 int
	home, away           string
}

// The official group stage calendar, June 11-27 2026, times in ET.
// Slot codes refer to draw positions (A1 = first team drawn into group A).
var groupStageFixtures = []groupFixture{
	{"2026-06-11", "12:00", "azteca", "A", "A1", "A2"},
	{"2026-06-11", "18:00", "akron", "A", "A3", "A4"},
	{"2026-06-12", "15:00", "bmo", "B", "B1", "B4"},
	{"2026-06-12", "21:00", "sofi", "D", "D1", "D3"},
	{"2026-06-13", "12:00", "gillette", "C", "C4", "C3"},
	{"2026-06-13", "15:00", "metlife", "C", "C1", "C2"},
	{"2026-06-13", "18:00", "levis", "B", "B3", "B2"},
	{"2026-06-13", "21:00", "bc_place", "D", "D2", "D4"},
	{"2026-06-14", "12:00", "nrg", "E", "E1", "E4"},
	{"2026-06-14", "15:00", "lincoln_financial", "E", "E2", "E3"},
	{"2026-06-14", "18:00", "att", "F", "F1", "F2"},
	{"2026-06-14", "21:00", "bbva", "F", "F4", "F3"},
	{"2026-06-15", "12:00", "mercedes_benz", "H", "H1", "H4"},
	{"2026-06-15", "15:00", "hard_rock", "H", "H2", "H3"},
	{"2026-06-15", "18:00", "lumen", "G", "G1", "G2"},
	{"2026-06-15", "21:00", "sofi", "G", "G3", "G4"},
	{"2026-06-16", "12:00", "gillette", "I", "I4", "I3"},
	{"2026-06-16", "15:00", "metlife", "I", "I1", "I2"},
	{"2026-06-16", "18:00", "levis", "J", "J3", "J4"},
	{"2026-06-16", "21:00", "arrowhead", "J", "J1", "J2"},
	{"2026-06-17", "12:00", "azteca", "K", "K3", "K2"},
	{"2026-06-17", "15:00", "nrg", "K", "K1", "K4"},
	{"2026-06-17", "18:00", "bmo", "L", "L3", "L4"},
	{"2026-06-17", "21:00", "att", "L", "L1", "L2"},
	{"2026-06-18", "12:00", "mercedes_benz", "A", "A4", "A2"},
	{"2026-06-18", "15:00", "bc_place", "B", "B1", "B3"},
	{"2026-06-18", "18:00", "akron", "A", "A1", "A3"},
	{"2026-06-18", "21:00", "sofi", "B", "B2", "B4"},
	{"2026-06-19", "12:00", "gillette", "C", "C3", "C2"},
	{"2026-06-19", "15:00", "lincoln_financial", "C", "C1", "C4"},
	{"2026-06-19", "18:00", "lumen", "D", "D1", "D2"},
	{"2026-06-19", "21:00", "levis", "D", "D4", "D3"},
	{"2026-06-20", "12:00", "arrowhead", "E", "E3", "E4"},
	{"2026-06-20", "15:00", "bmo", "E", "E1", "E2"},
	{"2026-06-20", "18:00", "att", "F", "F2", "F3"},
	{"2026-06-20", "21:00", "nrg", "F", "F1", "F4"},
	{"2026-06-21", "12:00", "mercedes_benz", "H", "H1", "H2"},
	{"2026-06-21", "15:00", "hard_rock", "H", "H3", "H4"},
	{"2026-06-21", "18:00", "sofi", "G", "G1", "G3"},
	{"2026-06-21", "21:00", "bc_place", "G", "G4", "G2"},
	{"2026-06-22", "12:00", "lincoln_financial", "I", "I1", "I4"},
	{"2026-06-22", "15:00", "metlife", "I", "I3", "I2"},
	{"2026-06-22", "18:00", "att", "J", "J1", "J3"},
	{"2026-06-22", "21:00", "levis", "J", "J4", "J2"},
	{"2026-06-23", "12:00", "nrg", "K", "K1", "K3"},
	{"2026-06-23", "15:00", "akron", "K", "K2", "K4"},
	{"2026-06-23", "18:00", "gillette", "L", "L1", "L3"},
	{"2026-06-23", "21:00", "bmo", "L", "L4", "L2"},
	{"2026-06-24", "15:00", "mercedes_benz", "C", "C2", "C4"},
	{"2026-06-24", "15:00", "hard_rock", "C", "C3", "C1"},
	{"2026-06-24", "18:00", "azteca", "A", "A4", "A1"},
	{"2026-06-24", "18:00", "bbva", "A", "A2", "A3"},
	{"2026-06-24", "21:00", "sofi", "B", "B4", "B3"},
	{"2026-06-24", "21:00", "bc_place", "B", "B2", "B1"},
	{"2026-06-25", "15:00", "metlife", "E", "E3", "E1"},
	{"2026-06-25", "15:00", "lincoln_financial", "E", "E4", "E2"},
	{"2026-06-25", "18:00", "sofi", "D", "D4", "D1"},
	{"2026-06-25", "18:00", "levis", "D", "D3", "D2"},
	{"2026-06-25", "21:00", "att", "F", "F2", "F4"},
	{"2026-06-25", "21:00", "arrowhead", "F", "F3", "F1"},
	{"2026-06-26", "15:00", "bmo", "I", "I2", "I4"},
	{"2026-06-26", "15:00", "hard_rock", "I", "I3", "I1"},
	{"2026-06-26", "18:00", "lumen", "G", "G2", "G3"},
	{"2026-06-26", "18:00", "bc_place", "G", "G4", "G1"},
	{"2026-06-26", "21:00", "akron", "H", "H3", "H1"},
	{"2026-06-26", "21:00", "nrg", "H", "H4", "H2"},
	{"2026-06-27", "15:00", "mercedes_benz", "K", "K4", "K3"},
	{"2026-06-27", "15:00", "hard_rock", "K", "K2", "K1"},
	{"2026-06-27", "18:00", "att", "J", "J4", "J1"},
	{"2026-06-27", "18:00", "arrowhead", "J", "J2", "J3"},
	{"2026-06-27", "21:00", "metlife", "L", "L4", "L1"},
	{"2026-06-27", "21:00", "lincoln_financial", "L", "L2", "L3"},
}

// Round of 32 pairings, June 29 to July 2. Placeholders like "1A" are
// group finishes, "3C/D/E" a best-third allocation.
var roundOf32Fixtures = []knockoutFixture{
	{"2026-06-29", "13:00", "gillette", 0, "1A", "3C/D/E"},
	{"2026-06-29", "16:00", "metlife", 1, "2B", "2A"},
	{"2026-06-29", "19:00", "bbva", 2, "1C", "3A/B/F"},
	{"2026-06-29", "22:00", "nrg", 3, "2D", "2C"},
	{"2026-06-30", "13:00", "azteca", 4, "1E", "3G/H/I"},
	{"2026-06-30", "16:00", "mercedes_benz", 5, "2F", "2E"},
	{"2026-06-30", "19:00", "sofi", 6, "1G", "3J/K/L"},
	{"2026-06-30", "22:00", "att", 7, "2H", "2G"},
	{"2026-07-01", "13:00", "levis", 8, "1B", "3A/C/D"},
	{"2026-07-01", "16:00", "lumen", 9, "2A", "2B"},
	{"2026-07-01", "19:00", "sofi", 10, "1D", "3B/E/F"},
	{"2026-07-01", "22:00", "hard_rock", 11, "2C", "2D"},
	{"2026-07-02", "13:00", "bc_place", 12, "1F", "3H/I/J"},
	{"2026-07-02", "16:00", "arrowhead", 13, "2E", "2F"},
	{"2026-07-02", "19:00", "bmo", 14, "1H", "3G/K/L"},
	{"2026-07-02", "22:00", "att", 15, "2G", "2H"},
}

var roundOf16Fixtures = []knockoutFixture{
	{"2026-07-04", "16:00", "metlife", 0, "", ""},
	{"2026-07-04", "20:00", "att", 1, "", ""},
	{"2026-07-05", "16:00", "mercedes_benz", 2, "", ""},
	{"2026-07-05", "20:00", "hard_rock", 3, "", ""},
	{"2026-07-06", "16:00", "sofi", 4, "", ""},
	{"2026-07-06", "20:00", "nrg", 5, "", ""},
	{"2026-07-07", "16:00", "lincoln_financial", 6, "", ""},
	{"2026-07-07", "20:00", "azteca", 7, "", ""},
}

var quarterFinalFixtures = []knockoutFixture{
	{"2026-07-10", "16:00", "metlife", 0, "", ""},
	{"2026-07-10", "20:00", "sofi", 1, "", ""},
	{"2026-07-11", "16:00", "hard_rock", 2, "", ""},
	{"2026-07-11", "20:00", "arrowhead", 3, "", ""},
}

var semiFinalFixtures = []knockoutFixture{
	{"2026-07-14", "20:00", "att", 0, "", ""},
	{"2026-07-15", "20:00", "mercedes_benz", 1, "", ""},
}

// ScheduleBuilder produces the static tournament schedule. The fixture
// list is known in advance, so no network access is needed.
type ScheduleBuilder struct {
	logger *slog.Logger
}

func NewScheduleBuilder(logger *slog.Logger) *ScheduleBuilder {
	return &ScheduleBuilder{logger: logger}
}

// Build assembles all 104 matches with sequential match numbers.
func (b *ScheduleBuilder) Build() (*source.ScheduleDocument, error) {
	matches := groupStageMatches()
	matches = append(matches, knockoutMatches(len(matches)+1)...)

	if len(matches) != TotalMatches {
		return nil, fmt.Errorf("generated %d matches, expected %d", len(matches), TotalMatches)
	}
	b.logger.Info("Generated tournament schedule", "matches", len(matches))

	return &source.ScheduleDocument{
		Matches:     matches,
		Tournament:  "FIFA World Cup 2026",
		Source:      "static_generation",
		LastUpdated: time.Now().UTC(),
	}, nil
}

func groupStageMatches() []source.Match {
	matches := make([]source.Match, 0, len(groupStageFixtures))
	for _, f := range groupStageFixtures {
		matches = append(matches, source.Match{
			Date:            f.date,
			Time:            f.kickoff,
			VenueID:         f.venue,
			GroupID:         f.group,
			Round:           RoundGroupStage,
			HomePlaceholder: f.home,
			AwayPlaceholder: f.away,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Date != matches[j].Date {
			return matches[i].Date < matches[j].Date
		}
		return matches[i].Time < matches[j].Time
	})
	for i := range matches {
		matches[i].MatchNumber = i + 1
	}
	return matches
}

func knockoutMatches(startNumber int) []source.Match {
	var matches []source.Match
	num := startNumber

	add := func(f knockoutFixture, round, home, away string) {
		slot := f.slot
		matches = append(matches, source.Match{
			MatchNumber:     num,
			Date:            f.date,
			Time:            f.kickoff,
			VenueID:         f.venue,
			Round:           round,
			KnockoutSlot:    &slot,
			HomePlaceholder: home,
			AwayPlaceholder: away,
		})
		num++
	}

	for _, f := range roundOf32Fixtures {
		add(f, RoundOf32, f.home, f.away)
	}
	// Later rounds pair winners of adjacent slots from the previous round.
	for _, f := range roundOf16Fixtures {
		add(f, RoundOf16, fmt.Sprintf("W%d", f.slot*2+1), fmt.Sprintf("W%d", f.slot*2+2))
	}
	for _, f := range quarterFinalFixtures {
		add(f, RoundQuarterFinals, fmt.Sprintf("WQF%d", f.slot*2+1), fmt.Sprintf("WQF%d", f.slot*2+2))
	}
	for _, f := range semiFinalFixtures {
		add(f, RoundSemiFinals, fmt.Sprintf("WSF%d", f.slot*2+1), fmt.Sprintf("WSF%d", f.slot*2+2))
	}
	add(knockoutFixture{"2026-07-18", "16:00", "hard_rock", 0, "", ""}, RoundThirdPlace, "LSF1", "LSF2")
	add(knockoutFixture{"2026-07-19", "16:00", "metlife", 0, "", ""}, RoundFinal, "WSF1", "WSF2")

	return matches
}
