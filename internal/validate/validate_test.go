package validate

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/wc26sim/wcdata/internal/model"
)

const checkCount = 14

func validDoc() *model.TournamentData {
	d := &model.TournamentData{}
	for i := 0; i < 48; i++ {
		d.Teams = append(d.Teams, model.Team{
			ID:                  i,
			Name:                fmt.Sprintf("Nation %02d", i),
			Code:                fmt.Sprintf("A%c%c", rune('A'+i/26), rune('A'+i%26)),
			Confederation:       model.UEFA,
			EloRating:           1600 + float64(i),
			MarketValueMillions: 100,
			FIFARanking:         i + 1,
		})
	}
	for g := 0; g < 12; g++ {
		d.Groups = append(d.Groups, model.Group{
			ID:    string(rune('A' + g)),
			Teams: []int{g * 4, g*4 + 1, g*4 + 2, g*4 + 3},
		})
	}
	return d
}

func encode(t *testing.T, d *model.TournamentData) []byte {
	t.Helper()
	raw, err := d.Encode()
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func run(t *testing.T, raw []byte) *Result {
	t.Helper()
	r, err := Run(raw)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return r
}

func failedNames(r *Result) []string {
	var names []string
	for _, c := range r.FailedChecks() {
		names = append(names, c.Name)
	}
	return names
}

func TestRunValidDocument(t *testing.T) {
	r := run(t, encode(t, validDoc()))
	if !r.Valid() {
		t.Fatalf("valid document failed checks: %v", failedNames(r))
	}
	if len(r.Checks) != checkCount {
		t.Errorf("battery ran %d checks, want %d", len(r.Checks), checkCount)
	}
	if r.PassedCount() != checkCount {
		t.Errorf("PassedCount = %d, want %d", r.PassedCount(), checkCount)
	}
	if got := r.Checks[len(r.Checks)-1].Name; got != "Schema" {
		t.Errorf("schema conformance must run last, got %q", got)
	}
}

func TestRunInvalidJSON(t *testing.T) {
	if _, err := Run([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

// A document that is wrong in exactly one way must be reported as exactly
// one failed check: the other verdicts still run and still pass.
func TestRunFortySevenTeamsFailsOnlyTeamCount(t *testing.T) {
	d := validDoc()
	d.Teams = d.Teams[:47]
	// Keep all twelve groups referencing only surviving ids.
	d.Groups[11].Teams = []int{44, 45, 46, 46}

	r := run(t, encode(t, d))
	failed := failedNames(r)
	if len(failed) != 1 || failed[0] != "Team count" {
		t.Fatalf("failed checks = %v, want exactly [Team count]", failed)
	}
	// Id coverage must not pile on: completeness is only judged at full count.
	for _, c := range r.Checks {
		if c.Name == "Team id coverage" && !c.OK {
			t.Error("id coverage must not fail on count mismatch alone")
		}
	}
}

func TestRunDroppedTeamCascades(t *testing.T) {
	d := validDoc()
	d.Teams = d.Teams[:47]
	// Group L still references team 47; both problems must surface.
	r := run(t, encode(t, d))

	failed := failedNames(r)
	wantFailed := map[string]bool{"Team count": true, "Group team references": true}
	if len(failed) != len(wantFailed) {
		t.Fatalf("failed checks = %v, want %v", failed, wantFailed)
	}
	for _, name := range failed {
		if !wantFailed[name] {
			t.Errorf("unexpected failed check %q", name)
		}
	}
}

func TestRunDuplicateIDs(t *testing.T) {
	d := validDoc()
	d.Teams[5].ID = 4

	r := run(t, encode(t, d))
	for _, c := range r.FailedChecks() {
		if c.Name == "Duplicate team ids" {
			if !strings.Contains(c.Detail, "map[4:2]") {
				t.Errorf("detail should report the duplicated id and its count: %q", c.Detail)
			}
			return
		}
	}
	t.Fatal("duplicate id not reported")
}

func TestRunRangeChecks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.TournamentData)
		check  string
	}{
		{"elo too low", func(d *model.TournamentData) { d.Teams[0].EloRating = 900 }, "ELO ratings"},
		{"elo too high", func(d *model.TournamentData) { d.Teams[0].EloRating = 2600 }, "ELO ratings"},
		{"fifa zero", func(d *model.TournamentData) { d.Teams[0].FIFARanking = 0 }, "FIFA rankings"},
		{"fifa too high", func(d *model.TournamentData) { d.Teams[0].FIFARanking = 212 }, "FIFA rankings"},
		{"negative market value", func(d *model.TournamentData) { d.Teams[0].MarketValueMillions = -1 }, "Market values"},
		{"bad confederation", func(d *model.TournamentData) { d.Teams[0].Confederation = "TBD" }, "Confederations"},
		{"bad code", func(d *model.TournamentData) { d.Teams[0].Code = "br" }, "Team codes"},
		{"negative wins", func(d *model.TournamentData) { d.Teams[0].WorldCupWins = -1 }, "World cup wins"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDoc()
			tt.mutate(d)
			r := run(t, encode(t, d))
			failed := failedNames(r)
			if len(failed) != 1 || failed[0] != tt.check {
				t.Errorf("failed checks = %v, want exactly [%s]", failed, tt.check)
			}
		})
	}
}

func TestRunUnknownFieldFailsSchemaOnly(t *testing.T) {
	raw := encode(t, validDoc())
	var loose map[string]any
	if err := json.Unmarshal(raw, &loose); err != nil {
		t.Fatal(err)
	}
	loose["generator"] = "wcdata"
	withExtra, err := json.Marshal(loose)
	if err != nil {
		t.Fatal(err)
	}

	r := run(t, withExtra)
	failed := failedNames(r)
	if len(failed) != 1 || failed[0] != "Schema" {
		t.Fatalf("failed checks = %v, want exactly [Schema]", failed)
	}
}

func TestRunStructurallyBrokenStillReportsAllChecks(t *testing.T) {
	// Wrong field types inside teams: every itemized check must still
	// produce a verdict rather than aborting on the first problem.
	raw := []byte(`{"teams": [{"id": "zero", "name": 42, "code": 7}], "groups": []}`)
	r := run(t, raw)
	if len(r.Checks) != checkCount {
		t.Fatalf("battery ran %d checks, want %d", len(r.Checks), checkCount)
	}
	if r.Valid() {
		t.Fatal("broken document reported valid")
	}
}
