package scrape

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func htmlDoc(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestParseEloPageTable(t *testing.T) {
	doc := htmlDoc(t, `<html><body><table>
		<tr><td>FIFA Ranking</td><td>5</td></tr>
		<tr><td>Elo Score</td><td>2113</td></tr>
	</table></body></html>`)
	rating, ok := ParseEloPage(doc)
	if !ok || rating != 2113 {
		t.Fatalf("ParseEloPage = %v, %v; want 2113, true", rating, ok)
	}
}

func TestParseEloPageRegexFallback(t *testing.T) {
	doc := htmlDoc(t, `<html><body><p>Current Elo Score: 1987 points</p></body></html>`)
	rating, ok := ParseEloPage(doc)
	if !ok || rating != 1987 {
		t.Fatalf("ParseEloPage = %v, %v; want regex fallback 1987", rating, ok)
	}
}

func TestParseEloPageRejectsOutOfRange(t *testing.T) {
	doc := htmlDoc(t, `<html><body><table>
		<tr><td>Elo Score</td><td>9999</td></tr>
	</table></body></html>`)
	if _, ok := ParseEloPage(doc); ok {
		t.Fatal("implausible rating must be rejected")
	}
}

func TestParseMarketValue(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"€795.00m", 795},
		{"€1.54bn", 1540},
		{"$2bn", 2000},
		{"€30.50k", 0.0305},
		{"1.2 billion", 1200},
		{"450", 450},
		{"£60m", 60},
	}
	for _, tt := range tests {
		got, err := ParseMarketValue(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.InDelta(t, tt.want, got, 0.0001, "input %q", tt.in)
	}
}

func TestParseMarketValueRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "-", "n/a"} {
		if _, err := ParseMarketValue(in); err == nil {
			t.Errorf("ParseMarketValue(%q) should fail", in)
		}
	}
}

func TestFindMarketValueText(t *testing.T) {
	doc := htmlDoc(t, `<html><body>
		<a class="data-header__market-value-wrapper"> €795.00m </a>
	</body></html>`)
	text, ok := FindMarketValueText(doc)
	if !ok || text != "€795.00m" {
		t.Fatalf("FindMarketValueText = %q, %v", text, ok)
	}

	doc = htmlDoc(t, `<html><body><div class="data-header__box--small">
		<div class="data-header__content">€1.21bn</div>
	</div></body></html>`)
	text, ok = FindMarketValueText(doc)
	if !ok || text != "€1.21bn" {
		t.Fatalf("fallback selector failed: %q, %v", text, ok)
	}
}

func TestParseFIFAAPIResponseShapes(t *testing.T) {
	shapes := []string{
		`{"rankings": [{"rank": 1, "teamName": "Argentina"}, {"rank": 2, "teamName": "France"}]}`,
		`{"rankings": [{"rankingItem": {"rank": 1, "name": "Argentina"}}, {"rankingItem": {"rank": 2, "name": "France"}}]}`,
		`{"data": [{"position": 1, "team": {"name": "Argentina"}}, {"position": 2, "team": "France"}]}`,
		`[{"rank": 1, "country": {"name": "Argentina"}}, {"rank": 2, "name": "France"}]`,
	}
	for i, shape := range shapes {
		got := ParseFIFAAPIResponse(json.RawMessage(shape))
		if got["Argentina"] != 1 || got["France"] != 2 {
			t.Errorf("shape %d: parsed %v", i, got)
		}
	}
}

func TestParseFIFAAPIResponseEmpty(t *testing.T) {
	if got := ParseFIFAAPIResponse(json.RawMessage(`{"unrelated": true}`)); len(got) != 0 {
		t.Errorf("parsed %v from unrelated payload", got)
	}
}

func TestParseFIFARankingTable(t *testing.T) {
	doc := htmlDoc(t, `<html><body><table>
		<tr><th>Rank</th><th>Team</th></tr>
		<tr><td>1</td><td>Argentina</td></tr>
		<tr><td>2</td><td>France</td></tr>
		<tr><td>999</td><td>Overflow</td></tr>
		<tr><td>3</td><td>Argentina</td></tr>
	</table></body></html>`)

	got := ParseFIFARankingTable(doc)
	if got["Argentina"] != 1 {
		t.Errorf("first-seen rank must win: %v", got)
	}
	if got["France"] != 2 {
		t.Errorf("France = %d, want 2", got["France"])
	}
	if _, ok := got["Overflow"]; ok {
		t.Error("rank above 211 must be skipped")
	}
}

func TestParseDrawPage(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body><table>")
	for g := 0; g < 12; g++ {
		letter := string(rune('A' + g))
		b.WriteString("<tr><td>Group " + letter + "</td>")
		for k := 0; k < 4; k++ {
			b.WriteString("<td>Team " + letter + string(rune('1'+k)) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table></body></html>")

	groups := ParseDrawPage(htmlDoc(t, b.String()))
	require.NoError(t, CheckDraw(groups))
	assert.Equal(t, []string{"Team A1", "Team A2", "Team A3", "Team A4"}, groups["A"])
}

func TestCheckDraw(t *testing.T) {
	groups := map[string][]string{}
	for g := 0; g < 12; g++ {
		letter := string(rune('A' + g))
		groups[letter] = []string{"a", "b", "c", "d"}
	}
	if err := CheckDraw(groups); err != nil {
		t.Fatalf("complete draw rejected: %v", err)
	}

	groups["L"] = groups["L"][:3]
	if err := CheckDraw(groups); err == nil {
		t.Fatal("short group must be rejected")
	}
	delete(groups, "L")
	if err := CheckDraw(groups); err == nil {
		t.Fatal("missing group must be rejected")
	}
}

func TestCalculateForm(t *testing.T) {
	event := func(homeID, awayID, homeGoals, awayGoals int) sofascoreEvent {
		var ev sofascoreEvent
		ev.Status.Type = "finished"
		ev.HomeTeam.ID = homeID
		ev.AwayTeam.ID = awayID
		ev.HomeScore.Current = &homeGoals
		ev.AwayScore.Current = &awayGoals
		return ev
	}

	const us = 10
	payload := sofascoreEvents{Events: []sofascoreEvent{
		event(us, 1, 3, 0), // W home
		event(2, us, 1, 1), // D away
		event(us, 3, 0, 2), // L home
		event(4, us, 0, 1), // W away
	}}

	form, info, ok := CalculateForm(payload, us)
	if !ok {
		t.Fatal("expected form data")
	}
	if form != 7.0/4.0 {
		t.Errorf("form = %v, want 1.75", form)
	}
	if info.MatchesUsed != 4 {
		t.Errorf("MatchesUsed = %d, want 4", info.MatchesUsed)
	}
	want := []string{"W", "D", "L", "W"}
	for i, r := range want {
		if info.Results[i] != r {
			t.Errorf("Results = %v, want %v", info.Results, want)
			break
		}
	}
}

func TestCalculateFormTakesLastFive(t *testing.T) {
	const us = 10
	var events []sofascoreEvent
	win := 1
	zero := 0
	for i := 0; i < 8; i++ {
		var ev sofascoreEvent
		ev.Status.Type = "finished"
		ev.HomeTeam.ID = us
		ev.AwayTeam.ID = 1
		if i < 3 {
			ev.HomeScore.Current = &zero // three old losses
			ev.AwayScore.Current = &win
		} else {
			ev.HomeScore.Current = &win // five recent wins
			ev.AwayScore.Current = &zero
		}
		events = append(events, ev)
	}

	form, info, ok := CalculateForm(sofascoreEvents{Events: events}, us)
	if !ok || info.MatchesUsed != 5 {
		t.Fatalf("MatchesUsed = %d, want the last 5", info.MatchesUsed)
	}
	if form != 3.0 {
		t.Errorf("form = %v, want 3.0 (the losses are outside the window)", form)
	}
}

func TestCalculateFormSkipsUnfinished(t *testing.T) {
	var ev sofascoreEvent
	ev.Status.Type = "notstarted"
	_, _, ok := CalculateForm(sofascoreEvents{Events: []sofascoreEvent{ev}}, 10)
	if ok {
		t.Fatal("unfinished events must not produce a form score")
	}
}
