package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wc26sim/wcdata/internal/registry"
	"github.com/wc26sim/wcdata/internal/source"
)

const sofascoreBaseURL = "https://api.sofascore.com/api/v1"

// formMatchLimit caps how many recent matches feed a form score.
const formMatchLimit = 5

// SofascoreScraper fetches recent-form scores from the Sofascore JSON API.
type SofascoreScraper struct {
	client *Client
	logger *slog.Logger
}

// NewSofascoreScraper creates a form scraper on top of the shared client.
func NewSofascoreScraper(client *Client, logger *slog.Logger) *SofascoreScraper {
	return &SofascoreScraper{client: client, logger: logger}
}

// sofascoreEvents is the slice of the last-events payload the form
// calculation needs.
type sofascoreEvents struct {
	Events []sofascoreEvent `json:"events"`
}

type sofascoreEvent struct {
	Status struct {
		Type string `json:"type"`
	} `json:"status"`
	HomeTeam struct {
		ID int `json:"id"`
	} `json:"homeTeam"`
	AwayTeam struct {
		ID int `json:"id"`
	} `json:"awayTeam"`
	HomeScore struct {
		Current *int `json:"current"`
	} `json:"homeScore"`
	AwayScore struct {
		Current *int `json:"current"`
	} `json:"awayScore"`
}

// Scrape fetches the last finished matches for every registry entry with a
// sofascore ID and computes the form score (average points per game, 0-3).
func (s *SofascoreScraper) Scrape(ctx context.Context, reg *registry.Registry) (*source.FormDocument, error) {
	doc := &source.FormDocument{
		Teams:       map[string]float64{},
		MatchesInfo: map[string]source.FormMatches{},
		Source:      "sofascore.com",
		ScrapedAt:   time.Now().UTC(),
	}

	headers := map[string]string{"Referer": "https://www.sofascore.com/"}
	for _, team := range reg.Teams {
		if team.Aliases.SofascoreID == nil || team.Playoff {
			continue
		}
		id := *team.Aliases.SofascoreID
		url := fmt.Sprintf("%s/team/%d/events/last/0", sofascoreBaseURL, id)

		var events sofascoreEvents
		if err := s.client.GetJSON(ctx, url, headers, &events); err != nil {
			s.logger.Warn("Sofascore fetch failed", "team", team.CanonicalName, "id", id, "error", err)
			continue
		}
		form, info, ok := CalculateForm(events, id)
		if !ok {
			s.logger.Warn("No form data", "team", team.CanonicalName)
			continue
		}
		doc.Teams[team.CanonicalName] = form
		doc.MatchesInfo[team.CanonicalName] = info
		s.logger.Info("Form score", "team", team.CanonicalName, "form", form, "matches", info.MatchesUsed)
	}

	if len(doc.Teams) == 0 {
		return nil, fmt.Errorf("no form data found for any team")
	}
	s.logger.Info("Sofascore scrape complete", "teams", len(doc.Teams))
	return doc, nil
}

// CalculateForm computes a team's form score from its most recent finished
// matches: win 3, draw 1, loss 0, averaged over up to five matches. Events
// arrive oldest-first, so the tail of the list is taken.
func CalculateForm(payload sofascoreEvents, teamID int) (float64, source.FormMatches, bool) {
	var finished []sofascoreEvent
	for _, ev := range payload.Events {
		if ev.Status.Type != "finished" || ev.HomeScore.Current == nil || ev.AwayScore.Current == nil {
			continue
		}
		finished = append(finished, ev)
	}
	if len(finished) > formMatchLimit {
		finished = finished[len(finished)-formMatchLimit:]
	}
	if len(finished) == 0 {
		return 0, source.FormMatches{}, false
	}

	points := 0
	results := make([]string, 0, len(finished))
	for _, ev := range finished {
		us, them := *ev.HomeScore.Current, *ev.AwayScore.Current
		if ev.AwayTeam.ID == teamID {
			us, them = them, us
		}
		switch {
		case us > them:
			points += 3
			results = append(results, "W")
		case us == them:
			points += 1
			results = append(results, "D")
		default:
			results = append(results, "L")
		}
	}

	form := float64(points) / float64(len(finished))
	info := source.FormMatches{MatchesUsed: len(finished), Results: results}
	return form, info, true
}
