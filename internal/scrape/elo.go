package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wc26sim/wcdata/internal/registry"
	"github.com/wc26sim/wcdata/internal/source"
)

// eloBaseURL is the per-team country page. eloratings.net itself renders
// via JavaScript; international-football.net carries the same ratings as
// static HTML.
const eloBaseURL = "https://www.international-football.net/country"

var eloScorePattern = regexp.MustCompile(`Elo\s*Score[^\d]*(\d{4})`)

// EloScraper fetches ELO ratings one team page at a time.
type EloScraper struct {
	client *Client
	logger *slog.Logger
}

// NewEloScraper creates an ELO scraper on top of the shared client.
func NewEloScraper(client *Client, logger *slog.Logger) *EloScraper {
	return &EloScraper{client: client, logger: logger}
}

// Scrape fetches the ELO rating for every registry entry with a usable elo
// alias. The output carries both the raw source-name mapping and the
// canonical-keyed matched_teams mapping the merge step prefers.
func (s *EloScraper) Scrape(ctx context.Context, reg *registry.Registry) (*source.EloDocument, error) {
	doc := &source.EloDocument{
		Teams:        map[string]float64{},
		MatchedTeams: map[string]float64{},
		Source:       "international-football.net",
		ScrapedAt:    time.Now().UTC(),
	}

	for _, team := range reg.Teams {
		if !team.Aliases.Usable(registry.SourceElo) {
			continue
		}
		alias := team.Aliases.Elo
		page, err := s.client.GetDocument(ctx, eloBaseURL+"?team="+url.QueryEscape(alias))
		if err != nil {
			s.logger.Warn("ELO fetch failed", "team", alias, "error", err)
			continue
		}
		rating, ok := ParseEloPage(page)
		if !ok {
			s.logger.Warn("No ELO rating found", "team", alias)
			continue
		}
		doc.Teams[alias] = rating
		doc.MatchedTeams[team.CanonicalName] = rating
		s.logger.Info("ELO rating", "team", alias, "rating", rating)
	}

	if len(doc.Teams) == 0 {
		return nil, fmt.Errorf("no ELO ratings found for any team")
	}
	s.logger.Info("ELO scrape complete", "teams", len(doc.Teams))
	return doc, nil
}

// ParseEloPage extracts the ELO rating from a team page. The page carries a
// table with rows like ["Elo Score", "2113"]; a regex over the raw text is
// the fallback when the table layout shifts.
func ParseEloPage(doc *goquery.Document) (float64, bool) {
	var rating float64
	found := false

	doc.Find("table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return true
		}
		label := strings.TrimSpace(cells.Eq(0).Text())
		value := strings.TrimSpace(cells.Eq(1).Text())
		if label != "Elo Score" {
			return true
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 1000 || n > 2500 {
			return true
		}
		rating = float64(n)
		found = true
		return false
	})
	if found {
		return rating, true
	}

	html, err := doc.Html()
	if err != nil {
		return 0, false
	}
	if m := eloScorePattern.FindStringSubmatch(html); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n >= 1000 && n <= 2500 {
			return float64(n), true
		}
	}
	return 0, false
}
