package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wc26sim/wcdata/internal/source"
)

// FIFA ranking endpoints, tried in order. The apiVersion in these URLs
// changes a few times a year; the HTML page and Wikipedia are fallbacks.
var fifaAPIEndpoints = []string{
	"https://www.fifa.com/api/ranking-overview?locale=en&dateId=id14142",
	"https://inside.fifa.com/api/ranking-overview?locale=en&dateId=id14142",
}

const (
	fifaRankingsPage  = "https://inside.fifa.com/fifa-world-ranking/men"
	wikipediaRankings = "https://en.wikipedia.org/wiki/FIFA_Men%27s_World_Ranking"
)

// FIFAScraper fetches the FIFA world ranking table.
type FIFAScraper struct {
	client *Client
	logger *slog.Logger
}

// NewFIFAScraper creates a FIFA rankings scraper on top of the shared client.
func NewFIFAScraper(client *Client, logger *slog.Logger) *FIFAScraper {
	return &FIFAScraper{client: client, logger: logger}
}

// Scrape fetches the rankings, trying the JSON API first, then the HTML
// page, then Wikipedia. Only the first strategy that yields any rankings is
// used.
func (s *FIFAScraper) Scrape(ctx context.Context) (*source.RankingDocument, error) {
	for _, endpoint := range fifaAPIEndpoints {
		s.logger.Info("Trying FIFA API endpoint", "url", endpoint)
		var payload json.RawMessage
		if err := s.client.GetJSON(ctx, endpoint, nil, &payload); err != nil {
			s.logger.Warn("FIFA API endpoint failed", "url", endpoint, "error", err)
			continue
		}
		if rankings := ParseFIFAAPIResponse(payload); len(rankings) > 0 {
			return s.document(rankings, "fifa.com/api"), nil
		}
	}

	s.logger.Info("FIFA API failed, trying HTML scrape")
	if page, err := s.client.GetDocument(ctx, fifaRankingsPage); err == nil {
		if rankings := ParseFIFARankingTable(page); len(rankings) > 0 {
			return s.document(rankings, "fifa.com/html"), nil
		}
	} else {
		s.logger.Warn("FIFA HTML scrape failed", "error", err)
	}

	s.logger.Info("FIFA sources failed, trying Wikipedia")
	if page, err := s.client.GetDocument(ctx, wikipediaRankings); err == nil {
		if rankings := ParseFIFARankingTable(page); len(rankings) > 0 {
			return s.document(rankings, "wikipedia.org"), nil
		}
	} else {
		s.logger.Warn("Wikipedia scrape failed", "error", err)
	}

	return nil, fmt.Errorf("failed to fetch FIFA rankings from all sources; check %s manually", fifaRankingsPage)
}

func (s *FIFAScraper) document(rankings map[string]int, src string) *source.RankingDocument {
	s.logger.Info("FIFA rankings scraped", "teams", len(rankings), "source", src)
	return &source.RankingDocument{
		Teams:     rankings,
		Source:    src,
		ScrapedAt: time.Now().UTC(),
	}
}

// ParseFIFAAPIResponse extracts name-to-rank pairs from the ranking API
// payload. The API has shipped several shapes over the years; all known
// ones are handled.
func ParseFIFAAPIResponse(raw json.RawMessage) map[string]int {
	rankings := map[string]int{}

	// {"rankings": [{"rankingItem": {...}} | {"rank": 1, "team": {...}}]}
	var wrapped struct {
		Rankings []json.RawMessage `json:"rankings"`
		Data     []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		for _, entry := range append(wrapped.Rankings, wrapped.Data...) {
			if name, rank, ok := parseFIFAEntry(entry); ok {
				rankings[name] = rank
			}
		}
	}
	if len(rankings) > 0 {
		return rankings
	}

	// Bare array form.
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err == nil {
		for _, entry := range entries {
			if name, rank, ok := parseFIFAEntry(entry); ok {
				rankings[name] = rank
			}
		}
	}
	return rankings
}

func parseFIFAEntry(raw json.RawMessage) (string, int, bool) {
	var entry struct {
		Rank        *int `json:"rank"`
		Position    *int `json:"position"`
		RankingItem *struct {
			Rank *int   `json:"rank"`
			Name string `json:"name"`
		} `json:"rankingItem"`
		TeamName string          `json:"teamName"`
		Name     string          `json:"name"`
		Team     json.RawMessage `json:"team"`
		Country  json.RawMessage `json:"country"`
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return "", 0, false
	}

	rank := 0
	switch {
	case entry.Rank != nil:
		rank = *entry.Rank
	case entry.Position != nil:
		rank = *entry.Position
	case entry.RankingItem != nil && entry.RankingItem.Rank != nil:
		rank = *entry.RankingItem.Rank
	}

	name := entry.TeamName
	if name == "" {
		name = entry.Name
	}
	if name == "" && entry.RankingItem != nil {
		name = entry.RankingItem.Name
	}
	for _, nested := range []json.RawMessage{entry.Team, entry.Country} {
		if name != "" {
			break
		}
		name = nestedTeamName(nested)
	}

	if rank == 0 || name == "" {
		return "", 0, false
	}
	return name, rank, true
}

func nestedTeamName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Name     string `json:"name"`
		TeamName string `json:"teamName"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Name != "" {
			return obj.Name
		}
		return obj.TeamName
	}
	return ""
}

var leadingRankPattern = regexp.MustCompile(`^(\d{1,3})\b`)

// ParseFIFARankingTable extracts rankings from an HTML page that carries
// them as table rows: a numeric rank cell followed by a team name cell.
// Works for both the FIFA page's table fallback and Wikipedia's table.
func ParseFIFARankingTable(doc *goquery.Document) map[string]int {
	rankings := map[string]int{}

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		first := strings.TrimSpace(cells.Eq(0).Text())
		m := leadingRankPattern.FindStringSubmatch(first)
		if m == nil {
			return
		}
		rank, err := strconv.Atoi(m[1])
		if err != nil || rank < 1 || rank > 211 {
			return
		}
		name := strings.TrimSpace(cells.Eq(1).Text())
		if name == "" || len(name) < 2 {
			return
		}
		if _, seen := rankings[name]; !seen {
			rankings[name] = rank
		}
	})
	return rankings
}
