package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wc26sim/wcdata/internal/config"
	"github.com/wc26sim/wcdata/internal/source"
)

// FIFA pages carrying the group draw, tried in order.
var fifaDrawURLs = []string{
	"https://www.fifa.com/fifaplus/en/tournaments/mens/worldcup/canadamexicousa2026/teams",
	"https://www.fifa.com/en/tournaments/mens/worldcup/canadamexicousa2026/articles/final-draw-results",
}

var groupHeaderPattern = regexp.MustCompile(`(?i)^Group\s+([A-L])$`)

// GroupsScraper fetches the official World Cup 2026 group draw.
type GroupsScraper struct {
	client *Client
	logger *slog.Logger
}

// NewGroupsScraper creates a group-draw scraper on top of the shared client.
func NewGroupsScraper(client *Client, logger *slog.Logger) *GroupsScraper {
	return &GroupsScraper{client: client, logger: logger}
}

// Scrape fetches the draw from the FIFA site. When the site cannot be
// scraped, fallbackGroups (typically the draw embedded in the registry
// file) is used instead; it must still form a complete valid draw.
func (s *GroupsScraper) Scrape(ctx context.Context, fallbackGroups map[string][]string) (*source.GroupsDocument, error) {
	for _, url := range fifaDrawURLs {
		page, err := s.client.GetDocument(ctx, url)
		if err != nil {
			s.logger.Warn("Draw page fetch failed", "url", url, "error", err)
			continue
		}
		groups := ParseDrawPage(page)
		if err := CheckDraw(groups); err == nil {
			s.logger.Info("Scraped group draw", "source", url)
			return s.document(groups, "fifa.com"), nil
		}
		s.logger.Warn("Draw page parse incomplete", "url", url, "groups", len(groups))
	}

	if fallbackGroups == nil {
		return nil, fmt.Errorf("no valid groups data found from any source")
	}
	if err := CheckDraw(fallbackGroups); err != nil {
		return nil, fmt.Errorf("fallback groups data is invalid: %w", err)
	}
	s.logger.Info("Using fallback group draw")
	return s.document(fallbackGroups, "team_mapping.json"), nil
}

func (s *GroupsScraper) document(groups map[string][]string, src string) *source.GroupsDocument {
	return &source.GroupsDocument{
		Groups:    groups,
		Source:    src,
		ScrapedAt: time.Now().UTC(),
		Meta:      map[string]any{"tournament": "FIFA World Cup 2026"},
	}
}

// ParseDrawPage extracts group assignments from a draw page. Two patterns
// are tried: table rows whose first cell is "Group X", and "Group X"
// headers whose enclosing section lists the teams.
func ParseDrawPage(doc *goquery.Document) map[string][]string {
	groups := map[string][]string{}

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		m := groupHeaderPattern.FindStringSubmatch(strings.TrimSpace(cells.Eq(0).Text()))
		if m == nil {
			return
		}
		letter := strings.ToUpper(m[1])
		var teams []string
		cells.Slice(1, cells.Length()).Each(func(_ int, cell *goquery.Selection) {
			if name := strings.TrimSpace(cell.Text()); name != "" {
				teams = append(teams, name)
			}
		})
		if len(teams) >= config.TeamsPerGroup {
			groups[letter] = teams[:config.TeamsPerGroup]
		}
	})
	if len(groups) == config.GroupCount {
		return groups
	}

	doc.Find("h2, h3, h4").Each(func(_ int, header *goquery.Selection) {
		m := groupHeaderPattern.FindStringSubmatch(strings.TrimSpace(header.Text()))
		if m == nil {
			return
		}
		letter := strings.ToUpper(m[1])
		if _, done := groups[letter]; done {
			return
		}
		var teams []string
		header.Parent().Find("a[href*='/team/'], li").Each(func(_ int, node *goquery.Selection) {
			name := strings.TrimSpace(node.Text())
			if name != "" && len(name) > 1 && !groupHeaderPattern.MatchString(name) {
				teams = append(teams, name)
			}
		})
		if len(teams) >= config.TeamsPerGroup {
			groups[letter] = teams[:config.TeamsPerGroup]
		}
	})
	return groups
}

// CheckDraw verifies a raw draw covers all 12 letters with 4 teams each.
func CheckDraw(groups map[string][]string) error {
	if len(groups) != config.GroupCount {
		return fmt.Errorf("expected %d groups, got %d", config.GroupCount, len(groups))
	}
	for _, letter := range config.GroupLetters() {
		teams, ok := groups[letter]
		if !ok {
			return fmt.Errorf("group %s is missing", letter)
		}
		if len(teams) != config.TeamsPerGroup {
			return fmt.Errorf("group %s has %d teams, expected %d", letter, len(teams), config.TeamsPerGroup)
		}
	}
	return nil
}
