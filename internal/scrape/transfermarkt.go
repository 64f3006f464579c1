package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wc26sim/wcdata/internal/registry"
	"github.com/wc26sim/wcdata/internal/source"
)

const transfermarktBaseURL = "https://www.transfermarkt.us"

// marketValuePattern matches strings like "€795.00m", "$1.54bn", "EUR30.50k".
var marketValuePattern = regexp.MustCompile(`(?i)[€$£]?\s*(\d+(?:\.\d+)?)\s*(bn|m|k|billion|million|thousand)?`)

// TransfermarktScraper fetches national-team squad market values from each
// team's Transfermarkt page.
type TransfermarktScraper struct {
	client *Client
	logger *slog.Logger
}

// NewTransfermarktScraper creates a Transfermarkt scraper on top of the
// shared client.
func NewTransfermarktScraper(client *Client, logger *slog.Logger) *TransfermarktScraper {
	return &TransfermarktScraper{client: client, logger: logger}
}

// Scrape fetches the market value for every registry entry with a usable
// transfermarkt slug and ID. Output is keyed by canonical name, which is
// what the merge step joins on. A team page that cannot be fetched or
// parsed fails the whole scrape: partial market data is worse than none.
func (s *TransfermarktScraper) Scrape(ctx context.Context, reg *registry.Registry) (*source.MarketValueDocument, error) {
	doc := &source.MarketValueDocument{
		Teams:     map[string]float64{},
		Source:    "transfermarkt.us",
		ScrapedAt: time.Now().UTC(),
	}

	for _, team := range reg.Teams {
		if !team.Aliases.Usable(registry.SourceTransfermarkt) || team.Aliases.TransfermarktID == nil {
			continue
		}
		value, err := s.scrapeTeam(ctx, team.Aliases.Transfermarkt, *team.Aliases.TransfermarktID)
		if err != nil {
			return nil, fmt.Errorf("scrape %s: %w", team.CanonicalName, err)
		}
		doc.Teams[team.CanonicalName] = value
		s.logger.Info("Market value", "team", team.CanonicalName, "millions", value)
	}

	if len(doc.Teams) == 0 {
		return nil, fmt.Errorf("no market values found for any team")
	}
	s.logger.Info("Transfermarkt scrape complete", "teams", len(doc.Teams))
	return doc, nil
}

func (s *TransfermarktScraper) scrapeTeam(ctx context.Context, slug string, teamID int) (float64, error) {
	url := fmt.Sprintf("%s/%s/startseite/verein/%d", transfermarktBaseURL, slug, teamID)
	page, err := s.client.GetDocument(ctx, url)
	if err != nil {
		return 0, err
	}
	text, ok := FindMarketValueText(page)
	if !ok {
		return 0, fmt.Errorf("no market value element on %s; page structure may have changed", url)
	}
	return ParseMarketValue(text)
}

// FindMarketValueText locates the total squad market value in a team page
// header, trying the selector patterns Transfermarkt has used.
func FindMarketValueText(doc *goquery.Document) (string, bool) {
	selectors := []string{
		"a.data-header__market-value-wrapper",
		".data-header__box--small .data-header__content",
		"span.data-header__market-value",
	}
	for _, sel := range selectors {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if text := strings.TrimSpace(node.Text()); text != "" {
				return text, true
			}
		}
	}
	return "", false
}

// ParseMarketValue converts a display string like "€795.00m" or "€1.54bn"
// into millions of euros.
func ParseMarketValue(value string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	m := marketValuePattern.FindStringSubmatch(cleaned)
	if m == nil || m[1] == "" {
		return 0, fmt.Errorf("could not parse market value %q", value)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse market value %q: %w", value, err)
	}
	switch strings.ToLower(m[2]) {
	case "bn", "billion":
		return n * 1000, nil
	case "m", "million", "":
		return n, nil
	case "k", "thousand":
		return n / 1000, nil
	default:
		return 0, fmt.Errorf("unrecognized value suffix in %q", value)
	}
}
