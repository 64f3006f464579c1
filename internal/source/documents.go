// Package source defines the raw per-source document shapes the scrapers
// produce and the merge pipeline consumes. Each document is a source-specific
// name-to-value mapping plus provenance metadata (source, scraped_at).
//
// Adding a new source means adding a document type here. The merge core and
// file formats never change.
package source

import "time"

// EloDocument holds ELO ratings keyed by the source's own team names.
// MatchedTeams, when present, is the same data re-keyed by canonical name
// and is preferred during resolution.
type EloDocument struct {
	Teams        map[string]float64 `json:"teams"`
	MatchedTeams map[string]float64 `json:"matched_teams,omitempty"`
	Source       string             `json:"source"`
	ScrapedAt    time.Time          `json:"scraped_at"`
}

// MarketValueDocument holds squad market values in millions of euros,
// keyed by canonical team name.
type MarketValueDocument struct {
	Teams     map[string]float64 `json:"teams"`
	Source    string             `json:"source"`
	ScrapedAt time.Time          `json:"scraped_at"`
}

// RankingDocument holds FIFA world ranking positions keyed by the
// source's own team names.
type RankingDocument struct {
	Teams     map[string]int `json:"teams"`
	Source    string         `json:"source"`
	ScrapedAt time.Time      `json:"scraped_at"`
}

// GroupsDocument holds the group draw: letter A-L to the four raw team
// names drawn into that group. Names are raw source names and may be
// placeholders like "UEFA Playoff A".
type GroupsDocument struct {
	Groups    map[string][]string `json:"groups"`
	Source    string              `json:"source"`
	ScrapedAt time.Time           `json:"scraped_at"`
	Meta      map[string]any      `json:"meta,omitempty"`
}

// FormMatches summarizes the recent matches behind one team's form score.
type FormMatches struct {
	MatchesUsed int      `json:"matches_used"`
	Results     []string `json:"results,omitempty"`
}

// FormDocument holds recent-form scores (average points per game, 0-3)
// keyed by canonical team name.
type FormDocument struct {
	Teams       map[string]float64     `json:"teams"`
	MatchesInfo map[string]FormMatches `json:"matches_info,omitempty"`
	Source      string                 `json:"source"`
	ScrapedAt   time.Time              `json:"scraped_at"`
}

// Match is one scheduled tournament fixture. Group-stage matches carry a
// group letter and slot codes like "A1"; knockout matches carry a round,
// bracket slot, and qualification placeholders like "1A" or "W73".
type Match struct {
	MatchNumber     int    `json:"matchNumber"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	VenueID         string `json:"venueId"`
	GroupID         string `json:"groupId,omitempty"`
	Home            string `json:"home,omitempty"`
	Away            string `json:"away,omitempty"`
	Round           string `json:"round,omitempty"`
	KnockoutSlot    *int   `json:"knockoutSlot,omitempty"`
	HomePlaceholder string `json:"homePlaceholder,omitempty"`
	AwayPlaceholder string `json:"awayPlaceholder,omitempty"`
}

// ScheduleDocument holds the full 104-match tournament schedule.
type ScheduleDocument struct {
	Matches     []Match   `json:"matches"`
	Tournament  string    `json:"tournament"`
	Source      string    `json:"source"`
	LastUpdated time.Time `json:"lastUpdated"`
}
