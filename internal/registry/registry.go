// Package registry loads the static team registry (team_mapping.json) and
// builds the cross-reference lookup tables every resolver depends on.
//
// The registry is hand-maintained external data: canonical identity, one
// alias per scraped source, confederation, and historical titles for each of
// the 48 tournament slots. It is consumed, never produced, by this pipeline.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
)

// TBD is the registry sentinel for data that is not yet determined: a
// playoff slot's alias, or the confederation of an intercontinental
// playoff winner.
const TBD = "TBD"

// --------------------------------------------------------------------------
// Source kinds
// --------------------------------------------------------------------------

// SourceKind identifies one of the scraped data sources a team may carry an
// alias for.
type SourceKind string

const (
	SourceElo           SourceKind = "elo"
	SourceFIFA          SourceKind = "fifa"
	SourceTransfermarkt SourceKind = "transfermarkt"
	SourceSofascore     SourceKind = "sofascore"
)

// SourceKinds returns all known source kinds in declaration order.
func SourceKinds() []SourceKind {
	return []SourceKind{SourceElo, SourceFIFA, SourceTransfermarkt, SourceSofascore}
}

// Aliases holds a team's source-specific names, plus the numeric site IDs
// the transfermarkt and sofascore scrapers need to build URLs. Fixed fields
// rather than a string-keyed map, so adding a source is a compile-visible
// change.
type Aliases struct {
	Elo           string `json:"elo"`
	FIFA          string `json:"fifa"`
	Transfermarkt string `json:"transfermarkt"`
	Sofascore     string `json:"sofascore"`

	TransfermarktID *int `json:"transfermarkt_id,omitempty"`
	SofascoreID     *int `json:"sofascore_id,omitempty"`
}

// For returns the alias for the given source kind.
func (a Aliases) For(kind SourceKind) string {
	switch kind {
	case SourceElo:
		return a.Elo
	case SourceFIFA:
		return a.FIFA
	case SourceTransfermarkt:
		return a.Transfermarkt
	case SourceSofascore:
		return a.Sofascore
	}
	return ""
}

// Usable reports whether the alias for kind can be used for lookups.
// The TBD sentinel and the empty string mean the slot is not yet
// resolvable for that source.
func (a Aliases) Usable(kind SourceKind) bool {
	v := a.For(kind)
	return v != "" && v != TBD
}

// --------------------------------------------------------------------------
// Registry entries
// --------------------------------------------------------------------------

// Entry is one tournament slot in the registry.
type Entry struct {
	ID            int     `json:"id"`
	CanonicalName string  `json:"canonical_name"`
	FIFACode      string  `json:"fifa_code"`
	Confederation string  `json:"confederation"`
	WorldCupWins  int     `json:"world_cup_wins"`
	Playoff       bool    `json:"playoff"`
	Aliases       Aliases `json:"aliases"`
}

// Registry is the full team registry document.
type Registry struct {
	Teams []Entry `json:"teams"`
}

// Load reads and parses a team registry file.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read team registry: %w", err)
	}
	var reg Registry
	if err := json.Unmarshal(raw, &reg); err != nil {
		return nil, fmt.Errorf("parse team registry %s: %w", path, err)
	}
	return &reg, nil
}

// --------------------------------------------------------------------------
// Lookups — the identity resolver
// --------------------------------------------------------------------------

// Lookups are the cross-reference tables built once per run from the
// registry: by internal ID, by canonical name, and alias-to-id per source.
// Entries preserves registry order so scans over it are deterministic.
//
// A malformed registry (duplicate IDs) is a caller guarantee, not
// re-validated here.
type Lookups struct {
	Entries     []Entry
	ByID        map[int]Entry
	ByCanonical map[string]Entry

	aliasToID map[SourceKind]map[string]int
}

// BuildLookups constructs all lookup tables from the registry. Aliases equal
// to TBD or empty are never inserted.
func BuildLookups(reg *Registry) *Lookups {
	l := &Lookups{
		Entries:     reg.Teams,
		ByID:        make(map[int]Entry, len(reg.Teams)),
		ByCanonical: make(map[string]Entry, len(reg.Teams)),
		aliasToID:   make(map[SourceKind]map[string]int, len(SourceKinds())),
	}
	for _, kind := range SourceKinds() {
		l.aliasToID[kind] = make(map[string]int)
	}
	for _, team := range reg.Teams {
		l.ByID[team.ID] = team
		l.ByCanonical[team.CanonicalName] = team
		for _, kind := range SourceKinds() {
			if team.Aliases.Usable(kind) {
				l.aliasToID[kind][team.Aliases.For(kind)] = team.ID
			}
		}
	}
	return l
}

// IDForAlias resolves a source-specific team name to an internal team ID.
func (l *Lookups) IDForAlias(kind SourceKind, name string) (int, bool) {
	id, ok := l.aliasToID[kind][name]
	return id, ok
}

// AliasCount returns the number of usable aliases registered for a source.
func (l *Lookups) AliasCount(kind SourceKind) int {
	return len(l.aliasToID[kind])
}
