// Package model defines the tournament data types consumed by the external
// simulator. These structs are the compatibility contract between the merge
// pipeline and the downstream engine: field names, types, and ordering are
// fixed and must stay byte-stable across runs for identical inputs.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
)

// Confederation is a FIFA confederation.
type Confederation string

const (
	UEFA     Confederation = "UEFA"
	CONMEBOL Confederation = "CONMEBOL"
	CONCACAF Confederation = "CONCACAF"
	CAF      Confederation = "CAF"
	AFC      Confederation = "AFC"
	OFC      Confederation = "OFC"
)

// Confederations returns the six valid confederations in display order.
func Confederations() []Confederation {
	return []Confederation{UEFA, CONMEBOL, CONCACAF, CAF, AFC, OFC}
}

// Valid reports whether c is one of the six real confederations.
// The registry sentinel "TBD" is not valid in merged output.
func (c Confederation) Valid() bool {
	switch c {
	case UEFA, CONMEBOL, CONCACAF, CAF, AFC, OFC:
		return true
	}
	return false
}

// codePattern matches FIFA country codes (exactly three uppercase letters).
var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidCode reports whether code is a well-formed FIFA country code.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}

// Team is a fully resolved national team with all merged statistics.
type Team struct {
	ID                  int           `json:"id"`
	Name                string        `json:"name"`
	Code                string        `json:"code"`
	Confederation       Confederation `json:"confederation"`
	EloRating           float64       `json:"elo_rating"`
	MarketValueMillions float64       `json:"market_value_millions"`
	FIFARanking         int           `json:"fifa_ranking"`
	WorldCupWins        int           `json:"world_cup_wins"`
}

// Group is one group-stage group: a letter A-L and four team IDs.
type Group struct {
	ID    string `json:"id"`
	Teams []int  `json:"teams"`
}

// TournamentData is the root document: 48 teams and 12 groups.
type TournamentData struct {
	Teams  []Team  `json:"teams"`
	Groups []Group `json:"groups"`
}

// Validate enforces the structural invariants the simulator depends on:
// 48 teams with unique IDs covering 0-47, sorted ascending, and 12 groups
// lettered A-L in order with 4 in-range team IDs each.
func (d *TournamentData) Validate() error {
	if len(d.Teams) != 48 {
		return fmt.Errorf("expected 48 teams, got %d", len(d.Teams))
	}
	if len(d.Groups) != 12 {
		return fmt.Errorf("expected 12 groups, got %d", len(d.Groups))
	}
	seen := make(map[int]bool, len(d.Teams))
	for _, t := range d.Teams {
		if t.ID < 0 || t.ID > 47 {
			return fmt.Errorf("team %q: id %d out of range 0-47", t.Name, t.ID)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate team id %d", t.ID)
		}
		seen[t.ID] = true
	}
	if !sort.SliceIsSorted(d.Teams, func(i, j int) bool { return d.Teams[i].ID < d.Teams[j].ID }) {
		return fmt.Errorf("teams are not sorted by id")
	}
	for i, g := range d.Groups {
		want := string(rune('A' + i))
		if g.ID != want {
			return fmt.Errorf("group %d: expected letter %s, got %q", i, want, g.ID)
		}
		if len(g.Teams) != 4 {
			return fmt.Errorf("group %s: expected 4 teams, got %d", g.ID, len(g.Teams))
		}
		for _, id := range g.Teams {
			if !seen[id] {
				return fmt.Errorf("group %s references unknown team id %d", g.ID, id)
			}
		}
	}
	return nil
}

// DecodeStrict parses raw JSON into TournamentData, rejecting unknown
// fields and type mismatches. This is a shape check only: count and
// ordering invariants are enforced by Validate and by the validation
// battery's itemized checks.
func DecodeStrict(raw []byte) (*TournamentData, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var d TournamentData
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode tournament data: %w", err)
	}
	return &d, nil
}

// Encode marshals the document with the stable two-space indentation the
// simulator reads. Field order follows struct declaration order, so output
// is byte-identical across runs given identical inputs.
func (d *TournamentData) Encode() ([]byte, error) {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tournament data: %w", err)
	}
	return append(out, '\n'), nil
}
