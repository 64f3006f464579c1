// Package merge combines the team registry and the scraped source documents
// into a single validated tournament dataset.
//
// Attribute resolution collects every error before failing so the operator
// sees the complete picture in one pass; group resolution aborts on the
// first unresolvable name because a single bad mapping blocks correct group
// construction. No output is written when any hard error exists.
package merge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wc26sim/wcdata/internal/model"
)

// Result tracks counts, errors, and warnings from one merge run.
type Result struct {
	TeamsMerged int
	GroupsBuilt int
	Errors      []string
	Warnings    []string
}

// AddErrorf records a formatted hard error. Any recorded error blocks output.
func (r *Result) AddErrorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// AddWarningf records a formatted warning. Warnings are surfaced to the
// operator but never block output.
func (r *Result) AddWarningf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// OK reports whether the run produced no hard errors.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Summary returns a human-readable summary of the merge run.
func (r *Result) Summary() string {
	return fmt.Sprintf("teams=%d groups=%d warnings=%d errors=%d",
		r.TeamsMerged, r.GroupsBuilt, len(r.Warnings), len(r.Errors))
}

// Stats aggregates dataset-level figures for the post-run log line.
type Stats struct {
	AverageElo       float64
	TotalMarketValue float64
	Confederations   map[model.Confederation]int
}

// Describe computes summary statistics over a merged dataset.
func Describe(data *model.TournamentData) Stats {
	stats := Stats{Confederations: make(map[model.Confederation]int)}
	if data == nil || len(data.Teams) == 0 {
		return stats
	}
	var eloSum float64
	for _, team := range data.Teams {
		eloSum += team.EloRating
		stats.TotalMarketValue += team.MarketValueMillions
		stats.Confederations[team.Confederation]++
	}
	stats.AverageElo = eloSum / float64(len(data.Teams))
	return stats
}

// ConfederationBreakdown renders the per-confederation counts as a single
// sorted string, e.g. "AFC=8 CONCACAF=6 UEFA=16".
func (s Stats) ConfederationBreakdown() string {
	names := make([]string, 0, len(s.Confederations))
	for c := range s.Confederations {
		names = append(names, string(c))
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", name, s.Confederations[model.Confederation(name)]))
	}
	return strings.Join(parts, " ")
}
