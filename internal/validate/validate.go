// Package validate runs the layered schema validation battery against a
// candidate tournament document.
//
// The battery is a fixed, ordered set of independent checks. Every check
// runs and reports its own verdict, so failures do not short-circuit each
// other. The only exception is the final strict schema-conformance check,
// which re-parses the raw document against the TournamentData shape and
// necessarily runs last. The document is valid iff every check passes.
//
// Checks operate on a loosely decoded document, not the typed model, so a
// structurally broken file still gets a full per-check report instead of a
// single decode error.
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/wc26sim/wcdata/internal/config"
	"github.com/wc26sim/wcdata/internal/model"
)

// Value ranges enforced by the battery.
const (
	EloMin  = 1000.0
	EloMax  = 2500.0
	FIFAMin = 1
	FIFAMax = 211
)

// Check is one verdict from the battery.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Result is the full battery report.
type Result struct {
	Checks []Check
}

// Valid reports whether every check passed.
func (r *Result) Valid() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// FailedChecks returns the failed checks in battery order.
func (r *Result) FailedChecks() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.OK {
			failed = append(failed, c)
		}
	}
	return failed
}

// PassedCount returns the number of passed checks.
func (r *Result) PassedCount() int {
	n := 0
	for _, c := range r.Checks {
		if c.OK {
			n++
		}
	}
	return n
}

func (r *Result) pass(name, detail string) {
	r.Checks = append(r.Checks, Check{Name: name, OK: true, Detail: detail})
}

func (r *Result) fail(name, detail string) {
	r.Checks = append(r.Checks, Check{Name: name, OK: false, Detail: detail})
}

// document is the loose shape the itemized checks inspect.
type document struct {
	Teams  []map[string]any `json:"teams"`
	Groups []map[string]any `json:"groups"`
}

// Run executes the full battery against a raw tournament document. It
// returns an error only when the input is not valid JSON at all; every
// other problem is reported through the per-check verdicts.
func Run(raw []byte) (*Result, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	r := &Result{}
	checkTeamCount(doc, r)
	checkGroupCount(doc, r)
	checkTeamIDs(doc, r)
	checkDuplicateIDs(doc, r)
	checkGroupReferences(doc, r)
	checkGroupLetters(doc, r)
	checkGroupSizes(doc, r)
	checkEloRatings(doc, r)
	checkFIFARankings(doc, r)
	checkMarketValues(doc, r)
	checkConfederations(doc, r)
	checkTeamCodes(doc, r)
	checkWorldCupWins(doc, r)
	checkSchema(raw, r) // depends on the whole document; always last
	return r, nil
}

// --------------------------------------------------------------------------
// Itemized checks
// --------------------------------------------------------------------------

func checkTeamCount(doc document, r *Result) {
	detail := fmt.Sprintf("%d (expected %d)", len(doc.Teams), config.TeamCount)
	if len(doc.Teams) == config.TeamCount {
		r.pass("Team count", detail)
	} else {
		r.fail("Team count", detail)
	}
}

func checkGroupCount(doc document, r *Result) {
	detail := fmt.Sprintf("%d (expected %d)", len(doc.Groups), config.GroupCount)
	if len(doc.Groups) == config.GroupCount {
		r.pass("Group count", detail)
	} else {
		r.fail("Group count", detail)
	}
}

func checkTeamIDs(doc document, r *Result) {
	const name = "Team id coverage"
	ids := teamIDs(doc)

	var outOfRange []int
	for _, id := range ids {
		if id < 0 || id >= config.TeamCount {
			outOfRange = append(outOfRange, id)
		}
	}
	if len(outOfRange) > 0 {
		sort.Ints(outOfRange)
		r.fail(name, fmt.Sprintf("ids out of range 0-%d: %v", config.TeamCount-1, outOfRange))
		return
	}

	// Completeness of the 0-47 set is only meaningful when the team count
	// itself is right; a wrong count is already reported above.
	if len(doc.Teams) != config.TeamCount {
		r.pass(name, "all ids in range; completeness not evaluated (team count mismatch)")
		return
	}

	present := make(map[int]bool, len(ids))
	for _, id := range ids {
		present[id] = true
	}
	var missing []int
	for id := 0; id < config.TeamCount; id++ {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		r.fail(name, fmt.Sprintf("missing team ids: %v", missing))
		return
	}
	r.pass(name, fmt.Sprintf("all team ids 0-%d present", config.TeamCount-1))
}

func checkDuplicateIDs(doc document, r *Result) {
	const name = "Duplicate team ids"
	counts := make(map[int]int)
	for _, id := range teamIDs(doc) {
		counts[id]++
	}
	dups := make(map[int]int)
	for id, n := range counts {
		if n > 1 {
			dups[id] = n
		}
	}
	if len(dups) > 0 {
		r.fail(name, fmt.Sprintf("duplicate team ids: %v", dups))
		return
	}
	r.pass(name, "no duplicate team ids")
}

func checkGroupReferences(doc document, r *Result) {
	const name = "Group team references"
	valid := make(map[int]bool)
	for _, id := range teamIDs(doc) {
		valid[id] = true
	}

	type ref struct {
		Group string
		ID    int
	}
	var invalid []ref
	for _, g := range doc.Groups {
		letter := strField(g, "id", "?")
		for _, id := range groupTeamIDs(g) {
			if !valid[id] {
				invalid = append(invalid, ref{letter, id})
			}
		}
	}
	if len(invalid) > 0 {
		r.fail(name, fmt.Sprintf("invalid group team references: %v", invalid))
		return
	}
	r.pass(name, "all group team references are valid")
}

func checkGroupLetters(doc document, r *Result) {
	const name = "Group letters"
	actual := make([]string, 0, len(doc.Groups))
	for _, g := range doc.Groups {
		actual = append(actual, strField(g, "id", "?"))
	}
	expected := config.GroupLetters()
	if len(actual) != len(expected) {
		r.fail(name, fmt.Sprintf("group ids not A-L in order: %v", actual))
		return
	}
	for i := range expected {
		if actual[i] != expected[i] {
			r.fail(name, fmt.Sprintf("group ids not A-L in order: %v", actual))
			return
		}
	}
	r.pass(name, "group ids are A-L in correct order")
}

func checkGroupSizes(doc document, r *Result) {
	const name = "Group sizes"
	type wrong struct {
		Group string
		Count int
	}
	var wrongCounts []wrong
	for _, g := range doc.Groups {
		if n := len(groupTeamIDs(g)); n != config.TeamsPerGroup {
			wrongCounts = append(wrongCounts, wrong{strField(g, "id", "?"), n})
		}
	}
	if len(wrongCounts) > 0 {
		r.fail(name, fmt.Sprintf("groups with wrong team count: %v", wrongCounts))
		return
	}
	r.pass(name, fmt.Sprintf("all groups have exactly %d teams", config.TeamsPerGroup))
}

func checkEloRatings(doc document, r *Result) {
	checkTeamRange(doc, r, "ELO ratings", "elo_rating", EloMin, EloMax)
}

func checkFIFARankings(doc document, r *Result) {
	checkTeamRange(doc, r, "FIFA rankings", "fifa_ranking", FIFAMin, FIFAMax)
}

func checkMarketValues(doc document, r *Result) {
	const name = "Market values"
	type bad struct {
		Team  string
		Value float64
	}
	var negative []bad
	for _, t := range doc.Teams {
		if v := numField(t, "market_value_millions", 0); v < 0 {
			negative = append(negative, bad{teamName(t), v})
		}
	}
	if len(negative) > 0 {
		r.fail(name, fmt.Sprintf("negative market values: %v", negative))
		return
	}
	r.pass(name, "all market values are non-negative")
}

func checkConfederations(doc document, r *Result) {
	const name = "Confederations"
	type bad struct {
		Team          string
		Confederation string
	}
	var invalid []bad
	for _, t := range doc.Teams {
		conf := strField(t, "confederation", "")
		if !model.Confederation(conf).Valid() {
			invalid = append(invalid, bad{teamName(t), conf})
		}
	}
	if len(invalid) > 0 {
		r.fail(name, fmt.Sprintf("invalid confederations: %v", invalid))
		return
	}
	r.pass(name, "all confederations are valid")
}

func checkTeamCodes(doc document, r *Result) {
	const name = "Team codes"
	type bad struct {
		Team string
		Code string
	}
	var invalid []bad
	for _, t := range doc.Teams {
		code := strField(t, "code", "")
		if !model.ValidCode(code) {
			invalid = append(invalid, bad{teamName(t), code})
		}
	}
	if len(invalid) > 0 {
		r.fail(name, fmt.Sprintf("invalid team codes (not 3-letter uppercase): %v", invalid))
		return
	}
	r.pass(name, "all team codes are valid 3-letter uppercase")
}

func checkWorldCupWins(doc document, r *Result) {
	const name = "World cup wins"
	var invalid []string
	for _, t := range doc.Teams {
		wins, ok := intField(t, "world_cup_wins")
		if !ok || wins < 0 {
			invalid = append(invalid, teamName(t))
		}
	}
	if len(invalid) > 0 {
		r.fail(name, fmt.Sprintf("invalid world cup wins (not a non-negative integer): %v", invalid))
		return
	}
	r.pass(name, "all world cup wins are valid non-negative integers")
}

// checkSchema re-parses the raw document against the typed TournamentData
// shape with unknown fields disallowed. This catches structural drift
// (renamed fields, wrong types, extra keys) that the itemized checks were
// never written to anticipate.
func checkSchema(raw []byte, r *Result) {
	const name = "Schema"
	if _, err := model.DecodeStrict(raw); err != nil {
		r.fail(name, err.Error())
		return
	}
	r.pass(name, "document conforms to the TournamentData schema")
}

// --------------------------------------------------------------------------
// Loose field helpers
// --------------------------------------------------------------------------

func checkTeamRange(doc document, r *Result, name, field string, min, max float64) {
	type bad struct {
		Team  string
		Value float64
	}
	var outOfRange []bad
	for _, t := range doc.Teams {
		v := numField(t, field, 0)
		if v < min || v > max {
			outOfRange = append(outOfRange, bad{teamName(t), v})
		}
	}
	if len(outOfRange) > 0 {
		r.fail(name, fmt.Sprintf("out of range %v-%v: %v", min, max, outOfRange))
		return
	}
	r.pass(name, fmt.Sprintf("all values in range %v-%v", min, max))
}

func teamIDs(doc document) []int {
	ids := make([]int, 0, len(doc.Teams))
	for _, t := range doc.Teams {
		if id, ok := intField(t, "id"); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func groupTeamIDs(g map[string]any) []int {
	list, ok := g["teams"].([]any)
	if !ok {
		return nil
	}
	ids := make([]int, 0, len(list))
	for _, v := range list {
		if n, ok := v.(json.Number); ok {
			if id, err := n.Int64(); err == nil {
				ids = append(ids, int(id))
			}
		}
	}
	return ids
}

func teamName(t map[string]any) string {
	return strField(t, "name", "Unknown")
}

func strField(m map[string]any, key, fallback string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return fallback
}

func numField(m map[string]any, key string, fallback float64) float64 {
	if n, ok := m[key].(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return fallback
}

func intField(m map[string]any, key string) (int, bool) {
	n, ok := m[key].(json.Number)
	if !ok {
		return 0, false
	}
	v, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return int(v), true
}
