package merge

import (
	"log/slog"
	"sort"

	"github.com/wc26sim/wcdata/internal/model"
	"github.com/wc26sim/wcdata/internal/registry"
	"github.com/wc26sim/wcdata/internal/source"
	"github.com/wc26sim/wcdata/internal/validate"
)

// Options are the operator-enabled tolerance flags. Both default to off:
// every substitution must be explicitly allowed, and is always recorded as
// a warning even when tolerated.
type Options struct {
	AllowTBDDefaults bool
	AllowMissingFIFA bool
}

// Inputs are the fully materialized documents one merge run consumes. The
// merge step runs only after every document is loaded; there is no partial
// or streaming mode.
type Inputs struct {
	Registry     *registry.Registry
	Elo          *source.EloDocument
	MarketValues *source.MarketValueDocument
	Rankings     *source.RankingDocument
	Groups       *source.GroupsDocument
}

// Run merges the inputs into a validated TournamentData. It resolves every
// registry entry, collecting all errors and warnings, then builds groups and
// runs the full schema validation battery as a final gate. On any hard error
// it returns a nil document: a failed merge never emits partial output.
func Run(in Inputs, opts Options, logger *slog.Logger) (*model.TournamentData, *Result) {
	res := &Result{}
	lookups := registry.BuildLookups(in.Registry)
	logger.Debug("Built lookup tables", "teams", len(lookups.ByID))

	teams := make([]model.Team, 0, len(in.Registry.Teams))
	for _, entry := range in.Registry.Teams {
		team, ok := resolveTeam(entry, in, opts, res)
		if !ok {
			continue
		}
		teams = append(teams, team)
		logger.Debug("Merged team",
			"name", team.Name, "elo", team.EloRating,
			"market", team.MarketValueMillions, "fifa", team.FIFARanking)
	}
	res.TeamsMerged = len(teams)

	// Stable output order is part of the simulator contract.
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })

	groups, err := ResolveGroups(in.Groups, lookups)
	if err != nil {
		res.AddErrorf("build groups: %v", err)
	} else {
		res.GroupsBuilt = len(groups)
	}

	if !res.OK() {
		return nil, res
	}

	data := &model.TournamentData{Teams: teams, Groups: groups}
	if err := data.Validate(); err != nil {
		res.AddErrorf("merged output violates structural invariants: %v", err)
		return nil, res
	}

	// Final gate: the document must pass every schema check before anyone
	// is allowed to persist it.
	encoded, err := data.Encode()
	if err != nil {
		res.AddErrorf("%v", err)
		return nil, res
	}
	report, err := validate.Run(encoded)
	if err != nil {
		res.AddErrorf("validate merged output: %v", err)
		return nil, res
	}
	for _, check := range report.FailedChecks() {
		res.AddErrorf("validation: %s: %s", check.Name, check.Detail)
	}
	if !res.OK() {
		return nil, res
	}

	return data, res
}
