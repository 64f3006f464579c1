package merge

import (
	"strings"

	"github.com/wc26sim/wcdata/internal/model"
	"github.com/wc26sim/wcdata/internal/registry"
	"github.com/wc26sim/wcdata/internal/source"
)

// EloRating resolves a team's ELO rating. The canonical-name-keyed
// matched_teams mapping wins over the raw source-name mapping; an alias of
// TBD or empty disables the raw fallback. A miss is not an error here.
func EloRating(team registry.Entry, doc *source.EloDocument) (float64, bool) {
	if v, ok := doc.MatchedTeams[team.CanonicalName]; ok {
		return v, true
	}
	if !team.Aliases.Usable(registry.SourceElo) {
		return 0, false
	}
	v, ok := doc.Teams[team.Aliases.Elo]
	return v, ok
}

// MarketValue resolves a team's squad market value. Transfermarkt data is
// keyed by canonical name directly.
func MarketValue(team registry.Entry, doc *source.MarketValueDocument) (float64, bool) {
	v, ok := doc.Teams[team.CanonicalName]
	return v, ok
}

// FIFARanking resolves a team's FIFA world ranking via its fifa alias.
func FIFARanking(team registry.Entry, doc *source.RankingDocument) (int, bool) {
	if !team.Aliases.Usable(registry.SourceFIFA) {
		return 0, false
	}
	v, ok := doc.Teams[team.Aliases.FIFA]
	return v, ok
}

// resolveTeam resolves every metric for one registry entry and applies the
// missing-data policy. Unresolved mandatory metrics are recorded on res and
// the team is excluded whole (ok=false); nothing is ever half-written.
func resolveTeam(team registry.Entry, in Inputs, opts Options, res *Result) (model.Team, bool) {
	canonical := team.CanonicalName

	elo, haveElo := EloRating(team, in.Elo)
	market, haveMarket := MarketValue(team, in.MarketValues)
	ranking, haveRanking := FIFARanking(team, in.Rankings)

	if team.Playoff {
		if !haveElo || !haveMarket || !haveRanking {
			if !opts.AllowTBDDefaults {
				res.AddErrorf("%s: missing data (TBD team); use --allow-tbd-defaults to use placeholder values", canonical)
				return model.Team{}, false
			}
			defaults := PlayoffDefaultsFor(team.Confederation)
			if !haveElo {
				elo = defaults.EloRating
				res.AddWarningf("%s: using default ELO rating (%.0f)", canonical, elo)
			}
			if !haveMarket {
				market = defaults.MarketValueMillions
				res.AddWarningf("%s: using default market value (%.0fM)", canonical, market)
			}
			if !haveRanking {
				ranking = defaults.FIFARanking
				res.AddWarningf("%s: using default FIFA ranking (%d)", canonical, ranking)
			}
		}
	} else {
		var missing []string
		if !haveElo {
			missing = append(missing, "ELO rating")
		}
		if !haveMarket {
			missing = append(missing, "market value")
		}
		if !haveRanking {
			if opts.AllowMissingFIFA {
				ranking = EstimateFIFARanking(elo)
				res.AddWarningf("%s: using estimated FIFA ranking (%d)", canonical, ranking)
			} else {
				missing = append(missing, "FIFA ranking")
			}
		}
		if len(missing) > 0 {
			res.AddErrorf("%s: missing %s", canonical, strings.Join(missing, ", "))
			return model.Team{}, false
		}
	}

	// The TBD confederation sentinel is always resolved, regardless of mode.
	confederation := model.Confederation(team.Confederation)
	if team.Confederation == registry.TBD {
		confederation = DefaultPlayoffConfederation
	}

	return model.Team{
		ID:                  team.ID,
		Name:                canonical,
		Code:                team.FIFACode,
		Confederation:       confederation,
		EloRating:           elo,
		MarketValueMillions: market,
		FIFARanking:         ranking,
		WorldCupWins:        team.WorldCupWins,
	}, true
}
