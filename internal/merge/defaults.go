package merge

import "github.com/wc26sim/wcdata/internal/model"

// MetricDefaults are the substitute values used for a playoff slot whose
// occupant is not yet determined.
type MetricDefaults struct {
	EloRating           float64
	MarketValueMillions float64
	FIFARanking         int
}

// playoffDefaults maps a playoff slot's confederation to its substitute
// metrics. Kept as a table so the values are auditable in one place.
// UEFA playoff teams are generally strong; every other slot belongs to the
// intercontinental playoff, where the field varies far more.
var playoffDefaults = map[model.Confederation]MetricDefaults{
	model.UEFA: {EloRating: 1700, MarketValueMillions: 300, FIFARanking: 30},
}

// intercontinentalDefaults applies to any playoff slot without a
// confederation-specific entry above.
var intercontinentalDefaults = MetricDefaults{
	EloRating:           1500,
	MarketValueMillions: 50,
	FIFARanking:         60,
}

// PlayoffDefaultsFor returns the substitute metrics for a playoff slot.
func PlayoffDefaultsFor(confederation string) MetricDefaults {
	if d, ok := playoffDefaults[model.Confederation(confederation)]; ok {
		return d
	}
	return intercontinentalDefaults
}

// DefaultPlayoffConfederation is substituted whenever a registry entry
// carries the TBD confederation sentinel. The intercontinental playoff is
// hosted in CONCACAF territory, so that is the convention. This substitution
// is unconditional: TBD is never emitted in merged output.
const DefaultPlayoffConfederation = model.CONCACAF

// EstimateFIFARanking derives an approximate FIFA ranking from an ELO
// rating. Top teams (ELO > 1900) sit roughly in the top 20, mid teams
// (1700-1900) around 20-50, the rest around 50-100.
func EstimateFIFARanking(elo float64) int {
	switch {
	case elo > 1900:
		return 25
	case elo > 1700:
		return 45
	default:
		return 70
	}
}
