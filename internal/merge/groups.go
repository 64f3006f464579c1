package merge

import (
	"fmt"
	"strings"

	"github.com/wc26sim/wcdata/internal/config"
	"github.com/wc26sim/wcdata/internal/model"
	"github.com/wc26sim/wcdata/internal/registry"
	"github.com/wc26sim/wcdata/internal/source"
)

// ResolveGroups maps the raw group draw to group structs with internal team
// IDs, preserving letter order A-L. Unlike attribute resolution this aborts
// on the first unresolvable name: an unmapped team makes correct group
// construction impossible, so there is nothing useful to collect.
func ResolveGroups(doc *source.GroupsDocument, lookups *registry.Lookups) ([]model.Group, error) {
	groups := make([]model.Group, 0, config.GroupCount)

	for _, letter := range config.GroupLetters() {
		rawNames := doc.Groups[letter]
		ids := make([]int, 0, len(rawNames))

		for _, name := range rawNames {
			id, ok := resolveGroupName(name, lookups)
			if !ok {
				return nil, fmt.Errorf("could not map team %q in group %s to an id", name, letter)
			}
			ids = append(ids, id)
		}

		if len(ids) != config.TeamsPerGroup {
			return nil, fmt.Errorf("group %s has %d teams, expected %d", letter, len(ids), config.TeamsPerGroup)
		}

		groups = append(groups, model.Group{ID: letter, Teams: ids})
	}

	return groups, nil
}

// resolveGroupName resolves one raw draw name to a team ID. Exact canonical
// match wins; otherwise the first registry entry (in registry order) whose
// canonical name contains the raw name, or vice versa, is taken. The
// substring fallback is what maps placeholder names like "UEFA Playoff A"
// onto the registry entry "UEFA Playoff A (TBD)".
func resolveGroupName(name string, lookups *registry.Lookups) (int, bool) {
	if team, ok := lookups.ByCanonical[name]; ok {
		return team.ID, true
	}
	for _, team := range lookups.Entries {
		if strings.Contains(team.CanonicalName, name) || strings.Contains(name, team.CanonicalName) {
			return team.ID, true
		}
	}
	return 0, false
}
