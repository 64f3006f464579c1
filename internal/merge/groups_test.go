package merge

import (
	"strings"
	"testing"

	"github.com/wc26sim/wcdata/internal/registry"
	"github.com/wc26sim/wcdata/internal/source"
)

func TestResolveGroupNameExactMatch(t *testing.T) {
	l := registry.BuildLookups(&registry.Registry{Teams: []registry.Entry{
		{ID: 7, CanonicalName: "Brazil"},
	}})
	id, ok := resolveGroupName("Brazil", l)
	if !ok || id != 7 {
		t.Fatalf("resolveGroupName = %d, %v; want 7, true", id, ok)
	}
}

func TestResolveGroupNameSubstring(t *testing.T) {
	l := registry.BuildLookups(&registry.Registry{Teams: []registry.Entry{
		{ID: 0, CanonicalName: "Brazil"},
		{ID: 1, CanonicalName: "UEFA Playoff A (TBD)"},
	}})

	// Draw name is a prefix of the canonical entry.
	id, ok := resolveGroupName("UEFA Playoff A", l)
	if !ok || id != 1 {
		t.Fatalf("draw placeholder did not map onto registry entry: %d, %v", id, ok)
	}

	// And the reverse containment direction.
	id, ok = resolveGroupName("Brazil (five-time champions)", l)
	if !ok || id != 0 {
		t.Fatalf("canonical-in-name containment failed: %d, %v", id, ok)
	}
}

func TestResolveGroupNameDeterministic(t *testing.T) {
	// Two entries both contain "Playoff"; the first in registry order must
	// win every time.
	l := registry.BuildLookups(&registry.Registry{Teams: []registry.Entry{
		{ID: 3, CanonicalName: "UEFA Playoff A (TBD)"},
		{ID: 4, CanonicalName: "UEFA Playoff B (TBD)"},
	}})
	for i := 0; i < 20; i++ {
		id, ok := resolveGroupName("Playoff", l)
		if !ok || id != 3 {
			t.Fatalf("iteration %d: resolveGroupName = %d, %v; ambiguity must resolve in registry order", i, id, ok)
		}
	}
}

func TestResolveGroupsUnknownTeamAborts(t *testing.T) {
	l := registry.BuildLookups(&registry.Registry{Teams: []registry.Entry{
		{ID: 0, CanonicalName: "Brazil"},
	}})
	doc := &source.GroupsDocument{Groups: map[string][]string{
		"A": {"Brazil", "Atlantis", "Brazil", "Brazil"},
	}}
	_, err := ResolveGroups(doc, l)
	if err == nil {
		t.Fatal("expected error for unmappable team")
	}
	if !strings.Contains(err.Error(), `"Atlantis"`) || !strings.Contains(err.Error(), "group A") {
		t.Errorf("error should name the team and group: %v", err)
	}
}

func TestResolveGroupsSizeCheck(t *testing.T) {
	l := registry.BuildLookups(&registry.Registry{Teams: []registry.Entry{
		{ID: 0, CanonicalName: "Brazil"},
	}})
	doc := &source.GroupsDocument{Groups: map[string][]string{
		"A": {"Brazil", "Brazil", "Brazil"},
	}}
	if _, err := ResolveGroups(doc, l); err == nil {
		t.Fatal("expected error for 3-team group")
	}
}
