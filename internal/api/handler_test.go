package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/wc26sim/wcdata/internal/cache"
	"github.com/wc26sim/wcdata/internal/config"
	"github.com/wc26sim/wcdata/internal/model"
)

func writeValidDoc(t *testing.T) string {
	t.Helper()
	d := &model.TournamentData{}
	for i := 0; i < 48; i++ {
		d.Teams = append(d.Teams, model.Team{
			ID:                  i,
			Name:                fmt.Sprintf("Nation %02d", i),
			Code:                fmt.Sprintf("A%c%c", rune('A'+i/26), rune('A'+i%26)),
			Confederation:       model.UEFA,
			EloRating:           1600 + float64(i),
			MarketValueMillions: 100,
			FIFARanking:         i + 1,
		})
	}
	for g := 0; g < 12; g++ {
		d.Groups = append(d.Groups, model.Group{
			ID:    string(rune('A' + g)),
			Teams: []int{g * 4, g*4 + 1, g*4 + 2, g*4 + 3},
		})
	}
	raw, err := d.Encode()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "teams.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	store := NewStore(writeValidDoc(t))
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	cfg := config.Load()
	return NewRouter(store, cache.New(true), cfg)
}

func get(t *testing.T, router http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStoreRejectsInvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.json")
	if err := os.WriteFile(path, []byte(`{"teams": [], "groups": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := NewStore(path).Load(); err == nil {
		t.Fatal("an empty tournament document must be refused")
	}
}

func TestGetTournament(t *testing.T) {
	router := testRouter(t)
	rec := get(t, router, "/api/v1/tournament", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	var doc struct {
		Teams  []json.RawMessage `json:"teams"`
		Groups []json.RawMessage `json:"groups"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Teams) != 48 || len(doc.Groups) != 12 {
		t.Errorf("served %d teams, %d groups", len(doc.Teams), len(doc.Groups))
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("missing ETag header")
	}
}

func TestETagRoundTrip(t *testing.T) {
	router := testRouter(t)
	first := get(t, router, "/api/v1/teams", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("status %d", first.Code)
	}
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	second := get(t, router, "/api/v1/teams", map[string]string{"If-None-Match": etag})
	if second.Code != http.StatusNotModified {
		t.Fatalf("status %d, want 304", second.Code)
	}
}

func TestCacheHitHeader(t *testing.T) {
	router := testRouter(t)
	first := get(t, router, "/api/v1/groups", nil)
	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("first request X-Cache = %q, want MISS", got)
	}
	second := get(t, router, "/api/v1/groups", nil)
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("second request X-Cache = %q, want HIT", got)
	}
}

func TestGetTeam(t *testing.T) {
	router := testRouter(t)
	rec := get(t, router, "/api/v1/teams/7", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var team model.Team
	if err := json.Unmarshal(rec.Body.Bytes(), &team); err != nil {
		t.Fatal(err)
	}
	if team.ID != 7 || team.Name != "Nation 07" {
		t.Errorf("team = %+v", team)
	}
}

func TestGetTeamBadID(t *testing.T) {
	router := testRouter(t)
	for _, path := range []string{"/api/v1/teams/abc", "/api/v1/teams/-1", "/api/v1/teams/48"} {
		rec := get(t, router, path, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", path, rec.Code)
		}
	}
}

func TestGetValidation(t *testing.T) {
	router := testRouter(t)
	rec := get(t, router, "/api/v1/validation", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var report struct {
		Valid  bool `json:"valid"`
		Passed int  `json:"passed"`
		Total  int  `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if !report.Valid || report.Passed != report.Total || report.Total == 0 {
		t.Errorf("report = %+v", report)
	}
}

func TestHealth(t *testing.T) {
	router := testRouter(t)
	if rec := get(t, router, "/health", nil); rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if rec := get(t, router, "/health/cache", nil); rec.Code != http.StatusOK {
		t.Fatalf("cache health status %d", rec.Code)
	}
}
