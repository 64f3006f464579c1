package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wc26sim/wcdata/internal/api/respond"
	"github.com/wc26sim/wcdata/internal/cache"
	"github.com/wc26sim/wcdata/internal/config"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store *Store
	cache *cache.Cache
	cfg   *config.Config
}

// NewHandler creates a Handler with shared dependencies.
func NewHandler(store *Store, c *cache.Cache, cfg *config.Config) *Handler {
	return &Handler{store: store, cache: c, cfg: cfg}
}

// Root serves API info at /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":       "World Cup 2026 Data API",
		"version":    "1.0.0",
		"status":     "running",
		"tournament": "FIFA World Cup 2026",
		"data_file":  h.store.Path(),
		"loaded_at":  h.store.LoadedAt().Format(time.RFC3339),
	})
}

// HealthCheck returns basic health status.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache reports cache statistics.
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, h.cache.Stats())
}

// GetTournament serves the merged document verbatim.
func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "tournament", cache.TTLTournament, func() ([]byte, error) {
		return h.store.Raw(), nil
	})
}

// GetTeams serves the team list sorted by id.
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "teams", cache.TTLTeams, func() ([]byte, error) {
		return json.Marshal(h.store.Data().Teams)
	})
}

// GetTeam serves a single team by id.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "teamID"))
	if err != nil || id < 0 || id >= config.TeamCount {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_TEAM_ID",
			"team id must be an integer between 0 and "+strconv.Itoa(config.TeamCount-1))
		return
	}
	for _, team := range h.store.Data().Teams {
		if team.ID == id {
			h.serveCached(w, r, "team:"+strconv.Itoa(id), cache.TTLTeams, func() ([]byte, error) {
				return json.Marshal(team)
			})
			return
		}
	}
	respond.WriteError(w, http.StatusNotFound, "TEAM_NOT_FOUND", "no team with that id")
}

// GetGroups serves the group assignments.
func (h *Handler) GetGroups(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "groups", cache.TTLTeams, func() ([]byte, error) {
		return json.Marshal(h.store.Data().Groups)
	})
}

// GetValidation serves the validation report from the last load.
func (h *Handler) GetValidation(w http.ResponseWriter, r *http.Request) {
	report := h.store.Report()
	checks := make([]map[string]interface{}, 0, len(report.Checks))
	for _, c := range report.Checks {
		entry := map[string]interface{}{"name": c.Name, "passed": c.OK}
		if c.Detail != "" {
			entry["detail"] = c.Detail
		}
		checks = append(checks, entry)
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"valid":  report.Valid(),
		"passed": report.PassedCount(),
		"total":  len(report.Checks),
		"checks": checks,
	})
}

// serveCached answers from the cache when possible, honoring If-None-Match.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, build func() ([]byte, error)) {
	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	data, err := build()
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", err.Error())
		return
	}
	etag := h.cache.Set(key, data, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}
