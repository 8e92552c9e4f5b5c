// internal/api/handler/api/profiles.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/flowintel/flowintel/internal/api/response"
	"github.com/flowintel/flowintel/internal/app"
	"github.com/flowintel/flowintel/internal/core"
	"github.com/flowintel/flowintel/internal/profile"
)

const defaultListLimit = 50

// ProfilesApp defines the interface needed from app.App.
type ProfilesApp interface {
	Profile(ctx context.Context, id string) (*app.ProfileView, error)
	Profiles(ctx context.Context, filter profile.ListFilter) ([]app.ProfileView, error)
}

// ProfilesHandler handles profile API requests.
type ProfilesHandler struct {
	app ProfilesApp
}

// NewProfilesHandler creates a new profiles handler.
func NewProfilesHandler(app ProfilesApp) *ProfilesHandler {
	return &ProfilesHandler{app: app}
}

// List returns profiles matching query parameters.
func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	profiles, err := h.app.Profiles(r.Context(), filter)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"profiles": profiles,
		"count":    len(profiles),
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

// Get returns a single profile with its decision score.
func (h *ProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.app.Profile(r.Context(), r.PathValue("id"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, p)
}

func parseListFilter(r *http.Request) (profile.ListFilter, error) {
	q := r.URL.Query()

	filter := profile.ListFilter{
		Query: q.Get("q"),
		Limit: defaultListLimit,
	}

	if kind := q.Get("kind"); kind != "" {
		filter.Kind = core.SubjectKind(kind)
		if !filter.Kind.IsValid() {
			return filter, badRequest("unknown kind %q", kind)
		}
	}

	switch sortBy := profile.SortField(q.Get("sort")); sortBy {
	case "", profile.SortConfidence, profile.SortLabel, profile.SortScore:
		filter.SortBy = sortBy
	default:
		return filter, badRequest("unknown sort %q", sortBy)
	}

	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return filter, badRequest("invalid limit %q", limit)
		}
		filter.Limit = n
	}

	if offset := q.Get("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			return filter, badRequest("invalid offset %q", offset)
		}
		filter.Offset = n
	}

	return filter, nil
}

func badRequest(format string, args ...any) error {
	return core.WrapError(core.ErrBadRequest, fmt.Errorf(format, args...))
}
