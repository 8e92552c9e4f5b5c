// internal/api/handler/api/profiles_test.go
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flowintel/flowintel/internal/api/response"
	"github.com/flowintel/flowintel/internal/app"
	"github.com/flowintel/flowintel/internal/config"
	"github.com/flowintel/flowintel/internal/profile"
	"go.uber.org/zap"
)

func newTestApp() *app.App {
	repo := profile.NewMemoryRepository(profile.Fixtures()...)
	return app.New(config.Defaults(), repo, zap.NewNop(), nil)
}

// serve routes req through a mux so path values are populated.
func serve(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestProfilesHandler_List(t *testing.T) {
	handler := NewProfilesHandler(newTestApp())

	req := httptest.NewRequest("GET", "/api/v1/profiles", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)

	data := resp.Data.(map[string]any)
	profiles := data["profiles"].([]any)
	if len(profiles) != 4 {
		t.Errorf("expected 4 profiles, got %d", len(profiles))
	}
	if data["limit"].(float64) != defaultListLimit {
		t.Errorf("expected default limit, got %v", data["limit"])
	}

	first := profiles[0].(map[string]any)
	if first["id"] != "alameda" {
		t.Errorf("expected highest confidence first, got %v", first["id"])
	}
	if _, ok := first["decision"].(map[string]any); !ok {
		t.Error("expected decision in profile")
	}
}

func TestProfilesHandler_ListWithFilters(t *testing.T) {
	handler := NewProfilesHandler(newTestApp())

	req := httptest.NewRequest("GET", "/api/v1/profiles?kind=wallet&sort=label&limit=1", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)

	data := resp.Data.(map[string]any)
	profiles := data["profiles"].([]any)
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	if id := profiles[0].(map[string]any)["id"]; id != "fresh-0x1805" {
		t.Errorf("expected fresh-0x1805, got %v", id)
	}
}

func TestProfilesHandler_ListQuery(t *testing.T) {
	handler := NewProfilesHandler(newTestApp())

	req := httptest.NewRequest("GET", "/api/v1/profiles?q=VITALIK", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)

	profiles := resp.Data.(map[string]any)["profiles"].([]any)
	if len(profiles) != 1 {
		t.Errorf("expected 1 profile, got %d", len(profiles))
	}
}

func TestProfilesHandler_ListBadRequest(t *testing.T) {
	handler := NewProfilesHandler(newTestApp())

	for _, query := range []string{"kind=robot", "sort=pnl", "limit=-1", "offset=x"} {
		req := httptest.NewRequest("GET", "/api/v1/profiles?"+query, nil)
		w := httptest.NewRecorder()

		handler.List(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", query, w.Code)
		}
		var resp response.ErrorResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Error.Code != "BAD_REQUEST" {
			t.Errorf("%s: expected BAD_REQUEST, got %s", query, resp.Error.Code)
		}
	}
}

func TestProfilesHandler_Get(t *testing.T) {
	handler := NewProfilesHandler(newTestApp())

	req := httptest.NewRequest("GET", "/api/v1/profiles/vitalik", nil)
	w := serve("GET /api/v1/profiles/{id}", handler.Get, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp response.SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)

	data := resp.Data.(map[string]any)
	if data["label"] != "Vitalik.eth" {
		t.Errorf("expected Vitalik.eth, got %v", data["label"])
	}
	if len(data["periods"].([]any)) != 3 {
		t.Errorf("expected 3 periods, got %v", data["periods"])
	}
}

func TestProfilesHandler_GetNotFound(t *testing.T) {
	handler := NewProfilesHandler(newTestApp())

	req := httptest.NewRequest("GET", "/api/v1/profiles/nobody", nil)
	w := serve("GET /api/v1/profiles/{id}", handler.Get, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	var resp response.ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Code != "PROFILE_NOT_FOUND" {
		t.Errorf("expected PROFILE_NOT_FOUND, got %s", resp.Error.Code)
	}
}
