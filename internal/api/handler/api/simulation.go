// internal/api/handler/api/simulation.go
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/flowintel/flowintel/internal/api/response"
	"github.com/flowintel/flowintel/internal/app"
	"github.com/flowintel/flowintel/internal/core"
	"github.com/flowintel/flowintel/internal/simulation"
)

// SimulationApp defines the interface needed from app.App.
type SimulationApp interface {
	Simulate(ctx context.Context, id string, capital float64, period core.Period) (*app.SimulationView, error)
}

// SimulationHandler handles what-if simulation requests.
type SimulationHandler struct {
	app SimulationApp
}

// NewSimulationHandler creates a new simulation handler.
func NewSimulationHandler(app SimulationApp) *SimulationHandler {
	return &SimulationHandler{app: app}
}

// Simulate runs the return-gap calculator for the profile in the path.
// Malformed capital or period values are substituted rather than rejected.
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	capital := simulation.ParseCapital(q.Get("capital"))
	period, err := core.ParsePeriod(q.Get("period"))
	if err != nil {
		// Unknown periods still reach the calculator, which falls back.
		period = core.Period(strings.ToLower(strings.TrimSpace(q.Get("period"))))
	}

	v, err := h.app.Simulate(r.Context(), r.PathValue("id"), capital, period)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, v)
}
