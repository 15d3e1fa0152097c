package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tahmid42/playtube/backend/internal/engagement"
)

// CounterHandler exposes the counter reconciliation operation. The cached
// engagement counters are an optimization; when one drifts (crash between an
// edge write and its counter adjust), this recomputes it from the edge rows.
type CounterHandler struct {
	engine *engagement.Engine
}

// NewCounterHandler creates a new CounterHandler
func NewCounterHandler(engine *engagement.Engine) *CounterHandler {
	return &CounterHandler{engine: engine}
}

// RegisterCounterRoutes registers the admin-only reconciliation route
func (h *CounterHandler) RegisterCounterRoutes(g *echo.Group) {
	g.POST("/admin/counters/:kind/:id/recompute", h.RecomputeCounter)
}

// RecomputeCounter recounts the relation edges of a target and overwrites its
// cached counter with the true value.
func (h *CounterHandler) RecomputeCounter(c echo.Context) error {
	actor := currentActor(c)
	if !actor.IsAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "Admin role required")
	}

	kind := engagement.TargetKind(c.Param("kind"))
	switch kind {
	case engagement.TargetVideo, engagement.TargetComment, engagement.TargetTweet, engagement.TargetChannel:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown counter target kind")
	}

	target := engagement.Target{Kind: kind, ID: c.Param("id")}
	count, err := h.engine.Recompute(c.Request().Context(), target)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Counter recomputed",
		"data":    echo.Map{"kind": kind, "id": target.ID, "count": count},
	})
}
