package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tahmid42/playtube/backend/internal/models"
	"github.com/tahmid42/playtube/backend/internal/policy"
)

// currentActor extracts the authenticated identity placed in the context by
// the JWT middleware.
func currentActor(c echo.Context) policy.Actor {
	claims := c.Get("user").(*models.JwtCustomClaims)
	return policy.Actor{ID: claims.UserID, IsAdmin: claims.IsAdmin}
}

// httpError maps the sentinel error taxonomy to stable HTTP status classes.
// Anything unrecognized is a 500 with a generic message so storage internals
// never leak to the caller.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrSelfSubscription), errors.Is(err, models.ErrAlreadyExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
