package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tahmid42/playtube/backend/internal/repositories"
)

// UserHandler handles channel profile requests
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers user profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetMe)
	g.GET("/users/:user_id", h.GetChannel)
}

// GetMe retrieves the caller's own profile
func (h *UserHandler) GetMe(c echo.Context) error {
	actor := currentActor(c)

	user, err := h.userRepository.GetUserByID(actor.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}

// GetChannel retrieves a channel profile, including the cached subscriber count
func (h *UserHandler) GetChannel(c echo.Context) error {
	userID, err := parseUserID(c.Param("user_id"))
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user})
}
