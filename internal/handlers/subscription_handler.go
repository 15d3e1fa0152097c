package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tahmid42/playtube/backend/internal/engagement"
	"github.com/tahmid42/playtube/backend/internal/models"
	"github.com/tahmid42/playtube/backend/internal/pagination"
	"github.com/tahmid42/playtube/backend/internal/repositories"
)

// SubscriptionHandler handles channel subscriptions
type SubscriptionHandler struct {
	engine             *engagement.Engine
	userRepository     repositories.UserRepository
	relationRepository repositories.RelationRepository
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(
	engine *engagement.Engine,
	userRepo repositories.UserRepository,
	relationRepo repositories.RelationRepository,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		engine:             engine,
		userRepository:     userRepo,
		relationRepository: relationRepo,
	}
}

// RegisterSubscriptionRoutes registers subscription-related routes
func (h *SubscriptionHandler) RegisterSubscriptionRoutes(g *echo.Group) {
	g.POST("/subscriptions/toggle/:channel_id", h.ToggleSubscription)
	g.GET("/channels/:channel_id/subscribers", h.GetChannelSubscribers)
	g.GET("/users/:user_id/subscriptions", h.GetSubscribedChannels)
}

func parseUserID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	return uint(id), nil
}

// ToggleSubscription flips the caller's subscription to a channel.
// Subscribing to your own channel is rejected before any write.
func (h *SubscriptionHandler) ToggleSubscription(c echo.Context) error {
	actor := currentActor(c)

	channel, err := parseUserID(c.Param("channel_id"))
	if err != nil {
		return err
	}
	if _, err := h.userRepository.GetUserByID(channel); err != nil {
		return httpError(err)
	}

	active, err := h.engine.Toggle(c.Request().Context(), actor.ID, engagement.ChannelTarget(channel))
	if err != nil {
		return httpError(err)
	}

	message := "Unsubscribed successfully"
	if active {
		message = "Subscribed successfully"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": message,
		"data":    echo.Map{"subscribed": active},
	})
}

// resolveUsers keeps the edge-page order while swapping IDs for user records.
// Users deleted since the edge was written are silently skipped.
func (h *SubscriptionHandler) resolveUsers(ids []uint) ([]models.User, error) {
	users, err := h.userRepository.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	ordered := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}
	return ordered, nil
}

// GetChannelSubscribers retrieves one page of a channel's subscribers
func (h *SubscriptionHandler) GetChannelSubscribers(c echo.Context) error {
	channel, err := parseUserID(c.Param("channel_id"))
	if err != nil {
		return err
	}
	if _, err := h.userRepository.GetUserByID(channel); err != nil {
		return httpError(err)
	}

	params, err := pagination.Parse(c.QueryParam("page"), c.QueryParam("limit"), "", "")
	if err != nil {
		return httpError(err)
	}

	ids, total, err := h.relationRepository.ListSubscriberIDs(c.Request().Context(), channel, params)
	if err != nil {
		return httpError(err)
	}
	subscribers, err := h.resolveUsers(ids)
	if err != nil {
		return httpError(err)
	}

	window, err := pagination.NewWindow(subscribers, params, total)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": window})
}

// GetSubscribedChannels retrieves one page of the channels a user subscribes to
func (h *SubscriptionHandler) GetSubscribedChannels(c echo.Context) error {
	subscriber, err := parseUserID(c.Param("user_id"))
	if err != nil {
		return err
	}
	if _, err := h.userRepository.GetUserByID(subscriber); err != nil {
		return httpError(err)
	}

	params, err := pagination.Parse(c.QueryParam("page"), c.QueryParam("limit"), "", "")
	if err != nil {
		return httpError(err)
	}

	ids, total, err := h.relationRepository.ListSubscribedChannelIDs(c.Request().Context(), subscriber, params)
	if err != nil {
		return httpError(err)
	}
	channels, err := h.resolveUsers(ids)
	if err != nil {
		return httpError(err)
	}

	window, err := pagination.NewWindow(channels, params, total)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": window})
}
