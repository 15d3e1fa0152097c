package handlers

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tahmid42/playtube/backend/internal/engagement"
	"github.com/tahmid42/playtube/backend/internal/models"
	"github.com/tahmid42/playtube/backend/internal/pagination"
	"github.com/tahmid42/playtube/backend/internal/policy"
	"github.com/tahmid42/playtube/backend/internal/repositories"
)

// TweetHandler handles HTTP requests related to tweets
type TweetHandler struct {
	tweetRepository    repositories.TweetRepository
	relationRepository repositories.RelationRepository
}

// NewTweetHandler creates a new TweetHandler
func NewTweetHandler(tweetRepo repositories.TweetRepository, relationRepo repositories.RelationRepository) *TweetHandler {
	return &TweetHandler{
		tweetRepository:    tweetRepo,
		relationRepository: relationRepo,
	}
}

// RegisterTweetRoutes registers tweet-related routes
func (h *TweetHandler) RegisterTweetRoutes(g *echo.Group) {
	g.POST("/tweets", h.CreateTweet)
	g.GET("/users/:user_id/tweets", h.GetUserTweets)
	g.PATCH("/tweets/:id", h.UpdateTweet)
	g.DELETE("/tweets/:id", h.DeleteTweet)
}

// CreateTweet creates a new tweet
func (h *TweetHandler) CreateTweet(c echo.Context) error {
	actor := currentActor(c)

	var req models.CreateTweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tweet := &models.Tweet{
		OwnerID: actor.ID,
		Content: req.Content,
	}
	if err := h.tweetRepository.CreateTweet(c.Request().Context(), tweet); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Tweet created successfully",
		"data":    tweet,
	})
}

// GetUserTweets retrieves one page of a user's tweets
func (h *TweetHandler) GetUserTweets(c echo.Context) error {
	ownerID, err := parseUserID(c.Param("user_id"))
	if err != nil {
		return err
	}

	params, err := pagination.Parse(
		c.QueryParam("page"),
		c.QueryParam("limit"),
		c.QueryParam("sort_by"),
		c.QueryParam("sort_type"),
	)
	if err != nil {
		return httpError(err)
	}

	tweets, total, err := h.tweetRepository.ListTweetsByOwner(c.Request().Context(), ownerID, params)
	if err != nil {
		return httpError(err)
	}

	window, err := pagination.NewWindow(tweets, params, total)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": window})
}

// UpdateTweet edits a tweet's content
func (h *TweetHandler) UpdateTweet(c echo.Context) error {
	actor := currentActor(c)
	tweetID := c.Param("id")

	var req models.UpdateTweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tweet, err := h.tweetRepository.GetTweetByID(c.Request().Context(), tweetID)
	if err != nil {
		return httpError(err)
	}
	if err := policy.Authorize(actor, tweet); err != nil {
		return httpError(err)
	}

	tweet.Content = req.Content
	if err := h.tweetRepository.UpdateTweetContent(c.Request().Context(), tweet); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Tweet updated successfully",
		"data":    tweet,
	})
}

// DeleteTweet deletes a tweet and the like edges pointing at it
func (h *TweetHandler) DeleteTweet(c echo.Context) error {
	actor := currentActor(c)
	tweetID := c.Param("id")
	ctx := c.Request().Context()

	tweet, err := h.tweetRepository.GetTweetByID(ctx, tweetID)
	if err != nil {
		return httpError(err)
	}
	if err := policy.Authorize(actor, tweet); err != nil {
		return httpError(err)
	}

	if err := h.tweetRepository.DeleteTweet(ctx, tweetID); err != nil {
		return httpError(err)
	}

	target := engagement.Target{Kind: engagement.TargetTweet, ID: tweetID}
	if err := h.relationRepository.DeleteByTarget(ctx, target); err != nil {
		log.Printf("cascade: failed to delete likes of tweet %s: %v", tweetID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Tweet deleted successfully",
	})
}
