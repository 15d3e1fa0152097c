package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tahmid42/playtube/backend/internal/engagement"
	"github.com/tahmid42/playtube/backend/internal/models"
	"github.com/tahmid42/playtube/backend/internal/pagination"
	"github.com/tahmid42/playtube/backend/internal/policy"
	"github.com/tahmid42/playtube/backend/internal/repositories"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository  repositories.CommentRepository
	videoRepository    repositories.VideoRepository
	relationRepository repositories.RelationRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	videoRepo repositories.VideoRepository,
	relationRepo repositories.RelationRepository,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:  commentRepo,
		videoRepository:    videoRepo,
		relationRepository: relationRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/videos/:video_id/comments", h.AddComment)
	g.GET("/videos/:video_id/comments", h.GetVideoComments)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// AddComment creates a new comment on a video
func (h *CommentHandler) AddComment(c echo.Context) error {
	actor := currentActor(c)
	videoID := c.Param("video_id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Comment text cannot be empty")
	}

	// Verify the video exists before writing anything
	if _, err := h.videoRepository.GetVideoByID(c.Request().Context(), videoID); err != nil {
		return httpError(err)
	}

	comment := &models.Comment{
		VideoID: videoID,
		OwnerID: actor.ID,
		Text:    text,
	}
	if err := h.commentRepository.CreateComment(c.Request().Context(), comment); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Comment added successfully",
		"data":    comment,
	})
}

// GetVideoComments retrieves one page of a video's comments, newest first
func (h *CommentHandler) GetVideoComments(c echo.Context) error {
	videoID := c.Param("video_id")

	params, err := pagination.Parse(
		c.QueryParam("page"),
		c.QueryParam("limit"),
		c.QueryParam("sort_by"),
		c.QueryParam("sort_type"),
	)
	if err != nil {
		return httpError(err)
	}

	if _, err := h.videoRepository.GetVideoByID(c.Request().Context(), videoID); err != nil {
		return httpError(err)
	}

	comments, total, err := h.commentRepository.ListCommentsByVideo(c.Request().Context(), videoID, params)
	if err != nil {
		return httpError(err)
	}

	window, err := pagination.NewWindow(comments, params, total)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": window})
}

// UpdateComment edits a comment's text. Only the owner or an admin may edit;
// a missing comment is a 404, someone else's comment a 403.
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	actor := currentActor(c)
	commentID := c.Param("id")

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Comment text cannot be empty")
	}

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), commentID)
	if err != nil {
		return httpError(err)
	}
	if err := policy.Authorize(actor, comment); err != nil {
		return httpError(err)
	}

	comment.Text = text
	if err := h.commentRepository.UpdateCommentText(c.Request().Context(), comment); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Comment updated successfully",
		"data":    comment,
	})
}

// DeleteComment deletes a comment and the like edges pointing at it
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	actor := currentActor(c)
	commentID := c.Param("id")
	ctx := c.Request().Context()

	comment, err := h.commentRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		return httpError(err)
	}
	if err := policy.Authorize(actor, comment); err != nil {
		return httpError(err)
	}

	if err := h.commentRepository.DeleteComment(ctx, commentID); err != nil {
		return httpError(err)
	}

	target := engagement.Target{Kind: engagement.TargetComment, ID: commentID}
	if err := h.relationRepository.DeleteByTarget(ctx, target); err != nil {
		log.Printf("cascade: failed to delete likes of comment %s: %v", commentID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Comment deleted successfully",
	})
}
