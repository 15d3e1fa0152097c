package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tahmid42/playtube/backend/internal/engagement"
	"github.com/tahmid42/playtube/backend/internal/models"
	"github.com/tahmid42/playtube/backend/internal/pagination"
	"github.com/tahmid42/playtube/backend/internal/policy"
	"github.com/tahmid42/playtube/backend/internal/repositories"
)

// VideoHandler handles HTTP requests related to videos
type VideoHandler struct {
	videoRepository    repositories.VideoRepository
	commentRepository  repositories.CommentRepository
	relationRepository repositories.RelationRepository
	playlistRepository repositories.PlaylistRepository
}

// NewVideoHandler creates a new VideoHandler
func NewVideoHandler(
	videoRepo repositories.VideoRepository,
	commentRepo repositories.CommentRepository,
	relationRepo repositories.RelationRepository,
	playlistRepo repositories.PlaylistRepository,
) *VideoHandler {
	return &VideoHandler{
		videoRepository:    videoRepo,
		commentRepository:  commentRepo,
		relationRepository: relationRepo,
		playlistRepository: playlistRepo,
	}
}

// RegisterVideoRoutes registers video-related routes
func (h *VideoHandler) RegisterVideoRoutes(g *echo.Group) {
	g.POST("/videos", h.PublishVideo)
	g.GET("/videos", h.ListVideos)
	g.GET("/videos/:video_id", h.GetVideo)
	g.PATCH("/videos/:video_id", h.UpdateVideo)
	g.DELETE("/videos/:video_id", h.DeleteVideo)
	g.PATCH("/videos/toggle/publish/:video_id", h.TogglePublishStatus)
}

// PublishVideo records a newly uploaded video's metadata. Upload and
// transcoding happen outside this API; only the resulting URLs arrive here.
func (h *VideoHandler) PublishVideo(c echo.Context) error {
	actor := currentActor(c)

	var req models.PublishVideoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	video := &models.Video{
		OwnerID:      actor.ID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
		IsPublished:  true,
	}
	if err := h.videoRepository.CreateVideo(c.Request().Context(), video); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Video published successfully",
		"data":    video,
	})
}

// ListVideos retrieves videos filtered by owner and/or a case-insensitive
// title/description search, sorted and paginated.
func (h *VideoHandler) ListVideos(c echo.Context) error {
	params, err := pagination.Parse(
		c.QueryParam("page"),
		c.QueryParam("limit"),
		c.QueryParam("sort_by"),
		c.QueryParam("sort_type"),
	)
	if err != nil {
		return httpError(err)
	}

	filter := repositories.VideoFilter{Query: c.QueryParam("query")}
	if raw := c.QueryParam("user_id"); raw != "" {
		ownerID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid user_id filter")
		}
		filter.OwnerID = uint(ownerID)
	}

	videos, total, err := h.videoRepository.ListVideos(c.Request().Context(), filter, params)
	if err != nil {
		return httpError(err)
	}

	window, err := pagination.NewWindow(videos, params, total)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": window})
}

// GetVideo retrieves a single video and bumps its view counter
func (h *VideoHandler) GetVideo(c echo.Context) error {
	videoID := c.Param("video_id")

	video, err := h.videoRepository.GetVideoByID(c.Request().Context(), videoID)
	if err != nil {
		return httpError(err)
	}

	if err := h.videoRepository.IncrementViews(c.Request().Context(), videoID); err != nil {
		log.Printf("failed to increment views for video %s: %v", videoID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": video})
}

// UpdateVideo updates a video's title, description or thumbnail
func (h *VideoHandler) UpdateVideo(c echo.Context) error {
	actor := currentActor(c)
	videoID := c.Param("video_id")

	var req models.UpdateVideoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	video, err := h.videoRepository.GetVideoByID(c.Request().Context(), videoID)
	if err != nil {
		return httpError(err)
	}
	if err := policy.Authorize(actor, video); err != nil {
		return httpError(err)
	}

	if req.Title != "" {
		video.Title = req.Title
	}
	if req.Description != "" {
		video.Description = req.Description
	}
	if req.ThumbnailURL != "" {
		video.ThumbnailURL = req.ThumbnailURL
	}

	if err := h.videoRepository.SaveVideo(c.Request().Context(), video); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Video updated successfully",
		"data":    video,
	})
}

// DeleteVideo deletes a video and cascades to its dependents: comments, like
// edges on the video and those comments, and playlist references. The cascade
// runs synchronously after the owning document is gone; each step is a
// bounded storage call.
func (h *VideoHandler) DeleteVideo(c echo.Context) error {
	actor := currentActor(c)
	videoID := c.Param("video_id")
	ctx := c.Request().Context()

	video, err := h.videoRepository.GetVideoByID(ctx, videoID)
	if err != nil {
		return httpError(err)
	}
	if err := policy.Authorize(actor, video); err != nil {
		return httpError(err)
	}

	if err := h.videoRepository.DeleteVideo(ctx, videoID); err != nil {
		return httpError(err)
	}

	videoTarget := engagement.Target{Kind: engagement.TargetVideo, ID: videoID}
	if err := h.relationRepository.DeleteByTarget(ctx, videoTarget); err != nil {
		log.Printf("cascade: failed to delete likes of video %s: %v", videoID, err)
	}
	commentIDs, err := h.commentRepository.DeleteCommentsByVideo(ctx, videoID)
	if err != nil {
		log.Printf("cascade: failed to delete comments of video %s: %v", videoID, err)
	} else if err := h.relationRepository.DeleteLikesByComments(ctx, commentIDs); err != nil {
		log.Printf("cascade: failed to delete comment likes of video %s: %v", videoID, err)
	}
	if err := h.playlistRepository.RemoveVideoFromAll(ctx, videoID); err != nil {
		log.Printf("cascade: failed to remove video %s from playlists: %v", videoID, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Video deleted successfully",
	})
}

// TogglePublishStatus flips a video between published and unpublished
func (h *VideoHandler) TogglePublishStatus(c echo.Context) error {
	actor := currentActor(c)
	videoID := c.Param("video_id")

	video, err := h.videoRepository.GetVideoByID(c.Request().Context(), videoID)
	if err != nil {
		return httpError(err)
	}
	if err := policy.Authorize(actor, video); err != nil {
		return httpError(err)
	}

	video.IsPublished = !video.IsPublished
	if err := h.videoRepository.SaveVideo(c.Request().Context(), video); err != nil {
		return httpError(err)
	}

	message := "Video unpublished successfully"
	if video.IsPublished {
		message = "Video published successfully"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": message,
		"data":    video,
	})
}
