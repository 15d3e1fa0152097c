package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tahmid42/playtube/backend/internal/engagement"
	"github.com/tahmid42/playtube/backend/internal/repositories"
)

// LikeHandler handles like toggles across videos, comments and tweets
type LikeHandler struct {
	engine             *engagement.Engine
	videoRepository    repositories.VideoRepository
	commentRepository  repositories.CommentRepository
	tweetRepository    repositories.TweetRepository
	relationRepository repositories.RelationRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(
	engine *engagement.Engine,
	videoRepo repositories.VideoRepository,
	commentRepo repositories.CommentRepository,
	tweetRepo repositories.TweetRepository,
	relationRepo repositories.RelationRepository,
) *LikeHandler {
	return &LikeHandler{
		engine:             engine,
		videoRepository:    videoRepo,
		commentRepository:  commentRepo,
		tweetRepository:    tweetRepo,
		relationRepository: relationRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/likes/toggle/video/:video_id", h.ToggleVideoLike)
	g.POST("/likes/toggle/comment/:comment_id", h.ToggleCommentLike)
	g.POST("/likes/toggle/tweet/:tweet_id", h.ToggleTweetLike)
	g.GET("/likes/videos", h.GetLikedVideos)
}

func (h *LikeHandler) toggle(c echo.Context, target engagement.Target, onMsg, offMsg string) error {
	actor := currentActor(c)

	active, err := h.engine.Toggle(c.Request().Context(), actor.ID, target)
	if err != nil {
		return httpError(err)
	}

	message := offMsg
	if active {
		message = onMsg
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": message,
		"data":    echo.Map{"liked": active},
	})
}

// ToggleVideoLike flips the caller's like on a video
func (h *LikeHandler) ToggleVideoLike(c echo.Context) error {
	videoID := c.Param("video_id")
	if _, err := h.videoRepository.GetVideoByID(c.Request().Context(), videoID); err != nil {
		return httpError(err)
	}
	target := engagement.Target{Kind: engagement.TargetVideo, ID: videoID}
	return h.toggle(c, target, "Video liked", "Like removed")
}

// ToggleCommentLike flips the caller's like on a comment
func (h *LikeHandler) ToggleCommentLike(c echo.Context) error {
	commentID := c.Param("comment_id")
	if _, err := h.commentRepository.GetCommentByID(c.Request().Context(), commentID); err != nil {
		return httpError(err)
	}
	target := engagement.Target{Kind: engagement.TargetComment, ID: commentID}
	return h.toggle(c, target, "Comment liked", "Like removed from comment")
}

// ToggleTweetLike flips the caller's like on a tweet
func (h *LikeHandler) ToggleTweetLike(c echo.Context) error {
	tweetID := c.Param("tweet_id")
	if _, err := h.tweetRepository.GetTweetByID(c.Request().Context(), tweetID); err != nil {
		return httpError(err)
	}
	target := engagement.Target{Kind: engagement.TargetTweet, ID: tweetID}
	return h.toggle(c, target, "Tweet liked", "Like removed from tweet")
}

// GetLikedVideos retrieves the videos the caller has liked, newest like first
func (h *LikeHandler) GetLikedVideos(c echo.Context) error {
	actor := currentActor(c)
	ctx := c.Request().Context()

	ids, err := h.relationRepository.ListLikedVideoIDs(ctx, actor.ID)
	if err != nil {
		return httpError(err)
	}

	videos, err := h.videoRepository.GetVideosByIDs(ctx, ids)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"videos": videos, "count": len(videos)},
	})
}
