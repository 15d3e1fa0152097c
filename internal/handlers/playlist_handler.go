package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tahmid42/playtube/backend/internal/models"
	"github.com/tahmid42/playtube/backend/internal/policy"
	"github.com/tahmid42/playtube/backend/internal/repositories"
)

// PlaylistHandler handles HTTP requests related to playlists
type PlaylistHandler struct {
	playlistRepository repositories.PlaylistRepository
	videoRepository    repositories.VideoRepository
}

// NewPlaylistHandler creates a new PlaylistHandler
func NewPlaylistHandler(playlistRepo repositories.PlaylistRepository, videoRepo repositories.VideoRepository) *PlaylistHandler {
	return &PlaylistHandler{
		playlistRepository: playlistRepo,
		videoRepository:    videoRepo,
	}
}

// RegisterPlaylistRoutes registers playlist-related routes
func (h *PlaylistHandler) RegisterPlaylistRoutes(g *echo.Group) {
	g.POST("/playlists", h.CreatePlaylist)
	g.GET("/playlists/:id", h.GetPlaylist)
	g.GET("/users/:user_id/playlists", h.GetUserPlaylists)
	g.PATCH("/playlists/:id", h.UpdatePlaylist)
	g.DELETE("/playlists/:id", h.DeletePlaylist)
	g.POST("/playlists/:id/videos/:video_id", h.AddVideoToPlaylist)
	g.DELETE("/playlists/:id/videos/:video_id", h.RemoveVideoFromPlaylist)
}

// CreatePlaylist creates a new empty playlist owned by the caller
func (h *PlaylistHandler) CreatePlaylist(c echo.Context) error {
	actor := currentActor(c)

	var req models.CreatePlaylistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	playlist := &models.Playlist{
		OwnerID:     actor.ID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.playlistRepository.CreatePlaylist(c.Request().Context(), playlist); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Playlist created successfully",
		"data":    playlist,
	})
}

// GetPlaylist retrieves a playlist with its videos populated
func (h *PlaylistHandler) GetPlaylist(c echo.Context) error {
	playlist, err := h.playlistRepository.GetPlaylistByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	videos, err := h.videoRepository.GetVideosByIDs(c.Request().Context(), playlist.VideoIDs)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"playlist": playlist, "videos": videos},
	})
}

// GetUserPlaylists retrieves all playlists of a user
func (h *PlaylistHandler) GetUserPlaylists(c echo.Context) error {
	ownerID, err := parseUserID(c.Param("user_id"))
	if err != nil {
		return err
	}

	playlists, err := h.playlistRepository.ListPlaylistsByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"playlists": playlists, "count": len(playlists)},
	})
}

// getOwnedPlaylist loads a playlist and gates the mutation on ownership
func (h *PlaylistHandler) getOwnedPlaylist(c echo.Context) (*models.Playlist, error) {
	playlist, err := h.playlistRepository.GetPlaylistByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(currentActor(c), playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// UpdatePlaylist renames a playlist or changes its description
func (h *PlaylistHandler) UpdatePlaylist(c echo.Context) error {
	var req models.UpdatePlaylistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	playlist, err := h.getOwnedPlaylist(c)
	if err != nil {
		return httpError(err)
	}

	if req.Name != "" {
		playlist.Name = req.Name
	}
	if req.Description != "" {
		playlist.Description = req.Description
	}

	if err := h.playlistRepository.UpdatePlaylistMeta(c.Request().Context(), playlist); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Playlist updated successfully",
		"data":    playlist,
	})
}

// DeletePlaylist deletes a playlist. The referenced videos are untouched.
func (h *PlaylistHandler) DeletePlaylist(c echo.Context) error {
	if _, err := h.getOwnedPlaylist(c); err != nil {
		return httpError(err)
	}

	if err := h.playlistRepository.DeletePlaylist(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Playlist deleted successfully",
	})
}

// AddVideoToPlaylist appends a video to a playlist the caller owns.
// Adding a video that is already present is a conflict.
func (h *PlaylistHandler) AddVideoToPlaylist(c echo.Context) error {
	videoID := c.Param("video_id")

	if _, err := h.getOwnedPlaylist(c); err != nil {
		return httpError(err)
	}
	if _, err := h.videoRepository.GetVideoByID(c.Request().Context(), videoID); err != nil {
		return httpError(err)
	}

	if err := h.playlistRepository.AddVideo(c.Request().Context(), c.Param("id"), videoID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Video added to playlist",
	})
}

// RemoveVideoFromPlaylist removes a video reference from a playlist the
// caller owns
func (h *PlaylistHandler) RemoveVideoFromPlaylist(c echo.Context) error {
	if _, err := h.getOwnedPlaylist(c); err != nil {
		return httpError(err)
	}

	if err := h.playlistRepository.RemoveVideo(c.Request().Context(), c.Param("id"), c.Param("video_id")); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Video removed from playlist",
	})
}
