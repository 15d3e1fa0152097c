package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tahmid42/playtube/backend/internal/engagement"
	"github.com/tahmid42/playtube/backend/internal/models"
	"github.com/tahmid42/playtube/backend/internal/pagination"
	"github.com/tahmid42/playtube/backend/internal/repositories"
	"github.com/tahmid42/playtube/backend/validators"
)

// Func-field fakes for the repository interfaces; each test overrides only
// the calls its path exercises.

type fakeCommentRepo struct {
	getByIDFn func(ctx context.Context, id string) (*models.Comment, error)
	deleteFn  func(ctx context.Context, id string) error

	deleted []string
}

func (f *fakeCommentRepo) CreateComment(context.Context, *models.Comment) error { return nil }

func (f *fakeCommentRepo) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (f *fakeCommentRepo) ListCommentsByVideo(context.Context, string, pagination.Params) ([]models.Comment, int64, error) {
	return nil, 0, nil
}

func (f *fakeCommentRepo) UpdateCommentText(context.Context, *models.Comment) error { return nil }

func (f *fakeCommentRepo) DeleteComment(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeCommentRepo) DeleteCommentsByVideo(context.Context, string) ([]string, error) {
	return nil, nil
}

type fakeVideoRepo struct {
	getByIDFn func(ctx context.Context, id string) (*models.Video, error)
}

func (f *fakeVideoRepo) CreateVideo(context.Context, *models.Video) error { return nil }

func (f *fakeVideoRepo) GetVideoByID(ctx context.Context, id string) (*models.Video, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (f *fakeVideoRepo) GetVideosByIDs(context.Context, []string) ([]models.Video, error) {
	return nil, nil
}

func (f *fakeVideoRepo) ListVideos(context.Context, repositories.VideoFilter, pagination.Params) ([]models.Video, int64, error) {
	return nil, 0, nil
}

func (f *fakeVideoRepo) SaveVideo(context.Context, *models.Video) error { return nil }
func (f *fakeVideoRepo) DeleteVideo(context.Context, string) error      { return nil }
func (f *fakeVideoRepo) IncrementViews(context.Context, string) error   { return nil }

type fakeRelationRepo struct {
	deletedTargets []engagement.Target
}

func (f *fakeRelationRepo) Exists(context.Context, uint, engagement.Target) (bool, error) {
	return false, nil
}
func (f *fakeRelationRepo) Create(context.Context, uint, engagement.Target) error { return nil }
func (f *fakeRelationRepo) Remove(context.Context, uint, engagement.Target) error { return nil }
func (f *fakeRelationRepo) CountByTarget(context.Context, engagement.Target) (int64, error) {
	return 0, nil
}
func (f *fakeRelationRepo) EnsureIndexes(context.Context) error { return nil }
func (f *fakeRelationRepo) ListLikedVideoIDs(context.Context, uint) ([]string, error) {
	return nil, nil
}
func (f *fakeRelationRepo) ListSubscriberIDs(context.Context, uint, pagination.Params) ([]uint, int64, error) {
	return nil, 0, nil
}
func (f *fakeRelationRepo) ListSubscribedChannelIDs(context.Context, uint, pagination.Params) ([]uint, int64, error) {
	return nil, 0, nil
}
func (f *fakeRelationRepo) DeleteByTarget(_ context.Context, target engagement.Target) error {
	f.deletedTargets = append(f.deletedTargets, target)
	return nil
}
func (f *fakeRelationRepo) DeleteLikesByComments(context.Context, []string) error { return nil }

func deleteCommentContext(t *testing.T, actorID uint, isAdmin bool, commentID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(commentID)
	c.Set("user", &models.JwtCustomClaims{UserID: actorID, IsAdmin: isAdmin})
	return c, rec
}

func existingComment(ownerID uint) *models.Comment {
	return &models.Comment{
		ID:      primitive.NewObjectID(),
		VideoID: primitive.NewObjectID().Hex(),
		OwnerID: ownerID,
		Text:    "first",
	}
}

func TestDeleteCommentByOwner(t *testing.T) {
	commentRepo := &fakeCommentRepo{
		getByIDFn: func(_ context.Context, id string) (*models.Comment, error) {
			return existingComment(1), nil
		},
	}
	relationRepo := &fakeRelationRepo{}
	h := NewCommentHandler(commentRepo, &fakeVideoRepo{}, relationRepo)

	c, rec := deleteCommentContext(t, 1, false, "abc123")
	require.NoError(t, h.DeleteComment(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"abc123"}, commentRepo.deleted)

	// The like edges on the comment are cascaded away with it.
	require.Len(t, relationRepo.deletedTargets, 1)
	assert.Equal(t, engagement.TargetComment, relationRepo.deletedTargets[0].Kind)
	assert.Equal(t, "abc123", relationRepo.deletedTargets[0].ID)
}

func TestDeleteCommentNotOwnedIsForbiddenNotNotFound(t *testing.T) {
	commentRepo := &fakeCommentRepo{
		getByIDFn: func(_ context.Context, id string) (*models.Comment, error) {
			return existingComment(1), nil
		},
	}
	h := NewCommentHandler(commentRepo, &fakeVideoRepo{}, &fakeRelationRepo{})

	c, _ := deleteCommentContext(t, 2, false, "abc123")
	err := h.DeleteComment(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
	assert.Empty(t, commentRepo.deleted, "authorization failures must not write")
}

func TestDeleteCommentByAdminNonOwner(t *testing.T) {
	commentRepo := &fakeCommentRepo{
		getByIDFn: func(_ context.Context, id string) (*models.Comment, error) {
			return existingComment(1), nil
		},
	}
	h := NewCommentHandler(commentRepo, &fakeVideoRepo{}, &fakeRelationRepo{})

	c, rec := deleteCommentContext(t, 2, true, "abc123")
	require.NoError(t, h.DeleteComment(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteMissingCommentIsNotFound(t *testing.T) {
	h := NewCommentHandler(&fakeCommentRepo{}, &fakeVideoRepo{}, &fakeRelationRepo{})

	c, _ := deleteCommentContext(t, 1, false, "missing")
	err := h.DeleteComment(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestAddCommentRejectsBlankText(t *testing.T) {
	videoRepo := &fakeVideoRepo{
		getByIDFn: func(_ context.Context, id string) (*models.Video, error) {
			return &models.Video{OwnerID: 1}, nil
		},
	}
	commentRepo := &fakeCommentRepo{}
	h := NewCommentHandler(commentRepo, videoRepo, &fakeRelationRepo{})

	e := echo.New()
	e.Validator = validators.NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"   "}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("video_id")
	c.SetParamValues("v1")
	c.Set("user", &models.JwtCustomClaims{UserID: 1})

	err := h.AddComment(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
