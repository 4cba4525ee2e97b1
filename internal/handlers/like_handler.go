package handlers

import (
	"errors"
	"net/http"

	"github.com/chirpnet/backend/internal/middleware"
	"github.com/chirpnet/backend/internal/models"
	"github.com/chirpnet/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	postRepository repositories.PostRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		postRepository: postRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
}

// ToggleLike creates the like if absent and removes it if present. The
// count in the response is recounted from the store after the mutation.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	user := middleware.CurrentUser(c)

	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	_, err = h.likeRepository.GetLike(postID, user.ID)
	switch {
	case err == nil:
		// Unlike. A concurrent toggle may have removed the row already;
		// the outcome is the same either way.
		if err := h.likeRepository.DeleteLike(postID, user.ID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return h.respond(c, postID, "Post unliked", false)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Like. The unique (post, user) index rejects the second of two
		// racing creates; that loser is treated as a no-op.
		like := &models.Like{PostID: postID, UserID: user.ID}
		if err := h.likeRepository.CreateLike(like); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return h.respond(c, postID, "Post liked", true)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func (h *LikeHandler) respond(c echo.Context, postID uint, message string, liked bool) error {
	count, err := h.likeRepository.GetLikesCountByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, models.ToggleLikeResponse{
		Message:    message,
		Liked:      liked,
		LikesCount: count,
	})
}
