package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chirpnet/backend/internal/mentions"
	"github.com/chirpnet/backend/internal/middleware"
	"github.com/chirpnet/backend/internal/models"
	"github.com/chirpnet/backend/internal/repositories"
	"github.com/chirpnet/backend/internal/uploads"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests for the post feed
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	images         *uploads.ImageStore
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, images *uploads.ImageStore) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		images:         images,
	}
}

// RegisterPostRoutes registers feed post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetAllPosts)
	g.GET("/posts/:id", h.GetPostByID)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/user-posts", h.GetUserPosts)
	g.GET("/user-feed", h.GetUserFeed)
	g.POST("/posts/:id/share", h.SharePost)
}

// parsePostID reads the :id route parameter
func parsePostID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	return uint(id), nil
}

// CreatePost creates a new post from a multipart form with an optional
// image upload. Mentions are resolved from the content.
func (h *PostHandler) CreatePost(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var imageURL *string
	if file, err := c.FormFile("image"); err == nil {
		url, err := h.images.SavePostImage(file)
		if err != nil {
			return mapUploadError(err)
		}
		imageURL = &url
	}

	post := &models.Post{
		Content:          req.Content,
		ImageURL:         imageURL,
		UserID:           user.ID,
		MentionedUserIDs: mentions.Resolve(req.Content, h.userRepository),
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post.User = user
	return c.JSON(http.StatusCreated, post)
}

// GetAllPosts returns the whole feed newest-first with users, likes and
// comments attached
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPostByID returns a single post with its owning user attached
func (h *PostHandler) GetPostByID(c echo.Context) error {
	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, post)
}

// UpdatePost replaces a post's content, conditionally replaces its image
// reference, and recomputes mentions. Only the owning user may update.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	user := middleware.CurrentUser(c)

	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Existence is checked before ownership
	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if post.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only edit your own posts")
	}

	post.Content = req.Content

	// An uploaded file wins; otherwise a present imageUrl field sets or,
	// when empty, clears the image; an absent field leaves it untouched.
	if file, err := c.FormFile("image"); err == nil {
		url, err := h.images.SavePostImage(file)
		if err != nil {
			return mapUploadError(err)
		}
		post.ImageURL = &url
	} else if req.ImageURL != nil {
		if *req.ImageURL == "" {
			post.ImageURL = nil
		} else {
			post.ImageURL = req.ImageURL
		}
	}

	post.MentionedUserIDs = mentions.Resolve(req.Content, h.userRepository)

	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost removes a post along with its likes and comments. Only the
// owning user may delete.
func (h *PostHandler) DeletePost(c echo.Context) error {
	user := middleware.CurrentUser(c)

	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if post.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own posts")
	}

	if err := h.postRepository.DeletePost(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}

// GetUserPosts returns the authenticated user's posts newest-first
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	user := middleware.CurrentUser(c)

	posts, err := h.postRepository.GetPostsByUserID(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, posts)
}

// GetUserFeed returns the feed together with the requesting user
func (h *PostHandler) GetUserFeed(c echo.Context) error {
	user := middleware.CurrentUser(c)

	posts, err := h.postRepository.GetAllPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, models.UserFeedResponse{Posts: posts, User: user.Public()})
}

// SharePost copies an existing post's content and image into a new post
// owned by the requesting user. No back-reference to the original is kept.
func (h *PostHandler) SharePost(c echo.Context) error {
	user := middleware.CurrentUser(c)

	id, err := parsePostID(c)
	if err != nil {
		return err
	}

	original, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	shared := &models.Post{
		Content:  original.Content,
		ImageURL: original.ImageURL,
		UserID:   user.ID,
	}

	if err := h.postRepository.CreatePost(shared); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	shared.User = user
	return c.JSON(http.StatusCreated, shared)
}

// mapUploadError converts image validation failures to 400 responses
func mapUploadError(err error) error {
	if errors.Is(err, uploads.ErrImageTooLarge) || errors.Is(err, uploads.ErrInvalidImageType) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
