package handlers

import (
	"net/http"
	"strconv"

	"github.com/chirpnet/backend/internal/models"
	"github.com/chirpnet/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles user search and activity listings
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers user listing routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/search", h.SearchUsers)
	g.GET("/activity", h.GetUsersWithActivity)
}

// SearchUsers searches for users by a partial username or display name match
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query 'q' is required")
	}

	users, err := h.userRepository.SearchUsers(query, queryLimit(c, 20))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, publicUsers(users))
}

// GetUsersWithActivity returns users ordered by their most recent post
func (h *UserHandler) GetUsersWithActivity(c echo.Context) error {
	users, err := h.userRepository.GetUsersWithActivity(queryLimit(c, 10))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, publicUsers(users))
}

// queryLimit parses the optional "limit" query parameter
func queryLimit(c echo.Context, fallback int) int {
	raw := c.QueryParam("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}

func publicUsers(users []models.User) []models.PublicUser {
	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out
}
