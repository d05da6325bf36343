package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/middleware"
	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/services"
)

// FollowHandler handles follow-related HTTP requests
type FollowHandler struct {
	social *services.SocialService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(social *services.SocialService) *FollowHandler {
	return &FollowHandler{social: social}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, limiter middleware.Limiter) {
	g.POST("/users/:id/follow", h.ToggleFollow, middleware.RequireUser, middleware.RateLimit(limiter, "follow"))
	g.GET("/users/:id/follow", h.GetFollowStatus)
	g.GET("/users/:id/stats", h.GetStats)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// ToggleFollow follows or unfollows :id as the caller.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	followedID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req models.FollowRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request payload")
	}
	followerID := getUserIDFromContext(c)
	if req.FollowerID != nil && *req.FollowerID != followerID {
		return apperr.Forbidden("you can only follow as yourself")
	}

	following, err := h.social.ToggleFollow(c.Request().Context(), followerID, followedID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.FollowStatus{IsFollowing: following})
}

// GetFollowStatus reports whether follower_id (default: the caller) follows :id.
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	followedID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	followerID := getUserIDFromContext(c)
	if raw := c.QueryParam("follower_id"); raw != "" {
		if followerID, err = parseID(raw, "follower_id"); err != nil {
			return err
		}
	}

	following, err := h.social.IsFollowing(c.Request().Context(), followerID, followedID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.FollowStatus{IsFollowing: following})
}

func (h *FollowHandler) GetStats(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	stats, err := h.social.Stats(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	users, err := h.social.Followers(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	users, err := h.social.Following(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
