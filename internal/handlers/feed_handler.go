package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/services"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feed *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/media", h.GetFeed)
}

// GetFeed returns one page of the feed.
//
//	sort=newest|popular|most_viewed  cursor=<nextCursor>  limit=1..50
//	following=true (the caller) or following=<user id>
func (h *FeedHandler) GetFeed(c echo.Context) error {
	req := services.FeedRequest{
		Sort:   c.QueryParam("sort"),
		Cursor: c.QueryParam("cursor"),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return apperr.Validation("limit must be a number")
		}
		req.Limit = limit
	}

	switch following := strings.ToLower(c.QueryParam("following")); following {
	case "", "false", "0":
	case "true":
		req.FollowingOf = getUserIDFromContext(c)
		if req.FollowingOf == 0 {
			return apperr.Unauthorized("sign in to see the following feed")
		}
	default:
		id, err := parseID(following, "following")
		if err != nil {
			return err
		}
		req.FollowingOf = id
	}

	page, err := h.feed.Page(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}
