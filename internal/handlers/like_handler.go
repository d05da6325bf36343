package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/middleware"
	"github.com/anonto42/mediashare/backend/internal/services"
)

type LikeRequest struct {
	Action string `json:"action" validate:"omitempty,oneof=like unlike"`
}

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	interactions *services.InteractionService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(interactions *services.InteractionService) *LikeHandler {
	return &LikeHandler{interactions: interactions}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, limiter middleware.Limiter) {
	g.POST("/media/:id/like", h.ToggleLike, middleware.RequireUser, middleware.RateLimit(limiter, "like"))
}

// ToggleLike applies {"action": "like"|"unlike"} and echoes the new like count.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req LikeRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.interactions.ToggleLike(c.Request().Context(), id, getUserIDFromContext(c), services.LikeAction(req.Action))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
