package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/middleware"
	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/services"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	interactions *services.InteractionService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(interactions *services.InteractionService) *CommentHandler {
	return &CommentHandler{interactions: interactions}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, limiter middleware.Limiter) {
	g.GET("/media/:id/comments", h.GetComments)
	g.POST("/media/:id/comments", h.CreateComment, middleware.RequireUser, middleware.RateLimit(limiter, "comment"))
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.interactions.CreateComment(c.Request().Context(), id, getUserIDFromContext(c), req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) GetComments(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	comments, err := h.interactions.ListComments(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}
