package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/middleware"
	"github.com/anonto42/mediashare/backend/internal/models"
	"github.com/anonto42/mediashare/backend/internal/services"
)

// MediaHandler handles publishing, reading and deleting content
type MediaHandler struct {
	content *services.ContentService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(content *services.ContentService) *MediaHandler {
	return &MediaHandler{content: content}
}

// RegisterMediaRoutes registers content routes
func (h *MediaHandler) RegisterMediaRoutes(g *echo.Group) {
	g.POST("/media", h.CreateMedia, middleware.RequireUser)
	g.GET("/media/count", h.CountMedia)
	g.GET("/media/:id", h.GetMedia)
	g.DELETE("/media/:id", h.DeleteMedia, middleware.RequireUser)
	g.GET("/users/:id/media", h.GetUserMedia)
}

// CreateMedia accepts a multipart form with title, description, type,
// an optional "file" and an optional "thumbnail".
func (h *MediaHandler) CreateMedia(c echo.Context) error {
	var req models.CreateContentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid form payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := services.CreateContentInput{
		AuthorID:    getUserIDFromContext(c),
		Kind:        models.ContentKind(req.Kind),
		Title:       req.Title,
		Description: req.Description,
	}

	media, closeMedia, err := formUpload(c, "file")
	if err != nil {
		return err
	}
	defer closeMedia()
	thumb, closeThumb, err := formUpload(c, "thumbnail")
	if err != nil {
		return err
	}
	defer closeThumb()
	in.Media, in.Thumbnail = media, thumb

	details, err := h.content.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, details)
}

// formUpload opens an optional file part. The returned func closes it.
func formUpload(c echo.Context, field string) (*services.Upload, func(), error) {
	noop := func() {}
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, apperr.Validation("invalid " + field + " upload")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, apperr.Upstream("open "+field+" upload", err)
	}
	return &services.Upload{
		Filename:    fh.Filename,
		ContentType: contentType(fh),
		Size:        fh.Size,
		Body:        f,
	}, func() { f.Close() }, nil
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// GetMedia returns content details and counts the view.
func (h *MediaHandler) GetMedia(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	details, err := h.content.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

// DeleteMedia deletes content owned by the caller.
func (h *MediaHandler) DeleteMedia(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.content.Delete(c.Request().Context(), id, getUserIDFromContext(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *MediaHandler) CountMedia(c echo.Context) error {
	n, err := h.content.Count(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}

func (h *MediaHandler) GetUserMedia(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	list, err := h.content.ListByAuthor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}
