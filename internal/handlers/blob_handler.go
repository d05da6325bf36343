package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/pkg/storage"
)

// BlobOpener streams stored blobs by id.
type BlobOpener interface {
	Open(ctx context.Context, id string) (io.ReadCloser, string, error)
}

// BlobHandler serves uploads kept in GridFS.
type BlobHandler struct {
	blobs BlobOpener
}

func NewBlobHandler(blobs BlobOpener) *BlobHandler {
	return &BlobHandler{blobs: blobs}
}

func (h *BlobHandler) RegisterBlobRoutes(e *echo.Echo) {
	e.GET("/blobs/:id", h.GetBlob)
}

func (h *BlobHandler) GetBlob(c echo.Context) error {
	r, contentType, err := h.blobs.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			return apperr.NotFound("blob not found")
		}
		return apperr.Upstream("open blob", err)
	}
	defer func() {
		if err := r.Close(); err != nil {
			log.Printf("close blob %s: %v", c.Param("id"), err)
		}
	}()
	c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	return c.Stream(http.StatusOK, contentType, r)
}
