package handlers

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/mediashare/backend/internal/apperr"
	"github.com/anonto42/mediashare/backend/internal/middleware"
)

// getUserIDFromContext returns the authenticated caller, or 0.
func getUserIDFromContext(c echo.Context) uint {
	return middleware.UserID(c)
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	return parseID(c.Param(name), name)
}

func parseID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation(fmt.Sprintf("invalid %s %q", name, raw))
	}
	return uint(id), nil
}
