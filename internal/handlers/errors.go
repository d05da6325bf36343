package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/mediashare/backend/internal/apperr"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Kind    apperr.Kind `json:"kind"`
	Message string      `json:"message"`
}

// ErrorHandler renders apperr and echo errors as ErrorBody.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		status  int
		kind    apperr.Kind
		message string
		he      *echo.HTTPError
	)
	if errors.As(err, &he) {
		status = he.Code
		kind = apperr.KindForStatus(he.Code)
		message = fmt.Sprint(he.Message)
	} else {
		kind = apperr.KindOf(err)
		status = apperr.Status(kind)
		message = apperr.Message(err)
	}
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, ErrorBody{Error: ErrorDetail{Kind: kind, Message: message}})
	}
	if err != nil {
		log.Printf("write error response: %v", err)
	}
}
