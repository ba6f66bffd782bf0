package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/usersvc/internal/api/dto"
	"github.com/martijn/usersvc/internal/core/domain"
	"github.com/martijn/usersvc/internal/logging"
)

const (
	MsgInternalServerError = "Internal Server Error"
	MsgInvalidRequestBody  = "Invalid request body"
)

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, dto.NewEnvelope(status, data, message))
}

// respondError writes the envelope for err. Only *domain.Error messages reach
// the caller; anything else is logged and reported as a generic 500.
func respondError(c *gin.Context, logger logging.Logger, op string, err error) {
	status, message := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed",
			"op", op,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
	}
	respond(c, status, nil, message)
}

// StatusFor maps an error to its HTTP status and the message safe to return.
func StatusFor(err error) (int, string) {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		return http.StatusInternalServerError, MsgInternalServerError
	}

	switch {
	case errors.Is(derr, domain.ErrValidation):
		return http.StatusBadRequest, derr.Message
	case errors.Is(derr, domain.ErrConflict):
		return http.StatusConflict, derr.Message
	case errors.Is(derr, domain.ErrNotFound):
		return http.StatusNotFound, derr.Message
	}
	return http.StatusInternalServerError, MsgInternalServerError
}
