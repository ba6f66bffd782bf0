package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/usersvc/internal/api/dto"
	"github.com/martijn/usersvc/internal/logging"
)

const MsgInternalServerError = "Internal Server Error"

// ErrorHandlerMiddleware turns panics and unhandled gin errors into a 500
// envelope. The cause goes to the log only.
func ErrorHandlerMiddleware(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"panic", fmt.Sprint(rec),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewEnvelope(http.StatusInternalServerError, nil, MsgInternalServerError))
			}
		}()

		c.Next()

		// Check if there are any errors
		if len(c.Errors) > 0 && !c.Writer.Written() {
			logger.Error(c.Request.Context(), "request error",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", c.Errors.Last().Error(),
			)
			c.JSON(http.StatusInternalServerError,
				dto.NewEnvelope(http.StatusInternalServerError, nil, MsgInternalServerError))
		}
	}
}
