package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"voicescribe/internal/api/errors"
)

// ErrorHandler middleware handles errors consistently across the API. App
// errors attached to the context map onto their status codes; anything
// recovered from a panic becomes a generic internal error.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				requestID := c.GetString("request_id")

				var apiErr *errors.APIError
				switch err := recovered.(type) {
				case *errors.APIError:
					apiErr = err
				case error:
					logger.Error("Internal server error",
						"error", err.Error(),
						"request_id", requestID,
						"path", c.Request.URL.Path,
						"method", c.Request.Method,
					)
					apiErr = errors.NewInternalError("Internal server error")
				default:
					apiErr = errors.NewInternalError("Internal server error")
				}

				apiErr.RequestID = requestID
				c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
			}
		}()

		c.Next()

		// Errors attached by handlers via c.Error.
		if len(c.Errors) > 0 && !c.Writer.Written() {
			requestID := c.GetString("request_id")
			err := c.Errors.Last().Err

			if apiErr, ok := err.(*errors.APIError); ok {
				apiErr.RequestID = requestID
				c.JSON(apiErr.HTTPStatus(), apiErr)
				return
			}

			logger.Error("Unhandled handler error",
				"error", err.Error(),
				"request_id", requestID,
				"path", c.Request.URL.Path,
			)
			internal := errors.NewInternalError("Internal server error")
			internal.RequestID = requestID
			c.JSON(http.StatusInternalServerError, internal)
		}
	}
}
