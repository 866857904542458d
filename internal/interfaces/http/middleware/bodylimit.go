package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/markethub/backend/internal/interfaces/http/dto"
)

// BodyLimit restricts the request body to maxBytes. Oversized uploads
// fail with 413 instead of buffering an unbounded feed in memory.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeBadRequest, "Request body too large"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
