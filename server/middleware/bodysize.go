package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/visitnote/errors"
)

// BodySizeLimit caps the request body at limit bytes. A declared length over
// the limit is rejected here; chunked bodies fail on read with
// *http.MaxBytesError, which handlers map to the same 413.
func BodySizeLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			appErr := errors.PayloadTooLarge(limit)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
