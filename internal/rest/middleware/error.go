package middleware

import (
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors attached to the gin context into the standard
// error response shape. Handlers call c.Error(err) and return; this runs
// after them and writes the body.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
}
