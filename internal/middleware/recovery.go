package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/property-management-api/internal/errors"
	"go.uber.org/zap"
)

// Recovery turns panics into a 500 response. The stack trace is included in
// the response details only when exposeStack is true.
func Recovery(log *zap.Logger, exposeStack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := string(debug.Stack())
				log.Error("handler panic recovered",
					zap.String("request_id", GetRequestID(c)),
					zap.Any("error", rec),
					zap.String("stack", stack),
				)

				if exposeStack {
					apierrors.InternalErrorWithDetails(c, "Internal server error", gin.H{
						"panic": fmt.Sprint(rec),
						"stack": stack,
					})
				} else {
					apierrors.InternalError(c, "")
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
