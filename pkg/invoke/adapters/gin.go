package adapters

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/toyz/invoke/pkg/invoke"
)

// GinArgsFunc extracts invocation arguments from a Gin context
type GinArgsFunc func(c *gin.Context) ([]any, error)

// GinHandler returns a Gin handler that invokes the executor's method
// on target. The awaited result is JSON-encoded with status 200; a
// completion-only result becomes 204. Errors are recorded on the
// context and reported as a 500 JSON body.
func GinHandler(exec *invoke.MethodExecutor, target any, args GinArgsFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var callArgs []any
		if args != nil {
			var err error
			callArgs, err = args(c)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		result, err := exec.ExecuteAsync(target, callArgs...).Await(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if result == nil {
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
