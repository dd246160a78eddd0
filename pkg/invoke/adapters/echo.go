// Package adapters bridges method executors into web framework
// handlers. Each adapter drives ExecuteAsync and awaits the normalized
// result under the request context, so synchronous, future-returning,
// and custom-awaitable methods all serve requests through one path.
//
// Argument binding stays with the caller: an optional args hook
// extracts the invocation arguments from the framework's context.
package adapters

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toyz/invoke/pkg/invoke"
)

// EchoArgsFunc extracts invocation arguments from an Echo context
type EchoArgsFunc func(c echo.Context) ([]any, error)

// EchoHandler returns an Echo handler that invokes the executor's
// method on target. The awaited result is JSON-encoded with status 200;
// a completion-only result becomes 204. Errors from the method (or the
// args hook) are returned to Echo unchanged.
func EchoHandler(exec *invoke.MethodExecutor, target any, args EchoArgsFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var callArgs []any
		if args != nil {
			var err error
			callArgs, err = args(c)
			if err != nil {
				return err
			}
		}

		result, err := exec.ExecuteAsync(target, callArgs...).Await(c.Request().Context())
		if err != nil {
			return err
		}
		if result == nil {
			return c.NoContent(http.StatusNoContent)
		}
		return c.JSON(http.StatusOK, result)
	}
}
