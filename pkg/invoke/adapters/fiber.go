package adapters

import (
	"github.com/gofiber/fiber/v2"

	"github.com/toyz/invoke/pkg/invoke"
)

// FiberArgsFunc extracts invocation arguments from a Fiber context
type FiberArgsFunc func(c *fiber.Ctx) ([]any, error)

// FiberHandler returns a Fiber handler that invokes the executor's
// method on target. The awaited result is JSON-encoded with status 200;
// a completion-only result becomes 204. Errors from the method (or the
// args hook) are returned to Fiber's error handler unchanged.
func FiberHandler(exec *invoke.MethodExecutor, target any, args FiberArgsFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var callArgs []any
		if args != nil {
			var err error
			callArgs, err = args(c)
			if err != nil {
				return err
			}
		}

		result, err := exec.ExecuteAsync(target, callArgs...).Await(c.UserContext())
		if err != nil {
			return err
		}
		if result == nil {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.JSON(result)
	}
}
