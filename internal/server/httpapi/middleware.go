package httpapi

import (
	"time"

	"github.com/dmitrijs2005/usermanager/internal/common"
	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/gofiber/fiber/v2"
)

const requestIDHeader = "X-Request-ID"

// requestLogger tags each request with an id and logs it once the handler
// returns.
func requestLogger(logger logging.Logger) fiber.Handler {
	logger = logger.With("module", "http_server")
	return func(c *fiber.Ctx) error {
		start := time.Now()

		id := c.Get(requestIDHeader)
		if id == "" {
			id, _ = common.MakeRandHexString(8)
		}
		c.Set(requestIDHeader, id)

		err := c.Next()
		if err != nil {
			// let the error handler pick the status before it is logged
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		logger.Info(c.UserContext(), "http request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"request_id", id,
			"duration", time.Since(start),
		)
		return nil
	}
}
