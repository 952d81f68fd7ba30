package middleware

import (
	"time"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger tags each request with an id and logs one line when it completes.
func RequestLogger(logger gokitlog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(HeaderRequestID, requestID)
		c.Locals("request_id", requestID)

		err := c.Next()
		if err != nil {
			// let the error handler write the response so the status below is final
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		logFn := level.Info
		if status >= fiber.StatusInternalServerError {
			logFn = level.Error
		}
		logFn(logger).Log(
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
		)
		return nil
	}
}
