package fiber

import (
	"errors"
	"time"

	"student-records-api/middleware"
	"student-records-api/utils"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const (
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 30 * time.Second
	ShutdownTimeout = 5 * time.Second
)

func SetupFiber(logger gokitlog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Student Records API",
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		ErrorHandler: errorHandler(logger),
	})

	app.Use(middleware.RequestLogger(logger))
	app.Use(recover.New())
	app.Use(cors.New())

	return app
}

// errorHandler renders errors that escaped a handler, including unknown
// routes and recovered panics.
func errorHandler(logger gokitlog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			level.Error(logger).Log("msg", "request failed", "path", c.Path(), "err", err)
		}
		return utils.ErrorResponse(c, code, message)
	}
}
