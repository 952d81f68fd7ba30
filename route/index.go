package route

import "github.com/gofiber/fiber/v2"

// SetupSystemRoutes registers the unauthenticated health and index endpoints.
func SetupSystemRoutes(app *fiber.App, mongoEnabled bool) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	app.Get("/api/v1", func(c *fiber.Ctx) error {
		endpoints := fiber.Map{
			"auth":        []string{"POST /api/v1/auth/login", "POST /api/v1/auth/refresh", "GET /api/v1/auth/profile"},
			"students":    []string{"GET|POST /api/v1/students", "GET|PUT|DELETE /api/v1/students/:id", "GET /api/v1/students/dni/:dni", "GET /api/v1/students/:id/history"},
			"courses":     []string{"GET|POST /api/v1/courses", "GET /api/v1/courses/statistics", "GET /api/v1/courses/:id"},
			"enrollments": []string{"POST /api/v1/enrollments", "POST /api/v1/enrollments/:id/grades"},
			"grades":      []string{"POST /api/v1/grades/simulate", "POST /api/v1/grades/simulate-simple"},
		}
		if mongoEnabled {
			endpoints["grades"] = append(endpoints["grades"].([]string), "GET /api/v1/grades/simulations")
		}
		return c.JSON(fiber.Map{
			"name":      "Student Records API",
			"version":   "1.0.0",
			"endpoints": endpoints,
		})
	})
}
