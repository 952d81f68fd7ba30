package route

import (
	repo "student-records-api/app/repository/mongodb"
	service "student-records-api/app/service/mongodb"

	gokitlog "github.com/go-kit/log"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupMongoRoutes registers the grade simulation endpoints. db may be nil,
// in which case simulations are computed but not logged and the listing
// endpoint is not registered.
func SetupMongoRoutes(app *fiber.App, db *mongo.Database, logger gokitlog.Logger, auth fiber.Handler) {
	var simulationRepo repo.SimulationRepository
	if db != nil {
		simulationRepo = repo.NewSimulationRepository(db)
	}
	calculationService := service.NewCalculationService(simulationRepo, logger)

	grades := app.Group("/api/v1/grades")
	grades.Post("/simulate-simple", calculationService.SimulateSimple)
	grades.Post("/simulate", auth, calculationService.SimulateAverage)
	if db != nil {
		grades.Get("/simulations", auth, calculationService.GetSimulations)
	}
}
