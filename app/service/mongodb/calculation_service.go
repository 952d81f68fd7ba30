package service

import (
	"strconv"
	"time"

	models "student-records-api/app/models/mongodb"
	repository "student-records-api/app/repository/mongodb"
	"student-records-api/app/service/grading"
	"student-records-api/utils"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	defaultSimulationLimit = 20
	maxSimulationLimit     = 100
)

// CalculationService runs grade simulations. When simulations is nil the
// results are returned but not logged.
type CalculationService struct {
	simulations repository.SimulationRepository
	logger      gokitlog.Logger
	now         func() time.Time
}

func NewCalculationService(simulations repository.SimulationRepository, logger gokitlog.Logger) *CalculationService {
	return &CalculationService{
		simulations: simulations,
		logger:      logger,
		now:         time.Now,
	}
}

// SimulateAverage evaluates a weighted set of grades for the caller.
func (s *CalculationService) SimulateAverage(c *fiber.Ctx) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, err.Error())
	}

	var req models.SimulationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	scale := grading.DefaultScale
	if req.Scale != nil {
		scale = *req.Scale
	}
	passingScore := grading.DefaultPassingScore
	if req.PassingScore != nil {
		passingScore = *req.PassingScore
	}

	entries := req.Entries()
	report, err := grading.Evaluate(entries, scale, passingScore)
	if grading.IsValidation(err) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to evaluate grades")
	}

	resp := fiber.Map{
		"success": true,
		"result":  report,
	}

	if s.simulations != nil {
		sim := models.Simulation{
			ID:        uuid.NewString(),
			UserID:    userID,
			Entries:   entries,
			Scale:     scale,
			Report:    *report,
			CreatedAt: s.now().UTC(),
		}
		// a logging failure never fails the calculation
		if err := s.simulations.Insert(c.Context(), sim); err != nil {
			level.Warn(s.logger).Log("msg", "failed to log simulation", "user_id", userID, "err", err)
		} else {
			resp["simulation_id"] = sim.ID
		}
	}

	return c.JSON(resp)
}

// SimulateSimple averages a plain list of scores. It needs no authentication.
func (s *CalculationService) SimulateSimple(c *fiber.Ctx) error {
	var req models.SimpleSimulationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	result, err := grading.SimpleAverage(req.Scores)
	if grading.IsValidation(err) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to compute average")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"average": result.Average,
		"passed":  result.Passed,
		"count":   result.Count,
	})
}

// GetSimulations lists the caller's most recent logged simulations.
func (s *CalculationService) GetSimulations(c *fiber.Ctx) error {
	if s.simulations == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Simulation logging is disabled")
	}

	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, err.Error())
	}

	limit := defaultSimulationLimit
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "limit must be a positive integer")
		}
	}
	if limit > maxSimulationLimit {
		limit = maxSimulationLimit
	}

	sims, err := s.simulations.ListByUser(c.Context(), userID, int64(limit))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch simulations")
	}
	total, err := s.simulations.CountByUser(c.Context(), userID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to count simulations")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": models.SimulationList{
			Total:       int(total),
			Simulations: sims,
		},
	})
}
