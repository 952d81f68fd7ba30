package repository

import (
	"context"
	"time"

	models "student-records-api/app/models/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	simulationCollection = "grade_simulations"
	queryTimeout         = 5 * time.Second
)

type SimulationRepository interface {
	Insert(ctx context.Context, sim models.Simulation) error
	ListByUser(ctx context.Context, userID int64, limit int64) ([]models.Simulation, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

type simulationRepository struct {
	col *mongo.Collection
}

func NewSimulationRepository(db *mongo.Database) SimulationRepository {
	return &simulationRepository{col: db.Collection(simulationCollection)}
}

func (r *simulationRepository) Insert(ctx context.Context, sim models.Simulation) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.col.InsertOne(queryCtx, sim)
	return err
}

// ListByUser returns the newest simulations first.
func (r *simulationRepository) ListByUser(ctx context.Context, userID int64, limit int64) ([]models.Simulation, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.col.Find(queryCtx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(queryCtx)

	sims := []models.Simulation{}
	if err := cursor.All(queryCtx, &sims); err != nil {
		return nil, err
	}
	return sims, nil
}

func (r *simulationRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return r.col.CountDocuments(queryCtx, bson.M{"user_id": userID})
}
