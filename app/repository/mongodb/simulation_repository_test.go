package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	models "student-records-api/app/models/mongodb"
	"student-records-api/app/service/grading"
)

func TestSimulationRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("Insert", func(mt *mtest.T) {
		repo := NewSimulationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Insert(context.Background(), models.Simulation{
			ID:      "sim-1",
			UserID:  7,
			Entries: []grading.Entry{{Label: "Final", Score: 15, Weight: 1}},
			Scale:   grading.DefaultScale,
		})
		assert.NoError(mt, err)
	})

	mt.Run("ListByUser", func(mt *mtest.T) {
		repo := NewSimulationRepository(mt.DB)
		created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "student_records.grade_simulations", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "sim-2"}, {Key: "user_id", Value: int64(7)}, {Key: "scale", Value: 20}, {Key: "created_at", Value: created}},
			bson.D{{Key: "_id", Value: "sim-1"}, {Key: "user_id", Value: int64(7)}, {Key: "scale", Value: 20}, {Key: "created_at", Value: created.Add(-time.Hour)}},
		))

		sims, err := repo.ListByUser(context.Background(), 7, 10)
		require.NoError(mt, err)
		require.Len(mt, sims, 2)
		assert.Equal(mt, "sim-2", sims[0].ID)
		assert.Equal(mt, int64(7), sims[1].UserID)
		assert.True(mt, created.Equal(sims[0].CreatedAt))
	})

	mt.Run("ListByUser empty", func(mt *mtest.T) {
		repo := NewSimulationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "student_records.grade_simulations", mtest.FirstBatch))

		sims, err := repo.ListByUser(context.Background(), 7, 10)
		require.NoError(mt, err)
		assert.NotNil(mt, sims)
		assert.Empty(mt, sims)
	})

	mt.Run("CountByUser", func(mt *mtest.T) {
		repo := NewSimulationRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "student_records.grade_simulations", mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(3)}},
		))

		n, err := repo.CountByUser(context.Background(), 7)
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), n)
	})
}
