package repository

import (
	"context"

	models "student-records-api/app/models/postgresql"
	"student-records-api/database"
)

type UserRepository interface {
	Create(ctx context.Context, user models.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u models.User) (int64, error) {
	query := `INSERT INTO users (username, password_hash, email) VALUES ($1, $2, $3)`
	id, err := r.db.Insert(ctx, query, u.Username, u.PasswordHash, u.Email)
	return id, database.Classify(err)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, username, password_hash, email, created_at FROM users WHERE username = $1`, username)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, `SELECT id, username, password_hash, email, created_at FROM users WHERE id = $1`, id)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
