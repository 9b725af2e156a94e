package repository

import (
	"context"
	"database/sql"
	"time"

	"crockpot_twin/internal/models"
)

// EventRepo is the append-only audit log of appliance activity.
type EventRepo interface {
	Append(ctx context.Context, e models.ApplianceEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ApplianceEvent, error)
}

// Authorization stores operator accounts.
type Authorization interface {
	Create(username, passwordHash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

type Repository struct {
	Events EventRepo
	Auth   Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Events: NewEventSQLite(db),
		Auth:   NewUserSQLite(db),
	}
}
