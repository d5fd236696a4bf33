package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"motorheat/internal/models"
)

// ErrRunNotFound is returned by RunRepo.Get for unknown ids.
var ErrRunNotFound = errors.New("simulation run not found")

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// RunRepo stores simulation runs together with their mode results and curves.
type RunRepo interface {
	Save(ctx context.Context, run models.SimulationRun) error
	Get(ctx context.Context, id string) (models.SimulationRun, error)
	List(ctx context.Context, limit int) ([]models.SimulationRun, error)
}

// EventFilter narrows EventRepo.List. Zero fields do not filter.
type EventFilter struct {
	From  time.Time
	To    time.Time
	Type  string
	RunID string
}

type EventRepo interface {
	Append(ctx context.Context, e models.RunEvent) error
	List(ctx context.Context, f EventFilter) ([]models.RunEvent, error)
}

type Repository struct {
	RunRepo   RunRepo
	EventRepo EventRepo
	Auth      Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		RunRepo:   NewRunSQLite(db),
		EventRepo: NewEventSQLite(db),
		Auth:      NewUserRepository(db),
	}
}
