package service

import (
	"context"

	"motorheat/internal/config"
	"motorheat/internal/logger"
	"motorheat/internal/models"
	"motorheat/internal/render"
	"motorheat/internal/repository"
	"motorheat/internal/thermal"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Simulator evaluates every duty mode of a motor and records the run.
type Simulator interface {
	Simulate(ctx context.Context, cfg models.MotorConfig) (models.SimulationRun, error)
}

// Runs exposes read-only access to recorded simulation runs.
type Runs interface {
	Get(ctx context.Context, id string) (models.SimulationRun, error)
	List(ctx context.Context, limit int) ([]models.SimulationRun, error)
	Curve(ctx context.Context, id string, mode thermal.Mode) ([]models.CurvePoint, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.RunEvent, error)
}

type Service struct {
	Simulator
	Runs
	EventLog
	Authorization
}

// NewService wires the repository layer and the renderer into concrete services.
func NewService(repos *repository.Repository, renderer render.Renderer, cfg config.Config, log *logger.Logger) *Service {
	return &Service{
		Simulator:     NewSimulationService(repos.RunRepo, repos.EventRepo, renderer, cfg.Render.OutputDir, log),
		Runs:          NewRunsService(repos.RunRepo),
		EventLog:      NewEventLogService(repos.EventRepo),
		Authorization: NewAuthService(repos.Auth, cfg.Auth.SigningKey, cfg.Auth.TokenTTL),
	}
}
