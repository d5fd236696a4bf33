package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"motorheat/internal/models"
	"motorheat/internal/repository"
	"motorheat/internal/thermal"
)

// ErrModeNotInRun is returned by Curve when the run has no result for the mode.
var ErrModeNotInRun = errors.New("mode not present in run")

type RunsService struct {
	runRepo repository.RunRepo
}

func NewRunsService(runRepo repository.RunRepo) *RunsService {
	return &RunsService{runRepo: runRepo}
}

// Get returns a recorded run without curve samples.
func (s *RunsService) Get(ctx context.Context, id string) (models.SimulationRun, error) {
	run, err := s.runRepo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return models.SimulationRun{}, err
	}
	run.CreatedAt = toUTC(run.CreatedAt)
	return run.WithoutCurves(), nil
}

// List returns the most recent runs, newest first.
func (s *RunsService) List(ctx context.Context, limit int) ([]models.SimulationRun, error) {
	runs, err := s.runRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i := range runs {
		runs[i].CreatedAt = toUTC(runs[i].CreatedAt)
	}
	return runs, nil
}

// Curve returns the samples of one mode of a run.
func (s *RunsService) Curve(ctx context.Context, id string, mode thermal.Mode) ([]models.CurvePoint, error) {
	run, err := s.runRepo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	for _, m := range run.Modes {
		if m.Mode == string(mode) {
			return m.Curve, nil
		}
	}
	return nil, fmt.Errorf("%w: run %s has no %s result", ErrModeNotInRun, run.ID, mode)
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
