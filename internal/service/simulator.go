package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"motorheat/internal/logger"
	"motorheat/internal/models"
	"motorheat/internal/render"
	"motorheat/internal/repository"
	"motorheat/internal/thermal"

	"github.com/google/uuid"
)

// SimulationService runs all duty modes of a motor, renders the curves and
// records the run with its event trail.
type SimulationService struct {
	runRepo   repository.RunRepo
	eventRepo repository.EventRepo
	renderer  render.Renderer
	outputDir string
	log       *logger.Logger

	now   func() time.Time
	newID func() string
}

func NewSimulationService(runRepo repository.RunRepo, eventRepo repository.EventRepo, renderer render.Renderer, outputDir string, log *logger.Logger) *SimulationService {
	if renderer == nil {
		renderer = render.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SimulationService{
		runRepo:   runRepo,
		eventRepo: eventRepo,
		renderer:  renderer,
		outputDir: outputDir,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// solved is one mode's model and its transient curve.
type solved struct {
	sol   thermal.Solution
	curve thermal.Curve
}

// Simulate solves the modes in their fixed order and only renders once all
// of them succeeded. A failed run is still recorded, with FAILED status,
// and nothing of it is rendered.
func (s *SimulationService) Simulate(ctx context.Context, cfg models.MotorConfig) (models.SimulationRun, error) {
	run := models.SimulationRun{
		ID:        s.newID(),
		CreatedAt: s.now().UTC(),
		Config:    cfg,
	}
	s.appendEvent(ctx, run.ID, models.EventRunStarted, "simulation started", map[string]any{
		"class":          cfg.Class,
		"rated_power_kw": cfg.RatedPowerKW,
		"speed_rpm":      cfg.SpeedRPM,
		"duty_percent":   cfg.IntermittentDutyPercent,
		"continuous_min": cfg.ContinuousDurationMin,
		"short_time_min": cfg.ShortTimeDurationMin,
	})

	results, err := s.solveAll(ctx, &run)
	if err != nil {
		return s.fail(ctx, run, err)
	}

	for i, r := range results {
		path, err := s.renderer.Render(ctx, plotFor(s.outputDir, run.ID, r.curve, r.sol.Ambient))
		if err != nil {
			s.removeOutput(run.ID)
			return s.fail(ctx, run, fmt.Errorf("render %s: %w", r.sol.Mode, err))
		}
		run.Modes[i].ImagePath = path
	}

	run.Status = models.RunCompleted
	if err := s.runRepo.Save(ctx, run); err != nil {
		return models.SimulationRun{}, fmt.Errorf("save run %s: %w", run.ID, err)
	}
	s.appendEvent(ctx, run.ID, models.EventRunCompleted, "simulation completed", map[string]any{
		"within_limit": run.WithinLimit,
		"max_temp_c":   run.MaxTempC,
	})
	s.log.Infow("simulation_completed", "run_id", run.ID, "within_limit", run.WithinLimit)
	return run, nil
}

// solveAll fills run with the limits and a result per mode. The short-time
// mode takes the nominal continuous time constant as its input.
func (s *SimulationService) solveAll(ctx context.Context, run *models.SimulationRun) ([]solved, error) {
	motor, err := run.Config.ToMotor()
	if err != nil {
		return nil, err
	}
	solver, err := thermal.NewSolver(motor)
	if err != nil {
		return nil, err
	}
	limits := solver.Limits()
	run.RiseLimitC = limits.RiseLimit
	run.MaxTempC = limits.MaxTemperature
	run.LossFactor = solver.LossFactor()
	run.WithinLimit = true

	grid := thermal.NewGridSpec(motor)
	results := make([]solved, 0, len(thermal.Modes))
	var nominalTau float64
	for _, mode := range thermal.Modes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := solveMode(solver, grid, mode, nominalTau)
		if err != nil {
			return nil, err
		}
		if mode == thermal.ModeContinuousNominal {
			nominalTau = r.sol.TimeConstant
		}
		results = append(results, r)

		res := toModeResult(r, limits.MaxTemperature)
		run.Modes = append(run.Modes, res)
		run.WithinLimit = run.WithinLimit && res.WithinLimit
		s.appendEvent(ctx, run.ID, models.EventModeSolved, fmt.Sprintf("%s solved", mode), map[string]any{
			"mode":            string(mode),
			"time_constant_s": res.TimeConstantS,
			"peak_temp_c":     res.PeakTempC,
			"within_limit":    res.WithinLimit,
		})
	}
	return results, nil
}

func solveMode(solver *thermal.Solver, grid thermal.GridSpec, mode thermal.Mode, nominalTau float64) (solved, error) {
	times, err := grid.Times(mode)
	if err != nil {
		return solved{}, err
	}
	motor := solver.Motor()

	var (
		sol   thermal.Solution
		curve thermal.Curve
	)
	switch mode {
	case thermal.ModeContinuousNominal:
		if sol, err = solver.ContinuousNominal(); err == nil {
			curve = thermal.ContinuousCurve(sol, times)
		}
	case thermal.ModeContinuousCooling:
		if sol, err = solver.ContinuousCooling(); err == nil {
			curve = thermal.ContinuousCurve(sol, times)
		}
	case thermal.ModeShortTime:
		if sol, err = solver.ShortTime(nominalTau); err == nil {
			curve, err = thermal.ShortTimeCurve(sol, times, motor.ShortTimeSeconds)
		}
	case thermal.ModePeriodic:
		if sol, err = solver.PeriodicIntermittent(); err == nil {
			curve, err = thermal.PeriodicCurve(sol, times, thermal.NewCycle(motor.DutyRatio))
		}
	default:
		err = fmt.Errorf("%w: unknown duty mode %q", thermal.ErrInvalidConfiguration, string(mode))
	}
	return solved{sol: sol, curve: curve}, err
}

func toModeResult(r solved, maxTemp float64) models.ModeResult {
	peak := r.curve.Peak()
	points := make([]models.CurvePoint, r.curve.Len())
	for i := range points {
		points[i] = models.CurvePoint{TimeS: r.curve.Time[i], TempC: r.curve.Temperature[i]}
	}
	return models.ModeResult{
		Mode:                   string(r.sol.Mode),
		AmbientC:               r.sol.Ambient,
		EquivalentPowerW:       r.sol.EquivalentPower,
		HeatLossPowerW:         r.sol.HeatLossPower,
		ThermalResistanceWPerC: r.sol.ThermalResistance,
		TimeConstantS:          r.sol.TimeConstant,
		AsymptoticRiseC:        r.sol.AsymptoticRise,
		PeakTempC:              peak,
		WithinLimit:            peak <= maxTemp,
		Samples:                len(points),
		Curve:                  points,
	}
}

// removeOutput deletes the images already written for a run that failed
// while rendering.
func (s *SimulationService) removeOutput(runID string) {
	if runID == "" {
		return
	}
	dir := filepath.Join(s.outputDir, runID)
	if err := os.RemoveAll(dir); err != nil {
		s.log.Warnw("remove_output_failed", "run_id", runID, "dir", dir, "err", err)
	}
}

// fail records run as FAILED and returns err wrapped with the run id.
func (s *SimulationService) fail(ctx context.Context, run models.SimulationRun, cause error) (models.SimulationRun, error) {
	run.Status = models.RunFailed
	run.Error = cause.Error()
	run.WithinLimit = false
	run.Modes = nil

	meta := map[string]any{"error": cause.Error()}
	var me *thermal.ModeError
	if errors.As(cause, &me) {
		run.FailedMode = string(me.Mode)
		meta["mode"] = string(me.Mode)
		meta["parameters"] = me.Detail
	}

	// the caller's context may already be done; record the failure anyway
	recCtx := context.WithoutCancel(ctx)
	if err := s.runRepo.Save(recCtx, run); err != nil {
		s.log.Errorw("save_failed_run", "run_id", run.ID, "err", err)
	}
	s.appendEvent(recCtx, run.ID, models.EventError, "simulation failed", meta)
	s.log.Warnw("simulation_failed", "run_id", run.ID, "mode", run.FailedMode, "err", cause)

	return run, fmt.Errorf("simulation %s: %w", run.ID, cause)
}

func (s *SimulationService) appendEvent(ctx context.Context, runID, typ, desc string, meta map[string]any) {
	err := s.eventRepo.Append(ctx, models.RunEvent{
		EventID:     uuid.NewString(),
		RunID:       runID,
		OccurredAt:  s.now().UTC(),
		Type:        typ,
		Description: desc,
		Metadata:    meta,
	})
	if err != nil {
		s.log.Warnw("append_event_failed", "run_id", runID, "type", typ, "err", err)
	}
}
