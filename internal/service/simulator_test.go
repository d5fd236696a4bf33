package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"motorheat/internal/models"
	"motorheat/internal/render"
	"motorheat/internal/repository"
	"motorheat/internal/thermal"
)

// ---- Test doubles ----

// eventRecorder is a repository.EventRepo that keeps every appended event.
type eventRecorder struct {
	events []models.RunEvent
}

func (e *eventRecorder) Append(ctx context.Context, ev models.RunEvent) error {
	e.events = append(e.events, ev)
	return nil
}

func (e *eventRecorder) List(ctx context.Context, f repository.EventFilter) ([]models.RunEvent, error) {
	return e.events, nil
}

func (e *eventRecorder) types() []string {
	out := make([]string, len(e.events))
	for i, ev := range e.events {
		out[i] = ev.Type
	}
	return out
}

// renderStub records the plots it is asked to draw.
type renderStub struct {
	plots []render.Plot
	err   error
}

func (r *renderStub) Render(ctx context.Context, p render.Plot) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.plots = append(r.plots, p)
	return p.Path + ".png", nil
}

func referenceConfig() models.MotorConfig {
	return models.MotorConfig{
		Class:                   "F",
		RatedPowerKW:            3,
		EfficiencyPercent:       82,
		MassKg:                  34,
		SpeedRPM:                1500,
		ContinuousDurationMin:   180,
		ShortTimeDurationMin:    60,
		IntermittentDutyPercent: 40,
	}
}

type simFixture struct {
	svc      *SimulationService
	runs     *runRepoStub
	events   *eventRecorder
	renderer *renderStub
}

func newSimFixture() simFixture {
	f := simFixture{runs: newRunRepoStub(), events: &eventRecorder{}, renderer: &renderStub{}}
	f.svc = NewSimulationService(f.runs, f.events, f.renderer, "out", nil)
	f.svc.newID = func() string { return "run-42" }
	f.svc.now = func() time.Time { return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC) }
	return f
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ---- Tests ----

func TestSimulate_ReferenceMotor(t *testing.T) {
	f := newSimFixture()

	run, err := f.svc.Simulate(context.Background(), referenceConfig())
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if run.ID != "run-42" || run.Status != models.RunCompleted {
		t.Fatalf("unexpected run header: id=%s status=%s", run.ID, run.Status)
	}
	if run.RiseLimitC != 110 || run.MaxTempC != 150 || run.LossFactor != 0.7 {
		t.Fatalf("unexpected limits: rise=%v max=%v a=%v", run.RiseLimitC, run.MaxTempC, run.LossFactor)
	}
	if !run.WithinLimit {
		t.Error("reference motor should stay within its class limit")
	}

	wantModes := []string{"S1_NOMINAL", "S1_COOLING", "S2", "S3"}
	if len(run.Modes) != len(wantModes) {
		t.Fatalf("expected %d modes, got %d", len(wantModes), len(run.Modes))
	}
	for i, m := range run.Modes {
		if m.Mode != wantModes[i] {
			t.Errorf("mode %d: got %s, want %s", i, m.Mode, wantModes[i])
		}
		if m.AsymptoticRiseC != 110 {
			t.Errorf("%s: rise %v, want 110", m.Mode, m.AsymptoticRiseC)
		}
		if m.Samples != len(m.Curve) || m.Samples == 0 {
			t.Errorf("%s: samples=%d curve=%d", m.Mode, m.Samples, len(m.Curve))
		}
		if m.PeakTempC > run.MaxTempC || !m.WithinLimit {
			t.Errorf("%s: peak %.2f over %.2f", m.Mode, m.PeakTempC, run.MaxTempC)
		}
		if want := filepath.Join("out", "run-42", plotStyles[thermal.Mode(m.Mode)].file) + ".png"; m.ImagePath != want {
			t.Errorf("%s: image path %q, want %q", m.Mode, m.ImagePath, want)
		}
	}
	if got := run.Modes[0].Samples; got != 180*60 {
		t.Errorf("S1 samples: got %d, want %d", got, 180*60)
	}
	// S2 is fed the nominal time constant, so its equivalent power is above rated
	if run.Modes[2].EquivalentPowerW <= 3000 {
		t.Errorf("S2 equivalent power %.1f should exceed rated power", run.Modes[2].EquivalentPowerW)
	}

	if len(f.renderer.plots) != 4 {
		t.Fatalf("expected 4 rendered plots, got %d", len(f.renderer.plots))
	}
	if p := f.renderer.plots[1]; p.Color != "blue" || p.YFloor != thermal.CoolingAmbientC {
		t.Errorf("cooling plot: color=%s yfloor=%v", p.Color, p.YFloor)
	}

	if len(f.runs.saved) != 1 || f.runs.saved[0].Status != models.RunCompleted {
		t.Fatalf("expected one COMPLETED save, got %+v", f.runs.saved)
	}

	wantEvents := []string{
		models.EventRunStarted,
		models.EventModeSolved, models.EventModeSolved, models.EventModeSolved, models.EventModeSolved,
		models.EventRunCompleted,
	}
	if got := f.events.types(); !equalStrings(got, wantEvents) {
		t.Fatalf("events: got %v, want %v", got, wantEvents)
	}
	for _, ev := range f.events.events {
		if ev.RunID != "run-42" || ev.EventID == "" {
			t.Errorf("event %s not tied to run: %+v", ev.Type, ev)
		}
	}
}

func TestSimulate_FailuresRecordRunAndSkipRendering(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*models.MotorConfig)
		wantErr  error
		wantMode string
	}{
		{
			name:     "zero efficiency divides by zero in the first mode",
			mutate:   func(c *models.MotorConfig) { c.EfficiencyPercent = 0 },
			wantErr:  thermal.ErrArithmeticDomain,
			wantMode: "S1_NOMINAL",
		},
		{
			name:     "zero duty fails only the periodic mode",
			mutate:   func(c *models.MotorConfig) { c.IntermittentDutyPercent = 0 },
			wantErr:  thermal.ErrArithmeticDomain,
			wantMode: "S3",
		},
		{
			name:    "unknown class",
			mutate:  func(c *models.MotorConfig) { c.Class = "Z" },
			wantErr: thermal.ErrInvalidConfiguration,
		},
		{
			name:    "negative mass",
			mutate:  func(c *models.MotorConfig) { c.MassKg = -1 },
			wantErr: thermal.ErrInvalidConfiguration,
		},
		{
			name:    "continuous duration too long to sample",
			mutate:  func(c *models.MotorConfig) { c.ContinuousDurationMin = 1e8 },
			wantErr: thermal.ErrInvalidConfiguration,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newSimFixture()
			cfg := referenceConfig()
			tc.mutate(&cfg)

			run, err := f.svc.Simulate(context.Background(), cfg)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if run.Status != models.RunFailed || run.FailedMode != tc.wantMode {
				t.Fatalf("run: status=%s failed_mode=%q, want FAILED/%q", run.Status, run.FailedMode, tc.wantMode)
			}
			if len(run.Modes) != 0 {
				t.Errorf("failed run must not carry partial modes, got %d", len(run.Modes))
			}
			if len(f.renderer.plots) != 0 {
				t.Errorf("nothing may be rendered for a failed run, got %d plots", len(f.renderer.plots))
			}
			if len(f.runs.saved) != 1 || f.runs.saved[0].Status != models.RunFailed {
				t.Fatalf("expected one FAILED save, got %+v", f.runs.saved)
			}

			last := f.events.events[len(f.events.events)-1]
			if last.Type != models.EventError {
				t.Fatalf("last event: got %s, want ERROR", last.Type)
			}
			meta, _ := last.Metadata.(map[string]any)
			if tc.wantMode != "" {
				if meta["mode"] != tc.wantMode || meta["parameters"] == "" {
					t.Errorf("error metadata should name mode and parameters: %+v", meta)
				}
			}
		})
	}
}

func TestSimulate_RenderErrorFailsRun(t *testing.T) {
	f := newSimFixture()
	f.renderer.err = errors.New("disk full")

	run, err := f.svc.Simulate(context.Background(), referenceConfig())
	if !errors.Is(err, f.renderer.err) {
		t.Fatalf("expected render error, got %v", err)
	}
	if run.Status != models.RunFailed {
		t.Fatalf("expected FAILED, got %s", run.Status)
	}
}

// diskRenderer writes a file per plot and fails from the failAt-th call on.
type diskRenderer struct {
	calls  int
	failAt int
}

func (r *diskRenderer) Render(ctx context.Context, p render.Plot) (string, error) {
	r.calls++
	if r.calls >= r.failAt {
		return "", errors.New("disk full")
	}
	path := p.Path + ".png"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte("png"), 0o644)
}

func TestSimulate_RenderErrorRemovesWrittenImages(t *testing.T) {
	dir := t.TempDir()
	f := newSimFixture()
	f.svc.renderer = &diskRenderer{failAt: 3}
	f.svc.outputDir = dir

	run, err := f.svc.Simulate(context.Background(), referenceConfig())
	if err == nil || run.Status != models.RunFailed {
		t.Fatalf("expected FAILED run, got status=%s err=%v", run.Status, err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "run-42")); !os.IsNotExist(statErr) {
		t.Fatalf("output of the failed run must be removed, stat err=%v", statErr)
	}
	for _, m := range f.runs.saved[0].Modes {
		if m.ImagePath != "" {
			t.Errorf("failed run references image %s", m.ImagePath)
		}
	}
}

func TestSimulate_CanceledContext(t *testing.T) {
	f := newSimFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Simulate(ctx, referenceConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	// the failure is recorded despite the canceled context
	if len(f.runs.saved) != 1 || f.runs.saved[0].Status != models.RunFailed {
		t.Fatalf("expected one FAILED save, got %+v", f.runs.saved)
	}
}

func TestSimulate_SaveError(t *testing.T) {
	f := newSimFixture()
	f.runs.saveErr = errors.New("db locked")

	_, err := f.svc.Simulate(context.Background(), referenceConfig())
	if !errors.Is(err, f.runs.saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
	for _, ev := range f.events.events {
		if ev.Type == models.EventRunCompleted {
			t.Fatal("RUN_COMPLETED must not be logged when the run was not saved")
		}
	}
}

func TestSolveMode_UnknownMode(t *testing.T) {
	m, err := referenceConfig().ToMotor()
	if err != nil {
		t.Fatalf("ToMotor: %v", err)
	}
	solver, err := thermal.NewSolver(m)
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	_, err = solveMode(solver, thermal.NewGridSpec(m), thermal.Mode("S9"), 0)
	if !errors.Is(err, thermal.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}
