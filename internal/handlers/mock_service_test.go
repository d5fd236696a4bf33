package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"motorheat/internal/models"
	"motorheat/internal/repository"
	"motorheat/internal/service"
	"motorheat/internal/thermal"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSimulator struct {
	run     models.SimulationRun
	err     error
	lastCfg models.MotorConfig
	calls   int
}

func (m *mockSimulator) Simulate(ctx context.Context, cfg models.MotorConfig) (models.SimulationRun, error) {
	m.calls++
	m.lastCfg = cfg
	return m.run, m.err
}

// mockRuns serves runs from memory; curves are keyed by run id and mode.
type mockRuns struct {
	runs      map[string]models.SimulationRun
	curves    map[string]map[thermal.Mode][]models.CurvePoint
	err       error
	lastLimit int
}

func (m *mockRuns) Get(ctx context.Context, id string) (models.SimulationRun, error) {
	if m.err != nil {
		return models.SimulationRun{}, m.err
	}
	run, ok := m.runs[id]
	if !ok {
		return models.SimulationRun{}, fmt.Errorf("%w: %s", repository.ErrRunNotFound, id)
	}
	return run, nil
}

func (m *mockRuns) List(ctx context.Context, limit int) ([]models.SimulationRun, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.SimulationRun, 0, len(m.runs))
	for _, r := range m.runs {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRuns) Curve(ctx context.Context, id string, mode thermal.Mode) ([]models.CurvePoint, error) {
	if m.err != nil {
		return nil, m.err
	}
	byMode, ok := m.curves[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrRunNotFound, id)
	}
	pts, ok := byMode[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %s", service.ErrModeNotInRun, mode)
	}
	return pts, nil
}

type mockEventLog struct {
	resp      []models.RunEvent
	err       error
	lastFrom  time.Time
	lastTo    time.Time
	lastType  string
	lastRunID string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.RunEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.lastRunID = f.RunID
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func points(n int) []models.CurvePoint {
	out := make([]models.CurvePoint, n)
	for i := range out {
		out[i] = models.CurvePoint{TimeS: float64(i), TempC: 40 + float64(i)/10}
	}
	return out
}
