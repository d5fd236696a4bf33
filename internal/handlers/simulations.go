package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"motorheat/internal/models"
	"motorheat/internal/repository"
	"motorheat/internal/service"
	"motorheat/internal/thermal"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errSimulate        = "simulation failed"
	errLoadRun         = "failed to load simulation"
	errListRuns        = "failed to list simulations"
	errRunNotFound     = "simulation not found"
	errInvalidBodyPref = "invalid body: "
	errInvalidLimit    = "invalid 'limit'; use a positive integer"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...any) {
	if h.log != nil && err != nil {
		fields := append([]any{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// simulationStatus maps simulator errors onto HTTP status codes.
func simulationStatus(err error) int {
	switch {
	case errors.Is(err, thermal.ErrInvalidConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, thermal.ErrArithmeticDomain), errors.Is(err, thermal.ErrCurveAssembly):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Run a simulation
// @Description  Solves S1 (40 °C and 24 °C), S2 and S3 for the motor and renders their curves.
// @Tags         simulations
// @Accept       json
// @Produce      json
// @Param        body  body   models.MotorConfig  true  "Motor rating plate and duty pattern"
// @Success      201   {object}  models.SimulationRun
// @Failure      400   {object}  map[string]interface{}  "invalid configuration"
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]interface{}  "arithmetic or curve assembly failure"
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/simulations [post]
// @Security     BearerAuth
func (h *Handler) createSimulation(c *gin.Context) {
	var req models.MotorConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	run, err := h.services.Simulator.Simulate(c.Request.Context(), req)
	if err != nil {
		code := simulationStatus(err)
		if code == http.StatusInternalServerError {
			h.logAndJSONError(c, code, errSimulate, "simulation_failed", err, "run_id", run.ID)
			return
		}
		if h.log != nil {
			h.log.Infow("simulation_rejected", "run_id", run.ID, "mode", run.FailedMode, "err", err)
		}
		c.JSON(code, gin.H{
			"error":  err.Error(),
			"run_id": run.ID,
			"mode":   run.FailedMode,
		})
		return
	}
	c.JSON(http.StatusCreated, run.WithoutCurves())
}

// @Summary      List simulations
// @Tags         simulations
// @Produce      json
// @Param        limit  query  int  false  "Maximum number of runs, newest first"  example(20)
// @Success      200  {object}  map[string]interface{}  "count, runs"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/simulations [get]
// @Security     BearerAuth
func (h *Handler) listSimulations(c *gin.Context) {
	limit := 0
	if qs := c.Query("limit"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidLimit})
			return
		}
		limit = v
	}
	runs, err := h.services.Runs.List(c.Request.Context(), limit)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListRuns, "simulations_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(runs),
		"runs":  runs,
	})
}

// @Summary      Get a simulation
// @Tags         simulations
// @Produce      json
// @Param        id   path  string  true  "Run id"
// @Success      200  {object}  models.SimulationRun
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/simulations/{id} [get]
// @Security     BearerAuth
func (h *Handler) getSimulation(c *gin.Context) {
	id := c.Param("id")
	run, err := h.services.Runs.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errRunNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadRun, "simulation_get_failed", err, "run_id", id)
		return
	}
	c.JSON(http.StatusOK, run)
}

// @Summary      Get the curve of one mode
// @Tags         simulations
// @Produce      json
// @Param        id    path  string  true  "Run id"
// @Param        mode  path  string  true  "Duty mode"  Enums(S1_NOMINAL,S1_COOLING,S2,S3)
// @Success      200   {object}  map[string]interface{}  "mode, count, points"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/simulations/{id}/curves/{mode} [get]
// @Security     BearerAuth
func (h *Handler) getCurve(c *gin.Context) {
	id := c.Param("id")
	mode, err := thermal.ParseMode(c.Param("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	points, err := h.services.Runs.Curve(c.Request.Context(), id, mode)
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) || errors.Is(err, service.ErrModeNotInRun) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadRun, "simulation_curve_failed", err, "run_id", id, "mode", mode)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mode":   mode,
		"count":  len(points),
		"points": points,
	})
}
