package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"motorheat/internal/models"
)

type RunSQLite struct {
	db *sql.DB
}

func NewRunSQLite(db *sql.DB) *RunSQLite {
	return &RunSQLite{db: db}
}

var _ RunRepo = (*RunSQLite)(nil)

const (
	// fixed-width so created_at sorts lexically
	runTimestamp = "2006-01-02T15:04:05.000000000Z07:00"

	defaultListLimit = 50
	maxListLimit     = 500

	upsertRunSQL = `
		INSERT INTO simulation_runs (id, created_at, status, config, rise_limit_c, max_temp_c, loss_factor, within_limit, failed_mode, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status=excluded.status,
			config=excluded.config,
			rise_limit_c=excluded.rise_limit_c,
			max_temp_c=excluded.max_temp_c,
			loss_factor=excluded.loss_factor,
			within_limit=excluded.within_limit,
			failed_mode=excluded.failed_mode,
			error=excluded.error
	`

	deleteModesSQL = `DELETE FROM mode_results WHERE run_id = ?`

	insertModeSQL = `
		INSERT INTO mode_results (run_id, position, mode, ambient_c, equivalent_power_w, heat_loss_power_w,
			thermal_resistance_w_per_c, time_constant_s, asymptotic_rise_c, peak_temp_c, within_limit, samples, image_path, curve)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectRunSQL = `
		SELECT id, created_at, status, config, rise_limit_c, max_temp_c, loss_factor, within_limit, failed_mode, error
		FROM simulation_runs WHERE id = ?
	`

	selectModesSQL = `
		SELECT mode, ambient_c, equivalent_power_w, heat_loss_power_w, thermal_resistance_w_per_c,
			time_constant_s, asymptotic_rise_c, peak_temp_c, within_limit, samples, image_path, curve
		FROM mode_results WHERE run_id = ? ORDER BY position ASC
	`

	listRunsSQL = `
		SELECT id, created_at, status, config, rise_limit_c, max_temp_c, loss_factor, within_limit, failed_mode, error
		FROM simulation_runs ORDER BY created_at DESC LIMIT ?
	`
)

// Save writes run and replaces its mode results in one transaction.
func (r *RunSQLite) Save(ctx context.Context, run models.SimulationRun) (err error) {
	cfg, err := json.Marshal(run.Config)
	if err != nil {
		return fmt.Errorf("marshal config of run %s: %w", run.ID, err)
	}
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save of run %s: %w", run.ID, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, upsertRunSQL,
		run.ID,
		createdAt.UTC().Format(runTimestamp),
		run.Status,
		string(cfg),
		run.RiseLimitC,
		run.MaxTempC,
		run.LossFactor,
		run.WithinLimit,
		run.FailedMode,
		run.Error,
	); err != nil {
		return fmt.Errorf("upsert run %s: %w", run.ID, err)
	}

	if _, err = tx.ExecContext(ctx, deleteModesSQL, run.ID); err != nil {
		return fmt.Errorf("clear modes of run %s: %w", run.ID, err)
	}

	for i, m := range run.Modes {
		var curve []byte
		if curve, err = json.Marshal(m.Curve); err != nil {
			return fmt.Errorf("marshal %s curve of run %s: %w", m.Mode, run.ID, err)
		}
		if _, err = tx.ExecContext(ctx, insertModeSQL,
			run.ID, i, m.Mode, m.AmbientC, m.EquivalentPowerW, m.HeatLossPowerW,
			m.ThermalResistanceWPerC, m.TimeConstantS, m.AsymptoticRiseC, m.PeakTempC,
			m.WithinLimit, m.Samples, m.ImagePath, string(curve),
		); err != nil {
			return fmt.Errorf("insert %s result of run %s: %w", m.Mode, run.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.ID, err)
	}
	return nil
}

// Get loads a run with every mode result and curve.
func (r *RunSQLite) Get(ctx context.Context, id string) (models.SimulationRun, error) {
	run, err := scanRun(r.db.QueryRowContext(ctx, selectRunSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SimulationRun{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return models.SimulationRun{}, fmt.Errorf("select run %s: %w", id, err)
	}

	rows, err := r.db.QueryContext(ctx, selectModesSQL, id)
	if err != nil {
		return models.SimulationRun{}, fmt.Errorf("select modes of run %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m     models.ModeResult
			curve sql.NullString
		)
		if err := rows.Scan(&m.Mode, &m.AmbientC, &m.EquivalentPowerW, &m.HeatLossPowerW,
			&m.ThermalResistanceWPerC, &m.TimeConstantS, &m.AsymptoticRiseC, &m.PeakTempC,
			&m.WithinLimit, &m.Samples, &m.ImagePath, &curve); err != nil {
			return models.SimulationRun{}, fmt.Errorf("scan mode of run %s: %w", id, err)
		}
		if curve.Valid && curve.String != "" && curve.String != "null" {
			if err := json.Unmarshal([]byte(curve.String), &m.Curve); err != nil {
				return models.SimulationRun{}, fmt.Errorf("decode %s curve of run %s: %w", m.Mode, id, err)
			}
		}
		run.Modes = append(run.Modes, m)
	}
	if err := rows.Err(); err != nil {
		return models.SimulationRun{}, err
	}
	return run, nil
}

// List returns the most recent runs, newest first, without mode results.
func (r *RunSQLite) List(ctx context.Context, limit int) ([]models.SimulationRun, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	rows, err := r.db.QueryContext(ctx, listRunsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := make([]models.SimulationRun, 0, limit)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (models.SimulationRun, error) {
	var (
		run       models.SimulationRun
		createdAt string
		cfg       string
		failed    sql.NullString
		errText   sql.NullString
	)
	if err := row.Scan(&run.ID, &createdAt, &run.Status, &cfg, &run.RiseLimitC, &run.MaxTempC,
		&run.LossFactor, &run.WithinLimit, &failed, &errText); err != nil {
		return models.SimulationRun{}, err
	}
	t, err := parseTimestamp(createdAt)
	if err != nil {
		return models.SimulationRun{}, err
	}
	run.CreatedAt = t
	if err := json.Unmarshal([]byte(cfg), &run.Config); err != nil {
		return models.SimulationRun{}, fmt.Errorf("decode config: %w", err)
	}
	run.FailedMode = failed.String
	run.Error = errText.String
	return run, nil
}
