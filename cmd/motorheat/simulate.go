package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"motorheat/internal/config"
	"motorheat/internal/logger"
	"motorheat/internal/models"
	"motorheat/internal/render"
	"motorheat/internal/repository"
	"motorheat/internal/repository/db"
	"motorheat/internal/service"

	"github.com/spf13/cobra"
)

type simulateOpts struct {
	motor   models.MotorConfig
	out     string
	formats string
	dbPath  string
	asJSON  bool
}

func newSimulateCmd() *cobra.Command {
	var o simulateOpts

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Solve every duty mode once and write the curve images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyMotorFlags(cmd, &cfg.Motor, o.motor)
			if cmd.Flags().Changed("out") {
				cfg.Render.OutputDir = o.out
			}
			if cmd.Flags().Changed("format") {
				cfg.Render.Formats = strings.Split(o.formats, ",")
			}
			cfg.DB.Path = o.dbPath
			return simulate(cmd.Context(), cmd.OutOrStdout(), cfg, o.asJSON)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.motor.Class, "class", "F", "insulation heat class (A, E, B, F, H)")
	f.Float64Var(&o.motor.RatedPowerKW, "power-kw", 3, "rated power in kW")
	f.Float64Var(&o.motor.EfficiencyPercent, "efficiency", 82, "efficiency in percent")
	f.Float64Var(&o.motor.MassKg, "mass", 34, "mass in kg")
	f.Float64Var(&o.motor.SpeedRPM, "speed", 1500, "rated speed in rpm")
	f.Float64Var(&o.motor.ContinuousDurationMin, "continuous-min", 180, "S1 simulated duration in minutes")
	f.Float64Var(&o.motor.ShortTimeDurationMin, "short-min", 60, "S2 on-duration in minutes")
	f.Float64Var(&o.motor.IntermittentDutyPercent, "duty", 40, "S3 duty ratio in percent")

	f.StringVarP(&o.out, "out", "o", "plots", "directory for curve images")
	f.StringVar(&o.formats, "format", "png", "comma separated output formats: png, html, none")
	f.StringVar(&o.dbPath, "db", ":memory:", "SQLite file to record the run in")
	f.BoolVar(&o.asJSON, "json", false, "print the run as JSON instead of a table")
	return cmd
}

// applyMotorFlags overrides the configured motor with the flags set on the command line.
func applyMotorFlags(cmd *cobra.Command, dst *models.MotorConfig, flags models.MotorConfig) {
	set := cmd.Flags().Changed
	if set("class") {
		dst.Class = flags.Class
	}
	if set("power-kw") {
		dst.RatedPowerKW = flags.RatedPowerKW
	}
	if set("efficiency") {
		dst.EfficiencyPercent = flags.EfficiencyPercent
	}
	if set("mass") {
		dst.MassKg = flags.MassKg
	}
	if set("speed") {
		dst.SpeedRPM = flags.SpeedRPM
	}
	if set("continuous-min") {
		dst.ContinuousDurationMin = flags.ContinuousDurationMin
	}
	if set("short-min") {
		dst.ShortTimeDurationMin = flags.ShortTimeDurationMin
	}
	if set("duty") {
		dst.IntermittentDutyPercent = flags.IntermittentDutyPercent
	}
}

func simulate(ctx context.Context, w io.Writer, cfg config.Config, asJSON bool) error {
	log := logger.New(cfg.LogLevel, cfg.LogEncoding)
	defer func() { _ = log.Sync() }()

	renderer, err := render.New(cfg.Render.Formats)
	if err != nil {
		return err
	}
	dbPath := cfg.DB.Path
	if dbPath == "" {
		dbPath = ":memory:"
	}
	conn, err := db.InitDB(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	repos := repository.NewRepository(conn)
	sim := service.NewSimulationService(repos.RunRepo, repos.EventRepo, renderer, cfg.Render.OutputDir, log)

	run, err := sim.Simulate(ctx, cfg.Motor)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(run.WithoutCurves())
	}
	return printSummary(w, run)
}

func printSummary(w io.Writer, run models.SimulationRun) error {
	fmt.Fprintf(w, "run %s  class %s  rise limit %.0f °C  max %.0f °C  loss factor %.1f\n\n",
		run.ID, run.Config.Class, run.RiseLimitC, run.MaxTempC, run.LossFactor)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODE\tAMBIENT °C\tP_EQ W\tP_LOSS W\tA W/°C\tTAU s\tPEAK °C\tWITHIN\tIMAGE")
	for _, m := range run.Modes {
		image := m.ImagePath
		if image == "" {
			image = "-"
		}
		fmt.Fprintf(tw, "%s\t%.0f\t%.1f\t%.1f\t%.3f\t%.1f\t%.2f\t%t\t%s\n",
			m.Mode, m.AmbientC, m.EquivalentPowerW, m.HeatLossPowerW, m.ThermalResistanceWPerC,
			m.TimeConstantS, m.PeakTempC, m.WithinLimit, image)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if !run.WithinLimit {
		fmt.Fprintln(w, "\nWARNING: at least one mode exceeds the class temperature limit")
	}
	return nil
}

