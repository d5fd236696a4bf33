package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title        motorheat API
// @version      1.0
// @description  Duty-cycle thermal simulator for electric motors.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "motorheat",
		Short: "Duty-cycle thermal simulator for electric motors",
		Long: `motorheat predicts the winding temperature of an electric motor under the
standardized duty types S1 (at 40 °C ambient and with a 24 °C coolant), S2 and
S3, and checks each curve against the limit of the insulation heat class.

Examples:
  motorheat simulate --class F --power-kw 3 --efficiency 82 --mass 34 --speed 1500
  motorheat simulate --duty 60 --format png,html --out plots
  motorheat serve --config configs/config.yml`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default configs/config.yml)")

	root.AddCommand(newServeCmd(), newSimulateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
