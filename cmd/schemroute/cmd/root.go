package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/OpenTraceLab/schemroute/pkg/route"
)

var (
	// Global flags
	verbose bool
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "schemroute",
	Short: "Deterministic schematic wire routing",
	Long: `schemroute turns an abstract netlist into a concrete wiring diagram:
orthogonal wire paths, bundled bus trunks, crossing jump markers, and
labeled stubs where a clean wire cannot be drawn.

Examples:
  schemroute route sheet.json              # Route a sheet, drawing JSON on stdout
  schemroute route sheet.json -o out.json  # Write the drawing to a file
  schemroute info sheet.json               # Netlist and routing statistics`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "router calibration file (YAML)")
}

// loadConfig returns the router calibration: the defaults, overlaid with the
// --config file when one is given.
func loadConfig() (route.Config, error) {
	cfg := route.DefaultConfig()
	if cfgFile == "" {
		return cfg, nil
	}
	v := viper.New()
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
