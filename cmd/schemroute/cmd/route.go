package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/schemroute/pkg/engine"
	"github.com/OpenTraceLab/schemroute/pkg/netlist"
)

var outputFile string

var routeCmd = &cobra.Command{
	Use:   "route <sheet.json>",
	Short: "Route a sheet and emit the drawing as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, err := loadSheet(args[0])
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"items": len(sheet.Items),
			"nets":  len(sheet.Nets),
		}).Debug("sheet loaded")

		drawing := engine.New(cfg).Route(sheet)
		data, err := drawing.ExportJSON()
		if err != nil {
			return err
		}

		if outputFile == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(outputFile, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outputFile, err)
		}
		return nil
	},
}

func init() {
	routeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the drawing to a file instead of stdout")
	rootCmd.AddCommand(routeCmd)
}

// loadSheet decodes a sheet description. Net classes left unset in the file
// are derived from the net names.
func loadSheet(path string) (*engine.Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var sheet engine.Sheet
	if err := json.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for _, n := range sheet.Nets {
		if n.Class == netlist.ClassSignal {
			n.Class = netlist.ClassifyName(n.Name)
		}
	}
	return &sheet, nil
}
