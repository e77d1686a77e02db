package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/schemroute/pkg/engine"
)

var infoCmd = &cobra.Command{
	Use:   "info <sheet.json>",
	Short: "Show netlist and routing statistics for a sheet",
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
		drawing := engine.New(cfg).Route(sheet)
		printInfo(sheet, drawing)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printInfo(sheet *engine.Sheet, d *engine.Drawing) {
	fmt.Printf("Sheet: %d items, %d nets\n\n", len(sheet.Items), len(sheet.Nets))

	byClass := make(map[string]int)
	for _, n := range sheet.Nets {
		byClass[n.Class.String()]++
	}
	classes := make([]string, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	fmt.Printf("%-14s %6s\n", "Net Class", "Count")
	fmt.Println("─────────────────────")
	for _, c := range classes {
		fmt.Printf("%-14s %6d\n", c, byClass[c])
	}

	wires, stubs := 0, 0
	for _, nr := range d.Nets {
		if len(nr.Wires) > 0 {
			wires++
		} else if len(nr.Stubs) > 0 {
			stubs++
		}
	}

	fmt.Println()
	fmt.Printf("%-14s %6d\n", "Wired nets", wires)
	fmt.Printf("%-14s %6d\n", "Stubbed nets", stubs)
	fmt.Printf("%-14s %6d\n", "Bus groups", len(d.Buses))
	fmt.Printf("%-14s %6d\n", "Crossings", len(d.Crossings))
	fmt.Printf("%-14s %6d\n", "Skipped", len(d.Skipped))

	for _, g := range d.Buses {
		fmt.Printf("\nBus %s: %s, members %v\n", g.ID, g.Badge.Text(), g.MemberNetIDs)
	}
	for _, s := range d.Skipped {
		fmt.Printf("Skipped %s: %s\n", s.NetID, s.Reason)
	}
}
