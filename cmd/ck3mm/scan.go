package main

import (
	"fmt"
	"time"

	"ck3mm/internal/scan"

	"github.com/spf13/cobra"
)

var (
	scanMode    string
	scanSource  string
	scanWorkers int
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan mod content and index all definitions",
	Long: `Walks every in-range mod, parses its script and localization files
and prints index statistics. The same scan backs 'ck3mm conflicts'.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanMode, "mode", "default", "Mod list source: default, playset or folder")
	scanCmd.Flags().StringVar(&scanSource, "source", "", "Playset directory or mod folder for non-default modes")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Parser worker count (0 = number of CPUs)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if scanWorkers > 0 {
		cfg.Scan.Workers = scanWorkers
	}
	logger := newLogger(cfg)

	mgr := scan.NewManager(cfg, logger)
	if err := mgr.BuildModList(scan.ListMode(scanMode), scanSource); err != nil {
		return err
	}
	res, err := mgr.Scan(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Scanned %d mods, %d files in %s\n", res.ModsScanned, res.FilesScanned, res.Duration.Round(time.Millisecond))
	fmt.Printf("Indexed %d definitions across %d game directories\n", res.Definitions, len(mgr.Index.Dirs()))
	if len(res.Errors) > 0 {
		fmt.Printf("%d files failed to parse:\n", len(res.Errors))
		for _, e := range res.Errors {
			fmt.Printf("  %s: %s: %s\n", e.Mod, e.File, e.Err)
		}
	}
	return nil
}
