package main

import (
	"fmt"

	"ck3mm/internal/launcher"
	"ck3mm/internal/mods"

	"github.com/spf13/cobra"
)

var (
	exportName        string
	exportEnabledOnly bool
	exportAppend      bool
	exportOpenBeta    bool
)

var exportLauncherCmd = &cobra.Command{
	Use:   "export-launcher",
	Short: "Export the current mod list to the Paradox launcher database",
	Long: `Writes the mod list as a playset into the launcher's sqlite database
(launcher-v2.sqlite), activating it so the game launcher picks it up.
The database is created if the launcher has never run.`,
	RunE: runExportLauncher,
}

func init() {
	exportLauncherCmd.Flags().StringVar(&exportName, "name", "ck3mm", "Playset name in the launcher")
	exportLauncherCmd.Flags().BoolVar(&exportEnabledOnly, "enabled-only", false, "Export only enabled mods to the mods table")
	exportLauncherCmd.Flags().BoolVar(&exportAppend, "append", false, "Keep existing playset entries instead of replacing them")
	exportLauncherCmd.Flags().BoolVar(&exportOpenBeta, "open-beta", false, "Target the open beta database")
	rootCmd.AddCommand(exportLauncherCmd)
}

func runExportLauncher(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	ld := &mods.Loader{DocsDir: cfg.Paths.DocsDir, Logger: logger}
	list, err := ld.LoadDefault(false)
	if err != nil {
		return err
	}

	openBeta := exportOpenBeta || cfg.Launcher.OpenBeta
	db, err := launcher.Open(cfg.Launcher.GameDataDir, openBeta, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := launcher.ExportOptions{EnabledOnly: exportEnabledOnly, AppendOnly: exportAppend}
	if err := db.ExportPlayset(exportName, list, opts); err != nil {
		return err
	}

	fmt.Printf("Exported playset %q (%d mods, %d enabled) to %s\n",
		exportName, list.Len(), len(list.Enabled()), db.Path())
	fmt.Printf("Launcher schema: %s\n", db.DetectVersion())
	return nil
}
