package main

import (
	"os"

	"ck3mm/internal/conflict"
	"ck3mm/internal/report"
	"ck3mm/internal/scan"

	"github.com/spf13/cobra"
)

var (
	conflictsFormat   string
	conflictsOut      string
	conflictsGameLog  string
	conflictsMode     string
	conflictsSource   string
	conflictsRange    string
	conflictsLoc      bool
	conflictsAllFiles bool
)

var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "Find cross-mod definition conflicts",
	Long: `Scans the in-range mods and reports every identifier defined by two
or more of them. With --game-log, attributes the engine's own override
warnings to the responsible mods as well.`,
	RunE: runConflicts,
}

func init() {
	conflictsCmd.Flags().StringVarP(&conflictsFormat, "format", "o", "human", "Output format: human, json or yaml")
	conflictsCmd.Flags().StringVar(&conflictsOut, "out", "", "Write the report to a file (.zst compresses)")
	conflictsCmd.Flags().StringVar(&conflictsGameLog, "game-log", "", "Game log file with 'Overriding entry' warnings to attribute")
	conflictsCmd.Flags().StringVar(&conflictsMode, "mode", "default", "Mod list source: default, playset or folder")
	conflictsCmd.Flags().StringVar(&conflictsSource, "source", "", "Playset directory or mod folder for non-default modes")
	conflictsCmd.Flags().StringVar(&conflictsRange, "range", "", "Which mods to check: all, enabled or disabled")
	conflictsCmd.Flags().BoolVar(&conflictsLoc, "localization", false, "Include localization key conflicts")
	conflictsCmd.Flags().BoolVar(&conflictsAllFiles, "file-overrides", false, "Include whole-file overrides (gui, csv)")
	rootCmd.AddCommand(conflictsCmd)
}

func runConflicts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if conflictsRange != "" {
		cfg.Conflicts.Range = conflictsRange
	}
	format, err := report.ParseFormat(conflictsFormat)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	rules, err := conflict.LoadRules(cfg.Conflicts.RulesFile)
	if err != nil {
		return err
	}
	if conflictsLoc || cfg.Conflicts.CheckLocalization {
		rules.CheckLocalization = true
	}

	mgr := scan.NewManager(cfg, logger)
	if err := mgr.BuildModList(scan.ListMode(conflictsMode), conflictsSource); err != nil {
		return err
	}
	res, err := mgr.Scan(cmd.Context())
	if err != nil {
		return err
	}

	groups := conflict.Detect(mgr.Index, rules)
	if conflictsAllFiles {
		groups = append(groups, conflict.DetectFileOverrides(mgr.Index, res.AssetPaths, rules)...)
	}

	var overrides []conflict.ParsedOverride
	if conflictsGameLog != "" {
		overrides, err = conflict.ParseGameLogFile(conflictsGameLog)
		if err != nil {
			return err
		}
		conflict.Attribute(overrides, mgr.Index)
	}

	rep := report.NewConflictReport(mgr.Mods.Names(), res, groups, overrides)
	if conflictsOut != "" {
		return report.WriteFile(conflictsOut, rep, format)
	}
	return report.Render(os.Stdout, rep, format)
}
