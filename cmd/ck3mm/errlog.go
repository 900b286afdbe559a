package main

import (
	"fmt"
	"os"

	"ck3mm/internal/ckerr"
	"ck3mm/internal/errlog"
	"ck3mm/internal/report"
	"ck3mm/internal/scan"

	"github.com/spf13/cobra"
)

var (
	errlogPath    string
	errlogFormat  string
	errlogOut     string
	errlogNoDedup bool
	errlogNoScan  bool
)

var errlogCmd = &cobra.Command{
	Use:   "errlog",
	Short: "Analyze the game's error.log and attribute errors to mods",
	RunE:  runErrlog,
}

func init() {
	errlogCmd.Flags().StringVar(&errlogPath, "log", "", "Path to error.log or the logs directory (default: <docs>/logs/error.log)")
	errlogCmd.Flags().StringVarP(&errlogFormat, "format", "o", "human", "Output format: human, json or yaml")
	errlogCmd.Flags().StringVar(&errlogOut, "out", "", "Write the report to a file (.zst compresses)")
	errlogCmd.Flags().BoolVar(&errlogNoDedup, "no-dedup", false, "Keep repeated identical errors")
	errlogCmd.Flags().BoolVar(&errlogNoScan, "no-scan", false, "Skip the mod scan; errors stay unattributed")
	rootCmd.AddCommand(errlogCmd)
}

func runErrlog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(errlogFormat)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	searchPath := errlogPath
	if searchPath == "" {
		searchPath = cfg.Paths.ErrorLogPath()
	}
	logFile, ok := errlog.FindLogFile(searchPath)
	if !ok {
		return ckerr.New(ckerr.LogMissing, fmt.Sprintf("no error.log found at %s", searchPath), nil)
	}

	errors, err := errlog.ParseFile(logFile, !errlogNoDedup)
	if err != nil {
		return err
	}

	attributed := 0
	if !errlogNoScan {
		mgr := scan.NewManager(cfg, logger)
		if err := mgr.BuildModList(scan.ModeDefault, ""); err != nil {
			return err
		}
		if _, err := mgr.Scan(cmd.Context()); err != nil {
			return err
		}
		analyzer := errlog.NewAnalyzer(mgr.Index, mgr.Mods, logger)
		attributed = analyzer.Attribute(errors)
	}

	rep := report.NewErrorReport(logFile, errors, attributed)
	if errlogOut != "" {
		return report.WriteFile(errlogOut, rep, format)
	}
	return report.Render(os.Stdout, rep, format)
}
