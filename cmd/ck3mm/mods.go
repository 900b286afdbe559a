package main

import (
	"fmt"

	"ck3mm/internal/mods"

	"github.com/spf13/cobra"
)

var (
	modsEnabledOnly bool
	modsGameVersion string
)

var modsCmd = &cobra.Command{
	Use:   "mods",
	Short: "Inspect installed mods",
}

var modsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed mods with enabled state and load order",
	RunE:  runModsList,
}

var modsHideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Rename disabled mods' descriptors so the launcher ignores them",
	RunE:  runModsHide,
}

var modsUnhideCmd = &cobra.Command{
	Use:   "unhide",
	Short: "Restore descriptors renamed by 'mods hide'",
	RunE:  runModsUnhide,
}

func init() {
	modsListCmd.Flags().BoolVar(&modsEnabledOnly, "enabled", false, "Only show enabled mods")
	modsListCmd.Flags().StringVar(&modsGameVersion, "game-version", "", "Flag mods whose supported_version is older than this")
	modsCmd.AddCommand(modsListCmd)
	modsCmd.AddCommand(modsHideCmd)
	modsCmd.AddCommand(modsUnhideCmd)
	rootCmd.AddCommand(modsCmd)
}

func runModsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	ld := &mods.Loader{DocsDir: cfg.Paths.DocsDir, Logger: logger}
	list, err := ld.LoadDefault(modsEnabledOnly)
	if err != nil {
		return err
	}

	for _, m := range list.All() {
		state := " "
		if m.Enabled {
			state = "*"
		}
		line := fmt.Sprintf("%s %s", state, m.DupName())
		if m.Version != "" {
			line += " " + m.Version
		}
		if modsGameVersion != "" && m.IsOutdated(modsGameVersion) {
			line += fmt.Sprintf("  (outdated: supports %s)", m.SupportedVersion)
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d mods, %d enabled\n", list.Len(), len(list.Enabled()))
	return nil
}

func runModsHide(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ld := &mods.Loader{DocsDir: cfg.Paths.DocsDir, Logger: newLogger(cfg)}
	list, err := ld.LoadDefault(false)
	if err != nil {
		return err
	}
	if err := list.HideDisabled(); err != nil {
		return err
	}
	fmt.Printf("Hidden %d disabled mods from the launcher\n", len(list.Disabled()))
	return nil
}

func runModsUnhide(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ld := &mods.Loader{DocsDir: cfg.Paths.DocsDir, Logger: newLogger(cfg)}
	list, err := ld.LoadDefault(false)
	if err != nil {
		return err
	}
	if err := list.UnhideDisabled(); err != nil {
		return err
	}
	fmt.Printf("Restored %d hidden mod descriptors\n", len(list.Disabled()))
	return nil
}
