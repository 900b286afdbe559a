package main

import (
	"fmt"
	"path/filepath"

	"ck3mm/internal/config"
	"ck3mm/internal/mods"

	"github.com/spf13/cobra"
)

var playsetCmd = &cobra.Command{
	Use:   "playset",
	Short: "Save and restore mod list profiles",
	Long: `Profiles snapshot which mods are enabled and their load order into a
JSON file under <docs>/.ck3mm/profiles/, portable across machines.`,
}

var playsetSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current enabled mods and load order as a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaysetSave,
}

var playsetLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Apply a saved profile to dlc_load.json",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaysetLoad,
}

var playsetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE:  runPlaysetList,
}

func init() {
	playsetCmd.AddCommand(playsetSaveCmd)
	playsetCmd.AddCommand(playsetLoadCmd)
	playsetCmd.AddCommand(playsetListCmd)
	rootCmd.AddCommand(playsetCmd)
}

func profileDir(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.DocsDir, config.ConfigDirName, "profiles")
}

func runPlaysetSave(cmd *cobra.Command, args []string) error {
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

	name := args[0]
	p := mods.NewProfile(name, list)
	path := filepath.Join(profileDir(cfg), name+".json")
	if err := mods.SaveProfile(p, path); err != nil {
		return err
	}
	fmt.Printf("Saved profile %q (%d enabled mods) to %s\n", name, len(p.EnabledMods), path)
	return nil
}

func runPlaysetLoad(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	name := args[0]
	p, err := mods.LoadProfile(filepath.Join(profileDir(cfg), name+".json"))
	if err != nil {
		return err
	}

	ld := &mods.Loader{DocsDir: cfg.Paths.DocsDir, Logger: logger}
	list, err := ld.LoadDefault(false)
	if err != nil {
		return err
	}

	missing := p.Apply(list)
	for _, m := range missing {
		fmt.Printf("warning: profile references missing mod %q\n", m)
	}

	if err := ld.SaveEnabled(list, cfg.Paths.DLCLoadPath()); err != nil {
		return err
	}
	fmt.Printf("Applied profile %q: %d mods enabled\n", name, len(list.Enabled()))
	return nil
}

func runPlaysetList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	matches, err := filepath.Glob(filepath.Join(profileDir(cfg), "*.json"))
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Println("No saved profiles.")
		return nil
	}
	for _, m := range matches {
		p, err := mods.LoadProfile(m)
		if err != nil {
			fmt.Printf("%s (unreadable: %v)\n", filepath.Base(m), err)
			continue
		}
		fmt.Printf("%s  %d enabled mods\n", p.Name, len(p.EnabledMods))
	}
	return nil
}
