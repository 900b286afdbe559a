package main

import (
	"fmt"
	"os"
	"path/filepath"

	"ck3mm/internal/config"
	"ck3mm/internal/conflict"

	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ck3mm configuration",
	Long:  "Creates <docs>/.ck3mm/ with a default config.toml and conflict rules file",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing configuration")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if docsDirFlag != "" {
		cfg.Paths.DocsDir = docsDirFlag
	}

	cfgDir := filepath.Join(cfg.Paths.DocsDir, config.ConfigDirName)
	cfgPath := filepath.Join(cfgDir, "config.toml")
	if _, err := os.Stat(cfgPath); err == nil && !initForce {
		fmt.Println("ck3mm already initialized.")
		fmt.Printf("Configuration at: %s\n", cfgPath)
		fmt.Println("\nRun 'ck3mm init --force' to reinitialize.")
		return nil
	}

	if err := cfg.Save(cfgPath); err != nil {
		return err
	}

	rulesPath := filepath.Join(cfgDir, "rules.toml")
	if _, err := os.Stat(rulesPath); os.IsNotExist(err) || initForce {
		rules := &conflict.Rules{}
		if err := rules.Save(rulesPath); err != nil {
			return err
		}
	}

	fmt.Println("ck3mm initialized successfully!")
	fmt.Printf("Configuration written to: %s\n", cfgPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Check the paths in config.toml match your install")
	fmt.Println("  2. Run 'ck3mm mods list' to see your mods")
	fmt.Println("  3. Run 'ck3mm conflicts' to check for conflicts")
	return nil
}
