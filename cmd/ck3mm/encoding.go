package main

import (
	"fmt"
	"os"
	"path/filepath"

	"ck3mm/internal/encoding"

	"github.com/spf13/cobra"
)

var (
	encodingRecursive bool
	encodingNoBackup  bool
	encodingPattern   string
)

var encodingCmd = &cobra.Command{
	Use:   "encoding",
	Short: "Check and repair file encodings",
	Long: `CK3 requires localization files to be UTF-8 with BOM. These commands
find files in other encodings and convert them in place.`,
}

var encodingCheckCmd = &cobra.Command{
	Use:   "check <path>...",
	Short: "Report the encoding of files or directories",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEncodingCheck,
}

var encodingFixCmd = &cobra.Command{
	Use:   "fix <path>...",
	Short: "Convert files to UTF-8 with BOM",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEncodingFix,
}

func init() {
	encodingCmd.PersistentFlags().BoolVarP(&encodingRecursive, "recursive", "r", false, "Recurse into directories")
	encodingCmd.PersistentFlags().StringVar(&encodingPattern, "pattern", "*.yml", "File glob for directory arguments")
	encodingFixCmd.Flags().BoolVar(&encodingNoBackup, "no-backup", false, "Skip .bak backups before converting")
	encodingCmd.AddCommand(encodingCheckCmd)
	encodingCmd.AddCommand(encodingFixCmd)
	rootCmd.AddCommand(encodingCmd)
}

func expandPaths(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		if encodingRecursive {
			err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
				if err != nil || d.IsDir() {
					return err
				}
				if ok, _ := filepath.Match(encodingPattern, d.Name()); ok {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, encodingPattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	return files, nil
}

func runEncodingCheck(cmd *cobra.Command, args []string) error {
	files, err := expandPaths(args)
	if err != nil {
		return err
	}
	wrong := 0
	for _, f := range files {
		enc, err := encoding.DetectFile(f)
		if err != nil {
			return err
		}
		if enc != encoding.UTF8BOM {
			wrong++
		}
		fmt.Printf("%-12s %s\n", enc, f)
	}
	fmt.Printf("\n%d files, %d not UTF-8-BOM\n", len(files), wrong)
	return nil
}

func runEncodingFix(cmd *cobra.Command, args []string) error {
	files, err := expandPaths(args)
	if err != nil {
		return err
	}
	res := encoding.FixBatch(files, !encodingNoBackup)
	for _, f := range res.Converted {
		fmt.Printf("converted  %s\n", f)
	}
	for f, ferr := range res.Failed {
		fmt.Printf("FAILED     %s: %v\n", f, ferr)
	}
	fmt.Printf("\n%d converted, %d failed\n", len(res.Converted), len(res.Failed))
	if len(res.Failed) > 0 {
		return fmt.Errorf("%d files could not be converted", len(res.Failed))
	}
	return nil
}
