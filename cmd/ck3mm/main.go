package main

import (
	"errors"
	"fmt"
	"os"

	"ck3mm/internal/ckerr"
	"ck3mm/internal/logging"
)

func main() {
	logger := logging.NewLogger(logging.Config{
		Format: "human",
		Level:  "info",
	})

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", map[string]interface{}{
			"error": err.Error(),
		})
		var ce *ckerr.Error
		if errors.As(err, &ce) {
			for _, fix := range ckerr.GetSuggestedFixes(ce.Code) {
				if fix.Command != "" {
					fmt.Fprintf(os.Stderr, "  try: %s\n", fix.Command)
				}
				if fix.URL != "" {
					fmt.Fprintf(os.Stderr, "  see: %s\n", fix.URL)
				}
			}
		}
		os.Exit(1)
	}
}
