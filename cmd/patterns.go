package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the compiled patterns of every type",
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := buildEngine()
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}
		for _, p := range engine.Patterns() {
			fmt.Printf("%s:\n  template: %s\n  pattern:  %s\n", p.Type, p.Template, p.Source)
		}
	},
}
