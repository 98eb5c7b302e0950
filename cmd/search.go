package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var searchCmd = &cobra.Command{
	Use:   "search [text...]",
	Short: "Print the first match, or exit non-zero when nothing matches",
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := buildEngine()
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		text, err := inputText(args)
		if err != nil {
			logger.Fatal("Failed to read input", zap.Error(err))
		}

		match, err := engine.Search(text, parseOptions()...)
		if err != nil {
			logger.Fatal("Search failed", zap.Error(err))
		}
		if match == nil {
			fmt.Fprintln(os.Stderr, "no match")
			os.Exit(1)
		}

		out, err := json.MarshalIndent(match.Serialize(), "", "  ")
		if err != nil {
			logger.Fatal("Failed to serialize match", zap.Error(err))
		}
		fmt.Println(string(out))
	},
}
