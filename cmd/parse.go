package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/replusdev/replus"
)

var (
	filterTypes  string
	excludeTypes string
	allowOverlap bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [text...]",
	Short: "Parse text with every pattern and print the match trees",
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := buildEngine()
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		text, err := inputText(args)
		if err != nil {
			logger.Fatal("Failed to read input", zap.Error(err))
		}

		matches, err := engine.Parse(text, parseOptions()...)
		if err != nil {
			logger.Fatal("Parse failed", zap.Error(err))
		}

		nodes := make([]*replus.Node, 0, len(matches))
		for _, m := range matches {
			nodes = append(nodes, m.Serialize())
		}
		out, err := json.MarshalIndent(nodes, "", "  ")
		if err != nil {
			logger.Fatal("Failed to serialize matches", zap.Error(err))
		}
		fmt.Println(string(out))
	},
}

func init() {
	parseCmd.Flags().StringVar(&filterTypes, "filter", "", "Comma-separated pattern types to parse with")
	parseCmd.Flags().StringVar(&excludeTypes, "exclude", "", "Comma-separated pattern types to skip")
	parseCmd.Flags().BoolVar(&allowOverlap, "overlap", false, "Return overlapping matches instead of resolving them")

	searchCmd.Flags().StringVar(&filterTypes, "filter", "", "Comma-separated pattern types to search with")
	searchCmd.Flags().StringVar(&excludeTypes, "exclude", "", "Comma-separated pattern types to skip")
}

// parseOptions translates the command flags into parse options.
func parseOptions() []replus.ParseOption {
	var opts []replus.ParseOption
	if filterTypes != "" {
		opts = append(opts, replus.Filters(splitTypes(filterTypes)...))
	}
	if excludeTypes != "" {
		opts = append(opts, replus.Exclude(splitTypes(excludeTypes)...))
	}
	if allowOverlap {
		opts = append(opts, replus.AllowOverlap())
	}
	return opts
}

func splitTypes(csv string) []string {
	parts := strings.Split(csv, ",")
	types := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			types = append(types, t)
		}
	}
	return types
}

// inputText joins the arguments, or reads stdin when none are given.
func inputText(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
