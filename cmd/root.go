package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/replusdev/replus"
)

var (
	modelsDir       string
	flagLetters     string
	whitespaceNoise string
	matchTimeout    time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "replus",
	Short: "replus - compile pattern templates and parse text with them",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = zap.NewProduction()
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&modelsDir, "models", "", "Directory of pattern model files (json, jsonc, yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLetters, "flags", "", "Matching flags as letters, e.g. \"im\"")
	rootCmd.PersistentFlags().StringVar(&whitespaceNoise, "whitespace-noise", "", "Fragment substituted for whitespace in compiled patterns")
	rootCmd.PersistentFlags().DurationVar(&matchTimeout, "timeout", 0, "Per-pattern match timeout")
	_ = rootCmd.MarkPersistentFlagRequired("models")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(patternsCmd)
}

// buildEngine constructs the engine from the persistent flags.
func buildEngine() (*replus.Engine, error) {
	var opts []replus.Option
	if flagLetters != "" {
		flags, err := replus.FlagsFromString(flagLetters)
		if err != nil {
			return nil, err
		}
		opts = append(opts, replus.WithFlags(flags))
	}
	if whitespaceNoise != "" {
		opts = append(opts, replus.WithWhitespaceNoise(whitespaceNoise))
	}
	if matchTimeout > 0 {
		opts = append(opts, replus.WithMatchTimeout(matchTimeout))
	}
	engine, err := replus.NewFromDir(modelsDir, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing engine: %w", err)
	}
	return engine, nil
}
