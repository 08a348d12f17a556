// Package cli is the cgpagen command tree.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/LGsekara1/CGPA-gen/internal/config"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "cgpagen",
	Short: "GPA analysis and ranked report generation for a university programme",
	Long: `cgpagen computes semester (SGPA) and cumulative (CGPA) grade point
averages from per-module result sheets, ranks the batch on the 4.0 scale
with a secondary ranking on the 4.2 scale, and writes the ranked results
as spreadsheet reports.

Inputs are flat files: a grades table, per-semester module configs, the
student database and per-module result sheets (CSV or HTML).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "cgpagen.yaml", "application config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadConfig reads the application config named by --config.
func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// newLogger builds the console logger the batch commands report through.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
