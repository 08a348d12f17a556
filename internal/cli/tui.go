package cli

import (
	"github.com/spf13/cobra"

	"github.com/LGsekara1/CGPA-gen/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the interactive menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return tui.Run(cfg)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
