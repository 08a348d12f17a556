package cli

import (
	"github.com/spf13/cobra"

	"github.com/LGsekara1/CGPA-gen/internal/roster"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Student database commands",
}

var rosterBuildCmd = &cobra.Command{
	Use:   "build <base-list> [specialisation-list]",
	Short: "Build student_details.json from the raw registration lists",
	Long: `Build merges the tab-separated base registration list with the optional
specialisation list into the student database. Students on the
specialisation list are tagged with the specialisation programme code,
everyone else with the base programme code.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		specPath := ""
		if len(args) == 2 {
			specPath = args[1]
		}

		n, err := roster.Build(args[0], specPath, cfg.StudentsFile(), cfg.BaseProgramme, cfg.SpecProgramme)
		if err != nil {
			return err
		}
		cmd.Printf("Wrote %d students to %q\n", n, cfg.StudentsFile())
		return nil
	},
}

func init() {
	rosterCmd.AddCommand(rosterBuildCmd)
	rootCmd.AddCommand(rosterCmd)
}
