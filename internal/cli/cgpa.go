package cli

import (
	"github.com/spf13/cobra"

	"github.com/LGsekara1/CGPA-gen/internal/pipeline"
)

var cgpaCmd = &cobra.Command{
	Use:   "cgpa",
	Short: "Accumulate every semester with results and write the ranked CGPA workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		env, err := pipeline.LoadEnv(cfg, log)
		if err != nil {
			return err
		}

		rep, err := env.CumulativeReport()
		if err != nil {
			return err
		}

		cmd.Printf("Semesters accumulated: %d\n", len(rep.Semesters))
		cmd.Printf("Students ranked: %d\n", len(rep.Standings))
		cmd.Printf("Created %q\n", rep.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cgpaCmd)
}
