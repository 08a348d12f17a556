package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LGsekara1/CGPA-gen/internal/pipeline"
	"github.com/LGsekara1/CGPA-gen/internal/roster"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <index> <semester>",
	Short: "Show one student's per-module SGPA breakdown for a semester",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := roster.CleanIndex(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}

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

		b, err := env.Lookup(idx, args[1])
		if err != nil {
			return err
		}

		rule := strings.Repeat("-", 72)
		cmd.Printf("\nResults for %s (%d) in %s:\n", b.Name, b.Index, b.Semester)
		cmd.Println(rule)
		cmd.Printf("%-10s | %-5s | %-7s | %-9s | %-15s\n", "Module", "Grade", "Credits", "Points", "Weighted")
		cmd.Println(rule)
		for _, row := range b.Rows {
			if row.Counted {
				cmd.Printf("%-10s | %-5s | %-7g | %-9g | %-15.2f\n",
					row.Module, row.Grade, row.Credits, row.Points, row.Weighted)
			} else {
				cmd.Printf("%-10s | %-5s | %-7g | %-9s | %-15s\n",
					row.Module, row.Grade, row.Credits, "N/A", "Ignored")
			}
		}
		cmd.Println(rule)
		cmd.Printf("Total weighted points: %.3f\n", b.TotalWeighted)
		cmd.Printf("Total credits:         %g\n", b.TotalCredits)
		cmd.Printf("SGPA:                  %.2f\n", b.SGPA)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
