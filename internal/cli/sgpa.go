package cli

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LGsekara1/CGPA-gen/internal/pipeline"
)

var sgpaSemester string

var sgpaCmd = &cobra.Command{
	Use:   "sgpa",
	Short: "Compute SGPAs for one semester and write the ranked workbooks",
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

		cfgPath, err := resolveSemester(cmd, env, sgpaSemester)
		if err != nil {
			return err
		}

		rep, err := env.SemesterReport(cfgPath)
		if err != nil {
			return err
		}

		cmd.Printf("Semester: %s\n", rep.Config.Name)
		cmd.Printf("Modules with results: %d of %d\n", len(rep.Results.Available), len(rep.Config.Modules))
		cmd.Printf("Students ranked: %d\n", len(rep.Standings))
		for _, p := range rep.Paths {
			cmd.Printf("Created %q\n", p)
		}
		return nil
	},
}

func init() {
	sgpaCmd.Flags().StringVarP(&sgpaSemester, "semester", "s", "", "semester to process (config file name or semester name)")
	rootCmd.AddCommand(sgpaCmd)
}

// resolveSemester picks the semester config to run: the --semester flag if
// given, the only config when just one exists, otherwise an interactive
// selection.
func resolveSemester(cmd *cobra.Command, env *pipeline.Env, ref string) (string, error) {
	if ref != "" {
		return env.FindSemester(ref)
	}

	files, err := env.SemesterConfigs()
	if err != nil {
		return "", err
	}
	if len(files) == 1 {
		cmd.Printf("Auto-selecting only available config: %s\n", filepath.Base(files[0]))
		return files[0], nil
	}

	cmd.Println("\nAvailable semesters:")
	for i, f := range files {
		cmd.Printf("  %d. %s\n", i+1, filepath.Base(f))
	}
	return promptSelect(cmd, files)
}

func promptSelect(cmd *cobra.Command, files []string) (string, error) {
	reader := bufio.NewReader(cmd.InOrStdin())
	for {
		cmd.Printf("\nSelect semester (1-%d): ", len(files))
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("failed to read selection: %w", err)
		}
		choice, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && choice >= 1 && choice <= len(files) {
			return files[choice-1], nil
		}
		if err == io.EOF {
			return "", fmt.Errorf("no semester selected")
		}
		cmd.Println("Invalid selection. Please try again.")
	}
}
