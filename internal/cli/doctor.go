package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docforge-labs/docforge/internal/doctor"
	"github.com/docforge-labs/docforge/internal/kit"
)

var (
	checkProject bool
	checkAgents  bool
	checkKit     bool
	checkGit     bool
)

func init() {
	doctorCmd.Flags().BoolVar(&checkProject, "check-project", false, "Verify managed files and placeholder totality")
	doctorCmd.Flags().BoolVar(&checkAgents, "check-agents", false, "Verify agent installation and frontmatter")
	doctorCmd.Flags().BoolVar(&checkKit, "check-kit", false, "Validate the embedded kit manifest")
	doctorCmd.Flags().BoolVar(&checkGit, "check-git", false, "Verify git availability")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the documentation workflow",
	Long:  `Run diagnostic checks on the current project and the agent installation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		m, err := kit.Load()
		if err != nil {
			return err
		}

		// With no specific flag, run all checks.
		all := !(checkProject || checkAgents || checkKit || checkGit)

		w := cmd.OutOrStdout()
		problems := 0

		if all || checkKit {
			problems += doctor.CheckKit(w)
			fmt.Fprintln(w)
		}
		if all || checkProject {
			problems += doctor.CheckProject(w, m, cwd)
			fmt.Fprintln(w)
		}
		if all || checkAgents {
			problems += doctor.CheckAgents(w, m.Agents)
			fmt.Fprintln(w)
		}
		if all || checkGit {
			problems += doctor.CheckGit(w, cwd)
			fmt.Fprintln(w)
		}

		if problems > 0 {
			return fmt.Errorf("doctor found %d problem(s)", problems)
		}
		fmt.Fprintln(w, "✓ All checks passed.")
		return nil
	},
}
