package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docforge-labs/docforge/internal/agents"
	"github.com/docforge-labs/docforge/internal/fsutil"
	"github.com/docforge-labs/docforge/internal/kit"
	"github.com/docforge-labs/docforge/internal/project"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the workflow state of the current project",
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		m, err := kit.Load()
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()

		if !project.Exists(cwd) {
			fmt.Fprintln(w, "Workflow not installed in this directory.")
			fmt.Fprintln(w, "Run 'docforge setup' to install it.")
			return nil
		}

		config, err := project.Load(cwd)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "Kit:       %s %s (embedded: %s)\n", config.KitName, config.KitVersion, m.Version)
		fmt.Fprintf(w, "Installed: %s\n", config.InstalledAt)
		fmt.Fprintf(w, "Project:   %s\n\n", config.Answers["PROJECT_NAME"])

		fmt.Fprintln(w, "Managed files:")
		for _, path := range m.ManagedPaths() {
			switch {
			case !fsutil.Exists(filepath.Join(cwd, path)):
				fmt.Fprintf(w, "  ✗ %s (missing)\n", path)
			case config.IsCustomized(cwd, path):
				fmt.Fprintf(w, "  * %s (customized)\n", path)
			default:
				fmt.Fprintf(w, "  ✓ %s\n", path)
			}
		}

		infos, err := agents.List(m.Agents)
		if err != nil {
			return err
		}
		installed := 0
		for _, info := range infos {
			if info.Managed {
				installed++
			}
		}
		fmt.Fprintf(w, "\nAgents: %d/%d installed\n", installed, len(m.Agents))

		if up, err := kit.IsUpgradeAvailable(config.KitVersion, m.Version); err == nil && up {
			fmt.Fprintf(w, "\nKit %s is available — run 'docforge upgrade'.\n", m.Version)
		}
		return nil
	},
}
