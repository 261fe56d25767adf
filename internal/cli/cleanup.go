package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docforge-labs/docforge/internal/agents"
	"github.com/docforge-labs/docforge/internal/cleanup"
	"github.com/docforge-labs/docforge/internal/kit"
)

var (
	cleanupNoBackup bool
	cleanupDryRun   bool
	cleanupYes      bool
	cleanupAgents   bool
)

func init() {
	cleanupCmd.Flags().BoolVar(&cleanupNoBackup, "no-backup", false, "Remove files without snapshotting them first")
	cleanupCmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false, "Show what would be removed without removing it")
	cleanupCmd.Flags().BoolVarP(&cleanupYes, "yes", "y", false, "Skip confirmation prompt")
	cleanupCmd.Flags().BoolVar(&cleanupAgents, "agents", false, "Also uninstall the kit's agents from ~/.claude/agents")
	rootCmd.AddCommand(cleanupCmd)
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove the documentation workflow from the current project",
	Long: `Remove kit-managed files (CLAUDE.md, README.md, planning-docs/, docs/)
and the .docforge state from the current directory.

Removed files are snapshotted into .docforge/backups/ first unless
--no-backup is given; snapshots survive the cleanup.`,
	RunE: runCleanup,
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	m, err := kit.Load()
	if err != nil {
		return err
	}

	plan := cleanup.BuildPlan(m, cwd)
	if plan.Empty() {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to remove — already clean.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Will remove:")
	for _, path := range plan.Files {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", path)
	}
	if plan.State {
		fmt.Fprintln(cmd.OutOrStdout(), "  - .docforge/project.yaml")
	}

	if cleanupDryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "\nDry run — nothing removed.")
		return nil
	}

	if !cleanupYes {
		fmt.Fprint(cmd.OutOrStdout(), "? Proceed with removal? (y/N) ")
		scanner := bufio.NewScanner(cmd.InOrStdin())
		answer := ""
		if scanner.Scan() {
			answer = strings.TrimSpace(strings.ToLower(scanner.Text()))
		}
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Cleanup cancelled.")
			return nil
		}
	}

	result, err := cleanup.Run(m, cwd, cleanup.Options{
		Backup: !cleanupNoBackup,
	})
	if err != nil {
		return err
	}

	for _, path := range result.Removed {
		fmt.Fprintf(cmd.OutOrStdout(), "  ✓ removed %s\n", path)
	}
	if result.SnapshotDir != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSnapshot saved to %s\n", result.SnapshotDir)
	}

	if cleanupAgents {
		removed, err := agents.Uninstall(m.Agents)
		if err != nil {
			return fmt.Errorf("uninstalling agents: %w", err)
		}
		for _, name := range removed {
			fmt.Fprintf(cmd.OutOrStdout(), "  ✓ removed agent %s\n", name)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\n✓ Cleanup complete.")
	return nil
}
