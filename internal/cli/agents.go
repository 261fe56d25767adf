package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docforge-labs/docforge/internal/agents"
	"github.com/docforge-labs/docforge/internal/kit"
)

func init() {
	agentsCmd.AddCommand(agentsInstallCmd)
	agentsCmd.AddCommand(agentsListCmd)
	agentsCmd.AddCommand(agentsUninstallCmd)
	rootCmd.AddCommand(agentsCmd)
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Manage the kit's Claude Code agent prompts",
	Long: `Install, list, and remove the kit's agent prompt files in
~/.claude/agents (override the location with DOCFORGE_CLAUDE_DIR).`,
}

var agentsInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the kit's agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := kit.Load()
		if err != nil {
			return err
		}

		result, err := agents.Install(m.Agents)
		if err != nil {
			return err
		}

		printAgentInstall(cmd, result)
		if len(result.Installed) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "All agents already installed.")
		}
		return nil
	},
}

var agentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed agent files",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := kit.Load()
		if err != nil {
			return err
		}

		dir, err := agents.Dir()
		if err != nil {
			return err
		}

		infos, err := agents.List(m.Agents)
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No agents installed in %s.\n", dir)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Agents in %s:\n", dir)
		for _, info := range infos {
			marker := " "
			if info.Managed {
				marker = "*"
			}
			switch {
			case info.Err != nil:
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %-24s (invalid: %v)\n", marker, info.File, info.Err)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %-24s %s\n", marker, info.File, info.Description)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\n* managed by this kit")
		return nil
	},
}

var agentsUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the kit's agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := kit.Load()
		if err != nil {
			return err
		}

		removed, err := agents.Uninstall(m.Agents)
		if err != nil {
			return err
		}
		if len(removed) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No kit agents installed — nothing to remove.")
			return nil
		}
		for _, name := range removed {
			fmt.Fprintf(cmd.OutOrStdout(), "  \u2713 removed %s\n", name)
		}
		return nil
	},
}
