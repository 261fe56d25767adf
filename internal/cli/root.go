package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docforge-labs/docforge/internal/branding"
	"github.com/docforge-labs/docforge/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` installs and maintains a documentation workflow for Claude Code:
a CLAUDE.md guidance file, living planning documents, and agent prompts
that keep project documentation in sync with the code.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
