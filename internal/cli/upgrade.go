package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docforge-labs/docforge/internal/kit"
	"github.com/docforge-labs/docforge/internal/scaffold"
)

var upgradeForce bool

func init() {
	upgradeCmd.Flags().BoolVar(&upgradeForce, "force", false, "Re-render customized files too (after backing them up)")
	rootCmd.AddCommand(upgradeCmd)
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Re-render managed files from a newer kit version",
	Long: `Upgrade the project's documentation workflow to the kit version embedded
in this binary, re-using the answers recorded at setup time.

Files you have customized since setup are left alone unless --force is
given, in which case they are backed up to <name>.bak and re-rendered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}

		m, err := kit.Load()
		if err != nil {
			return err
		}

		result, err := scaffold.Upgrade(m, cwd, upgradeForce)
		if err != nil {
			return err
		}

		if result.UpToDate {
			fmt.Fprintf(cmd.OutOrStdout(), "Already on kit %s — nothing to do.\n", result.From)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Upgrading kit %s → %s\n", result.From, result.To)
		for _, path := range result.Upgraded {
			fmt.Fprintf(cmd.OutOrStdout(), "  ✓ %s\n", path)
		}
		for _, path := range result.Skipped {
			fmt.Fprintf(cmd.OutOrStdout(), "  = %s (customized, skipped)\n", path)
		}
		for _, backup := range result.BackedUp {
			fmt.Fprintf(cmd.OutOrStdout(), "  ⚠️  customized file backed up to %s\n", backup)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Upgraded to %s.\n", result.To)
		return nil
	},
}
