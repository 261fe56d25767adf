package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docforge-labs/docforge/internal/branding"
	"github.com/docforge-labs/docforge/internal/kit"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionShort {
			fmt.Println(buildVersion)
			return nil
		}

		m, err := kit.Load()
		if err != nil {
			return err
		}

		if versionJSON {
			info := map[string]string{
				"version":     buildVersion,
				"commit":      buildCommit,
				"date":        buildDate,
				"kit":         m.Name,
				"kit_version": m.Version,
			}
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Printf("%s version %s (commit: %s, built: %s)\n", branding.CLIName(), buildVersion, buildCommit, buildDate)
		fmt.Printf("embedded kit: %s %s\n", m.Name, m.Version)
		return nil
	},
}
