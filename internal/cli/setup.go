package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docforge-labs/docforge/internal/agents"
	"github.com/docforge-labs/docforge/internal/config"
	"github.com/docforge-labs/docforge/internal/kit"
	"github.com/docforge-labs/docforge/internal/project"
	"github.com/docforge-labs/docforge/internal/scaffold"
)

var (
	setupName        string
	setupDescription string
	setupType        string
	setupStack       string
	setupBuildCmd    string
	setupTestCmd     string
	setupLintCmd     string
	setupStartCmd    string
	setupYes         bool
	setupSkipAgents  bool
	setupSkipGit     bool
)

func init() {
	setupCmd.Flags().StringVar(&setupName, "name", "", "Project name ([PROJECT_NAME])")
	setupCmd.Flags().StringVar(&setupDescription, "description", "", "One-sentence project description ([PROJECT_DESCRIPTION])")
	setupCmd.Flags().StringVar(&setupType, "type", "", "Project type: api, cli, web, library, service ([PROJECT_TYPE])")
	setupCmd.Flags().StringVar(&setupStack, "stack", "", "Primary languages and frameworks ([TECH_STACK])")
	setupCmd.Flags().StringVar(&setupBuildCmd, "build-command", "", "Build command ([BUILD_COMMAND])")
	setupCmd.Flags().StringVar(&setupTestCmd, "test-command", "", "Test command ([TEST_COMMAND])")
	setupCmd.Flags().StringVar(&setupLintCmd, "lint-command", "", "Lint command ([LINT_COMMAND])")
	setupCmd.Flags().StringVar(&setupStartCmd, "start-command", "", "Run command ([START_COMMAND])")
	setupCmd.Flags().BoolVarP(&setupYes, "yes", "y", false, "Non-interactive: use flags, recorded answers, and defaults")
	setupCmd.Flags().BoolVar(&setupSkipAgents, "skip-agents", false, "Do not install agent prompts to ~/.claude/agents")
	setupCmd.Flags().BoolVar(&setupSkipGit, "skip-git", false, "Do not run git init")
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Install the documentation workflow into the current project",
	Long: `Install the documentation workflow into the current directory.

Renders CLAUDE.md, README.md, planning-docs/ and docs/ from the embedded
template kit, substituting [PLACEHOLDER] tokens with your answers, and
installs the kit's agent prompts to ~/.claude/agents. Rerunning setup is
safe: files you have customized are backed up to <name>.bak first.`,
	RunE: runSetup,
}

// flagValues maps placeholder names to the flag values supplied on the
// command line, dropping empty ones.
func flagValues() map[string]string {
	values := map[string]string{
		"PROJECT_NAME":        setupName,
		"PROJECT_DESCRIPTION": setupDescription,
		"PROJECT_TYPE":        setupType,
		"TECH_STACK":          setupStack,
		"BUILD_COMMAND":       setupBuildCmd,
		"TEST_COMMAND":        setupTestCmd,
		"LINT_COMMAND":        setupLintCmd,
		"START_COMMAND":       setupStartCmd,
	}
	for k, v := range values {
		if v == "" {
			delete(values, k)
		}
	}
	return values
}

func runSetup(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	m, err := kit.Load()
	if err != nil {
		return err
	}

	// Preset resolution order: flags, answers recorded by a previous setup,
	// then user-level defaults from ~/.docforge/config.yaml.
	preset := flagValues()
	if project.Exists(cwd) {
		prev, err := project.Load(cwd)
		if err != nil {
			return err
		}
		for k, v := range prev.Answers {
			if _, ok := preset[k]; !ok && v != "" {
				preset[k] = v
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Existing workflow found (kit %s) — rerunning setup.\n", prev.KitVersion)
	}
	for _, p := range m.Placeholders {
		if _, ok := preset[p.Name]; ok {
			continue
		}
		if v := config.Get("defaults." + strings.ToLower(p.Name)); v != "" {
			preset[p.Name] = v
		}
	}

	values, err := scaffold.CollectValues(m, preset, !setupYes, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nInstalling %s %s into %s\n", m.Name, m.Version, cwd)

	result, _, err := scaffold.Apply(m, scaffold.Options{
		ProjectRoot: cwd,
		Values:      values,
		SkipAgents:  setupSkipAgents,
		SkipGit:     setupSkipGit,
	})
	if err != nil {
		return err
	}

	for _, path := range result.Rendered {
		fmt.Fprintf(cmd.OutOrStdout(), "  ✓ %s\n", path)
	}
	for _, path := range result.Unchanged {
		fmt.Fprintf(cmd.OutOrStdout(), "  = %s (unchanged)\n", path)
	}
	for _, backup := range result.BackedUp {
		fmt.Fprintf(cmd.OutOrStdout(), "  ⚠️  existing file backed up to %s\n", backup)
	}
	if result.GitInitialized {
		fmt.Fprintln(cmd.OutOrStdout(), "  ✓ initialized git repository")
	}
	for _, warn := range result.Warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "  ⚠️  %s\n", warn)
	}

	if !setupSkipAgents {
		agentResult, err := agents.Install(m.Agents)
		if err != nil {
			return fmt.Errorf("installing agents: %w", err)
		}
		printAgentInstall(cmd, agentResult)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n✓ Workflow installed. Start with 'claude' and read CLAUDE.md.\n")
	return nil
}

func printAgentInstall(cmd *cobra.Command, result *agents.InstallResult) {
	for _, name := range result.Installed {
		fmt.Fprintf(cmd.OutOrStdout(), "  ✓ agent: %s\n", name)
	}
	for _, name := range result.Unchanged {
		fmt.Fprintf(cmd.OutOrStdout(), "  = agent: %s (unchanged)\n", name)
	}
	for _, backup := range result.BackedUp {
		fmt.Fprintf(cmd.OutOrStdout(), "  ⚠️  existing agent backed up to %s\n", backup)
	}
}
