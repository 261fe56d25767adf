// Package doctor runs diagnostic checks over a project's documentation
// workflow and the global agent installation, printing one status line per
// check. Each check returns the number of problems found so the CLI can
// choose an exit code.
package doctor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/docforge-labs/docforge/internal/agents"
	"github.com/docforge-labs/docforge/internal/fsutil"
	"github.com/docforge-labs/docforge/internal/kit"
	"github.com/docforge-labs/docforge/internal/placeholder"
	"github.com/docforge-labs/docforge/internal/project"
)

// CheckProject verifies the project-side workflow state: project.yaml
// parses, every managed file exists, and no placeholder tokens remain.
func CheckProject(w io.Writer, m *kit.Manifest, projectRoot string) int {
	problems := 0
	fmt.Fprintln(w, "Project check:")

	if !project.Exists(projectRoot) {
		fmt.Fprintf(w, "  [MISS] %s not found\n", project.ConfigPath(projectRoot))
		fmt.Fprintln(w, "         Run 'docforge setup' to install the workflow")
		return 1
	}

	config, err := project.Load(projectRoot)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] project state unreadable: %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] project state (kit %s %s)\n", config.KitName, config.KitVersion)

	for _, path := range m.ManagedPaths() {
		full := filepath.Join(projectRoot, path)
		data, err := os.ReadFile(full)
		if err != nil {
			fmt.Fprintf(w, "  [MISS] %s\n", path)
			problems++
			continue
		}
		if tokens := placeholder.Scan(string(data)); len(tokens) > 0 {
			fmt.Fprintf(w, "  [WARN] %s has unresolved placeholders: %v\n", path, tokens)
			problems++
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s\n", path)
	}

	if up, err := kit.IsUpgradeAvailable(config.KitVersion, m.Version); err == nil && up {
		fmt.Fprintf(w, "  [WARN] kit %s installed, %s available — run 'docforge upgrade'\n",
			config.KitVersion, m.Version)
		problems++
	}

	return problems
}

// CheckAgents verifies that every kit agent is installed in the Claude
// agents directory with valid frontmatter.
func CheckAgents(w io.Writer, kitAgents []string) int {
	problems := 0
	fmt.Fprintln(w, "Agents check:")

	dir, err := agents.Dir()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] resolving agents directory: %v\n", err)
		return 1
	}

	installed, err := agents.List(kitAgents)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}

	byFile := make(map[string]agents.Info, len(installed))
	for _, info := range installed {
		byFile[info.File] = info
	}

	for _, name := range kitAgents {
		info, ok := byFile[name+".md"]
		if !ok {
			fmt.Fprintf(w, "  [MISS] %s not installed in %s\n", name, dir)
			fmt.Fprintln(w, "         Run 'docforge agents install'")
			problems++
			continue
		}
		if info.Err != nil {
			fmt.Fprintf(w, "  [FAIL] %s: %v\n", name, info.Err)
			problems++
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s\n", name)
	}

	return problems
}

// CheckKit validates the embedded kit manifest against its schema.
func CheckKit(w io.Writer) int {
	fmt.Fprintln(w, "Kit check:")

	raw, err := kit.RawManifest()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}

	result, err := kit.Validate(raw)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] validating kit manifest: %v\n", err)
		return 1
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "  [FAIL] kit manifest: %s\n", issue)
		}
		return len(result.Issues)
	}

	m, err := kit.Load()
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %s %s (%d files, %d agents)\n", m.Name, m.Version, len(m.Files), len(m.Agents))
	return 0
}

// CheckGit reports whether git is available and the project is a repository.
// Neither condition is fatal; both produce warnings only.
func CheckGit(w io.Writer, projectRoot string) int {
	fmt.Fprintln(w, "Git check:")

	if _, err := exec.LookPath("git"); err != nil {
		fmt.Fprintln(w, "  [WARN] git not found on PATH")
		return 0
	}
	fmt.Fprintln(w, "  [ OK ] git available")

	if fsutil.IsDir(filepath.Join(projectRoot, ".git")) {
		fmt.Fprintln(w, "  [ OK ] project is a git repository")
	} else {
		fmt.Fprintln(w, "  [WARN] project is not a git repository")
	}
	return 0
}
