package agents

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docforge-labs/docforge/internal/branding"
	"github.com/docforge-labs/docforge/internal/fsutil"
	"github.com/docforge-labs/docforge/internal/kit"
)

// Dir returns the Claude Code agents directory.
// It checks the DOCFORGE_CLAUDE_DIR environment variable first (pointing at
// an alternate .claude directory, used by tests), then falls back to
// ~/.claude/agents — the fixed location Claude Code reads agent prompts from.
func Dir() (string, error) {
	if v := os.Getenv(branding.EnvVar("CLAUDE_DIR")); v != "" {
		return filepath.Join(v, "agents"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "agents"), nil
}

// InstallResult reports what Install did per agent file.
type InstallResult struct {
	Installed []string // agent names written
	BackedUp  []string // pre-existing foreign files moved to .bak
	Unchanged []string // already installed with identical content
}

// Install writes the named kit agents into the Claude agents directory.
// Agent frontmatter is validated before anything is written. A pre-existing
// file with different content is backed up to <name>.md.bak first; identical
// files are left alone.
func Install(names []string) (*InstallResult, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating agents directory %s: %w", dir, err)
	}

	// Validate everything up front so a bad agent aborts before any write.
	contents := make(map[string][]byte, len(names))
	for _, name := range names {
		data, err := kit.Agent(name)
		if err != nil {
			return nil, err
		}
		result, err := ValidateFrontmatter(data)
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", name, err)
		}
		if !result.Valid {
			msgs := make([]string, len(result.Issues))
			for i, issue := range result.Issues {
				msgs[i] = issue.String()
			}
			return nil, fmt.Errorf("agent %s has invalid frontmatter:\n  %s", name, strings.Join(msgs, "\n  "))
		}
		contents[name] = data
	}

	res := &InstallResult{}
	for _, name := range names {
		dst := filepath.Join(dir, name+".md")
		data := contents[name]

		if existing, err := os.ReadFile(dst); err == nil {
			if bytes.Equal(existing, data) {
				res.Unchanged = append(res.Unchanged, name)
				continue
			}
			backup, err := fsutil.BackupSibling(dst)
			if err != nil {
				return nil, err
			}
			res.BackedUp = append(res.BackedUp, filepath.Base(backup))
		}

		if err := fsutil.WriteFileAtomic(dst, data, 0644); err != nil {
			return nil, fmt.Errorf("installing agent %s: %w", name, err)
		}
		res.Installed = append(res.Installed, name)
	}

	return res, nil
}

// Uninstall removes the named kit agents from the Claude agents directory.
// Missing files are skipped. Returns the names actually removed.
func Uninstall(names []string) ([]string, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, name := range names {
		path := filepath.Join(dir, name+".md")
		if !fsutil.Exists(path) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("removing agent %s: %w", name, err)
		}
		removed = append(removed, name)
	}
	return removed, nil
}

// Info describes one file found in the Claude agents directory.
type Info struct {
	File        string // file name, e.g. "project-manager.md"
	Name        string // frontmatter name, empty if unparseable
	Description string
	Managed     bool  // true if the file name matches a kit agent
	Err         error // frontmatter parse/validation problem, if any
}

// List scans the Claude agents directory and returns info for every .md
// file, kit-managed or foreign, sorted by file name. A missing directory
// yields an empty list.
func List(kitAgents []string) ([]Info, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading agents directory: %w", err)
	}

	managed := make(map[string]bool, len(kitAgents))
	for _, name := range kitAgents {
		managed[name+".md"] = true
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		info := Info{
			File:    entry.Name(),
			Managed: managed[entry.Name()],
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			info.Err = err
		} else if fm, _, err := ParseFrontmatter(data); err != nil {
			info.Err = err
		} else {
			info.Name = fm.Name
			info.Description = fm.Description
		}

		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].File < infos[j].File })
	return infos, nil
}
