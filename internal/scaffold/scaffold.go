package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/docforge-labs/docforge/internal/fsutil"
	"github.com/docforge-labs/docforge/internal/kit"
	"github.com/docforge-labs/docforge/internal/placeholder"
	"github.com/docforge-labs/docforge/internal/project"
)

// Options controls a single Apply run.
type Options struct {
	ProjectRoot string
	Values      map[string]string
	SkipAgents  bool
	SkipGit     bool
}

// Result reports what Apply did.
type Result struct {
	Rendered       []string // files written this run
	BackedUp       []string // .bak files created before overwriting
	Unchanged      []string // files already identical, left alone
	GitInitialized bool
	Warnings       []string
}

// Apply renders every kit-managed file into the project directory and saves
// the project state. Rendering is total: a template with a token that has
// no value aborts before any file is written. Files whose on-disk content
// already matches the render are untouched; differing files are backed up
// to <name>.bak first, so a rerun never destroys customization.
func Apply(m *kit.Manifest, opts Options) (*Result, *project.Config, error) {
	// Render everything up front so a substitution failure is atomic.
	rendered := make(map[string][]byte, len(m.Files))
	for _, path := range m.ManagedPaths() {
		tmpl, err := kit.Template(path)
		if err != nil {
			return nil, nil, err
		}
		content := placeholder.Apply(string(tmpl), opts.Values)
		if err := placeholder.Unresolved(path, content); err != nil {
			return nil, nil, err
		}
		rendered[path] = []byte(content)
	}

	result := &Result{}
	config := project.New(m.Name, m.Version, opts.Values, project.Options{
		SkipAgents: opts.SkipAgents,
		SkipGit:    opts.SkipGit,
	})

	for _, path := range m.ManagedPaths() {
		dst := filepath.Join(opts.ProjectRoot, path)
		data := rendered[path]

		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return nil, nil, fmt.Errorf("creating directory for %s: %w", path, err)
		}

		if existing, err := os.ReadFile(dst); err == nil {
			if bytes.Equal(existing, data) {
				result.Unchanged = append(result.Unchanged, path)
				config.Rendered[path] = project.ContentHash(data)
				continue
			}
			backup, err := fsutil.BackupSibling(dst)
			if err != nil {
				return nil, nil, err
			}
			result.BackedUp = append(result.BackedUp, filepath.Base(backup))
		}

		if err := fsutil.WriteFileAtomic(dst, data, 0644); err != nil {
			return nil, nil, fmt.Errorf("writing %s: %w", path, err)
		}
		result.Rendered = append(result.Rendered, path)
		config.Rendered[path] = project.ContentHash(data)
	}

	if err := EnsureGitignore(opts.ProjectRoot); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not update .gitignore: %v", err))
	}

	if !opts.SkipGit {
		initialized, warn := initGitRepo(opts.ProjectRoot)
		result.GitInitialized = initialized
		if warn != "" {
			result.Warnings = append(result.Warnings, warn)
		}
	}

	if err := project.Save(opts.ProjectRoot, config); err != nil {
		return nil, nil, err
	}

	return result, config, nil
}

// initGitRepo runs `git init` when the project is not already a repository.
// A missing git binary is a warning, not an error.
func initGitRepo(projectRoot string) (bool, string) {
	if fsutil.IsDir(filepath.Join(projectRoot, ".git")) {
		return false, ""
	}

	gitPath, err := exec.LookPath("git")
	if err != nil {
		return false, "git not found — skipping repository initialization"
	}

	cmd := exec.Command(gitPath, "init")
	cmd.Dir = projectRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		return false, fmt.Sprintf("git init failed: %v (%s)", err, bytes.TrimSpace(out))
	}
	return true, ""
}
