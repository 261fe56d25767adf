// Package cleanup removes kit-managed files from a project, optionally
// snapshotting them into .docforge/backups/ first. Cleanup is the inverse
// of setup: managed files and the directories they created go away, the
// snapshot directory survives so nothing is ever lost outright.
package cleanup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/docforge-labs/docforge/internal/fsutil"
	"github.com/docforge-labs/docforge/internal/kit"
	"github.com/docforge-labs/docforge/internal/project"
)

// Plan lists the kit artifacts present in a project.
type Plan struct {
	Files []string // managed files found, project-relative
	Dirs  []string // managed directories found
	State bool     // .docforge/project.yaml present
}

// Empty reports whether there is nothing to clean.
func (p *Plan) Empty() bool {
	return len(p.Files) == 0 && len(p.Dirs) == 0 && !p.State
}

// Options controls a cleanup run. Callers wanting a dry run inspect
// BuildPlan instead of calling Run.
type Options struct {
	Backup bool // snapshot files into .docforge/backups/ before removal
}

// Result reports what Run removed.
type Result struct {
	Removed     []string
	RemovedDirs []string
	SnapshotDir string // empty when no snapshot was taken
}

// snapshotManifest is written as snapshot.yaml inside each backup snapshot.
type snapshotManifest struct {
	ID        string   `yaml:"id"`
	CreatedAt string   `yaml:"created_at"`
	KitName   string   `yaml:"kit_name"`
	Files     []string `yaml:"files"`
}

// BuildPlan inspects the project for kit-managed artifacts.
// Managed files also cover their .bak siblings left by setup reruns.
func BuildPlan(m *kit.Manifest, projectRoot string) *Plan {
	plan := &Plan{}

	for _, path := range m.ManagedPaths() {
		if fsutil.Exists(filepath.Join(projectRoot, path)) {
			plan.Files = append(plan.Files, path)
		}
		if fsutil.Exists(filepath.Join(projectRoot, path+".bak")) {
			plan.Files = append(plan.Files, path+".bak")
		}
	}

	for _, dir := range m.ManagedDirs() {
		if fsutil.IsDir(filepath.Join(projectRoot, dir)) {
			plan.Dirs = append(plan.Dirs, dir)
		}
	}

	plan.State = project.Exists(projectRoot)
	return plan
}

// Run executes the plan: snapshot (unless disabled), remove managed files,
// remove managed directories that are left empty, and drop the project
// state file. The backups directory is preserved across cleanups.
func Run(m *kit.Manifest, projectRoot string, opts Options) (*Result, error) {
	plan := BuildPlan(m, projectRoot)
	result := &Result{}

	if plan.Empty() {
		return result, nil
	}

	if opts.Backup && len(plan.Files) > 0 {
		snapDir, err := snapshot(m, projectRoot, plan.Files)
		if err != nil {
			return nil, err
		}
		result.SnapshotDir = snapDir
	}

	for _, path := range plan.Files {
		if err := os.Remove(filepath.Join(projectRoot, path)); err != nil && !os.IsNotExist(err) {
			return result, fmt.Errorf("removing %s: %w", path, err)
		}
		result.Removed = append(result.Removed, path)
	}

	// Remove managed directories only when nothing foreign is left inside.
	for _, dir := range plan.Dirs {
		full := filepath.Join(projectRoot, dir)
		entries, err := os.ReadDir(full)
		if err != nil {
			continue
		}
		if len(entries) == 0 {
			if err := os.Remove(full); err == nil {
				result.RemovedDirs = append(result.RemovedDirs, dir)
			}
		}
	}

	if plan.State {
		if err := os.Remove(project.ConfigPath(projectRoot)); err != nil && !os.IsNotExist(err) {
			return result, fmt.Errorf("removing project state: %w", err)
		}
		// Drop the state dir too if no snapshots were kept.
		stateDir := filepath.Join(projectRoot, project.StateDir)
		if entries, err := os.ReadDir(stateDir); err == nil && len(entries) == 0 {
			os.Remove(stateDir)
		}
	}

	return result, nil
}

// snapshot copies the listed files into a fresh
// .docforge/backups/<timestamp>-<id>/ directory and writes snapshot.yaml.
func snapshot(m *kit.Manifest, projectRoot string, files []string) (string, error) {
	id := uuid.NewString()[:8]
	name := time.Now().Format("20060102-150405") + "-" + id
	snapDir := filepath.Join(project.BackupsPath(projectRoot), name)

	for _, path := range files {
		src := filepath.Join(projectRoot, path)
		dst := filepath.Join(snapDir, path)
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return "", fmt.Errorf("creating snapshot directory: %w", err)
		}
		if err := fsutil.CopyFile(src, dst); err != nil {
			return "", fmt.Errorf("snapshotting %s: %w", path, err)
		}
	}

	manifest := snapshotManifest{
		ID:        id,
		CreatedAt: time.Now().Format(time.RFC3339),
		KitName:   m.Name,
		Files:     files,
	}
	data, err := yaml.Marshal(&manifest)
	if err != nil {
		return "", fmt.Errorf("marshaling snapshot manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(snapDir, "snapshot.yaml"), data, 0644); err != nil {
		return "", fmt.Errorf("writing snapshot manifest: %w", err)
	}

	return snapDir, nil
}
