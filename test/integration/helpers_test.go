//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docforge-labs/docforge/internal/kit"
	"github.com/docforge-labs/docforge/internal/scaffold"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	ClaudeDir  string // DOCFORGE_CLAUDE_DIR — fake ~/.claude
	ProjectDir string // the project being set up
}

// setupTestEnv creates isolated temp directories and points the agent
// install location at a sandbox so nothing touches the real ~/.claude.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		ClaudeDir:  t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	t.Setenv("DOCFORGE_CLAUDE_DIR", env.ClaudeDir)
	return env
}

// loadKit loads the embedded kit manifest or fails the test.
func loadKit(t *testing.T) *kit.Manifest {
	t.Helper()
	m, err := kit.Load()
	if err != nil {
		t.Fatalf("kit.Load: %v", err)
	}
	return m
}

// applyWorkflow runs a full non-interactive setup into the project dir.
func applyWorkflow(t *testing.T, m *kit.Manifest, env *testEnv) *scaffold.Result {
	t.Helper()

	values, err := scaffold.CollectValues(m, map[string]string{
		"PROJECT_NAME":        "widget-api",
		"PROJECT_DESCRIPTION": "A REST API for widgets.",
		"TECH_STACK":          "Go, PostgreSQL",
	}, false, strings.NewReader(""), os.Stderr)
	if err != nil {
		t.Fatalf("CollectValues: %v", err)
	}

	result, _, err := scaffold.Apply(m, scaffold.Options{
		ProjectRoot: env.ProjectDir,
		Values:      values,
		SkipGit:     true,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	return result
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file %s: %v", path, err)
	}
}

func assertFileMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected %s to be absent", path)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, elem ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(elem...))
	if err != nil {
		t.Fatalf("reading %v: %v", elem, err)
	}
	return string(data)
}
