package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docforge-labs/docforge/internal/kit"
	"github.com/docforge-labs/docforge/internal/placeholder"
	"github.com/docforge-labs/docforge/internal/project"
)

func testValues(t *testing.T, m *kit.Manifest) map[string]string {
	t.Helper()
	values, err := CollectValues(m, map[string]string{
		"PROJECT_NAME":        "widget-api",
		"PROJECT_DESCRIPTION": "A REST API for widgets.",
	}, false, strings.NewReader(""), os.Stderr)
	if err != nil {
		t.Fatalf("CollectValues: %v", err)
	}
	return values
}

func TestApplyFresh(t *testing.T) {
	m, err := kit.Load()
	if err != nil {
		t.Fatalf("kit.Load: %v", err)
	}
	root := t.TempDir()

	result, config, err := Apply(m, Options{
		ProjectRoot: root,
		Values:      testValues(t, m),
		SkipGit:     true,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(result.Rendered) != len(m.Files) {
		t.Errorf("Rendered %d files, want %d", len(result.Rendered), len(m.Files))
	}

	// Substitution is total: no bracket tokens remain in any managed file.
	for _, path := range m.ManagedPaths() {
		data, err := os.ReadFile(filepath.Join(root, path))
		if err != nil {
			t.Fatalf("reading %s: %v", path, err)
		}
		if tokens := placeholder.Scan(string(data)); len(tokens) > 0 {
			t.Errorf("%s has unresolved tokens: %v", path, tokens)
		}
	}

	// CLAUDE.md got the substituted project name.
	claude, _ := os.ReadFile(filepath.Join(root, "CLAUDE.md"))
	if !strings.Contains(string(claude), "# widget-api") {
		t.Errorf("CLAUDE.md missing project name:\n%s", claude)
	}

	// Project state recorded.
	if config.KitVersion != m.Version {
		t.Errorf("config.KitVersion = %q, want %q", config.KitVersion, m.Version)
	}
	loaded, err := project.Load(root)
	if err != nil {
		t.Fatalf("project.Load: %v", err)
	}
	if loaded.Answers["PROJECT_NAME"] != "widget-api" {
		t.Errorf("recorded answers = %v", loaded.Answers)
	}
	if len(loaded.Rendered) != len(m.Files) {
		t.Errorf("recorded %d hashes, want %d", len(loaded.Rendered), len(m.Files))
	}

	// Backups dir is ignored.
	gi, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		t.Fatalf("reading .gitignore: %v", err)
	}
	if !strings.Contains(string(gi), gitignoreEntry) {
		t.Errorf(".gitignore missing %q", gitignoreEntry)
	}
}

func TestApplyRerunPreservesCustomization(t *testing.T) {
	m, err := kit.Load()
	if err != nil {
		t.Fatalf("kit.Load: %v", err)
	}
	root := t.TempDir()
	values := testValues(t, m)

	if _, _, err := Apply(m, Options{ProjectRoot: root, Values: values, SkipGit: true}); err != nil {
		t.Fatalf("first Apply: %v", err)
	}

	// User customizes CLAUDE.md.
	claudePath := filepath.Join(root, "CLAUDE.md")
	custom := []byte("# my own notes\n")
	if err := os.WriteFile(claudePath, custom, 0644); err != nil {
		t.Fatalf("customizing: %v", err)
	}

	result, _, err := Apply(m, Options{ProjectRoot: root, Values: values, SkipGit: true})
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}

	backup, err := os.ReadFile(claudePath + ".bak")
	if err != nil {
		t.Fatalf("expected CLAUDE.md.bak after rerun: %v", err)
	}
	if string(backup) != string(custom) {
		t.Errorf("backup content = %q, want %q", backup, custom)
	}

	found := false
	for _, b := range result.BackedUp {
		if b == "CLAUDE.md.bak" {
			found = true
		}
	}
	if !found {
		t.Errorf("BackedUp = %v, want CLAUDE.md.bak", result.BackedUp)
	}
}

func TestApplyRerunUnchanged(t *testing.T) {
	m, err := kit.Load()
	if err != nil {
		t.Fatalf("kit.Load: %v", err)
	}
	root := t.TempDir()
	values := testValues(t, m)

	if _, _, err := Apply(m, Options{ProjectRoot: root, Values: values, SkipGit: true}); err != nil {
		t.Fatalf("first Apply: %v", err)
	}

	result, _, err := Apply(m, Options{ProjectRoot: root, Values: values, SkipGit: true})
	if err != nil {
		t.Fatalf("second Apply: %v", err)
	}

	if len(result.Rendered) != 0 {
		t.Errorf("second run rendered %v, want nothing", result.Rendered)
	}
	if len(result.Unchanged) != len(m.Files) {
		t.Errorf("Unchanged = %d files, want %d", len(result.Unchanged), len(m.Files))
	}
}

func TestApplyUnresolvedTokenAborts(t *testing.T) {
	m, err := kit.Load()
	if err != nil {
		t.Fatalf("kit.Load: %v", err)
	}
	root := t.TempDir()

	// Values missing most placeholders: rendering must abort before any write.
	_, _, err = Apply(m, Options{
		ProjectRoot: root,
		Values:      map[string]string{"PROJECT_NAME": "x"},
		SkipGit:     true,
	})
	if err == nil {
		t.Fatal("expected error for unresolved placeholders")
	}

	entries, _ := os.ReadDir(root)
	if len(entries) != 0 {
		t.Errorf("failed Apply left files behind: %v", entries)
	}
}

func TestCollectValuesDefaults(t *testing.T) {
	m, err := kit.Load()
	if err != nil {
		t.Fatalf("kit.Load: %v", err)
	}

	values, err := CollectValues(m, map[string]string{
		"PROJECT_NAME":        "x",
		"PROJECT_DESCRIPTION": "y",
	}, false, strings.NewReader(""), os.Stderr)
	if err != nil {
		t.Fatalf("CollectValues: %v", err)
	}

	if values["BUILD_COMMAND"] != "make build" {
		t.Errorf("BUILD_COMMAND = %q, want declared default", values["BUILD_COMMAND"])
	}
	if values[SetupDatePlaceholder] == "" {
		t.Error("SETUP_DATE should be auto-filled")
	}
}

func TestCollectValuesMissingRequired(t *testing.T) {
	m, err := kit.Load()
	if err != nil {
		t.Fatalf("kit.Load: %v", err)
	}

	_, err = CollectValues(m, nil, false, strings.NewReader(""), os.Stderr)
	if err == nil {
		t.Fatal("expected error for missing required placeholder")
	}
	if !strings.Contains(err.Error(), "PROJECT_NAME") {
		t.Errorf("error should name the placeholder: %v", err)
	}
}

func TestCollectValuesInteractive(t *testing.T) {
	m, err := kit.Load()
	if err != nil {
		t.Fatalf("kit.Load: %v", err)
	}

	// One answer per placeholder that prompts: the two required ones answer
	// explicitly, the defaulted ones accept the default with blank lines.
	input := "widget-api\nA REST API.\n\n\n\n\n\n\n"
	var out strings.Builder

	values, err := CollectValues(m, nil, true, strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("CollectValues: %v", err)
	}

	if values["PROJECT_NAME"] != "widget-api" {
		t.Errorf("PROJECT_NAME = %q", values["PROJECT_NAME"])
	}
	if values["PROJECT_DESCRIPTION"] != "A REST API." {
		t.Errorf("PROJECT_DESCRIPTION = %q", values["PROJECT_DESCRIPTION"])
	}
	if values["TEST_COMMAND"] != "make test" {
		t.Errorf("TEST_COMMAND = %q, want default", values["TEST_COMMAND"])
	}
	if !strings.Contains(out.String(), "[make build]") {
		t.Errorf("prompt output should show defaults, got:\n%s", out.String())
	}
}

func TestEnsureGitignore(t *testing.T) {
	root := t.TempDir()

	if err := EnsureGitignore(root); err != nil {
		t.Fatalf("EnsureGitignore: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(root, ".gitignore"))
	if !strings.Contains(string(data), gitignoreEntry) {
		t.Errorf(".gitignore = %q", data)
	}

	// Idempotent.
	if err := EnsureGitignore(root); err != nil {
		t.Fatalf("second EnsureGitignore: %v", err)
	}
	data2, _ := os.ReadFile(filepath.Join(root, ".gitignore"))
	if string(data) != string(data2) {
		t.Error("EnsureGitignore is not idempotent")
	}
}

func TestEnsureGitignoreNoTrailingNewline(t *testing.T) {
	root := t.TempDir()
	os.WriteFile(filepath.Join(root, ".gitignore"), []byte("node_modules"), 0644)

	if err := EnsureGitignore(root); err != nil {
		t.Fatalf("EnsureGitignore: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(root, ".gitignore"))
	if !strings.Contains(string(data), "node_modules\n"+gitignoreEntry) {
		t.Errorf(".gitignore = %q", data)
	}
}
