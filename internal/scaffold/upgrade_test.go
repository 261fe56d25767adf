package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docforge-labs/docforge/internal/kit"
	"github.com/docforge-labs/docforge/internal/project"
)

func applyKit(t *testing.T) (*kit.Manifest, string) {
	t.Helper()
	m, err := kit.Load()
	if err != nil {
		t.Fatalf("kit.Load: %v", err)
	}
	root := t.TempDir()
	if _, _, err := Apply(m, Options{ProjectRoot: root, Values: testValues(t, m), SkipGit: true}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	return m, root
}

func TestUpgradeUpToDate(t *testing.T) {
	m, root := applyKit(t)

	result, err := Upgrade(m, root, false)
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	if !result.UpToDate {
		t.Error("expected UpToDate for current kit version")
	}
	if len(result.Upgraded) != 0 {
		t.Errorf("Upgraded = %v", result.Upgraded)
	}
}

func TestUpgradeFromOlderVersion(t *testing.T) {
	m, root := applyKit(t)

	// Pretend the project was set up with an older kit.
	config, err := project.Load(root)
	if err != nil {
		t.Fatalf("project.Load: %v", err)
	}
	config.KitVersion = "0.9.0"
	if err := project.Save(root, config); err != nil {
		t.Fatalf("project.Save: %v", err)
	}

	result, err := Upgrade(m, root, false)
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	if result.UpToDate {
		t.Fatal("expected an upgrade from 0.9.0")
	}
	if result.From != "0.9.0" || result.To != m.Version {
		t.Errorf("From/To = %s/%s", result.From, result.To)
	}
	if len(result.Upgraded) != len(m.Files) {
		t.Errorf("Upgraded %d files, want %d", len(result.Upgraded), len(m.Files))
	}

	updated, err := project.Load(root)
	if err != nil {
		t.Fatalf("project.Load after upgrade: %v", err)
	}
	if updated.KitVersion != m.Version {
		t.Errorf("KitVersion = %q, want %q", updated.KitVersion, m.Version)
	}
}

func TestUpgradeSkipsCustomizedFiles(t *testing.T) {
	m, root := applyKit(t)

	custom := []byte("# my customized guidance\n")
	claudePath := filepath.Join(root, "CLAUDE.md")
	os.WriteFile(claudePath, custom, 0644)

	config, _ := project.Load(root)
	config.KitVersion = "0.9.0"
	project.Save(root, config)

	result, err := Upgrade(m, root, false)
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}

	found := false
	for _, s := range result.Skipped {
		if s == "CLAUDE.md" {
			found = true
		}
	}
	if !found {
		t.Errorf("CLAUDE.md should be skipped, got Skipped=%v", result.Skipped)
	}

	data, _ := os.ReadFile(claudePath)
	if string(data) != string(custom) {
		t.Error("upgrade overwrote a customized file without force")
	}
}

func TestUpgradeForceBacksUpCustomizedFiles(t *testing.T) {
	m, root := applyKit(t)

	custom := []byte("# my customized guidance\n")
	claudePath := filepath.Join(root, "CLAUDE.md")
	os.WriteFile(claudePath, custom, 0644)

	config, _ := project.Load(root)
	config.KitVersion = "0.9.0"
	project.Save(root, config)

	result, err := Upgrade(m, root, true)
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}

	if len(result.BackedUp) == 0 {
		t.Fatal("expected backups under force")
	}
	backup, err := os.ReadFile(claudePath + ".bak")
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if string(backup) != string(custom) {
		t.Errorf("backup content = %q", backup)
	}

	data, _ := os.ReadFile(claudePath)
	if !strings.Contains(string(data), "# widget-api") {
		t.Error("force upgrade should re-render the file")
	}
}

func TestUpgradeRestoresMissingFileWithoutRenderedState(t *testing.T) {
	m, root := applyKit(t)

	// Simulate a hand-edited project.yaml with the rendered block stripped
	// and a managed file deleted from disk.
	config, err := project.Load(root)
	if err != nil {
		t.Fatalf("project.Load: %v", err)
	}
	config.Rendered = nil
	config.KitVersion = "0.9.0"
	if err := project.Save(root, config); err != nil {
		t.Fatalf("project.Save: %v", err)
	}
	os.Remove(filepath.Join(root, "CLAUDE.md"))

	result, err := Upgrade(m, root, false)
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}

	found := false
	for _, p := range result.Upgraded {
		if p == "CLAUDE.md" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing file should be re-rendered, got Upgraded=%v", result.Upgraded)
	}
	if _, err := os.Stat(filepath.Join(root, "CLAUDE.md")); err != nil {
		t.Errorf("CLAUDE.md not restored: %v", err)
	}

	// With no recorded hashes, surviving files count as customized and stay.
	if len(result.Skipped) != len(m.Files)-1 {
		t.Errorf("Skipped %d files, want %d", len(result.Skipped), len(m.Files)-1)
	}
}

func TestUpgradeUninitializedProject(t *testing.T) {
	m, err := kit.Load()
	if err != nil {
		t.Fatalf("kit.Load: %v", err)
	}
	if _, err := Upgrade(m, t.TempDir(), false); err == nil {
		t.Fatal("expected error for uninitialized project")
	}
}
