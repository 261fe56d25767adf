package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docforge-labs/docforge/internal/fsutil"
	"github.com/docforge-labs/docforge/internal/kit"
	"github.com/docforge-labs/docforge/internal/placeholder"
	"github.com/docforge-labs/docforge/internal/project"
)

// UpgradeResult reports what Upgrade did.
type UpgradeResult struct {
	From      string
	To        string
	UpToDate  bool     // already on the embedded kit version
	Upgraded  []string // files re-rendered
	Skipped   []string // customized files left alone
	BackedUp  []string // .bak files created under --force
}

// Upgrade re-renders managed files for a project that was set up with an
// older kit version, using the answers recorded at setup time. Files the
// user has customized since setup (content hash mismatch) are skipped
// unless force is set, in which case they are backed up first.
func Upgrade(m *kit.Manifest, projectRoot string, force bool) (*UpgradeResult, error) {
	config, err := project.Load(projectRoot)
	if err != nil {
		return nil, err
	}

	result := &UpgradeResult{From: config.KitVersion, To: m.Version}

	newer, err := kit.IsUpgradeAvailable(config.KitVersion, m.Version)
	if err != nil {
		return nil, err
	}
	if !newer && !force {
		result.UpToDate = true
		return result, nil
	}

	for _, path := range m.ManagedPaths() {
		tmpl, err := kit.Template(path)
		if err != nil {
			return nil, err
		}
		content := placeholder.Apply(string(tmpl), config.Answers)
		if err := placeholder.Unresolved(path, content); err != nil {
			return nil, err
		}
		data := []byte(content)
		dst := filepath.Join(projectRoot, path)

		if fsutil.Exists(dst) && config.IsCustomized(projectRoot, path) {
			if !force {
				result.Skipped = append(result.Skipped, path)
				continue
			}
			backup, err := fsutil.BackupSibling(dst)
			if err != nil {
				return nil, err
			}
			result.BackedUp = append(result.BackedUp, filepath.Base(backup))
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", path, err)
		}
		if err := fsutil.WriteFileAtomic(dst, data, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		result.Upgraded = append(result.Upgraded, path)
		config.Rendered[path] = project.ContentHash(data)
	}

	config.KitName = m.Name
	config.KitVersion = m.Version
	if err := project.Save(projectRoot, config); err != nil {
		return nil, err
	}

	return result, nil
}
