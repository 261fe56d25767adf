package kit

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/docforge-labs/docforge/internal/schema"
)

//go:embed assets
var assetsFS embed.FS

//go:embed schema/kit.schema.json
var schemaBytes []byte

var kitSchema = schema.New("kit.schema.json", schemaBytes)

// Placeholder declares a substitution token used by the kit templates.
type Placeholder struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Default     string `yaml:"default,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
}

// ManagedFile is a single file the kit renders into a project.
type ManagedFile struct {
	Path        string `yaml:"path"`
	Description string `yaml:"description,omitempty"`
}

// Manifest describes the embedded template kit: its version, the
// placeholders its templates use, the files it manages in a project, and
// the agent prompts it installs.
type Manifest struct {
	Name         string        `yaml:"name"`
	Version      string        `yaml:"version"`
	Description  string        `yaml:"description"`
	Placeholders []Placeholder `yaml:"placeholders"`
	Files        []ManagedFile `yaml:"files"`
	Agents       []string      `yaml:"agents"`
}

// Load parses and validates the embedded kit manifest.
func Load() (*Manifest, error) {
	data, err := assetsFS.ReadFile("assets/kit.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded kit manifest: %w", err)
	}

	result, err := kitSchema.ValidateYAML(data)
	if err != nil {
		return nil, fmt.Errorf("validating kit manifest: %w", err)
	}
	if !result.Valid {
		msgs := make([]string, len(result.Issues))
		for i, issue := range result.Issues {
			msgs[i] = issue.String()
		}
		return nil, fmt.Errorf("kit manifest is invalid:\n  %s", strings.Join(msgs, "\n  "))
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing kit manifest: %w", err)
	}

	return &m, nil
}

// Validate validates raw kit manifest YAML against the kit schema.
// Used by doctor to check the embedded manifest without loading it.
func Validate(data []byte) (*schema.Result, error) {
	return kitSchema.ValidateYAML(data)
}

// RawManifest returns the embedded kit.yaml bytes.
func RawManifest() ([]byte, error) {
	return assetsFS.ReadFile("assets/kit.yaml")
}

// Template returns the content of a kit template by its project-relative
// path, e.g. "planning-docs/CURRENT_STATUS.md".
func Template(relPath string) ([]byte, error) {
	data, err := assetsFS.ReadFile(path.Join("assets/templates", relPath))
	if err != nil {
		return nil, fmt.Errorf("reading kit template %s: %w", relPath, err)
	}
	return data, nil
}

// Agent returns the content of an embedded agent prompt file by name,
// e.g. "project-manager".
func Agent(name string) ([]byte, error) {
	data, err := assetsFS.ReadFile(path.Join("assets/agents", name+".md"))
	if err != nil {
		return nil, fmt.Errorf("reading kit agent %s: %w", name, err)
	}
	return data, nil
}

// TemplatePaths lists all template files in the embedded kit, relative to
// the project root, sorted.
func TemplatePaths() ([]string, error) {
	var paths []string
	err := fs.WalkDir(assetsFS, "assets/templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		paths = append(paths, strings.TrimPrefix(p, "assets/templates/"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking kit templates: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// FindPlaceholder returns the declaration for a placeholder name, or nil.
func (m *Manifest) FindPlaceholder(name string) *Placeholder {
	for i := range m.Placeholders {
		if m.Placeholders[i].Name == name {
			return &m.Placeholders[i]
		}
	}
	return nil
}

// ManagedPaths returns the project-relative paths of every file the kit
// manages, in manifest order.
func (m *Manifest) ManagedPaths() []string {
	paths := make([]string, len(m.Files))
	for i, f := range m.Files {
		paths[i] = f.Path
	}
	return paths
}

// ManagedDirs returns the top-level directories the kit creates in a
// project (e.g. "planning-docs", "docs"), sorted.
func (m *Manifest) ManagedDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, f := range m.Files {
		dir, _, found := strings.Cut(f.Path, "/")
		if found && !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}
