package agents

import (
	_ "embed"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/docforge-labs/docforge/internal/schema"
)

//go:embed schema/agent.schema.json
var schemaBytes []byte

var agentSchema = schema.New("agent.schema.json", schemaBytes)

// Frontmatter holds the YAML header of a Claude Code agent prompt file.
type Frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Tools       string `yaml:"tools,omitempty"`
	Model       string `yaml:"model,omitempty"`
}

// ParseFrontmatter splits an agent file into its YAML frontmatter and prompt
// body. The file must start with a "---" fence.
func ParseFrontmatter(data []byte) (*Frontmatter, string, error) {
	content := string(data)
	if !strings.HasPrefix(content, "---\n") {
		return nil, "", fmt.Errorf("agent file does not start with YAML frontmatter")
	}

	rest := content[len("---\n"):]
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return nil, "", fmt.Errorf("agent frontmatter is not terminated")
	}

	header := rest[:idx]
	body := rest[idx+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return nil, "", fmt.Errorf("parsing agent frontmatter: %w", err)
	}

	return &fm, body, nil
}

// ValidateFrontmatter checks the YAML header of an agent file against the
// agent schema. The error return is for parse failures; validation issues
// are reported in the Result.
func ValidateFrontmatter(data []byte) (*schema.Result, error) {
	content := string(data)
	if !strings.HasPrefix(content, "---\n") {
		return nil, fmt.Errorf("agent file does not start with YAML frontmatter")
	}
	rest := content[len("---\n"):]
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return nil, fmt.Errorf("agent frontmatter is not terminated")
	}
	return agentSchema.ValidateYAML([]byte(rest[:idx]))
}
