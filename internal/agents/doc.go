// Package agents installs, lists, and removes Claude Code agent prompt
// files in ~/.claude/agents. Agent files carry YAML frontmatter (name,
// description, tools, model) validated against a JSON Schema; the prompt
// body below the frontmatter is inert text this tool never interprets.
package agents
