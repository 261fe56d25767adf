// Package kit carries the embedded documentation-workflow template pack:
// the kit manifest (kit.yaml), the markdown templates rendered into a
// project, and the Claude Code agent prompt files. The manifest is
// validated against a JSON Schema on load.
package kit
