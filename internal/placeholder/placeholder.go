// Package placeholder implements literal [TOKEN] substitution for template
// kit files. Tokens are uppercase bracketed names like [PROJECT_NAME]; there
// is no expression language, only whole-token textual replacement.
package placeholder

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches a bracketed uppercase token such as [PROJECT_NAME].
// A token followed by "(" is skipped so markdown links like [API](...) are
// not mistaken for placeholders.
var tokenPattern = regexp.MustCompile(`\[([A-Z][A-Z0-9_]*)\](\(?)`)

// Token returns the literal bracket form of a placeholder name,
// e.g. Token("PROJECT_NAME") → "[PROJECT_NAME]".
func Token(name string) string {
	return "[" + name + "]"
}

// Apply replaces every occurrence of each declared token in content with its
// value. Tokens not present in values are left untouched so callers can
// detect them with Scan.
func Apply(content string, values map[string]string) string {
	// Replace longer names first so [PROJECT_NAME] is never clipped by a
	// hypothetical [PROJECT] value.
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		content = strings.ReplaceAll(content, Token(name), values[name])
	}
	return content
}

// Scan returns the distinct placeholder tokens remaining in content, in order
// of first appearance. Markdown link labels are excluded.
func Scan(content string) []string {
	var found []string
	seen := make(map[string]bool)

	for _, m := range tokenPattern.FindAllStringSubmatch(content, -1) {
		if m[2] == "(" {
			continue // markdown link, not a placeholder
		}
		name := m[1]
		if !seen[name] {
			seen[name] = true
			found = append(found, name)
		}
	}
	return found
}

// Unresolved reports an error listing any tokens that remain in content after
// substitution. The name parameter identifies the file for the error message.
func Unresolved(name, content string) error {
	tokens := Scan(content)
	if len(tokens) == 0 {
		return nil
	}
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = Token(tok)
	}
	return fmt.Errorf("%s: unresolved placeholders: %s", name, strings.Join(quoted, ", "))
}
