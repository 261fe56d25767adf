package scaffold

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/docforge-labs/docforge/internal/kit"
)

// SetupDatePlaceholder is filled automatically with today's date rather
// than prompted for.
const SetupDatePlaceholder = "SETUP_DATE"

// CollectValues resolves a value for every placeholder the kit declares,
// in manifest order. Resolution order per placeholder: preset (flags or
// recorded answers), automatic fill, interactive prompt, declared default.
// A required placeholder with no value is an error.
func CollectValues(m *kit.Manifest, preset map[string]string, interactive bool, r io.Reader, w io.Writer) (map[string]string, error) {
	values := make(map[string]string, len(m.Placeholders))
	reader := bufio.NewReader(r)

	for _, p := range m.Placeholders {
		if v, ok := preset[p.Name]; ok && v != "" {
			values[p.Name] = v
			continue
		}

		if p.Name == SetupDatePlaceholder {
			values[p.Name] = time.Now().Format("2006-01-02")
			continue
		}

		if interactive {
			v, err := promptValue(reader, w, &p)
			if err != nil {
				return nil, err
			}
			if v != "" {
				values[p.Name] = v
				continue
			}
		}

		if p.Default != "" {
			values[p.Name] = p.Default
			continue
		}

		if p.Required {
			return nil, fmt.Errorf("placeholder %s is required and has no value", p.Name)
		}
		values[p.Name] = ""
	}

	return values, nil
}

// promptValue asks for one placeholder value on the terminal. An empty
// answer means "use the default" (or, for required placeholders, ask again
// up to three times).
func promptValue(reader *bufio.Reader, w io.Writer, p *kit.Placeholder) (string, error) {
	label := p.Description
	if label == "" {
		label = p.Name
	}

	attempts := 1
	if p.Required && p.Default == "" {
		attempts = 3
	}

	for i := 0; i < attempts; i++ {
		if p.Default != "" {
			fmt.Fprintf(w, "%s [%s]: ", label, p.Default)
		} else {
			fmt.Fprintf(w, "%s: ", label)
		}

		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", fmt.Errorf("reading input for %s: %w", p.Name, err)
		}
		answer := strings.TrimSpace(line)
		if answer != "" {
			return answer, nil
		}
		if !p.Required || p.Default != "" {
			return "", nil
		}
		fmt.Fprintf(w, "A value is required.\n")
		if err == io.EOF {
			break
		}
	}

	return "", fmt.Errorf("placeholder %s is required and has no value", p.Name)
}
