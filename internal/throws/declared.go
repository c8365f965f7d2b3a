package throws

import "strings"

// Declared extracts the exception types a doc block declares with @throws
// tags. Names are returned as written (minus a leading namespace-root
// marker), deduplicated in first-seen order; resolution to canonical
// identities is the caller's job. No tag means an empty result: the method
// declares that it throws nothing.
func Declared(doc string) []string {
	if doc == "" {
		return nil
	}

	var out []string
	seen := map[string]bool{}
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "/**")
		line = strings.TrimSuffix(line, "*/")
		line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
		if !strings.HasPrefix(line, "@throws") {
			continue
		}
		rest := strings.TrimPrefix(line, "@throws")
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			// A longer tag such as @throwsSomething, not ours.
			continue
		}
		rest = strings.TrimSpace(rest)
		if rest == "" {
			// Bare tag with no type token.
			continue
		}
		token := strings.Fields(rest)[0]
		for _, name := range strings.Split(token, "|") {
			name = strings.TrimPrefix(strings.TrimSpace(name), "\\")
			if name == "" || seen[strings.ToLower(name)] {
				continue
			}
			seen[strings.ToLower(name)] = true
			out = append(out, name)
		}
	}
	return out
}
