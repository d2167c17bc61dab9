package services

import "strings"

// ParseNames splits a model response into trimmed, non-empty artist names.
//
// One name per line, order preserved. No dedup and no further validation:
// the prompt's rules are advisory, so duplicates and odd casing pass through
// for downstream consumers to tolerate.
func ParseNames(response string) []string {
	lines := strings.Split(strings.TrimSpace(response), "\n")

	names := make([]string, 0, len(lines))
	for _, line := range lines {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}

	return names
}
