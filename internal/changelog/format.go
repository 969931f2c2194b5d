package changelog

import "strings"

// VersionFromTag converts a git tag name to a changelog version by stripping
// a single leading "v". Tags like "v1.2.0" and "1.2.0" both yield "1.2.0".
func VersionFromTag(tag string) string {
	return strings.TrimPrefix(strings.TrimSpace(tag), "v")
}

// FormatLines normalizes derived change lines: trims whitespace, drops blank
// lines, and prefixes each remaining line with the configured bullet marker.
// The bullet is applied per line, after splitting, because dch takes one line
// per invocation. An empty bullet leaves lines untouched (dch adds its own).
func FormatLines(lines []string, bullet string) []string {
	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if bullet != "" {
			line = bullet + " " + line
		}
		out = append(out, line)
	}
	return out
}

// Render returns a human-readable preview of the entry for dry-run output.
func Render(e Entry) string {
	var sb strings.Builder
	sb.WriteString("Version: ")
	sb.WriteString(e.Version)
	sb.WriteString("\n")
	for _, line := range e.Lines {
		sb.WriteString("  ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
