package skill

import "strings"

// Serialize renders a frontmatter and markdown body into a complete SKILL.md
// document. Fields equal to their defaults are omitted to keep the output
// minimal and diff-friendly for version-controlled skill directories.
func Serialize(fm Frontmatter, content string) string {
	lines := []string{delimiter}

	if fm.Name != "" {
		lines = append(lines, "name: "+quote(fm.Name))
	}
	if fm.Description != "" {
		lines = append(lines, "description: "+quote(fm.Description))
	}
	if fm.ArgumentHint != "" {
		lines = append(lines, "argument-hint: "+quote(fm.ArgumentHint))
	}
	if fm.DisableModelInvocation {
		lines = append(lines, "disable-model-invocation: true")
	}
	if !fm.UserInvocable {
		lines = append(lines, "user-invocable: false")
	}
	if fm.AllowedTools != "" {
		// Emitted unquoted for compatibility with existing skill collections.
		lines = append(lines, "allowed-tools: "+fm.AllowedTools)
	}
	if fm.Model != "" {
		lines = append(lines, "model: "+quote(fm.Model))
	}
	if fm.Context != "" {
		lines = append(lines, "context: "+quote(fm.Context))
	}
	if fm.Agent != "" {
		lines = append(lines, "agent: "+quote(fm.Agent))
	}
	if fm.HooksRaw != "" {
		// The raw hooks YAML goes back out verbatim as an indented block.
		lines = append(lines, "hooks:")
		trimmed := strings.Trim(fm.HooksRaw, "\n")
		for _, hookLine := range strings.Split(trimmed, "\n") {
			lines = append(lines, "  "+hookLine)
		}
	}

	lines = append(lines, delimiter, "")

	body := strings.Trim(content, "\n\r")
	if body != "" {
		lines = append(lines, body, "")
	}

	return strings.Join(lines, "\n")
}

// quote wraps a string value in double quotes, escaping characters that a
// YAML parser would otherwise misinterpret.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
