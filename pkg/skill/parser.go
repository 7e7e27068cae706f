package skill

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrMalformedFrontmatter indicates a structurally invalid frontmatter block
// (invalid YAML, or a top-level value that is not a mapping).
var ErrMalformedFrontmatter = errors.New("malformed frontmatter")

const delimiter = "---"

// Parse splits a SKILL.md (or legacy command .md) file content into its
// frontmatter and markdown body. A file without a frontmatter block, or with
// an empty one, yields the default frontmatter and the whole content as body.
func Parse(content string) (Frontmatter, string, error) {
	block, body, ok := SplitContent(content)
	if !ok || strings.TrimSpace(block) == "" {
		return DefaultFrontmatter(), body, nil
	}
	fm, err := ParseFrontmatter(block)
	if err != nil {
		return Frontmatter{}, "", err
	}
	return fm, body, nil
}

// SplitContent extracts the YAML frontmatter block and the markdown body from
// raw file content. Line endings are normalized to \n and a leading BOM is
// stripped before scanning. When no well-formed frontmatter block is found,
// ok is false and body is the entire (normalized) content.
func SplitContent(content string) (frontmatter, body string, ok bool) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")

	stripped := strings.TrimPrefix(normalized, "\uFEFF")
	if !strings.HasPrefix(stripped, delimiter+"\n") && stripped != delimiter {
		return "", normalized, false
	}

	var afterOpen string
	if len(stripped) > len(delimiter)+1 {
		afterOpen = stripped[len(delimiter)+1:]
	}

	start, end, found := findClosingDelimiter(afterOpen)
	if !found {
		// No closing delimiter: the whole file is body text.
		return "", normalized, false
	}

	frontmatter = afterOpen[:start]
	body = afterOpen[end:]
	// Drop the single blank line conventionally separating frontmatter and body.
	body = strings.TrimPrefix(body, "\n")
	return frontmatter, body, true
}

// findClosingDelimiter locates the first line that is exactly "---", either
// at end-of-string or immediately followed by a newline. A delimiter followed
// by any other character (e.g. "---more") does not count. Returns the range
// covering the delimiter line including its trailing newline.
func findClosingDelimiter(s string) (start, end int, ok bool) {
	search := 0
	for search < len(s) {
		idx := strings.Index(s[search:], delimiter)
		if idx < 0 {
			return 0, 0, false
		}
		pos := search + idx

		atLineStart := pos == 0 || s[pos-1] == '\n'
		if atLineStart {
			after := pos + len(delimiter)
			if after == len(s) {
				return pos, len(s), true
			}
			if s[after] == '\n' {
				return pos, after + 1, true
			}
		}
		search = pos + 1
	}
	return 0, 0, false
}

// ParseFrontmatter parses a raw YAML block into a Frontmatter. The top-level
// value must be a mapping; unknown keys are ignored. Unrecognized boolean
// values fall back to the field default rather than erroring, and scalar
// values of any primitive type coerce to strings for the string-typed fields
// (legacy files rely on both behaviors).
func ParseFrontmatter(block string) (Frontmatter, error) {
	var node any
	if err := yaml.Unmarshal([]byte(block), &node); err != nil {
		return Frontmatter{}, errors.Wrapf(ErrMalformedFrontmatter, "invalid YAML: %v", err)
	}
	if node == nil {
		return DefaultFrontmatter(), nil
	}

	mapping, ok := node.(map[string]any)
	if !ok {
		return Frontmatter{}, errors.Wrap(ErrMalformedFrontmatter,
			"frontmatter YAML must be a key-value mapping, not a scalar or sequence")
	}

	fm := DefaultFrontmatter()
	fm.Name = asString(mapping["name"])
	fm.Description = asString(mapping["description"])
	fm.ArgumentHint = asString(mapping["argument-hint"])
	fm.AllowedTools = asString(mapping["allowed-tools"])
	fm.Model = asString(mapping["model"])
	fm.Context = asString(mapping["context"])
	fm.Agent = asString(mapping["agent"])

	if v, ok := asBool(mapping["disable-model-invocation"]); ok {
		fm.DisableModelInvocation = v
	}
	if v, ok := asBool(mapping["user-invocable"]); ok {
		fm.UserInvocable = v
	}

	// hooks is stored as an opaque YAML blob, never deeply validated.
	if hooks, present := mapping["hooks"]; present {
		if raw, err := yaml.Marshal(hooks); err == nil {
			fm.HooksRaw = string(raw)
		} else {
			fm.HooksRaw = fmt.Sprintf("%v", hooks)
		}
	}

	return fm, nil
}

// asBool coerces a YAML-decoded value to bool, accepting case-insensitive
// true/false/yes/no/1/0.
func asBool(v any) (value, ok bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(b) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
	case int:
		return b != 0, true
	}
	return false, false
}

// asString coerces a YAML-decoded scalar to its textual form. YAML implicit
// typing may decode unquoted legacy values as non-strings.
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		if s {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case uint64:
		return strconv.FormatUint(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	}
	return ""
}
