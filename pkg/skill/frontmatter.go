package skill

// Frontmatter holds the parsed YAML frontmatter fields of a SKILL.md file.
// All string fields are optional; the empty string means "not set" and such
// fields are omitted on serialization.
type Frontmatter struct {
	Name                   string
	Description            string
	ArgumentHint           string
	DisableModelInvocation bool
	UserInvocable          bool
	AllowedTools           string
	Model                  string
	Context                string
	Agent                  string
	// HooksRaw carries the raw YAML of the `hooks` key. It is round-tripped
	// verbatim and never deeply interpreted.
	HooksRaw string
}

// DefaultFrontmatter returns a frontmatter with all defaults applied
// (user-invocable true, everything else unset).
func DefaultFrontmatter() Frontmatter {
	return Frontmatter{UserInvocable: true}
}
