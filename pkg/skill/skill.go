// Package skill defines the on-disk skill data model and the codec for the
// SKILL.md file format. A skill is a directory containing a SKILL.md file
// (YAML frontmatter followed by a markdown body) plus optional supporting
// files. Disabled skills are encoded purely by filename: SKILL.md.disabled
// instead of SKILL.md.
package skill

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Filename conventions. The enabled/disabled state of a skill lives in the
// filename, never inside the frontmatter, to stay bit-for-bit compatible
// with existing skill collections.
const (
	FileName         = "SKILL.md"
	DisabledSuffix   = ".disabled"
	FileNameDisabled = FileName + DisabledSuffix

	LegacyExt         = ".md"
	LegacyExtDisabled = LegacyExt + DisabledSuffix
)

// Skill is one discovered or in-progress skill record. Instances are value
// snapshots created fresh on every discovery pass; updates are expressed as
// "write new content to disk, then re-discover".
type Skill struct {
	// ID is process-local only; it is recomputed each discovery pass and
	// never persisted.
	ID uuid.UUID
	// Name is the directory name on disk, or the base filename for legacy
	// commands.
	Name        string
	Frontmatter Frontmatter
	// Content is the markdown body after the frontmatter block.
	Content  string
	Location Location
	// Directory is the skill's containing directory, or the flat commands
	// directory for legacy commands.
	Directory       string
	SupportingFiles []File
	LastModified    time.Time
	IsLegacyCommand bool
	Enabled         bool
}

// DisplayName prefers the frontmatter name and falls back to the directory name.
func (s Skill) DisplayName() string {
	if s.Frontmatter.Name != "" {
		return s.Frontmatter.Name
	}
	return s.Name
}

// FilePath returns the path of the SKILL.md file (or the .md file for legacy
// commands), accounting for the enabled/disabled filename convention.
func (s Skill) FilePath() string {
	if s.IsLegacyCommand {
		name := s.Name + LegacyExt
		if !s.Enabled {
			name += DisabledSuffix
		}
		return filepath.Join(s.Directory, name)
	}
	if s.Enabled {
		return filepath.Join(s.Directory, FileName)
	}
	return filepath.Join(s.Directory, FileNameDisabled)
}

// File is a supporting file or subdirectory inside a skill directory
// (anything other than the SKILL.md itself).
type File struct {
	RelativePath string
	Path         string
	Size         int64
	IsDir        bool
}

// Package is a parsed skill directory that has been previewed but not yet
// copied to its final location (phase 1 of the two-phase import flow).
type Package struct {
	Name            string
	Frontmatter     Frontmatter
	Content         string
	SupportingFiles []File
	// SourceDir is the directory that was picked for import.
	SourceDir string
}

// Provider identifies which assistant a skill family belongs to.
type Provider string

// Known providers.
const (
	ProviderClaude Provider = "claude"
	ProviderCodex  Provider = "codex"
)

// DisplayName returns the human-readable provider name.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderCodex:
		return "Codex"
	default:
		return "Claude"
	}
}
