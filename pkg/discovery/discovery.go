// Package discovery walks skill locations and builds an in-memory catalog.
// Scans are tolerant of partial failures: a single unreadable or malformed
// skill never aborts the enclosing scan, and a missing base directory simply
// yields no skills.
package discovery

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/skillman-dev/skillman/pkg/config"
	"github.com/skillman-dev/skillman/pkg/logger"
	"github.com/skillman-dev/skillman/pkg/skill"
)

// ErrSkillFileNotFound indicates a directory that contains neither SKILL.md
// nor SKILL.md.disabled.
var ErrSkillFileNotFound = errors.New("no SKILL.md found in directory")

// Service discovers skills from configured locations.
type Service struct {
	settings config.Settings
}

// NewService creates a discovery service using the given settings.
func NewService(settings config.Settings) *Service {
	return &Service{settings: settings}
}

// Source pairs a location with its resolved base path for one discovery pass.
type Source struct {
	BasePath string
	Location skill.Location
}

// Catalog is one full discovery snapshot. It is rebuilt from scratch on every
// pass, never patched in place.
type Catalog struct {
	Skills []skill.Skill
	// Err aggregates location-level scan failures. A non-nil Err does not
	// invalidate the catalog; successfully scanned locations are included.
	Err error
}

// DiscoverAll scans every source and joins the results into a single catalog.
// Each location is scanned in its own goroutine; there is no shared
// accumulator, each scan returns its own list and the results are
// concatenated in source order.
func (s *Service) DiscoverAll(ctx context.Context, sources []Source) *Catalog {
	results := make([][]skill.Skill, len(sources))
	scanErrs := make([]error, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			var (
				found []skill.Skill
				err   error
			)
			if src.Location.Kind == skill.LocationLegacyCommand {
				found, err = s.DiscoverLegacyCommands(ctx, src.BasePath)
			} else {
				found, err = s.DiscoverSkills(ctx, src.BasePath, src.Location)
			}
			if err != nil {
				scanErrs[i] = errors.Wrapf(err, "failed to scan %s", src.BasePath)
				return
			}
			results[i] = found
		}(i, src)
	}
	wg.Wait()

	catalog := &Catalog{}
	for _, skills := range results {
		catalog.Skills = append(catalog.Skills, skills...)
	}
	var merged *multierror.Error
	for _, err := range scanErrs {
		if err != nil {
			merged = multierror.Append(merged, err)
		}
	}
	catalog.Err = merged.ErrorOrNil()

	logger.G(ctx).WithField("skills", len(catalog.Skills)).Debug("Discovery pass complete")
	return catalog
}

// DiscoverSkills lists the immediate child directories of basePath and reads
// one skill per directory. A non-existent basePath yields an empty result;
// a listing failure on an existing basePath propagates as a scan error.
func (s *Service) DiscoverSkills(ctx context.Context, basePath string, location skill.Location) ([]skill.Skill, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		return nil, nil
	}

	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list skills directory %s", basePath)
	}

	var skills []skill.Skill
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		entryPath := filepath.Join(basePath, entry.Name())

		// os.Stat follows symlinks: skills are commonly installed as
		// symlinked directories, and entry.IsDir() would report false
		// for them.
		info, err := os.Stat(entryPath)
		if err != nil || !info.IsDir() {
			continue
		}

		sk, err := s.ReadSkill(entryPath, location)
		if err != nil {
			logger.G(ctx).WithError(err).WithField("directory", entryPath).Debug("Skipping unreadable skill")
			continue
		}
		skills = append(skills, sk)
	}
	return skills, nil
}

// DiscoverLegacyCommands scans a flat directory for legacy single-file
// commands (name.md, or name.md.disabled when disabled). Non-recursive.
func (s *Service) DiscoverLegacyCommands(ctx context.Context, basePath string) ([]skill.Skill, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		return nil, nil
	}

	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list commands directory %s", basePath)
	}

	var commands []skill.Skill
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		disabled := strings.HasSuffix(name, skill.LegacyExtDisabled)
		if !disabled && !strings.HasSuffix(name, skill.LegacyExt) {
			continue
		}

		filePath := filepath.Join(basePath, name)
		info, err := os.Stat(filePath)
		if err != nil || info.IsDir() {
			continue
		}

		content, err := os.ReadFile(filePath)
		if err != nil {
			continue
		}
		fm, body, err := skill.Parse(string(content))
		if err != nil {
			logger.G(ctx).WithError(err).WithField("file", filePath).Debug("Skipping malformed legacy command")
			continue
		}

		commandName := strings.TrimSuffix(strings.TrimSuffix(name, skill.LegacyExtDisabled), skill.LegacyExt)

		commands = append(commands, skill.Skill{
			ID:              uuid.New(),
			Name:            commandName,
			Frontmatter:     fm,
			Content:         body,
			Location:        skill.LegacyCommand(basePath),
			Directory:       basePath,
			LastModified:    info.ModTime(),
			IsLegacyCommand: true,
			Enabled:         !disabled,
		})
	}
	return commands, nil
}

// ReadSkill reads and parses the SKILL.md (or SKILL.md.disabled) inside
// directory. The enabled filename is probed first; exactly one of the two
// variants is expected to exist.
func (s *Service) ReadSkill(directory string, location skill.Location) (skill.Skill, error) {
	enabledPath := filepath.Join(directory, skill.FileName)
	disabledPath := filepath.Join(directory, skill.FileNameDisabled)

	var (
		filePath string
		enabled  bool
	)
	switch {
	case fileExists(enabledPath):
		filePath, enabled = enabledPath, true
	case fileExists(disabledPath):
		filePath, enabled = disabledPath, false
	default:
		return skill.Skill{}, errors.Wrap(ErrSkillFileNotFound, directory)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return skill.Skill{}, errors.Wrapf(err, "failed to read %s", filePath)
	}

	fm, body, err := skill.Parse(string(content))
	if err != nil {
		return skill.Skill{}, err
	}

	modified := time.Now()
	if info, err := os.Stat(filePath); err == nil {
		modified = info.ModTime()
	}

	return skill.Skill{
		ID:              uuid.New(),
		Name:            filepath.Base(directory),
		Frontmatter:     fm,
		Content:         body,
		Location:        location,
		Directory:       directory,
		SupportingFiles: s.EnumerateSupportingFiles(directory),
		LastModified:    modified,
		Enabled:         enabled,
	}, nil
}

// EnumerateSupportingFiles lists everything under a skill directory except
// the SKILL.md itself, recursively. Best-effort: entries that cannot be
// inspected are dropped rather than failing the enumeration.
func (s *Service) EnumerateSupportingFiles(directory string) []skill.File {
	var files []skill.File
	_ = filepath.WalkDir(directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == directory {
			return nil
		}
		name := d.Name()
		if name == skill.FileName || name == skill.FileNameDisabled || strings.HasPrefix(name, ".") {
			if d.IsDir() && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(directory, path)
		if err != nil {
			return nil
		}
		var size int64
		if info, err := d.Info(); err == nil && !d.IsDir() {
			size = info.Size()
		}
		files = append(files, skill.File{
			RelativePath: rel,
			Path:         path,
			Size:         size,
			IsDir:        d.IsDir(),
		})
		return nil
	})
	return files
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
