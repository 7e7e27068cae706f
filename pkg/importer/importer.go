// Package importer implements the two-phase skill import flow (preview an
// extracted directory, then commit it to a location) and directory export.
// Archive packing and unpacking stay outside the core; Preview takes a
// directory that has already been extracted.
package importer

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/skillman-dev/skillman/pkg/config"
	"github.com/skillman-dev/skillman/pkg/crud"
	"github.com/skillman-dev/skillman/pkg/discovery"
	"github.com/skillman-dev/skillman/pkg/fsutil"
	"github.com/skillman-dev/skillman/pkg/logger"
	"github.com/skillman-dev/skillman/pkg/skill"
)

// Import errors. Conflicts and write failures reuse the mutation engine's
// taxonomy.
var (
	ErrMissingSkillFile = errors.New("directory does not contain a SKILL.md file")
	ErrNoSourceDir      = errors.New("package has no source directory")
)

// Service previews, commits, and exports skill directories.
type Service struct {
	settings config.Settings
}

// NewService creates an import/export service using the given settings.
func NewService(settings config.Settings) *Service {
	return &Service{settings: settings}
}

// Preview reads an extracted skill directory and returns a package
// describing what an import would install. Nothing is copied. Unlike
// discovery, parse failures surface here so the user sees why a directory
// cannot be imported.
func (s *Service) Preview(dir string) (*skill.Package, error) {
	skillFile := filepath.Join(dir, skill.FileName)
	if _, err := os.Stat(skillFile); err != nil {
		return nil, errors.Wrap(ErrMissingSkillFile, dir)
	}

	content, err := os.ReadFile(skillFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", skillFile)
	}

	fm, body, err := skill.Parse(string(content))
	if err != nil {
		return nil, err
	}

	return &skill.Package{
		Name:            filepath.Base(dir),
		Frontmatter:     fm,
		Content:         body,
		SupportingFiles: discovery.NewService(s.settings).EnumerateSupportingFiles(dir),
		SourceDir:       dir,
	}, nil
}

// Commit copies a previewed package into its final location under the given
// directory name. Returns the created skill directory.
func (s *Service) Commit(ctx context.Context, pkg *skill.Package, name string, location skill.Location) (string, error) {
	if pkg.SourceDir == "" {
		return "", errors.WithStack(ErrNoSourceDir)
	}
	if err := crud.ValidateName(name); err != nil {
		return "", err
	}

	targetBase := location.BasePath(s.settings)
	targetDir := filepath.Join(targetBase, name)

	if _, err := os.Stat(targetDir); err == nil {
		return "", errors.Wrap(crud.ErrAlreadyExists, targetDir)
	}

	if err := os.MkdirAll(targetBase, 0o755); err != nil {
		return "", errors.Wrapf(crud.ErrWriteFailed, "failed to create %s: %v", targetBase, err)
	}
	if err := fsutil.CopyDir(pkg.SourceDir, targetDir); err != nil {
		_ = os.RemoveAll(targetDir)
		return "", errors.Wrapf(crud.ErrWriteFailed, "failed to copy skill: %v", err)
	}

	logger.G(ctx).WithFields(map[string]interface{}{
		"name":   name,
		"target": targetDir,
	}).Debug("Imported skill")
	return targetDir, nil
}

// Export copies a skill directory into destDir, resolving a symlinked source
// to its real contents. Returns the exported directory.
func (s *Service) Export(sk skill.Skill, destDir string) (string, error) {
	source, err := filepath.EvalSymlinks(sk.Directory)
	if err != nil {
		source = sk.Directory
	}

	target := filepath.Join(destDir, sk.Name)
	if _, err := os.Stat(target); err == nil {
		return "", errors.Wrap(crud.ErrAlreadyExists, target)
	}

	if err := fsutil.CopyDir(source, target); err != nil {
		_ = os.RemoveAll(target)
		return "", errors.Wrapf(crud.ErrWriteFailed, "failed to export skill: %v", err)
	}
	return target, nil
}
