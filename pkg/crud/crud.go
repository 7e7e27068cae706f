// Package crud implements the skill mutation engine: create, update,
// enable/disable, delete, and move. Every path that is written or removed
// funnels through a single safety check verifying it lies under the base
// path implied by the skill's own recorded location, so a mutation can never
// escape its declared boundary even when on-disk state and location metadata
// have diverged.
package crud

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/skillman-dev/skillman/pkg/config"
	"github.com/skillman-dev/skillman/pkg/fsutil"
	"github.com/skillman-dev/skillman/pkg/logger"
	"github.com/skillman-dev/skillman/pkg/skill"
)

// Mutation error taxonomy. WriteFailed and DeleteFailed wrap the underlying
// I/O error; the rest are pure precondition failures that perform no I/O.
var (
	ErrInvalidName     = errors.New("invalid skill name")
	ErrAlreadyExists   = errors.New("skill already exists")
	ErrUnsupportedMove = errors.New("skill cannot be moved to that location")
	ErrUnsafePath      = errors.New("path lies outside the skill's location")
	ErrWriteFailed     = errors.New("write failed")
	ErrDeleteFailed    = errors.New("delete failed")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Service performs skill mutations. Mutations are serialized within the
// process; the system provides no cross-process locking and relies on
// operations being short-lived and user-initiated.
type Service struct {
	settings config.Settings
	mu       sync.Mutex
}

// NewService creates a mutation service using the given settings.
func NewService(settings config.Settings) *Service {
	return &Service{settings: settings}
}

// Create makes a new skill directory with a serialized SKILL.md at location.
// Returns the created directory. A write failure rolls back the just-created
// directory before surfacing.
func (s *Service) Create(ctx context.Context, name string, fm skill.Frontmatter, content string, location skill.Location) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ValidateName(name); err != nil {
		return "", err
	}

	targetDir := filepath.Join(location.BasePath(s.settings), name)
	if err := s.assertSafePath(ctx, targetDir, location); err != nil {
		return "", err
	}

	if _, err := os.Stat(targetDir); err == nil {
		return "", errors.Wrap(ErrAlreadyExists, targetDir)
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", errors.Wrapf(ErrWriteFailed, "failed to create %s: %v", targetDir, err)
	}

	skillFile := filepath.Join(targetDir, skill.FileName)
	serialized := skill.Serialize(fm, content)
	if err := os.WriteFile(skillFile, []byte(serialized), 0o644); err != nil {
		// Roll back the directory we just created; best effort only.
		_ = os.RemoveAll(targetDir)
		return "", errors.Wrapf(ErrWriteFailed, "failed to write %s: %v", skillFile, err)
	}

	return targetDir, nil
}

// Update overwrites the skill's current SKILL.md (whichever of the
// enabled/disabled variants exists) in place. Callers must check the skill's
// location is not read-only before calling; the engine does not enforce that
// authorization gate.
func (s *Service) Update(ctx context.Context, sk skill.Skill, fm skill.Frontmatter, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := sk.FilePath()
	if err := s.assertSafePath(ctx, filePath, sk.Location); err != nil {
		return err
	}

	serialized := skill.Serialize(fm, content)
	if err := os.WriteFile(filePath, []byte(serialized), 0o644); err != nil {
		return errors.Wrapf(ErrWriteFailed, "failed to write %s: %v", filePath, err)
	}
	return nil
}

// SetEnabled renames the skill file between its enabled and disabled forms.
// A no-op when the skill is already in the requested state.
func (s *Service) SetEnabled(ctx context.Context, sk skill.Skill, enabled bool) error {
	if sk.Enabled == enabled {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	source := sk.FilePath()
	flipped := sk
	flipped.Enabled = enabled
	target := flipped.FilePath()

	if err := s.assertSafePath(ctx, source, sk.Location); err != nil {
		return err
	}
	if err := s.assertSafePath(ctx, target, sk.Location); err != nil {
		return err
	}

	if err := os.Rename(source, target); err != nil {
		return errors.Wrapf(ErrWriteFailed, "failed to rename %s: %v", source, err)
	}
	return nil
}

// Delete removes the skill directory, or the single .md file for legacy
// commands.
func (s *Service) Delete(ctx context.Context, sk skill.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target string
	if sk.IsLegacyCommand {
		target = sk.FilePath()
	} else {
		target = sk.Directory
	}

	if err := s.assertSafePath(ctx, target, sk.Location); err != nil {
		return err
	}

	var err error
	if sk.IsLegacyCommand {
		err = os.Remove(target)
	} else {
		err = os.RemoveAll(target)
	}
	if err != nil {
		return errors.Wrapf(ErrDeleteFailed, "failed to delete %s: %v", target, err)
	}
	return nil
}

// Move relocates a skill directory to another writable location within the
// same assistant's personal/project family. Rename is attempted first; when
// source and target sit on different volumes the move degrades to
// copy-then-delete, removing any partial copy on failure so the source is
// left untouched.
func (s *Service) Move(ctx context.Context, sk skill.Skill, target skill.Location) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sk.IsLegacyCommand || sk.Location.IsReadOnly() || target.IsReadOnly() {
		return "", errors.WithStack(ErrUnsupportedMove)
	}
	if !isSupportedMove(sk.Location, target) {
		return "", errors.WithStack(ErrUnsupportedMove)
	}

	sourceDir := sk.Directory
	targetBase := target.BasePath(s.settings)
	targetDir := filepath.Join(targetBase, sk.Name)

	if err := s.assertSafePath(ctx, sourceDir, sk.Location); err != nil {
		return "", err
	}
	if err := s.assertSafePath(ctx, targetDir, target); err != nil {
		return "", err
	}

	if _, err := os.Stat(targetDir); err == nil {
		return "", errors.Wrap(ErrAlreadyExists, targetDir)
	}

	if err := os.MkdirAll(targetBase, 0o755); err != nil {
		return "", errors.Wrapf(ErrWriteFailed, "failed to create %s: %v", targetBase, err)
	}

	if err := os.Rename(sourceDir, targetDir); err != nil {
		// Rename fails across devices; fall back to copy+delete.
		if copyErr := fsutil.CopyDir(sourceDir, targetDir); copyErr != nil {
			_ = os.RemoveAll(targetDir)
			return "", errors.Wrapf(ErrWriteFailed, "failed to move %s: %v", sourceDir, copyErr)
		}
		if err := os.RemoveAll(sourceDir); err != nil {
			return "", errors.Wrapf(ErrDeleteFailed, "moved but failed to remove source %s: %v", sourceDir, err)
		}
	}

	return targetDir, nil
}

// isSupportedMove restricts moves to the personal/project tiers of a single
// assistant. Legacy commands, read-only locations, and cross-assistant moves
// are rejected by the caller before this matrix is consulted.
func isSupportedMove(from, to skill.Location) bool {
	family := func(k skill.LocationKind) int {
		switch k {
		case skill.LocationPersonal, skill.LocationProject:
			return 1
		case skill.LocationCodexPersonal, skill.LocationCodexProject:
			return 2
		default:
			return 0
		}
	}
	f, t := family(from.Kind), family(to.Kind)
	return f != 0 && f == t
}

// assertSafePath verifies target lies strictly under the base path implied by
// location. Violations indicate inconsistent state (stale records, symlink
// tricks, tampering) and are logged as defect signals.
func (s *Service) assertSafePath(ctx context.Context, target string, location skill.Location) error {
	base := filepath.Clean(location.BasePath(s.settings))
	cleaned := filepath.Clean(target)

	if base == "" || !strings.HasPrefix(cleaned, base+string(filepath.Separator)) {
		logger.G(ctx).WithFields(map[string]interface{}{
			"path": cleaned,
			"base": base,
		}).Error("Refusing mutation outside location base path")
		return errors.Wrapf(ErrUnsafePath, "%s is not under %s", cleaned, base)
	}
	return nil
}

// ValidateName checks a skill name against the allowed character set. Every
// path that joins a caller-supplied name under a location base (create,
// import commit) goes through this check, so a name can never carry path
// separators or traversal segments.
func ValidateName(name string) error {
	if name == "" {
		return errors.Wrap(ErrInvalidName, "name cannot be empty")
	}
	if !namePattern.MatchString(name) {
		return errors.Wrap(ErrInvalidName, "only letters, numbers, hyphens, and underscores are allowed")
	}
	return nil
}
