// Package session tracks the per-process state shared by the tools: an id
// for log correlation and the working directory that relative paths are
// resolved against.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var (
	// ErrNotExist is returned by Chdir when the target is missing.
	ErrNotExist = errors.New("does not exist")
	// ErrNotDirectory is returned by Chdir when the target is not a directory.
	ErrNotDirectory = errors.New("is not a directory")
)

// Session holds the working directory for one conversation.
// It is not safe for concurrent use; each conversation owns its own Session.
type Session struct {
	ID  string
	dir string
}

// New creates a session rooted at dir, which is made absolute.
func New(dir string) (*Session, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	return &Session{
		ID:  uuid.NewString(),
		dir: abs,
	}, nil
}

// Dir returns the absolute working directory.
func (s *Session) Dir() string {
	return s.dir
}

// Resolve returns p as an absolute path. Relative paths are joined onto the
// working directory at the time of the call.
func (s *Session) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(s.dir, p)
}

// Chdir moves the working directory to p after checking that it exists and
// is a directory. The returned error wraps ErrNotExist or ErrNotDirectory.
func (s *Session) Chdir(p string) (string, error) {
	target := s.Resolve(p)

	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", p, ErrNotExist)
		}
		return "", fmt.Errorf("failed to stat %q: %w", p, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", p, ErrNotDirectory)
	}

	s.dir = target
	return s.dir, nil
}
