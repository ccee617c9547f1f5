package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const dirName = ".shatilah"

// KV is the local key-value substrate the state manager persists into.
// Get reports a missing key as ok=false with a nil error.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Lister is implemented by stores that can enumerate their keys.
type Lister interface {
	Keys() ([]string, error)
}

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

var ErrInvalidKey = errors.New("invalid key")

func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendSQLite:
		return BackendSQLite, nil
	case BackendFile:
		return BackendFile, nil
	case BackendMemory:
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("unknown backend: %s (want sqlite|file|memory)", s)
	}
}

// Store is an opened KV together with where it lives.
type Store struct {
	Dir     string
	Backend Backend
	KV      KV

	closeFn func() error
}

// Open opens (creating if needed) the store for backend inside dir.
func Open(ctx context.Context, backend Backend, dir string) (*Store, error) {
	s := &Store{Dir: filepath.Clean(dir), Backend: backend}
	switch backend {
	case BackendMemory:
		s.KV = NewMemKV()
		return s, nil
	case BackendFile:
		if err := s.Ensure(); err != nil {
			return nil, err
		}
		s.KV = &FileKV{Dir: s.Dir}
		return s, nil
	case BackendSQLite, "":
		s.Backend = BackendSQLite
		kv, err := OpenSQLiteKV(ctx, s.Dir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		s.KV = kv
		s.closeFn = kv.Close
		return s, nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", backend)
	}
}

func (s *Store) Close() error {
	if s == nil || s.closeFn == nil {
		return nil
	}
	err := s.closeFn()
	s.closeFn = nil
	return err
}

// Keys lists stored keys when the backend supports it.
func (s *Store) Keys() ([]string, error) {
	if l, ok := s.KV.(Lister); ok {
		return l.Keys()
	}
	return nil, errors.New("backend cannot list keys")
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store dir is empty")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

// DiscoverDir walks up from start looking for a project-local .shatilah directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the store directory:
// a .shatilah dir in cwd or a parent, then $XDG_DATA_HOME/shatilah, then ~/.shatilah.
func DefaultDir() (string, error) {
	if cwd, err := os.Getwd(); err == nil {
		if found, ok := DiscoverDir(cwd); ok {
			return found, nil
		}
	}
	if x := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); x != "" {
		return filepath.Join(x, "shatilah"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, dirName), nil
}
