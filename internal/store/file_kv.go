package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

const fileKVExt = ".json"

var validKey = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// FileKV stores each key as <Dir>/<key>.json. Writes go through a temp file
// and a rename so a crash never leaves a half-written value behind.
type FileKV struct {
	Dir string
}

func (s *FileKV) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.Dir, key+fileKVExt), nil
}

func (s *FileKV) Get(key string) (string, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(b), true, nil
}

func (s *FileKV) Set(key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

func (s *FileKV) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileKVExt) {
			continue
		}
		k := strings.TrimSuffix(name, fileKVExt)
		if validKey.MatchString(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
