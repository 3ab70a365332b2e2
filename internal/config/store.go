package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"

	"github.com/ytget/yt-grabber/internal/platform"
)

// ConfigFileName is stored inside the user's Documents directory
const ConfigFileName = ".config.json"

// LockSuffix names the advisory lock file next to the config file
const LockSuffix = ".lock"

// FileConfig is the on-disk shape of the configuration file
type FileConfig struct {
	DefaultDirectory string `json:"default_directory"`
}

// Store reads and writes the default download directory.
type Store struct {
	path      string
	fallback  string
	lastSaved string
}

// DefaultPath returns <home>/Documents/.config.json
func DefaultPath() (string, error) {
	documents, err := platform.GetHomeDocumentsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(documents, ConfigFileName), nil
}

// DefaultDirectory returns <home>/Downloads, or the working directory when
// the home directory cannot be determined.
func DefaultDirectory() string {
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return "."
	}
	return dir
}

// NewStore creates a store for the file at path. fallback is returned by
// Load when the file is missing or unusable.
func NewStore(path, fallback string) *Store {
	return &Store{
		path:     path,
		fallback: fallback,
	}
}

// NewDefaultStore creates a store at DefaultPath falling back to DefaultDirectory
func NewDefaultStore() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return NewStore(path, DefaultDirectory()), nil
}

// Path returns the config file location
func (s *Store) Path() string {
	return s.path
}

// Load returns the saved default directory. A missing file yields the
// fallback with no error; an unreadable or malformed file yields the
// fallback together with the error so callers can log it.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s.fallback, nil
	}
	if err != nil {
		return s.fallback, fmt.Errorf("failed to read config %s: %w", s.path, err)
	}

	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return s.fallback, fmt.Errorf("failed to parse config %s: %w", s.path, err)
	}
	if cfg.DefaultDirectory == "" {
		return s.fallback, nil
	}

	s.lastSaved = cfg.DefaultDirectory
	return cfg.DefaultDirectory, nil
}

// SaveDefaultDirectory overwrites the config file with dir. The write is
// skipped, returning false, when dir does not exist or equals the value
// already on disk.
func (s *Store) SaveDefaultDirectory(dir string) (bool, error) {
	if dir == "" || !platform.PathExists(dir) {
		log.Debug().Str("op", "config/save").Str("dir", dir).Msg("skipping save, path does not exist")
		return false, nil
	}
	if dir == s.lastSaved {
		return false, nil
	}

	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(s.path)); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	lock := flock.New(s.path + LockSuffix)
	if err := lock.Lock(); err != nil {
		return false, fmt.Errorf("failed to lock config: %w", err)
	}
	defer lock.Unlock()

	data, err := json.Marshal(FileConfig{DefaultDirectory: dir})
	if err != nil {
		return false, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return false, err
	}

	s.lastSaved = dir
	log.Debug().Str("op", "config/save").Str("dir", dir).Msg("default directory saved")
	return true, nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close config: %w", err)
	}
	if err := os.Chmod(tmpName, platform.DefaultFilePermissions); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set config permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}
