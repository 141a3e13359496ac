package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nansen-ai/nansen-cli-sub000/internal/common"
	"github.com/nansen-ai/nansen-cli-sub000/internal/model"
)

const (
	configFileName = "config.json"
	walletFileExt  = ".json"

	dirPerm  = 0o700
	filePerm = 0o600
)

func (s *Store) configPath() string {
	return filepath.Join(s.dir, configFileName)
}

func (s *Store) walletPath(name string) string {
	return filepath.Join(s.dir, name+walletFileExt)
}

// loadConfig returns an empty config when config.json does not exist yet.
func (s *Store) loadConfig() (*model.StoreConfig, error) {
	data, err := os.ReadFile(s.configPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &model.StoreConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read store config: %w", err)
	}

	var cfg model.StoreConfig
	if err := json.Unmarshal(common.TrimBOM(data), &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrCorruptStoreRecord, s.configPath(), err)
	}
	if cfg.PasswordHash != nil && (cfg.PasswordHash.Salt == "" || cfg.PasswordHash.Hash == "") {
		return nil, fmt.Errorf("%w: %s: incomplete passwordHash", model.ErrCorruptStoreRecord, s.configPath())
	}
	return &cfg, nil
}

func (s *Store) saveConfig(cfg *model.StoreConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store config: %w", err)
	}
	return writeFileAtomic(s.configPath(), data)
}

// writeFileAtomic replaces path through a temp file in the same directory so
// a crash never leaves a half-written config behind.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// writeFileExclusive creates path, failing with os.ErrExist if it is
// already there.
func writeFileExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to sync file: %w", err)
	}
	return f.Close()
}
