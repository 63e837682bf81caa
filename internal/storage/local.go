package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmvarela/ghoten-ui/internal/logger"
)

const (
	configDir  = ".ghoten"
	configFile = "config.json"
)

// Store is the persistence contract the auth layer depends on. The
// file-backed implementation below is the default; tests substitute an
// in-memory one.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

type Config struct {
	Values map[string]string `json:"values"`
}

// LocalStore persists key-value pairs as JSON in the user's home
// directory, one file for the whole profile.
type LocalStore struct {
	configPath string
	config     *Config
	mu         sync.RWMutex
}

func NewLocalStore() (*LocalStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, configDir, configFile)

	store := &LocalStore{
		configPath: configPath,
		config:     &Config{Values: map[string]string{}},
	}

	if err := store.ensureConfigDir(); err != nil {
		return nil, err
	}

	if err := store.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return store, nil
}

func (s *LocalStore) ensureConfigDir() error {
	dir := filepath.Dir(s.configPath)
	return os.MkdirAll(dir, 0700)
}

func (s *LocalStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.LogError("LOAD", s.configPath, err)
		}
		return err
	}

	if err := json.Unmarshal(data, s.config); err != nil {
		logger.LogError("UNMARSHAL", s.configPath, err)
		return err
	}

	if s.config.Values == nil {
		s.config.Values = map[string]string{}
	}

	logger.Log("Config loaded from %s", s.configPath)
	return nil
}

func (s *LocalStore) save() error {
	data, err := json.MarshalIndent(s.config, "", "  ")
	if err != nil {
		logger.LogError("MARSHAL", s.configPath, err)
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(s.configPath, data, 0600); err != nil {
		logger.LogError("SAVE", s.configPath, err)
		return err
	}

	return nil
}

func (s *LocalStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.config.Values[key]
	return value, ok
}

func (s *LocalStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config.Values[key] = value
	return s.save()
}

func (s *LocalStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.config.Values[key]; !ok {
		return nil
	}

	delete(s.config.Values, key)
	return s.save()
}
