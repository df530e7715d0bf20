package storage

import (
	"context"
	"sync"

	"posterminal/internal/terminal/domain/entities"
	"posterminal/internal/terminal/ports/storage"
)

// MemoryStore хранит токены и настройки в памяти процесса.
// Используется в режиме разработки, когда Redis недоступен.
type MemoryStore struct {
	mu          sync.RWMutex
	credentials entities.Credentials
	preferences map[string]string
}

var (
	_ storage.CredentialStore = (*MemoryStore)(nil)
	_ storage.PreferenceStore = (*MemoryStore)(nil)
)

// NewMemoryStore создает пустое хранилище.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{preferences: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context) (entities.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credentials, nil
}

func (s *MemoryStore) Set(_ context.Context, accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials = entities.Credentials{AccessToken: accessToken, RefreshToken: refreshToken}
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials = entities.Credentials{}
	return nil
}

func (s *MemoryStore) GetPreference(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.preferences[key]
	return value, ok, nil
}

func (s *MemoryStore) SetPreference(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences[key] = value
	return nil
}
