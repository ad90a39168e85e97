package console

import (
	"context"
	"encoding/json"
	"sync"
)

// Persisted key layout. Values are strings; structured entries are
// JSON-encoded.
const (
	StoreKeyUser               = "user"
	StoreKeyProfile            = "profile"
	StoreKeyAccessToken        = "access_token"
	StoreKeyRefreshToken       = "refresh_token"
	StoreKeyLanguage           = "language"
	StoreKeyCustomTranslations = "customTranslations"
)

// StoreKeys lists every key the console namespace owns, in a stable
// order. Reset implementations iterate it.
func StoreKeys() []string {
	return []string{
		StoreKeyUser,
		StoreKeyProfile,
		StoreKeyAccessToken,
		StoreKeyRefreshToken,
		StoreKeyLanguage,
		StoreKeyCustomTranslations,
	}
}

var _ Store = (*MemoryStore)(nil)

// MemoryStore is a mutex-guarded in-memory Store. It backs tests and
// ephemeral sessions.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.values[key]
	if !ok {
		return "", ErrStoreKeyNotFound
	}
	return val, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = map[string]string{}
	return nil
}

// getJSON loads and decodes a JSON-encoded entry. Absent keys
// propagate ErrStoreKeyNotFound.
func getJSON(ctx context.Context, store Store, key string, v any) error {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), v)
}

// setJSON encodes and persists a JSON entry.
func setJSON(ctx context.Context, store Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, string(raw))
}
