package console

import (
	"context"
	stderrors "errors"

	"github.com/99designs/keyring"
	"github.com/goliatone/go-errors"
)

var _ Store = (*KeyringStore)(nil)

// KeyringStore keeps the console namespace in the OS keychain so
// tokens never touch plain files. All six keys live under a single
// service name.
type KeyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore opens the OS keychain under the given service name.
func NewKeyringStore(service string) (*KeyringStore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: service,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to open keyring")
	}
	return &KeyringStore{ring: ring}, nil
}

func (s *KeyringStore) Get(_ context.Context, key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		if stderrors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrStoreKeyNotFound
		}
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to read keyring entry")
	}
	return string(item.Data), nil
}

func (s *KeyringStore) Set(_ context.Context, key, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: "console " + key,
	})
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to write keyring entry")
	}
	return nil
}

func (s *KeyringStore) Delete(_ context.Context, key string) error {
	if err := s.ring.Remove(key); err != nil && !stderrors.Is(err, keyring.ErrKeyNotFound) {
		return errors.Wrap(err, errors.CategoryInternal, "failed to remove keyring entry")
	}
	return nil
}

func (s *KeyringStore) Reset(ctx context.Context) error {
	for _, key := range StoreKeys() {
		if err := s.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
