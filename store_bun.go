package console

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type kvRecord struct {
	bun.BaseModel `bun:"table:console_kv,alias:kv"`
	Key           string    `bun:"key,pk" json:"key"`
	Value         string    `bun:"value,notnull" json:"value"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

var _ Store = (*BunStore)(nil)

// BunStore persists the console key-value namespace in a single
// sqlite table. It is the durable equivalent of the browser's local
// storage for CLI and test deployments.
type BunStore struct {
	db *bun.DB
}

// NewBunStore wraps an existing bun DB. Call Init before first use.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

// OpenBunStore opens (or creates) a sqlite-backed store at path and
// ensures the schema exists. Use ":memory:" for throwaway stores.
func OpenBunStore(ctx context.Context, path string) (*BunStore, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to open sqlite store")
	}

	store := NewBunStore(bun.NewDB(sqldb, sqlitedialect.New()))
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Init creates the backing table when missing.
func (s *BunStore) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*kvRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to create console_kv table")
	}
	return nil
}

// DB exposes the underlying bun handle.
func (s *BunStore) DB() *bun.DB {
	return s.db
}

// Close closes the underlying database.
func (s *BunStore) Close() error {
	return s.db.Close()
}

func (s *BunStore) Get(ctx context.Context, key string) (string, error) {
	rec := &kvRecord{}
	err := s.db.NewSelect().
		Model(rec).
		Where("kv.key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrStoreKeyNotFound
		}
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to read store key")
	}
	return rec.Value, nil
}

func (s *BunStore) Set(ctx context.Context, key, value string) error {
	rec := &kvRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	_, err := s.db.NewInsert().
		Model(rec).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to write store key")
	}
	return nil
}

func (s *BunStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*kvRecord)(nil)).
		Where("kv.key = ?", key).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete store key")
	}
	return nil
}

func (s *BunStore) Reset(ctx context.Context) error {
	_, err := s.db.NewDelete().
		Model((*kvRecord)(nil)).
		Where("kv.key IN (?)", bun.In(StoreKeys())).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to reset store")
	}
	return nil
}
