package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robby/dex/internal/domain"
	"github.com/robby/dex/internal/store"
)

// PreferenceRepository stores one encoded preferences record under a fixed
// key in the ui_storage table. It implements store.Persister.
type PreferenceRepository struct {
	db  *sql.DB
	key string
	now func() time.Time
}

var _ store.Persister = (*PreferenceRepository)(nil)

// NewPreferenceRepository returns a repository for key.
// An empty key uses store.StorageKey.
func NewPreferenceRepository(db *DB, key string) *PreferenceRepository {
	if key == "" {
		key = store.StorageKey
	}
	return &PreferenceRepository{db: db.Conn(), key: key, now: time.Now}
}

// Key returns the storage key the repository reads and writes.
func (r *PreferenceRepository) Key() string {
	return r.key
}

// Load decodes the stored record. The bool is false when the key is absent.
func (r *PreferenceRepository) Load(ctx context.Context) (domain.Preferences, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM ui_storage WHERE key = ?", r.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultPreferences(), false, nil
	}
	if err != nil {
		return domain.DefaultPreferences(), false, fmt.Errorf("failed to read %s: %w", r.key, err)
	}

	p, err := store.Decode([]byte(value))
	if err != nil {
		return p, false, err
	}
	return p, true, nil
}

// Save encodes p and upserts it.
func (r *PreferenceRepository) Save(ctx context.Context, p domain.Preferences) error {
	data, err := store.Encode(p)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO ui_storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, r.key, string(data), r.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", r.key, err)
	}
	return nil
}

// Delete removes the stored record so the next Load returns defaults.
func (r *PreferenceRepository) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM ui_storage WHERE key = ?", r.key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.key, err)
	}
	return nil
}
