package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// Setting is a platform-wide key/value configuration row. Writes are reserved
// to super_admins; reads are public.
type Setting struct {
	Name      string    `db:"name"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

type SettingStore struct {
	db *sqlx.DB
}

func NewSettingStore(db *sqlx.DB) *SettingStore {
	return &SettingStore{db: db}
}

func (s *SettingStore) q(query string) string { return s.db.Rebind(query) }

// Get returns the setting named key, or ErrNotFound.
func (s *SettingStore) Get(ctx context.Context, key string) (*Setting, error) {
	var setting Setting
	err := s.db.GetContext(ctx, &setting, s.q(`SELECT * FROM platform_settings WHERE name = ?`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Set creates or replaces the setting for key.
func (s *SettingStore) Set(ctx context.Context, key, value string) (*Setting, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO platform_settings (name, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`), key, value, now)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, key)
}

// ListAll returns every setting ordered by key.
func (s *SettingStore) ListAll(ctx context.Context) ([]*Setting, error) {
	var settings []*Setting
	err := s.db.SelectContext(ctx, &settings, `SELECT * FROM platform_settings ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	return settings, nil
}
