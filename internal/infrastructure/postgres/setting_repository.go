package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/intecelectric/crm-api/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo implements the key/value settings store over PostgreSQL.
type SettingRepo struct {
	q Querier
}

// NewSettingRepository builds the adapter. Pass pool or tx (Querier).
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

// GetAll returns every setting as a flat map.
func (r *SettingRepo) GetAll() (map[string]string, error) {
	rows, err := r.q.Query(context.Background(), `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

// Get returns one setting's value, "" when absent.
func (r *SettingRepo) Get(key string) (string, error) {
	var value string
	err := r.q.QueryRow(context.Background(),
		`SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// Upsert inserts or overwrites one setting.
func (r *SettingRepo) Upsert(key, value string) error {
	query := `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := r.q.Exec(context.Background(), query, key, value); err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}
