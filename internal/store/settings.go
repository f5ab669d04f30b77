package store

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/ayusman/drishti/internal/focus"
)

// settingsKey is the single row the focus configuration lives under.
const settingsKey = "focus"

// SettingsRepository persists the focus configuration as a JSON value in
// the key-value settings table.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Save upserts the focus configuration.
func (r *SettingsRepository) Save(s focus.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		settingsKey, string(data),
	)
	return err
}

// Load reads the persisted focus configuration. A missing row yields the
// defaults, not an error.
func (r *SettingsRepository) Load() (focus.Settings, error) {
	var value string

	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, settingsKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return focus.DefaultSettings(), nil
		}
		return focus.Settings{}, err
	}

	settings := focus.DefaultSettings()
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		return focus.Settings{}, err
	}

	return settings, nil
}
