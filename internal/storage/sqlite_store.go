package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/rajlakheradev-creator/habitctl/internal/models"
)

// SQLiteStore persists each document as a JSON blob in a single keyed table.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.createSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habitctl init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.createSchema()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			key        TEXT PRIMARY KEY,
			body       TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		)`)
	return err
}

func (s *SQLiteStore) getDocument(key string, out any) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	var body string
	err := s.db.QueryRow("SELECT body FROM documents WHERE key = ?", key).Scan(&body)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read document %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("failed to parse document %q: %w", key, err)
	}

	return nil
}

func (s *SQLiteStore) saveDocument(key string, doc any) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document %q: %w", key, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO documents (key, body, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		ON CONFLICT(key) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at`,
		key, string(body))
	if err != nil {
		return fmt.Errorf("failed to write document %q: %w", key, err)
	}

	return nil
}

func (s *SQLiteStore) GetHabits() ([]models.Habit, error) {
	var habits []models.Habit
	if err := s.getDocument(DocHabits, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

func (s *SQLiteStore) SaveHabits(habits []models.Habit) error {
	return s.saveDocument(DocHabits, habits)
}

func (s *SQLiteStore) GetUser() (models.UserProfile, error) {
	var user models.UserProfile
	if err := s.getDocument(DocUser, &user); err != nil {
		return models.UserProfile{}, err
	}
	return user, nil
}

func (s *SQLiteStore) SaveUser(user models.UserProfile) error {
	return s.saveDocument(DocUser, user)
}

func (s *SQLiteStore) GetShop() (models.ShopState, error) {
	var shop models.ShopState
	if err := s.getDocument(DocShop, &shop); err != nil {
		return models.ShopState{}, err
	}
	return shop, nil
}

func (s *SQLiteStore) SaveShop(shop models.ShopState) error {
	return s.saveDocument(DocShop, shop)
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
