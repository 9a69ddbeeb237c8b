package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/rajlakheradev-creator/habitctl/internal/constants"
	"github.com/rajlakheradev-creator/habitctl/internal/models"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// PostgresStore persists documents in a keyed table inside a dedicated schema.
// Connection strings with embedded passwords are rejected; credentials come
// from the environment or .pgpass.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr: connStr,
	}
}

// ValidateConnString checks if a connection string is a valid PostgreSQL
// connection string (URI or DSN) and ensures it does not contain a password.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	_, err := pq.NewConnector(connStr)
	if err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}

		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}

		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
	} else {
		pairs := strings.Fields(connStr)
		for _, pair := range pairs {
			parts := strings.SplitN(pair, "=", 2)
			if len(parts) == 2 && strings.ToLower(strings.TrimSpace(parts[0])) == "password" {
				return false, ErrEmbeddedCredentials
			}
		}
	}

	return true, nil
}

// HasEmbeddedCredentials reports whether a connection string carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	valid, err := ValidateConnString(connStr)
	return !valid && errors.Is(err, ErrEmbeddedCredentials)
}

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return s.createSchema()
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return s.createSchema()
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) createSchema() error {
	_, err := s.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.documents (
			key        TEXT PRIMARY KEY,
			body       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, constants.AppName))
	return err
}

func (s *PostgresStore) getDocument(key string, out any) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	var body []byte
	err := s.db.QueryRow(
		fmt.Sprintf("SELECT body FROM %s.documents WHERE key = $1", constants.AppName),
		key).Scan(&body)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read document %q: %w", key, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse document %q: %w", key, err)
	}

	return nil
}

func (s *PostgresStore) saveDocument(key string, doc any) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document %q: %w", key, err)
	}

	_, err = s.db.Exec(fmt.Sprintf(`
		INSERT INTO %s.documents (key, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			body = EXCLUDED.body,
			updated_at = EXCLUDED.updated_at`, constants.AppName),
		key, body)
	if err != nil {
		return fmt.Errorf("failed to write document %q: %w", key, err)
	}

	return nil
}

func (s *PostgresStore) GetHabits() ([]models.Habit, error) {
	var habits []models.Habit
	if err := s.getDocument(DocHabits, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

func (s *PostgresStore) SaveHabits(habits []models.Habit) error {
	return s.saveDocument(DocHabits, habits)
}

func (s *PostgresStore) GetUser() (models.UserProfile, error) {
	var user models.UserProfile
	if err := s.getDocument(DocUser, &user); err != nil {
		return models.UserProfile{}, err
	}
	return user, nil
}

func (s *PostgresStore) SaveUser(user models.UserProfile) error {
	return s.saveDocument(DocUser, user)
}

func (s *PostgresStore) GetShop() (models.ShopState, error) {
	var shop models.ShopState
	if err := s.getDocument(DocShop, &shop); err != nil {
		return models.ShopState{}, err
	}
	return shop, nil
}

func (s *PostgresStore) SaveShop(shop models.ShopState) error {
	return s.saveDocument(DocShop, shop)
}

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}
