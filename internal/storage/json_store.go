package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rajlakheradev-creator/habitctl/internal/models"
)

type documentFile struct {
	Version   int                        `json:"version"`
	Documents map[string]json.RawMessage `json:"documents"`
}

// JSONStore keeps the three documents inside a single JSON file. Every save
// rewrites the whole file.
type JSONStore struct {
	path string
	file *documentFile
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.file = &documentFile{
		Version:   1,
		Documents: make(map[string]json.RawMessage),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habitctl init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.file = &documentFile{}
	if err := json.Unmarshal(data, s.file); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.file.Documents == nil {
		s.file.Documents = make(map[string]json.RawMessage)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) getDocument(key string, out any) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}

	raw, ok := s.file.Documents[key]
	if !ok {
		return ErrNotFound
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse document %q: %w", key, err)
	}

	return nil
}

func (s *JSONStore) saveDocument(key string, doc any) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document %q: %w", key, err)
	}

	s.file.Documents[key] = raw
	return s.save()
}

func (s *JSONStore) GetHabits() ([]models.Habit, error) {
	var habits []models.Habit
	if err := s.getDocument(DocHabits, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

func (s *JSONStore) SaveHabits(habits []models.Habit) error {
	return s.saveDocument(DocHabits, habits)
}

func (s *JSONStore) GetUser() (models.UserProfile, error) {
	var user models.UserProfile
	if err := s.getDocument(DocUser, &user); err != nil {
		return models.UserProfile{}, err
	}
	return user, nil
}

func (s *JSONStore) SaveUser(user models.UserProfile) error {
	return s.saveDocument(DocUser, user)
}

func (s *JSONStore) GetShop() (models.ShopState, error) {
	var shop models.ShopState
	if err := s.getDocument(DocShop, &shop); err != nil {
		return models.ShopState{}, err
	}
	return shop, nil
}

func (s *JSONStore) SaveShop(shop models.ShopState) error {
	return s.saveDocument(DocShop, shop)
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
