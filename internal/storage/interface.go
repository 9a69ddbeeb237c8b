package storage

import (
	"errors"

	"github.com/rajlakheradev-creator/habitctl/internal/models"
)

// ErrNotFound is returned when a document has never been written.
var ErrNotFound = errors.New("document not found")

// Document keys. Each document is read and written whole.
const (
	DocHabits = "habits"
	DocUser   = "user"
	DocShop   = "shop"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Documents
	GetHabits() ([]models.Habit, error)
	SaveHabits([]models.Habit) error
	GetUser() (models.UserProfile, error)
	SaveUser(models.UserProfile) error
	GetShop() (models.ShopState, error)
	SaveShop(models.ShopState) error

	// Utils
	GetConfigPath() string
}
