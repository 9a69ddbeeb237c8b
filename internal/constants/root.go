package constants

import "time"

const (
	AppName            = "habitctl"
	DefaultKeyringUser = "generator-api-key"
	DefaultConfigPath  = "~/.config/habitctl/habitctl.db"
	Version            = "v0.2.0"

	// DateFormat is the standard calendar-date format used throughout the
	// application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Economy constants
	StartingPoints    = 200
	PointsPerComplete = 50

	// Shop constants
	ShopSize         = 6
	ShopRefreshEvery = 5 * time.Hour
	MinItemPrice     = 50
	MaxItemPrice     = 300

	// Generator constants
	GeneratorEnvKey     = "HABITCTL_GENERATOR_API_KEY"
	GeneratorModel      = "gemini-2.0-flash"
	GeneratorBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	GeneratorTimeout    = 30 * time.Second
	GeneratorMaxRetries = 3
)

// ShopSource identifies which path produced the current shop contents.
type ShopSource string

const (
	ShopSourceModel    ShopSource = "model"
	ShopSourceFallback ShopSource = "fallback"
)
