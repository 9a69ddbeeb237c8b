package models

import "time"

// Habit is a single tracked directive. Completed resets each calendar day;
// Streak only ever changes through the engine's complete operation.
type Habit struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Completed     bool       `json:"completed"`
	Streak        int        `json:"streak"`
	LastCompleted *time.Time `json:"last_completed,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
