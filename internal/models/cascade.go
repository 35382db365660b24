package models

import "time"

// CascadeRecord describes one loaded Haar cascade in the registry (C10).
type CascadeRecord struct {
	Name      string    `json:"name" db:"name"`
	Hash      string    `json:"hash" db:"hash"` // xxhash of the cascade XML bytes
	WindowW   int       `json:"window_w" db:"window_w"`
	WindowH   int       `json:"window_h" db:"window_h"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
