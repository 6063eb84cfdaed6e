package domain

import "time"

// Timestamps holds the audit timestamps the backend attaches to most records.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
