package models

// Trader is the read-only projection of a roster member owned by the
// surrounding application.
type Trader struct {
	ID       int64   `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Alias    *string `db:"alias" json:"alias,omitempty"`
	Location string  `db:"location" json:"location"`
	IsActive bool    `db:"is_active" json:"is_active"`
}
