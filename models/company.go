package models

import (
	"time"
)

// Company is a cash-pool participant. Only active companies earn demand interest.
type Company struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}
