package member

import (
	"time"

	"github.com/google/uuid"
)

// Member is a loyalty account. Points and TotalSpent only ever grow, and only
// through a committed sale referencing the member; no operation decrements
// either.
type Member struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      *string   `json:"email,omitempty"`
	Points     int64     `json:"points"`
	TotalSpent float64   `json:"totalSpent"`
	CreatedAt  time.Time `json:"createdAt"`
}
