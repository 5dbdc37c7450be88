package card

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusAvailable Status = "Available"
	StatusClaimed   Status = "Claimed"
)

// MaxPerWeek caps how many cards can be drawn into a single week pool,
// mirroring a seven-card hand from the physical deck.
const MaxPerWeek = 7

type WeeklyCard struct {
	ID            uuid.UUID `json:"id" db:"id"`
	WeekStartDate time.Time `json:"week_start_date" db:"week_start_date"`
	CardName      string    `json:"card_name" db:"card_name"`
	Suit          string    `json:"suit" db:"suit"`
	Value         string    `json:"value" db:"value"`
	BonusPoints   int       `json:"bonus_points" db:"bonus_points"`
	Status        Status    `json:"status" db:"status"`
	ClaimedBy     *string   `json:"claimed_by" db:"claimed_by"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type DrawCardRequest struct {
	WeekStartDate string `json:"week_start_date"`
	Suit          string `json:"suit"`
	Value         string `json:"value"`
}

type ClaimCardRequest struct {
	ClaimedBy string `json:"claimed_by"`
}
