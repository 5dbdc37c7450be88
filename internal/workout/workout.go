package workout

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Workout is an append-only log entry. CardUsed and BonusPoints are
// snapshots taken at log time; editing or deleting the card later does
// not rewrite history.
type Workout struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Date        time.Time `json:"date" db:"date"`
	Persons     string    `json:"persons" db:"persons"`
	Activity    string    `json:"activity" db:"activity"`
	NumPeople   int       `json:"num_people" db:"num_people"`
	CardUsed    *string   `json:"card_used" db:"card_used"`
	BonusPoints int       `json:"bonus_points" db:"bonus_points"`
	TotalPoints int       `json:"total_points" db:"total_points"`
	Notes       *string   `json:"notes" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type LogWorkoutRequest struct {
	Date     string   `json:"date"`
	Persons  []string `json:"persons"`
	Activity string   `json:"activity"`
	CardUsed string   `json:"card_used"`
	Notes    string   `json:"notes"`
}

// JoinNames renders a participant list the way it is stored in the
// persons column and in weekly_cards.claimed_by.
func JoinNames(names []string) string {
	return strings.Join(names, ", ")
}

// SplitNames is the inverse of JoinNames, tolerating stray whitespace.
func SplitNames(joined string) []string {
	parts := strings.Split(joined, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ParticipantNames splits the stored comma-joined participant list.
func (w *Workout) ParticipantNames() []string {
	return SplitNames(w.Persons)
}
