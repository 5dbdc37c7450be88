package card

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func weekOf(names ...string) []*WeeklyCard {
	week := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	cards := make([]*WeeklyCard, 0, len(names))
	for _, n := range names {
		cards = append(cards, &WeeklyCard{
			ID:            uuid.New(),
			WeekStartDate: week,
			CardName:      n,
			Status:        StatusAvailable,
		})
	}
	return cards
}

func TestCheckDrawEmptyWeek(t *testing.T) {
	if err := CheckDraw(nil, "A of Spades"); err != nil {
		t.Errorf("CheckDraw on empty week returned %v", err)
	}
}

func TestCheckDrawDuplicate(t *testing.T) {
	week := weekOf("A of Spades", "2 of Hearts")
	err := CheckDraw(week, "2 of Hearts")
	if !errors.Is(err, ErrDuplicateCard) {
		t.Errorf("CheckDraw duplicate returned %v, want ErrDuplicateCard", err)
	}
}

func TestCheckDrawWeekFull(t *testing.T) {
	week := weekOf("2 of Spades", "3 of Spades", "4 of Spades", "5 of Spades",
		"6 of Spades", "7 of Spades", "8 of Spades")
	err := CheckDraw(week, "9 of Spades")
	if !errors.Is(err, ErrWeekFull) {
		t.Errorf("CheckDraw on full week returned %v, want ErrWeekFull", err)
	}

	// the rejected draw must not have touched the pool
	if len(week) != MaxPerWeek {
		t.Errorf("pool mutated: len = %d", len(week))
	}
	for _, c := range week {
		if c.Status != StatusAvailable {
			t.Errorf("card %s status changed to %s", c.CardName, c.Status)
		}
	}
}

func TestCheckDrawSeventhCardAllowed(t *testing.T) {
	week := weekOf("2 of Spades", "3 of Spades", "4 of Spades", "5 of Spades",
		"6 of Spades", "7 of Spades")
	if err := CheckDraw(week, "8 of Spades"); err != nil {
		t.Errorf("CheckDraw for 7th card returned %v", err)
	}
}

func TestCheckClaim(t *testing.T) {
	c := &WeeklyCard{CardName: "K of Clubs", Status: StatusAvailable}
	if err := c.CheckClaim("Alice"); err != nil {
		t.Errorf("CheckClaim on available card returned %v", err)
	}

	if err := c.CheckClaim(""); !errors.Is(err, ErrMissingClaimer) {
		t.Errorf("CheckClaim with empty name returned %v, want ErrMissingClaimer", err)
	}

	c.Status = StatusClaimed
	if err := c.CheckClaim("Bob"); !errors.Is(err, ErrAlreadyClaimed) {
		t.Errorf("CheckClaim on claimed card returned %v, want ErrAlreadyClaimed", err)
	}
}

func TestCheckUnclaim(t *testing.T) {
	c := &WeeklyCard{CardName: "K of Clubs", Status: StatusClaimed}
	if err := c.CheckUnclaim(); err != nil {
		t.Errorf("CheckUnclaim on claimed card returned %v", err)
	}

	c.Status = StatusAvailable
	if err := c.CheckUnclaim(); !errors.Is(err, ErrNotClaimed) {
		t.Errorf("CheckUnclaim on available card returned %v, want ErrNotClaimed", err)
	}
}
