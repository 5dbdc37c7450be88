package card

import "errors"

var (
	ErrWeekFull       = errors.New("week already has the maximum number of cards")
	ErrDuplicateCard  = errors.New("card already drawn for this week")
	ErrAlreadyClaimed = errors.New("card is already claimed")
	ErrNotClaimed     = errors.New("card is not claimed")
	ErrNotAvailable   = errors.New("card is not available")
	ErrMissingClaimer = errors.New("claimed_by is required")
)

// CheckDraw validates that cardName can join the given week pool. Both
// guards run against the already-fetched pool so a rejected draw never
// issues a write.
func CheckDraw(weekCards []*WeeklyCard, cardName string) error {
	if len(weekCards) >= MaxPerWeek {
		return ErrWeekFull
	}
	for _, c := range weekCards {
		if c.CardName == cardName {
			return ErrDuplicateCard
		}
	}
	return nil
}

// CheckClaim guards the Available -> Claimed transition.
func (c *WeeklyCard) CheckClaim(claimedBy string) error {
	if claimedBy == "" {
		return ErrMissingClaimer
	}
	if c.Status != StatusAvailable {
		return ErrAlreadyClaimed
	}
	return nil
}

// CheckUnclaim guards the Claimed -> Available transition.
func (c *WeeklyCard) CheckUnclaim() error {
	if c.Status != StatusClaimed {
		return ErrNotClaimed
	}
	return nil
}
