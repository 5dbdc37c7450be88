package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Tanner-R/deck-game/internal/card"
	"github.com/Tanner-R/deck-game/utils"
)

var ErrCardNotFound = errors.New("card not found")

type CardService struct {
	db *pgxpool.Pool
}

func NewCardService(db *pgxpool.Pool) *CardService {
	return &CardService{db: db}
}

const cardColumns = `id, week_start_date, card_name, suit, value, bonus_points, status, claimed_by, created_at`

func scanCard(row pgx.Row) (*card.WeeklyCard, error) {
	c := &card.WeeklyCard{}
	err := row.Scan(
		&c.ID,
		&c.WeekStartDate,
		&c.CardName,
		&c.Suit,
		&c.Value,
		&c.BonusPoints,
		&c.Status,
		&c.ClaimedBy,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CardService) ListCards(ctx context.Context) ([]*card.WeeklyCard, error) {
	query := `SELECT ` + cardColumns + ` FROM weekly_cards ORDER BY created_at, id`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	return collectCards(rows)
}

func (s *CardService) ListWeekCards(ctx context.Context, weekStart time.Time) ([]*card.WeeklyCard, error) {
	query := `SELECT ` + cardColumns + ` FROM weekly_cards WHERE week_start_date = $1 ORDER BY created_at, id`

	rows, err := s.db.Query(ctx, query, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list week cards: %w", err)
	}
	defer rows.Close()

	return collectCards(rows)
}

func collectCards(rows pgx.Rows) ([]*card.WeeklyCard, error) {
	cards := []*card.WeeklyCard{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// DrawCard records a card pulled from the physical deck into the given
// week's pool. The week-full and duplicate guards run against the
// fetched pool before anything is written.
func (s *CardService) DrawCard(ctx context.Context, weekStart time.Time, suit, value string) (*card.WeeklyCard, error) {
	if !utils.ValidSuit(suit) {
		return nil, fmt.Errorf("%w: unknown suit %q", ErrInvalidInput, suit)
	}
	if !utils.ValidValue(value) {
		return nil, fmt.Errorf("%w: unknown value %q", ErrInvalidInput, value)
	}

	weekCards, err := s.ListWeekCards(ctx, weekStart)
	if err != nil {
		return nil, err
	}

	cardName := utils.CardName(value, suit)
	if err := card.CheckDraw(weekCards, cardName); err != nil {
		return nil, err
	}

	c := &card.WeeklyCard{
		ID:            uuid.New(),
		WeekStartDate: weekStart,
		CardName:      cardName,
		Suit:          suit,
		Value:         value,
		BonusPoints:   utils.BonusPoints(value),
		Status:        card.StatusAvailable,
		CreatedAt:     time.Now(),
	}

	query := `
	INSERT INTO weekly_cards (id, week_start_date, card_name, suit, value, bonus_points, status, claimed_by, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NULL, $8)
	RETURNING ` + cardColumns

	created, err := scanCard(s.db.QueryRow(ctx, query,
		c.ID, c.WeekStartDate, c.CardName, c.Suit, c.Value, c.BonusPoints, c.Status, c.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to draw card: %w", err)
	}

	log.Printf("Drew %s for week %s", created.CardName, weekStart.Format("2006-01-02"))
	return created, nil
}

func (s *CardService) GetCard(ctx context.Context, id uuid.UUID) (*card.WeeklyCard, error) {
	query := `SELECT ` + cardColumns + ` FROM weekly_cards WHERE id = $1`

	c, err := scanCard(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return c, nil
}

// ClaimCard moves an available card to Claimed for a named person.
func (s *CardService) ClaimCard(ctx context.Context, id uuid.UUID, claimedBy string) (*card.WeeklyCard, error) {
	claimedBy = strings.TrimSpace(claimedBy)

	c, err := s.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.CheckClaim(claimedBy); err != nil {
		return nil, err
	}

	query := `
	UPDATE weekly_cards
	SET status = $2, claimed_by = $3
	WHERE id = $1 AND status = $4
	RETURNING ` + cardColumns

	updated, err := scanCard(s.db.QueryRow(ctx, query, id, card.StatusClaimed, claimedBy, card.StatusAvailable))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// lost a race with another claim
			return nil, card.ErrAlreadyClaimed
		}
		return nil, fmt.Errorf("failed to claim card: %w", err)
	}

	return updated, nil
}

// UnclaimCard returns a claimed card to the available pool. The prior
// claimant is not retained anywhere.
func (s *CardService) UnclaimCard(ctx context.Context, id uuid.UUID) (*card.WeeklyCard, error) {
	c, err := s.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.CheckUnclaim(); err != nil {
		return nil, err
	}

	query := `
	UPDATE weekly_cards
	SET status = $2, claimed_by = NULL
	WHERE id = $1 AND status = $3
	RETURNING ` + cardColumns

	updated, err := scanCard(s.db.QueryRow(ctx, query, id, card.StatusAvailable, card.StatusClaimed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// lost a race with another unclaim
			return nil, card.ErrNotClaimed
		}
		return nil, fmt.Errorf("failed to unclaim card: %w", err)
	}

	return updated, nil
}

func (s *CardService) DeleteCard(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM weekly_cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCardNotFound
	}
	return nil
}

// ClearWeek removes every card for the week regardless of status.
func (s *CardService) ClearWeek(ctx context.Context, weekStart time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM weekly_cards WHERE week_start_date = $1`, weekStart)
	if err != nil {
		return 0, fmt.Errorf("failed to clear week: %w", err)
	}
	return tag.RowsAffected(), nil
}
