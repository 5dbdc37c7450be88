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
	"github.com/Tanner-R/deck-game/internal/workout"
	"github.com/Tanner-R/deck-game/utils"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type WorkoutService struct {
	db *pgxpool.Pool
}

func NewWorkoutService(db *pgxpool.Pool) *WorkoutService {
	return &WorkoutService{db: db}
}

const workoutColumns = `id, date, persons, activity, num_people, card_used, bonus_points, total_points, notes, created_at`

func scanWorkout(row pgx.Row) (*workout.Workout, error) {
	w := &workout.Workout{}
	err := row.Scan(
		&w.ID,
		&w.Date,
		&w.Persons,
		&w.Activity,
		&w.NumPeople,
		&w.CardUsed,
		&w.BonusPoints,
		&w.TotalPoints,
		&w.Notes,
		&w.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WorkoutService) ListWorkouts(ctx context.Context) ([]*workout.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts ORDER BY date DESC, created_at DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}
	defer rows.Close()

	workouts := []*workout.Workout{}
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workout: %w", err)
		}
		workouts = append(workouts, w)
	}

	return workouts, rows.Err()
}

// LogWorkout records a workout and, when a card is used, consumes that
// card from the current week's available pool. The insert and the card
// update run in one transaction so the log and the pool can never
// disagree about whether a card was spent.
func (s *WorkoutService) LogWorkout(ctx context.Context, req *workout.LogWorkoutRequest) (*workout.Workout, error) {
	names := make([]string, 0, len(req.Persons))
	for _, n := range req.Persons {
		if name := strings.TrimSpace(n); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: at least one participant is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Activity) == "" {
		return nil, fmt.Errorf("%w: activity is required", ErrInvalidInput)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var usedCard *card.WeeklyCard
	if req.CardUsed != "" {
		weekStart := utils.WeekStart(time.Now())
		query := `
		SELECT id, bonus_points
		FROM weekly_cards
		WHERE week_start_date = $1 AND card_name = $2 AND status = $3
		`
		usedCard = &card.WeeklyCard{CardName: req.CardUsed}
		err := tx.QueryRow(ctx, query, weekStart, req.CardUsed, card.StatusAvailable).
			Scan(&usedCard.ID, &usedCard.BonusPoints)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, card.ErrNotAvailable
			}
			return nil, fmt.Errorf("failed to look up card: %w", err)
		}
	}

	bonus := 0
	if usedCard != nil {
		bonus = usedCard.BonusPoints
	}

	w := &workout.Workout{
		ID:          uuid.New(),
		Date:        date,
		Persons:     workout.JoinNames(names),
		Activity:    strings.TrimSpace(req.Activity),
		NumPeople:   len(names),
		BonusPoints: bonus,
		TotalPoints: len(names) + bonus,
		CreatedAt:   time.Now(),
	}
	if usedCard != nil {
		w.CardUsed = &usedCard.CardName
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		w.Notes = &notes
	}

	insert := `
	INSERT INTO workouts (id, date, persons, activity, num_people, card_used, bonus_points, total_points, notes, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING ` + workoutColumns

	created, err := scanWorkout(tx.QueryRow(ctx, insert,
		w.ID, w.Date, w.Persons, w.Activity, w.NumPeople, w.CardUsed, w.BonusPoints, w.TotalPoints, w.Notes, w.CreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to log workout: %w", err)
	}

	if usedCard != nil {
		tag, err := tx.Exec(ctx, `
			UPDATE weekly_cards
			SET status = $2, claimed_by = $3
			WHERE id = $1 AND status = $4`,
			usedCard.ID, card.StatusClaimed, w.Persons, card.StatusAvailable)
		if err != nil {
			return nil, fmt.Errorf("failed to consume card: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, card.ErrNotAvailable
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit workout: %w", err)
	}

	log.Printf("Logged workout %s for %s (%d pts)", created.Activity, created.Persons, created.TotalPoints)
	return created, nil
}

func (s *WorkoutService) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}
