package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Tanner-R/deck-game/internal/dashboard"
)

// DashboardService loads the three collections in full and hands them to
// the aggregation engine. The data set is a household's workout log, so
// whole-table reads stay cheap.
type DashboardService struct {
	db       *pgxpool.Pool
	people   *PersonService
	cards    *CardService
	workouts *WorkoutService
}

func NewDashboardService(db *pgxpool.Pool, people *PersonService, cards *CardService, workouts *WorkoutService) *DashboardService {
	return &DashboardService{
		db:       db,
		people:   people,
		cards:    cards,
		workouts: workouts,
	}
}

func (s *DashboardService) GetSummary(ctx context.Context, now time.Time) (*dashboard.Summary, error) {
	workouts, err := s.workouts.ListWorkouts(ctx)
	if err != nil {
		return nil, err
	}

	people, err := s.people.ListPeople(ctx)
	if err != nil {
		return nil, err
	}

	cards, err := s.cards.ListCards(ctx)
	if err != nil {
		return nil, err
	}

	return dashboard.Build(workouts, people, cards, now), nil
}
