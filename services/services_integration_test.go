package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tanner-R/deck-game/internal/card"
	"github.com/Tanner-R/deck-game/internal/person"
	"github.com/Tanner-R/deck-game/internal/workout"
	"github.com/Tanner-R/deck-game/utils"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	_ = godotenv.Load("../.env")

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err)

	schema := []string{
		`CREATE TABLE IF NOT EXISTS people (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS weekly_cards (
			id UUID PRIMARY KEY,
			week_start_date DATE NOT NULL,
			card_name TEXT NOT NULL,
			suit TEXT NOT NULL,
			value TEXT NOT NULL,
			bonus_points INT NOT NULL,
			status TEXT NOT NULL,
			claimed_by TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS workouts (
			id UUID PRIMARY KEY,
			date DATE NOT NULL,
			persons TEXT NOT NULL,
			activity TEXT NOT NULL,
			num_people INT NOT NULL,
			card_used TEXT,
			bonus_points INT NOT NULL,
			total_points INT NOT NULL,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range schema {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err)
	}

	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `TRUNCATE people, weekly_cards, workouts`)
		pool.Close()
	})

	return pool
}

func TestDrawClaimUnclaimFlow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCardService(db)
	ctx := context.Background()

	week := utils.WeekStart(time.Now())

	drawn, err := svc.DrawCard(ctx, week, "Spades", "A")
	require.NoError(t, err)
	assert.Equal(t, "A of Spades", drawn.CardName)
	assert.Equal(t, 5, drawn.BonusPoints)
	assert.Equal(t, card.StatusAvailable, drawn.Status)
	assert.Nil(t, drawn.ClaimedBy)

	// duplicate draw is rejected before writing
	_, err = svc.DrawCard(ctx, week, "Spades", "A")
	assert.ErrorIs(t, err, card.ErrDuplicateCard)

	claimed, err := svc.ClaimCard(ctx, drawn.ID, "Alice")
	require.NoError(t, err)
	assert.Equal(t, card.StatusClaimed, claimed.Status)
	require.NotNil(t, claimed.ClaimedBy)
	assert.Equal(t, "Alice", *claimed.ClaimedBy)

	// claiming again is a state-guard violation
	_, err = svc.ClaimCard(ctx, drawn.ID, "Bob")
	assert.ErrorIs(t, err, card.ErrAlreadyClaimed)

	unclaimed, err := svc.UnclaimCard(ctx, drawn.ID)
	require.NoError(t, err)
	assert.Equal(t, card.StatusAvailable, unclaimed.Status)
	assert.Nil(t, unclaimed.ClaimedBy)

	_, err = svc.UnclaimCard(ctx, drawn.ID)
	assert.ErrorIs(t, err, card.ErrNotClaimed)
}

func TestDrawCardWeekFull(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCardService(db)
	ctx := context.Background()

	week := utils.WeekStart(time.Now())

	values := []string{"2", "3", "4", "5", "6", "7", "8"}
	for _, v := range values {
		_, err := svc.DrawCard(ctx, week, "Hearts", v)
		require.NoError(t, err)
	}

	_, err := svc.DrawCard(ctx, week, "Hearts", "9")
	assert.ErrorIs(t, err, card.ErrWeekFull)

	cards, err := svc.ListWeekCards(ctx, week)
	require.NoError(t, err)
	assert.Len(t, cards, card.MaxPerWeek)
}

func TestLogWorkoutWithoutCard(t *testing.T) {
	db := setupTestDB(t)
	svc := NewWorkoutService(db)
	ctx := context.Background()

	w, err := svc.LogWorkout(ctx, &workout.LogWorkoutRequest{
		Date:     time.Now().Format("2006-01-02"),
		Persons:  []string{"Alice", "Bob"},
		Activity: "3 mile run",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, w.NumPeople)
	assert.Equal(t, 0, w.BonusPoints)
	assert.Equal(t, 2, w.TotalPoints)
	assert.Nil(t, w.CardUsed)
}

func TestLogWorkoutConsumesCard(t *testing.T) {
	db := setupTestDB(t)
	cardSvc := NewCardService(db)
	workoutSvc := NewWorkoutService(db)
	ctx := context.Background()

	week := utils.WeekStart(time.Now())
	drawn, err := cardSvc.DrawCard(ctx, week, "Spades", "A")
	require.NoError(t, err)

	w, err := workoutSvc.LogWorkout(ctx, &workout.LogWorkoutRequest{
		Date:     time.Now().Format("2006-01-02"),
		Persons:  []string{"Alice", "Bob"},
		Activity: "Gym session",
		CardUsed: "A of Spades",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, w.BonusPoints)
	assert.Equal(t, 7, w.TotalPoints)

	// the card left the available pool with the participants as claimant
	got, err := cardSvc.GetCard(ctx, drawn.ID)
	require.NoError(t, err)
	assert.Equal(t, card.StatusClaimed, got.Status)
	require.NotNil(t, got.ClaimedBy)
	assert.Equal(t, "Alice, Bob", *got.ClaimedBy)

	// a second workout cannot spend the same card, and nothing is written
	_, err = workoutSvc.LogWorkout(ctx, &workout.LogWorkoutRequest{
		Date:     time.Now().Format("2006-01-02"),
		Persons:  []string{"Cara"},
		Activity: "Yoga",
		CardUsed: "A of Spades",
	})
	assert.ErrorIs(t, err, card.ErrNotAvailable)

	workouts, err := workoutSvc.ListWorkouts(ctx)
	require.NoError(t, err)
	assert.Len(t, workouts, 1)
}

func TestLogWorkoutRequiresParticipants(t *testing.T) {
	db := setupTestDB(t)
	svc := NewWorkoutService(db)
	ctx := context.Background()

	_, err := svc.LogWorkout(ctx, &workout.LogWorkoutRequest{
		Date:     time.Now().Format("2006-01-02"),
		Persons:  nil,
		Activity: "Gym session",
	})
	assert.Error(t, err)

	_, err = svc.LogWorkout(ctx, &workout.LogWorkoutRequest{
		Date:     time.Now().Format("2006-01-02"),
		Persons:  []string{"Alice"},
		Activity: "   ",
	})
	assert.Error(t, err)
}

func TestDeletePersonLeavesRecordsAlone(t *testing.T) {
	db := setupTestDB(t)
	personSvc := NewPersonService(db)
	cardSvc := NewCardService(db)
	workoutSvc := NewWorkoutService(db)
	ctx := context.Background()

	p, err := personSvc.CreatePerson(ctx, &person.CreatePersonRequest{Name: "Alice"})
	require.NoError(t, err)

	week := utils.WeekStart(time.Now())
	drawn, err := cardSvc.DrawCard(ctx, week, "Clubs", "K")
	require.NoError(t, err)
	_, err = cardSvc.ClaimCard(ctx, drawn.ID, "Alice")
	require.NoError(t, err)

	w, err := workoutSvc.LogWorkout(ctx, &workout.LogWorkoutRequest{
		Date:     time.Now().Format("2006-01-02"),
		Persons:  []string{"Alice"},
		Activity: "Gym session",
	})
	require.NoError(t, err)

	require.NoError(t, personSvc.DeletePerson(ctx, p.ID))

	// name references survive by value
	gotCard, err := cardSvc.GetCard(ctx, drawn.ID)
	require.NoError(t, err)
	require.NotNil(t, gotCard.ClaimedBy)
	assert.Equal(t, "Alice", *gotCard.ClaimedBy)

	workouts, err := workoutSvc.ListWorkouts(ctx)
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.Equal(t, w.ID, workouts[0].ID)

	people, err := personSvc.ListPeople(ctx)
	require.NoError(t, err)
	assert.Empty(t, people)
}

func TestClearWeek(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCardService(db)
	ctx := context.Background()

	week := utils.WeekStart(time.Now())
	_, err := svc.DrawCard(ctx, week, "Diamonds", "2")
	require.NoError(t, err)
	drawn, err := svc.DrawCard(ctx, week, "Diamonds", "3")
	require.NoError(t, err)
	_, err = svc.ClaimCard(ctx, drawn.ID, "Bob")
	require.NoError(t, err)

	// clearWeek removes claimed cards too
	deleted, err := svc.ClearWeek(ctx, week)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	cards, err := svc.ListWeekCards(ctx, week)
	require.NoError(t, err)
	assert.Empty(t, cards)
}
