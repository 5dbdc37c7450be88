package dashboard

import (
	"math"
	"sort"
	"time"

	"github.com/Tanner-R/deck-game/internal/card"
	"github.com/Tanner-R/deck-game/internal/person"
	"github.com/Tanner-R/deck-game/internal/workout"
	"github.com/Tanner-R/deck-game/utils"
)

// MonthlyGoalPoints is the fixed household target per calendar month.
const MonthlyGoalPoints = 100

type LeaderboardEntry struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

type SeriesPoint struct {
	Date   string `json:"date"`
	Points int    `json:"points"`
}

type SuitCount struct {
	Suit  string `json:"suit"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

type Summary struct {
	Month          string             `json:"month"`
	TotalPoints    float64            `json:"total_points"`
	GoalTarget     int                `json:"goal_target"`
	GoalProgress   float64            `json:"goal_progress"`
	DaysLeft       int                `json:"days_left"`
	WorkoutCount   int                `json:"workout_count"`
	PlayerCount    int                `json:"player_count"`
	AvailableCards int                `json:"available_cards"`
	TotalCards     int                `json:"total_cards"`
	Leaderboard    []LeaderboardEntry `json:"leaderboard"`
	Series         []SeriesPoint      `json:"series"`
	SuitCounts     []SuitCount        `json:"suit_counts"`
}

// Build derives every dashboard figure from the raw collections in a
// single pass over the month's workouts.
//
// Points are split evenly across a workout's listed participants and
// credited only to names present in the people list. The divisor stays
// the full participant count, so an unknown name's share is lost rather
// than redistributed. That matches the reference behavior; see DESIGN.md.
func Build(workouts []*workout.Workout, people []*person.Person, cards []*card.WeeklyCard, now time.Time) *Summary {
	year, month, _ := now.Date()

	var monthWorkouts []*workout.Workout
	for _, w := range workouts {
		wy, wm, _ := w.Date.Date()
		if wy == year && wm == month {
			monthWorkouts = append(monthWorkouts, w)
		}
	}

	pointsByPerson := make(map[string]float64, len(people))
	for _, p := range people {
		pointsByPerson[p.Name] = 0
	}
	for _, w := range monthWorkouts {
		names := w.ParticipantNames()
		if len(names) == 0 {
			continue
		}
		share := float64(w.TotalPoints) / float64(len(names))
		for _, n := range names {
			if _, ok := pointsByPerson[n]; ok {
				pointsByPerson[n] += share
			}
		}
	}

	var total float64
	for _, pts := range pointsByPerson {
		total += pts
	}

	progress := total / MonthlyGoalPoints * 100
	if progress > 100 {
		progress = 100
	}

	leaderboard := make([]LeaderboardEntry, 0, len(people))
	for _, p := range people {
		leaderboard = append(leaderboard, LeaderboardEntry{
			Name:   p.Name,
			Points: math.Round(pointsByPerson[p.Name]*10) / 10,
		})
	}
	sort.SliceStable(leaderboard, func(i, j int) bool {
		return leaderboard[i].Points > leaderboard[j].Points
	})

	series := cumulativeSeries(monthWorkouts)
	suitCounts := countSuits(monthWorkouts)

	available := 0
	for _, c := range cards {
		if c.Status == card.StatusAvailable {
			available++
		}
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, now.Location()).Day()

	return &Summary{
		Month:          now.Format("2006-01"),
		TotalPoints:    total,
		GoalTarget:     MonthlyGoalPoints,
		GoalProgress:   progress,
		DaysLeft:       daysInMonth - now.Day(),
		WorkoutCount:   len(monthWorkouts),
		PlayerCount:    len(people),
		AvailableCards: available,
		TotalCards:     len(cards),
		Leaderboard:    leaderboard,
		Series:         series,
		SuitCounts:     suitCounts,
	}
}

// cumulativeSeries groups workouts by date, sums the daily totals and
// returns a running sum in date order. One point per distinct date.
func cumulativeSeries(workouts []*workout.Workout) []SeriesPoint {
	byDate := make(map[string]int)
	for _, w := range workouts {
		byDate[w.Date.Format("2006-01-02")] += w.TotalPoints
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	series := make([]SeriesPoint, 0, len(dates))
	cumulative := 0
	for _, d := range dates {
		cumulative += byDate[d]
		series = append(series, SeriesPoint{Date: d, Points: cumulative})
	}
	return series
}

// countSuits tallies card_used suits for the month. Workouts without a
// card, and card names that do not parse to a known suit, are ignored.
func countSuits(workouts []*workout.Workout) []SuitCount {
	counts := make(map[string]int, len(utils.Suits))
	for _, w := range workouts {
		if w.CardUsed == nil {
			continue
		}
		suit := utils.ParseSuit(*w.CardUsed)
		if !utils.ValidSuit(suit) {
			continue
		}
		counts[suit]++
	}

	out := make([]SuitCount, 0, len(utils.Suits))
	for _, s := range utils.Suits {
		out = append(out, SuitCount{Suit: s, Count: counts[s], Color: utils.GetSuitColor(s)})
	}
	return out
}
