package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Tanner-R/deck-game/internal/person"
)

var ErrPersonNotFound = errors.New("person not found")

type PersonService struct {
	db *pgxpool.Pool
}

func NewPersonService(db *pgxpool.Pool) *PersonService {
	return &PersonService{db: db}
}

func (s *PersonService) ListPeople(ctx context.Context) ([]*person.Person, error) {
	query := `
	SELECT id, name, created_at
	FROM people
	ORDER BY name
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	people := []*person.Person{}
	for rows.Next() {
		p := &person.Person{}
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}

	return people, rows.Err()
}

func (s *PersonService) CreatePerson(ctx context.Context, req *person.CreatePersonRequest) (*person.Person, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	p := &person.Person{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}

	query := `
	INSERT INTO people (id, name, created_at)
	VALUES ($1, $2, $3)
	RETURNING id, name, created_at
	`

	err := s.db.QueryRow(ctx, query, p.ID, p.Name, p.CreatedAt).
		Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create person: %w", err)
	}

	return p, nil
}

// DeletePerson removes the player record only. Workouts and weekly cards
// keep referencing the name by value and are left untouched.
func (s *PersonService) DeletePerson(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM people WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPersonNotFound
	}
	return nil
}
