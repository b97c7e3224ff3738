package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"adoptnest/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrFavouriteExists   = errors.New("pet already in favourites")
	ErrFavouriteNotFound = errors.New("pet is not in favourites")
)

// FavouriteRepository links users to pets they bookmarked
type FavouriteRepository interface {
	Add(ctx context.Context, userID, petID uuid.UUID) error
	Remove(ctx context.Context, userID, petID uuid.UUID) error
	Exists(ctx context.Context, userID, petID uuid.UUID) (bool, error)
	ListPets(ctx context.Context, userID uuid.UUID) ([]*domain.Pet, error)
}

type favouriteRepository struct {
	db *sql.DB
}

// NewFavouriteRepository creates a new instance of FavouriteRepository
func NewFavouriteRepository(db *sql.DB) FavouriteRepository {
	return &favouriteRepository{db: db}
}

func (r *favouriteRepository) Add(ctx context.Context, userID, petID uuid.UUID) error {
	query := `INSERT INTO favourites (user_id, pet_id, created_at) VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, userID, petID, time.Now()); err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrFavouriteExists
		case isForeignKeyViolation(err):
			return ErrPetNotFound
		}
		return fmt.Errorf("failed to add favourite: %w", err)
	}

	return nil
}

func (r *favouriteRepository) Remove(ctx context.Context, userID, petID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM favourites WHERE user_id = $1 AND pet_id = $2`, userID, petID)
	if err != nil {
		return fmt.Errorf("failed to remove favourite: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrFavouriteNotFound
	}

	return nil
}

func (r *favouriteRepository) Exists(ctx context.Context, userID, petID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM favourites WHERE user_id = $1 AND pet_id = $2)`
	if err := r.db.QueryRowContext(ctx, query, userID, petID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check favourite: %w", err)
	}
	return exists, nil
}

// ListPets returns the user's favourited pets that are still publicly
// visible, most recently favourited first.
func (r *favouriteRepository) ListPets(ctx context.Context, userID uuid.UUID) ([]*domain.Pet, error) {
	query := petSelect + `
		JOIN favourites f ON f.pet_id = p.id
		WHERE f.user_id = $1 AND p.status = $2
		ORDER BY f.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, domain.StatusAccepted)
	if err != nil {
		return nil, fmt.Errorf("failed to list favourites: %w", err)
	}
	defer rows.Close()

	pets := []*domain.Pet{}
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favourite pet: %w", err)
		}
		pets = append(pets, pet)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favourites: %w", err)
	}

	return pets, nil
}
