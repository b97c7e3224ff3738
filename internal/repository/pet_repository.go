package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"adoptnest/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrPetNotFound = errors.New("pet not found")
	// ErrInconsistentModeration is returned when a write would break the
	// accepted-iff-category rule enforced by the pets table.
	ErrInconsistentModeration = errors.New("status and category are inconsistent")
)

// PetFilter narrows pet listings. Zero values mean "no restriction".
type PetFilter struct {
	Status     *domain.Status
	CategoryID *uuid.UUID
	Limit      int
}

// PetRepository defines the interface for pet listing data access
type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error)
	List(ctx context.Context, filter PetFilter) ([]*domain.Pet, error)
	UpdateModeration(ctx context.Context, id uuid.UUID, status domain.Status, categoryID *uuid.UUID) error
}

type petRepository struct {
	db *sql.DB
}

// NewPetRepository creates a new instance of PetRepository
func NewPetRepository(db *sql.DB) PetRepository {
	return &petRepository{db: db}
}

const petSelect = `
	SELECT p.id, p.name, p.age, p.breed, p.gender, p.description, p.location, p.images,
	       p.category_id, COALESCE(c.name, ''), p.creator_name, p.contact_phone,
	       p.contact_email, p.contact_whatsapp, p.created_by, p.status, p.created_at
	FROM pets p
	LEFT JOIN categories c ON c.id = p.category_id
`

func scanPet(row interface{ Scan(...any) error }) (*domain.Pet, error) {
	pet := &domain.Pet{}
	var categoryID uuid.NullUUID
	err := row.Scan(
		&pet.ID,
		&pet.Name,
		&pet.Age,
		&pet.Breed,
		&pet.Gender,
		&pet.Description,
		&pet.Location,
		&pet.Images,
		&categoryID,
		&pet.CategoryName,
		&pet.Contact.CreatorName,
		&pet.Contact.Phone,
		&pet.Contact.Email,
		&pet.Contact.WhatsApp,
		&pet.CreatedBy,
		&pet.Status,
		&pet.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		pet.CategoryID = &categoryID.UUID
	}
	return pet, nil
}

// Create inserts a new pet listing in a single statement
func (r *petRepository) Create(ctx context.Context, pet *domain.Pet) error {
	query := `
		INSERT INTO pets (
			id, name, age, breed, gender, description, location, images,
			category_id, creator_name, contact_phone, contact_email, contact_whatsapp,
			created_by, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		pet.ID,
		pet.Name,
		pet.Age,
		pet.Breed,
		pet.Gender,
		pet.Description,
		pet.Location,
		pet.Images,
		nullUUID(pet.CategoryID),
		pet.Contact.CreatorName,
		pet.Contact.Phone,
		pet.Contact.Email,
		pet.Contact.WhatsApp,
		pet.CreatedBy,
		pet.Status,
		pet.CreatedAt,
	)

	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("failed to create pet: %w", ErrInconsistentModeration)
		}
		return fmt.Errorf("failed to create pet: %w", err)
	}

	return nil
}

// FindByID retrieves a pet by ID
func (r *petRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error) {
	pet, err := scanPet(r.db.QueryRowContext(ctx, petSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to find pet by ID: %w", err)
	}

	return pet, nil
}

// List retrieves pets matching the filter, newest first
func (r *petRepository) List(ctx context.Context, filter PetFilter) ([]*domain.Pet, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", len(args)))
	}

	query := petSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	defer rows.Close()

	pets := []*domain.Pet{}
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pet: %w", err)
		}
		pets = append(pets, pet)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pets: %w", err)
	}

	return pets, nil
}

// UpdateModeration writes status and category together in one statement so
// readers never observe one without the other.
func (r *petRepository) UpdateModeration(ctx context.Context, id uuid.UUID, status domain.Status, categoryID *uuid.UUID) error {
	query := `
		UPDATE pets
		SET status = $2, category_id = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, status, nullUUID(categoryID))
	if err != nil {
		switch {
		case isForeignKeyViolation(err):
			return ErrCategoryNotFound
		case isCheckViolation(err):
			return ErrInconsistentModeration
		}
		return fmt.Errorf("failed to update pet moderation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPetNotFound
	}

	return nil
}
