package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"adoptnest/internal/domain"

	"github.com/google/uuid"
)

var ErrBannerNotFound = errors.New("banner not found")

// BannerRepository defines the interface for banner data access
type BannerRepository interface {
	Create(ctx context.Context, banner *domain.Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Banner, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Banner, error)
}

type bannerRepository struct {
	db *sql.DB
}

// NewBannerRepository creates a new instance of BannerRepository
func NewBannerRepository(db *sql.DB) BannerRepository {
	return &bannerRepository{db: db}
}

const bannerColumns = `id, title, link, image_url, image_remote_id, created_at`

func scanBanner(row interface{ Scan(...any) error }) (*domain.Banner, error) {
	banner := &domain.Banner{}
	err := row.Scan(
		&banner.ID,
		&banner.Title,
		&banner.Link,
		&banner.Image.URL,
		&banner.Image.RemoteID,
		&banner.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return banner, nil
}

// Create inserts a new banner
func (r *bannerRepository) Create(ctx context.Context, banner *domain.Banner) error {
	query := `
		INSERT INTO banners (` + bannerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		banner.ID,
		banner.Title,
		banner.Link,
		banner.Image.URL,
		banner.Image.RemoteID,
		banner.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}

	return nil
}

// Delete removes a banner row
func (r *bannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrBannerNotFound
	}

	return nil
}

// List retrieves all banners, newest first
func (r *bannerRepository) List(ctx context.Context) ([]*domain.Banner, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bannerColumns+` FROM banners ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	defer rows.Close()

	banners := []*domain.Banner{}
	for rows.Next() {
		banner, err := scanBanner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan banner: %w", err)
		}
		banners = append(banners, banner)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating banners: %w", err)
	}

	return banners, nil
}

// FindByID retrieves a banner by ID
func (r *bannerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Banner, error) {
	banner, err := scanBanner(r.db.QueryRowContext(ctx, `SELECT `+bannerColumns+` FROM banners WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBannerNotFound
		}
		return nil, fmt.Errorf("failed to find banner by ID: %w", err)
	}

	return banner, nil
}
