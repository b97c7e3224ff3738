package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"adoptnest/internal/assetstore"
	"adoptnest/internal/domain"
	"adoptnest/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryService defines the interface for category administration
type CategoryService interface {
	Create(ctx context.Context, creator domain.Identity, name string, icon *LocalFile) (*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, name string, icon *LocalFile) (category *domain.Category, changed bool, err error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	assets       assetstore.Store
	logger       *zap.Logger
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(categoryRepo repository.CategoryRepository, assets assetstore.Store, logger *zap.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		assets:       assets,
		logger:       logger,
	}
}

func (s *categoryService) Create(ctx context.Context, creator domain.Identity, name string, icon *LocalFile) (*domain.Category, error) {
	if icon != nil {
		defer LocalFiles{*icon}.Remove(s.logger)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput.withMessage("Category name is required.")
	}
	if icon == nil {
		return nil, ErrInvalidInput.withMessage("Category icon is required.")
	}

	if err := s.ensureNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}

	asset, err := s.assets.Upload(ctx, icon.Path, assetstore.CategoryIcons)
	if err != nil {
		return nil, uploadFailure(err)
	}

	createdBy := creator.UserID
	category := &domain.Category{
		ID:        uuid.New(),
		Name:      name,
		Icon:      asset,
		CreatedBy: &createdBy,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		releaseAssets(ctx, s.assets, s.logger, asset.RemoteID)
		if errors.Is(err, repository.ErrCategoryAlreadyExists) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("Category created", zap.String("category_id", category.ID.String()), zap.String("name", name))
	return category, nil
}

// Update renames a category and/or replaces its icon. The previous icon is
// released only after the new one is stored.
func (s *categoryService) Update(ctx context.Context, id uuid.UUID, name string, icon *LocalFile) (*domain.Category, bool, error) {
	if icon != nil {
		defer LocalFiles{*icon}.Remove(s.logger)
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}

	changed := false
	name = strings.TrimSpace(name)
	if name != "" && name != category.Name {
		if err := s.ensureNameFree(ctx, name, category.ID); err != nil {
			return nil, false, err
		}
		category.Name = name
		changed = true
	}

	var previous, uploaded string
	if icon != nil {
		asset, err := s.assets.Upload(ctx, icon.Path, assetstore.CategoryIconReplacement)
		if err != nil {
			return nil, false, uploadFailure(err)
		}
		previous, uploaded = category.Icon.RemoteID, asset.RemoteID
		category.Icon = asset
		changed = true
	}

	if !changed {
		return category, false, nil
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		releaseAssets(ctx, s.assets, s.logger, uploaded)
		switch {
		case errors.Is(err, repository.ErrCategoryAlreadyExists):
			return nil, false, ErrCategoryExists
		case errors.Is(err, repository.ErrCategoryNotFound):
			return nil, false, ErrCategoryNotFound
		}
		return nil, false, fmt.Errorf("failed to update category: %w", err)
	}

	releaseAssets(ctx, s.assets, s.logger, previous)
	return category, true, nil
}

// Delete removes a category that no pet references, then its icon.
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryInUse):
			return ErrCategoryInUse
		case errors.Is(err, repository.ErrCategoryNotFound):
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	releaseAssets(ctx, s.assets, s.logger, category.Icon.RemoteID)
	return nil
}

func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// ensureNameFree fails when another category already uses name.
func (s *categoryService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.categoryRepo.FindByName(ctx, name)
	switch {
	case errors.Is(err, repository.ErrCategoryNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check category name: %w", err)
	case existing.ID != self:
		return ErrCategoryExists
	}
	return nil
}
