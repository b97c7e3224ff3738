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

// BannerService defines the interface for banner administration
type BannerService interface {
	Create(ctx context.Context, title, link string, image *LocalFile) (*domain.Banner, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Banner, error)
}

type bannerService struct {
	bannerRepo repository.BannerRepository
	assets     assetstore.Store
	logger     *zap.Logger
}

// NewBannerService creates a new instance of BannerService
func NewBannerService(bannerRepo repository.BannerRepository, assets assetstore.Store, logger *zap.Logger) BannerService {
	return &bannerService{
		bannerRepo: bannerRepo,
		assets:     assets,
		logger:     logger,
	}
}

func (s *bannerService) Create(ctx context.Context, title, link string, image *LocalFile) (*domain.Banner, error) {
	if image == nil {
		return nil, ErrInvalidInput.withMessage("Banner image is required.")
	}
	defer LocalFiles{*image}.Remove(s.logger)

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrMissingFields
	}

	asset, err := s.assets.Upload(ctx, image.Path, assetstore.Banners)
	if err != nil {
		return nil, uploadFailure(err)
	}

	banner := &domain.Banner{
		ID:        uuid.New(),
		Title:     title,
		Link:      strings.TrimSpace(link),
		Image:     asset,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.bannerRepo.Create(ctx, banner); err != nil {
		releaseAssets(ctx, s.assets, s.logger, asset.RemoteID)
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}

	return banner, nil
}

func (s *bannerService) Delete(ctx context.Context, id uuid.UUID) error {
	banner, err := s.bannerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) {
			return ErrBannerNotFound
		}
		return fmt.Errorf("failed to get banner: %w", err)
	}

	if err := s.bannerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) {
			return ErrBannerNotFound
		}
		return fmt.Errorf("failed to delete banner: %w", err)
	}

	releaseAssets(ctx, s.assets, s.logger, banner.Image.RemoteID)
	return nil
}

func (s *bannerService) List(ctx context.Context) ([]*domain.Banner, error) {
	banners, err := s.bannerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}
