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

// RecentPetsLimit is the size of the home page listing.
const RecentPetsLimit = 10

// ModerationResult reports the outcome of a moderation request.
type ModerationResult struct {
	Pet     PetReview
	Changed bool
	Message string
}

// PetService defines the interface for pet listing business logic
type PetService interface {
	Submit(ctx context.Context, submitter domain.Identity, form SubmissionForm, files []LocalFile) (*domain.Pet, error)
	Moderate(ctx context.Context, petID uuid.UUID, status string, categoryID *uuid.UUID) (*ModerationResult, error)
	ListByStatus(ctx context.Context, status *domain.Status) ([]PetSummary, error)
	ListAccepted(ctx context.Context) ([]PetSummary, error)
	Recent(ctx context.Context) ([]RecentPet, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]PetSummary, error)
	GroupedByCategory(ctx context.Context) ([]CategoryGroup, error)
	Detail(ctx context.Context, petID uuid.UUID, requester *domain.Identity) (*PetDetail, error)
	Review(ctx context.Context, petID uuid.UUID) (*PetReview, error)
}

type petService struct {
	petRepo      repository.PetRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	assets       assetstore.Store
	logger       *zap.Logger
}

// NewPetService creates a new instance of PetService
func NewPetService(
	petRepo repository.PetRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	assets assetstore.Store,
	logger *zap.Logger,
) PetService {
	return &petService{
		petRepo:      petRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		assets:       assets,
		logger:       logger,
	}
}

// Submit validates and stores a new listing as pending. Either every image
// is uploaded and the pet is persisted, or nothing remains in the store.
// The spooled files are removed on every path.
func (s *petService) Submit(ctx context.Context, submitter domain.Identity, form SubmissionForm, files []LocalFile) (*domain.Pet, error) {
	defer LocalFiles(files).Remove(s.logger)

	if err := ValidateSubmission(submitter, form, files); err != nil {
		return nil, err
	}

	images := make(domain.Images, 0, len(files))
	for i, f := range files {
		asset, err := s.assets.Upload(ctx, f.Path, assetstore.PetImages)
		if err != nil {
			s.logger.Warn("Pet image upload failed",
				zap.Int("index", i),
				zap.String("filename", f.Filename),
				zap.Error(err),
			)
			releaseAssets(ctx, s.assets, s.logger, images.RemoteIDs()...)
			return nil, uploadFailure(err)
		}
		images = append(images, asset)
	}

	pet := &domain.Pet{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(form.Name),
		Age:         strings.TrimSpace(form.Age),
		Breed:       strings.TrimSpace(form.Breed),
		Gender:      domain.Gender(strings.TrimSpace(form.Gender)),
		Description: strings.TrimSpace(form.Description),
		Location:    strings.TrimSpace(form.Location),
		Images:      images,
		Contact:     submitter.Contact(),
		CreatedBy:   submitter.UserID,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.petRepo.Create(ctx, pet); err != nil {
		releaseAssets(ctx, s.assets, s.logger, images.RemoteIDs()...)
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	s.logger.Info("Pet submitted for review",
		zap.String("pet_id", pet.ID.String()),
		zap.String("user_id", submitter.UserID.String()),
		zap.Int("images", len(images)),
	)

	return pet, nil
}

// Moderate moves a pet to accepted or declined. Accepting requires an
// existing category; declining clears it. Status and category are written
// together.
func (s *petService) Moderate(ctx context.Context, petID uuid.UUID, status string, categoryID *uuid.UUID) (*ModerationResult, error) {
	target, ok := domain.ParseStatus(status)
	if !ok || !target.IsModerationTarget() {
		return nil, ErrInvalidStatus
	}

	pet, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to get pet: %w", err)
	}

	if pet.Status == target {
		return &ModerationResult{
			Pet:     toReview(pet),
			Changed: false,
			Message: fmt.Sprintf("Pet is already %s", target),
		}, nil
	}

	var category *domain.Category
	if target == domain.StatusAccepted {
		if categoryID == nil {
			return nil, ErrMissingCategory
		}
		category, err = s.categoryRepo.FindByID(ctx, *categoryID)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to get category: %w", err)
		}
	}

	pet.ApplyModeration(target, categoryID)
	if category != nil {
		pet.CategoryName = category.Name
	}

	if err := s.petRepo.UpdateModeration(ctx, pet.ID, pet.Status, pet.CategoryID); err != nil {
		switch {
		case errors.Is(err, repository.ErrPetNotFound):
			return nil, ErrPetNotFound
		case errors.Is(err, repository.ErrCategoryNotFound):
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update pet status: %w", err)
	}

	s.logger.Info("Pet moderated",
		zap.String("pet_id", pet.ID.String()),
		zap.String("status", string(pet.Status)),
	)

	return &ModerationResult{
		Pet:     toReview(pet),
		Changed: true,
		Message: fmt.Sprintf("Pet %s", target),
	}, nil
}

// ListByStatus lists pets for moderators. A nil status lists everything.
func (s *petService) ListByStatus(ctx context.Context, status *domain.Status) ([]PetSummary, error) {
	pets, err := s.petRepo.List(ctx, repository.PetFilter{Status: status})
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return toSummaries(pets), nil
}

func (s *petService) ListAccepted(ctx context.Context) ([]PetSummary, error) {
	accepted := domain.StatusAccepted
	return s.ListByStatus(ctx, &accepted)
}

func (s *petService) Recent(ctx context.Context) ([]RecentPet, error) {
	accepted := domain.StatusAccepted
	pets, err := s.petRepo.List(ctx, repository.PetFilter{Status: &accepted, Limit: RecentPetsLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent pets: %w", err)
	}
	return toRecent(pets), nil
}

func (s *petService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]PetSummary, error) {
	accepted := domain.StatusAccepted
	pets, err := s.petRepo.List(ctx, repository.PetFilter{Status: &accepted, CategoryID: &categoryID})
	if err != nil {
		return nil, fmt.Errorf("failed to list pets by category: %w", err)
	}
	return toSummaries(pets), nil
}

// GroupedByCategory returns every category that has accepted pets, in
// category listing order.
func (s *petService) GroupedByCategory(ctx context.Context) ([]CategoryGroup, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	accepted := domain.StatusAccepted
	pets, err := s.petRepo.List(ctx, repository.PetFilter{Status: &accepted})
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}

	byCategory := make(map[uuid.UUID][]PetSummary)
	for _, p := range pets {
		if p.CategoryID == nil {
			continue
		}
		byCategory[*p.CategoryID] = append(byCategory[*p.CategoryID], toSummary(p))
	}

	groups := []CategoryGroup{}
	for _, c := range categories {
		members, ok := byCategory[c.ID]
		if !ok {
			continue
		}
		icon := c.Icon
		groups = append(groups, CategoryGroup{
			Category: CategoryRef{ID: c.ID, Name: c.Name, Icon: &icon},
			Pets:     members,
		})
	}

	return groups, nil
}

// Detail returns the public view of one pet. Only accepted pets are visible
// unless the requester is an admin. Signed-in requesters also get the
// creator's current contact details.
func (s *petService) Detail(ctx context.Context, petID uuid.UUID, requester *domain.Identity) (*PetDetail, error) {
	pet, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to get pet: %w", err)
	}

	if pet.Status != domain.StatusAccepted && (requester == nil || !requester.IsAdmin()) {
		return nil, ErrPetNotFound
	}

	var category *domain.Category
	if pet.CategoryID != nil {
		category, err = s.categoryRepo.FindByID(ctx, *pet.CategoryID)
		if err != nil && !errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, fmt.Errorf("failed to get category: %w", err)
		}
	}

	var creator *domain.User
	if requester != nil {
		creator, err = s.userRepo.FindByID(ctx, pet.CreatedBy)
		if err != nil {
			if !errors.Is(err, repository.ErrUserNotFound) {
				return nil, fmt.Errorf("failed to get creator: %w", err)
			}
			creator = nil
		}
	}

	detail := toDetail(pet, category, creator)
	return &detail, nil
}

// Review returns the moderator view of one pet in any status.
func (s *petService) Review(ctx context.Context, petID uuid.UUID) (*PetReview, error) {
	pet, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to get pet: %w", err)
	}

	review := toReview(pet)
	return &review, nil
}
