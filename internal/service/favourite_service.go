package service

import (
	"context"
	"errors"
	"fmt"

	"adoptnest/internal/domain"
	"adoptnest/internal/repository"

	"github.com/google/uuid"
)

// FavouriteService manages a user's bookmarked pets
type FavouriteService interface {
	Add(ctx context.Context, userID, petID uuid.UUID) error
	Remove(ctx context.Context, userID, petID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]PetSummary, error)
}

type favouriteService struct {
	favouriteRepo repository.FavouriteRepository
	petRepo       repository.PetRepository
}

// NewFavouriteService creates a new instance of FavouriteService
func NewFavouriteService(favouriteRepo repository.FavouriteRepository, petRepo repository.PetRepository) FavouriteService {
	return &favouriteService{
		favouriteRepo: favouriteRepo,
		petRepo:       petRepo,
	}
}

// Add bookmarks a publicly visible pet.
func (s *favouriteService) Add(ctx context.Context, userID, petID uuid.UUID) error {
	pet, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return ErrPetNotPublic
		}
		return fmt.Errorf("failed to get pet: %w", err)
	}
	if pet.Status != domain.StatusAccepted {
		return ErrPetNotPublic
	}

	if err := s.favouriteRepo.Add(ctx, userID, petID); err != nil {
		switch {
		case errors.Is(err, repository.ErrFavouriteExists):
			return ErrAlreadyFavourite
		case errors.Is(err, repository.ErrPetNotFound):
			return ErrPetNotPublic
		}
		return fmt.Errorf("failed to add favourite: %w", err)
	}
	return nil
}

func (s *favouriteService) Remove(ctx context.Context, userID, petID uuid.UUID) error {
	if err := s.favouriteRepo.Remove(ctx, userID, petID); err != nil {
		if errors.Is(err, repository.ErrFavouriteNotFound) {
			return ErrNotFavourite
		}
		return fmt.Errorf("failed to remove favourite: %w", err)
	}
	return nil
}

// List returns favourites that are still accepted, in list shape.
func (s *favouriteService) List(ctx context.Context, userID uuid.UUID) ([]PetSummary, error) {
	pets, err := s.favouriteRepo.ListPets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favourites: %w", err)
	}
	return toSummaries(pets), nil
}
