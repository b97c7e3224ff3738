package repository

import (
	"context"
	"testing"
	"time"

	"adoptnest/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository_UniqueName(t *testing.T) {
	resetTables(t)
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestCategory("Birds")))
	assert.ErrorIs(t, repo.Create(ctx, newTestCategory("Birds")), ErrCategoryAlreadyExists)

	found, err := repo.FindByName(ctx, "Birds")
	require.NoError(t, err)
	assert.Equal(t, "AdoptNest/CategoryIcons/Birds", found.Icon.RemoteID)

	_, err = repo.FindByName(ctx, "Fish")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryRepository_UpdateAndDelete(t *testing.T) {
	resetTables(t)
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()

	cat := newTestCategory("Rabbits")
	require.NoError(t, repo.Create(ctx, cat))

	cat.Name = "Bunnies"
	cat.Icon = domain.Asset{URL: "http://store/new.png", RemoteID: "AdoptNest/CategoryIcons/new.png"}
	require.NoError(t, repo.Update(ctx, cat))

	got, err := repo.FindByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bunnies", got.Name)
	assert.Equal(t, cat.Icon, got.Icon)

	require.NoError(t, repo.Delete(ctx, cat.ID))
	assert.ErrorIs(t, repo.Delete(ctx, cat.ID), ErrCategoryNotFound)
	assert.ErrorIs(t, repo.Update(ctx, cat), ErrCategoryNotFound)
}

func TestCategoryRepository_DeleteInUse(t *testing.T) {
	resetTables(t)
	categories := NewCategoryRepository(testDB)
	pets := NewPetRepository(testDB)
	ctx := context.Background()

	cat := newTestCategory("Horses")
	require.NoError(t, categories.Create(ctx, cat))

	pet := newTestPet(time.Now().UTC())
	require.NoError(t, pets.Create(ctx, pet))
	require.NoError(t, pets.UpdateModeration(ctx, pet.ID, domain.StatusAccepted, &cat.ID))

	assert.ErrorIs(t, categories.Delete(ctx, cat.ID), ErrCategoryInUse)

	list, err := categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestFavouriteRepository(t *testing.T) {
	resetTables(t)
	users := NewUserRepository(testDB)
	pets := NewPetRepository(testDB)
	categories := NewCategoryRepository(testDB)
	favourites := NewFavouriteRepository(testDB)
	ctx := context.Background()

	user := newTestUser("fav@example.com")
	require.NoError(t, users.Create(ctx, user))
	cat := newTestCategory("Dogs")
	require.NoError(t, categories.Create(ctx, cat))

	visible := newTestPet(time.Now().UTC())
	hidden := newTestPet(time.Now().UTC())
	require.NoError(t, pets.Create(ctx, visible))
	require.NoError(t, pets.Create(ctx, hidden))
	require.NoError(t, pets.UpdateModeration(ctx, visible.ID, domain.StatusAccepted, &cat.ID))

	require.NoError(t, favourites.Add(ctx, user.ID, visible.ID))
	require.NoError(t, favourites.Add(ctx, user.ID, hidden.ID))
	assert.ErrorIs(t, favourites.Add(ctx, user.ID, visible.ID), ErrFavouriteExists)
	assert.ErrorIs(t, favourites.Add(ctx, user.ID, uuid.New()), ErrPetNotFound)

	listed, err := favourites.ListPets(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, visible.ID, listed[0].ID)

	exists, err := favourites.Exists(ctx, user.ID, visible.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, favourites.Remove(ctx, user.ID, visible.ID))
	assert.ErrorIs(t, favourites.Remove(ctx, user.ID, visible.ID), ErrFavouriteNotFound)
}

func TestBannerRepository(t *testing.T) {
	resetTables(t)
	repo := NewBannerRepository(testDB)
	ctx := context.Background()

	older := &domain.Banner{ID: uuid.New(), Title: "Adopt", Image: domain.Asset{URL: "u1", RemoteID: "r1"}, CreatedAt: time.Now().UTC().Add(-time.Minute)}
	newer := &domain.Banner{ID: uuid.New(), Title: "Foster", Link: "https://example.com", Image: domain.Asset{URL: "u2", RemoteID: "r2"}, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)

	require.NoError(t, repo.Delete(ctx, older.ID))
	assert.ErrorIs(t, repo.Delete(ctx, older.ID), ErrBannerNotFound)
	_, err = repo.FindByID(ctx, older.ID)
	assert.ErrorIs(t, err, ErrBannerNotFound)
}
