package transport

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"adoptnest/internal/assetstore"
	"adoptnest/internal/domain"
	"adoptnest/internal/repository"

	"github.com/google/uuid"
)

// In-memory repositories and asset store backing the handler tests.

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	if _, err := m.FindByID(ctx, user.ID); err != nil {
		return err
	}
	m.users[user.Email] = user
	return nil
}

type mockRefreshTokenRepository struct {
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{tokens: make(map[string]*domain.RefreshToken)}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, repository.ErrRefreshTokenRevoked
	}
	return refreshToken, nil
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	refreshToken, exists := m.tokens[token]
	if !exists || refreshToken.Revoked {
		return repository.ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

func (m *mockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	for _, t := range m.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

// mockPetRepository mirrors the table constraints: category set iff
// accepted, and category must exist.
type mockPetRepository struct {
	pets       map[uuid.UUID]*domain.Pet
	categories *mockCategoryRepository
	createErr  error
	writes     int
}

func newMockPetRepository(categories *mockCategoryRepository) *mockPetRepository {
	return &mockPetRepository{pets: make(map[uuid.UUID]*domain.Pet), categories: categories}
}

func (m *mockPetRepository) Create(ctx context.Context, pet *domain.Pet) error {
	if m.createErr != nil {
		return m.createErr
	}
	if !pet.HasConsistentCategory() {
		return repository.ErrInconsistentModeration
	}
	stored := *pet
	m.pets[pet.ID] = &stored
	return nil
}

func (m *mockPetRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error) {
	pet, ok := m.pets[id]
	if !ok {
		return nil, repository.ErrPetNotFound
	}
	out := *pet
	if out.CategoryID != nil {
		id := *out.CategoryID
		out.CategoryID = &id
		if c, ok := m.categories.items[id]; ok {
			out.CategoryName = c.Name
		}
	}
	return &out, nil
}

func (m *mockPetRepository) List(ctx context.Context, filter repository.PetFilter) ([]*domain.Pet, error) {
	var out []*domain.Pet
	for id := range m.pets {
		p, _ := m.FindByID(ctx, id)
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *filter.CategoryID) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *mockPetRepository) UpdateModeration(ctx context.Context, id uuid.UUID, status domain.Status, categoryID *uuid.UUID) error {
	pet, ok := m.pets[id]
	if !ok {
		return repository.ErrPetNotFound
	}
	if categoryID != nil {
		if _, ok := m.categories.items[*categoryID]; !ok {
			return repository.ErrCategoryNotFound
		}
	}
	if (status == domain.StatusAccepted) != (categoryID != nil) {
		return repository.ErrInconsistentModeration
	}
	m.writes++
	pet.Status = status
	pet.CategoryID = nil
	if categoryID != nil {
		c := *categoryID
		pet.CategoryID = &c
	}
	return nil
}

type mockCategoryRepository struct {
	items     map[uuid.UUID]*domain.Category
	inUse     map[uuid.UUID]bool
	createErr error
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{items: make(map[uuid.UUID]*domain.Category), inUse: make(map[uuid.UUID]bool)}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, c := range m.items {
		if c.Name == category.Name {
			return repository.ErrCategoryAlreadyExists
		}
	}
	stored := *category
	m.items[category.ID] = &stored
	return nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if _, ok := m.items[category.ID]; !ok {
		return repository.ErrCategoryNotFound
	}
	stored := *category
	m.items[category.ID] = &stored
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	if m.inUse[id] {
		return repository.ErrCategoryInUse
	}
	delete(m.items, id)
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	out := []*domain.Category{}
	for _, c := range m.items {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	for _, c := range m.items {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (m *mockCategoryRepository) add(name string) *domain.Category {
	c := &domain.Category{ID: uuid.New(), Name: name, Icon: domain.Asset{URL: "u/" + name, RemoteID: "AdoptNest/CategoryIcons/" + name}}
	m.items[c.ID] = c
	return c
}

type mockBannerRepository struct {
	items map[uuid.UUID]*domain.Banner
}

func newMockBannerRepository() *mockBannerRepository {
	return &mockBannerRepository{items: make(map[uuid.UUID]*domain.Banner)}
}

func (m *mockBannerRepository) Create(ctx context.Context, banner *domain.Banner) error {
	m.items[banner.ID] = banner
	return nil
}

func (m *mockBannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return repository.ErrBannerNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockBannerRepository) List(ctx context.Context) ([]*domain.Banner, error) {
	out := []*domain.Banner{}
	for _, b := range m.items {
		out = append(out, b)
	}
	return out, nil
}

func (m *mockBannerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Banner, error) {
	b, ok := m.items[id]
	if !ok {
		return nil, repository.ErrBannerNotFound
	}
	return b, nil
}

type mockFavouriteRepository struct {
	pets  *mockPetRepository
	links map[uuid.UUID]map[uuid.UUID]bool
}

func newMockFavouriteRepository(pets *mockPetRepository) *mockFavouriteRepository {
	return &mockFavouriteRepository{pets: pets, links: make(map[uuid.UUID]map[uuid.UUID]bool)}
}

func (m *mockFavouriteRepository) Add(ctx context.Context, userID, petID uuid.UUID) error {
	if m.links[userID][petID] {
		return repository.ErrFavouriteExists
	}
	if m.links[userID] == nil {
		m.links[userID] = make(map[uuid.UUID]bool)
	}
	m.links[userID][petID] = true
	return nil
}

func (m *mockFavouriteRepository) Remove(ctx context.Context, userID, petID uuid.UUID) error {
	if !m.links[userID][petID] {
		return repository.ErrFavouriteNotFound
	}
	delete(m.links[userID], petID)
	return nil
}

func (m *mockFavouriteRepository) Exists(ctx context.Context, userID, petID uuid.UUID) (bool, error) {
	return m.links[userID][petID], nil
}

func (m *mockFavouriteRepository) ListPets(ctx context.Context, userID uuid.UUID) ([]*domain.Pet, error) {
	out := []*domain.Pet{}
	for petID := range m.links[userID] {
		p, err := m.pets.FindByID(ctx, petID)
		if err == nil && p.Status == domain.StatusAccepted {
			out = append(out, p)
		}
	}
	return out, nil
}

// mockAssetStore records uploads and deletions. failOn makes the n-th
// upload (1-based) fail.
type mockAssetStore struct {
	mu        sync.Mutex
	uploads   []string
	profiles  []assetstore.Profile
	deleted   []string
	live      map[string]bool
	failOn    int
	failWith  error
	deleteErr error
}

func newMockAssetStore() *mockAssetStore {
	return &mockAssetStore{live: make(map[string]bool)}
}

func (m *mockAssetStore) Upload(ctx context.Context, localPath string, profile assetstore.Profile) (domain.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.uploads = append(m.uploads, localPath)
	m.profiles = append(m.profiles, profile)
	if m.failOn > 0 && len(m.uploads) == m.failOn {
		if m.failWith != nil {
			return domain.Asset{}, m.failWith
		}
		return domain.Asset{}, errors.New("store unavailable")
	}

	id := fmt.Sprintf("%s/%d-%s", profile.Folder, len(m.uploads), filepath.Base(localPath))
	m.live[id] = true
	return domain.Asset{URL: "http://store/" + id, RemoteID: id}, nil
}

func (m *mockAssetStore) Delete(ctx context.Context, remoteID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deleted = append(m.deleted, remoteID)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if !m.live[remoteID] {
		return assetstore.ErrAssetNotFound
	}
	delete(m.live, remoteID)
	return nil
}

func (m *mockAssetStore) liveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.live)
}

