package transport

import (
	"net/http"

	"adoptnest/internal/domain"
	"adoptnest/internal/middleware"
	"adoptnest/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DataResponse wraps a single resource or collection under "data".
type DataResponse struct {
	Data interface{} `json:"data"`
}

type PetDetailResponse struct {
	Pet *service.PetDetail `json:"pet"`
}

type PetsResponse struct {
	Pets []service.PetSummary `json:"pets"`
}

// UIHandler serves the read-only endpoints behind the public client
type UIHandler struct {
	petService      service.PetService
	categoryService service.CategoryService
	bannerService   service.BannerService
	userService     service.UserService
	logger          *zap.Logger
}

func NewUIHandler(
	petService service.PetService,
	categoryService service.CategoryService,
	bannerService service.BannerService,
	userService service.UserService,
	logger *zap.Logger,
) *UIHandler {
	return &UIHandler{
		petService:      petService,
		categoryService: categoryService,
		bannerService:   bannerService,
		userService:     userService,
		logger:          logger,
	}
}

func (h *UIHandler) RegisterRoutes(r chi.Router, guards Guards) {
	guards = guards.withDefaults()

	r.Route("/api/ui", func(r chi.Router) {
		r.Get("/banners", h.ListBanners)
		r.Get("/category", h.ListCategories)
		r.Get("/category/{id}", h.GetCategory)
		r.With(guards.OptionalAuth).Get("/pet/{id}", h.PetDetail)
		r.Get("/pet/category/{id}", h.PetsByCategory)
		r.Get("/pets/grouped-by-category", h.GroupedByCategory)
	})
}

func (h *UIHandler) ListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.bannerService.List(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, banners)
}

func (h *UIHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

func (h *UIHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, DataResponse{Data: category})
}

// PetDetail returns the public view of a pet. A valid token adds the
// creator's live contact details; an absent or stale one does not fail
// the request.
func (h *UIHandler) PetDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var requester *domain.Identity
	if userID, ok := middleware.GetUserUUID(r.Context()); ok {
		identity, err := h.userService.Identity(r.Context(), userID)
		if err == nil {
			requester = &identity
		} else {
			h.logger.Debug("Ignoring requester identity", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	detail, err := h.petService.Detail(r.Context(), id, requester)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, PetDetailResponse{Pet: detail})
}

func (h *UIHandler) PetsByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	pets, err := h.petService.ListByCategory(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, PetsResponse{Pets: pets})
}

func (h *UIHandler) GroupedByCategory(w http.ResponseWriter, r *http.Request) {
	groups, err := h.petService.GroupedByCategory(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, DataResponse{Data: groups})
}
