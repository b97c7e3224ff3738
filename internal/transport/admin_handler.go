package transport

import (
	"net/http"

	"adoptnest/internal/domain"
	"adoptnest/internal/middleware"
	"adoptnest/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BannerResponse struct {
	Message string         `json:"message"`
	Banner  *domain.Banner `json:"banner"`
}

type CategoryResponse struct {
	Message  string           `json:"message"`
	Category *domain.Category `json:"category,omitempty"`
}

// AdminHandler manages banners and categories. Images arrive as a single
// multipart file part.
type AdminHandler struct {
	bannerService   service.BannerService
	categoryService service.CategoryService
	userService     service.UserService
	uploadDir       string
	logger          *zap.Logger
}

func NewAdminHandler(
	bannerService service.BannerService,
	categoryService service.CategoryService,
	userService service.UserService,
	uploadDir string,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		bannerService:   bannerService,
		categoryService: categoryService,
		userService:     userService,
		uploadDir:       uploadDir,
		logger:          logger,
	}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router, guards Guards) {
	guards = guards.withDefaults()

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(guards.Auth, guards.Admin)
		r.Post("/add-banner", h.AddBanner)
		r.Delete("/delete-banner/{id}", h.DeleteBanner)
		r.Post("/add-category", h.AddCategory)
		r.Put("/update-category/{id}", h.UpdateCategory)
		r.Delete("/delete-category/{id}", h.DeleteCategory)
	})
}

// spoolImage reads a multipart form with at most one file part named
// field. The returned form's files must be removed by the caller.
func (h *AdminHandler) spoolImage(w http.ResponseWriter, r *http.Request, field string) (*spooledForm, *service.LocalFile, bool) {
	form, err := spoolMultipart(w, r, h.uploadDir, field, 1, h.logger)
	if err != nil {
		h.logger.Debug("Admin form rejected", zap.String("path", r.URL.Path), zap.Error(err))
		respondSpoolError(w, err)
		return nil, nil, false
	}

	file, err := singleImage(form, h.logger)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return nil, nil, false
	}
	return form, file, true
}

func (h *AdminHandler) AddBanner(w http.ResponseWriter, r *http.Request) {
	form, image, ok := h.spoolImage(w, r, "image")
	if !ok {
		return
	}
	defer form.files.Remove(h.logger)

	banner, err := h.bannerService.Create(r.Context(), form.value("title"), form.value("link"), image)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, BannerResponse{
		Message: "Banner uploaded successfully",
		Banner:  banner,
	})
}

func (h *AdminHandler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.bannerService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Banner deleted successfully"})
}

func (h *AdminHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	form, icon, ok := h.spoolImage(w, r, "icon")
	if !ok {
		return
	}
	defer form.files.Remove(h.logger)

	creator, ok := currentIdentity(w, r, h.userService, h.logger)
	if !ok {
		return
	}

	category, err := h.categoryService.Create(r.Context(), creator, form.value("name"), icon)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, CategoryResponse{
		Message:  "Category created successfully.",
		Category: category,
	})
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	form, icon, ok := h.spoolImage(w, r, "icon")
	if !ok {
		return
	}
	defer form.files.Remove(h.logger)

	category, changed, err := h.categoryService.Update(r.Context(), id, form.value("name"), icon)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	if !changed {
		middleware.RespondWithJSON(w, http.StatusOK, CategoryResponse{Message: "No changes detected"})
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, CategoryResponse{
		Message:  "Category updated successfully",
		Category: category,
	})
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Category deleted successfully"})
}
