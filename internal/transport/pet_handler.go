package transport

import (
	"net/http"

	"adoptnest/internal/domain"
	"adoptnest/internal/middleware"
	"adoptnest/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ModerationRequest is the admin decision on a pending or moderated pet.
// Status is checked by the moderation service so its message is kept.
type ModerationRequest struct {
	Status     string  `json:"status"`
	CategoryID *string `json:"categoryId" validate:"omitempty,uuid"`
}

// SubmissionResponse is returned for a newly submitted pet
type SubmissionResponse struct {
	Message string      `json:"message"`
	Pet     *domain.Pet `json:"pet"`
}

// ModerationResponse reports the moderation outcome with the review view
type ModerationResponse struct {
	Message string             `json:"message"`
	Pet     *service.PetReview `json:"pet,omitempty"`
}

// PetHandler serves submission, moderation and the public pet lists
type PetHandler struct {
	petService  service.PetService
	userService service.UserService
	uploadDir   string
	logger      *zap.Logger
}

// NewPetHandler creates a new PetHandler. Multipart files are spooled to
// uploadDir, or the system temp directory when it is empty.
func NewPetHandler(petService service.PetService, userService service.UserService, uploadDir string, logger *zap.Logger) *PetHandler {
	return &PetHandler{
		petService:  petService,
		userService: userService,
		uploadDir:   uploadDir,
		logger:      logger,
	}
}

// RegisterRoutes registers all pet routes
func (h *PetHandler) RegisterRoutes(r chi.Router, guards Guards) {
	guards = guards.withDefaults()

	r.Route("/api/pets", func(r chi.Router) {
		r.Get("/all", h.ListAccepted)
		r.Get("/home", h.Recent)

		r.With(guards.Auth, guards.SubmitLimit).Post("/add", h.Submit)

		r.Group(func(r chi.Router) {
			r.Use(guards.Auth, guards.Admin)
			r.Get("/admin/all", h.listByStatus(nil))
			r.Get("/admin/pending", h.listByStatus(statusPtr(domain.StatusPending)))
			r.Get("/admin/declined", h.listByStatus(statusPtr(domain.StatusDeclined)))
			r.Get("/admin/{id}", h.Review)
			r.Post("/admin/validate/{id}", h.Moderate)
		})
	})
}

func statusPtr(s domain.Status) *domain.Status { return &s }

// Submit accepts a multipart listing: text fields plus up to five parts
// named "images".
func (h *PetHandler) Submit(w http.ResponseWriter, r *http.Request) {
	form, err := spoolMultipart(w, r, h.uploadDir, "images", maxSpooledFiles, h.logger)
	if err != nil {
		h.logger.Debug("Submission body rejected", zap.Error(err))
		respondSpoolError(w, err)
		return
	}
	defer form.files.Remove(h.logger)

	submitter, ok := currentIdentity(w, r, h.userService, h.logger)
	if !ok {
		return
	}

	pet, err := h.petService.Submit(r.Context(), submitter, service.SubmissionForm{
		Name:        form.value("name"),
		Age:         form.value("age"),
		Breed:       form.value("breed"),
		Gender:      form.value("gender"),
		Description: form.value("description"),
		Location:    form.value("location"),
	}, form.files)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, SubmissionResponse{
		Message: "Pet submitted for review",
		Pet:     pet,
	})
}

func (h *PetHandler) listByStatus(status *domain.Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pets, err := h.petService.ListByStatus(r.Context(), status)
		if err != nil {
			respondServiceError(w, r, h.logger, err)
			return
		}
		middleware.RespondWithJSON(w, http.StatusOK, pets)
	}
}

// Review returns the full record of a pet for moderators
func (h *PetHandler) Review(w http.ResponseWriter, r *http.Request) {
	petID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	review, err := h.petService.Review(r.Context(), petID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, review)
}

// Moderate accepts or declines a pet
func (h *PetHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	petID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req ModerationRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	var categoryID *uuid.UUID
	if req.CategoryID != nil && *req.CategoryID != "" {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "InvalidID", "invalid categoryId")
			return
		}
		categoryID = &id
	}

	result, err := h.petService.Moderate(r.Context(), petID, req.Status, categoryID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}

	resp := ModerationResponse{Message: result.Message}
	if result.Changed {
		resp.Pet = &result.Pet
		adminID, _ := middleware.GetUserID(r.Context())
		h.logger.Info("Pet moderated",
			zap.String("pet_id", petID.String()),
			zap.String("status", string(result.Pet.Status)),
			zap.String("admin_id", adminID),
		)
	}
	middleware.RespondWithJSON(w, http.StatusOK, resp)
}

// ListAccepted returns every accepted pet
func (h *PetHandler) ListAccepted(w http.ResponseWriter, r *http.Request) {
	pets, err := h.petService.ListAccepted(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, pets)
}

// Recent returns the newest accepted pets for the home page
func (h *PetHandler) Recent(w http.ResponseWriter, r *http.Request) {
	pets, err := h.petService.Recent(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, pets)
}
