package transport

import (
	"context"
	"errors"
	"net/http"

	"adoptnest/internal/domain"
	"adoptnest/internal/middleware"
	"adoptnest/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MessageResponse is the body of operations that only report an outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

func statusForKind(k service.Kind) int {
	switch k {
	case service.KindValidation, service.KindBusinessRule:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError maps a service failure onto the error envelope.
// Anything unclassified is logged and reported as a generic 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	var se *service.Error
	if errors.As(err, &se) {
		status := statusForKind(se.Kind)
		if status >= http.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("path", r.URL.Path),
				zap.String("code", se.Code),
				zap.Error(err),
			)
		} else {
			logger.Debug("Request rejected",
				zap.String("path", r.URL.Path),
				zap.String("code", se.Code),
				zap.String("kind", se.Kind.String()),
			)
		}
		middleware.RespondWithError(w, status, se.Code, se.Message)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		middleware.RespondWithError(w, http.StatusUnauthorized, "InvalidCredentials", "invalid email or password")
	case errors.Is(err, service.ErrTokenExpired):
		middleware.RespondWithError(w, http.StatusUnauthorized, "TokenExpired", "refresh token expired")
	case errors.Is(err, service.ErrInvalidToken):
		middleware.RespondWithError(w, http.StatusUnauthorized, "InvalidToken", "invalid refresh token")
	default:
		logger.Error("Unexpected error",
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.Error(err),
		)
		middleware.RespondWithError(w, http.StatusInternalServerError, "", "internal server error")
	}
}

// respondDecodeError reports a body that failed DecodeAndValidate.
func respondDecodeError(w http.ResponseWriter, err error) {
	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}
	middleware.RespondWithError(w, http.StatusBadRequest, "InvalidBody", "invalid request body")
}

// pathID parses a uuid URL parameter, answering 400 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "InvalidID", "invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

// currentUserID reads the authenticated user from the request context.
func currentUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserUUID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "", "unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}

// identityLoader resolves the caller's identity from the user store.
type identityLoader interface {
	Identity(ctx context.Context, userID uuid.UUID) (domain.Identity, error)
}

func currentIdentity(w http.ResponseWriter, r *http.Request, users identityLoader, logger *zap.Logger) (domain.Identity, bool) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return domain.Identity{}, false
	}
	identity, err := users.Identity(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			middleware.RespondWithError(w, http.StatusUnauthorized, "", "unauthorized")
			return domain.Identity{}, false
		}
		respondServiceError(w, r, logger, err)
		return domain.Identity{}, false
	}
	return identity, true
}
