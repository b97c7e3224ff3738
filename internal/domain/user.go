package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account holder
type User struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Phone            string    `json:"phone"`
	WhatsApp         string    `json:"whatsapp"`
	WhatsAppVerified bool      `json:"whatsappVerified"`
	Role             string    `json:"role"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Identity returns the caller identity handed to core operations.
func (u *User) Identity() Identity {
	return Identity{
		UserID:   u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		WhatsApp: u.WhatsApp,
		Role:     u.Role,
	}
}

// Identity is the authenticated requester as seen by the core.
type Identity struct {
	UserID   uuid.UUID
	Name     string
	Email    string
	Phone    string
	WhatsApp string
	Role     string
}

// HasContact reports whether both phone and WhatsApp are set.
func (i Identity) HasContact() bool {
	return i.Phone != "" && i.WhatsApp != ""
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Contact snapshots the identity's contact fields for a new listing.
func (i Identity) Contact() ContactSnapshot {
	return ContactSnapshot{
		CreatorName: i.Name,
		Phone:       i.Phone,
		Email:       i.Email,
		WhatsApp:    i.WhatsApp,
	}
}

// RefreshToken is an opaque long-lived token exchanged for access tokens
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	Revoked   bool
}
