package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the moderation state of a pet listing.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// ParseStatus normalizes user input into a known status.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined:
		return s, true
	}
	return "", false
}

// IsModerationTarget reports whether an admin may move a pet into s.
// Pending is only reachable at creation.
func (s Status) IsModerationTarget() bool {
	return s == StatusAccepted || s == StatusDeclined
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

const (
	MinPetImages = 1
	MaxPetImages = 5
)

// ContactSnapshot is copied from the submitter's profile at submission time.
type ContactSnapshot struct {
	CreatorName string `json:"creatorName"`
	Phone       string `json:"contactPhone"`
	Email       string `json:"contactEmail"`
	WhatsApp    string `json:"contactWhatsApp"`
}

// Complete reports whether every snapshot field is populated.
func (c ContactSnapshot) Complete() bool {
	return c.CreatorName != "" && c.Phone != "" && c.Email != "" && c.WhatsApp != ""
}

// Pet represents an adoption listing
type Pet struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Age         string          `json:"age"`
	Breed       string          `json:"breed,omitempty"`
	Gender      Gender          `json:"gender"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Images      Images          `json:"images"`
	CategoryID  *uuid.UUID      `json:"category,omitempty"`
	Contact     ContactSnapshot `json:"contact"`
	CreatedBy   uuid.UUID       `json:"createdBy"`
	Status      Status          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`

	// Populated via JOIN for display, not stored on the pets row.
	CategoryName string `json:"-"`
}

// HasConsistentCategory reports whether category is set exactly when the
// pet is accepted.
func (p *Pet) HasConsistentCategory() bool {
	return (p.Status == StatusAccepted) == (p.CategoryID != nil)
}

// ApplyModeration moves the pet to target together with its category link.
// Declining always clears the category; accepting sets it to categoryID.
func (p *Pet) ApplyModeration(target Status, categoryID *uuid.UUID) {
	p.Status = target
	if target == StatusAccepted && categoryID != nil {
		id := *categoryID
		p.CategoryID = &id
		return
	}
	p.CategoryID = nil
	p.CategoryName = ""
}
