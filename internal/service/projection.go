package service

import (
	"time"

	"adoptnest/internal/domain"

	"github.com/google/uuid"
)

// CategoryRef is the category as embedded in pet views. Icon is only
// expanded on the detail view.
type CategoryRef struct {
	ID   uuid.UUID     `json:"id"`
	Name string        `json:"name"`
	Icon *domain.Asset `json:"icon,omitempty"`
}

// CategoryName is the category as shown on the home page.
type CategoryName struct {
	Name string `json:"name"`
}

// RecentPet is the home page shape: a summary whose category carries only
// its name.
type RecentPet struct {
	PetSummary
	Category *CategoryName `json:"category,omitempty"`
}

// Creator is the live profile of a pet's submitter, shown to signed-in
// users on the detail view.
type Creator struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	WhatsApp string    `json:"whatsapp"`
}

// PetSummary is the list shape: no description, no contact data.
type PetSummary struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Age       string        `json:"age"`
	Breed     string        `json:"breed,omitempty"`
	Gender    domain.Gender `json:"gender"`
	Location  string        `json:"location"`
	Images    domain.Images `json:"images"`
	Category  *CategoryRef  `json:"category,omitempty"`
	Status    domain.Status `json:"status"`
	CreatedBy uuid.UUID     `json:"createdBy"`
	CreatedAt time.Time     `json:"createdAt"`
}

// PetDetail is the public single-pet view.
type PetDetail struct {
	PetSummary
	Description string   `json:"description"`
	Creator     *Creator `json:"creator,omitempty"`
}

// PetReview is what moderators see: the full record including the contact
// snapshot taken at submission.
type PetReview struct {
	PetSummary
	Description string `json:"description"`
	domain.ContactSnapshot
}

// CategoryGroup is one category with its accepted pets.
type CategoryGroup struct {
	Category CategoryRef  `json:"category"`
	Pets     []PetSummary `json:"pets"`
}

func toSummary(p *domain.Pet) PetSummary {
	s := PetSummary{
		ID:        p.ID,
		Name:      p.Name,
		Age:       p.Age,
		Breed:     p.Breed,
		Gender:    p.Gender,
		Location:  p.Location,
		Images:    p.Images,
		Status:    p.Status,
		CreatedBy: p.CreatedBy,
		CreatedAt: p.CreatedAt,
	}
	if p.CategoryID != nil {
		s.Category = &CategoryRef{ID: *p.CategoryID, Name: p.CategoryName}
	}
	return s
}

func toRecent(pets []*domain.Pet) []RecentPet {
	out := make([]RecentPet, 0, len(pets))
	for _, p := range pets {
		r := RecentPet{PetSummary: toSummary(p)}
		r.PetSummary.Category = nil
		if p.CategoryID != nil {
			r.Category = &CategoryName{Name: p.CategoryName}
		}
		out = append(out, r)
	}
	return out
}

func toSummaries(pets []*domain.Pet) []PetSummary {
	out := make([]PetSummary, 0, len(pets))
	for _, p := range pets {
		out = append(out, toSummary(p))
	}
	return out
}

// toDetail strips the contact snapshot. category and creator may be nil.
func toDetail(p *domain.Pet, category *domain.Category, creator *domain.User) PetDetail {
	d := PetDetail{
		PetSummary:  toSummary(p),
		Description: p.Description,
	}
	if category != nil {
		icon := category.Icon
		d.Category = &CategoryRef{ID: category.ID, Name: category.Name, Icon: &icon}
	}
	if creator != nil {
		d.Creator = &Creator{
			ID:       creator.ID,
			Name:     creator.Name,
			Email:    creator.Email,
			Phone:    creator.Phone,
			WhatsApp: creator.WhatsApp,
		}
	}
	return d
}

func toReview(p *domain.Pet) PetReview {
	return PetReview{
		PetSummary:      toSummary(p),
		Description:     p.Description,
		ContactSnapshot: p.Contact,
	}
}
