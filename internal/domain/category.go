package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is a moderation-assigned taxonomy bucket
type Category struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Icon      Asset      `json:"icon"`
	CreatedBy *uuid.UUID `json:"createdBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Banner is a promotional image shown by the UI
type Banner struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Link      string    `json:"link,omitempty"`
	Image     Asset     `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}
