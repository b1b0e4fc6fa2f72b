package model

import (
	"time"

	"github.com/google/uuid"
)

// Category groups tasks by area (work, health, study, etc.).
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategory builds a category with a fresh identifier.
func NewCategory(name, color string) Category {
	now := time.Now()
	return Category{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
