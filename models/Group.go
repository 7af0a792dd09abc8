package models

import "time"

// Group references its experience by copied id only; a dangling
// ExperienciaID is tolerated.
type Group struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	ExperienciaID string    `json:"experienciaId,omitempty"`
	AuthorID      string    `json:"authorId,omitempty"`
	AuthorName    string    `json:"authorName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
