package models

import "time"

// Booking is a standalone reservation record for a standard
// experience, managed through the admin reservations CRUD. Host
// access is scoped through the referenced experience's ownership.
type Booking struct {
	ID            string    `json:"id"`
	ExperienciaID string    `json:"experienciaId"`
	UserID        string    `json:"userId"`
	UserName      string    `json:"userName,omitempty"`
	Date          string    `json:"date,omitempty"`
	Seats         int       `json:"seats"`
	Status        string    `json:"status"` // pending, approved, rejected
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
