package models

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Host is the denormalized host summary embedded in an experience.
// Ownership checks match on either HostID or Host.Email.
type Host struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type Experience struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Category    string    `json:"category,omitempty"`
	Price       float64   `json:"price,omitempty"`
	Language    string    `json:"language,omitempty"`
	Status      string    `json:"status"` // pending, approved, rejected
	HostID      string    `json:"hostId,omitempty"`
	Host        *Host     `json:"host,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (e Experience) HostEmail() string {
	if e.Host == nil {
		return ""
	}
	return e.Host.Email
}
