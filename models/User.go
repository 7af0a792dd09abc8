package models

import "time"

const (
	RoleUser  = "user"
	RoleHost  = "host"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the roles the API accepts.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleHost || role == RoleAdmin
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	Role      string    `json:"role"` // user, host, admin
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
